package link

import (
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/cmpp.go/pkg/bridge"
)

type loopMessenger struct {
	lock     sync.Mutex
	handlers map[string]bridge.Handler
	sent     [][]byte
}

func (m *loopMessenger) Publish(topic string, payload []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.sent = append(m.sent, payload)
	return nil
}

func (m *loopMessenger) Subscribe(topic string, handler bridge.Handler) (io.Closer, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.handlers[topic] = handler
	return io.NopCloser(nil), nil
}

func TestMQTTConn(t *testing.T) {
	m := &loopMessenger{handlers: make(map[string]bridge.Handler)}
	conn, err := NewMQTTConn(m)
	require.NoError(t, err)
	require.NotNil(t, m.handlers[TopicRx])

	n, err := conn.Write([]byte{0x1b, 0x02})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, [][]byte{{0x1b, 0x02}}, m.sent)

	m.handlers[TopicRx](TopicRx, []byte{1, 2, 3})
	m.handlers[TopicRx](TopicRx, []byte{4})
	buf := make([]byte, 2)
	n, err = conn.Read(buf)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, buf[:n])
	n, err = io.ReadFull(conn, buf)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 4}, buf[:n])

	done := make(chan error, 1)
	go func() {
		_, err := conn.Read(buf)
		done <- err
	}()
	require.NoError(t, conn.Close())
	require.Equal(t, io.EOF, <-done)
	_, err = conn.Write([]byte{0})
	require.Equal(t, io.ErrClosedPipe, err)
}
