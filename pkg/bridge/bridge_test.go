package bridge

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
	"github.com/robotalks/cmpp.go/pkg/cmpp/slave"
	"github.com/robotalks/cmpp.go/pkg/cmpp/transport"
	"github.com/robotalks/cmpp.go/pkg/store"
)

type published struct {
	topic   string
	payload []byte
}

type memMessenger struct {
	lock     sync.Mutex
	handlers map[string]Handler
	pubCh    chan published
}

func newMemMessenger() *memMessenger {
	return &memMessenger{handlers: make(map[string]Handler), pubCh: make(chan published, 64)}
}

func (m *memMessenger) Publish(topic string, payload []byte) error {
	m.pubCh <- published{topic: topic, payload: payload}
	return nil
}

func (m *memMessenger) Subscribe(topic string, handler Handler) (io.Closer, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.handlers[topic] = handler
	return io.NopCloser(nil), nil
}

func (m *memMessenger) deliver(topic string, payload []byte) bool {
	m.lock.Lock()
	h := m.handlers[topic]
	m.lock.Unlock()
	if h == nil {
		return false
	}
	h(topic, payload)
	return true
}

func (m *memMessenger) next(t *testing.T, topic string) []byte {
	for {
		select {
		case p := <-m.pubCh:
			if p.topic == topic {
				return p.payload
			}
		case <-time.After(time.Second):
			t.Fatalf("nothing published on %s", topic)
		}
	}
}

func newTestBridge() (*Bridge, *slave.Slave, *memMessenger) {
	s := transport.NewSimulatedSlave(3)
	dl := datalink.NewOver(3, 20*time.Millisecond, slave.NewDevice(s))
	m := newMemMessenger()
	return &Bridge{
		ID:        "panel",
		Channel:   3,
		Transport: transport.New(dl, transport.DefaultMechanicalProperties),
		Store:     store.New(store.NewMemory(store.DefaultSize)),
		Messenger: m,
		Interval:  time.Hour,
	}, s, m
}

func TestMatchTopic(t *testing.T) {
	tests := []struct {
		topic, filter string
		match         bool
	}{
		{"a/b/c", "a/b/c", true},
		{"a/b/c", "a/+/c", true},
		{"a/b/c", "a/#", true},
		{"a", "a/#", true},
		{"a/b/c", "#", true},
		{"a/b", "a/b/c", false},
		{"a/b/c", "a/b", false},
		{"a/x/c", "a/b/+", false},
	}
	for _, test := range tests {
		require.Equal(t, test.match, MatchTopic(test.topic, test.filter), "%s %s", test.topic, test.filter)
	}
}

func TestMessageEncoding(t *testing.T) {
	req := &Request{ID: "1", Op: OpSet, Param: "posicao_final", Value: -5, Program: 1, TimeoutMs: 100}
	data, err := proto.Marshal(req)
	require.NoError(t, err)
	decoded := &Request{}
	require.NoError(t, proto.Unmarshal(data, decoded))
	require.True(t, proto.Equal(req, decoded))

	event := &StatusEvent{Channel: 1, Status: 3, Flags: []string{"referenced", "position_reached"}}
	data, err = proto.Marshal(event)
	require.NoError(t, err)
	decodedEvent := &StatusEvent{}
	require.NoError(t, proto.Unmarshal(data, decodedEvent))
	require.Equal(t, event.Flags, decodedEvent.Flags)
}

func TestHandle(t *testing.T) {
	b, s, _ := newTestBridge()
	ctx := context.Background()

	reply := b.Handle(ctx, &Request{ID: "1", Op: OpSet, Param: "posicao_final", Value: 100})
	require.Empty(t, reply.Error)
	require.Equal(t, uint16(5433), s.Register(transport.PosicaoFinal.Param().Addr))

	reply = b.Handle(ctx, &Request{ID: "2", Op: OpGet, Param: "posicao_final"})
	require.Empty(t, reply.Error)
	require.Equal(t, "2", reply.ID)
	require.Equal(t, int64(100), reply.Value)

	reply = b.Handle(ctx, &Request{ID: "3", Op: OpGet, Param: "nothing"})
	require.NotEmpty(t, reply.Error)

	reply = b.Handle(ctx, &Request{ID: "4", Op: OpReference, TimeoutMs: 1000})
	require.Empty(t, reply.Error)
	require.True(t, datalink.Status(reply.Status).IsReferenced())

	reply = b.Handle(ctx, &Request{ID: "5", Op: OpSend, Program: 0})
	require.Empty(t, reply.Error)
	require.Equal(t, int64(29+11), reply.Value)

	reply = b.Handle(ctx, &Request{ID: "6", Op: OpSend, Program: 7})
	require.NotEmpty(t, reply.Error)

	s.FailWith(transport.PosicaoInicial.Param().Addr, datalink.ErrorCodeInvalidChecksum)
	reply = b.Handle(ctx, &Request{ID: "7", Op: OpStatus})
	require.Equal(t, uint32(datalink.ErrorCodeInvalidChecksum), reply.SlaveError)

	reply = b.Handle(ctx, &Request{ID: "8", Op: "fly"})
	require.NotEmpty(t, reply.Error)
}

func TestRun(t *testing.T) {
	b, _, m := newTestBridge()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- b.Run(ctx) }()

	event := &StatusEvent{}
	require.NoError(t, proto.Unmarshal(m.next(t, "panel/status"), event))
	require.Empty(t, event.Error)
	require.Equal(t, uint32(3), event.Channel)
	require.Contains(t, event.Flags, "stopped")

	data, err := proto.Marshal(&Request{ID: "x", Op: OpPrint})
	require.NoError(t, err)
	require.True(t, m.deliver("panel/cmd", data))
	reply := &Reply{}
	require.NoError(t, proto.Unmarshal(m.next(t, "panel/reply"), reply))
	require.Equal(t, "x", reply.ID)
	require.Empty(t, reply.Error)

	cancel()
	require.Equal(t, context.Canceled, <-errCh)
}
