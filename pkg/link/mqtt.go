package link

import (
	"io"
	"net/url"
	"sync"

	"github.com/robotalks/cmpp.go/pkg/bridge"
)

// Topics of a serial stream tunneled over MQTT, relative to the prefix
// in the URL. A gateway beside the panel publishes the bytes it receives
// on TopicRx and writes those on TopicTx to the serial port.
const (
	TopicRx = "rx"
	TopicTx = "tx"
)

// MQTTConn is a byte stream carried by MQTT messages.
type MQTTConn struct {
	Messenger bridge.Messenger

	sub     io.Closer
	closers []io.Closer
	lock    sync.Mutex
	cond    *sync.Cond
	buf     []byte
	closed  bool
}

// NewMQTTConn subscribes TopicRx and buffers the received bytes.
func NewMQTTConn(m bridge.Messenger) (*MQTTConn, error) {
	c := &MQTTConn{Messenger: m}
	c.cond = sync.NewCond(&c.lock)
	sub, err := m.Subscribe(TopicRx, c.receive)
	if err != nil {
		return nil, err
	}
	c.sub = sub
	return c, nil
}

func (c *MQTTConn) receive(_ string, payload []byte) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if !c.closed {
		c.buf = append(c.buf, payload...)
		c.cond.Broadcast()
	}
}

// Read implements io.Reader. It blocks until bytes arrive or the
// connection is closed.
func (c *MQTTConn) Read(p []byte) (int, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for len(c.buf) == 0 && !c.closed {
		c.cond.Wait()
	}
	if len(c.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	return n, nil
}

// Write implements io.Writer. Each write is one message.
func (c *MQTTConn) Write(p []byte) (int, error) {
	c.lock.Lock()
	closed := c.closed
	c.lock.Unlock()
	if closed {
		return 0, io.ErrClosedPipe
	}
	if err := c.Messenger.Publish(TopicTx, append([]byte(nil), p...)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close implements io.Closer.
func (c *MQTTConn) Close() error {
	c.lock.Lock()
	if c.closed {
		c.lock.Unlock()
		return nil
	}
	c.closed = true
	c.cond.Broadcast()
	c.lock.Unlock()
	err := c.sub.Close()
	for _, closer := range c.closers {
		closer.Close()
	}
	return err
}

func openMQTT(u *url.URL) (*Link, error) {
	queue, err := bridge.NewQueueFromURL(u.String(), "")
	if err != nil {
		return nil, err
	}
	if err := queue.Connect(); err != nil {
		return nil, err
	}
	conn, err := NewMQTTConn(queue)
	if err != nil {
		queue.Close()
		return nil, err
	}
	conn.closers = append(conn.closers, queue)
	return &Link{ReadWriteCloser: conn}, nil
}
