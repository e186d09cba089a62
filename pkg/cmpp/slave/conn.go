package slave

import (
	"io"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
	"github.com/robotalks/cmpp.go/pkg/cmpp/frame"
)

// Conn exposes one or more slaves sharing a bus as a byte stream.
// Written bytes are requests, replies are available for Read.
type Conn struct {
	slaves  []*Slave
	decoder frame.Decoder
	buf     []byte
	closed  bool
	cond    *sync.Cond
	lock    sync.Mutex
}

// NewConn creates a Conn with slaves on the bus.
func NewConn(slaves ...*Slave) *Conn {
	c := &Conn{slaves: slaves}
	c.cond = sync.NewCond(&c.lock)
	return c
}

// Write implements io.Writer.
func (c *Conn) Write(p []byte) (int, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return 0, io.ErrClosedPipe
	}
	for _, b := range p {
		f, err := c.decoder.Parse(b)
		if err != nil {
			glog.Warningf("sim: malformed request: %v", err)
			continue
		}
		if f == nil {
			continue
		}
		for _, s := range c.slaves {
			if reply, ok := s.Handle(*f); ok {
				c.buf = append(c.buf, reply.Bytes()...)
			}
		}
	}
	c.cond.Broadcast()
	return len(p), nil
}

// Read implements io.Reader. It blocks until a reply is available.
func (c *Conn) Read(p []byte) (int, error) {
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

// Close implements io.Closer.
func (c *Conn) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.closed = true
	c.cond.Broadcast()
	return nil
}

// Slave finds the slave answering on ch.
func (c *Conn) Slave(ch datalink.Channel) *Slave {
	for _, s := range c.slaves {
		if s.Channel == ch {
			return s
		}
	}
	return nil
}
