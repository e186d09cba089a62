package datalink

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultBufferSize is the default capacity of the receive buffer.
const DefaultBufferSize = 64

// Port adapts an io.ReadWriter (serial port, websocket, emulated slave)
// into Datalink effects. Received bytes are pumped into a bounded buffer
// by Run, the way the panel timer tick moves UART bytes into RAM.
type Port struct {
	ReadWriter  io.ReadWriter
	ReadTimeout bool // set to true if ReadWriter already supports timeout with Read

	rxCh  chan byte
	errCh chan error
	epoch time.Time

	writeLock sync.Mutex
	txBuf     []byte
}

// NewPort creates a Port with a receive buffer of DefaultBufferSize.
func NewPort(rw io.ReadWriter) *Port {
	return NewPortWithBuffer(rw, DefaultBufferSize)
}

// NewPortWithBuffer creates a Port with specified receive buffer size.
func NewPortWithBuffer(rw io.ReadWriter, size int) *Port {
	return &Port{
		ReadWriter: rw,
		rxCh:       make(chan byte, size),
		errCh:      make(chan error, 1),
		epoch:      time.Now(),
	}
}

// TryTx implements ByteSink. The byte is buffered until Flush.
func (p *Port) TryTx(b byte) error {
	p.writeLock.Lock()
	defer p.writeLock.Unlock()
	p.txBuf = append(p.txBuf, b)
	return nil
}

// Flush implements Flusher, writing all buffered bytes at once.
func (p *Port) Flush() error {
	p.writeLock.Lock()
	defer p.writeLock.Unlock()
	if len(p.txBuf) == 0 {
		return nil
	}
	_, err := p.ReadWriter.Write(p.txBuf)
	p.txBuf = p.txBuf[:0]
	return err
}

// TryRx implements ByteSource.
func (p *Port) TryRx() (byte, bool, error) {
	select {
	case b := <-p.rxCh:
		return b, true, nil
	default:
	}
	select {
	case err := <-p.errCh:
		return 0, false, err
	default:
		return 0, false, nil
	}
}

// Now implements Clock.
func (p *Port) Now() time.Duration {
	return time.Since(p.epoch)
}

// Discard implements Discarder.
func (p *Port) Discard() (n int) {
	for {
		select {
		case <-p.rxCh:
			n++
		default:
			return
		}
	}
}

// Run pumps received bytes until ctx is done or reading fails.
func (p *Port) Run(ctx context.Context) error {
	if p.ReadTimeout {
		buf := make([]byte, DefaultBufferSize)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			n, err := p.ReadWriter.Read(buf)
			if err != nil && !os.IsTimeout(err) && err != io.EOF {
				p.fail(err)
				return err
			}
			for _, b := range buf[:n] {
				if err := p.push(ctx, b); err != nil {
					return err
				}
			}
		}
	}

	byteCh, errCh := make(chan []byte), make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go p.readLoop(subCtx, byteCh, errCh)
	for {
		select {
		case bs := <-byteCh:
			for _, b := range bs {
				if err := p.push(ctx, b); err != nil {
					return err
				}
			}
		case err := <-errCh:
			p.fail(err)
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *Port) readLoop(ctx context.Context, byteCh chan []byte, errCh chan error) {
	buf := make([]byte, DefaultBufferSize)
	for {
		n, err := p.ReadWriter.Read(buf)
		if err != nil {
			errCh <- err
			return
		}
		if n == 0 {
			continue
		}
		received := make([]byte, n)
		copy(received, buf[:n])
		select {
		case byteCh <- received:
		case <-ctx.Done():
			return
		}
	}
}

func (p *Port) push(ctx context.Context, b byte) error {
	glog.V(3).Infof("port: received 0x%02x", b)
	select {
	case p.rxCh <- b:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Port) fail(err error) {
	glog.Errorf("port: read error: %v", err)
	select {
	case p.errCh <- err:
	default:
	}
}
