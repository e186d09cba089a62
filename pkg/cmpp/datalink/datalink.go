package datalink

import (
	"runtime"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/cmpp.go/pkg/cmpp/frame"
)

// ByteSink transmits bytes.
type ByteSink interface {
	// TryTx enqueues one byte for transmission without blocking.
	TryTx(byte) error
}

// ByteSource provides received bytes.
type ByteSource interface {
	// TryRx dequeues one received byte without blocking. ok is false
	// when nothing has been received.
	TryRx() (b byte, ok bool, err error)
}

// Clock provides monotonic time since an arbitrary epoch.
type Clock interface {
	Now() time.Duration
}

// Effects combines all effects required by a Datalink.
type Effects interface {
	ByteSink
	ByteSource
	Clock
}

// Discarder is optionally implemented by a ByteSource to drop stale
// bytes before a new transaction.
type Discarder interface {
	Discard() int
}

// Flusher is optionally implemented by a ByteSink which buffers bytes
// enqueued by TryTx. Flush is called once the whole request is encoded.
type Flusher interface {
	Flush() error
}

// TxFunc is func form of ByteSink.
type TxFunc func(byte) error

// TryTx implements ByteSink.
func (f TxFunc) TryTx(b byte) error { return f(b) }

// RxFunc is func form of ByteSource.
type RxFunc func() (byte, bool, error)

// TryRx implements ByteSource.
func (f RxFunc) TryRx() (byte, bool, error) { return f() }

// ClockFunc is func form of Clock.
type ClockFunc func() time.Duration

// Now implements Clock.
func (f ClockFunc) Now() time.Duration { return f() }

// DefaultTimeout is the default time to wait for a complete reply.
const DefaultTimeout = 500 * time.Millisecond

// Datalink performs transactions with one slave channel.
type Datalink struct {
	Channel Channel
	Timeout time.Duration
	Sink    ByteSink
	Source  ByteSource
	Clock   Clock

	lock sync.Mutex
}

// New creates a Datalink from separate effects.
func New(channel Channel, timeout time.Duration, sink ByteSink, source ByteSource, clock Clock) *Datalink {
	return &Datalink{
		Channel: channel,
		Timeout: timeout,
		Sink:    sink,
		Source:  source,
		Clock:   clock,
	}
}

// NewOver creates a Datalink using one implementation of all effects.
func NewOver(channel Channel, timeout time.Duration, e Effects) *Datalink {
	return New(channel, timeout, e, e, e)
}

// GetWord16 reads the word at addr.
func (d *Datalink) GetWord16(addr WordAddress) (uint16, error) {
	reply, err := d.Transact(DirectionGet, addr, 0)
	if err != nil {
		return 0, err
	}
	return reply.Payload.Word(), nil
}

// SetWord16 writes word at addr.
func (d *Datalink) SetWord16(addr WordAddress, word uint16) (Status, error) {
	return d.write(DirectionSet, addr, word)
}

// SetBitmask sets bits of mask in the word at addr.
func (d *Datalink) SetBitmask(addr WordAddress, mask uint16) (Status, error) {
	return d.write(DirectionSetBitmask, addr, mask)
}

// ResetBitmask clears bits of mask in the word at addr.
func (d *Datalink) ResetBitmask(addr WordAddress, mask uint16) (Status, error) {
	return d.write(DirectionResetBitmask, addr, mask)
}

func (d *Datalink) write(dir Direction, addr WordAddress, data uint16) (Status, error) {
	reply, err := d.Transact(dir, addr, data)
	if err != nil {
		return 0, err
	}
	return Status(reply.Payload[frame.PosDataLow]), nil
}

// Request builds the master frame of a transaction.
func Request(dir Direction, ch Channel, addr WordAddress, data uint16) frame.Frame {
	return frame.New(frame.StartSTX, frame.Payload{
		dir.With(ch),
		byte(addr),
		byte(data),
		byte(data >> 8),
	})
}

// Transact performs one transaction and returns the ACK reply frame.
// A NACK reply is returned as *SlaveError.
func (d *Datalink) Transact(dir Direction, addr WordAddress, data uint16) (frame.Frame, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if discarder, ok := d.Source.(Discarder); ok {
		if n := discarder.Discard(); n > 0 {
			glog.Warningf("channel %d: discarded %d stale bytes", d.Channel, n)
		}
	}

	req := Request(dir, d.Channel, addr, data)
	glog.V(2).Infof("channel %d: TX %v %v %v", d.Channel, dir, addr, req)
	if err := req.Encode(d.Sink.TryTx); err != nil {
		return frame.Frame{}, &SerialTransmissionError{Err: err}
	}
	if flusher, ok := d.Sink.(Flusher); ok {
		if err := flusher.Flush(); err != nil {
			return frame.Frame{}, &SerialTransmissionError{Err: err}
		}
	}

	reply, err := d.receive()
	if err != nil {
		glog.V(2).Infof("channel %d: RX error: %v", d.Channel, err)
		return frame.Frame{}, err
	}
	glog.V(2).Infof("channel %d: RX %v", d.Channel, reply)

	switch reply.Start {
	case frame.StartSTX:
		return reply, ErrSlaveReturnedSTX
	case frame.StartNACK:
		return reply, &SlaveError{
			Code:   ErrorCode(reply.Payload[frame.PosDataLow]),
			Status: Status(reply.Payload[frame.PosDataHigh]),
		}
	}
	return reply, nil
}

func (d *Datalink) receive() (frame.Frame, error) {
	var decoder frame.Decoder
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	start := d.Clock.Now()
	for {
		b, ok, err := d.Source.TryRx()
		if err != nil {
			return frame.Frame{}, &SerialReceptionError{Err: err}
		}
		if ok {
			glog.V(3).Infof("channel %d: RX byte 0x%02x", d.Channel, b)
			f, err := decoder.Parse(b)
			if err != nil {
				return frame.Frame{}, &DecodingError{Err: err}
			}
			if f != nil {
				return *f, nil
			}
		}
		if elapsed := d.Clock.Now() - start; elapsed > timeout {
			return frame.Frame{}, &TimeoutError{Elapsed: elapsed}
		}
		if !ok {
			runtime.Gosched()
		}
	}
}
