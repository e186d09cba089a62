package slave

import (
	"errors"
	"sync"
	"time"

	"github.com/robotalks/cmpp.go/pkg/cmpp/frame"
)

// DefaultTick is the simulated time spent by an idle TryRx.
const DefaultTick = time.Millisecond

// ErrInjectedTx is returned by TryTx when a transmission fault is injected.
var ErrInjectedTx = errors.New("injected transmission failure")

// Device connects a Slave directly to a datalink as its effects.
// Time is simulated: it advances by Tick on every TryRx finding no byte.
type Device struct {
	Slave *Slave
	Tick  time.Duration
	// Mute drops all replies.
	Mute bool
	// ReplyHook may alter a reply before it is sent.
	ReplyHook func(req, reply frame.Frame) frame.Frame

	decoder  frame.Decoder
	rx       []byte
	now      time.Duration
	started  int
	failAt   int
	failErr  error
	requests []frame.Frame
	lock     sync.Mutex
}

// NewDevice creates a Device.
func NewDevice(s *Slave) *Device {
	return &Device{Slave: s, Tick: DefaultTick}
}

// FailTxFrom makes TryTx fail with err starting from the n-th request
// frame (1-based). A nil err uses ErrInjectedTx.
func (d *Device) FailTxFrom(n int, err error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if err == nil {
		err = ErrInjectedTx
	}
	d.failAt, d.failErr = n, err
}

// Inject queues raw bytes for the master to receive.
func (d *Device) Inject(data ...byte) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.rx = append(d.rx, data...)
}

// Requests returns the frames received so far.
func (d *Device) Requests() []frame.Frame {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]frame.Frame(nil), d.requests...)
}

// TryTx implements datalink.ByteSink.
func (d *Device) TryTx(b byte) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if !d.decoder.InProgress() {
		d.started++
	}
	if d.failAt > 0 && d.started >= d.failAt {
		d.decoder.Reset()
		return d.failErr
	}
	f, err := d.decoder.Parse(b)
	if err != nil {
		if !d.Mute {
			d.rx = append(d.rx, d.Slave.HandleDecodeError(err).Bytes()...)
		}
		return nil
	}
	if f == nil {
		return nil
	}
	d.requests = append(d.requests, *f)
	reply, ok := d.Slave.Handle(*f)
	if !ok || d.Mute {
		return nil
	}
	if d.ReplyHook != nil {
		reply = d.ReplyHook(*f, reply)
	}
	d.rx = append(d.rx, reply.Bytes()...)
	return nil
}

// TryRx implements datalink.ByteSource.
func (d *Device) TryRx() (byte, bool, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if len(d.rx) == 0 {
		d.now += d.Tick
		return 0, false, nil
	}
	b := d.rx[0]
	d.rx = d.rx[1:]
	return b, true, nil
}

// Now implements datalink.Clock.
func (d *Device) Now() time.Duration {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.now
}

// Advance moves the simulated clock forward.
func (d *Device) Advance(t time.Duration) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.now += t
}
