// Package slave emulates a CMPP motion controller.
//
// The emulation keeps a 128-word register file and a status byte, answers
// master frames like the real device and supports fault injection. It is
// used by tests of the upper layers and by the sim:// link.
package slave

import (
	"errors"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
	"github.com/robotalks/cmpp.go/pkg/cmpp/frame"
)

// RegisterCount is the number of words in the register file.
const RegisterCount = datalink.MaxWordAddress + 1

// WriteHook is called after a write direction changed a register.
// It runs with the slave locked and may use the Regs accessors.
type WriteHook func(r *Regs, addr datalink.WordAddress, old, value uint16)

// Slave is an emulated motion controller.
type Slave struct {
	Channel datalink.Channel

	regs  Regs
	hooks []WriteHook
	nacks map[datalink.WordAddress]datalink.ErrorCode
	lock  sync.Mutex
}

// Regs is the register file and status of a Slave.
type Regs struct {
	Words  [RegisterCount]uint16
	Status datalink.Status
}

// New creates a Slave answering on ch.
func New(ch datalink.Channel) *Slave {
	return &Slave{
		Channel: ch,
		nacks:   make(map[datalink.WordAddress]datalink.ErrorCode),
	}
}

// OnWrite installs a hook.
func (s *Slave) OnWrite(hook WriteHook) *Slave {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.hooks = append(s.hooks, hook)
	return s
}

// Register reads a register.
func (s *Slave) Register(addr datalink.WordAddress) uint16 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.regs.Words[addr]
}

// SetRegister writes a register without running hooks.
func (s *Slave) SetRegister(addr datalink.WordAddress, value uint16) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.regs.Words[addr] = value
}

// Status gets the status byte.
func (s *Slave) Status() datalink.Status {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.regs.Status
}

// SetStatus sets the status byte.
func (s *Slave) SetStatus(status datalink.Status) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.regs.Status = status
}

// FailWith makes every request on addr answered by a NACK with code.
func (s *Slave) FailWith(addr datalink.WordAddress, code datalink.ErrorCode) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.nacks[addr] = code
}

// ClearFailures removes all injected NACKs.
func (s *Slave) ClearFailures() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.nacks = make(map[datalink.WordAddress]datalink.ErrorCode)
}

// Handle processes a request frame. ok is false when the request is not
// addressed to this slave and must not be answered.
func (s *Slave) Handle(req frame.Frame) (reply frame.Frame, ok bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	b0 := req.Payload[frame.PosDirectionAndChannel]
	if datalink.ChannelOf(b0) != s.Channel {
		return frame.Frame{}, false
	}
	if req.Start != frame.StartSTX {
		return s.nack(b0, req, datalink.ErrorCodeInvalidStartByte), true
	}
	raw := req.Payload[frame.PosWordAddress]
	if int(raw) > datalink.MaxWordAddress {
		return s.nack(b0, req, datalink.ErrorCodeInvalidWordAddress), true
	}
	addr := datalink.WordAddress(raw)
	if code, exists := s.nacks[addr]; exists {
		return s.nack(b0, req, code), true
	}

	dir, data := datalink.DirectionOf(b0), req.Payload.Word()
	if dir == datalink.DirectionGet {
		word := s.regs.Words[addr]
		return frame.New(frame.StartACK, frame.Payload{b0, raw, byte(word), byte(word >> 8)}), true
	}

	old := s.regs.Words[addr]
	value := old
	switch dir {
	case datalink.DirectionSet:
		value = data
	case datalink.DirectionSetBitmask:
		value |= data
	case datalink.DirectionResetBitmask:
		value &^= data
	}
	s.regs.Words[addr] = value
	for _, hook := range s.hooks {
		hook(&s.regs, addr, old, value)
	}
	glog.V(2).Infof("slave %d: %v %v: 0x%04x -> 0x%04x", s.Channel, dir, addr, old, value)
	return frame.New(frame.StartACK, frame.Payload{b0, raw, byte(s.regs.Status), 0}), true
}

func (s *Slave) nack(b0 byte, req frame.Frame, code datalink.ErrorCode) frame.Frame {
	return frame.New(frame.StartNACK, frame.Payload{
		b0,
		req.Payload[frame.PosWordAddress],
		byte(code),
		byte(s.regs.Status),
	})
}

// HandleDecodeError builds the NACK a real slave sends for a malformed
// request.
func (s *Slave) HandleDecodeError(err error) frame.Frame {
	s.lock.Lock()
	defer s.lock.Unlock()
	return frame.New(frame.StartNACK, frame.Payload{
		datalink.DirectionGet.With(s.Channel),
		0,
		byte(ErrorCodeOf(err)),
		byte(s.regs.Status),
	})
}

// ErrorCodeOf maps a decoder error to the code a slave reports.
func ErrorCodeOf(err error) datalink.ErrorCode {
	var (
		startErr    *frame.InvalidStartByteError
		unexpected  *frame.UnexpectedByteError
		checksumErr *frame.ChecksumError
	)
	switch {
	case errors.As(err, &startErr):
		return datalink.ErrorCodeInvalidStartByte
	case errors.As(err, &unexpected):
		return datalink.ErrorCodeUnexpectedByteAfterEsc
	case errors.As(err, &checksumErr), errors.Is(err, frame.ErrChecksumIsEscButNotDuplicated):
		return datalink.ErrorCodeInvalidChecksum
	case errors.Is(err, frame.ErrBufferOverflow), errors.Is(err, frame.ErrShortPayload):
		return datalink.ErrorCodeInvalidPacketLength
	}
	return datalink.ErrorCodeFramingError
}
