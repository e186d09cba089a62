package datalink

import (
	"fmt"
	"strings"
)

// MaxChannel is the exclusive upper bound of channel numbers.
const MaxChannel = 64

// MaxWordAddress is the largest word address.
const MaxWordAddress = 0x7f

// Channel addresses a slave on the bus, in [0, 64).
type Channel uint8

// NewChannel validates n and creates a Channel.
func NewChannel(n int) (Channel, error) {
	if n < 0 || n >= MaxChannel {
		return 0, &InvalidChannelError{N: n}
	}
	return Channel(n), nil
}

// MustChannel is NewChannel which panics on invalid n.
func MustChannel(n int) Channel {
	ch, err := NewChannel(n)
	if err != nil {
		panic(err)
	}
	return ch
}

// WordAddress is the 7-bit index of a 16-bit device register.
type WordAddress uint8

// NewWordAddress validates n and creates a WordAddress.
func NewWordAddress(n int) (WordAddress, error) {
	if n < 0 || n > MaxWordAddress {
		return 0, &InvalidWordAddressError{N: n}
	}
	return WordAddress(n), nil
}

// String implements fmt.Stringer.
func (a WordAddress) String() string {
	return fmt.Sprintf("0x%02x", uint8(a))
}

// Direction is carried in the top two bits of payload byte 0.
type Direction byte

// Directions.
const (
	// DirectionGet reads a word.
	DirectionGet Direction = 0x00
	// DirectionResetBitmask clears the mask bits of a word.
	DirectionResetBitmask Direction = 0x40
	// DirectionSetBitmask sets the mask bits of a word.
	DirectionSetBitmask Direction = 0x80
	// DirectionSet writes a word.
	DirectionSet Direction = 0xC0
)

const (
	directionMask = 0xC0
	channelMask   = 0x3F
)

// DirectionOf extracts Direction from payload byte 0.
func DirectionOf(b byte) Direction {
	return Direction(b & directionMask)
}

// ChannelOf extracts Channel from payload byte 0.
func ChannelOf(b byte) Channel {
	return Channel(b & channelMask)
}

// With combines direction with channel into payload byte 0.
func (d Direction) With(ch Channel) byte {
	return byte(d)&directionMask | byte(ch)&channelMask
}

// IsWrite indicates the slave replies with a status instead of a word.
func (d Direction) IsWrite() bool {
	return d != DirectionGet
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case DirectionGet:
		return "get"
	case DirectionResetBitmask:
		return "reset-bitmask"
	case DirectionSetBitmask:
		return "set-bitmask"
	case DirectionSet:
		return "set"
	}
	return fmt.Sprintf("direction(0x%02x)", byte(d))
}

// Status is the slave state byte.
type Status byte

// Status bits.
const (
	StatusReferenced          Status = 1 << 0
	StatusLastPositionReached Status = 1 << 1
	StatusReferencing         Status = 1 << 2
	StatusPositiveDirection   Status = 1 << 3
	StatusAccelerating        Status = 1 << 4
	StatusDecelerating        Status = 1 << 5
	StatusReserved            Status = 1 << 6
	StatusErrorEvent          Status = 1 << 7
)

// IsReferenced indicates the axis has a valid reference.
func (s Status) IsReferenced() bool { return s&StatusReferenced != 0 }

// LastPositionReached indicates the last commanded position was reached.
func (s Status) LastPositionReached() bool { return s&StatusLastPositionReached != 0 }

// IsReferencing indicates a reference cycle is running.
func (s Status) IsReferencing() bool { return s&StatusReferencing != 0 }

// PositiveDirection indicates the axis moves in positive direction.
func (s Status) PositiveDirection() bool { return s&StatusPositiveDirection != 0 }

// Accelerating indicates the axis is accelerating.
func (s Status) Accelerating() bool { return s&StatusAccelerating != 0 }

// Decelerating indicates the axis is decelerating.
func (s Status) Decelerating() bool { return s&StatusDecelerating != 0 }

// HasErrorEvent indicates the slave recorded an error event.
func (s Status) HasErrorEvent() bool { return s&StatusErrorEvent != 0 }

// IsChangingVelocity indicates the axis is accelerating or decelerating.
func (s Status) IsChangingVelocity() bool {
	return s.Accelerating() || s.Decelerating()
}

// IsStopped indicates the motion has ended: the last position is reached
// and velocity is not changing.
func (s Status) IsStopped() bool {
	return s.LastPositionReached() && !s.IsChangingVelocity()
}

// IsInConstantVelocity indicates the axis is moving without acceleration.
func (s Status) IsInConstantVelocity() bool {
	return !s.LastPositionReached() && !s.IsChangingVelocity()
}

var statusNames = []string{
	"referenced",
	"position-reached",
	"referencing",
	"positive",
	"accelerating",
	"decelerating",
	"reserved",
	"error-event",
}

// String implements fmt.Stringer.
func (s Status) String() string {
	var names []string
	for n, name := range statusNames {
		if s&(1<<uint(n)) != 0 {
			names = append(names, name)
		}
	}
	return fmt.Sprintf("0x%02x[%s]", byte(s), strings.Join(names, ","))
}

// ErrorCode is reported by a slave in a NACK reply. Codes unknown to this
// package are kept as received.
type ErrorCode byte

// Known error codes.
const (
	ErrorCodeInvalidStartByte       ErrorCode = 0x01
	ErrorCodeMissingEtx             ErrorCode = 0x02
	ErrorCodeInvalidPacketLength    ErrorCode = 0x03
	ErrorCodeUnexpectedByteAfterEsc ErrorCode = 0x04
	ErrorCodeFramingError           ErrorCode = 0x05
	ErrorCodeOverrun                ErrorCode = 0x06
	ErrorCodeReceiveBufferFull      ErrorCode = 0x07
	ErrorCodeInvalidChecksum        ErrorCode = 0x08
	ErrorCodeInvalidWordAddress     ErrorCode = 0x09
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCodeInvalidStartByte:       "invalid start byte",
	ErrorCodeMissingEtx:             "missing ETX",
	ErrorCodeInvalidPacketLength:    "invalid packet length",
	ErrorCodeUnexpectedByteAfterEsc: "unexpected byte after ESC",
	ErrorCodeFramingError:           "framing error",
	ErrorCodeOverrun:                "overrun",
	ErrorCodeReceiveBufferFull:      "receive buffer full",
	ErrorCodeInvalidChecksum:        "invalid checksum",
	ErrorCodeInvalidWordAddress:     "invalid word address",
}

// IsKnown indicates the code is one of the known codes.
func (c ErrorCode) IsKnown() bool {
	_, ok := errorCodeNames[c]
	return ok
}

// String implements fmt.Stringer.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("unknown error code 0x%02x", byte(c))
}
