package frame

import (
	"fmt"
	"io"
)

// Reserved byte values of the framing.
const (
	ESC  byte = 0x1B
	STX  byte = 0x02
	ACK  byte = 0x06
	NACK byte = 0x15
	ETX  byte = 0x03
)

// PayloadSize is the fixed number of payload bytes in a frame.
const PayloadSize = 4

// Payload byte positions.
const (
	PosDirectionAndChannel = iota
	PosWordAddress
	PosDataLow
	PosDataHigh
)

// MaxEncodedSize is the length of a frame with every payload byte and the
// checksum stuffed.
const MaxEncodedSize = 2 + 2*PayloadSize + 2 + 2

// StartByte identifies who originated a frame.
type StartByte byte

// Start bytes.
const (
	// StartSTX is sent by a master.
	StartSTX = StartByte(STX)
	// StartACK is a positive reply from a slave.
	StartACK = StartByte(ACK)
	// StartNACK is a negative reply from a slave.
	StartNACK = StartByte(NACK)
)

// IsValid checks if it's one of STX, ACK and NACK.
func (s StartByte) IsValid() bool {
	return s == StartSTX || s == StartACK || s == StartNACK
}

// String implements fmt.Stringer.
func (s StartByte) String() string {
	switch s {
	case StartSTX:
		return "STX"
	case StartACK:
		return "ACK"
	case StartNACK:
		return "NACK"
	}
	return fmt.Sprintf("0x%02x", byte(s))
}

// Payload is the four data bytes of a frame.
type Payload [PayloadSize]byte

// Word returns data bytes as a 16-bit word.
func (p Payload) Word() uint16 {
	return uint16(p[PosDataHigh])<<8 | uint16(p[PosDataLow])
}

// Frame contains the information of a parsed or to-be-sent frame.
type Frame struct {
	Start   StartByte
	Payload Payload
}

// New creates a frame.
func New(start StartByte, payload Payload) Frame {
	return Frame{Start: start, Payload: payload}
}

// Checksum calculates the checksum byte. It is chosen so that
// start + sum(payload) + ETX + checksum is zero modulo 256.
func Checksum(start StartByte, payload Payload) byte {
	sum := byte(start) + ETX
	for _, b := range payload {
		sum += b
	}
	return -sum
}

// Checksum returns the checksum of the frame.
func (f Frame) Checksum() byte {
	return Checksum(f.Start, f.Payload)
}

// Encode emits encoded bytes one at a time. It stops on the first error
// returned by emit.
func (f Frame) Encode(emit func(byte) error) error {
	if err := emit(ESC); err != nil {
		return err
	}
	if err := emit(byte(f.Start)); err != nil {
		return err
	}
	for _, b := range f.Payload {
		if err := emitStuffed(emit, b); err != nil {
			return err
		}
	}
	if err := emit(ESC); err != nil {
		return err
	}
	if err := emit(ETX); err != nil {
		return err
	}
	return emitStuffed(emit, f.Checksum())
}

func emitStuffed(emit func(byte) error, b byte) error {
	if b == ESC {
		if err := emit(ESC); err != nil {
			return err
		}
	}
	return emit(b)
}

// Bytes returns encoded bytes for sending.
func (f Frame) Bytes() []byte {
	b := make([]byte, 0, MaxEncodedSize)
	f.Encode(func(v byte) error {
		b = append(b, v)
		return nil
	})
	return b
}

// WriteTo writes encoded bytes.
func (f Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}

// String implements fmt.Stringer.
func (f Frame) String() string {
	return fmt.Sprintf("%s [% x]", f.Start, f.Payload[:])
}
