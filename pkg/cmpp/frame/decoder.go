package frame

import (
	"errors"
	"io"
)

type decodeState int

const (
	stateWaitingFirstEsc  decodeState = iota // any byte is taken as the leading ESC
	stateWaitingStartByte                    // waiting STX, ACK or NACK
	stateReceivingData                       // receiving (stuffed) payload
	stateWaitingChecksum                     // ESC ETX seen, waiting checksum
)

// Decoder parses received bytes one at a time.
// The zero value is ready to use.
type Decoder struct {
	state      decodeState
	start      StartByte
	payload    Payload
	recvLen    int
	lastWasEsc bool
}

// Reset resets the internal state of decoder.
func (d *Decoder) Reset() {
	*d = Decoder{}
}

// InProgress indicates the decoder is in the middle of a frame.
func (d *Decoder) InProgress() bool {
	return d.state != stateWaitingFirstEsc
}

// Parse consumes one byte. It returns a frame when one is completed, nil
// and nil when more bytes are needed, or an error. The decoder resets after
// a completed frame or an error.
func (d *Decoder) Parse(b byte) (*Frame, error) {
	frame, err := d.parseByte(b)
	if frame != nil || err != nil {
		d.Reset()
	}
	return frame, err
}

func (d *Decoder) parseByte(b byte) (*Frame, error) {
	switch d.state {
	case stateWaitingFirstEsc:
		d.state = stateWaitingStartByte
	case stateWaitingStartByte:
		start := StartByte(b)
		if !start.IsValid() {
			return nil, &InvalidStartByteError{Byte: b}
		}
		d.start, d.state = start, stateReceivingData
	case stateReceivingData:
		if d.lastWasEsc {
			d.lastWasEsc = false
			switch b {
			case ESC:
				return nil, d.store(ESC)
			case ETX:
				if d.recvLen != PayloadSize {
					return nil, ErrShortPayload
				}
				d.state = stateWaitingChecksum
				return nil, nil
			}
			return nil, &UnexpectedByteError{Byte: b}
		}
		if b == ESC {
			d.lastWasEsc = true
			return nil, nil
		}
		return nil, d.store(b)
	case stateWaitingChecksum:
		expected := Checksum(d.start, d.payload)
		if d.lastWasEsc {
			if b != ESC {
				return nil, ErrChecksumIsEscButNotDuplicated
			}
			return d.complete(expected, b)
		}
		if b == ESC {
			if expected != ESC {
				return nil, ErrChecksumIsEscButNotDuplicated
			}
			d.lastWasEsc = true
			return nil, nil
		}
		return d.complete(expected, b)
	}
	return nil, nil
}

func (d *Decoder) store(b byte) error {
	if d.recvLen >= PayloadSize {
		return ErrBufferOverflow
	}
	d.payload[d.recvLen] = b
	d.recvLen++
	return nil
}

func (d *Decoder) complete(expected, received byte) (*Frame, error) {
	if expected != received {
		return nil, &ChecksumError{Expected: expected, Received: received}
	}
	return &Frame{Start: d.start, Payload: d.payload}, nil
}

// ErrTrailingBytes indicates extra bytes after a complete frame.
var ErrTrailingBytes = errors.New("trailing bytes after frame")

// Decode decodes exactly one frame from encoded bytes.
func Decode(encoded []byte) (Frame, error) {
	var d Decoder
	for n, b := range encoded {
		f, err := d.Parse(b)
		if err != nil {
			return Frame{}, err
		}
		if f != nil {
			if n+1 < len(encoded) {
				return *f, ErrTrailingBytes
			}
			return *f, nil
		}
	}
	return Frame{}, io.ErrUnexpectedEOF
}
