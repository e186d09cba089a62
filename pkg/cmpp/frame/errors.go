package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrBufferOverflow indicates more than four payload bytes were received.
	ErrBufferOverflow = errors.New("payload buffer overflow")
	// ErrShortPayload indicates ETX arrived before four payload bytes.
	ErrShortPayload = errors.New("payload shorter than 4 bytes")
	// ErrChecksumIsEscButNotDuplicated indicates a single ESC was received
	// in the checksum position without its duplicate.
	ErrChecksumIsEscButNotDuplicated = errors.New("checksum is ESC but not duplicated")
)

// InvalidStartByteError reports a start byte other than STX, ACK or NACK.
type InvalidStartByteError struct {
	Byte byte
}

// Error implements error.
func (e *InvalidStartByteError) Error() string {
	return fmt.Sprintf("invalid start byte 0x%02x", e.Byte)
}

// UnexpectedByteError reports a byte following ESC that is neither ETX
// nor a duplicated ESC.
type UnexpectedByteError struct {
	Byte byte
}

// Error implements error.
func (e *UnexpectedByteError) Error() string {
	return fmt.Sprintf("expected ETX or duplicated ESC but found 0x%02x", e.Byte)
}

// ChecksumError reports a checksum mismatch.
type ChecksumError struct {
	Expected byte
	Received byte
}

// Error implements error.
func (e *ChecksumError) Error() string {
	return fmt.Sprintf("invalid checksum: expected 0x%02x, received 0x%02x", e.Expected, e.Received)
}
