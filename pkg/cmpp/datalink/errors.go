package datalink

import (
	"errors"
	"fmt"
	"time"
)

// ErrSlaveReturnedSTX indicates a slave replied with the master start byte.
var ErrSlaveReturnedSTX = errors.New("slave has returned start byte equals to STX")

// InvalidChannelError reports a channel out of [0, 64).
type InvalidChannelError struct {
	N int
}

// Error implements error.
func (e *InvalidChannelError) Error() string {
	return fmt.Sprintf("invalid channel %d", e.N)
}

// InvalidWordAddressError reports a word address out of [0, 127].
type InvalidWordAddressError struct {
	N int
}

// Error implements error.
func (e *InvalidWordAddressError) Error() string {
	return fmt.Sprintf("invalid word address %d", e.N)
}

// SerialTransmissionError wraps an error from ByteSink.
type SerialTransmissionError struct {
	Err error
}

// Error implements error.
func (e *SerialTransmissionError) Error() string {
	return fmt.Sprintf("serial transmission error: %v", e.Err)
}

// Unwrap returns the wrapped error.
func (e *SerialTransmissionError) Unwrap() error { return e.Err }

// SerialReceptionError wraps an error from ByteSource.
type SerialReceptionError struct {
	Err error
}

// Error implements error.
func (e *SerialReceptionError) Error() string {
	return fmt.Sprintf("serial reception error: %v", e.Err)
}

// Unwrap returns the wrapped error.
func (e *SerialReceptionError) Unwrap() error { return e.Err }

// TimeoutError indicates no complete reply within the timeout.
type TimeoutError struct {
	Elapsed time.Duration
}

// Error implements error.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout after %v", e.Elapsed)
}

// Timeout reports true so it can be checked like net errors.
func (e *TimeoutError) Timeout() bool { return true }

// DecodingError wraps a frame decoder error on the reply.
type DecodingError struct {
	Err error
}

// Error implements error.
func (e *DecodingError) Error() string {
	return fmt.Sprintf("decoding error: %v", e.Err)
}

// Unwrap returns the wrapped error.
func (e *DecodingError) Unwrap() error { return e.Err }

// SlaveError is a NACK reply. It is not a link failure.
type SlaveError struct {
	Code   ErrorCode
	Status Status
}

// Error implements error.
func (e *SlaveError) Error() string {
	return fmt.Sprintf("slave replied error: %v, status %v", e.Code, e.Status)
}

// IsLinkError indicates err is a failure of the link rather than a NACK
// from the slave.
func IsLinkError(err error) bool {
	if err == nil {
		return false
	}
	var slaveErr *SlaveError
	return !errors.As(err, &slaveErr)
}
