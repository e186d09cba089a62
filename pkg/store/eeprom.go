package store

import (
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	// DefaultSize is the capacity of the panel EEPROM.
	DefaultSize = 256
	// Erased is the value of a never-written byte.
	Erased = 0xff
)

// EEPROM is byte addressable persistent storage. Implementations
// serialize their own accesses.
type EEPROM interface {
	ByteAt(addr int) (byte, error)
	SetByte(addr int, b byte) error
	Size() int
}

// OutOfRangeAddressError indicates an access beyond the device.
type OutOfRangeAddressError struct {
	Addr int
	Size int
}

// Error implements error.
func (e *OutOfRangeAddressError) Error() string {
	return fmt.Sprintf("EEPROM address %d out of range [0, %d)", e.Addr, e.Size)
}

func checkAddr(addr, size int) error {
	if addr < 0 || addr >= size {
		return &OutOfRangeAddressError{Addr: addr, Size: size}
	}
	return nil
}

// Memory is an EEPROM in RAM.
type Memory struct {
	data []byte
	lock sync.Mutex
}

// NewMemory creates an erased Memory of size bytes.
func NewMemory(size int) *Memory {
	return &Memory{data: erased(size)}
}

func erased(size int) []byte {
	data := make([]byte, size)
	for n := range data {
		data[n] = Erased
	}
	return data
}

// ByteAt implements EEPROM.
func (m *Memory) ByteAt(addr int) (byte, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if err := checkAddr(addr, len(m.data)); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

// SetByte implements EEPROM.
func (m *Memory) SetByte(addr int, b byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if err := checkAddr(addr, len(m.data)); err != nil {
		return err
	}
	m.data[addr] = b
	return nil
}

// Size implements EEPROM.
func (m *Memory) Size() int {
	return len(m.data)
}

// Bytes returns a copy of the content.
func (m *Memory) Bytes() []byte {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]byte(nil), m.data...)
}

// File is an EEPROM image file. Writes go through to the file.
type File struct {
	Memory
	file *os.File
}

// OpenFile opens or creates an image of DefaultSize bytes at path.
func OpenFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	ef := &File{file: f}
	ef.data = erased(DefaultSize)
	n, err := io.ReadFull(f, ef.data)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		f.Close()
		return nil, err
	}
	if n < len(ef.data) {
		if _, err := f.WriteAt(ef.data[n:], int64(n)); err != nil {
			f.Close()
			return nil, err
		}
	}
	return ef, nil
}

// SetByte implements EEPROM.
func (f *File) SetByte(addr int, b byte) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := checkAddr(addr, len(f.data)); err != nil {
		return err
	}
	if _, err := f.file.WriteAt([]byte{b}, int64(addr)); err != nil {
		return err
	}
	f.data[addr] = b
	return nil
}

// Close closes the image file.
func (f *File) Close() error {
	return f.file.Close()
}
