package store

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
)

// Visitor receives the fields of a record in declaration order.
type Visitor interface {
	Word(name string, v *uint16)
	Cursor(name string, c *Cursor)
}

// Record is a signature-guarded block of fields persisted in EEPROM.
type Record interface {
	Signature() uint16
	Visit(v Visitor)
	Reset()
}

// SignatureError indicates the EEPROM doesn't hold the expected record,
// even after defaults were written.
type SignatureError struct {
	Addr     int
	Expected uint16
	Found    uint16
}

// Error implements error.
func (e *SignatureError) Error() string {
	return fmt.Sprintf("EEPROM address %d: expect signature 0x%04x, found 0x%04x", e.Addr, e.Expected, e.Found)
}

// Size is the number of bytes a record occupies, signature included.
func Size(rec Record) int {
	var c sizeCounter
	rec.Visit(&c)
	return 2 + int(c)
}

type sizeCounter int

func (c *sizeCounter) Word(string, *uint16)   { *c += 2 }
func (c *sizeCounter) Cursor(string, *Cursor) { *c += 3 }

type writer struct {
	dev  EEPROM
	addr int
	err  error
}

func (w *writer) put(bs ...byte) {
	for _, b := range bs {
		if w.err != nil {
			return
		}
		w.err = w.dev.SetByte(w.addr, b)
		w.addr++
	}
}

func (w *writer) Word(_ string, v *uint16) {
	w.put(byte(*v), byte(*v>>8))
}

func (w *writer) Cursor(_ string, c *Cursor) {
	w.put(c.Current, c.Start, c.End)
}

type reader struct {
	dev  EEPROM
	addr int
	err  error
}

func (r *reader) get() byte {
	if r.err != nil {
		return 0
	}
	var b byte
	b, r.err = r.dev.ByteAt(r.addr)
	r.addr++
	return b
}

func (r *reader) word() uint16 {
	lo := r.get()
	return uint16(r.get())<<8 | uint16(lo)
}

func (r *reader) Word(_ string, v *uint16) {
	if w := r.word(); r.err == nil {
		*v = w
	}
}

func (r *reader) Cursor(name string, c *Cursor) {
	current, start, end := r.get(), r.get(), r.get()
	if r.err != nil {
		return
	}
	loaded, err := NewCursor(current, start, end)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", name, err)
		return
	}
	*c = loaded
}

// Save writes rec at addr. It returns the address following the record
// and the number of bytes written.
func Save(dev EEPROM, addr int, rec Record) (next, size int, err error) {
	w := &writer{dev: dev, addr: addr}
	sig := rec.Signature()
	w.put(byte(sig), byte(sig>>8))
	rec.Visit(w)
	return w.addr, w.addr - addr, w.err
}

// Load reads rec from addr. When the signature doesn't match or a cursor
// is out of range, rec is reset to defaults which are saved and loaded
// back once.
func Load(dev EEPROM, addr int, rec Record) (next, size int, err error) {
	next, size, err = load(dev, addr, rec)
	if !recoverable(err) {
		return
	}
	glog.Warningf("EEPROM: %v, writing defaults", err)
	rec.Reset()
	if _, _, err = Save(dev, addr, rec); err != nil {
		return addr, 0, err
	}
	return load(dev, addr, rec)
}

func load(dev EEPROM, addr int, rec Record) (int, int, error) {
	r := &reader{dev: dev, addr: addr}
	sig := r.word()
	if r.err != nil {
		return addr, 0, r.err
	}
	if sig != rec.Signature() {
		return addr, 0, &SignatureError{Addr: addr, Expected: rec.Signature(), Found: sig}
	}
	rec.Visit(r)
	return r.addr, r.addr - addr, r.err
}

// recoverable reports whether a load failure is fixed by writing defaults.
func recoverable(err error) bool {
	var sigErr *SignatureError
	var curErr *InvalidCursorError
	return errors.As(err, &sigErr) || errors.As(err, &curErr)
}
