package store

import (
	"fmt"
	"strconv"

	"github.com/robotalks/cmpp.go/pkg/cmpp/transport"
)

// UnknownFieldError indicates a field name not in the record.
type UnknownFieldError struct {
	Name string
}

// Error implements error.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Name)
}

// Field points to a field of a record. Exactly one of Word and Cursor is
// set.
type Field struct {
	Name   string
	Word   *uint16
	Cursor *Cursor
}

// Param finds the device parameter of the same name.
func (f Field) Param() (transport.ParamID, bool) {
	return transport.Lookup(f.Name)
}

// Value is the field as an integer: the word or the cursor position.
func (f Field) Value() int64 {
	if f.Word != nil {
		return int64(*f.Word)
	}
	return int64(f.Cursor.Current)
}

// String formats the value, naming bit values of device flags.
func (f Field) String() string {
	if f.Word != nil {
		return strconv.Itoa(int(*f.Word))
	}
	if id, ok := f.Param(); ok && id.Param().Location == transport.LocationBit && f.Cursor.End == 2 {
		return id.Param().Kind.Format(f.Cursor.Current != 0)
	}
	return strconv.Itoa(int(f.Cursor.Current))
}

// Parse sets the field from text accepted by String.
func (f Field) Parse(s string) error {
	if f.Word != nil {
		v, err := strconv.ParseUint(s, 0, 16)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		*f.Word = uint16(v)
		return nil
	}
	if id, ok := f.Param(); ok && id.Param().Location == transport.LocationBit && f.Cursor.End == 2 {
		bit, err := id.Param().Kind.Parse(s)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		*f.Cursor = Binary(bit)
		return nil
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	return f.Cursor.Set(uint8(v))
}

type fieldCollector []Field

func (c *fieldCollector) Word(name string, v *uint16) {
	*c = append(*c, Field{Name: name, Word: v})
}

func (c *fieldCollector) Cursor(name string, cur *Cursor) {
	*c = append(*c, Field{Name: name, Cursor: cur})
}

// Fields lists the fields of rec in declaration order.
func Fields(rec Record) []Field {
	var c fieldCollector
	rec.Visit(&c)
	return c
}

// FieldByName finds a field of rec.
func FieldByName(rec Record, name string) (Field, error) {
	for _, f := range Fields(rec) {
		if f.Name == name {
			return f, nil
		}
	}
	return Field{}, &UnknownFieldError{Name: name}
}

// SetField parses value into the named field of rec.
func SetField(rec Record, name, value string) error {
	f, err := FieldByName(rec, name)
	if err != nil {
		return err
	}
	return f.Parse(value)
}
