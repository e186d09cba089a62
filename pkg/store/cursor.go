package store

import (
	"fmt"
	"strconv"
)

// Cursor selects a value in the range [Start, End).
type Cursor struct {
	Current uint8 `yaml:"current"`
	Start   uint8 `yaml:"start"`
	End     uint8 `yaml:"end"`
}

// InvalidCursorError indicates Start <= Current < End doesn't hold.
type InvalidCursorError struct {
	Cursor Cursor
}

// Error implements error.
func (e *InvalidCursorError) Error() string {
	return fmt.Sprintf("invalid cursor %d in [%d, %d)", e.Cursor.Current, e.Cursor.Start, e.Cursor.End)
}

// NewCursor validates and creates a Cursor.
func NewCursor(current, start, end uint8) (Cursor, error) {
	c := Cursor{Current: current, Start: start, End: end}
	return c, c.Validate()
}

// Binary is a cursor over {0, 1}.
func Binary(on bool) Cursor {
	c := Cursor{End: 2}
	if on {
		c.Current = 1
	}
	return c
}

// Validate checks the range invariant.
func (c Cursor) Validate() error {
	if c.Start > c.Current || c.Current >= c.End {
		return &InvalidCursorError{Cursor: c}
	}
	return nil
}

// Set moves the cursor to current.
func (c *Cursor) Set(current uint8) error {
	n := *c
	n.Current = current
	if err := n.Validate(); err != nil {
		return err
	}
	*c = n
	return nil
}

// Next moves forward, wrapping to Start. An empty range is left as is.
func (c *Cursor) Next() {
	if c.Start >= c.End {
		return
	}
	if c.Current+1 >= c.End {
		c.Current = c.Start
	} else {
		c.Current++
	}
}

// Prev moves backward, wrapping to End-1. An empty range is left as is.
func (c *Cursor) Prev() {
	if c.Start >= c.End {
		return
	}
	if c.Current <= c.Start {
		c.Current = c.End - 1
	} else {
		c.Current--
	}
}

// Digits is the number of digits needed to display the end of range.
func (c Cursor) Digits() int {
	return len(strconv.Itoa(int(c.End)))
}

// String implements fmt.Stringer.
func (c Cursor) String() string {
	return fmt.Sprintf("%d[%d,%d)", c.Current, c.Start, c.End)
}
