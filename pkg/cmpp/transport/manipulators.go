package transport

import (
	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
)

// WordManipulator accesses a parameter occupying a whole word.
type WordManipulator struct {
	t *TransportLayer
	p *Param
}

// Param returns the table entry.
func (m WordManipulator) Param() *Param { return m.p }

// Get reads the value in user units.
func (m WordManipulator) Get() (int64, error) {
	w, err := m.t.getWord(m.p.Addr)
	if err != nil {
		return 0, err
	}
	return m.p.Dimension.FromDevice(m.t.Mechanics, w), nil
}

// Set writes the value in user units.
func (m WordManipulator) Set(value int64) (datalink.Status, error) {
	if m.p.ReadOnly {
		return 0, ErrReadOnly
	}
	w, err := m.p.Dimension.ToDevice(m.t.Mechanics, value)
	if err != nil {
		return 0, err
	}
	return m.t.setWord(m.p.Addr, w)
}

// ByteManipulator accesses a parameter in the low or high byte of a word.
// Writes preserve the other byte.
type ByteManipulator struct {
	t *TransportLayer
	p *Param
}

// Param returns the table entry.
func (m ByteManipulator) Param() *Param { return m.p }

func (m ByteManipulator) shift() uint {
	if m.p.Location == LocationByteHigh {
		return 8
	}
	return 0
}

// Get reads the byte.
func (m ByteManipulator) Get() (uint8, error) {
	w, err := m.t.getWord(m.p.Addr)
	if err != nil {
		return 0, err
	}
	return uint8(w >> m.shift()), nil
}

// Set replaces the byte using read-modify-write.
func (m ByteManipulator) Set(value uint8) (datalink.Status, error) {
	w, err := m.t.getWord(m.p.Addr)
	if err != nil {
		return 0, err
	}
	w = w&^m.p.Mask() | uint16(value)<<m.shift()
	return m.t.setWord(m.p.Addr, w)
}

// BinaryManipulator accesses a single bit. Writes use bitmask directions
// so the other bits are untouched.
type BinaryManipulator struct {
	t *TransportLayer
	p *Param
}

// Param returns the table entry.
func (m BinaryManipulator) Param() *Param { return m.p }

// Get reads the bit.
func (m BinaryManipulator) Get() (bool, error) {
	w, err := m.t.getWord(m.p.Addr)
	if err != nil {
		return false, err
	}
	return w&m.p.Mask() != 0, nil
}

// Set sets or clears the bit.
func (m BinaryManipulator) Set(bit bool) (datalink.Status, error) {
	return m.t.setBits(m.p.Addr, m.p.Mask(), bit)
}

// Activation reads the bit as an ActivationState.
func (m BinaryManipulator) Activation() (ActivationState, error) {
	bit, err := m.Get()
	return ActivationState(bit), err
}

// SetActivation writes an ActivationState.
func (m BinaryManipulator) SetActivation(s ActivationState) (datalink.Status, error) {
	return m.Set(bool(s))
}

// SignalLogic reads the bit as a SignalLogic.
func (m BinaryManipulator) SignalLogic() (SignalLogic, error) {
	bit, err := m.Get()
	return SignalLogic(bit), err
}

// SetSignalLogic writes a SignalLogic.
func (m BinaryManipulator) SetSignalLogic(l SignalLogic) (datalink.Status, error) {
	return m.Set(bool(l))
}

// AxisMode reads the bit as an AxisMode.
func (m BinaryManipulator) AxisMode() (AxisMode, error) {
	bit, err := m.Get()
	return AxisMode(bit), err
}

// SetAxisMode writes an AxisMode.
func (m BinaryManipulator) SetAxisMode(mode AxisMode) (datalink.Status, error) {
	return m.Set(bool(mode))
}
