package transport

import (
	"fmt"
	"strings"
)

// BitKind is the meaning of a single-bit parameter.
type BitKind int

// Bit kinds.
const (
	KindActivation BitKind = iota
	KindSignalLogic
	KindAxisMode
)

// ActivationState is a bit enabling a function.
type ActivationState bool

// Activation states.
const (
	Deactivated ActivationState = false
	Activated   ActivationState = true
)

// String implements fmt.Stringer.
func (s ActivationState) String() string {
	if s {
		return "ligado"
	}
	return "desligado"
}

// SignalLogic is the active level of an input or output signal.
type SignalLogic bool

// Signal logics.
const (
	SignalOpen   SignalLogic = false
	SignalClosed SignalLogic = true
)

// String implements fmt.Stringer.
func (l SignalLogic) String() string {
	if l {
		return "fechado"
	}
	return "aberto"
}

// AxisMode selects continuous or step-by-step movement.
type AxisMode bool

// Axis modes.
const (
	AxisContinuous AxisMode = false
	AxisStepByStep AxisMode = true
)

// String implements fmt.Stringer.
func (m AxisMode) String() string {
	if m {
		return "passo_a_passo"
	}
	return "continuo"
}

// Values lists the names of a bit kind, indexed by bit value.
func (k BitKind) Values() [2]string {
	switch k {
	case KindSignalLogic:
		return [2]string{SignalOpen.String(), SignalClosed.String()}
	case KindAxisMode:
		return [2]string{AxisContinuous.String(), AxisStepByStep.String()}
	}
	return [2]string{Deactivated.String(), Activated.String()}
}

// Format names a bit value.
func (k BitKind) Format(bit bool) string {
	values := k.Values()
	if bit {
		return values[1]
	}
	return values[0]
}

// Parse accepts a name of the kind, or a boolean/number literal.
func (k BitKind) Parse(s string) (bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	values := k.Values()
	switch s {
	case values[0], "0", "false", "off":
		return false, nil
	case values[1], "1", "true", "on":
		return true, nil
	}
	return false, fmt.Errorf("invalid value %q, expect %s or %s", s, values[0], values[1])
}
