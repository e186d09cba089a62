package transport

import (
	"fmt"
	"math"
)

const (
	// TimeScale is the device time unit in microseconds.
	TimeScale = 1024
	// DisplacementOffset is the device word for position zero.
	DisplacementOffset = 512
)

// MechanicalProperties describes the drive of an axis.
type MechanicalProperties struct {
	PulsesPerRevolution      uint16 `json:"pulses_per_revolution" yaml:"pulses_per_revolution"`
	DisplacementPerToothX100 uint16 `json:"displacement_per_tooth_x100" yaml:"displacement_per_tooth_x100"`
	Teeth                    uint16 `json:"teeth" yaml:"teeth"`
}

// DefaultMechanicalProperties are the factory drive settings.
var DefaultMechanicalProperties = MechanicalProperties{
	PulsesPerRevolution:      400,
	DisplacementPerToothX100: 508,
	Teeth:                    16,
}

// PulsesPerMmX100 is the number of motor pulses per 100mm of travel.
// Zero if the properties are incomplete.
func (m MechanicalProperties) PulsesPerMmX100() int64 {
	den := int64(m.Teeth) * int64(m.DisplacementPerToothX100)
	if den == 0 {
		return 0
	}
	return int64(m.PulsesPerRevolution) * 100000 / den
}

// Dimension is the physical unit of a parameter.
type Dimension int

// Dimensions.
const (
	Adimensional Dimension = iota
	Displacement
	Velocity
	Acceleration
	Time
	Binary
)

var dimensionNames = []string{"adimensional", "mm", "mm/s", "mm/s2", "ms", "bit"}

// String implements fmt.Stringer.
func (d Dimension) String() string {
	if d >= 0 && int(d) < len(dimensionNames) {
		return dimensionNames[d]
	}
	return fmt.Sprintf("dimension(%d)", int(d))
}

// OutOfRangeError indicates a user value can't be represented by a
// device word.
type OutOfRangeError struct {
	Value     int64
	Dimension Dimension
}

// Error implements error.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("value %d %v out of device range", e.Value, e.Dimension)
}

// ToDevice converts a user value into a device word.
func (d Dimension) ToDevice(mp MechanicalProperties, user int64) (uint16, error) {
	f := mp.PulsesPerMmX100()
	var w int64
	switch d {
	case Displacement:
		w = user*f/100 + DisplacementOffset
	case Velocity:
		w = user * f * 10 / TimeScale
	case Acceleration:
		w = user * f * 10 * 1000 / (TimeScale * TimeScale)
	case Time:
		w = user * 1000 / TimeScale
	case Binary:
		if user != 0 {
			w = 1
		}
	default:
		w = user
	}
	if w < 0 || w > math.MaxUint16 {
		return 0, &OutOfRangeError{Value: user, Dimension: d}
	}
	return uint16(w), nil
}

// FromDevice converts a device word into a user value.
func (d Dimension) FromDevice(mp MechanicalProperties, word uint16) int64 {
	f, w := mp.PulsesPerMmX100(), int64(word)
	switch d {
	case Displacement:
		if f == 0 {
			return 0
		}
		return (w - DisplacementOffset) * 100 / f
	case Velocity:
		if f == 0 {
			return 0
		}
		return w * TimeScale / (f * 10)
	case Acceleration:
		if f == 0 {
			return 0
		}
		return w * TimeScale * TimeScale / (f * 10 * 1000)
	case Time:
		return w * TimeScale / 1000
	case Binary:
		if w != 0 {
			return 1
		}
		return 0
	}
	return w
}
