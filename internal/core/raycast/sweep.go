package raycast

import (
	"fmt"
	"math"
)

// Sweep selects how a ray index is turned into an angle
type Sweep int

const (
	// SweepRadians feeds the integer index straight into cos/sin as radians.
	// Indices 0..359 wind around the circle about 57 times, so the fan is uneven.
	// This is the classic look of the light field and stays the default.
	SweepRadians Sweep = iota
	// SweepDegrees treats the index as degrees: 360 rays give one ray per degree
	SweepDegrees
)

// Angle returns the angle in radians of ray i
func (s Sweep) Angle(i int) float64 {
	switch s {
	case SweepDegrees:
		return float64(i) * math.Pi / 180
	default:
		return float64(i)
	}
}

// Valid reports whether s is a known sweep mode
func (s Sweep) Valid() bool {
	return s == SweepRadians || s == SweepDegrees
}

// Next returns the other sweep mode
func (s Sweep) Next() Sweep {
	if s == SweepRadians {
		return SweepDegrees
	}
	return SweepRadians
}

// String returns the sweep's config name
func (s Sweep) String() string {
	switch s {
	case SweepRadians:
		return "radians"
	case SweepDegrees:
		return "degrees"
	default:
		return fmt.Sprintf("Sweep(%d)", int(s))
	}
}

// ParseSweep converts a config name to a Sweep
func ParseSweep(name string) (Sweep, error) {
	switch name {
	case "radians", "":
		return SweepRadians, nil
	case "degrees":
		return SweepDegrees, nil
	default:
		return 0, fmt.Errorf("unknown sweep mode %q (want \"radians\" or \"degrees\")", name)
	}
}
