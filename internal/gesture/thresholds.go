package gesture

import (
	"math"
	"time"
)

// Thresholds holds every numeric knob of the classifier. Angles are in
// radians, accelerations in g. Read-only for a classifier's lifetime.
type Thresholds struct {
	// DropMax is the acceleration magnitude ceiling below which the
	// device is considered in free fall.
	DropMax float64

	// ShakeMin and HardShakeMin are floors on the summed per-axis
	// absolute delta between two consecutive samples.
	ShakeMin     float64
	HardShakeMin float64

	// DoubleShakeWindow is both the double-shake pairing window and
	// the single-shake debounce interval.
	DoubleShakeWindow time.Duration

	// Tilt/flip breakpoints. Flip is checked before tilt.
	TiltPitchMin float64
	TiltRollMin  float64
	FlipMin      float64

	// Minimum interval between two tilt (resp. flip) emissions.
	// Zero disables the interval check.
	TiltInterval time.Duration
	FlipInterval time.Duration

	// RequireNewTiltDirection suppresses a tilt whose direction equals
	// the previously emitted one.
	RequireNewTiltDirection bool

	// LongPressMin is the touch duration floor for a long press.
	LongPressMin time.Duration
}

// PresetResponsive fires eagerly: 45°/160° breakpoints, no minimum
// interval between orientation events, direction repeats allowed.
func PresetResponsive() Thresholds {
	return Thresholds{
		DropMax:           0.1,
		ShakeMin:          3.0,
		HardShakeMin:      5.0,
		DoubleShakeWindow: time.Second,
		TiltPitchMin:      45 * math.Pi / 180,
		TiltRollMin:       45 * math.Pi / 180,
		FlipMin:           160 * math.Pi / 180,
		LongPressMin:      500 * time.Millisecond,
	}
}

// PresetQuiet trades latency for silence: steeper breakpoints, long
// minimum intervals, and a tilt only re-fires in a new direction.
func PresetQuiet() Thresholds {
	return Thresholds{
		DropMax:                 0.1,
		ShakeMin:                3.0,
		HardShakeMin:            5.0,
		DoubleShakeWindow:       time.Second,
		TiltPitchMin:            1.2,
		TiltRollMin:             1.5,
		FlipMin:                 3.0,
		TiltInterval:            5 * time.Second,
		FlipInterval:            10 * time.Second,
		RequireNewTiltDirection: true,
		LongPressMin:            500 * time.Millisecond,
	}
}
