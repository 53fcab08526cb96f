// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package motion

import (
	"math"
	"time"
)

type mockSource struct {
	start time.Time
	tick  int
}

// NewMockSource creates a mock motion source that generates smooth
// attitude changes around a resting 1g acceleration, with a short
// burst of shake-sized accelerations every ~9 seconds so shake
// detection has something to chew on without hardware.
func NewMockSource() Source {
	return &mockSource{start: time.Now()}
}

func (m *mockSource) Next() (Reading, error) {
	m.tick++
	elapsed := time.Since(m.start).Seconds()
	now := time.Now()

	accel := Sample{
		Ax:   0.05 * math.Sin(elapsed),
		Ay:   0.05 * math.Cos(elapsed*0.7),
		Az:   1.0 + 0.02*math.Sin(elapsed*1.3),
		Time: now,
	}

	// Shake burst: alternating ±1g ticks, per-step delta around 4, so
	// it lands above the shake floor and below the hard-shake floor.
	// Every other burst runs one step longer, producing a double shake
	// instead of a lone one.
	phase := m.tick % 90
	steps := 2 + (m.tick/90)%2
	if phase < steps {
		sign := float64(1 - 2*(m.tick%2))
		accel.Ax = sign * 1.0
		accel.Ay = -sign * 1.0
	}

	att := Attitude{
		Pitch: 0.35 * math.Sin(elapsed*0.5),
		Roll:  0.25 * math.Cos(elapsed*0.4),
		Yaw:   math.Mod(elapsed*0.5, 2*math.Pi),
		Time:  now,
	}

	return Reading{Accel: accel, Attitude: att}, nil
}
