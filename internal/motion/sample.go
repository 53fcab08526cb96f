package motion

import "time"

// Sample represents a single instant's linear acceleration in g units.
type Sample struct {
	Ax float64 `json:"ax"`
	Ay float64 `json:"ay"`
	Az float64 `json:"az"`

	Time time.Time `json:"time"`
}

// Attitude represents device orientation as pitch/roll/yaw in radians.
type Attitude struct {
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
	Yaw   float64 `json:"yaw"`

	Time time.Time `json:"time"`
}

// Reading is one fused motion read: acceleration and attitude captured
// together from the same device state.
type Reading struct {
	Accel    Sample   `json:"accel"`
	Attitude Attitude `json:"attitude"`
}

// Source is anything that can provide motion readings over time.
// Implementations: real IMU, serial board, replay from file, mock.
// A source that has no more data returns io.EOF.
type Source interface {
	Next() (Reading, error)
}
