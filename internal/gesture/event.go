package gesture

import "time"

// Kind identifies a discrete gesture derived from the sensor stream.
type Kind string

const (
	KindDropped      Kind = "dropped"
	KindShaken       Kind = "shaken"
	KindDoubleShaken Kind = "double_shaken"
	KindHardShaken   Kind = "hard_shaken"
	KindFlipped      Kind = "flipped"
	KindTilted       Kind = "tilted"
	KindTouched      Kind = "touched"
)

// Direction is the tilt direction reported with KindTilted.
type Direction string

const (
	DirForward  Direction = "forward"
	DirBackward Direction = "backward"
	DirLeft     Direction = "left"
	DirRight    Direction = "right"
	// DirTilted is the defensive default when no axis rule matches.
	DirTilted Direction = "tilted"
)

// TouchKind classifies a raw touch reported with KindTouched.
type TouchKind string

const (
	TouchTap        TouchKind = "tap"
	TouchLongPress  TouchKind = "long_press"
	TouchSwipe      TouchKind = "swipe"
	TouchMultiTouch TouchKind = "multi_touch"
)

// Event is a single semantic gesture suitable for JSON and MQTT.
// Direction is set only for tilts, Touch/X/Y only for touches.
type Event struct {
	Kind      Kind      `json:"kind"`
	Direction Direction `json:"direction,omitempty"`
	Touch     TouchKind `json:"touch,omitempty"`
	X         float64   `json:"x,omitempty"`
	Y         float64   `json:"y,omitempty"`

	Time time.Time `json:"time"`
}

// Sink receives classified gesture events. Delivery failures are the
// sink's problem: it may log and drop, but it must not block for long
// and it must not report back to the classifier.
type Sink interface {
	Emit(ev Event)
}
