package gesture

import "time"

// Touch is one raw touch record from the UI layer, suitable for JSON
// and MQTT.
type Touch struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Contacts int     `json:"contacts"`
	// DurationMS is how long the contact lasted, in milliseconds.
	DurationMS int  `json:"duration_ms"`
	Moved      bool `json:"moved"`

	Time time.Time `json:"time"`
}

// ClassifyTouch maps a raw touch to a touched event. Priority:
// multi-touch, then swipe, then long press, then tap.
func ClassifyTouch(t Touch, longPressMin time.Duration) Event {
	kind := TouchTap
	switch {
	case t.Contacts >= 2:
		kind = TouchMultiTouch
	case t.Moved:
		kind = TouchSwipe
	case time.Duration(t.DurationMS)*time.Millisecond >= longPressMin:
		kind = TouchLongPress
	}

	return Event{
		Kind:  KindTouched,
		Touch: kind,
		X:     t.X,
		Y:     t.Y,
		Time:  t.Time,
	}
}
