package dispatch

import (
	"log"

	"github.com/relabs-tech/gesture_engine/internal/gesture"
)

// LogSink prints gesture events to the process log. Used by replay and
// as the fallback when no broker is configured.
type LogSink struct{}

func (LogSink) Emit(ev gesture.Event) {
	switch ev.Kind {
	case gesture.KindTilted:
		log.Printf("[GESTURE] %s %s", ev.Kind, ev.Direction)
	case gesture.KindTouched:
		log.Printf("[GESTURE] %s %s at (%.1f, %.1f)", ev.Kind, ev.Touch, ev.X, ev.Y)
	default:
		log.Printf("[GESTURE] %s", ev.Kind)
	}
}

// MultiSink fans one event out to several sinks in order.
type MultiSink []gesture.Sink

func (m MultiSink) Emit(ev gesture.Event) {
	for _, s := range m {
		s.Emit(ev)
	}
}
