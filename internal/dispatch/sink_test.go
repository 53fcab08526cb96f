package dispatch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/gesture_engine/internal/dispatch"
	"github.com/relabs-tech/gesture_engine/internal/gesture"
)

type captureSink struct {
	events []gesture.Event
}

func (s *captureSink) Emit(ev gesture.Event) {
	s.events = append(s.events, ev)
}

func TestMultiSinkFansOutInOrder(t *testing.T) {
	a := &captureSink{}
	b := &captureSink{}
	multi := dispatch.MultiSink{a, b}

	ev := gesture.Event{Kind: gesture.KindShaken, Time: time.Now()}
	multi.Emit(ev)

	require.Equal(t, []gesture.Event{ev}, a.events)
	require.Equal(t, []gesture.Event{ev}, b.events)
}

func TestMultiSinkEmpty(t *testing.T) {
	require.NotPanics(t, func() {
		dispatch.MultiSink{}.Emit(gesture.Event{Kind: gesture.KindDropped})
	})
}
