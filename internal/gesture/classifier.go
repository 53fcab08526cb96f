// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package gesture

import (
	"math"
	"sync"
	"time"

	"github.com/relabs-tech/gesture_engine/internal/motion"
)

// Classifier converts raw motion samples into semantic gesture events,
// debouncing so a continuous physical motion does not flood the sink.
//
// Samples are expected to arrive serially from one producer loop; the
// single debounce timer fires on its own goroutine, so one mutex
// guards all state. All time comparisons use the timestamps carried by
// the samples themselves: two fresh classifiers fed the same recorded
// stream emit the same event sequence.
type Classifier struct {
	mu   sync.Mutex
	th   Thresholds
	sink Sink

	havePrev bool
	prev     motion.Sample

	shakeCount int
	shakeAt    time.Time
	timer      *time.Timer
	timerGen   int

	lastTiltAt  time.Time
	lastFlipAt  time.Time
	hasTilted   bool
	lastTiltDir Direction
	hasFlipped  bool

	stopped bool
}

// NewClassifier creates a classifier with the given thresholds that
// emits into sink.
func NewClassifier(th Thresholds, sink Sink) *Classifier {
	return &Classifier{th: th, sink: sink}
}

// OnAcceleration processes one acceleration sample: free-fall check
// first, then delta-based shake detection against the previous sample.
// The sample is stored as the new previous sample unconditionally.
func (c *Classifier) OnAcceleration(s motion.Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}

	m := math.Sqrt(s.Ax*s.Ax + s.Ay*s.Ay + s.Az*s.Az)
	if m < c.th.DropMax {
		// Near-zero net acceleration reads as free fall. This fires
		// for any weightless interval, not only an actual drop; known
		// imprecision of the heuristic.
		c.sink.Emit(Event{Kind: KindDropped, Time: s.Time})
		c.prev, c.havePrev = s, true
		return
	}

	if c.havePrev {
		delta := math.Abs(s.Ax-c.prev.Ax) + math.Abs(s.Ay-c.prev.Ay) + math.Abs(s.Az-c.prev.Az)
		switch {
		case delta > c.th.HardShakeMin:
			// Independent path: no single/double bookkeeping.
			c.sink.Emit(Event{Kind: KindHardShaken, Time: s.Time})
		case delta > c.th.ShakeMin:
			c.candidateShake(s.Time)
		}
	}

	c.prev, c.havePrev = s, true
}

// candidateShake advances the single/double shake machine. Caller
// holds c.mu.
func (c *Classifier) candidateShake(t time.Time) {
	if !c.shakeAt.IsZero() && t.Sub(c.shakeAt) < c.th.DoubleShakeWindow {
		c.shakeCount++
		if c.shakeCount >= 2 {
			c.sink.Emit(Event{Kind: KindDoubleShaken, Time: t})
			c.resetShake()
			return
		}
	} else {
		if c.shakeCount == 1 {
			// The earlier candidate's window already closed in sample
			// time but the wall-clock timer has not fired yet. Happens
			// when a recorded stream is fed faster than real time;
			// resolve the lone shake before starting over.
			c.sink.Emit(Event{Kind: KindShaken, Time: c.shakeAt.Add(c.th.DoubleShakeWindow)})
		}
		c.shakeCount = 1
		c.shakeAt = t
	}

	// (Re)start the debounce timer, last writer wins. The generation
	// counter invalidates a timer whose Stop raced with its firing.
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timerGen++
	gen := c.timerGen
	c.timer = time.AfterFunc(c.th.DoubleShakeWindow, func() { c.expireShake(gen) })
}

// expireShake runs when the debounce window closes with no second
// shake: a lone candidate becomes Shaken, then the machine idles.
func (c *Classifier) expireShake(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || gen != c.timerGen {
		return
	}
	if c.shakeCount == 1 {
		c.sink.Emit(Event{Kind: KindShaken, Time: c.shakeAt.Add(c.th.DoubleShakeWindow)})
	}
	c.resetShake()
}

func (c *Classifier) resetShake() {
	c.shakeCount = 0
	c.shakeAt = time.Time{}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGen++
}

// OnAttitude processes one attitude sample. The flip check runs before
// the tilt check, so an angle past both breakpoints is a flip.
func (c *Classifier) OnAttitude(a motion.Attitude) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}

	if math.Abs(a.Roll) > c.th.FlipMin || math.Abs(a.Pitch) > c.th.FlipMin {
		if !c.hasFlipped || c.th.FlipInterval == 0 || a.Time.Sub(c.lastFlipAt) >= c.th.FlipInterval {
			c.sink.Emit(Event{Kind: KindFlipped, Time: a.Time})
			c.lastFlipAt = a.Time
			c.hasFlipped = true
		}
		return
	}

	if math.Abs(a.Pitch) > c.th.TiltPitchMin || math.Abs(a.Roll) > c.th.TiltRollMin {
		dir := tiltDirection(a.Pitch, a.Roll, c.th)
		if c.hasTilted {
			if c.th.TiltInterval > 0 && a.Time.Sub(c.lastTiltAt) < c.th.TiltInterval {
				return
			}
			if c.th.RequireNewTiltDirection && dir == c.lastTiltDir {
				return
			}
		}
		c.sink.Emit(Event{Kind: KindTilted, Direction: dir, Time: a.Time})
		// Direction changes only on emission, never on a suppressed
		// detection.
		c.lastTiltAt = a.Time
		c.lastTiltDir = dir
		c.hasTilted = true
	}
}

// tiltDirection picks the direction by first matching rule in priority
// order. The fallback is unreachable given the caller's guard but is
// kept as the defensive default.
func tiltDirection(pitch, roll float64, th Thresholds) Direction {
	switch {
	case pitch > th.TiltPitchMin:
		return DirForward
	case pitch < -th.TiltPitchMin:
		return DirBackward
	case roll > th.TiltRollMin:
		return DirRight
	case roll < -th.TiltRollMin:
		return DirLeft
	default:
		return DirTilted
	}
}

// OnTouch classifies one raw touch and emits it. Stateless, no
// debounce.
func (c *Classifier) OnTouch(t Touch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.sink.Emit(ClassifyTouch(t, c.th.LongPressMin))
}

// Flush resolves a pending lone shake immediately instead of waiting
// for the debounce timer. Used by replay, where the recorded stream
// ends before the wall-clock window would close; a candidate overtaken
// mid-stream is resolved inline by the shake machine, so Flush only
// ever covers the final one.
func (c *Classifier) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	if c.shakeCount == 1 {
		c.sink.Emit(Event{Kind: KindShaken, Time: c.shakeAt.Add(c.th.DoubleShakeWindow)})
	}
	c.resetShake()
}

// Stop cancels any pending debounce timer and discards pending shake
// state. No event is emitted after Stop returns.
func (c *Classifier) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.resetShake()
}
