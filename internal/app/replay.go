package app

import (
	"errors"
	"io"
	"log"

	"github.com/relabs-tech/gesture_engine/internal/config"
	"github.com/relabs-tech/gesture_engine/internal/dispatch"
	"github.com/relabs-tech/gesture_engine/internal/gesture"
	"github.com/relabs-tech/gesture_engine/internal/motion"
)

// RunReplay feeds a recorded motion file through a fresh classifier at
// full speed and prints every emitted event. No broker involved; the
// same file always yields the same sequence, which makes this the tool
// for tuning thresholds against captured streams.
func RunReplay() error {
	cfg := config.Get()

	src, err := motion.NewReplaySource(cfg.ReplayFile)
	if err != nil {
		return err
	}

	cls := gesture.NewClassifier(thresholdsFromConfig(cfg), dispatch.LogSink{})
	defer cls.Stop()

	count := 0
	for {
		reading, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("replay: %v", err)
			continue
		}

		count++
		cls.OnAcceleration(reading.Accel)
		cls.OnAttitude(reading.Attitude)
	}

	// Resolve a trailing lone shake without waiting out the wall-clock
	// debounce window.
	cls.Flush()

	log.Printf("replay: processed %d readings from %s", count, cfg.ReplayFile)
	return nil
}
