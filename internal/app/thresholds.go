package app

import (
	"math"
	"time"

	"github.com/relabs-tech/gesture_engine/internal/config"
	"github.com/relabs-tech/gesture_engine/internal/gesture"
)

// thresholdsFromConfig resolves the configured preset and applies any
// per-key overrides. Overrides left at 0 keep the preset value; config
// angles come in degrees and are converted here.
func thresholdsFromConfig(cfg *config.Config) gesture.Thresholds {
	th := gesture.PresetResponsive()
	if cfg.GesturePreset == "quiet" {
		th = gesture.PresetQuiet()
	}

	if cfg.DropMaxG > 0 {
		th.DropMax = cfg.DropMaxG
	}
	if cfg.ShakeMinDelta > 0 {
		th.ShakeMin = cfg.ShakeMinDelta
	}
	if cfg.HardShakeMinDelta > 0 {
		th.HardShakeMin = cfg.HardShakeMinDelta
	}
	if cfg.DoubleShakeWindowMS > 0 {
		th.DoubleShakeWindow = time.Duration(cfg.DoubleShakeWindowMS) * time.Millisecond
	}
	if cfg.TiltPitchMinDeg > 0 {
		th.TiltPitchMin = cfg.TiltPitchMinDeg * math.Pi / 180
	}
	if cfg.TiltRollMinDeg > 0 {
		th.TiltRollMin = cfg.TiltRollMinDeg * math.Pi / 180
	}
	if cfg.FlipMinDeg > 0 {
		th.FlipMin = cfg.FlipMinDeg * math.Pi / 180
	}
	if cfg.TiltIntervalMS > 0 {
		th.TiltInterval = time.Duration(cfg.TiltIntervalMS) * time.Millisecond
	}
	if cfg.FlipIntervalMS > 0 {
		th.FlipInterval = time.Duration(cfg.FlipIntervalMS) * time.Millisecond
	}
	if cfg.LongPressMS > 0 {
		th.LongPressMin = time.Duration(cfg.LongPressMS) * time.Millisecond
	}

	return th
}
