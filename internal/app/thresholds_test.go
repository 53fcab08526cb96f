package app

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/gesture_engine/internal/config"
	"github.com/relabs-tech/gesture_engine/internal/gesture"
)

func TestThresholdsFromConfigDefaultsToResponsive(t *testing.T) {
	th := thresholdsFromConfig(&config.Config{})
	require.Equal(t, gesture.PresetResponsive(), th)
}

func TestThresholdsFromConfigQuietPreset(t *testing.T) {
	th := thresholdsFromConfig(&config.Config{GesturePreset: "quiet"})
	require.Equal(t, gesture.PresetQuiet(), th)
}

func TestThresholdsFromConfigOverrides(t *testing.T) {
	cfg := &config.Config{
		GesturePreset:       "quiet",
		DropMaxG:            0.2,
		ShakeMinDelta:       2.5,
		DoubleShakeWindowMS: 750,
		TiltPitchMinDeg:     30,
		FlipMinDeg:          150,
		TiltIntervalMS:      2000,
		LongPressMS:         400,
	}

	th := thresholdsFromConfig(cfg)

	require.Equal(t, 0.2, th.DropMax)
	require.Equal(t, 2.5, th.ShakeMin)
	require.Equal(t, 750*time.Millisecond, th.DoubleShakeWindow)
	require.InDelta(t, 30*math.Pi/180, th.TiltPitchMin, 1e-12)
	require.InDelta(t, 150*math.Pi/180, th.FlipMin, 1e-12)
	require.Equal(t, 2*time.Second, th.TiltInterval)
	require.Equal(t, 400*time.Millisecond, th.LongPressMin)

	// Untouched keys keep the preset values.
	quiet := gesture.PresetQuiet()
	require.Equal(t, quiet.HardShakeMin, th.HardShakeMin)
	require.Equal(t, quiet.TiltRollMin, th.TiltRollMin)
	require.Equal(t, quiet.FlipInterval, th.FlipInterval)
	require.True(t, th.RequireNewTiltDirection)
}
