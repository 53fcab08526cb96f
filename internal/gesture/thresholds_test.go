package gesture_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/gesture_engine/internal/gesture"
)

func TestPresetsShareShakeNumbers(t *testing.T) {
	r := gesture.PresetResponsive()
	q := gesture.PresetQuiet()

	require.Equal(t, r.DropMax, q.DropMax)
	require.Equal(t, r.ShakeMin, q.ShakeMin)
	require.Equal(t, r.HardShakeMin, q.HardShakeMin)
	require.Equal(t, r.DoubleShakeWindow, q.DoubleShakeWindow)
	require.Equal(t, r.LongPressMin, q.LongPressMin)
}

func TestPresetResponsive(t *testing.T) {
	th := gesture.PresetResponsive()

	require.InDelta(t, 45*math.Pi/180, th.TiltPitchMin, 1e-12)
	require.InDelta(t, 45*math.Pi/180, th.TiltRollMin, 1e-12)
	require.InDelta(t, 160*math.Pi/180, th.FlipMin, 1e-12)
	require.Zero(t, th.TiltInterval)
	require.Zero(t, th.FlipInterval)
	require.False(t, th.RequireNewTiltDirection)
}

func TestPresetQuiet(t *testing.T) {
	th := gesture.PresetQuiet()

	require.Equal(t, 1.2, th.TiltPitchMin)
	require.Equal(t, 1.5, th.TiltRollMin)
	require.Equal(t, 3.0, th.FlipMin)
	require.Equal(t, 5*time.Second, th.TiltInterval)
	require.Equal(t, 10*time.Second, th.FlipInterval)
	require.True(t, th.RequireNewTiltDirection)
}
