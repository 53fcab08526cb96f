package motion_test

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/gesture_engine/internal/motion"
)

func writeReplayFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "motion.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReplaySource(t *testing.T) {
	path := writeReplayFile(t, `
# captured on the bench
{"accel":{"ax":0.1,"ay":0.2,"az":1.0,"time":"2026-08-01T12:00:00Z"},"attitude":{"pitch":0.5,"roll":-0.2,"yaw":0,"time":"2026-08-01T12:00:00Z"}}

{"accel":{"ax":0,"ay":0,"az":0.05,"time":"2026-08-01T12:00:00.1Z"},"attitude":{"pitch":0,"roll":0,"yaw":0,"time":"2026-08-01T12:00:00.1Z"}}
`)

	src, err := motion.NewReplaySource(path)
	require.NoError(t, err)

	first, err := src.Next()
	require.NoError(t, err)
	require.Equal(t, 0.1, first.Accel.Ax)
	require.Equal(t, 0.5, first.Attitude.Pitch)

	second, err := src.Next()
	require.NoError(t, err)
	require.Equal(t, 0.05, second.Accel.Az)

	_, err = src.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReplaySourceMalformedLine(t *testing.T) {
	path := writeReplayFile(t, "{not json}\n")

	src, err := motion.NewReplaySource(path)
	require.NoError(t, err)

	_, err = src.Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "replay line 1")
}

func TestReplaySourceMissingFile(t *testing.T) {
	_, err := motion.NewReplaySource("/nonexistent/motion.jsonl")
	require.Error(t, err)
}

func TestMockSourceProducesFiniteReadings(t *testing.T) {
	src := motion.NewMockSource()

	for i := 0; i < 5; i++ {
		r, err := src.Next()
		require.NoError(t, err)
		require.False(t, r.Accel.Time.IsZero())
		require.False(t, r.Attitude.Time.IsZero())
	}
}

func TestMockSourceBurstsStayInShakeBand(t *testing.T) {
	src := motion.NewMockSource()
	prev, err := src.Next()
	require.NoError(t, err)

	sawShake := false
	for i := 0; i < 300; i++ {
		r, err := src.Next()
		require.NoError(t, err)
		delta := math.Abs(r.Accel.Ax-prev.Accel.Ax) +
			math.Abs(r.Accel.Ay-prev.Accel.Ay) +
			math.Abs(r.Accel.Az-prev.Accel.Az)
		require.Less(t, delta, 5.0, "burst delta must stay below the hard-shake floor")
		if delta > 3.0 {
			sawShake = true
		}
		prev = r
	}
	require.True(t, sawShake, "bursts never reached the shake floor")
}
