package tuitest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSettleReturnsOnceStable(t *testing.T) {
	// Screen changes on the first few polls, then stays put.
	changes := 3
	screen := "frame-0"
	pump := func() {
		if changes > 0 {
			changes--
			screen = "frame-" + string(rune('0'+changes))
		}
	}

	start := time.Now()
	settle(pump, func() string { return screen }, 50*time.Millisecond, 2*time.Second)
	elapsed := time.Since(start)

	require.Zero(t, changes, "settle returned before output stopped changing")
	require.Less(t, elapsed, 1*time.Second)
}

func TestSettleHonorsMaxWait(t *testing.T) {
	// Output never stabilizes; the soft cap must end the wait, not an error.
	n := 0
	screen := func() string {
		n++
		return "frame-" + time.Now().String()
	}

	start := time.Now()
	settle(func() {}, screen, 50*time.Millisecond, 150*time.Millisecond)
	elapsed := time.Since(start)

	require.GreaterOrEqual(t, elapsed, 150*time.Millisecond)
	require.Less(t, elapsed, 1*time.Second)
}

func TestPumpForRunsAtLeastDuration(t *testing.T) {
	pumps := 0
	start := time.Now()
	pumpFor(60*time.Millisecond, func() { pumps++ })
	require.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
	require.Greater(t, pumps, 0)
}
