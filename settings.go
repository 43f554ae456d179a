package tuitest

import (
	"os"
	"strconv"
	"time"
)

// Environment variables that override the built-in defaults, so a CI run can
// loosen timings without touching test code.
const (
	EnvSettleTimeout = "TUITEST_SETTLE_TIMEOUT_MS"
	EnvMaxWait       = "TUITEST_MAX_WAIT_MS"
	EnvDumpOnFailure = "TUITEST_DUMP_ON_FAILURE"
)

// Settings carries the timing and debugging knobs shared by every asserter.
type Settings struct {
	// SettleTimeout is how long the rendered screen must stay unchanged
	// before the session counts as settled.
	SettleTimeout time.Duration

	// MaxWait caps a settle wait. Reaching it is not an error; the caller's
	// next assertion decides whether anything actually went wrong.
	MaxWait time.Duration

	// DumpOnFailure appends a full screen dump to assertion failures.
	DumpOnFailure bool
}

// DefaultSettings returns the stock settings with any environment overrides
// applied.
func DefaultSettings() Settings {
	s := Settings{
		SettleTimeout: 100 * time.Millisecond,
		MaxWait:       5 * time.Second,
		DumpOnFailure: true,
	}
	if ms, ok := envMs(EnvSettleTimeout); ok {
		s.SettleTimeout = ms
	}
	if ms, ok := envMs(EnvMaxWait); ok {
		s.MaxWait = ms
	}
	if v := os.Getenv(EnvDumpOnFailure); v != "" {
		s.DumpOnFailure = v != "0" && v != "false"
	}
	return s
}

func envMs(name string) (time.Duration, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return time.Duration(n) * time.Millisecond, true
}
