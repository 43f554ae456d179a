package tuitest

import "fmt"

// recordFailer captures failures instead of stopping the test, so failure
// paths can themselves be asserted on.
type recordFailer struct {
	failures []string
}

func (r *recordFailer) Fatalf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func (r *recordFailer) failed() bool { return len(r.failures) > 0 }

func (r *recordFailer) last() string {
	if len(r.failures) == 0 {
		return ""
	}
	return r.failures[len(r.failures)-1]
}
