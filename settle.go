package tuitest

import (
	"time"

	"github.com/rafaeltab/tuitest/vt"
)

// settleInterval is how often the settle loop samples the screen. 16ms
// roughly tracks a 60Hz frame.
const settleInterval = 16 * time.Millisecond

// settle polls until the rendered text has been stable for timeout, or
// maxWait has elapsed. pump refreshes the screen from the backend; render
// produces the text to compare. Comparing rendered text rather than raw bytes
// means cursor-only updates and identical repaints do not reset the clock.
// Hitting maxWait is not an error; the caller's next assertion decides.
func settle(pump func(), render func() string, timeout, maxWait time.Duration) {
	start := time.Now()
	last := render()
	var stable time.Duration

	for {
		time.Sleep(settleInterval)
		pump()

		if current := render(); current == last {
			stable += settleInterval
			if stable >= timeout {
				return
			}
		} else {
			stable = 0
			last = current
		}

		if time.Since(start) >= maxWait {
			return
		}
	}
}

// pumpFor keeps draining backend output for the given duration, so a plain
// wait does not let the read buffer grow unbounded.
func pumpFor(d time.Duration, pump func()) {
	start := time.Now()
	for time.Since(start) < d {
		time.Sleep(settleInterval)
		pump()
	}
}

// findOne scans the buffer for exactly one occurrence of text. Zero matches
// produce a not-found TextMatch (visibility assertions handle that case);
// more than one is a hard failure pointing at FindAllText, since an ambiguous
// needle usually means the assertion is not testing what its author thinks.
func findOne(buf *vt.Buffer, text string, dump bool, fail Failer) TextMatch {
	positions := buf.FindAll(text)
	screen := buf.Render()
	switch len(positions) {
	case 0:
		return textNotFound(text, screen, dump, fail)
	case 1:
		return matchAt(buf, text, positions[0], screen, dump, fail)
	default:
		fail.Fatalf("%q found multiple times (%d occurrences). Use FindAllText() instead.\nScreen:\n%s",
			text, len(positions), screen)
		return textNotFound(text, screen, dump, fail)
	}
}

// findAll returns every occurrence in top-to-bottom, left-to-right order.
func findAll(buf *vt.Buffer, text string, dump bool, fail Failer) []TextMatch {
	positions := buf.FindAll(text)
	screen := buf.Render()
	matches := make([]TextMatch, 0, len(positions))
	for _, pos := range positions {
		matches = append(matches, matchAt(buf, text, pos, screen, dump, fail))
	}
	return matches
}

func matchAt(buf *vt.Buffer, text string, pos vt.Position, screen string, dump bool, fail Failer) TextMatch {
	cell, err := buf.Cell(pos.Row, pos.Col)
	if err != nil {
		// FindAll only reports in-range positions.
		panic(err)
	}
	return newTextMatch(text, pos, cell, screen, dump, fail)
}
