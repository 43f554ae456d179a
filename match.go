package tuitest

import (
	"github.com/rafaeltab/tuitest/vt"
)

// TextMatch is an immutable snapshot of one text query: the search string,
// where it was found, and the cell colors at that position at query time.
// Color assertions never re-read the live screen, so a repaint between the
// find and the assert cannot race.
type TextMatch struct {
	text  string
	pos   vt.Position
	found bool

	// FG and BG are the colors of the match's first cell.
	FG ColorAssertion
	BG ColorAssertion

	screen string
	dump   bool
	fail   Failer
}

func newTextMatch(text string, pos vt.Position, cell vt.Cell, screen string, dump bool, fail Failer) TextMatch {
	return TextMatch{
		text:   text,
		pos:    pos,
		found:  true,
		FG:     newColorAssertion(cell.FG, fail),
		BG:     newColorAssertion(cell.BG, fail),
		screen: screen,
		dump:   dump,
		fail:   fail,
	}
}

func textNotFound(text, screen string, dump bool, fail Failer) TextMatch {
	return TextMatch{
		text:   text,
		FG:     colorNotFound(fail),
		BG:     colorNotFound(fail),
		screen: screen,
		dump:   dump,
		fail:   fail,
	}
}

// Text returns the search string this match was created for.
func (m TextMatch) Text() string { return m.text }

// Position returns where the text was found. ok is false when not found.
func (m TextMatch) Position() (pos vt.Position, ok bool) {
	return m.pos, m.found
}

// IsVisible reports whether the text was found on screen.
func (m TextMatch) IsVisible() bool { return m.found }

// AssertVisible fails the test when the text was not found, including a
// screen dump when enabled.
func (m TextMatch) AssertVisible() {
	if m.found {
		return
	}
	m.fail.Fatalf("Expected text %q to be visible, but it was not found%s", m.text, m.maybeScreen())
}

// AssertNotVisible fails the test when the text was found.
func (m TextMatch) AssertNotVisible() {
	if !m.found {
		return
	}
	m.fail.Fatalf("Expected text %q to not be visible, but it was found at (%d, %d)%s",
		m.text, m.pos.Row, m.pos.Col, m.maybeScreen())
}

func (m TextMatch) maybeScreen() string {
	if !m.dump || m.screen == "" {
		return ""
	}
	return "\nScreen:\n" + m.screen
}

// AssertVerticalOrder verifies the matches appear on screen in the given
// top-to-bottom order: every match visible, row numbers non-decreasing, and
// same-row matches ordered left to right. Calling it with no matches is a
// test-authoring bug and panics.
func AssertVerticalOrder(matches ...TextMatch) {
	if len(matches) == 0 {
		panic("tuitest: AssertVerticalOrder requires at least one match")
	}
	fail := matches[0].fail
	for i, m := range matches {
		if !m.found {
			fail.Fatalf("AssertVerticalOrder: match %d (%q) is not visible%s", i, m.text, m.maybeScreen())
			return
		}
	}
	for i := 1; i < len(matches); i++ {
		prev, cur := matches[i-1], matches[i]
		if cur.pos.Row < prev.pos.Row {
			fail.Fatalf("AssertVerticalOrder: %q (row %d) appears above %q (row %d)%s",
				cur.text, cur.pos.Row, prev.text, prev.pos.Row, cur.maybeScreen())
			return
		}
		if cur.pos.Row == prev.pos.Row && cur.pos.Col < prev.pos.Col {
			fail.Fatalf("AssertVerticalOrder: %q (col %d) appears left of %q (col %d) on row %d%s",
				cur.text, cur.pos.Col, prev.text, prev.pos.Col, cur.pos.Row, cur.maybeScreen())
			return
		}
	}
}
