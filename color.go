package tuitest

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/rafaeltab/tuitest/vt"
)

// grayscaleSpread is the max-minus-min channel tolerance below which a color
// counts as gray. Terminal palettes blend and anti-alias, so exact equality
// is too strict.
const grayscaleSpread = 20

// ColorAssertion is a snapshot of one cell color, captured when a TextMatch
// was created. Assertions on a not-found match fail loudly; they indicate the
// test asserted color before checking visibility.
type ColorAssertion struct {
	color vt.Color
	found bool
	fail  Failer
}

func newColorAssertion(c vt.Color, fail Failer) ColorAssertion {
	return ColorAssertion{color: c, found: true, fail: fail}
}

func colorNotFound(fail Failer) ColorAssertion {
	return ColorAssertion{fail: fail}
}

// RGB returns the captured channel values. ok is false when the text was not
// found and no color exists.
func (c ColorAssertion) RGB() (r, g, b uint8, ok bool) {
	if !c.found {
		return 0, 0, 0, false
	}
	return c.color.R, c.color.G, c.color.B, true
}

func (c ColorAssertion) requireFound() bool {
	if !c.found {
		c.fail.Fatalf("Cannot check color: text not found on screen")
		return false
	}
	return true
}

// Exact asserts an exact RGB match.
func (c ColorAssertion) Exact(r, g, b uint8) {
	if !c.requireFound() {
		return
	}
	if c.color.R != r || c.color.G != g || c.color.B != b {
		c.fail.Fatalf("Expected color (%d, %d, %d), got (%d, %d, %d)",
			r, g, b, c.color.R, c.color.G, c.color.B)
	}
}

// Assert checks the color against a fuzzy matcher.
func (c ColorAssertion) Assert(m Matcher) {
	if !c.requireFound() {
		return
	}
	if !m.Matches(c.color.R, c.color.G, c.color.B) {
		c.fail.Fatalf("Color (%d, %d, %d) does not match %s",
			c.color.R, c.color.G, c.color.B, m)
	}
}

// AssertGrayscale asserts the channels are equal within tolerance.
func (c ColorAssertion) AssertGrayscale() {
	if !c.requireFound() {
		return
	}
	spread := channelSpread(c.color.R, c.color.G, c.color.B)
	if spread > grayscaleSpread {
		c.fail.Fatalf("Expected color to be grayscale, but got (%d, %d, %d) (difference: %d)",
			c.color.R, c.color.G, c.color.B, spread)
	}
}

// AssertNotGrayscale asserts the color has a visible tint.
func (c ColorAssertion) AssertNotGrayscale() {
	if !c.requireFound() {
		return
	}
	if channelSpread(c.color.R, c.color.G, c.color.B) <= grayscaleSpread {
		c.fail.Fatalf("Expected color to NOT be grayscale, but got (%d, %d, %d)",
			c.color.R, c.color.G, c.color.B)
	}
}

func channelSpread(r, g, b uint8) int {
	lo, hi := r, r
	for _, v := range []uint8{g, b} {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return int(hi) - int(lo)
}

// Matcher is a fuzzy color family test. Exact palettes vary wildly across
// terminals, so tests assert "red-ish" rather than a specific triple.
type Matcher interface {
	Matches(r, g, b uint8) bool
	String() string
}

type matcherFunc struct {
	name string
	fn   func(r, g, b uint8) bool
}

func (m matcherFunc) Matches(r, g, b uint8) bool { return m.fn(r, g, b) }
func (m matcherFunc) String() string             { return m.name }

// dominates reports a > b by more than the dominance margin.
func dominates(a, b uint8) bool {
	return int(a) > int(b)+30
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d < 60
}

// The built-in color families. Primaries require one dominant channel;
// secondaries require two dominant channels of similar strength.
var (
	Grayscale Matcher = matcherFunc{"Grayscale", func(r, g, b uint8) bool {
		return channelSpread(r, g, b) <= grayscaleSpread
	}}
	RedIsh Matcher = matcherFunc{"RedIsh", func(r, g, b uint8) bool {
		return dominates(r, g) && dominates(r, b)
	}}
	GreenIsh Matcher = matcherFunc{"GreenIsh", func(r, g, b uint8) bool {
		return dominates(g, r) && dominates(g, b)
	}}
	BlueIsh Matcher = matcherFunc{"BlueIsh", func(r, g, b uint8) bool {
		return dominates(b, r) && dominates(b, g)
	}}
	YellowIsh Matcher = matcherFunc{"YellowIsh", func(r, g, b uint8) bool {
		return dominates(r, b) && dominates(g, b) && near(r, g)
	}}
	CyanIsh Matcher = matcherFunc{"CyanIsh", func(r, g, b uint8) bool {
		return dominates(g, r) && dominates(b, r) && near(g, b)
	}}
	MagentaIsh Matcher = matcherFunc{"MagentaIsh", func(r, g, b uint8) bool {
		return dominates(r, g) && dominates(b, g) && near(r, b)
	}}
)

// Hue matches colors whose HSL hue falls inside [Min, Max] degrees. Min > Max
// wraps through 0, e.g. Hue{350, 10} for reds. Grayscale has no hue and never
// matches.
type Hue struct {
	Min, Max float64
}

func (h Hue) Matches(r, g, b uint8) bool {
	if channelSpread(r, g, b) <= 2 {
		return false
	}
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	hue, _, _ := c.Hsl()
	if h.Min <= h.Max {
		return hue >= h.Min && hue <= h.Max
	}
	return hue >= h.Min || hue <= h.Max
}

func (h Hue) String() string {
	return fmt.Sprintf("Hue{%.0f, %.0f}", h.Min, h.Max)
}
