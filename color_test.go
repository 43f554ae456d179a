package tuitest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rafaeltab/tuitest/vt"
)

func TestGrayscaleMatcher(t *testing.T) {
	require.True(t, Grayscale.Matches(128, 128, 128))
	require.True(t, Grayscale.Matches(100, 110, 105))
	require.False(t, Grayscale.Matches(255, 0, 0))
}

func TestFamilyMatchers(t *testing.T) {
	require.True(t, RedIsh.Matches(255, 0, 0))
	require.True(t, RedIsh.Matches(200, 50, 50))
	require.False(t, RedIsh.Matches(0, 255, 0))

	require.True(t, GreenIsh.Matches(0, 255, 0))
	require.False(t, GreenIsh.Matches(255, 0, 0))

	require.True(t, BlueIsh.Matches(0, 0, 255))
	require.False(t, BlueIsh.Matches(255, 0, 0))

	require.True(t, YellowIsh.Matches(255, 255, 0))
	require.False(t, YellowIsh.Matches(255, 100, 0))

	require.True(t, CyanIsh.Matches(0, 255, 255))
	require.True(t, MagentaIsh.Matches(255, 0, 255))
}

func TestHueMatcher(t *testing.T) {
	// Pure green sits at 120 degrees.
	require.True(t, Hue{Min: 90, Max: 150}.Matches(0, 255, 0))
	require.False(t, Hue{Min: 200, Max: 260}.Matches(0, 255, 0))

	// Wrap-around band for reds near 0/360.
	require.True(t, Hue{Min: 350, Max: 10}.Matches(255, 0, 0))
	require.False(t, Hue{Min: 350, Max: 10}.Matches(0, 0, 255))

	// Grayscale has no hue.
	require.False(t, Hue{Min: 0, Max: 360}.Matches(128, 128, 128))
}

func TestColorAssertionExact(t *testing.T) {
	fail := &recordFailer{}
	c := newColorAssertion(vt.Color{R: 255, G: 128, B: 64}, fail)

	c.Exact(255, 128, 64)
	require.False(t, fail.failed())

	c.Exact(0, 0, 0)
	require.True(t, fail.failed())
	require.Contains(t, fail.last(), "Expected color (0, 0, 0), got (255, 128, 64)")
}

func TestColorAssertionMatcher(t *testing.T) {
	fail := &recordFailer{}
	c := newColorAssertion(vt.Color{R: 255}, fail)

	c.Assert(RedIsh)
	require.False(t, fail.failed())

	c.Assert(BlueIsh)
	require.True(t, fail.failed())
	require.Contains(t, fail.last(), "does not match BlueIsh")
}

func TestColorAssertionGrayscale(t *testing.T) {
	fail := &recordFailer{}

	newColorAssertion(vt.Color{R: 128, G: 128, B: 128}, fail).AssertGrayscale()
	newColorAssertion(vt.Color{R: 100, G: 105, B: 102}, fail).AssertGrayscale()
	require.False(t, fail.failed())

	newColorAssertion(vt.Color{R: 255, G: 255, B: 0}, fail).AssertGrayscale()
	require.True(t, fail.failed())
	require.Contains(t, fail.last(), "Expected color to be grayscale")

	fail = &recordFailer{}
	newColorAssertion(vt.Color{R: 255}, fail).AssertNotGrayscale()
	require.False(t, fail.failed())

	newColorAssertion(vt.Color{R: 128, G: 128, B: 128}, fail).AssertNotGrayscale()
	require.True(t, fail.failed())
}

func TestColorAssertionNotFound(t *testing.T) {
	fail := &recordFailer{}
	c := colorNotFound(fail)

	_, _, _, ok := c.RGB()
	require.False(t, ok)

	c.AssertGrayscale()
	require.True(t, fail.failed())
	require.Contains(t, fail.last(), "Cannot check color: text not found on screen")

	fail = &recordFailer{}
	colorNotFound(fail).Exact(1, 2, 3)
	require.True(t, fail.failed())
}
