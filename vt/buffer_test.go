package vt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func feed(t *testing.T, b *Buffer, s string) {
	t.Helper()
	_, err := b.Write([]byte(s))
	require.NoError(t, err)
}

func TestNewBufferIsEmpty(t *testing.T) {
	b := NewBuffer(10, 20)
	require.Empty(t, strings.TrimSpace(b.Render()))
	row, col := b.Cursor()
	require.Equal(t, 0, row)
	require.Equal(t, 0, col)
}

func TestSimpleText(t *testing.T) {
	b := NewBuffer(10, 40)
	feed(t, b, "Hello World")
	require.Contains(t, b.Render(), "Hello World")
}

func TestCursorHome(t *testing.T) {
	b := NewBuffer(10, 40)
	feed(t, b, "\x1b[5;10H")
	row, col := b.Cursor()
	require.Equal(t, 4, row)
	require.Equal(t, 9, col)

	feed(t, b, "\x1b[HFirst")
	lines := strings.Split(b.Render(), "\n")
	require.Contains(t, lines[0], "First")
}

func TestClearScreen(t *testing.T) {
	b := NewBuffer(10, 40)
	feed(t, b, "Hello")
	feed(t, b, "\x1b[2J")
	require.NotContains(t, b.Render(), "Hello")
}

func TestNewlineAndCarriageReturn(t *testing.T) {
	b := NewBuffer(10, 40)
	feed(t, b, "Line1\nLine2")
	lines := strings.Split(b.Render(), "\n")
	require.Contains(t, lines[0], "Line1")
	require.Contains(t, lines[1], "Line2")

	b = NewBuffer(10, 40)
	feed(t, b, "Hello\rWorld")
	require.Contains(t, b.Render(), "World")
	require.NotContains(t, b.Render(), "Hello")
}

func TestFindAllPositions(t *testing.T) {
	b := NewBuffer(10, 40)
	feed(t, b, "Search for this text")
	got := b.FindAll("this")
	require.Equal(t, []Position{{Row: 0, Col: 11}}, got)
}

func TestFindAllMultiple(t *testing.T) {
	b := NewBuffer(10, 40)
	feed(t, b, "test test test")
	got := b.FindAll("test")
	require.Equal(t, []Position{{0, 0}, {0, 5}, {0, 10}}, got)
}

func TestFindAllOrderedTopToBottom(t *testing.T) {
	b := NewBuffer(10, 40)
	feed(t, b, "  item\nitem\n      item")
	got := b.FindAll("item")
	require.Equal(t, []Position{{0, 2}, {1, 0}, {2, 6}}, got)
}

func TestFindAllNotFound(t *testing.T) {
	b := NewBuffer(10, 40)
	feed(t, b, "Hello World")
	require.Empty(t, b.FindAll("missing"))
	require.Empty(t, b.FindAll(""))
}

func TestFindAllDoesNotMatchAcrossWrap(t *testing.T) {
	b := NewBuffer(5, 7)
	// "wrapping" wraps after "wrappin"; the needle spans the wrap boundary.
	feed(t, b, "wrappingX")
	require.Empty(t, b.FindAll("wrapping"))
	require.NotEmpty(t, b.FindAll("wrappin"))
}

func TestTrueColorSGR(t *testing.T) {
	b := NewBuffer(10, 40)
	feed(t, b, "\x1b[38;2;255;0;0mRed Text\x1b[0m")
	require.Contains(t, b.Render(), "Red Text")

	cell, err := b.Cell(0, 0)
	require.NoError(t, err)
	require.Equal(t, Color{255, 0, 0}, cell.FG)
	require.Equal(t, DefaultBG, cell.BG)
}

func Test256ColorSGR(t *testing.T) {
	b := NewBuffer(2, 10)
	feed(t, b, "\x1b[38;5;196mX")
	cell, err := b.Cell(0, 0)
	require.NoError(t, err)
	// Index 196 is the cube corner (5,0,0).
	require.Equal(t, Color{255, 0, 0}, cell.FG)

	feed(t, b, "\x1b[48;5;240mY")
	cell, err = b.Cell(0, 1)
	require.NoError(t, err)
	require.Equal(t, cell.BG.R, cell.BG.G)
	require.Equal(t, cell.BG.G, cell.BG.B)
}

func TestBasicColorSGR(t *testing.T) {
	b := NewBuffer(2, 10)
	feed(t, b, "\x1b[31mr\x1b[0m\x1b[42mg\x1b[0m")
	r, err := b.Cell(0, 0)
	require.NoError(t, err)
	require.Greater(t, r.FG.R, r.FG.G)

	g, err := b.Cell(0, 1)
	require.NoError(t, err)
	require.Greater(t, g.BG.G, g.BG.R)
}

func TestReverseVideoSwapsColors(t *testing.T) {
	b := NewBuffer(2, 10)
	feed(t, b, "\x1b[38;2;10;20;30m\x1b[48;2;40;50;60m\x1b[7mZ")
	cell, err := b.Cell(0, 0)
	require.NoError(t, err)
	require.Equal(t, Color{40, 50, 60}, cell.FG)
	require.Equal(t, Color{10, 20, 30}, cell.BG)
}

func TestUnicodeText(t *testing.T) {
	b := NewBuffer(10, 40)
	feed(t, b, "日本語 and ╭───╮")
	require.Contains(t, b.Render(), "日本語")
	require.Contains(t, b.Render(), "╭───╮")
}

// Chunk-boundary independence: any split of the input must produce the same
// final grid, including splits inside escape sequences and UTF-8 runes.
func TestChunkBoundaryIndependence(t *testing.T) {
	input := "\x1b[2J\x1b[3;5HHello \x1b[38;2;200;100;50m日本\x1b[0m\r\nnext \x1b[31mline\x1b[K"

	whole := NewBuffer(10, 40)
	feed(t, whole, input)
	want := whole.Render()
	wantCell, err := whole.Cell(2, 10)
	require.NoError(t, err)

	for _, size := range []int{1, 2, 3, 7} {
		t.Run(fmt.Sprintf("chunk%d", size), func(t *testing.T) {
			b := NewBuffer(10, 40)
			data := []byte(input)
			for len(data) > 0 {
				n := size
				if n > len(data) {
					n = len(data)
				}
				_, err := b.Write(data[:n])
				require.NoError(t, err)
				data = data[n:]
			}
			require.Equal(t, want, b.Render())
			cell, err := b.Cell(2, 10)
			require.NoError(t, err)
			require.Equal(t, wantCell, cell)
		})
	}
}

func TestWrapAtRightEdge(t *testing.T) {
	b := NewBuffer(5, 10)
	feed(t, b, "0123456789abc")
	lines := strings.Split(b.Render(), "\n")
	require.Equal(t, "0123456789", lines[0])
	require.Equal(t, "abc", lines[1])
}

func TestWrapThenNewlineNoBlankLine(t *testing.T) {
	b := NewBuffer(5, 10)
	// Exactly fills the row; the trailing newline must not skip a row.
	feed(t, b, "0123456789\nnext")
	lines := strings.Split(b.Render(), "\n")
	require.Equal(t, "0123456789", lines[0])
	require.Equal(t, "next", lines[1])
}

func TestScrollAtBottom(t *testing.T) {
	b := NewBuffer(3, 20)
	feed(t, b, "one\ntwo\nthree\nfour")
	lines := strings.Split(b.Render(), "\n")
	require.Equal(t, "two", lines[0])
	require.Equal(t, "three", lines[1])
	require.Equal(t, "four", lines[2])
}

func TestScrollRegion(t *testing.T) {
	b := NewBuffer(5, 20)
	feed(t, b, "header\x1b[2;4r")
	feed(t, b, "\x1b[2;1Ha\nb\nc\nd\ne")
	lines := strings.Split(b.Render(), "\n")
	// Header row is outside the region and must survive the scrolling.
	require.Equal(t, "header", lines[0])
	require.NotContains(t, strings.Join(lines[1:4], "\n"), "a")
}

func TestEraseInLine(t *testing.T) {
	b := NewBuffer(2, 20)
	feed(t, b, "hello world\x1b[1;7H\x1b[K")
	require.Equal(t, "hello", strings.Split(b.Render(), "\n")[0])

	b = NewBuffer(2, 20)
	feed(t, b, "hello world\x1b[1;6H\x1b[1K")
	require.Contains(t, strings.Split(b.Render(), "\n")[0], "world")
	require.NotContains(t, b.Render(), "hello")
}

func TestInsertDeleteChars(t *testing.T) {
	b := NewBuffer(2, 10)
	feed(t, b, "abcdef\x1b[1;1H\x1b[2@")
	require.True(t, strings.HasPrefix(b.Render(), "  abcdef"))

	b = NewBuffer(2, 10)
	feed(t, b, "abcdef\x1b[1;1H\x1b[2P")
	require.True(t, strings.HasPrefix(b.Render(), "cdef"))
}

func TestInsertDeleteLines(t *testing.T) {
	b := NewBuffer(4, 10)
	feed(t, b, "aa\nbb\ncc\x1b[1;1H\x1b[1L")
	lines := strings.Split(b.Render(), "\n")
	require.Equal(t, "", lines[0])
	require.Equal(t, "aa", lines[1])

	b = NewBuffer(4, 10)
	feed(t, b, "aa\nbb\ncc\x1b[1;1H\x1b[1M")
	lines = strings.Split(b.Render(), "\n")
	require.Equal(t, "bb", lines[0])
	require.Equal(t, "cc", lines[1])
}

func TestSaveRestoreCursor(t *testing.T) {
	b := NewBuffer(5, 20)
	feed(t, b, "\x1b[3;4H\x1b7\x1b[1;1Hxx\x1b8Y")
	cell, err := b.Cell(2, 3)
	require.NoError(t, err)
	require.Equal(t, 'Y', cell.Rune)
}

func TestUnknownSequencesIgnored(t *testing.T) {
	b := NewBuffer(3, 20)
	// DECSET, OSC title, cursor style, and a DCS blob around plain text.
	feed(t, b, "\x1b[?1049h\x1b]0;title\x07ok\x1b[2 q\x1bPjunk\x1b\\!")
	require.Equal(t, "ok!", strings.Split(b.Render(), "\n")[0])
}

func TestClearKeepsParserUsable(t *testing.T) {
	b := NewBuffer(3, 20)
	feed(t, b, "before")
	b.Clear()
	require.Empty(t, strings.TrimSpace(b.Render()))
	feed(t, b, "after")
	require.Contains(t, b.Render(), "after")
}

func TestCellOutOfRange(t *testing.T) {
	b := NewBuffer(3, 20)
	_, err := b.Cell(3, 0)
	require.Error(t, err)
	_, err = b.Cell(0, 20)
	require.Error(t, err)
	_, err = b.Cell(-1, 0)
	require.Error(t, err)
}

func TestTabStops(t *testing.T) {
	b := NewBuffer(2, 20)
	feed(t, b, "a\tb")
	cell, err := b.Cell(0, 8)
	require.NoError(t, err)
	require.Equal(t, 'b', cell.Rune)
}

func TestBoldPromotesBasicColor(t *testing.T) {
	b := NewBuffer(2, 10)
	feed(t, b, "\x1b[1;31mX")
	cell, err := b.Cell(0, 0)
	require.NoError(t, err)
	require.True(t, cell.Bold)
	require.Equal(t, uint8(255), cell.FG.R)
}

// Promotion must not depend on parameter order: bold set after the color
// still brightens, and clearing bold reverts to the mid tone.
func TestBoldAfterColorPromotes(t *testing.T) {
	b := NewBuffer(2, 10)
	feed(t, b, "\x1b[31;1mX\x1b[22mY")

	x, err := b.Cell(0, 0)
	require.NoError(t, err)
	require.Equal(t, uint8(255), x.FG.R)

	y, err := b.Cell(0, 1)
	require.NoError(t, err)
	require.False(t, y.Bold)
	require.Less(t, y.FG.R, uint8(255))
	require.NotZero(t, y.FG.R)
}

func TestBoldDoesNotPromoteDirectColor(t *testing.T) {
	b := NewBuffer(2, 10)
	feed(t, b, "\x1b[38;2;100;0;0m\x1b[1mX")
	cell, err := b.Cell(0, 0)
	require.NoError(t, err)
	require.Equal(t, Color{100, 0, 0}, cell.FG)
}
