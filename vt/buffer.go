package vt

import (
	"fmt"
	"strings"
)

// pen is the active SGR state applied to newly written cells. fgBase
// remembers a basic (30-37) foreground index so bold can promote it to the
// bright variant at write time, whichever order the parameters arrived in.
type pen struct {
	fg      Color
	fgBase  int // 0-7, or -1 when fg is not a basic palette color
	bg      Color
	bold    bool
	reverse bool
}

func defaultPen() pen {
	return pen{fg: DefaultFG, fgBase: -1, bg: DefaultBG}
}

// Buffer is a fixed-size terminal screen. It is created once per session and
// never resized; a different geometry means a new Buffer.
//
// Buffer is not safe for concurrent use. Sessions own exactly one buffer and
// feed it from a single goroutine.
type Buffer struct {
	rows, cols int
	grid       [][]Cell

	curRow, curCol int
	savedRow       int
	savedCol       int
	savedPen       pen

	// Scroll region, inclusive top, exclusive bottom.
	scrollTop    int
	scrollBottom int

	pen      pen
	wrapNext bool

	parser parserState
}

// NewBuffer returns an empty rows×cols buffer with the cursor at the origin.
func NewBuffer(rows, cols int) *Buffer {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("vt: invalid buffer size %dx%d", rows, cols))
	}
	b := &Buffer{rows: rows, cols: cols}
	b.reset()
	return b
}

func (b *Buffer) reset() {
	b.grid = make([][]Cell, b.rows)
	for r := range b.grid {
		b.grid[r] = newBlankRow(b.cols)
	}
	b.curRow, b.curCol = 0, 0
	b.savedRow, b.savedCol = 0, 0
	b.pen = defaultPen()
	b.savedPen = defaultPen()
	b.scrollTop = 0
	b.scrollBottom = b.rows
	b.wrapNext = false
	b.parser = parserState{}
}

func newBlankRow(cols int) []Cell {
	row := make([]Cell, cols)
	for c := range row {
		row[c] = blankCell()
	}
	return row
}

// Rows returns the buffer height.
func (b *Buffer) Rows() int { return b.rows }

// Cols returns the buffer width.
func (b *Buffer) Cols() int { return b.cols }

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() (row, col int) { return b.curRow, b.curCol }

// Clear resets every cell to the default blank and the cursor to the origin.
// Parser state survives so a capture fed in two halves still parses; callers
// that re-capture a full screen each poll clear between captures.
func (b *Buffer) Clear() {
	for r := range b.grid {
		for c := range b.grid[r] {
			b.grid[r][c] = blankCell()
		}
	}
	b.curRow, b.curCol = 0, 0
	b.wrapNext = false
}

// Cell returns the cell at (row, col). Out-of-range coordinates are a caller
// bug and return an error rather than a zero cell.
func (b *Buffer) Cell(row, col int) (Cell, error) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return Cell{}, fmt.Errorf("vt: cell (%d,%d) outside %dx%d buffer", row, col, b.rows, b.cols)
	}
	return b.grid[row][col], nil
}

// Render flattens the grid to plain text: rows joined with newlines, trailing
// whitespace trimmed from every row. This is what settle detection compares,
// so cursor movement and redundant repaints do not count as changes.
func (b *Buffer) Render() string {
	lines := make([]string, b.rows)
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		sb.Reset()
		for c := 0; c < b.cols; c++ {
			sb.WriteRune(b.grid[r][c].Rune)
		}
		lines[r] = strings.TrimRight(sb.String(), " \t")
	}
	return strings.Join(lines, "\n")
}

// FindAll returns the starting position of every occurrence of needle,
// scanning rows top to bottom and columns left to right. Matching is exact
// and per-row: a string split across a wrap boundary is not matched, the same
// way a human reading the screen would not join it.
func (b *Buffer) FindAll(needle string) []Position {
	if needle == "" {
		return nil
	}
	want := []rune(needle)
	var out []Position
	for r := 0; r < b.rows; r++ {
		for c := 0; c+len(want) <= b.cols; c++ {
			if b.matchAt(r, c, want) {
				out = append(out, Position{Row: r, Col: c})
				c += len(want) - 1
			}
		}
	}
	return out
}

func (b *Buffer) matchAt(row, col int, want []rune) bool {
	for i, r := range want {
		if b.grid[row][col+i].Rune != r {
			return false
		}
	}
	return true
}

// writeRune places a printable rune at the cursor and advances it, deferring
// the wrap until the next printable so CR/LF at the right edge does not
// produce a spurious blank line.
func (b *Buffer) writeRune(r rune) {
	if b.wrapNext {
		b.wrapNext = false
		b.curCol = 0
		b.index()
	}
	fg := b.pen.fg
	if b.pen.bold && b.pen.fgBase >= 0 {
		fg = palette16(b.pen.fgBase, true)
	}
	cell := Cell{Rune: r, FG: fg, BG: b.pen.bg, Bold: b.pen.bold, Reverse: b.pen.reverse}
	if b.pen.reverse {
		cell.FG, cell.BG = b.pen.bg, fg
	}
	b.grid[b.curRow][b.curCol] = cell
	if b.curCol == b.cols-1 {
		b.wrapNext = true
	} else {
		b.curCol++
	}
}

// index moves the cursor down one row, scrolling the region when the cursor
// sits on its last row.
func (b *Buffer) index() {
	if b.curRow == b.scrollBottom-1 {
		b.scrollUp(1)
	} else if b.curRow < b.rows-1 {
		b.curRow++
	}
}

// reverseIndex moves the cursor up one row, scrolling down at the region top.
func (b *Buffer) reverseIndex() {
	if b.curRow == b.scrollTop {
		b.scrollDown(1)
	} else if b.curRow > 0 {
		b.curRow--
	}
}

// lineFeed handles LF/VT/FF. Bare LF is treated as CR+LF: PTYs run with ONLCR
// so cooked output always pairs them, and capture-pane dumps separate rows
// with bare newlines.
func (b *Buffer) lineFeed() {
	b.wrapNext = false
	b.curCol = 0
	b.index()
}

func (b *Buffer) carriageReturn() {
	b.wrapNext = false
	b.curCol = 0
}

func (b *Buffer) backspace() {
	b.wrapNext = false
	if b.curCol > 0 {
		b.curCol--
	}
}

func (b *Buffer) tab() {
	b.wrapNext = false
	next := (b.curCol/8 + 1) * 8
	if next >= b.cols {
		next = b.cols - 1
	}
	b.curCol = next
}

func (b *Buffer) moveCursor(dRow, dCol int) {
	b.wrapNext = false
	b.curRow = clamp(b.curRow+dRow, 0, b.rows-1)
	b.curCol = clamp(b.curCol+dCol, 0, b.cols-1)
}

func (b *Buffer) setCursor(row, col int) {
	b.wrapNext = false
	b.curRow = clamp(row, 0, b.rows-1)
	b.curCol = clamp(col, 0, b.cols-1)
}

func (b *Buffer) saveCursor() {
	b.savedRow, b.savedCol = b.curRow, b.curCol
	b.savedPen = b.pen
}

func (b *Buffer) restoreCursor() {
	b.curRow, b.curCol = b.savedRow, b.savedCol
	b.pen = b.savedPen
	b.wrapNext = false
}

// scrollUp removes n rows from the top of the scroll region and adds blank
// rows at the bottom.
func (b *Buffer) scrollUp(n int) {
	if n <= 0 {
		return
	}
	top, bottom := b.scrollTop, b.scrollBottom
	if n > bottom-top {
		n = bottom - top
	}
	copy(b.grid[top:bottom-n], b.grid[top+n:bottom])
	for r := bottom - n; r < bottom; r++ {
		b.grid[r] = newBlankRow(b.cols)
	}
}

// scrollDown inserts n blank rows at the top of the scroll region, dropping
// rows off the bottom.
func (b *Buffer) scrollDown(n int) {
	if n <= 0 {
		return
	}
	top, bottom := b.scrollTop, b.scrollBottom
	if n > bottom-top {
		n = bottom - top
	}
	copy(b.grid[top+n:bottom], b.grid[top:bottom-n])
	for r := top; r < top+n; r++ {
		b.grid[r] = newBlankRow(b.cols)
	}
}

func (b *Buffer) setScrollRegion(top, bottom int) {
	// DECSTBM parameters are 1-based, inclusive.
	if top < 1 {
		top = 1
	}
	if bottom < 1 || bottom > b.rows {
		bottom = b.rows
	}
	if top >= bottom {
		return
	}
	b.scrollTop = top - 1
	b.scrollBottom = bottom
	b.setCursor(0, 0)
}

func (b *Buffer) eraseInLine(mode int) {
	switch mode {
	case 0: // cursor to end of line
		b.clearRowRange(b.curRow, b.curCol, b.cols)
	case 1: // start of line through cursor
		b.clearRowRange(b.curRow, 0, b.curCol+1)
	case 2:
		b.clearRowRange(b.curRow, 0, b.cols)
	}
}

func (b *Buffer) eraseInDisplay(mode int) {
	switch mode {
	case 0: // cursor to end of screen
		b.clearRowRange(b.curRow, b.curCol, b.cols)
		for r := b.curRow + 1; r < b.rows; r++ {
			b.clearRowRange(r, 0, b.cols)
		}
	case 1: // start of screen through cursor
		for r := 0; r < b.curRow; r++ {
			b.clearRowRange(r, 0, b.cols)
		}
		b.clearRowRange(b.curRow, 0, b.curCol+1)
	case 2, 3:
		for r := 0; r < b.rows; r++ {
			b.clearRowRange(r, 0, b.cols)
		}
	}
}

func (b *Buffer) clearRowRange(row, from, to int) {
	if row < 0 || row >= b.rows {
		return
	}
	from = clamp(from, 0, b.cols)
	to = clamp(to, 0, b.cols)
	for c := from; c < to; c++ {
		b.grid[row][c] = blankCell()
	}
}

// insertChars shifts cells at the cursor right, dropping off the row end.
func (b *Buffer) insertChars(n int) {
	row := b.grid[b.curRow]
	if n > b.cols-b.curCol {
		n = b.cols - b.curCol
	}
	copy(row[b.curCol+n:], row[b.curCol:b.cols-n])
	for c := b.curCol; c < b.curCol+n; c++ {
		row[c] = blankCell()
	}
}

// deleteChars shifts cells left over the cursor, blank-filling the row end.
func (b *Buffer) deleteChars(n int) {
	row := b.grid[b.curRow]
	if n > b.cols-b.curCol {
		n = b.cols - b.curCol
	}
	copy(row[b.curCol:], row[b.curCol+n:])
	for c := b.cols - n; c < b.cols; c++ {
		row[c] = blankCell()
	}
}

// eraseChars blanks n cells at the cursor without shifting.
func (b *Buffer) eraseChars(n int) {
	b.clearRowRange(b.curRow, b.curCol, b.curCol+n)
}

// insertLines inserts blank rows at the cursor, pushing rows toward the
// bottom of the scroll region. No-op outside the region, as on hardware.
func (b *Buffer) insertLines(n int) {
	if b.curRow < b.scrollTop || b.curRow >= b.scrollBottom {
		return
	}
	bottom := b.scrollBottom
	if n > bottom-b.curRow {
		n = bottom - b.curRow
	}
	copy(b.grid[b.curRow+n:bottom], b.grid[b.curRow:bottom-n])
	for r := b.curRow; r < b.curRow+n; r++ {
		b.grid[r] = newBlankRow(b.cols)
	}
}

func (b *Buffer) deleteLines(n int) {
	if b.curRow < b.scrollTop || b.curRow >= b.scrollBottom {
		return
	}
	bottom := b.scrollBottom
	if n > bottom-b.curRow {
		n = bottom - b.curRow
	}
	copy(b.grid[b.curRow:bottom-n], b.grid[b.curRow+n:bottom])
	for r := bottom - n; r < bottom; r++ {
		b.grid[r] = newBlankRow(b.cols)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
