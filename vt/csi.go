package vt

// dispatchCSI applies a completed CSI sequence. Final bytes without a handler
// fall through silently; compatibility with whatever a TUI emits matters more
// than strictness here.
func (b *Buffer) dispatchCSI(final byte, params []int) {
	switch final {
	case 'A':
		b.moveCursor(-param(params, 0, 1), 0)
	case 'B', 'e':
		b.moveCursor(param(params, 0, 1), 0)
	case 'C', 'a':
		b.moveCursor(0, param(params, 0, 1))
	case 'D':
		b.moveCursor(0, -param(params, 0, 1))
	case 'E':
		b.moveCursor(param(params, 0, 1), 0)
		b.carriageReturn()
	case 'F':
		b.moveCursor(-param(params, 0, 1), 0)
		b.carriageReturn()
	case 'G', '`':
		b.setCursor(b.curRow, param(params, 0, 1)-1)
	case 'd':
		b.setCursor(param(params, 0, 1)-1, b.curCol)
	case 'H', 'f':
		b.setCursor(param(params, 0, 1)-1, param(params, 1, 1)-1)
	case 'J':
		b.eraseInDisplay(param(params, 0, 0))
	case 'K':
		b.eraseInLine(param(params, 0, 0))
	case 'L':
		b.insertLines(param(params, 0, 1))
	case 'M':
		b.deleteLines(param(params, 0, 1))
	case '@':
		b.insertChars(param(params, 0, 1))
	case 'P':
		b.deleteChars(param(params, 0, 1))
	case 'X':
		b.eraseChars(param(params, 0, 1))
	case 'S':
		b.scrollUp(param(params, 0, 1))
	case 'T':
		b.scrollDown(param(params, 0, 1))
	case 'r':
		b.setScrollRegion(param(params, 0, 1), param(params, 1, b.rows))
	case 's':
		b.saveCursor()
	case 'u':
		b.restoreCursor()
	case 'm':
		b.applySGR(params)
	}
}
