package vt

import "unicode/utf8"

// Parser states. The machine is the usual VT500-style reduction: ground,
// escape, CSI parameter accumulation, and string sequences (OSC/DCS/APC/PM)
// that swallow everything up to BEL or ST.
const (
	stateGround = iota
	stateEscape
	stateCSI
	stateString
	stateStringEscape
	stateCharset
)

const maxCSIParams = 16

type parserState struct {
	state int

	params    [maxCSIParams]int
	nparams   int
	hasParam  bool
	private   byte // leading '?', '>', '<', '=' if any
	ignoreCSI bool

	// Pending partial UTF-8 rune carried across Write calls.
	partial    [utf8.UTFMax]byte
	partialLen int
	partialN   int
}

// Write feeds raw bytes through the parser, mutating the grid. It never
// fails; malformed or unrecognized sequences are dropped. Implements
// io.Writer so a Buffer can sit directly under an exec.Cmd or PTY copy loop.
func (b *Buffer) Write(p []byte) (int, error) {
	for _, c := range p {
		b.step(c)
	}
	return len(p), nil
}

func (b *Buffer) step(c byte) {
	switch b.parser.state {
	case stateGround:
		b.stepGround(c)
	case stateEscape:
		b.stepEscape(c)
	case stateCSI:
		b.stepCSI(c)
	case stateString:
		// String payloads (window titles etc.) are irrelevant to the grid.
		if c == 0x07 {
			b.parser.state = stateGround
		} else if c == 0x1b {
			b.parser.state = stateStringEscape
		}
	case stateStringEscape:
		// ESC \ is ST; anything else restarts an escape sequence.
		if c == '\\' {
			b.parser.state = stateGround
		} else {
			b.parser.state = stateEscape
			b.stepEscape(c)
		}
	case stateCharset:
		// SCS designator byte, e.g. ESC ( B. Charsets are not modeled.
		b.parser.state = stateGround
	}
}

func (b *Buffer) stepGround(c byte) {
	if b.parser.partialLen > 0 {
		b.continueRune(c)
		return
	}
	switch {
	case c == 0x1b:
		b.parser.state = stateEscape
	case c == '\n', c == 0x0b, c == 0x0c:
		b.lineFeed()
	case c == '\r':
		b.carriageReturn()
	case c == 0x08:
		b.backspace()
	case c == '\t':
		b.tab()
	case c == 0x07, c < 0x20, c == 0x7f:
		// BEL and remaining C0 controls do not move the grid.
	case c < utf8.RuneSelf:
		b.writeRune(rune(c))
	default:
		b.startRune(c)
	}
}

// startRune begins a multibyte UTF-8 sequence that may finish in a later
// Write call.
func (b *Buffer) startRune(c byte) {
	n := 0
	switch {
	case c&0xe0 == 0xc0:
		n = 2
	case c&0xf0 == 0xe0:
		n = 3
	case c&0xf8 == 0xf0:
		n = 4
	default:
		// Stray continuation or invalid byte.
		b.writeRune(utf8.RuneError)
		return
	}
	b.parser.partial[0] = c
	b.parser.partialLen = n
	b.parser.partialN = 1
}

func (b *Buffer) continueRune(c byte) {
	ps := &b.parser
	if c&0xc0 != 0x80 {
		// Sequence aborted; emit a replacement and reprocess this byte.
		ps.partialLen, ps.partialN = 0, 0
		b.writeRune(utf8.RuneError)
		b.stepGround(c)
		return
	}
	ps.partial[ps.partialN] = c
	ps.partialN++
	if ps.partialN < ps.partialLen {
		return
	}
	r, _ := utf8.DecodeRune(ps.partial[:ps.partialN])
	ps.partialLen, ps.partialN = 0, 0
	b.writeRune(r)
}

func (b *Buffer) stepEscape(c byte) {
	b.parser.state = stateGround
	switch c {
	case '[':
		b.parser.state = stateCSI
		b.parser.nparams = 0
		b.parser.hasParam = false
		b.parser.private = 0
		b.parser.ignoreCSI = false
		b.parser.params = [maxCSIParams]int{}
	case ']', 'P', '_', '^', 'X': // OSC, DCS, APC, PM, SOS
		b.parser.state = stateString
	case '(', ')', '*', '+':
		b.parser.state = stateCharset
	case '7':
		b.saveCursor()
	case '8':
		b.restoreCursor()
	case 'D':
		b.index()
	case 'M':
		b.reverseIndex()
	case 'E':
		b.lineFeed()
	case 'c':
		b.reset()
	case 0x1b:
		b.parser.state = stateEscape
	default:
		// =, >, and friends: keypad modes and other sequences with no
		// bearing on cell content.
	}
}

func (b *Buffer) stepCSI(c byte) {
	ps := &b.parser
	switch {
	case c >= '0' && c <= '9':
		if ps.nparams < maxCSIParams {
			ps.params[ps.nparams] = ps.params[ps.nparams]*10 + int(c-'0')
			ps.hasParam = true
		}
	case c == ';' || c == ':':
		if ps.nparams < maxCSIParams {
			ps.nparams++
		}
		ps.hasParam = true
	case c == '?' || c == '>' || c == '<' || c == '=':
		ps.private = c
	case c >= 0x20 && c <= 0x2f:
		// Intermediate bytes (e.g. CSI ! p soft reset): not supported,
		// swallow the rest of the sequence.
		ps.ignoreCSI = true
	case c >= 0x40 && c <= 0x7e:
		if ps.hasParam && ps.nparams < maxCSIParams {
			ps.nparams++
		}
		if !ps.ignoreCSI && ps.private == 0 {
			b.dispatchCSI(c, ps.params[:ps.nparams])
		}
		// Private-mode sequences (DECSET/DECRST, cursor styles, mouse
		// protocols) are intentionally ignored.
		ps.state = stateGround
	case c == 0x1b:
		ps.state = stateEscape
	default:
		// C0 inside CSI: drop, stay in CSI like real terminals do for NUL.
	}
}

// param returns the i'th CSI parameter, or def when absent or zero.
func param(params []int, i, def int) int {
	if i >= len(params) || params[i] == 0 {
		return def
	}
	return params[i]
}
