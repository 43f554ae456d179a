package vt

// applySGR mutates the pen from an SGR parameter list. Covers the reset,
// bold, reverse, the 16-color set, 256-color (38;5;n / 48;5;n), and direct
// RGB (38;2;r;g;b / 48;2;r;g;b) forms. Attributes without a cell-visible
// effect (italic, underline, blink) are accepted and dropped.
func (b *Buffer) applySGR(params []int) {
	if len(params) == 0 {
		b.pen = defaultPen()
		return
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			b.pen = defaultPen()
		case p == 1:
			b.pen.bold = true
		case p == 22:
			b.pen.bold = false
		case p == 7:
			b.pen.reverse = true
		case p == 27:
			b.pen.reverse = false
		case p >= 30 && p <= 37:
			b.pen.fg = palette16(p-30, false)
			b.pen.fgBase = p - 30
		case p == 39:
			b.pen.fg = DefaultFG
			b.pen.fgBase = -1
		case p >= 40 && p <= 47:
			b.pen.bg = palette16(p-40, false)
		case p == 49:
			b.pen.bg = DefaultBG
		case p >= 90 && p <= 97:
			b.pen.fg = palette16(p-90+8, false)
			b.pen.fgBase = -1
		case p >= 100 && p <= 107:
			b.pen.bg = palette16(p-100+8, false)
		case p == 38 || p == 48:
			color, consumed, ok := extendedColor(params[i+1:])
			if !ok {
				return // malformed; drop the rest of this SGR
			}
			if p == 38 {
				b.pen.fg = color
				b.pen.fgBase = -1
			} else {
				b.pen.bg = color
			}
			i += consumed
		}
	}
}

// extendedColor parses the tail of a 38/48 sub-sequence: 5;n or 2;r;g;b.
func extendedColor(rest []int) (Color, int, bool) {
	if len(rest) == 0 {
		return Color{}, 0, false
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return Color{}, 0, false
		}
		return palette256(rest[1]), 2, true
	case 2:
		if len(rest) < 4 {
			return Color{}, 0, false
		}
		return Color{clampU8(rest[1]), clampU8(rest[2]), clampU8(rest[3])}, 4, true
	}
	return Color{}, 0, false
}

func clampU8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
