package vt

// palette16 resolves a 0-15 palette index to RGB. Bold promotes the basic
// eight to their bright counterparts, matching classic terminal behavior.
func palette16(idx int, bold bool) Color {
	if bold && idx < 8 {
		idx += 8
	}
	const dim, mid, hi uint8 = 64, 128, 255
	switch idx {
	case 0:
		return Color{0, 0, 0}
	case 1:
		return Color{mid, 0, 0}
	case 2:
		return Color{0, mid, 0}
	case 3:
		return Color{mid, mid, 0}
	case 4:
		return Color{0, 0, mid}
	case 5:
		return Color{mid, 0, mid}
	case 6:
		return Color{0, mid, mid}
	case 7:
		return Color{mid, mid, mid}
	case 8:
		return Color{dim, dim, dim}
	case 9:
		return Color{hi, dim, dim}
	case 10:
		return Color{dim, hi, dim}
	case 11:
		return Color{hi, hi, dim}
	case 12:
		return Color{dim, dim, hi}
	case 13:
		return Color{hi, dim, hi}
	case 14:
		return Color{dim, hi, hi}
	default:
		return Color{hi, hi, hi}
	}
}

// palette256 resolves any xterm 256-color index: the 16 basics, the 6×6×6
// cube, and the 24-step grayscale ramp.
func palette256(idx int) Color {
	switch {
	case idx < 0 || idx > 255:
		return DefaultFG
	case idx < 16:
		return palette16(idx, false)
	case idx < 232:
		i := idx - 16
		return Color{cubeChannel(i / 36), cubeChannel((i % 36) / 6), cubeChannel(i % 6)}
	default:
		gray := uint8((idx-232)*10 + 8)
		return Color{gray, gray, gray}
	}
}

func cubeChannel(v int) uint8 {
	if v == 0 {
		return 0
	}
	return uint8(v*40 + 55)
}
