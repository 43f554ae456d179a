package vt

// Color is a fully resolved 24-bit color. Palette-indexed SGR parameters are
// resolved to RGB at parse time so queries never need palette context.
type Color struct {
	R, G, B uint8
}

// Default colors for a cell nothing has drawn to. White on black mirrors the
// palette most terminals start from.
var (
	DefaultFG = Color{255, 255, 255}
	DefaultBG = Color{0, 0, 0}
)

// Cell is a single character position on screen.
type Cell struct {
	Rune    rune
	FG      Color
	BG      Color
	Bold    bool
	Reverse bool
}

func blankCell() Cell {
	return Cell{Rune: ' ', FG: DefaultFG, BG: DefaultBG}
}

// Position is a zero-based (row, col) grid coordinate.
type Position struct {
	Row int
	Col int
}
