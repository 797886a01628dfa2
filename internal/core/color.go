package core

// Color identifies the fill of a board cell or piece.
// ColorEmpty is the single sentinel meaning "no locked block here";
// every other value is a real fill.
type Color uint8

const (
	ColorEmpty Color = iota
	ColorRed
	ColorMagenta
	ColorGreen
	ColorBlue
	ColorViolet
	ColorYellow
	ColorBrown
	ColorSkyBlue
	ColorTan
	ColorNavy
	ColorCyan
	ColorCrimson
	ColorBlack

	colorCount
)

var colorNames = [colorCount]string{
	ColorEmpty:   "empty",
	ColorRed:     "red",
	ColorMagenta: "magenta",
	ColorGreen:   "green",
	ColorBlue:    "blue",
	ColorViolet:  "violet",
	ColorYellow:  "yellow",
	ColorBrown:   "brown",
	ColorSkyBlue: "skyblue",
	ColorTan:     "tan",
	ColorNavy:    "navy",
	ColorCyan:    "cyan",
	ColorCrimson: "crimson",
	ColorBlack:   "black",
}

// String returns the lowercase color name.
func (c Color) String() string {
	if c < colorCount {
		return colorNames[c]
	}
	return "unknown"
}

// IsEmpty reports whether c is the empty sentinel.
func (c Color) IsEmpty() bool {
	return c == ColorEmpty
}

// Valid reports whether c is a defined color.
func (c Color) Valid() bool {
	return c < colorCount
}

// PieceColors returns the pool that new pieces draw their color from.
// Empty and black are excluded; black remains a valid fill if placed directly.
func PieceColors() []Color {
	colors := make([]Color, 0, colorCount-2)
	for c := ColorRed; c < colorCount; c++ {
		if c == ColorBlack {
			continue
		}
		colors = append(colors, c)
	}
	return colors
}
