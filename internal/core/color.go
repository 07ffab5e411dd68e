package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// cursesOrder is the classic 8-color terminal order used by level files.
var cursesOrder = [8]Color{
	ColorGray, ColorRed, ColorGreen, ColorYellow,
	ColorBlue, ColorMagenta, ColorCyan, ColorWhite,
}

// PaletteColor converts a level-file color code to a Color.
// Codes are color pairs numbered fg*8+bg; only the foreground is kept.
// Negative codes map to ColorDefault.
func PaletteColor(code int) Color {
	if code < 0 {
		return ColorDefault
	}
	return cursesOrder[(code/8)%8]
}

// Bright returns the bright variant of one of the eight base colors.
func (c Color) Bright() Color {
	if c >= ColorRed && c <= ColorWhite {
		return c + (ColorBrightRed - ColorRed)
	}
	return c
}
