package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
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
	ColorDarkGreen
	ColorDarkGray
)

// ANSI returns the 256-color palette index used to draw c.
// ColorDefault returns -1, meaning the terminal's foreground color.
func (c Color) ANSI() int {
	switch c {
	case ColorRed:
		return 1
	case ColorGreen:
		return 2
	case ColorYellow:
		return 3
	case ColorBlue:
		return 4
	case ColorMagenta:
		return 5
	case ColorCyan:
		return 6
	case ColorWhite:
		return 7
	case ColorBrightRed:
		return 9
	case ColorBrightGreen:
		return 10
	case ColorBrightYellow:
		return 11
	case ColorBrightBlue:
		return 12
	case ColorBrightMagenta:
		return 13
	case ColorBrightCyan:
		return 14
	case ColorBrightWhite:
		return 15
	case ColorOrange:
		return 208
	case ColorGray:
		return 244
	case ColorDarkGreen:
		return 22
	case ColorDarkGray:
		return 238
	default:
		return -1
	}
}
