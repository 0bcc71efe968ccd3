package core

// Color represents a foreground color for a screen cell.
type Color uint8

// Cell colors used by the block field, paddle, ball and HUD.
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
	ColorBrightBlue
	ColorBrightYellow
	ColorGray
)

// ansi256 holds the xterm 256-color index for each Color.
var ansi256 = [...]int{
	ColorDefault:      -1,
	ColorRed:          1,
	ColorGreen:        2,
	ColorYellow:       3,
	ColorBlue:         4,
	ColorMagenta:      5,
	ColorCyan:         6,
	ColorWhite:        7,
	ColorBrightRed:    9,
	ColorBrightBlue:   12,
	ColorBrightYellow: 11,
	ColorGray:         245,
}

// Index returns the xterm 256-color palette index, or -1 for the terminal default.
func (c Color) Index() int {
	if int(c) >= len(ansi256) {
		return -1
	}
	return ansi256[c]
}
