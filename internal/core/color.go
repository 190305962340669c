package core

// Color is the foreground of a screen cell. The zero value leaves the
// terminal's own colour.
type Color uint8

// Colors used by the ring, the fighters and the HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	colorCount
)

var palette = [colorCount]string{
	ColorRed:          "1",
	ColorGreen:        "2",
	ColorYellow:       "3",
	ColorWhite:        "7",
	ColorBrightRed:    "9",
	ColorBrightYellow: "11",
	ColorBrightCyan:   "14",
	ColorBrightWhite:  "15",
	ColorOrange:       "208",
	ColorGray:         "245",
}

// ANSI returns the 256-colour palette index of c, or "" for ColorDefault
// and values outside the palette.
func (c Color) ANSI() string {
	if c >= colorCount {
		return ""
	}
	return palette[c]
}
