package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI code.
type Color uint8

// Colors used by the board, the HUD and overlays.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorBrightCyan
	ColorBrightWhite
	ColorGray
)
