package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/ready/internal/readiness"
)

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorTeal     = lipgloss.Color("#00F19F") // highlights, TQR
	ColorLoad     = lipgloss.Color("#0093E7") // training load
	ColorNeutral  = lipgloss.Color("#7BA1BB") // data without valuation
	ColorStrong   = lipgloss.Color("#67AEE6") // readiness 76-100
	ColorModerate = lipgloss.Color("#16EC06") // readiness 51-75
	ColorLight    = lipgloss.Color("#FFDE00") // readiness 26-50
	ColorRest     = lipgloss.Color("#FF0026") // readiness 0-25
)

var (
	ColorBgDark  = lipgloss.Color("#101518") // Darker end of gradient
	ColorBgLight = lipgloss.Color("#283339") // Lighter end of gradient
)

// Readiness maps a readiness band color onto the palette. Unknown colors
// render neutral.
func Readiness(c readiness.Color) color.Color {
	switch c {
	case readiness.ColorBlue:
		return ColorStrong
	case readiness.ColorGreen:
		return ColorModerate
	case readiness.ColorYellow:
		return ColorLight
	case readiness.ColorRed:
		return ColorRest
	default:
		return ColorNeutral
	}
}
