package status

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/ready/internal/tui/theme"
)

const statusDot = "●"

type Indicator struct {
	Loaded  bool
	Err     error
	Pending int
}

func (i Indicator) Render() string {
	switch {
	case !i.Loaded:
		return lipgloss.NewStyle().
			Foreground(theme.ColorBgLight).
			Render(statusDot + " loading...")
	case i.Err != nil:
		return lipgloss.NewStyle().
			Foreground(theme.ColorRest).
			Render(statusDot + " " + i.Err.Error())
	case i.Pending > 0:
		return lipgloss.NewStyle().
			Foreground(theme.ColorLight).
			Render(fmt.Sprintf("%s %d due", statusDot, i.Pending))
	default:
		return lipgloss.NewStyle().
			Foreground(theme.ColorModerate).
			Render(statusDot + " up to date")
	}
}
