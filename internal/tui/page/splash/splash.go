package splash

import (
	"time"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/ready/internal/tui/theme"
)

const Duration = 1200 * time.Millisecond

const Logo = `
 ▄▄▄▄▄▄    ▄▄▄▄▄▄▄▄    ▄▄▄▄    ▄▄▄▄▄     ▄▄    ▄▄
 ██▀▀▀▀█▄  ██▀▀▀▀▀▀   ██▀▀██   ██▀▀▀██   ▀██  ██▀
 ██    ██  ██        ██    ██  ██    ██   ▀████▀
 ██████▀   ███████   ████████  ██    ██    ▀██▀
 ██  ▀██▄  ██        ██    ██  ██    ██     ██
 ██    ██  ██▄▄▄▄▄▄  ██    ██  ██▄▄▄██      ██
 ▀▀    ▀▀  ▀▀▀▀▀▀▀▀  ▀▀    ▀▀  ▀▀▀▀▀        ▀▀`

type TickMsg struct{}

func View(t theme.Theme, width, height int) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		t.TextAccent().Render(Logo),
	)
}
