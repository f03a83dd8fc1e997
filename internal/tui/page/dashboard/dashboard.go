package dashboard

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/ready/internal/load"
	"github.com/garrettladley/ready/internal/readiness"
	"github.com/garrettladley/ready/internal/service/tracker"
	"github.com/garrettladley/ready/internal/tui/components/gauge"
	"github.com/garrettladley/ready/internal/tui/components/status"
	"github.com/garrettladley/ready/internal/tui/theme"
	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xmath"
)

type State struct {
	Status   status.Indicator
	Summary  *tracker.Summary
	Tasks    []wellness.ScheduledTask
	Selected int
}

// SelectedTask returns false when there are no pending tasks.
func (s State) SelectedTask() (wellness.ScheduledTask, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Tasks) {
		return wellness.ScheduledTask{}, false
	}
	return s.Tasks[s.Selected], true
}

func (s *State) MoveSelection(delta int) {
	if len(s.Tasks) == 0 {
		s.Selected = 0
		return
	}
	s.Selected = xmath.Clamp(s.Selected+delta, 0, len(s.Tasks)-1)
}

func View(state State, width, height int) string {
	gaugesRow := lipgloss.JoinHorizontal(
		lipgloss.Top,
		readinessGauge(state.Summary).Render(),
		"    ",
		recoveryGauge(state.Summary).Render(),
		"    ",
		tqrGauge(state.Summary).Render(),
	)

	body := lipgloss.JoinVertical(
		lipgloss.Center,
		gaugesRow,
		"",
		recommendationView(state.Summary),
		loadView(state.Summary),
		"",
		tasksView(state.Tasks, state.Selected),
	)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		body,
	)
}

func StatusView(state State) string {
	return state.Status.Render()
}

func readinessGauge(s *tracker.Summary) gauge.Gauge {
	var (
		value *float64
		c     color.Color = theme.ColorNeutral
	)
	if s != nil && s.Recommendation != nil {
		score := float64(s.Recommendation.Score)
		value = &score
		c = theme.Readiness(s.Recommendation.Color)
	}
	return gauge.New(value, 100, "READINESS", c, gauge.WithFormat("%.0f"))
}

func recoveryGauge(s *tracker.Summary) gauge.Gauge {
	var (
		value *float64
		c     color.Color = theme.ColorNeutral
	)
	if s != nil && s.Assessment != nil {
		ri := s.Recovery.RecoveryIndex
		value = &ri
		c = theme.Readiness(readiness.ColorFor(int(xmath.Round(ri, 0))))
	}
	return gauge.New(value, 100, "RECOVERY", c)
}

func tqrGauge(s *tracker.Summary) gauge.Gauge {
	var value *float64
	if s != nil {
		value = s.TQR
	}
	return gauge.New(value, 10, "TQR", theme.ColorTeal)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(theme.ColorDim)
)

func recommendationView(s *tracker.Summary) string {
	if s == nil || s.Recommendation == nil {
		return dimStyle.Render("No check-in yet today. Run `ready assess` to record one.")
	}
	r := s.Recommendation
	title := titleStyle.Foreground(theme.Readiness(r.Color)).Render(r.Label)
	return lipgloss.JoinVertical(lipgloss.Center, title, dimStyle.Render(r.Description))
}

func loadView(s *tracker.Summary) string {
	if s == nil {
		return ""
	}
	line := fmt.Sprintf("ATL %.0f  CTL %.0f  TSB %+.0f  %s",
		s.Load.ATL, s.Load.CTL, s.Load.TSB, load.FormDescription(s.Load.TSB))
	if s.Assessment != nil {
		line += fmt.Sprintf("  |  sleep tonight %.1fh", s.Recovery.SleepNeededTonight)
	}
	return lipgloss.NewStyle().Foreground(theme.ColorLoad).Render(line)
}

func tasksView(tasks []wellness.ScheduledTask, selected int) string {
	if len(tasks) == 0 {
		return dimStyle.Render("No questionnaires due.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Due"))
	for i, task := range tasks {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(theme.ColorWhite)
		if i == selected {
			cursor = "> "
			style = style.Foreground(theme.ColorTeal)
		}
		b.WriteString("\n")
		b.WriteString(style.Render(fmt.Sprintf("%s%s (%s)", cursor, task.Title, task.Priority)))
	}
	return b.String()
}
