package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/ready/internal/tui/components/footer"
	"github.com/garrettladley/ready/internal/tui/page/dashboard"
	"github.com/garrettladley/ready/internal/tui/page/splash"
	"github.com/garrettladley/ready/internal/tui/theme"
	"github.com/garrettladley/ready/internal/xslog"
)

var _ tea.Model = (*Model)(nil)

type page uint

const (
	splashPage page = iota
	dashboardPage
)

const keyHints = "r refresh  j/k select  enter done  q quit"

type state struct {
	dashboard dashboard.State
}

type Model struct {
	ready          bool
	page           page
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	state          state
	deps           Deps
}

func New(deps Deps) Model {
	if deps.Today == nil {
		deps.Today = time.Now
	}
	return Model{
		page:  splashPage,
		theme: theme.New(),
		deps:  deps,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(splash.Duration, func(time.Time) tea.Msg {
			return splash.TickMsg{}
		}),
		m.refresh(),
	)
}

func (m *Model) refresh() tea.Cmd {
	return tea.Batch(
		dashboard.FetchSummaryCmd(m.deps.Ctx, m.deps.Tracker, m.deps.UserID, m.deps.Today()),
		dashboard.FetchTasksCmd(m.deps.Ctx, m.deps.Tracker, m.deps.UserID),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	dash := &m.state.dashboard

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			dash.Status.Loaded = false
			return m, m.refresh()
		case "j", "down":
			dash.MoveSelection(1)
		case "k", "up":
			dash.MoveSelection(-1)
		case "enter":
			if task, ok := dash.SelectedTask(); ok {
				return m, dashboard.CompleteTaskCmd(m.deps.Ctx, m.deps.Tracker, m.deps.UserID, task.ID)
			}
		}

	case splash.TickMsg:
		m.page = dashboardPage

	case dashboard.SummaryMsg:
		dash.Status.Loaded = true
		dash.Status.Err = msg.Err
		if msg.Err != nil {
			m.logError("failed to load summary", msg.Err)
			break
		}
		dash.Summary = msg.Summary

	case dashboard.TasksMsg:
		if msg.Err != nil {
			dash.Status.Err = msg.Err
			m.logError("failed to load tasks", msg.Err)
			break
		}
		dash.Tasks = msg.Tasks
		dash.Status.Pending = len(msg.Tasks)
		dash.MoveSelection(0)

	case dashboard.TaskCompletedMsg:
		if msg.Err != nil {
			dash.Status.Err = msg.Err
			m.logError("failed to complete task", msg.Err)
			break
		}
		return m, dashboard.FetchTasksCmd(m.deps.Ctx, m.deps.Tracker, m.deps.UserID)
	}

	return m, nil
}

func (m *Model) logError(msg string, err error) {
	if m.deps.Logger != nil {
		m.deps.Logger.Error(msg, xslog.Error(err))
	}
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true

	// splash uses pure black BG, everything else uses default dark
	if m.page == splashPage {
		view.BackgroundColor = theme.ColorBlack
	} else {
		view.BackgroundColor = m.theme.Background()
	}

	if !m.ready {
		return view
	}

	var content string
	switch m.page {
	case splashPage:
		content = splash.View(m.theme, m.viewportWidth, m.viewportHeight)
	case dashboardPage:
		body := dashboard.View(m.state.dashboard, m.viewportWidth, m.viewportHeight)

		bottom := lipgloss.Place(
			m.viewportWidth,
			m.viewportHeight,
			lipgloss.Left,
			lipgloss.Bottom,
			footer.New(dashboard.StatusView(m.state.dashboard)+"  "+keyHints, m.viewportWidth).Render(),
		)

		content = m.overlayStrings(body, bottom)
	}

	view.SetContent(content)
	return view
}

func (m *Model) overlayStrings(base, overlay string) string {
	baseLines := splitLines(base)
	overlayLines := splitLines(overlay)

	maxLines := len(baseLines)
	if len(overlayLines) > maxLines {
		maxLines = len(overlayLines)
	}

	result := make([]string, maxLines)
	for i := range maxLines {
		var baseLine, overlayLine string
		if i < len(baseLines) {
			baseLine = baseLines[i]
		}
		if i < len(overlayLines) {
			overlayLine = overlayLines[i]
		}

		baseRunes := []rune(baseLine)
		overlayRunes := []rune(overlayLine)

		maxLen := len(baseRunes)
		if len(overlayRunes) > maxLen {
			maxLen = len(overlayRunes)
		}

		merged := make([]rune, maxLen)
		for j := 0; j < maxLen; j++ {
			baseChar, overlayChar := ' ', ' '
			if j < len(baseRunes) {
				baseChar = baseRunes[j]
			}
			if j < len(overlayRunes) {
				overlayChar = overlayRunes[j]
			}

			if overlayChar != ' ' {
				merged[j] = overlayChar
			} else {
				merged[j] = baseChar
			}
		}
		result[i] = string(merged)
	}

	return joinLines(result)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := range len(s) {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	result := lines[0]
	for i := 1; i < len(lines); i++ {
		result += "\n" + lines[i]
	}
	return result
}
