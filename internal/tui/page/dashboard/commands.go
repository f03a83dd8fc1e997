package dashboard

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/garrettladley/ready/internal/service/tracker"
	"github.com/garrettladley/ready/internal/wellness"
)

const fetchTimeout = 5 * time.Second

type SummaryMsg struct {
	Summary *tracker.Summary
	Err     error
}

type TasksMsg struct {
	Tasks []wellness.ScheduledTask
	Err   error
}

type TaskCompletedMsg struct {
	ID  wellness.TaskID
	Err error
}

func FetchSummaryCmd(ctx context.Context, svc tracker.Service, userID uuid.UUID, date time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		summary, err := svc.Summary(ctx, userID, date)
		return SummaryMsg{Summary: summary, Err: err}
	}
}

func FetchTasksCmd(ctx context.Context, svc tracker.Service, userID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		tasks, err := svc.PendingTasks(ctx, userID)
		return TasksMsg{Tasks: tasks, Err: err}
	}
}

func CompleteTaskCmd(ctx context.Context, svc tracker.Service, userID uuid.UUID, id wellness.TaskID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		return TaskCompletedMsg{ID: id, Err: svc.CompleteTask(ctx, userID, id)}
	}
}
