package ready

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/ready/internal/service/tracker"
	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xtime"
)

var _ tracker.Service = (*Client)(nil)

func userPath(userID uuid.UUID) string {
	return "/api/users/" + userID.String()
}

func (c *Client) SubmitAssessment(ctx context.Context, userID uuid.UUID, a wellness.DailyAssessment) (*wellness.DailyAssessment, error) {
	path := userPath(userID) + "/assessments/" + xtime.FormatDay(a.Date)

	var saved wellness.DailyAssessment
	if err := c.do(ctx, http.MethodPut, path, nil, a, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) GetAssessment(ctx context.Context, userID uuid.UUID, day time.Time) (*wellness.DailyAssessment, error) {
	path := userPath(userID) + "/assessments/" + xtime.FormatDay(day)

	var a wellness.DailyAssessment
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) LogSession(ctx context.Context, userID uuid.UUID, s wellness.TrainingSession) (*wellness.TrainingSession, error) {
	var saved wellness.TrainingSession
	if err := c.do(ctx, http.MethodPost, userPath(userID)+"/sessions", nil, s, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) DeleteSession(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, userPath(userID)+"/sessions/"+id.String(), nil, nil, nil)
}

func (c *Client) Summary(ctx context.Context, userID uuid.UUID, date time.Time) (*tracker.Summary, error) {
	query := url.Values{"date": {xtime.FormatDay(date)}}

	var summary tracker.Summary
	if err := c.do(ctx, http.MethodGet, userPath(userID)+"/summary", query, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) History(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]tracker.DayRecovery, error) {
	query := url.Values{
		"start": {xtime.FormatDay(start)},
		"end":   {xtime.FormatDay(end)},
	}

	var days []tracker.DayRecovery
	if err := c.do(ctx, http.MethodGet, userPath(userID)+"/history", query, nil, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func (c *Client) PendingTasks(ctx context.Context, userID uuid.UUID) ([]wellness.ScheduledTask, error) {
	var tasks []wellness.ScheduledTask
	if err := c.do(ctx, http.MethodGet, userPath(userID)+"/tasks", nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CompleteTask(ctx context.Context, userID uuid.UUID, taskID wellness.TaskID) error {
	path := userPath(userID) + "/tasks/" + url.PathEscape(string(taskID)) + "/complete"
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}
