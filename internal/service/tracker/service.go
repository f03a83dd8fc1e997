// Package tracker stores check-ins, training sessions and task completions
// and turns them into daily readiness and recovery summaries.
package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/ready/internal/readiness"
	"github.com/garrettladley/ready/internal/recovery"
	"github.com/garrettladley/ready/internal/wellness"
)

const (
	// BaselineDays of assessments feed the resting heart rate baseline and
	// sleep debt.
	BaselineDays = 14
	// MaxHistoryDays bounds a single History request.
	MaxHistoryDays = 92
)

var (
	ErrInvalidRange = errors.New("end is before start")
	ErrRangeTooLong = errors.New("range exceeds maximum history length")
)

type Service interface {
	// SubmitAssessment creates or replaces the check-in for its calendar day.
	SubmitAssessment(ctx context.Context, userID uuid.UUID, a wellness.DailyAssessment) (*wellness.DailyAssessment, error)
	// GetAssessment wraps repository.ErrNotFound when there is no check-in.
	GetAssessment(ctx context.Context, userID uuid.UUID, day time.Time) (*wellness.DailyAssessment, error)

	// LogSession stores a session, deriving its TSS when not supplied.
	LogSession(ctx context.Context, userID uuid.UUID, s wellness.TrainingSession) (*wellness.TrainingSession, error)
	DeleteSession(ctx context.Context, userID uuid.UUID, id uuid.UUID) error

	Summary(ctx context.Context, userID uuid.UUID, date time.Time) (*Summary, error)
	History(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]DayRecovery, error)

	PendingTasks(ctx context.Context, userID uuid.UUID) ([]wellness.ScheduledTask, error)
	// CompleteTask wraps schedule.ErrUnknownTask for ids not in the schedule.
	CompleteTask(ctx context.Context, userID uuid.UUID, taskID wellness.TaskID) error
}

// Summary is everything known about one calendar day.
type Summary struct {
	Date       time.Time                 `json:"date"`
	Assessment *wellness.DailyAssessment `json:"assessment,omitempty"`
	// Recommendation is absent when there is no check-in for the day.
	Recommendation *readiness.Recommendation `json:"recommendation,omitempty"`
	Load           wellness.TrainingMetrics  `json:"load"`
	Form           string                    `json:"form"`
	Sessions       []SessionLoad             `json:"sessions"`
	TQR            *float64                  `json:"tqr,omitempty"`
	PSR            *float64                  `json:"psr,omitempty"`
	Recovery       recovery.Result           `json:"recovery"`
	Penalties      recovery.Penalties        `json:"penalties"`
	SleepDebt      float64                   `json:"sleep_debt"`
	ComputedAt     time.Time                 `json:"computed_at"`
}

// SessionLoad is the load of one session on the summary day.
type SessionLoad struct {
	ID           uuid.UUID `json:"id"`
	TrainingType string    `json:"training_type,omitempty"`
	Duration     float64   `json:"duration"`
	TSS          float64   `json:"tss"`
	TRIMP        float64   `json:"trimp"`
	PSE          float64   `json:"pse"`
}

// DayRecovery is one cell of the calendar view.
type DayRecovery struct {
	Date    time.Time       `json:"date"`
	Missing bool            `json:"missing"`
	TQR     *float64        `json:"tqr,omitempty"`
	Score   *int            `json:"score,omitempty"`
	Color   readiness.Color `json:"color,omitempty"`
}
