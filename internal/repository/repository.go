package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/ready/internal/wellness"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	Assessments AssessmentRepository
	Sessions    SessionRepository
	Completions CompletionRepository
}

// New returns SQLite backed repositories.
func New(db *sql.DB) *Repository {
	return &Repository{
		Assessments: &assessmentRepo{db: db},
		Sessions:    &sessionRepo{db: db},
		Completions: &completionRepo{db: db},
	}
}

// Days are stored as calendar dates; time of day is dropped on write and
// reads return midnight UTC.
type AssessmentRepository interface {
	// Upsert creates the assessment for its date or overwrites the existing one.
	Upsert(ctx context.Context, userID uuid.UUID, a *wellness.DailyAssessment) error
	// Get returns nil, nil when there is no assessment for the day.
	Get(ctx context.Context, userID uuid.UUID, day time.Time) (*wellness.DailyAssessment, error)
	// GetByDateRange returns assessments with start <= date <= end, oldest first.
	GetByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]wellness.DailyAssessment, error)
}

type SessionRepository interface {
	Insert(ctx context.Context, userID uuid.UUID, s *wellness.TrainingSession) error
	// ListUntil returns every session on or before end, oldest first.
	ListUntil(ctx context.Context, userID uuid.UUID, end time.Time) ([]wellness.TrainingSession, error)
	// Delete returns ErrNotFound when the user has no session with id.
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type CompletionRepository interface {
	// Record stores at as the task's latest completion.
	Record(ctx context.Context, userID uuid.UUID, taskID wellness.TaskID, at time.Time) error
	LastCompletions(ctx context.Context, userID uuid.UUID) (map[wellness.TaskID]time.Time, error)
}
