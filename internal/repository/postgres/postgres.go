// Package postgres implements the repository interfaces on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garrettladley/ready/internal/repository"
	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xtime"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Querier = (*pgxpool.Pool)(nil)

func New(db Querier) *repository.Repository {
	return &repository.Repository{
		Assessments: &assessmentRepo{db: db},
		Sessions:    &sessionRepo{db: db},
		Completions: &completionRepo{db: db},
	}
}

type assessmentRepo struct {
	db Querier
}

var _ repository.AssessmentRepository = (*assessmentRepo)(nil)

const assessmentColumns = `date, sleep_quality, sleep_regularity, fatigue_level, mood,
	muscle_soreness, stress_level, exhaustion, sleep_duration, resting_hr, updated_at`

func (r *assessmentRepo) Upsert(ctx context.Context, userID uuid.UUID, a *wellness.DailyAssessment) error {
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO assessments (user_id, `+assessmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id, date) DO UPDATE SET
			sleep_quality = EXCLUDED.sleep_quality,
			sleep_regularity = EXCLUDED.sleep_regularity,
			fatigue_level = EXCLUDED.fatigue_level,
			mood = EXCLUDED.mood,
			muscle_soreness = EXCLUDED.muscle_soreness,
			stress_level = EXCLUDED.stress_level,
			exhaustion = EXCLUDED.exhaustion,
			sleep_duration = EXCLUDED.sleep_duration,
			resting_hr = EXCLUDED.resting_hr,
			updated_at = EXCLUDED.updated_at`,
		userID,
		xtime.Day(a.Date),
		a.SleepQuality,
		a.SleepRegularity,
		a.FatigueLevel,
		a.Mood,
		a.MuscleSoreness,
		a.StressLevel,
		a.Exhaustion,
		a.SleepDuration,
		a.RestingHR,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting assessment: %w", err)
	}
	return nil
}

func (r *assessmentRepo) Get(ctx context.Context, userID uuid.UUID, day time.Time) (*wellness.DailyAssessment, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+assessmentColumns+`
		FROM assessments
		WHERE user_id = $1 AND date = $2`,
		userID, xtime.Day(day),
	)
	a, err := scanAssessment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting assessment: %w", err)
	}
	return a, nil
}

func (r *assessmentRepo) GetByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]wellness.DailyAssessment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+assessmentColumns+`
		FROM assessments
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC`,
		userID, xtime.Day(start), xtime.Day(end),
	)
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (wellness.DailyAssessment, error) {
		a, err := scanAssessment(row)
		if err != nil {
			return wellness.DailyAssessment{}, err
		}
		return *a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	return out, nil
}

func scanAssessment(row pgx.Row) (*wellness.DailyAssessment, error) {
	var a wellness.DailyAssessment
	if err := row.Scan(
		&a.Date,
		&a.SleepQuality,
		&a.SleepRegularity,
		&a.FatigueLevel,
		&a.Mood,
		&a.MuscleSoreness,
		&a.StressLevel,
		&a.Exhaustion,
		&a.SleepDuration,
		&a.RestingHR,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.Date = xtime.Day(a.Date)
	return &a, nil
}

type sessionRepo struct {
	db Querier
}

var _ repository.SessionRepository = (*sessionRepo)(nil)

func (r *sessionRepo) Insert(ctx context.Context, userID uuid.UUID, s *wellness.TrainingSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (id, user_id, date, duration, rpe, intensity, tss,
			average_hr, max_hr, training_type, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		s.ID,
		userID,
		xtime.Day(s.Date),
		s.Duration,
		s.RPE,
		s.Intensity,
		s.TSS,
		s.AverageHR,
		s.MaxHR,
		s.TrainingType,
		s.Notes,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *sessionRepo) ListUntil(ctx context.Context, userID uuid.UUID, end time.Time) ([]wellness.TrainingSession, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, date, duration, rpe, intensity, tss, average_hr, max_hr,
			training_type, notes, created_at
		FROM sessions
		WHERE user_id = $1 AND date <= $2
		ORDER BY date ASC, created_at ASC`,
		userID, xtime.Day(end),
	)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (wellness.TrainingSession, error) {
		var s wellness.TrainingSession
		err := row.Scan(&s.ID, &s.Date, &s.Duration, &s.RPE, &s.Intensity, &s.TSS,
			&s.AverageHR, &s.MaxHR, &s.TrainingType, &s.Notes, &s.CreatedAt)
		s.Date = xtime.Day(s.Date)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return out, nil
}

func (r *sessionRepo) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

type completionRepo struct {
	db Querier
}

var _ repository.CompletionRepository = (*completionRepo)(nil)

func (r *completionRepo) Record(ctx context.Context, userID uuid.UUID, taskID wellness.TaskID, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO task_completions (user_id, task_id, completed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, task_id) DO UPDATE SET
			completed_at = EXCLUDED.completed_at`,
		userID, string(taskID), at,
	)
	if err != nil {
		return fmt.Errorf("recording completion: %w", err)
	}
	return nil
}

func (r *completionRepo) LastCompletions(ctx context.Context, userID uuid.UUID) (map[wellness.TaskID]time.Time, error) {
	rows, err := r.db.Query(ctx,
		`SELECT task_id, completed_at FROM task_completions WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing completions: %w", err)
	}
	defer rows.Close()

	out := make(map[wellness.TaskID]time.Time)
	for rows.Next() {
		var (
			taskID string
			at     time.Time
		)
		if err := rows.Scan(&taskID, &at); err != nil {
			return nil, fmt.Errorf("scanning completion: %w", err)
		}
		out[wellness.TaskID(taskID)] = at
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing completions: %w", err)
	}
	return out, nil
}
