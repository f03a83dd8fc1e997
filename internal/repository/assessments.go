package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xtime"
)

type assessmentRepo struct {
	db *sql.DB
}

const assessmentColumns = `date, sleep_quality, sleep_regularity, fatigue_level, mood,
	muscle_soreness, stress_level, exhaustion, sleep_duration, resting_hr, updated_at`

func (r *assessmentRepo) Upsert(ctx context.Context, userID uuid.UUID, a *wellness.DailyAssessment) error {
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assessments (user_id, `+assessmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE SET
			sleep_quality = excluded.sleep_quality,
			sleep_regularity = excluded.sleep_regularity,
			fatigue_level = excluded.fatigue_level,
			mood = excluded.mood,
			muscle_soreness = excluded.muscle_soreness,
			stress_level = excluded.stress_level,
			exhaustion = excluded.exhaustion,
			sleep_duration = excluded.sleep_duration,
			resting_hr = excluded.resting_hr,
			updated_at = excluded.updated_at`,
		userID.String(),
		xtime.FormatDay(a.Date),
		a.SleepQuality,
		a.SleepRegularity,
		a.FatigueLevel,
		a.Mood,
		a.MuscleSoreness,
		a.StressLevel,
		a.Exhaustion,
		nullFloat(a.SleepDuration),
		nullInt(a.RestingHR),
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert assessment: %w", err)
	}
	return nil
}

func (r *assessmentRepo) Get(ctx context.Context, userID uuid.UUID, day time.Time) (*wellness.DailyAssessment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+assessmentColumns+`
		FROM assessments
		WHERE user_id = ? AND date = ?`,
		userID.String(), xtime.FormatDay(day),
	)
	a, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return a, nil
}

func (r *assessmentRepo) GetByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]wellness.DailyAssessment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+assessmentColumns+`
		FROM assessments
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`,
		userID.String(), xtime.FormatDay(start), xtime.FormatDay(end),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []wellness.DailyAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssessment(s scanner) (*wellness.DailyAssessment, error) {
	var (
		a         wellness.DailyAssessment
		date      string
		sleep     sql.NullFloat64
		restingHR sql.NullInt64
	)
	if err := s.Scan(
		&date,
		&a.SleepQuality,
		&a.SleepRegularity,
		&a.FatigueLevel,
		&a.Mood,
		&a.MuscleSoreness,
		&a.StressLevel,
		&a.Exhaustion,
		&sleep,
		&restingHR,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	day, err := xtime.ParseDay(date)
	if err != nil {
		return nil, err
	}
	a.Date = day
	a.SleepDuration = floatPtr(sleep)
	a.RestingHR = intPtr(restingHR)
	return &a, nil
}
