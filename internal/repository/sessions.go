package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xtime"
)

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Insert(ctx context.Context, userID uuid.UUID, s *wellness.TrainingSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, date, duration, rpe, intensity, tss,
			average_hr, max_hr, training_type, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID.String(),
		userID.String(),
		xtime.FormatDay(s.Date),
		s.Duration,
		s.RPE,
		nullFloat(s.Intensity),
		nullFloat(s.TSS),
		nullInt(s.AverageHR),
		nullInt(s.MaxHR),
		s.TrainingType,
		s.Notes,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *sessionRepo) ListUntil(ctx context.Context, userID uuid.UUID, end time.Time) ([]wellness.TrainingSession, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, duration, rpe, intensity, tss, average_hr, max_hr,
			training_type, notes, created_at
		FROM sessions
		WHERE user_id = ? AND date <= ?
		ORDER BY date ASC, created_at ASC`,
		userID.String(), xtime.FormatDay(end),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []wellness.TrainingSession
	for rows.Next() {
		var (
			s         wellness.TrainingSession
			id, date  string
			intensity sql.NullFloat64
			tss       sql.NullFloat64
			avgHR     sql.NullInt64
			maxHR     sql.NullInt64
		)
		if err := rows.Scan(&id, &date, &s.Duration, &s.RPE, &intensity, &tss,
			&avgHR, &maxHR, &s.TrainingType, &s.Notes, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}

		if s.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse session id: %w", err)
		}
		if s.Date, err = xtime.ParseDay(date); err != nil {
			return nil, err
		}
		s.Intensity = floatPtr(intensity)
		s.TSS = floatPtr(tss)
		s.AverageHR = intPtr(avgHR)
		s.MaxHR = intPtr(maxHR)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return out, nil
}

func (r *sessionRepo) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE user_id = ? AND id = ?`,
		userID.String(), id.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}
