package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/ready/internal/wellness"
)

type completionRepo struct {
	db *sql.DB
}

func (r *completionRepo) Record(ctx context.Context, userID uuid.UUID, taskID wellness.TaskID, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO task_completions (user_id, task_id, completed_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, task_id) DO UPDATE SET
			completed_at = excluded.completed_at`,
		userID.String(), string(taskID), at,
	)
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	return nil
}

func (r *completionRepo) LastCompletions(ctx context.Context, userID uuid.UUID) (map[wellness.TaskID]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id, completed_at FROM task_completions WHERE user_id = ?`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[wellness.TaskID]time.Time)
	for rows.Next() {
		var (
			taskID string
			at     time.Time
		)
		if err := rows.Scan(&taskID, &at); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		out[wellness.TaskID(taskID)] = at
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	return out, nil
}
