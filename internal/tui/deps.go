package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/garrettladley/ready/internal/service/tracker"
)

type Deps struct {
	Ctx     context.Context
	Logger  *slog.Logger
	Tracker tracker.Service
	UserID  uuid.UUID
	// Today returns the current time in the user's timezone.
	Today func() time.Time
}
