package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/garrettladley/ready/internal/client/ready"
	"github.com/garrettladley/ready/internal/config"
	"github.com/garrettladley/ready/internal/db"
	"github.com/garrettladley/ready/internal/repository"
	"github.com/garrettladley/ready/internal/schedule"
	"github.com/garrettladley/ready/internal/service/tracker"
	"github.com/garrettladley/ready/internal/xslog"
	"github.com/garrettladley/ready/internal/xtime"
)

// app is the local, single-user wiring shared by every command.
type app struct {
	tracker tracker.Service
	userID  uuid.UUID
	loc     *time.Location
	logger  *slog.Logger
	db      *sql.DB // nil when talking to a server
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	logger := xslog.NewLoggerFromEnv(os.Stderr)

	if cfg.ServerURL != "" {
		return &app{
			tracker: ready.New(cfg.ServerURL, ready.WithLogger(logger)),
			userID:  cfg.UserID,
			loc:     loc,
			logger:  logger,
		}, nil
	}

	table, err := cfg.Table()
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	sqlDB, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	t := tracker.New(repository.New(sqlDB),
		tracker.WithScheduler(schedule.New(schedule.WithTable(table), schedule.WithLocation(loc))),
		tracker.WithSleepReference(cfg.SleepReference),
		tracker.WithLoadThreshold(cfg.LoadThreshold),
	)

	return &app{
		tracker: t,
		userID:  cfg.UserID,
		loc:     loc,
		logger:  logger,
		db:      sqlDB,
	}, nil
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// context attaches the app logger so service logs go to stderr.
func (a *app) context(ctx context.Context) context.Context {
	return xslog.WithLogger(ctx, a.logger)
}

func (a *app) today() time.Time {
	return xtime.Today(time.Now(), a.loc)
}

// day parses an optional YYYY-MM-DD flag, defaulting to today.
func (a *app) day(s string) (time.Time, error) {
	if s == "" {
		return a.today(), nil
	}
	d, err := xtime.ParseDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

func printJSON(v any) error {
	enc := go_json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
