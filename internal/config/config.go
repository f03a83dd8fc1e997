package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"

	"github.com/garrettladley/ready/internal/paths"
	"github.com/garrettladley/ready/internal/schedule"
)

// LocalUserID owns the data of a single-user local install.
var LocalUserID = uuid.MustParse("00000000-0000-4000-8000-000000000001")

type Config struct {
	DBPath       string    `env:"READY_DB_PATH"`
	UserID       uuid.UUID `env:"READY_USER_ID"`
	ScheduleFile string    `env:"READY_SCHEDULE_FILE"`
	Timezone     string    `env:"READY_TIMEZONE"`
	// ServerURL points the CLI at a remote server instead of the local database.
	ServerURL    string    `env:"READY_SERVER_URL"`

	SleepReference float64 `env:"READY_SLEEP_REFERENCE" envDefault:"8"`
	LoadThreshold  float64 `env:"READY_LOAD_THRESHOLD" envDefault:"150"`
}

func Read() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.DBPath == "" {
		if cfg.DBPath, err = paths.DB(); err != nil {
			return Config{}, err
		}
	}
	if cfg.UserID == uuid.Nil {
		cfg.UserID = LocalUserID
	}
	if cfg.SleepReference <= 0 {
		return Config{}, fmt.Errorf("READY_SLEEP_REFERENCE must be positive, got %v", cfg.SleepReference)
	}
	if cfg.LoadThreshold <= 0 {
		return Config{}, fmt.Errorf("READY_LOAD_THRESHOLD must be positive, got %v", cfg.LoadThreshold)
	}
	return cfg, nil
}

// Location returns the configured timezone, defaulting to the local one.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid READY_TIMEZONE: %w", err)
	}
	return loc, nil
}

// Table loads the questionnaire table. An unset file falls back to the
// default location, and a missing default file to the built-in table.
func (c Config) Table() ([]schedule.Questionnaire, error) {
	path := c.ScheduleFile
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = paths.Schedule(); err != nil {
			return schedule.DefaultTable(), nil
		}
	}

	table, err := schedule.LoadTable(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return schedule.DefaultTable(), nil
	}
	return table, err
}
