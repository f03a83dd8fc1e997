package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	appenv "github.com/garrettladley/ready/internal/env"
	"github.com/garrettladley/ready/internal/schedule"
)

type Config struct {
	Port         string             `env:"PORT" envDefault:"8080"`
	Env          appenv.Environment `env:"ENV" envDefault:"development"`
	DatabaseURL  string             `env:"DATABASE_URL,required"`
	Timezone     string             `env:"TIMEZONE" envDefault:"UTC"`
	ScheduleFile string             `env:"SCHEDULE_FILE"`
	Redis        Redis              `envPrefix:"REDIS_"`
	RateLimit    RateLimit          `envPrefix:"RATE_"`
	Cache        Cache              `envPrefix:"CACHE_"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Redis is optional; without a URL the server keeps its rate limits and
// cache in process.
type Redis struct {
	URL string `env:"URL"`
}

type RateLimit struct {
	Limit  float64       `env:"LIMIT" envDefault:"10"`
	Burst  int           `env:"BURST" envDefault:"20"`
	Window time.Duration `env:"WINDOW" envDefault:"1s"`
}

type Cache struct {
	TTL time.Duration `env:"TTL" envDefault:"10m"`
}

func ReadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if cfg.RateLimit.Limit <= 0 || cfg.RateLimit.Burst <= 0 {
		return Config{}, fmt.Errorf("rate limit must be positive, got limit=%v burst=%d",
			cfg.RateLimit.Limit, cfg.RateLimit.Burst)
	}
	return cfg, nil
}

func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	return loc, nil
}

// Table loads the TOML questionnaire table at ScheduleFile, or the built-in
// table when it is unset.
func (c Config) Table() ([]schedule.Questionnaire, error) {
	if c.ScheduleFile == "" {
		return schedule.DefaultTable(), nil
	}
	table, err := schedule.LoadTable(c.ScheduleFile)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_FILE: %w", err)
	}
	return table, nil
}
