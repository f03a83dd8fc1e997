package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/garrettladley/ready/internal/migrations/postgres"
	xredis "github.com/garrettladley/ready/internal/redis"
	pgrepo "github.com/garrettladley/ready/internal/repository/postgres"
	"github.com/garrettladley/ready/internal/schedule"
	"github.com/garrettladley/ready/internal/server"
	"github.com/garrettladley/ready/internal/server/handler"
	"github.com/garrettladley/ready/internal/service/tracker"
	"github.com/garrettladley/ready/internal/storage"
	"github.com/garrettladley/ready/internal/telemetry"
	"github.com/garrettladley/ready/internal/xslog"
)

const (
	keyPort    = "port"
	keyEnv     = "env"
	keyBackend = "backend"
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := server.ReadConfig()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	table, err := cfg.Table()
	if err != nil {
		return err
	}

	pool, err := initPostgres(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize postgres: %w", err)
	}
	defer pool.Close()

	backend, err := initBackend(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close backend", xslog.Error(err))
		}
	}()

	registry := telemetry.NewRegistry(
		pgxpoolprometheus.NewCollector(pool, map[string]string{"db_name": "ready"}),
	)
	metrics := telemetry.New(registry)

	trackerService := tracker.New(pgrepo.New(pool),
		tracker.WithCache(backend, cfg.Cache.TTL),
		tracker.WithMetrics(metrics),
		tracker.WithScheduler(schedule.New(schedule.WithTable(table), schedule.WithLocation(loc))),
	)

	httpServer := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: server.NewHandler(server.Deps{
			Logger:   logger,
			Tracker:  trackerService,
			Limiter:  backend,
			Metrics:  metrics,
			Registry: registry,
			Checks: map[string]handler.Pinger{
				"postgres": handler.PingFunc(pool.Ping),
				"cache":    backend,
			},
			Location: loc,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			slog.String(keyPort, cfg.Port),
			slog.String(keyEnv, string(cfg.Env)))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-done:
		logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

// initBackend uses Redis when configured and an in-process backend otherwise.
func initBackend(ctx context.Context, cfg server.Config, logger *slog.Logger) (storage.Backend, error) {
	if cfg.Redis.URL == "" {
		logger.InfoContext(ctx, "initializing in-memory backend", slog.String(keyBackend, "memory"))
		return storage.NewMemoryBackend(cfg.RateLimit.Limit, cfg.RateLimit.Burst), nil
	}

	client, err := xredis.New(ctx, xredis.Config{URL: cfg.Redis.URL})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "initializing Redis backend", slog.String(keyBackend, "redis"))
	backend, err := storage.NewRedisBackend(storage.RedisConfig{
		Client:    client,
		RateLimit: cfg.RateLimit.Burst,
		Window:    cfg.RateLimit.Window,
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return backend, nil
}

func initPostgres(ctx context.Context, cfg server.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	logger.InfoContext(ctx, "initializing PostgreSQL")

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := postgres.Apply(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return pool, nil
}
