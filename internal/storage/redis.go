package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/garrettladley/ready/internal/xtime"
)

var _ Backend = (*RedisBackend)(nil)

const (
	rateLimitKeyPrefix   = "ratelimit:"
	summaryKeyPrefix     = "summary:"
	summaryKeysKeyPrefix = "summary-keys:"
)

type RedisConfig struct {
	Client *redis.Client
	// Requests allowed per Window for each key.
	RateLimit int
	Window    time.Duration
}

type RedisBackend struct {
	client     *redis.Client
	rateLimit  int
	rateWindow time.Duration
}

func NewRedisBackend(cfg RedisConfig) (*RedisBackend, error) {
	if cfg.Client == nil {
		return nil, errors.New("redis client is required")
	}
	if cfg.RateLimit <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d", cfg.RateLimit)
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Second
	}
	return &RedisBackend{
		client:     cfg.Client,
		rateLimit:  cfg.RateLimit,
		rateWindow: window,
	}, nil
}

func (r *RedisBackend) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	params := rateLimitParams{
		window: r.rateWindow,
		limit:  r.rateLimit,
		ttl:    r.rateWindow + time.Second,
	}

	wait, err := runRateLimitScript(ctx, r.client, rateLimitKeyPrefix+key, params)
	if err != nil {
		return RateLimitResult{}, err
	}

	return RateLimitResult{
		Allowed:    wait == 0,
		RetryAfter: wait,
	}, nil
}

func summaryKey(userID uuid.UUID, day time.Time) string {
	return summaryKeyPrefix + userID.String() + ":" + xtime.FormatDay(day)
}

func summaryKeysKey(userID uuid.UUID) string {
	return summaryKeysKeyPrefix + userID.String()
}

func (r *RedisBackend) Get(ctx context.Context, userID uuid.UUID, day time.Time) ([]byte, error) {
	data, err := r.client.Get(ctx, summaryKey(userID, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	return data, nil
}

// Set stores the summary and records its key in the user's key set so
// Invalidate can find it. The set lives at least as long as its entries.
func (r *RedisBackend) Set(ctx context.Context, userID uuid.UUID, day time.Time, data []byte, ttl time.Duration) error {
	key := summaryKey(userID, day)
	setKey := summaryKeysKey(userID)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, ttl)
		pipe.SAdd(ctx, setKey, key)
		pipe.ExpireGT(ctx, setKey, ttl)
		pipe.ExpireNX(ctx, setKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set summary: %w", err)
	}
	return nil
}

func (r *RedisBackend) Invalidate(ctx context.Context, userID uuid.UUID) error {
	setKey := summaryKeysKey(userID)

	keys, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list summary keys: %w", err)
	}

	if err := r.client.Del(ctx, append(keys, setKey)...).Err(); err != nil {
		return fmt.Errorf("failed to delete summaries: %w", err)
	}
	return nil
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}

func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
