package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned on a cache miss, including expired entries.
var ErrNotFound = errors.New("not found")

type RateLimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
}

// SummaryCache holds encoded day summaries keyed by user and calendar day.
type SummaryCache interface {
	// Get returns ErrNotFound if nothing is cached or the entry expired.
	Get(ctx context.Context, userID uuid.UUID, day time.Time) ([]byte, error)

	Set(ctx context.Context, userID uuid.UUID, day time.Time, data []byte, ttl time.Duration) error

	// Invalidate drops every cached day for the user.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

type Backend interface {
	RateLimiter
	SummaryCache

	Close() error

	Ping(ctx context.Context) error
}
