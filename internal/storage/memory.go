package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/garrettladley/ready/internal/xtime"
)

var _ Backend = (*MemoryBackend)(nil)

const defaultCleanupInterval = time.Minute

type summaryEntry struct {
	data      []byte
	expiresAt time.Time
}

type MemoryBackend struct {
	// Rate limiting
	limiters  map[string]*rate.Limiter
	limiterMu sync.RWMutex
	rateLimit rate.Limit
	rateBurst int

	// Summaries, per user then per day
	summaries   map[uuid.UUID]map[time.Time]summaryEntry
	summariesMu sync.RWMutex

	// Cleanup
	interval  time.Duration
	now       func() time.Time
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

type MemoryOption func(*MemoryBackend)

func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(m *MemoryBackend) {
		if d > 0 {
			m.interval = d
		}
	}
}

func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryBackend) {
		m.now = now
	}
}

func NewMemoryBackend(ratePerSec float64, burst int, opts ...MemoryOption) *MemoryBackend {
	m := &MemoryBackend{
		limiters:  make(map[string]*rate.Limiter),
		rateLimit: rate.Limit(ratePerSec),
		rateBurst: burst,
		summaries: make(map[uuid.UUID]map[time.Time]summaryEntry),
		interval:  defaultCleanupInterval,
		now:       time.Now,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

func (m *MemoryBackend) Allow(_ context.Context, key string) (RateLimitResult, error) {
	limiter := m.limiter(key)

	r := limiter.ReserveN(m.now(), 1)
	if !r.OK() {
		return RateLimitResult{Allowed: false, RetryAfter: time.Second}, nil
	}
	if delay := r.DelayFrom(m.now()); delay > 0 {
		r.CancelAt(m.now())
		return RateLimitResult{Allowed: false, RetryAfter: delay}, nil
	}
	return RateLimitResult{Allowed: true}, nil
}

func (m *MemoryBackend) limiter(key string) *rate.Limiter {
	m.limiterMu.RLock()
	limiter, exists := m.limiters[key]
	m.limiterMu.RUnlock()

	if exists {
		return limiter
	}

	m.limiterMu.Lock()
	defer m.limiterMu.Unlock()

	limiter, exists = m.limiters[key]
	if exists {
		return limiter
	}

	limiter = rate.NewLimiter(m.rateLimit, m.rateBurst)
	m.limiters[key] = limiter
	return limiter
}

func (m *MemoryBackend) Get(_ context.Context, userID uuid.UUID, day time.Time) ([]byte, error) {
	m.summariesMu.RLock()
	entry, ok := m.summaries[userID][xtime.Day(day)]
	m.summariesMu.RUnlock()

	if !ok || !m.now().Before(entry.expiresAt) {
		return nil, ErrNotFound
	}
	return entry.data, nil
}

func (m *MemoryBackend) Set(_ context.Context, userID uuid.UUID, day time.Time, data []byte, ttl time.Duration) error {
	m.summariesMu.Lock()
	defer m.summariesMu.Unlock()

	days, ok := m.summaries[userID]
	if !ok {
		days = make(map[time.Time]summaryEntry)
		m.summaries[userID] = days
	}
	days[xtime.Day(day)] = summaryEntry{data: data, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryBackend) Invalidate(_ context.Context, userID uuid.UUID) error {
	m.summariesMu.Lock()
	delete(m.summaries, userID)
	m.summariesMu.Unlock()
	return nil
}

func (m *MemoryBackend) Close() error {
	m.closeOnce.Do(func() {
		close(m.done)
	})
	m.wg.Wait()
	return nil
}

func (m *MemoryBackend) Ping(_ context.Context) error {
	return nil
}

func (m *MemoryBackend) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-m.done:
			return
		}
	}
}

// cleanup drops expired summaries and limiters that have refilled to burst,
// since a fresh limiter behaves the same.
func (m *MemoryBackend) cleanup() {
	now := m.now()

	m.summariesMu.Lock()
	for userID, days := range m.summaries {
		for day, entry := range days {
			if !now.Before(entry.expiresAt) {
				delete(days, day)
			}
		}
		if len(days) == 0 {
			delete(m.summaries, userID)
		}
	}
	m.summariesMu.Unlock()

	m.limiterMu.Lock()
	for key, limiter := range m.limiters {
		if limiter.TokensAt(now) >= float64(m.rateBurst) {
			delete(m.limiters, key)
		}
	}
	m.limiterMu.Unlock()
}
