package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestBackend(t *testing.T, clock *fakeClock) *MemoryBackend {
	t.Helper()
	m := NewMemoryBackend(1, 2, WithClock(clock.Now), WithCleanupInterval(time.Hour))
	t.Cleanup(func() { require.NoError(t, m.Close()) })
	return m
}

func TestMemoryBackend_Allow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	m := newTestBackend(t, clock)
	ctx := context.Background()

	for range 2 {
		res, err := m.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	res, err := m.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, time.Second, res.RetryAfter)

	// other keys have their own bucket
	res, err = m.Allow(ctx, "198.51.100.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	clock.Advance(time.Second)
	res, err = m.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestMemoryBackend_Summaries(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	m := newTestBackend(t, clock)
	ctx := context.Background()

	userID := uuid.New()
	other := uuid.New()
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	_, err := m.Get(ctx, userID, day)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, userID, day, []byte(`{"score":72}`), time.Minute))
	require.NoError(t, m.Set(ctx, userID, day.AddDate(0, 0, -1), []byte(`{"score":60}`), time.Minute))
	require.NoError(t, m.Set(ctx, other, day, []byte(`{"score":10}`), time.Minute))

	// time of day is ignored
	got, err := m.Get(ctx, userID, day.Add(17*time.Hour))
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":72}`, string(got))

	require.NoError(t, m.Invalidate(ctx, userID))

	_, err = m.Get(ctx, userID, day)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(ctx, userID, day.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrNotFound)

	got, err = m.Get(ctx, other, day)
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":10}`, string(got))
}

func TestMemoryBackend_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	m := newTestBackend(t, clock)
	ctx := context.Background()

	userID := uuid.New()
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	require.NoError(t, m.Set(ctx, userID, day, []byte("x"), time.Minute))

	clock.Advance(59 * time.Second)
	_, err := m.Get(ctx, userID, day)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = m.Get(ctx, userID, day)
	require.ErrorIs(t, err, ErrNotFound)

	m.cleanup()
	m.summariesMu.RLock()
	assert.Empty(t, m.summaries)
	m.summariesMu.RUnlock()
}

func TestMemoryBackend_CleanupDropsIdleLimiters(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	m := newTestBackend(t, clock)
	ctx := context.Background()

	_, err := m.Allow(ctx, "busy")
	require.NoError(t, err)

	m.cleanup()
	m.limiterMu.RLock()
	assert.Contains(t, m.limiters, "busy")
	m.limiterMu.RUnlock()

	clock.Advance(10 * time.Second)
	m.cleanup()
	m.limiterMu.RLock()
	assert.NotContains(t, m.limiters, "busy")
	m.limiterMu.RUnlock()
}

func TestMemoryBackend_CloseTwice(t *testing.T) {
	m := NewMemoryBackend(1, 1, WithCleanupInterval(time.Millisecond))
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	require.NoError(t, m.Ping(context.Background()))
}
