package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrettladley/ready/internal/db"
	"github.com/garrettladley/ready/internal/metric"
	"github.com/garrettladley/ready/internal/repository"
	"github.com/garrettladley/ready/internal/schedule"
	"github.com/garrettladley/ready/internal/server/handler"
	"github.com/garrettladley/ready/internal/service/tracker"
	"github.com/garrettladley/ready/internal/storage"
	"github.com/garrettladley/ready/internal/telemetry"
	"github.com/garrettladley/ready/internal/wellness"
)

var now = time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, rate float64, burst int, checks map[string]handler.Pinger) *httptest.Server {
	t.Helper()

	sqlDB, err := db.Open(t.Context(), filepath.Join(t.TempDir(), "ready.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	clock := func() time.Time { return now }
	backend := storage.NewMemoryBackend(rate, burst, storage.WithClock(clock))
	t.Cleanup(func() { _ = backend.Close() })

	reg := telemetry.NewRegistry()
	metrics := telemetry.New(reg)

	svc := tracker.New(repository.New(sqlDB),
		tracker.WithClock(clock),
		tracker.WithCache(backend, time.Minute),
		tracker.WithMetrics(metrics),
		tracker.WithScheduler(schedule.New(schedule.WithClock(clock), schedule.WithLocation(time.UTC))),
	)

	srv := httptest.NewServer(NewHandler(Deps{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracker:  svc,
		Limiter:  backend,
		Metrics:  metrics,
		Registry: reg,
		Checks:   checks,
		Location: time.UTC,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := go_json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(t.Context(), method, url, r)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, go_json.Unmarshal(data, &v), string(data))
	return v
}

func TestAssessmentRoutes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, 100, 100, nil)
	base := srv.URL + "/api/users/" + uuid.NewString()

	resp, data := do(t, http.MethodGet, base+"/assessments/2026-09-10", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", decode[errorBody](t, data).Error)

	body := map[string]any{
		"sleep_quality": 8, "sleep_regularity": 8, "fatigue_level": 2, "mood": 8,
		"muscle_soreness": 2, "stress_level": 2, "exhaustion": 1,
		"sleep_duration": 8.0, "resting_hr": 55,
	}
	resp, data = do(t, http.MethodPut, base+"/assessments/2026-09-10", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, data = do(t, http.MethodGet, base+"/assessments/2026-09-10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[wellness.DailyAssessment](t, data)
	assert.Equal(t, 8, got.Mood)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), got.Date.UTC())

	resp, data = do(t, http.MethodGet, base+"/summary?date=2026-09-10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[tracker.Summary](t, data)
	require.NotNil(t, summary.Recommendation)
	assert.Equal(t, 80, summary.Recommendation.Score)
}

func TestAssessmentRejectsBadInput(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, 100, 100, nil)
	base := srv.URL + "/api/users/" + uuid.NewString()

	resp, data := do(t, http.MethodPut, base+"/assessments/2026-09-10", map[string]any{"mood": 15})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, decode[errorBody](t, data).Fields, "mood")

	resp, data = do(t, http.MethodPut, base+"/assessments/10-09-2026", map[string]any{"mood": 5})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_date", decode[errorBody](t, data).Error)

	resp, data = do(t, http.MethodPut, base+"/assessments/2026-09-10", map[string]any{"mood": 5, "vibes": 3})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_body", decode[errorBody](t, data).Error)

	resp, data = do(t, http.MethodGet, srv.URL+"/api/users/not-a-uuid/tasks", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_user_id", decode[errorBody](t, data).Error)
}

func TestSessionRoutes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, 100, 100, nil)
	base := srv.URL + "/api/users/" + uuid.NewString()

	resp, data := do(t, http.MethodPost, base+"/sessions", map[string]any{
		"date": "2026-09-10T18:00:00Z", "duration": 60, "rpe": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	session := decode[wellness.TrainingSession](t, data)
	require.NotNil(t, session.TSS)
	assert.Equal(t, 100.0, *session.TSS)

	resp, data = do(t, http.MethodGet, base+"/summary?date=2026-09-10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 100.0, decode[tracker.Summary](t, data).Load.TSS)

	resp, _ = do(t, http.MethodDelete, base+"/sessions/"+session.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, base+"/sessions/"+session.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = do(t, http.MethodDelete, base+"/sessions/nope", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_sessionID", decode[errorBody](t, data).Error)
}

func TestHistoryRoute(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, 100, 100, nil)
	base := srv.URL + "/api/users/" + uuid.NewString()

	resp, data := do(t, http.MethodGet, base+"/history?start=2026-09-01&end=2026-09-10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	days := decode[[]tracker.DayRecovery](t, data)
	require.Len(t, days, 10)
	assert.True(t, days[0].Missing)

	resp, data = do(t, http.MethodGet, base+"/history?start=2026-01-01&end=2026-09-10", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_range", decode[errorBody](t, data).Error)

	resp, _ = do(t, http.MethodGet, base+"/history?start=2026-09-10&end=2026-09-01", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTaskRoutes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, 100, 100, nil)
	base := srv.URL + "/api/users/" + uuid.NewString()

	resp, data := do(t, http.MethodGet, base+"/tasks", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]wellness.ScheduledTask](t, data), 5)

	resp, _ = do(t, http.MethodPost, base+"/tasks/poms/complete", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data = do(t, http.MethodGet, base+"/tasks", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]wellness.ScheduledTask](t, data), 4)

	resp, data = do(t, http.MethodPost, base+"/tasks/yoga/complete", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "unknown_task", decode[errorBody](t, data).Error)
}

func TestEngineRoutes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, 100, 100, nil)

	resp, data := do(t, http.MethodGet, srv.URL+"/api/metrics/catalogue", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]metric.Info](t, data), len(metric.All()))

	resp, data = do(t, http.MethodPost, srv.URL+"/api/compute/recovery", map[string]any{
		"rhr_today": 60, "rhr_base": 50, "sleep_last": 8,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	result := decode[map[string]any](t, data)
	assert.Equal(t, 75.0, result["recovery_index"])
	assert.Equal(t, 8.5, result["sleep_needed_tonight"])
	assert.Contains(t, result, "penalties")
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, 100, 100, map[string]handler.Pinger{
		"database": handler.PingFunc(func(context.Context) error { return nil }),
	})

	resp, data := do(t, http.MethodGet, srv.URL+"/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[map[string]any](t, data)["status"])

	resp, data = do(t, http.MethodGet, srv.URL+"/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(data), `ready_http_requests_total{method="GET",route="GET /health",status="200"} 1`), string(data))
}

func TestHealthDegraded(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, 100, 100, map[string]handler.Pinger{
		"redis": handler.PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	resp, data := do(t, http.MethodGet, srv.URL+"/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body := decode[map[string]any](t, data)
	assert.Equal(t, "degraded", body["status"])
}

func TestRateLimitedAPI(t *testing.T) {
	t.Parallel()

	// the fixed clock never refills the bucket
	srv := newTestServer(t, 1, 1, nil)

	resp, _ := do(t, http.MethodGet, srv.URL+"/api/metrics/catalogue", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data := do(t, http.MethodGet, srv.URL+"/api/metrics/catalogue", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "too_many_requests", decode[errorBody](t, data).Error)
	assert.Equal(t, "ip_rate_limit", resp.Header.Get("X-RateLimit-Reason"))

	// health checks are not rate limited
	resp, _ = do(t, http.MethodGet, srv.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
