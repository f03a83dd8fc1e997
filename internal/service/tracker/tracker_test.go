package tracker

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/garrettladley/ready/internal/db"
	"github.com/garrettladley/ready/internal/readiness"
	"github.com/garrettladley/ready/internal/repository"
	"github.com/garrettladley/ready/internal/schedule"
	"github.com/garrettladley/ready/internal/storage"
	"github.com/garrettladley/ready/internal/telemetry"
	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xerrors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func ptr[T any](v T) *T { return &v }

var (
	today = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now   = today.Add(9 * time.Hour)
)

func clock() time.Time { return now }

type fixture struct {
	tracker *Tracker
	cache   *storage.MemoryBackend
	metrics *telemetry.Metrics
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	sqlDB, err := db.Open(t.Context(), filepath.Join(t.TempDir(), "ready.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	cache := storage.NewMemoryBackend(10, 10, storage.WithClock(clock), storage.WithCleanupInterval(time.Hour))
	t.Cleanup(func() { require.NoError(t, cache.Close()) })

	metrics := telemetry.NewNop()
	tr := New(repository.New(sqlDB),
		WithClock(clock),
		WithCache(cache, time.Hour),
		WithMetrics(metrics),
		WithScheduler(schedule.New(schedule.WithClock(clock), schedule.WithLocation(time.UTC))),
	)
	return fixture{tracker: tr, cache: cache, metrics: metrics}
}

func goodDay(date time.Time) wellness.DailyAssessment {
	return wellness.DailyAssessment{
		Date:            date,
		SleepQuality:    8,
		SleepRegularity: 8,
		FatigueLevel:    2,
		Mood:            8,
		MuscleSoreness:  2,
		StressLevel:     2,
		Exhaustion:      1,
		SleepDuration:   ptr(8.0),
		RestingHR:       ptr(55),
	}
}

func TestSummaryWithoutData(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID := uuid.New()

	s, err := f.tracker.Summary(t.Context(), userID, today)
	require.NoError(t, err)

	assert.Equal(t, today, s.Date)
	assert.Nil(t, s.Assessment)
	assert.Nil(t, s.Recommendation)
	assert.Nil(t, s.TQR)
	assert.Equal(t, wellness.TrainingMetrics{Date: today}, s.Load)
	assert.Empty(t, s.Sessions)
	assert.Equal(t, 100.0, s.Recovery.RecoveryIndex)
	assert.Equal(t, 8.0, s.Recovery.SleepNeededTonight)
	assert.Equal(t, 0.0, s.Recovery.TimeToReadyHours)
	assert.Equal(t, 0.0, s.SleepDebt)
}

func TestSummaryFromHistory(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := t.Context()
	userID := uuid.New()

	for i, sleep := range []float64{8, 6} {
		a := wellness.DailyAssessment{
			Date:          today.AddDate(0, 0, i-2),
			SleepQuality:  6,
			SleepDuration: ptr(sleep),
			RestingHR:     ptr(50),
		}
		_, err := f.tracker.SubmitAssessment(ctx, userID, a)
		require.NoError(t, err)
	}
	_, err := f.tracker.SubmitAssessment(ctx, userID, goodDay(today.Add(7*time.Hour)))
	require.NoError(t, err)

	s, err := f.tracker.Summary(ctx, userID, today.Add(20*time.Hour))
	require.NoError(t, err)

	require.NotNil(t, s.Assessment)
	require.NotNil(t, s.Recommendation)
	assert.Equal(t, 80, s.Recommendation.Score)
	assert.Equal(t, readiness.TypeTraining, s.Recommendation.Type)
	assert.Equal(t, readiness.ColorBlue, s.Recommendation.Color)

	require.NotNil(t, s.TQR)
	assert.InDelta(t, 7.4, *s.TQR, 1e-9)
	assert.InDelta(t, 2.0, s.SleepDebt, 1e-9)

	// resting HR 10% over the two-day baseline is the full penalty
	assert.InDelta(t, 1.0, s.Penalties.RHR, 1e-9)
	assert.InDelta(t, 0.0, s.Penalties.Load, 1e-9)
	assert.InDelta(t, 69.1, s.Recovery.RecoveryIndex, 1e-9)
	assert.InDelta(t, 8.5, s.Recovery.SleepNeededTonight, 1e-9)
	assert.InDelta(t, 4.4, s.Recovery.TimeToReadyHours, 1e-9)
}

func TestLogSessionDerivesTSS(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := t.Context()
	userID := uuid.New()

	logged, err := f.tracker.LogSession(ctx, userID, wellness.TrainingSession{
		Date:     today.Add(18 * time.Hour),
		Duration: 60,
		RPE:      10,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, logged.ID)
	assert.Equal(t, today, logged.Date)
	require.NotNil(t, logged.TSS)
	assert.Equal(t, 100.0, *logged.TSS)

	explicit, err := f.tracker.LogSession(ctx, userID, wellness.TrainingSession{
		Date: today, Duration: 30, RPE: 5, TSS: ptr(40.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 40.0, *explicit.TSS)

	s, err := f.tracker.Summary(ctx, userID, today)
	require.NoError(t, err)
	assert.Equal(t, 140.0, s.Load.TSS)
	assert.Equal(t, 140.0, s.Load.ATL)
	assert.Equal(t, 140.0, s.Load.CTL)
	require.Len(t, s.Sessions, 2)
	for _, sl := range s.Sessions {
		if sl.ID == logged.ID {
			assert.Equal(t, 100.0, sl.TSS)
			assert.Equal(t, 10.0, sl.PSE)
		}
	}

	require.NoError(t, f.tracker.DeleteSession(ctx, userID, logged.ID))
	err = f.tracker.DeleteSession(ctx, userID, logged.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	s, err = f.tracker.Summary(ctx, userID, today)
	require.NoError(t, err)
	assert.Equal(t, 40.0, s.Load.TSS)
}

func TestSummaryCache(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := t.Context()
	userID := uuid.New()

	_, err := f.tracker.Summary(ctx, userID, today)
	require.NoError(t, err)
	_, err = f.cache.Get(ctx, userID, today)
	require.NoError(t, err, "summary should be cached")

	again, err := f.tracker.Summary(ctx, userID, today)
	require.NoError(t, err)
	assert.Nil(t, again.Recommendation)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SummariesComputed))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheLookups.WithLabelValues("miss")))

	_, err = f.tracker.SubmitAssessment(ctx, userID, goodDay(today))
	require.NoError(t, err)
	_, err = f.cache.Get(ctx, userID, today)
	require.ErrorIs(t, err, storage.ErrNotFound)

	fresh, err := f.tracker.Summary(ctx, userID, today)
	require.NoError(t, err)
	require.NotNil(t, fresh.Recommendation)
	assert.Equal(t, 80, fresh.Recommendation.Score)
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.SummariesComputed))
}

func TestSubmitAssessmentValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	a := goodDay(today)
	a.Mood = 15
	_, err := f.tracker.SubmitAssessment(t.Context(), uuid.New(), a)
	require.Error(t, err)

	appErr := xerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)
	assert.Contains(t, appErr.Validation.Fields, "mood")
}

func TestGetAssessment(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID := uuid.New()

	_, err := f.tracker.GetAssessment(t.Context(), userID, today)
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = f.tracker.SubmitAssessment(t.Context(), userID, goodDay(today))
	require.NoError(t, err)

	got, err := f.tracker.GetAssessment(t.Context(), userID, today)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Mood)
	assert.True(t, got.UpdatedAt.Equal(now), "UpdatedAt = %v, want %v", got.UpdatedAt, now)
}

func TestHistory(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := t.Context()
	userID := uuid.New()

	_, err := f.tracker.SubmitAssessment(ctx, userID, goodDay(today.AddDate(0, 0, -3)))
	require.NoError(t, err)
	_, err = f.tracker.SubmitAssessment(ctx, userID, wellness.DailyAssessment{Date: today, StressLevel: 10, FatigueLevel: 10})
	require.NoError(t, err)

	days, err := f.tracker.History(ctx, userID, today.AddDate(0, 0, -4), today)
	require.NoError(t, err)
	require.Len(t, days, 5)

	for i, d := range days {
		assert.Equal(t, today.AddDate(0, 0, i-4), d.Date)
	}
	assert.True(t, days[0].Missing)
	assert.Nil(t, days[0].TQR)

	require.False(t, days[1].Missing)
	assert.InDelta(t, 7.4, *days[1].TQR, 1e-9)
	assert.Equal(t, 80, *days[1].Score)
	assert.Equal(t, readiness.ColorGreen, days[1].Color)

	assert.Equal(t, readiness.ColorRed, days[4].Color)
}

func TestHistoryRange(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID := uuid.New()

	_, err := f.tracker.History(t.Context(), userID, today, today.AddDate(0, 0, -1))
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = f.tracker.History(t.Context(), userID, today.AddDate(0, 0, -MaxHistoryDays), today)
	require.ErrorIs(t, err, ErrRangeTooLong)

	days, err := f.tracker.History(t.Context(), userID, today.AddDate(0, 0, -(MaxHistoryDays - 1)), today)
	require.NoError(t, err)
	assert.Len(t, days, MaxHistoryDays)
}

func TestTasks(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := t.Context()
	userID := uuid.New()

	pending, err := f.tracker.PendingTasks(ctx, userID)
	require.NoError(t, err)
	require.Len(t, pending, 5)
	assert.Equal(t, schedule.TaskPhysicalMetrics, pending[0].ID)

	require.NoError(t, f.tracker.CompleteTask(ctx, userID, schedule.TaskPOMS))
	require.NoError(t, f.tracker.CompleteTask(ctx, userID, schedule.TaskPhysicalMetrics))

	pending, err = f.tracker.PendingTasks(ctx, userID)
	require.NoError(t, err)
	ids := make([]wellness.TaskID, len(pending))
	for i, task := range pending {
		ids[i] = task.ID
	}
	assert.Equal(t, []wellness.TaskID{schedule.TaskMentalMetrics, schedule.TaskRESTQSport, schedule.TaskPSQI}, ids)

	err = f.tracker.CompleteTask(ctx, userID, "yoga")
	require.ErrorIs(t, err, schedule.ErrUnknownTask)
}

type failingAssessments struct {
	repository.AssessmentRepository
}

func (failingAssessments) GetByDateRange(context.Context, uuid.UUID, time.Time, time.Time) ([]wellness.DailyAssessment, error) {
	return nil, errors.New("disk on fire")
}

type emptySessions struct {
	repository.SessionRepository
}

func (emptySessions) ListUntil(context.Context, uuid.UUID, time.Time) ([]wellness.TrainingSession, error) {
	return nil, nil
}

func TestSummaryPropagatesStoreErrors(t *testing.T) {
	t.Parallel()

	tr := New(&repository.Repository{
		Assessments: failingAssessments{},
		Sessions:    emptySessions{},
	}, WithClock(clock))

	_, err := tr.Summary(t.Context(), uuid.New(), today)
	require.EqualError(t, err, "disk on fire")
}
