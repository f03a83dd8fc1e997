package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/garrettladley/ready/internal/load"
	"github.com/garrettladley/ready/internal/readiness"
	"github.com/garrettladley/ready/internal/recovery"
	"github.com/garrettladley/ready/internal/repository"
	"github.com/garrettladley/ready/internal/schedule"
	"github.com/garrettladley/ready/internal/storage"
	"github.com/garrettladley/ready/internal/telemetry"
	"github.com/garrettladley/ready/internal/validator"
	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xmath"
	"github.com/garrettladley/ready/internal/xslog"
	"github.com/garrettladley/ready/internal/xtime"
)

const DefaultCacheTTL = 10 * time.Minute

type Tracker struct {
	repo      *repository.Repository
	scheduler *schedule.Scheduler
	cache     storage.SummaryCache
	cacheTTL  time.Duration
	metrics   *telemetry.Metrics
	now       func() time.Time

	sleepReference float64
	loadThreshold  float64
}

var _ Service = (*Tracker)(nil)

type Option func(*Tracker)

// WithCache caches summaries. Writes for a user invalidate all of their
// cached days.
func WithCache(cache storage.SummaryCache, ttl time.Duration) Option {
	return func(t *Tracker) {
		t.cache = cache
		if ttl > 0 {
			t.cacheTTL = ttl
		}
	}
}

func WithScheduler(s *schedule.Scheduler) Option {
	return func(t *Tracker) { t.scheduler = s }
}

func WithMetrics(m *telemetry.Metrics) Option {
	return func(t *Tracker) { t.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithSleepReference sets the nightly sleep target in hours.
func WithSleepReference(hours float64) Option {
	return func(t *Tracker) {
		if hours > 0 {
			t.sleepReference = hours
		}
	}
}

// WithLoadThreshold sets the training load that counts as a full recovery penalty.
func WithLoadThreshold(threshold float64) Option {
	return func(t *Tracker) {
		if threshold > 0 {
			t.loadThreshold = threshold
		}
	}
}

func New(repo *repository.Repository, opts ...Option) *Tracker {
	t := &Tracker{
		repo:           repo,
		cacheTTL:       DefaultCacheTTL,
		now:            time.Now,
		sleepReference: recovery.DefaultSleepReference,
		loadThreshold:  recovery.DefaultLoadThreshold,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.scheduler == nil {
		t.scheduler = schedule.New(schedule.WithClock(t.now))
	}
	if t.metrics == nil {
		t.metrics = telemetry.NewNop()
	}
	return t
}

func (t *Tracker) SubmitAssessment(ctx context.Context, userID uuid.UUID, a wellness.DailyAssessment) (*wellness.DailyAssessment, error) {
	if err := validator.Validate(&a); err != nil {
		return nil, err
	}
	a.Date = xtime.Day(a.Date)
	a.UpdatedAt = t.now().UTC()

	if err := t.repo.Assessments.Upsert(ctx, userID, &a); err != nil {
		return nil, err
	}
	t.invalidate(ctx, userID)

	xslog.FromContext(ctx).InfoContext(ctx, "assessment submitted",
		xslog.UserID(userID), xslog.Date(a.Date))
	return &a, nil
}

func (t *Tracker) GetAssessment(ctx context.Context, userID uuid.UUID, day time.Time) (*wellness.DailyAssessment, error) {
	a, err := t.repo.Assessments.Get(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("assessment for %s: %w", xtime.FormatDay(day), repository.ErrNotFound)
	}
	return a, nil
}

func (t *Tracker) LogSession(ctx context.Context, userID uuid.UUID, s wellness.TrainingSession) (*wellness.TrainingSession, error) {
	if err := validator.Validate(&s); err != nil {
		return nil, err
	}
	s.ID = uuid.New()
	s.Date = xtime.Day(s.Date)
	s.CreatedAt = t.now().UTC()
	if s.TSS == nil {
		tss := load.SessionTSS(s)
		s.TSS = &tss
	}

	if err := t.repo.Sessions.Insert(ctx, userID, &s); err != nil {
		return nil, err
	}
	t.invalidate(ctx, userID)

	xslog.FromContext(ctx).InfoContext(ctx, "session logged",
		xslog.UserID(userID), xslog.SessionID(s.ID), xslog.Date(s.Date),
		slog.Float64("tss", *s.TSS))
	return &s, nil
}

func (t *Tracker) DeleteSession(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if err := t.repo.Sessions.Delete(ctx, userID, id); err != nil {
		return err
	}
	t.invalidate(ctx, userID)
	return nil
}

func (t *Tracker) Summary(ctx context.Context, userID uuid.UUID, date time.Time) (*Summary, error) {
	day := xtime.Day(date)
	logger := xslog.FromContext(ctx).With(xslog.UserID(userID), xslog.Date(day))

	if t.cache != nil {
		if s, ok := t.cached(ctx, logger, userID, day); ok {
			return s, nil
		}
	}

	start := time.Now()
	s, err := t.computeSummary(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	t.metrics.SummariesComputed.Inc()
	t.metrics.SummaryDuration.Observe(time.Since(start).Seconds())
	if s.Recommendation != nil {
		t.metrics.ReadinessScores.Observe(float64(s.Recommendation.Score))
	}

	if t.cache != nil {
		t.store(ctx, logger, userID, s)
	}
	return s, nil
}

func (t *Tracker) cached(ctx context.Context, logger *slog.Logger, userID uuid.UUID, day time.Time) (*Summary, bool) {
	data, err := t.cache.Get(ctx, userID, day)
	if errors.Is(err, storage.ErrNotFound) {
		t.metrics.CacheMiss()
		return nil, false
	}
	if err != nil {
		logger.WarnContext(ctx, "failed to read cached summary", xslog.Error(err))
		t.metrics.CacheMiss()
		return nil, false
	}

	var s Summary
	if err := go_json.Unmarshal(data, &s); err != nil {
		logger.WarnContext(ctx, "failed to decode cached summary", xslog.Error(err))
		t.metrics.CacheMiss()
		return nil, false
	}
	t.metrics.CacheHit()
	return &s, true
}

func (t *Tracker) store(ctx context.Context, logger *slog.Logger, userID uuid.UUID, s *Summary) {
	data, err := go_json.Marshal(s)
	if err != nil {
		logger.WarnContext(ctx, "failed to encode summary", xslog.Error(err))
		return
	}
	if err := t.cache.Set(ctx, userID, s.Date, data, t.cacheTTL); err != nil {
		logger.WarnContext(ctx, "failed to cache summary", xslog.Error(err))
	}
}

func (t *Tracker) invalidate(ctx context.Context, userID uuid.UUID) {
	if t.cache == nil {
		return
	}
	if err := t.cache.Invalidate(ctx, userID); err != nil {
		xslog.FromContext(ctx).WarnContext(ctx, "failed to invalidate cached summaries",
			xslog.UserID(userID), xslog.Error(err))
	}
}

func (t *Tracker) History(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]DayRecovery, error) {
	start, end = xtime.Day(start), xtime.Day(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	days := xtime.DaysBetween(start, end) + 1
	if days > MaxHistoryDays {
		return nil, fmt.Errorf("%d days requested, at most %d: %w", days, MaxHistoryDays, ErrRangeTooLong)
	}

	assessments, err := t.repo.Assessments.GetByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	byDay := make(map[time.Time]wellness.DailyAssessment, len(assessments))
	for _, a := range assessments {
		byDay[xtime.Day(a.Date)] = a
	}

	out := make([]DayRecovery, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		a, ok := byDay[d]
		if !ok {
			out = append(out, DayRecovery{Date: d, Missing: true})
			continue
		}
		tqr := load.TQR(a)
		score := readiness.Score(a)
		out = append(out, DayRecovery{
			Date:  d,
			TQR:   &tqr,
			Score: &score,
			Color: tqrColor(tqr),
		})
	}
	return out, nil
}

// tqrColor places TQR on the 0-100 readiness color scale.
func tqrColor(tqr float64) readiness.Color {
	return readiness.ColorFor(int(xmath.Round(tqr*10, 0)))
}

func (t *Tracker) PendingTasks(ctx context.Context, userID uuid.UUID) ([]wellness.ScheduledTask, error) {
	last, err := t.repo.Completions.LastCompletions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return t.scheduler.Pending(last), nil
}

func (t *Tracker) CompleteTask(ctx context.Context, userID uuid.UUID, taskID wellness.TaskID) error {
	if _, err := t.scheduler.Lookup(taskID); err != nil {
		return err
	}
	if err := t.repo.Completions.Record(ctx, userID, taskID, t.now().UTC()); err != nil {
		return err
	}

	xslog.FromContext(ctx).InfoContext(ctx, "task completed",
		xslog.UserID(userID), xslog.TaskID(string(taskID)))
	return nil
}
