package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrettladley/ready/internal/db"
	"github.com/garrettladley/ready/internal/wellness"
)

func ptr[T any](v T) *T { return &v }

var day0 = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	sqlDB, err := db.Open(t.Context(), filepath.Join(t.TempDir(), "ready.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return New(sqlDB)
}

func TestAssessmentUpsertAndGet(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	userID := uuid.New()

	got, err := repo.Assessments.Get(t.Context(), userID, day0)
	require.NoError(t, err)
	assert.Nil(t, got)

	a := &wellness.DailyAssessment{
		Date:          day0.Add(7 * time.Hour),
		SleepQuality:  7,
		Mood:          6,
		StressLevel:   3,
		SleepDuration: ptr(7.5),
		RestingHR:     ptr(52),
	}
	require.NoError(t, repo.Assessments.Upsert(t.Context(), userID, a))

	got, err = repo.Assessments.Get(t.Context(), userID, day0.Add(20*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, day0, got.Date)
	assert.Equal(t, 7, got.SleepQuality)
	assert.Equal(t, 6, got.Mood)
	assert.Equal(t, ptr(7.5), got.SleepDuration)
	assert.Equal(t, ptr(52), got.RestingHR)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestAssessmentUpsertOverwrites(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	userID := uuid.New()

	first := &wellness.DailyAssessment{Date: day0, SleepQuality: 3, SleepDuration: ptr(6.0)}
	require.NoError(t, repo.Assessments.Upsert(t.Context(), userID, first))

	second := &wellness.DailyAssessment{Date: day0, SleepQuality: 9}
	require.NoError(t, repo.Assessments.Upsert(t.Context(), userID, second))

	got, err := repo.Assessments.GetByDateRange(t.Context(), userID, day0, day0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 9, got[0].SleepQuality)
	assert.Nil(t, got[0].SleepDuration)
}

func TestAssessmentGetByDateRange(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	userID := uuid.New()
	other := uuid.New()

	for _, offset := range []int{4, 0, 2, 9} {
		a := &wellness.DailyAssessment{Date: day0.AddDate(0, 0, offset), Mood: offset}
		require.NoError(t, repo.Assessments.Upsert(t.Context(), userID, a))
	}
	require.NoError(t, repo.Assessments.Upsert(t.Context(), other, &wellness.DailyAssessment{Date: day0.AddDate(0, 0, 1)}))

	got, err := repo.Assessments.GetByDateRange(t.Context(), userID, day0, day0.AddDate(0, 0, 4))
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, want := range []int{0, 2, 4} {
		assert.Equal(t, day0.AddDate(0, 0, want), got[i].Date)
		assert.Equal(t, want, got[i].Mood)
	}

	empty, err := repo.Assessments.GetByDateRange(t.Context(), userID, day0.AddDate(0, 0, 20), day0.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSessionInsertListDelete(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	userID := uuid.New()

	late := &wellness.TrainingSession{Date: day0.AddDate(0, 0, 3), Duration: 45, RPE: 6, TSS: ptr(55.0)}
	early := &wellness.TrainingSession{
		Date:         day0,
		Duration:     60,
		RPE:          7,
		Intensity:    ptr(8.0),
		AverageHR:    ptr(150),
		MaxHR:        ptr(185),
		TrainingType: "run",
		Notes:        "tempo",
	}
	future := &wellness.TrainingSession{Date: day0.AddDate(0, 0, 10), Duration: 30, RPE: 4}

	for _, s := range []*wellness.TrainingSession{late, early, future} {
		require.NoError(t, repo.Sessions.Insert(t.Context(), userID, s))
		assert.NotEqual(t, uuid.Nil, s.ID)
	}

	got, err := repo.Sessions.ListUntil(t.Context(), userID, day0.AddDate(0, 0, 5))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, early.ID, got[0].ID)
	assert.Equal(t, day0, got[0].Date)
	assert.Equal(t, ptr(8.0), got[0].Intensity)
	assert.Nil(t, got[0].TSS)
	assert.Equal(t, ptr(150), got[0].AverageHR)
	assert.Equal(t, "run", got[0].TrainingType)
	assert.Equal(t, "tempo", got[0].Notes)
	assert.Equal(t, late.ID, got[1].ID)
	assert.Equal(t, ptr(55.0), got[1].TSS)

	require.NoError(t, repo.Sessions.Delete(t.Context(), userID, early.ID))
	err = repo.Sessions.Delete(t.Context(), userID, early.ID)
	require.ErrorIs(t, err, ErrNotFound)

	err = repo.Sessions.Delete(t.Context(), uuid.New(), late.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCompletions(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	userID := uuid.New()

	got, err := repo.Completions.LastCompletions(t.Context(), userID)
	require.NoError(t, err)
	assert.Empty(t, got)

	first := day0.Add(8 * time.Hour)
	later := day0.AddDate(0, 0, 2).Add(9 * time.Hour)

	require.NoError(t, repo.Completions.Record(t.Context(), userID, "poms", first))
	require.NoError(t, repo.Completions.Record(t.Context(), userID, "psqi", first))
	require.NoError(t, repo.Completions.Record(t.Context(), userID, "poms", later))

	got, err = repo.Completions.LastCompletions(t.Context(), userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got["poms"].Equal(later))
	assert.True(t, got["psqi"].Equal(first))
}
