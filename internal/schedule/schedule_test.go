package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/ready/internal/wellness"
)

var est = time.FixedZone("EST", -5*60*60)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ids(tasks []wellness.ScheduledTask) []wellness.TaskID {
	out := make([]wellness.TaskID, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestPendingNothingCompleted(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	s := New(WithClock(fixedClock(now)), WithLocation(time.UTC))

	got := s.Pending(nil)

	want := []wellness.ScheduledTask{
		{ID: TaskPhysicalMetrics, Type: wellness.TaskTypeMetric, Title: "Physical metrics", Priority: wellness.PriorityHigh, DueDate: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)},
		{ID: TaskMentalMetrics, Type: wellness.TaskTypeMetric, Title: "Mental metrics", Priority: wellness.PriorityHigh, DueDate: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)},
		{ID: TaskPOMS, Type: wellness.TaskTypeQuestionnaire, Title: "Profile of Mood States", Priority: wellness.PriorityMedium, DueDate: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)},
		{ID: TaskRESTQSport, Type: wellness.TaskTypeQuestionnaire, Title: "Recovery-Stress Questionnaire for Athletes", Priority: wellness.PriorityMedium, DueDate: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)},
		{ID: TaskPSQI, Type: wellness.TaskTypeQuestionnaire, Title: "Pittsburgh Sleep Quality Index", Priority: wellness.PriorityMedium, DueDate: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Pending() mismatch (-want +got):\n%s", diff)
	}
}

func TestPending(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		last map[wellness.TaskID]time.Time
		want []wellness.TaskID
	}{
		{
			name: "daily metrics done earlier today",
			last: map[wellness.TaskID]time.Time{
				TaskPhysicalMetrics: time.Date(2026, 10, 18, 0, 5, 0, 0, time.UTC),
				TaskMentalMetrics:   time.Date(2026, 10, 18, 7, 59, 0, 0, time.UTC),
			},
			want: []wellness.TaskID{TaskPOMS, TaskRESTQSport, TaskPSQI},
		},
		{
			name: "completed late yesterday is due again today",
			last: map[wellness.TaskID]time.Time{
				TaskPhysicalMetrics: time.Date(2026, 10, 17, 23, 55, 0, 0, time.UTC),
			},
			want: []wellness.TaskID{TaskPhysicalMetrics, TaskMentalMetrics, TaskPOMS, TaskRESTQSport, TaskPSQI},
		},
		{
			name: "questionnaire inside its window",
			last: map[wellness.TaskID]time.Time{
				TaskPOMS:       time.Date(2026, 10, 12, 20, 0, 0, 0, time.UTC),
				TaskRESTQSport: time.Date(2026, 10, 5, 6, 0, 0, 0, time.UTC),
				TaskPSQI:       time.Date(2026, 10, 4, 23, 0, 0, 0, time.UTC),
			},
			want: []wellness.TaskID{TaskPhysicalMetrics, TaskMentalMetrics, TaskPSQI},
		},
		{
			name: "questionnaire exactly at its frequency",
			last: map[wellness.TaskID]time.Time{
				TaskPOMS:       time.Date(2026, 10, 11, 23, 59, 0, 0, time.UTC),
				TaskRESTQSport: time.Date(2026, 10, 18, 1, 0, 0, 0, time.UTC),
				TaskPSQI:       time.Date(2026, 10, 18, 1, 0, 0, 0, time.UTC),
			},
			want: []wellness.TaskID{TaskPhysicalMetrics, TaskMentalMetrics, TaskPOMS},
		},
		{
			name: "everything done",
			last: map[wellness.TaskID]time.Time{
				TaskPhysicalMetrics: now,
				TaskMentalMetrics:   now,
				TaskPOMS:            now,
				TaskRESTQSport:      now,
				TaskPSQI:            now,
			},
			want: []wellness.TaskID{},
		},
		{
			name: "completion in the future is not due",
			last: map[wellness.TaskID]time.Time{
				TaskPhysicalMetrics: now.AddDate(0, 0, 2),
			},
			want: []wellness.TaskID{TaskMentalMetrics, TaskPOMS, TaskRESTQSport, TaskPSQI},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := New(WithClock(fixedClock(now)), WithLocation(time.UTC))
			got := ids(s.Pending(tt.last))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Pending() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPendingUsesLocalCalendarDay(t *testing.T) {
	t.Parallel()

	// 22:00 on the 17th in EST is 03:00 on the 18th in UTC.
	completed := time.Date(2026, 10, 18, 3, 0, 0, 0, time.UTC)
	now := time.Date(2026, 10, 18, 6, 0, 0, 0, est)

	s := New(WithClock(fixedClock(now)), WithLocation(est))
	got := ids(s.Pending(map[wellness.TaskID]time.Time{
		TaskPhysicalMetrics: completed,
		TaskMentalMetrics:   completed,
	}))

	want := []wellness.TaskID{TaskPhysicalMetrics, TaskMentalMetrics, TaskPOMS, TaskRESTQSport, TaskPSQI}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Pending() mismatch (-want +got):\n%s", diff)
	}
}

func TestPendingIdempotent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s := New(WithClock(fixedClock(now)), WithLocation(time.UTC))
	last := map[wellness.TaskID]time.Time{TaskPOMS: now.AddDate(0, 0, -3)}

	first := s.Pending(last)
	second := s.Pending(last)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Pending() not idempotent (-first +second):\n%s", diff)
	}
	if len(last) != 1 {
		t.Errorf("Pending() mutated its input: %v", last)
	}
}

func TestPendingHighPriorityFirst(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s := New(
		WithClock(fixedClock(now)),
		WithLocation(time.UTC),
		WithTable([]Questionnaire{
			{ID: "dalda", Title: "DALDA", FrequencyDays: 3},
			{ID: "bruns", FrequencyDays: 1},
		}),
	)

	got := s.Pending(nil)
	want := []wellness.TaskID{TaskPhysicalMetrics, TaskMentalMetrics, "dalda", "bruns"}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("Pending() mismatch (-want +got):\n%s", diff)
	}

	seenMedium := false
	for _, task := range got {
		switch task.Priority {
		case wellness.PriorityMedium:
			seenMedium = true
		case wellness.PriorityHigh:
			if seenMedium {
				t.Fatalf("high priority task %s after a medium one", task.ID)
			}
		}
	}
	if got[3].Title != "bruns" {
		t.Errorf("untitled questionnaire title = %q, want its id", got[3].Title)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	s := New()

	task, err := s.Lookup(TaskMentalMetrics)
	if err != nil {
		t.Fatalf("Lookup(%s) error = %v", TaskMentalMetrics, err)
	}
	if task.Type != wellness.TaskTypeMetric {
		t.Errorf("Lookup(%s).Type = %s, want %s", TaskMentalMetrics, task.Type, wellness.TaskTypeMetric)
	}

	task, err = s.Lookup(TaskPSQI)
	if err != nil {
		t.Fatalf("Lookup(%s) error = %v", TaskPSQI, err)
	}
	if task.Priority != wellness.PriorityMedium {
		t.Errorf("Lookup(%s).Priority = %s, want %s", TaskPSQI, task.Priority, wellness.PriorityMedium)
	}

	if _, err := s.Lookup("tarot"); !errors.Is(err, ErrUnknownTask) {
		t.Errorf("Lookup(tarot) error = %v, want ErrUnknownTask", err)
	}
}
