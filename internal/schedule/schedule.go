// Package schedule decides which daily metrics and questionnaires are due.
// It only reads completion times; recording them is up to the caller.
package schedule

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xtime"
)

type Scheduler struct {
	table []Questionnaire
	now   func() time.Time
	loc   *time.Location
}

type Option func(*Scheduler)

// WithTable replaces the default questionnaire table.
func WithTable(table []Questionnaire) Option {
	return func(s *Scheduler) {
		s.table = slices.Clone(table)
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithLocation sets the time zone calendar days are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		s.loc = loc
	}
}

func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		table: DefaultTable(),
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the scheduler's current calendar day.
func (s *Scheduler) Today() time.Time {
	return xtime.Today(s.now(), s.loc)
}

// Pending returns the tasks due today given each task's last completion.
// Daily metrics are due unless completed on today's calendar day;
// questionnaires are due when never completed or at least FrequencyDays
// calendar days ago. High priority tasks come first.
func (s *Scheduler) Pending(lastCompletions map[wellness.TaskID]time.Time) []wellness.ScheduledTask {
	today := s.Today()

	var tasks []wellness.ScheduledTask
	for _, t := range daily {
		last, ok := lastCompletions[t.ID]
		if ok && s.daysSince(last, today) <= 0 {
			continue
		}
		t.DueDate = today
		tasks = append(tasks, t)
	}

	for _, q := range s.table {
		last, ok := lastCompletions[q.ID]
		if ok && s.daysSince(last, today) < q.FrequencyDays {
			continue
		}
		tasks = append(tasks, wellness.ScheduledTask{
			ID:       q.ID,
			Type:     wellness.TaskTypeQuestionnaire,
			Title:    cmp.Or(q.Title, string(q.ID)),
			Priority: wellness.PriorityMedium,
			DueDate:  today,
		})
	}

	slices.SortStableFunc(tasks, func(a, b wellness.ScheduledTask) int {
		return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
	})
	return tasks
}

// Lookup returns the task definition for id, wrapping ErrUnknownTask when
// the id is neither a daily metric nor in the table.
func (s *Scheduler) Lookup(id wellness.TaskID) (wellness.ScheduledTask, error) {
	for _, t := range daily {
		if t.ID == id {
			return t, nil
		}
	}
	for _, q := range s.table {
		if q.ID == id {
			return wellness.ScheduledTask{
				ID:       q.ID,
				Type:     wellness.TaskTypeQuestionnaire,
				Title:    cmp.Or(q.Title, string(q.ID)),
				Priority: wellness.PriorityMedium,
			}, nil
		}
	}
	return wellness.ScheduledTask{}, fmt.Errorf("%w: %s", ErrUnknownTask, id)
}

func (s *Scheduler) daysSince(last, today time.Time) int {
	return xtime.DaysBetween(last.In(s.loc), today)
}
