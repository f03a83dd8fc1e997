package xtime

import (
	"fmt"
	"time"
)

// DayLayout is the wire and storage format for calendar days.
const DayLayout = "2006-01-02"

// Day truncates t to its calendar day. The year, month and day are read in
// t's own location and the result is midnight UTC, so two Days compare equal
// exactly when they name the same calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar day of now in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return Day(now.In(loc))
}

// DaysBetween returns the number of calendar days from a to b.
// It is negative when b is before a. Time of day is ignored.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// AddDays returns the calendar day n days after d.
func AddDays(d time.Time, n int) time.Time {
	return Day(d).AddDate(0, 0, n)
}

func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q (want %s): %w", s, DayLayout, err)
	}
	return t, nil
}

func FormatDay(t time.Time) string {
	return Day(t).Format(DayLayout)
}
