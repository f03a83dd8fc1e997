package load

import (
	"math"
	"time"

	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xtime"
)

const (
	AcuteDays   = 7
	ChronicDays = 42
	WeekDays    = 7
)

type DailyLoad struct {
	Date time.Time
	TSS  float64
}

// DailyLoads buckets sessions by calendar day up to and including date and
// returns one entry per day from the first session day through date, oldest
// first. Days without sessions carry zero load. Sessions after date are
// ignored, so the series for any historical date can be rebuilt from the
// full history.
func DailyLoads(sessions []wellness.TrainingSession, date time.Time) []DailyLoad {
	end := xtime.Day(date)

	var (
		byDay = make(map[time.Time]float64)
		first time.Time
	)
	for _, s := range sessions {
		day := xtime.Day(s.Date)
		if day.After(end) {
			continue
		}
		if first.IsZero() || day.Before(first) {
			first = day
		}
		byDay[day] += SessionTSS(s)
	}

	if first.IsZero() {
		return nil
	}

	loads := make([]DailyLoad, 0, xtime.DaysBetween(first, end)+1)
	for d := first; !d.After(end); d = d.AddDate(0, 0, 1) {
		loads = append(loads, DailyLoad{Date: d, TSS: byDay[d]})
	}
	return loads
}

// Values extracts the TSS series from loads, preserving order.
func Values(loads []DailyLoad) []float64 {
	out := make([]float64, len(loads))
	for i, l := range loads {
		out[i] = l.TSS
	}
	return out
}

// EWMA is the exponentially weighted moving average of values with time
// constant n, using alpha = 2/(n+1). values must be chronological (oldest
// first): the average is seeded with the oldest value and updated forward.
func EWMA(values []float64, n int) float64 {
	if len(values) == 0 || n <= 0 {
		return 0
	}
	alpha := 2 / (float64(n) + 1)
	avg := values[0]
	for _, v := range values[1:] {
		avg += alpha * (v - avg)
	}
	return avg
}

func ATL(values []float64) float64 { return EWMA(values, AcuteDays) }

func CTL(values []float64) float64 { return EWMA(values, ChronicDays) }

func lastWeek(values []float64) []float64 {
	if len(values) > WeekDays {
		return values[len(values)-WeekDays:]
	}
	return values
}

func meanStdDev(values []float64) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}

// WeeklyMean is the mean daily load over the last seven values.
func WeeklyMean(values []float64) float64 {
	mean, _ := meanStdDev(lastWeek(values))
	return mean
}

// varianceEpsilon is the relative stddev below which a week counts as
// constant. Identical non-representable loads such as 33.3 leave a rounding
// residue in the stddev.
const varianceEpsilon = 1e-9

// Monotony is mean/stddev of the last seven daily loads. It is 0 when there
// are fewer than two values or no variation.
func Monotony(values []float64) float64 {
	week := lastWeek(values)
	if len(week) < 2 || constant(week) {
		return 0
	}
	mean, stddev := meanStdDev(week)
	if stddev <= varianceEpsilon*max(1, math.Abs(mean)) {
		return 0
	}
	return mean / stddev
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// Strain is the weekly mean load multiplied by monotony.
func Strain(values []float64) float64 {
	return WeeklyMean(values) * Monotony(values)
}

// Metrics computes the load trend as of date from the full session history.
func Metrics(sessions []wellness.TrainingSession, date time.Time) wellness.TrainingMetrics {
	day := xtime.Day(date)
	values := Values(DailyLoads(sessions, day))

	m := wellness.TrainingMetrics{Date: day}
	if len(values) == 0 {
		return m
	}

	m.TSS = values[len(values)-1]
	m.ATL = ATL(values)
	m.CTL = CTL(values)
	m.TSB = m.CTL - m.ATL
	m.Monotony = Monotony(values)
	m.Strain = Strain(values)
	return m
}

// FormDescription describes the freshness implied by a TSB value.
func FormDescription(tsb float64) string {
	switch {
	case tsb > 25:
		return "Very fresh, possibly detraining"
	case tsb > 10:
		return "Fresh and ready to perform"
	case tsb > 0:
		return "Neutral, good for training"
	case tsb > -10:
		return "Slightly fatigued"
	case tsb > -25:
		return "Tired but building fitness"
	default:
		return "Very fatigued, rest needed"
	}
}
