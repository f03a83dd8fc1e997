package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/ready/internal/load"
	"github.com/garrettladley/ready/internal/readiness"
	"github.com/garrettladley/ready/internal/recovery"
	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xtime"
)

func (t *Tracker) computeSummary(ctx context.Context, userID uuid.UUID, day time.Time) (*Summary, error) {
	var (
		assessments []wellness.DailyAssessment
		sessions    []wellness.TrainingSession
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assessments, err = t.repo.Assessments.GetByDateRange(gctx, userID, xtime.AddDays(day, -(BaselineDays-1)), day)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = t.repo.Sessions.ListUntil(gctx, userID, day)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildSummary(day, assessments, sessions, t.sleepReference, t.loadThreshold, t.now().UTC()), nil
}

// buildSummary expects assessments from the baseline window ending on day,
// oldest first, and the session history up to day.
func buildSummary(
	day time.Time,
	assessments []wellness.DailyAssessment,
	sessions []wellness.TrainingSession,
	sleepRef, loadThreshold float64,
	now time.Time,
) *Summary {
	var today *wellness.DailyAssessment
	if n := len(assessments); n > 0 && xtime.SameDay(assessments[n-1].Date, day) {
		today = &assessments[n-1]
	}

	metrics := load.Metrics(sessions, day)
	s := &Summary{
		Date:       day,
		Assessment: today,
		Load:       metrics,
		Form:       load.FormDescription(metrics.TSB),
		Sessions:   sessionLoads(day, sessions, today),
		SleepDebt:  recovery.SleepDebt(nights(assessments), sleepRef),
		ComputedAt: now,
	}

	in := recoveryInputs(day, assessments, today, sessions)
	in.SRef = &sleepRef
	in.LThr = &loadThreshold

	if today != nil {
		score := readiness.Score(*today)
		rec := readiness.Recommend(score, metrics.TSB)
		s.Recommendation = &rec

		tqr := load.TQR(*today)
		psr := load.PSR(*today)
		s.TQR, s.PSR = &tqr, &psr
	}

	s.Recovery = recovery.Compute(in)
	s.Penalties = recovery.ComputePenalties(in)
	return s
}

func sessionLoads(day time.Time, sessions []wellness.TrainingSession, today *wellness.DailyAssessment) []SessionLoad {
	var stress, fatigue float64
	if today != nil {
		stress, fatigue = float64(today.StressLevel), float64(today.FatigueLevel)
	}

	out := []SessionLoad{}
	for _, s := range sessions {
		if !xtime.SameDay(s.Date, day) {
			continue
		}
		out = append(out, SessionLoad{
			ID:           s.ID,
			TrainingType: s.TrainingType,
			Duration:     s.Duration,
			TSS:          load.SessionTSS(s),
			TRIMP:        load.SessionTRIMP(s),
			PSE:          load.PSE(s.RPE, stress, fatigue),
		})
	}
	return out
}

// nights lists recorded sleep durations, oldest first.
func nights(assessments []wellness.DailyAssessment) []float64 {
	var out []float64
	for _, a := range assessments {
		if a.SleepDuration != nil {
			out = append(out, *a.SleepDuration)
		}
	}
	return out
}

func recoveryInputs(
	day time.Time,
	assessments []wellness.DailyAssessment,
	today *wellness.DailyAssessment,
	sessions []wellness.TrainingSession,
) recovery.Inputs {
	var in recovery.Inputs

	if today != nil {
		if today.RestingHR != nil {
			rhr := float64(*today.RestingHR)
			in.RHRToday = &rhr
		}
		if today.SleepDuration != nil {
			sleep := *today.SleepDuration
			in.SleepLast = &sleep
		}
		tqr := load.TQR(*today)
		stress := float64(today.StressLevel)
		in.TQR, in.PsyStress = &tqr, &stress
	}
	in.RHRBase = restingBaseline(day, assessments)

	var (
		tss24, tss48     float64
		trimp24, trimp48 float64
		recent, withHR   int
	)
	for _, s := range sessions {
		ago := xtime.DaysBetween(s.Date, day)
		if ago < 0 || ago > 2 {
			continue
		}
		recent++
		if s.AverageHR != nil {
			withHR++
		}
		if ago == 0 {
			tss24 += load.SessionTSS(s)
			trimp24 += load.SessionTRIMP(s)
		} else {
			tss48 += load.SessionTSS(s)
			trimp48 += load.SessionTRIMP(s)
		}
	}
	in.TSS24, in.TSS48Prev = &tss24, &tss48
	// TRIMP replaces TSS only when every recent session has heart rate data
	if recent > 0 && withHR == recent {
		in.TRIMP24, in.TRIMP48Prev = &trimp24, &trimp48
	}
	return in
}

// restingBaseline averages resting heart rate over the baseline window
// before day. It is nil when no earlier day recorded one.
func restingBaseline(day time.Time, assessments []wellness.DailyAssessment) *float64 {
	var (
		sum float64
		n   int
	)
	for _, a := range assessments {
		if a.RestingHR == nil || !xtime.Day(a.Date).Before(day) {
			continue
		}
		sum += float64(*a.RestingHR)
		n++
	}
	if n == 0 {
		return nil
	}
	base := sum / float64(n)
	return &base
}
