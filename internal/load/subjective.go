package load

import (
	"math"

	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xmath"
)

const (
	DefaultMaxHR = 190

	// banister coefficient for the exponential heart-rate weighting
	trimpB = 1.92
)

// TRIMP is the heart-rate training impulse:
//
//	duration * avgHR * e^(1.92 * avgHR/maxHR) / 100
//
// maxHR falls back to DefaultMaxHR when not positive. Non-finite inputs count
// as 0.
func TRIMP(durationMin, avgHR, maxHR float64) float64 {
	durationMin = xmath.Finite(durationMin, 0)
	avgHR = xmath.Finite(avgHR, 0)
	maxHR = xmath.Finite(maxHR, 0)
	if durationMin <= 0 || avgHR <= 0 {
		return 0
	}
	if maxHR <= 0 {
		maxHR = DefaultMaxHR
	}
	return durationMin * avgHR * math.Exp(trimpB*avgHR/maxHR) / 100
}

// SessionTRIMP returns 0 for sessions without an average heart rate.
func SessionTRIMP(s wellness.TrainingSession) float64 {
	if s.AverageHR == nil {
		return 0
	}
	var maxHR float64
	if s.MaxHR != nil {
		maxHR = float64(*s.MaxHR)
	}
	return TRIMP(s.Duration, float64(*s.AverageHR), maxHR)
}

// PSE weights RPE by the day's stress and fatigue:
//
//	rpe * (1 + (stress/10 + fatigue/10)/2)
func PSE(rpe, stress, fatigue float64) float64 {
	if rpe <= 0 {
		return 0
	}
	rpe = scale(rpe)
	stress = scale(stress)
	fatigue = scale(fatigue)
	return xmath.Round(rpe*(1+(stress/10+fatigue/10)/2), 1)
}

// PSR starts from sleep quality and adjusts for sleep duration and resting
// heart rate. Missing sleep duration or heart rate adjust nothing.
func PSR(a wellness.DailyAssessment) float64 {
	psr := scale(float64(a.SleepQuality))

	if a.SleepDuration != nil {
		switch h := *a.SleepDuration; {
		case h >= 7 && h <= 9:
			psr++
		case h < 6 || h > 10:
			psr--
		}
	}

	if a.RestingHR != nil {
		switch rhr := *a.RestingHR; {
		case rhr <= 60:
			psr += 0.5
		case rhr > 80:
			psr -= 0.5
		}
	}

	return xmath.Round(scale(psr), 1)
}

const defaultNormalizedSleep = 5

// NormalizedSleep maps sleep hours onto 0-10, 4h -> 0 and 12h -> 10.
func NormalizedSleep(hours *float64) float64 {
	if hours == nil {
		return defaultNormalizedSleep
	}
	return scale((*hours - 4) * 1.25)
}

// TQR is the total quality of recovery on a 0-10 scale.
func TQR(a wellness.DailyAssessment) float64 {
	tqr := scale(float64(a.SleepQuality))*0.30 +
		NormalizedSleep(a.SleepDuration)*0.20 +
		scale(float64(a.SleepRegularity))*0.15 +
		(10-scale(float64(a.StressLevel)))*0.15 +
		scale(float64(a.Mood))*0.10 +
		(10-scale(float64(a.FatigueLevel)))*0.10
	return xmath.Round(scale(tqr), 1)
}

func scale(v float64) float64 {
	return xmath.Clamp(xmath.Finite(v, 0), wellness.ScaleMin, wellness.ScaleMax)
}
