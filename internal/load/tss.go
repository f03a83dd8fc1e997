package load

import (
	"math"

	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xmath"
)

// neutralRPE is the RPE at which TSSWithRPE leaves the score unscaled.
const neutralRPE = 13

// TSS estimates a session's training stress score from its duration in minutes
// and intensity on the 0-10 scale:
//
//	TSS = hours * (intensity/10)^2 * 100
//
// The result is rounded to the nearest integer and is 0 when either input is
// not positive or not finite.
func TSS(durationMin, intensity float64) float64 {
	return math.Round(rawTSS(durationMin, intensity))
}

// TSSWithRPE scales TSS by rpe/13 when rpe is positive.
func TSSWithRPE(durationMin, intensity, rpe float64) float64 {
	tss := rawTSS(durationMin, intensity)
	if rpe = xmath.Finite(rpe, 0); rpe > 0 {
		tss *= xmath.Clamp(rpe, wellness.ScaleMin, wellness.ScaleMax) / neutralRPE
	}
	return math.Round(tss)
}

func rawTSS(durationMin, intensity float64) float64 {
	durationMin = xmath.Finite(durationMin, 0)
	intensity = xmath.Finite(intensity, 0)
	if durationMin <= 0 || intensity <= 0 {
		return 0
	}
	intensity = xmath.Clamp(intensity, wellness.ScaleMin, wellness.ScaleMax)
	hours := durationMin / 60
	ratio := intensity / 10
	return hours * ratio * ratio * 100
}

// SessionTSS returns the session's stored TSS when present. Otherwise it is
// derived from intensity scaled by RPE, or from RPE alone when no intensity
// was recorded.
func SessionTSS(s wellness.TrainingSession) float64 {
	if s.TSS != nil {
		return max(xmath.Finite(*s.TSS, 0), 0)
	}
	if s.Intensity != nil && *s.Intensity > 0 {
		return TSSWithRPE(s.Duration, *s.Intensity, s.RPE)
	}
	return TSS(s.Duration, s.RPE)
}
