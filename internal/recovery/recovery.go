// Package recovery estimates how recovered an athlete is from resting heart
// rate, recent load, sleep and subjective recovery, and how much sleep and
// time they need to be ready to train again.
package recovery

import (
	"math"

	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xmath"
)

const (
	DefaultLoadThreshold  = 150.0
	DefaultSleepReference = 8.0

	// ReadyThreshold is the recovery index considered ready to train.
	ReadyThreshold = 80.0
	// RecoveryRate is the assumed recovery in index points per hour.
	RecoveryRate = 2.5

	MaxSleepNeeded = 16.0

	// a resting heart rate 10% above baseline is the full autonomic penalty
	rhrElevationCeiling = 0.10
	prevLoadWeight      = 0.5
)

const (
	weightRHR    = 0.25
	weightLoad   = 0.25
	weightSleep  = 0.25
	weightTQR    = 0.15
	weightStress = 0.10
)

// Inputs are all optional. A nil field carries no signal.
type Inputs struct {
	RHRToday    *float64 `json:"rhr_today,omitempty"`
	RHRBase     *float64 `json:"rhr_base,omitempty"`
	TSS24       *float64 `json:"tss_24,omitempty"`
	TSS48Prev   *float64 `json:"tss_48_prev,omitempty"`
	TRIMP24     *float64 `json:"trimp_24,omitempty"`
	TRIMP48Prev *float64 `json:"trimp_48_prev,omitempty"`
	SleepLast   *float64 `json:"sleep_last,omitempty"`
	SRef        *float64 `json:"s_ref,omitempty"`
	TQR         *float64 `json:"tqr,omitempty"`
	PsyStress   *float64 `json:"psy_stress,omitempty"`
	LThr        *float64 `json:"l_thr,omitempty"`
}

type Result struct {
	RecoveryIndex      float64 `json:"recovery_index"`
	SleepNeededTonight float64 `json:"sleep_needed_tonight"`
	TimeToReadyHours   float64 `json:"time_to_ready_hours"`
}

// Penalties are the individual deficits feeding the recovery index, each in
// [0,1].
type Penalties struct {
	RHR    float64 `json:"rhr"`
	Load   float64 `json:"load"`
	Sleep  float64 `json:"sleep"`
	TQR    float64 `json:"tqr"`
	Stress float64 `json:"stress"`
}

func Compute(in Inputs) Result {
	in = in.finite()
	p := ComputePenalties(in)

	ri := 100 * (1 -
		weightRHR*p.RHR -
		weightLoad*p.Load -
		weightSleep*p.Sleep -
		weightTQR*p.TQR -
		weightStress*p.Stress)
	ri = xmath.Round(xmath.Clamp(xmath.Finite(ri, 0), 0, 100), 1)

	sRef := sleepReference(in.SRef)
	var debt float64
	if in.SleepLast != nil {
		debt = max(0, sRef-nonNegative(*in.SleepLast))
	}
	need := sRef + debt + 1.0*p.Load + 0.5*p.RHR
	need = xmath.Round(xmath.Clamp(xmath.Finite(need, sRef), 0, MaxSleepNeeded), 1)

	return Result{
		RecoveryIndex:      ri,
		SleepNeededTonight: need,
		TimeToReadyHours:   TimeToReady(ri),
	}
}

// TimeToReady is the hours until index reaches ReadyThreshold at RecoveryRate.
func TimeToReady(index float64) float64 {
	return xmath.Round(max(0, (ReadyThreshold-index)/RecoveryRate), 1)
}

func ComputePenalties(in Inputs) Penalties {
	in = in.finite()
	return Penalties{
		RHR:    rhrPenalty(in.RHRToday, in.RHRBase),
		Load:   loadPenalty(in),
		Sleep:  sleepPenalty(in.SleepLast, in.SRef),
		TQR:    invertedScale(in.TQR),
		Stress: directScale(in.PsyStress),
	}
}

// finite drops NaN and infinite inputs so they read as missing.
func (in Inputs) finite() Inputs {
	for _, f := range []**float64{
		&in.RHRToday, &in.RHRBase,
		&in.TSS24, &in.TSS48Prev,
		&in.TRIMP24, &in.TRIMP48Prev,
		&in.SleepLast, &in.SRef,
		&in.TQR, &in.PsyStress, &in.LThr,
	} {
		if p := *f; p != nil && (math.IsNaN(*p) || math.IsInf(*p, 0)) {
			*f = nil
		}
	}
	return in
}

func rhrPenalty(today, base *float64) float64 {
	if today == nil || base == nil || *base <= 0 {
		return 0
	}
	elevation := (*today - *base) / *base
	return unit(elevation / rhrElevationCeiling)
}

// loadPenalty prefers TRIMP when the last 24h TRIMP is known and falls back
// to TSS otherwise.
func loadPenalty(in Inputs) float64 {
	recent, prev := in.TSS24, in.TSS48Prev
	if in.TRIMP24 != nil {
		recent, prev = in.TRIMP24, in.TRIMP48Prev
	}
	load := nonNegative(xmath.Deref(recent, 0)) + prevLoadWeight*nonNegative(xmath.Deref(prev, 0))
	if load == 0 {
		return 0
	}

	thr := xmath.Deref(in.LThr, DefaultLoadThreshold)
	if thr <= 0 {
		thr = DefaultLoadThreshold
	}
	return unit(load / thr)
}

func sleepPenalty(last, ref *float64) float64 {
	if last == nil {
		return 0
	}
	return unit(1 - nonNegative(*last)/sleepReference(ref))
}

func sleepReference(ref *float64) float64 {
	if ref == nil || *ref <= 0 {
		return DefaultSleepReference
	}
	return xmath.Finite(*ref, DefaultSleepReference)
}

func invertedScale(v *float64) float64 {
	if v == nil {
		return 0
	}
	return (wellness.ScaleMax - clampScale(*v)) / wellness.ScaleMax
}

func directScale(v *float64) float64 {
	if v == nil {
		return 0
	}
	return clampScale(*v) / wellness.ScaleMax
}

func clampScale(v float64) float64 {
	return xmath.Clamp(xmath.Finite(v, 0), wellness.ScaleMin, wellness.ScaleMax)
}

func unit(v float64) float64 {
	return xmath.Clamp(xmath.Finite(v, 0), 0, 1)
}

func nonNegative(v float64) float64 {
	return max(0, xmath.Finite(v, 0))
}
