package recovery

import "github.com/garrettladley/ready/internal/xmath"

// DebtWindow is how many recent nights count towards sleep debt.
const DebtWindow = 7

// SleepDebt is the running sleep deficit in hours over the last DebtWindow
// nights, oldest first. A long night pays debt back but never below zero.
// sRef falls back to DefaultSleepReference when not positive.
func SleepDebt(nights []float64, sRef float64) float64 {
	if sRef <= 0 {
		sRef = DefaultSleepReference
	}
	if len(nights) > DebtWindow {
		nights = nights[len(nights)-DebtWindow:]
	}

	var debt float64
	for _, h := range nights {
		debt = max(0, debt+sRef-nonNegative(h))
	}
	return xmath.Round(debt, 1)
}
