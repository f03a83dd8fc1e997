package readiness

import (
	"math"

	"github.com/garrettladley/ready/internal/wellness"
	"github.com/garrettladley/ready/internal/xmath"
)

const (
	MinScore = 0
	MaxScore = 100

	// each of the five inputs contributes at most this many points
	componentPoints = 20
)

// Score is the composite readiness for a day on a 0-100 scale. Sleep quality
// and mood count directly; fatigue, soreness and stress are inverted.
func Score(a wellness.DailyAssessment) int {
	sum := direct(a.SleepQuality) +
		inverted(a.FatigueLevel) +
		direct(a.Mood) +
		inverted(a.MuscleSoreness) +
		inverted(a.StressLevel)
	return int(math.Round(xmath.Clamp(sum, MinScore, MaxScore)))
}

func direct(v int) float64 {
	return clampScale(v) / wellness.ScaleMax * componentPoints
}

func inverted(v int) float64 {
	return (wellness.ScaleMax - clampScale(v)) / wellness.ScaleMax * componentPoints
}

func clampScale(v int) float64 {
	return float64(xmath.Clamp(v, wellness.ScaleMin, wellness.ScaleMax))
}
