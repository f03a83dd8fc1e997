package wellness

import (
	"fmt"
	"time"

	"github.com/garrettladley/ready/internal/validator"
	"github.com/garrettladley/ready/internal/xtime"
)

var (
	_ validator.Validator = (*DailyAssessment)(nil)
	_ validator.Validator = (*TrainingSession)(nil)
)

const (
	maxSleepHours      = 24
	maxSessionMinutes  = 24 * 60
	minHeartRate       = 20
	maxHeartRate       = 250
	scaleOutOfRangeMsg = "must be between 0 and 10"
)

// Records are accepted from minDate up to maxFutureDate past now.
var minDate = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

const maxFutureDate = 24 * time.Hour

func (a *DailyAssessment) Validate() map[string]string {
	errs := make(map[string]string)

	checkDate(errs, a.Date)

	checkScale(errs, "sleep_quality", a.SleepQuality)
	checkScale(errs, "sleep_regularity", a.SleepRegularity)
	checkScale(errs, "fatigue_level", a.FatigueLevel)
	checkScale(errs, "mood", a.Mood)
	checkScale(errs, "muscle_soreness", a.MuscleSoreness)
	checkScale(errs, "stress_level", a.StressLevel)
	checkScale(errs, "exhaustion", a.Exhaustion)

	if a.SleepDuration != nil && (*a.SleepDuration < 0 || *a.SleepDuration > maxSleepHours) {
		errs["sleep_duration"] = fmt.Sprintf("must be between 0 and %d hours", maxSleepHours)
	}
	if a.RestingHR != nil {
		checkHeartRate(errs, "resting_hr", *a.RestingHR)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (s *TrainingSession) Validate() map[string]string {
	errs := make(map[string]string)

	checkDate(errs, s.Date)
	if s.Duration < 0 || s.Duration > maxSessionMinutes {
		errs["duration"] = fmt.Sprintf("must be between 0 and %d minutes", maxSessionMinutes)
	}
	if s.RPE < ScaleMin || s.RPE > ScaleMax {
		errs["rpe"] = scaleOutOfRangeMsg
	}
	if s.Intensity != nil && (*s.Intensity < ScaleMin || *s.Intensity > ScaleMax) {
		errs["intensity"] = scaleOutOfRangeMsg
	}
	if s.TSS != nil && *s.TSS < 0 {
		errs["tss"] = "must not be negative"
	}
	if s.AverageHR != nil {
		checkHeartRate(errs, "average_hr", *s.AverageHR)
	}
	if s.MaxHR != nil {
		checkHeartRate(errs, "max_hr", *s.MaxHR)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkDate(errs map[string]string, d time.Time) {
	switch {
	case d.IsZero():
		errs["date"] = "is required"
	case d.Before(minDate):
		errs["date"] = "must not be before " + xtime.FormatDay(minDate)
	case d.After(time.Now().Add(maxFutureDate)):
		errs["date"] = "must not be more than a day in the future"
	}
}

func checkScale(errs map[string]string, field string, v int) {
	if v < ScaleMin || v > ScaleMax {
		errs[field] = scaleOutOfRangeMsg
	}
}

func checkHeartRate(errs map[string]string, field string, v int) {
	if v < minHeartRate || v > maxHeartRate {
		errs[field] = fmt.Sprintf("must be between %d and %d bpm", minHeartRate, maxHeartRate)
	}
}
