package wellness

import (
	"time"

	"github.com/google/uuid"
)

// Scale bounds for the subjective 0-10 inputs.
const (
	ScaleMin = 0
	ScaleMax = 10
)

// DailyAssessment is one user's subjective check-in for a calendar day.
// There is at most one per (user, date); resubmitting the same day overwrites it.
type DailyAssessment struct {
	Date            time.Time `json:"date"`
	SleepQuality    int       `json:"sleep_quality"`
	SleepRegularity int       `json:"sleep_regularity"`
	FatigueLevel    int       `json:"fatigue_level"`
	Mood            int       `json:"mood"`
	MuscleSoreness  int       `json:"muscle_soreness"`
	StressLevel     int       `json:"stress_level"`
	Exhaustion      int       `json:"exhaustion"`
	SleepDuration   *float64  `json:"sleep_duration,omitempty"` // hours
	RestingHR       *int      `json:"resting_hr,omitempty"`     // bpm
	UpdatedAt       time.Time `json:"updated_at"`
}

type TrainingSession struct {
	ID           uuid.UUID `json:"id"`
	Date         time.Time `json:"date"`
	Duration     float64   `json:"duration"` // minutes
	RPE          float64   `json:"rpe"`
	Intensity    *float64  `json:"intensity,omitempty"`
	TSS          *float64  `json:"tss,omitempty"`
	AverageHR    *int      `json:"average_hr,omitempty"`
	MaxHR        *int      `json:"max_hr,omitempty"`
	TrainingType string    `json:"training_type,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// TrainingMetrics is derived from the session history up to and including Date.
// It is never persisted.
type TrainingMetrics struct {
	Date     time.Time `json:"date"`
	TSS      float64   `json:"tss"`
	ATL      float64   `json:"atl"`
	CTL      float64   `json:"ctl"`
	TSB      float64   `json:"tsb"`
	Monotony float64   `json:"monotony"`
	Strain   float64   `json:"strain"`
}

type TaskID string

type TaskType string

const (
	TaskTypeMetric        TaskType = "metric"
	TaskTypeQuestionnaire TaskType = "questionnaire"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// Rank orders priorities; lower ranks come first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type ScheduledTask struct {
	ID       TaskID    `json:"id"`
	Type     TaskType  `json:"type"`
	Title    string    `json:"title"`
	Priority Priority  `json:"priority"`
	DueDate  time.Time `json:"due_date"`
}
