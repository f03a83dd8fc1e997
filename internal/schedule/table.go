package schedule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/garrettladley/ready/internal/wellness"
)

const (
	TaskPhysicalMetrics wellness.TaskID = "physical-metrics"
	TaskMentalMetrics   wellness.TaskID = "mental-metrics"

	TaskPOMS       wellness.TaskID = "poms"
	TaskRESTQSport wellness.TaskID = "restq-sport"
	TaskPSQI       wellness.TaskID = "psqi"
)

var ErrUnknownTask = errors.New("unknown task")

// Questionnaire is a recurring questionnaire, due every FrequencyDays
// calendar days after its last completion.
type Questionnaire struct {
	ID            wellness.TaskID `toml:"id"`
	Title         string          `toml:"title"`
	FrequencyDays int             `toml:"frequency_days"`
}

var daily = []wellness.ScheduledTask{
	{ID: TaskPhysicalMetrics, Type: wellness.TaskTypeMetric, Title: "Physical metrics", Priority: wellness.PriorityHigh},
	{ID: TaskMentalMetrics, Type: wellness.TaskTypeMetric, Title: "Mental metrics", Priority: wellness.PriorityHigh},
}

func DefaultTable() []Questionnaire {
	return []Questionnaire{
		{ID: TaskPOMS, Title: "Profile of Mood States", FrequencyDays: 7},
		{ID: TaskRESTQSport, Title: "Recovery-Stress Questionnaire for Athletes", FrequencyDays: 14},
		{ID: TaskPSQI, Title: "Pittsburgh Sleep Quality Index", FrequencyDays: 14},
	}
}

type tableFile struct {
	Questionnaires []Questionnaire `toml:"questionnaire"`
}

// LoadTable reads a questionnaire table from a TOML file of the form
//
//	[[questionnaire]]
//	id = "poms"
//	title = "Profile of Mood States"
//	frequency_days = 7
func LoadTable(path string) ([]Questionnaire, error) {
	var f tableFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode schedule file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("schedule file %s has unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := ValidateTable(f.Questionnaires); err != nil {
		return nil, fmt.Errorf("invalid schedule file %s: %w", path, err)
	}
	return f.Questionnaires, nil
}

func ValidateTable(table []Questionnaire) error {
	if len(table) == 0 {
		return errors.New("no questionnaires")
	}

	seen := make(map[wellness.TaskID]struct{}, len(table))
	for _, t := range daily {
		seen[t.ID] = struct{}{}
	}

	var errs []error
	for i, q := range table {
		switch {
		case q.ID == "":
			errs = append(errs, fmt.Errorf("questionnaire %d: id is required", i))
			continue
		case q.FrequencyDays <= 0:
			errs = append(errs, fmt.Errorf("questionnaire %s: frequency_days must be positive, got %d", q.ID, q.FrequencyDays))
		}
		if _, ok := seen[q.ID]; ok {
			errs = append(errs, fmt.Errorf("questionnaire %s: duplicate id", q.ID))
		}
		seen[q.ID] = struct{}{}
	}
	return errors.Join(errs...)
}
