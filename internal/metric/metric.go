// Package metric is the closed catalogue of metrics the engine reports.
package metric

import (
	"errors"
	"fmt"
	"strings"
)

type Kind uint8

const (
	TSS Kind = iota + 1
	ATL
	CTL
	TSB
	Monotony
	Strain
	TRIMP
	PSE
	PSR
	TQR
	Readiness
	RecoveryIndex
)

var ErrUnknownKind = errors.New("unknown metric")

type info struct {
	key         string
	title       string
	unit        string
	description string
}

var catalogue = [...]info{
	TSS: {
		key:   "tss",
		title: "Training Stress Score",
		unit:  "TSS",
		description: "Load of a single day: session duration in hours times the squared " +
			"intensity fraction, times 100. An hour at maximal intensity is 100.",
	},
	ATL: {
		key:   "atl",
		title: "Acute Training Load",
		unit:  "TSS/day",
		description: "Fatigue. Exponentially weighted average of daily TSS over a " +
			"7-day time constant.",
	},
	CTL: {
		key:   "ctl",
		title: "Chronic Training Load",
		unit:  "TSS/day",
		description: "Fitness. Exponentially weighted average of daily TSS over a " +
			"42-day time constant.",
	},
	TSB: {
		key:   "tsb",
		title: "Training Stress Balance",
		unit:  "TSS/day",
		description: "Form. Chronic load minus acute load; positive when fresh, " +
			"negative when carrying fatigue.",
	},
	Monotony: {
		key:   "monotony",
		title: "Training Monotony",
		unit:  "",
		description: "Mean daily load over the last week divided by its standard " +
			"deviation. High values flag repetitive training.",
	},
	Strain: {
		key:         "strain",
		title:       "Training Strain",
		unit:        "TSS",
		description: "Mean daily load over the last week multiplied by monotony.",
	},
	TRIMP: {
		key:   "trimp",
		title: "Training Impulse",
		unit:  "AU",
		description: "Heart-rate load: duration times average heart rate, weighted " +
			"exponentially by the fraction of maximum heart rate.",
	},
	PSE: {
		key:   "pse",
		title: "Perceived Subjective Effort",
		unit:  "",
		description: "Session RPE scaled up by the day's stress and fatigue, " +
			"from 0 to 20.",
	},
	PSR: {
		key:   "psr",
		title: "Perceived Sleep Recovery",
		unit:  "/10",
		description: "Sleep quality adjusted for sleep duration and resting heart " +
			"rate.",
	},
	TQR: {
		key:   "tqr",
		title: "Total Quality Recovery",
		unit:  "/10",
		description: "Weighted blend of sleep quality, duration and regularity, " +
			"stress, mood and fatigue.",
	},
	Readiness: {
		key:   "readiness",
		title: "Readiness Score",
		unit:  "/100",
		description: "Sleep quality, mood, fatigue, muscle soreness and stress, " +
			"20 points each. Drives the training recommendation.",
	},
	RecoveryIndex: {
		key:   "recovery_index",
		title: "Recovery Index",
		unit:  "/100",
		description: "Recovery from resting heart rate against baseline, recent " +
			"load, last night's sleep and subjective recovery.",
	},
}

// All returns every metric in display order.
func All() []Kind {
	kinds := make([]Kind, 0, len(catalogue)-1)
	for k := TSS; k <= RecoveryIndex; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) Valid() bool {
	return k >= TSS && k <= RecoveryIndex
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("metric(%d)", k)
	}
	return catalogue[k].key
}

func (k Kind) Title() string {
	if !k.Valid() {
		return ""
	}
	return catalogue[k].title
}

func (k Kind) Unit() string {
	if !k.Valid() {
		return ""
	}
	return catalogue[k].unit
}

func (k Kind) Description() string {
	if !k.Valid() {
		return ""
	}
	return catalogue[k].description
}

// Parse accepts a metric key case-insensitively, with dashes or underscores.
func Parse(s string) (Kind, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, k := range All() {
		if catalogue[k].key == key {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Info is the JSON shape of a catalogue entry.
type Info struct {
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Unit        string `json:"unit,omitempty"`
	Description string `json:"description"`
}

func Catalogue() []Info {
	kinds := All()
	out := make([]Info, len(kinds))
	for i, k := range kinds {
		out[i] = Info{
			Kind:        k,
			Title:       k.Title(),
			Unit:        k.Unit(),
			Description: k.Description(),
		}
	}
	return out
}
