package readiness

// Band is one of the four readiness buckets.
type Band uint8

const (
	BandRecovery Band = iota
	BandLight
	BandModerate
	BandStrong
)

const (
	strongMin   = 76
	moderateMin = 51
	lightMin    = 26
)

func BandFor(score int) Band {
	switch {
	case score >= strongMin:
		return BandStrong
	case score >= moderateMin:
		return BandModerate
	case score >= lightMin:
		return BandLight
	default:
		return BandRecovery
	}
}

func (b Band) String() string {
	switch b {
	case BandStrong:
		return "strong"
	case BandModerate:
		return "moderate"
	case BandLight:
		return "light"
	default:
		return "recovery"
	}
}

type Type string

const (
	TypeTraining Type = "training"
	TypeRecovery Type = "recovery"
	TypeRest     Type = "rest"
)

type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
)

// ColorFor is the color of the band a score falls in. Every view that colors
// a readiness score goes through here.
func ColorFor(score int) Color {
	return BandFor(score).Color()
}

func (b Band) Color() Color {
	switch b {
	case BandStrong:
		return ColorBlue
	case BandModerate:
		return ColorGreen
	case BandLight:
		return ColorYellow
	default:
		return ColorRed
	}
}

type Recommendation struct {
	Type        Type    `json:"type"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Color       Color   `json:"color"`
	Score       int     `json:"score"`
	TSB         float64 `json:"tsb"`
}

type bucket struct {
	typ         Type
	label       string
	description string
}

var buckets = map[Band]bucket{
	BandStrong: {
		typ:         TypeTraining,
		label:       "Strong Training",
		description: "You are well recovered. A hard session or race effort is on the table.",
	},
	BandModerate: {
		typ:         TypeTraining,
		label:       "Moderate Training",
		description: "Train as planned at moderate intensity and keep an eye on how you feel.",
	},
	BandLight: {
		typ:         TypeRecovery,
		label:       "Light Training",
		description: "Keep it easy today. Technique work or low-intensity aerobic volume only.",
	},
	BandRecovery: {
		typ:         TypeRest,
		label:       "Recovery Only",
		description: "Rest, sleep and mobility. Skip structured training today.",
	},
}

// Recommend classifies a readiness score. tsb is carried through to the
// result but does not move the score between buckets.
func Recommend(score int, tsb float64) Recommendation {
	band := BandFor(score)
	b := buckets[band]
	return Recommendation{
		Type:        b.typ,
		Label:       b.label,
		Description: b.description,
		Color:       band.Color(),
		Score:       score,
		TSB:         tsb,
	}
}
