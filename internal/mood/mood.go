// Package mood computes a qualitative mood state from quantitative health
// metrics. The engine is pure and total: every input is optional, missing
// values fall back to a neutral midpoint, and identical inputs always produce
// identical results.
package mood

import (
	"math"
	"time"
)

// Neutral is the midpoint substituted for missing or unparsable metrics.
const Neutral = 50.0

// Metrics is the flat bundle of health sub-scores the engine consumes. Nil
// fields mean "no data".
type Metrics struct {
	SleepScore     *float64 `json:"sleep_score"`
	ReadinessScore *float64 `json:"readiness_score"`
	ActivityScore  *float64 `json:"activity_score"`
	HRV            *float64 `json:"hrv"`
	RestingHR      *float64 `json:"resting_hr"`
	TempDeviation  *float64 `json:"temp_deviation"`
}

// Category describes the static display attributes of a mood key.
type Category struct {
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Gradient    [2]string `json:"gradient"`
	Description string    `json:"description"`
}

// Result is the full mood document written to mood.json.
type Result struct {
	MoodName           string            `json:"mood_name"`
	MoodScore          float64           `json:"mood_score"`
	MoodIcon           string            `json:"mood_icon"`
	MoodColorGradient  [2]string         `json:"mood_color_gradient"`
	MoodDescription    string            `json:"mood_description"`
	MoodKey            string            `json:"mood_key"`
	InterpretedMetrics map[string]string `json:"interpreted_metrics"`
	RawScores          Metrics           `json:"raw_scores"`
	ComputedAt         string            `json:"computed_at"`
}

// Categories maps each mood key to its display attributes.
var Categories = map[string]Category{
	"cosmic_clarity": {
		Name:        "Cosmic Clarity",
		Icon:        "✨",
		Gradient:    [2]string{"#667eea", "#764ba2"},
		Description: "Peak mental clarity and physical readiness",
	},
	"solar_focus": {
		Name:        "Solar Focus",
		Icon:        "🔥",
		Gradient:    [2]string{"#f093fb", "#f5576c"},
		Description: "High energy and sharp focus",
	},
	"restorative_drift": {
		Name:        "Restorative Drift",
		Icon:        "🌙",
		Gradient:    [2]string{"#4facfe", "#00f2fe"},
		Description: "Body in recovery mode",
	},
	"quiet_neutrality": {
		Name:        "Quiet Neutrality",
		Icon:        "☁️",
		Gradient:    [2]string{"#a8c0ff", "#3f2b96"},
		Description: "Balanced, steady state",
	},
	"chaotic_overdrive": {
		Name:        "Chaotic Overdrive",
		Icon:        "🌪️",
		Gradient:    [2]string{"#ff6b6b", "#feca57"},
		Description: "High activity, body under stress",
	},
	"storm_state": {
		Name:        "Storm State",
		Icon:        "⛈️",
		Gradient:    [2]string{"#2c3e50", "#4ca1af"},
		Description: "Recovery needed, challenging metrics",
	},
	"energetic_compression": {
		Name:        "Energetic Compression",
		Icon:        "⚡",
		Gradient:    [2]string{"#11998e", "#38ef7d"},
		Description: "Building energy, readying for action",
	},
}

// Normalize clamps a metric into [lo, hi]; nil or NaN values yield the
// neutral midpoint.
func Normalize(value *float64, lo, hi float64) float64 {
	if value == nil || math.IsNaN(*value) {
		return Neutral
	}
	return math.Max(lo, math.Min(hi, *value))
}

func normalized(value *float64) float64 {
	return Normalize(value, 0, 100)
}

// Score computes the composite 0-100 mood score as a fixed weighted sum.
// Sleep and readiness dominate; a lower resting heart rate scores better, so
// that term is inverted.
func Score(m Metrics) float64 {
	score := normalized(m.SleepScore)*0.30 +
		normalized(m.ReadinessScore)*0.30 +
		normalized(m.ActivityScore)*0.15 +
		normalized(m.HRV)*0.10 +
		(100-normalized(m.RestingHR))*0.05 +
		normalized(m.TempDeviation)*0.10

	score = math.Max(0, math.Min(100, score))
	return math.Round(score*10) / 10
}

// Classify maps a metrics bundle to a mood key through an ordered decision
// tree. The rules overlap deliberately and the first match wins; reordering
// them changes observable classification.
func Classify(m Metrics) string {
	sleep := normalized(m.SleepScore)
	readiness := normalized(m.ReadinessScore)
	activity := normalized(m.ActivityScore)
	hrv := normalized(m.HRV)

	switch {
	case sleep >= 80 && readiness >= 80 && hrv >= 70:
		return "cosmic_clarity"
	case readiness >= 75 && activity >= 70:
		return "solar_focus"
	case sleep >= 75 && readiness < 70 && activity < 60:
		return "restorative_drift"
	case activity >= 80 && (readiness < 60 || sleep < 60):
		return "chaotic_overdrive"
	case sleep < 50 || readiness < 50:
		return "storm_state"
	case sleep >= 70 && readiness >= 60 && activity < 70:
		return "energetic_compression"
	default:
		return "quiet_neutrality"
	}
}

// Interpret produces a human-readable label per metric using four-tier
// thresholds.
func Interpret(m Metrics) map[string]string {
	out := make(map[string]string, 4)

	sleep := normalized(m.SleepScore)
	switch {
	case sleep >= 85:
		out["sleep"] = "Excellent rest"
	case sleep >= 70:
		out["sleep"] = "Good sleep"
	case sleep >= 50:
		out["sleep"] = "Moderate sleep"
	default:
		out["sleep"] = "Poor rest"
	}

	readiness := normalized(m.ReadinessScore)
	switch {
	case readiness >= 85:
		out["readiness"] = "Peak performance ready"
	case readiness >= 70:
		out["readiness"] = "Good to go"
	case readiness >= 50:
		out["readiness"] = "Take it easy"
	default:
		out["readiness"] = "Recovery needed"
	}

	activity := normalized(m.ActivityScore)
	switch {
	case activity >= 85:
		out["activity"] = "Highly active"
	case activity >= 70:
		out["activity"] = "Active day"
	case activity >= 50:
		out["activity"] = "Moderate movement"
	default:
		out["activity"] = "Low activity"
	}

	hrv := normalized(m.HRV)
	switch {
	case hrv >= 80:
		out["hrv"] = "Excellent variability"
	case hrv >= 60:
		out["hrv"] = "Good variability"
	case hrv >= 40:
		out["hrv"] = "Moderate variability"
	default:
		out["hrv"] = "Low variability"
	}

	return out
}

// Compute assembles the full mood result from a metrics bundle. Apart from
// the computed_at stamp, the output is bit-for-bit reproducible for a given
// input.
func Compute(m Metrics, now time.Time) Result {
	key := Classify(m)
	cat := Categories[key]

	return Result{
		MoodName:           cat.Name,
		MoodScore:          Score(m),
		MoodIcon:           cat.Icon,
		MoodColorGradient:  cat.Gradient,
		MoodDescription:    cat.Description,
		MoodKey:            key,
		InterpretedMetrics: Interpret(m),
		RawScores:          m,
		ComputedAt:         now.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
