package rendering

import (
	"fmt"
	"math"
	"strings"

	"github.com/szmyty/profile/internal/theme"
)

// MoodCard renders the computed mood document: mood identity, per-metric
// score bars, radial rings, and a small metrics sparkline. The background
// gradient comes from the mood itself, not the theme.
type MoodCard struct {
	Card
}

func NewMoodCard(th *theme.Theme) *MoodCard {
	return &MoodCard{Card: NewCard("mood", th)}
}

// scoreBarColor follows the traffic-light convention for health scores.
func scoreBarColor(score float64) string {
	switch {
	case score >= 75:
		return "#4ade80"
	case score >= 50:
		return "#fbbf24"
	default:
		return "#f87171"
	}
}

func (m *MoodCard) scoreBar(value *float64, x, y, width int, label string) string {
	score := 0.0
	if value != nil {
		score = math.Max(0, math.Min(100, *value))
	}
	fillWidth := int(score / 100 * float64(width))
	height := m.Theme.ScoreBarValue("height", 6)

	return fmt.Sprintf(`
    <g transform="translate(%d, %d)">
      <text font-family="%s" font-size="10" fill="%s" y="-3">%s</text>
      <rect width="%d" height="%d" rx="3" fill="%s"/>
      <rect width="%d" height="%d" rx="3" fill="%s"/>
      <text x="%d" y="5" font-family="%s" font-size="10" fill="%s">%.0f</text>
    </g>`,
		x, y, m.FontFamily(), m.Theme.Color("text", "secondary", "#8892b0"),
		EscapeXML(label),
		width, height, m.Theme.Color("background", "panel", "#2d3748"),
		fillWidth, height, scoreBarColor(score),
		width+8, m.FontFamily(), m.Theme.Color("text", "primary", "#ffffff"), score)
}

// radialBars draws three concentric partial rings for sleep, readiness, and
// activity, each rotated a third of a turn.
func (m *MoodCard) radialBars(scores map[string]*float64, cx, cy, radius int) string {
	metrics := []struct {
		Key   string
		Color string
	}{
		{"sleep_score", "#4facfe"},
		{"readiness_score", "#667eea"},
		{"activity_score", "#f093fb"},
	}

	strokeWidth := m.Theme.RadialBarValue("stroke_width", 6)
	opacity := m.Theme.RadialBarValue("opacity", 0.8)

	var b strings.Builder
	for i, metric := range metrics {
		value := 50.0
		if v := scores[metric.Key]; v != nil {
			value = math.Max(0, math.Min(100, *v))
		}
		r := float64(radius - i*8)
		circumference := 2 * math.Pi * r
		dashOffset := circumference * (1 - value/100)
		rotation := -90 + i*120

		fmt.Fprintf(&b, `
    <circle cx="%d" cy="%d" r="%.0f"
            fill="none" stroke="%s" stroke-width="%g"
            stroke-dasharray="%.1f %.1f"
            stroke-dashoffset="%.1f"
            stroke-linecap="round" opacity="%g"
            transform="rotate(%d %d %d)"/>`,
			cx, cy, r, metric.Color, strokeWidth,
			circumference*0.33, circumference, dashOffset*0.33,
			opacity, rotation, cx, cy)
	}
	return b.String()
}

// Render builds the mood card from a computed mood document.
func (m *MoodCard) Render(data map[string]any) (string, error) {
	moodName := GetString(data, "Unknown", "mood_name")
	moodIcon := GetString(data, "🌙", "mood_icon")
	moodScore := GetFloat(data, 50, "mood_score")
	moodDescription := GetString(data, "", "mood_description")
	updatedAt := GetString(data, "", "computed_at")

	gradient := theme.DefaultGradient
	if g := GetSlice(data, "mood_color_gradient"); len(g) == 2 {
		if start, ok := g[0].(string); ok {
			gradient[0] = start
		}
		if end, ok := g[1].(string); ok {
			gradient[1] = end
		}
	}

	raw := GetMap(data, "raw_scores")
	scores := map[string]*float64{
		"sleep_score":     GetFloatPtr(raw, "sleep_score"),
		"readiness_score": GetFloatPtr(raw, "readiness_score"),
		"activity_score":  GetFloatPtr(raw, "activity_score"),
	}
	hrv := GetFloatPtr(raw, "hrv")
	restingHR := GetFloatPtr(raw, "resting_hr")

	sparkValues := []*float64{
		scores["sleep_score"], scores["readiness_score"], scores["activity_score"], hrv,
	}
	sparkPath := SparklinePath(sparkValues, 110, 30)

	font := m.FontFamily()
	primary := m.Theme.Color("text", "primary", "#ffffff")
	secondary := m.Theme.Color("text", "secondary", "#8892b0")
	accent := m.Theme.Color("text", "accent", "#64ffda")
	muted := m.Theme.Color("text", "muted", "#4a5568")

	var b strings.Builder
	fmt.Fprintf(&b, `
  <!-- Header badge -->
  <g transform="translate(20, 25)">
    <text font-family="%s" font-size="11" fill="%s" font-weight="500">
      ⭕ OURA RING
    </text>
  </g>

  <!-- Mood icon and name -->
  <g transform="translate(20, 55)">
    <text font-family="Arial, sans-serif" font-size="32" filter="url(#glow)">
      %s
    </text>
    <text x="45" y="5" font-family="%s" font-size="22" fill="%s" font-weight="bold" filter="url(#glow)">
      %s
    </text>
    <text x="45" y="22" font-family="%s" font-size="11" fill="%s">
      %s
    </text>
  </g>`,
		font, accent, EscapeXML(moodIcon), font, primary, EscapeXML(moodName),
		font, secondary, EscapeXML(moodDescription))

	b.WriteString(m.scoreBar(scores["sleep_score"], 200, 75, 100, "😴 Sleep"))
	b.WriteString(m.scoreBar(scores["readiness_score"], 200, 105, 100, "💪 Readiness"))
	b.WriteString(m.scoreBar(scores["activity_score"], 200, 135, 100, "🏃 Activity"))

	fmt.Fprintf(&b, `

  <!-- HRV and Resting HR -->
  <g transform="translate(20, 95)">
    <text font-family="%[1]s" font-size="10" fill="%[2]s">
      ❤️ HRV Balance
    </text>
    <text y="14" font-family="%[1]s" font-size="16" fill="%[3]s" font-weight="600">
      %[4]s
    </text>
  </g>
  <g transform="translate(100, 95)">
    <text font-family="%[1]s" font-size="10" fill="%[2]s">
      💓 Rest HR
    </text>
    <text y="14" font-family="%[1]s" font-size="16" fill="%[3]s" font-weight="600">
      %[5]s
    </text>
  </g>

  <!-- Mood Score indicator -->
  <g transform="translate(20, 145)">
    <text font-family="%[1]s" font-size="10" fill="%[2]s">
      🎯 Mood Score
    </text>
    <text y="18" font-family="%[1]s" font-size="24" fill="%[6]s" font-weight="bold" filter="url(#glow)">
      %[7]s
    </text>
    <text x="45" y="14" font-family="%[1]s" font-size="10" fill="%[8]s">
      / 100
    </text>
  </g>

  <!-- Radial rings -->
  <g transform="translate(300, -45)">%[9]s
  </g>

  <!-- Sparkline -->
  <g transform="translate(280, 165)">
    <text font-family="%[1]s" font-size="9" fill="%[8]s" y="-5">
      Metrics Trend
    </text>
    <rect width="120" height="35" rx="4" fill="#1a1a2e" fill-opacity="0.5"/>
    <g transform="translate(5, 2)">
      <path d="%[10]s" fill="none" stroke="%[6]s" stroke-width="2" stroke-linecap="round"/>
    </g>
  </g>`,
		font, secondary, primary,
		floatOrDash(hrv), floatOrDash(restingHR),
		accent, formatAny(moodScore), muted,
		m.radialBars(scores, 60, 50, 40), sparkPath)

	opts := DefsOptions{
		BackgroundGradient: gradient,
		IncludeGlow:        true,
		IncludeShadow:      true,
	}
	return m.Compose(opts, "", b.String(), "Updated: "+updatedAt), nil
}

func floatOrDash(v *float64) string {
	if v == nil {
		return "—"
	}
	return formatAny(*v)
}
