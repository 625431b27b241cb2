package rendering

import (
	"fmt"
	"strings"
	"time"

	"github.com/szmyty/profile/internal/theme"
)

// SummaryCard renders aggregated weekly or monthly metrics from a
// historical snapshot document.
type SummaryCard struct {
	Card
	Period string // "weekly" or "monthly"
	Now    time.Time
}

// NewSummaryCard builds a summary card for the given period.
func NewSummaryCard(period string, th *theme.Theme, now time.Time) SummaryCard {
	return SummaryCard{
		Card:   Card{Type: "summary", Theme: th, Width: 480, Height: 400},
		Period: period,
		Now:    now,
	}
}

type summaryMetric struct {
	Label string
	Value string
	Color string
}

func (s SummaryCard) metricRow(m summaryMetric, y int) string {
	font := s.FontFamily()
	return fmt.Sprintf(`
  <g transform="translate(30, %d)">
    <rect width="4" height="20" rx="2" fill="%s"/>
    <text x="15" y="10" font-family="%s" font-size="11" fill="%s" font-weight="500" dominant-baseline="middle">%s</text>
    <text x="430" y="10" font-family="%s" font-size="12" fill="%s" font-weight="600" text-anchor="end" dominant-baseline="middle">%s</text>
  </g>`,
		y, m.Color,
		font, s.Theme.Color("text", "secondary", "#a0aec0"), EscapeXML(m.Label),
		font, s.Theme.Color("text", "primary", "#e6e6e6"), EscapeXML(m.Value))
}

// sleepRangePanel shows best/worst sleep scores on monthly cards.
func (s SummaryCard) sleepRangePanel(health map[string]any) string {
	maxSleep := GetFloatPtr(health, "max_sleep_score")
	minSleep := GetFloatPtr(health, "min_sleep_score")
	if maxSleep == nil || minSleep == nil {
		return ""
	}
	font := s.FontFamily()
	accentSleep := s.Theme.Color("accent", "sleep", "#4facfe")
	textPrimary := s.Theme.Color("text", "primary", "#e6e6e6")
	return fmt.Sprintf(`
  <g transform="translate(30, 310)">
    <rect width="420" height="60" rx="%d" fill="%s" stroke="%s" stroke-width="1" stroke-opacity="0.2"/>
    <text x="10" y="20" font-family="%s" font-size="11" fill="%s" font-weight="600">📈 Sleep Score Range</text>
    <text x="10" y="40" font-family="%s" font-size="10" fill="%s">
      Best: <tspan fill="%s">%.0f</tspan>  •  Worst: <tspan fill="%s">%.0f</tspan>  •  Range: <tspan fill="%s">%.0f</tspan>
    </text>
  </g>`,
		s.Theme.BorderRadius("md", 6), s.Theme.Color("background", "panel", "#1e293b"), accentSleep,
		font, accentSleep,
		font, s.Theme.Color("text", "secondary", "#a0aec0"),
		textPrimary, *maxSleep, textPrimary, *minSleep, textPrimary, *maxSleep-*minSleep)
}

// Render builds the summary SVG from a snapshot document.
func (s SummaryCard) Render(snapshot map[string]any) string {
	health := GetMap(snapshot, "health")
	developer := GetMap(snapshot, "developer")

	title := titleCase(s.Period) + " Summary"
	subtitle := fmt.Sprintf("%s to %s (%d days)",
		GetString(snapshot, "", "start_date"), GetString(snapshot, "", "end_date"),
		GetInt(snapshot, 0, "days_count"))

	accentSleep := s.Theme.Color("accent", "sleep", "#4facfe")
	accentReadiness := s.Theme.Color("accent", "readiness", "#667eea")
	accentActivity := s.Theme.Color("accent", "activity", "#f093fb")
	accentDeveloper := s.Theme.Color("accent", "developer", "#64ffda")

	largeOrDash := func(v *float64) string {
		if v == nil {
			return "—"
		}
		return FormatLargeNumber(int64(*v))
	}

	rows := []summaryMetric{
		{"💤 Avg Sleep Score", SafeValue(Get(health, "avg_sleep_score"), ""), accentSleep},
		{"💪 Avg Readiness Score", SafeValue(Get(health, "avg_readiness_score"), ""), accentReadiness},
		{"🏃 Avg Activity Score", SafeValue(Get(health, "avg_activity_score"), ""), accentActivity},
		{"👣 Total Steps", largeOrDash(GetFloatPtr(health, "total_steps")), accentActivity},
		{"📊 Avg Steps/Day", largeOrDash(GetFloatPtr(health, "avg_steps")), accentActivity},
		{"💻 Avg Commits", SafeValue(Get(developer, "avg_commits"), ""), accentDeveloper},
	}

	var content strings.Builder
	font := s.FontFamily()
	accent := s.Theme.Color("text", "accent", "#64ffda")

	fmt.Fprintf(&content, `
  <g transform="translate(30, 30)">
    <text font-family="%s" font-size="18" fill="%s" font-weight="600">📊 %s</text>
  </g>
  <g transform="translate(30, 55)">
    <text font-family="%s" font-size="10" fill="%s">%s</text>
  </g>
  <line x1="30" y1="75" x2="450" y2="75" stroke="%s" stroke-width="1" stroke-opacity="0.3"/>`,
		font, accent, EscapeXML(title),
		font, s.Theme.Color("text", "secondary", "#a0aec0"), EscapeXML(subtitle),
		accent)

	for i, m := range rows {
		content.WriteString(s.metricRow(m, 120+i*30))
	}

	if s.Period == "monthly" {
		content.WriteString(s.sleepRangePanel(health))
	}

	footer := "Generated: " + s.Now.Format("Jan 2, 2006 3:04 PM")
	return s.Compose(DefsOptions{}, accent, content.String(), footer)
}
