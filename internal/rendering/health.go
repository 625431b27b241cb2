package rendering

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/szmyty/profile/internal/theme"
)

// HealthCard renders the holistic health dashboard: score rings for sleep,
// readiness, and activity, plus metric panels and a heart-rate trend.
type HealthCard struct {
	Card
	Now time.Time
}

func NewHealthCard(th *theme.Theme) *HealthCard {
	return &HealthCard{Card: NewCard("health_dashboard", th), Now: time.Now()}
}

// scoreRing draws a circular progress indicator with the score centered.
func (h *HealthCard) scoreRing(value *float64, cx, cy, radius int, color, label string) string {
	score := 0.0
	if value != nil {
		score = math.Max(0, math.Min(100, *value))
	}
	circumference := 2 * math.Pi * float64(radius)
	dashOffset := circumference * (1 - score/100)

	return fmt.Sprintf(`
    <g transform="translate(%d, %d)">
      <circle r="%d" fill="none" stroke="%s" stroke-width="4"/>
      <circle r="%d" fill="none" stroke="%s" stroke-width="4"
              stroke-dasharray="%.1f" stroke-dashoffset="%.1f"
              stroke-linecap="round" transform="rotate(-90)"/>
      <text y="5" font-family="%s" font-size="%d" fill="%s" font-weight="bold" text-anchor="middle">%.0f</text>
      <text y="%d" font-family="%s" font-size="%d" fill="%s" text-anchor="middle">%s</text>
    </g>`,
		cx, cy,
		radius, h.Theme.Color("chart", "bar_background", "#2d3748"),
		radius, color, circumference, dashOffset,
		h.FontFamily(), h.Theme.FontSize("xl", 18),
		h.Theme.Color("text", "primary", "#ffffff"), score,
		radius+14, h.FontFamily(), h.Theme.FontSize("xs", 10),
		h.Theme.Color("text", "secondary", "#8892b0"), EscapeXML(label))
}

func (h *HealthCard) metricRow(label, value string, x, y int, icon string) string {
	return fmt.Sprintf(`
    <g transform="translate(%d, %d)">
      <text font-family="%s" font-size="%d" fill="%s">%s %s</text>
      <text x="125" font-family="%s" font-size="%d" fill="%s" text-anchor="end" font-weight="500">%s</text>
    </g>`,
		x, y,
		h.FontFamily(), h.Theme.FontSize("sm", 11),
		h.Theme.Color("text", "secondary", "#8892b0"), icon, EscapeXML(label),
		h.FontFamily(), h.Theme.FontSize("base", 12),
		h.Theme.Color("text", "primary", "#ffffff"), EscapeXML(value))
}

func (h *HealthCard) panel(x, y, width, height int, title, titleColor, fill, stroke string, rows string) string {
	return fmt.Sprintf(`
  <g transform="translate(%d, %d)">
    <rect width="%d" height="%d" rx="%d" fill="%s" stroke="%s" stroke-width="%d" stroke-opacity="0.5"/>
    <text x="10" y="18" font-family="%s" font-size="%d" fill="%s" font-weight="600">%s</text>%s
  </g>`,
		x, y, width, height, h.Theme.BorderRadius("md", 6), fill, stroke,
		h.Theme.StrokeWidth(), h.FontFamily(), h.Theme.FontSize("base", 12),
		titleColor, title, rows)
}

// Render builds the health dashboard SVG from a validated snapshot document.
func (h *HealthCard) Render(data map[string]any) (string, error) {
	sleep := GetMap(data, "sleep")
	readiness := GetMap(data, "readiness")
	activity := GetMap(data, "activity")
	heartRate := GetMap(data, "heart_rate")
	personal := GetMap(data, "personal")
	updatedAt := GetString(data, "", "updated_at")

	accentSleep := h.Theme.Color("accent", "sleep", "#4facfe")
	accentReadiness := h.Theme.Color("accent", "readiness", "#667eea")
	accentActivity := h.Theme.Color("accent", "activity", "#f093fb")
	accentHR := h.Theme.Color("accent", "heart_rate", "#fc8181")
	accent := h.Theme.Color("text", "accent", "#64ffda")
	panelBG := h.Theme.Color("background", "panel", "#2d3748")

	var trend []*float64
	for _, v := range GetSlice(heartRate, "trend_values") {
		if f, ok := v.(float64); ok {
			f := f
			trend = append(trend, &f)
		}
	}
	sparkPath := SparklinePath(trend, 90, 22)

	restingHR := GetFloatPtr(heartRate, "resting_bpm")
	if restingHR == nil {
		restingHR = GetFloatPtr(readiness, "resting_heart_rate")
	}

	weight := "—"
	if kg := GetFloatPtr(personal, "weight_kg"); kg != nil {
		weight = fmt.Sprintf("%gkg", *kg)
		if lbs := GetFloatPtr(personal, "weight_lbs"); lbs != nil {
			weight += fmt.Sprintf(" (%glb)", *lbs)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `
  <!-- Header -->
  <g transform="translate(20, 20)">
    <text font-family="%s" font-size="%d" fill="%s" font-weight="600">
      🧬 OURA HEALTH DASHBOARD
    </text>
  </g>

  <!-- Score Rings Row -->
  <g transform="translate(20, 45)">%s%s%s
  </g>`,
		h.FontFamily(), h.Theme.FontSize("xl", 18), accent,
		h.scoreRing(GetFloatPtr(sleep, "score"), 55, 45, 30, accentSleep, "Sleep"),
		h.scoreRing(GetFloatPtr(readiness, "score"), 135, 45, 30, accentReadiness, "Ready"),
		h.scoreRing(GetFloatPtr(activity, "score"), 215, 45, 30, accentActivity, "Active"))

	b.WriteString(h.panel(280, 45, 200, 75, "👤 Personal Stats", accent, panelBG,
		h.Theme.Color("text", "muted", "#4a5568"),
		h.metricRow("Age", SafeValue(Get(personal, "age"), " yrs"), 10, 35, "")+
			h.metricRow("Height", SafeValue(Get(personal, "height_cm"), "cm"), 10, 50, "")+
			h.metricRow("Weight", weight, 10, 65, "")))

	b.WriteString(h.panel(20, 130, 145, 105, "😴 Sleep", accentSleep,
		h.Theme.Color("background", "panel_sleep", panelBG), accentSleep,
		h.metricRow("Deep", SafeValue(Get(sleep, "deep_sleep"), ""), 10, 35, "")+
			h.metricRow("REM", SafeValue(Get(sleep, "rem_sleep"), ""), 10, 50, "")+
			h.metricRow("Total", SafeValue(Get(sleep, "total_sleep"), ""), 10, 65, "")+
			h.metricRow("Efficiency", SafeValue(Get(sleep, "efficiency"), "%"), 10, 80, "")))

	b.WriteString(h.panel(175, 130, 145, 105, "💪 Readiness", accentReadiness,
		h.Theme.Color("background", "panel_readiness", panelBG), accentReadiness,
		h.metricRow("Recovery", SafeValue(Get(readiness, "recovery_index"), ""), 10, 35, "")+
			h.metricRow("HRV Balance", SafeValue(Get(readiness, "hrv_balance"), ""), 10, 50, "")+
			h.metricRow("Temp Dev", SafeValue(Get(readiness, "temperature_deviation"), "°"), 10, 65, "")))

	b.WriteString(h.panel(330, 130, 150, 105, "🏃 Activity", accentActivity,
		h.Theme.Color("background", "panel_activity", panelBG), accentActivity,
		h.metricRow("Steps", SafeValue(Get(activity, "steps"), ""), 10, 35, "")+
			h.metricRow("Calories", SafeValue(Get(activity, "total_calories"), ""), 10, 50, "")+
			h.metricRow("Active Cal", SafeValue(Get(activity, "active_calories"), ""), 10, 65, "")))

	fmt.Fprintf(&b, `

  <!-- Heart Rate Panel -->
  <g transform="translate(20, 245)">
    <rect width="460" height="55" rx="%d" fill="%s" stroke="%s" stroke-width="%d" stroke-opacity="0.5"/>
    <text x="10" y="18" font-family="%s" font-size="%d" fill="%s" font-weight="600">❤️ Heart Rate</text>
    <text x="10" y="40" font-family="%s" font-size="%d" fill="%s">Resting: %s bpm</text>
    <g transform="translate(350, 20)">
      <path d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linecap="round"/>
    </g>
  </g>`,
		h.Theme.BorderRadius("md", 6), panelBG, accentHR, h.Theme.StrokeWidth(),
		h.FontFamily(), h.Theme.FontSize("base", 12), accentHR,
		h.FontFamily(), h.Theme.FontSize("sm", 11),
		h.Theme.Color("text", "primary", "#ffffff"), floatOrDash(restingHR),
		sparkPath, accentHR)

	b.WriteString(h.stalenessBadge(updatedAt, h.Now))

	opts := DefsOptions{
		BackgroundGradient: h.Theme.Gradient("background.dark",
			h.Theme.Gradient("background.default", theme.DefaultGradient)),
		IncludeGlow: true,
	}
	return h.Compose(opts, "", b.String(), ""), nil
}
