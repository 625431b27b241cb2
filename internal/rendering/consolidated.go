package rendering

import (
	"fmt"
	"strings"
	"time"

	"github.com/szmyty/profile/internal/theme"
)

// ConsolidatedInput carries the per-source documents the consolidated
// dashboard combines. Any source may be nil; its panel is simply omitted.
type ConsolidatedInput struct {
	Developer  map[string]any
	SoundCloud map[string]any
	Weather    map[string]any
	Location   map[string]any
	Mood       map[string]any
}

// ConsolidatedCard renders one wide dashboard combining every data source
// into a 2x3 grid of compact panels.
type ConsolidatedCard struct {
	Card
	Now time.Time
}

// NewConsolidatedCard builds the consolidated dashboard card.
func NewConsolidatedCard(th *theme.Theme, now time.Time) ConsolidatedCard {
	return ConsolidatedCard{
		Card: Card{Type: "consolidated", Theme: th, Width: 800, Height: 350},
		Now:  now,
	}
}

// panelFrame builds the rounded bordered rect and title every panel shares.
func (c ConsolidatedCard) panelFrame(accent, title string) string {
	return fmt.Sprintf(`<rect width="260" height="90" rx="%d" fill="%s" stroke="%s" stroke-width="1" stroke-opacity="0.3"/>
    <text x="10" y="20" font-family="%s" font-size="12" fill="%s" font-weight="600">%s</text>`,
		c.Theme.BorderRadius("md", 6), c.Theme.Color("background", "panel", "#1e293b"),
		accent, c.FontFamily(), accent, title)
}

// panelLine builds one label/value line inside a panel.
func (c ConsolidatedCard) panelLine(y int, label, value string) string {
	return fmt.Sprintf(`<text x="10" y="%d" font-family="%s" font-size="10" fill="%s">%s<tspan fill="%s" font-weight="500">%s</tspan></text>`,
		y, c.FontFamily(), c.Theme.Color("text", "secondary", "#a0aec0"),
		EscapeXML(label), c.Theme.Color("text", "primary", "#e6e6e6"), EscapeXML(value))
}

func (c ConsolidatedCard) developerPanel(stats map[string]any, x, y int) string {
	if stats == nil {
		return ""
	}
	accent := c.Theme.Color("accent", "developer", "#64ffda")
	return fmt.Sprintf(`
  <g transform="translate(%d, %d)">
    %s
    %s
    %s
    %s
  </g>`, x, y,
		c.panelFrame(accent, "💻 Developer Stats"),
		c.panelLine(40, "Repos: ", fmt.Sprintf("%d", GetInt(stats, 0, "repos"))),
		c.panelLine(55, "Stars: ", FormatLargeNumber(int64(GetInt(stats, 0, "stars")))),
		c.panelLine(70, "Commits (30d): ", FormatLargeNumber(int64(GetInt(stats, 0, "commit_activity", "total_30_days")))))
}

func (c ConsolidatedCard) soundcloudPanel(data map[string]any, x, y int) string {
	if data == nil {
		return ""
	}
	accent := c.Theme.Color("accent", "orange", "#ff5500")
	title := Truncate(GetString(data, "Unknown", "title"), 20)
	return fmt.Sprintf(`
  <g transform="translate(%d, %d)">
    %s
    <text x="10" y="40" font-family="%s" font-size="10" fill="%s" font-weight="500">%s</text>
    %s
    %s
  </g>`, x, y,
		c.panelFrame(accent, "🎵 SoundCloud"),
		c.FontFamily(), c.Theme.Color("text", "primary", "#e6e6e6"), EscapeXML(title),
		c.panelLine(55, "Artist: ", GetString(data, "Unknown", "artist")),
		c.panelLine(70, "Plays: ", FormatLargeNumber(int64(GetInt(data, 0, "playback_count")))))
}

func (c ConsolidatedCard) weatherPanel(data map[string]any, x, y int) string {
	if data == nil {
		return ""
	}
	accent := c.Theme.Color("accent", "cyan", "#4ecdc4")
	condition := fmt.Sprintf("%s %s",
		GetString(data, "🌤️", "current", "emoji"),
		GetString(data, "Unknown", "current", "condition"))
	return fmt.Sprintf(`
  <g transform="translate(%d, %d)">
    %s
    <text x="10" y="40" font-family="%s" font-size="10" fill="%s" font-weight="500">%s</text>
    %s
    %s
  </g>`, x, y,
		c.panelFrame(accent, "🌦️ Weather"),
		c.FontFamily(), c.Theme.Color("text", "primary", "#e6e6e6"), EscapeXML(condition),
		c.panelLine(55, "Current: ", fmt.Sprintf("%.1f°C", GetFloat(data, 0, "current", "temperature"))),
		c.panelLine(70, "Range: ", fmt.Sprintf("%.1f°C - %.1f°C",
			GetFloat(data, 0, "daily", "temperature_min"),
			GetFloat(data, 0, "daily", "temperature_max"))))
}

func (c ConsolidatedCard) locationPanel(data map[string]any, x, y int) string {
	if data == nil {
		return ""
	}
	accent := c.Theme.Color("text", "accent", "#64ffda")
	return fmt.Sprintf(`
  <g transform="translate(%d, %d)">
    %s
    <text x="10" y="40" font-family="%s" font-size="10" fill="%s" font-weight="500">%s</text>
    %s
    %s
  </g>`, x, y,
		c.panelFrame(accent, "📍 Location"),
		c.FontFamily(), c.Theme.Color("text", "primary", "#e6e6e6"),
		EscapeXML(GetString(data, "Unknown", "location")),
		c.panelLine(55, "Lat: ", fmt.Sprintf("%.4f", GetFloat(data, 0, "coordinates", "lat"))),
		c.panelLine(70, "Lon: ", fmt.Sprintf("%.4f", GetFloat(data, 0, "coordinates", "lon"))))
}

func (c ConsolidatedCard) moodPanel(data map[string]any, x, y int) string {
	if data == nil {
		return ""
	}
	accent := c.Theme.Color("accent", "sleep", "#4facfe")
	mood := fmt.Sprintf("%s %s",
		GetString(data, "😊", "mood_icon"),
		GetString(data, "Unknown", "mood_name"))
	scores := fmt.Sprintf("Sleep: %s | Readiness: %s",
		SafeValue(Get(data, "raw_scores", "sleep_score"), ""),
		SafeValue(Get(data, "raw_scores", "readiness_score"), ""))
	return fmt.Sprintf(`
  <g transform="translate(%d, %d)">
    %s
    <text x="10" y="40" font-family="%s" font-size="10" fill="%s" font-weight="500">%s</text>
    <text x="10" y="55" font-family="%s" font-size="10" fill="%s">%s</text>
    %s
  </g>`, x, y,
		c.panelFrame(accent, "💫 Oura Mood"),
		c.FontFamily(), c.Theme.Color("text", "primary", "#e6e6e6"), EscapeXML(mood),
		c.FontFamily(), c.Theme.Color("text", "secondary", "#a0aec0"), EscapeXML(scores),
		c.panelLine(70, "Mood Score: ", fmt.Sprintf("%.1f", GetFloat(data, 0, "mood_score"))))
}

func (c ConsolidatedCard) placeholderPanel(x, y int) string {
	accent := c.Theme.Color("text", "accent", "#64ffda")
	return fmt.Sprintf(`
  <g transform="translate(%d, %d)">
    <rect width="260" height="90" rx="6" fill="%s" stroke="%s" stroke-width="1" stroke-opacity="0.2" stroke-dasharray="4,4"/>
    <text x="130" y="50" font-family="%s" font-size="10" fill="%s" text-anchor="middle">Future expansion</text>
  </g>`, x, y,
		c.Theme.Color("background", "panel", "#1e293b"), accent,
		c.FontFamily(), c.Theme.Color("text", "muted", "#4a5568"))
}

// Render builds the consolidated dashboard SVG from the available sources.
func (c ConsolidatedCard) Render(in ConsolidatedInput) string {
	accent := c.Theme.Color("text", "accent", "#64ffda")

	var content strings.Builder
	fmt.Fprintf(&content, `
  <g transform="translate(20, 25)">
    <text font-family="%s" font-size="16" fill="%s" font-weight="600">📊 Consolidated Dashboard</text>
  </g>`, c.FontFamily(), accent)

	content.WriteString(c.developerPanel(in.Developer, 20, 50))
	content.WriteString(c.soundcloudPanel(in.SoundCloud, 300, 50))
	content.WriteString(c.weatherPanel(in.Weather, 20, 160))
	content.WriteString(c.locationPanel(in.Location, 300, 160))
	content.WriteString(c.moodPanel(in.Mood, 20, 270))
	content.WriteString(c.placeholderPanel(300, 270))

	gradient := c.Theme.Gradient("background.dark", theme.DefaultGradient)
	footer := "Updated: " + c.Now.Format("Jan 2, 2006 3:04 PM")
	return c.Compose(DefsOptions{BackgroundGradient: gradient}, accent, content.String(), footer)
}
