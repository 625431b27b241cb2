package rendering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsolidatedCard_AllSources(t *testing.T) {
	card := NewConsolidatedCard(testTheme(t), time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))

	svg := card.Render(ConsolidatedInput{
		Developer: map[string]any{
			"repos": float64(42),
			"stars": float64(1200),
			"commit_activity": map[string]any{
				"total_30_days": float64(150),
			},
		},
		SoundCloud: map[string]any{
			"title":          "A Very Long Track Title That Gets Cut",
			"artist":         "DJ Example",
			"playback_count": float64(5400),
		},
		Weather: map[string]any{
			"current": map[string]any{"temperature": 21.5, "condition": "Clear", "emoji": "☀️"},
			"daily":   map[string]any{"temperature_min": 15.0, "temperature_max": 27.0},
		},
		Location: map[string]any{
			"location":    "Boston, MA",
			"coordinates": map[string]any{"lat": 42.3601, "lon": -71.0589},
		},
		Mood: map[string]any{
			"mood_name":  "Cosmic Clarity",
			"mood_icon":  "✨",
			"mood_score": 73.8,
			"raw_scores": map[string]any{"sleep_score": 85.0, "readiness_score": 85.0},
		},
	})

	assert.Contains(t, svg, "Consolidated Dashboard")
	assert.Contains(t, svg, "Developer Stats")
	assert.Contains(t, svg, "1.2K") // stars
	assert.Contains(t, svg, "A Very Long Track Ti...")
	assert.Contains(t, svg, "DJ Example")
	assert.Contains(t, svg, "21.5°C")
	assert.Contains(t, svg, "42.3601")
	assert.Contains(t, svg, "Cosmic Clarity")
	assert.Contains(t, svg, "73.8")
	assert.Contains(t, svg, "Future expansion")
	assert.Contains(t, svg, `viewBox="0 0 800 350"`)
}

func TestConsolidatedCard_OmitsMissingSources(t *testing.T) {
	card := NewConsolidatedCard(testTheme(t), time.Now())

	svg := card.Render(ConsolidatedInput{})
	assert.NotContains(t, svg, "Developer Stats")
	assert.NotContains(t, svg, "SoundCloud")
	assert.NotContains(t, svg, "Weather")
	assert.Contains(t, svg, "Future expansion")
}
