package rendering

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodCard_Render(t *testing.T) {
	card := NewMoodCard(testTheme(t))

	svg, err := card.Render(map[string]any{
		"mood_name":           "Cosmic Clarity",
		"mood_icon":           "✨",
		"mood_score":          73.8,
		"mood_description":    "Exceptional recovery and mental clarity",
		"mood_color_gradient": []any{"#667eea", "#764ba2"},
		"computed_at":         "2025-06-15T12:00:00Z",
		"raw_scores": map[string]any{
			"sleep_score":           85.0,
			"readiness_score":       85.0,
			"activity_score":        50.0,
			"hrv_balance":           75.0,
			"resting_heart_rate":    55.0,
			"temperature_deviation": 0.1,
		},
	})
	require.NoError(t, err)

	assert.Contains(t, svg, "OURA RING")
	assert.Contains(t, svg, "Cosmic Clarity")
	assert.Contains(t, svg, "73.8")
	assert.Contains(t, svg, "#667eea")
	assert.Contains(t, svg, "stroke-dasharray")
	assert.Contains(t, svg, "Updated: 2025-06-15T12:00:00Z")
}

func TestMoodCard_EmptyDataStillRenders(t *testing.T) {
	card := NewMoodCard(testTheme(t))

	svg, err := card.Render(map[string]any{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, "Unknown")
}

func TestDeveloperCard_Render(t *testing.T) {
	card := NewDeveloperCard(testTheme(t))
	card.Now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	grid := make([]any, 7)
	for i := range grid {
		row := make([]any, 24)
		for j := range row {
			row[j] = float64((i + j) % 5)
		}
		grid[i] = row
	}

	svg, err := card.Render(map[string]any{
		"username":  "szmyty",
		"repos":     float64(42),
		"stars":     float64(1340),
		"followers": float64(98),
		"prs":       map[string]any{"opened": float64(12), "merged": float64(10)},
		"issues":    map[string]any{"opened": float64(7)},
		"commit_activity": map[string]any{
			"total_30_days": 150.0,
			"last_30_days":  []any{1.0, 3.0, 0.0, 5.0, 2.0},
			"activity_grid": grid,
		},
		"languages": map[string]any{
			"Go":     42.5,
			"Python": 30.0,
			"Shell":  10.0,
		},
		"top_repositories": []any{
			map[string]any{"name": "profile", "commits": 900.0},
			map[string]any{"name": "dotfiles", "commits": 350.0},
		},
		"updated_at": "2025-06-15T11:00:00Z",
	})
	require.NoError(t, err)

	assert.Contains(t, svg, "szmyty's Developer Dashboard")
	assert.Contains(t, svg, "1.3K") // stars
	assert.Contains(t, svg, "12/10")
	assert.Contains(t, svg, "profile")
	assert.Contains(t, svg, "Go")
	assert.NotContains(t, svg, "⚠️") // fresh data
}

func TestDeveloperCard_StaleDataShowsWarning(t *testing.T) {
	card := NewDeveloperCard(testTheme(t))
	card.Now = time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

	svg, err := card.Render(map[string]any{
		"username":   "szmyty",
		"updated_at": "2025-06-15T11:00:00Z",
	})
	require.NoError(t, err)
	assert.Contains(t, svg, "⚠️")
}

func TestQuoteCard_Render(t *testing.T) {
	card := NewQuoteCard(testTheme(t))

	svg, err := card.Render(map[string]any{
		"quote":  "The only way to do great work is to love what you do.",
		"author": "Steve Jobs",
		"analysis": map[string]any{
			"sentiment":     "positive",
			"theme":         "work",
			"color_profile": "sunrise",
		},
	})
	require.NoError(t, err)

	assert.Contains(t, svg, "great work")
	assert.Contains(t, svg, "Steve Jobs")
	assert.True(t, strings.HasPrefix(svg, "<svg"))
}

func TestSoundCloudCard_Render(t *testing.T) {
	card := NewSoundCloudCard(testTheme(t))

	svg, err := card.Render(map[string]any{
		"title":          "Midnight Drive",
		"artist":         "szmyty",
		"genre":          "Electronic",
		"duration_ms":    225000.0,
		"playback_count": 5400.0,
		"created_at":     "2025-03-10T00:00:00Z",
		"permalink_url":  "https://soundcloud.com/szmyty/midnight-drive",
	})
	require.NoError(t, err)

	assert.Contains(t, svg, "Midnight Drive")
	assert.Contains(t, svg, "3:45")
	assert.Contains(t, svg, "5.4K")
	assert.Contains(t, svg, "soundcloud.com")
}

func TestLocationCard_Render(t *testing.T) {
	card := NewLocationCard(testTheme(t))

	svg, err := card.Render(map[string]any{
		"location":    "Boston, Massachusetts",
		"coordinates": map[string]any{"lat": 42.3601, "lon": -71.0589},
		"updated_at":  "2025-06-15T12:00:00Z",
	})
	require.NoError(t, err)

	assert.Contains(t, svg, "Boston, Massachusetts")
	assert.Contains(t, svg, "42.3601°N")
	assert.Contains(t, svg, "71.0589°W")
	// No map tile injected, so the placeholder panel renders in its place.
	assert.Contains(t, svg, "Map unavailable")
	assert.NotContains(t, svg, "<image")
}

func TestLocationCard_RenderEmbedsMapTile(t *testing.T) {
	card := NewLocationCard(testTheme(t))

	svg, err := card.Render(map[string]any{
		"location":         "Boston, Massachusetts",
		"coordinates":      map[string]any{"lat": 42.3601, "lon": -71.0589},
		"map_image_base64": "aGVsbG8=",
	})
	require.NoError(t, err)

	assert.Contains(t, svg, "data:image/png;base64,aGVsbG8=")
	assert.NotContains(t, svg, "Map unavailable")
}

func TestFormatCoordinates(t *testing.T) {
	assert.Equal(t, "42.3601°N, 71.0589°W", FormatCoordinates(42.3601, -71.0589))
	assert.Equal(t, "33.8688°S, 151.2093°E", FormatCoordinates(-33.8688, 151.2093))
}

func TestHealthCard_Render(t *testing.T) {
	card := NewHealthCard(testTheme(t))
	card.Now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	svg, err := card.Render(map[string]any{
		"sleep": map[string]any{
			"score":       82.0,
			"deep_sleep":  "1h 45m",
			"rem_sleep":   "1h 30m",
			"total_sleep": "7h 20m",
			"efficiency":  92.0,
		},
		"readiness": map[string]any{
			"score":                 78.0,
			"recovery_index":        85.0,
			"hrv_balance":           75.0,
			"temperature_deviation": -0.2,
			"resting_heart_rate":    55.0,
		},
		"activity": map[string]any{
			"score":           85.0,
			"steps":           9500.0,
			"total_calories":  2400.0,
			"active_calories": 450.0,
		},
		"heart_rate": map[string]any{
			"resting_bpm":  54.0,
			"trend_values": []any{55.0, 54.0, 56.0, 53.0},
		},
		"personal": map[string]any{
			"age":       30.0,
			"height_cm": 180.0,
			"weight_kg": 75.0,
		},
		"updated_at": "2025-06-15T11:00:00Z",
	})
	require.NoError(t, err)

	assert.Contains(t, svg, "OURA HEALTH DASHBOARD")
	assert.Contains(t, svg, "82")
	assert.Contains(t, svg, "9500") // steps
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}
