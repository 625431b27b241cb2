package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/szmyty/profile/internal/config"
)

const runnerThemeJSON = `{
  "typography": {"font_family": "Arial, sans-serif", "sizes": {"xs": 10, "sm": 12, "base": 14}},
  "colors": {
    "text": {"primary": "#e6e6e6", "secondary": "#a0aec0", "muted": "#4a5568", "accent": "#64ffda"},
    "background": {"panel": "#1e293b"},
    "accent": {"sleep": "#4facfe", "readiness": "#667eea", "activity": "#f093fb", "developer": "#64ffda"}
  },
  "gradients": {"background": {"default": ["#1a1a2e", "#16213e"], "dark": ["#0f0f23", "#1a1a2e"]}},
  "cards": {"widths": {"weather": 400}, "heights": {"weather": 200}, "border_radius": {"md": 6}},
  "effects": {"glow": {"stdDeviation": 2}, "shadow": {"dx": 0, "dy": 2, "stdDeviation": 3, "flood_opacity": 0.4}}
}`

func newTestRunner(t *testing.T) (*Runner, config.Config) {
	t.Helper()
	root := t.TempDir()

	themePath := filepath.Join(root, "theme.json")
	require.NoError(t, os.WriteFile(themePath, []byte(runnerThemeJSON), 0o644))

	cfg := config.Config{
		DataDir:    filepath.Join(root, "data"),
		OutputDir:  filepath.Join(root, "output"),
		SchemaDir:  filepath.Join(root, "schemas"),
		ThemePath:  themePath,
		CachePath:  filepath.Join(root, "cache", "hashes.json"),
		MetricsDir: filepath.Join(root, "metrics"),
	}
	runner, err := NewRunner(cfg, zap.NewNop())
	require.NoError(t, err)
	return runner, cfg
}

func writeData(t *testing.T, cfg config.Config, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(cfg.DataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, name), []byte(content), 0o644))
}

func TestGenerateAll_RendersAvailableCards(t *testing.T) {
	runner, cfg := newTestRunner(t)
	writeData(t, cfg, "weather.json", `{
		"location": "Boston, MA",
		"coordinates": {"lat": 42.3601, "lon": -71.0589},
		"current": {"temperature": 20.0, "condition": "Clear sky", "emoji": "☀️"},
		"updated_at": "2026-08-29T12:00:00Z"
	}`)

	results := runner.GenerateAll(false)

	byType := map[string]GenerateResult{}
	for _, res := range results {
		byType[res.CardType] = res
	}

	require.Contains(t, byType, "weather")
	assert.True(t, byType["weather"].Generated)
	assert.NoError(t, byType["weather"].Err)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "weather.svg"))

	// Location shares the weather document.
	assert.True(t, byType["location"].Generated)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "location.svg"))

	// Cards without data files never appear in the results.
	assert.NotContains(t, byType, "developer")
	assert.NotContains(t, byType, "mood")

	// Status and consolidated render unconditionally.
	assert.True(t, byType["status"].Generated)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "status.svg"))
	assert.True(t, byType["consolidated"].Generated)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "consolidated.svg"))

	// No aggregated snapshot, so the summary card is skipped.
	assert.True(t, byType["summary"].Skipped)
}

func TestGenerateAll_SecondPassSkipsUnchanged(t *testing.T) {
	runner, cfg := newTestRunner(t)
	writeData(t, cfg, "weather.json", `{"location": "Boston, MA", "current": {"temperature": 20.0}}`)

	first := runner.GenerateAll(false)
	second := runner.GenerateAll(false)

	find := func(results []GenerateResult, cardType string) GenerateResult {
		for _, res := range results {
			if res.CardType == cardType {
				return res
			}
		}
		t.Fatalf("no result for %s", cardType)
		return GenerateResult{}
	}

	assert.True(t, find(first, "weather").Generated)
	assert.True(t, find(second, "weather").Skipped)

	// Force overrides the hash cache.
	forced := runner.GenerateAll(true)
	assert.True(t, find(forced, "weather").Generated)
}

func TestComputeMood_WritesDocument(t *testing.T) {
	runner, cfg := newTestRunner(t)
	writeData(t, cfg, "health.json", `{
		"sleep": {"score": 85},
		"readiness": {"score": 78, "hrv_balance": 70},
		"activity": {"score": 73}
	}`)

	require.NoError(t, runner.ComputeMood(time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)))

	doc, err := LoadInput(filepath.Join(cfg.DataDir, "mood.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, doc["mood_name"])
	assert.Greater(t, doc["mood_score"].(float64), 0.0)
}

func TestComputeMood_MissingSnapshot(t *testing.T) {
	runner, _ := newTestRunner(t)
	assert.Error(t, runner.ComputeMood(time.Now()))
}

func TestRecordFetch_RecordsFailureWithoutAborting(t *testing.T) {
	runner, cfg := newTestRunner(t)

	runner.recordFetch("weather", "weather.json", func() (map[string]any, error) {
		return nil, context.DeadlineExceeded
	})

	m := runner.Recorder().Load("weather")
	assert.Equal(t, 1, m.TotalRuns)
	assert.Equal(t, 1, m.FailedRuns)
	assert.NoFileExists(t, filepath.Join(cfg.DataDir, "weather.json"))

	runner.recordFetch("weather", "weather.json", func() (map[string]any, error) {
		return map[string]any{"location": "Boston, MA"}, nil
	})

	m = runner.Recorder().Load("weather")
	assert.Equal(t, 2, m.TotalRuns)
	assert.Equal(t, 1, m.SuccessfulRuns)
	assert.FileExists(t, filepath.Join(cfg.DataDir, "weather.json"))
}
