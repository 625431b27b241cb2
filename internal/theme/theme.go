// Package theme provides loading and typed access to the card theme document.
package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DefaultPath is the conventional location of the theme document.
const DefaultPath = "config/theme.json"

// DefaultGradient is used when a requested gradient is absent from the theme.
var DefaultGradient = [2]string{"#1a1a2e", "#16213e"}

// Theme is an immutable, fully-loaded theme document. It is constructed once
// at process start and passed to renderers; every accessor returns the caller
// supplied fallback when a key is missing, so a partially specified theme
// never fails a render.
type Theme struct {
	doc map[string]any
}

// LoadError reports a theme document that could not be read or parsed. An
// invalid default theme is fatal to the pipeline: no card can render without
// one.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load theme %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load theme %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load reads and parses the theme document at path. If variant is non-empty
// and the document carries a matching entry under "themes", that entry's
// colors and gradients shallowly override the base document; everything else
// (typography, card dimensions, effects) always comes from the base.
func Load(path, variant string) (*Theme, error) {
	if path == "" {
		path = DefaultPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot read file", Cause: err}
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &LoadError{Path: path, Message: "invalid JSON", Cause: err}
	}

	if variant != "" {
		if override, ok := nested(doc, "themes", variant).(map[string]any); ok {
			merged := make(map[string]any, len(doc))
			for k, v := range doc {
				merged[k] = v
			}
			if colors, ok := override["colors"]; ok {
				merged["colors"] = colors
			}
			if gradients, ok := override["gradients"]; ok {
				merged["gradients"] = gradients
			}
			doc = merged
		}
	}

	return &Theme{doc: doc}, nil
}

// nested walks a key path through nested JSON objects, returning nil when any
// segment is missing or not an object.
func nested(doc map[string]any, keys ...string) any {
	var cur any = doc
	for _, key := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[key]
		if !ok {
			return nil
		}
	}
	return cur
}

func (t *Theme) stringAt(fallback string, keys ...string) string {
	if s, ok := nested(t.doc, keys...).(string); ok {
		return s
	}
	return fallback
}

func (t *Theme) intAt(fallback int, keys ...string) int {
	if f, ok := nested(t.doc, keys...).(float64); ok {
		return int(f)
	}
	return fallback
}

func (t *Theme) floatAt(fallback float64, keys ...string) float64 {
	if f, ok := nested(t.doc, keys...).(float64); ok {
		return f
	}
	return fallback
}

// Color returns a color from colors.<category>.<name>.
func (t *Theme) Color(category, name, fallback string) string {
	return t.stringAt(fallback, "colors", category, name)
}

// Gradient returns a two-color gradient by name. Dotted names address nested
// gradient groups, e.g. "background.default" or "weather.clear_day".
func (t *Theme) Gradient(name string, fallback [2]string) [2]string {
	keys := append([]string{"gradients"}, strings.SplitN(name, ".", 2)...)
	raw, ok := nested(t.doc, keys...).([]any)
	if !ok || len(raw) < 2 {
		return fallback
	}
	start, ok1 := raw[0].(string)
	end, ok2 := raw[1].(string)
	if !ok1 || !ok2 {
		return fallback
	}
	return [2]string{start, end}
}

// Typography returns a typography value, e.g. Typography("font_family", ...).
func (t *Theme) Typography(key, fallback string) string {
	return t.stringAt(fallback, "typography", key)
}

// FontSize returns a named font size in pixels (xs, sm, base, lg, xl, ...).
func (t *Theme) FontSize(name string, fallback int) int {
	return t.intAt(fallback, "typography", "sizes", name)
}

// Spacing returns a named spacing value in pixels.
func (t *Theme) Spacing(name string, fallback int) int {
	return t.intAt(fallback, "spacing", name)
}

// CardDimension returns cards.<kind>.<cardType> where kind is "widths" or
// "heights".
func (t *Theme) CardDimension(kind, cardType string, fallback int) int {
	return t.intAt(fallback, "cards", kind, cardType)
}

// BorderRadius returns a named border radius (sm, md, lg, xl).
func (t *Theme) BorderRadius(size string, fallback int) int {
	return t.intAt(fallback, "cards", "border_radius", size)
}

// StrokeWidth returns the card border stroke width.
func (t *Theme) StrokeWidth() int {
	return t.intAt(1, "cards", "stroke_width")
}

// StrokeOpacity returns the card border stroke opacity.
func (t *Theme) StrokeOpacity() float64 {
	return t.floatAt(0.3, "cards", "stroke_opacity")
}

// ChartValue returns a chart dimension from cards.chart.
func (t *Theme) ChartValue(key string, fallback int) int {
	return t.intAt(fallback, "cards", "chart", key)
}

// ScoreBarValue returns a score-bar dimension from cards.score_bar.
func (t *Theme) ScoreBarValue(key string, fallback int) int {
	return t.intAt(fallback, "cards", "score_bar", key)
}

// RadialBarValue returns a radial-bar setting from cards.radial_bar.
func (t *Theme) RadialBarValue(key string, fallback float64) float64 {
	return t.floatAt(fallback, "cards", "radial_bar", key)
}

// MapValue returns a map-panel dimension from cards.map.
func (t *Theme) MapValue(key string, fallback int) int {
	return t.intAt(fallback, "cards", "map", key)
}

// LanguageColor returns the display color for a programming language.
func (t *Theme) LanguageColor(language, fallback string) string {
	return t.stringAt(fallback, "colors", "languages", language)
}

// StatusColor returns the display color for a workflow status name.
func (t *Theme) StatusColor(status, fallback string) string {
	return t.stringAt(fallback, "colors", "status", status)
}

// GlowStdDeviation returns the glow filter blur radius.
func (t *Theme) GlowStdDeviation() float64 {
	return t.floatAt(2, "effects", "glow", "stdDeviation")
}

// Shadow describes the card drop shadow filter settings.
type Shadow struct {
	DX           float64
	DY           float64
	StdDeviation float64
	FloodOpacity float64
}

// ShadowSettings returns the shadow filter settings with defaults applied.
func (t *Theme) ShadowSettings() Shadow {
	return Shadow{
		DX:           t.floatAt(0, "effects", "shadow", "dx"),
		DY:           t.floatAt(2, "effects", "shadow", "dy"),
		StdDeviation: t.floatAt(3, "effects", "shadow", "stdDeviation"),
		FloodOpacity: t.floatAt(0.3, "effects", "shadow", "flood_opacity"),
	}
}
