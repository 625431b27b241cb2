// Package pipeline orchestrates card generation: change detection, input
// validation, rendering, and fallback-safe atomic writes. A previously good
// SVG on disk is never regressed by a failed regeneration attempt.
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/szmyty/profile/internal/schemas"
)

// RenderFunc turns a validated data document into SVG markup.
type RenderFunc func(data map[string]any) (string, error)

// GenerateError reports an unrecoverable generation failure: one with no
// valid fallback artifact to preserve.
type GenerateError struct {
	CardType string
	Message  string
	Cause    error
}

func (e *GenerateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to generate %s card: %s: %v", e.CardType, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to generate %s card: %s", e.CardType, e.Message)
}

func (e *GenerateError) Unwrap() error {
	return e.Cause
}

// Generator wraps renderers with the shared failure recovery policy.
// Renderers and validators never decide whether an error is fatal; that
// decision lives here and depends only on fallback availability.
type Generator struct {
	Schemas *schemas.Registry
	log     *zap.Logger
}

// NewGenerator builds a Generator. A nil registry disables schema
// validation; a nil logger disables logging.
func NewGenerator(registry *schemas.Registry, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{Schemas: registry, log: log.Named("pipeline")}
}

// HasValidFallback reports whether path holds a syntactically plausible SVG
// document worth preserving.
func HasValidFallback(path string) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	content := strings.TrimSpace(string(raw))
	return strings.HasPrefix(content, "<svg") && strings.Contains(content, "</svg>")
}

// LoadInput reads and decodes the JSON data document for a card.
func LoadInput(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read input %s: %w", path, err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return data, nil
}

// writeAtomic writes content to path through a temp file and rename so a
// crash mid-write never corrupts the destination.
func writeAtomic(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".svg-*")
	if err != nil {
		return fmt.Errorf("cannot create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("cannot write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("cannot close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("cannot move temp file into place: %w", err)
	}
	return nil
}

// recover logs a fallback notice and reports false when a valid artifact
// already exists, or escalates to an unrecoverable error when it does not.
func (g *Generator) recover(cardType, outputPath, message string, cause error, hasFallback bool) (bool, error) {
	if hasFallback {
		g.log.Warn("using fallback SVG",
			zap.String("card", cardType),
			zap.String("reason", message),
			zap.String("preserved", outputPath),
			zap.Error(cause))
		return false, nil
	}
	return false, &GenerateError{CardType: cardType, Message: message, Cause: cause}
}

// Generate produces one card from its data file. It returns true when a new
// SVG was written, false with a nil error when the prior SVG was preserved
// as a fallback, and an error only when the failure is unrecoverable. The
// byte content at outputPath is untouched on every fallback path.
func (g *Generator) Generate(cardType, outputPath, inputPath, schemaName string, render RenderFunc) (bool, error) {
	hasFallback := HasValidFallback(outputPath)

	data, err := LoadInput(inputPath)
	if err != nil {
		return g.recover(cardType, outputPath, "cannot load input", err, hasFallback)
	}

	if schemaName != "" && g.Schemas != nil {
		if msg := g.Schemas.TryValidate(data, schemaName, cardType+" input"); msg != "" {
			return g.recover(cardType, outputPath, msg, nil, hasFallback)
		}
	}

	svg, err := render(data)
	if err != nil {
		return g.recover(cardType, outputPath, "renderer failed", err, hasFallback)
	}
	if !strings.HasPrefix(strings.TrimSpace(svg), "<svg") {
		return g.recover(cardType, outputPath, "renderer returned malformed SVG", nil, hasFallback)
	}

	if err := writeAtomic(outputPath, svg); err != nil {
		return g.recover(cardType, outputPath, "cannot write output", err, hasFallback)
	}

	g.log.Info("generated card",
		zap.String("card", cardType),
		zap.String("output", outputPath))
	return true, nil
}
