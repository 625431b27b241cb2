package pipeline

import (
	"go.uber.org/zap"

	"github.com/szmyty/profile/internal/changedetect"
)

// IncrementalResult describes what an incremental generation attempt did.
type IncrementalResult struct {
	Skipped   bool
	Generated bool
}

// GenerateIncremental wraps Generate with change detection: when the input
// data hashes the same as the cached value and the output SVG already
// exists, the card is skipped entirely. The hash cache is updated only after
// a successful generation, so a failed run retries on the next invocation.
func (g *Generator) GenerateIncremental(cardType, outputPath, inputPath, schemaName, cachePath, cacheKey string, force bool, render RenderFunc) (IncrementalResult, error) {
	if !changedetect.ShouldRegenerate(inputPath, outputPath, cachePath, cacheKey, force) {
		g.log.Info("skipping card, data unchanged",
			zap.String("card", cardType),
			zap.String("output", outputPath))
		return IncrementalResult{Skipped: true}, nil
	}

	generated, err := g.Generate(cardType, outputPath, inputPath, schemaName, render)
	if err != nil {
		return IncrementalResult{}, err
	}
	if generated {
		changedetect.UpdateCache(inputPath, cachePath, cacheKey, g.log)
	}
	return IncrementalResult{Generated: generated}, nil
}
