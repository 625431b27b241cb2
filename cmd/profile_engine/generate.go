package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/szmyty/profile/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate <card-type>",
	Short: "Generate a single SVG card",
	Long: `Renders one card from its JSON data document. Card types: weather,
developer, health, mood, soundcloud, quote, location, consolidated, status,
summary.

When generation fails and a previous valid SVG exists at the output path, the
old card is kept and the command exits 0. Without a fallback the failure is
unrecoverable and the command exits 1.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var (
	generateInput  string
	generateOutput string
	generateForce  bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "Path to input JSON document (defaults to the data directory)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Path to output SVG file (defaults to the output directory)")
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "Regenerate even when the hash cache says skip")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, args []string) error {
	cfg, log, err := engineConfig()
	if err != nil {
		return err
	}
	runner, err := pipeline.NewRunner(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	cardType := args[0]
	result := runner.GenerateOne(cardType, generateInput, generateOutput, generateForce || cfg.Force)
	if result.Err != nil {
		var genErr *pipeline.GenerateError
		if errors.As(result.Err, &genErr) {
			return genErr
		}
		return fmt.Errorf("failed to generate %s card: %w", cardType, result.Err)
	}

	switch {
	case result.Skipped:
		fmt.Printf("Skipped %s card: input unchanged\n", cardType)
	case result.Generated:
		fmt.Printf("Generated %s card\n", cardType)
	default:
		fmt.Printf("Kept previous %s card (generation failed, fallback in place)\n", cardType)
	}
	return nil
}
