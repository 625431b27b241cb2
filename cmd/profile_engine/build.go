package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/szmyty/profile/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build-profile",
	Short: "Run the full pipeline: fetch, mood, generate",
	Long: `Fetches every configured data source concurrently, recomputes the mood
document, and regenerates every card. Fetch failures fall back to the
previous data files; card failures fall back to the previous SVGs. The
command exits 1 only when a card fails without a usable fallback.`,
	RunE: runBuildProfile,
}

var buildForce bool

func init() {
	buildCmd.Flags().BoolVar(&buildForce, "force", false, "Regenerate every card even when the hash cache says skip")

	rootCmd.AddCommand(buildCmd)
}

func runBuildProfile(cmd *cobra.Command, _ []string) error {
	cfg, log, err := engineConfig()
	if err != nil {
		return err
	}
	runner, err := pipeline.NewRunner(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	results := runner.Run(cmd.Context(), buildForce || cfg.Force)

	generated, skipped := 0, 0
	var unrecoverable []error
	for _, result := range results {
		switch {
		case result.Err != nil:
			var genErr *pipeline.GenerateError
			if errors.As(result.Err, &genErr) {
				unrecoverable = append(unrecoverable, genErr)
			} else {
				unrecoverable = append(unrecoverable, result.Err)
			}
		case result.Generated:
			generated++
		case result.Skipped:
			skipped++
		}
	}

	fmt.Printf("Build complete: %d card(s) generated, %d skipped, %d failed\n",
		generated, skipped, len(unrecoverable))
	if len(unrecoverable) > 0 {
		return unrecoverable[0]
	}
	return nil
}
