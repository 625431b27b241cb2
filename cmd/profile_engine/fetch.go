package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/szmyty/profile/internal/pipeline"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <source>",
	Short: "Fetch data from a single source",
	Long: `Fetches data from one source and writes its JSON document into the data
directory. Sources: weather, developer, oura, soundcloud, quote, all.

Fetch outcomes are recorded in the workflow metrics store either way; a failed
fetch leaves the previous data file in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, log, err := engineConfig()
	if err != nil {
		return err
	}
	runner, err := pipeline.NewRunner(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	source := args[0]
	if source == "all" {
		runner.FetchAll(cmd.Context())
		fmt.Println("Fetched all configured sources")
		return nil
	}
	if err := runner.FetchOne(cmd.Context(), source); err != nil {
		return err
	}
	fmt.Printf("Fetched %s\n", source)
	return nil
}
