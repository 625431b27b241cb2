package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/szmyty/profile/internal/pipeline"
)

var snapshotCmd = &cobra.Command{
	Use:   "store-snapshot",
	Short: "Record today's metrics snapshot and refresh aggregates",
	Long: `Stores a daily snapshot of the current health, mood, weather, and
developer documents under <data-dir>/snapshots, then rolls the last seven
days into a weekly aggregate and the current month into a monthly aggregate.
The weekly aggregate also becomes summary.json, the summary card's input.`,
	RunE: runStoreSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

func runStoreSnapshot(_ *cobra.Command, _ []string) error {
	cfg, log, err := engineConfig()
	if err != nil {
		return err
	}
	runner, err := pipeline.NewRunner(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	if err := runner.StoreSnapshot(time.Now()); err != nil {
		return err
	}
	fmt.Println("Stored daily snapshot and refreshed aggregates")
	return nil
}
