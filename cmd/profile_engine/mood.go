package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/szmyty/profile/internal/clients"
	"github.com/szmyty/profile/internal/mood"
	"github.com/szmyty/profile/internal/pipeline"
)

var moodCmd = &cobra.Command{
	Use:   "compute-mood",
	Short: "Compute the mood document from the health snapshot",
	Long: `Scores the latest health snapshot into a named mood with an icon, color
gradient, and description, and writes the mood document the mood card renders
from.`,
	RunE: runComputeMood,
}

var (
	moodInput  string
	moodOutput string
)

func init() {
	moodCmd.Flags().StringVarP(&moodInput, "input", "i", "", "Path to health snapshot JSON (defaults to <data-dir>/health.json)")
	moodCmd.Flags().StringVarP(&moodOutput, "output", "o", "", "Path to output mood JSON (defaults to <data-dir>/mood.json)")

	rootCmd.AddCommand(moodCmd)
}

func runComputeMood(_ *cobra.Command, _ []string) error {
	cfg, _, err := engineConfig()
	if err != nil {
		return err
	}

	inputPath := moodInput
	if inputPath == "" {
		inputPath = filepath.Join(cfg.DataDir, "health.json")
	}
	outputPath := moodOutput
	if outputPath == "" {
		outputPath = filepath.Join(cfg.DataDir, "mood.json")
	}

	snapshot, err := pipeline.LoadInput(inputPath)
	if err != nil {
		return fmt.Errorf("failed to load health snapshot: %w", err)
	}

	result := mood.Compute(clients.MoodMetricsFromSnapshot(snapshot), time.Now())
	if err := clients.SaveJSON(outputPath, result); err != nil {
		return fmt.Errorf("failed to write mood document: %w", err)
	}

	fmt.Printf("Mood: %s %s (%.1f)\n", result.MoodIcon, result.MoodName, result.MoodScore)
	return nil
}
