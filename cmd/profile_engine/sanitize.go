package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/szmyty/profile/internal/sanitize"
)

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize-svg <path>",
	Short: "Sanitize SVG files for README embedding",
	Long: `Strips script elements, foreign objects, event handler attributes, and
comments from SVG files, and normalizes the root element (xmlns, viewBox).
The path may be a single file or a directory of .svg files.`,
	Args: cobra.ExactArgs(1),
	RunE: runSanitize,
}

var (
	sanitizeOutput string
	sanitizeStrict bool
)

func init() {
	sanitizeCmd.Flags().StringVarP(&sanitizeOutput, "output", "o", "", "Output path for a single file (defaults to sanitizing in place)")
	sanitizeCmd.Flags().BoolVar(&sanitizeStrict, "strict", false, "Fail on SVGs with no usable dimensions instead of warning")

	rootCmd.AddCommand(sanitizeCmd)
}

func runSanitize(_ *cobra.Command, args []string) error {
	_, log, err := engineConfig()
	if err != nil {
		return err
	}
	s := sanitize.New(sanitizeStrict, log)

	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", target, err)
	}

	if info.IsDir() {
		if sanitizeOutput != "" {
			return fmt.Errorf("--output cannot be used with a directory")
		}
		results, err := s.Directory(target)
		if err != nil {
			return err
		}
		warningCount := 0
		for _, warnings := range results {
			warningCount += len(warnings)
		}
		fmt.Printf("Sanitized %d file(s), %d warning(s)\n", len(results), warningCount)
		return nil
	}

	warnings, err := s.File(target, sanitizeOutput)
	if err != nil {
		return err
	}
	fmt.Printf("Sanitized %s (%d warning(s))\n", target, len(warnings))
	return nil
}
