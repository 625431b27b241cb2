package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/szmyty/profile/internal/readme"
)

var readmeCmd = &cobra.Command{
	Use:   "update-readme",
	Short: "Inject content between README section markers",
	Long: `Replaces the content between <!-- NAME:START --> and <!-- NAME:END -->
markers in a README file. Sections are given as repeated --section
NAME=CONTENT_FILE pairs; every named section must have both markers present.`,
	RunE: runUpdateReadme,
}

var (
	readmePath     string
	readmeSections []string
)

func init() {
	readmeCmd.Flags().StringVar(&readmePath, "file", "README.md", "Path to the README file")
	readmeCmd.Flags().StringArrayVar(&readmeSections, "section", nil, "Section to update, as NAME=CONTENT_FILE (repeatable)")

	if err := readmeCmd.MarkFlagRequired("section"); err != nil {
		panic(fmt.Sprintf("failed to mark section flag as required: %v", err))
	}

	rootCmd.AddCommand(readmeCmd)
}

func runUpdateReadme(_ *cobra.Command, _ []string) error {
	if _, _, err := engineConfig(); err != nil {
		return err
	}

	sections := make(map[string]string, len(readmeSections))
	for _, pair := range readmeSections {
		marker, contentFile, ok := strings.Cut(pair, "=")
		if !ok || marker == "" || contentFile == "" {
			return fmt.Errorf("invalid --section %q (expected NAME=CONTENT_FILE)", pair)
		}
		content, err := os.ReadFile(contentFile)
		if err != nil {
			return fmt.Errorf("failed to read section content: %w", err)
		}
		sections[marker] = strings.TrimRight(string(content), "\n")
	}

	if err := readme.UpdateSections(readmePath, sections); err != nil {
		return err
	}
	fmt.Printf("Updated %d section(s) in %s\n", len(sections), readmePath)
	return nil
}
