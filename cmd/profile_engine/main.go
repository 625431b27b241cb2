// Package main implements the profile_engine CLI for fetching dashboard data
// and generating SVG cards.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/szmyty/profile/internal/config"
	"github.com/szmyty/profile/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:   "profile_engine",
	Short: "GitHub profile dashboard engine",
	Long:  "profile_engine fetches health, weather, music, and developer data, scores a daily mood, and renders the themed SVG cards embedded in a GitHub profile README.",
}

var (
	rootConfigPath string
	rootDataDir    string
	rootOutputDir  string
	rootThemePath  string
	rootLogLevel   string
	rootLogFormat  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().StringVar(&rootDataDir, "data-dir", "", "Directory holding fetched JSON documents")
	rootCmd.PersistentFlags().StringVar(&rootOutputDir, "output-dir", "", "Directory receiving rendered SVG cards")
	rootCmd.PersistentFlags().StringVarP(&rootThemePath, "theme", "t", "", "Path to the theme document")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootLogFormat, "log-format", "", "Log format (console or json)")
}

// engineConfig merges the config file, built-in defaults, and root flags, and
// initializes the global logger. Every subcommand calls it first.
func engineConfig() (config.Config, *zap.Logger, error) {
	cfg := config.Config{}
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return config.Config{}, nil, err
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(config.Defaults)

	// Flags override both the config file and the defaults.
	if rootDataDir != "" {
		cfg.DataDir = rootDataDir
	}
	if rootOutputDir != "" {
		cfg.OutputDir = rootOutputDir
	}
	if rootThemePath != "" {
		cfg.ThemePath = rootThemePath
	}
	if rootLogLevel != "" {
		cfg.Logging.Level = rootLogLevel
	}
	if rootLogFormat != "" {
		cfg.Logging.Format = rootLogFormat
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	observability.InitializeLogger(cfg.Logging)
	return cfg, observability.GetLogger(), nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		observability.Sync()
		os.Exit(1)
	}
	observability.Sync()
}
