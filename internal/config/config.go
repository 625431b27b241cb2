// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/szmyty/profile/internal/observability"
)

// Config represents the engine configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	DataDir   string `json:"data_dir,omitempty"`   // Directory holding fetched JSON documents
	OutputDir string `json:"output_dir,omitempty"` // Directory receiving rendered SVG cards
	SchemaDir string `json:"schema_dir,omitempty"` // Directory containing *.schema.json files
	ThemePath string `json:"theme_path,omitempty"` // Path to the theme document
	CachePath string `json:"cache_path,omitempty"` // Path to the change-detection hash cache

	// Rendering
	ThemeVariant string `json:"theme_variant,omitempty"` // Named variant under themes{} in the theme document
	Force        bool   `json:"force,omitempty"`         // Regenerate even when the hash cache says skip

	// Fetching
	GitHubUser       string  `json:"github_user,omitempty"`
	WeatherLocation  string  `json:"weather_location,omitempty"` // Display label, e.g. "Boston, MA"
	WeatherLatitude  float64 `json:"weather_latitude,omitempty" validate:"omitempty,latitude"`
	WeatherLongitude float64 `json:"weather_longitude,omitempty" validate:"omitempty,longitude"`
	SoundCloudURL    string  `json:"soundcloud_url,omitempty" validate:"omitempty,url"`
	RequestTimeout   int     `json:"request_timeout,omitempty" validate:"omitempty,gte=1,lte=300"` // Seconds

	// Metrics
	MetricsDir string `json:"metrics_dir,omitempty"` // Directory holding per-workflow metrics files

	// Serve
	ListenAddr string `json:"listen_addr,omitempty" validate:"omitempty,hostname_port"`

	Logging observability.Config `json:"logging,omitempty"`
}

// Defaults are the built-in paths used when neither the config file nor CLI
// flags say otherwise.
var Defaults = Config{
	DataDir:        "data",
	OutputDir:      "output",
	SchemaDir:      "schemas",
	ThemePath:      "config/theme.json",
	CachePath:      ".cache/hashes.json",
	MetricsDir:     "data/metrics",
	RequestTimeout: 30,
	ListenAddr:     "127.0.0.1:8791",
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the configuration has valid values. Required fields
// are not checked here; those are enforced per-command after merging flags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			first := verrs[0]
			return fmt.Errorf("config error: field %q fails %q validation", first.Field(), first.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.ThemePath != "" {
		if _, err := os.Stat(c.ThemePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: theme file not found: %s", c.ThemePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. Config file values act as defaults for CLI flags; bools are not
// merged since unset cannot be distinguished from false.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.SchemaDir == "" {
		result.SchemaDir = defaults.SchemaDir
	}
	if result.ThemePath == "" {
		result.ThemePath = defaults.ThemePath
	}
	if result.CachePath == "" {
		result.CachePath = defaults.CachePath
	}
	if result.ThemeVariant == "" {
		result.ThemeVariant = defaults.ThemeVariant
	}
	if result.GitHubUser == "" {
		result.GitHubUser = defaults.GitHubUser
	}
	if result.WeatherLocation == "" {
		result.WeatherLocation = defaults.WeatherLocation
	}
	if result.SoundCloudURL == "" {
		result.SoundCloudURL = defaults.SoundCloudURL
	}
	if result.MetricsDir == "" {
		result.MetricsDir = defaults.MetricsDir
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}

	if result.WeatherLatitude == 0 {
		result.WeatherLatitude = defaults.WeatherLatitude
	}
	if result.WeatherLongitude == 0 {
		result.WeatherLongitude = defaults.WeatherLongitude
	}
	if result.RequestTimeout == 0 {
		result.RequestTimeout = defaults.RequestTimeout
	}

	if result.Logging.Level == "" {
		result.Logging.Level = defaults.Logging.Level
	}
	if result.Logging.Format == "" {
		result.Logging.Format = defaults.Logging.Format
	}

	return result
}
