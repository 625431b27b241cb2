package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Success(t *testing.T) {
	path := writeConfig(t, `{
		"data_dir": "profile-data",
		"theme_variant": "dark",
		"request_timeout": 15,
		"logging": {"level": "debug", "format": "console"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "profile-data", cfg.DataDir)
	assert.Equal(t, "dark", cfg.ThemeVariant)
	assert.Equal(t, 15, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{"data_dir": `)
	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidate_BadTimeout(t *testing.T) {
	cfg := Config{RequestTimeout: 900}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RequestTimeout")
}

func TestValidate_BadListenAddr(t *testing.T) {
	cfg := Config{ListenAddr: "not an address"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingThemeFile(t *testing.T) {
	cfg := Config{ThemePath: filepath.Join(t.TempDir(), "theme.json")}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme file not found")
}

func TestValidate_ZeroValueIsValid(t *testing.T) {
	cfg := Config{}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{DataDir: "custom-data", RequestTimeout: 5}
	merged := cfg.MergeWithDefaults(Defaults)

	assert.Equal(t, "custom-data", merged.DataDir)
	assert.Equal(t, 5, merged.RequestTimeout)
	assert.Equal(t, Defaults.OutputDir, merged.OutputDir)
	assert.Equal(t, Defaults.ThemePath, merged.ThemePath)
	assert.Equal(t, Defaults.CachePath, merged.CachePath)
	assert.Equal(t, Defaults.ListenAddr, merged.ListenAddr)
}

func TestMergeWithDefaults_DoesNotMutateReceiver(t *testing.T) {
	cfg := Config{}
	_ = cfg.MergeWithDefaults(Defaults)
	assert.Equal(t, Config{}, cfg)
}
