package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["location", "current"],
  "properties": {
    "location": {"type": "string"},
    "current": {
      "type": "object",
      "required": ["temperature"],
      "properties": {
        "temperature": {"type": "number"}
      }
    }
  }
}`

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weather.schema.json"), []byte(weatherSchema), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.schema.json"), []byte(`{"type": 12}`), 0644))
	return NewRegistry(dir, nil)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "weather.schema.json", NormalizeName("weather"))
	assert.Equal(t, "weather.schema.json", NormalizeName("weather.schema.json"))
}

func TestValidate_Success(t *testing.T) {
	r := newTestRegistry(t)
	data := map[string]any{
		"location": "Test City",
		"current":  map[string]any{"temperature": 20.0},
	}
	assert.NoError(t, r.Validate(data, "weather"))
}

func TestValidate_MissingRequiredField(t *testing.T) {
	r := newTestRegistry(t)
	data := map[string]any{"location": "Test City"}

	err := r.Validate(data, "weather")
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "weather.schema.json", ve.Schema)
	require.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Errors[0].Message, "current")
}

func TestValidate_NestedFieldPath(t *testing.T) {
	r := newTestRegistry(t)
	data := map[string]any{
		"location": "Test City",
		"current":  map[string]any{"temperature": "warm"},
	}

	err := r.Validate(data, "weather")
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "current.temperature", ve.Errors[0].Field)
}

func TestValidate_MissingSchemaIsNoOp(t *testing.T) {
	r := newTestRegistry(t)
	assert.NoError(t, r.Validate(map[string]any{"anything": true}, "no-such-schema"))
}

func TestValidate_BrokenSchemaIsFatal(t *testing.T) {
	r := newTestRegistry(t)
	err := r.Validate(map[string]any{}, "broken")
	require.Error(t, err)

	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}

func TestTryValidate(t *testing.T) {
	r := newTestRegistry(t)

	valid := map[string]any{
		"location": "Test City",
		"current":  map[string]any{"temperature": 20.0},
	}
	assert.Empty(t, r.TryValidate(valid, "weather", "weather data"))

	invalid := map[string]any{
		"location": "Test City",
		"current":  map[string]any{"temperature": "warm"},
	}
	msg := r.TryValidate(invalid, "weather", "weather data")
	assert.Contains(t, msg, "weather data validation failed")
	assert.Contains(t, msg, "at path: current.temperature")
}

func TestLoad_CachesCompiledSchema(t *testing.T) {
	r := newTestRegistry(t)

	first, err := r.Load("weather")
	require.NoError(t, err)
	second, err := r.Load("weather")
	require.NoError(t, err)
	assert.Same(t, first, second)
}
