package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() map[string]any {
	return map[string]any{
		"location": "Boston",
		"current": map[string]any{
			"temperature": 20.5,
			"is_day":      true,
			"weathercode": float64(61),
		},
		"tags":  []any{"a", "b"},
		"count": float64(3),
	}
}

func TestGet_NestedPath(t *testing.T) {
	data := sampleDoc()

	assert.Equal(t, 20.5, Get(data, "current", "temperature"))
	assert.Nil(t, Get(data, "current", "missing"))
	assert.Nil(t, Get(data, "location", "too", "deep"))
	assert.Nil(t, Get(nil, "anything"))
}

func TestGetString(t *testing.T) {
	data := sampleDoc()

	assert.Equal(t, "Boston", GetString(data, "fallback", "location"))
	assert.Equal(t, "fallback", GetString(data, "fallback", "missing"))
	// numbers are not strings
	assert.Equal(t, "fallback", GetString(data, "fallback", "count"))
}

func TestGetFloatAndInt(t *testing.T) {
	data := sampleDoc()

	assert.Equal(t, 20.5, GetFloat(data, 0, "current", "temperature"))
	assert.Equal(t, -1.0, GetFloat(data, -1, "missing"))
	assert.Equal(t, 61, GetInt(data, 0, "current", "weathercode"))
	assert.Equal(t, 20, GetInt(data, 0, "current", "temperature"))
}

func TestGetBool(t *testing.T) {
	data := sampleDoc()

	assert.True(t, GetBool(data, false, "current", "is_day"))
	assert.True(t, GetBool(data, false, "count")) // numeric 3 is truthy
	assert.True(t, GetBool(data, true, "missing"))
}

func TestGetSliceAndMap(t *testing.T) {
	data := sampleDoc()

	assert.Equal(t, []any{"a", "b"}, GetSlice(data, "tags"))
	assert.Nil(t, GetSlice(data, "location"))
	assert.NotNil(t, GetMap(data, "current"))
	assert.Nil(t, GetMap(data, "tags"))
}

func TestGetFloatPtr(t *testing.T) {
	data := sampleDoc()

	v := GetFloatPtr(data, "current", "temperature")
	require.NotNil(t, v)
	assert.Equal(t, 20.5, *v)
	assert.Nil(t, GetFloatPtr(data, "missing"))
}
