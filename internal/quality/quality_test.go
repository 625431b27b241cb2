package quality

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func f(v float64) *float64 { return &v }

func TestIsNaNValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"float NaN", math.NaN(), true},
		{"regular float", 42.5, false},
		{"string nan", "NaN", true},
		{"string null", "null", true},
		{"string none", "None", true},
		{"empty string", "", true},
		{"regular string", "sunny", false},
		{"nil is not NaN", nil, false},
		{"bool", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNaNValue(tt.value))
		})
	}
}

func TestCheck_AllPassing(t *testing.T) {
	c := NewChecker(zap.NewNop())
	data := map[string]any{"temperature": 18.5, "condition": "cloudy"}

	report := c.Check(data, []string{"temperature", "condition"},
		map[string]Range{"temperature": {Min: f(-90), Max: f(60)}}, "weather")

	assert.True(t, report.Valid())
	assert.Empty(t, report.MissingFields)
	assert.Empty(t, report.NaNFields)
	assert.Empty(t, report.OutOfRange)
}

func TestCheck_MissingFields(t *testing.T) {
	c := NewChecker(nil)
	report := c.Check(map[string]any{"a": 1.0}, []string{"a", "b", "c"}, nil, "test")

	assert.False(t, report.Valid())
	assert.Equal(t, []string{"b", "c"}, report.MissingFields)
}

func TestCheck_NaNFields(t *testing.T) {
	c := NewChecker(nil)
	data := map[string]any{
		"score":     math.NaN(),
		"condition": "null",
		"ok":        7.0,
	}
	report := c.Check(data, nil, nil, "test")

	assert.False(t, report.Valid())
	assert.Len(t, report.NaNFields, 2)
	assert.Contains(t, report.NaNFields, "score")
	assert.Contains(t, report.NaNFields, "condition")
}

func TestCheck_OutOfRange(t *testing.T) {
	c := NewChecker(nil)
	data := map[string]any{"humidity": 140.0, "wind": -3.0}
	ranges := map[string]Range{
		"humidity": {Min: f(0), Max: f(100)},
		"wind":     {Min: f(0)},
	}
	report := c.Check(data, nil, ranges, "weather")

	assert.False(t, report.Valid())
	assert.Equal(t, 140.0, report.OutOfRange["humidity"].Value)
	assert.Equal(t, -3.0, report.OutOfRange["wind"].Value)
}

func TestCheck_RangeSkipsAbsentAndNonNumeric(t *testing.T) {
	c := NewChecker(nil)
	data := map[string]any{"label": "high"}
	ranges := map[string]Range{
		"label":  {Min: f(0)},
		"absent": {Min: f(0)},
	}
	report := c.Check(data, nil, ranges, "test")

	assert.True(t, report.Valid())
}
