package rendering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLargeNumber(t *testing.T) {
	tests := []struct {
		name  string
		count int64
		want  string
	}{
		{"small", 999, "999"},
		{"thousands", 1500, "1.5K"},
		{"exact thousand", 1000, "1.0K"},
		{"millions", 2_340_000, "2.3M"},
		{"zero", 0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLargeNumber(tt.count))
		})
	}
}

func TestFormatDurationMS(t *testing.T) {
	assert.Equal(t, "3:05", FormatDurationMS(185_000))
	assert.Equal(t, "0:59", FormatDurationMS(59_999))
	assert.Equal(t, "0:00", FormatDurationMS(0))
}

func TestFormatTimeSince(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		timestamp string
		want      string
	}{
		{"just now", "2025-06-15T11:59:40Z", "just now"},
		{"minutes", "2025-06-15T11:45:00Z", "15m ago"},
		{"hours", "2025-06-15T09:00:00Z", "3h ago"},
		{"days", "2025-06-12T12:00:00Z", "3d ago"},
		{"unparsable", "not a time", "unknown"},
		{"empty", "", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimeSince(tt.timestamp, now))
		})
	}
}

func TestIsDataStale(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsDataStale("2025-06-15T06:00:00Z", now))
	assert.True(t, IsDataStale("2025-06-13T12:00:00Z", now))
	assert.True(t, IsDataStale("garbage", now))
}

func TestParseTimestamp_Formats(t *testing.T) {
	for _, value := range []string{
		"2025-06-15T12:00:00Z",
		"2025-06-15T12:00:00",
		"2025-06-15 12:00:00",
		"2025-06-15",
	} {
		_, err := ParseTimestamp(value)
		require.NoError(t, err, value)
	}
	_, err := ParseTimestamp("June 15")
	assert.Error(t, err)
}

func TestUnitConversions(t *testing.T) {
	assert.InDelta(t, 68.0, CelsiusToFahrenheit(20), 1e-9)
	assert.InDelta(t, 32.0, CelsiusToFahrenheit(0), 1e-9)
	assert.InDelta(t, 6.21371, KmhToMph(10), 1e-5)
}

func TestFormatClockTime(t *testing.T) {
	assert.Equal(t, "6:32 AM", FormatClockTime("2025-06-15T06:32:00"))
	assert.Equal(t, "8:05 PM", FormatClockTime("2025-06-15T20:05:00Z"))
	assert.Equal(t, "nonsense", FormatClockTime("nonsense"))
}
