package rendering

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StalenessThreshold is how old a data document may be before cards flag it.
const StalenessThreshold = 24 * time.Hour

// FormatLargeNumber renders counts with K/M suffixes: 1500 -> "1.5K",
// 2300000 -> "2.3M", 500 -> "500".
func FormatLargeNumber(count int64) string {
	switch {
	case count >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(count)/1_000_000)
	case count >= 1_000:
		return fmt.Sprintf("%.1fK", float64(count)/1_000)
	default:
		return strconv.FormatInt(count, 10)
	}
}

// FormatDurationMS converts milliseconds to M:SS, e.g. 225000 -> "3:45".
func FormatDurationMS(durationMS int64) string {
	seconds := durationMS / 1000
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatTimestampISO renders t as ISO 8601 UTC with Zulu suffix.
func FormatTimestampISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// ParseTimestamp parses an ISO 8601 timestamp, treating a missing zone as
// UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", value)
}

// FormatTimeSince renders the elapsed time since an ISO timestamp: "just
// now" under a minute, then "Nm ago", "Nh ago", "Nd ago". Unparsable input
// yields "unknown".
func FormatTimeSince(timestamp string, now time.Time) string {
	t, err := ParseTimestamp(timestamp)
	if err != nil {
		return "unknown"
	}

	seconds := int64(now.UTC().Sub(t).Seconds())
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	default:
		return fmt.Sprintf("%dd ago", seconds/86400)
	}
}

// IsDataStale reports whether an ISO timestamp is older than the staleness
// threshold. Unparsable timestamps count as stale.
func IsDataStale(timestamp string, now time.Time) bool {
	t, err := ParseTimestamp(timestamp)
	if err != nil {
		return true
	}
	return now.UTC().Sub(t) > StalenessThreshold
}

// FormatClockTime renders an ISO timestamp's time-of-day as "3:04 PM".
// Unparsable input is returned unchanged.
func FormatClockTime(value string) string {
	t, err := ParseTimestamp(value)
	if err != nil {
		return value
	}
	return t.Format("3:04 PM")
}

// CelsiusToFahrenheit converts a temperature; source feeds report metric.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// KmhToMph converts a wind speed.
func KmhToMph(kmh float64) float64 {
	return kmh * 0.621371
}

func formatAny(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', 1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
