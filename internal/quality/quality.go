// Package quality performs soft data-quality checks on fetched documents.
// Findings are logged and reported but never block generation; schema
// validation is the hard gate, this is the advisory one.
package quality

import (
	"math"
	"strings"

	"go.uber.org/zap"
)

// Range bounds a numeric field. Nil ends are unbounded.
type Range struct {
	Min *float64
	Max *float64
}

// RangeViolation records a value found outside its expected range.
type RangeViolation struct {
	Value float64
	Min   *float64
	Max   *float64
}

// Report is the outcome of a Check run.
type Report struct {
	MissingFields []string
	NaNFields     map[string]any
	OutOfRange    map[string]RangeViolation
}

// Valid reports whether every check passed.
func (r Report) Valid() bool {
	return len(r.MissingFields) == 0 && len(r.NaNFields) == 0 && len(r.OutOfRange) == 0
}

// Checker validates documents against per-context expectations.
type Checker struct {
	log *zap.Logger
}

// NewChecker returns a Checker that logs findings through log. A nil logger
// is replaced with a no-op one.
func NewChecker(log *zap.Logger) *Checker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checker{log: log.Named("data_quality")}
}

// IsNaNValue reports whether a decoded JSON value represents missing data:
// float NaN, or the strings "nan", "null", "none", "". Nil is not treated as
// NaN here; absent fields are caught by the missing-field check.
func IsNaNValue(value any) bool {
	switch v := value.(type) {
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	case string:
		switch strings.ToLower(v) {
		case "nan", "null", "none", "":
			return true
		}
	}
	return false
}

// Check runs missing-field, NaN, and range checks over data. Each finding is
// logged as a warning tagged with the context string.
func (c *Checker) Check(data map[string]any, required []string, ranges map[string]Range, context string) Report {
	report := Report{
		NaNFields:  map[string]any{},
		OutOfRange: map[string]RangeViolation{},
	}

	for _, field := range required {
		if _, ok := data[field]; !ok {
			report.MissingFields = append(report.MissingFields, field)
			c.log.Warn("missing required field",
				zap.String("field", field),
				zap.String("context", context))
		}
	}

	for field, value := range data {
		if IsNaNValue(value) {
			report.NaNFields[field] = value
			c.log.Warn("NaN/null value detected",
				zap.String("field", field),
				zap.Any("value", value),
				zap.String("context", context))
		}
	}

	for field, bounds := range ranges {
		raw, ok := data[field]
		if !ok {
			continue
		}
		value, ok := asFloat(raw)
		if !ok {
			continue
		}
		if math.IsNaN(value) {
			continue // already reported by the NaN pass
		}
		if (bounds.Min != nil && value < *bounds.Min) || (bounds.Max != nil && value > *bounds.Max) {
			report.OutOfRange[field] = RangeViolation{Value: value, Min: bounds.Min, Max: bounds.Max}
			c.log.Warn("value out of expected range",
				zap.String("field", field),
				zap.Float64("value", value),
				zap.Float64p("min", bounds.Min),
				zap.Float64p("max", bounds.Max),
				zap.String("context", context))
		}
	}

	return report
}

// LogSummary logs a one-line outcome for a completed report.
func (c *Checker) LogSummary(report Report, context string) {
	if report.Valid() {
		c.log.Info("all data quality checks passed", zap.String("context", context))
		return
	}
	c.log.Warn("data quality issues found",
		zap.String("context", context),
		zap.Strings("missing_fields", report.MissingFields),
		zap.Int("nan_fields", len(report.NaNFields)),
		zap.Int("out_of_range", len(report.OutOfRange)))
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
