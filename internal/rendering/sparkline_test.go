package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

func TestSparklinePath_NormalSeries(t *testing.T) {
	path := SparklinePath([]*float64{fp(0), fp(50), fp(100)}, 100, 30)

	assert.Equal(t, "M0.0,30.0 L50.0,15.0 L100.0,0.0", path)
}

func TestSparklinePath_NilValuesDropped(t *testing.T) {
	path := SparklinePath([]*float64{fp(0), nil, fp(100)}, 100, 30)

	// two usable points span the full width
	assert.Equal(t, "M0.0,30.0 L100.0,0.0", path)
}

func TestSparklinePath_TooFewPointsYieldsMidline(t *testing.T) {
	assert.Equal(t, "M0,15 L100,15", SparklinePath([]*float64{fp(42)}, 100, 30))
	assert.Equal(t, "M0,15 L100,15", SparklinePath(nil, 100, 30))
	assert.Equal(t, "M0,15 L100,15", SparklinePath([]*float64{nil, nil}, 100, 30))
}

func TestSparklinePath_FlatSeriesStaysInBounds(t *testing.T) {
	path := SparklinePath([]*float64{fp(70), fp(70), fp(70)}, 90, 30)

	assert.True(t, strings.HasPrefix(path, "M"))
	assert.NotContains(t, path, "NaN")
	assert.Equal(t, "M0.0,30.0 L45.0,30.0 L90.0,30.0", path)
}
