package rendering

import (
	"fmt"
	"strings"
)

// SparklinePath builds SVG path data for a mini trend chart. Nil values are
// dropped; fewer than two usable points yields a flat midline so the chart
// area never collapses.
func SparklinePath(values []*float64, width, height int) string {
	var clean []float64
	for _, v := range values {
		if v != nil {
			clean = append(clean, *v)
		}
	}
	if len(clean) < 2 {
		return fmt.Sprintf("M0,%d L%d,%d", height/2, width, height/2)
	}

	minVal, maxVal := clean[0], clean[0]
	for _, v := range clean[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	valRange := maxVal - minVal
	if valRange == 0 {
		valRange = 1
	}

	step := float64(width) / float64(len(clean)-1)
	points := make([]string, len(clean))
	for i, v := range clean {
		x := float64(i) * step
		// SVG Y grows downward, so invert.
		y := float64(height) - (v-minVal)/valRange*float64(height)
		points[i] = fmt.Sprintf("%.1f,%.1f", x, y)
	}

	return "M" + strings.Join(points, " L")
}
