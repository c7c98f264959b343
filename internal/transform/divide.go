// Package transform holds the pure reshaping helpers that turn loaded
// performance records into comparisons, buckets and chart colours.
package transform

import "math"

// SafeDiv divides a by b, returning NaN instead of an infinity or error when
// b is zero.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return math.NaN()
	}
	return a / b
}

// SafeDivide divides a by b element-wise. Positions where the denominator is
// zero, or where b has no element, are NaN. The result has len(a) elements.
func SafeDivide(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		if i >= len(b) {
			out[i] = math.NaN()
			continue
		}
		out[i] = SafeDiv(a[i], b[i])
	}
	return out
}
