// Package approx holds the single tolerance used for every floating-point
// comparison in the tracer.
package approx

import "math"

// Epsilon is the absolute tolerance for comparing coordinates, matrix
// elements and color channels.  It is also the distance a hit point is pushed
// off its surface before casting shadow rays.
const Epsilon = 0.00001

// Equal reports whether a and b differ by less than Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Zero reports whether a is within Epsilon of zero.
func Zero(a float64) bool {
	return math.Abs(a) < Epsilon
}
