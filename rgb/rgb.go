// Package rgb holds linear RGB colors.  Components are nominally in [0, 1],
// but intermediate results from lighting may exceed that range; clamping is
// left to whoever encodes the final image.
package rgb

import "row-major/phong/vmath/approx"

type T [3]float64

var (
	Black = T{0, 0, 0}
	White = T{1, 1, 1}
)

func AddCC(a, b T) T {
	return T{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func SubCC(a, b T) T {
	return T{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func MulCS(a T, b float64) T {
	return T{a[0] * b, a[1] * b, a[2] * b}
}

// MulCC is the Hadamard product, used to filter one color through another.
func MulCC(a, b T) T {
	return T{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func Equal(a, b T) bool {
	return approx.Equal(a[0], b[0]) && approx.Equal(a[1], b[1]) && approx.Equal(a[2], b[2])
}
