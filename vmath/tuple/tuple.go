// Package tuple implements homogeneous 4-component coordinates.
//
// A tuple with w == 1 is a point and a tuple with w == 0 is a vector.  The
// arithmetic below does not check the distinction; callers are expected to
// keep points and vectors apart (for example, CProd is only meaningful on
// vectors).
package tuple

import (
	"math"

	"row-major/phong/vmath/approx"
)

type T [4]float64

func Point(x, y, z float64) T {
	return T{x, y, z, 1.0}
}

func Vector(x, y, z float64) T {
	return T{x, y, z, 0.0}
}

func (v T) IsPoint() bool {
	return v[3] == 1.0
}

func (v T) IsVector() bool {
	return v[3] == 0.0
}

func (v T) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2] + v[3]*v[3])
}

// Normalize scales v to unit length.
//
// Normalizing a zero-length tuple is a programming error, and panics rather
// than producing NaN components.
func Normalize(v T) T {
	l := v.Norm()
	if l == 0 {
		panic("tuple: normalize of zero-length tuple")
	}
	return T{
		v[0] / l,
		v[1] / l,
		v[2] / l,
		v[3] / l,
	}
}

func AddTT(a, b T) T {
	return T{
		a[0] + b[0],
		a[1] + b[1],
		a[2] + b[2],
		a[3] + b[3],
	}
}

func SubTT(a, b T) T {
	return T{
		a[0] - b[0],
		a[1] - b[1],
		a[2] - b[2],
		a[3] - b[3],
	}
}

func Neg(a T) T {
	return T{-a[0], -a[1], -a[2], -a[3]}
}

func MulTS(a T, b float64) T {
	return T{
		a[0] * b,
		a[1] * b,
		a[2] * b,
		a[3] * b,
	}
}

func DivTS(a T, b float64) T {
	return T{
		a[0] / b,
		a[1] / b,
		a[2] / b,
		a[3] / b,
	}
}

func IProd(a, b T) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// CProd is the cross product of two vectors.  The result is always a vector.
func CProd(a, b T) T {
	return Vector(
		a[1]*b[2]-a[2]*b[1],
		a[2]*b[0]-a[0]*b[2],
		a[0]*b[1]-a[1]*b[0],
	)
}

// Reflect mirrors a about the normal n.
func Reflect(a, n T) T {
	return SubTT(a, MulTS(n, 2*IProd(a, n)))
}

// Equal compares a and b component-wise within approx.Epsilon.
func Equal(a, b T) bool {
	for i := 0; i < 4; i++ {
		if !approx.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
