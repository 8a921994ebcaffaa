// Package transform builds the 4x4 affine matrices used to place shapes,
// patterns and the camera.
//
// Matrices act on column tuples, so in Compose(a, b) the transform b is
// applied to a point first.  Chain takes its arguments in the order they
// should be applied, which is usually how scene descriptions read.
package transform

import (
	"math"

	"row-major/phong/vmath/matrix"
	"row-major/phong/vmath/tuple"
)

func Identity() matrix.T {
	return matrix.Identity(4)
}

func Translate(x, y, z float64) matrix.T {
	return matrix.MustNew(
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	)
}

func Scale(x, y, z float64) matrix.T {
	return matrix.MustNew(
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	)
}

// RotateX rotates by r radians about the x axis (left-handed).
func RotateX(r float64) matrix.T {
	s, c := math.Sincos(r)
	return matrix.MustNew(
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	)
}

func RotateY(r float64) matrix.T {
	s, c := math.Sincos(r)
	return matrix.MustNew(
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	)
}

func RotateZ(r float64) matrix.T {
	s, c := math.Sincos(r)
	return matrix.MustNew(
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// Shear moves each coordinate in proportion to the other two.  xy is the
// amount x moves in proportion to y, and so on.
func Shear(xy, xz, yx, yz, zx, zy float64) matrix.T {
	return matrix.MustNew(
		1, xy, xz, 0,
		yx, 1, yz, 0,
		zx, zy, 1, 0,
		0, 0, 0, 1,
	)
}

// Compose returns the product ts[0] * ts[1] * ... .  The last transform is
// applied first.
func Compose(ts ...matrix.T) matrix.T {
	result := Identity()
	for _, t := range ts {
		result = matrix.MulMM(result, t)
	}
	return result
}

// Chain returns the transform that applies ts[0], then ts[1], and so on.
func Chain(ts ...matrix.T) matrix.T {
	result := Identity()
	for _, t := range ts {
		result = matrix.MulMM(t, result)
	}
	return result
}

// ViewTransform orients the world so that an eye at from looks toward to,
// with up roughly upward.
func ViewTransform(from, to, up tuple.T) matrix.T {
	forward := tuple.Normalize(tuple.SubTT(to, from))
	left := tuple.CProd(forward, tuple.Normalize(up))
	trueUp := tuple.CProd(left, forward)

	orientation := matrix.MustNew(
		left[0], left[1], left[2], 0,
		trueUp[0], trueUp[1], trueUp[2], 0,
		-forward[0], -forward[1], -forward[2], 0,
		0, 0, 0, 1,
	)
	return matrix.MulMM(orientation, Translate(-from[0], -from[1], -from[2]))
}
