package ray

import (
	"math"

	"row-major/phong/vmath/matrix"
	"row-major/phong/vmath/tuple"
)

// Span is a closed interval of ray parameters.
type Span struct {
	Lo, Hi float64
}

func EmptySpan() Span {
	return Span{math.Inf(1), math.Inf(-1)}
}

func (s Span) IsEmpty() bool {
	return s.Lo > s.Hi
}

// Intersect returns the overlap of a and b, which may be empty.
func Intersect(a, b Span) Span {
	return Span{math.Max(a.Lo, b.Lo), math.Min(a.Hi, b.Hi)}
}

type Ray struct {
	Origin    tuple.T
	Direction tuple.T
}

func New(origin, direction tuple.T) Ray {
	return Ray{Origin: origin, Direction: direction}
}

func (r Ray) Position(t float64) tuple.T {
	return tuple.AddTT(r.Origin, tuple.MulTS(r.Direction, t))
}

// Transform maps r through m.  The direction is deliberately left
// unnormalized, so parameters found against the transformed ray are valid
// against r as well.
func (r Ray) Transform(m matrix.T) Ray {
	return Ray{
		Origin:    matrix.MulMT(m, r.Origin),
		Direction: matrix.MulMT(m, r.Direction),
	}
}
