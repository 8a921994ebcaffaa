// Package contact records where rays meet shapes, and derives the shading
// context for the nearest such meeting.
package contact

import (
	"sort"

	"row-major/phong/ray"
	"row-major/phong/vmath/approx"
	"row-major/phong/vmath/tuple"
)

// Intersection is a ray parameter tagged with the handle of the object that
// produced it.  Handles are indices into whatever arena the caller keeps its
// objects in.
type Intersection struct {
	T      float64
	Object int
}

// Set is an ordered collection of intersections.
type Set []Intersection

// Tag wraps each parameter in ts as an intersection with object.
func Tag(object int, ts []float64) Set {
	if len(ts) == 0 {
		return nil
	}
	s := make(Set, len(ts))
	for i, t := range ts {
		s[i] = Intersection{T: t, Object: object}
	}
	return s
}

func (s *Set) Extend(other Set) {
	*s = append(*s, other...)
}

// Sort orders s by ascending T.  Equal parameters keep their relative order.
func (s Set) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].T < s[j].T
	})
}

// Hit returns the intersection with the smallest strictly positive T.  On
// ties, the earliest such intersection in s wins.  s need not be sorted.
func (s Set) Hit() (Intersection, bool) {
	best := -1
	for i, x := range s {
		if !(x.T > 0) {
			continue
		}
		if best == -1 || x.T < s[best].T {
			best = i
		}
	}
	if best == -1 {
		return Intersection{}, false
	}
	return s[best], true
}

// Surface gives the unit world-space normal at a point on a shape.
type Surface interface {
	NormalAt(worldPoint tuple.T) tuple.T
}

// SurfaceFunc adapts a plain function to Surface.
type SurfaceFunc func(worldPoint tuple.T) tuple.T

func (f SurfaceFunc) NormalAt(worldPoint tuple.T) tuple.T {
	return f(worldPoint)
}

// Computation is the shading context of one intersection, as seen by one
// ray.
type Computation struct {
	T      float64
	Object int

	Point tuple.T
	Eye   tuple.T

	// Normal always faces Eye; Inside records whether it had to be flipped to
	// do so.
	Normal tuple.T
	Inside bool

	// OverPoint is Point nudged off the surface along Normal.  Secondary rays
	// start here so they don't immediately re-hit the surface they leave.
	OverPoint tuple.T
}

// Prepare builds the Computation for i, which must have come from
// intersecting r with the object whose surface is given.
func Prepare(i Intersection, r ray.Ray, surface Surface) Computation {
	c := Computation{
		T:      i.T,
		Object: i.Object,
	}

	c.Point = r.Position(i.T)
	c.Eye = tuple.Neg(r.Direction)
	c.Normal = surface.NormalAt(c.Point)

	if tuple.IProd(c.Normal, c.Eye) < 0 {
		c.Inside = true
		c.Normal = tuple.Neg(c.Normal)
	}

	c.OverPoint = tuple.AddTT(c.Point, tuple.MulTS(c.Normal, approx.Epsilon))
	return c
}
