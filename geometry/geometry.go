// Package geometry defines the shapes a scene is built from.
//
// Every shape is modelled in its own object space, where it has a fixed
// canonical size and position.  Its transform carries object space into
// world space.  Shapes only implement the object-space half of intersection
// and normal computation; Intersect and NormalAt handle the mapping.
package geometry

import (
	"math"

	"row-major/phong/material"
	"row-major/phong/ray"
	"row-major/phong/vmath/approx"
	"row-major/phong/vmath/matrix"
	"row-major/phong/vmath/tuple"
)

type Shape interface {
	Transform() matrix.T

	// Inverse is the inverse of Transform, mapping world space into object
	// space.
	Inverse() matrix.T

	// SetTransform fails with matrix.ErrNotInvertible, and leaves the shape
	// untouched, if m is singular.
	SetTransform(m matrix.T) error

	Material() material.Material
	SetMaterial(m material.Material)

	// LocalIntersect returns the ray parameters, in ascending order, at which
	// an object-space ray meets the shape.
	LocalIntersect(r ray.Ray) []float64

	// LocalNormalAt returns the object-space normal at an object-space point
	// on the surface.  It need not be normalized.
	LocalNormalAt(p tuple.T) tuple.T
}

// Base implements the transform and material bookkeeping of Shape.  The
// zero value has the identity transform and a zero material.
type Base struct {
	transform matrix.T
	inverse   matrix.T
	material  material.Material
}

func newBase() Base {
	return Base{
		transform: matrix.Identity(4),
		inverse:   matrix.Identity(4),
		material:  material.Default(),
	}
}

func (b *Base) Transform() matrix.T {
	if b.transform.Size == 0 {
		return matrix.Identity(4)
	}
	return b.transform
}

func (b *Base) Inverse() matrix.T {
	if b.inverse.Size == 0 {
		return matrix.Identity(4)
	}
	return b.inverse
}

func (b *Base) SetTransform(m matrix.T) error {
	inv, err := matrix.Inverse(m)
	if err != nil {
		return err
	}
	b.transform = m
	b.inverse = inv
	return nil
}

func (b *Base) Material() material.Material {
	return b.material
}

func (b *Base) SetMaterial(m material.Material) {
	b.material = m
}

// Intersect returns the parameters at which the world-space ray r meets s.
func Intersect(s Shape, r ray.Ray) []float64 {
	return IntersectThrough(s, s.Inverse(), r)
}

// IntersectThrough is Intersect with the world-to-object transform supplied
// by the caller.
func IntersectThrough(s Shape, worldToModel matrix.T, r ray.Ray) []float64 {
	return s.LocalIntersect(r.Transform(worldToModel))
}

// NormalAt returns the unit world-space normal of s at worldPoint.
func NormalAt(s Shape, worldPoint tuple.T) tuple.T {
	inv := s.Inverse()
	return NormalThrough(s, inv, matrix.Transpose(inv), worldPoint)
}

// NormalThrough is NormalAt with the world-to-object transform and the
// normal transform (the transpose of worldToModel) supplied by the caller.
func NormalThrough(s Shape, worldToModel, normalMat matrix.T, worldPoint tuple.T) tuple.T {
	localPoint := matrix.MulMT(worldToModel, worldPoint)
	localNormal := s.LocalNormalAt(localPoint)
	worldNormal := matrix.MulMT(normalMat, localNormal)

	// The translation part of the transpose leaks into w.
	worldNormal[3] = 0
	return tuple.Normalize(worldNormal)
}

// Sphere is a unit sphere centered on the origin.
type Sphere struct {
	Base
}

func NewSphere() *Sphere {
	return &Sphere{Base: newBase()}
}

func (s *Sphere) LocalIntersect(r ray.Ray) []float64 {
	sphereToRay := tuple.SubTT(r.Origin, tuple.Point(0, 0, 0))

	a := tuple.IProd(r.Direction, r.Direction)
	b := 2 * tuple.IProd(r.Direction, sphereToRay)
	c := tuple.IProd(sphereToRay, sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sq := math.Sqrt(discriminant)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	if t2 < t1 {
		t1, t2 = t2, t1
	}
	return []float64{t1, t2}
}

func (s *Sphere) LocalNormalAt(p tuple.T) tuple.T {
	return tuple.SubTT(p, tuple.Point(0, 0, 0))
}

// Plane is the infinite xz plane through the origin.
type Plane struct {
	Base
}

func NewPlane() *Plane {
	return &Plane{Base: newBase()}
}

// LocalIntersect reports nothing for rays parallel to the plane, including
// rays lying within it.
func (p *Plane) LocalIntersect(r ray.Ray) []float64 {
	if approx.Zero(r.Direction[1]) {
		return nil
	}
	return []float64{-r.Origin[1] / r.Direction[1]}
}

func (p *Plane) LocalNormalAt(pt tuple.T) tuple.T {
	return tuple.Vector(0, 1, 0)
}

// Cube is the axis-aligned cube spanning [-1, 1] on every axis.
type Cube struct {
	Base
}

func NewCube() *Cube {
	return &Cube{Base: newBase()}
}

// slab returns the parameters for which the ray lies between -1 and 1 along
// one axis.  A ray parallel to the axis planes is either always inside the
// slab or never.
func slab(origin, direction float64) ray.Span {
	if math.Abs(direction) < approx.Epsilon {
		if origin < -1 || origin > 1 {
			return ray.EmptySpan()
		}
		return ray.Span{Lo: math.Inf(-1), Hi: math.Inf(1)}
	}

	cur := ray.Span{Lo: (-1 - origin) / direction, Hi: (1 - origin) / direction}

	if cur.Hi < cur.Lo {
		cur.Lo, cur.Hi = cur.Hi, cur.Lo
	}
	return cur
}

func (c *Cube) LocalIntersect(r ray.Ray) []float64 {
	cover := ray.Span{Lo: math.Inf(-1), Hi: math.Inf(1)}
	for i := 0; i < 3; i++ {
		cover = ray.Intersect(cover, slab(r.Origin[i], r.Direction[i]))
		if cover.IsEmpty() {
			return nil
		}
	}
	return []float64{cover.Lo, cover.Hi}
}

func (c *Cube) LocalNormalAt(p tuple.T) tuple.T {
	ax, ay, az := math.Abs(p[0]), math.Abs(p[1]), math.Abs(p[2])
	switch {
	case ax >= ay && ax >= az:
		return tuple.Vector(p[0], 0, 0)
	case ay >= az:
		return tuple.Vector(0, p[1], 0)
	default:
		return tuple.Vector(0, 0, p[2])
	}
}
