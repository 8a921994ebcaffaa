// Package pattern implements procedural surface colorings.
//
// A pattern is evaluated in its own space: a world point is first carried
// into the space of the object being shaded, and then through the pattern's
// own transform, before the variant's At method sees it.
package pattern

import (
	"math"

	"row-major/phong/rgb"
	"row-major/phong/vmath/approx"
	"row-major/phong/vmath/matrix"
	"row-major/phong/vmath/tuple"
)

// Object is anything a pattern can be painted on.
type Object interface {
	Inverse() matrix.T
}

type Pattern interface {
	Transform() matrix.T
	Inverse() matrix.T

	// At returns the color at a point in pattern space.
	At(p tuple.T) rgb.T
}

// AtObject evaluates p at worldPoint on the surface of obj.
func AtObject(p Pattern, obj Object, worldPoint tuple.T) rgb.T {
	objectPoint := matrix.MulMT(obj.Inverse(), worldPoint)
	patternPoint := matrix.MulMT(p.Inverse(), objectPoint)
	return p.At(patternPoint)
}

// Base holds the two colors and the transform shared by every variant.
type Base struct {
	A, B rgb.T

	transform matrix.T
	inverse   matrix.T
}

func newBase(a, b rgb.T) Base {
	return Base{
		A:         a,
		B:         b,
		transform: matrix.Identity(4),
		inverse:   matrix.Identity(4),
	}
}

// A zero Base has the identity transform.
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

// SetTransform replaces the pattern transform.  A singular matrix is
// rejected and leaves the pattern unchanged.
func (b *Base) SetTransform(m matrix.T) error {
	inv, err := matrix.Inverse(m)
	if err != nil {
		return err
	}
	b.transform = m
	b.inverse = inv
	return nil
}

func even(v float64) bool {
	return approx.Zero(math.Mod(v, 2))
}

// Stripe alternates between A and B along x.
type Stripe struct {
	Base
}

func NewStripe(a, b rgb.T) *Stripe {
	return &Stripe{Base: newBase(a, b)}
}

func (s *Stripe) At(p tuple.T) rgb.T {
	if even(math.Floor(p[0])) {
		return s.A
	}
	return s.B
}

// Gradient blends linearly from A to B over each unit interval of x.
type Gradient struct {
	Base
}

func NewGradient(a, b rgb.T) *Gradient {
	return &Gradient{Base: newBase(a, b)}
}

func (g *Gradient) At(p tuple.T) rgb.T {
	frac := p[0] - math.Floor(p[0])
	return rgb.AddCC(g.A, rgb.MulCS(rgb.SubCC(g.B, g.A), frac))
}

// Ring alternates between A and B in concentric rings about the y axis.
type Ring struct {
	Base
}

func NewRing(a, b rgb.T) *Ring {
	return &Ring{Base: newBase(a, b)}
}

func (r *Ring) At(p tuple.T) rgb.T {
	if even(math.Floor(math.Hypot(p[0], p[2]))) {
		return r.A
	}
	return r.B
}

// Checkers alternates between A and B in unit cubes.
type Checkers struct {
	Base
}

func NewCheckers(a, b rgb.T) *Checkers {
	return &Checkers{Base: newBase(a, b)}
}

func (c *Checkers) At(p tuple.T) rgb.T {
	if even(math.Floor(p[0]) + math.Floor(p[1]) + math.Floor(p[2])) {
		return c.A
	}
	return c.B
}

type frozen struct {
	Pattern
	transform matrix.T
	inverse   matrix.T
}

func (f *frozen) Transform() matrix.T {
	return f.transform
}

func (f *frozen) Inverse() matrix.T {
	return f.inverse
}

// Snapshot returns a pattern that keeps p's current colors and transform
// regardless of later changes to p.  Patterns of unknown types keep their
// transform, and their At is still called on the original.
func Snapshot(p Pattern) Pattern {
	switch q := p.(type) {
	case nil:
		return nil
	case *Stripe:
		c := *q
		return &c
	case *Gradient:
		c := *q
		return &c
	case *Ring:
		c := *q
		return &c
	case *Checkers:
		c := *q
		return &c
	default:
		return &frozen{Pattern: p, transform: p.Transform(), inverse: p.Inverse()}
	}
}
