package scene

import (
	"fmt"

	"row-major/phong/contact"
	"row-major/phong/geometry"
	"row-major/phong/light"
	"row-major/phong/material"
	"row-major/phong/pattern"
	"row-major/phong/ray"
	"row-major/phong/rgb"
	"row-major/phong/transform"
	"row-major/phong/vmath/approx"
	"row-major/phong/vmath/matrix"
	"row-major/phong/vmath/tuple"
)

// Scene is a world under construction.  Shapes and their patterns may be
// freely mutated until Crush is called; the resulting World does not observe
// later changes.
type Scene struct {
	Light  *light.PointLight
	Shapes []geometry.Shape
}

// AddShape is a convenience function to register a shape and get its index.
// The index is also the shape's handle in the crushed World.
func (s *Scene) AddShape(g geometry.Shape) int {
	s.Shapes = append(s.Shapes, g)
	return len(s.Shapes) - 1
}

func (s *Scene) SetLight(l light.PointLight) {
	s.Light = &l
}

type CrushedElement struct {
	TheShape    geometry.Shape
	TheMaterial material.Material

	// The transform that takes points and rays from world space to model
	// space.
	WorldToModel matrix.T

	// The linear map that takes normal vectors from model space to world space.
	ModelToWorldNormals matrix.T
}

func (e *CrushedElement) Inverse() matrix.T {
	return e.WorldToModel
}

func (e *CrushedElement) NormalAt(worldPoint tuple.T) tuple.T {
	return geometry.NormalThrough(e.TheShape, e.WorldToModel, e.ModelToWorldNormals, worldPoint)
}

// World is a crushed Scene.  It is never modified, so any number of
// goroutines may trace against it at once.
type World struct {
	light    *light.PointLight
	elements []*CrushedElement
}

// Crush freezes the scene for rendering.
func (s *Scene) Crush() (*World, error) {
	w := &World{}
	if s.Light != nil {
		l := *s.Light
		w.light = &l
	}

	for i, g := range s.Shapes {
		if g == nil {
			return nil, fmt.Errorf("while crushing shape %d: shape is nil", i)
		}

		inv, err := matrix.Inverse(g.Transform())
		if err != nil {
			return nil, fmt.Errorf("while crushing shape %d: %w", i, err)
		}

		m := g.Material()
		m.Pattern = pattern.Snapshot(m.Pattern)

		w.elements = append(w.elements, &CrushedElement{
			TheShape:            g,
			TheMaterial:         m,
			WorldToModel:        inv,
			ModelToWorldNormals: matrix.Transpose(inv),
		})
	}

	return w, nil
}

// Light returns the world's light, if it has one.
func (w *World) Light() (light.PointLight, bool) {
	if w.light == nil {
		return light.PointLight{}, false
	}
	return *w.light, true
}

func (w *World) Len() int {
	return len(w.elements)
}

func (w *World) Element(i int) *CrushedElement {
	return w.elements[i]
}

// Intersect returns every intersection of r with the world, sorted.
func (w *World) Intersect(r ray.Ray) contact.Set {
	var xs contact.Set
	for i, elt := range w.elements {
		xs.Extend(contact.Tag(i, geometry.IntersectThrough(elt.TheShape, elt.WorldToModel, r)))
	}
	xs.Sort()
	return xs
}

// IsShadowed reports whether some object lies strictly between p and the
// light.  Objects beyond the light cast no shadow, and a point at the light
// itself is lit.
func (w *World) IsShadowed(p tuple.T) bool {
	if w.light == nil {
		return false
	}

	v := tuple.SubTT(w.light.Position, p)
	distance := v.Norm()
	if approx.Zero(distance) {
		return false
	}

	r := ray.New(p, tuple.DivTS(v, distance))
	h, ok := w.Intersect(r).Hit()
	return ok && h.T < distance
}

// Prepare builds the shading context for an intersection returned by
// Intersect.
func (w *World) Prepare(i contact.Intersection, r ray.Ray) contact.Computation {
	return contact.Prepare(i, r, w.elements[i.Object])
}

func (w *World) ShadeHit(c contact.Computation) rgb.T {
	if w.light == nil {
		return rgb.Black
	}

	elt := w.elements[c.Object]
	shadowed := w.IsShadowed(c.OverPoint)
	return light.Lighting(&elt.TheMaterial, elt, w.light, c.Point, c.Eye, c.Normal, shadowed)
}

// ColorAt traces r into the world and returns the color it sees.
func (w *World) ColorAt(r ray.Ray) rgb.T {
	h, ok := w.Intersect(r).Hit()
	if !ok {
		return rgb.Black
	}
	return w.ShadeHit(w.Prepare(h, r))
}

// Default returns the two-sphere scene most tests are written against.
func Default() *Scene {
	s := &Scene{}
	s.SetLight(light.NewPointLight(tuple.Point(-10, 10, -10), rgb.White))

	outer := geometry.NewSphere()
	m := material.Default()
	m.Color = rgb.T{0.8, 1.0, 0.6}
	m.Diffuse = 0.7
	m.Specular = 0.2
	outer.SetMaterial(m)
	s.AddShape(outer)

	inner := geometry.NewSphere()
	if err := inner.SetTransform(transform.Scale(0.5, 0.5, 0.5)); err != nil {
		panic(err)
	}
	s.AddShape(inner)

	return s
}
