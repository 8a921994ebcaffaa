package main

import (
	"fmt"
	"math"
	"sort"

	"row-major/phong/geometry"
	"row-major/phong/light"
	"row-major/phong/material"
	"row-major/phong/pattern"
	"row-major/phong/rgb"
	"row-major/phong/scene"
	"row-major/phong/transform"
	"row-major/phong/vmath/matrix"
	"row-major/phong/vmath/tuple"
)

// demo is a scene plus somewhere to look at it from.
type demo struct {
	scene        *scene.Scene
	from, to, up tuple.T
}

var demos = map[string]func() (*demo, error){
	"default":  defaultDemo,
	"spheres":  spheresDemo,
	"patterns": patternsDemo,
	"cubes":    cubesDemo,
}

func demoNames() []string {
	names := []string{}
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupDemo(name string) (*demo, error) {
	build, ok := demos[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (have %v)", name, demoNames())
	}
	d, err := build()
	if err != nil {
		return nil, fmt.Errorf("while building scene %q: %w", name, err)
	}
	return d, nil
}

// transformable is satisfied by both shapes and patterns.
type transformable interface {
	SetTransform(m matrix.T) error
}

func place(what string, t transformable, m matrix.T) error {
	if err := t.SetTransform(m); err != nil {
		return fmt.Errorf("while placing %s: %w", what, err)
	}
	return nil
}

func defaultDemo() (*demo, error) {
	return &demo{
		scene: scene.Default(),
		from:  tuple.Point(0, 0, -5),
		to:    tuple.Point(0, 0, 0),
		up:    tuple.Vector(0, 1, 0),
	}, nil
}

func threeSpheres(s *scene.Scene, middleM, rightM, leftM material.Material) error {
	middle := geometry.NewSphere()
	if err := place("middle sphere", middle, transform.Translate(-0.5, 1, 0.5)); err != nil {
		return err
	}
	middle.SetMaterial(middleM)
	s.AddShape(middle)

	right := geometry.NewSphere()
	if err := place("right sphere", right, transform.Compose(transform.Translate(1.5, 0.5, -0.5), transform.Scale(0.5, 0.5, 0.5))); err != nil {
		return err
	}
	right.SetMaterial(rightM)
	s.AddShape(right)

	left := geometry.NewSphere()
	if err := place("left sphere", left, transform.Compose(transform.Translate(-1.5, 0.33, -0.75), transform.Scale(0.33, 0.33, 0.33))); err != nil {
		return err
	}
	left.SetMaterial(leftM)
	s.AddShape(left)

	return nil
}

func sphereMaterial(c rgb.T) material.Material {
	m := material.Default()
	m.Color = c
	m.Diffuse = 0.7
	m.Specular = 0.3
	return m
}

// spheresDemo builds its room out of flattened spheres.
func spheresDemo() (*demo, error) {
	s := &scene.Scene{}
	s.SetLight(light.NewPointLight(tuple.Point(-10, 10, -10), rgb.White))

	wallM := material.Default()
	wallM.Color = rgb.T{1, 0.9, 0.9}
	wallM.Specular = 0

	flat := transform.Scale(10, 0.01, 10)
	walls := []struct {
		name string
		m    matrix.T
	}{
		{"floor", flat},
		{"left wall", transform.Compose(transform.Translate(0, 0, 5), transform.RotateY(-math.Pi/4), transform.RotateX(math.Pi/2), flat)},
		{"right wall", transform.Compose(transform.Translate(0, 0, 5), transform.RotateY(math.Pi/4), transform.RotateX(math.Pi/2), flat)},
	}
	for _, w := range walls {
		g := geometry.NewSphere()
		if err := place(w.name, g, w.m); err != nil {
			return nil, err
		}
		g.SetMaterial(wallM)
		s.AddShape(g)
	}

	err := threeSpheres(s,
		sphereMaterial(rgb.T{0.1, 1, 0.5}),
		sphereMaterial(rgb.T{0.5, 1, 0.1}),
		sphereMaterial(rgb.T{1, 0.8, 0.1}),
	)
	if err != nil {
		return nil, err
	}

	return &demo{
		scene: s,
		from:  tuple.Point(0, 1.5, -5),
		to:    tuple.Point(0, 1, 0),
		up:    tuple.Vector(0, 1, 0),
	}, nil
}

func patternsDemo() (*demo, error) {
	s := &scene.Scene{}
	s.SetLight(light.NewPointLight(tuple.Point(-10, 10, -10), rgb.White))

	paper := rgb.T{0.97, 0.96, 0.94}
	floor := geometry.NewPlane()
	floorM := material.Default()
	floorM.Color = paper
	floorM.Specular = 0
	floorM.Pattern = pattern.NewCheckers(rgb.Black, paper)
	floor.SetMaterial(floorM)
	s.AddShape(floor)

	stripes := pattern.NewStripe(rgb.T{0.65, 0.8, 0.83}, rgb.T{0.3, 0.3, 0.3})
	if err := place("stripes", stripes, transform.Compose(transform.RotateZ(math.Pi/4), transform.Scale(0.1, 0.1, 0.1))); err != nil {
		return nil, err
	}
	middleM := sphereMaterial(rgb.T{0.65, 0.8, 0.83})
	middleM.Pattern = stripes

	rings := pattern.NewRing(rgb.White, rgb.T{0.39, 0.59, 0.35})
	if err := place("rings", rings, transform.Scale(2.1, 2.1, 2.1)); err != nil {
		return nil, err
	}
	rightM := sphereMaterial(rgb.T{0.39, 0.59, 0.35})
	rightM.Pattern = rings

	gradient := pattern.NewGradient(rgb.T{0, 0, 1}, rgb.T{1, 0, 0})
	if err := place("gradient", gradient, transform.Compose(transform.Translate(-1, 0.33, -0.75), transform.Scale(2, 2, 2))); err != nil {
		return nil, err
	}
	leftM := sphereMaterial(rgb.T{0.3, 0.3, 0.35})
	leftM.Pattern = gradient

	if err := threeSpheres(s, middleM, rightM, leftM); err != nil {
		return nil, err
	}

	return &demo{
		scene: s,
		from:  tuple.Point(0, 1.5, -5),
		to:    tuple.Point(0, 1, 0),
		up:    tuple.Vector(0, 1, 0),
	}, nil
}

// cubesDemo is a small stack of crates on a checkered floor.
func cubesDemo() (*demo, error) {
	s := &scene.Scene{}
	s.SetLight(light.NewPointLight(tuple.Point(-6, 8, -10), rgb.White))

	floor := geometry.NewPlane()
	floorM := material.Default()
	floorM.Specular = 0
	floorM.Pattern = pattern.NewCheckers(rgb.T{0.9, 0.9, 0.9}, rgb.T{0.35, 0.35, 0.4})
	floor.SetMaterial(floorM)
	s.AddShape(floor)

	grain := pattern.NewStripe(rgb.T{0.72, 0.52, 0.3}, rgb.T{0.6, 0.42, 0.24})
	if err := place("wood grain", grain, transform.Compose(transform.RotateY(math.Pi/2), transform.Scale(0.08, 1, 1))); err != nil {
		return nil, err
	}
	crateM := material.Default()
	crateM.Diffuse = 0.8
	crateM.Specular = 0.1
	crateM.Shininess = 20
	crateM.Pattern = grain

	crates := []matrix.T{
		transform.Chain(transform.Scale(0.5, 0.5, 0.5), transform.RotateY(0.3), transform.Translate(-0.6, 0.5, 0)),
		transform.Chain(transform.Scale(0.5, 0.5, 0.5), transform.RotateY(-0.2), transform.Translate(0.6, 0.5, 0.2)),
		transform.Chain(transform.Scale(0.45, 0.45, 0.45), transform.RotateY(0.7), transform.Translate(0, 1.45, 0.1)),
	}
	for i, m := range crates {
		c := geometry.NewCube()
		if err := place(fmt.Sprintf("crate %d", i), c, m); err != nil {
			return nil, err
		}
		c.SetMaterial(crateM)
		s.AddShape(c)
	}

	ball := geometry.NewSphere()
	if err := place("ball", ball, transform.Chain(transform.Scale(0.35, 0.35, 0.35), transform.Translate(1.4, 0.35, -1))); err != nil {
		return nil, err
	}
	ball.SetMaterial(sphereMaterial(rgb.T{0.8, 0.15, 0.1}))
	s.AddShape(ball)

	return &demo{
		scene: s,
		from:  tuple.Point(-1, 2.5, -5),
		to:    tuple.Point(0, 0.8, 0),
		up:    tuple.Vector(0, 1, 0),
	}, nil
}
