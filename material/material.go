package material

import (
	"row-major/phong/pattern"
	"row-major/phong/rgb"
	"row-major/phong/vmath/tuple"
)

// Material holds the Phong reflectance parameters of a surface.
//
// Materials are plain values and are copied into each shape.  Pattern, when
// set, is shared between copies and must not be mutated once rendering
// starts.
type Material struct {
	Color     rgb.T
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64
	Pattern   pattern.Pattern
}

func Default() Material {
	return Material{
		Color:     rgb.White,
		Ambient:   0.1,
		Diffuse:   0.9,
		Specular:  0.9,
		Shininess: 200.0,
	}
}

// ColorAt returns the base surface color at worldPoint on obj, taking the
// pattern into account if there is one.
func (m *Material) ColorAt(obj pattern.Object, worldPoint tuple.T) rgb.T {
	if m.Pattern == nil {
		return m.Color
	}
	return pattern.AtObject(m.Pattern, obj, worldPoint)
}
