// Package light implements point lights and the Phong reflection model.
package light

import (
	"math"

	"row-major/phong/material"
	"row-major/phong/pattern"
	"row-major/phong/rgb"
	"row-major/phong/vmath/tuple"
)

// PointLight is a light source with no size.
type PointLight struct {
	Position  tuple.T
	Intensity rgb.T
}

func NewPointLight(position tuple.T, intensity rgb.T) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// Lighting computes the color of point on obj as seen along eye, given the
// surface normal there.  eye and normal must be unit vectors.  When inShadow
// is set only the ambient term contributes.
func Lighting(m *material.Material, obj pattern.Object, l *PointLight, point, eye, normal tuple.T, inShadow bool) rgb.T {
	effective := rgb.MulCC(m.ColorAt(obj, point), l.Intensity)
	ambient := rgb.MulCS(effective, m.Ambient)
	if inShadow {
		return ambient
	}

	lightv := tuple.Normalize(tuple.SubTT(l.Position, point))
	lightDotNormal := tuple.IProd(lightv, normal)
	if lightDotNormal < 0 {
		// The light is on the other side of the surface.
		return ambient
	}

	diffuse := rgb.MulCS(effective, m.Diffuse*lightDotNormal)

	specular := rgb.Black
	reflectv := tuple.Reflect(tuple.Neg(lightv), normal)
	if reflectDotEye := tuple.IProd(reflectv, eye); reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = rgb.MulCS(l.Intensity, m.Specular*factor)
	}

	return rgb.AddCC(rgb.AddCC(ambient, diffuse), specular)
}
