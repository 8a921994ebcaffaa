package light

import (
	"math"
	"testing"

	"row-major/phong/material"
	"row-major/phong/pattern"
	"row-major/phong/rgb"
	"row-major/phong/transform"
	"row-major/phong/vmath/approx"
	"row-major/phong/vmath/matrix"
	"row-major/phong/vmath/tuple"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type identityObject struct{}

func (identityObject) Inverse() matrix.T {
	return transform.Identity()
}

func TestLighting(t *testing.T) {
	h := math.Sqrt2 / 2
	testCases := []struct {
		desc     string
		eye      tuple.T
		light    tuple.T
		inShadow bool
		want     rgb.T
	}{
		{
			desc:  "eye between light and surface",
			eye:   tuple.Vector(0, 0, -1),
			light: tuple.Point(0, 0, -10),
			want:  rgb.T{1.9, 1.9, 1.9},
		},
		{
			desc:  "eye offset 45 degrees",
			eye:   tuple.Vector(0, h, -h),
			light: tuple.Point(0, 0, -10),
			want:  rgb.T{1.0, 1.0, 1.0},
		},
		{
			desc:  "light offset 45 degrees",
			eye:   tuple.Vector(0, 0, -1),
			light: tuple.Point(0, 10, -10),
			want:  rgb.T{0.7364, 0.7364, 0.7364},
		},
		{
			desc:  "eye in the path of the reflection",
			eye:   tuple.Vector(0, -h, -h),
			light: tuple.Point(0, 10, -10),
			want:  rgb.T{1.6364, 1.6364, 1.6364},
		},
		{
			desc:  "light behind the surface",
			eye:   tuple.Vector(0, 0, -1),
			light: tuple.Point(0, 0, 10),
			want:  rgb.T{0.1, 0.1, 0.1},
		},
		{
			desc:     "surface in shadow",
			eye:      tuple.Vector(0, 0, -1),
			light:    tuple.Point(0, 0, -10),
			inShadow: true,
			want:     rgb.T{0.1, 0.1, 0.1},
		},
	}

	for _, tc := range testCases {
		m := material.Default()
		l := NewPointLight(tc.light, rgb.White)
		got := Lighting(&m, identityObject{}, &l, tuple.Point(0, 0, 0), tc.eye, tuple.Vector(0, 0, -1), tc.inShadow)
		if diff := cmp.Diff(got, tc.want, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
			t.Errorf("%s: diff (-got +want)\n%s", tc.desc, diff)
		}
	}
}

func TestLightingWithPattern(t *testing.T) {
	m := material.Material{
		Pattern: pattern.NewStripe(rgb.White, rgb.Black),
		Ambient: 1,
	}
	l := NewPointLight(tuple.Point(0, 0, -10), rgb.White)
	eye := tuple.Vector(0, 0, -1)
	normal := tuple.Vector(0, 0, -1)

	c1 := Lighting(&m, identityObject{}, &l, tuple.Point(0.9, 0, 0), eye, normal, false)
	c2 := Lighting(&m, identityObject{}, &l, tuple.Point(1.1, 0, 0), eye, normal, false)

	if diff := cmp.Diff(c1, rgb.White, cmpopts.EquateApprox(0, approx.Epsilon)); diff != "" {
		t.Errorf("Bad color on first stripe; diff (-got +want)\n%s", diff)
	}
	if diff := cmp.Diff(c2, rgb.Black, cmpopts.EquateApprox(0, approx.Epsilon)); diff != "" {
		t.Errorf("Bad color on second stripe; diff (-got +want)\n%s", diff)
	}
}

func TestLightingTintedLight(t *testing.T) {
	m := material.Default()
	m.Color = rgb.T{1, 0.5, 0}
	l := NewPointLight(tuple.Point(0, 0, -10), rgb.T{0.5, 1, 1})

	got := Lighting(&m, identityObject{}, &l, tuple.Point(0, 0, 0), tuple.Vector(0, 0, -1), tuple.Vector(0, 0, -1), true)
	want := rgb.T{0.05, 0.05, 0}
	if diff := cmp.Diff(got, want, cmpopts.EquateApprox(0, approx.Epsilon)); diff != "" {
		t.Errorf("Bad ambient under tinted light; diff (-got +want)\n%s", diff)
	}
}
