package contact

import (
	"math"
	"testing"

	"row-major/phong/geometry"
	"row-major/phong/ray"
	"row-major/phong/transform"
	"row-major/phong/vmath/approx"
	"row-major/phong/vmath/tuple"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approxOpt = cmpopts.EquateApprox(0, approx.Epsilon)

func surfaceOf(s geometry.Shape) Surface {
	return SurfaceFunc(func(p tuple.T) tuple.T {
		return geometry.NormalAt(s, p)
	})
}

func TestTagAndExtend(t *testing.T) {
	var s Set
	s.Extend(Tag(3, []float64{1, 2}))
	s.Extend(Tag(4, nil))
	s.Extend(Tag(5, []float64{-1}))

	want := Set{{1, 3}, {2, 3}, {-1, 5}}
	if diff := cmp.Diff(s, want); diff != "" {
		t.Errorf("Bad set; diff (-got +want)\n%s", diff)
	}
}

func TestSortIsStable(t *testing.T) {
	s := Set{{5, 0}, {2, 1}, {7, 2}, {2, 3}, {-3, 4}}
	s.Sort()
	want := Set{{-3, 4}, {2, 1}, {2, 3}, {5, 0}, {7, 2}}
	if diff := cmp.Diff(s, want); diff != "" {
		t.Errorf("Bad sort; diff (-got +want)\n%s", diff)
	}
}

func TestHit(t *testing.T) {
	testCases := []struct {
		desc   string
		set    Set
		want   Intersection
		wantOK bool
	}{
		{"all positive", Set{{1, 0}, {2, 1}}, Intersection{1, 0}, true},
		{"some negative", Set{{-1, 0}, {1, 1}}, Intersection{1, 1}, true},
		{"all negative", Set{{-2, 0}, {-1, 1}}, Intersection{}, false},
		{"zero is not a hit", Set{{0, 0}, {-1, 1}}, Intersection{}, false},
		{"unsorted", Set{{5, 0}, {7, 1}, {-3, 2}, {2, 3}}, Intersection{2, 3}, true},
		{"tie keeps first", Set{{-1, 0}, {2, 1}, {2, 2}}, Intersection{2, 1}, true},
		{"empty", nil, Intersection{}, false},
		{"NaN is not a hit", Set{{math.NaN(), 0}, {3, 1}}, Intersection{3, 1}, true},
		{"only NaN", Set{{math.NaN(), 0}}, Intersection{}, false},
	}

	for _, tc := range testCases {
		got, ok := tc.set.Hit()
		if ok != tc.wantOK {
			t.Errorf("%s: got ok=%v, want %v", tc.desc, ok, tc.wantOK)
			continue
		}
		if diff := cmp.Diff(got, tc.want); diff != "" {
			t.Errorf("%s: diff (-got +want)\n%s", tc.desc, diff)
		}
	}
}

func TestPrepareOutside(t *testing.T) {
	s := geometry.NewSphere()
	r := ray.New(tuple.Point(0, 0, -5), tuple.Vector(0, 0, 1))

	got := Prepare(Intersection{T: 4, Object: 7}, r, surfaceOf(s))
	want := Computation{
		T:         4,
		Object:    7,
		Point:     tuple.Point(0, 0, -1),
		Eye:       tuple.Vector(0, 0, -1),
		Normal:    tuple.Vector(0, 0, -1),
		Inside:    false,
		OverPoint: tuple.Point(0, 0, -1-approx.Epsilon),
	}
	if diff := cmp.Diff(got, want, approxOpt); diff != "" {
		t.Errorf("Bad computation; diff (-got +want)\n%s", diff)
	}
}

func TestPrepareInside(t *testing.T) {
	s := geometry.NewSphere()
	r := ray.New(tuple.Point(0, 0, 0), tuple.Vector(0, 0, 1))

	got := Prepare(Intersection{T: 1, Object: 0}, r, surfaceOf(s))
	if !got.Inside {
		t.Errorf("Expected hit from inside the sphere")
	}
	if diff := cmp.Diff(got.Point, tuple.Point(0, 0, 1), approxOpt); diff != "" {
		t.Errorf("Bad point; diff (-got +want)\n%s", diff)
	}
	if diff := cmp.Diff(got.Eye, tuple.Vector(0, 0, -1), approxOpt); diff != "" {
		t.Errorf("Bad eye; diff (-got +want)\n%s", diff)
	}
	// Flipped to face the eye.
	if diff := cmp.Diff(got.Normal, tuple.Vector(0, 0, -1), approxOpt); diff != "" {
		t.Errorf("Bad normal; diff (-got +want)\n%s", diff)
	}
}

func TestOverPoint(t *testing.T) {
	s := geometry.NewSphere()
	if err := s.SetTransform(transform.Translate(0, 0, 1)); err != nil {
		t.Fatalf("SetTransform: %v", err)
	}
	r := ray.New(tuple.Point(0, 0, -5), tuple.Vector(0, 0, 1))

	c := Prepare(Intersection{T: 5}, r, surfaceOf(s))
	if !(c.OverPoint[2] < -approx.Epsilon/2) {
		t.Errorf("OverPoint z = %v, want < %v", c.OverPoint[2], -approx.Epsilon/2)
	}
	if !(c.Point[2] > c.OverPoint[2]) {
		t.Errorf("Point z = %v should be above OverPoint z = %v", c.Point[2], c.OverPoint[2])
	}
}
