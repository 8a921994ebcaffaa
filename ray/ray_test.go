package ray

import (
	"math"
	"testing"

	"row-major/phong/transform"
	"row-major/phong/vmath/tuple"

	"github.com/google/go-cmp/cmp"
)

func TestPosition(t *testing.T) {
	r := New(tuple.Point(2, 3, 4), tuple.Vector(1, 0, 0))
	testCases := []struct {
		t    float64
		want tuple.T
	}{
		{0, tuple.Point(2, 3, 4)},
		{1, tuple.Point(3, 3, 4)},
		{-1, tuple.Point(1, 3, 4)},
		{2.5, tuple.Point(4.5, 3, 4)},
	}
	for _, tc := range testCases {
		if diff := cmp.Diff(r.Position(tc.t), tc.want); diff != "" {
			t.Errorf("Position(%v): diff (-got +want)\n%s", tc.t, diff)
		}
	}
}

func TestTransform(t *testing.T) {
	r := New(tuple.Point(1, 2, 3), tuple.Vector(0, 1, 0))

	got := r.Transform(transform.Translate(3, 4, 5))
	want := New(tuple.Point(4, 6, 8), tuple.Vector(0, 1, 0))
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Bad translated ray; diff (-got +want)\n%s", diff)
	}

	got = r.Transform(transform.Scale(2, 3, 4))
	want = New(tuple.Point(2, 6, 12), tuple.Vector(0, 3, 0))
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Bad scaled ray; diff (-got +want)\n%s", diff)
	}

	// The original is untouched.
	if diff := cmp.Diff(r, New(tuple.Point(1, 2, 3), tuple.Vector(0, 1, 0))); diff != "" {
		t.Errorf("Transform mutated its receiver; diff (-got +want)\n%s", diff)
	}
}

func TestSpan(t *testing.T) {
	if !EmptySpan().IsEmpty() {
		t.Errorf("EmptySpan() is not empty")
	}

	got := Intersect(Span{-1, 4}, Span{2, math.Inf(1)})
	if diff := cmp.Diff(got, Span{2, 4}); diff != "" {
		t.Errorf("Bad overlap; diff (-got +want)\n%s", diff)
	}
	if got.IsEmpty() {
		t.Errorf("Overlapping spans produced an empty intersection")
	}

	if !Intersect(Span{0, 1}, Span{2, 3}).IsEmpty() {
		t.Errorf("Disjoint spans produced a non-empty intersection")
	}
}
