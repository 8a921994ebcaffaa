// Package matrix implements small square matrices (2x2 through 4x4) stored
// row-major.
package matrix

import (
	"fmt"

	"row-major/phong/vmath/approx"
	"row-major/phong/vmath/tuple"

	"golang.org/x/xerrors"
)

var (
	// ErrNotInvertible is returned when an inverse is requested for a matrix
	// whose determinant is within approx.Epsilon of zero.
	ErrNotInvertible = xerrors.New("matrix is not invertible")

	ErrBadSize = xerrors.New("matrix must have 4, 9, or 16 elements")
)

// T is a Size x Size matrix.  Element (r, c) lives at Elts[r*Size+c]; slots
// past Size*Size are always zero.
type T struct {
	Size int
	Elts [16]float64
}

// New builds a square matrix from its elements in row-major order.
func New(elts ...float64) (T, error) {
	var size int
	switch len(elts) {
	case 4:
		size = 2
	case 9:
		size = 3
	case 16:
		size = 4
	default:
		return T{}, fmt.Errorf("while building matrix from %d elements: %w", len(elts), ErrBadSize)
	}

	m := T{Size: size}
	copy(m.Elts[:], elts)
	return m, nil
}

// MustNew is New for literal matrices that are known to be well-formed.
func MustNew(elts ...float64) T {
	m, err := New(elts...)
	if err != nil {
		panic(err)
	}
	return m
}

func Identity(size int) T {
	m := T{Size: size}
	for i := 0; i < size; i++ {
		m.Elts[i*size+i] = 1
	}
	return m
}

func (m T) At(r, c int) float64 {
	return m.Elts[r*m.Size+c]
}

func (m *T) set(r, c int, v float64) {
	m.Elts[r*m.Size+c] = v
}

func MulMM(a, b T) T {
	if a.Size != b.Size {
		panic(fmt.Sprintf("matrix: size mismatch %d vs %d", a.Size, b.Size))
	}
	n := a.Size

	m := T{Size: n}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			var acc float64
			for k := 0; k < n; k++ {
				acc += a.Elts[r*n+k] * b.Elts[k*n+c]
			}
			m.Elts[r*n+c] = acc
		}
	}
	return m
}

// MulMT multiplies a 4x4 matrix by a tuple treated as a column vector.
func MulMT(a T, b tuple.T) tuple.T {
	if a.Size != 4 {
		panic(fmt.Sprintf("matrix: cannot multiply %dx%d matrix by tuple", a.Size, a.Size))
	}
	return tuple.T{
		a.Elts[0]*b[0] + a.Elts[1]*b[1] + a.Elts[2]*b[2] + a.Elts[3]*b[3],
		a.Elts[4]*b[0] + a.Elts[5]*b[1] + a.Elts[6]*b[2] + a.Elts[7]*b[3],
		a.Elts[8]*b[0] + a.Elts[9]*b[1] + a.Elts[10]*b[2] + a.Elts[11]*b[3],
		a.Elts[12]*b[0] + a.Elts[13]*b[1] + a.Elts[14]*b[2] + a.Elts[15]*b[3],
	}
}

func Transpose(a T) T {
	m := T{Size: a.Size}
	for r := 0; r < a.Size; r++ {
		for c := 0; c < a.Size; c++ {
			m.set(c, r, a.At(r, c))
		}
	}
	return m
}

// Submatrix returns a with row and col removed.
func Submatrix(a T, row, col int) T {
	m := T{Size: a.Size - 1}
	dr := 0
	for r := 0; r < a.Size; r++ {
		if r == row {
			continue
		}
		dc := 0
		for c := 0; c < a.Size; c++ {
			if c == col {
				continue
			}
			m.set(dr, dc, a.At(r, c))
			dc++
		}
		dr++
	}
	return m
}

func Minor(a T, row, col int) float64 {
	return Determinant(Submatrix(a, row, col))
}

func Cofactor(a T, row, col int) float64 {
	minor := Minor(a, row, col)
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

// Determinant expands along the first row.
func Determinant(a T) float64 {
	switch a.Size {
	case 1:
		return a.Elts[0]
	case 2:
		return a.Elts[0]*a.Elts[3] - a.Elts[1]*a.Elts[2]
	}

	var det float64
	for c := 0; c < a.Size; c++ {
		det += a.At(0, c) * Cofactor(a, 0, c)
	}
	return det
}

func IsInvertible(a T) bool {
	return !approx.Zero(Determinant(a))
}

func Inverse(a T) (T, error) {
	det := Determinant(a)
	if approx.Zero(det) {
		return T{}, ErrNotInvertible
	}

	m := T{Size: a.Size}
	for r := 0; r < a.Size; r++ {
		for c := 0; c < a.Size; c++ {
			// Writing to (c, r) transposes the cofactor matrix.
			m.set(c, r, Cofactor(a, r, c)/det)
		}
	}
	return m, nil
}

func Equal(a, b T) bool {
	if a.Size != b.Size {
		return false
	}
	for i := 0; i < a.Size*a.Size; i++ {
		if !approx.Equal(a.Elts[i], b.Elts[i]) {
			return false
		}
	}
	return true
}
