// Package similarity holds the all-pairs cosine similarity matrix of a catalog.
package similarity

import (
	"errors"
	"fmt"
	"math"

	"movierec/internal/tfidf"
)

var (
	ErrNotSquare    = errors.New("similarity: matrix is not square")
	ErrNotSymmetric = errors.New("similarity: matrix is not symmetric")
)

// Matrix is an immutable N x N score table stored row-major. Entry (i, j)
// always equals entry (j, i).
type Matrix struct {
	n    int
	data []float64
}

// Cosine returns the cosine of the angle between a and b, or 0 when either is
// the zero vector.
func Cosine(a, b tfidf.Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return tfidf.Dot(a, b) / (na * nb)
}

// Build computes cosine similarity for every pair of vectors. Only the upper
// triangle is computed and mirrored. A zero vector scores 0 against
// everything, itself included.
func Build(vectors []tfidf.Vector) *Matrix {
	n := len(vectors)
	m := &Matrix{n: n, data: make([]float64, n*n)}

	norms := make([]float64, n)
	for i, v := range vectors {
		norms[i] = v.Norm()
	}

	for i := 0; i < n; i++ {
		if norms[i] == 0 {
			continue
		}
		m.data[i*n+i] = 1
		for j := i + 1; j < n; j++ {
			if norms[j] == 0 {
				continue
			}
			s := tfidf.Dot(vectors[i], vectors[j]) / (norms[i] * norms[j])
			// rounding can push parallel vectors a hair past 1
			s = math.Min(1, math.Max(-1, s))
			m.data[i*n+j] = s
			m.data[j*n+i] = s
		}
	}
	return m
}

// FromDense builds a Matrix from explicit rows.
func FromDense(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	m := &Matrix{n: n, data: make([]float64, n*n)}
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrNotSquare, i, len(row), n)
		}
		copy(m.data[i*n:], row)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m.data[i*n+j] != m.data[j*n+i] {
				return nil, fmt.Errorf("%w: (%d,%d)=%v, (%d,%d)=%v",
					ErrNotSymmetric, i, j, m.data[i*n+j], j, i, m.data[j*n+i])
			}
		}
	}
	return m, nil
}

// Size is N.
func (m *Matrix) Size() int { return m.n }

// At returns entry (i, j).
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.n+j] }

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	out := make([]float64, m.n)
	copy(out, m.data[i*m.n:(i+1)*m.n])
	return out
}
