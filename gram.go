// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmf

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MatrixLike is satisfied by the two storage forms Project, NMF, and MSE
// accept for A: a read-only sparse view, or a dense matrix. It is the
// "tagged-variant A type" referenced in spec §9.
type MatrixLike interface {
	Dims() (r, c int)
}

// column is a uniform view of one column of A, used by the projection
// engine and the MSE evaluator regardless of A's storage form. For a dense
// column, idx is nil and val holds every row; for a sparse column, idx and
// val hold only the stored (row, value) pairs, in increasing row order.
type column struct {
	idx []int
	val []float64
}

func (c column) dense() bool { return c.idx == nil }

// nnz returns the number of entries the column contributes to a masked
// (zeros-as-missing) Gram system: for a dense column this requires a scan,
// for a sparse column it is len(val) by construction (spec §3's invariant
// that stored sparse entries are exactly the non-zeros).
func (c column) nnz() int {
	if !c.dense() {
		return len(c.val)
	}
	n := 0
	for _, v := range c.val {
		if v != 0 {
			n++
		}
	}
	return n
}

// columnOf extracts column j of A in its uniform form.
func columnOf(A MatrixLike, j int) column {
	switch a := A.(type) {
	case sparseColumnSource:
		idx, val := a.Col(j)
		return column{idx: idx, val: val}
	case denseColumnSource:
		return column{val: mat.Col(nil, j, a.(mat.Matrix))}
	default:
		panic("nmf: unsupported matrix storage form")
	}
}

// denseColumnSource and sparseColumnSource are the two concrete storage
// forms the package dispatches on. *mat.Dense implements the former
// directly (it is already a mat.Matrix); *sparse.CSC implements the latter
// via its Col method. Keeping these as unexported marker interfaces (rather
// than exporting the switch itself) is what spec §9 calls the
// "capability-based kernel interface."
type denseColumnSource interface {
	MatrixLike
	At(i, j int) float64
}

type sparseColumnSource interface {
	MatrixLike
	Col(j int) ([]int, []float64)
}

// gram computes f·fᵀ for a k×N factor matrix f, returning the k×k
// symmetric Gram matrix used as the "a" operand of NNLS throughout the
// projection engine (spec §4.2, §9's glossary entry for Gram matrix).
func gram(f *mat.Dense) *mat.SymDense {
	k, _ := f.Dims()
	g := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		ri := f.RawRowView(i)
		for j := i; j < k; j++ {
			g.SetSym(i, j, floats.Dot(ri, f.RawRowView(j)))
		}
	}
	return g
}

// projectRHS computes b = f · col, where f is a k×N factor matrix and col
// is a column of A of length N, writing the k-vector result into dst.
func projectRHS(f *mat.Dense, col column, dst []float64) {
	k, _ := f.Dims()
	if col.dense() {
		for i := 0; i < k; i++ {
			dst[i] = floats.Dot(f.RawRowView(i), col.val)
		}
		return
	}
	for i := 0; i < k; i++ {
		row := f.RawRowView(i)
		s := 0.0
		for n, r := range col.idx {
			s += row[r] * col.val[n]
		}
		dst[i] = s
	}
}

// maskedGram computes the Gram matrix and right-hand side of f restricted
// to the rows where col is non-zero, for the zero-masking path of spec
// §4.2. support holds the restricted row indices used to build it.
func maskedGram(f *mat.Dense, col column) (g *mat.SymDense, b []float64, support []int) {
	k, n := f.Dims()
	support = make([]int, 0, col.nnz())
	if col.dense() {
		for r := 0; r < n; r++ {
			if col.val[r] != 0 {
				support = append(support, r)
			}
		}
	} else {
		support = append(support, col.idx...)
	}

	g = mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			s := 0.0
			for _, r := range support {
				s += f.At(i, r) * f.At(j, r)
			}
			g.SetSym(i, j, s)
		}
	}

	b = make([]float64, k)
	var vals []float64
	if col.dense() {
		vals = make([]float64, len(support))
		for i, r := range support {
			vals[i] = col.val[r]
		}
	} else {
		vals = col.val
	}
	for i := 0; i < k; i++ {
		s := 0.0
		for n, r := range support {
			s += f.At(i, r) * vals[n]
		}
		b[i] = s
	}
	return g, b, support
}
