// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sparse provides a read-only compressed-column view of a sparse
// matrix, the storage form the factorization package expects for the
// matrix A being decomposed.
package sparse

import "fmt"

// CSC is a read-only compressed-column sparse matrix. Within each column,
// row indices must be strictly increasing; callers that build a CSC by hand
// are responsible for that invariant.
type CSC struct {
	rows, cols int

	// Indptr has length cols+1 and is monotone non-decreasing.
	Indptr []int
	// Indices has length Indptr[cols] and holds row indices.
	Indices []int
	// Data has length Indptr[cols] and holds the corresponding values.
	Data []float64

	// symmetric is an explicit hint set by NewCSC's caller via
	// MarkSymmetric; it avoids probing A on every factorization.
	symmetric bool
}

// NewCSC returns a CSC matrix with the given dimensions and backing slices.
// It panics if the slices are not mutually consistent.
func NewCSC(rows, cols int, indptr, indices []int, data []float64) *CSC {
	if len(indptr) != cols+1 {
		panic(fmt.Sprintf("sparse: indptr has length %d, want %d", len(indptr), cols+1))
	}
	if len(indices) != len(data) {
		panic("sparse: indices and data have different lengths")
	}
	if indptr[cols] != len(data) {
		panic("sparse: indptr[cols] does not match nnz")
	}
	return &CSC{rows: rows, cols: cols, Indptr: indptr, Indices: indices, Data: data}
}

// Dims returns the row and column dimensions of the matrix.
func (m *CSC) Dims() (r, c int) { return m.rows, m.cols }

// NNZ returns the total number of stored entries.
func (m *CSC) NNZ() int { return len(m.Data) }

// ColNNZ returns the number of stored entries in column j.
func (m *CSC) ColNNZ(j int) int { return m.Indptr[j+1] - m.Indptr[j] }

// Col returns the row indices and values stored in column j. The returned
// slices alias the matrix's backing storage and must not be mutated.
func (m *CSC) Col(j int) (rows []int, vals []float64) {
	lo, hi := m.Indptr[j], m.Indptr[j+1]
	return m.Indices[lo:hi], m.Data[lo:hi]
}

// At returns the value at (i, j), scanning the column's stored entries.
// It is provided for testing and diagnostics; the factorization and
// projection code always iterates columns instead.
func (m *CSC) At(i, j int) float64 {
	rows, vals := m.Col(j)
	for k, r := range rows {
		if r == i {
			return vals[k]
		}
		if r > i {
			break
		}
	}
	return 0
}

// MarkSymmetric records an explicit symmetry hint supplied by the caller,
// letting the ALS driver skip the first-column transposition probe
// described in spec §4.3/§9.
func (m *CSC) MarkSymmetric(symmetric bool) { m.symmetric = symmetric }

// Symmetric reports whether the matrix is known or believed to be
// symmetric: either the caller set the hint via MarkSymmetric, or the
// dimensions are square and a cheap first-column/first-row probe finds no
// discrepancy.
func (m *CSC) Symmetric() bool {
	if m.symmetric {
		return true
	}
	if m.rows != m.cols {
		return false
	}
	for j := 0; j < m.cols; j++ {
		if m.At(0, j) != m.At(j, 0) {
			return false
		}
	}
	return true
}

// T returns the transpose of m as a new CSC matrix, built by a counting
// pass over the column pointers followed by a scatter pass — the standard
// CSC/CSR transposition used when an explicit transposed view is needed by
// the projection engine's transposed update path.
func (m *CSC) T() *CSC {
	rows, cols := m.rows, m.cols
	nnz := len(m.Data)

	indptrT := make([]int, rows+1)
	for _, r := range m.Indices {
		indptrT[r+1]++
	}
	for i := 0; i < rows; i++ {
		indptrT[i+1] += indptrT[i]
	}

	indicesT := make([]int, nnz)
	dataT := make([]float64, nnz)
	next := append([]int(nil), indptrT[:rows]...)

	for j := 0; j < cols; j++ {
		lo, hi := m.Indptr[j], m.Indptr[j+1]
		for k := lo; k < hi; k++ {
			r := m.Indices[k]
			dst := next[r]
			indicesT[dst] = j
			dataT[dst] = m.Data[k]
			next[r]++
		}
	}

	return &CSC{rows: cols, cols: rows, Indptr: indptrT, Indices: indicesT, Data: dataT, symmetric: m.symmetric}
}

// Dense copies m into a row-major dense slice, useful only for tests and
// small diagnostic matrices — factorization never calls this on A itself.
func (m *CSC) Dense() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, m.cols)
	}
	for j := 0; j < m.cols; j++ {
		rows, vals := m.Col(j)
		for k, r := range rows {
			out[r][j] = vals[k]
		}
	}
	return out
}
