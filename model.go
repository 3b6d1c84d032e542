// Copyright ©2012 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmf

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Model is the result of a factorization: A ≈ W · diag(D) · H.
//
// W has rows(A) rows and k columns, H has k rows and cols(A) columns, and D
// has length k, per spec §3. The model is produced once by NMF and is never
// mutated afterward; TolHistory and Iter record the convergence trace.
type Model struct {
	W *mat.Dense
	D []float64
	H *mat.Dense

	// TolHistory holds one tolerance value per completed ALS iteration,
	// in order.
	TolHistory []float64

	// Iter is the number of completed ALS iterations.
	Iter int
}

// Tol returns the last recorded tolerance, or +Inf if no iteration has
// completed.
func (m *Model) Tol() float64 {
	if len(m.TolHistory) == 0 {
		return math.Inf(1)
	}
	return m.TolHistory[len(m.TolHistory)-1]
}

// Converged reports whether the model stopped because its tolerance fell
// below threshold, as opposed to exhausting maxit. Per spec §7, exhausting
// maxit is not an error condition; this is purely a diagnostic.
func (m *Model) Converged(threshold float64, maxit int) bool {
	return m.Iter < maxit || m.Tol() < threshold
}

// Rank returns k, the number of factors in the model.
func (m *Model) Rank() int {
	return len(m.D)
}
