// Copyright ©2012 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmf

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// tiny guards the denominator of the coordinate-descent tolerance term
// against division by (near) zero, per spec §4.1.
const tiny = 1e-15

// NNLSConfig controls the solver in NNLS, Project, and NMF.
type NNLSConfig struct {
	// CDMaxIt is the maximum number of coordinate-descent sweeps per
	// column. CDMaxIt == 0 skips coordinate descent entirely, relying
	// solely on the FAST phase.
	CDMaxIt int
	// CDTol stops coordinate descent early once (tol / m) < CDTol.
	CDTol float64
	// FastNNLS enables the FAST active-set initialization phase. a must
	// be symmetric positive semi-definite for this to be well-defined;
	// the caller is responsible for that (spec §4.1).
	FastNNLS bool
	// L1 is subtracted from every entry of b before solving.
	L1 float64
	// Nonneg enforces x >= 0. When false, both the FAST active-set loop
	// and the coordinate-descent clamp are skipped, and the solver
	// reduces to plain (possibly negative) least squares.
	Nonneg bool
}

// DefaultNNLSConfig returns the defaults named in spec §6:
// cd_maxit=100, cd_tol=1e-8, fast_nnls=false, L1=0, with Nonneg set to
// true. A zero-value NNLSConfig has Nonneg false, so callers that build
// the struct by hand and want the non-negative solver must set it.
func DefaultNNLSConfig() NNLSConfig {
	return NNLSConfig{CDMaxIt: 100, CDTol: 1e-8, Nonneg: true}
}

// NNLS solves a·x = b column-by-column for x, subject to x >= 0 when
// cfg.Nonneg is set. a must be square and share its dimension with the
// rows of b; violating that returns ErrDimensionMismatch and leaves b
// untouched. a is not verified to be positive semi-definite — combining a
// non-SPD a with cfg.FastNNLS is undefined behavior per spec §4.1, but
// never panics.
func NNLS(a *mat.SymDense, b *mat.Dense, cfg NNLSConfig) (*mat.Dense, error) {
	m := a.SymmetricDim()
	br, bc := b.Dims()
	if br != m {
		return nil, dimErrorf("nnls: a is %d x %d but b has %d rows", m, m, br)
	}

	x := mat.NewDense(m, bc, nil)
	col := make([]float64, m)
	var chol mat.Cholesky
	haveChol := false
	if cfg.FastNNLS {
		haveChol = chol.Factorize(a)
	}

	for j := 0; j < bc; j++ {
		mat.Col(col, j, b)
		xcol := solveNNLSColumn(a, col, cfg, &chol, haveChol)
		x.SetCol(j, xcol)
	}
	return x, nil
}

// solveNNLSColumn solves a·x = b for a single right-hand side, implementing
// the FAST-phase-then-coordinate-descent algorithm of spec §4.1.
func solveNNLSColumn(a *mat.SymDense, b []float64, cfg NNLSConfig, chol *mat.Cholesky, haveChol bool) []float64 {
	m := len(b)
	bb := append([]float64(nil), b...)
	if cfg.L1 != 0 {
		for i := range bb {
			bb[i] -= cfg.L1
		}
	}

	x := make([]float64, m)
	if cfg.FastNNLS {
		x = fastNNLS(a, bb, chol, haveChol, cfg.Nonneg)
		// Residual right-hand side for coordinate descent: b -= a*x.
		for i := 0; i < m; i++ {
			s := 0.0
			for k := 0; k < m; k++ {
				s += a.At(i, k) * x[k]
			}
			bb[i] -= s
		}
	}

	if cfg.CDMaxIt > 0 {
		coordinateDescent(a, bb, x, cfg.CDMaxIt, cfg.CDTol, cfg.Nonneg)
	}
	return x
}

// fastNNLS implements the FAST phase: an unconstrained Cholesky solve,
// followed by repeated feasible-set reduction while any entry is negative.
// The feasible set F shrinks monotonically, so this terminates within m
// iterations (spec §4.1). When nonneg is false the active-set reduction is
// skipped and the unconstrained solution is returned directly.
func fastNNLS(a *mat.SymDense, b []float64, chol *mat.Cholesky, haveChol bool, nonneg bool) []float64 {
	m := len(b)
	x := unconstrainedSolve(a, b, chol, haveChol, m)
	if !nonneg {
		return x
	}

	for hasNegative(x) {
		feasible := feasibleSet(x)
		if len(feasible) == 0 {
			for i := range x {
				x[i] = 0
			}
			return x
		}

		sub := mat.NewSymDense(len(feasible), nil)
		bsub := make([]float64, len(feasible))
		for ii, fi := range feasible {
			bsub[ii] = b[fi]
			for jj := ii; jj < len(feasible); jj++ {
				sub.SetSym(ii, jj, a.At(fi, feasible[jj]))
			}
		}

		var subChol mat.Cholesky
		xsub := unconstrainedSolve(sub, bsub, &subChol, subChol.Factorize(sub), len(feasible))

		for i := range x {
			x[i] = 0
		}
		for ii, fi := range feasible {
			x[fi] = xsub[ii]
		}
	}
	return x
}

// unconstrainedSolve solves a·x = b without non-negativity constraints,
// preferring the shared Cholesky factor when available and falling back to
// a general solve if a is not positive definite — a non-SPD a under
// cfg.FastNNLS is caller-contract undefined behavior (spec §4.1), so this
// never panics, it just may return a poor answer.
func unconstrainedSolve(a mat.Symmetric, b []float64, chol *mat.Cholesky, haveChol bool, m int) []float64 {
	bv := mat.NewVecDense(m, append([]float64(nil), b...))
	xv := mat.NewVecDense(m, nil)
	if haveChol {
		if err := chol.SolveVecTo(xv, bv); err == nil {
			return append([]float64(nil), xv.RawVector().Data...)
		}
	}
	dense := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			dense.Set(i, j, a.At(i, j))
		}
	}
	var xd mat.Dense
	if err := xd.Solve(dense, mat.NewDense(m, 1, append([]float64(nil), b...))); err != nil {
		// Degenerate system: return the zero vector rather than panic.
		return make([]float64, m)
	}
	out := make([]float64, m)
	for i := 0; i < m; i++ {
		out[i] = xd.At(i, 0)
	}
	return out
}

func hasNegative(x []float64) bool {
	for _, v := range x {
		if v < 0 {
			return true
		}
	}
	return false
}

func feasibleSet(x []float64) []int {
	idx := make([]int, 0, len(x))
	for i, v := range x {
		if v > 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// coordinateDescent runs spec §4.1's sequential coordinate-descent sweeps
// over x in place, mutating the residual b as it goes.
func coordinateDescent(a *mat.SymDense, b, x []float64, maxit int, cdTol float64, nonneg bool) {
	m := len(x)
	for it := 0; it < maxit; it++ {
		tol := 0.0
		for i := 0; i < m; i++ {
			diff := b[i] / a.At(i, i)
			if nonneg && -diff > x[i] {
				if x[i] != 0 {
					xi := x[i]
					for r := 0; r < m; r++ {
						b[r] += a.At(r, i) * xi
					}
					x[i] = 0
					tol = 1
				}
			} else if diff != 0 {
				x[i] += diff
				for r := 0; r < m; r++ {
					b[r] -= a.At(r, i) * diff
				}
				tol += math.Abs(diff / (x[i] + tiny))
			}
		}
		if tol/float64(m) < cdTol {
			break
		}
	}
}
