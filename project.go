// Copyright ©2012 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmf

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gonum-extra/nmf/sparse"
)

// ProjectConfig controls Project and the per-half-update calls the ALS
// driver makes internally.
type ProjectConfig struct {
	// Nonneg enforces x >= 0 in the underlying NNLS solves.
	Nonneg bool
	// L1 is subtracted from every right-hand-side entry before solving;
	// callers should pre-scale it to max(b), per spec §4.2.
	L1 float64
	// MaskZeros treats zero entries of A as missing. Only valid for
	// sparse A and the update-h-from-w direction.
	MaskZeros bool
	// UpdateInPlace selects the in-place accumulation strategy (never
	// materializes Aᵀ) over the transposed strategy when updating w
	// from h. It has no effect when updating h from w.
	UpdateInPlace bool
	// Threads overrides the process-wide worker count (spec §5) for
	// this call only; zero defers to GetThreads().
	Threads int

	// SkipTranspose tells the update-w-from-h direction that A is
	// already known to be symmetric, so Aᵀ == A and no transposed copy
	// needs to be materialized (spec §4.3's symmetric optimization).
	// Only the ALS driver sets this; it has no effect when
	// UpdateInPlace is set, since that path never transposes anyway.
	SkipTranspose bool
}

func (cfg ProjectConfig) threads() int {
	if cfg.Threads > 0 {
		return cfg.Threads
	}
	return GetThreads()
}

// Project solves A = f·x for the factor matrix not supplied, given the
// other. Exactly one of w or h must be non-nil; which one determines the
// direction (spec §4.2, §6):
//
//   - w supplied: returns h, solving (w·wᵀ)·h[:,j] = w·A[:,j] for every
//     column j of A.
//   - h supplied: returns w, solving (h·hᵀ)·w[:,i]ᵀ = h·A[i,:]ᵀ for every
//     feature i, using either the transposed or the in-place strategy.
//
// w and h are expected in k×N orientation (k rows); Project transposes a
// caller-supplied N×k matrix automatically when the orientation is
// unambiguous, per spec §6.
func Project(A MatrixLike, w, h *mat.Dense, cfg ProjectConfig) (*mat.Dense, error) {
	if w != nil && h != nil {
		return nil, ErrBothFactorsSupplied
	}
	if w == nil && h == nil {
		return nil, ErrNeitherFactorSupplied
	}
	if cfg.L1 < 0 || cfg.L1 >= 1 {
		return nil, ErrL1OutOfRange
	}

	rows, cols := A.Dims()

	if w != nil {
		w, err := orient(w, rows, "w")
		if err != nil {
			return nil, err
		}
		if cfg.MaskZeros {
			if _, ok := A.(sparseColumnSource); !ok {
				return nil, ErrMaskZerosDense
			}
		}
		return projectFromW(A, w, cols, cfg)
	}

	h, err := orient(h, cols, "h")
	if err != nil {
		return nil, err
	}
	if cfg.MaskZeros {
		return nil, ErrMaskZerosInPlaceW
	}
	return projectFromH(A, h, rows, cfg)
}

// orient returns f if it is already k×expectedCols, or its transpose if it
// is expectedCols×k, or an error if neither shape matches.
func orient(f *mat.Dense, expectedCols int, name string) (*mat.Dense, error) {
	r, c := f.Dims()
	if c == expectedCols {
		return f, nil
	}
	if r == expectedCols && r != c {
		t := mat.NewDense(c, r, nil)
		t.Copy(f.T())
		return t, nil
	}
	return nil, dimErrorf("nmf: %s has shape %dx%d, want k x %d or %d x k", name, r, c, expectedCols, expectedCols)
}

// projectFromW updates h given w and A (spec §4.2's "update h from w").
func projectFromW(A MatrixLike, w *mat.Dense, n int, cfg ProjectConfig) (*mat.Dense, error) {
	k, _ := w.Dims()
	out := mat.NewDense(k, n, nil)

	if cfg.MaskZeros {
		src := A.(sparseColumnSource)
		runParallel(n, cfg.threads(), func(lo, hi int) {
			for j := lo; j < hi; j++ {
				idx, val := src.Col(j)
				col := column{idx: idx, val: val}
				g, b, _ := maskedGram(w, col)
				x := solveNNLSColumn(g, b, maskedNNLSConfig(cfg), nil, false)
				out.SetCol(j, x)
			}
		})
		return out, nil
	}

	g := gram(w)
	solveColumns(g, k, n, func(idx int, dst []float64) {
		col := columnOf(A, idx)
		projectRHS(w, col, dst)
	}, cfg, out)
	return out, nil
}

// projectFromH updates w given h and A (spec §4.2's "update w from h"),
// choosing between the transposed and in-place strategies.
func projectFromH(A MatrixLike, h *mat.Dense, m int, cfg ProjectConfig) (*mat.Dense, error) {
	k, n := h.Dims()
	out := mat.NewDense(k, m, nil)
	g := gram(h)

	if cfg.UpdateInPlace {
		buf := mat.NewDense(m, k, nil)
		accumulateInPlace(A, h, buf, m, n, k)
		solveColumns(g, k, m, func(idx int, dst []float64) {
			copy(dst, buf.RawRowView(idx))
		}, cfg, out)
		return out, nil
	}

	At := A
	if !cfg.SkipTranspose {
		At = transposeMatrix(A)
	}
	solveColumns(g, k, m, func(idx int, dst []float64) {
		col := columnOf(At, idx)
		projectRHS(h, col, dst)
	}, cfg, out)
	return out, nil
}

// accumulateInPlace builds the m×k right-hand-side buffer for the in-place
// update-w strategy by walking A once, column by column (so sparse A's
// native CSC layout is used directly), adding val·h[:,j] into buf's row
// for every stored entry. This phase writes to overlapping rows across
// columns and therefore runs on the calling goroutine only; spec §4.2
// calls this out as the tradeoff against the transposed path's full
// parallelism.
func accumulateInPlace(A MatrixLike, h, buf *mat.Dense, m, n, k int) {
	for j := 0; j < n; j++ {
		col := columnOf(A, j)
		hcol := make([]float64, k)
		for f := 0; f < k; f++ {
			hcol[f] = h.At(f, j)
		}
		if col.dense() {
			for r := 0; r < m; r++ {
				v := col.val[r]
				if v == 0 {
					continue
				}
				addScaledRow(buf, r, v, hcol)
			}
			continue
		}
		for n2, r := range col.idx {
			addScaledRow(buf, r, col.val[n2], hcol)
		}
	}
}

func addScaledRow(buf *mat.Dense, row int, scale float64, hcol []float64) {
	dst := buf.RawRowView(row)
	for f, v := range hcol {
		dst[f] += scale * v
	}
}

// transposeMatrix materializes Aᵀ for the transposed update-w strategy.
func transposeMatrix(A MatrixLike) MatrixLike {
	switch a := A.(type) {
	case *sparse.CSC:
		return a.T()
	case *mat.Dense:
		r, c := a.Dims()
		t := mat.NewDense(c, r, nil)
		t.Copy(a.T())
		return t
	default:
		panic("nmf: unsupported matrix storage form")
	}
}

// maskedNNLSConfig mirrors ProjectConfig's L1/Nonneg into the slower,
// per-column NNLS config used by the zero-masking path, which always
// re-derives its Gram matrix and so gains nothing from FAST's shared
// Cholesky reuse.
func maskedNNLSConfig(cfg ProjectConfig) NNLSConfig {
	return NNLSConfig{CDMaxIt: 100, CDTol: 1e-8, FastNNLS: true, L1: cfg.L1, Nonneg: cfg.Nonneg}
}

// solveColumns dispatches to the rank-1, rank-2, or general NNLS solver for
// count independent k×k systems sharing the Gram matrix g, writing results
// into the columns of out. rhsAt(idx, dst) must fill dst (length k) with
// the right-hand side for system idx.
func solveColumns(g *mat.SymDense, k, count int, rhsAt func(idx int, dst []float64), cfg ProjectConfig, out *mat.Dense) {
	switch k {
	case 1:
		solveRank1(g, count, rhsAt, cfg, out)
	case 2:
		solveRank2(g, count, rhsAt, cfg, out)
	default:
		solveGeneral(g, k, count, rhsAt, cfg, out)
	}
}

// solveRank1 implements spec §4.2's rank-1 specialization. It always runs
// serially: the overhead of spinning up a worker pool dwarfs the single
// scalar division this does per column.
func solveRank1(g *mat.SymDense, count int, rhsAt func(int, []float64), cfg ProjectConfig, out *mat.Dense) {
	a := g.At(0, 0)
	b := make([]float64, 1)
	for idx := 0; idx < count; idx++ {
		rhsAt(idx, b)
		x := (b[0] - cfg.L1) / a
		if cfg.Nonneg && x < 0 {
			x = 0
		}
		out.Set(0, idx, x)
	}
}

// solveRank2 implements spec §4.2's closed-form rank-2 specialization,
// also always serial.
func solveRank2(g *mat.SymDense, count int, rhsAt func(int, []float64), cfg ProjectConfig, out *mat.Dense) {
	a11, a12, a22 := g.At(0, 0), g.At(0, 1), g.At(1, 1)
	det := a11*a22 - a12*a12
	b := make([]float64, 2)
	for idx := 0; idx < count; idx++ {
		rhsAt(idx, b)
		b0, b1 := b[0]-cfg.L1, b[1]-cfg.L1
		x1 := (a22*b0 - a12*b1) / det
		x2 := (a11*b1 - a12*b0) / det
		if cfg.Nonneg {
			switch {
			case x1 < 0:
				x1 = 0
				x2 = b1 / a22
				if x2 < 0 {
					x2 = 0
				}
			case x2 < 0:
				x2 = 0
				x1 = b0 / a11
				if x1 < 0 {
					x1 = 0
				}
			}
		}
		out.Set(0, idx, x1)
		out.Set(1, idx, x2)
	}
}

// solveGeneral implements spec §4.2's rank-3+ path: a shared FAST
// Cholesky factorization of g, dispatched across a bounded worker pool,
// with thread-local right-hand-side buffers.
func solveGeneral(g *mat.SymDense, k, count int, rhsAt func(int, []float64), cfg ProjectConfig, out *mat.Dense) {
	var chol mat.Cholesky
	haveChol := chol.Factorize(g)
	nnlsCfg := NNLSConfig{CDMaxIt: 100, CDTol: 1e-8, FastNNLS: true, L1: cfg.L1, Nonneg: cfg.Nonneg}

	runParallel(count, cfg.threads(), func(lo, hi int) {
		buf := make([]float64, k)
		for idx := lo; idx < hi; idx++ {
			rhsAt(idx, buf)
			x := solveNNLSColumn(g, buf, nnlsCfg, &chol, haveChol)
			out.SetCol(idx, x)
		}
	})
}
