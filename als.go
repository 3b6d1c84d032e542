// Copyright ©2012 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmf

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gonum-extra/nmf/sparse"
)

// NMFConfig controls the alternating-least-squares driver.
type NMFConfig struct {
	// Tol is the stopping tolerance: 1 - mean correlation between w at
	// consecutive iterations.
	Tol float64
	// MaxIter caps the number of ALS iterations.
	MaxIter int
	// Verbose logs one structured event per iteration to stderr.
	Verbose bool
	// Nonneg enforces non-negativity of w, h, and d.
	Nonneg bool
	// L1W and L1H are the L1 penalties applied to w's and h's updates
	// respectively; each must satisfy 0 <= L1 < 1.
	L1W, L1H float64
	// Seed, if non-nil, makes initialization (and hence the whole run)
	// reproducible.
	Seed *int64
	// Diag enables the scaling-diagonal normalization of §4.5. This
	// should essentially always stay true; see spec §4.3/§4.5.
	Diag bool
	// MaskZeros treats zero entries of A as missing. Requires sparse A.
	MaskZeros bool
	// UpdateInPlace selects the in-place (no Aᵀ materialization)
	// strategy for the update-w-from-h half of each iteration.
	UpdateInPlace bool
	// Threads overrides the process-wide worker count for this run
	// only; zero defers to GetThreads().
	Threads int
}

// DefaultNMFConfig returns the defaults named in spec §6: tol=1e-4,
// maxit=100, verbose=true, nonneg=true, L1=(0,0), diag=true,
// mask_zeros=false.
func DefaultNMFConfig() NMFConfig {
	return NMFConfig{Tol: 1e-4, MaxIter: 100, Verbose: true, Nonneg: true, Diag: true}
}

// NMF factorizes A ≈ w·diag(d)·h by alternating least squares (spec §4.3).
// k is the rank. w is randomly initialized; h is computed by the first
// projection. The returned Model is frozen: NMF never mutates it again
// after returning.
func NMF(A MatrixLike, k int, cfg NMFConfig) (*Model, error) {
	if k <= 0 {
		return nil, ErrInvalidRank
	}
	if cfg.L1W < 0 || cfg.L1W >= 1 || cfg.L1H < 0 || cfg.L1H >= 1 {
		return nil, ErrL1OutOfRange
	}
	if cfg.MaskZeros {
		if _, ok := A.(sparseColumnSource); !ok {
			return nil, ErrMaskZerosDense
		}
	}

	m, _ := A.Dims()

	rng := newSource(cfg.Seed)
	w := mat.NewDense(k, m, nil)
	randomUniform(rng, w.RawMatrix().Data)

	d := make([]float64, k)
	for i := range d {
		d[i] = 1
	}

	symmetric := isSymmetric(A)
	log := iterationLogger(cfg.Verbose)

	var h *mat.Dense
	var tolHistory []float64
	prevW := mat.DenseCopyOf(w)
	iter := 0

	for iter < cfg.MaxIter {
		var err error
		h, err = Project(A, w, nil, ProjectConfig{
			Nonneg: cfg.Nonneg, L1: cfg.L1H, MaskZeros: cfg.MaskZeros, Threads: cfg.Threads,
		})
		if err != nil {
			return nil, err
		}
		if cfg.Diag {
			normalizeRows(h, d)
		}

		w, err = Project(A, nil, h, ProjectConfig{
			Nonneg: cfg.Nonneg, L1: cfg.L1W, UpdateInPlace: cfg.UpdateInPlace,
			SkipTranspose: symmetric, Threads: cfg.Threads,
		})
		if err != nil {
			return nil, err
		}
		if cfg.Diag {
			normalizeRows(w, d)
		}

		iter++
		tol := tolerance(w, prevW)
		tolHistory = append(tolHistory, tol)
		log.Info().Int("iter", iter).Float64("tol", tol).Msg("nmf iteration")

		prevW = mat.DenseCopyOf(w)
		if tol < cfg.Tol {
			break
		}
	}

	finalW := mat.NewDense(m, k, nil)
	finalW.Copy(w.T())

	return &Model{W: finalW, D: d, H: h, TolHistory: tolHistory, Iter: iter}, nil
}

// normalizeRows implements spec §4.5: each row i of f (a k×N factor
// matrix) is divided by its own sum, and d[i] is set to that sum, so the
// scale the row carried moves into d. A row that sums to zero is left
// untouched, as is its d[i], to avoid a 0/0 divide.
func normalizeRows(f *mat.Dense, d []float64) {
	k, _ := f.Dims()
	for i := 0; i < k; i++ {
		row := f.RawRowView(i)
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		if sum == 0 {
			continue
		}
		d[i] = sum
		for j := range row {
			row[j] /= sum
		}
	}
}

// isSymmetric implements spec §4.3/§9's cheap symmetry check: an explicit
// caller hint on *sparse.CSC, or a square-dimensions-plus-first-column
// probe otherwise.
func isSymmetric(A MatrixLike) bool {
	switch a := A.(type) {
	case *sparse.CSC:
		return a.Symmetric()
	case *mat.Dense:
		r, c := a.Dims()
		if r != c {
			return false
		}
		for i := 0; i < r; i++ {
			if a.At(0, i) != a.At(i, 0) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
