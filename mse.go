// Copyright ©2012 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmf

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// MSE computes the mean squared reconstruction error of A against
// w·diag(d)·h, per spec §4.4. w and h are expected in k×N orientation
// (the internal convention used throughout this package); an N×k factor
// is transposed automatically when the orientation is unambiguous, as in
// Project. d may be nil, which is treated as a vector of ones.
//
// When maskZeros is true, zero entries of A are excluded from both the sum
// and the divisor, per spec §4.4; this requires sparse A.
func MSE(A MatrixLike, w, h *mat.Dense, d []float64, maskZeros bool) (float64, error) {
	m, n := A.Dims()
	var err error
	if w, err = orient(w, m, "w"); err != nil {
		return 0, err
	}
	if h, err = orient(h, n, "h"); err != nil {
		return 0, err
	}
	wk, _ := w.Dims()
	hk, _ := h.Dims()
	if hk != wk {
		return 0, dimErrorf("mse: w and h have different rank (%d vs %d)", wk, hk)
	}
	if maskZeros {
		if _, ok := A.(sparseColumnSource); !ok {
			return 0, ErrMaskZerosDense
		}
	}
	if d == nil {
		d = make([]float64, wk)
		for i := range d {
			d[i] = 1
		}
	} else if len(d) != wk {
		return 0, dimErrorf("mse: d has length %d, want %d", len(d), wk)
	}

	k := wk
	threads := GetThreads()

	var mu sync.Mutex
	var sum float64
	var count float64

	runParallel(n, threads, func(lo, hi int) {
		localSum, localCount := 0.0, 0.0
		hcol := make([]float64, k)
		for j := lo; j < hi; j++ {
			for f := 0; f < k; f++ {
				hcol[f] = h.At(f, j) * d[f]
			}
			col := columnOf(A, j)
			if maskZeros {
				for n2, r := range col.idx {
					yhat := reconstruct(w, hcol, r, k)
					diff := col.val[n2] - yhat
					localSum += diff * diff
					localCount++
				}
				continue
			}
			if col.dense() {
				for r := 0; r < m; r++ {
					yhat := reconstruct(w, hcol, r, k)
					diff := col.val[r] - yhat
					localSum += diff * diff
				}
				localCount += float64(m)
				continue
			}
			// Sparse, unmasked: every row contributes, most are implicit
			// zeros in A.
			seen := make(map[int]bool, len(col.idx))
			for n2, r := range col.idx {
				yhat := reconstruct(w, hcol, r, k)
				diff := col.val[n2] - yhat
				localSum += diff * diff
				seen[r] = true
			}
			for r := 0; r < m; r++ {
				if seen[r] {
					continue
				}
				yhat := reconstruct(w, hcol, r, k)
				localSum += yhat * yhat
			}
			localCount += float64(m)
		}
		mu.Lock()
		sum += localSum
		count += localCount
		mu.Unlock()
	})

	if count == 0 {
		return 0, nil
	}
	return sum / count, nil
}

// reconstruct computes (w·diag(d)·h)[r, j] given h's j-th column already
// scaled by d (hcol), i.e. sum_f w[f, r] * hcol[f].
func reconstruct(w *mat.Dense, hcol []float64, r, k int) float64 {
	s := 0.0
	for f := 0; f < k; f++ {
		s += w.At(f, r) * hcol[f]
	}
	return s
}
