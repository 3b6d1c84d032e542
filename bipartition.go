// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmf

// Bipartition runs rank-2 NMF on A and splits samples by the sign of the
// difference between their two factor loadings, the classical spectral
// bipartitioning construction (Kuang & Park, 2013) that divisive
// clustering builds on. This package implements only that narrow,
// interface-level surface — recursive divisive clustering, modularity
// statistics, and cluster centroids remain out of scope, per spec §1 and
// §4.9.
func Bipartition(A MatrixLike, cfg NMFConfig) (split []bool, model *Model, err error) {
	model, err = NMF(A, 2, cfg)
	if err != nil {
		return nil, nil, err
	}

	_, n := model.H.Dims()
	split = make([]bool, n)
	for j := 0; j < n; j++ {
		split[j] = model.H.At(0, j) >= model.H.At(1, j)
	}
	return split, model, nil
}
