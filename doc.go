// Copyright ©2012 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nmf implements non-negative matrix factorization of large,
// predominantly sparse matrices by alternating least squares, built on a
// hybrid Forward Active Set Tuning (FAST) and sequential coordinate
// descent non-negative least squares solver.
//
// A matrix A (features × samples) is factorized as A ≈ w·diag(d)·h, where
// w (features × k) and h (k × samples) are non-negative when requested,
// and d (length k) is a scaling diagonal absorbing the row/column sums
// that diagonalization introduces.
//
// The algorithms are described in:
//
// Franc, VC, Hlavac, VC, Navara, M. (2005) "Sequential Coordinate-Wise
// Algorithm for the Non-negative Least Squares Problem." Proc. Int'l
// Conf. Computer Analysis of Images and Patterns.
//
// DeBruine, ZJ, Melcher, K, Triche, TJ. (2021) "High-performance
// non-negative matrix factorization for large single-cell data." BioRXiv.
package nmf
