// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmf

import "github.com/cockroachdb/errors"

// Sentinel errors for the input-validation category described in spec §7.
// Every one of these is returned before any output is mutated, so callers
// may safely retry with corrected arguments.
var (
	// ErrDimensionMismatch is returned when two operands of a linear
	// system, or a factor matrix and A, have incompatible shapes.
	ErrDimensionMismatch = errors.New("nmf: dimension mismatch")

	// ErrBothFactorsSupplied is returned by Project when both w and h
	// are non-nil; exactly one must be supplied.
	ErrBothFactorsSupplied = errors.New("nmf: both w and h supplied to Project")

	// ErrNeitherFactorSupplied is returned by Project when neither w nor
	// h is supplied.
	ErrNeitherFactorSupplied = errors.New("nmf: neither w nor h supplied to Project")

	// ErrL1OutOfRange is returned when an L1 penalty is outside [0, 1).
	ErrL1OutOfRange = errors.New("nmf: L1 penalty must satisfy 0 <= L1 < 1")

	// ErrMaskZerosDense is returned when mask_zeros is requested against
	// a dense A; zero-masking is only defined for sparse A.
	ErrMaskZerosDense = errors.New("nmf: mask_zeros requires a sparse A")

	// ErrMaskZerosInPlaceW is returned when mask_zeros is requested for
	// the in-place update-w-from-h direction, which spec §4.2 excludes.
	ErrMaskZerosInPlaceW = errors.New("nmf: mask_zeros is not supported when projecting w")

	// ErrInvalidRank is returned when k is not a positive integer.
	ErrInvalidRank = errors.New("nmf: rank k must be positive")
)

// dimErrorf wraps ErrDimensionMismatch with a formatted detail message,
// keeping errors.Is(err, ErrDimensionMismatch) true for callers while still
// reporting which shapes disagreed.
func dimErrorf(format string, args ...interface{}) error {
	return errors.WithDetailf(ErrDimensionMismatch, format, args...)
}
