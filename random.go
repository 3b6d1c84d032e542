// Copyright ©2012 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmf

import (
	"math/rand"
	"time"
)

// newSource returns a deterministic math/rand source when seed is
// non-nil, or a time-seeded source otherwise. Reproducibility (spec §3,
// §4.3) depends on every draw from the returned source happening in a
// fixed, single-threaded order during model initialization.
func newSource(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// randomUniform fills dst with uniform(0, 1) draws in row-major order.
func randomUniform(rng *rand.Rand, dst []float64) {
	for i := range dst {
		dst[i] = rng.Float64()
	}
}
