// Copyright ©2012 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmf

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// meanCorrelation computes 1 - tol, that is, the mean Pearson
// correlation between corresponding factor rows of cur and prev, both
// k×N. Factors are matched by position rather than by a Hungarian-style
// assignment — spec §4.3/§9 names position-retention as the reference
// behavior, at the cost of a spurious tolerance spike if two factors swap
// rank between iterations.
func meanCorrelation(cur, prev *mat.Dense) float64 {
	k, _ := cur.Dims()
	sum := 0.0
	for i := 0; i < k; i++ {
		c := stat.Correlation(cur.RawRowView(i), prev.RawRowView(i), nil)
		if math.IsNaN(c) {
			// A factor with zero variance (e.g. collapsed to all-zero)
			// has an undefined correlation; treat it as unchanged
			// rather than letting a NaN poison the mean.
			c = 1
		}
		sum += c
	}
	return sum / float64(k)
}

// tolerance returns spec §4.3 step 5's stopping statistic: 1 minus the
// mean correlation between cur and prev.
func tolerance(cur, prev *mat.Dense) float64 {
	return 1 - meanCorrelation(cur, prev)
}
