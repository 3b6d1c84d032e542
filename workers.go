// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmf

import "sync"

// runParallel partitions [0, n) into at most threads contiguous chunks and
// runs fn(lo, hi) for each chunk on its own goroutine, joining before
// returning. It is the shared fan-out primitive for the projection engine
// and the MSE evaluator (spec §5): each chunk is a disjoint column stripe,
// so workers never write to the same destination element.
//
// threads <= 1 runs fn once inline with no goroutines spawned, matching
// the rank-1/rank-2 "serial is faster" guidance in spec §4.2 and avoiding
// pool overhead for small n.
func runParallel(n, threads int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	if threads <= 1 || n == 1 {
		fn(0, n)
		return
	}
	if threads > n {
		threads = n
	}

	chunk := (n + threads - 1) / threads
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
