// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmf

import (
	"runtime"
	"sync"
)

// threadsMu guards threads, the process-wide worker count described in
// spec §5. Changing it between calls is safe; changing it during a call is
// explicitly undefined, per spec §5. Each Project or MSE call reads this
// value once; NMF reads it again for every half-update it projects.
var (
	threadsMu sync.Mutex
	threads   int // 0 means "backend default", i.e. all cores.
)

// SetThreads sets the number of worker goroutines used by the projection
// engine and the MSE evaluator. A value of 0 restores the default of
// runtime.GOMAXPROCS(0). Negative values are clamped to 0.
func SetThreads(n int) {
	if n < 0 {
		n = 0
	}
	threadsMu.Lock()
	threads = n
	threadsMu.Unlock()
}

// GetThreads returns the currently configured worker count, resolving the
// default (0) to the active GOMAXPROCS value.
func GetThreads() int {
	threadsMu.Lock()
	n := threads
	threadsMu.Unlock()
	if n == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}
