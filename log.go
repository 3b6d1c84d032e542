// Copyright ©2013 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmf

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// logger is the package-wide structured logger for verbose ALS reporting.
// It writes to stderr, matching spec §6's "verbose prints ... to standard
// error"; when verbose is disabled iterationLogger returns a fresh logger
// that writes to io.Discard instead.
var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}).With().Timestamp().Logger()

// iterationLogger returns a logger that writes iteration progress to
// stderr when verbose is true, or discards it otherwise.
func iterationLogger(verbose bool) zerolog.Logger {
	if verbose {
		return logger
	}
	return zerolog.New(io.Discard)
}
