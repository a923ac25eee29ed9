// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package relfind

import (
	"time"

	"github.com/relfind/relfind/engine/satlab"
)

// Options configures a Solve or SolveAll call.
//
// Grounded on spec.md §6's Options key list and kodkod.engine.config.Options.
type Options struct {
	// Solver selects the SAT backend. Defaults to satlab.DefaultFactory().
	Solver satlab.Factory

	// Reporter receives progress callbacks during translation and
	// solving. Defaults to NopReporter{}.
	Reporter Reporter

	// Bitwidth is the two's-complement width used to encode integer
	// expressions, in [1, 32]. Defaults to 4.
	Bitwidth int

	// SkolemDepth bounds how many enclosing non-skolemizable universal
	// declarations a skolemizable declaration may be nested under. -1
	// disables skolemization entirely. Defaults to 0 (skolemize only
	// declarations with no enclosing universal).
	SkolemDepth int

	// LogTranslation requests that the translator retain enough of the
	// original formula structure to map a CNF clause or unsat core back
	// to the AST subformula it came from. Not yet consumed by Solve;
	// reserved for a future Proof implementation.
	LogTranslation bool

	// TrackFormulas requests that Reporter.Skolemizing be given the
	// skolemized subformula along with its replacement relation, rather
	// than just the replacement. Has no effect unless Reporter is set.
	TrackFormulas bool

	// Timeout bounds a single Solve call's SAT search. Zero means no
	// bound.
	Timeout time.Duration
}

// DefaultOptions returns the Options Solve uses when none is supplied:
// the recursive DPLL backend, no progress reporting, a 4-bit integer
// encoding, and skolemization of depth-0 declarations only.
func DefaultOptions() *Options {
	return &Options{
		Solver:      satlab.DefaultFactory(),
		Reporter:    NopReporter{},
		Bitwidth:    4,
		SkolemDepth: 0,
	}
}

// OrDefaults returns o with every unset field replaced by its default,
// or DefaultOptions() if o is nil. Solve and SolveAll both call this
// before touching any field, so neither needs to special-case a caller
// passing nil or a partially-filled Options.
func (o *Options) OrDefaults() *Options {
	if o == nil {
		return DefaultOptions()
	}
	out := *o
	if out.Solver == nil {
		out.Solver = satlab.DefaultFactory()
	}
	if out.Reporter == nil {
		out.Reporter = NopReporter{}
	}
	if out.Bitwidth == 0 {
		out.Bitwidth = 4
	}
	return &out
}
