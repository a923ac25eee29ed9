// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package satlab provides the minimal SAT solver interface the
// translation pipeline programs against, a Factory for selecting a
// concrete backend, and a default in-process backend.
//
// Grounded on github.com/irifrance/gini's inter package (the z.LitNull-
// terminated Adder idiom, the Model/Solvable/MaxVar split) and on
// kodkod.engine.satlab.SATSolver/SATFactory, which this package's
// interface is shaped to stand in for directly (spec §6 calls these out
// as a collaborator to be re-specified only down to "their minimal
// interface").
package satlab

import (
	"time"

	"github.com/relfind/relfind/z"
)

// Adder accepts clauses as z.LitNull-terminated sequences of literals:
// each call to Add either appends a literal to the clause under
// construction, or, when m is z.LitNull, ends it. Add must not be
// called concurrently with any other method.
type Adder interface {
	Add(m z.Lit)
}

// MaxVar reports the largest variable added to a solver so far.
type MaxVar interface {
	MaxVar() z.Var
}

// Model gives access to a satisfying assignment after a successful
// Solve.
type Model interface {
	Value(m z.Lit) bool
}

// Solvable runs the decision procedure. Solve returns 1 if satisfiable,
// -1 if unsatisfiable, 0 if it did not finish (e.g. on timeout or
// cancellation).
type Solvable interface {
	Solve() int
}

// Solver is the minimal SAT backend interface the translation pipeline
// requires: clause input, a satisfying model on success, and basic
// accounting. A backend need not be incremental; engine.solveall only
// relies on re-Solve being able to see newly Add-ed blocking clauses,
// which every backend here supports by construction.
type Solver interface {
	Adder
	MaxVar
	Model
	Solvable

	// AddVariables reserves n additional variables, so that variable
	// numbers up to MaxVar()+n are valid even before they appear in a
	// clause. Bool2CNFTranslator calls this once, with the Boolean
	// circuit's total variable count, before emitting any clauses.
	AddVariables(n int)

	// SetTimeout bounds the duration of a subsequent Solve call; zero
	// means no bound. A Solve that times out returns 0.
	SetTimeout(d time.Duration)

	// NVars and NClauses report the size of the instance, used for
	// engine.Statistics.
	NVars() int
	NClauses() int

	// Free releases backend resources. A freed solver must not be used
	// again.
	Free()
}

// Incremental is implemented by backends that also accept per-Solve
// assumptions. engine/solveall does not require it: its
// blocking-clause enumeration loop only uses the Solver methods.
type Incremental interface {
	Solver
	// Assume adds unit assumptions effective for only the next Solve
	// call.
	Assume(lits ...z.Lit)
}
