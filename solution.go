// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package relfind

import (
	"time"

	"github.com/relfind/relfind/instance"
)

// Outcome classifies a Solution.
//
// Grounded on spec.md §6: "outcome ∈ {SATISFIABLE, UNSATISFIABLE,
// TRIVIALLY_SATISFIABLE, TRIVIALLY_UNSATISFIABLE}".
type Outcome uint8

const (
	// Satisfiable means the SAT backend found a model.
	Satisfiable Outcome = iota
	// Unsatisfiable means the SAT backend proved no model exists.
	Unsatisfiable
	// TriviallySatisfiable means the formula reduced to a constant true
	// during Boolean translation, before any SAT variable needed
	// allocating.
	TriviallySatisfiable
	// TriviallyUnsatisfiable means the formula reduced to a constant
	// false during Boolean translation.
	TriviallyUnsatisfiable
)

func (o Outcome) String() string {
	switch o {
	case Satisfiable:
		return "SATISFIABLE"
	case Unsatisfiable:
		return "UNSATISFIABLE"
	case TriviallySatisfiable:
		return "TRIVIALLY_SATISFIABLE"
	case TriviallyUnsatisfiable:
		return "TRIVIALLY_UNSATISFIABLE"
	}
	return "?"
}

// Sat reports whether o represents a model (trivial or otherwise).
func (o Outcome) Sat() bool {
	return o == Satisfiable || o == TriviallySatisfiable
}

// Statistics reports the size of the problem Solve actually handed to
// the SAT backend, and how long each pipeline stage took.
//
// Grounded on spec.md §4.5: "primary variables, total variables,
// clauses, translation time, solve time".
type Statistics struct {
	PrimaryVariables int
	TotalVariables   int
	Clauses          int
	TranslationTime  time.Duration
	SolveTime        time.Duration
}

// Proof is an unsatisfiable core: the subset of CNF clauses the backend
// used to derive the empty clause. Populated only when the configured
// solver advertises a prover capability; nil otherwise.
type Proof struct {
	Core [][]int
}

// Solution is Solve's result.
type Solution struct {
	Outcome  Outcome
	Instance *instance.Instance
	Proof    *Proof
	Stats    Statistics
}
