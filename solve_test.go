// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package relfind

import (
	"testing"

	"github.com/relfind/relfind/ast"
	"github.com/relfind/relfind/instance"
)

// Grounded on go-air-gini's gini_test.go TestGiniTrivUnsat: the simplest
// possible unsat check, restated over a relational formula instead of a
// raw clause. r.Some() and r.No() are complements in the circuit, so
// their conjunction folds to FALSE and the outcome is trivial.
func TestSolveUnsat(t *testing.T) {
	universe := instance.NewUniverse("a", "b")
	bounds := instance.NewBounds(universe)
	r := ast.Unary("r")
	bounds.Bound(r, universe.Factory().NoneOf(1), universe.Factory().AllOf(1))

	formula := ast.Conjunction(r.Some(), r.No())
	sol, err := Solve(formula, bounds, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Outcome != TriviallyUnsatisfiable {
		t.Fatalf("outcome = %s, want TRIVIALLY_UNSATISFIABLE", sol.Outcome)
	}
	if sol.Instance != nil {
		t.Fatalf("unsat solution carries an instance")
	}
}

func TestSolveSat(t *testing.T) {
	universe := instance.NewUniverse("a", "b")
	bounds := instance.NewBounds(universe)
	r := ast.Unary("r")
	bounds.Bound(r, universe.Factory().NoneOf(1), universe.Factory().AllOf(1))

	sol, err := Solve(r.Some(), bounds, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Outcome != Satisfiable {
		t.Fatalf("outcome = %s, want SATISFIABLE", sol.Outcome)
	}
	if sol.Instance == nil || sol.Instance.Tuples(r).IsEmpty() {
		t.Fatalf("satisfying instance assigns no tuple to r")
	}
}

// TestSolveTrivial exercises the short-circuit path: r is bound exactly,
// so r.Some() folds to a circuit constant before any SAT variable is
// allocated, and the Instance is read straight from the lower bound.
func TestSolveTrivial(t *testing.T) {
	universe := instance.NewUniverse("a", "b")
	bounds := instance.NewBounds(universe)
	r := ast.Unary("r")
	aOnly := universe.Factory().Setof(1, []int{0})
	bounds.BoundExactly(r, aOnly)

	sol, err := Solve(r.Some(), bounds, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Outcome != TriviallySatisfiable {
		t.Fatalf("outcome = %s, want TRIVIALLY_SATISFIABLE", sol.Outcome)
	}
	if sol.Stats.SolveTime != 0 {
		t.Fatalf("trivial solution reports nonzero solve time")
	}
	got := sol.Instance.Tuples(r)
	if got == nil || !got.ContainsAll(aOnly) || !aOnly.ContainsAll(got) {
		t.Fatalf("trivial instance for r = %v, want exactly the bound atom", got)
	}
}
