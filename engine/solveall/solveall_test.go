// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package solveall

import (
	"fmt"
	"testing"

	"github.com/relfind/relfind"
	"github.com/relfind/relfind/ast"
	"github.com/relfind/relfind/instance"
)

// Grounded on original_source/src/kodkod/engine/SolverTest.java's allSolutions cases:
// a relation bound between none and a two-atom universe has exactly three
// non-empty satisfying extents under r.Some(), each of which must be
// distinct, and the final solution Next yields must report exhaustion.
func TestSolutionsEnumeratesDistinctModels(t *testing.T) {
	universe := instance.NewUniverse("a", "b")
	bounds := instance.NewBounds(universe)
	r := ast.Unary("r")
	bounds.Bound(r, universe.Factory().NoneOf(1), universe.Factory().AllOf(1))

	sols := New(r.Some(), bounds, nil)
	seen := map[string]bool{}
	count := 0
	for sols.Next() {
		sol := sols.Solution()
		if sol.Outcome == relfind.Unsatisfiable {
			break
		}
		if sol.Outcome != relfind.Satisfiable {
			t.Fatalf("outcome = %s, want SATISFIABLE", sol.Outcome)
		}
		key := fmt.Sprint(sol.Instance.Tuples(r).Indices())
		if seen[key] {
			t.Fatalf("model %s repeated", key)
		}
		seen[key] = true
		count++
		if count > 10 {
			t.Fatalf("did not terminate after %d distinct models", count)
		}
	}
	if sols.Solution().Outcome != relfind.Unsatisfiable {
		t.Fatalf("final outcome = %s, want UNSATISFIABLE", sols.Solution().Outcome)
	}
	// {a}, {b}, {a,b}: every non-empty subset of a two-atom universe.
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}

// Grounded on Solver.java's trivialSolution path: r is bound exactly, so
// every Next call is answered out of the witness-blocking loop rather than
// the SAT backend, until the single trivial instance is exhausted.
func TestSolutionsEnumeratesTrivial(t *testing.T) {
	universe := instance.NewUniverse("a")
	bounds := instance.NewBounds(universe)
	r := ast.Unary("r")
	bounds.BoundExactly(r, universe.Factory().AllOf(1))

	sols := New(r.Some(), bounds, nil)
	if !sols.Next() {
		t.Fatalf("Next = false on first call")
	}
	if sols.Solution().Outcome != relfind.TriviallySatisfiable {
		t.Fatalf("outcome = %s, want TRIVIALLY_SATISFIABLE", sols.Solution().Outcome)
	}
	if !sols.Next() {
		t.Fatalf("Next = false reporting the subsequent exhaustion")
	}
	if sols.Solution().Outcome != relfind.TriviallyUnsatisfiable {
		t.Fatalf("outcome = %s, want TRIVIALLY_UNSATISFIABLE", sols.Solution().Outcome)
	}
	if sols.Next() {
		t.Fatalf("Next = true after exhaustion")
	}
}
