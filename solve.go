// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package relfind

import (
	"errors"
	"time"

	circuit "github.com/relfind/relfind/bool"
	"github.com/relfind/relfind/ast"
	"github.com/relfind/relfind/engine/fol2sat"
	"github.com/relfind/relfind/instance"
)

// Solve finds a finite instance of formula consistent with bounds, or
// reports that none exists.
//
// The pipeline, grounded on spec.md §4.5's "sharing analysis ->
// skolemization -> FOL->Bool -> Bool->CNF -> SAT": formula is
// skolemized against a clone of bounds extended with any fresh witness
// relations the skolemizer introduces, the result is translated to a
// Boolean circuit whose primary variables correspond to undetermined
// relation tuples, the circuit is translated to CNF and handed to
// opts.Solver. If the circuit's constant folding reduces the root
// formula to a constant (for instance because every relation in bounds
// is pinned down by its lower and upper bound, or because the formula
// contradicts itself), translation reports it as a
// *fol2sat.TrivialFormulaError; Solve turns that into a trivial outcome
// without invoking the SAT backend at all.
//
// Sharing analysis (package engine/fol2sat's Annotate) runs inside
// Translate and Skolemize's shared traversal machinery rather than as a
// separate call here: every AST visit already consults the annotation
// cache keyed by node identity, so the DAG is only ever walked once no
// matter how many ancestors share a subformula.
func Solve(formula ast.Formula, bounds *instance.Bounds, opts *Options) (*Solution, error) {
	o := opts.OrDefaults()
	declared := bounds.Relations()

	translationStart := time.Now()
	c := circuit.NewCircuit()

	report := func(decl *ast.Decl, skolemRelation *ast.Relation, universals []*ast.Variable) {
		o.Reporter.Skolemizing(decl, skolemRelation, universals)
	}
	skolemized, extended := fol2sat.Skolemize(c, formula, bounds, o.Bitwidth, o.SkolemDepth, report)

	o.Reporter.TranslatingToBoolean()
	rootLit, env, err := fol2sat.Translate(c, skolemized, extended, o.Bitwidth)
	if err != nil {
		var trivial *fol2sat.TrivialFormulaError
		if !errors.As(err, &trivial) {
			return nil, err
		}
		stats := Statistics{TranslationTime: time.Since(translationStart)}
		if trivial.Value {
			return &Solution{
				Outcome:  TriviallySatisfiable,
				Instance: fol2sat.InstanceFromLowerBounds(trivial.Bounds, declared),
				Stats:    stats,
			}, nil
		}
		return &Solution{Outcome: TriviallyUnsatisfiable, Stats: stats}, nil
	}

	o.Reporter.TranslatingToCNF()
	solver := o.Solver()
	defer solver.Free()
	fol2sat.Definitional(c, rootLit, solver)
	solver.SetTimeout(o.Timeout)

	primaries := fol2sat.PrimaryVariableCount(c, extended, env)
	o.Reporter.SolvingCNF(primaries, solver.NVars(), solver.NClauses())

	solveStart := time.Now()
	result := solver.Solve()

	stats := Statistics{
		PrimaryVariables: primaries,
		TotalVariables:   solver.NVars(),
		Clauses:          solver.NClauses(),
		TranslationTime:  solveStart.Sub(translationStart),
		SolveTime:        time.Since(solveStart),
	}

	switch result {
	case 1:
		return &Solution{
			Outcome:  Satisfiable,
			Instance: fol2sat.InstanceFromModel(c, solver, extended, declared, env),
			Stats:    stats,
		}, nil
	case -1:
		return &Solution{Outcome: Unsatisfiable, Stats: stats}, nil
	default:
		return &Solution{Stats: stats}, fol2sat.ErrSolverTimeout
	}
}
