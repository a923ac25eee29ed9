// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package solveall enumerates every finite instance of a formula, one
// at a time, by repeatedly solving and then blocking the model just
// found.
//
// Grounded on original_source/src/kodkod/engine/Solver.java's private
// SolutionIterator: hasNext()/next() become Next()/Solution(), the
// Java exception-driven trivial/non-trivial branch becomes a
// *fol2sat.TrivialFormulaError check on Translate's return, and the two
// blocking strategies it implements are kept as-is (spec.md §4.5): a
// non-trivial model is blocked by
// adding the negation of its primary variable assignment as a clause to
// the live solver; a trivial model is blocked by re-deriving the
// formula with a fresh witness relation, bound exactly to the tuples
// found, disequated against the real relation.
package solveall

import (
	"errors"
	"time"

	"github.com/relfind/relfind"
	circuit "github.com/relfind/relfind/bool"
	"github.com/relfind/relfind/ast"
	"github.com/relfind/relfind/engine/fol2sat"
	"github.com/relfind/relfind/engine/satlab"
	"github.com/relfind/relfind/instance"
	"github.com/relfind/relfind/z"
)

// Solutions is a lazy, stateful enumeration of every instance of a
// formula, in the style of bufio.Scanner: call Next until it returns
// false, reading Solution after each true return.
type Solutions struct {
	opts *relfind.Options

	formula ast.Formula
	bounds  *instance.Bounds
	done    bool

	// live only while the current round is a non-trivial (SAT-backed)
	// one: set once per round on the first Next, reused by every
	// subsequent Next in that round to add a blocking clause and
	// re-solve without retranslating.
	c               *circuit.Circuit
	solver          satlab.Solver
	env             map[*ast.Relation]*circuit.Matrix
	extended        *instance.Bounds
	declared        []*ast.Relation
	translationTime time.Duration

	witnessCount int
	current      *relfind.Solution
	err          error
}

// New starts an enumeration of formula's instances under bounds.
func New(formula ast.Formula, bounds *instance.Bounds, opts *relfind.Options) *Solutions {
	return &Solutions{
		opts:    opts.OrDefaults(),
		formula: formula,
		bounds:  bounds,
	}
}

// Next advances to the next solution, returning false once the formula
// has been proven (trivially or otherwise) unsatisfiable; that final
// unsat outcome is itself a valid Solution, available after the Next
// call that returns false for the first time returns true one last
// time — exactly like Java's Iterator.hasNext()/next(), Next reports
// whether a call to Solution will succeed, not whether there is more
// work to do after it.
func (s *Solutions) Next() bool {
	if s.done {
		return false
	}
	if s.solver == nil {
		return s.translateAndSolve()
	}
	return s.resolve()
}

// Err returns the error, if any, that caused Next to return false before
// the formula was proven satisfiable or unsatisfiable: currently only a
// SAT-backend timeout. A nil Err after Next returns false means the
// enumeration ran to completion normally.
func (s *Solutions) Err() error {
	return s.err
}

// Solution returns the result of the most recent successful Next call.
func (s *Solutions) Solution() *relfind.Solution {
	return s.current
}

// Close releases the live SAT backend, if any. Safe to call after
// enumeration is exhausted or abandoned early; a no-op otherwise.
func (s *Solutions) Close() {
	if s.solver != nil {
		s.solver.Free()
		s.solver = nil
	}
}

func (s *Solutions) translateAndSolve() bool {
	declared := s.bounds.Relations()
	start := time.Now()
	c := circuit.NewCircuit()

	report := func(decl *ast.Decl, skolemRelation *ast.Relation, universals []*ast.Variable) {
		s.opts.Reporter.Skolemizing(decl, skolemRelation, universals)
	}
	skolemized, extended := fol2sat.Skolemize(c, s.formula, s.bounds, s.opts.Bitwidth, s.opts.SkolemDepth, report)

	s.opts.Reporter.TranslatingToBoolean()
	rootLit, env, err := fol2sat.Translate(c, skolemized, extended, s.opts.Bitwidth)
	s.translationTime = time.Since(start)

	if err != nil {
		var trivial *fol2sat.TrivialFormulaError
		if !errors.As(err, &trivial) {
			s.err = err
			s.done = true
			return false
		}
		return s.trivialStep(c, rootLit, trivial.Bounds, declared)
	}

	s.opts.Reporter.TranslatingToCNF()
	solver := s.opts.Solver()
	fol2sat.Definitional(c, rootLit, solver)

	s.c, s.solver, s.env, s.extended, s.declared = c, solver, env, extended, declared
	return s.resolve()
}

// trivialStep packages a trivial outcome exactly as Solve does, then,
// if satisfiable, advances s.formula/s.bounds to exclude the model just
// found so the next Next call retranslates against a strictly smaller
// solution set.
func (s *Solutions) trivialStep(c *circuit.Circuit, rootLit z.Lit, extended *instance.Bounds, declared []*ast.Relation) bool {
	stats := relfind.Statistics{TranslationTime: s.translationTime}
	if rootLit != c.T {
		s.current = &relfind.Solution{Outcome: relfind.TriviallyUnsatisfiable, Stats: stats}
		s.done = true
		return true
	}

	inst := fol2sat.InstanceFromLowerBounds(extended, declared)
	s.current = &relfind.Solution{Outcome: relfind.TriviallySatisfiable, Instance: inst, Stats: stats}

	s.witnessCount++
	nb := s.bounds.Clone()
	notModel := ast.Formula(ast.False)
	for _, r := range declared {
		witness := ast.Nary(relationWitnessName(r, s.witnessCount), r.Arity())
		nb.BoundExactly(witness, inst.Tuples(r).Clone())
		notModel = ast.Disjunction(notModel, ast.Not(r.EqualTo(witness)))
	}
	s.bounds = nb
	s.formula = ast.Conjunction(s.formula, notModel)
	return true
}

func relationWitnessName(r *ast.Relation, n int) string {
	return r.Name() + "$model" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := make([]byte, 0, 4)
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

// resolve runs (or re-runs) the live solver, blocking the previous
// model first if one was already read out this round.
func (s *Solutions) resolve() bool {
	primaries := fol2sat.PrimaryVariableCount(s.c, s.extended, s.env)
	s.opts.Reporter.SolvingCNF(primaries, s.solver.NVars(), s.solver.NClauses())

	solveStart := time.Now()
	result := s.solver.Solve()
	stats := relfind.Statistics{
		PrimaryVariables: primaries,
		TotalVariables:   s.solver.NVars(),
		Clauses:          s.solver.NClauses(),
		TranslationTime:  s.translationTime,
		SolveTime:        time.Since(solveStart),
	}

	switch result {
	case 1:
		inst := fol2sat.InstanceFromModel(s.c, s.solver, s.extended, s.declared, s.env)
		s.current = &relfind.Solution{Outcome: relfind.Satisfiable, Instance: inst, Stats: stats}
		s.blockCurrentModel()
		return true
	case -1:
		s.current = &relfind.Solution{Outcome: relfind.Unsatisfiable, Stats: stats}
		s.done = true
		s.Close()
		return true
	default:
		s.err = fol2sat.ErrSolverTimeout
		s.done = true
		s.Close()
		return false
	}
}

// blockCurrentModel adds the negation of the just-read primary variable
// assignment as a clause, so the next Solve call on the same solver
// cannot return the same model again. Only the relations the caller
// declared are blocked on, matching the "over primary variables only"
// scope spec.md §4.5 describes for non-trivial enumeration — skolem
// witness relations are internal bookkeeping, not part of the caller's
// model.
func (s *Solutions) blockCurrentModel() {
	for _, r := range s.declared {
		m := s.env[r]
		for _, idx := range m.Indices() {
			lit := m.Get(idx)
			if s.c.IsConst(lit) {
				continue
			}
			if s.solver.Value(lit) {
				s.solver.Add(lit.Not())
			} else {
				s.solver.Add(lit)
			}
		}
	}
	s.solver.Add(z.LitNull)
}
