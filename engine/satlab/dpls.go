// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package satlab

import (
	"time"

	"github.com/relfind/relfind/z"
)

// S is the default, in-process Solver backend: a recursive DPLL search
// with unit propagation and chronological backtracking over a plain
// clause list.
//
// Reconstructed in the shape of github.com/irifrance/gini's internal/xo.S
// (exported NewS/Add/Solve/Value surface) rather than adapted line for
// line: the retrieved copy of that file references several sibling types
// (Cdb, Trail, Guess, Deriver, Luby, Ctl) that were not present anywhere
// in the examples, so its body is not reusable as-is. What is kept is
// the public shape; conflict-driven clause learning, watched literals
// and restarts are not implemented, so S should be treated as a
// correctness-focused reference backend, not a competitive one — large
// instances should use a production SAT backend through the same Solver
// interface.
type S struct {
	clauses   [][]z.Lit
	assign    []int8 // 0 unassigned, 1 true, -1 false, indexed by var
	trail     []z.Lit
	nvars     int
	timeout   time.Duration
	deadline  time.Time
	curClause []z.Lit // accumulates literals between Add calls
}

// NewS creates an empty default-backend solver.
func NewS() *S {
	return &S{
		assign: make([]int8, 1),
	}
}

// AddVariables reserves n additional variables.
func (s *S) AddVariables(n int) {
	s.grow(s.nvars + n)
}

func (s *S) grow(v int) {
	for s.nvars < v {
		s.nvars++
		s.assign = append(s.assign, 0)
	}
}

// MaxVar returns the largest variable added so far.
func (s *S) MaxVar() z.Var {
	return z.Var(s.nvars)
}

// Add appends m to the clause under construction, or, when m is
// z.LitNull, terminates and stores it.
func (s *S) Add(m z.Lit) {
	if m == z.LitNull {
		cl := make([]z.Lit, len(s.curClause))
		copy(cl, s.curClause)
		s.addClause(cl)
		s.curClause = s.curClause[:0]
		return
	}
	s.grow(int(m.Var()))
	s.curClause = append(s.curClause, m)
}

func (s *S) addClause(cl []z.Lit) {
	s.clauses = append(s.clauses, cl)
}

// NVars returns the number of variables.
func (s *S) NVars() int { return s.nvars }

// NClauses returns the number of clauses added.
func (s *S) NClauses() int { return len(s.clauses) }

// SetTimeout bounds a subsequent Solve call.
func (s *S) SetTimeout(d time.Duration) { s.timeout = d }

// Value returns m's value under the last satisfying assignment found by
// Solve.
func (s *S) Value(m z.Lit) bool {
	v := s.assign[m.Var()]
	if m.IsPos() {
		return v == 1
	}
	return v == -1
}

// Free releases s's resources.
func (s *S) Free() {
	s.clauses = nil
	s.assign = nil
	s.trail = nil
}

// Solve runs DPLL search and returns 1 (SAT), -1 (UNSAT) or 0 (timed
// out).
func (s *S) Solve() int {
	if s.timeout > 0 {
		s.deadline = time.Now().Add(s.timeout)
	} else {
		s.deadline = time.Time{}
	}
	for i := range s.assign {
		s.assign[i] = 0
	}
	s.trail = s.trail[:0]
	ok, complete := s.search()
	if !complete {
		return 0
	}
	if ok {
		return 1
	}
	return -1
}

func (s *S) timedOut() bool {
	return !s.deadline.IsZero() && time.Now().After(s.deadline)
}

// search performs a recursive DPLL decision, returning (satisfiable,
// completed-without-timeout).
func (s *S) search() (bool, bool) {
	if s.timedOut() {
		return false, false
	}
	mark := len(s.trail)
	if !s.propagate() {
		s.undoTo(mark)
		return false, true
	}
	lit, ok := s.pickUnassigned()
	if !ok {
		return true, true // every variable assigned, no conflict
	}
	for _, try := range [2]z.Lit{lit, lit.Not()} {
		if s.assign[try.Var()] != 0 {
			continue
		}
		s.push(try)
		if sat, complete := s.search(); !complete {
			return false, false
		} else if sat {
			return true, true
		}
		s.undoTo(mark)
	}
	return false, true
}

func (s *S) pickUnassigned() (z.Lit, bool) {
	for v := 1; v <= s.nvars; v++ {
		if s.assign[v] == 0 {
			return z.Var(v).Pos(), true
		}
	}
	return z.LitNull, false
}

func (s *S) push(m z.Lit) {
	if m.IsPos() {
		s.assign[m.Var()] = 1
	} else {
		s.assign[m.Var()] = -1
	}
	s.trail = append(s.trail, m)
}

func (s *S) undoTo(mark int) {
	for i := len(s.trail) - 1; i >= mark; i-- {
		s.assign[s.trail[i].Var()] = 0
	}
	s.trail = s.trail[:mark]
}

// propagate applies unit propagation until fixpoint or conflict,
// appending implied literals to the trail. Returns false on conflict.
func (s *S) propagate() bool {
	changed := true
	for changed {
		changed = false
		for _, cl := range s.clauses {
			status, unit := s.clauseStatus(cl)
			switch status {
			case clauseFalse:
				return false
			case clauseUnit:
				s.push(unit)
				changed = true
			}
		}
	}
	return true
}

type clauseStatusKind int

const (
	clauseSat clauseStatusKind = iota
	clauseUnit
	clauseFalse
	clauseUndetermined
)

func (s *S) clauseStatus(cl []z.Lit) (clauseStatusKind, z.Lit) {
	unassignedCount := 0
	var lastUnassigned z.Lit
	for _, m := range cl {
		v := s.assign[m.Var()]
		if v == 0 {
			unassignedCount++
			lastUnassigned = m
			continue
		}
		lit1 := v == 1
		if (m.IsPos() && lit1) || (!m.IsPos() && !lit1) {
			return clauseSat, z.LitNull
		}
	}
	if unassignedCount == 0 {
		return clauseFalse, z.LitNull
	}
	if unassignedCount == 1 {
		return clauseUnit, lastUnassigned
	}
	return clauseUndetermined, z.LitNull
}
