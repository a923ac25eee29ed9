// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package relfind finds finite instances of relational logic formulas: given
// a first-order formula over relational variables and a Bounds fixing, for
// each relation the formula mentions, a lower bound (tuples that must be in
// every solution) and an upper bound (tuples that may be), Solve either
// produces a satisfying Instance or reports that none exists.
//
// The pipeline (package engine/fol2sat) runs sharing analysis,
// skolemization of bounded-depth existentials, a Boolean-circuit
// translation of the relational formula, and a definitional CNF encoding,
// handing the result to a package engine/satlab SAT backend. Solve wires
// that pipeline together into the single entry point most callers need;
// engine/solveall builds on it to enumerate every solution via blocking
// clauses.
package relfind
