// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fol2sat

import (
	"errors"
	"fmt"

	"github.com/relfind/relfind/ast"
	"github.com/relfind/relfind/instance"
)

// ErrSolverTimeout is returned when the underlying SAT solver exhausts
// its configured time budget before reaching a verdict.
var ErrSolverTimeout = errors.New("fol2sat: solver timeout")

// UnboundLeafError reports a reference to a Variable with no binding in
// the translator's or skolemizer's current environment: every Variable
// must be introduced by an enclosing Decl before it is used.
//
// Grounded on Skolemizer.java's UnboundLeafException.
type UnboundLeafError struct {
	Variable *ast.Variable
}

func (e *UnboundLeafError) Error() string {
	return fmt.Sprintf("fol2sat: unbound variable %q", e.Variable.Name())
}

// TrivialFormulaError reports that a formula simplified to a constant
// before any SAT variable needed to be allocated: Value holds the
// constant the formula reduced to, and Bounds the (possibly narrowed)
// bounds the simplification was computed against. A solver driving
// Translate/Solve should treat this the same as an ordinary SAT/UNSAT
// result rather than as a failure.
type TrivialFormulaError struct {
	Value  bool
	Bounds *instance.Bounds
}

func (e *TrivialFormulaError) Error() string {
	return fmt.Sprintf("fol2sat: formula is trivially %t", e.Value)
}
