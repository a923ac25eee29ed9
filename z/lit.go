// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package z provides the dense integer encoding of variables and literals
// shared by the Boolean circuit factory and the CNF/SAT layer.
package z

import "fmt"

// Lit is a literal: a variable together with a sign, packed into a single
// machine word so that negation is a bit flip and comparisons are cheap.
// The low bit holds the sign (0 = positive, 1 = negative) and the
// remaining bits hold the variable.
type Lit uint32

// LitNull is a literal which is never a member of any variable's pair of
// literals; it is used as a sentinel (e.g. "no input" in a circuit node).
const LitNull = Lit(0)

// Var returns the variable underlying m.
func (m Lit) Var() Var {
	return Var(m >> 1)
}

// IsPos returns true if m is a positive literal.
func (m Lit) IsPos() bool {
	return m&1 == 0
}

// Not returns the negation of m.
func (m Lit) Not() Lit {
	return m ^ 1
}

// Sign returns 1 if m is positive and -1 if m is negative.
func (m Lit) Sign() int {
	if m.IsPos() {
		return 1
	}
	return -1
}

// Dimacs returns the signed-integer Dimacs encoding of m: the variable
// number, negated if m is a negative literal.
func (m Lit) Dimacs() int {
	d := int(m.Var())
	if !m.IsPos() {
		d = -d
	}
	return d
}

// Dimacs2Lit converts a nonzero signed Dimacs integer into the
// corresponding Lit.
func Dimacs2Lit(d int) Lit {
	if d < 0 {
		return Var(-d).Neg()
	}
	return Var(d).Pos()
}

func (m Lit) String() string {
	if m.IsPos() {
		return fmt.Sprintf("+%d", uint32(m.Var()))
	}
	return fmt.Sprintf("-%d", uint32(m.Var()))
}
