// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package ast

import "fmt"

// Variable is a placeholder bound by a declaration, a quantifier or a
// comprehension. Like Relation, identity is the pointer: two calls to
// UnaryVar with the same name are distinct variables.
//
// Grounded on kodkod.ast.Variable.
type Variable struct {
	name  string
	arity int
}

// UnaryVar returns a new variable of arity 1 named name.
func UnaryVar(name string) *Variable {
	return &Variable{name: name, arity: 1}
}

// NaryVar returns a new variable of the given arity named name. Panics
// if arity < 1.
func NaryVar(name string, arity int) *Variable {
	if arity < 1 {
		panic("ast: variable arity must be >= 1")
	}
	return &Variable{name: name, arity: arity}
}

// Name returns v's name.
func (v *Variable) Name() string { return v.name }

// Arity returns v's arity.
func (v *Variable) Arity() int { return v.arity }

func (v *Variable) Children() []Node { return nil }
func (v *Variable) expressionNode()  {}

func (v *Variable) String() string {
	return fmt.Sprintf("%s", v.name)
}

// OneOf declares v bound to exactly one element of expr: "v: one expr".
func (v *Variable) OneOf(expr Expression) *Decl { return NewDecl(v, One, expr) }

// LoneOf declares v bound to at most one element of expr: "v: lone expr".
func (v *Variable) LoneOf(expr Expression) *Decl { return NewDecl(v, Lone, expr) }

// SomeOf declares v bound to at least one element of expr: "v: some expr".
func (v *Variable) SomeOf(expr Expression) *Decl { return NewDecl(v, SomeMult, expr) }

// SetOf declares v bound to an arbitrary subset of expr: "v: set expr".
func (v *Variable) SetOf(expr Expression) *Decl { return NewDecl(v, SetMult, expr) }
