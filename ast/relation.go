// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package ast

import "fmt"

// relKind distinguishes the built-in constant relations from ordinary,
// user-declared ones.
type relKind uint8

const (
	relOrdinary relKind = iota
	relUniv
	relNone
	relIden
	relInts
)

// Relation is a named k-ary relation symbol. Relations are leaves;
// identity is the pointer, so two calls to Unary/Nary with the same name
// produce distinct relations.
type Relation struct {
	name  string
	arity int
	kind  relKind
}

// Unary returns a new relation of arity 1 named name.
func Unary(name string) *Relation {
	return &Relation{name: name, arity: 1}
}

// Nary returns a new relation of the given arity named name. Panics if
// arity < 1.
func Nary(name string, arity int) *Relation {
	if arity < 1 {
		panic("ast: relation arity must be >= 1")
	}
	return &Relation{name: name, arity: arity}
}

// Univ is the relation denoting the entire universe, arity 1.
var Univ = &Relation{name: "univ", arity: 1, kind: relUniv}

// None is the empty relation, arity 1.
var None = &Relation{name: "none", arity: 1, kind: relNone}

// Iden is the identity relation, arity 2: {(a,a) : a in univ}.
var Iden = &Relation{name: "iden", arity: 2, kind: relIden}

// Ints is the relation containing every atom that represents an
// integer, arity 1.
var Ints = &Relation{name: "ints", arity: 1, kind: relInts}

// Name returns r's name.
func (r *Relation) Name() string { return r.name }

// Arity returns r's arity.
func (r *Relation) Arity() int { return r.arity }

// IsBuiltin reports whether r is one of Univ, None, Iden or Ints.
func (r *Relation) IsBuiltin() bool { return r.kind != relOrdinary }

func (r *Relation) Children() []Node { return nil }
func (r *Relation) expressionNode()  {}

func (r *Relation) String() string {
	return fmt.Sprintf("%s", r.name)
}

// Join returns the relational join r.e.
func (r *Relation) Join(e Expression) Expression { return NewJoin(r, e) }

// In returns the subset-of formula r in e.
func (r *Relation) In(e Expression) Formula { return NewComparison(SubsetOf, r, e) }

// EqualTo returns the equality formula r = e.
func (r *Relation) EqualTo(e Expression) Formula { return NewComparison(Equals, r, e) }

// No returns the multiplicity formula "no r".
func (r *Relation) No() Formula { return NewMultiplicity(No, r) }

// Some returns the multiplicity formula "some r".
func (r *Relation) Some() Formula { return NewMultiplicity(SomeMult, r) }

// One returns the multiplicity formula "one r".
func (r *Relation) One() Formula { return NewMultiplicity(One, r) }

// Lone returns the multiplicity formula "lone r".
func (r *Relation) Lone() Formula { return NewMultiplicity(Lone, r) }
