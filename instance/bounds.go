// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package instance

import (
	"fmt"

	"github.com/relfind/relfind/ast"
	"github.com/relfind/relfind/ints"
)

// Bounds maps each relation a formula is solved against to a lower and
// upper TupleSet, and each integer used in the formula to the exact
// singleton TupleSet that represents it.
//
// Every TupleSet stored in a Bounds is cloned on the way in, so later
// mutation of the caller's TupleSet cannot retroactively change a Bounds
// that has already read it (the "clone-and-freeze discipline" of spec
// §3). Relations are kept in insertion order, since the FOL->Bool
// translator numbers primary variables in that order.
//
// Grounded on kodkod.instance.Bounds.
type Bounds struct {
	factory *TupleFactory
	order   []*ast.Relation
	lowers  map[*ast.Relation]*TupleSet
	uppers  map[*ast.Relation]*TupleSet
	ints    *ints.SparseSequence[*TupleSet]
}

// NewBounds creates an empty Bounds over universe.
func NewBounds(universe *Universe) *Bounds {
	return &Bounds{
		factory: universe.Factory(),
		lowers:  make(map[*ast.Relation]*TupleSet),
		uppers:  make(map[*ast.Relation]*TupleSet),
		ints:    ints.NewSparseSequence[*TupleSet](),
	}
}

// Universe returns the universe the bounds range over.
func (b *Bounds) Universe() *Universe { return b.factory.universe }

// Factory returns the bounds' TupleFactory.
func (b *Bounds) Factory() *TupleFactory { return b.factory }

// Relations returns the bound relations, in the order they were first
// bound.
func (b *Bounds) Relations() []*ast.Relation {
	out := make([]*ast.Relation, len(b.order))
	copy(out, b.order)
	return out
}

// LowerBound returns the lower bound on r, or nil if r is not bound.
func (b *Bounds) LowerBound(r *ast.Relation) *TupleSet { return b.lowers[r] }

// UpperBound returns the upper bound on r, or nil if r is not bound.
func (b *Bounds) UpperBound(r *ast.Relation) *TupleSet { return b.uppers[r] }

func (b *Bounds) checkBound(r *ast.Relation, t *TupleSet) {
	if t.Arity() != r.Arity() {
		panic(fmt.Sprintf("instance: bound for %s has arity %d, relation has arity %d", r.Name(), t.Arity(), r.Arity()))
	}
	if t.Universe() != b.Universe() {
		panic(fmt.Sprintf("instance: bound for %s is over a different universe", r.Name()))
	}
}

func (b *Bounds) record(r *ast.Relation) {
	if _, ok := b.lowers[r]; !ok {
		b.order = append(b.order, r)
	}
}

// BoundExactly sets both the lower and upper bound of r to tuples: r's
// value is fixed in every solution.
func (b *Bounds) BoundExactly(r *ast.Relation, tuples *TupleSet) {
	b.checkBound(r, tuples)
	frozen := tuples.Clone()
	b.record(r)
	b.lowers[r] = frozen
	b.uppers[r] = frozen
}

// Bound sets r's lower and upper bound. Panics unless lower's tuples are
// a subset of upper's.
func (b *Bounds) Bound(r *ast.Relation, lower, upper *TupleSet) {
	if !upper.ContainsAll(lower) {
		panic(fmt.Sprintf("instance: lower bound for %s is not contained in upper bound", r.Name()))
	}
	if upper.Size() == lower.Size() {
		b.BoundExactly(r, lower)
		return
	}
	b.checkBound(r, lower)
	b.checkBound(r, upper)
	b.record(r)
	b.lowers[r] = lower.Clone()
	b.uppers[r] = upper.Clone()
}

// BoundUpper sets r's upper bound to upper, with an empty lower bound.
func (b *Bounds) BoundUpper(r *ast.Relation, upper *TupleSet) {
	b.checkBound(r, upper)
	b.record(r)
	b.lowers[r] = b.factory.NoneOf(r.Arity())
	b.uppers[r] = upper.Clone()
}

// Ints returns the set of integers bound by this Bounds.
func (b *Bounds) Ints() *ints.IntSet { return b.ints.Indices() }

// ExactBound returns the singleton TupleSet representing i, or nil if i
// is not bound.
func (b *Bounds) ExactBound(i int) *TupleSet {
	t, ok := b.ints.Get(i)
	if !ok {
		return nil
	}
	return t
}

// BoundInt binds the integer i to the singleton atom tuple in bound.
// Panics unless bound has arity 1 and size 1.
func (b *Bounds) BoundInt(i int, bound *TupleSet) {
	if bound.Arity() != 1 || bound.Size() != 1 {
		panic("instance: an integer bound must be a singleton arity-1 tuple set")
	}
	b.ints.Put(i, bound.Clone())
}

// Clone returns a deep copy of b: relations, int bounds and their
// TupleSets are all independently owned by the result, so the skolemizer
// can extend a cloned Bounds without perturbing the caller's.
func (b *Bounds) Clone() *Bounds {
	nb := NewBounds(b.Universe())
	nb.order = append(nb.order, b.order...)
	for r, t := range b.lowers {
		nb.lowers[r] = t.Clone()
	}
	for r, t := range b.uppers {
		nb.uppers[r] = t.Clone()
	}
	for _, e := range b.ints.Entries() {
		nb.ints.Put(e.Index, e.Value.Clone())
	}
	return nb
}
