// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package instance

import (
	"fmt"

	"github.com/relfind/relfind/ints"
)

// TupleFactory interprets tuples of a fixed arity over a Universe as
// base-|U| integers, and builds TupleSets over that universe.
type TupleFactory struct {
	universe *Universe
}

// Universe returns the factory's universe.
func (f *TupleFactory) Universe() *Universe { return f.universe }

// Index returns the flat row-major index of the tuple given by atom
// positions t (len(t) == arity, each in [0, universe size)).
func (f *TupleFactory) Index(t []int) int {
	n := f.universe.Size()
	idx := 0
	for _, e := range t {
		idx = idx*n + e
	}
	return idx
}

// Tuple returns the arity-length sequence of atom positions encoded by
// index.
func (f *TupleFactory) Tuple(index, arity int) []int {
	n := f.universe.Size()
	t := make([]int, arity)
	for i := arity - 1; i >= 0; i-- {
		t[i] = index % n
		index /= n
	}
	return t
}

// NoneOf returns the empty TupleSet of the given arity.
func (f *TupleFactory) NoneOf(arity int) *TupleSet {
	return &TupleSet{factory: f, arity: arity, indices: ints.NewIntSet()}
}

// AllOf returns the TupleSet containing every tuple of the given arity
// (the full Cartesian product of the universe with itself arity times).
func (f *TupleFactory) AllOf(arity int) *TupleSet {
	s := f.NoneOf(arity)
	n := f.universe.Size()
	total := 1
	for i := 0; i < arity; i++ {
		total *= n
	}
	for i := 0; i < total; i++ {
		s.indices.Add(i)
	}
	return s
}

// Setof builds a TupleSet of the given arity from atom tuples, each a
// slice of len == arity holding atom positions.
func (f *TupleFactory) Setof(arity int, tuples ...[]int) *TupleSet {
	s := f.NoneOf(arity)
	for _, t := range tuples {
		if len(t) != arity {
			panic("instance: tuple arity mismatch")
		}
		s.indices.Add(f.Index(t))
	}
	return s
}

// IndexSet builds a TupleSet of the given arity directly from flat
// tuple indices (as produced by Index, or read off a boolean matrix's
// cell positions), skipping the atom-tuple round trip Setof requires.
func (f *TupleFactory) IndexSet(arity int, indices []int) *TupleSet {
	s := f.NoneOf(arity)
	for _, idx := range indices {
		s.indices.Add(idx)
	}
	return s
}

// Range returns the TupleSet of arity 1 containing every atom between
// from and to inclusive.
func (f *TupleFactory) Range(from, to int) *TupleSet {
	s := f.NoneOf(1)
	for i := from; i <= to; i++ {
		s.indices.Add(i)
	}
	return s
}

// TupleSet is an ordered set of tuple indices of a fixed arity over a
// Universe.
//
// Invariant: every index < universe.Size()^arity.
type TupleSet struct {
	factory *TupleFactory
	arity   int
	indices *ints.IntSet
}

// Arity returns the tuple set's arity.
func (s *TupleSet) Arity() int { return s.arity }

// Universe returns the universe the tuple set ranges over.
func (s *TupleSet) Universe() *Universe { return s.factory.universe }

// Factory returns the tuple set's TupleFactory.
func (s *TupleSet) Factory() *TupleFactory { return s.factory }

// Size returns the number of tuples in the set.
func (s *TupleSet) Size() int { return s.indices.Size() }

// IsEmpty reports whether the set has no tuples.
func (s *TupleSet) IsEmpty() bool { return s.indices.IsEmpty() }

// Contains reports whether index is a member of the set.
func (s *TupleSet) Contains(index int) bool { return s.indices.Contains(index) }

// Indices returns the tuple indices in ascending order. The caller must
// not mutate the result.
func (s *TupleSet) Indices() []int { return s.indices.ToSlice() }

// Each calls f once for every index in the set, in ascending order.
func (s *TupleSet) Each(f func(index int)) { s.indices.Each(f) }

// Clone returns an independent copy of s.
func (s *TupleSet) Clone() *TupleSet {
	return &TupleSet{factory: s.factory, arity: s.arity, indices: s.indices.Clone()}
}

func (s *TupleSet) requireCompatible(t *TupleSet, op string) {
	if s.arity != t.arity {
		panic(fmt.Sprintf("instance: %s requires tuple sets of equal arity", op))
	}
	if s.factory.universe != t.factory.universe {
		panic(fmt.Sprintf("instance: %s requires tuple sets over the same universe", op))
	}
}

// Union returns the union of s and t.
func (s *TupleSet) Union(t *TupleSet) *TupleSet {
	s.requireCompatible(t, "union")
	return &TupleSet{factory: s.factory, arity: s.arity, indices: s.indices.Union(t.indices)}
}

// Intersection returns the intersection of s and t.
func (s *TupleSet) Intersection(t *TupleSet) *TupleSet {
	s.requireCompatible(t, "intersection")
	return &TupleSet{factory: s.factory, arity: s.arity, indices: s.indices.Intersection(t.indices)}
}

// Difference returns the tuples of s not in t.
func (s *TupleSet) Difference(t *TupleSet) *TupleSet {
	s.requireCompatible(t, "difference")
	r := ints.NewIntSet()
	for _, idx := range s.indices.ToSlice() {
		if !t.indices.Contains(idx) {
			r.Add(idx)
		}
	}
	return &TupleSet{factory: s.factory, arity: s.arity, indices: r}
}

// Product returns the cross product of s and t, of arity
// s.arity+t.arity.
func (s *TupleSet) Product(t *TupleSet) *TupleSet {
	if s.factory.universe != t.factory.universe {
		panic("instance: product requires tuple sets over the same universe")
	}
	r := ints.NewIntSet()
	n := t.factory.universe.Size()
	tWidth := 1
	for i := 0; i < t.arity; i++ {
		tWidth *= n
	}
	for _, i := range s.indices.ToSlice() {
		for _, j := range t.indices.ToSlice() {
			r.Add(i*tWidth + j)
		}
	}
	return &TupleSet{factory: s.factory, arity: s.arity + t.arity, indices: r}
}

// ContainsAll reports whether every tuple of t is also in s.
func (s *TupleSet) ContainsAll(t *TupleSet) bool {
	s.requireCompatible(t, "containsAll")
	return s.indices.ContainsAll(t.indices)
}

// Equals reports whether s and t contain the same tuples.
func (s *TupleSet) Equals(t *TupleSet) bool {
	if s.arity != t.arity || s.Size() != t.Size() {
		return false
	}
	return s.ContainsAll(t)
}
