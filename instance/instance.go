// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package instance

import "github.com/relfind/relfind/ast"

// Instance is a total assignment from relations to tuple sets,
// consistent with the bounds it was produced against: a concrete
// witness to a formula's satisfiability.
type Instance struct {
	universe  *Universe
	relations map[*ast.Relation]*TupleSet
	ints      map[int]int
}

// NewInstance creates an empty Instance over universe.
func NewInstance(universe *Universe) *Instance {
	return &Instance{universe: universe, relations: make(map[*ast.Relation]*TupleSet), ints: make(map[int]int)}
}

// Universe returns the instance's universe.
func (in *Instance) Universe() *Universe { return in.universe }

// Add assigns tuples to r.
func (in *Instance) Add(r *ast.Relation, tuples *TupleSet) {
	in.relations[r] = tuples
}

// Tuples returns the tuple set assigned to r, or nil if r is unassigned.
func (in *Instance) Tuples(r *ast.Relation) *TupleSet {
	return in.relations[r]
}

// Relations returns every relation this instance assigns a value to.
func (in *Instance) Relations() []*ast.Relation {
	out := make([]*ast.Relation, 0, len(in.relations))
	for r := range in.relations {
		out = append(out, r)
	}
	return out
}
