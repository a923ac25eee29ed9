// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fol2sat

import (
	circuit "github.com/relfind/relfind/bool"
	"github.com/relfind/relfind/ast"
	"github.com/relfind/relfind/engine/satlab"
	"github.com/relfind/relfind/instance"
)

// PrimaryVariableCount counts the primary Boolean variables Translate
// allocated for bounds: one per undetermined tuple across every
// relation bounds mentions (including any skolem witness relations
// Skolemize added), in the same insertion order PrimaryEnvironment
// numbers them.
func PrimaryVariableCount(c *circuit.Circuit, bounds *instance.Bounds, env map[*ast.Relation]*circuit.Matrix) int {
	n := 0
	for _, r := range bounds.Relations() {
		m := env[r]
		for _, idx := range m.Indices() {
			if !c.IsConst(m.Get(idx)) {
				n++
			}
		}
	}
	return n
}

// InstanceFromLowerBounds builds the Instance a trivially satisfiable
// formula reports: since no SAT variable was ever allocated, every
// relation in relations is read straight from its lower bound in
// bounds, per spec.md §4.5's padding rule.
func InstanceFromLowerBounds(bounds *instance.Bounds, relations []*ast.Relation) *instance.Instance {
	in := instance.NewInstance(bounds.Universe())
	for _, r := range relations {
		in.Add(r, bounds.LowerBound(r).Clone())
	}
	return in
}

// InstanceFromModel groups a solved primary-variable assignment per
// relation, reading each tuple of env[r] that is either fixed to a
// circuit constant or, failing that, true under solver's model.
// relations limits the result to the relations the caller should see in
// the produced Instance (the original caller's declared relations, not
// any skolem witness Skolemize introduced for its own bookkeeping).
func InstanceFromModel(c *circuit.Circuit, solver satlab.Solver, bounds *instance.Bounds, relations []*ast.Relation, env map[*ast.Relation]*circuit.Matrix) *instance.Instance {
	in := instance.NewInstance(bounds.Universe())
	for _, r := range relations {
		m := env[r]
		var tuples []int
		for _, idx := range m.Indices() {
			lit := m.Get(idx)
			var v bool
			if c.IsConst(lit) {
				v = lit == c.T
			} else {
				v = solver.Value(lit)
			}
			if v {
				tuples = append(tuples, idx)
			}
		}
		in.Add(r, bounds.Factory().IndexSet(r.Arity(), tuples))
	}
	return in
}
