// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bool

import "github.com/relfind/relfind/z"

// CardSort provides unary cardinality constraints over a set of literals
// via an odd-even sorting network, coded directly as circuit gates rather
// than raw clauses (github.com/irifrance/gini's logic.CardSort emits
// clauses straight to a SAT adder; here the same network is built with
// Circuit.And/Circuit.Or so it composes with the rest of a translated
// formula and is clausified, along with everything else, by the
// definitional Bool→CNF pass).
//
// This backs the "one"/"lone" multiplicity ladder and relation-predicate
// compilation in spec §4.3.
type CardSort struct {
	n   int
	c   *Circuit
	ms  []z.Lit
	one z.Lit
}

// NewCardSort builds a cardinality network over ms using c to allocate
// gates. The resulting predicates (Leq, Geq, ...) reflect how many of the
// literals in ms are true in a given assignment.
func NewCardSort(c *Circuit, ms []z.Lit) *CardSort {
	p := uint(0)
	for 1<<p < len(ms) {
		p++
	}
	ns := make([]z.Lit, 1<<p)
	copy(ns, ms)
	cs := &CardSort{ms: ns, c: c, n: len(ms)}
	cs.one = c.T
	for i := len(ms); i < len(ns); i++ {
		ns[i] = cs.one
	}
	cs.sort(0, len(ns))
	return cs
}

// N returns the number of literals whose cardinality is tested.
func (cs *CardSort) N() int {
	return cs.n
}

// Leq returns a literal true iff at most b of the counted literals are true.
func (cs *CardSort) Leq(b int) z.Lit {
	if b >= cs.n {
		return cs.one
	}
	if b < 0 {
		return cs.one.Not()
	}
	return cs.ms[(cs.n-1)-b].Not()
}

// Less returns a literal true iff fewer than b of the counted literals are true.
func (cs *CardSort) Less(b int) z.Lit {
	return cs.Leq(b - 1)
}

// Geq returns a literal true iff at least b of the counted literals are true.
func (cs *CardSort) Geq(b int) z.Lit {
	if b <= 0 {
		return cs.one
	}
	if b >= cs.n+1 {
		return cs.one.Not()
	}
	return cs.Leq(b - 1).Not()
}

// Gr returns a literal true iff more than b of the counted literals are true.
func (cs *CardSort) Gr(b int) z.Lit {
	return cs.Geq(b + 1)
}

func (cs *CardSort) sort(l, h int) {
	if h-l <= 1 {
		return
	}
	m := l + (h-l)/2
	cs.sort(l, m)
	cs.sort(m, h)
	cs.merge(l, h, 1)
}

// odd-even merge.
func (cs *CardSort) merge(l, h, s int) {
	if h <= l+s {
		return
	}
	ss := 2 * s
	if ss >= h-l {
		ml, mh := cs.lh(l, l+s)
		cs.ms[l], cs.ms[l+s] = ml, mh
		return
	}
	cs.merge(l, h, ss)
	cs.merge(l+s, h, ss)
	lim := h - s
	for i := l + s; i < lim; i += ss {
		ml, mh := cs.lh(i, i+s)
		cs.ms[i], cs.ms[i+s] = ml, mh
	}
}

// compare-and-swap.
func (cs *CardSort) lh(i, j int) (z.Lit, z.Lit) {
	mi, mj := cs.ms[i], cs.ms[j]
	return cs.c.And(mi, mj), cs.c.Or(mi, mj)
}
