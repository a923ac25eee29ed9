// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package bool provides an interned Boolean circuit factory (the
// "BooleanValue" DAG of spec §3) and a sparse symbolic matrix built on top
// of it for relational algebra over per-tuple Boolean formulas.
//
// The factory follows the strashing (structural hashing) scheme of
// github.com/irifrance/gini's logic.C: every gate is looked up in a hash
// table keyed by (operator, sorted inputs) before a new node is allocated,
// so that equal subformulas are always represented by the same literal.
// Unlike gini's combinational circuit, which only has AND nodes (OR, NOT
// and if-then-else are all expressed via De Morgan over AND), this factory
// also interns a primitive if-then-else gate, needed so that the
// definitional CNF translator in engine/fol2sat can emit the compact
// 4-clause ITE encoding instead of expanding it into ANDs and ORs first.
package bool

import "github.com/relfind/relfind/z"

// Kind identifies the operator of a non-leaf circuit node.
type Kind uint8

const (
	// KindVar marks a leaf (input variable).
	KindVar Kind = iota
	// KindAnd marks a conjunction gate.
	KindAnd
	// KindIte marks an if-then-else gate.
	KindIte
)

// Circuit is an interned Boolean circuit: a DAG of AND and ITE gates over
// input variables, with OR and NOT expressed without allocating new nodes
// (OR via De Morgan over AND; NOT as a literal's sign bit).
//
// A gate's label (the absolute value of the z.Var backing its positive
// literal) is always greater than the label of any of its inputs, so a
// circuit's nodes are already in a topological order usable directly by a
// DAG walk with no separate sort.
type Circuit struct {
	nodes  []node
	strash []uint32
	F      z.Lit
	T      z.Lit
}

type node struct {
	op   Kind
	a, b z.Lit // inputs; for KindAnd: the two conjuncts. For KindIte: a = then, b = else.
	c    z.Lit // KindIte: condition. Unused (LitNull) otherwise.
	n    uint32
}

// NewCircuit creates an empty circuit.
func NewCircuit() *Circuit {
	return NewCircuitCap(128)
}

// NewCircuitCap creates an empty circuit with an initial node-table
// capacity hint.
func NewCircuitCap(capHint int) *Circuit {
	c := &Circuit{}
	c.nodes = make([]node, 2, capHint)
	c.strash = make([]uint32, capHint)
	c.F = z.Var(1).Neg()
	c.T = c.F.Not()
	return c
}

// Len returns the number of internal nodes (including the reserved
// constant-pair node at index 1) used to represent c.
func (c *Circuit) Len() int {
	return len(c.nodes)
}

// At returns the i'th node's positive literal. For 0 < i < Len(c), At is
// in topological order: if i < j then At(j) is never reachable from At(i).
func (c *Circuit) At(i int) z.Lit {
	return z.Var(i).Pos()
}

// KindOf returns the operator of the gate or variable backing m.
func (c *Circuit) KindOf(m z.Lit) Kind {
	return c.nodes[m.Var()].op
}

// IsConst reports whether m is the constant TRUE or FALSE literal.
func (c *Circuit) IsConst(m z.Lit) bool {
	return m == c.T || m == c.F
}

// NewIn allocates and returns a fresh input variable's positive literal.
func (c *Circuit) NewIn() z.Lit {
	m := len(c.nodes)
	c.newNode(node{op: KindVar})
	return z.Var(m).Pos()
}

// Ins returns the (possibly negative) input literals of an AND gate, or
// (LitNull, LitNull) for a leaf.
func (c *Circuit) Ins(m z.Lit) (z.Lit, z.Lit) {
	n := c.nodes[m.Var()]
	return n.a, n.b
}

// IteIns returns the condition, then and else inputs of an ITE gate. The
// result is unspecified if m is not a KindIte gate.
func (c *Circuit) IteIns(m z.Lit) (cond, then, els z.Lit) {
	n := c.nodes[m.Var()]
	return n.c, n.a, n.b
}

// And returns a literal equivalent to "a and b", reusing an existing gate
// when one already represents that conjunction.
func (c *Circuit) And(a, b z.Lit) z.Lit {
	if a == b {
		return a
	}
	if a == b.Not() {
		return c.F
	}
	if a > b {
		a, b = b, a
	}
	if a == c.F {
		return c.F
	}
	if a == c.T {
		return b
	}
	code := strashCode(uint32(KindAnd), uint32(a), uint32(b), 0)
	if m, ok := c.lookup(code, func(n node) bool { return n.op == KindAnd && n.a == a && n.b == b }); ok {
		return m
	}
	j := uint32(len(c.nodes))
	c.newNode(node{op: KindAnd, a: a, b: b})
	c.chain(code, j)
	return z.Var(j).Pos()
}

// Ands returns the conjunction of ms, or T if ms is empty.
func (c *Circuit) Ands(ms ...z.Lit) z.Lit {
	a := c.T
	for _, m := range ms {
		a = c.And(a, m)
	}
	return a
}

// Or returns a literal equivalent to "a or b".
func (c *Circuit) Or(a, b z.Lit) z.Lit {
	return c.And(a.Not(), b.Not()).Not()
}

// Ors returns the disjunction of ms, or F if ms is empty.
func (c *Circuit) Ors(ms ...z.Lit) z.Lit {
	d := c.F
	for _, m := range ms {
		d = c.Or(d, m)
	}
	return d
}

// Implies returns a literal equivalent to "a implies b".
func (c *Circuit) Implies(a, b z.Lit) z.Lit {
	return c.Or(a.Not(), b)
}

// Iff returns a literal equivalent to "a iff b".
func (c *Circuit) Iff(a, b z.Lit) z.Lit {
	return c.And(c.Implies(a, b), c.Implies(b, a))
}

// Xor returns a literal equivalent to "a xor b".
func (c *Circuit) Xor(a, b z.Lit) z.Lit {
	return c.Or(c.And(a, b.Not()), c.And(a.Not(), b))
}

// Ite returns a literal equivalent to "if cond then then else els",
// allocating a primitive ITE gate (rather than expanding into ANDs and
// ORs) so the CNF translator can use the compact 4-clause encoding.
func (c *Circuit) Ite(cond, then, els z.Lit) z.Lit {
	if cond == c.T {
		return then
	}
	if cond == c.F {
		return els
	}
	if then == els {
		return then
	}
	if then == c.T && els == c.F {
		return cond
	}
	if then == c.F && els == c.T {
		return cond.Not()
	}
	code := strashCode(uint32(KindIte), uint32(cond), uint32(then), uint32(els))
	if m, ok := c.lookup(code, func(n node) bool {
		return n.op == KindIte && n.c == cond && n.a == then && n.b == els
	}); ok {
		return m
	}
	j := uint32(len(c.nodes))
	c.newNode(node{op: KindIte, c: cond, a: then, b: els})
	c.chain(code, j)
	return z.Var(j).Pos()
}

// Eval evaluates the circuit given values for every input variable
// (indexed by variable number); the results for gates are written back
// into vs.
func (c *Circuit) Eval(vs []bool) {
	for i := range c.nodes {
		n := &c.nodes[i]
		switch n.op {
		case KindVar:
			continue
		case KindAnd:
			va, vb := vs[n.a.Var()], vs[n.b.Var()]
			if !n.a.IsPos() {
				va = !va
			}
			if !n.b.IsPos() {
				vb = !vb
			}
			vs[i] = va && vb
		case KindIte:
			vcond := vs[n.c.Var()]
			if !n.c.IsPos() {
				vcond = !vcond
			}
			if vcond {
				vt := vs[n.a.Var()]
				if !n.a.IsPos() {
					vt = !vt
				}
				vs[i] = vt
			} else {
				ve := vs[n.b.Var()]
				if !n.b.IsPos() {
					ve = !ve
				}
				vs[i] = ve
			}
		}
	}
}

func (c *Circuit) lookup(code uint32, match func(node) bool) (z.Lit, bool) {
	l := uint32(cap(c.nodes))
	si := c.strash[code%l]
	for si != 0 {
		n := c.nodes[si]
		if match(n) {
			return z.Var(si).Pos(), true
		}
		si = n.n
	}
	return z.LitNull, false
}

func (c *Circuit) chain(code, j uint32) {
	k := code % uint32(cap(c.nodes))
	c.nodes[j].n = c.strash[k]
	c.strash[k] = j
}

func (c *Circuit) newNode(n node) {
	if len(c.nodes) == cap(c.nodes) {
		c.grow()
	}
	c.nodes = append(c.nodes, n)
}

func (c *Circuit) grow() {
	newCap := cap(c.nodes) * 2
	nodes := make([]node, len(c.nodes), newCap)
	copy(nodes, c.nodes)
	strash := make([]uint32, newCap)
	ucap := uint32(newCap)
	for i, n := range nodes {
		if n.op == KindVar {
			continue
		}
		var code uint32
		if n.op == KindAnd {
			code = strashCode(uint32(KindAnd), uint32(n.a), uint32(n.b), 0)
		} else {
			code = strashCode(uint32(KindIte), uint32(n.c), uint32(n.a), uint32(n.b))
		}
		k := code % ucap
		nodes[i].n = strash[k]
		strash[k] = uint32(i)
	}
	c.nodes = nodes
	c.strash = strash
}

func strashCode(op, a, b, cc uint32) uint32 {
	h := op
	h = h*1000003 ^ a
	h = h*1000003 ^ b
	h = h*1000003 ^ cc
	return h
}
