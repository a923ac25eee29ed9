// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bool

import (
	"sort"

	"github.com/relfind/relfind/z"
)

// Matrix is a symbolic relation: a dense-shaped, sparsely-stored array of
// Circuit literals indexed by tuple, one literal per tuple of the
// relation's arity over a universe of a fixed size. A tuple's literal is
// the Boolean value "this tuple is in the relation" in a given solution;
// tuples absent from the backing map are implicitly c.F, so an empty
// Matrix represents the empty relation at no storage cost.
//
// Matrix implements the relational operators of spec §4.3 (union,
// intersection, difference, product, join, transpose, closures,
// override) directly as per-tuple Boolean-circuit formulas, mirroring
// how github.com/irifrance/gini's logic.C builds one gate per combinational
// signal: each operator below allocates no SAT variables itself, only
// And/Or/Not gates in the shared Circuit, which are clausified later by
// the definitional Bool->CNF translator.
type Matrix struct {
	c     *Circuit
	dim   int // size of the universe each column ranges over
	arity int
	cells map[int]z.Lit
}

// NewMatrix creates an empty (all-false) matrix of the given arity over a
// universe of size dim.
func NewMatrix(c *Circuit, dim, arity int) *Matrix {
	return &Matrix{c: c, dim: dim, arity: arity, cells: make(map[int]z.Lit)}
}

// Dim returns the size of the universe the matrix's columns range over.
func (m *Matrix) Dim() int {
	return m.dim
}

// Arity returns the matrix's arity.
func (m *Matrix) Arity() int {
	return m.arity
}

// Size returns dim^arity, the number of tuples in the matrix's index space.
func (m *Matrix) Size() int {
	n := 1
	for i := 0; i < m.arity; i++ {
		n *= m.dim
	}
	return n
}

// Index returns the flat row-major index of tuple t (len(t) == m.arity,
// each entry in [0,dim)).
func (m *Matrix) Index(t []int) int {
	idx := 0
	for _, e := range t {
		idx = idx*m.dim + e
	}
	return idx
}

// Tuple returns the arity-length tuple at flat index idx.
func (m *Matrix) Tuple(idx int) []int {
	t := make([]int, m.arity)
	for i := m.arity - 1; i >= 0; i-- {
		t[i] = idx % m.dim
		idx /= m.dim
	}
	return t
}

// Get returns the literal at flat index idx, or c.F if idx is absent.
func (m *Matrix) Get(idx int) z.Lit {
	if l, ok := m.cells[idx]; ok {
		return l
	}
	return m.c.F
}

// Set stores lit at flat index idx. Setting c.F removes any existing
// entry, keeping the map sparse.
func (m *Matrix) Set(idx int, lit z.Lit) {
	if lit == m.c.F {
		delete(m.cells, idx)
		return
	}
	m.cells[idx] = lit
}

// Indices returns the flat indices with a stored (possibly-true) entry,
// in ascending order. Every caller that folds these indices into a
// circuit (union, join, cardinality, ...) depends on a fixed order so
// that the resulting gate numbering, and hence the translated CNF's
// variable and clause counts, is the same on every run.
func (m *Matrix) Indices() []int {
	return sortedIndices(m.cells)
}

func sortedIndices(cells map[int]z.Lit) []int {
	idxs := make([]int, 0, len(cells))
	for idx := range cells {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	return idxs
}

func (m *Matrix) like(arity int) *Matrix {
	return &Matrix{c: m.c, dim: m.dim, arity: arity, cells: make(map[int]z.Lit)}
}

// Union returns m | n (relational union): the per-tuple disjunction.
func (m *Matrix) Union(n *Matrix) *Matrix {
	r := m.like(m.arity)
	for _, idx := range m.Indices() {
		r.Set(idx, m.cells[idx])
	}
	for _, idx := range n.Indices() {
		r.Set(idx, r.c.Or(r.Get(idx), n.cells[idx]))
	}
	return r
}

// Intersection returns m & n (relational intersection): the per-tuple
// conjunction.
func (m *Matrix) Intersection(n *Matrix) *Matrix {
	r := m.like(m.arity)
	small, big := m, n
	if len(n.cells) < len(m.cells) {
		small, big = n, m
	}
	for _, idx := range small.Indices() {
		if bl, ok := big.cells[idx]; ok {
			r.Set(idx, r.c.And(small.cells[idx], bl))
		}
	}
	return r
}

// Difference returns m - n: tuples of m that are not in n.
func (m *Matrix) Difference(n *Matrix) *Matrix {
	r := m.like(m.arity)
	for _, idx := range m.Indices() {
		r.Set(idx, r.c.And(m.cells[idx], n.Get(idx).Not()))
	}
	return r
}

// Override returns m ++ n: n's tuples, plus m's tuples whose first column
// value does not appear as the first column of any possibly-true tuple of
// n. Implements the relational override (⇒) operator of spec §4.3.
func (m *Matrix) Override(n *Matrix) *Matrix {
	r := m.like(m.arity)
	cols := m.dim
	rowOf := func(idx int) int {
		width := 1
		for i := 1; i < m.arity; i++ {
			width *= cols
		}
		return idx / width
	}
	rowMask := n.like(1)
	for _, idx := range n.Indices() {
		row := rowOf(idx)
		rowMask.Set(row, rowMask.c.Or(rowMask.Get(row), n.cells[idx]))
	}
	for _, idx := range m.Indices() {
		row := rowOf(idx)
		r.Set(idx, r.c.And(m.cells[idx], rowMask.Get(row).Not()))
	}
	for _, idx := range n.Indices() {
		r.Set(idx, r.c.Or(r.Get(idx), n.cells[idx]))
	}
	return r
}

// Product returns the cross product m -> n, of arity m.arity+n.arity.
func (m *Matrix) Product(n *Matrix) *Matrix {
	r := m.like(m.arity + n.arity)
	nSize := n.Size()
	nIdxs := n.Indices()
	for _, i := range m.Indices() {
		li := m.cells[i]
		for _, j := range nIdxs {
			idx := i*nSize + j
			r.Set(idx, r.c.And(li, n.cells[j]))
		}
	}
	return r
}

// Join returns the relational join m.n, of arity m.arity+n.arity-2: pairs
// of tuples agreeing on m's last column and n's first column, with that
// shared column projected out.
func (m *Matrix) Join(n *Matrix) *Matrix {
	ra := m.arity - 1
	rb := n.arity - 1
	r := m.like(ra + rb)
	nIdxs := n.Indices()
	for _, i := range m.Indices() {
		li := m.cells[i]
		ti := m.Tuple(i)
		last := ti[ra]
		for _, j := range nIdxs {
			lj := n.cells[j]
			tj := n.Tuple(j)
			if tj[0] != last {
				continue
			}
			out := make([]int, 0, ra+rb)
			out = append(out, ti[:ra]...)
			out = append(out, tj[1:]...)
			idx := r.Index(out)
			r.Set(idx, r.c.Or(r.Get(idx), r.c.And(li, lj)))
		}
	}
	return r
}

// Transpose returns the transpose ~m of a binary matrix.
func (m *Matrix) Transpose() *Matrix {
	if m.arity != 2 {
		panic("bool: Transpose requires arity 2")
	}
	r := m.like(2)
	for _, idx := range m.Indices() {
		t := m.Tuple(idx)
		r.Set(r.Index([]int{t[1], t[0]}), m.cells[idx])
	}
	return r
}

// Identity returns the diagonal (IDEN) matrix of a dim-sized universe: a
// binary matrix true at (i,i) for every i and false elsewhere.
func Identity(c *Circuit, dim int) *Matrix {
	r := NewMatrix(c, dim, 2)
	for i := 0; i < dim; i++ {
		r.Set(r.Index([]int{i, i}), c.T)
	}
	return r
}

// ReflexiveClosure returns m* (the reflexive-transitive closure): the
// transitive closure of m unioned with the identity matrix.
func (m *Matrix) ReflexiveClosure() *Matrix {
	return m.Closure().Union(Identity(m.c, m.dim))
}

// Closure returns m^ (the transitive closure) of a binary matrix, via
// repeated squaring: ceil(log2(dim)) rounds of m = m | (m.m), which
// converges because no simple path in a dim-element universe has more
// than dim-1 edges.
func (m *Matrix) Closure() *Matrix {
	if m.arity != 2 {
		panic("bool: Closure requires arity 2")
	}
	if m.dim == 0 {
		return m.like(2)
	}
	acc := m
	rounds := 0
	for n := 1; n < m.dim; n <<= 1 {
		rounds++
	}
	for i := 0; i < rounds; i++ {
		acc = acc.Union(acc.Join(acc))
	}
	return acc
}

// Comprehend builds a unary-per-column matrix of the given arity whose
// tuple literal at t is pred(t), called once for every tuple in the
// matrix's full dim^arity index space. Grounds relational comprehension
// ("{r : f(r)}") and quantified formula translation in spec §4.3.
func Comprehend(c *Circuit, dim, arity int, pred func(t []int) z.Lit) *Matrix {
	r := NewMatrix(c, dim, arity)
	n := r.Size()
	for idx := 0; idx < n; idx++ {
		l := pred(r.Tuple(idx))
		if l != c.F {
			r.Set(idx, l)
		}
	}
	return r
}

// Eq returns a literal true iff m and n denote the same relation: the
// conjunction, over every tuple either might contain, of their
// per-tuple biconditional.
func (m *Matrix) Eq(n *Matrix) z.Lit {
	c := m.c
	seen := make(map[int]bool, len(m.cells)+len(n.cells))
	res := c.T
	for _, idx := range m.Indices() {
		res = c.And(res, c.Iff(m.cells[idx], n.Get(idx)))
		seen[idx] = true
	}
	for _, idx := range n.Indices() {
		if seen[idx] {
			continue
		}
		res = c.And(res, c.Iff(m.Get(idx), n.cells[idx]))
	}
	return res
}

// Subset returns a literal true iff every tuple of m is also in n.
func (m *Matrix) Subset(n *Matrix) z.Lit {
	c := m.c
	res := c.T
	for _, idx := range m.Indices() {
		res = c.And(res, c.Implies(m.cells[idx], n.Get(idx)))
	}
	return res
}

// Some returns a literal true iff some tuple of m is possibly true: the
// disjunction of all of m's entries.
func (m *Matrix) Some() z.Lit {
	d := m.c.F
	for _, idx := range m.Indices() {
		d = m.c.Or(d, m.cells[idx])
	}
	return d
}

// One returns a literal true iff exactly one tuple of m is true.
func (m *Matrix) One() z.Lit {
	idxs := m.Indices()
	ms := make([]z.Lit, 0, len(idxs))
	for _, idx := range idxs {
		ms = append(ms, m.cells[idx])
	}
	if len(ms) == 0 {
		return m.c.F
	}
	cs := NewCardSort(m.c, ms)
	return m.c.And(cs.Geq(1), cs.Leq(1))
}

// Lone returns a literal true iff at most one tuple of m is true.
func (m *Matrix) Lone() z.Lit {
	idxs := m.Indices()
	ms := make([]z.Lit, 0, len(idxs))
	for _, idx := range idxs {
		ms = append(ms, m.cells[idx])
	}
	if len(ms) == 0 {
		return m.c.T
	}
	cs := NewCardSort(m.c, ms)
	return cs.Leq(1)
}
