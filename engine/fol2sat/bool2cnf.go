// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fol2sat

import (
	circuit "github.com/relfind/relfind/bool"
	"github.com/relfind/relfind/engine/satlab"
	"github.com/relfind/relfind/z"
)

// polarity tracks, per gate, whether it has been reached with positive
// sign, negative sign, or both, while walking the DAG from the root.
type polarity uint8

const (
	posPolarity polarity = 1
	negPolarity polarity = 2
)

func flip(p polarity) polarity {
	switch p {
	case posPolarity:
		return negPolarity
	case negPolarity:
		return posPolarity
	default:
		return p
	}
}

// polarityOf computes, for every AND/ITE gate reachable from root, the
// set of polarities (positive, negative, or both) it is reached with.
//
// Grounded on Bool2CNFTranslator.java's PolarityDetector. Because
// circuit.Circuit has no separate OR gate (OR is AND plus sign-bit negation
// via De Morgan — see bool/circuit.go), this walk only ever needs to
// distinguish KindAnd and KindIte; what Bool2CNFTranslator.java tracks as
// a MultiGate's OR case falls out automatically here as the AND case of
// its De Morgan-equivalent gate, reached with flipped polarity through
// the enclosing NOT.
func polarityOf(c *circuit.Circuit, root z.Lit) map[z.Var]polarity {
	pol := make(map[z.Var]polarity)
	var visit func(m z.Lit, p polarity)
	visit = func(m z.Lit, p polarity) {
		if c.IsConst(m) {
			return
		}
		if !m.IsPos() {
			p = flip(p)
		}
		v := m.Var()
		switch c.KindOf(m) {
		case circuit.KindVar:
			return
		case circuit.KindAnd:
			if pol[v]&p == p {
				return
			}
			pol[v] |= p
			a, b := c.Ins(m.Var().Pos())
			visit(a, p)
			visit(b, p)
		case circuit.KindIte:
			if pol[v]&p == p {
				return
			}
			pol[v] |= p
			cond, then, els := c.IteIns(m.Var().Pos())
			visit(cond, posPolarity|negPolarity)
			visit(then, p)
			visit(els, p)
		}
	}
	visit(root, posPolarity)
	return pol
}

// Definitional translates root into CNF and loads it into solver via the
// Plaisted-Greenbaum definitional encoding of spec §4.4: AND gates
// contribute half their clauses when only one polarity is live, ITE gates
// their compact 4-clause encoding split the same way. It reserves every
// variable of c up front, so the caller needs no separate AddVariables
// call; because the translator allocates one circuit.Circuit input per
// primary tuple (via NewIn) before building any gate, variables <=
// numPrimaryVariables are always primaries and the rest are internal
// gate or skolem-support variables, in the numbering spec §4.3 requires.
//
// Grounded on Bool2CNFTranslator.java's DefinitionalTranslator.
func Definitional(c *circuit.Circuit, root z.Lit, solver satlab.Solver) {
	maxVar := int(root.Var())
	if n := c.Len() - 1; n > maxVar {
		maxVar = n
	}
	solver.AddVariables(maxVar)
	pol := polarityOf(c, root)
	visited := make(map[z.Var]bool)
	var clause func(lits ...z.Lit)
	clause = func(lits ...z.Lit) {
		for _, l := range lits {
			solver.Add(l)
		}
		solver.Add(z.LitNull)
	}
	var lit func(m z.Lit) z.Lit
	lit = func(m z.Lit) z.Lit {
		if c.IsConst(m) {
			return m
		}
		v := m.Var()
		if c.KindOf(m) == circuit.KindVar {
			return m
		}
		if !visited[v] {
			visited[v] = true
			p := pol[v]
			positive := p&posPolarity != 0
			negative := p&negPolarity != 0
			switch c.KindOf(v.Pos()) {
			case circuit.KindAnd:
				a, b := c.Ins(v.Pos())
				la, lb := lit(a), lit(b)
				if positive {
					clause(la, v.Neg())
					clause(lb, v.Neg())
				}
				if negative {
					clause(la.Not(), lb.Not(), v.Pos())
				}
			case circuit.KindIte:
				cond, then, els := c.IteIns(v.Pos())
				lc, lt, le := lit(cond), lit(then), lit(els)
				if positive {
					clause(lc.Not(), lt, v.Neg())
					clause(lc, le, v.Neg())
				}
				if negative {
					clause(lc.Not(), lt.Not(), v.Pos())
					clause(lc, le.Not(), v.Pos())
				}
			}
		}
		if m.IsPos() {
			return v.Pos()
		}
		return v.Neg()
	}
	rootLit := lit(root)
	clause(rootLit)
}
