// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fol2sat

import (
	"fmt"

	circuit "github.com/relfind/relfind/bool"
	"github.com/relfind/relfind/ast"
	"github.com/relfind/relfind/instance"
)

// nonSkolem records an enclosing universally-quantified declaration that
// cannot itself be skolemized: its variable still needs to appear, bound
// to its declared domain, in the join expression built for any
// skolemizable declaration nested under it.
type nonSkolem struct {
	decl  *ast.Decl
	upper *instance.TupleSet
}

// skolemizer rewrites existential quantification (and negated universal
// quantification, which is existential under De Morgan) into fresh
// relations bounded by the declaration's approximated upper bound,
// exactly replaying Skolemizer.java's single recursive pass: negated
// tracks sign under the enclosing connectives, skolemDepth is -1
// whenever the current position is unsound to skolemize (nonnegative
// otherwise, and equal to the number of stacked nonSkolems entries).
//
// Grounded on original_source/src/kodkod/engine/fol2sat/Skolemizer.java.
type skolemizer struct {
	c           *circuit.Circuit
	bounds      *instance.Bounds
	bitwidth    int
	maxDepth    int
	repEnv      map[*ast.Variable]ast.Expression
	varEnv      map[*ast.Variable]*circuit.Matrix
	nonSkolems  []nonSkolem
	negated     bool
	skolemDepth int
	count       int
	report      SkolemReport
}

// SkolemReport is called once per declaration Skolemize replaces, naming
// the fresh relation introduced and the enclosing universal variables it
// is joined against (outermost first). A nil SkolemReport is never
// called.
type SkolemReport func(decl *ast.Decl, skolemRelation *ast.Relation, universals []*ast.Variable)

// Skolemize rewrites root's skolemizable quantifiers into fresh relations
// recorded in a clone of bounds, returning the rewritten formula and the
// extended bounds. maxDepth caps how many enclosing non-skolemizable
// universal declarations a skolemizable declaration may be nested under;
// -1 disables skolemization entirely (Skolemize then returns root and a
// clone of bounds unchanged). report, if non-nil, is invoked once per
// skolemized declaration.
func Skolemize(c *circuit.Circuit, root ast.Formula, bounds *instance.Bounds, bitwidth, maxDepth int, report SkolemReport) (ast.Formula, *instance.Bounds) {
	nb := bounds.Clone()
	if maxDepth < 0 {
		return root, nb
	}
	s := &skolemizer{
		c:        c,
		bounds:   nb,
		bitwidth: bitwidth,
		maxDepth: maxDepth,
		repEnv:   make(map[*ast.Variable]ast.Expression),
		varEnv:   make(map[*ast.Variable]*circuit.Matrix),
		report:   report,
	}
	result := s.formula(root)
	return result, nb
}

// approxBound computes expr's upper-bound TupleSet under the current
// variable bindings, via the shared constant-folding translation path of
// translator.go: Approximate's leaf relations are fixed to their upper
// bound, so every resulting matrix cell is itself a circuit constant, and
// any index left in the result after that folding is in the bound.
func (s *skolemizer) approxBound(expr ast.Expression) *instance.TupleSet {
	m := Approximate(s.c, expr, s.bounds, s.bitwidth, s.varEnv)
	factory := s.bounds.Factory()
	var tuples [][]int
	for _, idx := range m.Indices() {
		if m.Get(idx) != s.c.T {
			continue
		}
		tuples = append(tuples, factory.Tuple(idx, expr.Arity()))
	}
	return factory.Setof(expr.Arity(), tuples...)
}

// skolemExpr allocates a fresh relation for decl, bounded by the product
// of every stacked nonSkolem's upper bound with decl's own upper bound
// (arities concatenated in stacking order), and returns the expression
// that replaces decl's variable: the stacked variables joined, left to
// right from the outermost enclosing declaration inward, against the
// fresh relation.
func (s *skolemizer) skolemExpr(decl *ast.Decl) ast.Expression {
	target := s.approxBound(decl.Expression())
	bound := target
	for i := len(s.nonSkolems) - 1; i >= 0; i-- {
		bound = s.nonSkolems[i].upper.Product(bound)
	}
	s.count++
	arity := decl.Variable().Arity()
	for _, ns := range s.nonSkolems {
		arity += ns.decl.Variable().Arity()
	}
	skolem := ast.Nary(fmt.Sprintf("$sk%d", s.count), arity)
	s.bounds.BoundUpper(skolem, bound)

	if s.report != nil {
		universals := make([]*ast.Variable, len(s.nonSkolems))
		for i, ns := range s.nonSkolems {
			universals[i] = ns.decl.Variable()
		}
		s.report(decl, skolem, universals)
	}

	var expr ast.Expression = skolem
	for i := len(s.nonSkolems) - 1; i >= 0; i-- {
		expr = ast.NewJoin(s.nonSkolems[i].decl.Variable(), expr)
	}
	return expr
}

// skolemConstraint builds "skolemExpr in decl.Expression()" conjoined,
// unless decl's multiplicity is SET, with the matching multiplicity
// formula over skolemExpr, exactly as Skolemizer.java's addConstraints.
func skolemConstraint(decl *ast.Decl, skolemExpr ast.Expression) ast.Formula {
	constraint := ast.NewComparison(ast.SubsetOf, skolemExpr, decl.Expression())
	if decl.Multiplicity() == ast.SetMult {
		return constraint
	}
	return ast.Conjunction(constraint, ast.NewMultiplicity(decl.Multiplicity(), skolemExpr))
}

func (s *skolemizer) withDepth(depth int, f func() ast.Formula) ast.Formula {
	saved := s.skolemDepth
	s.skolemDepth = depth
	result := f()
	s.skolemDepth = saved
	return result
}

func (s *skolemizer) formula(f ast.Formula) ast.Formula {
	switch v := f.(type) {
	case *ast.ConstantFormula:
		return v
	case *ast.NotFormula:
		s.negated = !s.negated
		operand := s.formula(v.Operand())
		s.negated = !s.negated
		return ast.Not(operand)
	case *ast.BinaryFormula:
		return s.binaryFormula(v)
	case *ast.QuantifiedFormula:
		return s.quantifiedFormula(v)
	case *ast.MultiplicityFormula:
		return s.withDepth(-1, func() ast.Formula {
			return ast.NewMultiplicity(v.Multiplicity(), s.rewriteExpr(v.Expression()))
		})
	case *ast.ComparisonFormula:
		return s.withDepth(-1, func() ast.Formula {
			return ast.NewComparison(v.Op(), s.rewriteExpr(v.Left()), s.rewriteExpr(v.Right()))
		})
	case *ast.IntComparisonFormula:
		return s.withDepth(-1, func() ast.Formula {
			return ast.NewIntComparison(v.Op(), s.rewriteIntExpr(v.Left()), s.rewriteIntExpr(v.Right()))
		})
	case *ast.RelationPredicate:
		return s.withDepth(-1, func() ast.Formula {
			switch v.Kind() {
			case ast.AcyclicPred:
				return ast.NewAcyclic(v.Relation())
			case ast.FunctionPred:
				return ast.NewFunction(v.Relation(), s.rewriteExpr(v.Domain()), s.rewriteExpr(v.Range()))
			case ast.TotalOrderingPred:
				return ast.NewTotalOrdering(v.Relation(), v.Ordered(), v.First(), v.Last())
			}
			panic("fol2sat: unknown relation predicate kind")
		})
	}
	panic("fol2sat: unknown formula node")
}

func (s *skolemizer) binaryFormula(v *ast.BinaryFormula) ast.Formula {
	switch v.Op() {
	case ast.Iff:
		return s.withDepth(-1, func() ast.Formula {
			return ast.Biconditional(s.formula(v.Left()), s.formula(v.Right()))
		})
	case ast.And:
		if s.negated {
			return s.withDepth(-1, func() ast.Formula {
				return ast.Conjunction(s.formula(v.Left()), s.formula(v.Right()))
			})
		}
		return ast.Conjunction(s.formula(v.Left()), s.formula(v.Right()))
	case ast.Or:
		if !s.negated {
			return s.withDepth(-1, func() ast.Formula {
				return ast.Disjunction(s.formula(v.Left()), s.formula(v.Right()))
			})
		}
		return ast.Disjunction(s.formula(v.Left()), s.formula(v.Right()))
	case ast.Implies:
		if !s.negated {
			return s.withDepth(-1, func() ast.Formula {
				return ast.Implication(s.formula(v.Left()), s.formula(v.Right()))
			})
		}
		// not(a => b) == a && not b: negation distributes onto the
		// right operand only, per De Morgan's expansion of implication.
		s.negated = !s.negated
		left := s.formula(v.Left())
		s.negated = !s.negated
		right := s.formula(v.Right())
		return ast.Implication(left, right)
	}
	panic("fol2sat: unknown binary formula operator")
}

func (s *skolemizer) quantifiedFormula(qf *ast.QuantifiedFormula) ast.Formula {
	skolemizable := s.skolemDepth >= 0 &&
		((s.negated && qf.Quantifier() == ast.ForAll) || (!s.negated && qf.Quantifier() == ast.Exists))
	if skolemizable && len(s.nonSkolems) <= s.maxDepth {
		decls := qf.Decls()
		var constraints ast.Formula
		var savedVars []*ast.Variable
		for i := 0; i < decls.Size(); i++ {
			d := decls.Get(i)
			rewritten := ast.NewDecl(d.Variable(), d.Multiplicity(), s.rewriteExpr(d.Expression()))
			expr := s.skolemExpr(rewritten)
			s.repEnv[d.Variable()] = expr
			savedVars = append(savedVars, d.Variable())
			c := skolemConstraint(rewritten, expr)
			if constraints == nil {
				constraints = c
			} else {
				constraints = ast.Conjunction(constraints, c)
			}
		}
		body := s.formula(qf.Formula())
		for _, v := range savedVars {
			delete(s.repEnv, v)
		}
		if s.negated {
			return ast.Implication(constraints, body)
		}
		return ast.Conjunction(constraints, body)
	}

	decls := qf.Decls()
	rewrittenDecls := make([]*ast.Decl, decls.Size())
	var pushedVars []*ast.Variable
	canStack := s.skolemDepth >= 0 && len(s.nonSkolems) < s.maxDepth
	for i := 0; i < decls.Size(); i++ {
		d := decls.Get(i)
		expr := s.rewriteExpr(d.Expression())
		rd := ast.NewDecl(d.Variable(), d.Multiplicity(), expr)
		rewrittenDecls[i] = rd
		if canStack {
			upper := s.approxBound(expr)
			s.nonSkolems = append(s.nonSkolems, nonSkolem{decl: rd, upper: upper})
			s.varEnv[d.Variable()] = tupleSetMatrix(s.c, upper)
			pushedVars = append(pushedVars, d.Variable())
		}
	}
	savedDepth := s.skolemDepth
	if !canStack {
		s.skolemDepth = -1
	}
	body := s.withDepth(s.skolemDepth, func() ast.Formula { return s.formula(qf.Formula()) })
	s.skolemDepth = savedDepth
	s.nonSkolems = s.nonSkolems[:len(s.nonSkolems)-len(pushedVars)]
	for _, v := range pushedVars {
		delete(s.varEnv, v)
	}
	return ast.NewQuantifiedFormula(qf.Quantifier(), ast.NewDecls(rewrittenDecls...), body)
}

// tupleSetMatrix builds the constant matrix whose possibly-true tuples
// are exactly ts's members, the varEnv binding Approximate needs to fold
// a reference to an enclosing non-skolemizable declaration's variable
// into its upper bound rather than a single witness tuple.
func tupleSetMatrix(c *circuit.Circuit, ts *instance.TupleSet) *circuit.Matrix {
	m := circuit.NewMatrix(c, ts.Universe().Size(), ts.Arity())
	for _, idx := range ts.Indices() {
		m.Set(idx, c.T)
	}
	return m
}

// rewriteExpr substitutes any skolemized variable reference inside expr
// with its skolem expression, leaving everything else unchanged. Since
// skolemization only ever replaces whole Variable leaves, the rewrite is
// a structural copy that stops early wherever no bound variable occurs.
func (s *skolemizer) rewriteExpr(e ast.Expression) ast.Expression {
	switch v := e.(type) {
	case *ast.Variable:
		if repl, ok := s.repEnv[v]; ok {
			return repl
		}
		return v
	case *ast.Relation:
		return v
	case *ast.BinaryExpr:
		l, r := s.rewriteExpr(v.Left()), s.rewriteExpr(v.Right())
		switch v.Op() {
		case ast.Union:
			return ast.NewUnion(l, r)
		case ast.Intersection:
			return ast.NewIntersection(l, r)
		case ast.Difference:
			return ast.NewDifference(l, r)
		case ast.Join:
			return ast.NewJoin(l, r)
		case ast.Product:
			return ast.NewProduct(l, r)
		case ast.Override:
			return ast.NewOverride(l, r)
		}
	case *ast.UnaryExpr:
		operand := s.rewriteExpr(v.Operand())
		switch v.Op() {
		case ast.Transpose:
			return ast.NewTranspose(operand)
		case ast.Closure:
			return ast.NewClosure(operand)
		case ast.ReflexiveClosure:
			return ast.NewReflexiveClosure(operand)
		}
	case *ast.IfExpression:
		cond := s.withDepth(-1, func() ast.Formula { return s.formula(v.Condition()) })
		return ast.NewIfExpression(cond, s.rewriteExpr(v.Then()), s.rewriteExpr(v.Else()))
	case *ast.Comprehension:
		decls := v.Decls()
		rewrittenDecls := make([]*ast.Decl, decls.Size())
		for i := 0; i < decls.Size(); i++ {
			d := decls.Get(i)
			rewrittenDecls[i] = ast.NewDecl(d.Variable(), d.Multiplicity(), s.rewriteExpr(d.Expression()))
		}
		body := s.withDepth(-1, func() ast.Formula { return s.formula(v.Formula()) })
		return ast.NewComprehension(ast.NewDecls(rewrittenDecls...), body)
	case *ast.IntToExprCast:
		return ast.NewIntToExprCast(s.rewriteIntExpr(v.IntExpr()))
	}
	panic("fol2sat: unknown expression node")
}

// rewriteIntExpr is rewriteExpr's counterpart for integer expressions:
// it substitutes skolemized variables wherever an ExprToIntCast or a sum
// expression's domain brings one into an integer context.
func (s *skolemizer) rewriteIntExpr(e ast.IntExpression) ast.IntExpression {
	switch v := e.(type) {
	case *ast.IntConstant:
		return v
	case *ast.UnaryIntExpr:
		return ast.NewUnaryIntExpr(v.Op(), s.rewriteIntExpr(v.Operand()))
	case *ast.BinaryIntExpr:
		return ast.NewBinaryIntExpr(v.Op(), s.rewriteIntExpr(v.Left()), s.rewriteIntExpr(v.Right()))
	case *ast.SumExpression:
		decls := v.Decls()
		rewrittenDecls := make([]*ast.Decl, decls.Size())
		for i := 0; i < decls.Size(); i++ {
			d := decls.Get(i)
			rewrittenDecls[i] = ast.NewDecl(d.Variable(), d.Multiplicity(), s.rewriteExpr(d.Expression()))
		}
		return ast.NewSumExpression(ast.NewDecls(rewrittenDecls...), s.rewriteIntExpr(v.IntExpr()))
	case *ast.ExprToIntCast:
		return ast.NewExprToIntCast(v.Op(), s.rewriteExpr(v.Expr()))
	}
	panic("fol2sat: unknown int expression node")
}
