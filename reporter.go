// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package relfind

import "github.com/relfind/relfind/ast"

// Reporter receives progress callbacks as Solve moves a formula through
// the pipeline: skolemization, symmetry breaking, Boolean translation,
// CNF translation, and finally the SAT search itself.
//
// Grounded on spec.md §6's Reporter callback surface.
type Reporter interface {
	// Skolemizing is called once per declaration the skolemizer
	// replaces, naming the fresh relation it introduced and the
	// enclosing universal variables it was joined against.
	Skolemizing(decl *ast.Decl, skolemRelation *ast.Relation, universals []*ast.Variable)

	// GeneratingSBP is called before symmetry-breaking predicates would
	// be generated. No-op in this implementation: see DESIGN.md's note
	// on symmetry breaking being out of scope.
	GeneratingSBP()

	// DetectingSymmetries is called before bound-symmetry detection
	// would run. Also currently a no-op hook.
	DetectingSymmetries()

	// TranslatingToBoolean is called once, before the FOL->Bool pass
	// begins.
	TranslatingToBoolean()

	// TranslatingToCNF is called once, before the Bool->CNF pass
	// begins.
	TranslatingToCNF()

	// SolvingCNF is called once, immediately before the SAT backend's
	// Solve is invoked, with the final variable and clause counts.
	SolvingCNF(primaryVars, totalVars, clauses int)
}

// NopReporter implements Reporter with no-op methods; it is the default
// Reporter for Options that don't set one.
type NopReporter struct{}

func (NopReporter) Skolemizing(*ast.Decl, *ast.Relation, []*ast.Variable) {}
func (NopReporter) GeneratingSBP()                                       {}
func (NopReporter) DetectingSymmetries()                                 {}
func (NopReporter) TranslatingToBoolean()                                {}
func (NopReporter) TranslatingToCNF()                                    {}
func (NopReporter) SolvingCNF(primaryVars, totalVars, clauses int)       {}
