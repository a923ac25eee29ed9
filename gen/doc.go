// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package gen contains generators for common kinds of formulas.
//
// Package gen also supplies a random solver, which returns random
// results within a random period of time.
//
// Php, Rand3Cnf, BinCycle, Partition, Color and Cubes build raw CNF and
// stay at that level, for exercising engine/satlab backends directly.
// Pigeonhole and Sudoku, the relational fixtures, build an
// ast.Formula and an instance.Bounds instead, for exercising the
// fol2sat/solve pipeline end to end. The example encodings themselves
// (a Sudoku puzzle, a pigeonhole count) are collaborators the pipeline
// interprets, not part of what it re-specifies, so these fixtures are
// illustrative test content rather than certified reproductions of any
// particular published instance.
package gen
