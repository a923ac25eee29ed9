// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"fmt"

	"github.com/relfind/relfind/ast"
	"github.com/relfind/relfind/instance"
)

// Pigeonhole builds the formula "pigeons pigeons cannot be placed into
// holes holes with no hole taking two pigeons": a total function from
// Pigeon to Hole (assign) that is also injective. It is unsatisfiable
// whenever pigeons > holes.
func Pigeonhole(pigeons, holes int) (ast.Formula, *instance.Bounds) {
	names := make([]interface{}, 0, pigeons+holes)
	for i := 0; i < pigeons; i++ {
		names = append(names, fmt.Sprintf("p%d", i))
	}
	for i := 0; i < holes; i++ {
		names = append(names, fmt.Sprintf("h%d", i))
	}
	universe := instance.NewUniverse(names...)
	f := universe.Factory()

	pigeonAtoms := indexRange(0, pigeons)
	holeAtoms := indexRange(pigeons, pigeons+holes)

	pigeon := ast.Unary("Pigeon")
	hole := ast.Unary("Hole")
	assign := ast.Nary("assign", 2)

	bounds := instance.NewBounds(universe)
	pigeonSet := f.IndexSet(1, pigeonAtoms)
	holeSet := f.IndexSet(1, holeAtoms)
	bounds.BoundExactly(pigeon, pigeonSet)
	bounds.BoundExactly(hole, holeSet)
	bounds.Bound(assign, f.NoneOf(2), pigeonSet.Product(holeSet))

	p := ast.UnaryVar("p")
	total := ast.NewQuantifiedFormula(ast.ForAll, ast.NewDecls(p.OneOf(pigeon)),
		ast.NewMultiplicity(ast.One, ast.NewJoin(p, assign)))

	h := ast.UnaryVar("h")
	injective := ast.NewQuantifiedFormula(ast.ForAll, ast.NewDecls(h.OneOf(hole)),
		ast.NewMultiplicity(ast.Lone, ast.NewJoin(assign, h)))

	return ast.Conjunction(total, injective), bounds
}

// Sudoku builds an empty order-n sudoku board (an n^2 x n^2 grid, n x n
// boxes): every cell holds exactly one value, and every row, column and
// box contains each value exactly once. No clues are pre-filled, so any
// solution is a valid completed grid.
func Sudoku(order int) (ast.Formula, *instance.Bounds) {
	sz := order * order
	names := make([]interface{}, 0, 3*sz)
	for _, prefix := range []string{"r", "c", "v"} {
		for i := 0; i < sz; i++ {
			names = append(names, fmt.Sprintf("%s%d", prefix, i))
		}
	}
	universe := instance.NewUniverse(names...)
	f := universe.Factory()

	row := ast.Unary("Row")
	col := ast.Unary("Col")
	val := ast.Unary("Val")
	grid := ast.Nary("grid", 3)

	rowSet := f.IndexSet(1, indexRange(0, sz))
	colSet := f.IndexSet(1, indexRange(sz, 2*sz))
	valSet := f.IndexSet(1, indexRange(2*sz, 3*sz))

	bounds := instance.NewBounds(universe)
	bounds.BoundExactly(row, rowSet)
	bounds.BoundExactly(col, colSet)
	bounds.BoundExactly(val, valSet)
	bounds.Bound(grid, f.NoneOf(3), rowSet.Product(colSet).Product(valSet))

	boxes := make([]*ast.Relation, sz)
	for b := 0; b < sz; b++ {
		rowGroup, colGroup := b/order, b%order
		var pairs [][]int
		for dr := 0; dr < order; dr++ {
			for dc := 0; dc < order; dc++ {
				r := rowGroup*order + dr
				c := colGroup*order + dc
				pairs = append(pairs, []int{r, sz + c})
			}
		}
		boxRel := ast.Nary(fmt.Sprintf("Box%d", b), 2)
		bounds.BoundExactly(boxRel, f.Setof(2, pairs...))
		boxes[b] = boxRel
	}

	r := ast.UnaryVar("r")
	c := ast.UnaryVar("c")
	v := ast.UnaryVar("v")

	// every cell holds exactly one value: c.(r.grid) is one for all r, c.
	cellFilled := ast.NewQuantifiedFormula(ast.ForAll,
		ast.NewDecls(r.OneOf(row), c.OneOf(col)),
		ast.NewMultiplicity(ast.One, ast.NewJoin(c, ast.NewJoin(r, grid))))

	// every value appears at most once per row: (r.grid).v is lone for all r, v.
	rowUnique := ast.NewQuantifiedFormula(ast.ForAll,
		ast.NewDecls(r.OneOf(row), v.OneOf(val)),
		ast.NewMultiplicity(ast.Lone, ast.NewJoin(ast.NewJoin(r, grid), v)))

	// every value appears at most once per column: (grid.v).c is lone for all c, v.
	colUnique := ast.NewQuantifiedFormula(ast.ForAll,
		ast.NewDecls(c.OneOf(col), v.OneOf(val)),
		ast.NewMultiplicity(ast.Lone, ast.NewJoin(ast.NewJoin(grid, v), c)))

	// every value appears at most once per box.
	var boxUnique ast.Formula = ast.True
	for _, boxRel := range boxes {
		boxUnique = ast.Conjunction(boxUnique, ast.NewMultiplicity(ast.Lone,
			ast.NewIntersection(boxRel, ast.NewJoin(grid, v))))
	}
	boxUnique = ast.NewQuantifiedFormula(ast.ForAll, ast.NewDecls(v.OneOf(val)), boxUnique)

	formula := ast.Conjunction(cellFilled, ast.Conjunction(rowUnique, ast.Conjunction(colUnique, boxUnique)))
	return formula, bounds
}

func indexRange(from, to int) []int {
	idx := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		idx = append(idx, i)
	}
	return idx
}
