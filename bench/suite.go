// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"github.com/relfind/relfind"
	"github.com/relfind/relfind/ast"
	"github.com/relfind/relfind/gen"
	"github.com/relfind/relfind/instance"
)

// Scenario names one of spec.md §8's testable-property fixtures.
type Scenario struct {
	Name  string
	Build func() (ast.Formula, *instance.Bounds)
}

// Suite is the scenario set gen/relational.go currently builds. See
// gen/relational.go's doc comment and DESIGN.md for why the remaining
// §8 scenarios (CeilingsAndFloors, Dijkstra, RingElection, Bigconfig,
// Toughnut) are not included.
var Suite = []Scenario{
	{Name: "Pigeonhole(10,9)", Build: func() (ast.Formula, *instance.Bounds) { return gen.Pigeonhole(10, 9) }},
	{Name: "Sudoku(3)", Build: func() (ast.Formula, *instance.Bounds) { return gen.Sudoku(3) }},
}

// RunSuite solves every Scenario in scenarios concurrently across a
// pool of workers, returning one Response per scenario once every
// solve has finished.
func RunSuite(scenarios []Scenario, opts *relfind.Options, workers int) []Response {
	if workers < 1 {
		workers = 1
	}
	if workers > len(scenarios) {
		workers = len(scenarios)
	}
	pool := NewPool(workers)
	defer pool.Stop()

	results := make([]Response, len(scenarios))
	byName := make(map[string]int, len(scenarios))
	for i := range scenarios {
		byName[scenarios[i].Name] = i
	}
	record := func(resp *Response) {
		results[byName[resp.Scenario.Name]] = *resp
	}

	pending := len(scenarios)
	for i := range scenarios {
		s := &scenarios[i]
		req := &Request{Scenario: s, Opts: opts}
		// Ex answers with an unrelated, already-ready Response instead
		// of accepting req exactly when one is pending; keep offering
		// req until it is actually accepted (resp == nil), recording
		// whatever Response arrived in the meantime.
		for {
			resp := pool.Ex(req)
			if resp == nil {
				break
			}
			record(resp)
			pending--
		}
	}
	for ; pending > 0; pending-- {
		record(pool.Ex(nil))
	}
	return results
}
