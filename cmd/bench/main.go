// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Command bench runs the scenario suite used to validate spec.md §8's
// testable properties and prints each scenario's outcome and
// Statistics.
//
//	⎣ ⇨ bench [options]
//	  -timeout duration
//	  	per-scenario SAT search bound (default 30s)
//	  -workers int
//	  	number of scenarios to solve concurrently (default 2)
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/relfind/relfind"
	"github.com/relfind/relfind/bench"
)

var timeout = flag.Duration("timeout", 30*time.Second, "per-scenario SAT search bound")
var workers = flag.Int("workers", 2, "number of scenarios to solve concurrently")

func main() {
	flag.Parse()
	opts := &relfind.Options{Timeout: *timeout}
	results := bench.RunSuite(bench.Suite, opts, *workers)
	code := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "%-24s error: %s\n", r.Scenario.Name, r.Err)
			code = 1
			continue
		}
		st := r.Solution.Stats
		fmt.Printf("%-24s %-24s primaryVars=%-6d totalVars=%-6d clauses=%-6d translate=%-10s solve=%s\n",
			r.Scenario.Name, r.Solution.Outcome, st.PrimaryVariables, st.TotalVariables,
			st.Clauses, st.TranslationTime, st.SolveTime)
	}
	os.Exit(code)
}
