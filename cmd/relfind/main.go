// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Command relfind solves one of the gen package's relational scenarios
// and prints the outcome, optionally with the satisfying instance or
// solving statistics.
//
//	⎣ ⇨ relfind -scenario sudoku -order 3
//	⎣ ⇨ relfind -scenario pigeonhole -pigeons 10 -holes 9 -model
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/relfind/relfind"
	"github.com/relfind/relfind/ast"
	"github.com/relfind/relfind/engine/satlab/netsolve"
	"github.com/relfind/relfind/gen"
	"github.com/relfind/relfind/instance"
)

var pprofAddr = flag.String("pprof", "", "address to serve http profile (eg :6060)")
var scenario = flag.String("scenario", "sudoku", "scenario to solve: sudoku or pigeonhole")
var order = flag.Int("order", 3, "sudoku box order (scenario=sudoku)")
var pigeons = flag.Int("pigeons", 10, "pigeon count (scenario=pigeonhole)")
var holes = flag.Int("holes", 9, "hole count (scenario=pigeonhole)")
var timeout = flag.Duration("timeout", 30*time.Second, "SAT search bound")
var bitwidth = flag.Int("bitwidth", 4, "integer encoding bitwidth")
var showModel = flag.Bool("model", false, "print the satisfying instance's relations")
var showStats = flag.Bool("stats", false, "print problem size and timing")
var solverAddr = flag.String("solver", "", "address of a CRISP solver server to use instead of the in-process backend (eg :4000 or @/tmp/crisp.sock)")

func build() (ast.Formula, *instance.Bounds, error) {
	switch *scenario {
	case "sudoku":
		f, b := gen.Sudoku(*order)
		return f, b, nil
	case "pigeonhole":
		f, b := gen.Pigeonhole(*pigeons, *holes)
		return f, b, nil
	default:
		return nil, nil, fmt.Errorf("unknown scenario %q", *scenario)
	}
}

func printInstance(in *instance.Instance) {
	u := in.Universe()
	for _, r := range in.Relations() {
		tuples := in.Tuples(r)
		fmt.Printf("%s =", r.Name())
		for _, idx := range tuples.Indices() {
			atoms := u.Factory().Tuple(idx, r.Arity())
			fmt.Print(" (")
			for i, a := range atoms {
				if i > 0 {
					fmt.Print(",")
				}
				fmt.Print(u.AtomAt(a))
			}
			fmt.Print(")")
		}
		fmt.Println()
	}
}

func main() {
	log.SetPrefix("c [relfind] ")
	flag.Parse()
	if *pprofAddr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	formula, bounds, err := build()
	if err != nil {
		log.Fatal(err)
	}

	opts := &relfind.Options{Timeout: *timeout, Bitwidth: *bitwidth}
	if *solverAddr != "" {
		opts.Solver = netsolve.NewFactory(*solverAddr)
	}

	sol, err := relfind.Solve(formula, bounds, opts)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("s %s\n", sol.Outcome)
	if *showStats {
		st := sol.Stats
		fmt.Printf("c primaryVars=%d totalVars=%d clauses=%d translate=%s solve=%s\n",
			st.PrimaryVariables, st.TotalVariables, st.Clauses, st.TranslationTime, st.SolveTime)
	}
	if *showModel && sol.Outcome.Sat() {
		printInstance(sol.Instance)
	}
	if !sol.Outcome.Sat() {
		os.Exit(1)
	}
}
