// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package dimacs reads and writes the DIMACS CNF and incremental CNF
// (iCNF) text formats used to exchange clause sets with other SAT
// tools and to archive the problems engine/satlab solves.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/relfind/relfind/z"
)

// Adder receives clauses as z.LitNull-terminated literal sequences,
// the same contract engine/satlab.Adder uses. ReadCnf writes into
// whatever Adder a caller supplies, rather than only accepting a
// concrete satlab.Solver, so a clause set can be read directly into a
// test fixture or a solver. ReadICnf writes into an ICnfVis instead.
type Adder interface {
	Add(m z.Lit)
}

// ReadCnf parses a DIMACS CNF file from r and adds its clauses to dst.
// The "p cnf nvars nclauses" header is read for variable-count
// bookkeeping only; ReadCnf does not reject a clause set whose actual
// literal or clause count disagrees with the header, matching the
// permissive style most CNF producers rely on.
func ReadCnf(r io.Reader, dst Adder) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			continue
		case 'p':
			continue
		}
		if err := addDimacsLits(line, dst, lineNo); err != nil {
			return err
		}
	}
	return sc.Err()
}

// ICnfVis is the destination for ReadICnf: Add and Assume append a
// literal to the clause or assumption line under construction, and a
// z.LitNull terminates it; Eof is called once, after the last line.
// Named to match the teacher's cmd/gini/icnf.go visitor, generalized
// here out of icnf_test.go's iCnfLine fixture into an exported
// interface of the package itself.
type ICnfVis interface {
	Add(m z.Lit)
	Assume(m z.Lit)
	Eof()
}

// ReadICnf parses the incremental CNF format: a "p inccnf" header, a
// block of permanent clauses, then zero or more assumption lines
// prefixed with "a". Each clause or assumption is a space-separated
// list of signed integers terminated by 0, and may continue over
// several lines; an assumption lasts until its terminating 0.
func ReadICnf(r io.Reader, dst ICnfVis) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	lineNo := 0
	assuming := false
	assume := func(m z.Lit) {
		dst.Assume(m)
		if m == z.LitNull {
			assuming = false
		}
	}
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			continue
		case 'p':
			continue
		case 'a':
			assuming = true
			if err := addICnfLits(line[1:], assume, lineNo); err != nil {
				return err
			}
			continue
		}
		add := dst.Add
		if assuming {
			add = assume
		}
		if err := addICnfLits(line, add, lineNo); err != nil {
			return err
		}
	}
	dst.Eof()
	return sc.Err()
}

func addDimacsLits(line string, dst Adder, lineNo int) error {
	return addICnfLits(line, dst.Add, lineNo)
}

func addICnfLits(line string, add func(z.Lit), lineNo int) error {
	i := 0
	n := len(line)
	for i < n {
		for i < n && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= n {
			break
		}
		j := i
		for j < n && line[j] != ' ' && line[j] != '\t' {
			j++
		}
		d, err := strconv.Atoi(line[i:j])
		if err != nil {
			return fmt.Errorf("dimacs: line %d: %q: %s", lineNo, line[i:j], err)
		}
		if d == 0 {
			add(z.LitNull)
		} else {
			add(z.Dimacs2Lit(d))
		}
		i = j
	}
	return nil
}

// WriteCnf writes clauses in DIMACS CNF format to w, preceded by a
// "p cnf nvars nclauses" header. nvars is the declared variable count;
// callers with no reserved tail of unused variables can pass the
// largest variable appearing in clauses.
func WriteCnf(w io.Writer, nvars int, clauses [][]z.Lit) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", nvars, len(clauses)); err != nil {
		return err
	}
	for _, cl := range clauses {
		for _, m := range cl {
			if _, err := fmt.Fprintf(bw, "%d ", m.Dimacs()); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("0\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
