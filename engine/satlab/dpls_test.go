// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package satlab

import (
	"bytes"
	"testing"

	"github.com/relfind/relfind/dimacs"
)

func TestSolveDimacsCnf(t *testing.T) {
	src := "c trivial satisfiable instance\np cnf 2 2\n1 2 0\n-1 -2 0\n"
	s := NewS()
	if err := dimacs.ReadCnf(bytes.NewBufferString(src), s); err != nil {
		t.Fatalf("ReadCnf: %s", err)
	}
	if r := s.Solve(); r != 1 {
		t.Fatalf("Solve() = %d, want 1 (sat)", r)
	}
}

func TestSolveDimacsCnfUnsat(t *testing.T) {
	src := "p cnf 1 2\n1 0\n-1 0\n"
	s := NewS()
	if err := dimacs.ReadCnf(bytes.NewBufferString(src), s); err != nil {
		t.Fatalf("ReadCnf: %s", err)
	}
	if r := s.Solve(); r != -1 {
		t.Fatalf("Solve() = %d, want -1 (unsat)", r)
	}
}
