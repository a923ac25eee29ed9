// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dimacs

import (
	"bytes"
	"testing"

	"github.com/relfind/relfind/z"
)

type litAdder struct {
	clauses [][]z.Lit
	cur     []z.Lit
}

func (a *litAdder) Add(m z.Lit) {
	if m == z.LitNull {
		a.clauses = append(a.clauses, a.cur)
		a.cur = nil
		return
	}
	a.cur = append(a.cur, m)
}

func TestReadCnf(t *testing.T) {
	src := "c a comment\np cnf 3 2\n1 -2 0\n2 3 0\n"
	dst := &litAdder{}
	if err := ReadCnf(bytes.NewBufferString(src), dst); err != nil {
		t.Fatalf("ReadCnf: %s", err)
	}
	if len(dst.clauses) != 2 {
		t.Fatalf("got %d clauses, want 2", len(dst.clauses))
	}
	if len(dst.clauses[0]) != 2 || len(dst.clauses[1]) != 2 {
		t.Fatalf("unexpected clause sizes: %v", dst.clauses)
	}
}

func TestWriteReadCnfRoundTrip(t *testing.T) {
	want := [][]z.Lit{
		{z.Dimacs2Lit(1), z.Dimacs2Lit(-2)},
		{z.Dimacs2Lit(2), z.Dimacs2Lit(3)},
	}
	var buf bytes.Buffer
	if err := WriteCnf(&buf, 3, want); err != nil {
		t.Fatalf("WriteCnf: %s", err)
	}
	dst := &litAdder{}
	if err := ReadCnf(&buf, dst); err != nil {
		t.Fatalf("ReadCnf: %s", err)
	}
	if len(dst.clauses) != len(want) {
		t.Fatalf("got %d clauses, want %d", len(dst.clauses), len(want))
	}
	for i, cl := range want {
		if len(cl) != len(dst.clauses[i]) {
			t.Fatalf("clause %d: got %v, want %v", i, dst.clauses[i], cl)
		}
		for j, m := range cl {
			if m != dst.clauses[i][j] {
				t.Fatalf("clause %d lit %d: got %v, want %v", i, j, dst.clauses[i][j], m)
			}
		}
	}
}
