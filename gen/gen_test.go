// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"testing"

	"github.com/relfind/relfind/engine/satlab"
)

func TestPhpUnsat(t *testing.T) {
	s := satlab.NewS()
	Php(s, 5, 4)
	if s.Solve() != -1 {
		t.Errorf("pigeonhole 5 into 4 should be unsat")
	}
}

func TestBinCycleSat(t *testing.T) {
	s := satlab.NewS()
	BinCycle(s, 8)
	if s.Solve() != 1 {
		t.Errorf("a binary cycle clause set should be sat")
	}
}

func TestRand3CnfRuns(t *testing.T) {
	s := satlab.NewS()
	Rand3Cnf(s, 40, 120)
	if r := s.Solve(); r != 1 && r != -1 {
		t.Errorf("solve returned %d, want a definite result", r)
	}
}

func TestRandCuberSize(t *testing.T) {
	c := NewRandCuber(5, 100)
	cube := c.RandCube(nil)
	if len(cube) < 1 || len(cube) > 5 {
		t.Errorf("cube size %d out of [1,5]", len(cube))
	}
}
