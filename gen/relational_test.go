// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import "testing"

func TestPigeonholeBounds(t *testing.T) {
	formula, bounds := Pigeonhole(10, 9)
	if formula == nil || bounds == nil {
		t.Fatalf("Pigeonhole returned nil")
	}
	if bounds.Universe().Size() != 19 {
		t.Fatalf("universe size = %d, want 19", bounds.Universe().Size())
	}
}

func TestSudokuBounds(t *testing.T) {
	formula, bounds := Sudoku(3)
	if formula == nil || bounds == nil {
		t.Fatalf("Sudoku returned nil")
	}
	if bounds.Universe().Size() != 27 {
		t.Fatalf("universe size = %d, want 27", bounds.Universe().Size())
	}
	if len(bounds.Relations()) != 3+9+1 {
		t.Fatalf("relation count = %d, want %d (Row, Col, Val, grid, 9 boxes)", len(bounds.Relations()), 13)
	}
}
