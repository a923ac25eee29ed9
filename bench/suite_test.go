// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import "testing"

func TestRunSuite(t *testing.T) {
	results := RunSuite(Suite, nil, 2)
	if len(results) != len(Suite) {
		t.Fatalf("got %d results, want %d", len(results), len(Suite))
	}
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Scenario.Name, r.Err)
		}
		if r.Solution == nil {
			t.Fatalf("%s: nil solution", r.Scenario.Name)
		}
		seen[r.Scenario.Name] = true
	}
	for _, s := range Suite {
		if !seen[s.Name] {
			t.Fatalf("missing result for %s", s.Name)
		}
	}
}
