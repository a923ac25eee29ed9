// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package satlab

// Factory builds a fresh Solver instance. DefaultFactory builds the
// in-process S backend; engine/satlab/netsolve.NewFactory builds one
// that dials a remote solver over the netsolve wire protocol.
//
// Grounded on kodkod.engine.satlab.SATFactory's family of static
// factories (DefaultSAT4J, MiniSat, ...), generalized to a Go function
// value instead of an enum of static singletons.
type Factory func() Solver

// DefaultFactory returns a Factory for the in-process default backend.
func DefaultFactory() Factory {
	return func() Solver { return NewS() }
}
