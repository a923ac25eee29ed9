// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package instance provides the finite universe, tuple and bounds model
// a formula is solved against, and the concrete Instance a solution
// produces.
//
// Grounded on kodkod.instance.Universe / TupleFactory / TupleSet /
// Bounds / Instance.
package instance

import "fmt"

// Universe is a finite, ordered sequence of distinct atoms. Atom
// identity is its position in the sequence; tuples over the universe
// are base-|U| integers in that position.
type Universe struct {
	atoms []interface{}
	index map[interface{}]int
}

// NewUniverse creates a Universe from atoms, in the given order. Panics
// if atoms contains a duplicate.
func NewUniverse(atoms ...interface{}) *Universe {
	u := &Universe{atoms: append([]interface{}(nil), atoms...), index: make(map[interface{}]int, len(atoms))}
	for i, a := range atoms {
		if _, ok := u.index[a]; ok {
			panic(fmt.Sprintf("instance: duplicate atom %v", a))
		}
		u.index[a] = i
	}
	return u
}

// Size returns the number of atoms.
func (u *Universe) Size() int { return len(u.atoms) }

// AtomAt returns the atom at position i.
func (u *Universe) AtomAt(i int) interface{} { return u.atoms[i] }

// IndexOf returns the position of atom, or (-1, false) if it is not a
// member of the universe.
func (u *Universe) IndexOf(atom interface{}) (int, bool) {
	i, ok := u.index[atom]
	return i, ok
}

// Factory returns a TupleFactory over u.
func (u *Universe) Factory() *TupleFactory { return &TupleFactory{universe: u} }
