// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

import "fmt"

// Vars maintains a deterministic, reusable mapping between "outer"
// literals (as presented by a client, e.g. primary variables assigned by
// the FOL-to-Boolean translator) and a densely packed range of "inner"
// variables suitable for direct use by a SAT backend or circuit factory.
//
// Inner variables not associated with any outer literal may be allocated
// with Inner and returned to the free list with Free, so that auxiliary
// gate variables can be recycled across incremental solves.
type Vars struct {
	outerToInner map[Var]Var
	innerToOuter map[Var]Var
	free         []Var
	next         Var
}

// NewVars creates an empty Vars.
func NewVars() *Vars {
	return &Vars{
		outerToInner: make(map[Var]Var),
		innerToOuter: make(map[Var]Var),
		next:         1,
	}
}

func (vs *Vars) alloc() Var {
	if n := len(vs.free); n > 0 {
		v := vs.free[n-1]
		vs.free = vs.free[:n-1]
		return v
	}
	v := vs.next
	vs.next++
	return v
}

// ToInner returns the inner literal corresponding to m, allocating a new
// inner variable the first time m's variable is seen.
func (vs *Vars) ToInner(m Lit) Lit {
	ov := m.Var()
	iv, ok := vs.outerToInner[ov]
	if !ok {
		iv = vs.alloc()
		vs.outerToInner[ov] = iv
		vs.innerToOuter[iv] = ov
	}
	if m.IsPos() {
		return iv.Pos()
	}
	return iv.Neg()
}

// ToOuter returns the outer literal corresponding to the inner literal m,
// or LitNull if m's variable was never produced by ToInner.
func (vs *Vars) ToOuter(m Lit) Lit {
	iv := m.Var()
	ov, ok := vs.innerToOuter[iv]
	if !ok {
		return LitNull
	}
	if m.IsPos() {
		return ov.Pos()
	}
	return ov.Neg()
}

// Inner allocates a fresh inner variable with no outer counterpart and
// returns its positive literal.
func (vs *Vars) Inner() Lit {
	return vs.alloc().Pos()
}

// Free returns m's variable to the free list.  It is an error to use m
// after calling Free.
func (vs *Vars) Free(m Lit) {
	v := m.Var()
	delete(vs.innerToOuter, v)
	vs.free = append(vs.free, v)
}

func (vs *Vars) String() string {
	return fmt.Sprintf("Vars{next:%d outer:%d free:%d}", vs.next, len(vs.outerToInner), len(vs.free))
}
