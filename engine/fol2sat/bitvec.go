// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fol2sat

import (
	circuit "github.com/relfind/relfind/bool"
	"github.com/relfind/relfind/z"
)

// A bit vector is a fixed-width, little-endian (bit 0 is the least
// significant) two's-complement encoding of an int expression's value, one
// circuit literal per bit. Every arithmetic and relational integer
// operator of spec §4.3 is built as a small adder/comparator/shifter
// circuit over these vectors, mirroring how a hardware ALU would lay the
// same operators out in gates; ties the int encoding to the same
// definitional CNF path as every other gate in the formula, instead of
// giving integers a special-cased solver representation.
func bvConst(c *circuit.Circuit, width, v int) []z.Lit {
	bits := make([]z.Lit, width)
	uv := uint(v)
	for i := 0; i < width; i++ {
		if (uv>>uint(i))&1 == 1 {
			bits[i] = c.T
		} else {
			bits[i] = c.F
		}
	}
	return bits
}

func bvAdd(c *circuit.Circuit, a, b []z.Lit) []z.Lit {
	width := len(a)
	sum := make([]z.Lit, width)
	carry := c.F
	for i := 0; i < width; i++ {
		axb := c.Xor(a[i], b[i])
		sum[i] = c.Xor(axb, carry)
		carry = c.Or(c.And(a[i], b[i]), c.And(axb, carry))
	}
	return sum
}

func bvNeg(c *circuit.Circuit, a []z.Lit) []z.Lit {
	inv := make([]z.Lit, len(a))
	for i, l := range a {
		inv[i] = l.Not()
	}
	return bvAdd(c, inv, bvConst(c, len(a), 1))
}

func bvSub(c *circuit.Circuit, a, b []z.Lit) []z.Lit {
	return bvAdd(c, a, bvNeg(c, b))
}

// bvUSub subtracts b from a as unsigned values via ripple-borrow, also
// returning the borrow-out; borrowOut is true exactly when a < b
// (unsigned), which is how bvSlt and the division helpers below build
// their comparisons.
func bvUSub(c *circuit.Circuit, a, b []z.Lit) (diff []z.Lit, borrowOut z.Lit) {
	width := len(a)
	diff = make([]z.Lit, width)
	borrow := c.F
	for i := 0; i < width; i++ {
		axb := c.Xor(a[i], b[i])
		diff[i] = c.Xor(axb, borrow)
		nb := c.Or(c.And(a[i].Not(), b[i]), c.And(a[i].Not(), borrow))
		nb = c.Or(nb, c.And(b[i], borrow))
		borrow = nb
	}
	return diff, borrow
}

func bvMux(c *circuit.Circuit, cond z.Lit, a, b []z.Lit) []z.Lit {
	out := make([]z.Lit, len(a))
	for i := range a {
		out[i] = c.Ite(cond, a[i], b[i])
	}
	return out
}

func bvMask(c *circuit.Circuit, guard z.Lit, a []z.Lit) []z.Lit {
	out := make([]z.Lit, len(a))
	for i, b := range a {
		out[i] = c.And(guard, b)
	}
	return out
}

func bvCondNeg(c *circuit.Circuit, cond z.Lit, a []z.Lit) []z.Lit {
	return bvMux(c, cond, bvNeg(c, a), a)
}

func bvAnd(c *circuit.Circuit, a, b []z.Lit) []z.Lit {
	out := make([]z.Lit, len(a))
	for i := range a {
		out[i] = c.And(a[i], b[i])
	}
	return out
}

func bvOr(c *circuit.Circuit, a, b []z.Lit) []z.Lit {
	out := make([]z.Lit, len(a))
	for i := range a {
		out[i] = c.Or(a[i], b[i])
	}
	return out
}

func bvXor(c *circuit.Circuit, a, b []z.Lit) []z.Lit {
	out := make([]z.Lit, len(a))
	for i := range a {
		out[i] = c.Xor(a[i], b[i])
	}
	return out
}

// bvMul is a shift-and-add multiplier: O(width) partial products, each a
// width-wide AND-mask of a shifted by a fixed amount, accumulated with
// bvAdd. Overflow wraps silently, matching fixed-width two's-complement
// arithmetic.
func bvMul(c *circuit.Circuit, a, b []z.Lit) []z.Lit {
	width := len(a)
	acc := bvConst(c, width, 0)
	for i := 0; i < width; i++ {
		shifted := make([]z.Lit, width)
		for j := 0; j < width; j++ {
			if j-i >= 0 {
				shifted[j] = c.And(a[j-i], b[i])
			} else {
				shifted[j] = c.F
			}
		}
		acc = bvAdd(c, acc, shifted)
	}
	return acc
}

// bvUDiv is restoring unsigned division of nonnegative width-bit values,
// assumed to fit without the extra guard bit a textbook implementation
// would carry (sound as long as neither absolute value is the two's
// complement minimum, whose absolute value does not fit back in width
// bits — an edge case this translator does not special-case, matching
// how a fixed-width hardware divider would also overflow there).
func bvUDiv(c *circuit.Circuit, a, b []z.Lit) (q, r []z.Lit) {
	width := len(a)
	rem := bvConst(c, width, 0)
	q = make([]z.Lit, width)
	for i := width - 1; i >= 0; i-- {
		shifted := make([]z.Lit, width)
		for j := width - 1; j > 0; j-- {
			shifted[j] = rem[j-1]
		}
		shifted[0] = a[i]
		rem = shifted
		diff, borrow := bvUSub(c, rem, b)
		ge := borrow.Not()
		q[i] = ge
		rem = bvMux(c, ge, diff, rem)
	}
	return q, rem
}

// bvDivMod computes signed division truncating toward zero and a
// remainder that takes the dividend's sign, matching Go and Java's / and
// % operators: magnitudes are divided unsigned, then the quotient and
// remainder are re-signed from the operands' signs.
func bvDivMod(c *circuit.Circuit, a, b []z.Lit) (q, r []z.Lit) {
	signA := a[len(a)-1]
	signB := b[len(b)-1]
	absA := bvCondNeg(c, signA, a)
	absB := bvCondNeg(c, signB, b)
	uq, ur := bvUDiv(c, absA, absB)
	qsign := c.Xor(signA, signB)
	return bvCondNeg(c, qsign, uq), bvCondNeg(c, signA, ur)
}

// barrelShift shifts a by the value of amt (taken mod the smallest power
// of two >= width, extra high amt bits are ignored), log(width) stages of
// conditional shift-by-2^k muxed on amt's k'th bit. arithmetic selects the
// fill value for vacated bits on a right shift; it is ignored for a left
// shift, which always fills with zero.
func barrelShift(c *circuit.Circuit, a, amt []z.Lit, left, arithmetic bool) []z.Lit {
	width := len(a)
	cur := make([]z.Lit, width)
	copy(cur, a)
	fill := c.F
	if arithmetic {
		fill = a[width-1]
	}
	for s := 0; (1 << uint(s)) < width; s++ {
		if s >= len(amt) {
			break
		}
		shiftAmt := 1 << uint(s)
		shifted := make([]z.Lit, width)
		for j := 0; j < width; j++ {
			switch {
			case left && j-shiftAmt >= 0:
				shifted[j] = cur[j-shiftAmt]
			case left:
				shifted[j] = c.F
			case j+shiftAmt < width:
				shifted[j] = cur[j+shiftAmt]
			default:
				shifted[j] = fill
			}
		}
		cur = bvMux(c, amt[s], shifted, cur)
	}
	return cur
}

func bvIsZero(c *circuit.Circuit, a []z.Lit) z.Lit {
	negs := make([]z.Lit, len(a))
	for i, b := range a {
		negs[i] = b.Not()
	}
	return c.Ands(negs...)
}

func bvEq(c *circuit.Circuit, a, b []z.Lit) z.Lit {
	res := c.T
	for i := range a {
		res = c.And(res, c.Iff(a[i], b[i]))
	}
	return res
}

// bvSlt returns a literal true iff a < b as signed values, via the
// standard identity: when the operands' signs differ the more negative
// one is whichever is negative; when they agree, unsigned comparison of
// the magnitudes (read off the subtractor's borrow-out) agrees with
// signed comparison.
func bvSlt(c *circuit.Circuit, a, b []z.Lit) z.Lit {
	_, borrow := bvUSub(c, a, b)
	signA := a[len(a)-1]
	signB := b[len(b)-1]
	diffSign := c.Xor(signA, signB)
	return c.Ite(diffSign, signA, borrow)
}
