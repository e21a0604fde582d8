/*
 * vericore - Four-state value representation.
 *
 * Copyright 2026, The vericore Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package fourstate implements the IEEE-1364 four-state bit algebra shared
// verbatim between compile-time constant folding (internal/parser) and the
// device-side runtime helpers the scheduler VM builder targets
// (internal/vm). Every value is a triple (val, x, z) of equal-width
// bitmasks: val is the bit pattern, x marks unknown bits, z marks
// high-impedance bits. Per spec, val & (x|z) == val need not hold — a bit's
// val is meaningless wherever x or z is set, and every operator below
// treats x and z uniformly as "unknown" except case/wildcard equality,
// which distinguish them exactly.
//
// A single limb-based representation serves the spec's three described
// containers (32-bit, 64-bit, wide-N-limb): width determines limb count,
// and Value32/Value64 below are thin convenience constructors over the
// same storage rather than three separate implementations — the teacher's
// own 370 floating point and packed decimal code (cpu_float.go,
// cpu_decimal.go) is hand-rolled bit arithmetic of exactly this shape, one
// algorithm parameterized by operand width rather than one per width.
package fourstate

const limbBits = 64

// Value is a four-state value of a declared bit Width.
type Value struct {
	Width int
	Val   []uint64
	X     []uint64
	Z     []uint64
}

func numLimbs(width int) int {
	if width <= 0 {
		return 0
	}
	return (width + limbBits - 1) / limbBits
}

// New returns an all-zero, fully-known value of the given width.
func New(width int) Value {
	n := numLimbs(width)
	return Value{Width: width, Val: make([]uint64, n), X: make([]uint64, n), Z: make([]uint64, n)}
}

// Value64 builds a fully-known value from a uint64 bit pattern, masked to width.
func Value64(v uint64, width int) Value {
	r := New(width)
	if len(r.Val) > 0 {
		r.Val[0] = v
	}
	r.mask()
	return r
}

// Value32 builds a fully-known value from a uint32 bit pattern, masked to width.
func Value32(v uint32, width int) Value {
	return Value64(uint64(v), width)
}

// AllX returns a value of the given width with every bit unknown.
func AllX(width int) Value {
	r := New(width)
	for i := range r.X {
		r.X[i] = ^uint64(0)
	}
	r.mask()
	return r
}

// AllZ returns a value of the given width with every bit high-impedance.
func AllZ(width int) Value {
	r := New(width)
	for i := range r.Z {
		r.Z[i] = ^uint64(0)
	}
	r.mask()
	return r
}

// Clone returns an independent copy of v.
func (v Value) Clone() Value {
	r := Value{Width: v.Width,
		Val: append([]uint64(nil), v.Val...),
		X:   append([]uint64(nil), v.X...),
		Z:   append([]uint64(nil), v.Z...),
	}
	return r
}

func topLimbMask(width int) uint64 {
	rem := width % limbBits
	if rem == 0 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(rem)) - 1
}

// mask clears bits beyond Width in every limb, as the final step of every
// operation (spec.md §3 invariant).
func (v *Value) mask() {
	n := numLimbs(v.Width)
	if n == 0 {
		v.Val, v.X, v.Z = nil, nil, nil
		return
	}
	top := topLimbMask(v.Width)
	for _, limbs := range [][]uint64{v.Val, v.X, v.Z} {
		for i := n; i < len(limbs); i++ {
			limbs[i] = 0
		}
		if n-1 < len(limbs) {
			limbs[n-1] &= top
		}
	}
}

func getBit(limbs []uint64, i int) bool {
	word, bit := i/limbBits, uint(i%limbBits)
	if word >= len(limbs) {
		return false
	}
	return (limbs[word]>>bit)&1 != 0
}

func setBit(limbs []uint64, i int, v bool) {
	word, bit := i/limbBits, uint(i%limbBits)
	if word >= len(limbs) {
		return
	}
	if v {
		limbs[word] |= uint64(1) << bit
	} else {
		limbs[word] &^= uint64(1) << bit
	}
}

// IsUnknown reports whether bit i is X or Z.
func (v Value) IsUnknown(i int) bool {
	return getBit(v.X, i) || getBit(v.Z, i)
}

// HasUnknown reports whether any bit in v is X or Z.
func (v Value) HasUnknown() bool {
	for i := 0; i < v.Width; i++ {
		if v.IsUnknown(i) {
			return true
		}
	}
	return false
}

// Bit returns the (val,x,z) triple of bit i.
func (v Value) Bit(i int) (val, x, z bool) {
	return getBit(v.Val, i), getBit(v.X, i), getBit(v.Z, i)
}

func knownBit(val, x, z bool) (known bool, isOne bool) {
	if x || z {
		return false, false
	}
	return true, val
}

// resized returns a value of the given target width, zero-extended or
// truncated, preserving per-bit x/z classification (no arithmetic
// collapsing) — used by select/concat/extend, never by arithmetic ops
// (which always produce their own width per operator contract).
func (v Value) resizedZeroExtend(width int) Value {
	r := New(width)
	n := v.Width
	if width < n {
		n = width
	}
	for i := 0; i < n; i++ {
		val, x, z := v.Bit(i)
		setBit(r.Val, i, val)
		setBit(r.X, i, x)
		setBit(r.Z, i, z)
	}
	r.mask()
	return r
}

func (v Value) resizedSignExtend(width int) Value {
	r := v.resizedZeroExtend(width)
	if v.Width == 0 || width <= v.Width {
		return r
	}
	sval, sx, sz := v.Bit(v.Width - 1)
	for i := v.Width; i < width; i++ {
		setBit(r.Val, i, sval)
		setBit(r.X, i, sx)
		setBit(r.Z, i, sz)
	}
	r.mask()
	return r
}

// Extend widens v to width, zero-extending if unsigned or sign-extending
// if signed, per IEEE-1800's widening rule (spec.md §9 Open Question: when
// widening ==?/!=? operands of mixed signedness, the narrower operand is
// zero-extended if declared unsigned, sign-extended if declared signed).
func (v Value) Extend(width int, signed bool) Value {
	if width <= v.Width {
		return v.resizedZeroExtend(width)
	}
	if signed {
		return v.resizedSignExtend(width)
	}
	return v.resizedZeroExtend(width)
}

// AsUint64 returns the known value as a uint64, ignoring width beyond 64
// bits and ignoring unknown bits (caller must have already checked
// HasUnknown when that matters). Used for small-width fast paths such as
// replication counts and case-entry widths.
func (v Value) AsUint64() uint64 {
	if len(v.Val) == 0 {
		return 0
	}
	return v.Val[0]
}

// AsInt64 interprets the low 64 bits of v as a two's-complement signed
// integer sign-extended from Width.
func (v Value) AsInt64() int64 {
	u := v.AsUint64()
	if v.Width >= 64 || v.Width <= 0 {
		return int64(u)
	}
	signBit := uint64(1) << uint(v.Width-1)
	if u&signBit != 0 {
		u |= ^uint64(0) << uint(v.Width)
	}
	return int64(u)
}
