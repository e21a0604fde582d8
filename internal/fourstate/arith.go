/*
 * vericore - Four-state arithmetic operators.
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

package fourstate

// Arithmetic operators (+, -, *, /, %, **): if any bit of either operand is
// unknown, the result is all-X at the requested width. Otherwise the
// operation is computed over the width's modular integers (two's
// complement for signed interpretation, wrapping on overflow).

func addLimbs(a, b []uint64, n int) []uint64 {
	r := make([]uint64, n)
	var carry uint64
	for i := 0; i < n; i++ {
		var av, bv uint64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		sum := av + bv + carry
		// Overflow occurred if the sum wrapped past av, or it landed
		// exactly on av while actually adding something nonzero.
		if sum < av || (sum == av && (bv != 0 || carry != 0)) {
			carry = 1
		} else {
			carry = 0
		}
		r[i] = sum
	}
	return r
}

func subLimbs(a, b []uint64, n int) []uint64 {
	r := make([]uint64, n)
	var borrow uint64
	for i := 0; i < n; i++ {
		var av, bv uint64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		t1 := av - bv
		b1 := av < bv
		t2 := t1 - borrow
		b2 := t1 < borrow
		borrow = 0
		if b1 || b2 {
			borrow = 1
		}
		r[i] = t2
	}
	return r
}

func negLimbs(a []uint64, n int) []uint64 {
	inv := make([]uint64, n)
	for i := 0; i < n; i++ {
		var av uint64
		if i < len(a) {
			av = a[i]
		}
		inv[i] = ^av
	}
	one := make([]uint64, n)
	if n > 0 {
		one[0] = 1
	}
	return addLimbs(inv, one, n)
}

func isZeroLimbs(a []uint64) bool {
	for _, w := range a {
		if w != 0 {
			return false
		}
	}
	return true
}

// Add implements `+` at the requested result width.
func Add(a, b Value, width int) Value {
	if a.HasUnknown() || b.HasUnknown() {
		return AllX(width)
	}
	n := numLimbs(width)
	r := New(width)
	r.Val = addLimbs(a.Val, b.Val, n)
	r.mask()
	return r
}

// Sub implements `-` at the requested result width.
func Sub(a, b Value, width int) Value {
	if a.HasUnknown() || b.HasUnknown() {
		return AllX(width)
	}
	n := numLimbs(width)
	r := New(width)
	r.Val = subLimbs(a.Val, b.Val, n)
	r.mask()
	return r
}

// Mul implements `*` by repeated shift-add over the operand's bits, as
// spec.md §4.3 mandates for the wide container.
func Mul(a, b Value, width int) Value {
	if a.HasUnknown() || b.HasUnknown() {
		return AllX(width)
	}
	n := numLimbs(width)
	acc := make([]uint64, n)
	av := make([]uint64, n)
	copy(av, a.Val)
	for i := 0; i < width; i++ {
		if getBit(b.Val, i) {
			acc = addLimbs(acc, shlLimbs(av, n, i), n)
		}
	}
	r := New(width)
	r.Val = acc
	r.mask()
	return r
}

func shlLimbs(a []uint64, n, shift int) []uint64 {
	if shift <= 0 {
		r := make([]uint64, n)
		copy(r, a)
		return r
	}
	r := make([]uint64, n)
	wordShift := shift / limbBits
	bitShift := uint(shift % limbBits)
	for i := n - 1; i >= 0; i-- {
		src := i - wordShift
		if src < 0 || src >= len(a) {
			continue
		}
		r[i] |= a[src] << bitShift
		if bitShift != 0 && src-1 >= 0 && src-1 < len(a) {
			r[i] |= a[src-1] >> (limbBits - bitShift)
		}
	}
	return r
}

// cmpLimbs returns -1, 0, 1 comparing unsigned magnitudes.
func cmpLimbs(a, b []uint64, n int) int {
	for i := n - 1; i >= 0; i-- {
		var av, bv uint64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

// divModRestoring performs unsigned restoring long division at width bits
// of precision, per spec.md §4.3's mandated algorithm for the wide
// container.
func divModRestoring(a, b []uint64, width int) (quot, rem []uint64) {
	n := numLimbs(width)
	quot = make([]uint64, n)
	rem = make([]uint64, n)
	for i := width - 1; i >= 0; i-- {
		rem = shlLimbs(rem, n, 1)
		if getBit(a, i) {
			rem[0] |= 1
		}
		if cmpLimbs(rem, b, n) >= 0 {
			rem = subLimbs(rem, b, n)
			setBit(quot, i, true)
		}
	}
	return quot, rem
}

// Div implements `/`: unknown operands or divide-by-zero yield all-X.
func Div(a, b Value, width int) Value {
	if a.HasUnknown() || b.HasUnknown() || isZeroLimbs(b.Val) {
		return AllX(width)
	}
	q, _ := divModRestoring(a.Val, b.Val, width)
	r := New(width)
	r.Val = q
	r.mask()
	return r
}

// Mod implements `%`: unknown operands or modulo-by-zero yield all-X.
func Mod(a, b Value, width int) Value {
	if a.HasUnknown() || b.HasUnknown() || isZeroLimbs(b.Val) {
		return AllX(width)
	}
	_, rem := divModRestoring(a.Val, b.Val, width)
	r := New(width)
	r.Val = rem
	r.mask()
	return r
}

// Pow implements `**`. A negative signed exponent yields zero (spec.md
// §4.3 / §8 boundary behavior); unknown operands yield all-X.
func Pow(a, b Value, width int, signedExponent bool) Value {
	if a.HasUnknown() || b.HasUnknown() {
		return AllX(width)
	}
	if signedExponent && b.AsInt64() < 0 {
		return New(width)
	}
	acc := Value64(1, width)
	base := a.Extend(width, false)
	exp := b.AsUint64()
	for i := uint64(0); i < exp; i++ {
		acc = Mul(acc, base, width)
	}
	return acc
}

// DivSigned and ModSigned interpret operands as two's-complement signed
// values of their own declared width before dividing, restoring the sign
// of the result per normal truncating-division convention.
func DivSigned(a, b Value, width int) Value {
	if a.HasUnknown() || b.HasUnknown() || isZeroLimbs(b.Val) {
		return AllX(width)
	}
	aNeg, aMag := signMagnitude(a)
	bNeg, bMag := signMagnitude(b)
	q, _ := divModRestoring(aMag.Val, bMag.Val, width)
	res := New(width)
	res.Val = q
	res.mask()
	if aNeg != bNeg {
		res = negate(res, width)
	}
	return res
}

// ModSigned is the signed counterpart of Mod, sign following the
// dividend as in Go/C truncating semantics.
func ModSigned(a, b Value, width int) Value {
	if a.HasUnknown() || b.HasUnknown() || isZeroLimbs(b.Val) {
		return AllX(width)
	}
	aNeg, aMag := signMagnitude(a)
	_, bMag := signMagnitude(b)
	_, rem := divModRestoring(aMag.Val, bMag.Val, width)
	res := New(width)
	res.Val = rem
	res.mask()
	if aNeg {
		res = negate(res, width)
	}
	return res
}

func signMagnitude(v Value) (neg bool, mag Value) {
	if v.Width == 0 {
		return false, v
	}
	neg = getBit(v.Val, v.Width-1)
	if !neg {
		return false, v
	}
	m := New(v.Width)
	m.Val = negLimbs(v.Val, numLimbs(v.Width))
	m.mask()
	return true, m
}

func negate(v Value, width int) Value {
	r := New(width)
	r.Val = negLimbs(v.Val, numLimbs(width))
	r.mask()
	return r
}
