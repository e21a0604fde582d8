/*
 * vericore - Four-state shift operators.
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

// shiftAmount extracts the shift distance from amt: an unknown bit in amt
// makes the whole shift operation produce an all-X result (reported via ok
// == false), mirroring Shl/LShr/AShr's documented rule.
func shiftAmount(amt Value) (dist int, ok bool) {
	if amt.HasUnknown() {
		return 0, false
	}
	u := amt.AsUint64()
	if u > uint64(1<<31) {
		return 1 << 31, true
	}
	return int(u), true
}

func shiftBitsLeft(limbs []uint64, n, dist int) []uint64 {
	return shlLimbs(limbs, n, dist)
}

func shiftBitsRightLogical(limbs []uint64, n, dist, width int) []uint64 {
	r := make([]uint64, n)
	for i := 0; i < width; i++ {
		src := i + dist
		if src < width {
			setBit(r, i, getBit(limbs, src))
		}
	}
	return r
}

// Shl implements `<<`: unknown shift amount yields all-X; a shift of width
// or more yields zero; the x and z masks shift with the value.
func Shl(a, shiftAmt Value, width int) Value {
	dist, ok := shiftAmount(shiftAmt)
	if !ok {
		return AllX(width)
	}
	r := New(width)
	if dist >= width {
		return r
	}
	n := numLimbs(width)
	r.Val = shiftBitsLeft(a.Val, n, dist)
	r.X = shiftBitsLeft(a.X, n, dist)
	r.Z = shiftBitsLeft(a.Z, n, dist)
	r.mask()
	return r
}

// LShr implements `>>` (logical shift right).
func LShr(a, shiftAmt Value, width int) Value {
	dist, ok := shiftAmount(shiftAmt)
	if !ok {
		return AllX(width)
	}
	r := New(width)
	if dist >= width {
		return r
	}
	n := numLimbs(width)
	r.Val = shiftBitsRightLogical(a.Val, n, dist, width)
	r.X = shiftBitsRightLogical(a.X, n, dist, width)
	r.Z = shiftBitsRightLogical(a.Z, n, dist, width)
	r.mask()
	return r
}

// AShr implements `>>>` (arithmetic shift right): the sign bit is
// replicated into the vacated high bits. An unknown sign bit makes the
// whole result all-X.
func AShr(a, shiftAmt Value, width int) Value {
	dist, ok := shiftAmount(shiftAmt)
	if !ok {
		return AllX(width)
	}
	if width == 0 {
		return New(0)
	}
	signVal, signX, signZ := a.Bit(width - 1)
	if signX || signZ {
		return AllX(width)
	}
	r := New(width)
	n := numLimbs(width)
	r.Val = shiftBitsRightLogical(a.Val, n, dist, width)
	r.X = shiftBitsRightLogical(a.X, n, dist, width)
	r.Z = shiftBitsRightLogical(a.Z, n, dist, width)
	for i := width - dist; i < width; i++ {
		if i < 0 {
			continue
		}
		setBit(r.Val, i, signVal)
	}
	if dist >= width {
		for i := 0; i < width; i++ {
			setBit(r.Val, i, signVal)
		}
	}
	r.mask()
	return r
}
