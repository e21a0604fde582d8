/*
 * vericore - Four-state bitwise operator tests.
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

import "testing"

func TestAndKnownZeroDominates(t *testing.T) {
	a := Value64(0, 1)
	b := AllX(1)
	r := And(a, b)
	if r.HasUnknown() || r.AsUint64() != 0 {
		t.Errorf("0 & X should be known 0, got %+v", r)
	}
}

func TestOrKnownOneDominates(t *testing.T) {
	a := Value64(1, 1)
	b := AllX(1)
	r := Or(a, b)
	if r.HasUnknown() || r.AsUint64() != 1 {
		t.Errorf("1 | X should be known 1, got %+v", r)
	}
}

func TestXorUnknownPropagates(t *testing.T) {
	a := Value64(1, 1)
	b := AllX(1)
	r := Xor(a, b)
	if !r.HasUnknown() {
		t.Errorf("1 ^ X should be X")
	}
}

func TestNotCollapsesZToX(t *testing.T) {
	z := AllZ(1)
	r := Not(z)
	_, x, zz := r.Bit(0)
	if !x || zz {
		t.Errorf("~Z should report as X, not Z; got x=%v z=%v", x, zz)
	}
}

func TestReduceAndAllOnes(t *testing.T) {
	v := Value64(0xFF, 8)
	if r := ReduceAnd(v); r.AsUint64() != 1 {
		t.Errorf("ReduceAnd(0xFF) = %v, want 1", r.AsUint64())
	}
}

func TestReduceAndWithZero(t *testing.T) {
	v := Value64(0xFE, 8)
	if r := ReduceAnd(v); r.HasUnknown() || r.AsUint64() != 0 {
		t.Errorf("ReduceAnd(0xFE) = %+v, want known 0", r)
	}
}

func TestReduceOrAnyOne(t *testing.T) {
	v := Value64(0x01, 8)
	if r := ReduceOr(v); r.AsUint64() != 1 {
		t.Errorf("ReduceOr(0x01) = %v, want 1", r.AsUint64())
	}
}

func TestReduceXorParity(t *testing.T) {
	v := Value64(0b0111, 4)
	if r := ReduceXor(v); r.AsUint64() != 1 {
		t.Errorf("ReduceXor(0b0111) = %v, want 1 (odd parity)", r.AsUint64())
	}
}

func TestLogicalAndShortCircuitsOnKnownFalse(t *testing.T) {
	f := Value64(0, 1)
	x := AllX(1)
	r := LogicalAnd(f, x)
	if r.HasUnknown() || r.AsUint64() != 0 {
		t.Errorf("false && X should be known false, got %+v", r)
	}
}

func TestLogicalOrShortCircuitsOnKnownTrue(t *testing.T) {
	tv := Value64(1, 1)
	x := AllX(1)
	r := LogicalOr(tv, x)
	if r.HasUnknown() || r.AsUint64() != 1 {
		t.Errorf("true || X should be known true, got %+v", r)
	}
}
