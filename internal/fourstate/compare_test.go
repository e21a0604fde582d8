/*
 * vericore - Four-state comparison operator tests.
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

func TestEqUnknownPropagates(t *testing.T) {
	a := Value64(1, 4)
	b := AllX(4)
	if r := Eq(a, b); !r.HasUnknown() {
		t.Errorf("1 == X should be X")
	}
}

func TestEqKnownEqual(t *testing.T) {
	a := Value64(5, 4)
	b := Value64(5, 4)
	if r := Eq(a, b); r.AsUint64() != 1 {
		t.Errorf("5 == 5 should be 1")
	}
}

func TestCaseEqNeverUnknown(t *testing.T) {
	x := AllX(4)
	if r := CaseEq(x, x); r.HasUnknown() || r.AsUint64() != 1 {
		t.Errorf("X === X should be known true, got %+v", r)
	}
	z := AllZ(4)
	if r := CaseEq(x, z); r.HasUnknown() || r.AsUint64() != 0 {
		t.Errorf("X === Z should be known false, got %+v", r)
	}
}

func TestWildEqDontCareOnPattern(t *testing.T) {
	value := Value64(0b1011, 4)
	pattern := AllX(4)
	setBit(pattern.Val, 0, true)
	setBit(pattern.X, 0, false)
	setBit(pattern.Val, 1, true)
	setBit(pattern.X, 1, false)
	// pattern = XX11, only low two bits constrained to 11.
	if r := WildEq(value, pattern); r.AsUint64() != 1 {
		t.Errorf("1011 ==? XX11 should match, got %+v", r)
	}
}

func TestWildEqMismatchOnConstrainedBit(t *testing.T) {
	value := Value64(0b1010, 4)
	pattern := Value64(0b1011, 4)
	if r := WildEq(value, pattern); r.AsUint64() != 0 {
		t.Errorf("1010 ==? 1011 should not match, got %+v", r)
	}
}

func TestRelationalUnsigned(t *testing.T) {
	a := Value64(3, 8)
	b := Value64(200, 8)
	if r := Lt(a, b, false); r.AsUint64() != 1 {
		t.Errorf("3 < 200 unsigned should be true")
	}
}

func TestRelationalSigned(t *testing.T) {
	a := Value64(0xF6, 8) // -10
	b := Value64(3, 8)
	if r := Lt(a, b, true); r.AsUint64() != 1 {
		t.Errorf("-10 < 3 signed should be true")
	}
	if r := Lt(a, b, false); r.AsUint64() != 0 {
		t.Errorf("0xF6 < 3 unsigned should be false")
	}
}

func TestRelationalUnknownOperandIsUnknown(t *testing.T) {
	a := AllX(8)
	b := Value64(3, 8)
	if r := Lt(a, b, false); !r.HasUnknown() {
		t.Errorf("X < 3 should be X")
	}
}
