/*
 * vericore - Four-state select and misc operator tests.
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

func TestBitSelectInRange(t *testing.T) {
	v := Value64(0b1010, 4)
	if r := BitSelect(v, 1); r.AsUint64() != 1 {
		t.Errorf("bit 1 of 1010 = %v, want 1", r.AsUint64())
	}
	if r := BitSelect(v, 0); r.AsUint64() != 0 {
		t.Errorf("bit 0 of 1010 = %v, want 0", r.AsUint64())
	}
}

func TestBitSelectOutOfRangeIsX(t *testing.T) {
	v := Value64(0b1010, 4)
	if r := BitSelect(v, 10); !r.HasUnknown() {
		t.Errorf("out-of-range bit select should be X")
	}
}

func TestPartSelectBasic(t *testing.T) {
	v := Value64(0b11010110, 8)
	r := PartSelect(v, 5, 2)
	if r.Width != 4 {
		t.Fatalf("width = %d, want 4", r.Width)
	}
	if r.AsUint64() != 0b0101 {
		t.Errorf("[5:2] of 11010110 = %04b, want 0101", r.AsUint64())
	}
}

func TestIndexedRangeIncreasing(t *testing.T) {
	v := Value64(0b11010110, 8)
	r := IndexedRange(v, 2, 4, true) // [2 +: 4] == [5:2]
	if r.AsUint64() != 0b0101 {
		t.Errorf("[2+:4] = %04b, want 0101", r.AsUint64())
	}
}

func TestIndexedRangeDecreasing(t *testing.T) {
	v := Value64(0b11010110, 8)
	r := IndexedRange(v, 5, 4, false) // [5 -: 4] == [5:2]
	if r.AsUint64() != 0b0101 {
		t.Errorf("[5-:4] = %04b, want 0101", r.AsUint64())
	}
}

func TestConcatOrdersMsbFirst(t *testing.T) {
	a := Value64(0xA, 4)
	b := Value64(0xB, 4)
	r := Concat([]Value{a, b})
	if r.Width != 8 {
		t.Fatalf("width = %d, want 8", r.Width)
	}
	if r.AsUint64() != 0xAB {
		t.Errorf("{4'hA,4'hB} = %#x, want 0xAB", r.AsUint64())
	}
}

func TestReplicate(t *testing.T) {
	a := Value64(0b10, 2)
	r := Replicate(3, a)
	if r.Width != 6 {
		t.Fatalf("width = %d, want 6", r.Width)
	}
	if r.AsUint64() != 0b101010 {
		t.Errorf("{3{2'b10}} = %06b, want 101010", r.AsUint64())
	}
}

func TestTernaryKnownCondition(t *testing.T) {
	cond := Value64(1, 1)
	a := Value64(5, 8)
	b := Value64(9, 8)
	if r := Ternary(cond, a, b, 8); r.AsUint64() != 5 {
		t.Errorf("1 ? 5 : 9 = %v, want 5", r.AsUint64())
	}
}

func TestTernaryUnknownConditionMergesAgreeingBits(t *testing.T) {
	cond := AllX(1)
	a := Value64(0b1100, 4)
	b := Value64(0b1010, 4)
	r := Ternary(cond, a, b, 4)
	// bit3: 1,1 agree -> 1; bit2: 1,0 disagree -> X; bit1: 0,1 disagree -> X; bit0: 0,0 agree -> 0
	v3, x3, _ := r.Bit(3)
	if x3 || !v3 {
		t.Errorf("bit3 should be known 1")
	}
	_, x2, _ := r.Bit(2)
	if !x2 {
		t.Errorf("bit2 should be X")
	}
	_, x1, _ := r.Bit(1)
	if !x1 {
		t.Errorf("bit1 should be X")
	}
	v0, x0, _ := r.Bit(0)
	if x0 || v0 {
		t.Errorf("bit0 should be known 0")
	}
}

func TestClog2SpecialCases(t *testing.T) {
	if r := Clog2(Value64(0, 8), 8); r.AsUint64() != 0 {
		t.Errorf("$clog2(0) = %v, want 0", r.AsUint64())
	}
	if r := Clog2(Value64(1, 8), 8); r.AsUint64() != 0 {
		t.Errorf("$clog2(1) = %v, want 0", r.AsUint64())
	}
}

func TestClog2Rounds(t *testing.T) {
	if r := Clog2(Value64(8, 8), 8); r.AsUint64() != 3 {
		t.Errorf("$clog2(8) = %v, want 3", r.AsUint64())
	}
	if r := Clog2(Value64(9, 8), 8); r.AsUint64() != 4 {
		t.Errorf("$clog2(9) = %v, want 4", r.AsUint64())
	}
}

func TestBitsReturnsDeclaredWidth(t *testing.T) {
	if r := Bits(17, 32); r.AsUint64() != 17 {
		t.Errorf("$bits = %v, want 17", r.AsUint64())
	}
}
