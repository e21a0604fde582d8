/*
 * vericore - Four-state shift operator tests.
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

func TestShlBasic(t *testing.T) {
	a := Value64(1, 8)
	amt := Value64(3, 8)
	r := Shl(a, amt, 8)
	if r.AsUint64() != 8 {
		t.Errorf("1<<3 = %v, want 8", r.AsUint64())
	}
}

func TestShlPastWidthIsZero(t *testing.T) {
	a := Value64(0xFF, 8)
	amt := Value64(10, 8)
	r := Shl(a, amt, 8)
	if r.AsUint64() != 0 {
		t.Errorf("shift past width should be 0, got %v", r.AsUint64())
	}
}

func TestShlUnknownAmountIsAllX(t *testing.T) {
	a := Value64(1, 8)
	amt := AllX(8)
	r := Shl(a, amt, 8)
	if !r.HasUnknown() {
		t.Errorf("shift by unknown amount should be all-X")
	}
}

func TestLShrLogical(t *testing.T) {
	a := Value64(0x80, 8)
	amt := Value64(4, 8)
	r := LShr(a, amt, 8)
	if r.AsUint64() != 0x08 {
		t.Errorf("0x80>>4 logical = %#x, want 0x08", r.AsUint64())
	}
}

func TestAShrReplicatesSignBit(t *testing.T) {
	a := Value64(0x80, 8) // -128 signed
	amt := Value64(4, 8)
	r := AShr(a, amt, 8)
	if r.AsUint64() != 0xF8 {
		t.Errorf("0x80>>>4 arithmetic = %#x, want 0xF8", r.AsUint64())
	}
}

func TestAShrUnknownSignBitIsAllX(t *testing.T) {
	a := AllX(8)
	amt := Value64(1, 8)
	r := AShr(a, amt, 8)
	if !r.HasUnknown() {
		t.Errorf("arithmetic shift of unknown sign bit should be all-X")
	}
}
