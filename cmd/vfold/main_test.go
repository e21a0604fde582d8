/*
 * vericore - vfold expression-calculator tests.
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

package main

import "testing"

func TestFoldOneAnd(t *testing.T) {
	got, err := foldOne("4'b10x1 & 4'b11x0", true)
	if err != nil {
		t.Fatalf("foldOne: %v", err)
	}
	want := "4'b10x0"
	if got != want {
		t.Fatalf("foldOne() = %q, want %q", got, want)
	}
}

func TestFoldOneCaseEqualityZ(t *testing.T) {
	got, err := foldOne("4'b101z === 4'b101z", true)
	if err != nil {
		t.Fatalf("foldOne: %v", err)
	}
	if got != "1'b1" {
		t.Fatalf("foldOne() = %q, want 1'b1", got)
	}
}

func TestFoldOneDivByZero(t *testing.T) {
	got, err := foldOne("8'd5 / 8'd0", true)
	if err != nil {
		t.Fatalf("foldOne: %v", err)
	}
	want := "8'bxxxxxxxx"
	if got != want {
		t.Fatalf("foldOne() = %q, want %q", got, want)
	}
}

func TestFoldOneNonConstant(t *testing.T) {
	if _, err := foldOne("a + 1", true); err == nil {
		t.Fatal("expected error for non-constant expression")
	}
}

func TestFoldOneDisabled4State(t *testing.T) {
	if _, err := foldOne("4'b10x1 & 4'b1111", false); err == nil {
		t.Fatal("expected error when four-state literals are disabled")
	}
}
