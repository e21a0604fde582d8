/*
 * vericore - Diagnostics sink tests.
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

package diag

import (
	"testing"

	"github.com/hdlforge/vericore/internal/token"
)

func TestSliceSinkHasErrors(t *testing.T) {
	s := NewSliceSink()
	if s.HasErrors() {
		t.Fatal("empty sink reports errors")
	}
	Report(s, Warning, "unconnected port %q", "a")
	if s.HasErrors() {
		t.Fatal("warning-only sink reports errors")
	}
	Reportf(s, Error, token.Pos{File: "t.v", Line: 1, Col: 1}, "bad token")
	if !s.HasErrors() {
		t.Fatal("sink with an error diagnostic reports no errors")
	}
	if len(s.Diagnostics()) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(s.Diagnostics()))
	}
}
