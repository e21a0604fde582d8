/*
 * vericore - MockSink-driven diagnostics sink tests.
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

	"github.com/golang/mock/gomock"

	"github.com/hdlforge/vericore/internal/token"
)

// TestMockSinkReceivesExactDiagnostic drives a Reportf call — exactly what
// the parser/elaborator/VM builder do — through a MockSink and asserts the
// precise Diagnostic value recorded, without depending on a SliceSink's
// internal storage.
func TestMockSinkReceivesExactDiagnostic(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockSink(ctrl)

	pos := token.Pos{File: "top.v", Line: 3, Col: 5}
	want := Diagnostic{Severity: Error, Message: `unknown module "foo"`, Pos: pos, HasPos: true}

	sink.EXPECT().Report(want)

	Reportf(sink, Error, pos, "unknown module %q", "foo")
}

// TestMockSinkHasErrorsDelegates confirms a caller that only has a Sink
// interface value (never a concrete *SliceSink) observes HasErrors through
// whatever the mock is programmed to return.
func TestMockSinkHasErrorsDelegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockSink(ctrl)

	sink.EXPECT().HasErrors().Return(true)

	if !sink.HasErrors() {
		t.Fatal("expected HasErrors() to report true via the mock")
	}
}
