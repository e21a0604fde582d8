/*
 * vericore - Parser driver tests.
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

package parser

import (
	"testing"

	"github.com/hdlforge/vericore/internal/ast"
	"github.com/hdlforge/vericore/internal/diag"
	"github.com/hdlforge/vericore/internal/token"
)

func parseSrc(t *testing.T, src string) (*ast.Program, *diag.SliceSink, bool) {
	t.Helper()
	lx := token.New("t.v", []byte(src))
	toks := lx.Tokenize()
	sink := diag.NewSliceSink()
	prog, ok := Parse(toks, sink, Options{Enable4State: true})
	return prog, sink, ok
}

func TestParseEmptySourceRejectedByDefault(t *testing.T) {
	_, sink, ok := parseSrc(t, "")
	if ok {
		t.Fatalf("expected failure on empty source")
	}
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic for empty source")
	}
}

func TestParseEmptySourceAllowedWithOption(t *testing.T) {
	lx := token.New("t.v", []byte(""))
	sink := diag.NewSliceSink()
	prog, ok := Parse(lx.Tokenize(), sink, Options{AllowEmpty: true})
	if !ok {
		t.Fatalf("expected success with AllowEmpty")
	}
	if len(prog.Modules) != 0 {
		t.Fatalf("expected zero modules, got %d", len(prog.Modules))
	}
}

func TestParseSimpleAdderWithConstantFolding(t *testing.T) {
	src := `
module adder;
  wire [7:0] a;
  wire [7:0] b;
  wire [7:0] sum;
  assign sum = 8'd4 + 8'd5;
  assign a = 8'd4;
  assign b = 8'd5;
endmodule
`
	prog, sink, ok := parseSrc(t, src)
	if !ok {
		t.Fatalf("parse failed: %v", sink.Diagnostics())
	}
	if len(prog.Modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(prog.Modules))
	}
	m := prog.Modules[0]
	if m.Name != "adder" {
		t.Fatalf("module name = %q, want adder", m.Name)
	}
	var sumAssign *ast.ContinuousAssign
	for i := range m.Assigns {
		if m.Assigns[i].Lhs.Name == "sum" {
			sumAssign = &m.Assigns[i]
		}
	}
	if sumAssign == nil {
		t.Fatalf("no assign to sum found")
	}
	n, ok := sumAssign.Rhs.(ast.Number)
	if !ok {
		t.Fatalf("sum rhs not folded to a constant, got %T", sumAssign.Rhs)
	}
	if got := n.Value.AsUint64(); got != 9 {
		t.Fatalf("8'd4 + 8'd5 folded to %d, want 9", got)
	}
}

func TestParseFourStateAnd(t *testing.T) {
	src := `
module g;
  wire y;
  assign y = 1'b1 & 1'bx;
endmodule
`
	prog, sink, ok := parseSrc(t, src)
	if !ok {
		t.Fatalf("parse failed: %v", sink.Diagnostics())
	}
	rhs := prog.Modules[0].Assigns[0].Rhs
	n, ok := rhs.(ast.Number)
	if !ok {
		t.Fatalf("expected folded constant, got %T", rhs)
	}
	if !n.Value.HasUnknown() {
		t.Fatalf("1'b1 & 1'bx should remain unknown")
	}
}

func TestParseCaseEqualityWithZ(t *testing.T) {
	src := `
module g;
  wire y;
  assign y = (4'b10z0 === 4'b10z0);
endmodule
`
	prog, sink, ok := parseSrc(t, src)
	if !ok {
		t.Fatalf("parse failed: %v", sink.Diagnostics())
	}
	rhs := prog.Modules[0].Assigns[0].Rhs
	n, ok := rhs.(ast.Number)
	if !ok {
		t.Fatalf("expected folded constant, got %T", rhs)
	}
	if n.Value.AsUint64() != 1 {
		t.Fatalf("case-equality of identical x/z patterns should be true")
	}
}

func TestParseNamedAndPositionalInstances(t *testing.T) {
	src := `
module leaf(input a, output b);
  assign b = a;
endmodule

module top;
  wire w1, w2;
  leaf u1(.a(w1), .b(w2));
  leaf u2(w2, w1);
endmodule
`
	prog, sink, ok := parseSrc(t, src)
	if !ok {
		t.Fatalf("parse failed: %v", sink.Diagnostics())
	}
	if len(prog.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(prog.Modules))
	}
	top := prog.ByName("top")
	if top == nil || len(top.Instances) != 2 {
		t.Fatalf("expected 2 instances in top, got %+v", top)
	}
	if top.Instances[0].Positional {
		t.Fatalf("u1 uses named connections, should not be Positional")
	}
	if !top.Instances[1].Positional {
		t.Fatalf("u2 uses positional connections, should be Positional")
	}
}

func TestParseMissingSemicolonReportsDiagnostic(t *testing.T) {
	src := `
module g;
  wire y
  assign y = 1'b1;
endmodule
`
	_, sink, ok := parseSrc(t, src)
	if ok {
		t.Fatalf("expected parse failure on missing semicolon")
	}
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
}

func TestParseDivisionByZeroFoldsToAllX(t *testing.T) {
	src := `
module g;
  wire [7:0] y;
  assign y = 8'd4 / 8'd0;
endmodule
`
	prog, sink, ok := parseSrc(t, src)
	if !ok {
		t.Fatalf("parse failed: %v", sink.Diagnostics())
	}
	rhs := prog.Modules[0].Assigns[0].Rhs
	n, ok := rhs.(ast.Number)
	if !ok {
		t.Fatalf("expected folded constant, got %T", rhs)
	}
	if !n.Value.HasUnknown() {
		t.Fatalf("division by zero should fold to all-X, got known value")
	}
}

func TestParseXZDigitInDecimalBaseIsError(t *testing.T) {
	src := `
module g;
  wire [3:0] y;
  assign y = 4'dx1;
endmodule
`
	_, sink, ok := parseSrc(t, src)
	if ok {
		t.Fatalf("expected failure on x digit in decimal base")
	}
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
}

func TestParseNonIdentifierLhsInContinuousAssignIsError(t *testing.T) {
	src := `
module g;
  assign 1'b1 = 1'b0;
endmodule
`
	_, sink, ok := parseSrc(t, src)
	if ok {
		t.Fatalf("expected failure on non-identifier continuous-assign lhs")
	}
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
}
