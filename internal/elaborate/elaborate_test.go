/*
 * vericore - Elaborator tests.
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

package elaborate

import (
	"testing"

	"github.com/hdlforge/vericore/internal/diag"
	"github.com/hdlforge/vericore/internal/parser"
	"github.com/hdlforge/vericore/internal/token"
)

func elaborateSrc(t *testing.T, src string) (*Design, *diag.SliceSink, bool) {
	t.Helper()
	toks := token.New("t.v", []byte(src)).Tokenize()
	sink := diag.NewSliceSink()
	prog, ok := parser.Parse(toks, sink, parser.Options{Enable4State: true})
	if !ok {
		return nil, sink, false
	}
	design, ok := Elaborate(prog, sink)
	return design, sink, ok
}

func TestElaborateSingleModuleIsItsOwnTop(t *testing.T) {
	src := `
module top(input a, input b, output c);
  assign c = a & b;
endmodule
`
	design, sink, ok := elaborateSrc(t, src)
	if !ok {
		t.Fatalf("elaborate failed: %v", sink.Diagnostics())
	}
	if design.Top.Name != "top" {
		t.Fatalf("expected top module name 'top', got %q", design.Top.Name)
	}
	if len(design.Top.Assigns) != 1 {
		t.Fatalf("expected 1 assign, got %d", len(design.Top.Assigns))
	}
}

func TestElaborateMultipleTopModulesIsError(t *testing.T) {
	src := `
module a(input x); endmodule
module b(input x); a inst(x); endmodule
module c(input x); a inst(x); endmodule
`
	// a is instantiated by both b and c, and b/c instantiate nothing else,
	// so both b and c are un-instantiated: multiple top candidates.
	_, sink, ok := elaborateSrc(t, src)
	if ok {
		t.Fatalf("expected failure selecting top module")
	}
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Message == "multiple top-level modules found (use --top <name>)" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a multiple-top-level-modules diagnostic, got %v", sink.Diagnostics())
	}
}

func TestElaborateFlattensInstanceWithMangledPrefix(t *testing.T) {
	src := `
module leaf(input x, output y);
  assign y = ~x;
endmodule
module top(input a, output b);
  leaf u1(.x(a), .y(b));
endmodule
`
	design, sink, ok := elaborateSrc(t, src)
	if !ok {
		t.Fatalf("elaborate failed: %v", sink.Diagnostics())
	}
	if len(design.Top.Assigns) != 1 {
		t.Fatalf("expected 1 flattened assign, got %d: %v", len(design.Top.Assigns), design.Top.Assigns)
	}
	if design.Top.Assigns[0].Lhs.Name != "b" {
		t.Fatalf("expected the inlined assign to drive the bound port 'b', got %q", design.Top.Assigns[0].Lhs.Name)
	}
}

func TestElaborateLiteralConnectionSynthesizesWire(t *testing.T) {
	src := `
module leaf(input x, output y);
  assign y = x;
endmodule
module top(output b);
  leaf u1(1'b1, b);
endmodule
`
	design, sink, ok := elaborateSrc(t, src)
	if !ok {
		t.Fatalf("elaborate failed: %v", sink.Diagnostics())
	}
	found := false
	for _, a := range design.Top.Assigns {
		if a.Lhs.Name == "u1__x__lit" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a synthesized literal wire assign, got %v", design.Top.Assigns)
	}
}

func TestElaborateUnconnectedInputDefaultsToZeroWithWarning(t *testing.T) {
	src := `
module leaf(input x, output y);
  assign y = x;
endmodule
module top(output b);
  leaf u1(.y(b));
endmodule
`
	design, sink, ok := elaborateSrc(t, src)
	if !ok {
		t.Fatalf("elaborate failed: %v", sink.Diagnostics())
	}
	warned := false
	for _, d := range sink.Diagnostics() {
		if d.Severity == diag.Warning {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("expected an unconnected-input warning, got %v", sink.Diagnostics())
	}
	found := false
	for _, a := range design.Top.Assigns {
		if a.Lhs.Name == "u1__x" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a defaulted-to-zero wire for the unconnected input, got %v", design.Top.Assigns)
	}
}

func TestElaborateMultipleDriversIsError(t *testing.T) {
	src := `
module top(input a, output b);
  assign b = a;
  assign b = ~a;
endmodule
`
	_, sink, ok := elaborateSrc(t, src)
	if ok {
		t.Fatalf("expected failure for multiply-driven signal")
	}
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Message == `multiple drivers for signal "b"` {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a multiple-drivers diagnostic, got %v", sink.Diagnostics())
	}
}

func TestElaborateUndeclaredClockWarns(t *testing.T) {
	src := `
module top(output reg q);
  always @(posedge clk) q <= 1'b1;
endmodule
`
	_, sink, ok := elaborateSrc(t, src)
	if !ok {
		t.Fatalf("elaborate failed: %v", sink.Diagnostics())
	}
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Severity == diag.Warning && d.Message == `clock "clk" in always block is not declared` {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an undeclared-clock warning, got %v", sink.Diagnostics())
	}
}

func TestElaborateRecursiveInstantiationIsError(t *testing.T) {
	src := `
module a(input x);
  a inner(x);
endmodule
`
	toks := token.New("t.v", []byte(src)).Tokenize()
	sink := diag.NewSliceSink()
	prog, ok := parser.Parse(toks, sink, parser.Options{Enable4State: true})
	if !ok {
		t.Fatalf("parse failed: %v", sink.Diagnostics())
	}
	// a instantiates itself, so it is excluded from top-selection entirely;
	// drive the recursion path directly by naming it explicit top.
	_, ok = ElaborateTop(prog, "a", sink)
	if ok {
		t.Fatalf("expected failure for recursive instantiation")
	}
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Message == "recursive module instantiation detected" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a recursion diagnostic, got %v", sink.Diagnostics())
	}
}

func TestElaborateEquallyNamedPortsInDistinctInstancesDoNotCollide(t *testing.T) {
	src := `
module leaf(input x, output y);
  assign y = x;
endmodule
module top(output b1, output b2);
  leaf u1(.x(1'b0), .y(b1));
  leaf u2(.x(1'b0), .y(b2));
endmodule
`
	// Two independently-mangled instances never collide because their
	// instance names differ; this exercises the common case stays clean.
	_, sink, ok := elaborateSrc(t, src)
	if !ok {
		t.Fatalf("elaborate failed: %v", sink.Diagnostics())
	}
}
