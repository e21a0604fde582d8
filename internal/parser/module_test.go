/*
 * vericore - Module/port/instance grammar tests.
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
)

func TestAnsiPortHeaderPersistsDirectionAcrossCommas(t *testing.T) {
	src := `
module m(input [7:0] a, b, output reg y);
  assign y = a[0];
endmodule
`
	prog, sink, ok := parseSrc(t, src)
	if !ok {
		t.Fatalf("parse failed: %v", sink.Diagnostics())
	}
	m := prog.Modules[0]
	if len(m.Ports) != 3 {
		t.Fatalf("expected 3 ports, got %d", len(m.Ports))
	}
	for _, name := range []string{"a", "b"} {
		p := findPort(m, name)
		if p == nil || p.Direction != ast.DirInput {
			t.Fatalf("port %q should be input, got %+v", name, p)
		}
	}
	y := findPort(m, "y")
	if y == nil || y.Direction != ast.DirOutput || !y.RegPort {
		t.Fatalf("port y should be an output reg, got %+v", y)
	}
}

func TestNonAnsiPortHeaderMergesBodyDeclarations(t *testing.T) {
	src := `
module m(a, b, y);
  input [7:0] a;
  input [7:0] b;
  output y;
  assign y = a[0] ^ b[0];
endmodule
`
	prog, sink, ok := parseSrc(t, src)
	if !ok {
		t.Fatalf("parse failed: %v", sink.Diagnostics())
	}
	m := prog.Modules[0]
	a := findPort(m, "a")
	if a == nil || a.Direction != ast.DirInput || a.Msb == nil {
		t.Fatalf("port a should be an 8-bit input, got %+v", a)
	}
}

func TestParameterPortListParsesForwardReferences(t *testing.T) {
	src := `
module m #(parameter W = 8, parameter BYTES = W / 8) ();
endmodule
`
	prog, sink, ok := parseSrc(t, src)
	if !ok {
		t.Fatalf("parse failed: %v", sink.Diagnostics())
	}
	m := prog.Modules[0]
	if len(m.Params) != 2 || m.Params[0].Name != "W" || m.Params[1].Name != "BYTES" {
		t.Fatalf("unexpected params: %+v", m.Params)
	}
}

func TestInstanceWithParameterOverride(t *testing.T) {
	src := `
module leaf #(parameter W = 8) (input [W-1:0] a);
endmodule

module top;
  wire [15:0] w;
  leaf #(.W(16)) u1(.a(w));
endmodule
`
	prog, sink, ok := parseSrc(t, src)
	if !ok {
		t.Fatalf("parse failed: %v", sink.Diagnostics())
	}
	top := prog.ByName("top")
	if len(top.Instances) != 1 {
		t.Fatalf("expected 1 instance")
	}
	inst := top.Instances[0]
	if len(inst.Params) != 1 || inst.Params[0].Name != "W" {
		t.Fatalf("expected W override, got %+v", inst.Params)
	}
}

func TestUndeclaredPortBodyDeclarationIsError(t *testing.T) {
	src := `
module m(a);
  input b;
endmodule
`
	_, sink, ok := parseSrc(t, src)
	if ok {
		t.Fatalf("expected failure: b was never declared in the port header")
	}
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
}

func findPort(m ast.Module, name string) *ast.Port {
	for i := range m.Ports {
		if m.Ports[i].Name == name {
			return &m.Ports[i]
		}
	}
	return nil
}
