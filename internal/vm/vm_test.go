/*
 * vericore - Scheduler VM builder tests.
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

package vm

import (
	"bytes"
	"testing"

	"github.com/hdlforge/vericore/internal/diag"
	"github.com/hdlforge/vericore/internal/elaborate"
	"github.com/hdlforge/vericore/internal/parser"
	"github.com/hdlforge/vericore/internal/token"
)

func buildSrc(t *testing.T, src string) (*Layout, bool) {
	t.Helper()
	toks := token.New("t.v", []byte(src)).Tokenize()
	sink := diag.NewSliceSink()
	prog, ok := parser.Parse(toks, sink, parser.Options{Enable4State: true})
	if !ok {
		t.Fatalf("parse failed: %v", sink.Diagnostics())
	}
	design, ok := elaborate.Elaborate(prog, sink)
	if !ok {
		t.Fatalf("elaborate failed: %v", sink.Diagnostics())
	}
	return Build(design, sink)
}

func TestBuildContinuousAssignProducesOneProcess(t *testing.T) {
	layout, ok := buildSrc(t, `
module top(input a, input b, output c);
  assign c = a & b;
endmodule
`)
	if !ok {
		t.Fatalf("build failed, fallbacks: %v", layout.Fallbacks)
	}
	if layout.ProcCount != 1 {
		t.Fatalf("expected 1 process, got %d", layout.ProcCount)
	}
	if len(layout.AssignEntries) != 1 {
		t.Fatalf("expected 1 assign entry, got %d", len(layout.AssignEntries))
	}
	if DecodeOp(layout.Bytecode[layout.ProcOffsets[0]]) != OpCallGroup {
		t.Fatalf("expected process to open with call_group")
	}
}

func TestBuildIfElseLowersToJumpIf(t *testing.T) {
	layout, ok := buildSrc(t, `
module top(input a, output reg q);
  always @(*) begin
    if (a)
      q = 1'b1;
    else
      q = 1'b0;
  end
endmodule
`)
	if !ok {
		t.Fatalf("build failed, fallbacks: %v", layout.Fallbacks)
	}
	found := false
	for _, w := range layout.Bytecode {
		if DecodeOp(w) == OpJumpIf {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a jump_if instruction in bytecode, got %v", layout.Bytecode)
	}
	if len(layout.CondEntries) == 0 {
		t.Fatalf("expected at least one CondEntry")
	}
}

func TestBuildClockedAlwaysWaitsOnEdge(t *testing.T) {
	layout, ok := buildSrc(t, `
module top(input clk, input d, output reg q);
  always @(posedge clk) q <= d;
endmodule
`)
	if !ok {
		t.Fatalf("build failed, fallbacks: %v", layout.Fallbacks)
	}
	found := false
	for _, w := range layout.Bytecode {
		if DecodeOp(w) == OpWaitEdge {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a wait_edge instruction, got %v", layout.Bytecode)
	}
}

func TestBuildCaseStatementProducesCaseHeader(t *testing.T) {
	layout, ok := buildSrc(t, `
module top(input [1:0] sel, output reg [1:0] y);
  always @(*) begin
    case (sel)
      2'b00: y = 2'b01;
      2'b01: y = 2'b10;
      default: y = 2'b00;
    endcase
  end
endmodule
`)
	if !ok {
		t.Fatalf("build failed, fallbacks: %v", layout.Fallbacks)
	}
	if len(layout.CaseHeaders) != 1 {
		t.Fatalf("expected 1 case header, got %d", len(layout.CaseHeaders))
	}
	if len(layout.CaseEntries) != 2 {
		t.Fatalf("expected 2 case entries, got %d", len(layout.CaseEntries))
	}
}

func TestBuildServiceCallProducesServiceEntry(t *testing.T) {
	layout, ok := buildSrc(t, `
module top(input a);
  initial $display("a=%b", a);
endmodule
`)
	if !ok {
		t.Fatalf("build failed, fallbacks: %v", layout.Fallbacks)
	}
	if len(layout.ServiceEntries) != 1 {
		t.Fatalf("expected 1 service entry, got %d", len(layout.ServiceEntries))
	}
	if layout.ServiceEntries[0].Kind != ServiceDisplay {
		t.Fatalf("expected ServiceDisplay, got %v", layout.ServiceEntries[0].Kind)
	}
	if len(layout.ServiceArgs) != 1 {
		t.Fatalf("expected 1 service arg, got %d", len(layout.ServiceArgs))
	}
}

func TestBuildNoProcessesIsError(t *testing.T) {
	toks := token.New("t.v", []byte(`module top(input a); endmodule`)).Tokenize()
	sink := diag.NewSliceSink()
	prog, ok := parser.Parse(toks, sink, parser.Options{Enable4State: true})
	if !ok {
		t.Fatalf("parse failed: %v", sink.Diagnostics())
	}
	design, ok := elaborate.Elaborate(prog, sink)
	if !ok {
		t.Fatalf("elaborate failed: %v", sink.Diagnostics())
	}
	_, ok = Build(design, sink)
	if ok {
		t.Fatalf("expected failure for a module with no processes")
	}
}

func TestLayoutBinaryRoundTrip(t *testing.T) {
	layout, ok := buildSrc(t, `
module top(input a, input b, output c);
  assign c = a & b;
endmodule
`)
	if !ok {
		t.Fatalf("build failed, fallbacks: %v", layout.Fallbacks)
	}
	var buf bytes.Buffer
	if err := layout.WriteBinary(&buf); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	got, err := ReadBinary(&buf)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	if got.ProcCount != layout.ProcCount || got.WordsPerProc != layout.WordsPerProc {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, layout)
	}
	if len(got.Bytecode) != len(layout.Bytecode) {
		t.Fatalf("bytecode length mismatch: got %d, want %d", len(got.Bytecode), len(layout.Bytecode))
	}
	for i := range layout.Bytecode {
		if got.Bytecode[i] != layout.Bytecode[i] {
			t.Fatalf("bytecode[%d] mismatch: got %#x, want %#x", i, got.Bytecode[i], layout.Bytecode[i])
		}
	}
}

func TestLayoutDumpYAMLIncludesProcessNames(t *testing.T) {
	layout, ok := buildSrc(t, `
module top(input a, input b, output c);
  assign c = a & b;
endmodule
`)
	if !ok {
		t.Fatalf("build failed, fallbacks: %v", layout.Fallbacks)
	}
	out, err := layout.DumpYAML()
	if err != nil {
		t.Fatalf("DumpYAML: %v", err)
	}
	if !bytes.Contains(out, []byte("assign#0")) {
		t.Fatalf("expected process name in YAML dump, got %s", out)
	}
}
