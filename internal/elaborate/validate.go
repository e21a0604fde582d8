/*
 * vericore - Post-flattening validation passes.
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
	"github.com/hdlforge/vericore/internal/ast"
	"github.com/hdlforge/vericore/internal/diag"
)

// validateSingleDrivers checks that every signal driven by the flat module
// is driven by at most one continuous assign or one always block, never
// both and never twice.
func validateSingleDrivers(flat *ast.Module, sink diag.Sink) bool {
	drivers := map[string]bool{}

	for _, assign := range flat.Assigns {
		if drivers[assign.Lhs.Name] {
			diag.Report(sink, diag.Error, "multiple drivers for signal %q", assign.Lhs.Name)
			return false
		}
		drivers[assign.Lhs.Name] = true
	}

	for _, block := range flat.Always {
		driven := map[string]bool{}
		for _, stmt := range block.Body {
			collectAssignedSignals(stmt, driven)
		}
		for name := range driven {
			if drivers[name] {
				diag.Report(sink, diag.Error, "multiple drivers for signal %q", name)
				return false
			}
			drivers[name] = true
		}
	}
	return true
}

func isDeclaredSignal(flat *ast.Module, name string) bool {
	for _, p := range flat.Ports {
		if p.Name == name {
			return true
		}
	}
	for _, n := range flat.Nets {
		if n.Name == name {
			return true
		}
	}
	return false
}

// warnUndeclaredClocks flags every posedge/negedge always-block whose clock
// identifier does not resolve to a declared port or net.
func warnUndeclaredClocks(flat *ast.Module, sink diag.Sink) {
	for _, block := range flat.Always {
		if block.Trigger != ast.TriggerPosedge && block.Trigger != ast.TriggerNegedge {
			continue
		}
		if !isDeclaredSignal(flat, block.Clock) {
			diag.Report(sink, diag.Warning, "clock %q in always block is not declared", block.Clock)
		}
	}
}
