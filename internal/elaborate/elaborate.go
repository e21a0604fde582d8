/*
 * vericore - Hierarchical elaborator entry points.
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

// Package elaborate flattens a hierarchy of module definitions into a single
// flat module ready for scheduler-VM lowering: it resolves the top module,
// depth-first inlines every instance under a mangled flat name, rewrites
// every identifier reference through the active rename, and validates that
// the flattened design has exactly one driver per signal.
package elaborate

import (
	"github.com/hdlforge/vericore/internal/ast"
	"github.com/hdlforge/vericore/internal/diag"
)

// Design is the flattened result: a single module with every instance
// inlined, plus a map from flat signal name back to its dotted hierarchy
// path for diagnostics and waveform dumps.
type Design struct {
	Top        ast.Module
	FlatToHier map[string]string
}

// Elaborate picks the unique non-instantiated module as top and flattens
// the design. It fails if zero or more than one candidate exists.
func Elaborate(program *ast.Program, sink diag.Sink) (*Design, bool) {
	if len(program.Modules) == 0 {
		diag.Report(sink, diag.Error, "no modules to elaborate")
		return nil, false
	}
	topName, ok := findTopModule(program, sink)
	if !ok {
		return nil, false
	}
	return ElaborateTop(program, topName, sink)
}

// ElaborateTop flattens the design starting from the named top module.
func ElaborateTop(program *ast.Program, topName string, sink diag.Sink) (*Design, bool) {
	if len(program.Modules) == 0 {
		diag.Report(sink, diag.Error, "no modules to elaborate")
		return nil, false
	}
	top := program.ByName(topName)
	if top == nil {
		diag.Report(sink, diag.Error, "top module %q not found", topName)
		return nil, false
	}

	e := &elaborator{
		program:    program,
		sink:       sink,
		netNames:   map[string]bool{},
		flatToHier: map[string]string{},
	}

	flat := &ast.Module{Name: top.Name}
	stack := map[string]bool{}
	if !e.inlineModule(*top, "", top.Name, nil, flat, stack) {
		return nil, false
	}

	if !validateSingleDrivers(flat, sink) {
		return nil, false
	}
	warnUndeclaredClocks(flat, sink)

	return &Design{Top: *flat, FlatToHier: e.flatToHier}, true
}

// findTopModule applies spec.md's top-selection rule: the unique module
// that no other module instantiates.
func findTopModule(program *ast.Program, sink diag.Sink) (string, bool) {
	instantiated := map[string]bool{}
	for _, m := range program.Modules {
		for _, inst := range m.Instances {
			instantiated[inst.Module] = true
		}
	}

	candidate := ""
	for _, m := range program.Modules {
		if instantiated[m.Name] {
			continue
		}
		if candidate != "" {
			diag.Report(sink, diag.Error, "multiple top-level modules found (use --top <name>)")
			return "", false
		}
		candidate = m.Name
	}
	if candidate == "" {
		diag.Report(sink, diag.Error, "no top-level module found")
		return "", false
	}
	return candidate, true
}
