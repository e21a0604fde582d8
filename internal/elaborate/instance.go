/*
 * vericore - Instance port-binding resolution.
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

// inlineInstance resolves one instance's port bindings and recursively
// inlines its child module under a mangled prefix.
func (e *elaborator) inlineInstance(
	inst ast.Instance,
	parent ast.Module,
	prefix string,
	hierPrefix string,
	rename func(string) string,
	flat *ast.Module,
	stack map[string]bool,
) bool {
	child := e.program.ByName(inst.Module)
	if child == nil {
		diag.Report(e.sink, diag.Error, "unknown module %q", inst.Module)
		return false
	}

	childPorts := map[string]bool{}
	childDir := map[string]ast.Direction{}
	childWidth := map[string]ast.Expr{}
	for _, p := range child.Ports {
		childPorts[p.Name] = true
		childDir[p.Name] = p.Direction
		childWidth[p.Name] = portWidthExpr(p.Msb, p.Lsb)
	}

	childPortMap := map[string]portBinding{}

	for idx, conn := range inst.Connections {
		portName := conn.Port
		if inst.Positional {
			if idx >= len(child.Ports) {
				diag.Report(e.sink, diag.Error, "too many positional connections in instance %q", inst.Name)
				return false
			}
			portName = child.Ports[idx].Name
		}

		if !childPorts[portName] {
			diag.Report(e.sink, diag.Error, "unknown port %q in instance %q", portName, inst.Name)
			return false
		}
		if _, dup := childPortMap[portName]; dup {
			diag.Report(e.sink, diag.Error, "duplicate connection for port %q in instance %q", portName, inst.Name)
			return false
		}
		if conn.Value == nil {
			diag.Report(e.sink, diag.Error, "missing connection expression in instance %q", inst.Name)
			return false
		}

		switch v := conn.Value.(type) {
		case ast.Identifier:
			childPortMap[portName] = portBinding{signal: rename(v.Name)}
		case ast.Number:
			if childDir[portName] != ast.DirInput {
				diag.Report(e.sink, diag.Error, "literal connection only allowed for input port %q in instance %q", portName, inst.Name)
				return false
			}
			litName := prefix + inst.Name + "__" + portName + "__lit"
			net := literalNet(childWidth[portName], false)
			if !e.addFlatNet(litName, net, hierPrefix+"."+inst.Name+"."+portName+".__lit", flat) {
				return false
			}
			childPortMap[portName] = portBinding{signal: litName}
			flat.Assigns = append(flat.Assigns, ast.ContinuousAssign{
				Lhs: ast.Lhs{Name: litName},
				Rhs: v,
			})
		default:
			diag.Report(e.sink, diag.Error, "port connections must be identifiers or literals in v0 (instance %q, port %q)", inst.Name, portName)
			return false
		}
	}

	childPrefix := prefix + inst.Name + "__"
	childHier := hierPrefix + "." + inst.Name

	for _, p := range child.Ports {
		if _, bound := childPortMap[p.Name]; bound {
			continue
		}
		if p.Direction == ast.DirInput {
			diag.Report(e.sink, diag.Warning, "unconnected input %q in instance %q (defaulting to 0)", p.Name, inst.Name)
			defaultName := childPrefix + p.Name
			net := literalNet(childWidth[p.Name], false)
			if !e.addFlatNet(defaultName, net, childHier+"."+p.Name, flat) {
				return false
			}
			childPortMap[p.Name] = portBinding{signal: defaultName}
			flat.Assigns = append(flat.Assigns, ast.ContinuousAssign{
				Lhs: ast.Lhs{Name: defaultName},
				Rhs: zeroNumber(),
			})
		} else {
			diag.Report(e.sink, diag.Warning, "unconnected output %q in instance %q", p.Name, inst.Name)
		}
	}

	return e.inlineModule(*child, childPrefix, childHier, childPortMap, flat, stack)
}
