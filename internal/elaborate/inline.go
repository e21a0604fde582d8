/*
 * vericore - Depth-first module inlining.
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
	"github.com/hdlforge/vericore/internal/fourstate"
)

// portBinding is the flat signal a callee's port resolves to.
type portBinding struct {
	signal string
}

// elaborator carries the state threaded through the whole depth-first
// inlining pass: the source program, the diagnostics sink, and the global
// flat-name bookkeeping that collision-checking and waveform dumps read.
type elaborator struct {
	program    *ast.Program
	sink       diag.Sink
	netNames   map[string]bool
	flatToHier map[string]string
}

// addFlatNet records a net under its flat name, checking for collision
// against an identically-named net that came from a different hierarchy
// path (spec.md step 3 of the flattening algorithm).
func (e *elaborator) addFlatNet(name string, net ast.Net, hierPath string, flat *ast.Module) bool {
	if e.netNames[name] {
		if prior, ok := e.flatToHier[name]; ok && prior != hierPath {
			diag.Report(e.sink, diag.Error, "flattened net name collision for %q", name)
			return false
		}
		return true
	}
	net.Name = name
	flat.Nets = append(flat.Nets, net)
	e.netNames[name] = true
	e.flatToHier[name] = hierPath
	return true
}

func zeroNumber() ast.Expr {
	return ast.Number{Value: fourstate.Value64(0, 32), Base: ast.BaseDecimal, Signed: true}
}

func literalNet(width ast.Expr, reg bool) ast.Net {
	kind := ast.NetWire
	if reg {
		kind = ast.NetReg
	}
	return ast.Net{Kind: kind, Width: width}
}

// inlineModule flattens module into flat, renaming every identifier
// reference through the binding rules described in spec.md §4.4. prefix is
// the mangled name prefix applied to this module's own locals (empty for
// the top module); hierPrefix is the dotted hierarchy path used for
// collision diagnostics and the flat-to-hier map.
func (e *elaborator) inlineModule(
	module ast.Module,
	prefix string,
	hierPrefix string,
	portMap map[string]portBinding,
	flat *ast.Module,
	stack map[string]bool,
) bool {
	if stack[module.Name] {
		diag.Report(e.sink, diag.Error, "recursive module instantiation detected")
		return false
	}
	stack[module.Name] = true
	defer delete(stack, module.Name)

	portNames := map[string]bool{}
	portRegs := map[string]bool{}
	localNetNames := map[string]bool{}
	for _, p := range module.Ports {
		portNames[p.Name] = true
		portRegs[p.Name] = p.RegPort
	}
	for _, n := range module.Nets {
		localNetNames[n.Name] = true
	}

	rename := func(ident string) string {
		if b, ok := portMap[ident]; ok {
			return b.signal
		}
		if prefix != "" && (portNames[ident] || localNetNames[ident]) {
			return prefix + ident
		}
		return ident
	}

	if prefix == "" {
		flat.Name = module.Name
		flat.Ports = module.Ports
		flat.Params = nil
		for _, param := range module.Params {
			flat.Params = append(flat.Params, ast.Param{
				Pos:   param.Pos,
				Name:  param.Name,
				Value: cloneExpr(param.Value, rename),
				Local: param.Local,
			})
		}
		for _, p := range module.Ports {
			e.flatToHier[p.Name] = hierPrefix + "." + p.Name
		}
		for _, n := range module.Nets {
			if !e.addFlatNet(n.Name, n, hierPrefix+"."+n.Name, flat) {
				return false
			}
		}
	} else {
		for _, p := range module.Ports {
			if _, bound := portMap[p.Name]; bound {
				continue
			}
			net := literalNet(portWidthExpr(p.Msb, p.Lsb), p.RegPort)
			if !e.addFlatNet(prefix+p.Name, net, hierPrefix+"."+p.Name, flat) {
				return false
			}
		}
		for _, n := range module.Nets {
			if !e.addFlatNet(prefix+n.Name, n, hierPrefix+"."+n.Name, flat) {
				return false
			}
		}
	}

	for _, assign := range module.Assigns {
		flat.Assigns = append(flat.Assigns, ast.ContinuousAssign{
			Pos: assign.Pos,
			Lhs: renameLhs(assign.Lhs, rename),
			Rhs: cloneExpr(assign.Rhs, rename),
		})
	}
	for _, block := range module.Always {
		renamed := ast.AlwaysBlock{
			Pos:     block.Pos,
			Trigger: block.Trigger,
			Clock:   rename(block.Clock),
		}
		for _, s := range block.Body {
			renamed.Body = append(renamed.Body, cloneStmt(s, rename))
		}
		flat.Always = append(flat.Always, renamed)
	}

	for _, inst := range module.Instances {
		if !e.inlineInstance(inst, module, prefix, hierPrefix, rename, flat, stack) {
			return false
		}
	}

	return true
}

// portWidthExpr rebuilds a port's [msb:lsb] range into the single
// `msb - lsb + 1` width expression Net.Width expects; nil means the
// conventional 1-bit net.
func portWidthExpr(msb, lsb ast.Expr) ast.Expr {
	if msb == nil {
		return nil
	}
	one := ast.Number{Value: fourstate.Value64(1, 32), Base: ast.BaseDecimal, Signed: true}
	return ast.Binary{Op: ast.BinAdd, Left: ast.Binary{Op: ast.BinSub, Left: msb, Right: lsb}, Right: one}
}

func renameLhs(lhs ast.Lhs, rename func(string) string) ast.Lhs {
	return ast.Lhs{
		Name:  rename(lhs.Name),
		Index: cloneExpr(lhs.Index, rename),
	}
}
