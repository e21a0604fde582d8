/*
 * vericore - Signal width resolution for the scheduler VM's signal table.
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

import "github.com/hdlforge/vericore/internal/ast"

// constWidthOrDefault reads a net's bit-width expression: an ast.Number, or
// the unfolded `msb - lsb + 1` shape the parser and elaborator build from a
// [msb:lsb] range (see ast.Net.Width's doc comment). A nil expr means the
// scalar 1-bit default, and a width whose operands are not all known
// literals falls back to def rather than failing the build outright.
func constWidthOrDefault(e ast.Expr, def int) int {
	if e == nil {
		return def
	}
	if add, ok := e.(ast.Binary); ok && add.Op == ast.BinAdd {
		sub, ok := add.Left.(ast.Binary)
		if !ok || sub.Op != ast.BinSub {
			return def
		}
		msb, ok1 := sub.Left.(ast.Number)
		lsb, ok2 := sub.Right.(ast.Number)
		one, ok3 := add.Right.(ast.Number)
		if !ok1 || !ok2 || !ok3 || msb.Value.HasUnknown() || lsb.Value.HasUnknown() || one.Value.HasUnknown() {
			return def
		}
		if w := int(msb.Value.AsUint64()) - int(lsb.Value.AsUint64()) + int(one.Value.AsUint64()); w > 0 {
			return w
		}
		return def
	}
	n, ok := e.(ast.Number)
	if !ok || n.Value.HasUnknown() {
		return def
	}
	w := int(n.Value.AsUint64())
	if w <= 0 {
		return def
	}
	return w
}

// portWidth computes a port's bit width from its declared msb/lsb range,
// mirroring parser/module.go's parseNetDecl: width = msb - lsb + 1.
func portWidth(p ast.Port) int {
	if p.Msb == nil || p.Lsb == nil {
		return 1
	}
	msb, ok1 := p.Msb.(ast.Number)
	lsb, ok2 := p.Lsb.(ast.Number)
	if !ok1 || !ok2 || msb.Value.HasUnknown() || lsb.Value.HasUnknown() {
		return 32
	}
	hi := int(msb.Value.AsUint64())
	lo := int(lsb.Value.AsUint64())
	w := hi - lo + 1
	if w <= 0 {
		return 32
	}
	return w
}
