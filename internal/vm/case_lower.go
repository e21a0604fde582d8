/*
 * vericore - case/casex/casez lowering.
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

func caseKindFromAst(k ast.CaseKind) CaseKind {
	switch k {
	case ast.CaseX:
		return CaseX
	case ast.CaseZ:
		return CaseZ
	default:
		return CaseExact
	}
}

func exprWidthHint(b *builder, e ast.Expr) int {
	switch n := e.(type) {
	case ast.Identifier:
		if id, ok := b.signal(n.Name); ok {
			return int(b.layout.SignalEntries[id].Width)
		}
	case ast.Number:
		return n.Value.Width
	}
	return 32
}

// lowerCaseLabel reduces one case-arm label to a (want, care) match pair.
// casex treats X and Z label bits as wildcards; casez treats only Z; plain
// case requires every bit to match exactly. Labels that fit in 64 bits are
// returned inline; wider labels are pushed into CaseWords as two
// consecutive limb runs (want words, then care words) and wide reports the
// indirection.
func (pb *procBuilder) lowerCaseLabel(e ast.Expr, kind ast.CaseKind) (want, care uint64, wordOffset uint32, wide bool, ok bool) {
	n, isNum := e.(ast.Number)
	if !isNum {
		return 0, 0, 0, false, false
	}
	limbs := len(n.Value.Val)
	pair := func(i int) (w, c uint64) {
		val, x, z := n.Value.Val[i], n.Value.X[i], n.Value.Z[i]
		var wildcard uint64
		switch kind {
		case ast.CaseX:
			wildcard = x | z
		case ast.CaseZ:
			wildcard = z
		}
		c = ^wildcard
		w = val & c
		return
	}
	if limbs <= 1 {
		if limbs == 0 {
			return 0, ^uint64(0), 0, false, true
		}
		w, c := pair(0)
		return w, c, 0, false, true
	}
	offset := uint32(len(pb.b.layout.CaseWords))
	for i := 0; i < limbs; i++ {
		w, _ := pair(i)
		pb.b.layout.CaseWords = append(pb.b.layout.CaseWords, w)
	}
	for i := 0; i < limbs; i++ {
		_, c := pair(i)
		pb.b.layout.CaseWords = append(pb.b.layout.CaseWords, c)
	}
	return 0, 0, offset, true, true
}

// lowerCase lowers `case/casex/casez (selector) arms endcase` into a
// CaseHeader plus its CaseEntries, one per arm label, and an OpCase
// instruction; every arm jumps to a shared exit label once its body runs.
func (pb *procBuilder) lowerCase(st ast.Case) {
	selExpr := pb.lowerExpr(st.Selector)
	width := exprWidthHint(pb.b, st.Selector)
	endLabel := pb.newLabel()
	headerIdx := uint32(len(pb.b.layout.CaseHeaders))
	entryBase := uint32(len(pb.b.layout.CaseEntries))
	armLabels := make([]string, len(st.Arms))
	defaultLabel := ""

	for i, arm := range st.Arms {
		armLabels[i] = pb.newLabel()
		if arm.Labels == nil {
			defaultLabel = armLabels[i]
			continue
		}
		for _, lbl := range arm.Labels {
			want, care, wordOff, wide, ok := pb.lowerCaseLabel(lbl, st.Kind)
			if !ok {
				pb.b.addFallback("non-constant case label lowered as unreachable")
				pb.failed = true
				continue
			}
			entryIdx := uint32(len(pb.b.layout.CaseEntries))
			pb.b.layout.CaseEntries = append(pb.b.layout.CaseEntries, CaseEntry{
				Want: want, Care: care, WordOffset: wordOff, Wide: wide,
			})
			pb.caseFixups = append(pb.caseFixups, caseFixup{entryIdx: int(entryIdx), label: armLabels[i]})
		}
	}
	if defaultLabel == "" {
		defaultLabel = endLabel
	}

	pb.b.layout.CaseHeaders = append(pb.b.layout.CaseHeaders, CaseHeader{
		Kind:        caseKindFromAst(st.Kind),
		Strategy:    CaseLinear,
		Width:       uint32(width),
		EntryOffset: entryBase,
		EntryCount:  uint32(len(pb.b.layout.CaseEntries)) - entryBase,
		ExprOffset:  selExpr,
	})
	pb.defaultFixups = append(pb.defaultFixups, caseDefaultFixup{headerIdx: int(headerIdx), label: defaultLabel})
	pb.emitOp(OpCase, headerIdx)

	for i, arm := range st.Arms {
		pb.setLabel(armLabels[i])
		pb.lowerStmt(arm.Body)
		pb.emitJump(endLabel)
	}
	pb.setLabel(endLabel)
}
