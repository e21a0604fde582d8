/*
 * vericore - Expression sub-VM lowering.
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
	"fmt"

	"github.com/hdlforge/vericore/internal/ast"
	"github.com/hdlforge/vericore/internal/fourstate"
)

// maxExprStack is the expression sub-VM's bounded operand-stack depth;
// anything deeper falls back rather than risking a runtime overflow.
const maxExprStack = 32

var unaryOpTable = map[ast.UnaryOp]UnaryOp{
	ast.UnaryPlus:       UnaryPlus,
	ast.UnaryMinus:      UnaryMinus,
	ast.UnaryNot:        UnaryBitNot,
	ast.UnaryLogicalNot: UnaryLogNot,
	ast.UnaryReduceAnd:  UnaryRedAnd,
	ast.UnaryReduceOr:   UnaryRedOr,
	ast.UnaryReduceXor:  UnaryRedXor,
	ast.UnaryReduceNand: UnaryRedNand,
	ast.UnaryReduceNor:  UnaryRedNor,
	ast.UnaryReduceXnor: UnaryRedXnor,
}

var binaryOpTable = map[ast.BinaryOp]BinaryOp{
	ast.BinAdd:     BinAdd,
	ast.BinSub:     BinSub,
	ast.BinMul:     BinMul,
	ast.BinDiv:     BinDiv,
	ast.BinMod:     BinMod,
	ast.BinPow:     BinPow,
	ast.BinAnd:     BinAnd,
	ast.BinOr:      BinOr,
	ast.BinXor:     BinXor,
	ast.BinXnor:    BinXnor,
	ast.BinLogAnd:  BinLogAnd,
	ast.BinLogOr:   BinLogOr,
	ast.BinEq:      BinEq,
	ast.BinNeq:     BinNeq,
	ast.BinCaseEq:  BinCaseEq,
	ast.BinCaseNeq: BinCaseNeq,
	// Wildcard equality (==?, !=?) is deliberately absent: its don't-care
	// pattern-operand semantics (spec.md §4.3) are distinct from case
	// equality's literal bit match, and the expression sub-VM has no
	// dedicated opcode for it. Left unmapped so the ast.Binary case below
	// falls back rather than silently emitting wrong bytecode; only the
	// constant-folding path (fourstate.WildEq, parser/expr.go) implements
	// this operator today.
	ast.BinLt:   BinLt,
	ast.BinLe:   BinLe,
	ast.BinGt:   BinGt,
	ast.BinGe:   BinGe,
	ast.BinShl:  BinShl,
	ast.BinLShr: BinShr,
	ast.BinAShr: BinAshr,
}

// lowerExpr lowers e into the shared expression table, terminated by
// ExprDone, and returns its start offset for a CondEntry/AssignEntry/etc.
// ExprOffset field to reference.
func (pb *procBuilder) lowerExpr(e ast.Expr) uint32 {
	start := uint32(len(pb.b.layout.Expr.Words))
	depth := 0
	pb.emitExprNode(e, &depth)
	pb.appendExprWord(MakeExprInstr(ExprDone, 0))
	return start
}

func (pb *procBuilder) appendExprWord(w uint32) {
	pb.b.layout.Expr.Words = append(pb.b.layout.Expr.Words, w)
}

func (pb *procBuilder) bumpStack(depth *int, delta int) {
	*depth += delta
	if *depth > maxExprStack {
		pb.b.addFallback(fmt.Sprintf("expression exceeds %d-deep operand stack", maxExprStack))
		pb.failed = true
	}
}

func (pb *procBuilder) emitExprNode(e ast.Expr, depth *int) {
	switch n := e.(type) {
	case ast.Identifier:
		sigID, ok := pb.b.signal(n.Name)
		if !ok {
			pb.b.addFallback(fmt.Sprintf("unresolved signal %q in expression", n.Name))
			pb.failed = true
		}
		pb.appendExprWord(MakeExprInstr(ExprPushSignal, sigID))
		pb.bumpStack(depth, 1)

	case ast.Number:
		arg, wide := pb.encodeImmediate(n.Value)
		if wide {
			pb.appendExprWord(MakeExprInstr(ExprPushImm, arg))
		} else {
			pb.appendExprWord(MakeExprInstr(ExprPushConst, arg))
		}
		pb.bumpStack(depth, 1)

	case ast.String:
		idx := pb.b.stringIndex(n.Value)
		pb.appendExprWord(MakeExprInstr(ExprPushImm, idx))
		pb.bumpStack(depth, 1)

	case ast.Unary:
		pb.emitUnary(n, depth)

	case ast.Binary:
		pb.emitExprNode(n.Left, depth)
		pb.emitExprNode(n.Right, depth)
		op, ok := binaryOpTable[n.Op]
		if !ok {
			pb.b.addFallback(fmt.Sprintf("unsupported binary operator %q", n.Op))
			pb.failed = true
		}
		pb.appendExprWord(MakeExprInstr(ExprBinary, uint32(op)))
		pb.bumpStack(depth, -1)

	case ast.Ternary:
		pb.emitExprNode(n.Cond, depth)
		pb.emitExprNode(n.Then, depth)
		pb.emitExprNode(n.Else, depth)
		pb.appendExprWord(MakeExprInstr(ExprTernary, 0))
		pb.bumpStack(depth, -2)

	case ast.Select:
		pb.emitExprNode(n.Base, depth)
		if n.Lsb != nil {
			hi, lo, ok := constBitPair(n.Msb, n.Lsb)
			if !ok {
				pb.b.addFallback("non-constant part-select bounds")
				pb.failed = true
			}
			pb.appendExprWord(MakeExprInstr(ExprSelect, (uint32(hi)<<12)|uint32(lo)|selectIsRangeBit))
		} else {
			hi, ok := constBit(n.Msb)
			if !ok {
				pb.b.addFallback("non-constant bit-select index")
				pb.failed = true
			}
			pb.appendExprWord(MakeExprInstr(ExprSelect, uint32(hi)))
		}

	case ast.IndexedRange:
		pb.emitExprNode(n.Base, depth)
		pb.emitExprNode(n.Start, depth)
		dir := uint32(0)
		if n.Increasing {
			dir = 1
		}
		arg := (dir << 16) | uint32(n.Width)
		pb.appendExprWord(MakeExprInstr(ExprIndex, arg))
		pb.bumpStack(depth, -1)

	case ast.Concat:
		n2 := len(n.Parts)
		for _, p := range n.Parts {
			pb.emitExprNode(p, depth)
		}
		if n.Replicate != nil {
			pb.emitExprNode(n.Replicate, depth)
			n2++
		}
		pb.appendExprWord(MakeExprInstr(ExprConcat, uint32(len(n.Parts))))
		if n2 > 1 {
			pb.bumpStack(depth, -(n2 - 1))
		}

	case ast.Call:
		for _, a := range n.Args {
			pb.emitExprNode(a, depth)
		}
		op, ok := callOpByName[n.Name]
		if !ok {
			pb.b.addFallback(fmt.Sprintf("unsupported call %q", n.Name))
			pb.failed = true
		}
		pb.appendExprWord(MakeExprInstr(ExprCall, uint32(op)))
		if len(n.Args) > 1 {
			pb.bumpStack(depth, -(len(n.Args) - 1))
		} else if len(n.Args) == 0 {
			pb.bumpStack(depth, 1)
		}

	default:
		pb.b.addFallback(fmt.Sprintf("unsupported expression %T", e))
		pb.failed = true
		pb.appendExprWord(MakeExprInstr(ExprPushConst, 0))
		pb.bumpStack(depth, 1)
	}
}

// selectIsRangeBit flags a part-select (rather than a bit-select) in an
// ExprSelect argument, above the packed msb/lsb bit fields.
const selectIsRangeBit = 1 << 24

func (pb *procBuilder) emitUnary(n ast.Unary, depth *int) {
	switch n.Op {
	case ast.UnarySigned, ast.UnaryUnsigned, ast.UnaryBoolCast:
		// Pure reinterpretation: sign/width metadata lives on the signal
		// table entry, not in the bytecode stream.
		pb.emitExprNode(n.Operand, depth)
		return
	case ast.UnaryClog2:
		pb.emitExprNode(n.Operand, depth)
		pb.appendExprWord(MakeExprInstr(ExprCall, uint32(CallClog2)))
		return
	}
	pb.emitExprNode(n.Operand, depth)
	op, ok := unaryOpTable[n.Op]
	if !ok {
		pb.b.addFallback(fmt.Sprintf("unsupported unary operator %q", n.Op))
		pb.failed = true
	}
	pb.appendExprWord(MakeExprInstr(ExprUnary, uint32(op)))
}

// encodeImmediate returns the inline arg for a small, fully-known constant
// (ExprPushConst) or an offset into the shared immediate pool for anything
// wider than 24 bits or carrying X/Z (ExprPushImm); wide reports which.
func (pb *procBuilder) encodeImmediate(v fourstate.Value) (uint32, bool) {
	if !v.HasUnknown() && len(v.Val) <= 1 && v.AsUint64() <= 0x00FFFFFF {
		return uint32(v.AsUint64()), false
	}
	offset := uint32(len(pb.b.layout.Expr.ImmWords))
	pb.b.layout.Expr.ImmWords = append(pb.b.layout.Expr.ImmWords, uint32(len(v.Val)), uint32(v.Width))
	for i := range v.Val {
		xz := v.X[i] | v.Z[i]
		val := (v.Val[i] &^ xz) | v.X[i]
		pb.b.layout.Expr.ImmWords = append(pb.b.layout.Expr.ImmWords,
			uint32(val), uint32(val>>32), uint32(xz), uint32(xz>>32))
	}
	return offset, true
}

func constBit(e ast.Expr) (int, bool) {
	n, ok := e.(ast.Number)
	if !ok || n.Value.HasUnknown() {
		return 0, false
	}
	return int(n.Value.AsUint64()), true
}

func constBitPair(msb, lsb ast.Expr) (int, int, bool) {
	hi, ok1 := constBit(msb)
	lo, ok2 := constBit(lsb)
	return hi, lo, ok1 && ok2
}
