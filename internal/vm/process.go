/*
 * vericore - Per-process statement lowering: control flow and assignment.
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
)

type jumpFixup struct {
	wordIdx int
	label   string
}

type condFixup struct {
	condIdx int
	label   string
}

type caseFixup struct {
	entryIdx int
	label    string
}

type caseDefaultFixup struct {
	headerIdx int
	label     string
}

// procBuilder lowers one process (a continuous assign or an always block)
// into a flat word stream, resolving forward/backward jumps by label once
// the whole body has been emitted.
type procBuilder struct {
	b      *builder
	words  []uint32
	failed bool

	labels        map[string]uint32
	labelCounter  int
	jumpFixups    []jumpFixup
	condFixups    []condFixup
	caseFixups    []caseFixup
	defaultFixups []caseDefaultFixup
}

func newProcBuilder(b *builder) *procBuilder {
	return &procBuilder{b: b, labels: map[string]uint32{}}
}

func (pb *procBuilder) emitOp(op Op, arg uint32) {
	pb.words = append(pb.words, MakeInstr(op, arg))
}

func (pb *procBuilder) here() uint32 { return uint32(len(pb.words)) }

func (pb *procBuilder) newLabel() string {
	pb.labelCounter++
	return fmt.Sprintf("L%d", pb.labelCounter)
}

func (pb *procBuilder) setLabel(name string) { pb.labels[name] = pb.here() }

// emitJump reserves a word for an unconditional jump, patched once the
// label's position is known.
func (pb *procBuilder) emitJump(label string) {
	pb.jumpFixups = append(pb.jumpFixups, jumpFixup{wordIdx: len(pb.words), label: label})
	pb.words = append(pb.words, 0)
}

// emitJumpIf lowers condExpr and emits a jump_if that falls through when
// true and jumps to falseLabel when false.
func (pb *procBuilder) emitJumpIf(falseLabel string, condExpr uint32) {
	condID := uint32(len(pb.b.layout.CondEntries))
	pb.b.layout.CondEntries = append(pb.b.layout.CondEntries, CondEntry{Kind: CondExpr, ExprOffset: condExpr})
	pb.condFixups = append(pb.condFixups, condFixup{condIdx: int(condID), label: falseLabel})
	pb.emitOp(OpJumpIf, condID)
}

// resolveJumps patches every forward/backward reference recorded during
// lowering now that every label's final word offset is known.
func (pb *procBuilder) resolveJumps() {
	resolve := func(label string) uint32 {
		target, ok := pb.labels[label]
		if !ok {
			pb.b.addFallback(fmt.Sprintf("unresolved label %q", label))
			pb.failed = true
			return 0
		}
		return target
	}
	for _, f := range pb.jumpFixups {
		pb.words[f.wordIdx] = MakeInstr(OpJump, resolve(f.label))
	}
	for _, f := range pb.condFixups {
		pb.b.layout.CondEntries[f.condIdx].Target = resolve(f.label)
	}
	for _, f := range pb.caseFixups {
		pb.b.layout.CaseEntries[f.entryIdx].Target = resolve(f.label)
	}
	for _, f := range pb.defaultFixups {
		pb.b.layout.CaseHeaders[f.headerIdx].DefaultTarget = resolve(f.label)
	}
}

// lowerContinuousAssign lowers one top-level `assign lhs = rhs;` into an
// AssignEntry plus its driving opcode; continuous assigns are always
// blocking by construction.
func (pb *procBuilder) lowerContinuousAssign(a ast.ContinuousAssign) {
	rhs := pb.lowerExpr(a.Rhs)
	sigID, ok := pb.b.signal(a.Lhs.Name)
	if !ok {
		pb.b.addFallback(fmt.Sprintf("unresolved signal %q in continuous assign", a.Lhs.Name))
		pb.failed = true
		return
	}
	flags := uint32(0)
	if a.Lhs.Index != nil {
		flags |= AssignFlagFallback
		pb.b.addFallback(fmt.Sprintf("bit/part-select lhs on %q lowered as a whole-signal assign", a.Lhs.Name))
	}
	idx := uint32(len(pb.b.layout.AssignEntries))
	pb.b.layout.AssignEntries = append(pb.b.layout.AssignEntries, AssignEntry{Flags: flags, SignalID: sigID, RhsExpr: rhs})
	pb.emitOp(OpAssign, idx)
}

// lowerAlwaysBlock lowers one `always @(...) body` or `initial body` into
// its process body: initial blocks run once (OpDone added by the caller
// ends the process), posedge/negedge blocks wait on their clock edge in a
// loop, and comb blocks wait on the runtime's dynamic sensitivity tracking.
func (pb *procBuilder) lowerAlwaysBlock(blk ast.AlwaysBlock) {
	switch blk.Trigger {
	case ast.TriggerInitial:
		pb.lowerStmtList(blk.Body)
	case ast.TriggerComb:
		top := pb.newLabel()
		pb.setLabel(top)
		condID := uint32(len(pb.b.layout.CondEntries))
		pb.b.layout.CondEntries = append(pb.b.layout.CondEntries, CondEntry{Kind: CondDynamic, ExprOffset: noExtra})
		pb.emitOp(OpWaitCond, condID)
		pb.lowerStmtList(blk.Body)
		pb.emitJump(top)
	case ast.TriggerPosedge, ast.TriggerNegedge:
		sigID, ok := pb.b.signal(blk.Clock)
		if !ok {
			pb.b.addFallback(fmt.Sprintf("clock %q is not a declared signal", blk.Clock))
			pb.failed = true
		}
		top := pb.newLabel()
		pb.setLabel(top)
		pb.emitOp(OpWaitEdge, PackEdgeArg(sigID, blk.Trigger == ast.TriggerNegedge))
		pb.lowerStmtList(blk.Body)
		pb.emitJump(top)
	default:
		pb.b.addFallback(fmt.Sprintf("unsupported always-block trigger %v", blk.Trigger))
		pb.failed = true
	}
}

func (pb *procBuilder) lowerStmtList(list []ast.Stmt) {
	for _, s := range list {
		pb.lowerStmt(s)
	}
}

func (pb *procBuilder) lowerStmt(s ast.Stmt) {
	switch st := s.(type) {
	case ast.Assign:
		pb.lowerAssignStmt(st)
	case ast.If:
		pb.lowerIf(st)
	case ast.Block:
		pb.lowerStmtList(st.Body)
	case ast.For:
		pb.lowerFor(st)
	case ast.While:
		pb.lowerWhile(st)
	case ast.Repeat:
		pb.lowerRepeat(st)
	case ast.Case:
		pb.lowerCase(st)
	case ast.ServiceCall:
		pb.lowerServiceCall(st)
	default:
		pb.b.addFallback(fmt.Sprintf("unsupported statement %T", s))
		pb.failed = true
	}
}

func (pb *procBuilder) lowerAssignStmt(a ast.Assign) {
	rhs := pb.lowerExpr(a.Rhs)
	sigID, ok := pb.b.signal(a.Lhs.Name)
	if !ok {
		pb.b.addFallback(fmt.Sprintf("unresolved signal %q in assignment", a.Lhs.Name))
		pb.failed = true
		return
	}
	flags := uint32(0)
	if !a.Blocking {
		flags |= AssignFlagNonblocking
	}
	if a.Lhs.Index != nil {
		flags |= AssignFlagFallback
		pb.b.addFallback(fmt.Sprintf("bit/part-select lhs on %q lowered as a whole-signal assign", a.Lhs.Name))
	}
	if a.Delay != nil {
		delayExpr := pb.lowerExpr(a.Delay)
		width := uint32(32)
		if e, ok := pb.b.signal(a.Lhs.Name); ok {
			width = pb.b.layout.SignalEntries[e].Width
		}
		idx := uint32(len(pb.b.layout.DelayEntries))
		pb.b.layout.DelayEntries = append(pb.b.layout.DelayEntries, DelayAssignEntry{
			Flags: flags, SignalID: sigID, RhsExpr: rhs, DelayExpr: delayExpr, Width: width, ArraySize: 1,
		})
		pb.emitOp(OpAssignDelay, idx)
		return
	}
	idx := uint32(len(pb.b.layout.AssignEntries))
	pb.b.layout.AssignEntries = append(pb.b.layout.AssignEntries, AssignEntry{Flags: flags, SignalID: sigID, RhsExpr: rhs})
	op := OpAssign
	if !a.Blocking {
		op = OpAssignNb
	}
	pb.emitOp(op, idx)
}

func (pb *procBuilder) lowerIf(st ast.If) {
	cond := pb.lowerExpr(st.Cond)
	elseLabel := pb.newLabel()
	endLabel := pb.newLabel()
	pb.emitJumpIf(elseLabel, cond)
	pb.lowerStmt(st.Then)
	if st.ElseStmt != nil {
		pb.emitJump(endLabel)
		pb.setLabel(elseLabel)
		pb.lowerStmt(st.ElseStmt)
		pb.setLabel(endLabel)
	} else {
		pb.setLabel(elseLabel)
	}
}

func (pb *procBuilder) lowerWhile(st ast.While) {
	top := pb.newLabel()
	end := pb.newLabel()
	pb.setLabel(top)
	cond := pb.lowerExpr(st.Cond)
	pb.emitJumpIf(end, cond)
	pb.lowerStmt(st.Body)
	pb.emitJump(top)
	pb.setLabel(end)
}

func (pb *procBuilder) lowerFor(st ast.For) {
	if st.Init != nil {
		pb.lowerStmt(st.Init)
	}
	top := pb.newLabel()
	end := pb.newLabel()
	pb.setLabel(top)
	if st.Cond != nil {
		cond := pb.lowerExpr(st.Cond)
		pb.emitJumpIf(end, cond)
	}
	pb.lowerStmt(st.Body)
	if st.Post != nil {
		pb.lowerStmt(st.Post)
	}
	pb.emitJump(top)
	pb.setLabel(end)
}

// lowerRepeat lowers `repeat (count) body`: the runtime owns the iteration
// counter keyed by the RepeatEntry index, decrementing it on every pass
// through OpRepeat and falling through to the body until exhausted, at
// which point it jumps to Target.
func (pb *procBuilder) lowerRepeat(st ast.Repeat) {
	count := pb.lowerExpr(st.Count)
	idx := uint32(len(pb.b.layout.RepeatEntries))
	pb.b.layout.RepeatEntries = append(pb.b.layout.RepeatEntries, RepeatEntry{CountExpr: count})
	top := pb.here()
	pb.emitOp(OpRepeat, idx)
	pb.lowerStmt(st.Body)
	pb.emitJump(fmt.Sprintf("__repeat_top_%d", idx))
	pb.labels[fmt.Sprintf("__repeat_top_%d", idx)] = top
	pb.b.layout.RepeatEntries[idx].Target = pb.here()
}
