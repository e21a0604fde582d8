/*
 * vericore - SchedulerVmLayout side-table definitions.
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

// noExtra marks an optional side-table expr-offset field as absent.
const noExtra uint32 = 0xFFFFFFFF

// SignalEntry locates one signal's storage in the packed value/xz plane.
type SignalEntry struct {
	Name      string
	ValSlot   uint32
	XzSlot    uint32
	Width     uint32
	ArraySize uint32
	Flags     uint32
}

// CondEntry backs a jump_if instruction: Kind selects how the condition is
// evaluated, ExprOffset points into the expression table, and Target is the
// process-local word offset to jump to when the condition is false.
type CondEntry struct {
	Kind       CondKind
	ExprOffset uint32
	Target     uint32
}

// CaseHeader describes one lowered case/casex/casez statement.
type CaseHeader struct {
	Kind          CaseKind
	Strategy      CaseStrategy
	Width         uint32
	EntryOffset   uint32
	EntryCount    uint32
	ExprOffset    uint32
	DefaultTarget uint32
}

// CaseEntry is one `(want, care, target)` match triple. Want/Care hold the
// label's value and care masks directly for width <= 64; WordOffset
// indexes into CaseWords for wider labels (Want/Care left zero).
type CaseEntry struct {
	Want       uint64
	Care       uint64
	WordOffset uint32
	Wide       bool
	Target     uint32
}

// AssignEntry is a continuous-assign or blocking/non-blocking procedural
// assign's side-table record.
type AssignEntry struct {
	Flags    uint32
	SignalID uint32
	RhsExpr  uint32
}

// DelayAssignEntry backs `#delay lhs = rhs;`.
type DelayAssignEntry struct {
	Flags      uint32
	SignalID   uint32
	RhsExpr    uint32
	DelayExpr  uint32
	Width      uint32
	ArraySize  uint32
}

// ServiceEntry is one system-task invocation's side-table record.
type ServiceEntry struct {
	Kind      ServiceKind
	FormatID  uint32
	ArgOffset uint32
	ArgCount  uint32
	Flags     uint32
}

// ServiceArg is one service call's positional argument.
type ServiceArg struct {
	Kind    uint32
	Width   uint32
	Payload uint32
	Flags   uint32
}

// ServiceArg.Kind tags.
const (
	ServiceArgExpr   uint32 = 0
	ServiceArgString uint32 = 1
)

// ExprTable is the stack-based expression sub-VM's bytecode and immediate
// pool, shared by every process.
type ExprTable struct {
	Words    []uint32
	ImmWords []uint32
}

// RepeatEntry backs a repeat-loop instruction: CountExpr is evaluated once
// on first entry, and Target is the process-local word offset to jump to
// once the runtime's iteration counter for this entry is exhausted. This
// table has no counterpart in the original header, which only tracks a
// bare repeat_expr_offsets list; a loop-exit needs a jump target the
// original's data-only shape doesn't carry, so this builder adds one.
type RepeatEntry struct {
	CountExpr uint32
	Target    uint32
}

// Fallback records one construct the builder could not lower to the
// encodable bytecode subset (spec.md's fallback-path requirement): the
// build still succeeds, but the runtime (or a later pass) must handle the
// named statement/expression out of band.
type Fallback struct {
	Process string
	Reason  string
}

// Layout is the complete, shape-stable scheduler VM program: the kernel
// reads every table at fixed offsets. The builder only appends entries; the
// Target/DefaultTarget fields of entries already appended are filled in
// when a process's jumps are resolved.
type Layout struct {
	ProcCount    uint32
	WordsPerProc uint32
	Bytecode     []uint32
	ProcOffsets  []uint32
	ProcLengths  []uint32
	ProcNames    []string

	SignalEntries []SignalEntry
	CondEntries   []CondEntry
	CaseHeaders   []CaseHeader
	CaseEntries   []CaseEntry
	CaseWords     []uint64
	AssignEntries []AssignEntry
	DelayEntries  []DelayAssignEntry
	RepeatEntries []RepeatEntry
	ServiceEntries []ServiceEntry
	ServiceArgs    []ServiceArg
	StringTable    []string

	Expr ExprTable

	Fallbacks []Fallback
}
