/*
 * vericore - Scheduler VM opcode and instruction-packing definitions.
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

// Package vm lowers one elaborated, flattened module into a SchedulerVmLayout
// of 32-bit bytecode words the device kernel executes at fixed side-table
// offsets. The builder appends to these tables and never removes or
// reorders an entry; the jump targets of condition, case and repeat entries
// are written into those entries after a process body is lowered, once
// every label's word offset is known.
package vm

// Op is a process-bytecode instruction's opcode, packed into the low 8 bits
// of its 32-bit word; the high 24 bits hold an inline argument.
type Op uint32

const (
	OpDone Op = iota
	OpCallGroup
	OpNoop
	OpJump
	OpJumpIf
	OpCase
	OpRepeat
	OpAssign
	OpAssignNb
	OpAssignDelay
	OpForce
	OpRelease
	OpWaitTime
	OpWaitDelta
	OpWaitEvent
	OpWaitEdge
	OpWaitCond
	OpWaitJoin
	OpWaitService
	OpEventTrigger
	OpFork
	OpDisable
	OpServiceCall
	OpServiceRetAssign
	OpServiceRetBranch
	OpTaskCall
	OpRet
	OpHaltSim
)

// ExprOp is the stack-based expression sub-VM's opcode.
type ExprOp uint32

const (
	ExprDone ExprOp = iota
	ExprPushConst
	ExprPushSignal
	ExprPushImm
	ExprUnary
	ExprBinary
	ExprTernary
	ExprSelect
	ExprIndex
	ExprConcat
	ExprCall
)

// UnaryOp is the expression sub-VM's unary-operator sub-tag.
type UnaryOp uint32

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryBitNot
	UnaryLogNot
	UnaryRedAnd
	UnaryRedNand
	UnaryRedOr
	UnaryRedNor
	UnaryRedXor
	UnaryRedXnor
)

// BinaryOp is the expression sub-VM's binary-operator sub-tag.
type BinaryOp uint32

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinPow
	BinShl
	BinShr
	BinAshr
	BinAnd
	BinOr
	BinXor
	BinXnor
	BinLogAnd
	BinLogOr
	BinEq
	BinNeq
	BinCaseEq
	BinCaseNeq
	BinLt
	BinLe
	BinGt
	BinGe
)

// JoinKind is a fork instruction's join discipline, packed into the top 8
// bits of its 24-bit argument.
type JoinKind uint32

const (
	JoinAll JoinKind = iota
	JoinAny
	JoinNone
)

// DisableKind distinguishes a disable instruction's target.
type DisableKind uint32

const (
	DisableBlock DisableKind = iota
	DisableChildProc
	DisableCrossProc
)

// CondKind tags a CondEntry's evaluation strategy.
type CondKind uint32

const (
	CondDynamic CondKind = iota
	CondConst
	CondExpr
)

// CaseKind distinguishes case/casex/casez matching semantics.
type CaseKind uint32

const (
	CaseExact CaseKind = iota
	CaseX
	CaseZ
)

// CaseStrategy is a hint to the runtime for how to dispatch a case's
// entries; semantics never depend on it.
type CaseStrategy uint32

const (
	CaseLinear CaseStrategy = iota
	CaseBucket
	CaseLut
)

// ServiceKind tags a service-call instruction's system task/function.
type ServiceKind uint32

const (
	ServiceDisplay ServiceKind = iota
	ServiceMonitor
	ServiceFinish
	ServiceDumpfile
	ServiceDumpvars
	ServiceReadmemh
	ServiceReadmemb
	ServiceStop
	ServiceStrobe
	ServiceDumpoff
	ServiceDumpon
	ServiceDumpflush
	ServiceDumpall
	ServiceDumplimit
	ServiceFwrite
	ServiceFdisplay
	ServiceFopen
	ServiceFclose
	ServiceFgetc
	ServiceFgets
	ServiceFeof
	ServiceFscanf
	ServiceSscanf
	ServiceFtell
	ServiceRewind
	ServiceWritememh
	ServiceWritememb
	ServiceFseek
	ServiceFflush
	ServiceFerror
	ServiceFungetc
	ServiceFread
	ServiceWrite
	ServiceSformat
	ServiceTimeformat
	ServicePrinttimescale
	ServiceTestplusargs
	ServiceValueplusargs
)

// CallOp tags an ExprCall instruction's math/time builtin.
type CallOp uint32

const (
	CallTime CallOp = iota
	CallStime
	CallRealtime
	CallIToR
	CallBitsToReal
	CallRealToBits
	CallRToI
	CallLog10
	CallLn
	CallExp
	CallSqrt
	CallFloor
	CallCeil
	CallSin
	CallCos
	CallTan
	CallAsin
	CallAcos
	CallAtan
	CallSinh
	CallCosh
	CallTanh
	CallAsinh
	CallAcosh
	CallAtanh
	CallPow
	CallAtan2
	CallHypot
	// CallClog2 has no counterpart in the original call-op enum: $clog2 is a
	// UnaryOp there, but it is a variable-arity-free single-operand builtin
	// here too, and sits naturally alongside the other math calls.
	CallClog2
)

var callOpByName = map[string]CallOp{
	"$time":         CallTime,
	"$stime":        CallStime,
	"$realtime":     CallRealtime,
	"$itor":         CallIToR,
	"$bitstoreal":   CallBitsToReal,
	"$realtobits":   CallRealToBits,
	"$rtoi":         CallRToI,
	"$log10":        CallLog10,
	"$ln":           CallLn,
	"$exp":          CallExp,
	"$sqrt":         CallSqrt,
	"$floor":        CallFloor,
	"$ceil":         CallCeil,
	"$sin":          CallSin,
	"$cos":          CallCos,
	"$tan":          CallTan,
	"$asin":         CallAsin,
	"$acos":         CallAcos,
	"$atan":         CallAtan,
	"$sinh":         CallSinh,
	"$cosh":         CallCosh,
	"$tanh":         CallTanh,
	"$asinh":        CallAsinh,
	"$acosh":        CallAcosh,
	"$atanh":        CallAtanh,
	"$pow":          CallPow,
	"$atan2":        CallAtan2,
	"$hypot":        CallHypot,
}

// serviceKindByName maps a lexed system-task identifier to its ServiceKind;
// unrecognized names fall back to the builder's diagnostics side-channel.
var serviceKindByName = map[string]ServiceKind{
	"$display":        ServiceDisplay,
	"$monitor":        ServiceMonitor,
	"$finish":         ServiceFinish,
	"$dumpfile":       ServiceDumpfile,
	"$dumpvars":       ServiceDumpvars,
	"$readmemh":       ServiceReadmemh,
	"$readmemb":       ServiceReadmemb,
	"$stop":           ServiceStop,
	"$strobe":         ServiceStrobe,
	"$dumpoff":        ServiceDumpoff,
	"$dumpon":         ServiceDumpon,
	"$dumpflush":      ServiceDumpflush,
	"$dumpall":        ServiceDumpall,
	"$dumplimit":      ServiceDumplimit,
	"$fwrite":         ServiceFwrite,
	"$fdisplay":       ServiceFdisplay,
	"$fopen":          ServiceFopen,
	"$fclose":         ServiceFclose,
	"$fgetc":          ServiceFgetc,
	"$fgets":          ServiceFgets,
	"$feof":           ServiceFeof,
	"$fscanf":         ServiceFscanf,
	"$sscanf":         ServiceSscanf,
	"$ftell":          ServiceFtell,
	"$rewind":         ServiceRewind,
	"$writememh":      ServiceWritememh,
	"$writememb":      ServiceWritememb,
	"$fseek":          ServiceFseek,
	"$fflush":         ServiceFflush,
	"$ferror":         ServiceFerror,
	"$fungetc":        ServiceFungetc,
	"$fread":          ServiceFread,
	"$write":          ServiceWrite,
	"$sformat":        ServiceSformat,
	"$timeformat":     ServiceTimeformat,
	"$printtimescale": ServicePrinttimescale,
	"$test$plusargs":  ServiceTestplusargs,
	"$value$plusargs": ServiceValueplusargs,
}

const (
	opMask       = 0xFF
	opShift      = 8
	forkJoinShift = 24
	forkCountMask = 0x00FFFFFF

	// AssignFlagNonblocking marks an AssignEntry as `<=` rather than `=`.
	AssignFlagNonblocking uint32 = 1 << 0
	// AssignFlagFallback marks an entry the builder could not fully lower.
	AssignFlagFallback uint32 = 1 << 1

	ServiceFlagFallback uint32 = 1 << 0
)

// MakeInstr packs an opcode and its inline argument into one bytecode word.
func MakeInstr(op Op, arg uint32) uint32 {
	return (arg << opShift) | uint32(op)
}

// DecodeOp extracts the opcode from a packed instruction word.
func DecodeOp(instr uint32) Op { return Op(instr & opMask) }

// DecodeArg extracts the inline argument from a packed instruction word.
func DecodeArg(instr uint32) uint32 { return instr >> opShift }

// MakeExprInstr packs an expression opcode and its inline argument.
func MakeExprInstr(op ExprOp, arg uint32) uint32 {
	return (arg << opShift) | uint32(op)
}

// PackForkArg packs a fork instruction's child count and join kind.
func PackForkArg(count uint32, kind JoinKind) uint32 {
	return (uint32(kind) << forkJoinShift) | (count & forkCountMask)
}

// DecodeForkCount extracts a fork argument's child count.
func DecodeForkCount(arg uint32) uint32 { return arg & forkCountMask }

// DecodeForkKind extracts a fork argument's join kind.
func DecodeForkKind(arg uint32) JoinKind { return JoinKind((arg >> forkJoinShift) & 0xFF) }

const edgeKindShift = 23

// PackEdgeArg packs a wait_edge instruction's signal id and edge polarity.
func PackEdgeArg(signalID uint32, negedge bool) uint32 {
	k := uint32(0)
	if negedge {
		k = 1
	}
	return (k << edgeKindShift) | (signalID & 0x7FFFFF)
}

// DecodeEdgeSignal extracts a wait_edge argument's signal id.
func DecodeEdgeSignal(arg uint32) uint32 { return arg & 0x7FFFFF }

// DecodeEdgeNegedge reports a wait_edge argument's polarity.
func DecodeEdgeNegedge(arg uint32) bool { return (arg>>edgeKindShift)&1 != 0 }
