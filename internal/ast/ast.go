/*
 * vericore - Expression AST node definitions.
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

// Package ast defines the tagged-variant tree the parser builds and the
// elaborator and VM builder consume: Expression, Statement, Module, and
// Program. Every node is exclusively owned by its parent — no back
// pointers, no sharing. Exhaustiveness over each variant set is checked at
// each consumer via a type switch, following spec.md's closed-enum
// guidance; the closed set of shapes itself mirrors the teacher's
// struct-per-opcode tables in emu/assemble/assemble.go.
package ast

import "github.com/hdlforge/vericore/internal/fourstate"
import "github.com/hdlforge/vericore/internal/token"

// Expr is implemented by every expression node. The unexported method
// closes the set to this package.
type Expr interface {
	exprNode()
	Pos() token.Pos
}

type exprBase struct {
	At token.Pos
}

func (exprBase) exprNode()        {}
func (e exprBase) Pos() token.Pos { return e.At }

// Identifier is a bare name reference.
type Identifier struct {
	exprBase
	Name string
}

// NumBase is the literal's radix tag.
type NumBase int

const (
	BaseDecimal NumBase = iota
	BaseBinary
	BaseOctal
	BaseHex
)

// Number is a sized or unsized four-state literal.
type Number struct {
	exprBase
	Value         fourstate.Value
	ExplicitWidth bool
	Base          NumBase
	Signed        bool
}

// String is a UTF-8 literal, legal only as a service-call argument.
type String struct {
	exprBase
	Value string
}

// UnaryOp is a stable single-char/short operator tag shared by parser and
// evaluator.
type UnaryOp string

const (
	UnaryPlus       UnaryOp = "+"
	UnaryMinus      UnaryOp = "-"
	UnaryNot        UnaryOp = "~"
	UnaryLogicalNot UnaryOp = "!"
	UnaryReduceAnd  UnaryOp = "&"
	UnaryReduceOr   UnaryOp = "|"
	UnaryReduceXor  UnaryOp = "^"
	UnaryReduceNand UnaryOp = "~&"
	UnaryReduceNor  UnaryOp = "~|"
	UnaryReduceXnor UnaryOp = "~^"
	UnarySigned     UnaryOp = "$signed"
	UnaryUnsigned   UnaryOp = "$unsigned"
	UnaryClog2      UnaryOp = "$clog2"
	UnaryBoolCast   UnaryOp = "bool"
)

// Unary is a prefix operator applied to one operand.
type Unary struct {
	exprBase
	Op      UnaryOp
	Operand Expr
}

// BinaryOp is the complete Verilog binary operator set.
type BinaryOp string

const (
	BinAdd     BinaryOp = "+"
	BinSub     BinaryOp = "-"
	BinMul     BinaryOp = "*"
	BinDiv     BinaryOp = "/"
	BinMod     BinaryOp = "%"
	BinPow     BinaryOp = "**"
	BinAnd     BinaryOp = "&"
	BinOr      BinaryOp = "|"
	BinXor     BinaryOp = "^"
	BinXnor    BinaryOp = "~^"
	BinLogAnd  BinaryOp = "&&"
	BinLogOr   BinaryOp = "||"
	BinEq      BinaryOp = "=="
	BinNeq     BinaryOp = "!="
	BinCaseEq  BinaryOp = "==="
	BinCaseNeq BinaryOp = "!=="
	BinWildEq  BinaryOp = "==?"
	BinWildNeq BinaryOp = "!=?"
	BinLt      BinaryOp = "<"
	BinLe      BinaryOp = "<="
	BinGt      BinaryOp = ">"
	BinGe      BinaryOp = ">="
	BinShl     BinaryOp = "<<"
	BinLShr    BinaryOp = ">>"
	BinAShr    BinaryOp = ">>>"
)

// Binary is a two-operand operator expression.
type Binary struct {
	exprBase
	Op          BinaryOp
	Left, Right Expr
}

// Ternary is `cond ? then : else`.
type Ternary struct {
	exprBase
	Cond, Then, Else Expr
}

// Select is a bit-select (Lsb == nil) or constant part-select (Lsb != nil).
type Select struct {
	exprBase
	Base Expr
	Msb  Expr
	Lsb  Expr // nil for a plain bit-select
}

// IndexedRange is `base[start +: width]` or `base[start -: width]`.
type IndexedRange struct {
	exprBase
	Base       Expr
	Start      Expr
	Width      int
	Increasing bool
}

// Concat is `{e1, e2, ...}`, MSB-first, with an optional replication count.
type Concat struct {
	exprBase
	Parts     []Expr
	Replicate Expr // nil unless this is a `{N{...}}` form
}

// Call is a system task/function or mathematical call in expression
// position (`$clog2(x)`, `$bits(y)`, ...).
type Call struct {
	exprBase
	Name string
	Args []Expr
}

