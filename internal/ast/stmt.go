/*
 * vericore - Statement AST node definitions.
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

package ast

import "github.com/hdlforge/vericore/internal/token"

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
	Pos() token.Pos
}

type stmtBase struct {
	At token.Pos
}

func (stmtBase) stmtNode()        {}
func (s stmtBase) Pos() token.Pos { return s.At }

// Lhs is an assignment's left-hand side: a plain identifier, optionally
// narrowed by a bit/part select or indexed range.
type Lhs struct {
	Name  string
	Index Expr // nil, Select, or IndexedRange — constant or variable
}

// Assign is `lhs = rhs;` (Blocking true) or `lhs <= rhs;` (Blocking false),
// with an optional `#delay` (Delay != nil) for assign_delay lowering.
type Assign struct {
	stmtBase
	Lhs      Lhs
	Rhs      Expr
	Blocking bool
	Delay    Expr
}

// If is `if (cond) then else elseStmt`; ElseStmt is nil when absent.
type If struct {
	stmtBase
	Cond     Expr
	Then     Stmt
	ElseStmt Stmt
}

// Block is a `begin ... end` sequence.
type Block struct {
	stmtBase
	Body []Stmt
}

// For is `for (init; cond; post) body`.
type For struct {
	stmtBase
	Init, Post Stmt
	Cond       Expr
	Body       Stmt
}

// While is `while (cond) body`.
type While struct {
	stmtBase
	Cond Expr
	Body Stmt
}

// Repeat is `repeat (count) body`.
type Repeat struct {
	stmtBase
	Count Expr
	Body  Stmt
}

// CaseKind distinguishes case/casex/casez matching semantics.
type CaseKind int

const (
	CaseExact CaseKind = iota
	CaseX
	CaseZ
)

// CaseArm is one `label1, label2, ...: stmt` entry, or the default arm
// when Labels is nil.
type CaseArm struct {
	Labels []Expr
	Body   Stmt
}

// Case is `case/casex/casez (selector) arm... endcase`.
type Case struct {
	stmtBase
	Kind     CaseKind
	Selector Expr
	Arms     []CaseArm
}

// ServiceCall is a statement-level system task invocation ($display,
// $monitor, $finish, $dumpvars, ...) that is not legal in expression
// position.
type ServiceCall struct {
	stmtBase
	Name string
	Args []Expr
}
