/*
 * vericore - Module and program AST node definitions.
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

// NetKind distinguishes a wire from a reg (or integer, folded into reg's
// storage shape).
type NetKind int

const (
	NetWire NetKind = iota
	NetReg
	NetInteger
)

// Net is a declared wire/reg/integer. The parser appends one Net per
// declared name; a repeated declaration of the same name adds another
// entry and is not merged with the earlier one.
type Net struct {
	Pos        token.Pos
	Kind       NetKind
	Name       string
	Width      Expr // nil means 1 bit; otherwise a constant-folding range expr
	Signed     bool
	ArrayDims  []Expr
}

// Direction is a port's signal-flow direction.
type Direction int

const (
	DirInput Direction = iota
	DirOutput
	DirInout
)

// Port is one module port. Msb/Lsb are preserved unevaluated so the
// elaborator can re-fold them under parameter overrides.
type Port struct {
	Pos       token.Pos
	Direction Direction
	Name      string
	Msb, Lsb  Expr
	Signed    bool
	RegPort   bool // ANSI header declared this output as `output reg`
}

// Param is one `parameter`/`localparam` declaration. Value is folded to a
// Number when all of its operands are literals; the parser keeps no
// parameter environment, so a Value that names another parameter stays an
// unfolded expression.
type Param struct {
	Pos       token.Pos
	Name      string
	Value     Expr
	Local     bool
}

// ContinuousAssign is a top-level `assign lhs = rhs;`.
type ContinuousAssign struct {
	Pos token.Pos
	Lhs Lhs
	Rhs Expr
}

// TriggerKind is an always-block's sensitivity.
type TriggerKind int

const (
	TriggerPosedge TriggerKind = iota
	TriggerNegedge
	TriggerComb // @(*)
	TriggerInitial
)

// AlwaysBlock is `always @(...) body` or `initial body`.
type AlwaysBlock struct {
	Pos     token.Pos
	Trigger TriggerKind
	Clock   string // the sensitivity identifier for posedge/negedge; empty otherwise
	Body    []Stmt
}

// Connection is one actual-to-formal port binding on an instance.
type Connection struct {
	Port  string // callee port name (also used for positional index as a string)
	Value Expr
}

// ParamOverride is one `#(.P(value))` or positional parameter override.
type ParamOverride struct {
	Name  string
	Value Expr
}

// Instance is one `ChildModule instName (...)` statement.
type Instance struct {
	Pos          token.Pos
	Module       string
	Name         string
	Params       []ParamOverride
	Connections  []Connection
	Positional   bool
}

// Module is one `module ... endmodule` definition.
type Module struct {
	Pos         token.Pos
	Name        string
	Ports       []Port
	Nets        []Net
	Params      []Param
	Assigns     []ContinuousAssign
	Always      []AlwaysBlock
	Instances   []Instance
}

// Program is an ordered list of modules — the parser's top-level output.
type Program struct {
	Modules []Module
}

// ByName returns the module with the given name, or nil.
func (p *Program) ByName(name string) *Module {
	for i := range p.Modules {
		if p.Modules[i].Name == name {
			return &p.Modules[i]
		}
	}
	return nil
}
