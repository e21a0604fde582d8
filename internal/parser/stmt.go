/*
 * vericore - Statement grammar.
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

package parser

import (
	"github.com/hdlforge/vericore/internal/ast"
	"github.com/hdlforge/vericore/internal/diag"
	"github.com/hdlforge/vericore/internal/token"
)

// statementServiceCalls are system tasks legal only in statement position
// (spec.md §4.2); the $display family takes a format string plus args.
var statementServiceCalls = map[string]bool{
	"$display": true, "$write": true, "$monitor": true, "$strobe": true,
	"$finish": true, "$stop": true, "$dumpvars": true, "$dumpfile": true,
	"$fatal": true, "$error": true, "$warning": true, "$info": true,
}

func (p *Parser) parseStmt() (ast.Stmt, bool) {
	pos := p.cur().Pos
	switch {
	case p.isKeyword("begin"):
		return p.parseBlock()
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("for"):
		return p.parseFor()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isKeyword("repeat"):
		return p.parseRepeat()
	case p.isKeyword("case") || p.isKeyword("casex") || p.isKeyword("casez"):
		return p.parseCase()
	case p.cur().Kind == token.Ident && statementServiceCalls[p.cur().Text]:
		return p.parseServiceCall()
	default:
		return p.parseAssign(pos)
	}
}

func (p *Parser) parseBlock() (ast.Stmt, bool) {
	pos := p.cur().Pos
	p.advance() // 'begin'
	blk := ast.Block{}
	blk.At = pos
	for !p.isKeyword("end") {
		if p.atEOF() {
			diag.Reportf(p.sink, diag.Error, p.cur().Pos, "unexpected end of file inside begin/end block")
			return nil, false
		}
		s, ok := p.parseStmt()
		if !ok {
			return nil, false
		}
		blk.Body = append(blk.Body, s)
	}
	p.advance() // 'end'
	return blk, true
}

func (p *Parser) parseIf() (ast.Stmt, bool) {
	pos := p.cur().Pos
	p.advance() // 'if'
	if !p.expectSym("(") {
		return nil, false
	}
	cond, ok := p.ParseExpr()
	if !ok {
		return nil, false
	}
	if !p.expectSym(")") {
		return nil, false
	}
	then, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	var elseStmt ast.Stmt
	if p.isKeyword("else") {
		p.advance()
		elseStmt, ok = p.parseStmt()
		if !ok {
			return nil, false
		}
	}
	ifs := ast.If{Cond: cond, Then: then, ElseStmt: elseStmt}
	ifs.At = pos
	return ifs, true
}

func (p *Parser) parseFor() (ast.Stmt, bool) {
	pos := p.cur().Pos
	p.advance() // 'for'
	if !p.expectSym("(") {
		return nil, false
	}
	init, ok := p.parseAssignNoSemi()
	if !ok {
		return nil, false
	}
	if !p.expectSym(";") {
		return nil, false
	}
	cond, ok := p.ParseExpr()
	if !ok {
		return nil, false
	}
	if !p.expectSym(";") {
		return nil, false
	}
	post, ok := p.parseAssignNoSemi()
	if !ok {
		return nil, false
	}
	if !p.expectSym(")") {
		return nil, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	f := ast.For{Init: init, Cond: cond, Post: post, Body: body}
	f.At = pos
	return f, true
}

func (p *Parser) parseWhile() (ast.Stmt, bool) {
	pos := p.cur().Pos
	p.advance() // 'while'
	if !p.expectSym("(") {
		return nil, false
	}
	cond, ok := p.ParseExpr()
	if !ok {
		return nil, false
	}
	if !p.expectSym(")") {
		return nil, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	w := ast.While{Cond: cond, Body: body}
	w.At = pos
	return w, true
}

func (p *Parser) parseRepeat() (ast.Stmt, bool) {
	pos := p.cur().Pos
	p.advance() // 'repeat'
	if !p.expectSym("(") {
		return nil, false
	}
	count, ok := p.ParseExpr()
	if !ok {
		return nil, false
	}
	if !p.expectSym(")") {
		return nil, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	r := ast.Repeat{Count: count, Body: body}
	r.At = pos
	return r, true
}

func (p *Parser) parseCase() (ast.Stmt, bool) {
	pos := p.cur().Pos
	var kind ast.CaseKind
	switch p.cur().Text {
	case "casex":
		kind = ast.CaseX
	case "casez":
		kind = ast.CaseZ
	default:
		kind = ast.CaseExact
	}
	p.advance()
	if !p.expectSym("(") {
		return nil, false
	}
	sel, ok := p.ParseExpr()
	if !ok {
		return nil, false
	}
	if !p.expectSym(")") {
		return nil, false
	}
	c := ast.Case{Kind: kind, Selector: sel}
	c.At = pos
	for !p.isKeyword("endcase") {
		if p.atEOF() {
			diag.Reportf(p.sink, diag.Error, p.cur().Pos, "unexpected end of file inside case statement")
			return nil, false
		}
		var arm ast.CaseArm
		if p.isKeyword("default") {
			p.advance()
		} else {
			lbl, ok := p.ParseExpr()
			if !ok {
				return nil, false
			}
			arm.Labels = append(arm.Labels, lbl)
			for p.isSym(",") {
				p.advance()
				lbl, ok := p.ParseExpr()
				if !ok {
					return nil, false
				}
				arm.Labels = append(arm.Labels, lbl)
			}
		}
		if !p.expectSym(":") {
			return nil, false
		}
		body, ok := p.parseStmt()
		if !ok {
			return nil, false
		}
		arm.Body = body
		c.Arms = append(c.Arms, arm)
	}
	p.advance() // 'endcase'
	return c, true
}

func (p *Parser) parseServiceCall() (ast.Stmt, bool) {
	pos := p.cur().Pos
	name, _ := p.expectIdent()
	var args []ast.Expr
	if p.isSym("(") {
		p.advance()
		as, ok := p.parseExprList(")")
		if !ok {
			return nil, false
		}
		args = as
		if !p.expectSym(")") {
			return nil, false
		}
	}
	if !p.expectSym(";") {
		return nil, false
	}
	sc := ast.ServiceCall{Name: name, Args: args}
	sc.At = pos
	return sc, true
}

// parseAssign parses `lhs (<=|=) rhs [#delay] ;`.
func (p *Parser) parseAssign(pos token.Pos) (ast.Stmt, bool) {
	a, ok := p.parseAssignNoSemi()
	if !ok {
		return nil, false
	}
	if !p.expectSym(";") {
		return nil, false
	}
	return a, true
}

// parseAssignNoSemi parses the assignment without consuming the trailing
// semicolon, so `for (init; cond; post)` can reuse it for init/post clauses.
func (p *Parser) parseAssignNoSemi() (ast.Stmt, bool) {
	pos := p.cur().Pos
	lhs, ok := p.parseLhs()
	if !ok {
		return nil, false
	}
	blocking := true
	switch {
	case p.matchSymbol2("<="):
		blocking = false
		consumeSymbolRun(p, "<=")
	case p.isSym("="):
		p.advance()
	default:
		diag.Reportf(p.sink, diag.Error, p.cur().Pos, "expected '=' or '<=' in assignment, got %s", p.cur())
		return nil, false
	}
	var delay ast.Expr
	if p.isSym("#") {
		p.advance()
		d, ok := p.ParseExpr()
		if !ok {
			return nil, false
		}
		delay = d
	}
	rhs, ok := p.ParseExpr()
	if !ok {
		return nil, false
	}
	a := ast.Assign{Lhs: lhs, Rhs: rhs, Blocking: blocking, Delay: delay}
	a.At = pos
	return a, true
}
