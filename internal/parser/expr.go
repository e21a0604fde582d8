/*
 * vericore - Expression parser and constant folder.
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
	"github.com/hdlforge/vericore/internal/fourstate"
	"github.com/hdlforge/vericore/internal/token"
)

// systemFuncs recognized in expression position (spec.md §4.2); the rest
// (e.g. $display, $monitor) are statement-level service calls only.
var systemFuncs = map[string]bool{
	"$signed": true, "$unsigned": true, "$clog2": true, "$bits": true,
	"$time": true, "$stime": true, "$realtime": true, "$itor": true,
	"$rtoi": true, "$bitstoreal": true, "$realtobits": true,
}

// ParseExpr parses one expression at the lowest (conditional) precedence
// level, applying constant folding as it unwinds.
func (p *Parser) ParseExpr() (ast.Expr, bool) {
	return p.parseConditional()
}

func (p *Parser) parseConditional() (ast.Expr, bool) {
	cond, ok := p.parseLogicalOr()
	if !ok {
		return nil, false
	}
	if p.isSym("?") {
		pos := p.cur().Pos
		p.advance()
		thenE, ok := p.parseConditional()
		if !ok {
			return nil, false
		}
		if !p.expectSym(":") {
			return nil, false
		}
		elseE, ok := p.parseConditional()
		if !ok {
			return nil, false
		}
		return p.fold(ast.Ternary{Cond: cond, Then: thenE, Else: elseE}, pos), true
	}
	return cond, true
}

type binLevel struct {
	ops   []ast.BinaryOp
	match func(p *Parser) (ast.BinaryOp, bool)
}

func (p *Parser) parseLogicalOr() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseLogicalAnd, func() (ast.BinaryOp, bool) {
		if p.matchSymbol2("||") {
			return ast.BinLogOr, true
		}
		return "", false
	})
}

func (p *Parser) parseLogicalAnd() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseBitOr, func() (ast.BinaryOp, bool) {
		if p.matchSymbol2("&&") {
			return ast.BinLogAnd, true
		}
		return "", false
	})
}

func (p *Parser) parseBitOr() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseBitXor, func() (ast.BinaryOp, bool) {
		if p.isSym("|") && !p.matchSymbol2("||") {
			return ast.BinOr, true
		}
		return "", false
	})
}

func (p *Parser) parseBitXor() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseBitAnd, func() (ast.BinaryOp, bool) {
		if p.matchSymbol2("~^") {
			return ast.BinXnor, true
		}
		if p.isSym("^") {
			return ast.BinXor, true
		}
		return "", false
	})
}

func (p *Parser) parseBitAnd() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseEquality, func() (ast.BinaryOp, bool) {
		if p.isSym("&") && !p.matchSymbol2("&&") {
			return ast.BinAnd, true
		}
		return "", false
	})
}

func (p *Parser) parseEquality() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseRelational, func() (ast.BinaryOp, bool) {
		switch {
		case p.matchSymbol3("==="):
			return ast.BinCaseEq, true
		case p.matchSymbol3("!=="):
			return ast.BinCaseNeq, true
		case p.matchSymbol3("==?"):
			return ast.BinWildEq, true
		case p.matchSymbol3("!=?"):
			return ast.BinWildNeq, true
		case p.matchSymbol2("=="):
			return ast.BinEq, true
		case p.matchSymbol2("!="):
			return ast.BinNeq, true
		}
		return "", false
	})
}

func (p *Parser) parseRelational() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseShift, func() (ast.BinaryOp, bool) {
		switch {
		case p.matchSymbol2("<="):
			return ast.BinLe, true
		case p.matchSymbol2(">="):
			return ast.BinGe, true
		case p.isSym("<") && !p.matchSymbol2("<<"):
			return ast.BinLt, true
		case p.isSym(">") && !p.matchSymbol2(">>"):
			return ast.BinGt, true
		}
		return "", false
	})
}

func (p *Parser) parseShift() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseAdditive, func() (ast.BinaryOp, bool) {
		switch {
		case p.matchSymbol3(">>>"):
			return ast.BinAShr, true
		case p.matchSymbol2("<<"):
			return ast.BinShl, true
		case p.matchSymbol2(">>"):
			return ast.BinLShr, true
		}
		return "", false
	})
}

func (p *Parser) parseAdditive() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseMultiplicative, func() (ast.BinaryOp, bool) {
		switch {
		case p.isSym("+") && !p.matchSymbol2("+:"):
			return ast.BinAdd, true
		case p.isSym("-") && !p.matchSymbol2("-:"):
			return ast.BinSub, true
		}
		return "", false
	})
}

func (p *Parser) parseMultiplicative() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parsePower, func() (ast.BinaryOp, bool) {
		switch {
		case p.matchSymbol2("**"):
			return "", false // power binds tighter; already consumed by parsePower
		case p.isSym("*"):
			return ast.BinMul, true
		case p.isSym("/"):
			return ast.BinDiv, true
		case p.isSym("%"):
			return ast.BinMod, true
		}
		return "", false
	})
}

func (p *Parser) parsePower() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseUnary, func() (ast.BinaryOp, bool) {
		if p.matchSymbol2("**") {
			return ast.BinPow, true
		}
		return "", false
	})
}

// parseBinaryLevel is shared left-associative binary-operator climbing
// machinery: parse one operand at the next-higher level, then loop while
// the level's matcher recognizes an operator, folding eagerly when both
// sides are constant.
func (p *Parser) parseBinaryLevel(next func() (ast.Expr, bool), match func() (ast.BinaryOp, bool)) (ast.Expr, bool) {
	left, ok := next()
	if !ok {
		return nil, false
	}
	for {
		op, matched := match()
		if !matched {
			return left, true
		}
		pos := p.cur().Pos
		consumeSymbolRun(p, op)
		right, ok := next()
		if !ok {
			return nil, false
		}
		left = p.fold(ast.Binary{Op: op, Left: left, Right: right}, pos)
	}
}

// consumeSymbolRun advances past the symbol tokens making up op (1-3
// one-character Symbol tokens already verified adjacent by match()).
func consumeSymbolRun(p *Parser, op ast.BinaryOp) {
	for range []rune(string(op)) {
		p.advance()
	}
}

func (p *Parser) parseUnary() (ast.Expr, bool) {
	pos := p.cur().Pos
	var op ast.UnaryOp
	switch {
	case p.isSym("+"):
		op = ast.UnaryPlus
	case p.isSym("-"):
		op = ast.UnaryMinus
	case p.matchSymbol2("~&"):
		op = ast.UnaryReduceNand
	case p.matchSymbol2("~|"):
		op = ast.UnaryReduceNor
	case p.matchSymbol2("~^"):
		op = ast.UnaryReduceXnor
	case p.isSym("~"):
		op = ast.UnaryNot
	case p.isSym("!"):
		op = ast.UnaryLogicalNot
	case p.isSym("&"):
		op = ast.UnaryReduceAnd
	case p.isSym("|"):
		op = ast.UnaryReduceOr
	case p.isSym("^"):
		op = ast.UnaryReduceXor
	default:
		return p.parsePrimary()
	}
	consumeSymbolRun(p, ast.BinaryOp(op))
	operand, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	return p.fold(ast.Unary{Op: op, Operand: operand}, pos), true
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	pos := p.cur().Pos
	switch {
	case p.cur().Kind == token.Integer || p.isSym("'"):
		n, ok := p.parseNumber()
		if !ok {
			return nil, false
		}
		n.At = pos
		return p.parsePostfix(n)
	case p.isSym("("):
		p.advance()
		e, ok := p.ParseExpr()
		if !ok {
			return nil, false
		}
		if !p.expectSym(")") {
			return nil, false
		}
		return p.parsePostfix(e)
	case p.isSym("{"):
		e, ok := p.parseConcat()
		if !ok {
			return nil, false
		}
		return p.parsePostfix(e)
	case p.cur().Kind == token.String:
		t := p.advance()
		return p.parsePostfix(ast.String{Value: t.Text})
	case p.cur().Kind == token.Ident && systemFuncs[p.cur().Text]:
		e, ok := p.parseCall()
		if !ok {
			return nil, false
		}
		return p.parsePostfix(e)
	case p.cur().Kind == token.Ident:
		name, _ := p.expectIdent()
		return p.parsePostfix(ast.Identifier{Name: name})
	default:
		diag.Reportf(p.sink, diag.Error, pos, "unexpected token in expression: %s", p.cur())
		return nil, false
	}
}

func (p *Parser) parseCall() (ast.Expr, bool) {
	pos := p.cur().Pos
	name, _ := p.expectIdent()
	var args []ast.Expr
	if p.isSym("(") {
		p.advance()
		for !p.isSym(")") {
			a, ok := p.ParseExpr()
			if !ok {
				return nil, false
			}
			args = append(args, a)
			if p.isSym(",") {
				p.advance()
				continue
			}
			break
		}
		if !p.expectSym(")") {
			return nil, false
		}
	}
	return p.fold(ast.Call{Name: name, Args: args}, pos), true
}

// parseConcat parses `{expr, expr, ...}` or `{count{expr, ...}}`.
func (p *Parser) parseConcat() (ast.Expr, bool) {
	pos := p.cur().Pos
	p.advance() // '{'
	first, ok := p.ParseExpr()
	if !ok {
		return nil, false
	}
	if p.isSym("{") {
		// Replication form: first is the count.
		p.advance()
		parts, ok := p.parseExprList("}")
		if !ok {
			return nil, false
		}
		if !p.expectSym("}") {
			return nil, false
		}
		if !p.expectSym("}") {
			return nil, false
		}
		return p.fold(ast.Concat{Parts: parts, Replicate: first}, pos), true
	}
	parts := []ast.Expr{first}
	for p.isSym(",") {
		p.advance()
		e, ok := p.ParseExpr()
		if !ok {
			return nil, false
		}
		parts = append(parts, e)
	}
	if !p.expectSym("}") {
		return nil, false
	}
	return p.fold(ast.Concat{Parts: parts}, pos), true
}

func (p *Parser) parseExprList(terminator string) ([]ast.Expr, bool) {
	var parts []ast.Expr
	for !p.isSym(terminator) {
		e, ok := p.ParseExpr()
		if !ok {
			return nil, false
		}
		parts = append(parts, e)
		if p.isSym(",") {
			p.advance()
			continue
		}
		break
	}
	return parts, true
}

// parsePostfix chains bit/part select and indexed-range suffixes after any
// primary (spec.md §4.2: "Bit/part selects are chained after any primary").
func (p *Parser) parsePostfix(base ast.Expr) (ast.Expr, bool) {
	for p.isSym("[") {
		pos := p.cur().Pos
		p.advance()
		first, ok := p.ParseExpr()
		if !ok {
			return nil, false
		}
		switch {
		case p.isSym(":"):
			p.advance()
			lsb, ok := p.ParseExpr()
			if !ok {
				return nil, false
			}
			if !p.expectSym("]") {
				return nil, false
			}
			base = p.fold(ast.Select{Base: base, Msb: first, Lsb: lsb}, pos)
		case p.matchSymbol2("+:"):
			consumeSymbolRun(p, "+:")
			widthE, ok := p.ParseExpr()
			if !ok {
				return nil, false
			}
			if !p.expectSym("]") {
				return nil, false
			}
			w, ok := constIntWidth(widthE)
			if !ok {
				diag.Reportf(p.sink, diag.Error, pos, "indexed range width must be a constant")
				return nil, false
			}
			base = p.fold(ast.IndexedRange{Base: base, Start: first, Width: w, Increasing: true}, pos)
		case p.matchSymbol2("-:"):
			consumeSymbolRun(p, "-:")
			widthE, ok := p.ParseExpr()
			if !ok {
				return nil, false
			}
			if !p.expectSym("]") {
				return nil, false
			}
			w, ok := constIntWidth(widthE)
			if !ok {
				diag.Reportf(p.sink, diag.Error, pos, "indexed range width must be a constant")
				return nil, false
			}
			base = p.fold(ast.IndexedRange{Base: base, Start: first, Width: w, Increasing: false}, pos)
		default:
			if !p.expectSym("]") {
				return nil, false
			}
			base = p.fold(ast.Select{Base: base, Msb: first}, pos)
		}
	}
	return base, true
}

func constIntWidth(e ast.Expr) (int, bool) {
	n, ok := e.(ast.Number)
	if !ok || n.Value.HasUnknown() {
		return 0, false
	}
	return int(n.Value.AsUint64()), true
}

// fold attempts constant folding: if every operand of e is already an
// ast.Number, the whole node collapses into a single folded Number using
// the shared four-state engine; otherwise e is returned unchanged so the
// elaborator can later rewrite its identifiers. at is attached to whatever
// is returned so position tracking survives folding.
func (p *Parser) fold(e ast.Expr, at token.Pos) ast.Expr {
	switch n := e.(type) {
	case ast.Binary:
		l, lok := n.Left.(ast.Number)
		r, rok := n.Right.(ast.Number)
		if !lok || !rok {
			return e
		}
		v, ok := p.foldBinary(n.Op, l, r, at)
		if !ok {
			return e
		}
		v.At = at
		return v
	case ast.Unary:
		o, ok := n.Operand.(ast.Number)
		if !ok {
			return e
		}
		v, ok := p.foldUnary(n.Op, o)
		if !ok {
			return e
		}
		v.At = at
		return v
	case ast.Ternary:
		c, cok := n.Cond.(ast.Number)
		t, tok := n.Then.(ast.Number)
		f, fok := n.Else.(ast.Number)
		if !cok || !tok || !fok {
			return e
		}
		w := t.Value.Width
		if f.Value.Width > w {
			w = f.Value.Width
		}
		v := ast.Number{Value: fourstate.Ternary(c.Value, t.Value, f.Value, w), Base: ast.BaseDecimal}
		v.At = at
		return v
	case ast.Select:
		b, bok := n.Base.(ast.Number)
		msb, mok := n.Msb.(ast.Number)
		if !bok || !mok {
			return e
		}
		var v fourstate.Value
		if n.Lsb != nil {
			lsb, lok := n.Lsb.(ast.Number)
			if !lok {
				return e
			}
			v = fourstate.PartSelect(b.Value, int(msb.Value.AsInt64()), int(lsb.Value.AsInt64()))
		} else {
			v = fourstate.BitSelect(b.Value, int(msb.Value.AsInt64()))
		}
		res := ast.Number{Value: v, Base: ast.BaseDecimal}
		res.At = at
		return res
	case ast.IndexedRange:
		b, bok := n.Base.(ast.Number)
		s, sok := n.Start.(ast.Number)
		if !bok || !sok {
			return e
		}
		v := fourstate.IndexedRange(b.Value, int(s.Value.AsInt64()), n.Width, n.Increasing)
		res := ast.Number{Value: v, Base: ast.BaseDecimal}
		res.At = at
		return res
	case ast.Concat:
		vals := make([]fourstate.Value, 0, len(n.Parts))
		for _, part := range n.Parts {
			num, ok := part.(ast.Number)
			if !ok {
				return e
			}
			vals = append(vals, num.Value)
		}
		v := fourstate.Concat(vals)
		if n.Replicate != nil {
			cnt, ok := n.Replicate.(ast.Number)
			if !ok {
				return e
			}
			if cnt.Value.AsInt64() <= 0 {
				diag.Reportf(p.sink, diag.Error, at, "replication count must fold to a positive integer")
				return e
			}
			v = fourstate.Replicate(int(cnt.Value.AsInt64()), v)
		}
		res := ast.Number{Value: v, Base: ast.BaseDecimal}
		res.At = at
		return res
	case ast.Call:
		return p.foldCall(n, at)
	default:
		return e
	}
}

func (p *Parser) foldBinary(op ast.BinaryOp, l, r ast.Number, at token.Pos) (ast.Number, bool) {
	a, b := l.Value, r.Value
	w := a.Width
	if b.Width > w {
		w = b.Width
	}
	signed := l.Signed && r.Signed
	mk := func(v fourstate.Value) (ast.Number, bool) {
		return ast.Number{Value: v, Base: ast.BaseDecimal, Signed: signed}, true
	}
	switch op {
	case ast.BinAdd:
		return mk(fourstate.Add(a, b, w))
	case ast.BinSub:
		return mk(fourstate.Sub(a, b, w))
	case ast.BinMul:
		return mk(fourstate.Mul(a, b, w))
	case ast.BinDiv:
		if signed {
			return mk(fourstate.DivSigned(a, b, w))
		}
		return mk(fourstate.Div(a, b, w))
	case ast.BinMod:
		if signed {
			return mk(fourstate.ModSigned(a, b, w))
		}
		return mk(fourstate.Mod(a, b, w))
	case ast.BinPow:
		return mk(fourstate.Pow(a, b, w, signed))
	case ast.BinAnd:
		return mk(fourstate.AndWidth(a, b, w))
	case ast.BinOr:
		return mk(fourstate.OrWidth(a, b, w))
	case ast.BinXor:
		return mk(fourstate.XorWidth(a, b, w))
	case ast.BinXnor:
		return mk(fourstate.Not(fourstate.XorWidth(a, b, w)))
	case ast.BinLogAnd:
		return mk(fourstate.LogicalAnd(a, b))
	case ast.BinLogOr:
		return mk(fourstate.LogicalOr(a, b))
	case ast.BinEq:
		return mk(fourstate.Eq(a, b))
	case ast.BinNeq:
		return mk(fourstate.Neq(a, b))
	case ast.BinCaseEq:
		return mk(fourstate.CaseEq(a, b))
	case ast.BinCaseNeq:
		return mk(fourstate.CaseNeq(a, b))
	case ast.BinWildEq:
		return mk(fourstate.WildEq(a.Extend(w, l.Signed), b.Extend(w, r.Signed)))
	case ast.BinWildNeq:
		return mk(fourstate.WildNeq(a.Extend(w, l.Signed), b.Extend(w, r.Signed)))
	case ast.BinLt:
		return mk(fourstate.Lt(a, b, signed))
	case ast.BinLe:
		return mk(fourstate.Le(a, b, signed))
	case ast.BinGt:
		return mk(fourstate.Gt(a, b, signed))
	case ast.BinGe:
		return mk(fourstate.Ge(a, b, signed))
	case ast.BinShl:
		return mk(fourstate.Shl(a, b, w))
	case ast.BinLShr:
		return mk(fourstate.LShr(a, b, w))
	case ast.BinAShr:
		return mk(fourstate.AShr(a, b, w))
	default:
		diag.Reportf(p.sink, diag.Error, at, "unsupported binary operator %q in constant folding", op)
		return ast.Number{}, false
	}
}

func (p *Parser) foldUnary(op ast.UnaryOp, o ast.Number) (ast.Number, bool) {
	v := o.Value
	switch op {
	case ast.UnaryPlus:
		return ast.Number{Value: v, Base: ast.BaseDecimal, Signed: o.Signed}, true
	case ast.UnaryMinus:
		return ast.Number{Value: fourstate.Sub(fourstate.Value64(0, v.Width), v, v.Width), Base: ast.BaseDecimal, Signed: o.Signed}, true
	case ast.UnaryNot:
		return ast.Number{Value: fourstate.Not(v), Base: ast.BaseDecimal}, true
	case ast.UnaryLogicalNot:
		return ast.Number{Value: fourstate.LogicalNot(v), Base: ast.BaseDecimal}, true
	case ast.UnaryReduceAnd:
		return ast.Number{Value: fourstate.ReduceAnd(v), Base: ast.BaseDecimal}, true
	case ast.UnaryReduceOr:
		return ast.Number{Value: fourstate.ReduceOr(v), Base: ast.BaseDecimal}, true
	case ast.UnaryReduceXor:
		return ast.Number{Value: fourstate.ReduceXor(v), Base: ast.BaseDecimal}, true
	case ast.UnaryReduceNand:
		return ast.Number{Value: fourstate.ReduceNand(v), Base: ast.BaseDecimal}, true
	case ast.UnaryReduceNor:
		return ast.Number{Value: fourstate.ReduceNor(v), Base: ast.BaseDecimal}, true
	case ast.UnaryReduceXnor:
		return ast.Number{Value: fourstate.ReduceXnor(v), Base: ast.BaseDecimal}, true
	case ast.UnarySigned:
		return ast.Number{Value: v, Base: ast.BaseDecimal, Signed: true}, true
	case ast.UnaryUnsigned:
		return ast.Number{Value: v, Base: ast.BaseDecimal, Signed: false}, true
	case ast.UnaryClog2:
		return ast.Number{Value: fourstate.Clog2(v, 32), Base: ast.BaseDecimal}, true
	default:
		return ast.Number{}, false
	}
}

func (p *Parser) foldCall(c ast.Call, at token.Pos) ast.Expr {
	args := make([]ast.Number, len(c.Args))
	allConst := true
	for i, a := range c.Args {
		n, ok := a.(ast.Number)
		if !ok {
			allConst = false
			break
		}
		args[i] = n
	}
	if !allConst {
		return c
	}
	switch c.Name {
	case "$clog2":
		if len(args) != 1 {
			return c
		}
		res := ast.Number{Value: fourstate.Clog2(args[0].Value, 32), Base: ast.BaseDecimal}
		res.At = at
		return res
	case "$bits":
		if len(args) != 1 {
			return c
		}
		res := ast.Number{Value: fourstate.Bits(args[0].Value.Width, 32), Base: ast.BaseDecimal}
		res.At = at
		return res
	case "$signed":
		if len(args) != 1 {
			return c
		}
		res := ast.Number{Value: args[0].Value, Base: ast.BaseDecimal, Signed: true}
		res.At = at
		return res
	case "$unsigned":
		if len(args) != 1 {
			return c
		}
		res := ast.Number{Value: args[0].Value, Base: ast.BaseDecimal, Signed: false}
		res.At = at
		return res
	default:
		return c
	}
}
