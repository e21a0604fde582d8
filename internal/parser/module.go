/*
 * vericore - Module, port, and declaration grammar.
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

func (p *Parser) parseModule() (ast.Module, bool) {
	pos := p.cur().Pos
	p.advance() // 'module'
	name, ok := p.expectIdent()
	if !ok {
		return ast.Module{}, false
	}
	m := ast.Module{Pos: pos, Name: name}

	if p.isSym("#") {
		p.advance()
		if !p.expectSym("(") {
			return ast.Module{}, false
		}
		if !p.parseParamPortList(&m) {
			return ast.Module{}, false
		}
		if !p.expectSym(")") {
			return ast.Module{}, false
		}
	}

	if p.isSym("(") {
		p.advance()
		if !p.isSym(")") {
			if isDirectionKeyword(p.cur()) {
				if !p.parseAnsiPorts(&m) {
					return ast.Module{}, false
				}
			} else {
				if !p.parseNonAnsiPortNames(&m) {
					return ast.Module{}, false
				}
			}
		}
		if !p.expectSym(")") {
			return ast.Module{}, false
		}
	}
	if !p.expectSym(";") {
		return ast.Module{}, false
	}

	for !p.isKeyword("endmodule") {
		if p.atEOF() {
			diag.Reportf(p.sink, diag.Error, p.cur().Pos, "unexpected end of file inside module %q", name)
			return ast.Module{}, false
		}
		if !p.parseModuleItem(&m) {
			return ast.Module{}, false
		}
	}
	p.advance() // 'endmodule'
	return m, true
}

func isDirectionKeyword(t token.Token) bool {
	return t.Kind == token.Ident && (t.Text == "input" || t.Text == "output" || t.Text == "inout")
}

func directionFor(kw string) ast.Direction {
	switch kw {
	case "output":
		return ast.DirOutput
	case "inout":
		return ast.DirInout
	default:
		return ast.DirInput
	}
}

// parseParamPortList parses `#( parameter W = 8, parameter D = 4 )`
// header-style parameter declarations. Each value is folded as it is parsed
// when all of its operands are literals; a value that names an earlier
// parameter (`BYTES = W / 8`) is kept as an unfolded expression.
func (p *Parser) parseParamPortList(m *ast.Module) bool {
	for !p.isSym(")") {
		if p.isKeyword("parameter") {
			p.advance()
		}
		name, ok := p.expectIdent()
		if !ok {
			return false
		}
		if !p.expectSym("=") {
			return false
		}
		val, ok := p.ParseExpr()
		if !ok {
			return false
		}
		m.Params = append(m.Params, ast.Param{Name: name, Value: val})
		if p.isSym(",") {
			p.advance()
			continue
		}
		break
	}
	return true
}

// parseAnsiPorts parses an ANSI port list where direction, width,
// signedness, and reg-ness persist across commas until replaced
// (spec.md §4.2's `input [7:0] a, b, c` rule).
func (p *Parser) parseAnsiPorts(m *ast.Module) bool {
	dir := ast.DirInput
	var msb, lsb ast.Expr
	signed := false
	regPort := false
	for {
		if isDirectionKeyword(p.cur()) {
			dir = directionFor(p.cur().Text)
			p.advance()
			msb, lsb, signed, regPort = nil, nil, false, false
			if p.isKeyword("wire") {
				p.advance()
			} else if p.isKeyword("reg") {
				regPort = true
				p.advance()
			}
			if p.isKeyword("signed") {
				signed = true
				p.advance()
			}
			if p.isSym("[") {
				var ok bool
				msb, lsb, ok = p.parseRange()
				if !ok {
					return false
				}
			}
		}
		name, ok := p.expectIdent()
		if !ok {
			return false
		}
		m.Ports = append(m.Ports, ast.Port{Direction: dir, Name: name, Msb: msb, Lsb: lsb, Signed: signed, RegPort: regPort})
		if p.isSym(",") {
			p.advance()
			continue
		}
		break
	}
	return true
}

// parseNonAnsiPortNames parses the classic bare-name port header; the
// direction/width/reg-ness arrive later via separate input/output/wire/reg
// declarations inside the module body (parsePortDecl below).
func (p *Parser) parseNonAnsiPortNames(m *ast.Module) bool {
	for {
		name, ok := p.expectIdent()
		if !ok {
			return false
		}
		m.Ports = append(m.Ports, ast.Port{Name: name})
		if p.isSym(",") {
			p.advance()
			continue
		}
		break
	}
	return true
}

// parseRange parses `[msb:lsb]`.
func (p *Parser) parseRange() (msb, lsb ast.Expr, ok bool) {
	p.advance() // '['
	msb, ok = p.ParseExpr()
	if !ok {
		return nil, nil, false
	}
	if !p.expectSym(":") {
		return nil, nil, false
	}
	lsb, ok = p.ParseExpr()
	if !ok {
		return nil, nil, false
	}
	if !p.expectSym("]") {
		return nil, nil, false
	}
	return msb, lsb, true
}

func (p *Parser) parseModuleItem(m *ast.Module) bool {
	switch {
	case isDirectionKeyword(p.cur()):
		return p.parsePortDecl(m)
	case p.isKeyword("wire") || p.isKeyword("reg") || p.isKeyword("integer"):
		return p.parseNetDecl(m)
	case p.isKeyword("parameter") || p.isKeyword("localparam"):
		return p.parseParamDecl(m)
	case p.isKeyword("assign"):
		return p.parseContinuousAssign(m)
	case p.isKeyword("always") || p.isKeyword("initial"):
		return p.parseAlwaysBlock(m)
	case p.cur().Kind == token.Ident:
		return p.parseInstance(m)
	default:
		diag.Reportf(p.sink, diag.Error, p.cur().Pos, "unexpected token at module-item position: %s", p.cur())
		return false
	}
}

// parsePortDecl handles a non-ANSI body declaration (`input [7:0] a, b;`)
// that re-binds direction/width/signed onto ports already named in the
// header.
func (p *Parser) parsePortDecl(m *ast.Module) bool {
	dir := directionFor(p.cur().Text)
	p.advance()
	if p.isKeyword("wire") || p.isKeyword("reg") {
		p.advance()
	}
	signed := false
	if p.isKeyword("signed") {
		signed = true
		p.advance()
	}
	var msb, lsb ast.Expr
	if p.isSym("[") {
		var ok bool
		msb, lsb, ok = p.parseRange()
		if !ok {
			return false
		}
	}
	for {
		name, ok := p.expectIdent()
		if !ok {
			return false
		}
		found := false
		for i := range m.Ports {
			if m.Ports[i].Name == name {
				m.Ports[i].Direction = dir
				m.Ports[i].Msb, m.Ports[i].Lsb = msb, lsb
				m.Ports[i].Signed = signed
				found = true
				break
			}
		}
		if !found {
			diag.Reportf(p.sink, diag.Error, p.cur().Pos, "declaration for undeclared port %q", name)
			return false
		}
		if p.isSym(",") {
			p.advance()
			continue
		}
		break
	}
	return p.expectSym(";")
}

func (p *Parser) parseNetDecl(m *ast.Module) bool {
	var kind ast.NetKind
	switch p.cur().Text {
	case "wire":
		kind = ast.NetWire
	case "reg":
		kind = ast.NetReg
	case "integer":
		kind = ast.NetInteger
	}
	pos := p.cur().Pos
	p.advance()
	signed := false
	if p.isKeyword("signed") {
		signed = true
		p.advance()
	}
	var width ast.Expr
	if p.isSym("[") {
		msb, lsb, ok := p.parseRange()
		if !ok {
			return false
		}
		width = ast.Binary{Op: ast.BinAdd, Left: ast.Binary{Op: ast.BinSub, Left: msb, Right: lsb}, Right: numberOne()}
	}
	for {
		name, ok := p.expectIdent()
		if !ok {
			return false
		}
		net := ast.Net{Pos: pos, Kind: kind, Name: name, Width: width, Signed: signed}
		var initExpr ast.Expr
		if p.isSym("=") {
			p.advance()
			var ok bool
			initExpr, ok = p.ParseExpr()
			if !ok {
				return false
			}
		}
		m.Nets = append(m.Nets, net)
		if initExpr != nil {
			m.Assigns = append(m.Assigns, ast.ContinuousAssign{Pos: pos, Lhs: ast.Lhs{Name: name}, Rhs: initExpr})
		}
		if p.isSym(",") {
			p.advance()
			continue
		}
		break
	}
	return p.expectSym(";")
}

func numberOne() ast.Expr {
	return ast.Number{Value: fourstate.Value64(1, 32), Base: ast.BaseDecimal, Signed: true}
}

func (p *Parser) parseParamDecl(m *ast.Module) bool {
	local := p.cur().Text == "localparam"
	p.advance()
	for {
		name, ok := p.expectIdent()
		if !ok {
			return false
		}
		if !p.expectSym("=") {
			return false
		}
		val, ok := p.ParseExpr()
		if !ok {
			return false
		}
		m.Params = append(m.Params, ast.Param{Name: name, Value: val, Local: local})
		if p.isSym(",") {
			p.advance()
			continue
		}
		break
	}
	return p.expectSym(";")
}

func (p *Parser) parseLhs() (ast.Lhs, bool) {
	name, ok := p.expectIdent()
	if !ok {
		return ast.Lhs{}, false
	}
	lhs := ast.Lhs{Name: name}
	if p.isSym("[") {
		idx, ok := p.parsePostfix(ast.Identifier{Name: name})
		if !ok {
			return ast.Lhs{}, false
		}
		if sel, ok := idx.(ast.Select); ok {
			lhs.Index = sel
		} else if rng, ok := idx.(ast.IndexedRange); ok {
			lhs.Index = rng
		}
	}
	return lhs, true
}

func (p *Parser) parseContinuousAssign(m *ast.Module) bool {
	pos := p.cur().Pos
	p.advance() // 'assign'
	lhs, ok := p.parseLhs()
	if !ok {
		return false
	}
	if !p.expectSym("=") {
		return false
	}
	rhs, ok := p.ParseExpr()
	if !ok {
		return false
	}
	if !p.expectSym(";") {
		return false
	}
	m.Assigns = append(m.Assigns, ast.ContinuousAssign{Pos: pos, Lhs: lhs, Rhs: rhs})
	return true
}

func (p *Parser) parseAlwaysBlock(m *ast.Module) bool {
	pos := p.cur().Pos
	initial := p.cur().Text == "initial"
	p.advance()
	ab := ast.AlwaysBlock{Pos: pos}
	if initial {
		ab.Trigger = ast.TriggerInitial
	} else {
		if !p.expectSym("@") {
			return false
		}
		if p.isSym("*") {
			p.advance()
			ab.Trigger = ast.TriggerComb
		} else if p.isSym("(") {
			p.advance()
			if p.isSym("*") {
				p.advance()
				ab.Trigger = ast.TriggerComb
			} else if p.isKeyword("posedge") || p.isKeyword("negedge") {
				if p.cur().Text == "posedge" {
					ab.Trigger = ast.TriggerPosedge
				} else {
					ab.Trigger = ast.TriggerNegedge
				}
				p.advance()
				name, ok := p.expectIdent()
				if !ok {
					return false
				}
				ab.Clock = name
				for p.isKeyword("or") || p.isSym(",") {
					p.advance()
					if p.isKeyword("posedge") || p.isKeyword("negedge") {
						p.advance()
					}
					if _, ok := p.expectIdent(); !ok {
						return false
					}
				}
			} else {
				diag.Reportf(p.sink, diag.Error, p.cur().Pos, "expected sensitivity list")
				return false
			}
			if !p.expectSym(")") {
				return false
			}
		}
	}
	body, ok := p.parseStmt()
	if !ok {
		return false
	}
	if blk, ok := body.(ast.Block); ok {
		ab.Body = blk.Body
	} else {
		ab.Body = []ast.Stmt{body}
	}
	m.Always = append(m.Always, ab)
	return true
}

func (p *Parser) parseInstance(m *ast.Module) bool {
	pos := p.cur().Pos
	modName, ok := p.expectIdent()
	if !ok {
		return false
	}
	var overrides []ast.ParamOverride
	if p.isSym("#") {
		p.advance()
		if !p.expectSym("(") {
			return false
		}
		for !p.isSym(")") {
			if p.isSym(".") {
				p.advance()
				name, ok := p.expectIdent()
				if !ok {
					return false
				}
				if !p.expectSym("(") {
					return false
				}
				val, ok := p.ParseExpr()
				if !ok {
					return false
				}
				if !p.expectSym(")") {
					return false
				}
				overrides = append(overrides, ast.ParamOverride{Name: name, Value: val})
			} else {
				val, ok := p.ParseExpr()
				if !ok {
					return false
				}
				overrides = append(overrides, ast.ParamOverride{Value: val})
			}
			if p.isSym(",") {
				p.advance()
				continue
			}
			break
		}
		if !p.expectSym(")") {
			return false
		}
	}
	instName, ok := p.expectIdent()
	if !ok {
		return false
	}
	if !p.expectSym("(") {
		return false
	}
	var conns []ast.Connection
	positional := false
	idx := 0
	for !p.isSym(")") {
		if p.isSym(".") {
			p.advance()
			portName, ok := p.expectIdent()
			if !ok {
				return false
			}
			if !p.expectSym("(") {
				return false
			}
			var val ast.Expr
			if !p.isSym(")") {
				var ok bool
				val, ok = p.ParseExpr()
				if !ok {
					return false
				}
			}
			if !p.expectSym(")") {
				return false
			}
			conns = append(conns, ast.Connection{Port: portName, Value: val})
		} else {
			positional = true
			val, ok := p.ParseExpr()
			if !ok {
				return false
			}
			conns = append(conns, ast.Connection{Port: itoa(idx), Value: val})
			idx++
		}
		if p.isSym(",") {
			p.advance()
			continue
		}
		break
	}
	if !p.expectSym(")") {
		return false
	}
	if !p.expectSym(";") {
		return false
	}
	m.Instances = append(m.Instances, ast.Instance{
		Pos: pos, Module: modName, Name: instName,
		Params: overrides, Connections: conns, Positional: positional,
	})
	return true
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
