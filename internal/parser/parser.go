/*
 * vericore - Recursive-descent parser driver.
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

// Package parser implements the recursive-descent Verilog-1364-subset
// parser: tokens in, an ast.Program out, with full constant-expression
// folding performed inline as each parameter/range/replication-count
// expression is parsed. The parser holds a mutable token cursor and a
// diagnostics sink (never a rendering strategy) exactly like the teacher's
// cmdLine/optionLine cursor types in command/parser and
// config/configparser, generalized from single-line scanning to a whole
// token stream.
package parser

import (
	"github.com/hdlforge/vericore/internal/ast"
	"github.com/hdlforge/vericore/internal/diag"
	"github.com/hdlforge/vericore/internal/token"
)

// Options configures parsing per spec.md §6.
type Options struct {
	// AllowEmpty permits source files containing zero modules.
	AllowEmpty bool
	// Enable4State permits x/z/? digits in non-decimal literals and
	// enables four-state constant folding. When false, x/z digits are a
	// parse error.
	Enable4State bool
	// Strict1364 rejects constructs outside IEEE-1364-2005. Reserved for
	// future grammar extensions; the subset implemented here never needs
	// to consult it directly yet.
	Strict1364 bool
}

// Parser holds a mutable cursor over a token stream and reports through a
// diagnostics sink.
type Parser struct {
	toks []token.Token
	pos  int
	sink diag.Sink
	opts Options
}

// New creates a Parser over toks (as produced by token.Lexer.Tokenize),
// reporting through sink.
func New(toks []token.Token, sink diag.Sink, opts Options) *Parser {
	if len(toks) == 0 {
		toks = []token.Token{{Kind: token.EOF}}
	}
	return &Parser{toks: toks, sink: sink, opts: opts}
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(off int) token.Token {
	i := p.pos + off
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) atEOF() bool { return p.cur().Kind == token.EOF }

func (p *Parser) isSym(s string) bool {
	return p.cur().Kind == token.Symbol && p.cur().Text == s
}

func (p *Parser) isKeyword(kw string) bool {
	return p.cur().Kind == token.Ident && p.cur().Text == kw
}

func (p *Parser) errf(pos token.Pos, format string, args ...any) {
	diag.Reportf(p.sink, diag.Error, pos, format, args...)
}

// expectSym consumes a one-character symbol or records a diagnostic and
// returns false.
func (p *Parser) expectSym(s string) bool {
	if p.isSym(s) {
		p.advance()
		return true
	}
	diag.Reportf(p.sink, diag.Error, p.cur().Pos, "expected %q, got %s", s, p.cur())
	return false
}

func (p *Parser) expectIdent() (string, bool) {
	if p.cur().Kind == token.Ident {
		t := p.advance()
		return t.Text, true
	}
	diag.Reportf(p.sink, diag.Error, p.cur().Pos, "expected identifier, got %s", p.cur())
	return "", false
}

// matchSymbol2 recognizes a stable two-character operator only if both
// halves are strictly column-adjacent, mirroring the teacher's
// MatchSymbol2 convention referenced in spec.md §4.1.
func (p *Parser) matchSymbol2(op string) bool {
	a, b := p.cur(), p.peekAt(1)
	if a.Kind != token.Symbol || b.Kind != token.Symbol {
		return false
	}
	if a.Text+b.Text != op {
		return false
	}
	return adjacent(a, b)
}

func (p *Parser) matchSymbol3(op string) bool {
	a, b, c := p.cur(), p.peekAt(1), p.peekAt(2)
	if a.Kind != token.Symbol || b.Kind != token.Symbol || c.Kind != token.Symbol {
		return false
	}
	if a.Text+b.Text+c.Text != op {
		return false
	}
	return adjacent(a, b) && adjacent(b, c)
}

// Parse consumes the entire token stream and returns a Program, or false
// on the first fatal error (per spec.md §4.2, the parser stops at the
// first error and the caller discards the partial AST).
func Parse(toks []token.Token, sink diag.Sink, opts Options) (*ast.Program, bool) {
	p := New(toks, sink, opts)
	prog := &ast.Program{}
	for !p.atEOF() {
		if !p.isKeyword("module") {
			diag.Reportf(sink, diag.Error, p.cur().Pos, "expected 'module', got %s", p.cur())
			return nil, false
		}
		m, ok := p.parseModule()
		if !ok {
			return nil, false
		}
		prog.Modules = append(prog.Modules, m)
	}
	if len(prog.Modules) == 0 && !opts.AllowEmpty {
		diag.Report(sink, diag.Error, "no modules found in source")
		return nil, false
	}
	return prog, true
}
