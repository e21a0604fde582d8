/*
 * vericore - Tokenizer.
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

package token

import "fmt"

// Error is a lexical-layer problem (invalid character, unterminated
// comment, ...). The parser translates these into diagnostics; this
// package stays free of any dependency on the diagnostics sink so that
// diag can depend on token (for Pos) without a import cycle.
type Error struct {
	Pos Pos
	Msg string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Lexer performs a single linear pass over a UTF-8 byte buffer, emitting a
// flat token stream. It never returns an empty stream: the final token is
// always an EOF sentinel at the buffer's last coordinates.
type Lexer struct {
	file string
	src  []rune
	pos  int
	line int
	col  int
	errs []Error
}

// New creates a Lexer over src, attributing positions to file.
func New(file string, src []byte) *Lexer {
	return &Lexer{
		file: file,
		src:  []rune(string(src)),
		pos:  0,
		line: 1,
		col:  1,
	}
}

func (l *Lexer) here() Pos {
	return Pos{File: l.file, Line: l.line, Col: l.col}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9') || r == '$'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Errors returns the lexical errors recorded during Tokenize.
func (l *Lexer) Errors() []Error { return l.errs }

// Tokenize scans the entire buffer and returns its token stream.
func (l *Lexer) Tokenize() []Token {
	var toks []Token
	for {
		l.skipWhitespaceAndComments()
		if l.atEnd() {
			toks = append(toks, Token{Kind: EOF, Text: "", Pos: l.here()})
			return toks
		}

		startPos := l.here()
		r := l.peek()

		switch {
		case isIdentStart(r):
			toks = append(toks, l.lexIdent(startPos))
		case isDigit(r):
			toks = append(toks, l.lexInteger(startPos))
		case r == '"':
			toks = append(toks, l.lexString(startPos))
		default:
			l.advance()
			toks = append(toks, Token{Kind: Symbol, Text: string(r), Pos: startPos})
		}
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case !l.atEnd() && isSpace(l.peek()):
			l.advance()
		case l.peek() == '/' && l.peekAt(1) == '/':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case l.peek() == '/' && l.peekAt(1) == '*':
			start := l.here()
			l.advance()
			l.advance()
			closed := false
			for !l.atEnd() {
				if l.peek() == '*' && l.peekAt(1) == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				l.errs = append(l.errs, Error{Pos: start, Msg: "unterminated comment"})
			}
		default:
			return
		}
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\v' || r == '\f'
}

func (l *Lexer) lexIdent(start Pos) Token {
	var sb []rune
	for !l.atEnd() && isIdentCont(l.peek()) {
		sb = append(sb, l.advance())
	}
	return Token{Kind: Ident, Text: string(sb), Pos: start}
}

func (l *Lexer) lexInteger(start Pos) Token {
	var sb []rune
	for !l.atEnd() && isDigit(l.peek()) {
		sb = append(sb, l.advance())
	}
	return Token{Kind: Integer, Text: string(sb), Pos: start}
}

// lexString scans a `"..."` literal with `\\`-escapes, per spec.md §4.1's
// reference to $display-family format strings. The closing quote is
// consumed; an unterminated literal is recorded as a lexical Error and the
// token's text holds whatever was scanned before end-of-buffer.
func (l *Lexer) lexString(start Pos) Token {
	l.advance() // opening '"'
	var sb []rune
	closed := false
	for !l.atEnd() {
		r := l.peek()
		if r == '"' {
			l.advance()
			closed = true
			break
		}
		if r == '\\' && l.peekAt(1) != 0 {
			l.advance()
			esc := l.advance()
			switch esc {
			case 'n':
				sb = append(sb, '\n')
			case 't':
				sb = append(sb, '\t')
			case '\\':
				sb = append(sb, '\\')
			case '"':
				sb = append(sb, '"')
			default:
				sb = append(sb, esc)
			}
			continue
		}
		sb = append(sb, l.advance())
	}
	if !closed {
		l.errs = append(l.errs, Error{Pos: start, Msg: "unterminated string literal"})
	}
	return Token{Kind: String, Text: string(sb), Pos: start}
}
