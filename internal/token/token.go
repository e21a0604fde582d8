/*
 * vericore - Lexical token definitions.
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

// Package token defines the lexical tokens produced by the tokenizer and
// consumed by the parser.
package token

import "fmt"

// Kind tags a Token's variant.
type Kind int

const (
	// Invalid is the zero value; never produced by the tokenizer.
	Invalid Kind = iota
	Ident
	Integer
	Symbol
	String
	EOF
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "identifier"
	case Integer:
		return "integer"
	case Symbol:
		return "symbol"
	case String:
		return "string"
	case EOF:
		return "end-of-stream"
	default:
		return "invalid"
	}
}

// Pos is a source position: file path, 1-based line, 1-based column.
type Pos struct {
	File string
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// EndCol returns the column immediately after this token's text, used by
// the parser to detect strict adjacency between a size literal and its
// base-letter remainder (e.g. 8'hFF with no embedded whitespace).
func (t Token) EndCol() int {
	return t.Pos.Col + len([]rune(t.Text))
}

// Token is a single lexical unit with its exact source text and position.
type Token struct {
	Kind Kind
	Text string
	Pos  Pos
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Pos)
}
