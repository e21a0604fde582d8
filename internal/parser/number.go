/*
 * vericore - Numeric literal sub-parser.
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
	"strconv"
	"strings"

	"github.com/hdlforge/vericore/internal/ast"
	"github.com/hdlforge/vericore/internal/fourstate"
	"github.com/hdlforge/vericore/internal/token"
)

// adjacent reports whether b begins exactly where a ends, per the strict
// adjacency rule size literals are stitched under (spec.md §4.1/§4.2):
// same line, column equal to the previous token's end column.
func adjacent(a, b token.Token) bool {
	return a.Pos.Line == b.Pos.Line && a.EndCol() == b.Pos.Col
}

// parseNumber consumes a plain integer token (and, if strictly adjacent, a
// base literal remainder) and folds it into an ast.Number.
func (p *Parser) parseNumber() (ast.Number, bool) {
	start := p.cur()
	var sizeTok token.Token
	haveSize := false

	if p.cur().Kind == token.Integer {
		sizeTok = p.cur()
		haveSize = true
		p.advance()
	}

	if p.cur().Kind != token.Symbol || p.cur().Text != "'" {
		if !haveSize {
			p.errf(start.Pos, "expected number")
			return ast.Number{}, false
		}
		// Plain unsized, unbased decimal literal.
		val, ok := parseDecimalDigits(strings.ReplaceAll(sizeTok.Text, "_", ""))
		if !ok {
			p.errf(sizeTok.Pos, "malformed numeric literal %q", sizeTok.Text)
			return ast.Number{}, false
		}
		return ast.Number{
			Value:  fourstate.Value64(val, 32),
			Base:   ast.BaseDecimal,
			Signed: true,
		}, true
	}

	if haveSize && !adjacent(sizeTok, p.cur()) {
		p.errf(p.cur().Pos, "size and base must be adjacent with no whitespace")
		return ast.Number{}, false
	}
	apostrophe := p.cur()
	p.advance()

	if !adjacent(apostrophe, p.cur()) {
		p.errf(apostrophe.Pos, "malformed numeric literal: missing base after '\\''")
		return ast.Number{}, false
	}

	var remainder strings.Builder
	last := apostrophe
	for (p.cur().Kind == token.Ident || (p.cur().Kind == token.Symbol && p.cur().Text == "?")) && adjacent(last, p.cur()) {
		remainder.WriteString(p.cur().Text)
		last = p.cur()
		p.advance()
	}
	rem := remainder.String()
	if rem == "" {
		p.errf(apostrophe.Pos, "malformed numeric literal: empty base/digit field")
		return ast.Number{}, false
	}

	idx := 0
	signed := false
	if rem[idx] == 's' || rem[idx] == 'S' {
		signed = true
		idx++
	}
	if idx >= len(rem) {
		p.errf(apostrophe.Pos, "malformed numeric literal: missing base letter")
		return ast.Number{}, false
	}
	baseChar := rem[idx]
	idx++
	var base ast.NumBase
	var bitsPerDigit int
	switch baseChar {
	case 'b', 'B':
		base, bitsPerDigit = ast.BaseBinary, 1
	case 'o', 'O':
		base, bitsPerDigit = ast.BaseOctal, 3
	case 'd', 'D':
		base, bitsPerDigit = ast.BaseDecimal, 0
	case 'h', 'H':
		base, bitsPerDigit = ast.BaseHex, 4
	default:
		p.errf(apostrophe.Pos, "malformed numeric literal: unknown base %q", string(baseChar))
		return ast.Number{}, false
	}
	digits := strings.ReplaceAll(rem[idx:], "_", "")
	if digits == "" {
		p.errf(apostrophe.Pos, "malformed numeric literal: no digits")
		return ast.Number{}, false
	}

	if base == ast.BaseDecimal {
		return p.foldDecimalBased(apostrophe, digits, haveSize, sizeTok, signed)
	}

	var width int
	if haveSize {
		w, ok := parseDecimalDigits(strings.ReplaceAll(sizeTok.Text, "_", ""))
		if !ok || w == 0 {
			p.errf(sizeTok.Pos, "invalid literal size %q", sizeTok.Text)
			return ast.Number{}, false
		}
		width = int(w)
	} else {
		width = len(digits) * bitsPerDigit
	}

	val := make([]uint64, (width+63)/64)
	xmask := make([]uint64, (width+63)/64)
	zmask := make([]uint64, (width+63)/64)
	bitPos := 0
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		var bits uint64
		isX, isZ := false, false
		switch {
		case c == 'x' || c == 'X':
			isX = true
		case c == 'z' || c == 'Z' || c == '?':
			isZ = true
		default:
			d, ok := hexDigitValue(c)
			if !ok || (base == ast.BaseBinary && d > 1) || (base == ast.BaseOctal && d > 7) {
				p.errf(apostrophe.Pos, "invalid digit %q for base", string(c))
				return ast.Number{}, false
			}
			bits = uint64(d)
		}
		if !p.opts.Enable4State && (isX || isZ) {
			p.errf(apostrophe.Pos, "x/z digit requires four-state mode")
			return ast.Number{}, false
		}
		for b := 0; b < bitsPerDigit && bitPos < width; b++ {
			word, bit := bitPos/64, uint(bitPos%64)
			if isX {
				xmask[word] |= 1 << bit
			} else if isZ {
				zmask[word] |= 1 << bit
			} else if bits&(1<<uint(b)) != 0 {
				val[word] |= 1 << bit
			}
			bitPos++
		}
	}
	v := fourstate.Value{Width: width, Val: val, X: xmask, Z: zmask}
	return ast.Number{Value: v, ExplicitWidth: haveSize, Base: base, Signed: signed}, true
}

func (p *Parser) foldDecimalBased(apostrophe token.Token, digits string, haveSize bool, sizeTok token.Token, signed bool) (ast.Number, bool) {
	width := 32
	if haveSize {
		w, ok := parseDecimalDigits(strings.ReplaceAll(sizeTok.Text, "_", ""))
		if !ok || w == 0 {
			p.errf(sizeTok.Pos, "invalid literal size %q", sizeTok.Text)
			return ast.Number{}, false
		}
		width = int(w)
	}
	lower := strings.ToLower(digits)
	if lower == "x" {
		return ast.Number{Value: fourstate.AllX(width), ExplicitWidth: haveSize, Base: ast.BaseDecimal, Signed: signed}, true
	}
	if lower == "z" || lower == "?" {
		return ast.Number{Value: fourstate.AllZ(width), ExplicitWidth: haveSize, Base: ast.BaseDecimal, Signed: signed}, true
	}
	for _, c := range digits {
		if c == 'x' || c == 'X' || c == 'z' || c == 'Z' || c == '?' {
			p.errf(apostrophe.Pos, "x/z digit in decimal base")
			return ast.Number{}, false
		}
	}
	val, ok := parseDecimalDigits(digits)
	if !ok {
		p.errf(apostrophe.Pos, "malformed decimal literal %q", digits)
		return ast.Number{}, false
	}
	return ast.Number{Value: fourstate.Value64(val, width), ExplicitWidth: haveSize, Base: ast.BaseDecimal, Signed: signed}, true
}

func parseDecimalDigits(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func hexDigitValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}
