/*
 * vericore - AST node tests.
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

import (
	"testing"

	"github.com/hdlforge/vericore/internal/fourstate"
	"github.com/hdlforge/vericore/internal/token"
)

func TestExprTypeSwitchCoversAllVariants(t *testing.T) {
	pos := token.Pos{File: "t.v", Line: 1, Col: 1}
	nodes := []Expr{
		Identifier{exprBase{pos}, "a"},
		Number{exprBase{pos}, fourstate.Value64(1, 8), true, BaseHex, false},
		String{exprBase{pos}, "hi"},
		Unary{exprBase{pos}, UnaryMinus, Identifier{exprBase{pos}, "a"}},
		Binary{exprBase{pos}, BinAdd, Identifier{exprBase{pos}, "a"}, Identifier{exprBase{pos}, "b"}},
		Ternary{exprBase{pos}, Identifier{exprBase{pos}, "c"}, Identifier{exprBase{pos}, "a"}, Identifier{exprBase{pos}, "b"}},
		Select{exprBase{pos}, Identifier{exprBase{pos}, "a"}, nil, nil},
		IndexedRange{exprBase{pos}, Identifier{exprBase{pos}, "a"}, Identifier{exprBase{pos}, "i"}, 4, true},
		Concat{exprBase{pos}, []Expr{Identifier{exprBase{pos}, "a"}}, nil},
		Call{exprBase{pos}, "$clog2", []Expr{Identifier{exprBase{pos}, "a"}}},
	}
	for _, n := range nodes {
		switch n.(type) {
		case Identifier, Number, String, Unary, Binary, Ternary, Select, IndexedRange, Concat, Call:
			// recognized variant
		default:
			t.Errorf("unrecognized expression variant %T", n)
		}
		if n.Pos() != pos {
			t.Errorf("Pos() = %+v, want %+v", n.Pos(), pos)
		}
	}
}

func TestStmtTypeSwitchCoversAllVariants(t *testing.T) {
	pos := token.Pos{File: "t.v", Line: 2, Col: 1}
	nodes := []Stmt{
		Assign{stmtBase{pos}, Lhs{Name: "a"}, Identifier{exprBase{pos}, "b"}, true, nil},
		If{stmtBase{pos}, Identifier{exprBase{pos}, "c"}, Block{stmtBase: stmtBase{pos}}, nil},
		Block{stmtBase: stmtBase{pos}},
		For{stmtBase: stmtBase{pos}},
		While{stmtBase: stmtBase{pos}},
		Repeat{stmtBase: stmtBase{pos}},
		Case{stmtBase: stmtBase{pos}, Kind: CaseExact},
		ServiceCall{stmtBase: stmtBase{pos}, Name: "$display"},
	}
	for _, n := range nodes {
		switch n.(type) {
		case Assign, If, Block, For, While, Repeat, Case, ServiceCall:
			// recognized variant
		default:
			t.Errorf("unrecognized statement variant %T", n)
		}
		if n.Pos() != pos {
			t.Errorf("Pos() = %+v, want %+v", n.Pos(), pos)
		}
	}
}

func TestProgramByName(t *testing.T) {
	p := &Program{Modules: []Module{{Name: "top"}, {Name: "child"}}}
	if m := p.ByName("child"); m == nil || m.Name != "child" {
		t.Fatalf("ByName(child) = %+v, want module named child", m)
	}
	if m := p.ByName("missing"); m != nil {
		t.Fatalf("ByName(missing) = %+v, want nil", m)
	}
}
