/*
 * vericore - Identifier-rewriting expression and statement cloning.
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

package elaborate

import "github.com/hdlforge/vericore/internal/ast"

// cloneExpr rebuilds e with every Identifier passed through rename. Number
// and String leaves are returned as-is since they carry no names to rewrite.
func cloneExpr(e ast.Expr, rename func(string) string) ast.Expr {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case ast.Identifier:
		v.Name = rename(v.Name)
		return v
	case ast.Number:
		return v
	case ast.String:
		return v
	case ast.Unary:
		v.Operand = cloneExpr(v.Operand, rename)
		return v
	case ast.Binary:
		v.Left = cloneExpr(v.Left, rename)
		v.Right = cloneExpr(v.Right, rename)
		return v
	case ast.Ternary:
		v.Cond = cloneExpr(v.Cond, rename)
		v.Then = cloneExpr(v.Then, rename)
		v.Else = cloneExpr(v.Else, rename)
		return v
	case ast.Select:
		v.Base = cloneExpr(v.Base, rename)
		v.Msb = cloneExpr(v.Msb, rename)
		v.Lsb = cloneExpr(v.Lsb, rename)
		return v
	case ast.IndexedRange:
		v.Base = cloneExpr(v.Base, rename)
		v.Start = cloneExpr(v.Start, rename)
		return v
	case ast.Concat:
		parts := make([]ast.Expr, len(v.Parts))
		for i, p := range v.Parts {
			parts[i] = cloneExpr(p, rename)
		}
		v.Parts = parts
		v.Replicate = cloneExpr(v.Replicate, rename)
		return v
	case ast.Call:
		args := make([]ast.Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = cloneExpr(a, rename)
		}
		v.Args = args
		return v
	default:
		return e
	}
}

// cloneStmt rebuilds s with every identifier reference — in LHS targets,
// conditions, and nested bodies — rewritten through rename.
func cloneStmt(s ast.Stmt, rename func(string) string) ast.Stmt {
	if s == nil {
		return nil
	}
	switch v := s.(type) {
	case ast.Assign:
		v.Lhs = renameLhs(v.Lhs, rename)
		v.Rhs = cloneExpr(v.Rhs, rename)
		v.Delay = cloneExpr(v.Delay, rename)
		return v
	case ast.If:
		v.Cond = cloneExpr(v.Cond, rename)
		v.Then = cloneStmt(v.Then, rename)
		v.ElseStmt = cloneStmt(v.ElseStmt, rename)
		return v
	case ast.Block:
		body := make([]ast.Stmt, len(v.Body))
		for i, s := range v.Body {
			body[i] = cloneStmt(s, rename)
		}
		v.Body = body
		return v
	case ast.For:
		v.Init = cloneStmt(v.Init, rename)
		v.Post = cloneStmt(v.Post, rename)
		v.Cond = cloneExpr(v.Cond, rename)
		v.Body = cloneStmt(v.Body, rename)
		return v
	case ast.While:
		v.Cond = cloneExpr(v.Cond, rename)
		v.Body = cloneStmt(v.Body, rename)
		return v
	case ast.Repeat:
		v.Count = cloneExpr(v.Count, rename)
		v.Body = cloneStmt(v.Body, rename)
		return v
	case ast.Case:
		v.Selector = cloneExpr(v.Selector, rename)
		arms := make([]ast.CaseArm, len(v.Arms))
		for i, arm := range v.Arms {
			labels := make([]ast.Expr, len(arm.Labels))
			for j, l := range arm.Labels {
				labels[j] = cloneExpr(l, rename)
			}
			arms[i] = ast.CaseArm{Labels: labels, Body: cloneStmt(arm.Body, rename)}
		}
		v.Arms = arms
		return v
	case ast.ServiceCall:
		args := make([]ast.Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = cloneExpr(a, rename)
		}
		v.Args = args
		return v
	default:
		return s
	}
}

// collectAssignedSignals walks an always-block's statement tree and records
// every LHS name it drives, for single-driver validation.
func collectAssignedSignals(s ast.Stmt, out map[string]bool) {
	switch v := s.(type) {
	case ast.Assign:
		out[v.Lhs.Name] = true
	case ast.If:
		collectAssignedSignals(v.Then, out)
		if v.ElseStmt != nil {
			collectAssignedSignals(v.ElseStmt, out)
		}
	case ast.Block:
		for _, stmt := range v.Body {
			collectAssignedSignals(stmt, out)
		}
	case ast.For:
		collectAssignedSignals(v.Init, out)
		collectAssignedSignals(v.Post, out)
		collectAssignedSignals(v.Body, out)
	case ast.While:
		collectAssignedSignals(v.Body, out)
	case ast.Repeat:
		collectAssignedSignals(v.Body, out)
	case ast.Case:
		for _, arm := range v.Arms {
			collectAssignedSignals(arm.Body, out)
		}
	}
}
