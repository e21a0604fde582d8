/*
 * vericore - System-task (service-call) lowering.
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

package vm

import (
	"fmt"

	"github.com/hdlforge/vericore/internal/ast"
)

// lowerServiceCall lowers one statement-level system task ($display,
// $monitor, $finish, ...) into a ServiceEntry and its ServiceArgs. A
// leading string-literal argument is treated as a format string and split
// out into FormatID rather than a positional ServiceArg, matching
// $display/$write's usual calling convention.
func (pb *procBuilder) lowerServiceCall(sc ast.ServiceCall) {
	kind, ok := serviceKindByName[sc.Name]
	flags := uint32(0)
	if !ok {
		pb.b.addFallback(fmt.Sprintf("unsupported system task %q", sc.Name))
		pb.failed = true
		flags |= ServiceFlagFallback
	}

	args := sc.Args
	formatID := uint32(noExtra)
	if len(args) > 0 {
		if s, isStr := args[0].(ast.String); isStr {
			formatID = pb.b.stringIndex(s.Value)
			args = args[1:]
		}
	}

	argOffset := uint32(len(pb.b.layout.ServiceArgs))
	for _, a := range args {
		if s, isStr := a.(ast.String); isStr {
			pb.b.layout.ServiceArgs = append(pb.b.layout.ServiceArgs, ServiceArg{
				Kind: ServiceArgString, Payload: pb.b.stringIndex(s.Value),
			})
			continue
		}
		exprOff := pb.lowerExpr(a)
		pb.b.layout.ServiceArgs = append(pb.b.layout.ServiceArgs, ServiceArg{
			Kind: ServiceArgExpr, Payload: exprOff, Width: uint32(exprWidthHint(pb.b, a)),
		})
	}
	argCount := uint32(len(pb.b.layout.ServiceArgs)) - argOffset

	idx := uint32(len(pb.b.layout.ServiceEntries))
	pb.b.layout.ServiceEntries = append(pb.b.layout.ServiceEntries, ServiceEntry{
		Kind: kind, FormatID: formatID, ArgOffset: argOffset, ArgCount: argCount, Flags: flags,
	})
	pb.emitOp(OpServiceCall, idx)
}
