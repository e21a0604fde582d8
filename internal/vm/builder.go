/*
 * vericore - Scheduler VM builder: process partitioning and signal table.
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
	"github.com/hdlforge/vericore/internal/diag"
	"github.com/hdlforge/vericore/internal/elaborate"
)

const wordsPerProc = 2

// builder carries the whole-module state threaded through process lowering:
// the signal table index, the shared expression and case tables, and every
// other side table the bytecode's instructions point into.
type builder struct {
	sink diag.Sink

	signalID map[string]uint32
	stringID map[string]uint32
	layout   Layout

	procName string
}

// procSrc is one process awaiting lowering: a diagnostic label plus the
// closure that emits its body into a fresh procBuilder.
type procSrc struct {
	name string
	emit func(*procBuilder)
}

// Build lowers an elaborated design into a scheduler VM layout. It always
// returns a layout (even a partial one on failure) so callers can inspect
// Fallbacks; the boolean reports whether every process lowered cleanly.
func Build(design *elaborate.Design, sink diag.Sink) (*Layout, bool) {
	b := &builder{
		sink:     sink,
		signalID: map[string]uint32{},
		stringID: map[string]uint32{},
	}
	b.buildSignalTable(&design.Top)

	var procs []procSrc
	for i, assign := range design.Top.Assigns {
		a := assign
		procs = append(procs, procSrc{
			name: fmt.Sprintf("assign#%d", i),
			emit: func(pb *procBuilder) { pb.lowerContinuousAssign(a) },
		})
	}
	for i, block := range design.Top.Always {
		blk := block
		procs = append(procs, procSrc{
			name: fmt.Sprintf("always#%d", i),
			emit: func(pb *procBuilder) { pb.lowerAlwaysBlock(blk) },
		})
	}

	if len(procs) == 0 {
		diag.Report(sink, diag.Error, "elaborated module %q has no processes to schedule", design.Top.Name)
		return &b.layout, false
	}

	procWords := make([][]uint32, len(procs))
	names := make([]string, len(procs))
	ok := true
	for i, p := range procs {
		b.procName = p.name
		names[i] = p.name
		pb := newProcBuilder(b)
		pb.emitOp(OpCallGroup, 0)
		p.emit(pb)
		pb.emitOp(OpDone, 0)
		pb.resolveJumps()
		procWords[i] = pb.words
		if pb.failed {
			ok = false
		}
	}

	b.assembleBytecode(procWords, names)
	return &b.layout, ok
}

// assembleBytecode packs every process's instruction words into the shared,
// fixed-stride bytecode plane, following BuildSchedulerVmLayout's packing
// rule: every process gets words_per_proc slots regardless of its own
// length, so the kernel can compute a process's base offset with a single
// multiply.
func (b *builder) assembleBytecode(procs [][]uint32, names []string) {
	maxLen := uint32(wordsPerProc)
	for _, p := range procs {
		if uint32(len(p)) > maxLen {
			maxLen = uint32(len(p))
		}
	}
	b.layout.ProcCount = uint32(len(procs))
	b.layout.WordsPerProc = maxLen
	b.layout.Bytecode = make([]uint32, uint32(len(procs))*maxLen)
	b.layout.ProcOffsets = make([]uint32, len(procs))
	b.layout.ProcLengths = make([]uint32, len(procs))
	b.layout.ProcNames = names
	for i, p := range procs {
		offset := uint32(i) * maxLen
		b.layout.ProcOffsets[i] = offset
		b.layout.ProcLengths[i] = uint32(len(p))
		copy(b.layout.Bytecode[offset:], p)
	}
}

// buildSignalTable allocates a packed value/xz slot for every port and net
// of the flattened module, in declaration order, each sized in 64-bit
// limbs per spec.md's wide-container rule.
func (b *builder) buildSignalTable(flat *ast.Module) {
	nextSlot := uint32(0)
	alloc := func(name string, width int) {
		limbs := uint32((width + 63) / 64)
		if limbs == 0 {
			limbs = 1
		}
		b.signalID[name] = uint32(len(b.layout.SignalEntries))
		b.layout.SignalEntries = append(b.layout.SignalEntries, SignalEntry{
			Name:      name,
			ValSlot:   nextSlot,
			XzSlot:    nextSlot + limbs,
			Width:     uint32(width),
			ArraySize: 1,
		})
		nextSlot += 2 * limbs
	}
	for _, p := range flat.Ports {
		alloc(p.Name, portWidth(p))
	}
	for _, n := range flat.Nets {
		alloc(n.Name, constWidthOrDefault(n.Width, 1))
	}
}

// signal resolves a flat signal name to its table index.
func (b *builder) signal(name string) (uint32, bool) {
	id, ok := b.signalID[name]
	return id, ok
}

func (b *builder) stringIndex(s string) uint32 {
	if id, ok := b.stringID[s]; ok {
		return id
	}
	id := uint32(len(b.layout.StringTable))
	b.layout.StringTable = append(b.layout.StringTable, s)
	b.stringID[s] = id
	return id
}

func (b *builder) addFallback(reason string) {
	b.layout.Fallbacks = append(b.layout.Fallbacks, Fallback{Process: b.procName, Reason: reason})
}
