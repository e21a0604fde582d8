/*
 * vericore - Scheduler VM layout binary serialization.
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
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// layoutMagic identifies a serialized Layout; layoutVersion bumps whenever
// a table's on-disk shape changes, so a stale reader fails loudly instead
// of misreading offsets.
const (
	layoutMagic   uint32 = 0x56434f52 // "VCOR"
	layoutVersion uint32 = 1
)

var byteOrder = binary.LittleEndian

// WriteBinary serializes l in the fixed, versioned layout the runtime
// reads at raw offsets: a header naming every table's length, followed by
// the tables themselves in a stable order. Every table except the string
// table is a flat run of fixed-width fields, so the kernel can index into
// it directly; each string is written as its byte length followed by its
// bytes. The header carries the Fallbacks count, but the fallback records,
// ProcNames and SignalEntry names are not written.
func (l *Layout) WriteBinary(w io.Writer) error {
	var buf bytes.Buffer
	put := func(v any) error { return binary.Write(&buf, byteOrder, v) }

	if err := put(layoutMagic); err != nil {
		return err
	}
	if err := put(layoutVersion); err != nil {
		return err
	}
	if err := put(l.ProcCount); err != nil {
		return err
	}
	if err := put(l.WordsPerProc); err != nil {
		return err
	}
	counts := []uint32{
		uint32(len(l.Bytecode)), uint32(len(l.SignalEntries)), uint32(len(l.CondEntries)),
		uint32(len(l.CaseHeaders)), uint32(len(l.CaseEntries)), uint32(len(l.CaseWords)),
		uint32(len(l.AssignEntries)), uint32(len(l.DelayEntries)), uint32(len(l.RepeatEntries)),
		uint32(len(l.ServiceEntries)), uint32(len(l.ServiceArgs)), uint32(len(l.StringTable)),
		uint32(len(l.Expr.Words)), uint32(len(l.Expr.ImmWords)), uint32(len(l.Fallbacks)),
	}
	for _, c := range counts {
		if err := put(c); err != nil {
			return err
		}
	}

	if err := put(l.Bytecode); err != nil {
		return err
	}
	if err := put(l.ProcOffsets); err != nil {
		return err
	}
	if err := put(l.ProcLengths); err != nil {
		return err
	}
	for _, e := range l.SignalEntries {
		if err := put(e.ValSlot); err != nil {
			return err
		}
		if err := put(e.XzSlot); err != nil {
			return err
		}
		if err := put(e.Width); err != nil {
			return err
		}
		if err := put(e.ArraySize); err != nil {
			return err
		}
		if err := put(e.Flags); err != nil {
			return err
		}
	}
	for _, e := range l.CondEntries {
		if err := put([3]uint32{uint32(e.Kind), e.ExprOffset, e.Target}); err != nil {
			return err
		}
	}
	for _, h := range l.CaseHeaders {
		if err := put([7]uint32{uint32(h.Kind), uint32(h.Strategy), h.Width, h.EntryOffset, h.EntryCount, h.ExprOffset, h.DefaultTarget}); err != nil {
			return err
		}
	}
	for _, e := range l.CaseEntries {
		wide := uint32(0)
		if e.Wide {
			wide = 1
		}
		if err := put(e.Want); err != nil {
			return err
		}
		if err := put(e.Care); err != nil {
			return err
		}
		if err := put([3]uint32{e.WordOffset, wide, e.Target}); err != nil {
			return err
		}
	}
	if err := put(l.CaseWords); err != nil {
		return err
	}
	for _, e := range l.AssignEntries {
		if err := put([3]uint32{e.Flags, e.SignalID, e.RhsExpr}); err != nil {
			return err
		}
	}
	for _, e := range l.DelayEntries {
		if err := put([6]uint32{e.Flags, e.SignalID, e.RhsExpr, e.DelayExpr, e.Width, e.ArraySize}); err != nil {
			return err
		}
	}
	for _, e := range l.RepeatEntries {
		if err := put([2]uint32{e.CountExpr, e.Target}); err != nil {
			return err
		}
	}
	for _, e := range l.ServiceEntries {
		if err := put([5]uint32{uint32(e.Kind), e.FormatID, e.ArgOffset, e.ArgCount, e.Flags}); err != nil {
			return err
		}
	}
	for _, e := range l.ServiceArgs {
		if err := put([4]uint32{e.Kind, e.Width, e.Payload, e.Flags}); err != nil {
			return err
		}
	}
	for _, s := range l.StringTable {
		if err := put(uint32(len(s))); err != nil {
			return err
		}
		if _, err := buf.WriteString(s); err != nil {
			return err
		}
	}
	if err := put(l.Expr.Words); err != nil {
		return err
	}
	if err := put(l.Expr.ImmWords); err != nil {
		return err
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// ReadBinary decodes a Layout written by WriteBinary. Fallbacks, ProcNames
// and SignalEntry names are diagnostics-only and are not round-tripped.
func ReadBinary(r io.Reader) (*Layout, error) {
	var magic, version uint32
	if err := binary.Read(r, byteOrder, &magic); err != nil {
		return nil, err
	}
	if magic != layoutMagic {
		return nil, fmt.Errorf("vm: bad layout magic %#x", magic)
	}
	if err := binary.Read(r, byteOrder, &version); err != nil {
		return nil, err
	}
	if version != layoutVersion {
		return nil, fmt.Errorf("vm: unsupported layout version %d", version)
	}

	l := &Layout{}
	if err := binary.Read(r, byteOrder, &l.ProcCount); err != nil {
		return nil, err
	}
	if err := binary.Read(r, byteOrder, &l.WordsPerProc); err != nil {
		return nil, err
	}
	var counts [15]uint32
	if err := binary.Read(r, byteOrder, &counts); err != nil {
		return nil, err
	}

	l.Bytecode = make([]uint32, counts[0])
	if err := binary.Read(r, byteOrder, &l.Bytecode); err != nil {
		return nil, err
	}
	l.ProcOffsets = make([]uint32, l.ProcCount)
	if err := binary.Read(r, byteOrder, &l.ProcOffsets); err != nil {
		return nil, err
	}
	l.ProcLengths = make([]uint32, l.ProcCount)
	if err := binary.Read(r, byteOrder, &l.ProcLengths); err != nil {
		return nil, err
	}

	l.SignalEntries = make([]SignalEntry, counts[1])
	for i := range l.SignalEntries {
		var valSlot, xzSlot, width, arraySize, flags uint32
		for _, p := range []*uint32{&valSlot, &xzSlot, &width, &arraySize, &flags} {
			if err := binary.Read(r, byteOrder, p); err != nil {
				return nil, err
			}
		}
		l.SignalEntries[i] = SignalEntry{ValSlot: valSlot, XzSlot: xzSlot, Width: width, ArraySize: arraySize, Flags: flags}
	}

	l.CondEntries = make([]CondEntry, counts[2])
	for i := range l.CondEntries {
		var a [3]uint32
		if err := binary.Read(r, byteOrder, &a); err != nil {
			return nil, err
		}
		l.CondEntries[i] = CondEntry{Kind: CondKind(a[0]), ExprOffset: a[1], Target: a[2]}
	}

	l.CaseHeaders = make([]CaseHeader, counts[3])
	for i := range l.CaseHeaders {
		var a [7]uint32
		if err := binary.Read(r, byteOrder, &a); err != nil {
			return nil, err
		}
		l.CaseHeaders[i] = CaseHeader{
			Kind: CaseKind(a[0]), Strategy: CaseStrategy(a[1]), Width: a[2],
			EntryOffset: a[3], EntryCount: a[4], ExprOffset: a[5], DefaultTarget: a[6],
		}
	}

	l.CaseEntries = make([]CaseEntry, counts[4])
	for i := range l.CaseEntries {
		var want, care uint64
		var a [3]uint32
		if err := binary.Read(r, byteOrder, &want); err != nil {
			return nil, err
		}
		if err := binary.Read(r, byteOrder, &care); err != nil {
			return nil, err
		}
		if err := binary.Read(r, byteOrder, &a); err != nil {
			return nil, err
		}
		l.CaseEntries[i] = CaseEntry{Want: want, Care: care, WordOffset: a[0], Wide: a[1] != 0, Target: a[2]}
	}

	l.CaseWords = make([]uint64, counts[5])
	if err := binary.Read(r, byteOrder, &l.CaseWords); err != nil {
		return nil, err
	}

	l.AssignEntries = make([]AssignEntry, counts[6])
	for i := range l.AssignEntries {
		var a [3]uint32
		if err := binary.Read(r, byteOrder, &a); err != nil {
			return nil, err
		}
		l.AssignEntries[i] = AssignEntry{Flags: a[0], SignalID: a[1], RhsExpr: a[2]}
	}

	l.DelayEntries = make([]DelayAssignEntry, counts[7])
	for i := range l.DelayEntries {
		var a [6]uint32
		if err := binary.Read(r, byteOrder, &a); err != nil {
			return nil, err
		}
		l.DelayEntries[i] = DelayAssignEntry{Flags: a[0], SignalID: a[1], RhsExpr: a[2], DelayExpr: a[3], Width: a[4], ArraySize: a[5]}
	}

	l.RepeatEntries = make([]RepeatEntry, counts[8])
	for i := range l.RepeatEntries {
		var a [2]uint32
		if err := binary.Read(r, byteOrder, &a); err != nil {
			return nil, err
		}
		l.RepeatEntries[i] = RepeatEntry{CountExpr: a[0], Target: a[1]}
	}

	l.ServiceEntries = make([]ServiceEntry, counts[9])
	for i := range l.ServiceEntries {
		var a [5]uint32
		if err := binary.Read(r, byteOrder, &a); err != nil {
			return nil, err
		}
		l.ServiceEntries[i] = ServiceEntry{Kind: ServiceKind(a[0]), FormatID: a[1], ArgOffset: a[2], ArgCount: a[3], Flags: a[4]}
	}

	l.ServiceArgs = make([]ServiceArg, counts[10])
	for i := range l.ServiceArgs {
		var a [4]uint32
		if err := binary.Read(r, byteOrder, &a); err != nil {
			return nil, err
		}
		l.ServiceArgs[i] = ServiceArg{Kind: a[0], Width: a[1], Payload: a[2], Flags: a[3]}
	}

	l.StringTable = make([]string, counts[11])
	for i := range l.StringTable {
		var n uint32
		if err := binary.Read(r, byteOrder, &n); err != nil {
			return nil, err
		}
		b := make([]byte, n)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, err
		}
		l.StringTable[i] = string(b)
	}

	l.Expr.Words = make([]uint32, counts[12])
	if err := binary.Read(r, byteOrder, &l.Expr.Words); err != nil {
		return nil, err
	}
	l.Expr.ImmWords = make([]uint32, counts[13])
	if err := binary.Read(r, byteOrder, &l.Expr.ImmWords); err != nil {
		return nil, err
	}

	return l, nil
}
