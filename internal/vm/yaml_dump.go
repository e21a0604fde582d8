/*
 * vericore - Human-readable YAML dump of a scheduler VM layout.
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

import "gopkg.in/yaml.v3"

// dumpProcess is one process's debug summary.
type dumpProcess struct {
	Name   string `yaml:"name"`
	Offset uint32 `yaml:"offset"`
	Length uint32 `yaml:"length"`
}

// dumpSignal is one signal table entry's debug summary.
type dumpSignal struct {
	Name    string `yaml:"name"`
	ValSlot uint32 `yaml:"val_slot"`
	XzSlot  uint32 `yaml:"xz_slot"`
	Width   uint32 `yaml:"width"`
}

// dumpFallback mirrors Fallback for YAML field naming.
type dumpFallback struct {
	Process string `yaml:"process"`
	Reason  string `yaml:"reason"`
}

// dumpLayout is the YAML-shaped view of a Layout: table sizes and names
// for a human to skim, not the bit-identical wire format WriteBinary
// produces.
type dumpLayout struct {
	ProcCount    uint32         `yaml:"proc_count"`
	WordsPerProc uint32         `yaml:"words_per_proc"`
	Processes    []dumpProcess  `yaml:"processes"`
	Signals      []dumpSignal   `yaml:"signals"`
	TableSizes   map[string]int `yaml:"table_sizes"`
	Fallbacks    []dumpFallback `yaml:"fallbacks,omitempty"`
}

// DumpYAML renders a human-readable summary of l: process boundaries, the
// signal table, every side table's size, and any fallbacks recorded
// during lowering. Intended for `vericore --dump-vm`, not for the runtime.
func (l *Layout) DumpYAML() ([]byte, error) {
	d := dumpLayout{
		ProcCount:    l.ProcCount,
		WordsPerProc: l.WordsPerProc,
		TableSizes: map[string]int{
			"bytecode":        len(l.Bytecode),
			"cond_entries":    len(l.CondEntries),
			"case_headers":    len(l.CaseHeaders),
			"case_entries":    len(l.CaseEntries),
			"case_words":      len(l.CaseWords),
			"assign_entries":  len(l.AssignEntries),
			"delay_entries":   len(l.DelayEntries),
			"repeat_entries":  len(l.RepeatEntries),
			"service_entries": len(l.ServiceEntries),
			"service_args":    len(l.ServiceArgs),
			"string_table":    len(l.StringTable),
			"expr_words":      len(l.Expr.Words),
			"expr_imm_words":  len(l.Expr.ImmWords),
		},
	}
	for i, name := range l.ProcNames {
		d.Processes = append(d.Processes, dumpProcess{Name: name, Offset: l.ProcOffsets[i], Length: l.ProcLengths[i]})
	}
	for _, s := range l.SignalEntries {
		d.Signals = append(d.Signals, dumpSignal{Name: s.Name, ValSlot: s.ValSlot, XzSlot: s.XzSlot, Width: s.Width})
	}
	for _, f := range l.Fallbacks {
		d.Fallbacks = append(d.Fallbacks, dumpFallback{Process: f.Process, Reason: f.Reason})
	}
	return yaml.Marshal(d)
}
