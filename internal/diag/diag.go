/*
 * vericore - Diagnostics sink.
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

// Package diag defines the diagnostics sink shared by every compiler phase.
// Diagnostics are append-only and never throw: callers inspect HasErrors()
// after each phase and decide whether to continue (spec.md §7).
package diag

//go:generate mockgen -write_package_comment=false -package=diag -destination=mock_sink.go github.com/hdlforge/vericore/internal/diag Sink

import (
	"fmt"
	"sync"

	"github.com/hdlforge/vericore/internal/token"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Note Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported problem. Pos is the zero value when no source
// location applies (e.g. a diagnostic raised after elaboration has already
// discarded per-token positions).
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      token.Pos
	HasPos   bool
}

func (d Diagnostic) String() string {
	if d.HasPos {
		return fmt.Sprintf("%s: %s: %s", d.Severity, d.Pos, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Sink is the abstract diagnostics collector every phase reports through.
// It is deliberately narrow so phases never depend on a rendering strategy.
type Sink interface {
	Report(d Diagnostic)
	HasErrors() bool
	Diagnostics() []Diagnostic
}

// SliceSink is the default Sink: an in-memory, append-only list. Safe for
// concurrent Report calls even though the compiler core itself is strictly
// single-threaded (spec.md §5) — a CLI driver may drain diagnostics from a
// signal-handling goroutine while the pipeline is still running.
type SliceSink struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// NewSliceSink returns an empty SliceSink.
func NewSliceSink() *SliceSink {
	return &SliceSink{}
}

func (s *SliceSink) Report(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, d)
}

func (s *SliceSink) HasErrors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

func (s *SliceSink) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Diagnostic(nil), s.diags...)
}

// Reportf is a convenience for reporting a position-tagged diagnostic.
func Reportf(sink Sink, sev Severity, pos token.Pos, format string, args ...any) {
	sink.Report(Diagnostic{
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		HasPos:   true,
	})
}

// Report is a convenience for reporting a diagnostic with no source position.
func Report(sink Sink, sev Severity, format string, args ...any) {
	sink.Report(Diagnostic{
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
	})
}
