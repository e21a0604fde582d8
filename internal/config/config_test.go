/*
 * vericore - Project manifest parser tests.
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

package config

import (
	"strings"
	"testing"
)

func TestParseBasic(t *testing.T) {
	src := `# project manifest
source rtl/adder.v
source rtl/top.v  # inline comment
top adder_top
option enable_4state=true
option allow_empty=false
out build/adder.yaml
`
	p, err := parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(p.Sources) != 2 || p.Sources[0] != "rtl/adder.v" || p.Sources[1] != "rtl/top.v" {
		t.Fatalf("sources = %v", p.Sources)
	}
	if p.Top != "adder_top" {
		t.Fatalf("top = %q", p.Top)
	}
	if !p.Enable4State {
		t.Fatal("enable_4state should be true")
	}
	if p.AllowEmpty {
		t.Fatal("allow_empty should be false")
	}
	if p.Out != "build/adder.yaml" {
		t.Fatalf("out = %q", p.Out)
	}
}

func TestParseBlankAndCommentOnlyLines(t *testing.T) {
	src := "\n  \n# nothing here\nsource a.v\n"
	p, err := parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(p.Sources) != 1 || p.Sources[0] != "a.v" {
		t.Fatalf("sources = %v", p.Sources)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown directive", "bogus foo\n"},
		{"source missing path", "source\n"},
		{"option missing value", "option enable_4state\n"},
		{"option bad bool", "option enable_4state=maybe\n"},
		{"option unknown name", "option frobnicate=true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parse(strings.NewReader(tt.src)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestParseNoTrailingNewline(t *testing.T) {
	p, err := parse(strings.NewReader("top m"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Top != "m" {
		t.Fatalf("top = %q", p.Top)
	}
}
