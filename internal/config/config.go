/*
 * vericore - Project/build manifest reader.
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

// Package config reads a vericore project manifest: the list of source
// files to compile, the top module name, parser options, and the output
// path. The format and the cursor-over-a-line parsing style mirror the
// teacher's config/configparser: '#'-comments, one directive per line,
// "key value" pairs, parsed with a small position-tracking cursor rather
// than a general-purpose config library (SPEC_FULL.md §4.7).
//
// Grammar:
//
//	<line>      := <directive> | <comment> | <blank>
//	<directive> := 'source' <path> | 'top' <ident> | 'out' <path> |
//	               'option' <name> '=' <value>
//	<comment>   := '#' *<any>
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Project is a parsed manifest: what to compile, how, and where to put it.
type Project struct {
	Sources      []string          // source directive, in file order, repeatable
	Top          string            // top directive; empty means infer
	Out          string            // out directive; empty means the layout is not written to a file
	AllowEmpty   bool              // option allow_empty=1
	Enable4State bool              // option enable_4state=1
	Strict1364   bool              // option strict_1364=1
}

// line is the current directive line being parsed, a cursor identical in
// shape to the teacher's optionLine: a string plus an integer position.
type line struct {
	text string
	pos  int
	num  int
}

// Load reads and parses a manifest file.
func Load(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (*Project, error) {
	p := &Project{}
	reader := bufio.NewReader(r)
	ln := &line{}
	for {
		ln.num++
		text, readErr := reader.ReadString('\n')
		if len(text) == 0 && readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, readErr
		}
		ln.text = text
		ln.pos = 0
		if err := ln.apply(p); err != nil {
			return nil, err
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, readErr
		}
	}
	return p, nil
}

func (l *line) skipSpace() {
	for l.pos < len(l.text) && (l.text[l.pos] == ' ' || l.text[l.pos] == '\t') {
		l.pos++
	}
}

func (l *line) isEOL() bool {
	if l.pos >= len(l.text) {
		return true
	}
	c := l.text[l.pos]
	return c == '#' || c == '\n' || c == '\r'
}

func (l *line) word() string {
	l.skipSpace()
	start := l.pos
	for !l.isEOL() && l.text[l.pos] != ' ' && l.text[l.pos] != '\t' {
		l.pos++
	}
	return l.text[start:l.pos]
}

func (l *line) rest() string {
	l.skipSpace()
	start := l.pos
	end := len(l.text)
	for i := start; i < len(l.text); i++ {
		if l.text[i] == '#' || l.text[i] == '\n' || l.text[i] == '\r' {
			end = i
			break
		}
	}
	return strings.TrimSpace(l.text[start:end])
}

// apply parses one line and, if it names a recognised directive, updates p.
func (l *line) apply(p *Project) error {
	l.skipSpace()
	if l.isEOL() {
		return nil
	}
	directive := strings.ToLower(l.word())
	switch directive {
	case "source":
		path := l.rest()
		if path == "" {
			return fmt.Errorf("line %d: source directive requires a path", l.num)
		}
		p.Sources = append(p.Sources, path)
	case "top":
		name := l.rest()
		if name == "" {
			return fmt.Errorf("line %d: top directive requires a module name", l.num)
		}
		p.Top = name
	case "out":
		path := l.rest()
		if path == "" {
			return fmt.Errorf("line %d: out directive requires a path", l.num)
		}
		p.Out = path
	case "option":
		opt := l.rest()
		name, value, found := strings.Cut(opt, "=")
		if !found {
			return fmt.Errorf("line %d: option directive requires name=value", l.num)
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("line %d: option %s: %w", l.num, name, err)
		}
		switch strings.ToLower(name) {
		case "allow_empty":
			p.AllowEmpty = enabled
		case "enable_4state":
			p.Enable4State = enabled
		case "strict_1364":
			p.Strict1364 = enabled
		default:
			return fmt.Errorf("line %d: unknown option %q", l.num, name)
		}
	default:
		return fmt.Errorf("line %d: unknown directive %q", l.num, directive)
	}
	return nil
}
