/*
 * vericore - Compiler driver.
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

// Command vericore runs the full pipeline — tokenize, parse, elaborate,
// build scheduler-VM bytecode — over the sources named by a project
// manifest, stopping at the first phase with fatal diagnostics.
package main

import (
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hdlforge/vericore/internal/ast"
	"github.com/hdlforge/vericore/internal/config"
	"github.com/hdlforge/vericore/internal/diag"
	"github.com/hdlforge/vericore/internal/elaborate"
	"github.com/hdlforge/vericore/internal/parser"
	"github.com/hdlforge/vericore/internal/token"
	"github.com/hdlforge/vericore/internal/vm"
	"github.com/hdlforge/vericore/util/logger"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "vericore.cfg", "Project manifest")
	optTop := getopt.StringLong("top", 't', "", "Top module (overrides manifest)")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optAllowEmpty := getopt.BoolLong("allow-empty", 0, "Permit sources with zero modules")
	optEnable4State := getopt.BoolLong("enable-4state", 0, "Enable x/z literal digits and four-state folding")
	optStrict1364 := getopt.BoolLong("strict-1364", 0, "Reject constructs outside IEEE-1364-2005")
	optDumpYAML := getopt.BoolLong("dump-yaml", 0, "Print a YAML summary of the built VM layout on success")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if optLogFile != nil && *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, false))
	slog.SetDefault(Logger)

	Logger.Info("vericore started")

	proj, err := config.Load(*optConfig)
	if err != nil {
		Logger.Error("loading manifest", "error", err.Error())
		os.Exit(1)
	}

	if *optTop != "" {
		proj.Top = *optTop
	}
	if *optAllowEmpty {
		proj.AllowEmpty = true
	}
	if *optEnable4State {
		proj.Enable4State = true
	}
	if *optStrict1364 {
		proj.Strict1364 = true
	}

	sink := diag.NewSliceSink()
	opts := parser.Options{
		AllowEmpty:   proj.AllowEmpty,
		Enable4State: proj.Enable4State,
		Strict1364:   proj.Strict1364,
	}

	prog := &ast.Program{}
	for _, src := range proj.Sources {
		Logger.Debug("reading source", "path", src)
		data, err := os.ReadFile(src)
		if err != nil {
			Logger.Error("reading source", "path", src, "error", err.Error())
			os.Exit(1)
		}
		lex := token.New(src, data)
		toks := lex.Tokenize()
		for _, e := range lex.Errors() {
			diag.Reportf(sink, diag.Error, e.Pos, "%s", e.Msg)
		}
		fileProg, ok := parser.Parse(toks, sink, opts)
		if !ok || sink.HasErrors() {
			printDiagnostics(sink)
			os.Exit(1)
		}
		prog.Modules = append(prog.Modules, fileProg.Modules...)
	}

	var design *elaborate.Design
	var ok bool
	if proj.Top != "" {
		design, ok = elaborate.ElaborateTop(prog, proj.Top, sink)
	} else {
		design, ok = elaborate.Elaborate(prog, sink)
	}
	if !ok || sink.HasErrors() {
		printDiagnostics(sink)
		os.Exit(1)
	}

	layout, ok := vm.Build(design, sink)
	if !ok || sink.HasErrors() {
		printDiagnostics(sink)
		os.Exit(1)
	}

	printDiagnostics(sink)

	if proj.Out != "" {
		out, err := os.Create(proj.Out)
		if err != nil {
			Logger.Error("creating output", "path", proj.Out, "error", err.Error())
			os.Exit(1)
		}
		defer out.Close()
		if err := layout.WriteBinary(out); err != nil {
			Logger.Error("writing layout", "error", err.Error())
			os.Exit(1)
		}
		Logger.Info("wrote scheduler VM layout", "path", proj.Out)
	}

	if *optDumpYAML {
		y, err := layout.DumpYAML()
		if err != nil {
			Logger.Error("dumping yaml", "error", err.Error())
			os.Exit(1)
		}
		fmt.Println(string(y))
	}

	Logger.Info("vericore finished", "processes", layout.ProcCount, "signals", len(layout.SignalEntries))
}

func printDiagnostics(sink diag.Sink) {
	diags := sink.Diagnostics()
	if len(diags) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetTitle("Diagnostics")
	t.AppendHeader(table.Row{"Severity", "Position", "Message"})
	for _, d := range diags {
		pos := ""
		if d.HasPos {
			pos = d.Pos.String()
		}
		t.AppendRow(table.Row{d.Severity.String(), pos, d.Message})
	}
	fmt.Println(t.Render())
}
