/*
 * vericore - Four-state constant-expression calculator.
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

// Command vfold evaluates standalone four-state constant expressions
// through the same parser/folder the compiler core uses, without wiring a
// whole design through the elaborator — a bench for sanity-checking
// internal/fourstate's operator rules against hand-picked expressions.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/hdlforge/vericore/internal/ast"
	"github.com/hdlforge/vericore/internal/diag"
	"github.com/hdlforge/vericore/internal/parser"
	"github.com/hdlforge/vericore/internal/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vfold",
		Short: "vfold — four-state constant-expression calculator",
	}

	var enable4State bool

	evalCmd := &cobra.Command{
		Use:   "eval <expr>",
		Short: "Fold one expression and print its four-state result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := foldOne(strings.Join(args, " "), enable4State)
			if err != nil {
				return err
			}
			fmt.Println(result)
			return nil
		},
	}
	evalCmd.Flags().BoolVar(&enable4State, "enable-4state", true, "Permit x/z digits and four-state folding")

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive four-state expression console",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl(enable4State)
			return nil
		},
	}
	replCmd.Flags().BoolVar(&enable4State, "enable-4state", true, "Permit x/z digits and four-state folding")

	rootCmd.AddCommand(evalCmd, replCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// foldOne tokenizes, parses, and constant-folds one expression, returning a
// human-readable "<width>'b<bits>" rendering of the result, or an error
// built from every diagnostic the parser recorded.
func foldOne(src string, enable4State bool) (string, error) {
	lex := token.New("<eval>", []byte(src))
	toks := lex.Tokenize()
	sink := diag.NewSliceSink()
	for _, e := range lex.Errors() {
		diag.Reportf(sink, diag.Error, e.Pos, "%s", e.Msg)
	}

	p := parser.New(toks, sink, parser.Options{Enable4State: enable4State})
	expr, ok := p.ParseExpr()
	if !ok || sink.HasErrors() {
		return "", diagnosticsError(sink)
	}

	num, ok := expr.(ast.Number)
	if !ok {
		return "", errors.New("expression did not fold to a constant")
	}
	return formatValue(num), nil
}

func diagnosticsError(sink diag.Sink) error {
	var msgs []string
	for _, d := range sink.Diagnostics() {
		msgs = append(msgs, d.String())
	}
	return errors.New(strings.Join(msgs, "; "))
}

// formatValue renders a Number's four-state triple msb-first, one character
// per bit: '0'/'1' for known bits, 'x' for unknown, 'z' for high-impedance.
func formatValue(n ast.Number) string {
	v := n.Value
	var b strings.Builder
	for i := v.Width - 1; i >= 0; i-- {
		val, x, z := v.Bit(i)
		switch {
		case z:
			b.WriteByte('z')
		case x:
			b.WriteByte('x')
		case val:
			b.WriteByte('1')
		default:
			b.WriteByte('0')
		}
	}
	return fmt.Sprintf("%d'b%s", v.Width, b.String())
}

// runRepl is the interactive console, structured exactly like the teacher's
// command/reader.ConsoleReader: a liner.Liner prompt loop with history and
// Ctrl-C-aborts-cleanly semantics.
func runRepl(enable4State bool) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	fmt.Println("vfold repl — enter an expression, or 'quit' to exit")
	for {
		input, err := line.Prompt("vfold> ")
		if err == nil {
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			line.AppendHistory(input)
			if input == "quit" || input == "exit" {
				return
			}
			result, err := foldOne(input, enable4State)
			if err != nil {
				fmt.Println("Error: " + err.Error())
				continue
			}
			fmt.Println(result)
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return
		}
		fmt.Fprintln(os.Stderr, "error reading line: "+err.Error())
		return
	}
}
