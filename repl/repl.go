/*
File    : epilang/repl/repl.go
*/

// Package repl implements the interactive Read-Eval-Print Loop for Epilang.
// Unlike one-shot file execution, the REPL keeps one evaluator stack and one
// root scope alive across every line: a `let` or named `fn` at the prompt
// permanently extends both, so later lines can see earlier bindings — the
// interactive special case spec.md §9 attributes to
// original_source/src/shell.rs's `eval_let`/`eval_fn`.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/epilang-lang/epilang/ast"
	"github.com/epilang-lang/epilang/eval"
	"github.com/epilang-lang/epilang/function"
	"github.com/epilang-lang/epilang/lexer"
	"github.com/epilang-lang/epilang/parser"
	"github.com/epilang-lang/epilang/scope"
	"github.com/epilang-lang/epilang/value"
)

// Color definitions for REPL output, matching the teacher's palette: blue for
// separators, green for the banner, yellow for version info and results, red
// for errors, cyan for instructions.
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is a configured interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl creates a Repl with the given banner/version/author/separator/
// license/prompt strings.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and usage instructions to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Epilang!")
	cyanColor.Fprintf(writer, "%s\n", "Type an expression and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Top-level 'let name = e' and 'fn name(...) {...}' persist across lines")
	cyanColor.Fprintf(writer, "%s\n", "Type '.ast <expr>' to print an expression's parse tree")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// session holds the state a Repl's loop carries from line to line: the root
// scope the parser resolves top-level bindings against, and the matching
// evaluator stack.
type session struct {
	root  *scope.FunctionScope
	state *eval.State
}

func newSession() *session {
	return &session{root: scope.New(nil), state: eval.New()}
}

// Start runs the REPL loop, reading lines from reader (via readline) and
// writing output to writer, until '.exit' or EOF.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.NewEx(&readline.Config{
		Prompt: r.Prompt,
		Stdin:  io.NopCloser(reader),
		Stdout: writer,
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	sess := newSession()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			return
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			return
		}
		rl.SaveHistory(line)

		if strings.HasPrefix(line, ".ast ") {
			sess.printAST(writer, strings.TrimPrefix(line, ".ast "))
			continue
		}

		sess.executeWithRecovery(writer, line)
	}
}

func (s *session) printAST(writer io.Writer, src string) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}
	expr, err := parser.Parse(tokens)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}
	var p ast.Printer
	cyanColor.Fprintf(writer, "%s", p.Print(expr))
}

// executeWithRecovery tokenizes, parses, and evaluates one line, printing its
// result (or error) and updating sess in place for TopLevelLet/TopLevelFn
// lines. A recovered panic (an internal evaluator bug, not a modelled
// Epilang error) is reported the same way the teacher's REPL reports one,
// rather than crashing the session.
func (s *session) executeWithRecovery(writer io.Writer, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	tokens, err := lexer.Tokenize(line)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}

	result, err := parser.ParseTopLevel(tokens, s.root)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}

	switch result.Kind {
	case parser.TopLevelLet:
		v, err := s.state.Eval(result.Init)
		if err != nil {
			redColor.Fprintf(writer, "%s\n", err)
			return
		}
		s.state.Stack = append(s.state.Stack, value.NewSlot(v))
		yellowColor.Fprintf(writer, "%s\n", v.String())

	case parser.TopLevelFn:
		slot := value.NewSlot(value.Unit{})
		fn := &function.Function{
			NumArgs:        len(result.Fn.ParamNames),
			Body:           result.Fn.Body,
			ExternalValues: []*value.Slot{slot},
		}
		slot.Set(fn.ToValue())
		s.state.Stack = append(s.state.Stack, slot)
		yellowColor.Fprintf(writer, "%s\n", slot.Get().String())

	default: // TopLevelExpr
		v, err := s.state.Eval(result.Expr)
		if err != nil {
			redColor.Fprintf(writer, "%s\n", err)
			return
		}
		yellowColor.Fprintf(writer, "%s\n", v.String())
	}
}
