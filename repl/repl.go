/*
Package repl implements golox's interactive Read-Eval-Print Loop, grounded
on go-mix's repl.Repl: chzyer/readline for line editing and history,
fatih/color for banner and diagnostic coloring. Each line runs through its
own scan/parse/resolve/evaluate pass sharing one Globals namespace and
one Interpreter across the session, so variables and functions
declared on one line are visible on the next.
*/
package repl

import (
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/sdecook/golox/ast"
	"github.com/sdecook/golox/environment"
	"github.com/sdecook/golox/eval"
	"github.com/sdecook/golox/lexer"
	"github.com/sdecook/golox/parser"
	"github.com/sdecook/golox/resolver"
	"github.com/sdecook/golox/stdlib"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the display configuration for one interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string

	// NoBanner suppresses the startup banner, set from a ".golox.yaml"
	// preference file when present.
	NoBanner bool
}

// New creates a Repl ready to Start.
func New(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintln(w, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintln(w, "Type golox code and press enter.")
	cyanColor.Fprintln(w, "Type '/exit' to quit, '/ast <code>' to print its parse tree.")
	cyanColor.Fprintln(w, "Use up/down arrows to navigate command history.")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the loop until the user quits (/exit, Ctrl+D) or readline
// itself fails. A session keeps one Globals map and one Interpreter alive
// across lines, the same persistent-environment behavior go-mix's REPL
// gives its Evaluator.
func (r *Repl) Start(in io.Reader, out io.Writer) {
	if !r.NoBanner {
		r.printBanner(out)
	}

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	globals := environment.NewGlobals()
	stdlib.Register(globals, in, out)

	interp := eval.New(globals, map[ast.NodeID]int{}, map[ast.NodeID]int{})
	interp.REPL = true
	interp.Stdout = out
	interp.Stdin = in

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			cyanColor.Fprintln(out, "Keyboard interrupt.")
			continue
		}
		if err != nil {
			fmt.Fprintln(out, "Goodbye.")
			return
		}

		line = trimSpace(line)
		if line == "" {
			continue
		}
		if line == "/exit" {
			fmt.Fprintln(out, "Goodbye.")
			return
		}
		rl.SaveHistory(line)

		if astExpr, ok := cutPrefix(line, "/ast "); ok {
			r.printAST(out, astExpr)
			continue
		}

		r.evalLine(out, line, interp)
	}
}

func trimSpace(s string) string {
	start := 0
	for start < len(s) && isSpace(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

func cutPrefix(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || s[:len(prefix)] != prefix {
		return "", false
	}
	return s[len(prefix):], true
}

func (r *Repl) printAST(out io.Writer, source string) {
	lx := lexer.New(source)
	tokens := lx.Scan()
	if len(lx.Diagnostics) > 0 {
		for _, d := range lx.Diagnostics {
			redColor.Fprintln(out, d.String())
		}
		return
	}
	par := parser.New(tokens)
	program := par.Parse()
	if par.HasErrors() {
		for _, d := range par.Diagnostics {
			redColor.Fprintln(out, d.String())
		}
		return
	}
	cyanColor.Fprintf(out, "parse %s\n", program.RunID)
	fmt.Fprint(out, ast.Print(program))
}

// evalLine runs one full scan/parse/resolve/evaluate pass, reporting
// diagnostics in red and leaving the session's frame and globals intact
// for the next line regardless of whether this one errored.
func (r *Repl) evalLine(out io.Writer, source string, interp *eval.Interpreter) {
	lx := lexer.New(source)
	tokens := lx.Scan()
	if len(lx.Diagnostics) > 0 {
		for _, d := range lx.Diagnostics {
			redColor.Fprintln(out, d.String())
		}
		return
	}

	par := parser.New(tokens)
	program := par.Parse()
	if par.HasErrors() {
		for _, d := range par.Diagnostics {
			redColor.Fprintln(out, d.String())
		}
		return
	}

	res := resolver.New()
	res.Resolve(program)
	if res.HasErrors() {
		for _, d := range res.Diagnostics {
			redColor.Fprintln(out, d.String())
		}
		return
	}
	interp.Depth = res.Depth
	interp.Slot = res.Slot

	if rerr := interp.Run(program); rerr != nil {
		redColor.Fprintln(out, rerr.Error())
	}
}
