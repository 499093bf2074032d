/*
Command golox is the entry point for the interpreter: no arguments starts
the REPL, one positional argument runs that file as a script. Mirrors
go-mix/main/main.go's hand-rolled os.Args dispatch (no flag framework --
three flags don't need one) and sam-decook-lox's jlox-style exit codes:
0 on success, 65 on a scan/parse/resolve error, 70 on a runtime error.
*/
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/sdecook/golox/environment"
	"github.com/sdecook/golox/eval"
	"github.com/sdecook/golox/lexer"
	"github.com/sdecook/golox/parser"
	"github.com/sdecook/golox/repl"
	"github.com/sdecook/golox/resolver"
	"github.com/sdecook/golox/stdlib"
)

const (
	version = "v0.1.0"
	author  = "sdecook"
	license = "MIT"
	prompt  = "golox > "
	line    = "----------------------------------------------------------------"
)

var banner = `
  ____   ___   _     ___  __  __
 / ___| / _ \ | |   / _ \\ \/ /
| |  _ | | | || |  | | | |\  /
| |_| || |_| || |__| |_| |/  \
 \____| \___/ |_____\___//_/\_\
`

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) > 1 {
		switch arg := os.Args[1]; arg {
		case "--help", "-h":
			showHelp()
			os.Exit(0)
		case "--version", "-v":
			showVersion()
			os.Exit(0)
		default:
			runFile(arg)
			return
		}
	}
	runRepl()
}

func showHelp() {
	cyanColor.Println("golox - a tree-walking Lox interpreter")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  golox                  Start the interactive REPL")
	yellowColor.Println("  golox <path>           Run a golox source file")
	yellowColor.Println("  golox --help           Show this message")
	yellowColor.Println("  golox --version        Show version information")
	cyanColor.Println("")
	cyanColor.Println("REPL COMMANDS:")
	yellowColor.Println("  /exit                  Exit the REPL")
	yellowColor.Println("  /ast <code>            Print the parse tree for a line of code")
}

func showVersion() {
	cyanColor.Println("golox - a tree-walking Lox interpreter")
	cyanColor.Printf("Version: %s\n", version)
	cyanColor.Printf("License: %s\n", license)
}

func runRepl() {
	r := repl.New(banner, version, author, line, license, prompt)
	if cfg := loadReplConfig(".golox.yaml"); cfg != nil {
		if cfg.Prompt != "" {
			r.Prompt = cfg.Prompt
		}
		if cfg.Banner != nil {
			r.NoBanner = !*cfg.Banner
		}
		if cfg.Color != nil && !*cfg.Color {
			color.NoColor = true
		}
	}
	r.Start(os.Stdin, os.Stdout)
}

// runFile reads path, runs it through the scan/parse/resolve/evaluate
// pipeline once, and exits with the code matching whichever stage failed.
func runFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Could not read file '%s': %v\n", path, err)
		os.Exit(1)
	}

	lx := lexer.New(string(source))
	tokens := lx.Scan()
	if len(lx.Diagnostics) > 0 {
		for _, d := range lx.Diagnostics {
			redColor.Fprintln(os.Stderr, d.String())
		}
		os.Exit(65)
	}

	par := parser.New(tokens)
	program := par.Parse()
	if par.HasErrors() {
		for _, d := range par.Diagnostics {
			redColor.Fprintln(os.Stderr, d.String())
		}
		os.Exit(65)
	}

	res := resolver.New()
	res.Resolve(program)
	if res.HasErrors() {
		for _, d := range res.Diagnostics {
			redColor.Fprintln(os.Stderr, d.String())
		}
		os.Exit(65)
	}

	globals := environment.NewGlobals()
	stdlib.Register(globals, os.Stdin, os.Stdout)

	interp := eval.New(globals, res.Depth, res.Slot)
	interp.Stdout = os.Stdout
	interp.Stdin = os.Stdin

	if rerr := interp.Run(program); rerr != nil {
		redColor.Fprintln(os.Stderr, rerr.Error())
		os.Exit(70)
	}
}
