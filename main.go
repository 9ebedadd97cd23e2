// ==============================================================================================
// FILE: main.go
// ==============================================================================================
// Entry point: `elle <file> [debug]` runs a script; no arguments drops into the REPL. Exit codes
// follow the three-stage pipeline: 1 for an I/O or lexical failure, 2 for a parse failure, 3 for
// an interpretation failure, 0 on success.
// ==============================================================================================

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"elle/ast"
	"elle/interpreter"
	"elle/lexer"
	"elle/parser"
	"elle/repl"
	"elle/token"
)

func main() {
	if len(os.Args) < 2 {
		repl.NewRepl().Start(os.Stdout)
		return
	}

	debug := len(os.Args) > 2 && os.Args[2] == "debug"
	os.Exit(runFile(os.Args[1], debug))
}

func runFile(filename string, debug bool) int {
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %s\n", filename, err)
		return 1
	}

	tokens, errs := lexer.Lex(string(data))
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return 1
	}
	if debug {
		dumpTokens(tokens)
	}

	prog, err := parser.New(tokens).ParseProgram()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if debug {
		dumpAST(prog)
	}

	interp := interpreter.New()
	interp.ImportRoot = filepath.Dir(filename)

	if _, err := interp.Interpret(prog.Nodes); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 3
	}
	return 0
}

func dumpTokens(tokens []token.Token) {
	fmt.Fprintln(os.Stderr, "-- tokens --")
	for _, t := range tokens {
		fmt.Fprintf(os.Stderr, "%-10s %q (line %d, col %d)\n", t.Type, t.Literal, t.Line, t.Column)
	}
}

func dumpAST(prog *ast.Program) {
	fmt.Fprintln(os.Stderr, "-- ast --")
	for _, n := range prog.Nodes {
		fmt.Fprintln(os.Stderr, n.String())
	}
}
