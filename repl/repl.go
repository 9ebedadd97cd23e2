// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: The interactive Read-Eval-Print Loop. Connects readline-backed input to the
//          Lexer -> Parser -> Interpreter pipeline and keeps one Interpreter alive across the
//          whole session so bindings and function declarations persist between lines.
// ==============================================================================================

package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"elle/interpreter"
	"elle/lexer"
	"elle/object"
	"elle/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const line = "------------------------------------------------------------"

const banner = `
 _____ _ _
|  ___| | | ___
| |__ | | |/ _ \
|  __|| | |  __/
|_|   |_|_|\___|
`

// Repl holds the display configuration for one interactive session.
type Repl struct {
	Banner  string
	Version string
	Prompt  string
}

// NewRepl creates a Repl with the standard banner and prompt.
func NewRepl() *Repl {
	return &Repl{Banner: banner, Version: "0.1", Prompt: ">> "}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", line)
	yellowColor.Fprintf(w, "elle %s\n", r.Version)
	cyanColor.Fprintln(w, "Type an expression and press enter. Type '.exit' to quit.")
	blueColor.Fprintf(w, "%s\n", line)
}

// Start runs the loop until '.exit', Ctrl+D, or a readline error. writer receives the banner,
// evaluation results, and errors; the interpreter's own `print` output also goes to writer.
func (r *Repl) Start(writer io.Writer) {
	r.printBanner(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	interp := interpreter.New()
	interp.Out = writer

	var buffer strings.Builder

	for {
		prompt := r.Prompt
		if buffer.Len() > 0 {
			prompt = ".. "
		}
		rl.SetPrompt(prompt)

		input, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Goodbye!\n"))
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == ".exit" {
			writer.Write([]byte("Goodbye!\n"))
			return
		}
		rl.SaveHistory(input)

		if buffer.Len() > 0 {
			buffer.WriteString(" ")
		}
		buffer.WriteString(input)

		if !isBalanced(buffer.String()) {
			continue
		}

		r.evalLine(writer, buffer.String(), interp)
		buffer.Reset()
	}
}

// isBalanced reports whether every brace, paren, and bracket in code has been closed — the
// signal that a multi-line function/if/while/for body is ready to execute.
func isBalanced(code string) bool {
	depth := 0
	for _, c := range code {
		switch c {
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		}
	}
	return depth <= 0
}

func (r *Repl) evalLine(writer io.Writer, line string, interp *interpreter.Interpreter) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(writer, "runtime panic: %v\n", rec)
		}
	}()

	tokens, errs := lexer.Lex(line)
	if len(errs) > 0 {
		for _, e := range errs {
			redColor.Fprintf(writer, "lexical error: %s\n", e)
		}
		return
	}

	prog, err := parser.New(tokens).ParseProgram()
	if err != nil {
		redColor.Fprintf(writer, "parse error: %s\n", err)
		return
	}

	result, err := interp.Interpret(prog.Nodes)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}
	if _, isVoid := result.(*object.Void); isVoid {
		return
	}
	yellowColor.Fprintf(writer, "%s\n", result.Inspect())
}
