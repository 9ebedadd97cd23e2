// ==============================================================================================
// FILE: parser/parser_sanity_test.go
// ==============================================================================================
// PURPOSE: Smoke-checks the diagnostic types and that EOF/empty input behave predictably.
// ==============================================================================================

package parser

import (
	"testing"

	"elle/lexer"
	"elle/token"
)

func TestParseEmptyProgram(t *testing.T) {
	tokens, _ := lexer.Lex("")
	prog, err := New(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error on empty program: %v", err)
	}
	if len(prog.Nodes) != 0 {
		t.Errorf("expected 0 nodes, got %d", len(prog.Nodes))
	}
}

func TestUnexpectedEOFDiagnostic(t *testing.T) {
	tokens, _ := lexer.Lex("let x =")
	_, err := New(tokens).ParseProgram()
	if err == nil {
		t.Fatal("expected an error for truncated input")
	}
}

func TestSyntaxErrorMessageNamesExpectedAndFound(t *testing.T) {
	tokens, _ := lexer.Lex("let x 5")
	_, err := New(tokens).ParseProgram()
	if err == nil {
		t.Fatal("expected a syntax error for a missing '='")
	}
	serr, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if serr.Expected != string(token.ASSIGN) {
		t.Errorf("Expected field = %q, want %q", serr.Expected, token.ASSIGN)
	}
}
