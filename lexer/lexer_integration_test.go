// ==============================================================================================
// FILE: lexer/lexer_integration_test.go
// ==============================================================================================
// PURPOSE: Lexes a small multi-construct program end to end and checks the resulting token kind
//          sequence, the way a parser would consume it.
// ==============================================================================================

package lexer

import (
	"testing"

	"elle/token"
)

func TestLexProgram(t *testing.T) {
	input := `let x: int = 5
if (x > 0) {
	print(x)
}`
	toks, errs := Lex(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}

	var kinds []token.Type
	for _, tok := range toks {
		kinds = append(kinds, tok.Type)
	}

	want := []token.Type{
		token.KEYWORD, token.ID, token.COLON, token.TYPES, token.ASSIGN, token.NUMBER,
		token.KEYWORD, token.LPAREN, token.ID, token.OP, token.NUMBER, token.RPAREN, token.LBRACE,
		token.KEYWORD, token.LPAREN, token.ID, token.RPAREN,
		token.RBRACE,
		token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(kinds), kinds, len(want), want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
}

// TestPropertyTokenPreservation exercises spec §8's token-preservation property: the meaningful
// token stream (kinds and literals, discarded classes aside) is unaffected by how whitespace,
// blank lines, or comments are arranged around it.
func TestPropertyTokenPreservation(t *testing.T) {
	compact := `let x: int = 5 print(x)`
	spread := "let   x : int =    5  // assign x\n\n\n\tprint(  x )  \n"

	compactToks, errs := Lex(compact)
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	spreadToks, errs := Lex(spread)
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}

	if len(compactToks) != len(spreadToks) {
		t.Fatalf("got %d tokens for spread input, want %d (same as compact)", len(spreadToks), len(compactToks))
	}
	for i := range compactToks {
		if compactToks[i].Type != spreadToks[i].Type || compactToks[i].Literal != spreadToks[i].Literal {
			t.Errorf("token[%d] = %+v, want %+v", i, spreadToks[i], compactToks[i])
		}
	}
}
