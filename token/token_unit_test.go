// ==============================================================================================
// FILE: token/token_unit_test.go
// ==============================================================================================
// PURPOSE: Validates keyword recognition. If this mapping is wrong, the lexer will misclassify
//          a reserved word as a plain identifier or vice versa.
// ==============================================================================================

package token

import "testing"

func TestIsKeyword(t *testing.T) {
	tests := []struct {
		word     string
		expected bool
	}{
		{"print", true},
		{"let", true},
		{"import", true},
		{"if", true},
		{"else", true},
		{"while", true},
		{"for", true},
		{"in", true},
		{"random", true},
		{"func", true},
		{"return", true},
		{"del", true},
		{"input", true},
		{"to", true},
		{"type", true},
		{"sleep", true},
		{"compile", true},
		{"compile_all", true},
		{"x", false},
		{"foobar", false},
		{"int", false}, // matched by its own TYPES rule in the lexer, never reclassified here
		{"true", false},
	}

	for _, tt := range tests {
		if got := IsKeyword(tt.word); got != tt.expected {
			t.Errorf("IsKeyword(%q) = %v, want %v", tt.word, got, tt.expected)
		}
	}
}

func TestTokenStruct(t *testing.T) {
	tok := Token{Type: ID, Literal: "x", Line: 3, Column: 7}
	if tok.Type != ID || tok.Literal != "x" || tok.Line != 3 || tok.Column != 7 {
		t.Errorf("unexpected token fields: %+v", tok)
	}
}
