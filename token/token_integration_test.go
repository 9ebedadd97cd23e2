// ==============================================================================================
// FILE: token/token_integration_test.go
// ==============================================================================================
// PURPOSE: Checks that the Type constants used across lexer/parser/ast form the exact closed
//          set the rest of the module depends on.
// ==============================================================================================

package token

import "testing"

func TestClosedTypeSet(t *testing.T) {
	all := []Type{
		WHITESPACE, NEWLINE, COMMENT,
		ARROW, OP, ASSIGN,
		LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET,
		COLON, COMMA, DOT,
		TYPES, FLOAT, NUMBER, STRING, REGEX, BOOL, ID, KEYWORD,
		EOF, ILLEGAL,
	}
	seen := make(map[Type]bool, len(all))
	for _, ty := range all {
		if seen[ty] {
			t.Errorf("duplicate Type value: %s", ty)
		}
		seen[ty] = true
	}
}
