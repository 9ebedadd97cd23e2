// ==============================================================================================
// FILE: token/token.go
// ==============================================================================================
// PACKAGE: token
// PURPOSE: Defines the vocabulary the lexer emits and the parser consumes. A Token pairs a
//          closed-set kind tag with the lexeme that produced it.
// ==============================================================================================

package token

// Type is the closed set of token kinds the lexer can produce. WHITESPACE, NEWLINE and COMMENT
// are produced internally by the rule table and discarded before the parser ever sees a token.
type Type string

// Token is the sole unit of communication between lexer and parser.
type Token struct {
	Type    Type   // category of the token
	Literal string // matched text, with string/regex delimiters already stripped
	Line    int    // 1-based line of the match start, for diagnostics
	Column  int    // 1-based column of the match start, for diagnostics
}

const (
	// Discarded before parsing.
	WHITESPACE Type = "WHITESPACE"
	NEWLINE    Type = "NEWLINE"
	COMMENT    Type = "COMMENT"

	ARROW    Type = "ARROW"
	OP       Type = "OP"
	ASSIGN   Type = "ASSIGN"
	LPAREN   Type = "LPAREN"
	RPAREN   Type = "RPAREN"
	LBRACE   Type = "LBRACE"
	RBRACE   Type = "RBRACE"
	LBRACKET Type = "LBRACKET"
	RBRACKET Type = "RBRACKET"
	COLON    Type = "COLON"
	COMMA    Type = "COMMA"
	DOT      Type = "DOT"
	TYPES    Type = "TYPES"
	FLOAT    Type = "FLOAT"
	NUMBER   Type = "NUMBER"
	STRING   Type = "STRING"
	REGEX    Type = "REGEX"
	BOOL     Type = "BOOL"
	ID       Type = "ID"
	KEYWORD  Type = "KEYWORD"

	EOF     Type = "EOF"
	ILLEGAL Type = "ILLEGAL"
)

// keywords is the closed set of reserved words. An ID lexeme found here is reclassified to
// KEYWORD by the lexer; everything else stays ID. TYPES ("int", "float", ...) and BOOL
// ("true", "false") are matched by their own rules ahead of ID and never reach this table.
var keywords = map[string]bool{
	"print":       true,
	"let":         true,
	"import":      true,
	"if":          true,
	"else":        true,
	"while":       true,
	"for":         true,
	"in":          true,
	"random":      true,
	"func":        true,
	"return":      true,
	"del":         true,
	"input":       true,
	"to":          true,
	"type":        true,
	"sleep":       true,
	"compile_all": true,
	"compile":     true,
}

// IsKeyword reports whether ident names a reserved word.
func IsKeyword(ident string) bool {
	return keywords[ident]
}
