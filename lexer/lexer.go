// ----------------------------------------------------------------------------
// FILE: lexer/lexer.go
// ----------------------------------------------------------------------------
package lexer

import (
	"fmt"
	"regexp"
	"strings"

	"elle/token"
)

// rule pairs a token kind with the regex that recognizes it. Rules are tried in table order;
// the first one matching at the start of the remaining input wins. Order is precedence-bearing:
// ARROW must precede OP so "->" never lexes as MINUS followed by GREATER, FLOAT must precede
// NUMBER, and TYPES/BOOL must precede ID so reserved words win over the generic identifier rule.
type rule struct {
	typ token.Type
	re  *regexp.Regexp
}

var rules = []rule{
	{token.WHITESPACE, regexp.MustCompile(`^\s+`)},
	{token.NEWLINE, regexp.MustCompile(`^\n+`)},
	{token.COMMENT, regexp.MustCompile(`^//.*`)},
	{token.ARROW, regexp.MustCompile(`^->`)},
	{token.OP, regexp.MustCompile(`^(\+\+|--|==|!=|<=|>=|&&|\|\||\?|\+|-|\*|/|<|>|&|%)`)},
	{token.ASSIGN, regexp.MustCompile(`^=`)},
	{token.LPAREN, regexp.MustCompile(`^\(`)},
	{token.RPAREN, regexp.MustCompile(`^\)`)},
	{token.LBRACE, regexp.MustCompile(`^\{`)},
	{token.RBRACE, regexp.MustCompile(`^}`)},
	{token.LBRACKET, regexp.MustCompile(`^\[`)},
	{token.RBRACKET, regexp.MustCompile(`^]`)},
	{token.COLON, regexp.MustCompile(`^:`)},
	{token.COMMA, regexp.MustCompile(`^,`)},
	{token.DOT, regexp.MustCompile(`^\.`)},
	{token.TYPES, regexp.MustCompile(`^(int|float|bool|string|array|void)`)},
	{token.FLOAT, regexp.MustCompile(`^\d+\.\d+`)},
	{token.NUMBER, regexp.MustCompile(`^\d+`)},
	{token.STRING, regexp.MustCompile(`^"[^"]*"`)},
	{token.REGEX, regexp.MustCompile(`^\\[^/]+\\`)},
	{token.BOOL, regexp.MustCompile(`^(true|false)`)},
	{token.ID, regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`)},
}

// discarded holds the kinds that the lexer strips before the parser ever sees a token.
var discarded = map[token.Type]bool{
	token.WHITESPACE: true,
	token.NEWLINE:    true,
	token.COMMENT:    true,
}

// UnexpectedCharacter is the lexer's one diagnostic kind: a byte that no rule could match at
// its position. The lexer never halts on one of these; it records it and keeps scanning.
type UnexpectedCharacter struct {
	Char rune
	Pos  int
	Line int
	Col  int
}

func (e *UnexpectedCharacter) Error() string {
	return fmt.Sprintf("unexpected character %q at line %d, column %d", e.Char, e.Line, e.Col)
}

// Lex tokenizes the whole of input in one pass. It always terminates: every byte of input is
// either consumed by a matching rule or turned into one UnexpectedCharacter diagnostic. The
// returned token slice is meaningless when errs is non-empty — the parser never sees it.
func Lex(input string) ([]token.Token, []error) {
	var tokens []token.Token
	var errs []error

	remaining := input
	pos := 0
	line := 1
	col := 1

	for len(remaining) > 0 {
		matched := false

		for _, r := range rules {
			loc := r.re.FindStringIndex(remaining)
			if loc == nil || loc[0] != 0 {
				continue
			}
			lexeme := remaining[:loc[1]]

			if !discarded[r.typ] {
				tokens = append(tokens, token.Token{
					Type:    classify(r.typ, lexeme),
					Literal: unwrap(r.typ, lexeme),
					Line:    line,
					Column:  col,
				})
			}

			line, col = advance(line, col, lexeme)
			remaining = remaining[loc[1]:]
			pos += loc[1]
			matched = true
			break
		}

		if matched {
			continue
		}

		ch := []rune(remaining)[0]
		errs = append(errs, &UnexpectedCharacter{Char: ch, Pos: pos, Line: line, Col: col})
		size := len(string(ch))
		line, col = advance(line, col, remaining[:size])
		remaining = remaining[size:]
		pos += size
	}

	tokens = append(tokens, token.Token{Type: token.EOF, Line: line, Column: col})

	if len(errs) > 0 {
		return nil, errs
	}
	return tokens, nil
}

// classify reclassifies an ID lexeme to KEYWORD when it names a reserved word; every other
// rule's kind passes through unchanged. TYPES and BOOL are matched by their own rules ahead of
// ID, so "int"/"true"/etc. never reach this check.
func classify(typ token.Type, lexeme string) token.Type {
	if typ == token.ID && token.IsKeyword(lexeme) {
		return token.KEYWORD
	}
	return typ
}

// unwrap strips the delimiters the spec says post-processing removes: STRING loses its
// surrounding quotes, REGEX loses its surrounding backslashes. No backslash-escape processing
// is performed on STRING contents — this mirrors the grounding source's own behavior.
func unwrap(typ token.Type, lexeme string) string {
	switch typ {
	case token.STRING, token.REGEX:
		return lexeme[1 : len(lexeme)-1]
	default:
		return lexeme
	}
}

// advance walks line/column counters over a consumed lexeme.
func advance(line, col int, lexeme string) (int, int) {
	n := strings.Count(lexeme, "\n")
	if n == 0 {
		return line, col + len(lexeme)
	}
	last := strings.LastIndexByte(lexeme, '\n')
	return line + n, len(lexeme) - last
}
