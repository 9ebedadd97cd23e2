// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: A recursive-descent parser over a fixed, explicit four-level precedence chain. This
//          is deliberately NOT a Pratt/precedence-table parser: the grammar groups comparison
//          and logical operators into one flat band by construction, and that shape is part of
//          the language's contract, not an artifact of table-driven precedence climbing.
// ==============================================================================================

package parser

import (
	"fmt"
	"strconv"

	"elle/ast"
	"elle/token"
)

// ----------------------------------------------------------------------------------------------
// DIAGNOSTICS
// ----------------------------------------------------------------------------------------------

// SyntaxError is raised when a specific token was expected and a different one was found.
type SyntaxError struct {
	Pos      int
	Expected string
	Found    token.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: expected %s, found %s %q",
		e.Found.Line, e.Found.Column, e.Expected, e.Found.Type, e.Found.Literal)
}

// UnexpectedEOF is raised when the token stream ends mid-construct.
type UnexpectedEOF struct {
	Pos int
}

func (e *UnexpectedEOF) Error() string {
	return fmt.Sprintf("unexpected end of input at position %d", e.Pos)
}

// TypeError is raised when a `let` with no declared type cannot infer one from its initializer.
type TypeError struct {
	Expected string
	Actual   string
	Context  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error in %s: expected %s, got %s", e.Context, e.Expected, e.Actual)
}

// UnexpectedToken is raised when a token kind has no parse rule at all, e.g. a stray `}` or `,`.
type UnexpectedToken struct {
	Found token.Token
}

func (e *UnexpectedToken) Error() string {
	return fmt.Sprintf("unexpected token at line %d, column %d: %s %q",
		e.Found.Line, e.Found.Column, e.Found.Type, e.Found.Literal)
}

// NotImplemented is raised by a construct the grammar names but does not yet implement.
type NotImplemented struct {
	What string
}

func (e *NotImplemented) Error() string { return "not implemented: " + e.What }

// ----------------------------------------------------------------------------------------------
// PARSER
// ----------------------------------------------------------------------------------------------

// Parser consumes a finished token slice (the lexer has already run to completion and reported
// no errors) and produces the top-level node list or the first diagnostic it hits. Parsing
// fails fast: unlike the lexer, there is no value in collecting further errors once the tree
// can no longer be trusted.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New creates a Parser over tokens, which must end with an EOF token (as Lex produces).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseProgram parses every node at the top level until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		prog.Nodes = append(prog.Nodes, node)
	}
	return prog, nil
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) curIs(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches t, otherwise returns a SyntaxError.
func (p *Parser) expect(t token.Type) (token.Token, error) {
	if p.curIs(token.EOF) && t != token.EOF {
		return token.Token{}, &UnexpectedEOF{Pos: p.pos}
	}
	if !p.curIs(t) {
		return token.Token{}, &SyntaxError{Pos: p.pos, Expected: string(t), Found: p.cur()}
	}
	return p.advance(), nil
}

// expectKeyword consumes the current token if it is a KEYWORD with the given literal.
func (p *Parser) expectKeyword(kw string) (token.Token, error) {
	if !p.curIs(token.KEYWORD) || p.cur().Literal != kw {
		return token.Token{}, &SyntaxError{Pos: p.pos, Expected: "keyword " + kw, Found: p.cur()}
	}
	return p.advance(), nil
}

func (p *Parser) curIsKeyword(kw string) bool {
	return p.curIs(token.KEYWORD) && p.cur().Literal == kw
}

func (p *Parser) curOp() (string, bool) {
	if p.curIs(token.OP) {
		return p.cur().Literal, true
	}
	return "", false
}

// ----------------------------------------------------------------------------------------------
// BLOCKS, TYPES, PARAMS
// ----------------------------------------------------------------------------------------------

func (p *Parser) parseBlock() ([]ast.Node, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var nodes []ast.Node
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.EOF) {
			return nil, &UnexpectedEOF{Pos: p.pos}
		}
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (p *Parser) parseType() (ast.Type, error) {
	tok, err := p.expect(token.TYPES)
	if err != nil {
		return "", err
	}
	switch tok.Literal {
	case "int", "float", "bool", "string", "array", "void":
		return ast.Type(tok.Literal), nil
	default:
		return "", &SyntaxError{Pos: p.pos, Expected: "a type name", Found: tok}
	}
}

func (p *Parser) parseParamList() ([]ast.Param, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.curIs(token.RPAREN) {
		if len(params) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		name, err := p.expect(token.ID)
		if err != nil {
			return nil, err
		}
		param := ast.Param{Name: name.Literal}
		if p.curIs(token.COLON) {
			p.advance()
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			param.Type = &t
		}
		params = append(params, param)
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseOptionalElse() ([]ast.Node, error) {
	if !p.curIsKeyword("else") {
		return nil, nil
	}
	p.advance()
	return p.parseBlock()
}

// ----------------------------------------------------------------------------------------------
// LEVEL 4: PRIMARY / FACTOR
// ----------------------------------------------------------------------------------------------

// parsePrimary parses a literal, parenthesized expression, keyword-led construct, or an
// identifier, then applies any trailing index/method-call/postfix-`?` chain.
func (p *Parser) parsePrimary() (ast.Node, error) {
	var node ast.Node
	var err error

	switch {
	case p.curIs(token.KEYWORD):
		node, err = p.parseKeywordForm()
	case p.curIs(token.BOOL):
		tok := p.advance()
		node = &ast.BooleanLiteral{Token: tok, Value: tok.Literal == "true"}
	case p.curIs(token.LPAREN):
		p.advance()
		node, err = p.parseAssignment()
		if err == nil {
			_, err = p.expect(token.RPAREN)
		}
	case p.curIs(token.LBRACKET):
		node, err = p.parseArray()
	case p.curIs(token.STRING):
		tok := p.advance()
		node = &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case p.curIs(token.REGEX):
		tok := p.advance()
		node = &ast.RegexLiteral{Token: tok, Pattern: tok.Literal}
	case p.curIs(token.NUMBER):
		tok := p.advance()
		n, e := strconv.ParseInt(tok.Literal, 10, 64)
		if e != nil {
			return nil, &SyntaxError{Pos: p.pos, Expected: "integer literal", Found: tok}
		}
		node = &ast.NumberLiteral{Token: tok, Value: n}
	case p.curIs(token.FLOAT):
		tok := p.advance()
		f, e := strconv.ParseFloat(tok.Literal, 64)
		if e != nil {
			return nil, &SyntaxError{Pos: p.pos, Expected: "float literal", Found: tok}
		}
		node = &ast.FloatLiteral{Token: tok, Value: f}
	case p.curIs(token.ID):
		node, err = p.parseIdentifierLed()
		if err != nil {
			return nil, err
		}
		return p.parsePostfixChain(node)
	case p.curIs(token.EOF):
		return nil, &UnexpectedEOF{Pos: p.pos}
	default:
		return nil, &UnexpectedToken{Found: p.cur()}
	}

	if err != nil {
		return nil, err
	}
	return p.parsePostfixChain(node)
}

// parsePostfixChain attaches any run of `[idx]` / `.method(args)` suffixes, in any order.
func (p *Parser) parsePostfixChain(node ast.Node) (ast.Node, error) {
	for {
		switch {
		case p.curIs(token.LBRACKET):
			tok := p.advance()
			idx, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			node = &ast.IndexExpression{Token: tok, Array: node, Index: idx}
		case p.curIs(token.DOT):
			tok := p.advance()
			method, err := p.expect(token.ID)
			if err != nil {
				return nil, err
			}
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			node = &ast.MethodCall{Token: tok, Object: node, Method: method.Literal, Args: args}
		default:
			return node, nil
		}
	}
}

func (p *Parser) parseArgs() ([]ast.Node, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Node
	for !p.curIs(token.RPAREN) {
		if len(args) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseArray() (ast.Node, error) {
	tok, err := p.expect(token.LBRACKET)
	if err != nil {
		return nil, err
	}
	var elements []ast.Node
	for !p.curIs(token.RBRACKET) {
		if len(elements) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		el, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ArrayLiteral{Token: tok, Elements: elements}, nil
}

// parseIdentifierLed handles a bare identifier, optionally followed by `(args)` to form a call,
// and then the postfix `?` block-desugaring, which applies to both a call and a bare name.
func (p *Parser) parseIdentifierLed() (ast.Node, error) {
	idTok, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}

	var node ast.Node = &ast.Identifier{Token: idTok, Value: idTok.Literal}

	if p.curIs(token.LPAREN) {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		node = &ast.FunctionCall{Token: idTok, Name: idTok.Literal, Args: args}
	}

	if op, ok := p.curOp(); ok && op == "?" {
		qTok := p.advance()
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		elseBody, err := p.parseOptionalElse()
		if err != nil {
			return nil, err
		}
		node = &ast.IfStatement{Token: qTok, Condition: node, Body: body, ElseBody: elseBody}
	}

	return node, nil
}

// ----------------------------------------------------------------------------------------------
// KEYWORD-LED FORMS
// ----------------------------------------------------------------------------------------------

func (p *Parser) parseKeywordForm() (ast.Node, error) {
	kw := p.cur()
	switch kw.Literal {
	case "print":
		return p.parseParenWrapped(kw, func(e ast.Node) ast.Node { return &ast.PrintStatement{Token: kw, Left: e} })
	case "let":
		return p.parseLet(kw)
	case "import":
		p.advance()
		path, err := p.expect(token.STRING)
		if err != nil {
			return nil, err
		}
		return &ast.ImportStatement{Token: kw, Path: path.Literal}, nil
	case "if":
		return p.parseIf(kw)
	case "while":
		return p.parseWhile(kw)
	case "for":
		return p.parseFor(kw)
	case "random":
		return p.parseTwoArgParen(kw, func(l, r ast.Node) ast.Node {
			return &ast.RandomExpression{Token: kw, Left: l, Right: r}
		})
	case "return":
		p.advance()
		expr, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStatement{Token: kw, ReturnValue: expr}, nil
	case "del":
		return p.parseParenWrapped(kw, func(e ast.Node) ast.Node { return &ast.DeleteExpression{Token: kw, Expr: e} })
	case "func":
		return p.parseFunction(kw)
	case "to":
		return p.parseTo(kw)
	case "type":
		return p.parseParenWrapped(kw, func(e ast.Node) ast.Node { return &ast.TypeFuncExpression{Token: kw, Expr: e} })
	case "sleep":
		return p.parseParenWrapped(kw, func(e ast.Node) ast.Node { return &ast.SleepExpression{Token: kw, Expr: e} })
	case "input":
		p.advance()
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		placeholder, err := p.expect(token.STRING)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.InputExpression{Token: kw, Placeholder: placeholder.Literal}, nil
	case "compile":
		return p.parseTwoArgParen(kw, func(l, r ast.Node) ast.Node {
			return &ast.CompileExpression{Token: kw, Expr: l, Regex: r}
		})
	case "compile_all":
		return p.parseTwoArgParen(kw, func(l, r ast.Node) ast.Node {
			return &ast.CompileAllExpression{Token: kw, Expr: l, Regex: r}
		})
	default:
		return nil, &NotImplemented{What: "keyword " + kw.Literal}
	}
}

func (p *Parser) parseParenWrapped(kw token.Token, build func(ast.Node) ast.Node) (ast.Node, error) {
	p.advance()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	expr, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return build(expr), nil
}

func (p *Parser) parseTwoArgParen(kw token.Token, build func(a, b ast.Node) ast.Node) (ast.Node, error) {
	p.advance()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	left, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	right, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return build(left, right), nil
}

func (p *Parser) parseLet(kw token.Token) (ast.Node, error) {
	p.advance()
	name, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}

	var varType *ast.Type
	isConst := false
	if p.curIs(token.COLON) {
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		varType = &t
		if op, ok := p.curOp(); ok && op == "&" {
			isConst = true
			p.advance()
		}
	}

	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}

	if varType == nil {
		inferred, err := inferType(value)
		if err != nil {
			return nil, &TypeError{Expected: "literal initializer", Actual: "non-literal", Context: "let " + name.Literal}
		}
		varType = &inferred
	}

	return &ast.LetStatement{Token: kw, Name: name.Literal, IsConst: isConst, VarType: varType, VarValue: value}, nil
}

// inferType implements the `let` type-inference table: Array/String/Number/Boolean/Float
// literals infer their matching type; anything else requires an explicit annotation.
func inferType(value ast.Node) (ast.Type, error) {
	switch value.(type) {
	case *ast.ArrayLiteral:
		return ast.TypeArray, nil
	case *ast.StringLiteral:
		return ast.TypeString, nil
	case *ast.NumberLiteral:
		return ast.TypeInt, nil
	case *ast.BooleanLiteral:
		return ast.TypeBool, nil
	case *ast.FloatLiteral:
		return ast.TypeFloat, nil
	default:
		return "", fmt.Errorf("cannot infer type")
	}
}

func (p *Parser) parseIf(kw token.Token) (ast.Node, error) {
	p.advance()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	elseBody, err := p.parseOptionalElse()
	if err != nil {
		return nil, err
	}
	return &ast.IfStatement{Token: kw, Condition: cond, Body: body, ElseBody: elseBody}, nil
}

func (p *Parser) parseWhile(kw token.Token) (ast.Node, error) {
	p.advance()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Token: kw, Condition: cond, Body: body}, nil
}

// parseFor distinguishes ForIn ("ID in EXPR") from the three-clause C-style form by probing one
// token ahead: only an ID immediately followed by the `in` keyword takes the ForIn path.
func (p *Parser) parseFor(kw token.Token) (ast.Node, error) {
	p.advance()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	if p.curIs(token.ID) {
		savedPos := p.pos
		idTok := p.advance()
		if p.curIsKeyword("in") {
			p.advance()
			iterable, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			return &ast.ForInStatement{Token: kw, Var: idTok.Literal, Iterable: iterable, Body: body}, nil
		}
		p.pos = savedPos
	}

	init, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	cond, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	incr, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{Token: kw, Init: init, Condition: cond, Increment: incr, Body: body}, nil
}

func (p *Parser) parseFunction(kw token.Token) (ast.Node, error) {
	p.advance()
	name, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	if p.curIs(token.ARROW) {
		p.advance()
		if _, err := p.parseType(); err != nil { // accepted and discarded
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{Token: kw, Name: name.Literal, Params: params, Body: body}, nil
}

func (p *Parser) parseTo(kw token.Token) (ast.Node, error) {
	p.advance()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}
	expr, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.ToTypeExpression{Token: kw, Types: t, Expr: expr}, nil
}

// ----------------------------------------------------------------------------------------------
// LEVEL 3: COMPARISON AND LOGICAL (flat band, left-to-right)
// ----------------------------------------------------------------------------------------------

var comparisonOps = map[string]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true, "&&": true, "||": true,
}

func (p *Parser) parseComparison() (ast.Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.curOp()
		if !ok || !comparisonOps[op] {
			return node, nil
		}
		tok := p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		node = &ast.BinaryOp{Token: tok, Operator: op, Left: node, Right: right}
	}
}

// ----------------------------------------------------------------------------------------------
// LEVEL 2: MULTIPLICATIVE
// ----------------------------------------------------------------------------------------------

func (p *Parser) parseMultiplicative() (ast.Node, error) {
	node, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.curOp()
		if !ok || (op != "*" && op != "/") {
			return node, nil
		}
		tok := p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		node = &ast.BinaryOp{Token: tok, Operator: op, Left: node, Right: right}
	}
}

// ----------------------------------------------------------------------------------------------
// LEVEL 1: ASSIGNMENT / ADDITIVE / POSTFIX-INC-DEC
// ----------------------------------------------------------------------------------------------

// parseAssignment is the entry point for any expression. `=` is right-associative; `+`/`-` are
// left-associative; `++`/`--` are postfix and bind to whatever has been built so far.
func (p *Parser) parseAssignment() (ast.Node, error) {
	node, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		if op, ok := p.curOp(); ok && (op == "+" || op == "-") {
			tok := p.advance()
			right, err := p.parseMultiplicative()
			if err != nil {
				return nil, err
			}
			node = &ast.BinaryOp{Token: tok, Operator: op, Left: node, Right: right}
			continue
		}
		if op, ok := p.curOp(); ok && (op == "++" || op == "--") {
			tok := p.advance()
			node = &ast.UnaryOpTT{Token: tok, Operator: op, Var: node}
			continue
		}
		if p.curIs(token.ASSIGN) {
			tok := p.advance()
			right, err := p.parseAssignment() // right-associative: recurse into the full chain
			if err != nil {
				return nil, err
			}
			node = &ast.AssignExpression{Token: tok, Left: node, Right: right}
			continue
		}
		return node, nil
	}
}

// parseNode parses one full top-level-or-block statement.
func (p *Parser) parseNode() (ast.Node, error) {
	return p.parseAssignment()
}
