// ==============================================================================================
// FILE: ast/ast.go
// ==============================================================================================
// PACKAGE: ast
// PURPOSE: The closed set of AstNode variants the parser produces and the interpreter walks.
//          Every concrete type here is a struct implementing Node; there is no open extension
//          point — adding a construct to the language means adding a case here, in the parser,
//          and in the interpreter's dispatch, all three in lockstep.
// ==============================================================================================

package ast

import (
	"fmt"
	"strconv"
	"strings"

	"elle/token"
)

// Node is implemented by every AstNode variant. String renders the node back to a canonical,
// re-parseable form — used for debug dumps and for the parse round-trip property.
type Node interface {
	TokenLiteral() string
	String() string
}

// Program is the top-level parse result: an ordered list of nodes, evaluated in sequence.
type Program struct {
	Nodes []Node
}

func (p *Program) TokenLiteral() string {
	if len(p.Nodes) > 0 {
		return p.Nodes[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var sb strings.Builder
	for i, n := range p.Nodes {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(n.String())
	}
	return sb.String()
}

// Type is the closed type-tag vocabulary used at the parse/interpret boundary: `let` type
// annotations, `to` conversion targets, function return-type annotations (parsed, then
// discarded — the spec does not check them).
type Type string

const (
	TypeInt    Type = "int"
	TypeFloat  Type = "float"
	TypeBool   Type = "bool"
	TypeString Type = "string"
	TypeArray  Type = "array"
	TypeVoid   Type = "void"
)

// Param is one entry of a function's parameter list: a name and an optional declared type.
// The type is accepted for documentation purposes only — the interpreter never checks it.
type Param struct {
	Name string
	Type *Type
}

func (p Param) String() string {
	if p.Type == nil {
		return p.Name
	}
	return fmt.Sprintf("%s: %s", p.Name, *p.Type)
}

// ----------------------------------------------------------------------------------------------
// LITERALS
// ----------------------------------------------------------------------------------------------

type NumberLiteral struct {
	Token token.Token
	Value int64
}

func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) String() string       { return strconv.FormatInt(n.Value, 10) }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (f *FloatLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *FloatLiteral) String() string       { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) String() string       { return fmt.Sprintf("%q", s.Value) }

// RegexLiteral is a backslash-delimited regex pattern: \pattern\.
type RegexLiteral struct {
	Token   token.Token
	Pattern string
}

func (r *RegexLiteral) TokenLiteral() string { return r.Token.Literal }
func (r *RegexLiteral) String() string       { return `\` + r.Pattern + `\` }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) String() string       { return strconv.FormatBool(b.Value) }

type ArrayLiteral struct {
	Token    token.Token
	Elements []Node
}

func (a *ArrayLiteral) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// VoidLiteral is the literal form of the bottom value, rendered as `()`. The parser never
// produces one; `let` always requires an initializer.
type VoidLiteral struct {
	Token token.Token
}

func (v *VoidLiteral) TokenLiteral() string { return v.Token.Literal }
func (v *VoidLiteral) String() string       { return "()" }

// ----------------------------------------------------------------------------------------------
// ACCESS
// ----------------------------------------------------------------------------------------------

type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

type IndexExpression struct {
	Token token.Token
	Array Node
	Index Node
}

func (i *IndexExpression) TokenLiteral() string { return i.Token.Literal }
func (i *IndexExpression) String() string {
	return fmt.Sprintf("%s[%s]", i.Array.String(), i.Index.String())
}

type MethodCall struct {
	Token  token.Token
	Object Node
	Method string
	Args   []Node
}

func (m *MethodCall) TokenLiteral() string { return m.Token.Literal }
func (m *MethodCall) String() string {
	parts := make([]string, len(m.Args))
	for i, a := range m.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s.%s(%s)", m.Object.String(), m.Method, strings.Join(parts, ", "))
}

// ----------------------------------------------------------------------------------------------
// DECLARATIONS
// ----------------------------------------------------------------------------------------------

type LetStatement struct {
	Token    token.Token
	Name     string
	IsConst  bool
	VarType  *Type
	VarValue Node
}

func (l *LetStatement) TokenLiteral() string { return l.Token.Literal }
func (l *LetStatement) String() string {
	var sb strings.Builder
	sb.WriteString("let ")
	sb.WriteString(l.Name)
	if l.VarType != nil {
		sb.WriteString(": ")
		sb.WriteString(string(*l.VarType))
		if l.IsConst {
			sb.WriteString(" &")
		}
	}
	sb.WriteString(" = ")
	sb.WriteString(l.VarValue.String())
	return sb.String()
}

type FunctionDeclaration struct {
	Token  token.Token
	Name   string
	Params []Param
	Body   []Node
}

func (f *FunctionDeclaration) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDeclaration) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("func %s(%s) { %s }", f.Name, strings.Join(params, ", "), blockString(f.Body))
}

type ImportStatement struct {
	Token token.Token
	Path  string
}

func (im *ImportStatement) TokenLiteral() string { return im.Token.Literal }
func (im *ImportStatement) String() string       { return fmt.Sprintf("import %q", im.Path) }

// ----------------------------------------------------------------------------------------------
// STATEMENTS / CONTROL FLOW
// ----------------------------------------------------------------------------------------------

type IfStatement struct {
	Token     token.Token
	Condition Node
	Body      []Node
	ElseBody  []Node // nil when there is no else branch
}

func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) String() string {
	s := fmt.Sprintf("if (%s) { %s }", i.Condition.String(), blockString(i.Body))
	if i.ElseBody != nil {
		s += fmt.Sprintf(" else { %s }", blockString(i.ElseBody))
	}
	return s
}

type WhileStatement struct {
	Token     token.Token
	Condition Node
	Body      []Node
}

func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) String() string {
	return fmt.Sprintf("while (%s) { %s }", w.Condition.String(), blockString(w.Body))
}

type ForStatement struct {
	Token     token.Token
	Init      Node
	Condition Node
	Increment Node
	Body      []Node
}

func (f *ForStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForStatement) String() string {
	return fmt.Sprintf("for (%s, %s, %s) { %s }",
		f.Init.String(), f.Condition.String(), f.Increment.String(), blockString(f.Body))
}

type ForInStatement struct {
	Token    token.Token
	Var      string
	Iterable Node
	Body     []Node
}

func (f *ForInStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForInStatement) String() string {
	return fmt.Sprintf("for (%s in %s) { %s }", f.Var, f.Iterable.String(), blockString(f.Body))
}

type ReturnStatement struct {
	Token       token.Token
	ReturnValue Node
}

func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) String() string       { return "return " + r.ReturnValue.String() }

type DeleteExpression struct {
	Token token.Token
	Expr  Node
}

func (d *DeleteExpression) TokenLiteral() string { return d.Token.Literal }
func (d *DeleteExpression) String() string       { return fmt.Sprintf("del(%s)", d.Expr.String()) }

type PrintStatement struct {
	Token token.Token
	Left  Node
}

func (p *PrintStatement) TokenLiteral() string { return p.Token.Literal }
func (p *PrintStatement) String() string       { return fmt.Sprintf("print(%s)", p.Left.String()) }

type AssignExpression struct {
	Token token.Token
	Left  Node
	Right Node
}

func (a *AssignExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AssignExpression) String() string {
	return fmt.Sprintf("%s = %s", a.Left.String(), a.Right.String())
}

type InputExpression struct {
	Token       token.Token
	Placeholder string
}

func (in *InputExpression) TokenLiteral() string { return in.Token.Literal }
func (in *InputExpression) String() string       { return fmt.Sprintf("input(%q)", in.Placeholder) }

type SleepExpression struct {
	Token token.Token
	Expr  Node
}

func (s *SleepExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SleepExpression) String() string       { return fmt.Sprintf("sleep(%s)", s.Expr.String()) }

type CompileExpression struct {
	Token token.Token
	Expr  Node
	Regex Node
}

func (c *CompileExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CompileExpression) String() string {
	return fmt.Sprintf("compile(%s, %s)", c.Expr.String(), c.Regex.String())
}

type CompileAllExpression struct {
	Token token.Token
	Expr  Node
	Regex Node
}

func (c *CompileAllExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CompileAllExpression) String() string {
	return fmt.Sprintf("compile_all(%s, %s)", c.Expr.String(), c.Regex.String())
}

// ----------------------------------------------------------------------------------------------
// OPERATORS
// ----------------------------------------------------------------------------------------------

type BinaryOp struct {
	Token    token.Token
	Operator string
	Left     Node
	Right    Node
}

func (b *BinaryOp) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Operator, b.Right.String())
}

// UnaryOpTT is the postfix "++"/"--" increment/decrement; TT for "to-to" per the spec's naming.
type UnaryOpTT struct {
	Token    token.Token
	Operator string
	Var      Node
}

func (u *UnaryOpTT) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryOpTT) String() string       { return fmt.Sprintf("(%s%s)", u.Var.String(), u.Operator) }

// ----------------------------------------------------------------------------------------------
// CONVERSIONS / INTROSPECTION / CALLS
// ----------------------------------------------------------------------------------------------

type ToTypeExpression struct {
	Token token.Token
	Types Type
	Expr  Node
}

func (t *ToTypeExpression) TokenLiteral() string { return t.Token.Literal }
func (t *ToTypeExpression) String() string {
	return fmt.Sprintf("to(%s, %s)", t.Types, t.Expr.String())
}

type TypeFuncExpression struct {
	Token token.Token
	Expr  Node
}

func (t *TypeFuncExpression) TokenLiteral() string { return t.Token.Literal }
func (t *TypeFuncExpression) String() string       { return fmt.Sprintf("type(%s)", t.Expr.String()) }

type RandomExpression struct {
	Token token.Token
	Left  Node
	Right Node
}

func (r *RandomExpression) TokenLiteral() string { return r.Token.Literal }
func (r *RandomExpression) String() string {
	return fmt.Sprintf("random(%s, %s)", r.Left.String(), r.Right.String())
}

type FunctionCall struct {
	Token token.Token
	Name  string
	Args  []Node
}

func (f *FunctionCall) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionCall) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(parts, ", "))
}

func blockString(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, " ")
}
