// ==============================================================================================
// FILE: object/object.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: Defines the closed set of runtime values the interpreter produces and manipulates.
//          Every concrete type implements Object; there is no open extension point — the set
//          is exhaustively matched everywhere it is consumed.
// ==============================================================================================

package object

import (
	"fmt"
	"strings"
)

// Type identifies the runtime variant of an Object.
type Type string

const (
	NUMBER_OBJ  Type = "NUMBER"
	FLOAT_OBJ   Type = "FLOAT"
	STRING_OBJ  Type = "STRING"
	REGEX_OBJ   Type = "REGEX"
	BOOLEAN_OBJ Type = "BOOLEAN"
	ARRAY_OBJ   Type = "ARRAY"
	VOID_OBJ    Type = "VOID"

	MATCH_VALUE_OBJ Type = "MATCH_VALUE"
	MATCH_ARRAY_OBJ Type = "MATCH_ARRAY"

	RETURN_VALUE_OBJ Type = "RETURN_VALUE"
	CONST_VALUE_OBJ  Type = "CONST_VALUE"

	ERROR_OBJ Type = "ERROR"
)

// Object is implemented by every runtime value variant.
type Object interface {
	Type() Type
	// Inspect renders the value the way it appears nested inside an array or a wrapper
	// (ReturnValue/ConstValue/MatchValue/MatchArray): strings are quoted here. Top-level
	// `print` output is rendered separately by the interpreter, which does not quote strings.
	Inspect() string
}

// ----------------------------------------------------------------------------------------------
// PRIMITIVES
// ----------------------------------------------------------------------------------------------

type Number struct {
	Value int64
}

func (n *Number) Type() Type      { return NUMBER_OBJ }
func (n *Number) Inspect() string { return fmt.Sprintf("%d", n.Value) }

type Float struct {
	Value float64
}

func (f *Float) Type() Type      { return FLOAT_OBJ }
func (f *Float) Inspect() string { return fmt.Sprintf("%g", f.Value) }

type String struct {
	Value string
}

func (s *String) Type() Type      { return STRING_OBJ }
func (s *String) Inspect() string { return fmt.Sprintf("%q", s.Value) }

// Regex is an uncompiled pattern value; it is compiled on demand by Compile/CompileAll.
type Regex struct {
	Pattern string
}

func (r *Regex) Type() Type      { return REGEX_OBJ }
func (r *Regex) Inspect() string { return r.Pattern }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() Type      { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string { return fmt.Sprintf("%t", b.Value) }

type Array struct {
	Elements []Object
}

func (a *Array) Type() Type { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Void is the bottom value: the result of statements that produce nothing observable. A binding
// that holds Void accepts a value of any type on reassignment.
type Void struct{}

func (v *Void) Type() Type      { return VOID_OBJ }
func (v *Void) Inspect() string { return "()" }

// ----------------------------------------------------------------------------------------------
// REGEX MATCH RESULTS
// ----------------------------------------------------------------------------------------------

// MatchResult records one regex match: the matched text and its byte-offset span.
type MatchResult struct {
	Text  string
	Start int
	End   int
}

func (m MatchResult) String() string {
	return fmt.Sprintf("Match(text: %q, start: %d, end: %d)", m.Text, m.Start, m.End)
}

// MatchValue wraps a single MatchResult — the result of Compile finding one match, or Void if
// there was none.
type MatchValue struct {
	Match MatchResult
}

func (m *MatchValue) Type() Type      { return MATCH_VALUE_OBJ }
func (m *MatchValue) Inspect() string { return m.Match.String() }

// MatchArray wraps a list of MatchResults. The interpreter never produces one: CompileAll returns
// a plain Array of MatchValue.
type MatchArray struct {
	Matches []MatchResult
}

func (m *MatchArray) Type() Type { return MATCH_ARRAY_OBJ }
func (m *MatchArray) Inspect() string {
	parts := make([]string, len(m.Matches))
	for i, r := range m.Matches {
		parts[i] = r.String()
	}
	return "MatchArray[" + strings.Join(parts, ", ") + "]"
}

// ----------------------------------------------------------------------------------------------
// WRAPPERS
// ----------------------------------------------------------------------------------------------

// ReturnValue is the sentinel that carries a function body's `return` value up through the
// block evaluator; it is not an error and not a first-class value a program can construct.
type ReturnValue struct {
	Value Object
}

func (r *ReturnValue) Type() Type      { return RETURN_VALUE_OBJ }
func (r *ReturnValue) Inspect() string { return "Return(" + r.Value.Inspect() + ")" }

// ConstValue marks a binding as immutable. Reassigning or index-mutating through a name bound
// to one must fail. Unwrapping happens explicitly in for-in, binary operators and `to`
// conversion only; indexing, method calls, conditions and print see the wrapper itself.
type ConstValue struct {
	Value Object
}

func (c *ConstValue) Type() Type      { return CONST_VALUE_OBJ }
func (c *ConstValue) Inspect() string { return "Const(" + c.Value.Inspect() + ")" }

// Unwrap strips a ConstValue layer if present; any other Object passes through unchanged.
func Unwrap(obj Object) Object {
	if c, ok := obj.(*ConstValue); ok {
		return c.Value
	}
	return obj
}

// ----------------------------------------------------------------------------------------------
// ERRORS
// ----------------------------------------------------------------------------------------------

// Error is the interpreter's sentinel error value: an ordinary Object so it can flow through
// the same Eval return channel as any other result, and an error so callers outside the
// dispatcher (main, the REPL) can treat it with Go's normal error-handling idiom.
type Error struct {
	Message string
}

func (e *Error) Type() Type      { return ERROR_OBJ }
func (e *Error) Inspect() string { return "ERROR: " + e.Message }
func (e *Error) Error() string   { return e.Message }

// IsError reports whether obj is a *Error — the dispatcher's standard short-circuit check.
func IsError(obj Object) bool {
	if obj == nil {
		return false
	}
	_, ok := obj.(*Error)
	return ok
}

// TypeName returns the name `type(...)` reports for each variant.
func TypeName(obj Object) string {
	switch obj.(type) {
	case *Number:
		return "int"
	case *Float:
		return "float"
	case *Boolean:
		return "bool"
	case *String:
		return "string"
	case *Regex:
		return "regex"
	case *Array:
		return "array"
	case *Void:
		return "void"
	case *ReturnValue:
		return "ReturnValue"
	case *ConstValue:
		return "const"
	case *MatchValue:
		return "MatchValue"
	case *MatchArray:
		return "MatchArray"
	default:
		return "unknown"
	}
}
