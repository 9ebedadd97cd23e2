// ==============================================================================================
// FILE: interpreter/interpreter_unit_test.go
// ==============================================================================================
// PURPOSE: Exercises individual dispatch cases directly against hand-built AST nodes, without
//          going through the lexer/parser — isolating interpreter bugs from parsing ones.
// ==============================================================================================

package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elle/ast"
	"elle/object"
)

func number(n int64) *ast.NumberLiteral { return &ast.NumberLiteral{Value: n} }

func TestBinaryOpPromotesToFloat(t *testing.T) {
	in := New()
	result, err := in.Interpret([]ast.Node{&ast.BinaryOp{Operator: "+", Left: number(2), Right: &ast.FloatLiteral{Value: 3}}})
	require.NoError(t, err)
	f, ok := result.(*object.Float)
	require.True(t, ok, "expected *Float, got %T", result)
	assert.Equal(t, float64(5), f.Value)
}

func TestDivisionByZero(t *testing.T) {
	in := New()
	_, err := in.Interpret([]ast.Node{&ast.BinaryOp{Operator: "/", Left: number(1), Right: number(0)}})
	require.Error(t, err)
	assert.Equal(t, "Division by zero", err.Error())
}

func TestModuloByZero(t *testing.T) {
	in := New()
	_, err := in.Interpret([]ast.Node{&ast.BinaryOp{Operator: "%", Left: number(1), Right: number(0)}})
	require.Error(t, err)
	assert.Equal(t, "Modulo by zero", err.Error())
}

func TestIfNumberTruthinessQuirk(t *testing.T) {
	tests := []struct {
		cond int64
		want int64
	}{
		{1, 1},  // n > 0 enters the then-branch
		{0, 2},  // n == 0 falls to else
		{-1, 2}, // n < 0 falls to else
	}
	for _, tt := range tests {
		in := New()
		ifNode := &ast.IfStatement{
			Condition: number(tt.cond),
			Body:      []ast.Node{number(1)},
			ElseBody:  []ast.Node{number(2)},
		}
		result, err := in.Interpret([]ast.Node{ifNode})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n, ok := result.(*object.Number)
		if !ok || n.Value != tt.want {
			t.Errorf("cond=%d: got %v, want Number(%d)", tt.cond, result, tt.want)
		}
	}
}

func TestUndefinedVariable(t *testing.T) {
	in := New()
	_, err := in.Interpret([]ast.Node{&ast.Identifier{Value: "missing"}})
	if err == nil {
		t.Fatal("expected an Undefined variable error")
	}
}

func TestUndefinedFunction(t *testing.T) {
	in := New()
	_, err := in.Interpret([]ast.Node{&ast.FunctionCall{Name: "nope", Args: nil}})
	if err == nil {
		t.Fatal("expected an Undefined function error")
	}
}

func TestFunctionArityMismatch(t *testing.T) {
	in := New()
	decl := &ast.FunctionDeclaration{Name: "f", Params: []ast.Param{{Name: "a"}}, Body: []ast.Node{number(1)}}
	call := &ast.FunctionCall{Name: "f", Args: []ast.Node{number(1), number(2)}}
	_, err := in.Interpret([]ast.Node{decl, call})
	if err == nil {
		t.Fatal("expected an arity-mismatch error")
	}
}

func TestIndexOutOfBounds(t *testing.T) {
	in := New()
	arr := &ast.ArrayLiteral{Elements: []ast.Node{number(1)}}
	idx := &ast.IndexExpression{Array: arr, Index: number(5)}
	_, err := in.Interpret([]ast.Node{idx})
	if err == nil {
		t.Fatal("expected an out-of-bounds error")
	}
}

func TestToTypeConversions(t *testing.T) {
	in := New()
	result, err := in.Interpret([]ast.Node{
		&ast.ToTypeExpression{Types: ast.TypeString, Expr: number(42)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := result.(*object.String)
	if !ok || s.Value != "42" {
		t.Errorf("got %v, want String(42)", result)
	}
}

func TestTypeFuncNamesVariant(t *testing.T) {
	in := New()
	result, err := in.Interpret([]ast.Node{&ast.TypeFuncExpression{Expr: number(1)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := result.(*object.String)
	if !ok || s.Value != "int" {
		t.Errorf("got %v, want String(int)", result)
	}
}
