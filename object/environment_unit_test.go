// ==============================================================================================
// FILE: object/environment_unit_test.go
// ==============================================================================================
// PURPOSE: Checks the flat environment (no enclosing scope) and FunctionTable cloning semantics.
// ==============================================================================================

package object

import (
	"elle/ast"
	"testing"
)

func TestEnvironmentGetSetDelete(t *testing.T) {
	env := NewEnvironment()
	if _, ok := env.Get("x"); ok {
		t.Fatal("fresh environment should have no bindings")
	}
	env.Set("x", &Number{Value: 1})
	val, ok := env.Get("x")
	if !ok {
		t.Fatal("expected binding for x")
	}
	if n, ok := val.(*Number); !ok || n.Value != 1 {
		t.Errorf("Get(x) = %v, want Number{1}", val)
	}
	env.Delete("x")
	if _, ok := env.Get("x"); ok {
		t.Error("x should be gone after Delete")
	}
}

func TestFunctionTableCloneIsShallowAndIndependent(t *testing.T) {
	table := NewFunctionTable()
	table["f"] = FunctionEntry{Params: []string{"a"}, Body: []ast.Node{&ast.Identifier{Value: "a"}}}

	clone := table.Clone()
	clone["g"] = FunctionEntry{Params: nil, Body: nil}

	if _, ok := table["g"]; ok {
		t.Error("defining g on the clone must not affect the original table")
	}
	if _, ok := clone["f"]; !ok {
		t.Error("clone should still see f from the original")
	}
}
