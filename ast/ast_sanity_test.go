// ==============================================================================================
// FILE: ast/ast_sanity_test.go
// ==============================================================================================
// PURPOSE: Every concrete node type must satisfy Node — a compile-time smoke check.
// ==============================================================================================

package ast

var _ = []Node{
	&NumberLiteral{}, &FloatLiteral{}, &StringLiteral{}, &RegexLiteral{},
	&BooleanLiteral{}, &ArrayLiteral{}, &VoidLiteral{},
	&Identifier{}, &IndexExpression{}, &MethodCall{},
	&LetStatement{}, &FunctionDeclaration{}, &ImportStatement{},
	&IfStatement{}, &WhileStatement{}, &ForStatement{}, &ForInStatement{},
	&ReturnStatement{}, &DeleteExpression{}, &PrintStatement{}, &AssignExpression{},
	&InputExpression{}, &SleepExpression{}, &CompileExpression{}, &CompileAllExpression{},
	&BinaryOp{}, &UnaryOpTT{}, &ToTypeExpression{}, &TypeFuncExpression{},
	&RandomExpression{}, &FunctionCall{},
}
