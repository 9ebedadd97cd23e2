// ==============================================================================================
// FILE: interpreter/interpreter.go
// ==============================================================================================
// PACKAGE: interpreter
// PURPOSE: The tree-walking execution engine. It traverses the AST and produces runtime values
//          (object.Object) or an *object.Error sentinel, exactly as the grounding evaluator
//          does — the dispatch idiom (type switch, isError short-circuit) is unchanged; what is
//          dispatched over is this language's closed AstNode/RuntimeValue sets instead.
// ==============================================================================================

package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/dlclark/regexp2"

	"elle/ast"
	"elle/lexer"
	"elle/object"
	"elle/parser"
)

// Singletons to avoid allocating fresh Boolean/Void objects on every dispatch.
var (
	TRUE  = &object.Boolean{Value: true}
	FALSE = &object.Boolean{Value: false}
	VOID  = &object.Void{}
)

func nativeBool(b bool) *object.Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

// Interpreter owns the single environment and function table for one run. A fresh Interpreter
// (with a fresh Environment) is created for every function call — there is no shared mutable
// scope chain between caller and callee.
type Interpreter struct {
	Env        *object.Environment
	Functions  object.FunctionTable
	ImportRoot string // directory `import` paths are resolved against
	Out        io.Writer
	In         *bufio.Reader
	Rand       *rand.Rand
}

// New creates an Interpreter ready to run a top-level program. ImportRoot defaults to the
// current directory; callers running a script typically set it to the script's directory.
func New() *Interpreter {
	return &Interpreter{
		Env:        object.NewEnvironment(),
		Functions:  object.NewFunctionTable(),
		ImportRoot: ".",
		Out:        os.Stdout,
		In:         bufio.NewReader(os.Stdin),
		Rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Interpret runs nodes top to bottom and returns the last evaluated value, unwrapped from any
// ReturnValue sentinel that escaped to the top level. An *object.Error return is also handed
// back as a Go error, since it is the only RuntimeValue that also implements error.
func (in *Interpreter) Interpret(nodes []ast.Node) (object.Object, error) {
	result := in.interpretBlock(nodes)
	if err, ok := result.(*object.Error); ok {
		return result, err
	}
	if rv, ok := result.(*object.ReturnValue); ok {
		return rv.Value, nil
	}
	return result, nil
}

// interpretBlock evaluates nodes in order; a ReturnValue stops the block immediately and
// propagates unchanged — it is unwrapped at the function-call boundary, or by Interpret at the
// top level.
func (in *Interpreter) interpretBlock(nodes []ast.Node) object.Object {
	var result object.Object = VOID
	for _, node := range nodes {
		result = in.eval(node)
		if object.IsError(result) {
			return result
		}
		if _, ok := result.(*object.ReturnValue); ok {
			return result
		}
	}
	return result
}

func newError(format string, a ...interface{}) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...)}
}

// eval is the heart of the interpreter: one case per closed AstNode variant.
func (in *Interpreter) eval(node ast.Node) object.Object {
	switch node := node.(type) {

	case *ast.NumberLiteral:
		return &object.Number{Value: node.Value}
	case *ast.FloatLiteral:
		return &object.Float{Value: node.Value}
	case *ast.StringLiteral:
		return &object.String{Value: node.Value}
	case *ast.RegexLiteral:
		return &object.Regex{Pattern: node.Pattern}
	case *ast.BooleanLiteral:
		return nativeBool(node.Value)
	case *ast.VoidLiteral:
		return VOID

	case *ast.ArrayLiteral:
		elements := make([]object.Object, 0, len(node.Elements))
		for _, el := range node.Elements {
			v := in.eval(el)
			if object.IsError(v) {
				return v
			}
			elements = append(elements, v)
		}
		return &object.Array{Elements: elements}

	case *ast.Identifier:
		val, ok := in.Env.Get(node.Value)
		if !ok {
			return newError("Undefined variable: %s", node.Value)
		}
		return val

	case *ast.IndexExpression:
		return in.evalIndex(node)

	case *ast.MethodCall:
		return in.evalMethodCall(node)

	case *ast.AssignExpression:
		return in.evalAssign(node)

	case *ast.LetStatement:
		return in.evalLet(node)

	case *ast.FunctionDeclaration:
		params := make([]string, len(node.Params))
		for i, p := range node.Params {
			params[i] = p.Name
		}
		in.Functions[node.Name] = object.FunctionEntry{Params: params, Body: node.Body}
		return VOID

	case *ast.FunctionCall:
		return in.evalFunctionCall(node)

	case *ast.ImportStatement:
		return in.evalImport(node)

	case *ast.PrintStatement:
		return in.evalPrint(node)

	case *ast.InputExpression:
		return in.evalInput(node)

	case *ast.RandomExpression:
		return in.evalRandom(node)

	case *ast.DeleteExpression:
		if ident, ok := node.Expr.(*ast.Identifier); ok {
			in.Env.Delete(ident.Value)
			return VOID
		}
		return in.eval(node.Expr)

	case *ast.ReturnStatement:
		val := in.eval(node.ReturnValue)
		if object.IsError(val) {
			return val
		}
		return &object.ReturnValue{Value: val}

	case *ast.IfStatement:
		return in.evalIf(node)

	case *ast.WhileStatement:
		return in.evalWhile(node)

	case *ast.ForStatement:
		return in.evalFor(node)

	case *ast.ForInStatement:
		return in.evalForIn(node)

	case *ast.BinaryOp:
		left := in.eval(node.Left)
		if object.IsError(left) {
			return left
		}
		right := in.eval(node.Right)
		if object.IsError(right) {
			return right
		}
		return evalBinaryOp(node.Operator, left, right)

	case *ast.UnaryOpTT:
		return in.evalUnaryOpTT(node)

	case *ast.ToTypeExpression:
		val := in.eval(node.Expr)
		if object.IsError(val) {
			return val
		}
		return convert(val, node.Types)

	case *ast.TypeFuncExpression:
		val := in.eval(node.Expr)
		if object.IsError(val) {
			return val
		}
		return &object.String{Value: object.TypeName(val)}

	case *ast.SleepExpression:
		return in.evalSleep(node)

	case *ast.CompileExpression:
		return in.evalCompile(node)

	case *ast.CompileAllExpression:
		return in.evalCompileAll(node)

	default:
		return newError("unknown AST node: %T", node)
	}
}

// ------------------------------------------------------------------------------------------
// INDEX / METHOD CALL
// ------------------------------------------------------------------------------------------

func (in *Interpreter) evalIndex(node *ast.IndexExpression) object.Object {
	arrVal := in.eval(node.Array)
	if object.IsError(arrVal) {
		return arrVal
	}
	idxVal := in.eval(node.Index)
	if object.IsError(idxVal) {
		return idxVal
	}

	arr, ok := arrVal.(*object.Array)
	if !ok {
		return newError("Indexing only supported for arrays with numeric indices")
	}
	idx, ok := idxVal.(*object.Number)
	if !ok {
		return newError("Indexing only supported for arrays with numeric indices")
	}
	if idx.Value < 0 || idx.Value >= int64(len(arr.Elements)) {
		return newError("Index %d out of bounds for array of length %d", idx.Value, len(arr.Elements))
	}
	return arr.Elements[idx.Value]
}

func (in *Interpreter) evalMethodCall(node *ast.MethodCall) object.Object {
	objVal := in.eval(node.Object)
	if object.IsError(objVal) {
		return objVal
	}
	args := make([]object.Object, 0, len(node.Args))
	for _, a := range node.Args {
		v := in.eval(a)
		if object.IsError(v) {
			return v
		}
		args = append(args, v)
	}

	switch recv := objVal.(type) {
	case *object.Array:
		if node.Method == "push" {
			if len(args) != 1 {
				return newError("Array.push() expects exactly 1 argument")
			}
			extended := append(append([]object.Object{}, recv.Elements...), args[0])
			result := &object.Array{Elements: extended}
			if ident, ok := node.Object.(*ast.Identifier); ok {
				if err := in.rebind(ident.Value, result); err != nil {
					return err
				}
			}
			return result
		}
	case *object.String:
		if node.Method == "chars" {
			if len(args) != 0 {
				return newError("String.chars() expects no arguments")
			}
			chars := make([]object.Object, 0, len(recv.Value))
			for _, r := range recv.Value {
				chars = append(chars, &object.String{Value: string(r)})
			}
			return &object.Array{Elements: chars}
		}
	}
	return newError("Method %s not supported for this type", node.Method)
}

// rebind overwrites an Identifier binding, honoring const-ness the way Assign does.
func (in *Interpreter) rebind(name string, val object.Object) *object.Error {
	if existing, ok := in.Env.Get(name); ok {
		if _, isConst := existing.(*object.ConstValue); isConst {
			return newError("Cannot modify constant array %s", name)
		}
	}
	in.Env.Set(name, val)
	return nil
}

// ------------------------------------------------------------------------------------------
// ASSIGNMENT / LET
// ------------------------------------------------------------------------------------------

func (in *Interpreter) evalAssign(node *ast.AssignExpression) object.Object {
	rightVal := in.eval(node.Right)
	if object.IsError(rightVal) {
		return rightVal
	}

	switch left := node.Left.(type) {
	case *ast.Identifier:
		if existing, ok := in.Env.Get(left.Value); ok {
			if _, isConst := existing.(*object.ConstValue); isConst {
				return newError("Cannot reassign constant %s", left.Value)
			}
			if !variantsMatch(existing, rightVal) {
				return newError("Type mismatch for variable %s", left.Value)
			}
		}
		in.Env.Set(left.Value, rightVal)
		return VOID

	case *ast.IndexExpression:
		arrVal := in.eval(left.Array)
		if object.IsError(arrVal) {
			return arrVal
		}
		idxVal := in.eval(left.Index)
		if object.IsError(idxVal) {
			return idxVal
		}
		arr, ok := arrVal.(*object.Array)
		if !ok {
			return newError("Index assignment only supported for arrays with numeric indices")
		}
		idx, ok := idxVal.(*object.Number)
		if !ok {
			return newError("Index assignment only supported for arrays with numeric indices")
		}
		if idx.Value < 0 || idx.Value >= int64(len(arr.Elements)) {
			return newError("Index %d out of bounds for array of length %d", idx.Value, len(arr.Elements))
		}

		ident, isIdent := left.Array.(*ast.Identifier)
		if isIdent {
			if existing, ok := in.Env.Get(ident.Value); ok {
				if _, isConst := existing.(*object.ConstValue); isConst {
					return newError("Cannot modify constant array %s", ident.Value)
				}
			}
		}

		updated := append([]object.Object{}, arr.Elements...)
		updated[idx.Value] = rightVal
		result := &object.Array{Elements: updated}
		if isIdent {
			in.Env.Set(ident.Value, result)
		}
		return result

	default:
		return newError("Assignment to non-identifier or non-index")
	}
}

// variantsMatch implements the reassignment type-stability check: Void accepts anything;
// otherwise both sides must be the same RuntimeValue variant.
func variantsMatch(existing, incoming object.Object) bool {
	if _, ok := existing.(*object.Void); ok {
		return true
	}
	switch existing.(type) {
	case *object.Number:
		_, ok := incoming.(*object.Number)
		return ok
	case *object.Float:
		_, ok := incoming.(*object.Float)
		return ok
	case *object.Boolean:
		_, ok := incoming.(*object.Boolean)
		return ok
	case *object.String:
		_, ok := incoming.(*object.String)
		return ok
	case *object.Array:
		_, ok := incoming.(*object.Array)
		return ok
	case *object.Regex:
		_, ok := incoming.(*object.Regex)
		return ok
	case *object.MatchValue:
		_, ok := incoming.(*object.MatchValue)
		return ok
	case *object.MatchArray:
		_, ok := incoming.(*object.MatchArray)
		return ok
	default:
		return false
	}
}

func (in *Interpreter) evalLet(node *ast.LetStatement) object.Object {
	value := in.eval(node.VarValue)
	if object.IsError(value) {
		return value
	}

	if existing, ok := in.Env.Get(node.Name); ok {
		if _, isConst := existing.(*object.ConstValue); isConst {
			return newError("Cannot reassign constant %s", node.Name)
		}
	}

	if node.VarType != nil && !valueMatchesDeclaredType(value, *node.VarType) {
		return newError("Value does not match declared type for variable %s", node.Name)
	}

	if node.IsConst {
		in.Env.Set(node.Name, &object.ConstValue{Value: value})
	} else {
		in.Env.Set(node.Name, value)
	}
	return VOID
}

// valueMatchesDeclaredType checks a value against an explicit `let NAME: TYPE` annotation.
// MatchValue/MatchArray may also be declared as array, mirroring the grounding interpreter's
// compatibility table. A Regex value matches no declared type.
func valueMatchesDeclaredType(value object.Object, t ast.Type) bool {
	switch t {
	case ast.TypeInt:
		_, ok := value.(*object.Number)
		return ok
	case ast.TypeFloat:
		_, ok := value.(*object.Float)
		return ok
	case ast.TypeBool:
		_, ok := value.(*object.Boolean)
		return ok
	case ast.TypeString:
		_, ok := value.(*object.String)
		return ok
	case ast.TypeArray:
		switch value.(type) {
		case *object.Array, *object.MatchValue, *object.MatchArray:
			return true
		}
		return false
	case ast.TypeVoid:
		_, ok := value.(*object.Void)
		return ok
	default:
		return false
	}
}

// ------------------------------------------------------------------------------------------
// FUNCTIONS
// ------------------------------------------------------------------------------------------

func (in *Interpreter) evalFunctionCall(node *ast.FunctionCall) object.Object {
	entry, ok := in.Functions[node.Name]
	if !ok {
		return newError("Undefined function: %s", node.Name)
	}
	if len(node.Args) != len(entry.Params) {
		return newError("Function %s expects %d arguments, got %d", node.Name, len(entry.Params), len(node.Args))
	}

	args := make([]object.Object, 0, len(node.Args))
	for _, a := range node.Args {
		v := in.eval(a)
		if object.IsError(v) {
			return v
		}
		args = append(args, v)
	}

	callEnv := object.NewEnvironment()
	for i, name := range entry.Params {
		callEnv.Set(name, args[i])
	}

	callInterp := &Interpreter{
		Env:        callEnv,
		Functions:  in.Functions.Clone(),
		ImportRoot: in.ImportRoot,
		Out:        in.Out,
		In:         in.In,
		Rand:       in.Rand,
	}

	result := callInterp.interpretBlock(entry.Body)
	if rv, ok := result.(*object.ReturnValue); ok {
		return rv.Value
	}
	return result
}

// ------------------------------------------------------------------------------------------
// IMPORT
// ------------------------------------------------------------------------------------------

func (in *Interpreter) evalImport(node *ast.ImportStatement) object.Object {
	path := filepath.Join(in.ImportRoot, node.Path)
	contents, err := os.ReadFile(path)
	if err != nil {
		return newError("cannot read import %q: %s", node.Path, err)
	}

	tokens, lexErrs := lexer.Lex(string(contents))
	if len(lexErrs) > 0 {
		return newError("lexical error in import %q: %s", node.Path, lexErrs[0])
	}

	prog, parseErr := parser.New(tokens).ParseProgram()
	if parseErr != nil {
		return newError("parse error in import %q: %s", node.Path, parseErr)
	}

	return in.interpretBlock(prog.Nodes)
}

// ------------------------------------------------------------------------------------------
// I/O BUILTINS
// ------------------------------------------------------------------------------------------

func (in *Interpreter) evalPrint(node *ast.PrintStatement) object.Object {
	val := in.eval(node.Left)
	if object.IsError(val) {
		return val
	}
	fmt.Fprintln(in.Out, renderTopLevel(val))
	return VOID
}

// renderTopLevel is top-level `print`'s rendering: unlike Inspect, a bare String is NOT quoted.
// Every other variant delegates straight to Inspect, which is how arrays and wrappers end up
// quoting their nested strings while the top-level case does not.
func renderTopLevel(val object.Object) string {
	if s, ok := val.(*object.String); ok {
		return s.Value
	}
	return val.Inspect()
}

func (in *Interpreter) evalInput(node *ast.InputExpression) object.Object {
	fmt.Fprint(in.Out, node.Placeholder)
	line, err := in.In.ReadString('\n')
	if err != nil && line == "" {
		return newError("failed to read input: %s", err)
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return &object.String{Value: line}
}

func (in *Interpreter) evalRandom(node *ast.RandomExpression) object.Object {
	leftVal := in.eval(node.Left)
	if object.IsError(leftVal) {
		return leftVal
	}
	rightVal := in.eval(node.Right)
	if object.IsError(rightVal) {
		return rightVal
	}
	l, lok := leftVal.(*object.Number)
	r, rok := rightVal.(*object.Number)
	if !lok || !rok {
		return newError("Random range requires numbers")
	}
	lo, hi := l.Value, r.Value
	if lo > hi {
		lo, hi = hi, lo
	}
	return &object.Number{Value: lo + in.Rand.Int63n(hi-lo+1)}
}

func (in *Interpreter) evalSleep(node *ast.SleepExpression) object.Object {
	val := in.eval(node.Expr)
	if object.IsError(val) {
		return val
	}
	var ms float64
	switch v := val.(type) {
	case *object.Number:
		ms = float64(v.Value)
	case *object.Float:
		ms = v.Value
	default:
		return newError("Sleep function expects a number (milliseconds)")
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return VOID
}

// ------------------------------------------------------------------------------------------
// REGEX
// ------------------------------------------------------------------------------------------

func (in *Interpreter) regexOperands(exprNode, regexNode ast.Node) (string, string, *object.Error) {
	val := in.eval(exprNode)
	if object.IsError(val) {
		return "", "", val.(*object.Error)
	}
	text, ok := val.(*object.String)
	if !ok {
		return "", "", newError("Expected string for compile expression")
	}
	regexVal := in.eval(regexNode)
	if object.IsError(regexVal) {
		return "", "", regexVal.(*object.Error)
	}
	pattern, ok := regexVal.(*object.Regex)
	if !ok {
		return "", "", newError("Expected string for regex pattern")
	}
	return text.Value, pattern.Pattern, nil
}

func (in *Interpreter) evalCompile(node *ast.CompileExpression) object.Object {
	text, pattern, errObj := in.regexOperands(node.Expr, node.Regex)
	if errObj != nil {
		return errObj
	}
	re, err := regexp2.Compile(pattern, 0)
	if err != nil {
		return newError("Invalid regex pattern: %s", err)
	}
	m, err := re.FindStringMatch(text)
	if err != nil {
		return newError("Invalid regex pattern: %s", err)
	}
	if m == nil {
		return VOID
	}
	return &object.MatchValue{Match: object.MatchResult{Text: m.String(), Start: m.Index, End: m.Index + m.Length}}
}

func (in *Interpreter) evalCompileAll(node *ast.CompileAllExpression) object.Object {
	text, pattern, errObj := in.regexOperands(node.Expr, node.Regex)
	if errObj != nil {
		return errObj
	}
	re, err := regexp2.Compile(pattern, 0)
	if err != nil {
		return newError("Invalid regex pattern: %s", err)
	}

	var matches []object.Object
	m, err := re.FindStringMatch(text)
	if err != nil {
		return newError("Invalid regex pattern: %s", err)
	}
	for m != nil {
		matches = append(matches, &object.MatchValue{
			Match: object.MatchResult{Text: m.String(), Start: m.Index, End: m.Index + m.Length},
		})
		m, err = re.FindNextMatch(m)
		if err != nil {
			return newError("Invalid regex pattern: %s", err)
		}
	}
	return &object.Array{Elements: matches}
}

// ------------------------------------------------------------------------------------------
// CONTROL FLOW
// ------------------------------------------------------------------------------------------

func (in *Interpreter) evalIf(node *ast.IfStatement) object.Object {
	cond := in.eval(node.Condition)
	if object.IsError(cond) {
		return cond
	}
	switch c := cond.(type) {
	case *object.Boolean:
		if c.Value {
			return in.interpretBlock(node.Body)
		}
		if node.ElseBody != nil {
			return in.interpretBlock(node.ElseBody)
		}
		return VOID
	case *object.Number:
		// Open question, resolved: only strictly-positive numbers enter the then-branch.
		if c.Value > 0 {
			return in.interpretBlock(node.Body)
		}
		if node.ElseBody != nil {
			return in.interpretBlock(node.ElseBody)
		}
		return VOID
	default:
		return newError("Condition must be boolean")
	}
}

func (in *Interpreter) evalWhile(node *ast.WhileStatement) object.Object {
	for {
		cond := in.eval(node.Condition)
		if object.IsError(cond) {
			return cond
		}
		b, ok := cond.(*object.Boolean)
		if !ok || !b.Value {
			return VOID
		}
		result := in.interpretBlock(node.Body)
		if object.IsError(result) {
			return result
		}
		if _, isReturn := result.(*object.ReturnValue); isReturn {
			return result
		}
	}
}

func (in *Interpreter) evalFor(node *ast.ForStatement) object.Object {
	if v := in.eval(node.Init); object.IsError(v) {
		return v
	}
	for {
		cond := in.eval(node.Condition)
		if object.IsError(cond) {
			return cond
		}
		b, ok := cond.(*object.Boolean)
		if !ok || !b.Value {
			return VOID
		}
		result := in.interpretBlock(node.Body)
		if object.IsError(result) {
			return result
		}
		if _, isReturn := result.(*object.ReturnValue); isReturn {
			return result
		}
		if v := in.eval(node.Increment); object.IsError(v) {
			return v
		}
	}
}

func (in *Interpreter) evalForIn(node *ast.ForInStatement) object.Object {
	iterVal := in.eval(node.Iterable)
	if object.IsError(iterVal) {
		return iterVal
	}
	iterVal = object.Unwrap(iterVal)

	switch it := iterVal.(type) {
	case *object.Array:
		for _, item := range it.Elements {
			in.Env.Set(node.Var, item)
			result := in.interpretBlock(node.Body)
			if object.IsError(result) {
				return result
			}
			if _, isReturn := result.(*object.ReturnValue); isReturn {
				return result
			}
		}
		return VOID
	case *object.Number:
		for i := int64(1); i <= it.Value; i++ {
			in.Env.Set(node.Var, &object.Number{Value: i})
			result := in.interpretBlock(node.Body)
			if object.IsError(result) {
				return result
			}
			if _, isReturn := result.(*object.ReturnValue); isReturn {
				return result
			}
		}
		return VOID
	case *object.String:
		for _, r := range it.Value {
			in.Env.Set(node.Var, &object.String{Value: string(r)})
			result := in.interpretBlock(node.Body)
			if object.IsError(result) {
				return result
			}
			if _, isReturn := result.(*object.ReturnValue); isReturn {
				return result
			}
		}
		return VOID
	default:
		return newError("for..in can only iterate over arrays")
	}
}

func (in *Interpreter) evalUnaryOpTT(node *ast.UnaryOpTT) object.Object {
	ident, ok := node.Var.(*ast.Identifier)
	if !ok {
		return newError("++/-- can only be applied to variables")
	}
	current, ok := in.Env.Get(ident.Value)
	if !ok {
		return newError("Undefined variable: %s", ident.Value)
	}
	num, ok := current.(*object.Number)
	if !ok {
		return newError("Invalid operation %s for type", node.Operator)
	}
	var next int64
	switch node.Operator {
	case "++":
		next = num.Value + 1
	case "--":
		next = num.Value - 1
	default:
		return newError("Invalid operation %s for type", node.Operator)
	}
	result := &object.Number{Value: next}
	in.Env.Set(ident.Value, result)
	return result
}
