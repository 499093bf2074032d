/*
Package callable defines everything in golox that can be invoked with
"(...)": user-defined functions and methods, classes (which construct
instances), bound methods, and native functions — plus the small
interface the eval package implements so this package can run a
function body without importing eval back (which would cycle, since
eval needs these types as the callable values it evaluates Call
expressions into).
*/
package callable

import (
	"fmt"

	"github.com/sdecook/golox/ast"
	"github.com/sdecook/golox/environment"
	"github.com/sdecook/golox/value"
)

// RuntimeError is the single runtime-error value raised by wrong
// operand types, arity mismatches, undefined variables, division by
// zero, and the other runtime faults spec'd for the evaluator. It
// carries the offending token so the message can be sourced back to a
// line, and is distinct from the break/return/parse-error unwinds.
type RuntimeError struct {
	Token   ast.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] Error at '%s' : %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

// Interpreter is the slice of eval.Interpreter that a function body
// needs to run: execute a sequence of statements against a given
// frame, reporting whether a return unwind was caught and, if so,
// its value.
type Interpreter interface {
	ExecuteBlock(stmts []ast.Stmt, frame *environment.Frame) (ret value.Value, returned bool, rerr *RuntimeError)
}

// Callable is anything invocable from a Call expression.
type Callable interface {
	Arity() int
	Call(interp Interpreter, args []value.Value) (value.Value, *RuntimeError)
}

// Runtime value-type tags for the callable-related values, sharing
// value.Type's namespace.
const (
	FunctionType value.Type = "function"
	ClassType    value.Type = "class"
	InstanceType value.Type = "instance"
	NativeType   value.Type = "native function"
)
