/*
Package eval walks a resolved AST and executes it: a tree-walking
evaluator holding the global namespace, the current environment frame
(absent at the top level, meaning only globals are in play), and the
resolver's depth/slot maps.

Unlike sam-decook-lox's Interpreter (which re-searches an Environment
by name on every variable access), lookups here go straight to a slot
once the resolver has supplied (depth, slot); only a name with no
resolver entry falls through to the name-keyed globals map.
*/
package eval

import (
	"fmt"
	"io"

	"github.com/sdecook/golox/ast"
	"github.com/sdecook/golox/callable"
	"github.com/sdecook/golox/environment"
	"github.com/sdecook/golox/value"
)

// ctrlKind distinguishes the two non-local unwinds a statement can
// produce. Neither is an error: they are structured control signals
// threaded through return values, never through panic/recover.
type ctrlKind int

const (
	ctrlNone ctrlKind = iota
	ctrlBreak
	ctrlReturn
)

type ctrl struct {
	kind  ctrlKind
	value value.Value
}

// Interpreter executes a resolved program. Depth and Slot are the
// maps produced by the resolver, keyed by ast.NodeID.
type Interpreter struct {
	Globals *environment.Globals
	frame   *environment.Frame

	Depth map[ast.NodeID]int
	Slot  map[ast.NodeID]int

	// REPL is true while evaluating a line typed at the prompt: an
	// ExpressionStmt that is not an assignment then has its value
	// echoed to Stdout.
	REPL bool

	Stdout io.Writer
	Stdin  io.Reader
}

// New creates an Interpreter over the given resolution maps, with
// globals pre-populated by the stdlib package's registration.
func New(globals *environment.Globals, depth, slot map[ast.NodeID]int) *Interpreter {
	return &Interpreter{Globals: globals, Depth: depth, Slot: slot}
}

// Run executes every top-level statement of program, applying the
// REPL auto-print rule (if enabled) only at this top level — a nested
// block or function body never echoes its expression statements.
func (it *Interpreter) Run(program *ast.Program) *callable.RuntimeError {
	for _, s := range program.Stmts {
		if it.REPL {
			if es, ok := s.(*ast.ExpressionStmt); ok {
				if err := it.execReplExpr(es); err != nil {
					return err
				}
				continue
			}
		}
		if _, err := it.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) execReplExpr(es *ast.ExpressionStmt) *callable.RuntimeError {
	v, err := it.evalExpr(es.Expr)
	if err != nil {
		return err
	}
	switch es.Expr.(type) {
	case *ast.Assign, *ast.Set:
		// assignments are not echoed
	default:
		fmt.Fprintln(it.Stdout, v.String())
	}
	return nil
}

// ExecuteBlock implements callable.Interpreter: it runs stmts with
// frame installed as the current environment, translating a caught
// return unwind into (value, true, nil).
func (it *Interpreter) ExecuteBlock(stmts []ast.Stmt, frame *environment.Frame) (value.Value, bool, *callable.RuntimeError) {
	previous := it.frame
	it.frame = frame
	defer func() { it.frame = previous }()

	c, err := it.execStmts(stmts)
	if err != nil {
		return nil, false, err
	}
	if c.kind == ctrlReturn {
		return c.value, true, nil
	}
	return nil, false, nil
}

func (it *Interpreter) execStmts(stmts []ast.Stmt) (ctrl, *callable.RuntimeError) {
	for _, s := range stmts {
		c, err := it.execStmt(s)
		if err != nil {
			return ctrl{}, err
		}
		if c.kind != ctrlNone {
			return c, nil
		}
	}
	return ctrl{}, nil
}

func (it *Interpreter) execStmt(s ast.Stmt) (ctrl, *callable.RuntimeError) {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		_, err := it.evalExpr(n.Expr)
		return ctrl{}, err
	case *ast.Var:
		return ctrl{}, it.execVar(n)
	case *ast.Block:
		return it.execBlock(n.Stmts)
	case *ast.If:
		return it.execIf(n)
	case *ast.While:
		return it.execWhile(n)
	case *ast.Break:
		return ctrl{kind: ctrlBreak}, nil
	case *ast.Return:
		return it.execReturn(n)
	case *ast.Fun:
		return ctrl{}, it.execFun(n)
	case *ast.Class:
		return ctrl{}, it.execClass(n)
	default:
		panic(fmt.Sprintf("eval: unhandled statement %T", s))
	}
}

func (it *Interpreter) execVar(n *ast.Var) *callable.RuntimeError {
	v := value.Value(environment.Uninitialized)
	if n.Initializer != nil {
		vv, err := it.evalExpr(n.Initializer)
		if err != nil {
			return err
		}
		v = vv
	}
	it.define(n.Name.Lexeme, v)
	return nil
}

// define binds name in the current frame, or in globals when no frame
// is open (top level).
func (it *Interpreter) define(name string, v value.Value) {
	if it.frame != nil {
		it.frame.Define(v)
		return
	}
	it.Globals.Define(name, v)
}

func (it *Interpreter) execBlock(stmts []ast.Stmt) (ctrl, *callable.RuntimeError) {
	previous := it.frame
	it.frame = environment.New(previous)
	defer func() { it.frame = previous }()
	return it.execStmts(stmts)
}

func (it *Interpreter) execIf(n *ast.If) (ctrl, *callable.RuntimeError) {
	cond, err := it.evalExpr(n.Cond)
	if err != nil {
		return ctrl{}, err
	}
	if cond.Truthy() {
		return it.execStmt(n.Then)
	}
	if n.Else != nil {
		return it.execStmt(n.Else)
	}
	return ctrl{}, nil
}

func (it *Interpreter) execWhile(n *ast.While) (ctrl, *callable.RuntimeError) {
	for {
		cond, err := it.evalExpr(n.Cond)
		if err != nil {
			return ctrl{}, err
		}
		if !cond.Truthy() {
			return ctrl{}, nil
		}

		c, err := it.execStmt(n.Body)
		if err != nil {
			return ctrl{}, err
		}
		switch c.kind {
		case ctrlBreak:
			return ctrl{}, nil
		case ctrlReturn:
			return c, nil
		}
	}
}

func (it *Interpreter) execReturn(n *ast.Return) (ctrl, *callable.RuntimeError) {
	v := value.Value(value.NilValue)
	if n.Value != nil {
		vv, err := it.evalExpr(n.Value)
		if err != nil {
			return ctrl{}, err
		}
		v = vv
	}
	return ctrl{kind: ctrlReturn, value: v}, nil
}

func (it *Interpreter) execFun(n *ast.Fun) *callable.RuntimeError {
	fn := callable.New(n.Function, it.frame, n.Function.Kind)
	it.define(n.Name.Lexeme, fn)
	return nil
}

// execClass builds the class's method table and a synthesized
// metaclass holding its class methods, opening an extra "super"
// frame around method closures when the class has a superclass, then
// assigns the finished class into the slot reserved for its own name.
func (it *Interpreter) execClass(n *ast.Class) *callable.RuntimeError {
	var superclass *callable.Class
	if n.Superclass != nil {
		v, err := it.evalExpr(n.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*callable.Class)
		if !ok {
			return &callable.RuntimeError{Token: n.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	it.define(n.Name.Lexeme, environment.Uninitialized)

	previous := it.frame
	if superclass != nil {
		it.frame = environment.New(previous)
		it.frame.Define(superclass)
	}

	methods := make(map[string]*callable.Function, len(n.Methods))
	for _, m := range n.Methods {
		methods[m.Name.Lexeme] = callable.New(m.Function, it.frame, m.Function.Kind)
	}
	classMethods := make(map[string]*callable.Function, len(n.ClassMethods))
	for _, m := range n.ClassMethods {
		classMethods[m.Name.Lexeme] = callable.New(m.Function, it.frame, m.Function.Kind)
	}

	class := callable.NewClass(n.Name.Lexeme, superclass, methods)
	var metaSuper *callable.Class
	if superclass != nil {
		metaSuper = superclass.Metaclass
	}
	class.Metaclass = callable.NewClass(n.Name.Lexeme+" metaclass", metaSuper, classMethods)

	it.frame = previous

	if depth, ok := it.Depth[n.ID()]; ok {
		it.frame.AssignAt(depth, it.Slot[n.ID()], class)
	} else {
		it.Globals.Define(n.Name.Lexeme, class)
	}
	return nil
}
