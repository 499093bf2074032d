/*
Package resolver performs the single static pass between parsing and
evaluation: it walks the AST once, assigning every local variable use
(and `this`/`super`/class-declaration node) a (depth, slot) pair the
evaluator can use to reach straight into the right environment.Frame
slot instead of hashing a name at every enclosing scope. It also
reports the static errors the grammar alone cannot catch — redeclared
locals, reads of a variable in its own initializer, misplaced
`return`/`this`/`super`, self-inheriting classes, and unused locals.

The depth/slot scheme generalizes sam-decook-lox's name-only resolver
(which records only a hop count and leaves the target environment to
search by name again): here every scope tracks a slot counter that
mirrors environment.Frame.Define's append-and-return-index behavior,
so depth+slot together address a value with no further lookup.
*/
package resolver

import (
	"fmt"

	"github.com/sdecook/golox/ast"
)

// Diagnostic is a single resolver error, formatted identically to a
// parser Diagnostic since both are static errors reported the same
// way to the user.
type Diagnostic struct {
	Line    int
	Where   string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

type state int

const (
	declared state = iota
	defined
	read
)

type entry struct {
	Token ast.Token
	Slot  int
	State state
}

// scope is one lexical block's bindings, insertion-ordered so unused
// locals are reported in declaration order at scope exit.
type scope struct {
	order    []string
	entries  map[string]*entry
	nextSlot int
}

func newScope() *scope {
	return &scope{entries: make(map[string]*entry)}
}

type funcContext int

const (
	ctxNone funcContext = iota
	ctxFunction
	ctxMethod
	ctxInitializer
	ctxGetter
)

type classContext int

const (
	classNone classContext = iota
	classClass
	classSubclass
)

// Resolver walks a parsed program once, producing per-node (depth,
// slot) resolutions and a list of static diagnostics.
type Resolver struct {
	scopes      []*scope
	currentFn   funcContext
	currentCls  classContext
	Diagnostics []Diagnostic

	Depth map[ast.NodeID]int
	Slot  map[ast.NodeID]int
}

// New creates an empty Resolver ready to resolve one program.
func New() *Resolver {
	return &Resolver{
		Depth: make(map[ast.NodeID]int),
		Slot:  make(map[ast.NodeID]int),
	}
}

func (r *Resolver) HasErrors() bool { return len(r.Diagnostics) > 0 }

// Resolve walks every top-level statement of program.
func (r *Resolver) Resolve(program *ast.Program) {
	r.resolveStmts(program.Stmts)
}

func (r *Resolver) errorAt(tok ast.Token, message string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Lexeme == "" {
		where = " at end"
	}
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Line: tok.Line, Where: where, Message: message})
}

// --- scope management -------------------------------------------------------

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, newScope())
}

// endScope pops the current scope, reporting every local that was
// declared but never read. The scope's own bookkeeping (synthetic
// "this"/"super" bindings) is exempted by the caller marking those
// entries read up front.
func (r *Resolver) endScope() {
	top := r.scopes[len(r.scopes)-1]
	for _, name := range top.order {
		e := top.entries[name]
		if e.State != read {
			r.errorAt(e.Token, "Local variable '"+name+"' is never used.")
		}
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare introduces name in the innermost scope. A top-level
// declaration (no open scopes) is a no-op here — globals are resolved
// by name at runtime, never given a slot.
func (r *Resolver) declare(tok ast.Token) {
	if len(r.scopes) == 0 {
		return
	}
	top := r.scopes[len(r.scopes)-1]
	name := tok.Lexeme
	if _, ok := top.entries[name]; ok {
		r.errorAt(tok, "Already a variable named '"+name+"' in this scope.")
		return
	}
	top.entries[name] = &entry{Token: tok, Slot: top.nextSlot}
	top.order = append(top.order, name)
	top.nextSlot++
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	top := r.scopes[len(r.scopes)-1]
	if e, ok := top.entries[name]; ok {
		e.State = defined
	}
}

// declareSynthetic binds a resolver-internal name ("this", "super")
// directly as defined and already read, so it never triggers the
// unused-local diagnostic aimed at user-authored bindings.
func (r *Resolver) declareSynthetic(name string) {
	top := r.scopes[len(r.scopes)-1]
	top.entries[name] = &entry{State: read, Slot: top.nextSlot}
	top.nextSlot++
}

// resolveLocal walks scopes from innermost out; on a hit it records
// (depth, slot) against id and marks the binding read.
func (r *Resolver) resolveLocal(id ast.NodeID, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if e, ok := r.scopes[i].entries[name]; ok {
			e.State = read
			r.Depth[id] = len(r.scopes) - 1 - i
			r.Slot[id] = e.Slot
			return
		}
	}
	// Not found in any local scope: resolved to globals at runtime.
}

// --- statements --------------------------------------------------------

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(n.Expr)
	case *ast.Var:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpr(n.Initializer)
		}
		r.define(n.Name.Lexeme)
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(n.Stmts)
		r.endScope()
	case *ast.If:
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}
	case *ast.While:
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Body)
	case *ast.Break:
		// Loop-outside-break is a parse-time check; nothing to resolve.
	case *ast.Fun:
		r.declare(n.Name)
		r.define(n.Name.Lexeme)
		r.resolveFunction(n.Function, ctxFunction)
	case *ast.Return:
		r.resolveReturn(n)
	case *ast.Class:
		r.resolveClass(n)
	default:
		panic(fmt.Sprintf("resolver: unhandled statement %T", s))
	}
}

func (r *Resolver) resolveReturn(n *ast.Return) {
	if r.currentFn == ctxNone {
		r.errorAt(n.Keyword, "Can't return from top-level code.")
	}
	if n.Value != nil {
		if r.currentFn == ctxInitializer {
			r.errorAt(n.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(n.Value)
	}
}

func (r *Resolver) resolveClass(n *ast.Class) {
	enclosingClass := r.currentCls
	r.currentCls = classClass

	r.declare(n.Name)
	r.define(n.Name.Lexeme)

	if n.Superclass != nil {
		if n.Superclass.Name.Lexeme == n.Name.Lexeme {
			r.errorAt(n.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentCls = classSubclass
		r.resolveExpr(n.Superclass)

		r.beginScope()
		r.declareSynthetic("super")
	}

	r.beginScope()
	r.declareSynthetic("this")

	for _, m := range n.Methods {
		r.resolveMethod(m)
	}
	for _, m := range n.ClassMethods {
		r.resolveMethod(m)
	}

	r.endScope()

	if n.Superclass != nil {
		r.endScope()
	}

	r.currentCls = enclosingClass
	r.resolveLocal(n.ID(), n.Name.Lexeme)
}

// resolveMethod assigns the method's runtime Kind (the resolver is the
// one place that knows a method is named "init") and resolves its body
// under the matching function context.
func (r *Resolver) resolveMethod(m *ast.Fun) {
	ctx := ctxMethod
	switch m.Function.Kind {
	case ast.FunctionGetter:
		ctx = ctxGetter
	default:
		if m.Name.Lexeme == "init" {
			m.Function.Kind = ast.FunctionInitializer
			ctx = ctxInitializer
		} else {
			m.Function.Kind = ast.FunctionMethod
		}
	}
	r.resolveFunction(m.Function, ctx)
}

func (r *Resolver) resolveFunction(fn *ast.Function, ctx funcContext) {
	enclosingFn := r.currentFn
	r.currentFn = ctx

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p.Lexeme)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFn = enclosingFn
}

// --- expressions -------------------------------------------------------

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Literal:
	case *ast.Grouping:
		r.resolveExpr(n.Expr)
	case *ast.Unary:
		r.resolveExpr(n.Right)
	case *ast.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Conditional:
		r.resolveExpr(n.Cond)
		r.resolveExpr(n.Then)
		r.resolveExpr(n.Else)
	case *ast.Comma:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Variable:
		r.resolveVariable(n)
	case *ast.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n.ID(), n.Name.Lexeme)
	case *ast.Call:
		r.resolveExpr(n.Callee)
		for _, a := range n.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(n.Object)
	case *ast.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)
	case *ast.This:
		r.resolveThis(n)
	case *ast.Super:
		r.resolveSuper(n)
	case *ast.Function:
		r.resolveFunction(n, ctxFunction)
	default:
		panic(fmt.Sprintf("resolver: unhandled expression %T", e))
	}
}

func (r *Resolver) resolveVariable(n *ast.Variable) {
	if len(r.scopes) > 0 {
		top := r.scopes[len(r.scopes)-1]
		if e, ok := top.entries[n.Name.Lexeme]; ok && e.State == declared {
			r.errorAt(n.Name, "Can't read local variable '"+n.Name.Lexeme+"' in its own initializer.")
		}
	}
	r.resolveLocal(n.ID(), n.Name.Lexeme)
}

func (r *Resolver) resolveThis(n *ast.This) {
	if r.currentCls == classNone {
		r.errorAt(n.Keyword, "Can't use 'this' outside of a class.")
		return
	}
	r.resolveLocal(n.ID(), "this")
}

func (r *Resolver) resolveSuper(n *ast.Super) {
	switch r.currentCls {
	case classNone:
		r.errorAt(n.Keyword, "Can't use 'super' outside of a class.")
		return
	case classClass:
		r.errorAt(n.Keyword, "Can't use 'super' in a class with no superclass.")
		return
	}
	r.resolveLocal(n.ID(), "super")
}
