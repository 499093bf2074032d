/*
Package ast defines the expression and statement node types produced by the
parser and consumed by the resolver and evaluator. Nodes carry no behavior
(golox is a tagged union matched structurally by resolver/eval type
switches, not a Visitor hierarchy) — just the data vocabulary and a stable
per-node identity.
*/
package ast

import (
	"github.com/google/uuid"

	"github.com/sdecook/golox/lexer"
)

// Token is the token type shared between the lexer and the AST; re-exported
// here so callers only need to import ast alongside parser/resolver/eval.
type Token = lexer.Token

// NodeID is a stable identity assigned to select expression nodes at parse
// time (variable uses, assignments, this/super, class declarations). The
// resolver keys its depth/slot maps by NodeID instead of hashing AST
// pointers, so the maps carry no reference back into the tree.
type NodeID int

// Expr is any expression node. All concrete expression types have an ID,
// even when the resolver never populates an entry for it.
type Expr interface {
	ID() NodeID
	exprNode()
}

// Stmt is any statement node.
type Stmt interface {
	stmtNode()
}

// Base carries the stable NodeID every expression embeds. Exported so the
// parser (a different package) can construct node literals directly.
type Base struct {
	Id NodeID
}

func (b Base) ID() NodeID { return b.Id }

// --- Expressions -----------------------------------------------------------

type Literal struct {
	Base
	Value any // nil | float64 | string | bool
}

type Grouping struct {
	Base
	Expr Expr
}

type Unary struct {
	Base
	Op    Token
	Right Expr
}

type Binary struct {
	Base
	Left  Expr
	Op    Token
	Right Expr
}

type Logical struct {
	Base
	Left  Expr
	Op    Token
	Right Expr
}

type Conditional struct {
	Base
	Cond Expr
	Then Expr
	Else Expr
}

// Comma is the "," expression (expression → comma → assignment (","
// assignment)*): it evaluates Left for effect and yields Right.
type Comma struct {
	Base
	Left  Expr
	Right Expr
}

type Variable struct {
	Base
	Name Token
}

type Assign struct {
	Base
	Name  Token
	Value Expr
}

type Call struct {
	Base
	Callee Expr
	Paren  Token
	Args   []Expr
}

type Get struct {
	Base
	Object Expr
	Name   Token
}

type Set struct {
	Base
	Object Expr
	Name   Token
	Value  Expr
}

type This struct {
	Base
	Keyword Token
}

type Super struct {
	Base
	Keyword Token
	Method  Token
}

// FunctionKind distinguishes how a Function expression is used, which the
// resolver needs to enforce method-only / initializer-only rules.
type FunctionKind int

const (
	FunctionPlain FunctionKind = iota
	FunctionMethod
	FunctionInitializer
	FunctionGetter
)

// Function is both the anonymous function-expression form ("fun (a,b){}")
// and the body of a named function/method declaration.
type Function struct {
	Base
	Name   string // "" for anonymous function expressions
	Params []Token
	Body   []Stmt
	Kind   FunctionKind
}

func (*Literal) exprNode()     {}
func (*Grouping) exprNode()    {}
func (*Unary) exprNode()       {}
func (*Binary) exprNode()      {}
func (*Logical) exprNode()     {}
func (*Conditional) exprNode() {}
func (*Comma) exprNode()       {}
func (*Variable) exprNode()    {}
func (*Assign) exprNode()      {}
func (*Call) exprNode()        {}
func (*Get) exprNode()         {}
func (*Set) exprNode()         {}
func (*This) exprNode()        {}
func (*Super) exprNode()       {}
func (*Function) exprNode()    {}

// --- Statements --------------------------------------------------------

type ExpressionStmt struct {
	Expr Expr
}

type Var struct {
	Name        Token
	Initializer Expr // nil if absent
}

type Block struct {
	Stmts []Stmt
}

type If struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

type While struct {
	Cond Expr
	Body Stmt
}

type Break struct {
	Keyword Token
}

type Fun struct {
	Name     Token
	Function *Function
}

type Return struct {
	Keyword Token
	Value   Expr // nil if bare "return;"
}

type Class struct {
	Base
	Name         Token
	Superclass   *Variable // nil if none
	Methods      []*Fun
	ClassMethods []*Fun
}

func (*ExpressionStmt) stmtNode() {}
func (*Var) stmtNode()            {}
func (*Block) stmtNode()          {}
func (*If) stmtNode()             {}
func (*While) stmtNode()          {}
func (*Break) stmtNode()          {}
func (*Fun) stmtNode()            {}
func (*Return) stmtNode()         {}
func (*Class) stmtNode()          {}

// Program is the root of a parsed source unit.
//
// RunID stamps every parse with a fresh identifier, independent of source
// content; the REPL's "/ast" introspection command uses it to label which
// parse a printed tree came from when scrollback holds several.
type Program struct {
	Stmts []Stmt
	RunID uuid.UUID
}

// NewProgram wraps stmts into a Program with a fresh RunID.
func NewProgram(stmts []Stmt) *Program {
	return &Program{Stmts: stmts, RunID: uuid.New()}
}
