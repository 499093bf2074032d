package ast

import (
	"bytes"
	"fmt"
)

const printIndentSize = 2

// Print renders program as an indented tree, one node per line. It exists
// for the REPL's "/ast" introspection command and for tests asserting
// parser shape; nothing in eval or resolver depends on it.
func Print(program *Program) string {
	p := &printer{}
	for _, s := range program.Stmts {
		p.stmt(s)
	}
	return p.buf.String()
}

type printer struct {
	buf    bytes.Buffer
	indent int
}

func (p *printer) line(format string, args ...any) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteByte(' ')
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *printer) nested(f func()) {
	p.indent += printIndentSize
	f()
	p.indent -= printIndentSize
}

func (p *printer) stmt(s Stmt) {
	switch n := s.(type) {
	case *ExpressionStmt:
		p.line("ExpressionStmt")
		p.nested(func() { p.expr(n.Expr) })
	case *Var:
		p.line("Var %s", n.Name.Lexeme)
		if n.Initializer != nil {
			p.nested(func() { p.expr(n.Initializer) })
		}
	case *Block:
		p.line("Block")
		p.nested(func() {
			for _, st := range n.Stmts {
				p.stmt(st)
			}
		})
	case *If:
		p.line("If")
		p.nested(func() {
			p.expr(n.Cond)
			p.stmt(n.Then)
			if n.Else != nil {
				p.stmt(n.Else)
			}
		})
	case *While:
		p.line("While")
		p.nested(func() {
			p.expr(n.Cond)
			p.stmt(n.Body)
		})
	case *Break:
		p.line("Break")
	case *Fun:
		p.line("Fun %s", n.Name.Lexeme)
		p.nested(func() { p.expr(n.Function) })
	case *Return:
		p.line("Return")
		if n.Value != nil {
			p.nested(func() { p.expr(n.Value) })
		}
	case *Class:
		p.line("Class %s", n.Name.Lexeme)
		p.nested(func() {
			if n.Superclass != nil {
				p.line("Superclass %s", n.Superclass.Name.Lexeme)
			}
			for _, m := range n.Methods {
				p.stmt(m)
			}
			for _, m := range n.ClassMethods {
				p.stmt(m)
			}
		})
	default:
		p.line("<unknown stmt %T>", s)
	}
}

func (p *printer) expr(e Expr) {
	switch n := e.(type) {
	case *Literal:
		p.line("Literal %v", n.Value)
	case *Grouping:
		p.line("Grouping")
		p.nested(func() { p.expr(n.Expr) })
	case *Unary:
		p.line("Unary %s", n.Op.Lexeme)
		p.nested(func() { p.expr(n.Right) })
	case *Binary:
		p.line("Binary %s", n.Op.Lexeme)
		p.nested(func() {
			p.expr(n.Left)
			p.expr(n.Right)
		})
	case *Logical:
		p.line("Logical %s", n.Op.Lexeme)
		p.nested(func() {
			p.expr(n.Left)
			p.expr(n.Right)
		})
	case *Conditional:
		p.line("Conditional")
		p.nested(func() {
			p.expr(n.Cond)
			p.expr(n.Then)
			p.expr(n.Else)
		})
	case *Comma:
		p.line("Comma")
		p.nested(func() {
			p.expr(n.Left)
			p.expr(n.Right)
		})
	case *Variable:
		p.line("Variable %s", n.Name.Lexeme)
	case *Assign:
		p.line("Assign %s", n.Name.Lexeme)
		p.nested(func() { p.expr(n.Value) })
	case *Call:
		p.line("Call")
		p.nested(func() {
			p.expr(n.Callee)
			for _, a := range n.Args {
				p.expr(a)
			}
		})
	case *Get:
		p.line("Get %s", n.Name.Lexeme)
		p.nested(func() { p.expr(n.Object) })
	case *Set:
		p.line("Set %s", n.Name.Lexeme)
		p.nested(func() {
			p.expr(n.Object)
			p.expr(n.Value)
		})
	case *This:
		p.line("This")
	case *Super:
		p.line("Super %s", n.Method.Lexeme)
	case *Function:
		p.line("Function %s", n.Name)
		p.nested(func() {
			for _, s := range n.Body {
				p.stmt(s)
			}
		})
	default:
		p.line("<unknown expr %T>", e)
	}
}
