/*
Package parser implements a recursive-descent parser with error recovery
over the golox grammar, producing an ast.Program.
*/
package parser

import (
	"fmt"

	"github.com/sdecook/golox/ast"
	"github.com/sdecook/golox/lexer"
)

// Diagnostic is a single static (syntax) error: a line, an offending
// location description, and a message, formatted per spec as
// "[line N] Error <where>: <message>".
type Diagnostic struct {
	Line    int
	Where   string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// parseError unwinds a single declaration so the caller can synchronize to
// the next statement boundary. It is a parser-internal control signal, kept
// distinct from Diagnostic (the thing actually reported to the user) and
// from runtime errors raised later by eval.
type parseError struct{}

// Parser consumes a flat token slice and produces statements, collecting
// diagnostics instead of stopping at the first syntax error.
type Parser struct {
	tokens    []lexer.Token
	pos       int
	nextID    ast.NodeID
	loopDepth int

	Diagnostics []Diagnostic
}

// New creates a Parser over an already-scanned token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) newID() ast.NodeID {
	id := p.nextID
	p.nextID++
	return id
}

// Parse consumes the whole token stream and returns the resulting program.
// HasErrors reports whether any statement failed to parse; per spec,
// resolution and evaluation of a run with static errors are skipped.
func (p *Parser) Parse() *ast.Program {
	var stmts []ast.Stmt
	for !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return ast.NewProgram(stmts)
}

func (p *Parser) HasErrors() bool { return len(p.Diagnostics) > 0 }

// declaration parses one top-level or block-level declaration, recovering
// to the next statement boundary if a parseError unwinds through it.
func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(lexer.CLASS):
		return p.classDecl()
	case p.match(lexer.FUN):
		return p.funDecl("function")
	case p.match(lexer.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() ast.Stmt {
	name := p.consume(lexer.IDENTIFIER, "Expect class name.")

	var superclass *ast.Variable
	if p.match(lexer.LESS) {
		p.consume(lexer.IDENTIFIER, "Expect superclass name.")
		superclass = &ast.Variable{Base: p.b(), Name: p.previous()}
	}

	p.consume(lexer.LEFT_BRACE, "Expect '{' before class body.")

	var methods, classMethods []*ast.Fun
	for !p.check(lexer.RIGHT_BRACE) && !p.atEnd() {
		isClassMethod := p.match(lexer.CLASS)
		method := p.funDecl("method").(*ast.Fun)
		if isClassMethod {
			classMethods = append(classMethods, method)
		} else {
			methods = append(methods, method)
		}
	}

	p.consume(lexer.RIGHT_BRACE, "Expect '}' after class body.")

	return &ast.Class{
		Base:         p.b(),
		Name:         name,
		Superclass:   superclass,
		Methods:      methods,
		ClassMethods: classMethods,
	}
}

// funDecl parses "fun" IDENT functionBody at the top level, or a single
// "function" production (IDENT functionBody) inside a class body, where
// kind distinguishes the two call sites only for error messages.
func (p *Parser) funDecl(kind string) ast.Stmt {
	name := p.consume(lexer.IDENTIFIER, "Expect "+kind+" name.")
	fn := p.functionBody(name.Lexeme)
	return &ast.Fun{Name: name, Function: fn}
}

// functionBody parses the parameter list (which may be entirely absent,
// making the declaration a getter) and the block body.
func (p *Parser) functionBody(name string) *ast.Function {
	var params []lexer.Token
	kind := ast.FunctionGetter

	if p.match(lexer.LEFT_PAREN) {
		kind = ast.FunctionPlain
		if !p.check(lexer.RIGHT_PAREN) {
			for {
				params = append(params, p.consume(lexer.IDENTIFIER, "Expect parameter name."))
				if !p.match(lexer.COMMA) {
					break
				}
			}
		}
		p.consume(lexer.RIGHT_PAREN, "Expect ')' after parameters.")
	}

	p.consume(lexer.LEFT_BRACE, "Expect '{' before "+name+" body.")
	body := p.blockStmts()

	return &ast.Function{
		Name:   name,
		Params: params,
		Body:   body,
		Kind:   kind,
	}
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(lexer.IDENTIFIER, "Expect variable name.")

	var initializer ast.Expr
	if p.match(lexer.EQUAL) {
		initializer = p.expression()
	}

	p.consume(lexer.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Initializer: initializer}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(lexer.IF):
		return p.ifStmt()
	case p.match(lexer.WHILE):
		return p.whileStmt()
	case p.match(lexer.FOR):
		return p.forStmt()
	case p.match(lexer.BREAK):
		return p.breakStmt()
	case p.match(lexer.RETURN):
		return p.returnStmt()
	case p.match(lexer.LEFT_BRACE):
		return &ast.Block{Stmts: p.blockStmts()}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(lexer.LEFT_PAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(lexer.ELSE) {
		elseBranch = p.statement()
	}

	return &ast.If{Cond: cond, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(lexer.LEFT_PAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after condition.")

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	return &ast.While{Cond: cond, Body: body}
}

// forStmt desugars "for (init; cond; incr) body" into
// Block(init?, While(cond?, Block(body, incr?))), per spec.
func (p *Parser) forStmt() ast.Stmt {
	p.consume(lexer.LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(lexer.SEMICOLON):
		// no initializer
	case p.match(lexer.VAR):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(lexer.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(lexer.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(lexer.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(lexer.RIGHT_PAREN, "Expect ')' after for clauses.")

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	if increment != nil {
		body = &ast.Block{Stmts: []ast.Stmt{body, &ast.ExpressionStmt{Expr: increment}}}
	}
	if cond == nil {
		cond = &ast.Literal{Value: true}
	}
	body = &ast.While{Cond: cond, Body: body}

	if initializer != nil {
		body = &ast.Block{Stmts: []ast.Stmt{initializer, body}}
	}
	return body
}

func (p *Parser) breakStmt() ast.Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.errorAt(keyword, "Can't use 'break' outside of a loop.")
	}
	p.consume(lexer.SEMICOLON, "Expect ';' after 'break'.")
	return &ast.Break{Keyword: keyword}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(lexer.SEMICOLON) {
		value = p.expression()
	}
	p.consume(lexer.SEMICOLON, "Expect ';' after return value.")
	return &ast.Return{Keyword: keyword, Value: value}
}

func (p *Parser) blockStmts() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(lexer.RIGHT_BRACE) && !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(lexer.RIGHT_BRACE, "Expect '}' after block.")
	return stmts
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(lexer.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expr: expr}
}

// --- Expressions ---------------------------------------------------------

func (p *Parser) expression() ast.Expr { return p.comma() }

func (p *Parser) comma() ast.Expr {
	expr := p.assignment()
	for p.match(lexer.COMMA) {
		right := p.assignment()
		expr = &ast.Comma{Base: p.b(), Left: expr, Right: right}
	}
	return expr
}

func (p *Parser) assignment() ast.Expr {
	expr := p.conditional()

	if p.match(lexer.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Base: p.b(), Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Base: p.b(), Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target.")
			return value
		}
	}

	return expr
}

func (p *Parser) conditional() ast.Expr {
	expr := p.or()

	if p.match(lexer.QUESTION) {
		then := p.or()
		p.consume(lexer.COLON, "Expect ':' after then-branch of conditional expression.")
		elseExpr := p.conditional()
		return &ast.Conditional{Base: p.b(), Cond: expr, Then: then, Else: elseExpr}
	}

	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(lexer.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Base: p.b(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(lexer.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Base: p.b(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	if expr, ok := p.missingLeftOperand(lexer.EQUAL_EQUAL, lexer.BANG_EQUAL); ok {
		return p.finishEquality(expr)
	}
	return p.finishEquality(p.comparison())
}

func (p *Parser) finishEquality(expr ast.Expr) ast.Expr {
	for p.match(lexer.BANG_EQUAL, lexer.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Base: p.b(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	if expr, ok := p.missingLeftOperand(lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL); ok {
		return p.finishComparison(expr)
	}
	return p.finishComparison(p.term())
}

func (p *Parser) finishComparison(expr ast.Expr) ast.Expr {
	for p.match(lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Base: p.b(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	if expr, ok := p.missingLeftOperand(lexer.PLUS); ok {
		return p.finishTerm(expr)
	}
	return p.finishTerm(p.factor())
}

func (p *Parser) finishTerm(expr ast.Expr) ast.Expr {
	for p.match(lexer.PLUS, lexer.MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Base: p.b(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	if expr, ok := p.missingLeftOperand(lexer.STAR, lexer.SLASH); ok {
		return p.finishFactor(expr)
	}
	return p.finishFactor(p.unary())
}

func (p *Parser) finishFactor(expr ast.Expr) ast.Expr {
	for p.match(lexer.STAR, lexer.SLASH) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Base: p.b(), Left: expr, Op: op, Right: right}
	}
	return expr
}

// missingLeftOperand detects a binary operator appearing where a left
// operand was expected (e.g. leading "+ 5;"): it reports the error,
// consumes a right operand so the parser stays in sync, and returns a nil
// literal so the caller's precedence chain unwinds cleanly instead of
// panicking.
func (p *Parser) missingLeftOperand(kinds ...lexer.Kind) (ast.Expr, bool) {
	if !p.check(kinds...) {
		return nil, false
	}
	op := p.advance()
	p.errorAt(op, "Missing left-hand operand for '"+op.Lexeme+"'.")
	p.unary() // consume a right operand to keep parsing in sync
	return &ast.Literal{Base: p.b(), Value: nil}, true
}

func (p *Parser) unary() ast.Expr {
	if p.match(lexer.BANG, lexer.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Base: p.b(), Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(lexer.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(lexer.DOT):
			name := p.consume(lexer.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.Get{Base: p.b(), Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(args) >= 255 {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.assignment())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	paren := p.consume(lexer.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.Call{Base: p.b(), Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(lexer.FALSE):
		return &ast.Literal{Base: p.b(), Value: false}
	case p.match(lexer.TRUE):
		return &ast.Literal{Base: p.b(), Value: true}
	case p.match(lexer.NIL):
		return &ast.Literal{Base: p.b(), Value: nil}
	case p.match(lexer.NUMBER, lexer.STRING):
		return &ast.Literal{Base: p.b(), Value: p.previous().Literal}
	case p.match(lexer.THIS):
		return &ast.This{Base: p.b(), Keyword: p.previous()}
	case p.match(lexer.SUPER):
		keyword := p.previous()
		p.consume(lexer.DOT, "Expect '.' after 'super'.")
		method := p.consume(lexer.IDENTIFIER, "Expect superclass method name.")
		return &ast.Super{Base: p.b(), Keyword: keyword, Method: method}
	case p.match(lexer.IDENTIFIER):
		return &ast.Variable{Base: p.b(), Name: p.previous()}
	case p.match(lexer.LEFT_PAREN):
		expr := p.expression()
		p.consume(lexer.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.Grouping{Base: p.b(), Expr: expr}
	case p.match(lexer.FUN):
		return p.functionExpr()
	default:
		p.errorAt(p.peek(), "Expect expression.")
		panic(parseError{})
	}
}

func (p *Parser) functionExpr() ast.Expr {
	fn := p.functionBody("")
	return fn
}

// --- Token-stream helpers --------------------------------------------------

func (p *Parser) match(kinds ...lexer.Kind) bool {
	if p.check(kinds...) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) check(kinds ...lexer.Kind) bool {
	if p.atEnd() {
		return false
	}
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *Parser) advance() lexer.Token {
	if !p.atEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool { return p.peek().Kind == lexer.EOF }

func (p *Parser) peek() lexer.Token { return p.tokens[p.pos] }

// checkNext looks two tokens ahead without consuming; the grammar never
// needs more lookahead than this.
func (p *Parser) checkNext(kind lexer.Kind) bool {
	if p.pos+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.pos+1].Kind == kind
}

func (p *Parser) previous() lexer.Token { return p.tokens[p.pos-1] }

func (p *Parser) consume(kind lexer.Kind, message string) lexer.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	panic(parseError{})
}

func (p *Parser) errorAt(tok lexer.Token, message string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Kind == lexer.EOF {
		where = " at end"
	}
	p.Diagnostics = append(p.Diagnostics, Diagnostic{Line: tok.Line, Where: where, Message: message})
}

// synchronize discards tokens until the next likely statement boundary, so
// that one syntax error doesn't cascade into a flood of spurious ones.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == lexer.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR, lexer.IF,
			lexer.WHILE, lexer.RETURN, lexer.BREAK:
			return
		}
		p.advance()
	}
}

// b is a constructor helper so every node literal can embed a fresh
// ast.Base{Id: p.newID()} with a single call.
func (p *Parser) b() ast.Base { return ast.Base{Id: p.newID()} }
