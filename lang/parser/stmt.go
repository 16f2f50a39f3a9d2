package parser

import (
	"github.com/mna/nenuphar/lang/ast"
	"github.com/mna/nenuphar/lang/token"
)

// parseStmtsUntil parses statements until the current token is one of end
// (exclusive) or EOF.
func (p *parser) parseStmtsUntil(end ...token.Token) []ast.Stmt {
	var stmts []ast.Stmt
	for p.tok != token.EOF && !oneOf(p.tok, end) {
		stmts = append(stmts, p.parseStmt())
	}
	return stmts
}

func oneOf(tok token.Token, set []token.Token) bool {
	for _, t := range set {
		if tok == t {
			return true
		}
	}
	return false
}

// parseStmt parses a single statement. Errors are not recovered here: a
// malformed statement unwinds to the enclosing parseDecl, which
// synchronizes at the declaration boundary (spec §4.2 "Failure modes").
func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.VAR:
		return p.parseVarDecl()
	case token.RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseIfStmt() *ast.IfStmt {
	start := p.expect(token.IF)
	cond := p.parseExpr()
	p.expect(token.THEN)
	then := p.parseStmtsUntil(token.ELSE, token.END)

	var els []ast.Stmt
	if p.accept(token.ELSE) {
		els = p.parseStmtsUntil(token.END)
	}
	end := p.expect(token.END)

	return &ast.IfStmt{Start: start, Cond: cond, Then: then, Else: els, End: end}
}

func (p *parser) parseWhileStmt() *ast.WhileLoop {
	start := p.expect(token.WHILE)
	cond := p.parseExpr()
	p.expect(token.THEN)
	body := p.parseStmtsUntil(token.END)
	end := p.expect(token.END)

	return &ast.WhileLoop{Start: start, Cond: cond, Body: body, End: end}
}

func (p *parser) parseVarDecl() *ast.VarDeclStmt {
	start := p.expect(token.VAR)
	name := p.val.Raw
	p.expect(token.IDENT)
	p.expect(token.COLON)
	typ := p.parseType()

	var init ast.Expr
	if p.accept(token.ASSIGN) {
		init = p.parseExpr()
	}
	end := p.val.Pos
	p.accept(token.SEMI)

	return &ast.VarDeclStmt{Start: start, Name: name, Type: typ, Initializer: init, End: end}
}

func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.expect(token.RETURN)
	var value ast.Expr
	if p.tok != token.SEMI && p.tok != token.END && p.tok != token.ELSE && p.tok != token.EOF {
		value = p.parseExpr()
	}
	end := p.val.Pos
	p.accept(token.SEMI)

	return &ast.ReturnStmt{Start: start, Value: value, End: end}
}

func (p *parser) parseExprStmt() *ast.ExprStmt {
	x := p.parseExpr()
	p.accept(token.SEMI)
	return &ast.ExprStmt{X: x}
}
