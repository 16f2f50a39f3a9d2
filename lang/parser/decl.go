package parser

import (
	"github.com/mna/nenuphar/lang/ast"
	"github.com/mna/nenuphar/lang/token"
	"github.com/mna/nenuphar/lang/types"
)

func (p *parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.tok != token.EOF {
		prog.Decls = append(prog.Decls, p.parseDecl())
	}
	return prog
}

// parseDecl parses a single ExternDecl or FuncDecl. On error it recovers at
// the declaration boundary and yields a BadDecl so parsing can continue
// (spec §4.2 "Failure modes").
func (p *parser) parseDecl() (decl ast.Decl) {
	start := p.val.Pos
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.sync()
			decl = &ast.BadDecl{Start: start, End: p.val.Pos}
		}
	}()

	switch p.tok {
	case token.EXTERN:
		return p.parseExternDecl()
	case token.FN, token.FUNCTION:
		return p.parseFuncDecl()
	default:
		p.errorExpected(start, []token.Token{token.EXTERN, token.FN, token.FUNCTION})
		panic(errPanicMode)
	}
}

func (p *parser) parseExternDecl() *ast.FunctionDecl {
	start := p.expect(token.EXTERN)
	name := p.val.Raw
	p.expect(token.IDENT)
	p.expect(token.LPAREN)

	var params []*ast.Param
	variadic := false
	if p.tok == token.DOTDOTDOT {
		p.advance()
		variadic = true
	} else if p.tok != token.RPAREN {
		for {
			typ := p.parseType()
			params = append(params, &ast.Param{Type: typ})
			if !p.accept(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.ARROW)
	retType := p.parseType()
	end := p.val.Pos
	p.accept(token.SEMI)

	return &ast.FunctionDecl{
		Start:      start,
		End:        end,
		Name:       name,
		Params:     params,
		ReturnType: retType,
		IsExtern:   true,
		IsVariadic: variadic,
	}
}

func (p *parser) parseFuncDecl() *ast.FunctionDecl {
	start := p.expect(token.FN, token.FUNCTION)
	name := p.val.Raw
	p.expect(token.IDENT)
	p.expect(token.LPAREN)

	var params []*ast.Param
	variadic := false
	if p.tok == token.DOTDOTDOT {
		p.advance()
		variadic = true
	} else if p.tok != token.RPAREN {
		params = p.parseParams()
	}
	p.expect(token.RPAREN)
	p.expect(token.ARROW)
	retType := p.parseType()

	body := p.parseStmtsUntil(token.END)
	end := p.expect(token.END)

	return &ast.FunctionDecl{
		Start:      start,
		End:        end,
		Name:       name,
		Params:     params,
		ReturnType: retType,
		Body:       body,
		IsVariadic: variadic,
	}
}

func (p *parser) parseParams() []*ast.Param {
	var params []*ast.Param
	for {
		pos := p.val.Pos
		name := p.val.Raw
		p.expect(token.IDENT)
		p.expect(token.COLON)
		typ := p.parseType()
		params = append(params, &ast.Param{Name: name, Type: typ, Pos: pos})
		if !p.accept(token.COMMA) {
			break
		}
	}
	return params
}

// parseType parses a static type name, recursing for "pointer(T)" (spec
// §4.2 grammar "Type").
func (p *parser) parseType() ast.Type {
	switch p.tok {
	case token.TY_INT:
		p.advance()
		return types.INT
	case token.TY_STRING:
		p.advance()
		return types.STRING
	case token.TY_BOOL:
		p.advance()
		return types.BOOL
	case token.TY_FLOAT:
		p.advance()
		return types.FLOAT
	case token.TY_NONE:
		p.advance()
		return types.NONE
	case token.TY_POINTER:
		p.advance()
		p.expect(token.LPAREN)
		elem := p.parseType()
		p.expect(token.RPAREN)
		return types.TypedPointer{Elem: elem}
	default:
		p.errorExpected(p.val.Pos, []token.Token{
			token.TY_INT, token.TY_STRING, token.TY_BOOL, token.TY_FLOAT,
			token.TY_POINTER, token.TY_NONE,
		})
		panic(errPanicMode)
	}
}
