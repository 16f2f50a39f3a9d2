package parser

import (
	"github.com/mna/nenuphar/lang/ast"
	"github.com/mna/nenuphar/lang/token"
)

// binopPriority is the precedence table of spec §4.2, low to high. '=' and
// 'as' share precedence with '==' and '!=' at level 1; '=' alone is right
// associative, handled specially in parseBinExpr.
var binopPriority = map[token.Token]int{
	token.ASSIGN: 1,
	token.AS:     1,
	token.EQ:     1,
	token.NEQ:    1,
	token.LT:     2,
	token.GT:     2,
	token.PLUS:   3,
	token.MINUS:  3,
	token.STAR:   4,
	token.SLASH:  4,
}

func (p *parser) parseExpr() ast.Expr {
	return p.parseBinExpr(1)
}

// parseBinExpr implements precedence climbing: it parses a unary operand,
// then repeatedly folds in binary operators whose precedence is >= minPrec,
// recursing with the operator's own precedence + 1 for left-associative
// operators and with its own precedence for the right-associative '='.
func (p *parser) parseBinExpr(minPrec int) ast.Expr {
	left := p.parseUnary()

	for {
		op := p.tok
		prec, ok := binopPriority[op]
		if !ok || prec < minPrec {
			break
		}
		opPos := p.val.Pos
		p.advance()

		// 'as' names a static type on its right, not an operand expression,
		// so it does not recurse into parseBinExpr like the other operators
		// sharing its precedence row (spec §4.2 grammar).
		if op == token.AS {
			to := p.parseType()
			left = &ast.Cast{X: left, As: opPos, To: to, ToEnd: p.val.Pos}
			continue
		}

		nextMin := prec + 1
		if op == token.ASSIGN {
			nextMin = prec
		}
		right := p.parseBinExpr(nextMin)

		if op == token.ASSIGN {
			if !ast.IsAssignable(left) {
				p.error(opPos, "invalid assignment target")
				start, _ := left.Span()
				_, end := right.Span()
				left = &ast.BadExpr{Start: start, End: end}
				continue
			}
			left = &ast.Assignment{Target: left, Eq: opPos, Value: right}
		} else {
			left = &ast.Binary{Left: left, Op: op, OpPos: opPos, Right: right}
		}
	}
	return left
}

func (p *parser) parseUnary() ast.Expr {
	if p.tok.IsUnop() {
		op := p.tok
		opPos := p.val.Pos
		p.advance()
		right := p.parseUnary()
		return &ast.Unary{Op: op, OpPos: opPos, Right: right}
	}
	return p.parsePrimary()
}

// parsePrimary parses a literal, type literal, identifier/call, or
// parenthesized expression (spec §4.2 "Primary").
func (p *parser) parsePrimary() ast.Expr {
	pos := p.val.Pos

	switch p.tok {
	case token.INT:
		raw := p.val.Raw
		v := p.val.Int
		p.advance()
		return &ast.Literal{Pos: pos, Raw: raw, Value: v}

	case token.FLOAT:
		raw := p.val.Raw
		v := p.val.Float
		p.advance()
		return &ast.Literal{Pos: pos, Raw: raw, Value: v}

	case token.STRING:
		raw := p.val.Raw
		v := p.val.String
		p.advance()
		return &ast.Literal{Pos: pos, Raw: raw, Value: v}

	case token.TRUE, token.FALSE:
		raw := p.val.Raw
		v := p.tok == token.TRUE
		p.advance()
		return &ast.Literal{Pos: pos, Raw: raw, Value: v}

	case token.NULL:
		raw := p.val.Raw
		p.advance()
		return &ast.Literal{Pos: pos, Raw: raw, Value: nil}

	case token.HASH:
		p.advance()
		if !p.tok.IsTypeName() {
			p.errorExpected(p.val.Pos, []token.Token{token.TY_INT})
			panic(errPanicMode)
		}
		name := p.val.Raw
		p.advance()
		return &ast.TypeLiteral{Hash: pos, Name: name, End: p.val.Pos}

	case token.IDENT:
		name := p.val.Raw
		p.advance()
		if p.tok == token.LPAREN {
			return p.parseCall(name, pos)
		}
		return &ast.Variable{Pos: pos, Name: name}

	case token.LPAREN:
		p.advance()
		x := p.parseExpr()
		p.expect(token.RPAREN)
		return x

	default:
		p.errorExpected(pos, []token.Token{token.IDENT, token.INT, token.LPAREN})
		panic(errPanicMode)
	}
}

func (p *parser) parseCall(callee string, start token.Pos) *ast.Call {
	p.expect(token.LPAREN)
	var args []ast.Expr
	if p.tok != token.RPAREN {
		for {
			args = append(args, p.parseExpr())
			if !p.accept(token.COMMA) {
				break
			}
		}
	}
	end := p.expect(token.RPAREN)
	return &ast.Call{Callee: callee, Start: start, Args: args, End: end}
}
