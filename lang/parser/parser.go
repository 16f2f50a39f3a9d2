// Package parser implements the recursive-descent, precedence-climbing
// parser that turns a token stream into a typed AST (spec §4.2).
package parser

import (
	"errors"
	"strings"

	"github.com/mna/nenuphar/lang/ast"
	"github.com/mna/nenuphar/lang/scanner"
	"github.com/mna/nenuphar/lang/token"
)

// Parse tokenizes and parses src, returning the AST and any accumulated
// diagnostics. The returned error, if non-nil, is an ErrorList combining
// every LexError and SyntaxError encountered; parsing never stops at the
// first error, it synchronizes and continues (spec §4.2 "Failure modes").
func Parse(src []byte) (*ast.Program, error) {
	var p parser
	p.init(src)
	prog := p.parseProgram()
	p.errors.Sort()
	return prog, p.errors.Err()
}

type parser struct {
	scanner scanner.Scanner
	errors  ErrorList

	tok token.Token
	val token.Value
}

func (p *parser) init(src []byte) {
	p.scanner.Init(src, func(pos token.Pos, msg string) {
		p.errors.add(LexError, pos, msg)
	})
	p.advance()
}

func (p *parser) advance() {
	p.tok = p.scanner.Scan(&p.val)
}

// errPanicMode is recovered at the declaration boundary, after which
// parsing resumes at the next synchronization point.
var errPanicMode = errors.New("parse panic")

// expect consumes the current token if it is one of toks and returns its
// position; otherwise it records a SyntaxError and unwinds to the nearest
// recover point via errPanicMode.
func (p *parser) expect(toks ...token.Token) token.Pos {
	pos := p.val.Pos
	for _, tok := range toks {
		if p.tok == tok {
			p.advance()
			return pos
		}
	}
	p.errorExpected(pos, toks)
	panic(errPanicMode)
}

// accept consumes the current token and returns true if it is tok, without
// raising an error otherwise.
func (p *parser) accept(tok token.Token) bool {
	if p.tok == tok {
		p.advance()
		return true
	}
	return false
}

func (p *parser) error(pos token.Pos, msg string) {
	p.errors.add(SyntaxError, pos, msg)
}

func (p *parser) errorExpected(pos token.Pos, want []token.Token) {
	var buf strings.Builder
	for i, tok := range want {
		if i > 0 {
			buf.WriteString(" or ")
		}
		buf.WriteString(tok.GoString())
	}
	msg := "expected " + buf.String()
	if pos == p.val.Pos {
		if lit := p.tok.Literal(p.val); lit != "" {
			msg += ", found " + lit
		} else {
			msg += ", found " + p.tok.GoString()
		}
	}
	p.error(pos, msg)
}

// syncTokens is the declaration-boundary synchronization set named verbatim
// in spec §4.2: after an error, recovery happens once, at the declaration
// boundary (not per statement), by advancing until a semicolon or one of
// fn/function/var/if/return/extern is seen.
var syncTokens = map[token.Token]bool{
	token.SEMI:     true,
	token.FN:       true,
	token.FUNCTION: true,
	token.VAR:      true,
	token.IF:       true,
	token.RETURN:   true,
	token.EXTERN:   true,
}

// sync advances the token stream until it reaches a member of syncTokens
// or EOF. It always advances at least once, so a panic raised with the
// current token already a member of syncTokens cannot leave the parser
// stuck in place. Landing on SEMI consumes it, since SEMI only ever marks
// the end of the broken declaration; any other boundary token is left in
// place to start the next production.
func (p *parser) sync() {
	p.advance()
	for p.tok != token.EOF && !syncTokens[p.tok] {
		p.advance()
	}
	if p.tok == token.SEMI {
		p.advance()
	}
}
