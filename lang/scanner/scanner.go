// Package scanner tokenizes source text into the flat token stream consumed
// by the parser (spec §4.1 "Lexer").
package scanner

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mna/nenuphar/lang/token"
)

// TokenAndValue pairs a token kind with its decoded value, the unit the
// scanner produces and the parser consumes.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanAll tokenizes src in full and returns every token, including the
// trailing EOF. Lex errors (unknown characters, malformed literals) are
// non-fatal: the scanner recovers and keeps producing tokens, and all
// diagnostics are returned together as an ErrorList (nil if none occurred).
func ScanAll(src []byte) ([]TokenAndValue, error) {
	var (
		s   Scanner
		el  ErrorList
		val token.Value
	)
	s.Init(src, el.Add)

	var out []TokenAndValue
	for {
		tok := s.Scan(&val)
		out = append(out, TokenAndValue{Token: tok, Value: val})
		if tok == token.EOF {
			break
		}
	}
	return out, el.Err()
}

// Scanner tokenizes a single source buffer.
type Scanner struct {
	src []byte
	err func(token.Pos, string)

	sb strings.Builder

	cur      rune
	off      int // byte offset of cur
	roff     int // byte offset following cur
	line     int
	col      int
	lineHead int // byte offset where the current line started
}

// Init prepares s to scan src from the beginning. errHandler is called for
// every non-fatal lex diagnostic encountered.
func (s *Scanner) Init(src []byte, errHandler func(token.Pos, string)) {
	s.src = src
	s.err = errHandler
	s.off = 0
	s.roff = 0
	s.line = 1
	s.col = 0
	s.lineHead = 0
	s.advance()
}

func (s *Scanner) pos() token.Pos { return token.MakePos(s.line, s.col) }

func (s *Scanner) error(msg string) {
	if s.err != nil {
		s.err(s.pos(), msg)
	}
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

// advance reads the next rune into s.cur, updating line/col. s.cur == -1
// means end of input.
func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}

	if s.cur == '\n' {
		s.line++
		s.lineHead = s.roff
	}

	s.off = s.roff
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error("illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
	s.col = s.off - s.lineHead + 1
}

func (s *Scanner) advanceIf(b byte) bool {
	if s.cur == rune(b) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token, writing its value into val.
func (s *Scanner) Scan(val *token.Value) token.Token {
	s.skipWhitespaceAndComments()

	pos := s.pos()
	start := s.off

	switch {
	case s.cur == -1:
		*val = token.Value{Pos: pos}
		return token.EOF

	case isLetter(s.cur):
		lit := s.ident()
		tok := token.Lookup(lit)
		*val = token.Value{Raw: lit, Pos: pos}
		return tok

	case isDigit(s.cur):
		tok, raw := s.number()
		*val = token.Value{Raw: raw, Pos: pos}
		if tok == token.INT {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				s.error("integer literal out of range")
			}
			val.Int = n
		} else {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				s.error("float literal out of range")
			}
			val.Float = f
		}
		return tok

	case s.cur == '"' || s.cur == '\'':
		quote := byte(s.cur)
		s.advance()
		raw, decoded := s.stringLit(quote)
		*val = token.Value{Raw: raw, Pos: pos, String: decoded}
		return token.STRING
	}

	cur := s.cur
	s.advance()
	switch cur {
	case '+':
		*val = token.Value{Raw: "+", Pos: pos}
		return token.PLUS
	case '-':
		if s.advanceIf('>') {
			*val = token.Value{Raw: "->", Pos: pos}
			return token.ARROW
		}
		*val = token.Value{Raw: "-", Pos: pos}
		return token.MINUS
	case '*':
		*val = token.Value{Raw: "*", Pos: pos}
		return token.STAR
	case '/':
		*val = token.Value{Raw: "/", Pos: pos}
		return token.SLASH
	case '=':
		if s.advanceIf('=') {
			*val = token.Value{Raw: "==", Pos: pos}
			return token.EQ
		}
		*val = token.Value{Raw: "=", Pos: pos}
		return token.ASSIGN
	case '!':
		if s.advanceIf('=') {
			*val = token.Value{Raw: "!=", Pos: pos}
			return token.NEQ
		}
		*val = token.Value{Raw: "!", Pos: pos}
		return token.BANG
	case '<':
		*val = token.Value{Raw: "<", Pos: pos}
		return token.LT
	case '>':
		*val = token.Value{Raw: ">", Pos: pos}
		return token.GT
	case '&':
		if s.advanceIf('&') {
			*val = token.Value{Raw: "&&", Pos: pos}
			return token.ANDAND
		}
		*val = token.Value{Raw: "&", Pos: pos}
		return token.AMP
	case '|':
		if s.advanceIf('|') {
			*val = token.Value{Raw: "||", Pos: pos}
			return token.OROR
		}
		*val = token.Value{Raw: "|", Pos: pos}
		return token.PIPE
	case '.':
		if s.advanceIf('.') && s.advanceIf('.') {
			*val = token.Value{Raw: "...", Pos: pos}
			return token.DOTDOTDOT
		}
		s.error("illegal punctuation '.'")
		*val = token.Value{Raw: string(s.src[start:s.off]), Pos: pos}
		return token.ILLEGAL
	case ';':
		*val = token.Value{Raw: ";", Pos: pos}
		return token.SEMI
	case ',':
		*val = token.Value{Raw: ",", Pos: pos}
		return token.COMMA
	case ':':
		*val = token.Value{Raw: ":", Pos: pos}
		return token.COLON
	case '(':
		*val = token.Value{Raw: "(", Pos: pos}
		return token.LPAREN
	case ')':
		*val = token.Value{Raw: ")", Pos: pos}
		return token.RPAREN
	case '{':
		*val = token.Value{Raw: "{", Pos: pos}
		return token.LBRACE
	case '}':
		*val = token.Value{Raw: "}", Pos: pos}
		return token.RBRACE
	case '#':
		*val = token.Value{Raw: "#", Pos: pos}
		return token.HASH
	default:
		s.error("illegal character " + strconv.QuoteRune(cur))
		*val = token.Value{Raw: string(cur), Pos: pos}
		return token.ILLEGAL
	}
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) number() (token.Token, string) {
	start := s.off
	for isDigit(s.cur) {
		s.advance()
	}
	tok := token.INT
	if s.cur == '.' && isDigit(rune(s.peek())) {
		tok = token.FLOAT
		s.advance() // consume '.'
		for isDigit(s.cur) {
			s.advance()
		}
	}
	return tok, string(s.src[start:s.off])
}

// stringLit scans the body of a string literal up to (and consuming) the
// closing quote, decoding the escapes listed in spec §4.1: \n \t \" \' \\.
func (s *Scanner) stringLit(quote byte) (raw, decoded string) {
	start := s.off
	s.sb.Reset()
	for {
		if s.cur == -1 || s.cur == '\n' {
			s.error("unterminated string literal")
			break
		}
		if s.cur == rune(quote) {
			s.advance()
			break
		}
		if s.cur == '\\' {
			s.advance()
			switch s.cur {
			case 'n':
				s.sb.WriteByte('\n')
			case 't':
				s.sb.WriteByte('\t')
			case '"':
				s.sb.WriteByte('"')
			case '\'':
				s.sb.WriteByte('\'')
			case '\\':
				s.sb.WriteByte('\\')
			default:
				s.error("unknown escape sequence")
				s.sb.WriteRune(s.cur)
			}
			s.advance()
			continue
		}
		s.sb.WriteRune(s.cur)
		s.advance()
	}
	return string(s.src[start:s.off]), s.sb.String()
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(s.cur):
			s.advance()
		case s.cur == '/' && s.peek() == '/':
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		default:
			return
		}
	}
}

func isWhitespace(r rune) bool { return r == ' ' || r == '\t' || r == '\r' || r == '\n' }

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' ||
		r >= utf8.RuneSelf && unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
