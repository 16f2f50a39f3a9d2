// Package token defines the lexical token kinds produced by the scanner and
// consumed by the parser, along with a compact source-position encoding.
package token

// A Token represents a lexical token kind.
type Token int8

//nolint:revive
const (
	ILLEGAL Token = iota
	EOF

	// Tokens with values
	IDENT  // x
	INT    // 123
	FLOAT  // 1.23
	STRING // "foo"

	// Operators
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	EQ        // ==
	NEQ       // !=
	LT        // <
	GT        // >
	ASSIGN    // =
	ANDAND    // &&
	OROR      // ||
	BANG      // !
	AMP       // &
	PIPE      // |
	ARROW     // ->
	DOTDOTDOT // ...

	// Punctuation
	SEMI   // ;
	COMMA  // ,
	COLON  // :
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	HASH   // #

	kwStart
	// Keywords
	FN
	FUNCTION
	EXTERN
	VAR
	IF
	THEN
	ELSE
	END
	RETURN
	WHILE
	AS
	NULL
	TRUE
	FALSE

	// Type names (keywords that also identify a static type)
	TY_INT
	TY_STRING
	TY_BOOL
	TY_FLOAT
	TY_POINTER
	TY_NONE
	kwEnd

	maxToken
)

func (tok Token) String() string { return tokenNames[tok] }

// GoString is like String but quotes punctuation/operator tokens, for use in
// diagnostic messages (fmt.Sprintf("%#v", tok)).
func (tok Token) GoString() string {
	if tok >= PLUS && tok <= HASH {
		return "'" + tokenNames[tok] + "'"
	}
	return tokenNames[tok]
}

// IsBinop reports whether tok is an operator usable in a binary expression
// at the precedence levels defined by the parser (spec §4.2).
func (tok Token) IsBinop() bool {
	switch tok {
	case ASSIGN, AS, EQ, NEQ, LT, GT, PLUS, MINUS, STAR, SLASH:
		return true
	}
	return false
}

// IsUnop reports whether tok is a valid prefix unary operator.
func (tok Token) IsUnop() bool {
	switch tok {
	case MINUS, BANG, AMP, STAR:
		return true
	}
	return false
}

// IsTypeName reports whether tok names a static type in type position.
func (tok Token) IsTypeName() bool {
	return tok >= TY_INT && tok <= TY_NONE
}

var tokenNames = [...]string{
	ILLEGAL:    "illegal token",
	EOF:        "end of file",
	IDENT:      "identifier",
	INT:        "int literal",
	FLOAT:      "float literal",
	STRING:     "string literal",
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	EQ:         "==",
	NEQ:        "!=",
	LT:         "<",
	GT:         ">",
	ASSIGN:     "=",
	ANDAND:     "&&",
	OROR:       "||",
	BANG:       "!",
	AMP:        "&",
	PIPE:       "|",
	ARROW:      "->",
	DOTDOTDOT:  "...",
	SEMI:       ";",
	COMMA:      ",",
	COLON:      ":",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACE:     "{",
	RBRACE:     "}",
	HASH:       "#",
	FN:         "fn",
	FUNCTION:   "function",
	EXTERN:     "extern",
	VAR:        "var",
	IF:         "if",
	THEN:       "then",
	ELSE:       "else",
	END:        "end",
	RETURN:     "return",
	WHILE:      "while",
	AS:         "as",
	NULL:       "null",
	TRUE:       "true",
	FALSE:      "false",
	TY_INT:     "int",
	TY_STRING:  "string",
	TY_BOOL:    "bool",
	TY_FLOAT:   "float",
	TY_POINTER: "pointer",
	TY_NONE:    "none",
}

var keywords = func() map[string]Token {
	m := make(map[string]Token, kwEnd-kwStart-1)
	for tok := kwStart + 1; tok < kwEnd; tok++ {
		m[tokenNames[tok]] = tok
	}
	return m
}()

// Lookup returns IDENT, or the keyword/type-name token kind for lit, if lit
// is a recognized keyword. Keyword patterns must be checked before the
// identifier pattern so that e.g. "int" tokenizes as a type, not an
// identifier (spec §4.1).
func Lookup(lit string) Token {
	if tok, ok := keywords[lit]; ok {
		return tok
	}
	return IDENT
}

// Value holds the decoded payload of a scanned token, alongside its raw
// source text and position.
type Value struct {
	Raw string // the token's literal source text
	Pos Pos

	Int    int64
	Float  float64
	String string // decoded string literal
}

// Literal returns a short human-readable rendering of the token's value, for
// use in "found X" style diagnostics. Returns "" if tok carries no
// interesting literal value (e.g. punctuation).
func (tok Token) Literal(val Value) string {
	switch tok {
	case IDENT, INT, FLOAT, STRING:
		return val.Raw
	}
	return ""
}
