package scanner

import (
	"testing"

	"github.com/mna/nenuphar/lang/token"
	"github.com/stretchr/testify/require"
)

func scanKinds(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := ScanAll([]byte(src))
	require.NoError(t, err)
	kinds := make([]token.Token, len(toks))
	for i, tv := range toks {
		kinds[i] = tv.Token
	}
	return kinds
}

func TestScanKeywordsAndIdents(t *testing.T) {
	kinds := scanKinds(t, "fn int intx extern x")
	require.Equal(t, []token.Token{
		token.FN, token.TY_INT, token.IDENT, token.EXTERN, token.IDENT, token.EOF,
	}, kinds)
}

func TestScanNumbers(t *testing.T) {
	toks, err := ScanAll([]byte("123 1.5 0"))
	require.NoError(t, err)
	require.Equal(t, token.INT, toks[0].Token)
	require.Equal(t, int64(123), toks[0].Value.Int)
	require.Equal(t, token.FLOAT, toks[1].Token)
	require.Equal(t, 1.5, toks[1].Value.Float)
	require.Equal(t, token.INT, toks[2].Token)
	require.Equal(t, int64(0), toks[2].Value.Int)
}

func TestScanStringEscapes(t *testing.T) {
	toks, err := ScanAll([]byte(`"hi\n\t\"\'\\there"`))
	require.NoError(t, err)
	require.Equal(t, token.STRING, toks[0].Token)
	require.Equal(t, "hi\n\t\"'\\there", toks[0].Value.String)
}

func TestScanStringSingleQuote(t *testing.T) {
	toks, err := ScanAll([]byte(`'abc'`))
	require.NoError(t, err)
	require.Equal(t, token.STRING, toks[0].Token)
	require.Equal(t, "abc", toks[0].Value.String)
}

func TestScanOperators(t *testing.T) {
	kinds := scanKinds(t, "+ - * / == != < > = && || ! & | -> ...")
	require.Equal(t, []token.Token{
		token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.EQ, token.NEQ, token.LT, token.GT, token.ASSIGN,
		token.ANDAND, token.OROR, token.BANG, token.AMP, token.PIPE,
		token.ARROW, token.DOTDOTDOT, token.EOF,
	}, kinds)
}

func TestScanPunctuation(t *testing.T) {
	kinds := scanKinds(t, "; , : ( ) { } #")
	require.Equal(t, []token.Token{
		token.SEMI, token.COMMA, token.COLON, token.LPAREN, token.RPAREN,
		token.LBRACE, token.RBRACE, token.HASH, token.EOF,
	}, kinds)
}

func TestScanLineComment(t *testing.T) {
	kinds := scanKinds(t, "var // this is ignored\nx")
	require.Equal(t, []token.Token{token.VAR, token.IDENT, token.EOF}, kinds)
}

func TestScanIllegalCharacterRecovers(t *testing.T) {
	toks, err := ScanAll([]byte("x @ y"))
	require.Error(t, err)
	var el ErrorList
	require.ErrorAs(t, err, &el)
	require.Len(t, el, 1)

	kinds := make([]token.Token, len(toks))
	for i, tv := range toks {
		kinds[i] = tv.Token
	}
	require.Equal(t, []token.Token{token.IDENT, token.ILLEGAL, token.IDENT, token.EOF}, kinds)
}

func TestScanPositionsTrackLinesAndColumns(t *testing.T) {
	toks, err := ScanAll([]byte("var\nx"))
	require.NoError(t, err)
	line, col := toks[0].Value.Pos.LineCol()
	require.Equal(t, 1, line)
	require.Equal(t, 1, col)
	line, col = toks[1].Value.Pos.LineCol()
	require.Equal(t, 2, line)
	require.Equal(t, 1, col)
}

func TestEmptySourceYieldsOnlyEOF(t *testing.T) {
	kinds := scanKinds(t, "")
	require.Equal(t, []token.Token{token.EOF}, kinds)
}
