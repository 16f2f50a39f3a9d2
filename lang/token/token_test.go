package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		require.NotEmpty(t, tok.String(), "token %d has no string representation", tok)
	}
}

func TestLookup(t *testing.T) {
	for tok := kwStart + 1; tok < kwEnd; tok++ {
		got := Lookup(tok.String())
		require.Equal(t, tok, got)
	}
	require.Equal(t, IDENT, Lookup("notakeyword"))
	require.Equal(t, IDENT, Lookup("integer")) // starts with a keyword, but is not the keyword itself
}

func TestIsBinop(t *testing.T) {
	want := map[Token]bool{
		ASSIGN: true, AS: true, EQ: true, NEQ: true,
		LT: true, GT: true, PLUS: true, MINUS: true, STAR: true, SLASH: true,
	}
	for tok := Token(0); tok < maxToken; tok++ {
		require.Equal(t, want[tok], tok.IsBinop(), "tok=%s", tok)
	}
}

func TestIsUnop(t *testing.T) {
	want := map[Token]bool{MINUS: true, BANG: true, AMP: true, STAR: true}
	for tok := Token(0); tok < maxToken; tok++ {
		require.Equal(t, want[tok], tok.IsUnop(), "tok=%s", tok)
	}
}

func TestGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
	require.Equal(t, "fn", FN.GoString())
}
