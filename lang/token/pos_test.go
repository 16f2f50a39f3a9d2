package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakePosLineCol(t *testing.T) {
	cases := []struct {
		line, col int
	}{
		{1, 1},
		{1, 80},
		{42, 7},
		{MaxLines, MaxCols},
	}
	for _, c := range cases {
		p := MakePos(c.line, c.col)
		gotLine, gotCol := p.LineCol()
		require.Equal(t, c.line, gotLine)
		require.Equal(t, c.col, gotCol)
		require.False(t, p.Unknown())
	}
}

func TestPosUnknown(t *testing.T) {
	require.True(t, Pos(0).Unknown())
	require.True(t, MakePos(0, 5).Unknown())
	require.True(t, MakePos(5, 0).Unknown())
	require.False(t, MakePos(1, 1).Unknown())
}

func TestPosString(t *testing.T) {
	require.Equal(t, "3:4", MakePos(3, 4).String())
	require.Equal(t, "-", Pos(0).String())
}
