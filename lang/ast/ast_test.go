package ast

import (
	"testing"

	"github.com/mna/nenuphar/lang/token"
	"github.com/mna/nenuphar/lang/types"
	"github.com/stretchr/testify/require"
)

func TestIsAssignable(t *testing.T) {
	require.True(t, IsAssignable(&Variable{Name: "x"}))
	require.True(t, IsAssignable(&Unary{Op: token.STAR, Right: &Variable{Name: "p"}}))
	require.False(t, IsAssignable(&Unary{Op: token.MINUS, Right: &Variable{Name: "p"}}))
	require.False(t, IsAssignable(&Literal{Value: int64(1)}))
}

func TestProgramSpan(t *testing.T) {
	empty := &Program{}
	start, end := empty.Span()
	require.Equal(t, token.Pos(0), start)
	require.Equal(t, token.Pos(0), end)

	fn := &FunctionDecl{Start: token.MakePos(1, 1), End: token.MakePos(3, 4), Name: "main"}
	p := &Program{Decls: []Decl{fn}}
	start, end = p.Span()
	require.Equal(t, fn.Start, start)
	require.Equal(t, fn.End, end)
}

func TestBinarySpan(t *testing.T) {
	l := &Variable{Pos: token.MakePos(1, 1), Name: "a"}
	r := &Literal{Pos: token.MakePos(1, 10), Raw: "1"}
	b := &Binary{Left: l, Op: token.PLUS, Right: r}
	start, end := b.Span()
	lStart, _ := l.Span()
	_, rEnd := r.Span()
	require.Equal(t, lStart, start)
	require.Equal(t, rEnd, end)
}

func TestWalkVisitsAllNodes(t *testing.T) {
	fn := &FunctionDecl{
		Name: "f",
		Params: []*Param{
			{Name: "x", Type: types.INT},
		},
		Body: []Stmt{
			&VarDeclStmt{Name: "y", Type: types.INT, Initializer: &Literal{Value: int64(1)}},
			&IfStmt{
				Cond: &Binary{Left: &Variable{Name: "x"}, Op: token.GT, Right: &Literal{Value: int64(0)}},
				Then: []Stmt{&ReturnStmt{Value: &Variable{Name: "x"}}},
			},
		},
	}
	prog := &Program{Decls: []Decl{fn}}

	var names []string
	Walk(VisitorFunc(func(n Node) {
		switch n := n.(type) {
		case *Variable:
			names = append(names, n.Name)
		}
	}), prog)

	require.Equal(t, []string{"x", "x"}, names)
}

func TestTypeAliasAcceptsBothStaticTypeKinds(t *testing.T) {
	var pt Type = types.INT
	require.Equal(t, "int", pt.String())
	pt = types.TypedPointer{Elem: types.INT}
	require.Equal(t, "pointer(int)", pt.String())
}
