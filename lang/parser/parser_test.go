package parser

import (
	"testing"

	"github.com/mna/nenuphar/lang/ast"
	"github.com/mna/nenuphar/lang/types"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyExternAndMain(t *testing.T) {
	src := `extern print(string) -> none
fn main() -> none return end`
	prog, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Decls, 2)

	ext := prog.Decls[0].(*ast.FunctionDecl)
	require.Equal(t, "print", ext.Name)
	require.True(t, ext.IsExtern)
	require.Equal(t, types.NONE, ext.ReturnType)
	require.Len(t, ext.Params, 1)
	require.Equal(t, types.STRING, ext.Params[0].Type)

	main := prog.Decls[1].(*ast.FunctionDecl)
	require.Equal(t, "main", main.Name)
	require.False(t, main.IsExtern)
	require.Len(t, main.Body, 1)
	_, ok := main.Body[0].(*ast.ReturnStmt)
	require.True(t, ok)
}

func TestParseConstantFoldingSource(t *testing.T) {
	src := `fn main() -> int return 2 + 3 * 4 end`
	prog, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Decls, 1)

	fn := prog.Decls[0].(*ast.FunctionDecl)
	ret := fn.Body[0].(*ast.ReturnStmt)
	bin := ret.Value.(*ast.Binary)
	require.Equal(t, int64(2), bin.Left.(*ast.Literal).Value)
	rhs := bin.Right.(*ast.Binary)
	require.Equal(t, int64(3), rhs.Left.(*ast.Literal).Value)
	require.Equal(t, int64(4), rhs.Right.(*ast.Literal).Value)
}

func TestParseIfElse(t *testing.T) {
	src := `fn f(x: int) -> int if x == 0 then return 1 end return 2 end`
	prog, err := Parse([]byte(src))
	require.NoError(t, err)

	fn := prog.Decls[0].(*ast.FunctionDecl)
	require.Len(t, fn.Params, 1)
	require.Equal(t, types.INT, fn.Params[0].Type)

	ifStmt := fn.Body[0].(*ast.IfStmt)
	require.Len(t, ifStmt.Then, 1)
	require.Nil(t, ifStmt.Else)
	require.Len(t, fn.Body, 2)
}

func TestParsePointerRoundtripSource(t *testing.T) {
	// Semicolons are inserted between statements here: without one, "&x"
	// followed by "*p" is ambiguous (STAR is both pointer-arithmetic
	// multiply and unary deref), so an unambiguous surface form is used to
	// exercise the same AST shape the scenario describes.
	src := `fn main() -> int var x: int = 5; var p: pointer(int) = &x; *p = 7; return x end`
	prog, err := Parse([]byte(src))
	require.NoError(t, err)

	fn := prog.Decls[0].(*ast.FunctionDecl)
	require.Len(t, fn.Body, 4)

	p2 := fn.Body[1].(*ast.VarDeclStmt)
	require.Equal(t, types.TypedPointer{Elem: types.INT}, p2.Type)
	addr := p2.Initializer.(*ast.Unary)
	require.Equal(t, "&", addr.Op.String())

	assign := fn.Body[2].(*ast.ExprStmt).X.(*ast.Assignment)
	deref := assign.Target.(*ast.Unary)
	require.Equal(t, "*", deref.Op.String())
	require.True(t, ast.IsAssignable(assign.Target))
}

func TestParseVariadicExtern(t *testing.T) {
	src := `extern printf(...) -> none
fn main() -> none printf("hi", 1, 2) return end`
	prog, err := Parse([]byte(src))
	require.NoError(t, err)

	ext := prog.Decls[0].(*ast.FunctionDecl)
	require.True(t, ext.IsVariadic)
	require.Empty(t, ext.Params)

	main := prog.Decls[1].(*ast.FunctionDecl)
	call := main.Body[0].(*ast.ExprStmt).X.(*ast.Call)
	require.Equal(t, "printf", call.Callee)
	require.Len(t, call.Args, 3)
}

func TestParseDuplicateVariableSource(t *testing.T) {
	src := `fn f() -> none var a: int = 1 var a: int = 2 return end`
	prog, err := Parse([]byte(src))
	require.NoError(t, err)

	fn := prog.Decls[0].(*ast.FunctionDecl)
	require.Len(t, fn.Body, 3)
	require.Equal(t, "a", fn.Body[0].(*ast.VarDeclStmt).Name)
	require.Equal(t, "a", fn.Body[1].(*ast.VarDeclStmt).Name)
}

func TestParseInvalidAssignmentTargetRecorded(t *testing.T) {
	src := `fn f() -> none 1 = 2 return end`
	_, err := Parse([]byte(src))
	require.Error(t, err)

	var el ErrorList
	require.ErrorAs(t, err, &el)
	found := false
	for _, e := range el {
		if e.Kind == SyntaxError {
			found = true
		}
	}
	require.True(t, found)
}

func TestParseSynchronizesAfterMalformedDecl(t *testing.T) {
	// The malformed declaration's synchronization set includes "return", a
	// valid mid-function token but not a valid declaration start, so
	// recovery cascades through a second BadDecl before reaching "fn ok".
	src := `fn broken( -> none return end
fn ok() -> none return end`
	prog, err := Parse([]byte(src))
	require.Error(t, err)
	require.Len(t, prog.Decls, 3)

	_, isBad := prog.Decls[0].(*ast.BadDecl)
	require.True(t, isBad)
	_, isBad = prog.Decls[1].(*ast.BadDecl)
	require.True(t, isBad)
	ok := prog.Decls[2].(*ast.FunctionDecl)
	require.Equal(t, "ok", ok.Name)
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	src := `fn f() -> none var a: int = 0 var b: int = 0 a = b = 1 return end`
	prog, err := Parse([]byte(src))
	require.NoError(t, err)

	fn := prog.Decls[0].(*ast.FunctionDecl)
	assign := fn.Body[2].(*ast.ExprStmt).X.(*ast.Assignment)
	require.Equal(t, "a", assign.Target.(*ast.Variable).Name)
	inner := assign.Value.(*ast.Assignment)
	require.Equal(t, "b", inner.Target.(*ast.Variable).Name)
}

func TestParseTypeLiteral(t *testing.T) {
	src := `extern f(int) -> none
fn main() -> none f(#int) return end`
	prog, err := Parse([]byte(src))
	require.NoError(t, err)

	main := prog.Decls[1].(*ast.FunctionDecl)
	call := main.Body[0].(*ast.ExprStmt).X.(*ast.Call)
	tl := call.Args[0].(*ast.TypeLiteral)
	require.Equal(t, "int", tl.Name)
}
