package ast

import "github.com/mna/nenuphar/lang/token"

// IsAssignable reports whether e is valid on the left-hand side of an
// assignment: a Variable, or a Unary with operator '*' (a dereference)
// (spec §3 invariant, §4.2 "Assignment validity").
func IsAssignable(e Expr) bool {
	switch e := e.(type) {
	case *Variable:
		return true
	case *Unary:
		return e.Op == token.STAR
	default:
		return false
	}
}

type (
	// Literal represents an integer, float, string, boolean or null literal.
	// Value is one of int64, float64, string, bool, or nil for "null".
	Literal struct {
		Pos   token.Pos
		Raw   string
		Value interface{}
	}

	// Variable represents a reference to a local by name.
	Variable struct {
		Pos  token.Pos
		Name string
	}

	// TypeLiteral represents a "#Type" expression naming a static type
	// (spec §3 "AST", §4.2 grammar "Primary").
	TypeLiteral struct {
		Hash token.Pos
		Name string
		End  token.Pos
	}

	// Call represents a function call, e.g. f(a, b). Callee names the
	// target by its declared name; the front end resolves it against the
	// extern table first, then the regular function table (spec §4.3
	// "Call").
	Call struct {
		Callee string
		Start  token.Pos
		Args   []Expr
		End    token.Pos
	}

	// Unary represents a prefix unary expression: -x, !x, &x or *x.
	Unary struct {
		Op    token.Token
		OpPos token.Pos
		Right Expr
	}

	// Binary represents a binary expression, e.g. x + y.
	Binary struct {
		Left  Expr
		Op    token.Token
		OpPos token.Pos
		Right Expr
	}

	// Assignment represents an assignment expression, e.g. x = y or *p = y.
	// Target is guaranteed to satisfy IsAssignable after a successful parse
	// (spec §3 invariant).
	Assignment struct {
		Target Expr
		Eq     token.Pos
		Value  Expr
	}

	// Cast represents "X as Type", e.g. "n as float". Unlike the other
	// operators at its precedence level, the right-hand side names a static
	// type rather than an operand expression (spec §4.2 grammar, precedence
	// table row 1).
	Cast struct {
		X     Expr
		As    token.Pos
		To    Type
		ToEnd token.Pos
	}
)

func (n *Literal) Span() (start, end token.Pos) {
	line, col := n.Pos.LineCol()
	return n.Pos, token.MakePos(line, col+len(n.Raw))
}
func (n *Literal) expr() {}

func (n *Variable) Span() (start, end token.Pos) {
	line, col := n.Pos.LineCol()
	return n.Pos, token.MakePos(line, col+len(n.Name))
}
func (n *Variable) expr() {}

func (n *TypeLiteral) Span() (start, end token.Pos) { return n.Hash, n.End }
func (n *TypeLiteral) expr()                        {}

func (n *Call) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *Call) expr()                        {}

func (n *Unary) Span() (start, end token.Pos) {
	_, end = n.Right.Span()
	return n.OpPos, end
}
func (n *Unary) expr() {}

func (n *Binary) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *Binary) expr() {}

func (n *Assignment) Span() (start, end token.Pos) {
	start, _ = n.Target.Span()
	_, end = n.Value.Span()
	return start, end
}
func (n *Assignment) expr() {}

func (n *Cast) Span() (start, end token.Pos) {
	start, _ = n.X.Span()
	return start, n.ToEnd
}
func (n *Cast) expr() {}

// BadExpr stands in for an expression that failed to parse.
type BadExpr struct {
	Start, End token.Pos
}

func (n *BadExpr) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *BadExpr) expr()                        {}
