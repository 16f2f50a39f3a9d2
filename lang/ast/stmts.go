package ast

import "github.com/mna/nenuphar/lang/token"

type (
	// ExprStmt represents an expression used as a statement (spec §3 "AST").
	ExprStmt struct {
		X Expr
	}

	// VarDeclStmt represents a local variable declaration, e.g.
	// "var x: int = 1" (spec §3 "AST").
	VarDeclStmt struct {
		Start       token.Pos
		Name        string
		Type        Type // the declared static type
		Initializer Expr // nil if absent
		End         token.Pos
	}

	// ReturnStmt represents a return statement. Value is nil if the return
	// has no expression, which implies a NONE return (spec §3 invariant).
	ReturnStmt struct {
		Start token.Pos
		Value Expr
		End   token.Pos
	}

	// IfStmt represents an if/then/else/end statement. Else is nil if there
	// is no else branch (spec §3 invariant).
	IfStmt struct {
		Start token.Pos
		Cond  Expr
		Then  []Stmt
		Else  []Stmt
		End   token.Pos
	}

	// WhileLoop represents a while/then/end loop.
	WhileLoop struct {
		Start token.Pos
		Cond  Expr
		Body  []Stmt
		End   token.Pos
	}
)

func (n *ExprStmt) Span() (start, end token.Pos) { return n.X.Span() }
func (n *ExprStmt) stmt()                        {}
func (n *ExprStmt) BlockEnding() bool            { return false }

func (n *VarDeclStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *VarDeclStmt) stmt()                        {}
func (n *VarDeclStmt) BlockEnding() bool            { return false }

func (n *ReturnStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *ReturnStmt) stmt()                        {}
func (n *ReturnStmt) BlockEnding() bool            { return true }

func (n *IfStmt) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *IfStmt) stmt()                        {}
func (n *IfStmt) BlockEnding() bool            { return false }

func (n *WhileLoop) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *WhileLoop) stmt()                        {}
func (n *WhileLoop) BlockEnding() bool            { return false }

