// Package ast defines the types that represent the abstract syntax tree
// (AST) of the source language (spec §3 "AST"). The AST is immutable after
// construction: the parser builds it bottom-up and nothing in the pipeline
// mutates a node in place afterwards.
package ast

import (
	"github.com/mna/nenuphar/lang/token"
	"github.com/mna/nenuphar/lang/types"
)

// Node is implemented by every AST node.
type Node interface {
	// Span reports the start and end position of the node, for diagnostics.
	Span() (start, end token.Pos)
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	decl()
}

// Stmt is a statement.
type Stmt interface {
	Node
	stmt()

	// BlockEnding reports whether the statement should only appear as the
	// last statement in a block (only ReturnStmt, in this language).
	BlockEnding() bool
}

// Expr is an expression.
type Expr interface {
	Node
	expr()
}

// Type is the static type of an expression or declaration: either a
// types.ValueType tag or a types.TypedPointer (spec §3 "Values and
// types").
type Type = types.Type

// Program is the root of the AST: an ordered sequence of declarations
// (spec §3 "AST").
type Program struct {
	Decls []Decl
}

func (n *Program) Span() (start, end token.Pos) {
	if len(n.Decls) == 0 {
		return 0, 0
	}
	start, _ = n.Decls[0].Span()
	_, end = n.Decls[len(n.Decls)-1].Span()
	return start, end
}

// Param is a single function parameter: a name and its static type.
type Param struct {
	Name string
	Type Type
	Pos  token.Pos
}

func (n *Param) Span() (start, end token.Pos) {
	line, col := n.Pos.LineCol()
	return n.Pos, token.MakePos(line, col+len(n.Name))
}

// FunctionDecl represents a function or extern declaration (spec §3 "AST").
// An extern declaration has Body == nil and IsExtern == true; the front end
// never emits code for it, it only registers its signature (spec §4.3).
type FunctionDecl struct {
	Start      token.Pos
	End        token.Pos
	Name       string
	Params     []*Param
	ReturnType Type
	Body       []Stmt
	IsExtern   bool
	IsVariadic bool
}

func (n *FunctionDecl) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *FunctionDecl) decl()                        {}

// BadDecl stands in for a declaration that failed to parse, produced during
// synchronization after a parse error (spec §4.2 "Failure modes").
type BadDecl struct {
	Start, End token.Pos
}

func (n *BadDecl) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *BadDecl) decl()                        {}
