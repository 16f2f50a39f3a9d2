package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer pretty-prints an AST for the "parse" introspection command (spec
// §6.3 is a collaborator surface; this mirrors the teacher's ast.Printer so
// the front end stays inspectable the same way).
type Printer struct {
	// Output is the writer the tree is printed to.
	Output io.Writer

	// WithPos includes each node's source span in the printed line when
	// true.
	WithPos bool
}

// Print walks n depth-first, printing one indented line per node.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output, withPos: p.WithPos}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w       io.Writer
	withPos bool
	depth   int
	err     error
}

func (p *printer) Visit(n Node, dir VisitDirection) bool {
	if p.err != nil {
		return false
	}
	if dir == PostVisit {
		p.depth--
		return true
	}

	indent := strings.Repeat(". ", p.depth)
	p.depth++

	desc := describe(n)
	if p.withPos {
		start, end := n.Span()
		_, p.err = fmt.Fprintf(p.w, "%s[%s:%s] %s\n", indent, start, end, desc)
	} else {
		_, p.err = fmt.Fprintf(p.w, "%s%s\n", indent, desc)
	}
	return p.err == nil
}

// describe renders a single-line, args-only summary of n: the node kind
// plus whatever scalar fields distinguish it from its siblings. Children
// are not described here; Walk prints them as their own indented lines.
func describe(n Node) string {
	switch n := n.(type) {
	case *Program:
		return fmt.Sprintf("Program{%d decls}", len(n.Decls))
	case *FunctionDecl:
		kind := "FunctionDecl"
		if n.IsExtern {
			kind = "ExternDecl"
		}
		return fmt.Sprintf("%s{name=%s, params=%d, return=%s, variadic=%t}",
			kind, n.Name, len(n.Params), n.ReturnType, n.IsVariadic)
	case *Param:
		return fmt.Sprintf("Param{name=%s, type=%s}", n.Name, n.Type)
	case *BadDecl:
		return "BadDecl"
	case *ExprStmt:
		return "ExprStmt"
	case *VarDeclStmt:
		return fmt.Sprintf("VarDeclStmt{name=%s, type=%s, hasInit=%t}", n.Name, n.Type, n.Initializer != nil)
	case *ReturnStmt:
		return fmt.Sprintf("ReturnStmt{hasValue=%t}", n.Value != nil)
	case *IfStmt:
		return fmt.Sprintf("IfStmt{hasElse=%t}", len(n.Else) > 0)
	case *WhileLoop:
		return "WhileLoop"
	case *Literal:
		return fmt.Sprintf("Literal{%s}", n.Raw)
	case *Variable:
		return fmt.Sprintf("Variable{%s}", n.Name)
	case *TypeLiteral:
		return fmt.Sprintf("TypeLiteral{%s}", n.Name)
	case *Call:
		return fmt.Sprintf("Call{callee=%s, args=%d}", n.Callee, len(n.Args))
	case *Unary:
		return fmt.Sprintf("Unary{op=%s}", n.Op)
	case *Binary:
		return fmt.Sprintf("Binary{op=%s}", n.Op)
	case *Assignment:
		return "Assignment"
	case *Cast:
		return fmt.Sprintf("Cast{to=%s}", n.To)
	case *BadExpr:
		return "BadExpr"
	default:
		return fmt.Sprintf("%T", n)
	}
}
