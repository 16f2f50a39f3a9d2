package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mna/nenuphar/lang/token"
)

// ErrorKind distinguishes the two diagnostic kinds this package produces
// (spec §7): a LexError surfaced by the scanner while it fed the parser
// tokens, or a ParseError raised by the parser itself.
type ErrorKind int

const (
	LexError ErrorKind = iota
	SyntaxError
)

// Error is a single parser-level diagnostic.
type Error struct {
	Kind ErrorKind
	Pos  token.Pos
	Msg  string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorList accumulates Errors in report order, in the same
// Unwrap()-[]error shape used by lang/scanner.ErrorList so both packages'
// diagnostics compose the same way for callers.
type ErrorList []Error

func (l *ErrorList) add(kind ErrorKind, pos token.Pos, msg string) {
	*l = append(*l, Error{Kind: kind, Pos: pos, Msg: msg})
}

func (l ErrorList) Sort() {
	sort.SliceStable(l, func(i, j int) bool { return l[i].Pos < l[j].Pos })
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (and %d more errors)", l[0].Error(), len(l)-1)
	return sb.String()
}

func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
