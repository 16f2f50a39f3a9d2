package scanner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mna/nenuphar/lang/token"
)

// LexError records a single scanning diagnostic: an unknown character, or a
// malformed literal (spec §7 "LexError"). Lexing never aborts on a LexError:
// the scanner advances one character and keeps producing tokens.
type LexError struct {
	Pos token.Pos
	Msg string
}

func (e LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorList accumulates LexErrors in the order they are reported. Its zero
// value is ready to use. The shape (an Unwrap() []error accumulator with a
// combined Error() string) mirrors go/scanner.ErrorList so callers can treat
// it the same way they would a stdlib scanner's diagnostics.
type ErrorList []LexError

// Add appends a diagnostic at pos.
func (l *ErrorList) Add(pos token.Pos, msg string) {
	*l = append(*l, LexError{Pos: pos, Msg: msg})
}

// Sort orders the list by position, for stable, human-readable output.
func (l ErrorList) Sort() {
	sort.Slice(l, func(i, j int) bool { return l[i].Pos < l[j].Pos })
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

// Unwrap lets errors.Is/As traverse every accumulated diagnostic.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns l as an error, or nil if l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
