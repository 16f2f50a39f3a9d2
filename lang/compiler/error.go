package compiler

import (
	"fmt"

	"github.com/mna/nenuphar/lang/token"
)

// ErrorKind identifies the category of a CodegenError (spec §7 "Error
// handling design").
type ErrorKind int

const (
	UnknownName ErrorKind = iota
	DuplicateName
	TypeMismatch
	ArityMismatch
	InvalidAssignmentTarget
	AddressOfNonVariable
	DerefOfNonPointer
	UnsupportedOperator
	ConstantPoolOverflow
	CodeLengthOverflow
	FunctionTableOverflow
)

var errorKindNames = [...]string{
	UnknownName:             "unknown name",
	DuplicateName:           "duplicate name",
	TypeMismatch:            "type mismatch",
	ArityMismatch:           "arity mismatch",
	InvalidAssignmentTarget: "invalid assignment target",
	AddressOfNonVariable:    "address-of non-variable",
	DerefOfNonPointer:       "dereference of non-pointer",
	UnsupportedOperator:     "unsupported operator",
	ConstantPoolOverflow:    "constant pool overflow",
	CodeLengthOverflow:      "code length overflow",
	FunctionTableOverflow:   "function table overflow",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("codegen error kind(%d)", int(k))
}

// Error is a fatal code generation error. Codegen errors abort compilation
// of the whole program immediately; the first one encountered is the one
// surfaced to the caller (spec §7 "Error handling design").
type Error struct {
	Kind ErrorKind
	Pos  token.Pos
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}

func errf(kind ErrorKind, pos token.Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
