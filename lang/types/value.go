// Package types defines the value-type tag set, the compile-time Value
// representation used by the constant pool, and the TypedPointer static
// type used by the code generator's type checker (spec §3 "Values and
// types").
package types

import "fmt"

// ValueType is the tag of a runtime value kind. Identities are the ordinal
// positions in this enumeration and appear directly in the binary encoding
// (spec §6.1): implementations MUST NOT reorder these constants.
type ValueType uint8

const (
	INT ValueType = iota
	FLOAT
	STRING
	BOOL
	NONE
	LIST
	STRUCT
	POINTER

	maxValueType
)

func (t ValueType) String() string {
	if int(t) < len(valueTypeNames) {
		return valueTypeNames[t]
	}
	return fmt.Sprintf("valuetype(%d)", uint8(t))
}

var valueTypeNames = [...]string{
	INT:     "int",
	FLOAT:   "float",
	STRING:  "string",
	BOOL:    "bool",
	NONE:    "none",
	LIST:    "list",
	STRUCT:  "struct",
	POINTER: "pointer",
}

// IsScalar reports whether t is INT or FLOAT, the two types that
// participate in arithmetic and ordered comparison (spec §4.3 "Type
// rules").
func (t ValueType) IsScalar() bool {
	return t == INT || t == FLOAT
}

// Value is a tagged compile-time value: a (type, payload) pair held in the
// code generator's constant pool. Only INT, FLOAT, STRING and BOOL carry a
// payload; NONE (produced for a null literal), LIST, STRUCT and POINTER
// carry none, and LIST, STRUCT and POINTER constants are never produced by
// this front end (spec §3 "Constants pool").
type Value struct {
	Type ValueType

	Int    int64
	Float  float64
	Str    string
	Bool   bool
}

// Int64 returns a Value of type INT with the given payload.
func Int64(v int64) Value { return Value{Type: INT, Int: v} }

// Float64 returns a Value of type FLOAT with the given payload.
func Float64(v float64) Value { return Value{Type: FLOAT, Float: v} }

// String returns a Value of type STRING with the given payload.
func String(v string) Value { return Value{Type: STRING, Str: v} }

// Bool returns a Value of type BOOL with the given payload.
func Bool(v bool) Value { return Value{Type: BOOL, Bool: v} }

// Equal reports whether v and o have the same (type, payload), the
// criterion the constant pool deduplicates on (spec §3 "Constants pool").
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case INT:
		return v.Int == o.Int
	case FLOAT:
		return v.Float == o.Float
	case STRING:
		return v.Str == o.Str
	case BOOL:
		return v.Bool == o.Bool
	default:
		// NONE/LIST/STRUCT/POINTER constants carry no payload: any two
		// constants of the same tag are equal.
		return true
	}
}

func (v Value) String() string {
	switch v.Type {
	case INT:
		return fmt.Sprintf("int %d", v.Int)
	case FLOAT:
		return fmt.Sprintf("float %v", v.Float)
	case STRING:
		return fmt.Sprintf("string %q", v.Str)
	case BOOL:
		return fmt.Sprintf("bool %t", v.Bool)
	default:
		return v.Type.String()
	}
}

// TypedPointer is the compile-time type "pointer to T". It is distinct from
// the runtime POINTER tag: the compiler uses TypedPointer for static
// checking only, and it must never leak into the serialized form (spec
// §3 "Values and types", §9). Elem is itself a Type so that the grammar's
// recursive "pointer(pointer(int))" is representable; the code generator
// produces one such nested pointer when '&' is applied to a pointer-typed
// local.
type TypedPointer struct {
	Elem Type
}

func (p TypedPointer) String() string { return "pointer(" + p.Elem.String() + ")" }

// Type is implemented by both ValueType and TypedPointer so the code
// generator can use a single static-type representation throughout
// (spec §4.3).
type Type interface {
	fmt.Stringer
	isType()
}

func (t ValueType) isType()    {}
func (t TypedPointer) isType() {}

// Equal reports whether two static types are identical.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case ValueType:
		b, ok := b.(ValueType)
		return ok && a == b
	case TypedPointer:
		b, ok := b.(TypedPointer)
		return ok && a.Elem == b.Elem
	default:
		return false
	}
}
