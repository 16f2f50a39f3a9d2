package compiler

import "github.com/mna/nenuphar/lang/types"

// Function is the compiled form of one source-level function or extern
// declaration. Program.Functions and Program.Externs are each indexed by
// declaration order; a Call instruction carries an index into Functions and
// a CallFFI instruction an index into Externs (spec §3 invariant "function
// table index").
type Function struct {
	Name       string
	ArgTypes   []types.ValueType
	ReturnType types.ValueType
	Code       []Instruction
	IsVariadic bool
	IsExtern   bool

	// NumLocals is the number of local variable slots the function's frame
	// needs, parameters first, then locals in declaration order (spec §4.3
	// "Local slot allocation").
	NumLocals int
}

// Program is the compiler's output: a deduplicated constant pool (entries
// are looked up by their whole Value during compilation so the pool never
// holds two entries describing the same value) and the two independent,
// name-indexed function tables it indexes into (spec §3 "Functions" —
// "Extern functions ... live in a separate ordered table; their index
// space is independent of non-extern functions"). Only Constants and
// Functions are part of the binary wire format (spec §6.1); Externs is
// compile-time bookkeeping only — spec §9 "the encoded binary does not
// carry FFI names", so a runtime must already agree on what each CallFFI
// index names.
type Program struct {
	Constants []types.Value
	Functions []Function
	Externs   []Function
}
