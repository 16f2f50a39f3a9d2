// Package compiler implements the type-checking code generator: it walks a
// parsed ast.Program and lowers it to a sealed, bytecode-encoded Program
// (spec §4.3 "Code generator & type checker").
package compiler

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/mna/nenuphar/lang/ast"
	"github.com/mna/nenuphar/lang/token"
	"github.com/mna/nenuphar/lang/types"
)

// state is the code-gen session state machine of spec §4.3 "State machine
// of a code-gen session".
type state int

const (
	idle state = iota
	registering
	emitting
	sealed
)

// Compile type-checks and lowers prog to bytecode. It returns the first
// CodegenError encountered; codegen aborts the whole program immediately on
// error rather than accumulating diagnostics the way parsing does (spec §7
// "Error handling design").
func Compile(prog *ast.Program) (*Program, error) {
	pc := &pcomp{
		state:       idle,
		constantIdx: swiss.NewMap[types.Value, uint32](8),
		funcIdx:     swiss.NewMap[string, uint32](8),
		externIdx:   swiss.NewMap[string, uint32](8),
	}
	return pc.compile(prog)
}

// pcomp holds the whole-program compiler state: the constant pool and the
// two independent, insertion-ordered function tables (spec §4.3, §9 "FFI
// index space").
type pcomp struct {
	state state

	constants   []types.Value
	constantIdx *swiss.Map[types.Value, uint32] // dedup index, spec §3 "Constants pool"

	functions []Function
	funcIdx   *swiss.Map[string, uint32]

	externs   []Function
	externIdx *swiss.Map[string, uint32]

	// decl[i] is the ast.FunctionDecl that registered functions[i], kept
	// around between the registration and emission passes.
	decl []*ast.FunctionDecl
}

func (pc *pcomp) compile(prog *ast.Program) (*Program, error) {
	pc.state = registering
	for _, d := range prog.Decls {
		fn, ok := d.(*ast.FunctionDecl)
		if !ok {
			continue // BadDecl: the caller should not compile a program with parse errors
		}
		if err := pc.register(fn); err != nil {
			return nil, err
		}
	}

	pc.state = emitting
	for i, fn := range pc.decl {
		if fn.IsExtern {
			continue
		}
		if err := pc.emitFunction(i, fn); err != nil {
			return nil, err
		}
	}
	pc.state = sealed

	return &Program{Constants: pc.constants, Functions: pc.functions, Externs: pc.externs}, nil
}

// wireValueType maps a static type to the ValueType tag its values carry on
// the stack and in the wire format. Pointers of any pointee type all map to
// the single POINTER tag: the signature only needs to know a slot holds an
// address, not what it points to (that's tracked statically during codegen,
// spec §3 "Pointer" vs "TypedPointer").
func wireValueType(t types.Type) (types.ValueType, error) {
	switch t := t.(type) {
	case types.ValueType:
		return t, nil
	case types.TypedPointer:
		return types.POINTER, nil
	default:
		return 0, fmt.Errorf("unrepresentable type %s", t)
	}
}

// register adds fn's signature to the appropriate table. Externs and
// regular functions occupy independent index spaces (spec §9 "Open
// question — FFI index space"); a duplicate name within either table is an
// error.
func (pc *pcomp) register(fn *ast.FunctionDecl) error {
	start, _ := fn.Span()

	argTypes := make([]types.ValueType, len(fn.Params))
	for i, p := range fn.Params {
		vt, err := wireValueType(p.Type)
		if err != nil {
			return errf(UnsupportedOperator, start, "parameter %q has unsupported type %s", p.Name, p.Type)
		}
		argTypes[i] = vt
	}
	retType, err := wireValueType(fn.ReturnType)
	if err != nil {
		return errf(UnsupportedOperator, start, "function %q has unsupported return type %s", fn.Name, fn.ReturnType)
	}

	entry := Function{
		Name:       fn.Name,
		ArgTypes:   argTypes,
		ReturnType: retType,
		IsVariadic: fn.IsVariadic,
		IsExtern:   fn.IsExtern,
		NumLocals:  len(fn.Params),
	}

	if fn.IsExtern {
		if _, exists := pc.externIdx.Get(fn.Name); exists {
			return errf(DuplicateName, start, "extern %q already declared", fn.Name)
		}
		idx, err := toArg(len(pc.externs), FunctionTableOverflow, start, "extern table")
		if err != nil {
			return err
		}
		pc.externIdx.Put(fn.Name, uint32(idx))
		pc.externs = append(pc.externs, entry)
		return nil
	}

	if _, exists := pc.funcIdx.Get(fn.Name); exists {
		return errf(DuplicateName, start, "function %q already declared", fn.Name)
	}
	idx, err := toArg(len(pc.functions), FunctionTableOverflow, start, "function table")
	if err != nil {
		return err
	}
	pc.funcIdx.Put(fn.Name, uint32(idx))
	pc.functions = append(pc.functions, entry)
	pc.decl = append(pc.decl, fn)
	return nil
}

// internConstant interns v in the deduplicated constant pool and returns
// its index.
func (pc *pcomp) internConstant(pos token.Pos, v types.Value) (uint8, error) {
	if idx, ok := pc.constantIdx.Get(v); ok {
		return toArg(int(idx), ConstantPoolOverflow, pos, "constant pool")
	}
	idx := len(pc.constants)
	arg, err := toArg(idx, ConstantPoolOverflow, pos, "constant pool")
	if err != nil {
		return 0, err
	}
	pc.constants = append(pc.constants, v)
	pc.constantIdx.Put(v, uint32(idx))
	return arg, nil
}

// toArg range-checks n against the single-byte instruction argument width
// (spec §6.1, §9 "Open question — bit-width limits") and reports kind if it
// overflows.
func toArg(n int, kind ErrorKind, pos token.Pos, what string) (uint8, error) {
	if n > 255 {
		return 0, errf(kind, pos, "%s exceeds 255 entries", what)
	}
	return uint8(n), nil
}
