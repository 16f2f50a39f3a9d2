package compiler

import (
	"github.com/mna/nenuphar/lang/ast"
	"github.com/mna/nenuphar/lang/token"
	"github.com/mna/nenuphar/lang/types"
)

// fcomp holds the per-function compiler state: the code being emitted and
// the flat, ordered local-slot table (spec §4.3 "Local-slot allocation";
// names are flat across a function body, no block scoping).
type fcomp struct {
	pc     *pcomp
	code   []Instruction
	locals []localBinding
}

type localBinding struct {
	name string
	typ  types.Type
}

func (fc *fcomp) lookupLocal(name string) (slot int, typ types.Type, ok bool) {
	for i, l := range fc.locals {
		if l.name == name {
			return i, l.typ, true
		}
	}
	return 0, nil, false
}

// emit appends an instruction and returns its index, for use as a jump
// patch hole (spec §4.3 "Forward-jump patching").
func (fc *fcomp) emit(op Opcode, arg uint8) int {
	fc.code = append(fc.code, Instruction{Op: op, Arg: arg})
	return len(fc.code) - 1
}

// patch backfills the argument of a previously emitted jump instruction
// with the current instruction index (spec §4.3 "Forward-jump patching").
func (fc *fcomp) patch(hole int, pos token.Pos) error {
	target, err := toArg(len(fc.code), CodeLengthOverflow, pos, "jump target")
	if err != nil {
		return err
	}
	fc.code[hole].Arg = target
	return nil
}

func (pc *pcomp) emitFunction(idx int, fn *ast.FunctionDecl) error {
	fc := &fcomp{pc: pc}
	for _, p := range fn.Params {
		fc.locals = append(fc.locals, localBinding{name: p.Name, typ: p.Type})
	}

	for _, s := range fn.Body {
		if err := fc.emitStmt(s); err != nil {
			return err
		}
	}

	pc.functions[idx].Code = fc.code
	pc.functions[idx].NumLocals = len(fc.locals)
	return nil
}

// emitStmt emits s's code. A statement's own instructions leave the stack as
// they found it (spec §4.3 "Emission contract"), except that an expression
// statement other than an assignment leaves its expression's value behind
// (see the ExprStmt case).
func (fc *fcomp) emitStmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.VarDeclStmt:
		return fc.emitVarDecl(s)
	case *ast.ReturnStmt:
		return fc.emitReturn(s)
	case *ast.IfStmt:
		return fc.emitIf(s)
	case *ast.WhileLoop:
		return fc.emitWhile(s)
	case *ast.ExprStmt:
		// No Pop opcode exists in the instruction set (spec §3), so a bare
		// expression statement's residual value (e.g. the result of a Call
		// used for effect) is left on the stack as-is: nothing is emitted
		// after the CallFFI of a variadic FFI call statement. An Assignment
		// leaves no residue, since its store instruction consumes the value.
		_, err := fc.emitExpr(s.X)
		return err
	default:
		panic("compiler: unhandled statement type")
	}
}

func (fc *fcomp) emitVarDecl(s *ast.VarDeclStmt) error {
	if _, _, ok := fc.lookupLocal(s.Name); ok {
		return errf(DuplicateName, s.Start, "variable %q already declared", s.Name)
	}
	slot := len(fc.locals)
	fc.locals = append(fc.locals, localBinding{name: s.Name, typ: s.Type})

	if s.Initializer == nil {
		return nil
	}
	t, err := fc.emitExpr(s.Initializer)
	if err != nil {
		return err
	}
	if !typesCompatible(s.Type, t) {
		return errf(TypeMismatch, s.Start, "variable %q: expected %s, got %s", s.Name, s.Type, t)
	}
	arg, err := toArg(slot, CodeLengthOverflow, s.Start, "local slot")
	if err != nil {
		return err
	}
	fc.emit(STOREVAR, arg)
	return nil
}

func (fc *fcomp) emitReturn(s *ast.ReturnStmt) error {
	if s.Value != nil {
		// Caller-side return type is not re-checked here (spec §4.3 "Return").
		if _, err := fc.emitExpr(s.Value); err != nil {
			return err
		}
	}
	fc.emit(RET, 0)
	return nil
}

func (fc *fcomp) emitIf(s *ast.IfStmt) error {
	condType, err := fc.emitExpr(s.Cond)
	if err != nil {
		return err
	}
	if !types.Equal(condType, types.BOOL) {
		return errf(TypeMismatch, s.Start, "if condition: expected bool, got %s", condType)
	}

	j1 := fc.emit(JZ, 0)
	for _, st := range s.Then {
		if err := fc.emitStmt(st); err != nil {
			return err
		}
	}
	j2 := fc.emit(JMP, 0)
	if err := fc.patch(j1, s.Start); err != nil {
		return err
	}
	for _, st := range s.Else {
		if err := fc.emitStmt(st); err != nil {
			return err
		}
	}
	if err := fc.patch(j2, s.Start); err != nil {
		return err
	}
	return nil
}

func (fc *fcomp) emitWhile(s *ast.WhileLoop) error {
	head := len(fc.code)
	condType, err := fc.emitExpr(s.Cond)
	if err != nil {
		return err
	}
	if !types.Equal(condType, types.BOOL) {
		return errf(TypeMismatch, s.Start, "while condition: expected bool, got %s", condType)
	}

	j1 := fc.emit(JZ, 0)
	for _, st := range s.Body {
		if err := fc.emitStmt(st); err != nil {
			return err
		}
	}
	headArg, err := toArg(head, CodeLengthOverflow, s.Start, "loop head")
	if err != nil {
		return err
	}
	fc.emit(JMP, headArg)
	if err := fc.patch(j1, s.Start); err != nil {
		return err
	}
	return nil
}

// emitExpr emits e's code, leaving exactly one result value on the stack,
// and returns its static type (spec §4.3 "Emission contract"). An Assignment
// is the exception: its StoreVar or StoreDeref consumes the value, so it
// leaves nothing on the stack.
func (fc *fcomp) emitExpr(e ast.Expr) (types.Type, error) {
	switch e := e.(type) {
	case *ast.Literal:
		return fc.emitLiteral(e)
	case *ast.Variable:
		return fc.emitVariable(e)
	case *ast.TypeLiteral:
		return fc.emitTypeLiteral(e)
	case *ast.Call:
		return fc.emitCall(e)
	case *ast.Unary:
		return fc.emitUnary(e)
	case *ast.Binary:
		return fc.emitBinary(e)
	case *ast.Assignment:
		return fc.emitAssignment(e)
	case *ast.Cast:
		return fc.emitCast(e)
	default:
		// A BadExpr (or any other parse-error residue) must never reach the
		// code generator: the caller is responsible for only compiling
		// programs that parsed without error.
		panic("compiler: unhandled (or bad) expression node")
	}
}

func literalValue(lit *ast.Literal) (types.Value, bool) {
	switch v := lit.Value.(type) {
	case int64:
		return types.Int64(v), true
	case float64:
		return types.Float64(v), true
	case string:
		return types.String(v), true
	case bool:
		return types.Bool(v), true
	case nil:
		return types.Value{Type: types.NONE}, true
	default:
		return types.Value{}, false
	}
}

func (fc *fcomp) emitLiteral(lit *ast.Literal) (types.Type, error) {
	v, ok := literalValue(lit)
	if !ok {
		return nil, errf(UnsupportedOperator, lit.Pos, "unrecognized literal")
	}
	arg, err := fc.pc.internConstant(lit.Pos, v)
	if err != nil {
		return nil, err
	}
	fc.emit(LOADCONST, arg)
	return v.Type, nil
}

func (fc *fcomp) emitVariable(v *ast.Variable) (types.Type, error) {
	slot, typ, ok := fc.lookupLocal(v.Name)
	if !ok {
		return nil, errf(UnknownName, v.Pos, "undefined variable %q", v.Name)
	}
	arg, err := toArg(slot, CodeLengthOverflow, v.Pos, "local slot")
	if err != nil {
		return nil, err
	}
	fc.emit(LOADVAR, arg)
	return typ, nil
}

// typeLiteralOrdinals names the static types nameable in a "#Type"
// expression (spec §4.2 grammar "Primary").
var typeLiteralOrdinals = map[string]types.ValueType{
	"int": types.INT, "float": types.FLOAT, "string": types.STRING,
	"bool": types.BOOL, "none": types.NONE, "pointer": types.POINTER,
}

// emitTypeLiteral compiles "#int" etc. to an INT constant holding the named
// type's ordinal, the same encoding the variadic-FFI call site uses to tag
// an argument's runtime type out of band (original prototype's getData(),
// e.g. Value(ValueType.INT.value, ValueType.INT)).
func (fc *fcomp) emitTypeLiteral(tl *ast.TypeLiteral) (types.Type, error) {
	vt, ok := typeLiteralOrdinals[tl.Name]
	if !ok {
		return nil, errf(UnknownName, tl.Hash, "unknown type %q", tl.Name)
	}
	arg, err := fc.pc.internConstant(tl.Hash, types.Int64(int64(vt)))
	if err != nil {
		return nil, err
	}
	fc.emit(LOADCONST, arg)
	return types.INT, nil
}

func (fc *fcomp) emitCall(call *ast.Call) (types.Type, error) {
	start, _ := call.Span()

	// Resolution order: extern table first, then the regular function
	// table (spec §4.3 "Call").
	var target Function
	var opcode Opcode
	var idx uint32
	if i, ok := fc.pc.externIdx.Get(call.Callee); ok {
		idx, target, opcode = i, fc.pc.externs[i], CALLFFI
	} else if i, ok := fc.pc.funcIdx.Get(call.Callee); ok {
		idx, target, opcode = i, fc.pc.functions[i], CALL
	} else {
		return nil, errf(UnknownName, start, "undefined function %q", call.Callee)
	}

	if !target.IsVariadic && len(call.Args) != len(target.ArgTypes) {
		return nil, errf(ArityMismatch, start, "%q expects %d argument(s), got %d", call.Callee, len(target.ArgTypes), len(call.Args))
	}

	// Arguments are pushed in reverse declaration order (spec §4.3 "Call";
	// §8 law "argument evaluation order").
	argTypes := make([]types.Type, len(call.Args))
	for i := len(call.Args) - 1; i >= 0; i-- {
		t, err := fc.emitExpr(call.Args[i])
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}

	if !target.IsVariadic {
		for i, t := range argTypes {
			if !typesCompatible(target.ArgTypes[i], t) {
				return nil, errf(TypeMismatch, start, "%q argument %d: expected %s, got %s", call.Callee, i, target.ArgTypes[i], t)
			}
		}
	}

	argIdx, err := toArg(int(idx), FunctionTableOverflow, start, "call target")
	if err != nil {
		return nil, err
	}
	fc.emit(opcode, argIdx)
	return target.ReturnType, nil
}

func (fc *fcomp) emitUnary(u *ast.Unary) (types.Type, error) {
	switch u.Op {
	case token.MINUS:
		return fc.emitNegate(u)
	case token.BANG:
		t, err := fc.emitExpr(u.Right)
		if err != nil {
			return nil, err
		}
		if !types.Equal(t, types.BOOL) {
			return nil, errf(TypeMismatch, u.OpPos, "!: expected bool, got %s", t)
		}
		fc.emit(NOTB, 0)
		return types.BOOL, nil
	case token.AMP:
		v, ok := u.Right.(*ast.Variable)
		if !ok {
			return nil, errf(AddressOfNonVariable, u.OpPos, "& requires a variable operand")
		}
		slot, typ, ok := fc.lookupLocal(v.Name)
		if !ok {
			return nil, errf(UnknownName, v.Pos, "undefined variable %q", v.Name)
		}
		arg, err := toArg(slot, CodeLengthOverflow, v.Pos, "local slot")
		if err != nil {
			return nil, err
		}
		fc.emit(LOADADDR, arg)
		return types.TypedPointer{Elem: typ}, nil
	case token.STAR:
		t, err := fc.emitExpr(u.Right)
		if err != nil {
			return nil, err
		}
		ptr, ok := t.(types.TypedPointer)
		if !ok {
			return nil, errf(DerefOfNonPointer, u.OpPos, "* requires a pointer operand, got %s", t)
		}
		fc.emit(DEREF, 0)
		return ptr.Elem, nil
	default:
		return nil, errf(UnsupportedOperator, u.OpPos, "unsupported unary operator %s", u.Op)
	}
}

// emitNegate compiles "-x" as "0 - x": the instruction set has no
// dedicated negation opcode, only typed Sub, so unary minus is synthesized
// from the zero constant of x's type, a Swap to put x on top, then Sub.
func (fc *fcomp) emitNegate(u *ast.Unary) (types.Type, error) {
	t, err := fc.emitExpr(u.Right)
	if err != nil {
		return nil, err
	}
	vt, ok := t.(types.ValueType)
	if !ok || !vt.IsScalar() {
		return nil, errf(TypeMismatch, u.OpPos, "unary -: expected int or float, got %s", t)
	}

	var zero types.Value
	var op Opcode
	if vt == types.INT {
		zero, op = types.Int64(0), SUBI
	} else {
		zero, op = types.Float64(0), SUBF
	}
	arg, err := fc.pc.internConstant(u.OpPos, zero)
	if err != nil {
		return nil, err
	}
	fc.emit(LOADCONST, arg)
	fc.emit(SWAP, 0)
	fc.emit(op, 0)
	return vt, nil
}

func arithOpcode(op token.Token, vt types.ValueType) Opcode {
	isFloat := vt == types.FLOAT
	switch op {
	case token.PLUS:
		if isFloat {
			return ADDF
		}
		return ADDI
	case token.MINUS:
		if isFloat {
			return SUBF
		}
		return SUBI
	case token.STAR:
		if isFloat {
			return MULF
		}
		return MULI
	case token.SLASH:
		if isFloat {
			return DIVF
		}
		return DIVI
	}
	return NOP
}

func compareOpcode(op token.Token, vt types.ValueType) Opcode {
	isFloat := vt == types.FLOAT
	switch op {
	case token.EQ:
		if isFloat {
			return EQF
		}
		return EQI
	case token.NEQ:
		if isFloat {
			return NEQF
		}
		return NEQI
	case token.LT:
		if isFloat {
			return LTF
		}
		return LTI
	case token.GT:
		if isFloat {
			return GTF
		}
		return GTI
	}
	return NOP
}

func isComparison(op token.Token) bool {
	switch op {
	case token.EQ, token.NEQ, token.LT, token.GT:
		return true
	}
	return false
}

func (fc *fcomp) emitBinary(b *ast.Binary) (types.Type, error) {
	if v, ok := fc.tryFold(b); ok {
		arg, err := fc.pc.internConstant(b.OpPos, v)
		if err != nil {
			return nil, err
		}
		fc.emit(LOADCONST, arg)
		return v.Type, nil
	}

	lt, err := fc.emitExpr(b.Left)
	if err != nil {
		return nil, err
	}
	rt, err := fc.emitExpr(b.Right)
	if err != nil {
		return nil, err
	}

	if isComparison(b.Op) {
		lvt, lok := lt.(types.ValueType)
		rvt, rok := rt.(types.ValueType)
		if !lok || !rok || !lvt.IsScalar() || !types.Equal(lt, rt) {
			return nil, errf(TypeMismatch, b.OpPos, "%s: operands must have equal scalar type, got %s and %s", b.Op, lt, rt)
		}
		fc.emit(compareOpcode(b.Op, lvt), 0)
		return types.BOOL, nil
	}

	lptr, lIsPtr := lt.(types.TypedPointer)
	rptr, rIsPtr := rt.(types.TypedPointer)
	switch {
	case lIsPtr && rIsPtr:
		return nil, errf(TypeMismatch, b.OpPos, "%s: pointer arithmetic requires one int operand", b.Op)
	case lIsPtr:
		if !types.Equal(rt, types.INT) {
			return nil, errf(TypeMismatch, b.OpPos, "%s: pointer arithmetic requires an int operand, got %s", b.Op, rt)
		}
		fc.emit(arithOpcode(b.Op, types.INT), 0)
		return lptr, nil
	case rIsPtr:
		if !types.Equal(lt, types.INT) {
			return nil, errf(TypeMismatch, b.OpPos, "%s: pointer arithmetic requires an int operand, got %s", b.Op, lt)
		}
		fc.emit(arithOpcode(b.Op, types.INT), 0)
		return rptr, nil
	}

	lvt, lok := lt.(types.ValueType)
	if !lok || !lvt.IsScalar() || !types.Equal(lt, rt) {
		return nil, errf(TypeMismatch, b.OpPos, "%s: operands must have equal scalar type, got %s and %s", b.Op, lt, rt)
	}
	fc.emit(arithOpcode(b.Op, lvt), 0)
	return lvt, nil
}

// typesCompatible reports whether a value of type got may be used where want
// is required. This is almost always types.Equal, except at a function call
// boundary: a parameter or return type crossing the wire-level signature is
// only ever the coarse POINTER tag (pointee element types aren't tracked
// past a call), so any pointer satisfies a POINTER-tagged want and vice
// versa.
func typesCompatible(want, got types.Type) bool {
	if types.Equal(want, got) {
		return true
	}
	isPointer := func(t types.Type) bool {
		if vt, ok := t.(types.ValueType); ok && vt == types.POINTER {
			return true
		}
		_, ok := t.(types.TypedPointer)
		return ok
	}
	return isPointer(want) && isPointer(got)
}

func (fc *fcomp) emitAssignment(a *ast.Assignment) (types.Type, error) {
	switch target := a.Target.(type) {
	case *ast.Variable:
		slot, declType, ok := fc.lookupLocal(target.Name)
		if !ok {
			return nil, errf(UnknownName, target.Pos, "undefined variable %q", target.Name)
		}
		t, err := fc.emitExpr(a.Value)
		if err != nil {
			return nil, err
		}
		if !typesCompatible(declType, t) {
			return nil, errf(TypeMismatch, a.Eq, "assignment to %q: expected %s, got %s", target.Name, declType, t)
		}
		arg, err := toArg(slot, CodeLengthOverflow, a.Eq, "local slot")
		if err != nil {
			return nil, err
		}
		fc.emit(STOREVAR, arg)
		return t, nil

	case *ast.Unary: // '*p = value', validated as STAR by the parser
		t, err := fc.emitExpr(a.Value)
		if err != nil {
			return nil, err
		}
		// (current implementation checks INT; spec §4.3 "Assignment to *p")
		if !types.Equal(t, types.INT) {
			return nil, errf(TypeMismatch, a.Eq, "assignment through pointer: expected int, got %s", t)
		}
		ptrType, err := fc.emitExpr(target.Right)
		if err != nil {
			return nil, err
		}
		ptr, ok := ptrType.(types.TypedPointer)
		if !ok || !types.Equal(ptr.Elem, types.INT) {
			return nil, errf(DerefOfNonPointer, a.Eq, "assignment through pointer: expected pointer(int), got %s", ptrType)
		}
		fc.emit(STOREDEREF, 0)
		return t, nil

	default:
		return nil, errf(InvalidAssignmentTarget, a.Eq, "invalid assignment target")
	}
}

func (fc *fcomp) emitCast(c *ast.Cast) (types.Type, error) {
	xt, err := fc.emitExpr(c.X)
	if err != nil {
		return nil, err
	}
	if types.Equal(xt, c.To) {
		return xt, nil
	}
	if types.Equal(xt, types.INT) && types.Equal(c.To, types.FLOAT) {
		fc.emit(CASTITOF, 0)
		return types.FLOAT, nil
	}
	if types.Equal(xt, types.FLOAT) && types.Equal(c.To, types.INT) {
		fc.emit(CASTFTOI, 0)
		return types.INT, nil
	}
	return nil, errf(UnsupportedOperator, c.As, "unsupported cast from %s to %s", xt, c.To)
}

// tryFold recursively evaluates a literal-only expression tree at compile
// time (spec §4.3 "Constant folding"). It reports ok == false, emitting
// nothing, as soon as it finds a subexpression that is not a literal or a
// foldable Binary, so the caller falls back to ordinary emission.
func (fc *fcomp) tryFold(e ast.Expr) (types.Value, bool) {
	switch e := e.(type) {
	case *ast.Literal:
		return literalValue(e)
	case *ast.Binary:
		if !isFoldableOp(e.Op) {
			return types.Value{}, false
		}
		l, ok := fc.tryFold(e.Left)
		if !ok {
			return types.Value{}, false
		}
		r, ok := fc.tryFold(e.Right)
		if !ok {
			return types.Value{}, false
		}
		return foldBinary(e.Op, l, r)
	default:
		return types.Value{}, false
	}
}

func isFoldableOp(op token.Token) bool {
	switch op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.EQ, token.NEQ, token.LT, token.GT:
		return true
	}
	return false
}

// foldBinary evaluates op over two already-folded scalar constants (spec
// §4.3 "Constant folding", §8 law "constant folding is sound").
func foldBinary(op token.Token, l, r types.Value) (types.Value, bool) {
	if l.Type != r.Type || !l.Type.IsScalar() {
		return types.Value{}, false
	}
	isFloat := l.Type == types.FLOAT

	if isComparison(op) {
		var cmp bool
		if isFloat {
			cmp = compareFloat(op, l.Float, r.Float)
		} else {
			cmp = compareInt(op, l.Int, r.Int)
		}
		return types.Bool(cmp), true
	}

	if isFloat {
		v, ok := foldFloatArith(op, l.Float, r.Float)
		return types.Float64(v), ok
	}
	v, ok := foldIntArith(op, l.Int, r.Int)
	return types.Int64(v), ok
}

func foldIntArith(op token.Token, l, r int64) (int64, bool) {
	switch op {
	case token.PLUS:
		return l + r, true
	case token.MINUS:
		return l - r, true
	case token.STAR:
		return l * r, true
	case token.SLASH:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	}
	return 0, false
}

func foldFloatArith(op token.Token, l, r float64) (float64, bool) {
	switch op {
	case token.PLUS:
		return l + r, true
	case token.MINUS:
		return l - r, true
	case token.STAR:
		return l * r, true
	case token.SLASH:
		return l / r, true
	}
	return 0, false
}

func compareInt(op token.Token, l, r int64) bool {
	switch op {
	case token.EQ:
		return l == r
	case token.NEQ:
		return l != r
	case token.LT:
		return l < r
	case token.GT:
		return l > r
	}
	return false
}

func compareFloat(op token.Token, l, r float64) bool {
	switch op {
	case token.EQ:
		return l == r
	case token.NEQ:
		return l != r
	case token.LT:
		return l < r
	case token.GT:
		return l > r
	}
	return false
}
