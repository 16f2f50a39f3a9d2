package compiler

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/mna/nenuphar/lang/types"
)

// Encode serializes a sealed Program to the binary layout of spec §6.1
// (little-endian throughout). It is the mirror of Decode: decode(encode(p))
// reproduces p's constants and each function's return type, argument types
// and code (spec §8 invariant "Round-trip"). Function names, the variadic
// and extern flags, NumLocals and the Externs table are not encoded.
func Encode(prog *Program) ([]byte, error) {
	if len(prog.Constants) > 255 {
		return nil, fmt.Errorf("compiler: %d constants exceeds the 255-entry wire limit", len(prog.Constants))
	}
	if len(prog.Functions) > 255 {
		return nil, fmt.Errorf("compiler: %d functions exceeds the 255-entry wire limit", len(prog.Functions))
	}

	var buf bytes.Buffer
	buf.WriteByte(byte(len(prog.Constants)))
	for _, c := range prog.Constants {
		if err := encodeConstant(&buf, c); err != nil {
			return nil, err
		}
	}

	buf.WriteByte(byte(len(prog.Functions)))
	for _, fn := range prog.Functions {
		if err := encodeFunction(&buf, fn); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func encodeConstant(buf *bytes.Buffer, c types.Value) error {
	buf.WriteByte(byte(c.Type))
	switch c.Type {
	case types.INT:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(c.Int))
		buf.Write(b[:])
	case types.FLOAT:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(c.Float))
		buf.Write(b[:])
	case types.BOOL:
		if c.Bool {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case types.STRING:
		raw := []byte(c.Str)
		inner := uint32(len(raw))
		outer := inner + 4
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], outer)
		buf.Write(b[:])
		binary.LittleEndian.PutUint32(b[:], inner)
		buf.Write(b[:])
		buf.Write(raw)
	case types.NONE, types.LIST, types.STRUCT, types.POINTER:
		// no payload
	default:
		return fmt.Errorf("compiler: unsupported constant type %s", c.Type)
	}
	return nil
}

func encodeFunction(buf *bytes.Buffer, fn Function) error {
	if len(fn.ArgTypes) > 255 {
		return fmt.Errorf("compiler: function %q has more than 255 parameters", fn.Name)
	}
	if len(fn.Code) > 0xffff {
		return fmt.Errorf("compiler: function %q code length exceeds u16 range", fn.Name)
	}

	buf.WriteByte(byte(fn.ReturnType))
	buf.WriteByte(byte(len(fn.ArgTypes)))
	for _, at := range fn.ArgTypes {
		buf.WriteByte(byte(at))
	}

	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(len(fn.Code)))
	buf.Write(b[:])
	for _, instr := range fn.Code {
		buf.WriteByte(byte(instr.Op))
		buf.WriteByte(instr.Arg)
	}
	return nil
}

// Decode deserializes a Program from the binary layout of spec §6.1. It is
// the authoritative reference for the wire format (spec §4.4).
func Decode(data []byte) (*Program, error) {
	r := &byteReader{data: data}

	constCount, err := r.readByte()
	if err != nil {
		return nil, err
	}
	constants := make([]types.Value, constCount)
	for i := range constants {
		v, err := decodeConstant(r)
		if err != nil {
			return nil, err
		}
		constants[i] = v
	}

	funcCount, err := r.readByte()
	if err != nil {
		return nil, err
	}
	functions := make([]Function, funcCount)
	for i := range functions {
		fn, err := decodeFunction(r)
		if err != nil {
			return nil, err
		}
		functions[i] = fn
	}

	return &Program{Constants: constants, Functions: functions}, nil
}

func decodeConstant(r *byteReader) (types.Value, error) {
	tagByte, err := r.readByte()
	if err != nil {
		return types.Value{}, err
	}
	tag := types.ValueType(tagByte)

	switch tag {
	case types.INT:
		n, err := r.u64()
		if err != nil {
			return types.Value{}, err
		}
		return types.Int64(int64(n)), nil
	case types.FLOAT:
		n, err := r.u64()
		if err != nil {
			return types.Value{}, err
		}
		return types.Float64(math.Float64frombits(n)), nil
	case types.BOOL:
		b, err := r.readByte()
		if err != nil {
			return types.Value{}, err
		}
		return types.Bool(b != 0), nil
	case types.STRING:
		outer, err := r.u32()
		if err != nil {
			return types.Value{}, err
		}
		inner, err := r.u32()
		if err != nil {
			return types.Value{}, err
		}
		if outer != inner+4 {
			return types.Value{}, fmt.Errorf("compiler: malformed string constant: outer_len %d != inner_len %d + 4", outer, inner)
		}
		raw, err := r.bytes(int(inner))
		if err != nil {
			return types.Value{}, err
		}
		return types.String(string(raw)), nil
	case types.NONE, types.LIST, types.STRUCT, types.POINTER:
		return types.Value{Type: tag}, nil
	default:
		return types.Value{}, fmt.Errorf("compiler: unknown constant type tag %d", tagByte)
	}
}

func decodeFunction(r *byteReader) (Function, error) {
	retByte, err := r.readByte()
	if err != nil {
		return Function{}, err
	}
	argc, err := r.readByte()
	if err != nil {
		return Function{}, err
	}
	argTypes := make([]types.ValueType, argc)
	for i := range argTypes {
		at, err := r.readByte()
		if err != nil {
			return Function{}, err
		}
		argTypes[i] = types.ValueType(at)
	}

	codeLen, err := r.u16()
	if err != nil {
		return Function{}, err
	}
	code := make([]Instruction, codeLen)
	for i := range code {
		op, err := r.readByte()
		if err != nil {
			return Function{}, err
		}
		arg, err := r.readByte()
		if err != nil {
			return Function{}, err
		}
		code[i] = Instruction{Op: Opcode(op), Arg: arg}
	}

	return Function{
		ReturnType: types.ValueType(retByte),
		ArgTypes:   argTypes,
		Code:       code,
	}, nil
}

// byteReader is a minimal little-endian cursor over an in-memory buffer.
type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) need(n int) error {
	if r.pos+n > len(r.data) {
		return fmt.Errorf("compiler: unexpected end of bytecode (need %d bytes at offset %d)", n, r.pos)
	}
	return nil
}

func (r *byteReader) readByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *byteReader) bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *byteReader) u16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *byteReader) u32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *byteReader) u64() (uint64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}
