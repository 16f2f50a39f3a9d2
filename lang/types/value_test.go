package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueEqual(t *testing.T) {
	require.True(t, Int64(3).Equal(Int64(3)))
	require.False(t, Int64(3).Equal(Int64(4)))
	require.False(t, Int64(3).Equal(Float64(3)))
	require.True(t, String("a").Equal(String("a")))
	require.True(t, Bool(true).Equal(Bool(true)))
	require.False(t, Bool(true).Equal(Bool(false)))
}

func TestValueTypeIsScalar(t *testing.T) {
	require.True(t, INT.IsScalar())
	require.True(t, FLOAT.IsScalar())
	require.False(t, STRING.IsScalar())
	require.False(t, BOOL.IsScalar())
	require.False(t, POINTER.IsScalar())
}

func TestTypeEqual(t *testing.T) {
	require.True(t, Equal(INT, INT))
	require.False(t, Equal(INT, FLOAT))
	require.True(t, Equal(TypedPointer{Elem: INT}, TypedPointer{Elem: INT}))
	require.False(t, Equal(TypedPointer{Elem: INT}, TypedPointer{Elem: FLOAT}))
	require.False(t, Equal(INT, TypedPointer{Elem: INT}))
}

func TestValueTypeOrdinals(t *testing.T) {
	// The binary encoding (spec §6.1) depends on these ordinal positions
	// remaining stable.
	require.Equal(t, ValueType(0), INT)
	require.Equal(t, ValueType(1), FLOAT)
	require.Equal(t, ValueType(2), STRING)
	require.Equal(t, ValueType(3), BOOL)
	require.Equal(t, ValueType(4), NONE)
	require.Equal(t, ValueType(5), LIST)
	require.Equal(t, ValueType(6), STRUCT)
	require.Equal(t, ValueType(7), POINTER)
}
