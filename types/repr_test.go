package types_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/garbleio/circuits/components"
	"github.com/garbleio/circuits/types"
)

func TestDecodeU8(t *testing.T) {
	require := require.New(t)

	repr, err := types.U8Type.ToBinaryRepr(seqNodes(8))
	require.NoError(err)

	// 177 = 0b10110001, LSB first
	v, err := repr.Decode([]bool{true, false, false, false, true, true, false, true})
	require.NoError(err)
	require.Equal(types.U8Value(177), v)
}

func TestDecodeInvalidLength(t *testing.T) {
	require := require.New(t)

	repr, err := types.U16Type.ToBinaryRepr(seqNodes(16))
	require.NoError(err)

	_, err = repr.Decode(make([]bool, 15))
	var lenErr *types.InvalidLengthError
	require.ErrorAs(err, &lenErr)
	require.Equal(16, lenErr.Expected)
	require.Equal(15, lenErr.Actual)
}

func TestDecodeArray(t *testing.T) {
	require := require.New(t)

	ty := types.NewArray[uint8](2)
	repr, err := ty.ToBinaryRepr(seqNodes(16))
	require.NoError(err)

	bits := make([]bool, 16)
	bits[0] = true // element 0 = 1
	bits[9] = true // element 1 = 2
	v, err := repr.Decode(bits)
	require.NoError(err)
	require.Equal(types.ArrayValue{types.U8Value(1), types.U8Value(2)}, v)
}

func TestIterStructuralOrder(t *testing.T) {
	require := require.New(t)

	nodes := seqNodes(24)
	repr, err := types.NewArray[uint8](3).ToBinaryRepr(nodes)
	require.NoError(err)

	var seen []components.Node
	for n := range repr.Iter() {
		seen = append(seen, n)
	}
	require.Equal(nodes, seen)

	// a fresh call restarts the sequence
	seen = seen[:0]
	for n := range repr.Iter() {
		seen = append(seen, n)
		if len(seen) == 5 {
			break
		}
	}
	require.Equal(nodes[:5], seen)
}

func TestShiftPreservesShape(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	shapes := []types.ValueType{
		types.BitType,
		types.U32Type,
		types.NewArray[uint8](7),
		types.ArrayType(types.NewArray[uint16](2), 3),
	}

	properties := gopter.NewProperties(parameters)
	properties.Property("shift_left preserves len and value type, renumbers deterministically", prop.ForAll(
		func(shapeIdx, offset int) bool {
			ty := shapes[shapeIdx]
			repr, err := ty.ToBinaryRepr(seqNodes(ty.Len()))
			if err != nil {
				return false
			}
			repr.ShiftLeft(offset)
			if repr.Len() != ty.Len() || !repr.ValueType().Equal(ty) {
				return false
			}
			for i, n := range repr.Nodes() {
				if n.ID() != i-offset {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, len(shapes)-1),
		gen.IntRange(-1000, 1000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestLengthConsistency(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	properties.Property("repr length matches type length matches node count", prop.ForAll(
		func(size int) bool {
			ty := types.NewArray[uint16](size)
			nodes := seqNodes(ty.Len())
			repr, err := ty.ToBinaryRepr(nodes)
			if err != nil {
				return false
			}
			return repr.Len() == ty.Len() && repr.Len() == len(nodes)
		},
		gen.IntRange(1, 64),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestDecodeBitSet(t *testing.T) {
	require := require.New(t)

	ty := types.NewArray[uint32](2)
	repr, err := ty.ToBinaryRepr(seqNodes(64))
	require.NoError(err)

	want := types.ArrayValue{types.U32Value(0xdeadbeef), types.U32Value(42)}
	got, err := types.DecodeBitSet(repr, types.Bits(want))
	require.NoError(err)
	require.Equal(want, got)

	_, err = types.DecodeBitSet(repr, types.Bits(types.U8Value(1)))
	var lenErr *types.InvalidLengthError
	require.ErrorAs(err, &lenErr)
	require.Equal(64, lenErr.Expected)
	require.Equal(8, lenErr.Actual)
}
