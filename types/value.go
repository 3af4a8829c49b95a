package types

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Uint128 is an unsigned 128-bit integer in two 64-bit limbs. Go has no
// native 128-bit integer; this struct stands in for one wherever a U128
// leaf carries data.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Bit returns bit i of the integer, 0 being the least significant.
func (u Uint128) Bit(i int) bool {
	if i < 64 {
		return u.Lo>>uint(i)&1 == 1
	}
	return u.Hi>>uint(i-64)&1 == 1
}

// Xor returns the bitwise exclusive or of the two integers.
func (u Uint128) Xor(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi ^ v.Hi, Lo: u.Lo ^ v.Lo}
}

func (u Uint128) String() string {
	return fmt.Sprintf("0x%016x%016x", u.Hi, u.Lo)
}

// Value is a concrete value matching a ValueType: produced by decoding
// evaluated bits, by Random, or by ValueOf; consumed by application code and
// by XOR-based mask and result combination. Implemented by BitValue,
// U8Value, ... U128Value and ArrayValue; the variant set is closed.
type Value interface {
	// ValueType returns the shape of the value.
	ValueType() ValueType
	// Len returns the length of the value in bits.
	Len() int
	// BitsLSB0 returns the bits of the value flattened in structural order,
	// each leaf contributing its bits least-significant first.
	BitsLSB0() []bool
	// BitsMSB0 returns the bits of the value flattened in structural order,
	// each leaf contributing its bits most-significant first.
	BitsMSB0() []bool

	isValue()
}

// The concrete value variants.
type (
	BitValue   bool
	U8Value    uint8
	U16Value   uint16
	U32Value   uint32
	U64Value   uint64
	U128Value  Uint128
	ArrayValue []Value
)

func (v BitValue) ValueType() ValueType { return BitType }
func (v BitValue) Len() int { return 1 }
func (v BitValue) BitsLSB0() []bool { return []bool{bool(v)} }
func (v BitValue) BitsMSB0() []bool { return []bool{bool(v)} }
func (BitValue) isValue() {}
func (v BitValue) String() string { return fmt.Sprintf("Bit(%t)", bool(v)) }

func (v U8Value) ValueType() ValueType { return U8Type }
func (v U8Value) Len() int { return 8 }
func (v U8Value) BitsLSB0() []bool { return uintToLSB0(uint64(v), 8) }
func (v U8Value) BitsMSB0() []bool { return reverse(uintToLSB0(uint64(v), 8)) }
func (U8Value) isValue() {}
func (v U8Value) String() string { return fmt.Sprintf("U8(%d)", uint8(v)) }

func (v U16Value) ValueType() ValueType { return U16Type }
func (v U16Value) Len() int { return 16 }
func (v U16Value) BitsLSB0() []bool { return uintToLSB0(uint64(v), 16) }
func (v U16Value) BitsMSB0() []bool { return reverse(uintToLSB0(uint64(v), 16)) }
func (U16Value) isValue() {}
func (v U16Value) String() string { return fmt.Sprintf("U16(%d)", uint16(v)) }

func (v U32Value) ValueType() ValueType { return U32Type }
func (v U32Value) Len() int { return 32 }
func (v U32Value) BitsLSB0() []bool { return uintToLSB0(uint64(v), 32) }
func (v U32Value) BitsMSB0() []bool { return reverse(uintToLSB0(uint64(v), 32)) }
func (U32Value) isValue() {}
func (v U32Value) String() string { return fmt.Sprintf("U32(%d)", uint32(v)) }

func (v U64Value) ValueType() ValueType { return U64Type }
func (v U64Value) Len() int { return 64 }
func (v U64Value) BitsLSB0() []bool { return uintToLSB0(uint64(v), 64) }
func (v U64Value) BitsMSB0() []bool { return reverse(uintToLSB0(uint64(v), 64)) }
func (U64Value) isValue() {}
func (v U64Value) String() string { return fmt.Sprintf("U64(%d)", uint64(v)) }

func (v U128Value) ValueType() ValueType { return U128Type }
func (v U128Value) Len() int { return 128 }

func (v U128Value) BitsLSB0() []bool {
	bits := make([]bool, 128)
	for i := range bits {
		bits[i] = Uint128(v).Bit(i)
	}
	return bits
}

func (v U128Value) BitsMSB0() []bool { return reverse(v.BitsLSB0()) }
func (U128Value) isValue() {}
func (v U128Value) String() string { return fmt.Sprintf("U128(%s)", Uint128(v)) }

// ValueType returns the shape of the array, inferred from its first element.
func (a ArrayValue) ValueType() ValueType {
	return ArrayType(a[0].ValueType(), len(a))
}

// Len returns the length of the array in bits.
func (a ArrayValue) Len() int {
	n := 0
	for _, e := range a {
		n += e.Len()
	}
	return n
}

func (a ArrayValue) BitsLSB0() []bool {
	out := make([]bool, 0, a.Len())
	for _, e := range a {
		out = append(out, e.BitsLSB0()...)
	}
	return out
}

func (a ArrayValue) BitsMSB0() []bool {
	// leaves contribute MSB first; structural order is unchanged
	out := make([]bool, 0, a.Len())
	for _, e := range a {
		out = append(out, e.BitsMSB0()...)
	}
	return out
}

func (ArrayValue) isValue() {}

func (a ArrayValue) String() string {
	var sbb strings.Builder
	sbb.WriteString("Array(")
	for i, e := range a {
		if i > 0 {
			sbb.WriteString(", ")
		}
		fmt.Fprintf(&sbb, "%v", e)
	}
	sbb.WriteString(")")
	return sbb.String()
}

// NewArrayValue builds an ArrayValue after checking that elems is non-empty
// and that every element shares the shape of the first.
func NewArrayValue(elems []Value) (ArrayValue, error) {
	if len(elems) == 0 {
		return nil, ErrEmptyArray
	}
	ty := elems[0].ValueType()
	for _, e := range elems[1:] {
		if !e.ValueType().Equal(ty) {
			return nil, &UnexpectedTypeError{Expected: ty, Actual: e.ValueType()}
		}
	}
	return ArrayValue(elems), nil
}

// Random draws a value of shape ty from src, one independent draw per leaf.
// src is the only source of nondeterminism in this package; pass
// crypto/rand.Reader for secure masks or a seeded deterministic reader for
// reproducible test vectors.
func Random(src io.Reader, ty ValueType) (Value, error) {
	switch ty.kind {
	case KindBit:
		b, err := readBytes(src, 1)
		if err != nil {
			return nil, err
		}
		return BitValue(b[0]&1 == 1), nil
	case KindU8:
		b, err := readBytes(src, 1)
		if err != nil {
			return nil, err
		}
		return U8Value(b[0]), nil
	case KindU16:
		b, err := readBytes(src, 2)
		if err != nil {
			return nil, err
		}
		return U16Value(binary.LittleEndian.Uint16(b)), nil
	case KindU32:
		b, err := readBytes(src, 4)
		if err != nil {
			return nil, err
		}
		return U32Value(binary.LittleEndian.Uint32(b)), nil
	case KindU64:
		b, err := readBytes(src, 8)
		if err != nil {
			return nil, err
		}
		return U64Value(binary.LittleEndian.Uint64(b)), nil
	case KindU128:
		b, err := readBytes(src, 16)
		if err != nil {
			return nil, err
		}
		return U128Value(Uint128{
			Lo: binary.LittleEndian.Uint64(b[:8]),
			Hi: binary.LittleEndian.Uint64(b[8:]),
		}), nil
	case KindArray:
		elems := make(ArrayValue, ty.size)
		for i := range elems {
			e, err := Random(src, *ty.elem)
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return elems, nil
	default:
		panic("types: invalid value type")
	}
}

// Xor combines two values of identical shape by XOR-ing corresponding
// leaves. It fails with UnexpectedTypeError when the variants differ and
// with InvalidLengthError when two arrays have different lengths.
func Xor(a, b Value) (Value, error) {
	switch x := a.(type) {
	case BitValue:
		if y, ok := b.(BitValue); ok {
			return BitValue(bool(x) != bool(y)), nil
		}
	case U8Value:
		if y, ok := b.(U8Value); ok {
			return x ^ y, nil
		}
	case U16Value:
		if y, ok := b.(U16Value); ok {
			return x ^ y, nil
		}
	case U32Value:
		if y, ok := b.(U32Value); ok {
			return x ^ y, nil
		}
	case U64Value:
		if y, ok := b.(U64Value); ok {
			return x ^ y, nil
		}
	case U128Value:
		if y, ok := b.(U128Value); ok {
			return U128Value(Uint128(x).Xor(Uint128(y))), nil
		}
	case ArrayValue:
		y, ok := b.(ArrayValue)
		if !ok {
			break
		}
		if len(x) != len(y) {
			return nil, &InvalidLengthError{Expected: len(x), Actual: len(y)}
		}
		out := make(ArrayValue, len(x))
		for i := range x {
			e, err := Xor(x[i], y[i])
			if err != nil {
				return nil, err
			}
			out[i] = e
		}
		return out, nil
	}
	return nil, &UnexpectedTypeError{Expected: typeOf(a), Actual: typeOf(b)}
}

// typeOf is ValueType for error payloads: a hand-built empty ArrayValue
// literal has no shape to report, so it maps to the invalid zero type
// instead of panicking mid-error.
func typeOf(v Value) ValueType {
	if a, ok := v.(ArrayValue); ok && len(a) == 0 {
		return ValueType{}
	}
	return v.ValueType()
}

// Bits returns the LSB0 bit sequence of v as a packed bitset, bit i of the
// set being the i-th structural bit.
func Bits(v Value) *bitset.BitSet {
	bits := v.BitsLSB0()
	bs := bitset.New(uint(len(bits)))
	for i, b := range bits {
		if b {
			bs.Set(uint(i))
		}
	}
	return bs
}

func readBytes(src io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(src, b); err != nil {
		return nil, err
	}
	return b, nil
}

// uintToLSB0 unpacks the low width bits of v, index 0 least significant.
func uintToLSB0(v uint64, width int) []bool {
	bits := make([]bool, width)
	for i := range bits {
		bits[i] = v>>uint(i)&1 == 1
	}
	return bits
}

func reverse(bits []bool) []bool {
	for i, j := 0, len(bits)-1; i < j; i, j = i+1, j-1 {
		bits[i], bits[j] = bits[j], bits[i]
	}
	return bits
}
