// Package types implements the typed value encoding layer of a boolean
// circuit: native-like values (bits, fixed-width unsigned integers and nested
// homogeneous arrays), their wire-level representations over node handles,
// and the bit-exact conversions between the two.
//
// Three entities mirror each other's shape:
//   - ValueType describes a shape and carries no data
//   - BinaryRepr pairs a shape with node handles, for circuit construction
//   - Value pairs a shape with concrete data, for test vectors and decoded
//     evaluation results
//
// Throughout the package index 0 of any bit or node sequence is the least
// significant bit; nested structures are flattened in structural
// left-to-right order. This ordering defines the bit-position to node
// correspondence that all circuit construction relies on.
package types

import (
	"fmt"
	"strconv"

	"github.com/garbleio/circuits/components"
)

// Kind discriminates the variants of ValueType.
type Kind uint8

const (
	KindBit Kind = iota + 1
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindBit:
		return "Bit"
	case KindU8:
		return "U8"
	case KindU16:
		return "U16"
	case KindU32:
		return "U32"
	case KindU64:
		return "U64"
	case KindU128:
		return "U128"
	case KindArray:
		return "Array"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ValueType describes the shape of a value: a scalar width, or a homogeneous
// array of a single element shape. It carries no data.
//
// The zero ValueType is invalid; use the scalar type variables or ArrayType.
type ValueType struct {
	kind Kind
	elem *ValueType // set for KindArray only
	size int        // set for KindArray only
}

// The scalar value types.
var (
	BitType  = ValueType{kind: KindBit}
	U8Type   = ValueType{kind: KindU8}
	U16Type  = ValueType{kind: KindU16}
	U32Type  = ValueType{kind: KindU32}
	U64Type  = ValueType{kind: KindU64}
	U128Type = ValueType{kind: KindU128}
)

// ArrayType returns the type of a homogeneous array of size elements of type
// elem.
//
// size must be at least 1: an empty array has no element to infer a shape
// from, so empty array types are unrepresentable. ArrayType panics on a zero
// or negative size.
func ArrayType(elem ValueType, size int) ValueType {
	if size < 1 {
		panic("types: array type must have at least one element")
	}
	e := elem
	return ValueType{kind: KindArray, elem: &e, size: size}
}

// New returns the value type of the native type T.
func New[T Native]() ValueType {
	var z T
	switch any(z).(type) {
	case bool:
		return BitType
	case uint8:
		return U8Type
	case uint16:
		return U16Type
	case uint32:
		return U32Type
	case uint64:
		return U64Type
	case Uint128:
		return U128Type
	}
	panic("unreachable")
}

// NewArray returns the value type of an array of size elements of the native
// type T.
func NewArray[T Native](size int) ValueType {
	return ArrayType(New[T](), size)
}

// Kind returns the variant of the type.
func (t ValueType) Kind() Kind {
	return t.kind
}

// Len returns the length of the type in bits.
func (t ValueType) Len() int {
	switch t.kind {
	case KindBit:
		return 1
	case KindU8:
		return 8
	case KindU16:
		return 16
	case KindU32:
		return 32
	case KindU64:
		return 64
	case KindU128:
		return 128
	case KindArray:
		return t.elem.Len() * t.size
	default:
		panic("types: invalid value type")
	}
}

// IsArray reports whether the type is an array.
func (t ValueType) IsArray() bool {
	return t.kind == KindArray
}

// Elem returns the element type of an array type. The second return value is
// false for scalar types.
func (t ValueType) Elem() (ValueType, bool) {
	if t.kind != KindArray {
		return ValueType{}, false
	}
	return *t.elem, true
}

// Size returns the number of elements of an array type, or 0 for scalars.
func (t ValueType) Size() int {
	if t.kind != KindArray {
		return 0
	}
	return t.size
}

// Equal reports whether two types describe the same shape.
func (t ValueType) Equal(other ValueType) bool {
	if t.kind != other.kind {
		return false
	}
	if t.kind != KindArray {
		return true
	}
	return t.size == other.size && t.elem.Equal(*other.elem)
}

func (t ValueType) String() string {
	if t.kind == KindArray {
		return fmt.Sprintf("Array<%s, %d>", t.elem, t.size)
	}
	return t.kind.String()
}

// ToBinaryRepr packages nodes into a representation of this shape.
//
// len(nodes) must equal t.Len() exactly; scalars consume the whole slice as
// their bit array, arrays chunk the slice into size pieces of element width
// and encode each piece in structural order.
func (t ValueType) ToBinaryRepr(nodes []components.Node) (BinaryRepr, error) {
	if len(nodes) != t.Len() {
		return nil, &InvalidLengthError{Expected: t.Len(), Actual: len(nodes)}
	}
	switch t.kind {
	case KindBit:
		return newBit(nodes), nil
	case KindU8:
		return newU8(nodes), nil
	case KindU16:
		return newU16(nodes), nil
	case KindU32:
		return newU32(nodes), nil
	case KindU64:
		return newU64(nodes), nil
	case KindU128:
		return newU128(nodes), nil
	case KindArray:
		w := t.elem.Len()
		elems := make(Array, t.size)
		for i := range elems {
			e, err := t.elem.ToBinaryRepr(nodes[i*w : (i+1)*w])
			if err != nil {
				// chunk widths are exact by construction
				return nil, err
			}
			elems[i] = e
		}
		return elems, nil
	default:
		panic("types: invalid value type")
	}
}

// scalarType maps a scalar kind back to its ValueType.
func scalarType(k Kind) ValueType {
	if k < KindBit || k >= KindArray {
		panic("types: not a scalar kind")
	}
	return ValueType{kind: k}
}
