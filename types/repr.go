package types

import (
	"fmt"
	"iter"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/garbleio/circuits/components"
)

// BinaryRepr is the wire-level representation of a value: the value's shape
// with every leaf replaced by node handles. It is implemented by the
// per-width scalars (*Bit, *U8, ... *U128) and by Array; the variant set is
// closed.
//
// A representation exclusively owns its node handles. Structural
// left-to-right order of Nodes and Iter is the canonical bit-position to
// node correspondence.
type BinaryRepr interface {
	// ValueType returns the shape of the representation.
	ValueType() ValueType
	// Len returns the length of the representation in bits.
	Len() int
	// Nodes returns a fresh copy of the node handles in structural order.
	Nodes() []components.Node
	// Iter ranges over the node handles in structural order. The returned
	// sequence restarts from the first node on every use.
	Iter() iter.Seq[components.Node]
	// ShiftLeft renumbers every contained node handle down by offset. Shape
	// and length are unchanged; only node identities change.
	ShiftLeft(offset int)
	// Decode reconstructs the concrete value carried by bits, where bits[i]
	// is the evaluated value of the i-th node in structural order, LSB
	// first per leaf. It fails with InvalidLengthError unless
	// len(bits) == Len().
	Decode(bits []bool) (Value, error)

	isBinaryRepr()
}

// Array is a homogeneous sequence of representations sharing a single
// element shape. It must not be empty; construct through ArrayOf,
// ValueType.ToBinaryRepr or the generic constructors to keep that invariant.
type Array []BinaryRepr

// ArrayOf builds an Array after checking that elems is non-empty and that
// every element shares the shape of the first.
func ArrayOf(elems ...BinaryRepr) (Array, error) {
	if len(elems) == 0 {
		return nil, ErrEmptyArray
	}
	ty := elems[0].ValueType()
	for _, e := range elems[1:] {
		if !e.ValueType().Equal(ty) {
			return nil, &UnexpectedTypeError{Expected: ty, Actual: e.ValueType()}
		}
	}
	return Array(elems), nil
}

// ValueType returns the shape of the array, inferred from its first element.
func (a Array) ValueType() ValueType {
	return ArrayType(a[0].ValueType(), len(a))
}

// Len returns the length of the array in bits.
func (a Array) Len() int {
	n := 0
	for _, e := range a {
		n += e.Len()
	}
	return n
}

// Nodes returns a fresh copy of the node handles in structural order.
func (a Array) Nodes() []components.Node {
	out := make([]components.Node, 0, a.Len())
	for _, e := range a {
		out = append(out, e.Nodes()...)
	}
	return out
}

// Iter ranges over the node handles of every element in structural order.
func (a Array) Iter() iter.Seq[components.Node] {
	return func(yield func(components.Node) bool) {
		for _, e := range a {
			for n := range e.Iter() {
				if !yield(n) {
					return
				}
			}
		}
	}
}

// ShiftLeft renumbers every contained node handle down by offset.
func (a Array) ShiftLeft(offset int) {
	for _, e := range a {
		e.ShiftLeft(offset)
	}
}

// Decode reconstructs the array value carried by bits.
func (a Array) Decode(bits []bool) (Value, error) {
	return decodeBits(a.ValueType(), bits)
}

func (Array) isBinaryRepr() {}

func (a Array) String() string {
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

// DecodeValue reconstructs a concrete value of shape ty from bits, where
// bits[i] is the i-th bit in structural order, LSB first per leaf.
func DecodeValue(ty ValueType, bits []bool) (Value, error) {
	return decodeBits(ty, bits)
}

func decodeBits(ty ValueType, bits []bool) (Value, error) {
	if len(bits) != ty.Len() {
		return nil, &InvalidLengthError{Expected: ty.Len(), Actual: len(bits)}
	}
	switch ty.kind {
	case KindBit:
		return BitValue(bits[0]), nil
	case KindU8:
		return U8Value(lsb0ToUint64(bits)), nil
	case KindU16:
		return U16Value(lsb0ToUint64(bits)), nil
	case KindU32:
		return U32Value(lsb0ToUint64(bits)), nil
	case KindU64:
		return U64Value(lsb0ToUint64(bits)), nil
	case KindU128:
		return U128Value(lsb0ToUint128(bits)), nil
	case KindArray:
		w := ty.elem.Len()
		elems := make(ArrayValue, ty.size)
		for i := range elems {
			e, err := decodeBits(*ty.elem, bits[i*w:(i+1)*w])
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

// DecodeBitSet is Decode for callers holding evaluated bits as a packed
// bitset; bit i of bs is the evaluated value of the i-th node of r.
func DecodeBitSet(r BinaryRepr, bs *bitset.BitSet) (Value, error) {
	if bs.Len() != uint(r.Len()) {
		return nil, &InvalidLengthError{Expected: r.Len(), Actual: int(bs.Len())}
	}
	bits := make([]bool, r.Len())
	for i := range bits {
		bits[i] = bs.Test(uint(i))
	}
	return r.Decode(bits)
}

// lsb0ToUint64 packs up to 64 bits, index 0 least significant.
func lsb0ToUint64(bits []bool) uint64 {
	var v uint64
	for i, b := range bits {
		if b {
			v |= 1 << uint(i)
		}
	}
	return v
}

// lsb0ToUint128 packs 128 bits, index 0 least significant.
func lsb0ToUint128(bits []bool) Uint128 {
	return Uint128{
		Lo: lsb0ToUint64(bits[:64]),
		Hi: lsb0ToUint64(bits[64:]),
	}
}
