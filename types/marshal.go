package types

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/garbleio/circuits/components"
	"github.com/icza/bitio"
)

// Serialized forms follow structural field order: scalar kinds are bare
// tags, arrays carry their element shape and count, representations carry
// node ids leaf by leaf in index order. CBOR keeps descriptors stable when
// circuit interfaces are persisted or exchanged across process boundaries.

func canonicalEncMode() (cbor.EncMode, error) {
	return cbor.CanonicalEncOptions().EncMode()
}

type valueTypeWire struct {
	Kind uint8          `cbor:"1,keyasint"`
	Elem *valueTypeWire `cbor:"2,keyasint,omitempty"`
	Size int            `cbor:"3,keyasint,omitempty"`
}

// MarshalBinary serializes the type with canonical CBOR.
func (t ValueType) MarshalBinary() ([]byte, error) {
	em, err := canonicalEncMode()
	if err != nil {
		return nil, err
	}
	return em.Marshal(valueTypeToWire(t))
}

// UnmarshalBinary deserializes a type produced by MarshalBinary.
func (t *ValueType) UnmarshalBinary(data []byte) error {
	var w valueTypeWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return err
	}
	ty, err := valueTypeFromWire(&w)
	if err != nil {
		return err
	}
	*t = ty
	return nil
}

func valueTypeToWire(t ValueType) *valueTypeWire {
	w := &valueTypeWire{Kind: uint8(t.kind)}
	if t.kind == KindArray {
		w.Elem = valueTypeToWire(*t.elem)
		w.Size = t.size
	}
	return w
}

func valueTypeFromWire(w *valueTypeWire) (ValueType, error) {
	k := Kind(w.Kind)
	switch {
	case k >= KindBit && k < KindArray:
		return scalarType(k), nil
	case k == KindArray:
		if w.Elem == nil {
			return ValueType{}, fmt.Errorf("types: array type without element shape")
		}
		if w.Size < 1 {
			return ValueType{}, ErrEmptyArray
		}
		elem, err := valueTypeFromWire(w.Elem)
		if err != nil {
			return ValueType{}, err
		}
		return ArrayType(elem, w.Size), nil
	default:
		return ValueType{}, fmt.Errorf("types: unknown kind %d", w.Kind)
	}
}

type binaryReprWire struct {
	Kind  uint8            `cbor:"1,keyasint"`
	Nodes []int            `cbor:"2,keyasint,omitempty"`
	Elems []binaryReprWire `cbor:"3,keyasint,omitempty"`
}

// MarshalRepr serializes a representation with canonical CBOR, node ids in
// structural order.
func MarshalRepr(r BinaryRepr) ([]byte, error) {
	em, err := canonicalEncMode()
	if err != nil {
		return nil, err
	}
	return em.Marshal(reprToWire(r))
}

// UnmarshalRepr deserializes a representation produced by MarshalRepr,
// re-checking length and homogeneity invariants.
func UnmarshalRepr(data []byte) (BinaryRepr, error) {
	var w binaryReprWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return reprFromWire(&w)
}

func reprToWire(r BinaryRepr) binaryReprWire {
	if a, ok := r.(Array); ok {
		elems := make([]binaryReprWire, len(a))
		for i, e := range a {
			elems[i] = reprToWire(e)
		}
		return binaryReprWire{Kind: uint8(KindArray), Elems: elems}
	}
	nodes := r.Nodes()
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	return binaryReprWire{Kind: uint8(r.ValueType().Kind()), Nodes: ids}
}

func reprFromWire(w *binaryReprWire) (BinaryRepr, error) {
	k := Kind(w.Kind)
	switch {
	case k >= KindBit && k < KindArray:
		nodes := make([]components.Node, len(w.Nodes))
		for i, id := range w.Nodes {
			nodes[i] = components.NewNode(id)
		}
		return scalarType(k).ToBinaryRepr(nodes)
	case k == KindArray:
		elems := make([]BinaryRepr, len(w.Elems))
		for i := range w.Elems {
			e, err := reprFromWire(&w.Elems[i])
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return ArrayOf(elems...)
	default:
		return nil, fmt.Errorf("types: unknown kind %d", w.Kind)
	}
}

// MarshalValue packs the LSB0 bit sequence of v into bytes, padding the
// final byte with zero bits.
func MarshalValue(v Value) ([]byte, error) {
	var bb bytes.Buffer
	w := bitio.NewWriter(&bb)
	for _, bit := range v.BitsLSB0() {
		if err := w.WriteBool(bit); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return bb.Bytes(), nil
}

// UnmarshalValue reads back a value of shape ty from data produced by
// MarshalValue. len(data) must be exactly the byte-padded bit length of ty.
func UnmarshalValue(ty ValueType, data []byte) (Value, error) {
	if expected := (ty.Len() + 7) / 8; len(data) != expected {
		return nil, &InvalidLengthError{Expected: expected, Actual: len(data)}
	}
	r := bitio.NewReader(bytes.NewReader(data))
	bits := make([]bool, ty.Len())
	for i := range bits {
		b, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		bits[i] = b
	}
	return decodeBits(ty, bits)
}
