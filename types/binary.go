package types

import (
	"iter"
	"slices"

	"github.com/garbleio/circuits/components"
)

// The per-width wire scalars. Each owns exactly its width in node handles;
// index 0 is the least-significant bit.
type (
	// Bit is the wire representation of a single boolean.
	Bit [1]components.Node
	// U8 is the wire representation of an 8-bit unsigned integer.
	U8 [8]components.Node
	// U16 is the wire representation of a 16-bit unsigned integer.
	U16 [16]components.Node
	// U32 is the wire representation of a 32-bit unsigned integer.
	U32 [32]components.Node
	// U64 is the wire representation of a 64-bit unsigned integer.
	U64 [64]components.Node
	// U128 is the wire representation of a 128-bit unsigned integer.
	U128 [128]components.Node
)

func newBit(nodes []components.Node) *Bit {
	var v Bit
	copy(v[:], nodes)
	return &v
}

func newU8(nodes []components.Node) *U8 {
	var v U8
	copy(v[:], nodes)
	return &v
}

func newU16(nodes []components.Node) *U16 {
	var v U16
	copy(v[:], nodes)
	return &v
}

func newU32(nodes []components.Node) *U32 {
	var v U32
	copy(v[:], nodes)
	return &v
}

func newU64(nodes []components.Node) *U64 {
	var v U64
	copy(v[:], nodes)
	return &v
}

func newU128(nodes []components.Node) *U128 {
	var v U128
	copy(v[:], nodes)
	return &v
}

// shiftNodes renumbers every node in nodes down by offset.
func shiftNodes(nodes []components.Node, offset int) {
	for i := range nodes {
		nodes[i].ShiftLeft(offset)
	}
}

// nodeSeq ranges over nodes left to right. Each call to the returned
// sequence restarts from the first node.
func nodeSeq(nodes []components.Node) iter.Seq[components.Node] {
	return func(yield func(components.Node) bool) {
		for _, n := range nodes {
			if !yield(n) {
				return
			}
		}
	}
}

func (v *Bit) ValueType() ValueType { return BitType }
func (v *Bit) Len() int { return 1 }
func (v *Bit) Nodes() []components.Node { return slices.Clone(v[:]) }
func (v *Bit) Iter() iter.Seq[components.Node] { return nodeSeq(v[:]) }
func (v *Bit) ShiftLeft(offset int) { shiftNodes(v[:], offset) }
func (v *Bit) Decode(bits []bool) (Value, error) { return decodeBits(BitType, bits) }
func (*Bit) isBinaryRepr() {}

func (v *U8) ValueType() ValueType { return U8Type }
func (v *U8) Len() int { return 8 }
func (v *U8) Nodes() []components.Node { return slices.Clone(v[:]) }
func (v *U8) Iter() iter.Seq[components.Node] { return nodeSeq(v[:]) }
func (v *U8) ShiftLeft(offset int) { shiftNodes(v[:], offset) }
func (v *U8) Decode(bits []bool) (Value, error) { return decodeBits(U8Type, bits) }
func (*U8) isBinaryRepr() {}

func (v *U16) ValueType() ValueType { return U16Type }
func (v *U16) Len() int { return 16 }
func (v *U16) Nodes() []components.Node { return slices.Clone(v[:]) }
func (v *U16) Iter() iter.Seq[components.Node] { return nodeSeq(v[:]) }
func (v *U16) ShiftLeft(offset int) { shiftNodes(v[:], offset) }
func (v *U16) Decode(bits []bool) (Value, error) { return decodeBits(U16Type, bits) }
func (*U16) isBinaryRepr() {}

func (v *U32) ValueType() ValueType { return U32Type }
func (v *U32) Len() int { return 32 }
func (v *U32) Nodes() []components.Node { return slices.Clone(v[:]) }
func (v *U32) Iter() iter.Seq[components.Node] { return nodeSeq(v[:]) }
func (v *U32) ShiftLeft(offset int) { shiftNodes(v[:], offset) }
func (v *U32) Decode(bits []bool) (Value, error) { return decodeBits(U32Type, bits) }
func (*U32) isBinaryRepr() {}

func (v *U64) ValueType() ValueType { return U64Type }
func (v *U64) Len() int { return 64 }
func (v *U64) Nodes() []components.Node { return slices.Clone(v[:]) }
func (v *U64) Iter() iter.Seq[components.Node] { return nodeSeq(v[:]) }
func (v *U64) ShiftLeft(offset int) { shiftNodes(v[:], offset) }
func (v *U64) Decode(bits []bool) (Value, error) { return decodeBits(U64Type, bits) }
func (*U64) isBinaryRepr() {}

func (v *U128) ValueType() ValueType { return U128Type }
func (v *U128) Len() int { return 128 }
func (v *U128) Nodes() []components.Node { return slices.Clone(v[:]) }
func (v *U128) Iter() iter.Seq[components.Node] { return nodeSeq(v[:]) }
func (v *U128) ShiftLeft(offset int) { shiftNodes(v[:], offset) }
func (v *U128) Decode(bits []bool) (Value, error) { return decodeBits(U128Type, bits) }
func (*U128) isBinaryRepr() {}

// Byte-order conversions regroup a scalar's node handles into byte-sized
// wire groups. They permute node identities, not data values: downstream
// gate wiring depends on which node ends up in which byte/bit slot.
//
// Big endian: byte 0 carries the most significant eight bits. Little endian:
// byte 0 carries the least significant eight bits. Within a byte, bit 0 is
// the lowest-addressed bit of that byte's slice (LSB first, consistent with
// the scalar convention).

// toBEBytes writes nodes regrouped in big-endian byte order into out, which
// must hold len(nodes)/8 elements.
func toBEBytes(nodes []components.Node, out []U8) {
	m := len(out)
	for i := 0; i < m; i++ {
		for j := 0; j < 8; j++ {
			out[i][j] = nodes[(m-i-1)*8+j]
		}
	}
}

// fromBEBytes writes the big-endian byte groups b back into dst, which must
// hold len(b)*8 elements.
func fromBEBytes(dst []components.Node, b []U8) {
	m := len(b)
	for i := range dst {
		dst[i] = b[m-(i/8)-1][i%8]
	}
}

// toLEBytes writes nodes regrouped in little-endian byte order into out,
// which must hold len(nodes)/8 elements.
func toLEBytes(nodes []components.Node, out []U8) {
	for i := range out {
		for j := 0; j < 8; j++ {
			out[i][j] = nodes[i*8+j]
		}
	}
}

// fromLEBytes writes the little-endian byte groups b back into dst, which
// must hold len(b)*8 elements.
func fromLEBytes(dst []components.Node, b []U8) {
	for i := range dst {
		dst[i] = b[i/8][i%8]
	}
}

// ToBEBytes returns the representation of the value as a byte array in big
// endian.
func (v U8) ToBEBytes() [1]U8 {
	var out [1]U8
	toBEBytes(v[:], out[:])
	return out
}

// U8FromBEBytes creates a value from its representation as a byte array in
// big endian.
func U8FromBEBytes(b [1]U8) U8 {
	var v U8
	fromBEBytes(v[:], b[:])
	return v
}

// ToLEBytes returns the representation of the value as a byte array in
// little endian.
func (v U8) ToLEBytes() [1]U8 {
	var out [1]U8
	toLEBytes(v[:], out[:])
	return out
}

// U8FromLEBytes creates a value from its representation as a byte array in
// little endian.
func U8FromLEBytes(b [1]U8) U8 {
	var v U8
	fromLEBytes(v[:], b[:])
	return v
}

// ToBEBytes returns the representation of the value as a byte array in big
// endian.
func (v U16) ToBEBytes() [2]U8 {
	var out [2]U8
	toBEBytes(v[:], out[:])
	return out
}

// U16FromBEBytes creates a value from its representation as a byte array in
// big endian.
func U16FromBEBytes(b [2]U8) U16 {
	var v U16
	fromBEBytes(v[:], b[:])
	return v
}

// ToLEBytes returns the representation of the value as a byte array in
// little endian.
func (v U16) ToLEBytes() [2]U8 {
	var out [2]U8
	toLEBytes(v[:], out[:])
	return out
}

// U16FromLEBytes creates a value from its representation as a byte array in
// little endian.
func U16FromLEBytes(b [2]U8) U16 {
	var v U16
	fromLEBytes(v[:], b[:])
	return v
}

// ToBEBytes returns the representation of the value as a byte array in big
// endian.
func (v U32) ToBEBytes() [4]U8 {
	var out [4]U8
	toBEBytes(v[:], out[:])
	return out
}

// U32FromBEBytes creates a value from its representation as a byte array in
// big endian.
func U32FromBEBytes(b [4]U8) U32 {
	var v U32
	fromBEBytes(v[:], b[:])
	return v
}

// ToLEBytes returns the representation of the value as a byte array in
// little endian.
func (v U32) ToLEBytes() [4]U8 {
	var out [4]U8
	toLEBytes(v[:], out[:])
	return out
}

// U32FromLEBytes creates a value from its representation as a byte array in
// little endian.
func U32FromLEBytes(b [4]U8) U32 {
	var v U32
	fromLEBytes(v[:], b[:])
	return v
}

// ToBEBytes returns the representation of the value as a byte array in big
// endian.
func (v U64) ToBEBytes() [8]U8 {
	var out [8]U8
	toBEBytes(v[:], out[:])
	return out
}

// U64FromBEBytes creates a value from its representation as a byte array in
// big endian.
func U64FromBEBytes(b [8]U8) U64 {
	var v U64
	fromBEBytes(v[:], b[:])
	return v
}

// ToLEBytes returns the representation of the value as a byte array in
// little endian.
func (v U64) ToLEBytes() [8]U8 {
	var out [8]U8
	toLEBytes(v[:], out[:])
	return out
}

// U64FromLEBytes creates a value from its representation as a byte array in
// little endian.
func U64FromLEBytes(b [8]U8) U64 {
	var v U64
	fromLEBytes(v[:], b[:])
	return v
}

// ToBEBytes returns the representation of the value as a byte array in big
// endian.
func (v U128) ToBEBytes() [16]U8 {
	var out [16]U8
	toBEBytes(v[:], out[:])
	return out
}

// U128FromBEBytes creates a value from its representation as a byte array in
// big endian.
func U128FromBEBytes(b [16]U8) U128 {
	var v U128
	fromBEBytes(v[:], b[:])
	return v
}

// ToLEBytes returns the representation of the value as a byte array in
// little endian.
func (v U128) ToLEBytes() [16]U8 {
	var out [16]U8
	toLEBytes(v[:], out[:])
	return out
}

// U128FromLEBytes creates a value from its representation as a byte array in
// little endian.
func U128FromLEBytes(b [16]U8) U128 {
	var v U128
	fromLEBytes(v[:], b[:])
	return v
}
