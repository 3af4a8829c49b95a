// Package builder provides the node-allocation side of circuit construction:
// it hands out fresh node handles for typed input and output ports and
// relocates sub-circuit node ranges during composition.
//
// Gate construction, topology and garbling cryptography belong to other
// subsystems; the builder only owns node identity.
package builder

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/garbleio/circuits/components"
	"github.com/garbleio/circuits/debug"
	"github.com/garbleio/circuits/logger"
	"github.com/garbleio/circuits/types"
)

// Builder allocates wire nodes for typed circuit ports.
type Builder struct {
	nextID  int
	inputs  []types.BinaryRepr
	outputs []types.BinaryRepr
	log     zerolog.Logger
}

// New returns an empty builder; node ids start at 0.
func New() *Builder {
	return &Builder{
		log: logger.Logger().With().Str("component", "builder").Logger(),
	}
}

// AddInputType declares an input port of shape ty, allocating ty.Len()
// fresh nodes.
func (b *Builder) AddInputType(ty types.ValueType) (types.BinaryRepr, error) {
	nodes := b.alloc(ty.Len())
	repr, err := ty.ToBinaryRepr(nodes)
	if err != nil {
		return nil, err
	}
	b.inputs = append(b.inputs, repr)
	b.log.Debug().Stringer("type", ty).Int("nbNodes", ty.Len()).Msg("added input")
	return repr, nil
}

// AddInput declares an input port of the native type T.
func AddInput[T types.Native](b *Builder) (types.BinaryRepr, error) {
	return b.AddInputType(types.New[T]())
}

// AddInputArray declares an input port holding size elements of the native
// type T.
func AddInputArray[T types.Native](b *Builder, size int) (types.BinaryRepr, error) {
	return b.AddInputType(types.NewArray[T](size))
}

// AddOutput declares repr as an output port of the circuit.
func (b *Builder) AddOutput(repr types.BinaryRepr) {
	b.outputs = append(b.outputs, repr)
	b.log.Debug().Stringer("type", repr.ValueType()).Msg("added output")
}

// Inputs returns the declared input ports in declaration order.
func (b *Builder) Inputs() []types.BinaryRepr {
	return b.inputs
}

// Outputs returns the declared output ports in declaration order.
func (b *Builder) Outputs() []types.BinaryRepr {
	return b.outputs
}

// NbNodes returns the number of nodes allocated so far.
func (b *Builder) NbNodes() int {
	return b.nextID
}

// Relocate renumbers a previously built representation down by offset so its
// node range lines up with this builder's allocation. Shape and length are
// unchanged. Node ids are never negative; an offset larger than the lowest
// id in the range fails and leaves repr untouched.
func (b *Builder) Relocate(repr types.BinaryRepr, offset int) error {
	for n := range repr.Iter() {
		if n.ID() < offset {
			err := fmt.Errorf("builder: relocating %s by %d moves %s below zero", repr.ValueType(), offset, n)
			b.log.Error().Err(err).Str("stack", debug.Stack()).Msg("relocate out of range")
			return err
		}
	}
	repr.ShiftLeft(offset)
	b.log.Debug().Stringer("type", repr.ValueType()).Int("offset", offset).Msg("relocated nodes")
	return nil
}

func (b *Builder) alloc(n int) []components.Node {
	nodes := make([]components.Node, n)
	for i := range nodes {
		nodes[i] = components.NewNode(b.nextID)
		b.nextID++
	}
	return nodes
}
