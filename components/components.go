// Package components defines the wire-level primitives shared by the circuit
// builder and the typed encoding layer.
//
// A Node identifies one boolean signal in a circuit under construction. Nodes
// are plain values: copyable, comparable, and identity-stable except under an
// explicit renumbering shift.
package components

import "strconv"

// Node is an opaque handle to one boolean signal (a wire) of a circuit.
type Node struct {
	id int
}

// NewNode returns the node handle with the given id.
func NewNode(id int) Node {
	return Node{id: id}
}

// ID returns the node id.
func (n Node) ID() int {
	return n.id
}

// ShiftLeft renumbers the node by moving its id down by offset. It is used
// when a previously built sub-circuit's node range is relocated during
// composition.
func (n *Node) ShiftLeft(offset int) {
	n.id -= offset
}

func (n Node) String() string {
	return "node_" + strconv.Itoa(n.id)
}
