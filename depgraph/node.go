package depgraph

import (
	"slices"
)

// Key identifies a node. Two nodes with the same key are the same node.
type Key string

// Node is a named fact in the dependency graph.
// Inputs are the facts that must all be known before this one can be
// activated, outputs are the facts this one feeds into.
type Node struct {
	key     Key
	inputs  map[Key]struct{}
	outputs []Key
}

func newNode(key Key) *Node {
	return &Node{
		key:    key,
		inputs: make(map[Key]struct{}),
	}
}

// Key returns the node key
func (n *Node) Key() Key {
	return n.key
}

// Inputs returns the keys of the nodes this node depends on, sorted.
func (n *Node) Inputs() []Key {
	keys := make([]Key, 0, len(n.inputs))
	for k := range n.inputs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// HasInput reports whether key is one of the node's inputs.
func (n *Node) HasInput(key Key) bool {
	_, ok := n.inputs[key]
	return ok
}

// Outputs returns the keys of the nodes fed by this node in the order
// they were connected.
func (n *Node) Outputs() []Key {
	return slices.Clone(n.outputs)
}

func (n *Node) String() string {
	return string(n.key)
}

func (n *Node) addOutput(key Key) {
	if slices.Contains(n.outputs, key) {
		return
	}
	n.outputs = append(n.outputs, key)
}
