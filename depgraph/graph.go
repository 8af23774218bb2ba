package depgraph

import "errors"

var (
	// ErrNoPreconditions is returned when a search is started without any
	// already satisfied node.
	ErrNoPreconditions = errors.New("start nodes cannot be empty")

	// ErrNodeNotFound is returned when a key does not name a node of the graph.
	ErrNodeNotFound = errors.New("node not found")
)

// Graph is an arena of nodes addressed by key. Edges are added while the
// graph is built and never removed; once built, a Graph is read-only and
// may be searched from several goroutines.
type Graph struct {
	nodes map[Key]*Node
	order []Key
}

// NewGraph creates an empty dependency graph
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[Key]*Node),
	}
}

// Node returns the node for key, creating it if absent.
func (g *Graph) Node(key Key) *Node {
	if n, ok := g.nodes[key]; ok {
		return n
	}
	n := newNode(key)
	g.nodes[key] = n
	g.order = append(g.order, key)
	return n
}

// Lookup returns the node for key without creating it.
func (g *Graph) Lookup(key Key) (*Node, bool) {
	n, ok := g.nodes[key]
	return n, ok
}

// Connect registers to as an output of from, which also registers from as an
// input of to. Both nodes are created if needed.
func (g *Graph) Connect(from, to Key) {
	src := g.Node(from)
	dst := g.Node(to)
	src.addOutput(dst.key)
	dst.inputs[src.key] = struct{}{}
}

// Nodes returns all nodes in creation order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, k := range g.order {
		nodes = append(nodes, g.nodes[k])
	}
	return nodes
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}
