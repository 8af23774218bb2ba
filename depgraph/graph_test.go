package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraph_NodeIsStableByKey(t *testing.T) {
	g := NewGraph()

	a1 := g.Node("a")
	a2 := g.Node("a")

	assert.Same(t, a1, a2)
	assert.Equal(t, 1, g.Len())
}

func TestGraph_ConnectIsBidirectional(t *testing.T) {
	g := NewGraph()
	g.Connect("a", "c")
	g.Connect("b", "c")

	a, ok := g.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, []Key{"c"}, a.Outputs())
	assert.Empty(t, a.Inputs())

	c, ok := g.Lookup("c")
	assert.True(t, ok)
	assert.Equal(t, []Key{"a", "b"}, c.Inputs())
	assert.True(t, c.HasInput("b"))
	assert.False(t, c.HasInput("c"))
}

func TestGraph_ConnectTwiceKeepsEdgesUnique(t *testing.T) {
	g := NewGraph()
	g.Connect("a", "b")
	g.Connect("a", "b")

	a, _ := g.Lookup("a")
	b, _ := g.Lookup("b")
	assert.Equal(t, []Key{"b"}, a.Outputs())
	assert.Equal(t, []Key{"a"}, b.Inputs())
}

func TestGraph_NodesInCreationOrder(t *testing.T) {
	g := NewGraph()
	g.Connect("z", "y")
	g.Connect("a", "y")

	var keys []Key
	for _, n := range g.Nodes() {
		keys = append(keys, n.Key())
	}
	assert.Equal(t, []Key{"z", "y", "a"}, keys)

	_, ok := g.Lookup("missing")
	assert.False(t, ok)
}

func TestNode_OutputsIsACopy(t *testing.T) {
	g := NewGraph()
	g.Connect("a", "b")

	a, _ := g.Lookup("a")
	outs := a.Outputs()
	outs[0] = "mutated"

	assert.Equal(t, []Key{"b"}, a.Outputs())
	assert.Equal(t, "a", a.String())
}
