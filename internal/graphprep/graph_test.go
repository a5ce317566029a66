package graphprep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGraph() *Graph {
	g := New()
	g.OriginID = 1
	g.AddNode(&Node{ID: 1, Lat: 4.60, Lon: -74.08})
	g.AddNode(&Node{ID: 2, Lat: 4.61, Lon: -74.09})
	g.AddNode(&Node{ID: 3, Lat: 4.62, Lon: -74.10})
	g.AddEdge(&Edge{From: 1, To: 2, LengthM: 500, CapacityKMH: 40, TravelTimeMin: 0.75})
	g.AddEdge(&Edge{From: 2, To: 3, LengthM: 300, CapacityKMH: 30, TravelTimeMin: 0.6})
	return g
}

func TestFloatEquals(t *testing.T) {
	assert.True(t, FloatEquals(1.0, 1.0+1e-12))
	assert.False(t, FloatEquals(1.0, 1.1))
}

func TestGraph_AddAndGet(t *testing.T) {
	g := newTestGraph()

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())

	n, ok := g.GetNode(2)
	require.True(t, ok)
	assert.Equal(t, NodeID(2), n.ID)

	e, ok := g.GetEdge(1, 2)
	require.True(t, ok)
	assert.Equal(t, 500.0, e.LengthM)

	_, ok = g.GetEdge(2, 1)
	assert.False(t, ok, "graph is directed, reverse edge should not exist")
}

func TestGraph_Adjacency(t *testing.T) {
	g := newTestGraph()

	assert.Equal(t, []NodeID{2}, g.GetOutgoing(1))
	assert.Equal(t, []NodeID{1}, g.GetIncoming(2))
	assert.Empty(t, g.GetOutgoing(3))
}

func TestGraph_Clone(t *testing.T) {
	g := newTestGraph()
	clone := g.Clone()

	e, _ := clone.GetEdge(1, 2)
	e.CapacityKMH = 999

	original, _ := g.GetEdge(1, 2)
	assert.Equal(t, 40.0, original.CapacityKMH, "mutating a clone must not affect the source graph")
}

func TestGraph_SortedNodeIDs(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: 5})
	g.AddNode(&Node{ID: 1})
	g.AddNode(&Node{ID: 3})

	assert.Equal(t, []NodeID{1, 3, 5}, g.SortedNodeIDs())
}

func TestGraph_SortedEdgeKeys(t *testing.T) {
	g := New()
	g.AddEdge(&Edge{From: 2, To: 1})
	g.AddEdge(&Edge{From: 1, To: 5})
	g.AddEdge(&Edge{From: 1, To: 2})

	keys := g.SortedEdgeKeys()
	require.Len(t, keys, 3)
	assert.Equal(t, EdgeKey{From: 1, To: 2}, keys[0])
	assert.Equal(t, EdgeKey{From: 1, To: 5}, keys[1])
	assert.Equal(t, EdgeKey{From: 2, To: 1}, keys[2])
}

func TestGraph_Validate(t *testing.T) {
	g := newTestGraph()
	assert.Empty(t, g.Validate())

	bad := New()
	bad.OriginID = 99
	bad.AddNode(&Node{ID: 1})
	bad.AddEdge(&Edge{From: 1, To: 1, CapacityKMH: -5, LengthM: -10})

	errs := bad.Validate()
	assert.Len(t, errs, 4, "missing origin, self-loop, negative capacity, negative length")
}
