package graphprep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildDegreeGraph() *Graph {
	g := New()
	for i := NodeID(1); i <= 5; i++ {
		g.AddNode(&Node{ID: i})
	}
	// Node 1 gets in/out degree 3, the rest stay below threshold.
	g.AddEdge(&Edge{From: 2, To: 1})
	g.AddEdge(&Edge{From: 3, To: 1})
	g.AddEdge(&Edge{From: 4, To: 1})
	g.AddEdge(&Edge{From: 1, To: 2})
	g.AddEdge(&Edge{From: 1, To: 3})
	g.AddEdge(&Edge{From: 1, To: 4})
	return g
}

func TestInteriorNodes(t *testing.T) {
	g := buildDegreeGraph()
	interior := InteriorNodes(g, 3)
	assert.Equal(t, []NodeID{1}, interior)
}

func TestInteriorNodes_FallbackToAll(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: 1})
	g.AddNode(&Node{ID: 2})
	g.AddEdge(&Edge{From: 1, To: 2})

	interior := InteriorNodes(g, 3)
	assert.Equal(t, []NodeID{1, 2}, interior, "falls back to all nodes when none meet the threshold")
}
