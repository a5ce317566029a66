package graphprep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineDistanceM_SamePoint(t *testing.T) {
	d := HaversineDistanceM(4.60, -74.08, 4.60, -74.08)
	assert.InDelta(t, 0.0, d, 1e-6)
}

func TestHaversineDistanceM_KnownDistance(t *testing.T) {
	// Bogota to Medellin, roughly 240 km apart.
	d := HaversineDistanceM(4.7110, -74.0721, 6.2442, -75.5812)
	km := d / 1000
	assert.InDelta(t, 241, km, 15)
}

func TestFindNearest(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: 1, Lat: 4.60, Lon: -74.08})
	g.AddNode(&Node{ID: 2, Lat: 4.65, Lon: -74.05})
	g.AddNode(&Node{ID: 3, Lat: 5.00, Lon: -73.50})

	id, ok := FindNearest(g, 4.601, -74.081)
	require.True(t, ok)
	assert.Equal(t, NodeID(1), id)
}

func TestFindNearest_EmptyGraph(t *testing.T) {
	g := New()
	_, ok := FindNearest(g, 0, 0)
	assert.False(t, ok)
}
