package persist

import (
	"bytes"
	"testing"

	"github.com/KateRC21/ambudispatch/internal/graphprep"
	"github.com/KateRC21/ambudispatch/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph() *graphprep.Graph {
	g := graphprep.New()
	g.OriginID = 1
	g.AddNode(&graphprep.Node{ID: 1, Lat: 6.244203, Lon: -75.581212})
	g.AddNode(&graphprep.Node{ID: 2, Lat: 6.252341, Lon: -75.590123})
	g.AddEdge(&graphprep.Edge{From: 1, To: 2, LengthM: 1234.5678, CapacityKMH: 62.25, TravelTimeMin: 1.1898})
	return g
}

func TestGraphRoundTrip_BitExact(t *testing.T) {
	g := sampleGraph()

	var buf bytes.Buffer
	require.NoError(t, WriteGraph(&buf, g))

	restored, err := ReadGraph(&buf)
	require.NoError(t, err)

	assert.Equal(t, g.OriginID, restored.OriginID)
	n1, _ := g.GetNode(1)
	r1, _ := restored.GetNode(1)
	assert.Equal(t, n1.Lat, r1.Lat)
	assert.Equal(t, n1.Lon, r1.Lon)

	e, _ := g.GetEdge(1, 2)
	re, _ := restored.GetEdge(1, 2)
	assert.Equal(t, e.LengthM, re.LengthM)
	assert.Equal(t, e.CapacityKMH, re.CapacityKMH)
	assert.Equal(t, e.TravelTimeMin, re.TravelTimeMin)
}

func TestEmergenciesRoundTrip(t *testing.T) {
	emergencies := []scenario.Emergency{
		{ID: 1, Severity: scenario.SeverityGrave, RequiredSpeedKMH: 75.333333, DestinationNode: 4, DestLat: 6.1, DestLon: -75.2},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEmergencies(&buf, emergencies))

	restored, err := ReadEmergencies(&buf)
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.Equal(t, emergencies[0].ID, restored[0].ID)
	assert.Equal(t, emergencies[0].Severity, restored[0].Severity)
	assert.Equal(t, emergencies[0].RequiredSpeedKMH, restored[0].RequiredSpeedKMH)
	assert.Equal(t, emergencies[0].DestinationNode, restored[0].DestinationNode)
}
