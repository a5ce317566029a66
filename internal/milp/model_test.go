package milp

import (
	"context"
	"testing"

	"github.com/KateRC21/ambudispatch/internal/costs"
	"github.com/KateRC21/ambudispatch/internal/graphprep"
	"github.com/KateRC21/ambudispatch/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainGraph builds the S1 fixture: o -> a -> b -> d, each edge 1000m
// at 80 km/h.
func chainGraph(t *testing.T) *graphprep.Graph {
	t.Helper()
	g := graphprep.New()
	const o, a, b, d = graphprep.NodeID(1), graphprep.NodeID(2), graphprep.NodeID(3), graphprep.NodeID(4)
	g.OriginID = o
	for _, id := range []graphprep.NodeID{o, a, b, d} {
		g.AddNode(&graphprep.Node{ID: id})
	}
	for _, e := range []struct{ from, to graphprep.NodeID }{{o, a}, {a, b}, {b, d}} {
		g.AddEdge(&graphprep.Edge{From: e.from, To: e.to, LengthM: 1000, CapacityKMH: 80})
	}
	return g
}

func TestBuild_S1Chain(t *testing.T) {
	g := chainGraph(t)
	emergencies := []scenario.Emergency{
		{ID: 1, Severity: scenario.SeverityGrave, RequiredSpeedKMH: 75, DestinationNode: 4},
	}
	solver := NewSolver()

	model, err := Build(g, emergencies, costs.Default(), solver)
	require.NoError(t, err)
	assert.Equal(t, 3, solver.nVars) // one var per edge for the single emergency

	status, err := solver.Solve(context.Background(), Limits{TimeLimitSeconds: 10, Gap: 0.01})
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, status)

	for _, key := range [][2]graphprep.NodeID{{1, 2}, {2, 3}, {3, 4}} {
		v, ok := model.VarXIJK(key[0], key[1], 0)
		require.True(t, ok)
		assert.Equal(t, 1.0, solver.Value(v), "edge %v must be selected on the only feasible route", key)
	}

	wantVariableCost := 3.0 * costs.Default().Lookup(scenario.SeverityGrave).PerKMCost
	assert.InDelta(t, wantVariableCost, solver.ObjectiveValue(), 1e-6)

	wantTotal := wantVariableCost + model.FixedCostTotal()
	assert.InDelta(t, 146188.0, wantTotal, 1e-6)
}

func TestBuild_S3CapacityForcesDetour(t *testing.T) {
	g := graphprep.New()
	const o, a, b, d = graphprep.NodeID(1), graphprep.NodeID(2), graphprep.NodeID(3), graphprep.NodeID(4)
	g.OriginID = o
	for _, id := range []graphprep.NodeID{o, a, b, d} {
		g.AddNode(&graphprep.Node{ID: id})
	}
	g.AddEdge(&graphprep.Edge{From: o, To: a, LengthM: 1000, CapacityKMH: 30}) // too narrow for required 40
	g.AddEdge(&graphprep.Edge{From: a, To: d, LengthM: 1000, CapacityKMH: 60})
	g.AddEdge(&graphprep.Edge{From: o, To: b, LengthM: 2000, CapacityKMH: 60})
	g.AddEdge(&graphprep.Edge{From: b, To: d, LengthM: 500, CapacityKMH: 60})

	emergencies := []scenario.Emergency{
		{ID: 1, Severity: scenario.SeverityLeve, RequiredSpeedKMH: 40, DestinationNode: d},
	}
	solver := NewSolver()
	model, err := Build(g, emergencies, costs.Default(), solver)
	require.NoError(t, err)

	status, err := solver.Solve(context.Background(), Limits{TimeLimitSeconds: 10, Gap: 0.01})
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, status)

	oa, _ := model.VarXIJK(o, a, 0)
	ob, _ := model.VarXIJK(o, b, 0)
	assert.Equal(t, 0.0, solver.Value(oa), "edge o->a is too narrow for the required speed and must be avoided")
	assert.Equal(t, 1.0, solver.Value(ob))
}

func TestBuild_RejectsDestinationEqualsOrigin(t *testing.T) {
	g := chainGraph(t)
	emergencies := []scenario.Emergency{
		{ID: 1, Severity: scenario.SeverityLeve, RequiredSpeedKMH: 40, DestinationNode: g.OriginID},
	}
	_, err := Build(g, emergencies, costs.Default(), NewSolver())
	assert.Error(t, err)
}

func TestBuild_RejectsDuplicateDestinations(t *testing.T) {
	g := chainGraph(t)
	emergencies := []scenario.Emergency{
		{ID: 1, Severity: scenario.SeverityLeve, RequiredSpeedKMH: 40, DestinationNode: 4},
		{ID: 2, Severity: scenario.SeverityMedia, RequiredSpeedKMH: 50, DestinationNode: 4},
	}
	_, err := Build(g, emergencies, costs.Default(), NewSolver())
	assert.Error(t, err)
}

func TestBuild_RejectsEmptyEmergencyList(t *testing.T) {
	g := chainGraph(t)
	_, err := Build(g, nil, costs.Default(), NewSolver())
	assert.Error(t, err)
}

func TestBuild_RejectsMissingCapacity(t *testing.T) {
	g := graphprep.New()
	g.OriginID = 1
	g.AddNode(&graphprep.Node{ID: 1})
	g.AddNode(&graphprep.Node{ID: 2})
	g.AddEdge(&graphprep.Edge{From: 1, To: 2, LengthM: 500}) // CapacityKMH left at zero

	emergencies := []scenario.Emergency{
		{ID: 1, Severity: scenario.SeverityLeve, RequiredSpeedKMH: 40, DestinationNode: 2},
	}
	_, err := Build(g, emergencies, costs.Default(), NewSolver())
	assert.Error(t, err)
}
