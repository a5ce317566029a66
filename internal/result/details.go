package result

import (
	"fmt"

	"github.com/KateRC21/ambudispatch/internal/costs"
	"github.com/KateRC21/ambudispatch/internal/graphprep"
	"github.com/KateRC21/ambudispatch/internal/milp"
	"github.com/KateRC21/ambudispatch/internal/scenario"
	"github.com/KateRC21/ambudispatch/pkg/apperror"
)

// Detail is one emergency's full result record: its identity, the
// route chosen for it, and the costs attributed to it.
type Detail struct {
	EmergencyID      int
	Severity         scenario.Severity
	RequiredSpeedKMH float64
	DestinationNode  graphprep.NodeID
	AmbulanceType    string

	DistanceKM float64
	EdgeCount  int
	FixedCost  float64
	VariableCost float64
	TotalCost  float64

	RouteNodes []graphprep.NodeID
	RouteEdges []graphprep.EdgeKey
	Warnings   []string
}

// ComputeDetails reconstructs emergencies[k]'s route and derives its
// cost breakdown. It cross-checks distance_km x per_km_cost against a
// per-edge sum of (length_m/1000) x per_km_cost over the reconstructed
// route's edges. It does not read the solver's variable values, so
// selected edges outside the reconstructed route are not counted in
// either figure. A mismatch beyond tolerance is reported through apperror
// rather than a panic, since it reflects a solver or bookkeeping bug
// a caller needs to be able to recover from, not a programmer error to
// crash on.
func ComputeDetails(g *graphprep.Graph, model *milp.Model, solver milp.Solver, costTable costs.Table, k int) (Detail, error) {
	e := model.Emergencies[k]
	row := costTable.Lookup(e.Severity)

	route := ReconstructRoute(g, model, solver, k, g.OriginID, e.DestinationNode)

	distanceM := 0.0
	objectiveTerms := 0.0
	for _, key := range route.Edges {
		edge, ok := g.GetEdge(key.From, key.To)
		if !ok {
			continue
		}
		distanceM += edge.LengthM
		objectiveTerms += (edge.LengthM / 1000.0) * row.PerKMCost
	}
	distanceKM := distanceM / 1000.0
	variableCost := distanceKM * row.PerKMCost

	if absFloat(variableCost-objectiveTerms) > 1e-6*maxFloat(1, absFloat(variableCost)) {
		return Detail{}, apperror.New(apperror.CodeCostMismatch,
			fmt.Sprintf("emergency %d: route variable cost %.6f does not match the objective's attributed cost %.6f",
				e.ID, variableCost, objectiveTerms))
	}

	detail := Detail{
		EmergencyID:      e.ID,
		Severity:         e.Severity,
		RequiredSpeedKMH: e.RequiredSpeedKMH,
		DestinationNode:  e.DestinationNode,
		AmbulanceType:    e.Severity.AmbulanceType(),
		DistanceKM:       distanceKM,
		EdgeCount:        len(route.Edges),
		FixedCost:        row.FixedCost,
		VariableCost:     variableCost,
		TotalCost:        row.FixedCost + variableCost,
		RouteNodes:       route.Nodes,
		RouteEdges:       route.Edges,
		Warnings:         route.Warnings,
	}
	return detail, nil
}

// ComputeAllDetails runs ComputeDetails for every emergency in model,
// in emergency order. The first cost-mismatch error aborts the batch;
// a run-level caller can choose to surface that as a diagnostic rather
// than discard the partial results already computed.
func ComputeAllDetails(g *graphprep.Graph, model *milp.Model, solver milp.Solver, costTable costs.Table) ([]Detail, error) {
	details := make([]Detail, 0, len(model.Emergencies))
	for k := range model.Emergencies {
		d, err := ComputeDetails(g, model, solver, costTable, k)
		if err != nil {
			return details, err
		}
		details = append(details, d)
	}
	return details, nil
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
