package result

import (
	"github.com/KateRC21/ambudispatch/internal/graphprep"
	"github.com/KateRC21/ambudispatch/internal/milp"
)

// EdgeUsage is one edge's load summary across every routed emergency.
type EdgeUsage struct {
	Edge        graphprep.EdgeKey
	FlowIDs     []int // emergency IDs routed over this edge
	LoadKMH     float64
	CapacityKMH float64
	Utilization float64 // LoadKMH / CapacityKMH
}

// ComputeEdgeUsage builds a per-edge load summary from the reconstructed
// routes of every emergency in model. Edges nothing is routed over are
// still reported, with zero load and zero utilization, so a caller can
// distinguish "unused" from "absent".
func ComputeEdgeUsage(g *graphprep.Graph, model *milp.Model, solver milp.Solver, routes []Route) map[graphprep.EdgeKey]*EdgeUsage {
	usage := make(map[graphprep.EdgeKey]*EdgeUsage, g.EdgeCount())
	for _, key := range g.SortedEdgeKeys() {
		edge, _ := g.GetEdge(key.From, key.To)
		usage[key] = &EdgeUsage{Edge: key, CapacityKMH: edge.CapacityKMH}
	}

	for k, route := range routes {
		e := model.Emergencies[k]
		for _, key := range route.Edges {
			u, ok := usage[key]
			if !ok {
				continue
			}
			u.FlowIDs = append(u.FlowIDs, e.ID)
			u.LoadKMH += e.RequiredSpeedKMH
		}
	}

	for _, u := range usage {
		if u.CapacityKMH > graphprep.Epsilon {
			u.Utilization = u.LoadKMH / u.CapacityKMH
		}
	}

	return usage
}
