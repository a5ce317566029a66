package result

import (
	"fmt"
	"sort"

	"github.com/KateRC21/ambudispatch/internal/graphprep"
	"github.com/KateRC21/ambudispatch/internal/scenario"
)

// Cause names one of the three candidate explanations for an
// infeasible model, grounded on original_source's
// _obtener_mensaje_infactibilidad.
type Cause string

const (
	// CauseSpeedExceedsCapacity: some emergency requires more speed
	// than any edge leaving a node on every path to its destination can
	// support.
	CauseSpeedExceedsCapacity Cause = "speed_exceeds_capacity"
	// CauseDisconnected: no path exists from the origin to some
	// emergency's destination at all.
	CauseDisconnected Cause = "disconnected_graph"
	// CauseCapacityBottleneck: several emergencies share an edge whose
	// capacity cannot carry their combined required speed, and no
	// alternative route avoids that edge for at least one of them.
	CauseCapacityBottleneck Cause = "capacity_bottleneck"
)

// Diagnosis is one candidate explanation, together with the
// emergency IDs and/or edges it implicates. Diagnosis is advisory: a
// model reported infeasible by the solver is infeasible regardless of
// whether a cause is found here.
type Diagnosis struct {
	Cause        Cause
	EmergencyIDs []int
	Edges        []graphprep.EdgeKey
	Detail       string
}

// Diagnose inspects g and emergencies for the three candidate causes
// of infeasibility the original implementation enumerates: a
// required-speed/capacity mismatch, an origin-destination
// disconnection, or a shared-edge capacity bottleneck. It is advisory
// only, run after the solver has already reported Infeasible.
func Diagnose(g *graphprep.Graph, emergencies []scenario.Emergency) []Diagnosis {
	var diagnoses []Diagnosis

	reachable := graphprep.BFSReachable(g, g.OriginID)

	disconnected := []int{}
	for _, e := range emergencies {
		if !reachable[e.DestinationNode] {
			disconnected = append(disconnected, e.ID)
		}
	}
	if len(disconnected) > 0 {
		diagnoses = append(diagnoses, Diagnosis{
			Cause:        CauseDisconnected,
			EmergencyIDs: disconnected,
			Detail:       "no path exists from the origin to the destination of these emergencies",
		})
	}

	speedMismatch := []int{}
	for _, e := range emergencies {
		if !reachable[e.DestinationNode] {
			continue
		}
		if !hasSpeedCapableRoute(g, e) {
			speedMismatch = append(speedMismatch, e.ID)
		}
	}
	if len(speedMismatch) > 0 {
		diagnoses = append(diagnoses, Diagnosis{
			Cause:        CauseSpeedExceedsCapacity,
			EmergencyIDs: speedMismatch,
			Detail:       "every path from the origin to the destination of these emergencies crosses an edge whose capacity is below the emergency's required speed",
		})
	}

	if bottleneck, ids, edges := findCapacityBottleneck(g, emergencies); bottleneck {
		diagnoses = append(diagnoses, Diagnosis{
			Cause:        CauseCapacityBottleneck,
			EmergencyIDs: ids,
			Edges:        edges,
			Detail:       "these emergencies' combined required speed exceeds the capacity of an edge none of them can avoid",
		})
	}

	return diagnoses
}

// hasSpeedCapableRoute reports whether some path from g.OriginID to
// e.DestinationNode uses only edges whose capacity is at least
// e.RequiredSpeedKMH - i.e. whether the emergency's required speed is
// satisfiable by the network topology alone, ignoring any other
// emergency's competing use of capacity.
func hasSpeedCapableRoute(g *graphprep.Graph, e scenario.Emergency) bool {
	visited := map[graphprep.NodeID]bool{g.OriginID: true}
	queue := []graphprep.NodeID{g.OriginID}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if v == e.DestinationNode {
			return true
		}
		for _, to := range g.GetOutgoing(v) {
			edge, ok := g.GetEdge(v, to)
			if !ok || edge.CapacityKMH < e.RequiredSpeedKMH-graphprep.Epsilon {
				continue
			}
			if !visited[to] {
				visited[to] = true
				queue = append(queue, to)
			}
		}
	}
	return false
}

// findCapacityBottleneck looks for an edge whose capacity is smaller
// than the sum of required speeds of every emergency that could only
// reach its destination through that edge (i.e. the edge is a cut
// vertex-like chokepoint for those emergencies). This is a conservative, single-edge
// approximation of the original's "multiple flows share insufficient
// capacity" cause - it does not attempt a full multi-commodity cut
// analysis.
func findCapacityBottleneck(g *graphprep.Graph, emergencies []scenario.Emergency) (bool, []int, []graphprep.EdgeKey) {
	for _, key := range g.SortedEdgeKeys() {
		edge, _ := g.GetEdge(key.From, key.To)

		var sharers []int
		totalRequired := 0.0
		for _, e := range emergencies {
			if !isOnlyRouteThroughEdge(g, e, key) {
				continue
			}
			sharers = append(sharers, e.ID)
			totalRequired += e.RequiredSpeedKMH
		}

		if len(sharers) >= 2 && totalRequired > edge.CapacityKMH+graphprep.Epsilon {
			sort.Ints(sharers)
			return true, sharers, []graphprep.EdgeKey{key}
		}
	}
	return false, nil, nil
}

// isOnlyRouteThroughEdge reports whether removing edge disconnects
// e's origin from its destination, i.e. every route for e must cross
// it.
func isOnlyRouteThroughEdge(g *graphprep.Graph, e scenario.Emergency, edge graphprep.EdgeKey) bool {
	visited := map[graphprep.NodeID]bool{g.OriginID: true}
	queue := []graphprep.NodeID{g.OriginID}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if v == e.DestinationNode {
			return false
		}
		for _, to := range g.GetOutgoing(v) {
			if v == edge.From && to == edge.To {
				continue
			}
			if !visited[to] {
				visited[to] = true
				queue = append(queue, to)
			}
		}
	}
	return true
}

// String renders a human-readable summary line, used by verbose
// driver output and CLI reporting.
func (d Diagnosis) String() string {
	return fmt.Sprintf("%s: %s (emergencies=%v edges=%v)", d.Cause, d.Detail, d.EmergencyIDs, d.Edges)
}
