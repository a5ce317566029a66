// Package result extracts routes, per-emergency cost details, edge
// utilization, and infeasibility diagnostics from a solved MILP model.
package result

import (
	"fmt"

	"github.com/KateRC21/ambudispatch/internal/graphprep"
	"github.com/KateRC21/ambudispatch/internal/milp"
)

// SolutionThreshold is the value above which a binary variable is
// treated as selected. The branch-and-bound solver reports exact 0/1
// values; the threshold also tolerates a solver that returns rounded
// fractional values.
const SolutionThreshold = 0.5

// Route is one emergency's reconstructed path through the graph.
type Route struct {
	Nodes    []graphprep.NodeID
	Edges    []graphprep.EdgeKey
	Warnings []string
}

// ReconstructRoute walks forward from origin, following, at each node,
// the unique outgoing edge whose x[cur,next,k] variable is selected,
// until it reaches dest. Grounded on the teacher's
// pkg/domain/path.go's ReconstructPath, generalized from a
// parent-map walk (built during a flow search) to a forward walk
// driven directly by the solved binary variables - there is no parent
// map here, since the MILP has no search state to retain one.
//
// If no selected outgoing edge exists at some node before dest is
// reached, ReconstructRoute returns the partial route built so far
// with a warning. If a node is revisited, it stops and warns rather
// than looping forever.
func ReconstructRoute(g *graphprep.Graph, model *milp.Model, solver milp.Solver, k int, origin, dest graphprep.NodeID) Route {
	route := Route{Nodes: []graphprep.NodeID{origin}}
	visited := map[graphprep.NodeID]bool{origin: true}

	current := origin
	for current != dest {
		next, edgeKey, ok := selectedSuccessor(g, model, solver, k, current)
		if !ok {
			route.Warnings = append(route.Warnings,
				fmt.Sprintf("no selected outgoing edge at node %d; route is incomplete", current))
			return route
		}

		if visited[next] {
			route.Warnings = append(route.Warnings,
				fmt.Sprintf("node %d revisited; stopping route reconstruction to avoid a cycle", next))
			return route
		}

		route.Edges = append(route.Edges, edgeKey)
		route.Nodes = append(route.Nodes, next)
		visited[next] = true
		current = next
	}

	return route
}

// selectedSuccessor returns the single node reachable from current
// whose edge variable for commodity k is selected. If more than one
// outgoing edge is selected (which a correctly built C1 row should
// never allow), the first found in sorted order wins, deterministically.
func selectedSuccessor(g *graphprep.Graph, model *milp.Model, solver milp.Solver, k int, current graphprep.NodeID) (graphprep.NodeID, graphprep.EdgeKey, bool) {
	outgoing := append([]graphprep.NodeID(nil), g.GetOutgoing(current)...)
	sortNodeIDs(outgoing)

	for _, to := range outgoing {
		v, ok := model.VarXIJK(current, to, k)
		if !ok {
			continue
		}
		if solver.Value(v) > SolutionThreshold {
			return to, graphprep.EdgeKey{From: current, To: to}, true
		}
	}
	return 0, graphprep.EdgeKey{}, false
}

func sortNodeIDs(ids []graphprep.NodeID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}
