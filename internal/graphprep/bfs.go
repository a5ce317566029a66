package graphprep

// BFSReachable returns the set of nodes reachable from source by
// following edges with positive capacity. Used by infeasibility
// diagnosis to check whether a destination is reachable from the
// origin at all, independent of the capacity demand that made the
// MILP infeasible.
func BFSReachable(g *Graph, source NodeID) map[NodeID]bool {
	visited := map[NodeID]bool{source: true}
	queue := []NodeID{source}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		for _, v := range g.GetOutgoing(u) {
			if visited[v] {
				continue
			}
			edge, ok := g.GetEdge(u, v)
			if !ok || edge.CapacityKMH <= Epsilon {
				continue
			}
			visited[v] = true
			queue = append(queue, v)
		}
	}

	return visited
}

// BFSReverse returns the set of nodes that can reach sink by following
// edges with positive capacity, walking the graph backward.
func BFSReverse(g *Graph, sink NodeID) map[NodeID]bool {
	visited := map[NodeID]bool{sink: true}
	queue := []NodeID{sink}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		for _, v := range g.GetIncoming(u) {
			if visited[v] {
				continue
			}
			edge, ok := g.GetEdge(v, u)
			if !ok || edge.CapacityKMH <= Epsilon {
				continue
			}
			visited[v] = true
			queue = append(queue, v)
		}
	}

	return visited
}

// IsPathPossible reports whether sink is reachable from source under
// positive-capacity edges, ignoring any capacity-demand constraint.
func IsPathPossible(g *Graph, source, sink NodeID) bool {
	return BFSReachable(g, source)[sink]
}

// IsConnected reports whether every node in the graph is reachable from
// g.OriginID, treating the network as a whole rather than a single
// source/sink pair.
func IsConnected(g *Graph) bool {
	reachable := BFSReachable(g, g.OriginID)
	return len(reachable) == g.NodeCount()
}
