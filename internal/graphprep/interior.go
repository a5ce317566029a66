package graphprep

// InteriorNodes returns the IDs of nodes whose in-degree and out-degree
// are both at least minDegree. These are candidate destinations for
// emergencies: nodes only on the periphery of the network (dead ends,
// single-approach intersections) make poor simulated incident sites.
//
// If no node meets the threshold, InteriorNodes falls back to every
// node in the graph rather than returning an empty set, so scenario
// generation never starves on a sparse or small network.
func InteriorNodes(g *Graph, minDegree int) []NodeID {
	var interior []NodeID

	for _, id := range g.SortedNodeIDs() {
		if len(g.GetOutgoing(id)) >= minDegree && len(g.GetIncoming(id)) >= minDegree {
			interior = append(interior, id)
		}
	}

	if len(interior) == 0 {
		return g.SortedNodeIDs()
	}
	return interior
}
