package graphprep

// Statistics summarizes the shape of a prepared graph: node/edge
// counts, average edge length, density, and degree spread. It is
// reporting metadata attached to a run's result, computed the way the
// teacher's domain package computes its own GraphStatistics.
type Statistics struct {
	NodeCount         int
	EdgeCount         int
	TotalCapacityKMH  float64
	AverageEdgeLength float64
	IsConnected       bool
	Density           float64
	AverageDegree     float64
	MaxDegree         int
	MinDegree         int
}

// ComputeStatistics computes a Statistics summary for g.
func ComputeStatistics(g *Graph) *Statistics {
	stats := &Statistics{
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
		MinDegree: int(^uint(0) >> 1),
	}

	var totalLength float64
	degree := make(map[NodeID]int)

	for _, key := range g.SortedEdgeKeys() {
		e := g.Edges[key]
		stats.TotalCapacityKMH += e.CapacityKMH
		totalLength += e.LengthM
		degree[e.From]++
		degree[e.To]++
	}

	if len(degree) > 0 {
		var totalDegree int
		for _, d := range degree {
			totalDegree += d
			if d > stats.MaxDegree {
				stats.MaxDegree = d
			}
			if d < stats.MinDegree {
				stats.MinDegree = d
			}
		}
		stats.AverageDegree = float64(totalDegree) / float64(len(degree))
	} else {
		stats.MinDegree = 0
	}

	if stats.EdgeCount > 0 {
		stats.AverageEdgeLength = totalLength / float64(stats.EdgeCount)
	}

	if stats.NodeCount > 1 {
		maxEdges := stats.NodeCount * (stats.NodeCount - 1)
		stats.Density = float64(stats.EdgeCount) / float64(maxEdges)
	}

	stats.IsConnected = IsConnected(g)

	return stats
}
