package graphprep

import "github.com/KateRC21/ambudispatch/pkg/apperror"

// DeriveTravelTime sets travel_time_min on every edge of g from its
// length and capacity: travel_time_min = length_m * 60 / (capacity_kmh
// * 1000). It fails with CodeMissingAttribute if any edge's length or
// capacity is not strictly positive, since travel time is undefined
// (or infinite/zero) otherwise.
func DeriveTravelTime(g *Graph) error {
	for _, key := range g.SortedEdgeKeys() {
		e := g.Edges[key]
		if e.LengthM <= 0 || e.CapacityKMH <= 0 {
			return apperror.New(apperror.CodeMissingAttribute,
				"edge "+key.String()+" is missing a positive length_m or capacity_kmh")
		}
		e.TravelTimeMin = e.LengthM * 60.0 / (e.CapacityKMH * 1000.0)
	}
	return nil
}
