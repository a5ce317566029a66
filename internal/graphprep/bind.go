package graphprep

import (
	"math/rand"

	"github.com/KateRC21/ambudispatch/pkg/apperror"
)

// Destination is a candidate (or bound) emergency destination: a node
// together with its coordinates, returned in the order it was sampled.
type Destination struct {
	NodeID NodeID
	Lat    float64
	Lon    float64
}

// BindEmergencies samples count destinations without replacement from
// InteriorNodes(g, 3), excluding origin. When that pool has fewer than
// count candidates, it is extended with the remaining non-origin nodes
// in the graph (not replaced by them) before sampling, so a graph with
// too few interior nodes but enough total nodes still succeeds. The
// PRNG is seeded by seed. The i-th returned Destination is bound to the
// i-th emergency a caller is assembling; callers must preserve this
// order when attaching destinations to an emergency list.
//
// Fails with CodeInsufficientNodes if fewer than count candidates remain
// after excluding origin.
func BindEmergencies(g *Graph, count int, origin NodeID, seed int64) ([]Destination, error) {
	candidates := InteriorNodes(g, 3)

	pool := make([]NodeID, 0, len(candidates))
	inPool := make(map[NodeID]bool, len(candidates))
	for _, id := range candidates {
		if id != origin {
			pool = append(pool, id)
			inPool[id] = true
		}
	}

	if len(pool) < count {
		for _, id := range g.SortedNodeIDs() {
			if id != origin && !inPool[id] {
				pool = append(pool, id)
				inPool[id] = true
			}
		}
	}

	if len(pool) < count {
		return nil, apperror.New(apperror.CodeInsufficientNodes,
			"fewer candidate destination nodes than emergencies")
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	chosen := pool[:count]
	dests := make([]Destination, count)
	for i, id := range chosen {
		n := g.Nodes[id]
		dests[i] = Destination{NodeID: id, Lat: n.Lat, Lon: n.Lon}
	}

	return dests, nil
}
