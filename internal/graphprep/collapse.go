package graphprep

import "sort"

// CollapseMultiEdges reduces a raw multigraph into a simple directed
// graph: when more than one MultiEdge shares the same ordered (From, To)
// pair, only one survives, carrying the capacity already assigned to
// that pair in capacities (every parallel shares the same draw, so the
// "maximum capacity wins" rule in the prepared-graph contract is always
// satisfied trivially). Ties among parallels with identical capacity are
// broken by the shortest LengthM, keeping the result deterministic
// regardless of input ordering.
//
// Re-running CollapseMultiEdges against a graph that already has at most
// one edge per ordered pair is a no-op (idempotent), since each bucket
// then holds exactly one candidate.
func CollapseMultiEdges(nodes map[NodeID]*Node, raw []*MultiEdge, capacities map[EdgeKey]float64) *Graph {
	best := make(map[EdgeKey]*MultiEdge, len(raw))

	for _, me := range raw {
		key := EdgeKey{From: me.From, To: me.To}
		cur, exists := best[key]
		if !exists || me.LengthM < cur.LengthM {
			best[key] = me
		}
	}

	g := New()
	for id, n := range nodes {
		g.AddNode(&Node{ID: id, Lat: n.Lat, Lon: n.Lon})
	}

	keys := make([]EdgeKey, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].From != keys[j].From {
			return keys[i].From < keys[j].From
		}
		return keys[i].To < keys[j].To
	})

	for _, k := range keys {
		me := best[k]
		g.AddEdge(&Edge{
			From:        me.From,
			To:          me.To,
			LengthM:     me.LengthM,
			CapacityKMH: capacities[k],
		})
	}

	return g
}
