package graphprep

import (
	"math/rand"
	"sort"

	"github.com/KateRC21/ambudispatch/pkg/apperror"
)

// DefaultMinCapacityKMH and DefaultMaxCapacityKMH bound the uniform
// capacity distribution used when no scenario-specific range is given.
const (
	DefaultMinCapacityKMH = 20.0
	DefaultMaxCapacityKMH = 80.0
)

// AssignCapacities draws one capacity (km/h — the effective speed a
// shared segment supports under load) per distinct ordered pair (u,v)
// present in raw, uniformly from [minKMH, maxKMH], using a single PRNG
// stream seeded by seed. Every parallel edge between the same ordered
// pair receives the identical draw, so that CollapseMultiEdges later
// produces a deterministic result regardless of which parallel survives.
//
// Ordered pairs are visited in ascending (From, To) order rather than
// multigraph input order, so the same seed always yields the same
// assignment independent of how the raw edge list was built.
//
// math/rand is used directly rather than through a third-party PRNG
// library: no alternative random-number package appears anywhere in the
// reference corpus, and the standard library's seeded *rand.Rand gives
// the exact reproducibility this assignment needs.
func AssignCapacities(raw []*MultiEdge, minKMH, maxKMH float64, seed int64) (map[EdgeKey]float64, error) {
	if minKMH <= 0 || maxKMH <= 0 || minKMH >= maxKMH {
		return nil, apperror.New(apperror.CodeInvalidRange,
			"capacity range must satisfy 0 < min < max")
	}

	pairs := make(map[EdgeKey]struct{})
	for _, me := range raw {
		pairs[EdgeKey{From: me.From, To: me.To}] = struct{}{}
	}

	keys := make([]EdgeKey, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].From != keys[j].From {
			return keys[i].From < keys[j].From
		}
		return keys[i].To < keys[j].To
	})

	rng := rand.New(rand.NewSource(seed))
	spread := maxKMH - minKMH

	capacities := make(map[EdgeKey]float64, len(keys))
	for _, k := range keys {
		capacities[k] = minKMH + rng.Float64()*spread
	}

	return capacities, nil
}
