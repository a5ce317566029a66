package milp

import (
	"fmt"
	"sync"

	"github.com/KateRC21/ambudispatch/internal/costs"
	"github.com/KateRC21/ambudispatch/internal/graphprep"
	"github.com/KateRC21/ambudispatch/internal/scenario"
	"github.com/KateRC21/ambudispatch/pkg/apperror"
)

// termPool recycles the []Term buffers used to stage a row or the
// objective before handing it to Solver.AddRow/SetObjective, which copy
// what they need out of it. Scaled to this module's row sizes (at most
// one term per edge endpoint or per emergency), unlike the teacher's
// GraphPool, which pools whole adjacency-list graphs.
var termPool = sync.Pool{
	New: func() any {
		buf := make([]Term, 0, 8)
		return &buf
	},
}

func getTerms() []Term {
	buf := termPool.Get().(*[]Term)
	return (*buf)[:0]
}

func putTerms(terms []Term) {
	terms = terms[:0]
	termPool.Put(&terms)
}

// Model is the built MCF-MILP instance: the binary variable assigned to
// each (edge, emergency) pair, ready for Solve and later for
// internal/result to read back through VarXIJK.
type Model struct {
	Graph       *graphprep.Graph
	Emergencies []scenario.Emergency
	Costs       costs.Table

	vars map[varKey]VarID
}

type varKey struct {
	Edge graphprep.EdgeKey
	K    int // index into Emergencies, not Emergency.ID
}

// VarXIJK returns the variable bound to edge (from,to) carrying
// emergency k's flow, and whether that variable exists (it won't if the
// edge was never added to the graph).
func (m *Model) VarXIJK(from, to graphprep.NodeID, k int) (VarID, bool) {
	v, ok := m.vars[varKey{Edge: graphprep.EdgeKey{From: from, To: to}, K: k}]
	return v, ok
}

// Build constructs the MCF-MILP instance described in the routing
// specification on top of solver: one binary variable per (edge,
// emergency) pair, flow-conservation rows per (node, emergency),
// shared-capacity rows per edge, and the weighted objective. It adds no
// subtour-elimination constraints; C1 and C2 alone define the feasible
// region, per the routing model's design notes.
func Build(g *graphprep.Graph, emergencies []scenario.Emergency, costTable costs.Table, solver Solver) (*Model, error) {
	if len(emergencies) == 0 {
		return nil, apperror.New(apperror.CodeInvalidInput, "cannot build a model with no emergencies")
	}
	if _, ok := g.GetNode(g.OriginID); !ok {
		return nil, apperror.New(apperror.CodeInvalidInput, "origin node is not present in the graph")
	}
	if err := costTable.Validate(); err != nil {
		return nil, err
	}

	seenDest := make(map[graphprep.NodeID]bool, len(emergencies))
	for _, e := range emergencies {
		if e.DestinationNode == g.OriginID {
			return nil, apperror.New(apperror.CodeInvalidInput,
				fmt.Sprintf("emergency %d destination equals the origin node", e.ID))
		}
		if seenDest[e.DestinationNode] {
			return nil, apperror.New(apperror.CodeInvalidInput,
				fmt.Sprintf("emergency %d duplicates a destination already assigned to another emergency", e.ID))
		}
		seenDest[e.DestinationNode] = true
		if _, ok := g.GetNode(e.DestinationNode); !ok {
			return nil, apperror.New(apperror.CodeInvalidInput,
				fmt.Sprintf("emergency %d destination node %d is not present in the graph", e.ID, e.DestinationNode))
		}
	}

	edgeKeys := g.SortedEdgeKeys()
	for _, key := range edgeKeys {
		edge, _ := g.GetEdge(key.From, key.To)
		if edge.LengthM <= 0 || edge.CapacityKMH <= 0 {
			return nil, apperror.New(apperror.CodeMissingAttribute,
				fmt.Sprintf("edge %s is missing length_m or capacity_kmh", key))
		}
	}

	m := &Model{
		Graph:       g,
		Emergencies: emergencies,
		Costs:       costTable,
		vars:        make(map[varKey]VarID, len(edgeKeys)*len(emergencies)),
	}

	// One binary variable per (edge, emergency) pair, created in a fixed
	// deterministic order (emergency-major, then sorted edge order) so
	// variable IDs - and therefore branch order inside the solver - do
	// not depend on map iteration.
	for k, e := range emergencies {
		for _, key := range edgeKeys {
			name := fmt.Sprintf("x_%d_%d_%d", key.From, key.To, e.ID)
			v := solver.AddBinaryVar(name)
			m.vars[varKey{Edge: key, K: k}] = v
		}
	}

	m.addFlowConservation(solver)
	m.addSharedCapacity(solver)
	m.setObjective(solver)

	return m, nil
}

// addFlowConservation adds one equality row per (node, emergency): the
// net outflow at v must equal +1 at the emergency's origin, -1 at its
// destination, and 0 everywhere else.
func (m *Model) addFlowConservation(solver Solver) {
	nodeIDs := m.Graph.SortedNodeIDs()

	for k, e := range m.Emergencies {
		for _, v := range nodeIDs {
			terms := getTerms()
			for _, to := range m.Graph.GetOutgoing(v) {
				if vid, ok := m.VarXIJK(v, to, k); ok {
					terms = append(terms, Term{Var: vid, Coeff: 1})
				}
			}
			for _, from := range m.Graph.GetIncoming(v) {
				if vid, ok := m.VarXIJK(from, v, k); ok {
					terms = append(terms, Term{Var: vid, Coeff: -1})
				}
			}
			rhs := 0.0
			switch v {
			case m.Graph.OriginID:
				rhs = 1
			case e.DestinationNode:
				rhs = -1
			}
			if len(terms) == 0 && rhs == 0 {
				putTerms(terms)
				continue
			}
			solver.AddRow(EQ, rhs, terms)
			putTerms(terms)
		}
	}
}

// addSharedCapacity adds one row per edge: the sum of required speeds
// of every emergency routed over that edge may not exceed its
// capacity_kmh.
func (m *Model) addSharedCapacity(solver Solver) {
	for _, key := range m.Graph.SortedEdgeKeys() {
		edge, _ := m.Graph.GetEdge(key.From, key.To)

		terms := getTerms()
		for k, e := range m.Emergencies {
			vid, ok := m.VarXIJK(key.From, key.To, k)
			if !ok {
				continue
			}
			terms = append(terms, Term{Var: vid, Coeff: e.RequiredSpeedKMH})
		}
		solver.AddRow(LE, edge.CapacityKMH, terms)
		putTerms(terms)
	}
}

// setObjective sets Z = sum of every routed emergency's fixed
// activation cost plus sum over (edge, emergency) of
// (length_km * per_km_cost) * x[i,j,k]. Fixed costs are incurred once
// per emergency regardless of route and are folded into the objective
// as a constant (added directly to ObjectiveValue by the solver driver,
// not as solver terms, since no variable toggles them).
func (m *Model) setObjective(solver Solver) {
	terms := getTerms()
	for k, e := range m.Emergencies {
		row := m.Costs.Lookup(e.Severity)
		for _, key := range m.Graph.SortedEdgeKeys() {
			edge, _ := m.Graph.GetEdge(key.From, key.To)
			vid, ok := m.VarXIJK(key.From, key.To, k)
			if !ok {
				continue
			}
			coeff := (edge.LengthM / 1000.0) * row.PerKMCost
			terms = append(terms, Term{Var: vid, Coeff: coeff})
		}
	}
	solver.SetObjective(Minimize, terms)
	putTerms(terms)
}

// FixedCostTotal returns the sum of every emergency's fixed activation
// cost. The model's objective only prices variable (per-km) cost
// through solver terms; this constant term is added back by the
// solver driver once the solver itself terminates.
func (m *Model) FixedCostTotal() float64 {
	total := 0.0
	for _, e := range m.Emergencies {
		total += m.Costs.Lookup(e.Severity).FixedCost
	}
	return total
}
