// Command ambudispatch is the repository's only executable: a thin
// composition root that loads configuration, wires logging and
// metrics, obtains a prepared graph and an emergency set (from files or
// a synthetic scenario), runs the dispatch pipeline once, and writes
// the result as JSON.
//
// Usage:
//
//	ambudispatch -graph graph.json -emergencies emergencies.json
//	ambudispatch -generate -nodes 40 -seed 42
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/KateRC21/ambudispatch/internal/costs"
	"github.com/KateRC21/ambudispatch/internal/graphprep"
	"github.com/KateRC21/ambudispatch/internal/pipeline"
	"github.com/KateRC21/ambudispatch/internal/rundriver"
	"github.com/KateRC21/ambudispatch/internal/scenario"
	"github.com/KateRC21/ambudispatch/pkg/config"
	"github.com/KateRC21/ambudispatch/pkg/logger"
	"github.com/KateRC21/ambudispatch/pkg/metrics"
	"github.com/KateRC21/ambudispatch/pkg/persist"
	"github.com/goccy/go-json"
)

func main() {
	var (
		graphPath       = flag.String("graph", "", "path to a prepared graph.json (required unless -generate)")
		emergenciesPath = flag.String("emergencies", "", "path to an emergencies.json (required unless -generate)")
		outPath         = flag.String("out", "", "path to write the result JSON (default: stdout)")
		generate        = flag.Bool("generate", false, "generate a synthetic graph and scenario instead of reading files")
		genNodes        = flag.Int("nodes", 20, "node count for -generate")
		genSeed         = flag.Int64("seed", 0, "RNG seed for -generate and scenario generation (0 uses config default)")
		centerLat       = flag.Float64("center-lat", 6.244203, "clinic latitude for -generate; origin is the node nearest to it")
		centerLon       = flag.Float64("center-lon", -75.581212, "clinic longitude for -generate; origin is the node nearest to it")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	if cfg.Metrics.Enabled {
		m := metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
		m.SetServiceInfo(cfg.App.Version, cfg.App.Environment)
		go func() {
			if err := metrics.StartMetricsServer(cfg.Metrics.Port); err != nil {
				logger.Warn("metrics server stopped", "error", err)
			}
		}()
	}

	ctx := context.Background()

	seed := *genSeed
	if seed == 0 {
		seed = cfg.Scenario.Seed
	}

	g, emergencies, err := loadOrGenerate(cfg, *graphPath, *emergenciesPath, *generate, *genNodes, seed, *centerLat, *centerLon)
	if err != nil {
		logger.Fatal("failed to obtain graph and emergencies", "error", err)
	}

	params := rundriver.Params{
		TimeLimitSeconds: cfg.Solve.TimeLimitSeconds,
		Gap:              cfg.Solve.Gap,
		Verbose:          cfg.Solve.Verbose || cfg.IsDevelopment(),
	}

	res, err := pipeline.Run(ctx, g, emergencies, costs.Default(), params)
	if err != nil {
		logger.Fatal("run failed", "error", err)
	}

	out := buildOutput(res)

	w := os.Stdout
	if *outPath != "" {
		f, ferr := os.Create(*outPath)
		if ferr != nil {
			logger.Fatal("failed to open output file", "path", *outPath, "error", ferr)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Fatal("failed to encode result", "error", err)
	}
}

// loadOrGenerate returns a prepared graph and a bound emergency set,
// either read from disk or synthesized for a smoke test.
func loadOrGenerate(cfg *config.Config, graphPath, emergenciesPath string, generate bool, genNodes int, seed int64, centerLat, centerLon float64) (*graphprep.Graph, []scenario.Emergency, error) {
	if !generate {
		if graphPath == "" || emergenciesPath == "" {
			return nil, nil, fmt.Errorf("-graph and -emergencies are required unless -generate is set")
		}
		g, err := persist.ReadGraphFile(graphPath)
		if err != nil {
			return nil, nil, fmt.Errorf("reading graph file: %w", err)
		}
		emergencies, err := persist.ReadEmergenciesFile(emergenciesPath)
		if err != nil {
			return nil, nil, fmt.Errorf("reading emergencies file: %w", err)
		}
		return g, emergencies, nil
	}

	g := syntheticGraph(genNodes, seed, centerLat, centerLon)

	count := cfg.Scenario.MinEmergencies
	if cfg.Scenario.MaxEmergencies > count {
		count = cfg.Scenario.MaxEmergencies
	}
	emergencies, err := scenario.GenerateSet(count, cfg.Scenario.MinSpeedKMH, cfg.Scenario.MaxSpeedKMH, seed)
	if err != nil {
		return nil, nil, fmt.Errorf("generating scenario: %w", err)
	}

	destinations, err := graphprep.BindEmergencies(g, len(emergencies), g.OriginID, seed)
	if err != nil {
		return nil, nil, fmt.Errorf("binding destinations: %w", err)
	}
	for i := range emergencies {
		emergencies[i].Bind(destinations[i])
	}

	if err := graphprep.DeriveTravelTime(g); err != nil {
		return nil, nil, fmt.Errorf("deriving travel times: %w", err)
	}

	return g, emergencies, nil
}

// syntheticGraph builds a small connected star-of-chains graph rooted
// at node 1, deterministic in seed, for smoke-testing the pipeline
// without a real street graph on hand. Node 1 anchors the random tree
// but is not assumed to be the origin: the origin is whichever node
// ends up nearest centerLat/centerLon, found the same way a real
// street graph's clinic-adjacent node would be.
func syntheticGraph(nodeCount int, seed int64, centerLat, centerLon float64) *graphprep.Graph {
	if nodeCount < 2 {
		nodeCount = 2
	}
	rng := rand.New(rand.NewSource(seed))

	g := graphprep.New()
	g.AddNode(&graphprep.Node{ID: 1, Lat: centerLat + rng.Float64()*0.05, Lon: centerLon + rng.Float64()*0.05})

	for id := 2; id <= nodeCount; id++ {
		lat := centerLat + rng.Float64()*0.05
		lon := centerLon + rng.Float64()*0.05
		g.AddNode(&graphprep.Node{ID: graphprep.NodeID(id), Lat: lat, Lon: lon})

		parent := graphprep.NodeID(1 + rng.Intn(id-1))
		pNode, _ := g.GetNode(parent)
		cNode, _ := g.GetNode(graphprep.NodeID(id))
		length := graphprep.HaversineDistanceM(pNode.Lat, pNode.Lon, cNode.Lat, cNode.Lon)
		if length < 1 {
			length = 1
		}
		capacity := 20 + rng.Float64()*60

		g.AddEdge(&graphprep.Edge{From: parent, To: graphprep.NodeID(id), LengthM: length, CapacityKMH: capacity})
		g.AddEdge(&graphprep.Edge{From: graphprep.NodeID(id), To: parent, LengthM: length, CapacityKMH: capacity})
	}

	if origin, ok := graphprep.FindNearest(g, centerLat, centerLon); ok {
		g.OriginID = origin
	} else {
		g.OriginID = 1
	}

	return g
}

// output is the JSON shape written on exit, matching the documented
// output contract: the optimal-path fields on success, status/
// solve_time_s/message on a non-optimal termination.
type output struct {
	Status      string             `json:"status"`
	TotalCost   float64            `json:"total_cost,omitempty"`
	SolveTimeS  float64            `json:"solve_time_s"`
	Routes      [][]int64          `json:"routes,omitempty"`
	Details     []outputDetail     `json:"details,omitempty"`
	EdgeUsage   []outputEdgeUsage  `json:"edge_usage,omitempty"`
	GraphStats  *outputGraphStats  `json:"graph_stats,omitempty"`
	Message     string             `json:"message,omitempty"`
}

type outputGraphStats struct {
	NodeCount         int     `json:"node_count"`
	EdgeCount         int     `json:"edge_count"`
	TotalCapacityKMH  float64 `json:"total_capacity_kmh"`
	AverageEdgeLength float64 `json:"average_edge_length_m"`
	IsConnected       bool    `json:"is_connected"`
	Density           float64 `json:"density"`
	AverageDegree     float64 `json:"average_degree"`
	MaxDegree         int     `json:"max_degree"`
	MinDegree         int     `json:"min_degree"`
}

type outputDetail struct {
	EmergencyID      int     `json:"emergency_id"`
	Severity         string  `json:"severity"`
	AmbulanceType    string  `json:"ambulance_type"`
	RequiredSpeedKMH float64 `json:"required_speed_kmh"`
	DestinationNode  int64   `json:"destination_node"`
	DistanceKM       float64 `json:"distance_km"`
	FixedCost        float64 `json:"fixed_cost"`
	VariableCost     float64 `json:"variable_cost"`
	TotalCost        float64 `json:"total_cost"`
	Route            []int64 `json:"route"`
	Warnings         []string `json:"warnings,omitempty"`
}

type outputEdgeUsage struct {
	From        int64   `json:"u"`
	To          int64   `json:"v"`
	FlowIDs     []int   `json:"flow_ids"`
	LoadKMH     float64 `json:"load_kmh"`
	CapacityKMH float64 `json:"capacity_kmh"`
	Utilization float64 `json:"utilization"`
}

func buildOutput(res *pipeline.Result) output {
	out := output{
		Status:     res.Phase.String(),
		SolveTimeS: res.Outcome.Elapsed.Seconds(),
	}
	if res.GraphStats != nil {
		s := res.GraphStats
		out.GraphStats = &outputGraphStats{
			NodeCount:         s.NodeCount,
			EdgeCount:         s.EdgeCount,
			TotalCapacityKMH:  s.TotalCapacityKMH,
			AverageEdgeLength: s.AverageEdgeLength,
			IsConnected:       s.IsConnected,
			Density:           s.Density,
			AverageDegree:     s.AverageDegree,
			MaxDegree:         s.MaxDegree,
			MinDegree:         s.MinDegree,
		}
	}

	if len(res.Details) == 0 && len(res.Diagnoses) > 0 {
		msgs := make([]string, len(res.Diagnoses))
		for i, d := range res.Diagnoses {
			msgs[i] = d.String()
		}
		out.Message = joinMessages(msgs)
		return out
	}

	if len(res.Details) == 0 {
		out.Message = res.Message
		return out
	}

	out.TotalCost = res.Outcome.ObjectiveValue
	out.Routes = make([][]int64, len(res.Details))
	out.Details = make([]outputDetail, len(res.Details))
	for i, d := range res.Details {
		route := make([]int64, len(d.RouteNodes))
		for j, n := range d.RouteNodes {
			route[j] = int64(n)
		}
		out.Routes[i] = route
		out.Details[i] = outputDetail{
			EmergencyID:      d.EmergencyID,
			Severity:         d.Severity.String(),
			AmbulanceType:    d.AmbulanceType,
			RequiredSpeedKMH: d.RequiredSpeedKMH,
			DestinationNode:  int64(d.DestinationNode),
			DistanceKM:       d.DistanceKM,
			FixedCost:        d.FixedCost,
			VariableCost:     d.VariableCost,
			TotalCost:        d.TotalCost,
			Route:            route,
			Warnings:         d.Warnings,
		}
	}

	keys := make([]graphprep.EdgeKey, 0, len(res.EdgeUsage))
	for key := range res.EdgeUsage {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].From != keys[j].From {
			return keys[i].From < keys[j].From
		}
		return keys[i].To < keys[j].To
	})

	out.EdgeUsage = make([]outputEdgeUsage, 0, len(keys))
	for _, key := range keys {
		u := res.EdgeUsage[key]
		out.EdgeUsage = append(out.EdgeUsage, outputEdgeUsage{
			From:        int64(key.From),
			To:          int64(key.To),
			FlowIDs:     u.FlowIDs,
			LoadKMH:     u.LoadKMH,
			CapacityKMH: u.CapacityKMH,
			Utilization: u.Utilization,
		})
	}

	return out
}

func joinMessages(msgs []string) string {
	out := ""
	for i, m := range msgs {
		if i > 0 {
			out += "; "
		}
		out += m
	}
	return out
}
