// Package pipeline orchestrates a single dispatch run end to end:
// validate the prepared graph, build the MILP, solve it, and extract
// routes and diagnostics - the single entry point a caller invokes.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/KateRC21/ambudispatch/internal/costs"
	"github.com/KateRC21/ambudispatch/internal/graphprep"
	"github.com/KateRC21/ambudispatch/internal/milp"
	"github.com/KateRC21/ambudispatch/internal/result"
	"github.com/KateRC21/ambudispatch/internal/rundriver"
	"github.com/KateRC21/ambudispatch/internal/runstate"
	"github.com/KateRC21/ambudispatch/internal/scenario"
	"github.com/KateRC21/ambudispatch/pkg/logger"
	"github.com/KateRC21/ambudispatch/pkg/metrics"
	"github.com/google/uuid"
)

// Result is the full output of a single run: its terminal phase, the
// solver outcome, per-emergency details, edge utilization, and (when
// infeasible) advisory diagnoses.
type Result struct {
	RunID   string
	Phase   runstate.Phase
	Outcome rundriver.Outcome

	GraphStats *graphprep.Statistics
	Details    []result.Detail
	EdgeUsage  map[graphprep.EdgeKey]*result.EdgeUsage
	Diagnoses  []result.Diagnosis

	// Message carries an advisory note for a terminal outcome that
	// produced neither Details nor Diagnoses, e.g. a time-limited search
	// that never reached a feasible assignment.
	Message string
}

// Run executes PrepareGraph -> BuildModel -> Solve -> Extract for one
// scenario against g. g must already be a prepared, validated graph
// (internal/graphprep's collapse/capacity/travel-time functions having
// already run); Run's own "PrepareGraph" transition records that the
// graph has passed Validate, it does not perform multigraph collapse
// itself - that stays the caller's job, since a prepared graph may be
// reused across several runs with different scenarios.
//
// Run is not safe to call concurrently with itself against the same g
// (g must not be mutated mid-run); independent calls against
// independently-owned graphs may run concurrently, mirroring the
// teacher's statement that each goroutine should own its own copy of
// the graph.
func Run(ctx context.Context, g *graphprep.Graph, emergencies []scenario.Emergency, costTable costs.Table, params rundriver.Params) (*Result, error) {
	runID := uuid.New().String()
	log := logger.Log.With("run_id", runID, "component", "pipeline")
	machine := runstate.New()

	res := &Result{RunID: runID}
	m := metrics.Get()

	graphprepStart := time.Now()
	if m != nil {
		m.Stages.Start("graphprep")
	}
	if errs := g.Validate(); len(errs) > 0 {
		err := fmt.Errorf("prepared graph failed validation: %v", errs)
		if m != nil {
			m.Stages.End("graphprep")
			m.RecordPipelineStage("graphprep", "error", time.Since(graphprepStart))
		}
		machine.Fail(err)
		res.Phase = machine.Phase()
		return res, err
	}
	if err := machine.Advance(runstate.Prepared); err != nil {
		res.Phase = machine.Phase()
		return res, err
	}
	res.GraphStats = graphprep.ComputeStatistics(g)
	log.Info("graph prepared", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "density", res.GraphStats.Density, "connected", res.GraphStats.IsConnected)
	if m != nil {
		m.Stages.End("graphprep")
		m.RecordPipelineStage("graphprep", "ok", time.Since(graphprepStart))
		m.RecordGraphSize("prepared", g.NodeCount(), g.EdgeCount())
		m.RecordScenarioSize(len(emergencies))
	}

	buildStart := time.Now()
	if m != nil {
		m.Stages.Start("milp_build")
	}
	solver := milp.NewSolver()
	model, err := milp.Build(g, emergencies, costTable, solver)
	if err != nil {
		if m != nil {
			m.Stages.End("milp_build")
			m.RecordPipelineStage("milp_build", "error", time.Since(buildStart))
		}
		machine.Fail(err)
		res.Phase = machine.Phase()
		return res, err
	}
	if err := machine.Advance(runstate.Built); err != nil {
		res.Phase = machine.Phase()
		return res, err
	}
	log.Info("model built", "emergencies", len(emergencies))
	if m != nil {
		m.Stages.End("milp_build")
		m.RecordPipelineStage("milp_build", "ok", time.Since(buildStart))
	}

	if err := machine.Advance(runstate.Solving); err != nil {
		res.Phase = machine.Phase()
		return res, err
	}

	outcome, err := rundriver.Run(ctx, runID, solver, model, params)
	if err != nil {
		machine.Fail(err)
		res.Phase = machine.Phase()
		res.Outcome = outcome
		return res, err
	}
	res.Outcome = outcome

	var solvedPhase runstate.Phase
	switch outcome.Status {
	case milp.StatusOptimal:
		solvedPhase = runstate.SolvedOptimal
	case milp.StatusInfeasible:
		solvedPhase = runstate.SolvedInfeasible
	case milp.StatusTimeLimit:
		solvedPhase = runstate.SolvedTimeLimit
	case milp.StatusUnbounded:
		solvedPhase = runstate.SolvedUnbounded
	default:
		machine.Fail(fmt.Errorf("solver returned unexpected status %s", outcome.Status))
		res.Phase = machine.Phase()
		return res, machine.Err()
	}
	if err := machine.Advance(solvedPhase); err != nil {
		res.Phase = machine.Phase()
		return res, err
	}
	res.Phase = machine.Phase()

	if outcome.Status == milp.StatusInfeasible {
		res.Diagnoses = result.Diagnose(g, emergencies)
		log.Info("run infeasible", "diagnoses", len(res.Diagnoses))
		return res, nil
	}

	if !outcome.HasIncumbent {
		res.Message = "time limit reached before any feasible solution was found"
		log.Info("run hit the time limit with no incumbent; skipping extraction")
		return res, nil
	}

	extractStart := time.Now()
	if m != nil {
		m.Stages.Start("extract")
	}
	details, err := result.ComputeAllDetails(g, model, solver, costTable)
	if err != nil {
		log.Error("detail extraction failed", "error", err)
		if m != nil {
			m.Stages.End("extract")
			m.RecordPipelineStage("extract", "error", time.Since(extractStart))
		}
		return res, err
	}
	res.Details = details

	routes := make([]result.Route, len(emergencies))
	for k, e := range emergencies {
		routes[k] = result.ReconstructRoute(g, model, solver, k, g.OriginID, e.DestinationNode)
	}
	res.EdgeUsage = result.ComputeEdgeUsage(g, model, solver, routes)

	if m != nil {
		m.Stages.End("extract")
		m.RecordPipelineStage("extract", "ok", time.Since(extractStart))
		for _, usage := range res.EdgeUsage {
			m.RecordEdgeUtilization(runID, usage.Utilization)
		}
	}

	log.Info("run finished", "status", outcome.Status.String(), "objective_value", outcome.ObjectiveValue)
	return res, nil
}
