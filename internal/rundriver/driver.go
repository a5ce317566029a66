// Package rundriver wraps the narrow milp.Solver surface with the
// timeout, defaulting, and observability concerns a production run
// needs around it, mirroring the way the teacher's
// services/solver-svc/internal/algorithms.Solve wraps its own
// algorithm dispatch.
package rundriver

import (
	"context"
	"time"

	"github.com/KateRC21/ambudispatch/internal/milp"
	"github.com/KateRC21/ambudispatch/pkg/apperror"
	"github.com/KateRC21/ambudispatch/pkg/logger"
	"github.com/KateRC21/ambudispatch/pkg/metrics"
)

// Defaults for Params, per spec.md §4.4.
const (
	DefaultTimeLimitSeconds = 300
	DefaultGap              = 0.01
)

// Params controls a solve run. A zero-value Params is filled in with
// the package defaults by Run.
type Params struct {
	TimeLimitSeconds float64
	Gap              float64
	Verbose          bool
}

// withDefaults returns a copy of p with zero fields replaced by the
// documented defaults.
func (p Params) withDefaults() Params {
	if p.TimeLimitSeconds <= 0 {
		p.TimeLimitSeconds = DefaultTimeLimitSeconds
	}
	if p.Gap <= 0 {
		p.Gap = DefaultGap
	}
	return p
}

// Outcome is the terminal result of a solve run: the solver's status,
// the elapsed wall time, and (when Status is Optimal, or TimeLimit with
// an incumbent) the objective value. Variable assignments are read back from the model directly by
// internal/result - Outcome carries no solver-specific type.
type Outcome struct {
	Status         milp.Status
	Elapsed        time.Duration
	ObjectiveValue float64

	// HasIncumbent is true when solver.Value/ObjectiveValue reflect a
	// real feasible assignment. It is always false when Status is
	// Infeasible or Error, and may be false even when Status is
	// TimeLimit: the search can exhaust its budget before ever reaching
	// a feasible leaf.
	HasIncumbent bool
}

// Run solves model on solver, applying a context timeout derived from
// params.TimeLimitSeconds the same way the teacher's algorithms.Solve
// derives one from SolverOptions.Timeout. runID is used only for
// metrics and log correlation.
func Run(ctx context.Context, runID string, solver milp.Solver, model *milp.Model, params Params) (Outcome, error) {
	start := time.Now()
	params = params.withDefaults()

	if params.TimeLimitSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(params.TimeLimitSeconds*float64(time.Second)))
		defer cancel()
	}

	if params.Verbose {
		logger.Debug("solve started", "run_id", runID, "time_limit_s", params.TimeLimitSeconds, "gap", params.Gap)
	}

	status, err := solver.Solve(ctx, milp.Limits{
		TimeLimitSeconds: params.TimeLimitSeconds,
		Gap:              params.Gap,
		Verbose:          params.Verbose,
	})
	elapsed := time.Since(start)

	if err != nil {
		logger.Error("solve failed", "run_id", runID, "error", err)
		if m := metrics.Get(); m != nil {
			m.RecordSolveOperation(runID, "error", elapsed, 0)
		}
		return Outcome{Status: milp.StatusError, Elapsed: elapsed}, apperror.Wrap(err, apperror.CodeAlgorithmError, "solver returned an error")
	}

	hasIncumbent := solver.HasIncumbent()

	objective := 0.0
	if hasIncumbent && (status == milp.StatusOptimal || status == milp.StatusTimeLimit) {
		objective = solver.ObjectiveValue() + model.FixedCostTotal()
	}

	if m := metrics.Get(); m != nil {
		m.RecordSolveOperation(runID, status.String(), elapsed, objective)
	}
	logger.Info("solve finished", "run_id", runID, "status", status.String(), "elapsed", elapsed, "objective_value", objective, "has_incumbent", hasIncumbent)

	if status == milp.StatusInfeasible || !hasIncumbent {
		return Outcome{Status: status, Elapsed: elapsed, HasIncumbent: hasIncumbent}, nil
	}

	return Outcome{Status: status, Elapsed: elapsed, ObjectiveValue: objective, HasIncumbent: hasIncumbent}, nil
}
