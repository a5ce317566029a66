// Package costs holds the cost table keyed by emergency severity: a
// fixed activation cost and a per-kilometer cost, used both by the MILP
// objective and by per-emergency result details.
package costs

import (
	"github.com/KateRC21/ambudispatch/internal/scenario"
	"github.com/KateRC21/ambudispatch/pkg/apperror"
)

// Row is a single severity's cost entry: fixed activation cost plus a
// per-kilometer rate, both in COP.
type Row struct {
	FixedCost  float64
	PerKMCost  float64
}

// Table maps a severity to its cost row.
type Table map[scenario.Severity]Row

// Default returns the default cost table, derived from Medellín,
// Colombia ambulance-service operating costs: vehicle depreciation,
// fuel, medical staff, and supplies prorated per severity tier.
func Default() Table {
	return Table{
		scenario.SeverityLeve:  {FixedCost: 35000, PerKMCost: 5585},
		scenario.SeverityMedia: {FixedCost: 60000, PerKMCost: 10534},
		scenario.SeverityGrave: {FixedCost: 85000, PerKMCost: 20396},
	}
}

// Validate checks that every severity has a row with non-negative
// costs, and that the table covers all three severities.
func (t Table) Validate() error {
	for _, sev := range []scenario.Severity{scenario.SeverityLeve, scenario.SeverityMedia, scenario.SeverityGrave} {
		row, ok := t[sev]
		if !ok {
			return apperror.New(apperror.CodeInvalidRange, "cost table is missing a row for severity "+sev.String())
		}
		if row.FixedCost < 0 || row.PerKMCost < 0 {
			return apperror.New(apperror.CodeInvalidRange, "cost table entry for "+sev.String()+" has a negative cost")
		}
	}
	return nil
}

// Lookup returns the cost row for sev, falling back to the zero row if
// sev is not present (callers that built the table via Default or a
// validated override will never hit this path).
func (t Table) Lookup(sev scenario.Severity) Row {
	return t[sev]
}
