package costs

import (
	"testing"

	"github.com/KateRC21/ambudispatch/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_MatchesKnownRates(t *testing.T) {
	table := Default()

	leve := table.Lookup(scenario.SeverityLeve)
	assert.Equal(t, 35000.0, leve.FixedCost)
	assert.Equal(t, 5585.0, leve.PerKMCost)

	media := table.Lookup(scenario.SeverityMedia)
	assert.Equal(t, 60000.0, media.FixedCost)
	assert.Equal(t, 10534.0, media.PerKMCost)

	grave := table.Lookup(scenario.SeverityGrave)
	assert.Equal(t, 85000.0, grave.FixedCost)
	assert.Equal(t, 20396.0, grave.PerKMCost)
}

func TestDefault_Validates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate_MissingRow(t *testing.T) {
	table := Table{scenario.SeverityLeve: {FixedCost: 1, PerKMCost: 1}}
	assert.Error(t, table.Validate())
}

func TestValidate_NegativeCost(t *testing.T) {
	table := Default()
	row := table[scenario.SeverityLeve]
	row.FixedCost = -1
	table[scenario.SeverityLeve] = row

	assert.Error(t, table.Validate())
}
