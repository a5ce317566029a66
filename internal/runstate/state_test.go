package runstate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_HappyPath(t *testing.T) {
	m := New()
	assert.Equal(t, Unprepared, m.Phase())

	require.NoError(t, m.Advance(Prepared))
	require.NoError(t, m.Advance(Built))
	require.NoError(t, m.Advance(Solving))
	require.NoError(t, m.Advance(SolvedOptimal))

	assert.Equal(t, SolvedOptimal, m.Phase())
	assert.True(t, m.Phase().Terminal())
	assert.NoError(t, m.Err())
}

func TestMachine_IllegalTransitionMovesToError(t *testing.T) {
	m := New()
	err := m.Advance(Solving)
	assert.Error(t, err)
	assert.Equal(t, Error, m.Phase())
	assert.Equal(t, err, m.Err())
}

func TestMachine_CannotAdvanceFromTerminal(t *testing.T) {
	m := New()
	require.NoError(t, m.Advance(Prepared))
	require.NoError(t, m.Advance(Built))
	require.NoError(t, m.Advance(Solving))
	require.NoError(t, m.Advance(SolvedInfeasible))

	err := m.Advance(Built)
	assert.Error(t, err)
	assert.Equal(t, SolvedInfeasible, m.Phase(), "a terminal phase does not get overwritten by a further failed Advance")
}

func TestMachine_Fail(t *testing.T) {
	m := New()
	require.NoError(t, m.Advance(Prepared))

	cause := errors.New("graph is missing required attributes")
	m.Fail(cause)

	assert.Equal(t, Error, m.Phase())
	assert.Equal(t, cause, m.Err())
}
