// Package runstate tracks the lifecycle of a single dispatch run
// through its fixed sequence of phases, and records the diagnostics
// a failed transition leaves behind.
package runstate

import (
	"fmt"
	"sync"
)

// Phase is one stage of a run's lifecycle, per spec.md §4.6:
// Unprepared -> Prepared -> Built -> Solving -> Solved{...}.
type Phase int

const (
	Unprepared Phase = iota
	Prepared
	Built
	Solving
	SolvedOptimal
	SolvedInfeasible
	SolvedTimeLimit
	SolvedUnbounded
	Error
)

// String returns the phase's label.
func (p Phase) String() string {
	switch p {
	case Unprepared:
		return "unprepared"
	case Prepared:
		return "prepared"
	case Built:
		return "built"
	case Solving:
		return "solving"
	case SolvedOptimal:
		return "solved_optimal"
	case SolvedInfeasible:
		return "solved_infeasible"
	case SolvedTimeLimit:
		return "solved_time_limit"
	case SolvedUnbounded:
		return "solved_unbounded"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether p is a final phase a run cannot transition
// out of.
func (p Phase) Terminal() bool {
	switch p {
	case SolvedOptimal, SolvedInfeasible, SolvedTimeLimit, SolvedUnbounded, Error:
		return true
	default:
		return false
	}
}

// transitions lists, for every phase, the phases that may legally
// follow PrepareGraph/BuildModel/Solve/Extract from it. Error is not
// listed here: Fail moves any phase to Error, while Advance(Error) is
// reported as an illegal transition (the machine still ends in Error).
var transitions = map[Phase][]Phase{
	Unprepared: {Prepared},
	Prepared:   {Built},
	Built:      {Solving},
	Solving:    {SolvedOptimal, SolvedInfeasible, SolvedTimeLimit, SolvedUnbounded},
}

// Machine is a single run's state machine. It is safe for concurrent
// reads of Phase/Err via a single mutex, matching the teacher's
// pattern of guarding small pieces of run-scoped state directly rather
// than introducing a channel-based actor for something this narrow.
type Machine struct {
	mu    sync.RWMutex
	phase Phase
	err   error
}

// New returns a machine in the Unprepared phase.
func New() *Machine {
	return &Machine{phase: Unprepared}
}

// Phase returns the machine's current phase.
func (m *Machine) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// Err returns the diagnostic recorded by the transition that moved
// the machine into its current phase, if any (set on every failed
// transition, and on Error specifically).
func (m *Machine) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// Advance attempts to move the machine from its current phase to
// next. If the transition is illegal, the machine moves to Error and
// Advance returns the resulting error; the caller does not need to
// call Fail separately in that case.
func (m *Machine) Advance(next Phase) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase.Terminal() {
		err := fmt.Errorf("cannot advance from terminal phase %s to %s", m.phase, next)
		m.err = err
		return err
	}

	for _, allowed := range transitions[m.phase] {
		if allowed == next {
			m.phase = next
			return nil
		}
	}

	err := fmt.Errorf("illegal transition from %s to %s", m.phase, next)
	m.phase = Error
	m.err = err
	return err
}

// Fail moves the machine directly to the terminal Error phase,
// retaining cause as its diagnostic. Used when a transition's own work
// (graph preparation, model build, solve, extraction) fails for a
// reason unrelated to phase ordering.
func (m *Machine) Fail(cause error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phase = Error
	m.err = cause
}
