package result

import (
	"testing"

	"github.com/KateRC21/ambudispatch/internal/graphprep"
	"github.com/KateRC21/ambudispatch/internal/scenario"
)

func assertHasCause(t *testing.T, diagnoses []Diagnosis, cause Cause) {
	t.Helper()
	for _, d := range diagnoses {
		if d.Cause == cause {
			return
		}
	}
	t.Fatalf("expected a diagnosis with cause %s, got %+v", cause, diagnoses)
}

func TestDiagnose_S4CapacityBottleneck(t *testing.T) {
	g := graphprep.New()
	const o, a = graphprep.NodeID(1), graphprep.NodeID(2)
	g.OriginID = o
	g.AddNode(&graphprep.Node{ID: o})
	g.AddNode(&graphprep.Node{ID: a})
	g.AddEdge(&graphprep.Edge{From: o, To: a, LengthM: 1000, CapacityKMH: 100})

	emergencies := []scenario.Emergency{
		{ID: 1, Severity: scenario.SeverityMedia, RequiredSpeedKMH: 60, DestinationNode: a},
		{ID: 2, Severity: scenario.SeverityMedia, RequiredSpeedKMH: 60, DestinationNode: a},
	}

	diagnoses := Diagnose(g, emergencies)
	assertHasCause(t, diagnoses, CauseCapacityBottleneck)
}

func TestDiagnose_Disconnected(t *testing.T) {
	g := graphprep.New()
	g.OriginID = 1
	g.AddNode(&graphprep.Node{ID: 1})
	g.AddNode(&graphprep.Node{ID: 2}) // unreachable from origin

	emergencies := []scenario.Emergency{
		{ID: 1, Severity: scenario.SeverityLeve, RequiredSpeedKMH: 40, DestinationNode: 2},
	}

	diagnoses := Diagnose(g, emergencies)
	assertHasCause(t, diagnoses, CauseDisconnected)
}

func TestDiagnose_SpeedExceedsCapacity(t *testing.T) {
	g := graphprep.New()
	const o, a = graphprep.NodeID(1), graphprep.NodeID(2)
	g.OriginID = o
	g.AddNode(&graphprep.Node{ID: o})
	g.AddNode(&graphprep.Node{ID: a})
	g.AddEdge(&graphprep.Edge{From: o, To: a, LengthM: 1000, CapacityKMH: 30})

	emergencies := []scenario.Emergency{
		{ID: 1, Severity: scenario.SeverityGrave, RequiredSpeedKMH: 75, DestinationNode: a},
	}

	diagnoses := Diagnose(g, emergencies)
	assertHasCause(t, diagnoses, CauseSpeedExceedsCapacity)
}
