package scenario

import "github.com/KateRC21/ambudispatch/internal/graphprep"

// Emergency is a single declared incident: its severity, required
// speed, and (once bound) destination node.
type Emergency struct {
	ID               int
	Severity         Severity
	RequiredSpeedKMH float64
	DestinationNode  graphprep.NodeID
	DestLat          float64
	DestLon          float64
}

// Bind attaches a graphprep.Destination to the emergency, in place.
func (e *Emergency) Bind(d graphprep.Destination) {
	e.DestinationNode = d.NodeID
	e.DestLat = d.Lat
	e.DestLon = d.Lon
}
