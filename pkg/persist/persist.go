// Package persist round-trips a prepared graph and an emergency set to
// and from the on-disk JSON artifacts described in spec.md §6, using
// goccy/go-json as a drop-in, faster encoding/json replacement - the
// same codec the retrieved corpus already depends on
// (vanderheijden86-beadwork/go.mod).
package persist

import (
	"io"
	"os"

	"github.com/KateRC21/ambudispatch/internal/graphprep"
	"github.com/KateRC21/ambudispatch/internal/scenario"
	"github.com/goccy/go-json"
)

// GraphNode is one node's JSON representation.
type GraphNode struct {
	ID  int64   `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GraphEdge is one edge's JSON representation.
type GraphEdge struct {
	From          int64   `json:"u"`
	To            int64   `json:"v"`
	LengthM       float64 `json:"length_m"`
	CapacityKMH   float64 `json:"capacity_kmh"`
	TravelTimeMin float64 `json:"travel_time_min"`
}

// GraphDocument is the prepared-graph artifact (graph.json).
type GraphDocument struct {
	OriginID int64       `json:"origin_id"`
	Nodes    []GraphNode `json:"nodes"`
	Edges    []GraphEdge `json:"edges"`
}

// EmergencyRecord is one emergency's JSON representation.
type EmergencyRecord struct {
	ID               int     `json:"id"`
	Severity         string  `json:"severity"`
	RequiredSpeedKMH float64 `json:"required_speed_kmh"`
	DestinationNode  int64   `json:"destination_node"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
}

// ToGraphDocument converts a prepared graph into its JSON artifact
// form, iterating in sorted order so repeated writes of an unchanged
// graph produce byte-identical output.
func ToGraphDocument(g *graphprep.Graph) GraphDocument {
	doc := GraphDocument{OriginID: int64(g.OriginID)}

	for _, id := range g.SortedNodeIDs() {
		n, _ := g.GetNode(id)
		doc.Nodes = append(doc.Nodes, GraphNode{ID: int64(n.ID), Lat: n.Lat, Lon: n.Lon})
	}
	for _, key := range g.SortedEdgeKeys() {
		e, _ := g.GetEdge(key.From, key.To)
		doc.Edges = append(doc.Edges, GraphEdge{
			From:          int64(e.From),
			To:            int64(e.To),
			LengthM:       e.LengthM,
			CapacityKMH:   e.CapacityKMH,
			TravelTimeMin: e.TravelTimeMin,
		})
	}
	return doc
}

// FromGraphDocument rebuilds a prepared graph from its JSON artifact
// form. It does not call graphprep.DeriveTravelTime or re-validate
// capacities: the document is assumed to already hold a fully prepared
// graph's fields.
func FromGraphDocument(doc GraphDocument) *graphprep.Graph {
	g := graphprep.New()
	g.OriginID = graphprep.NodeID(doc.OriginID)

	for _, n := range doc.Nodes {
		g.AddNode(&graphprep.Node{ID: graphprep.NodeID(n.ID), Lat: n.Lat, Lon: n.Lon})
	}
	for _, e := range doc.Edges {
		g.AddEdge(&graphprep.Edge{
			From:          graphprep.NodeID(e.From),
			To:            graphprep.NodeID(e.To),
			LengthM:       e.LengthM,
			CapacityKMH:   e.CapacityKMH,
			TravelTimeMin: e.TravelTimeMin,
		})
	}
	return g
}

// ToEmergencyRecords converts a scenario's emergencies into their
// JSON artifact form.
func ToEmergencyRecords(emergencies []scenario.Emergency) []EmergencyRecord {
	records := make([]EmergencyRecord, len(emergencies))
	for i, e := range emergencies {
		records[i] = EmergencyRecord{
			ID:               e.ID,
			Severity:         e.Severity.String(),
			RequiredSpeedKMH: e.RequiredSpeedKMH,
			DestinationNode:  int64(e.DestinationNode),
			Lat:              e.DestLat,
			Lon:              e.DestLon,
		}
	}
	return records
}

// FromEmergencyRecords rebuilds a scenario's emergencies from their
// JSON artifact form.
func FromEmergencyRecords(records []EmergencyRecord) []scenario.Emergency {
	emergencies := make([]scenario.Emergency, len(records))
	for i, r := range records {
		emergencies[i] = scenario.Emergency{
			ID:               r.ID,
			Severity:         severityFromString(r.Severity),
			RequiredSpeedKMH: r.RequiredSpeedKMH,
			DestinationNode:  graphprep.NodeID(r.DestinationNode),
			DestLat:          r.Lat,
			DestLon:          r.Lon,
		}
	}
	return emergencies
}

func severityFromString(s string) scenario.Severity {
	switch s {
	case "leve":
		return scenario.SeverityLeve
	case "media":
		return scenario.SeverityMedia
	default:
		return scenario.SeverityGrave
	}
}

// WriteGraph writes g's prepared form to w as JSON.
func WriteGraph(w io.Writer, g *graphprep.Graph) error {
	return json.NewEncoder(w).Encode(ToGraphDocument(g))
}

// ReadGraph reads a prepared graph previously written by WriteGraph.
func ReadGraph(r io.Reader) (*graphprep.Graph, error) {
	var doc GraphDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return FromGraphDocument(doc), nil
}

// WriteEmergencies writes emergencies to w as JSON.
func WriteEmergencies(w io.Writer, emergencies []scenario.Emergency) error {
	return json.NewEncoder(w).Encode(ToEmergencyRecords(emergencies))
}

// ReadEmergencies reads an emergency set previously written by
// WriteEmergencies.
func ReadEmergencies(r io.Reader) ([]scenario.Emergency, error) {
	var records []EmergencyRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}
	return FromEmergencyRecords(records), nil
}

// WriteGraphFile writes g's prepared form to path as JSON.
func WriteGraphFile(path string, g *graphprep.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteGraph(f, g)
}

// ReadGraphFile reads a prepared graph from path.
func ReadGraphFile(path string) (*graphprep.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGraph(f)
}

// WriteEmergenciesFile writes emergencies to path as JSON.
func WriteEmergenciesFile(path string, emergencies []scenario.Emergency) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteEmergencies(f, emergencies)
}

// ReadEmergenciesFile reads an emergency set from path.
func ReadEmergenciesFile(path string) ([]scenario.Emergency, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadEmergencies(f)
}
