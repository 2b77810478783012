// Package roadnet plans a hierarchical road network over terrain: it
// scores destinations, selects corridors with a cost-weighted spanning
// tree plus loop redundancy, gates water crossings on economic
// viability, realizes terrain-following paths, grows secondary branches,
// and consolidates the result into the final network.
package roadnet

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/roadplan/internal/geom"
)

// RoadType classifies a road by tier. Highways are the top tier and are
// never pruned.
type RoadType uint8

const (
	RoadHighway    RoadType = iota // Trunk connections between major hubs
	RoadArterial                   // Mid-tier connections
	RoadLane                       // Local land-only connections
	RoadSettlement                 // Roads inside settlement radii
	RoadBranch                     // Generated secondary branches
)

// RoadTypeName returns a human-readable name for a road type.
func RoadTypeName(t RoadType) string {
	switch t {
	case RoadHighway:
		return "highway"
	case RoadArterial:
		return "arterial"
	case RoadLane:
		return "lane"
	case RoadSettlement:
		return "settlement"
	case RoadBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// Road is a realized road record. Paths are terrain-projected and
// immutable once built; consolidation may replace a road wholesale and
// pruning may remove it, nothing else mutates it.
type Road struct {
	ID     uuid.UUID     `json:"id"`
	Path   []geom.Point3 `json:"path"`
	Width  float64       `json:"width"`
	Type   RoadType      `json:"type"`
	From   geom.Point3   `json:"from"`
	To     geom.Point3   `json:"to"`
	Demand float64       `json:"demand,omitempty"`
}

// Length returns the planar length of the road's path.
func (r *Road) Length() float64 {
	return geom.PathLength(r.Path)
}

// String returns a summary of the road.
func (r *Road) String() string {
	return fmt.Sprintf("Road(%s, %.0fm, w=%.1f)", RoadTypeName(r.Type), r.Length(), r.Width)
}

// ExclusionZone marks a water-crossing span of a built road. Downstream
// generators (building placement, vegetation) must keep clear of it.
type ExclusionZone struct {
	Center geom.Point3 `json:"center"`
	Radius float64     `json:"radius"`
}
