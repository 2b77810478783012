package roadnet

import (
	"math"
	"sort"

	"github.com/talgya/roadplan/internal/geom"
	"github.com/talgya/roadplan/internal/terrain"
)

// DemandModel scores traffic demand between destination pairs with a
// gravity model: attraction grows with the endpoints' importance and
// decays with distance, penalized by rough terrain along the corridor.
type DemandModel struct {
	oracle terrain.Oracle
	cfg    Config
}

// NewDemandModel creates a demand model over the given oracle.
func NewDemandModel(oracle terrain.Oracle, cfg Config) *DemandModel {
	return &DemandModel{oracle: oracle, cfg: cfg}
}

// Importance scores how much traffic a destination attracts, combining
// buildability (priority and population), a terrain-type bonus, and
// centrality on the map. Floored at 1.0 so no destination is invisible
// to the gravity model.
func (m *DemandModel) Importance(d Destination) float64 {
	// Buildability: major hubs dominate.
	score := float64(6-d.Priority) + math.Log1p(float64(d.Population))*0.5

	score += m.terrainBonus(d.Position)

	// Centrality: destinations near the map center are better connected.
	centrality := 1.0 - d.Position.DistXZ(geom.Point3{})/(m.oracle.Size()*0.7)
	if centrality > 0 {
		score += centrality
	}

	if score < 1.0 {
		return 1.0
	}
	return score
}

// terrainBonus ranks the site's terrain: plateau > coast > valley >
// mountain.
func (m *DemandModel) terrainBonus(p geom.Point3) float64 {
	elev := m.oracle.Elevation(p.X, p.Z)
	slope := m.oracle.Slope(p.X, p.Z)
	sea := m.oracle.SeaLevel()

	switch {
	case slope > 20:
		return 0.2 // mountain
	case elev < sea+10:
		return 1.5 // coast
	case slope < 6 && elev > sea+30:
		return 2.0 // plateau
	default:
		return 1.0 // valley
	}
}

// Demand returns the gravity-model traffic score between two
// destinations: importance product over normalized distance^1.5, divided
// by a mean-slope terrain penalty.
func (m *DemandModel) Demand(a, b Destination) float64 {
	dist := a.Position.DistXZ(b.Position)
	if dist == 0 {
		return 0
	}

	gravity := m.Importance(a) * m.Importance(b) / math.Pow(dist/m.cfg.DecayDistance, 1.5)
	return gravity / (1.0 + m.terrainPenalty(a.Position, b.Position)*0.3)
}

// terrainPenalty is the mean normalized slope (slope/45°) sampled along
// the segment.
func (m *DemandModel) terrainPenalty(a, b geom.Point3) float64 {
	const samples = 10
	total := 0.0
	for i := 0; i < samples; i++ {
		t := (float64(i) + 0.5) / samples
		p := a.Lerp(b, t)
		total += m.oracle.Slope(p.X, p.Z) / 45.0
	}
	return total / samples
}

// RankCorridors fills in TrafficDemand for every edge, sorts descending
// by demand, and caps the candidate set at cfg.CorridorCap × n so path
// realization stays bounded on large destination counts.
func (m *DemandModel) RankCorridors(dests []Destination, edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	copy(out, edges)
	for i := range out {
		out[i].TrafficDemand = m.Demand(dests[out[i].FromIdx], dests[out[i].ToIdx])
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TrafficDemand != out[j].TrafficDemand {
			return out[i].TrafficDemand > out[j].TrafficDemand
		}
		ki, kj := out[i].pairKey(), out[j].pairKey()
		if ki[0] != kj[0] {
			return ki[0] < kj[0]
		}
		return ki[1] < kj[1]
	})

	limit := m.cfg.CorridorCap * len(dests)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
