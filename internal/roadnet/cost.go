package roadnet

import (
	"github.com/talgya/roadplan/internal/geom"
	"github.com/talgya/roadplan/internal/terrain"
)

// CostInfo is the economic breakdown of a candidate edge.
type CostInfo struct {
	LandDistance  float64
	WaterDistance float64
	EconomicCost  float64
}

// CostModel prices candidate edges and gates water crossings on the
// population they would serve. Bridges are expensive; a crossing must
// earn its cost.
type CostModel struct {
	oracle terrain.Oracle
	cfg    Config
}

// NewCostModel creates a cost model over the given oracle.
func NewCostModel(oracle terrain.Oracle, cfg Config) *CostModel {
	return &CostModel{oracle: oracle, cfg: cfg}
}

// EdgeCost walks a fixed number of samples along a→b and splits the
// straight-line distance into land and water portions by elevation at
// each subsegment midpoint. Each subsegment contributes its actual
// length, so long edges are not biased by sample count. Symmetric in
// its arguments, and zero for a zero-length edge.
func (m *CostModel) EdgeCost(a, b geom.Point3) CostInfo {
	total := a.DistXZ(b)
	if total == 0 {
		return CostInfo{}
	}

	samples := m.cfg.CostSamples
	if samples < 1 {
		samples = 1
	}
	segLen := total / float64(samples)
	sea := m.oracle.SeaLevel()

	var land, water float64
	for i := 0; i < samples; i++ {
		t := (float64(i) + 0.5) / float64(samples)
		p := a.Lerp(b, t)
		if m.oracle.Elevation(p.X, p.Z) < sea {
			water += segLen
		} else {
			land += segLen
		}
	}

	return CostInfo{
		LandDistance:  land,
		WaterDistance: water,
		EconomicCost:  land + water*m.cfg.BridgeMultiplier,
	}
}

// IsEconomicallyViable decides whether an edge is worth building for the
// population it serves. Two independent gates: any water crossing needs
// a minimum population, and total cost per person served has a ceiling.
// A pure land edge with negligible cost always passes.
func (m *CostModel) IsEconomicallyViable(cost CostInfo, populationServed int) bool {
	if cost.WaterDistance == 0 {
		return true
	}
	if populationServed < m.cfg.MinPopulationBridge {
		return false
	}

	pop := populationServed
	if pop < 1 {
		pop = 1
	}
	return cost.EconomicCost/float64(pop) <= m.cfg.MaxCostPerCapita
}
