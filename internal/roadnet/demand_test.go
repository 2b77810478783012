package roadnet

import (
	"testing"

	"github.com/talgya/roadplan/internal/geom"
)

func TestImportanceFloor(t *testing.T) {
	m := NewDemandModel(landOracle(), DefaultConfig())

	// A minimal destination at the far corner still scores at least 1.
	d := Destination{
		Position:   geom.Point3{X: 1900, Z: 1900},
		Priority:   5,
		Population: 0,
		Kind:       KindFarm,
	}
	if imp := m.Importance(d); imp < 1.0 {
		t.Errorf("Importance = %v, want >= 1.0", imp)
	}
}

func TestImportanceOrdering(t *testing.T) {
	m := NewDemandModel(landOracle(), DefaultConfig())

	hub := Destination{Position: geom.Point3{}, Priority: 1, Population: 3000, Kind: KindSettlement}
	hamlet := Destination{Position: geom.Point3{X: 1500, Z: 1500}, Priority: 5, Population: 20, Kind: KindFarm}

	if m.Importance(hub) <= m.Importance(hamlet) {
		t.Errorf("major central hub (%v) should outscore remote hamlet (%v)",
			m.Importance(hub), m.Importance(hamlet))
	}
}

func TestDemandDecaysWithDistance(t *testing.T) {
	m := NewDemandModel(landOracle(), DefaultConfig())

	a := Destination{Position: geom.Point3{}, Priority: 2, Population: 1000}
	near := Destination{Position: geom.Point3{X: 400}, Priority: 2, Population: 1000}
	far := Destination{Position: geom.Point3{X: 1600}, Priority: 2, Population: 1000}

	dNear := m.Demand(a, near)
	dFar := m.Demand(a, far)
	if dNear <= dFar {
		t.Errorf("demand should decay with distance: near=%v far=%v", dNear, dFar)
	}
	if d := m.Demand(a, a); d != 0 {
		t.Errorf("zero-distance demand = %v, want 0", d)
	}
}

func TestRankCorridorsCapAndOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CorridorCap = 3
	m := NewDemandModel(landOracle(), cfg)
	costs := NewCostModel(landOracle(), cfg)

	// 10 destinations → 45 pairs, cap is 30.
	var dests []Destination
	for i := 0; i < 10; i++ {
		dests = append(dests, Destination{
			Position:   geom.Point3{X: float64(i) * 137, Z: float64(i*i) * 13},
			Priority:   1 + i%5,
			Population: 100 * (i + 1),
		})
	}
	edges := CompleteEdges(dests, costs)
	ranked := m.RankCorridors(dests, edges)

	if want := cfg.CorridorCap * len(dests); len(ranked) != want {
		t.Errorf("ranked corridors = %d, want capped at %d", len(ranked), want)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].TrafficDemand > ranked[i-1].TrafficDemand {
			t.Errorf("corridors not descending by demand at %d", i)
		}
	}
}
