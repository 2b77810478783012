package roadnet

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/talgya/roadplan/internal/geom"
)

// trunkRoad builds a straight trunk with a densely sampled path so the
// brancher has segments to walk.
func trunkRoad(from, to geom.Point3) *Road {
	const step = 50.0
	dist := from.DistXZ(to)
	n := int(dist / step)
	path := make([]geom.Point3, 0, n+1)
	for i := 0; i <= n; i++ {
		path = append(path, from.Lerp(to, float64(i)/float64(n)))
	}
	return &Road{ID: uuid.New(), Path: path, Width: 12, Type: RoadHighway, From: from, To: to}
}

func TestBranchCountOnTrunk(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.BranchInterval = 300
	cfg.BranchProbability = 1.0
	cfg.MaxBranchDepth = 1 // no sub-branches, count depth-0 only

	trunk := trunkRoad(geom.Point3{X: -1000}, geom.Point3{X: 1000})
	b := NewBrancher(landOracle(), cfg)
	branches := b.Grow([]*Road{trunk})

	// One branch point every 300 units along 2000 units of trunk.
	if want := int(2000 / 300); len(branches) != want {
		t.Errorf("got %d branches, want %d", len(branches), want)
	}
}

func TestBranchSidesAlternate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 2
	cfg.BranchProbability = 1.0
	cfg.MaxBranchDepth = 1
	cfg.BranchAngleVar = 0 // pure perpendicular so sides are unambiguous

	trunk := trunkRoad(geom.Point3{X: -1000}, geom.Point3{X: 1000})
	b := NewBrancher(landOracle(), cfg)
	branches := b.Grow([]*Road{trunk})

	if len(branches) < 2 {
		t.Fatalf("need at least 2 branches, got %d", len(branches))
	}
	for i := 1; i < len(branches); i++ {
		prev := branches[i-1].To.Z
		curr := branches[i].To.Z
		if prev*curr > 0 {
			t.Errorf("branches %d and %d grew on the same side of the trunk (z=%v, z=%v)", i-1, i, prev, curr)
		}
	}
}

func TestBranchRejectsWater(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 3
	cfg.BranchProbability = 1.0

	// Everything is underwater: no branch may be created.
	sunken := flatOracle{elev: 10, sea: 50, size: 4000}
	trunk := trunkRoad(geom.Point3{X: -1000}, geom.Point3{X: 1000})
	b := NewBrancher(sunken, cfg)

	if branches := b.Grow([]*Road{trunk}); len(branches) != 0 {
		t.Errorf("got %d branches into water, want 0", len(branches))
	}
}

func TestBranchRejectsMapEdge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 4
	cfg.BranchProbability = 1.0
	cfg.MaxBranchDepth = 1

	// A tiny map: every branch tip lands outside the boundary margin.
	small := flatOracle{elev: 100, sea: 50, size: 300}
	trunk := trunkRoad(geom.Point3{X: -100}, geom.Point3{X: 1000})
	b := NewBrancher(small, cfg)

	for _, br := range b.Grow([]*Road{trunk}) {
		half := small.Size()/2 - cfg.BoundaryMargin
		if math.Abs(br.To.X) > half || math.Abs(br.To.Z) > half {
			t.Errorf("branch tip %+v outside boundary margin", br.To)
		}
	}
}

func TestSnapEndpoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SnapRadius = 80
	cfg.MinSnapDistance = 15
	b := NewBrancher(landOracle(), cfg)

	target := geom.Point3{X: 500, Z: 50}
	tooNear := geom.Point3{X: 500, Z: 5}
	b.endpoints = []geom.Point3{target, tooNear, {X: 5000, Z: 5000}}

	tip := geom.Point3{X: 500, Z: 0}

	// tooNear is within MinSnapDistance and must be skipped; target is
	// inside the snap radius and wins.
	snapped, ok := b.snapEndpoint(tip)
	if !ok {
		t.Fatal("expected a snap")
	}
	if snapped != target {
		t.Errorf("snapped to %+v, want %+v", snapped, target)
	}

	// Nothing in range: no snap.
	b.endpoints = []geom.Point3{{X: 5000, Z: 5000}}
	if _, ok := b.snapEndpoint(tip); ok {
		t.Error("snapped with no endpoint in range")
	}
}

func TestBranchDepthCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 5
	cfg.BranchProbability = 1.0
	cfg.MaxBranchDepth = 3

	trunk := trunkRoad(geom.Point3{X: -1500}, geom.Point3{X: 1500})
	b := NewBrancher(landOracle(), cfg)
	branches := b.Grow([]*Road{trunk})

	// Sub-branch probability decays 15% → 10% → 5%; the total can exceed
	// the depth-0 count but must stay well bounded.
	depth0 := int(3000 / cfg.BranchInterval)
	if len(branches) > depth0*3 {
		t.Errorf("branch growth unbounded: %d branches from %d seed points", len(branches), depth0)
	}

	// Widths never fall below the floor.
	for _, br := range branches {
		if br.Width < cfg.MinBranchWidth {
			t.Errorf("branch width %v below floor %v", br.Width, cfg.MinBranchWidth)
		}
	}
}
