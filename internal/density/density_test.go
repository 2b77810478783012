package density

import (
	"testing"

	"github.com/talgya/roadplan/internal/geom"
)

func testThresholds() Thresholds {
	return Thresholds{UrbanCore: 12, Urban: 7, Suburban: 4, Rural: 2}
}

func TestAddPathMarksCells(t *testing.T) {
	g := NewGrid(100)
	g.AddPath([]geom.Point3{{X: 50, Z: 50}, {X: 350, Z: 50}})

	// The segment crosses cells (0,0) through (3,0).
	for x := 0; x <= 3; x++ {
		cell, ok := g.Cells[CellCoord{X: x, Z: 0}]
		if !ok {
			t.Errorf("cell (%d,0) not touched", x)
			continue
		}
		if cell.RoadCount != 1 {
			t.Errorf("cell (%d,0) road count = %d, want 1", x, cell.RoadCount)
		}
	}
}

func TestAddPathDeduplicatesWithinSegment(t *testing.T) {
	g := NewGrid(100)
	// A short segment entirely inside one cell: one touch, not one per step.
	g.AddPath([]geom.Point3{{X: 10, Z: 10}, {X: 20, Z: 20}})

	cell := g.Cells[CellCoord{X: 0, Z: 0}]
	if cell == nil || cell.RoadCount != 1 {
		t.Fatalf("cell road count = %+v, want 1", cell)
	}
}

func TestAddIntersections(t *testing.T) {
	g := NewGrid(100)
	endpoints := []geom.Point3{
		{X: 50, Z: 50},
		{X: 60, Z: 50},   // near the first: one intersection
		{X: 900, Z: 900}, // far from everything
	}
	g.AddIntersections(endpoints, 40)

	cell := g.Cells[CellCoord{X: 0, Z: 0}]
	if cell == nil || cell.IntersectionCount != 1 {
		t.Fatalf("intersection count = %+v, want 1", cell)
	}
	if far := g.Cells[CellCoord{X: 9, Z: 9}]; far != nil {
		t.Errorf("isolated endpoint produced an intersection cell")
	}
}

func TestScoreWeighting(t *testing.T) {
	g := NewGrid(100)
	c := g.cellAt(CellCoord{})
	c.RoadCount = 3
	c.IntersectionCount = 2
	g.Score()

	if c.Score != 3+2*5 {
		t.Errorf("score = %v, want 13", c.Score)
	}
	for _, cell := range g.Cells {
		if cell.Score < 0 {
			t.Errorf("negative density score %v", cell.Score)
		}
	}
}

func TestSmoothPreservesKeySet(t *testing.T) {
	g := NewGrid(100)
	g.AddPath([]geom.Point3{{X: 0, Z: 0}, {X: 500, Z: 0}, {X: 500, Z: 500}})
	g.AddIntersections([]geom.Point3{{X: 500, Z: 0}, {X: 505, Z: 0}}, 40)
	g.Score()

	for _, iterations := range []int{0, 1, 2, 5} {
		keys := make(map[CellCoord]bool, len(g.Cells))
		for k := range g.Cells {
			keys[k] = true
		}

		g.Smooth(iterations)

		if len(g.Cells) != len(keys) {
			t.Fatalf("iterations=%d: key count changed %d → %d", iterations, len(keys), len(g.Cells))
		}
		for k := range g.Cells {
			if !keys[k] {
				t.Errorf("iterations=%d: new key %v appeared", iterations, k)
			}
		}
	}
}

func TestSmoothExcludesAbsentNeighbors(t *testing.T) {
	g := NewGrid(100)
	c := g.cellAt(CellCoord{})
	c.Score = 9

	// No neighbors exist: the mean of the cell alone is the cell itself.
	g.Smooth(1)
	if c.Score != 9 {
		t.Errorf("isolated cell score = %v, want 9 (absent neighbors excluded)", c.Score)
	}
}

func TestSmoothAveragesPresentNeighbors(t *testing.T) {
	g := NewGrid(100)
	g.cellAt(CellCoord{X: 0, Z: 0}).Score = 10
	g.cellAt(CellCoord{X: 1, Z: 0}).Score = 4

	g.Smooth(1)

	if got := g.Cells[CellCoord{X: 0, Z: 0}].Score; got != 7 {
		t.Errorf("smoothed score = %v, want 7", got)
	}
	if got := g.Cells[CellCoord{X: 1, Z: 0}].Score; got != 7 {
		t.Errorf("smoothed neighbor score = %v, want 7 (computed from the pre-pass buffer)", got)
	}
}

func TestExtractSettlementsClassification(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  DensityClass
		found bool
	}{
		{"Urban core", 15, ClassUrbanCore, true},
		{"Urban", 8, ClassUrban, true},
		{"Suburban", 5, ClassSuburban, true},
		{"Rural", 2.5, ClassRural, true},
		{"Below threshold", 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(100)
			g.cellAt(CellCoord{X: 3, Z: 3}).Score = tt.score

			out := g.ExtractSettlements(testThresholds())
			if !tt.found {
				if len(out) != 0 {
					t.Fatalf("got %d settlements below threshold", len(out))
				}
				return
			}
			if len(out) != 1 {
				t.Fatalf("got %d settlements, want 1", len(out))
			}
			s := out[0]
			if s.Class != tt.want {
				t.Errorf("class = %s, want %s", DensityClassName(s.Class), DensityClassName(tt.want))
			}
			if s.Radius != classRadii[tt.want] {
				t.Errorf("radius = %v, want class lookup %v", s.Radius, classRadii[tt.want])
			}
			if s.DensityScore != tt.score {
				t.Errorf("score = %v, want %v", s.DensityScore, tt.score)
			}
		})
	}
}

func TestExtractSettlementsLocalMaximaOnly(t *testing.T) {
	g := NewGrid(100)
	g.cellAt(CellCoord{X: 0, Z: 0}).Score = 10
	g.cellAt(CellCoord{X: 1, Z: 0}).Score = 6 // shadowed by the neighbor
	g.cellAt(CellCoord{X: 5, Z: 5}).Score = 5 // isolated second maximum

	out := g.ExtractSettlements(testThresholds())
	if len(out) != 2 {
		t.Fatalf("got %d settlements, want 2 local maxima", len(out))
	}
	if out[0].DensityScore != 10 || out[1].DensityScore != 5 {
		t.Errorf("settlements not ordered by descending score: %v, %v",
			out[0].DensityScore, out[1].DensityScore)
	}
}

func TestCellCenter(t *testing.T) {
	g := NewGrid(120)
	c := g.Center(CellCoord{X: -1, Z: 2})
	if c.X != -60 || c.Z != 300 {
		t.Errorf("Center = %+v, want (-60, _, 300)", c)
	}
}
