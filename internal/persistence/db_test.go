package persistence

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/talgya/roadplan/internal/density"
	"github.com/talgya/roadplan/internal/geom"
	"github.com/talgya/roadplan/internal/roadnet"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "plan.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func samplePlan() *roadnet.Plan {
	return &roadnet.Plan{
		Roads: []*roadnet.Road{
			{
				ID:     uuid.New(),
				Path:   []geom.Point3{{X: 0, Y: 100.3, Z: 0}, {X: 500, Y: 98.1, Z: 120}},
				Width:  12,
				Type:   roadnet.RoadHighway,
				From:   geom.Point3{X: 0, Y: 100.3, Z: 0},
				To:     geom.Point3{X: 500, Y: 98.1, Z: 120},
				Demand: 7.5,
			},
			{
				ID:    uuid.New(),
				Path:  []geom.Point3{{X: 500, Y: 98.1, Z: 120}, {X: 650, Y: 97.0, Z: 300}},
				Width: 5,
				Type:  roadnet.RoadBranch,
				From:  geom.Point3{X: 500, Y: 98.1, Z: 120},
				To:    geom.Point3{X: 650, Y: 97.0, Z: 300},
			},
		},
		Settlements: []density.Settlement{
			{
				ID:           uuid.New(),
				Center:       geom.Point3{X: 480, Z: 120},
				Radius:       280,
				DensityScore: 9.5,
				Class:        density.ClassUrban,
			},
		},
		ExclusionZones: []roadnet.ExclusionZone{
			{Center: geom.Point3{X: 250, Y: 40, Z: 60}, Radius: 95},
		},
	}
}

func TestSaveLoadPlanRoundTrip(t *testing.T) {
	db := openTestDB(t)
	want := samplePlan()

	if err := db.SavePlan(want); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}
	got, err := db.LoadPlan()
	if err != nil {
		t.Fatalf("LoadPlan: %v", err)
	}

	if len(got.Roads) != len(want.Roads) {
		t.Fatalf("loaded %d roads, want %d", len(got.Roads), len(want.Roads))
	}
	byID := make(map[uuid.UUID]*roadnet.Road)
	for _, r := range got.Roads {
		byID[r.ID] = r
	}
	for _, w := range want.Roads {
		g, ok := byID[w.ID]
		if !ok {
			t.Fatalf("road %s missing after round trip", w.ID)
		}
		if g.Type != w.Type || g.Width != w.Width || g.Demand != w.Demand {
			t.Errorf("road %s fields changed: %+v vs %+v", w.ID, g, w)
		}
		if len(g.Path) != len(w.Path) || g.Path[0] != w.Path[0] {
			t.Errorf("road %s path changed", w.ID)
		}
	}

	if len(got.Settlements) != 1 || got.Settlements[0].Class != density.ClassUrban {
		t.Errorf("settlements round trip failed: %+v", got.Settlements)
	}
	if len(got.ExclusionZones) != 1 || got.ExclusionZones[0].Radius != 95 {
		t.Errorf("exclusion zones round trip failed: %+v", got.ExclusionZones)
	}
}

func TestSavePlanReplacesPrevious(t *testing.T) {
	db := openTestDB(t)

	if err := db.SavePlan(samplePlan()); err != nil {
		t.Fatalf("first SavePlan: %v", err)
	}
	second := samplePlan()
	second.Roads = second.Roads[:1]
	if err := db.SavePlan(second); err != nil {
		t.Fatalf("second SavePlan: %v", err)
	}

	got, err := db.LoadPlan()
	if err != nil {
		t.Fatalf("LoadPlan: %v", err)
	}
	if len(got.Roads) != 1 {
		t.Errorf("loaded %d roads, want 1 (save is a full replace)", len(got.Roads))
	}
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveMeta("seed", "42"); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}
	if err := db.SaveMeta("seed", "43"); err != nil {
		t.Fatalf("SaveMeta replace: %v", err)
	}
	got, err := db.GetMeta("seed")
	if err != nil {
		t.Fatalf("GetMeta: %v", err)
	}
	if got != "43" {
		t.Errorf("GetMeta = %q, want %q", got, "43")
	}
}
