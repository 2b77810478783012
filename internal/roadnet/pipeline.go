package roadnet

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/roadplan/internal/density"
	"github.com/talgya/roadplan/internal/geom"
	"github.com/talgya/roadplan/internal/terrain"
)

// ErrNoTerrainOracle is returned when the planner is constructed without
// its one required collaborator.
var ErrNoTerrainOracle = errors.New("roadnet: terrain oracle is required")

// Plan is the finished output of one generation pass: the road records,
// the water-crossing exclusion zones, and the settlements inferred from
// the network's own density.
type Plan struct {
	Destinations   []Destination
	Roads          []*Road
	ExclusionZones []ExclusionZone
	Settlements    []density.Settlement
}

// Planner runs the full sequential pipeline: destination scoring →
// corridor selection → path realization → branching → consolidation →
// density analysis. Each stage consumes the complete output of the
// previous one.
type Planner struct {
	oracle terrain.Oracle
	finder terrain.PathFinder
	cfg    Config

	costs  *CostModel
	demand *DemandModel
	paths  *PathBuilder
}

// NewPlanner wires the pipeline. The terrain oracle is mandatory; the
// pathfinder may be nil, in which case every corridor falls back to a
// straight terrain-projected segment.
func NewPlanner(oracle terrain.Oracle, finder terrain.PathFinder, cfg Config) (*Planner, error) {
	if oracle == nil {
		return nil, ErrNoTerrainOracle
	}
	return &Planner{
		oracle: oracle,
		finder: finder,
		cfg:    cfg,
		costs:  NewCostModel(oracle, cfg),
		demand: NewDemandModel(oracle, cfg),
		paths:  NewPathBuilder(oracle, finder, cfg),
	}, nil
}

// Plan generates the road network for the given destinations. Empty
// input is not an error: downstream consumers get an empty plan.
func (p *Planner) Plan(dests []Destination) (*Plan, error) {
	plan := &Plan{Destinations: dests}
	if len(dests) < 2 {
		slog.Warn("road planning skipped: need at least 2 destinations", "destinations", len(dests))
		return plan, nil
	}

	// Score all pairs.
	edges := CompleteEdges(dests, p.costs)

	// Corridor selection: cost-weighted MST plus loop redundancy, then
	// demand-ranked and capped.
	mst := BuildMST(len(dests), edges, WeightByEconomicCost)
	corridors := AddLoopEdges(mst, edges, LoopTarget(len(mst), p.cfg.LoopFactor), WeightByEconomicCost)
	corridors = p.demand.RankCorridors(dests, corridors)
	slog.Info("corridors selected", "destinations", len(dests), "mst_edges", len(mst), "corridors", len(corridors))

	// Realize corridors into roads, dropping water crossings that cannot
	// pay for themselves. A rejected crossing is a planning decision, not
	// a failure.
	for _, e := range corridors {
		cost := CostInfo{LandDistance: e.LandDistance, WaterDistance: e.WaterDistance, EconomicCost: e.EconomicCost}
		if !p.costs.IsEconomicallyViable(cost, e.PopulationServed) {
			slog.Debug("corridor rejected as uneconomical",
				"from", e.FromIdx, "to", e.ToIdx,
				"water", e.WaterDistance, "population", e.PopulationServed)
			continue
		}

		roadType, width := p.tierFor(dests[e.FromIdx], dests[e.ToIdx])
		allowBridges := e.WaterDistance > 0 && roadType != RoadLane

		path := p.paths.BuildPath(e.From, e.To, allowBridges)
		if len(path) < 2 {
			continue
		}
		plan.Roads = append(plan.Roads, &Road{
			ID:     uuid.New(),
			Path:   path,
			Width:  width,
			Type:   roadType,
			From:   path[0],
			To:     path[len(path)-1],
			Demand: e.TrafficDemand,
		})
	}
	slog.Info("corridors realized", "roads", len(plan.Roads))

	// Secondary growth off the primary network.
	brancher := NewBrancher(p.oracle, p.cfg)
	branches := brancher.Grow(plan.Roads)
	plan.Roads = append(plan.Roads, branches...)
	slog.Info("branches grown", "branches", len(branches))

	// Consolidate before pruning so pruning values the surviving road of
	// each merged pair.
	before := len(plan.Roads)
	plan.Roads = Consolidate(plan.Roads, p.cfg.MergeDistance)
	plan.Roads = Prune(plan.Roads, p.cfg.MinRoadValue)
	slog.Info("network consolidated", "before", before, "after", len(plan.Roads))

	plan.ExclusionZones = p.waterCrossings(plan.Roads)

	plan.Settlements = p.inferSettlements(plan.Roads)
	slog.Info("settlements inferred", "settlements", len(plan.Settlements), "exclusion_zones", len(plan.ExclusionZones))

	return plan, nil
}

// tierFor gates the road tier on the endpoints' priorities: major hubs
// earn highways, minor destinations only land-grade lanes.
func (p *Planner) tierFor(a, b Destination) (RoadType, float64) {
	worst := a.Priority
	if b.Priority > worst {
		worst = b.Priority
	}
	switch {
	case worst <= 2:
		return RoadHighway, p.cfg.HighwayWidth
	case worst <= 3:
		return RoadArterial, p.cfg.ArterialWidth
	default:
		return RoadLane, p.cfg.LaneWidth
	}
}

// waterCrossings exports every underwater span of every road as an
// exclusion zone so downstream generators avoid bridge footprints.
func (p *Planner) waterCrossings(roads []*Road) []ExclusionZone {
	sea := p.oracle.SeaLevel()
	var zones []ExclusionZone

	for _, road := range roads {
		if len(road.Path) < 2 {
			continue
		}
		var runStart geom.Point3
		runLen := 0.0
		inWater := false

		flush := func(end geom.Point3) {
			if !inWater {
				return
			}
			zones = append(zones, ExclusionZone{
				Center: runStart.Lerp(end, 0.5),
				Radius: runLen/2 + road.Width,
			})
			inWater = false
			runLen = 0
		}

		for i := 1; i < len(road.Path); i++ {
			a, b := road.Path[i-1], road.Path[i]
			wet := p.oracle.Elevation(b.X, b.Z) < sea
			if wet && !inWater {
				runStart = a
				inWater = true
			}
			if inWater {
				runLen += a.DistXZ(b)
			}
			if !wet {
				flush(b)
			}
		}
		flush(road.Path[len(road.Path)-1])
	}
	return zones
}

// inferSettlements rasterizes the finished network into the density grid
// and extracts local maxima as emergent settlement centers.
func (p *Planner) inferSettlements(roads []*Road) []density.Settlement {
	grid := density.NewGrid(p.cfg.DensityCellSize)

	var endpoints []geom.Point3
	for _, road := range roads {
		grid.AddPath(road.Path)
		endpoints = append(endpoints, road.From, road.To)
	}
	grid.AddIntersections(endpoints, p.cfg.IntersectionRadius)
	grid.Score()
	grid.Smooth(p.cfg.SmoothIterations)

	return grid.ExtractSettlements(density.Thresholds{
		UrbanCore: p.cfg.UrbanCoreThreshold,
		Urban:     p.cfg.UrbanThreshold,
		Suburban:  p.cfg.SuburbanThreshold,
		Rural:     p.cfg.RuralThreshold,
	})
}

// RealizeMeshes turns planned road records into renderable ribbon
// geometry. Kept separate from planning so the records stay pure data.
func (p *Planner) RealizeMeshes(roads []*Road) []*RibbonMesh {
	meshes := make([]*RibbonMesh, 0, len(roads))
	for _, road := range roads {
		if mesh := BuildRibbonMesh(p.oracle, road.Path, road.Width, p.cfg.VerticalOffset); mesh != nil {
			meshes = append(meshes, mesh)
		}
	}
	return meshes
}
