package roadnet

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/talgya/roadplan/internal/geom"
	"github.com/talgya/roadplan/internal/terrain"
)

// Brancher grows secondary roads off trunk and arterial routes:
// branches, sub-branches, and leaf lanes. Instead of recursing it
// processes an explicit worklist of (start, direction, depth) entries,
// so traversal order is deterministic and depth is capped structurally.
type Brancher struct {
	oracle terrain.Oracle
	cfg    Config
	rng    *rand.Rand

	// endpoints collects every known road endpoint, append-only during a
	// growing pass. Used both for local-density interval adjustment and
	// for snapping new branch tips into T-junctions.
	endpoints []geom.Point3
}

// NewBrancher creates a brancher seeded from the planner config.
func NewBrancher(oracle terrain.Oracle, cfg Config) *Brancher {
	return &Brancher{
		oracle: oracle,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed + 500)),
	}
}

// branchJob is one pending branch in the worklist.
type branchJob struct {
	start geom.Point3
	dir   geom.Vec2
	depth int
	width float64
}

// Grow walks every trunk/arterial road, spawns depth-0 branches at
// density-dependent intervals, and processes the resulting worklist
// breadth-first until the depth cap. Returns only the new branch roads.
func (b *Brancher) Grow(trunks []*Road) []*Road {
	for _, r := range trunks {
		b.endpoints = append(b.endpoints, r.From, r.To)
	}

	var work []branchJob
	for _, r := range trunks {
		if r.Type != RoadHighway && r.Type != RoadArterial {
			continue
		}
		work = append(work, b.seedBranchPoints(r)...)
	}

	var out []*Road
	for len(work) > 0 {
		job := work[0]
		work = work[1:]

		road, tip, ok := b.buildBranch(job)
		if !ok {
			continue
		}
		out = append(out, road)
		b.endpoints = append(b.endpoints, tip)

		// At most one child per branch, with decaying probability.
		nextDepth := job.depth + 1
		if nextDepth >= b.cfg.MaxBranchDepth {
			continue
		}
		childChance := 0.15 - 0.05*float64(job.depth)
		if b.rng.Float64() >= childChance {
			continue
		}
		side := 1.0
		if len(out)%2 == 0 {
			side = -1.0
		}
		childDir := job.dir.Rotate(side * (math.Pi/2 + b.randAngle()))
		work = append(work, branchJob{
			start: tip,
			dir:   childDir,
			depth: nextDepth,
			width: b.narrow(job.width),
		})
	}
	return out
}

// seedBranchPoints walks a road's path and emits a depth-0 branch job
// every interval of traveled distance, alternating sides, gated by the
// branch probability.
func (b *Brancher) seedBranchPoints(road *Road) []branchJob {
	if len(road.Path) < 2 {
		return nil
	}

	interval := b.localInterval(road)
	var jobs []branchJob

	traveled := 0.0
	nextAt := interval
	side := 1.0

	for i := 1; i < len(road.Path); i++ {
		a, c := road.Path[i-1], road.Path[i]
		segLen := a.DistXZ(c)
		if segLen == 0 {
			continue
		}
		for nextAt <= traveled+segLen {
			t := (nextAt - traveled) / segLen
			point := a.Lerp(c, t)
			nextAt += interval

			if b.rng.Float64() >= b.cfg.BranchProbability {
				continue
			}

			perp := geom.DirectionXZ(a, c).Perp().Scale(side)
			side = -side
			jobs = append(jobs, branchJob{
				start: point,
				dir:   perp.Rotate(b.randAngle()),
				depth: 0,
				width: b.narrow(road.Width),
			})
		}
		traveled += segLen
	}
	return jobs
}

// localInterval shortens the branch spacing where the network is already
// dense, measured by known endpoints near the road's midpoint.
func (b *Brancher) localInterval(road *Road) float64 {
	mid := road.Path[len(road.Path)/2]
	const densityRadius = 250.0

	count := 0
	for _, p := range b.endpoints {
		if d := mid.DistXZ(p); d > 0 && d < densityRadius {
			count++
		}
	}

	interval := b.cfg.BranchInterval / (1.0 + 0.15*float64(count))
	if min := b.cfg.BranchInterval * 0.4; interval < min {
		interval = min
	}
	return interval
}

// buildBranch realizes one worklist job into a branch road. Returns
// ok=false when the candidate endpoint is rejected (water, map edge,
// degenerate after snapping).
func (b *Brancher) buildBranch(job branchJob) (*Road, geom.Point3, bool) {
	length := b.branchLength(job.depth)
	tip := geom.Point3{
		X: job.start.X + job.dir.X*length,
		Z: job.start.Z + job.dir.Z*length,
	}

	// No branching off the map or into water.
	half := b.oracle.Size()/2 - b.cfg.BoundaryMargin
	if math.Abs(tip.X) > half || math.Abs(tip.Z) > half {
		return nil, geom.Point3{}, false
	}
	if b.oracle.Elevation(tip.X, tip.Z) < b.oracle.SeaLevel() {
		return nil, geom.Point3{}, false
	}

	// Snap to a nearby existing endpoint to form a T-junction instead of
	// a parallel spur. Targets closer than MinSnapDistance would produce
	// a degenerate stub, so they are skipped.
	if snapped, ok := b.snapEndpoint(tip); ok {
		tip = snapped
	}
	if job.start.DistXZ(tip) < b.cfg.MinSnapDistance {
		return nil, geom.Point3{}, false
	}

	path := b.samplePath(job.start, tip)
	road := &Road{
		ID:    uuid.New(),
		Path:  path,
		Width: job.width,
		Type:  RoadBranch,
		From:  path[0],
		To:    path[len(path)-1],
	}
	return road, road.To, true
}

// snapEndpoint finds the closest known endpoint within the merge radius
// but beyond the degenerate-close minimum.
func (b *Brancher) snapEndpoint(tip geom.Point3) (geom.Point3, bool) {
	bestDist := b.cfg.SnapRadius
	var best geom.Point3
	found := false

	for _, p := range b.endpoints {
		d := tip.DistXZ(p)
		if d < b.cfg.MinSnapDistance {
			continue
		}
		if d < bestDist {
			bestDist = d
			best = p
			found = true
		}
	}
	return best, found
}

// samplePath projects the straight branch segment onto the terrain at a
// fixed sampling interval.
func (b *Brancher) samplePath(from, to geom.Point3) []geom.Point3 {
	const sampleStep = 20.0
	dist := from.DistXZ(to)
	steps := int(dist/sampleStep) + 1

	path := make([]geom.Point3, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := from.Lerp(to, t)
		p.Y = b.oracle.Elevation(p.X, p.Z) + b.cfg.VerticalOffset
		path = append(path, p)
	}
	return path
}

// branchLength scales the base length down at deeper levels with a
// little jitter.
func (b *Brancher) branchLength(depth int) float64 {
	base := b.cfg.BranchLength * math.Pow(0.65, float64(depth))
	return base * (0.75 + b.rng.Float64()*0.5)
}

// randAngle draws a direction perturbation within the variance window.
func (b *Brancher) randAngle() float64 {
	return (b.rng.Float64()*2 - 1) * b.cfg.BranchAngleVar
}

// narrow steps a width down one level, floored at the minimum.
func (b *Brancher) narrow(width float64) float64 {
	w := width - b.cfg.BranchWidthStep
	if w < b.cfg.MinBranchWidth {
		w = b.cfg.MinBranchWidth
	}
	return w
}
