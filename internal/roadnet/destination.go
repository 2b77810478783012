package roadnet

import (
	"math"
	"math/rand"
	"sort"

	"github.com/talgya/roadplan/internal/geom"
	"github.com/talgya/roadplan/internal/terrain"
)

// DestinationKind categorizes a point the network must service.
type DestinationKind uint8

const (
	KindSettlement DestinationKind = iota // Population centers
	KindCoastline                         // Harbor / shore access points
	KindLandmark                          // High-value isolated sites
	KindFarm                              // Agricultural outposts
)

// DestinationKindName returns a human-readable name for a kind.
func DestinationKindName(k DestinationKind) string {
	switch k {
	case KindSettlement:
		return "settlement"
	case KindCoastline:
		return "coastline"
	case KindLandmark:
		return "landmark"
	case KindFarm:
		return "farm"
	default:
		return "unknown"
	}
}

// Destination is a point of interest the road network connects.
// Immutable after gathering.
type Destination struct {
	Position   geom.Point3     `json:"position"`
	Priority   int             `json:"priority"` // 1 = major … 5 = minor
	Population int             `json:"population"`
	Kind       DestinationKind `json:"kind"`
}

// SettlementSite is the upstream settlement record consumed by the
// planner. Population may be zero, in which case it is estimated from
// the building count.
type SettlementSite struct {
	Center        geom.Point3
	Radius        float64
	Population    int
	BuildingCount int
}

// peoplePerBuilding estimates settlement population when the upstream
// record only carries a building count.
const peoplePerBuilding = 3.5

// GatherDestinations converts upstream settlement sites into
// destinations and supplements them with sampled coastline access
// points and farmsteads. Returns an empty slice when given no sites and
// no usable terrain.
func GatherDestinations(oracle terrain.Oracle, sites []SettlementSite, seed int64) []Destination {
	var dests []Destination

	for _, s := range sites {
		pop := s.Population
		if pop == 0 {
			pop = int(float64(s.BuildingCount) * peoplePerBuilding)
		}
		dests = append(dests, Destination{
			Position:   s.Center,
			Priority:   priorityForPopulation(pop),
			Population: pop,
			Kind:       KindSettlement,
		})
	}

	if oracle == nil {
		return dests
	}

	rng := rand.New(rand.NewSource(seed + 300))
	dests = append(dests, sampleCoastline(oracle, dests, rng)...)
	dests = append(dests, sampleFarms(oracle, dests, rng)...)

	return dests
}

// priorityForPopulation maps population to the 1 (major) … 5 (minor)
// priority bands that gate road tiers.
func priorityForPopulation(pop int) int {
	switch {
	case pop >= 2000:
		return 1
	case pop >= 800:
		return 2
	case pop >= 300:
		return 3
	case pop >= 100:
		return 4
	default:
		return 5
	}
}

// sampleCoastline scans a coarse grid for shoreline points (land cells
// with water nearby) and keeps a handful of well-spaced access points.
func sampleCoastline(oracle terrain.Oracle, existing []Destination, rng *rand.Rand) []Destination {
	half := oracle.Size() / 2
	sea := oracle.SeaLevel()
	step := oracle.Size() / 40

	type scored struct {
		pos   geom.Point3
		score float64
	}
	var candidates []scored

	for x := -half + step; x < half; x += step {
		for z := -half + step; z < half; z += step {
			elev := oracle.Elevation(x, z)
			if elev < sea || elev > sea+8 {
				continue
			}
			// Shoreline means water within one grid step.
			if oracle.Elevation(x+step, z) >= sea && oracle.Elevation(x-step, z) >= sea &&
				oracle.Elevation(x, z+step) >= sea && oracle.Elevation(x, z-step) >= sea {
				continue
			}
			// Flat shore beats steep shore for harbor access.
			candidates = append(candidates, scored{
				pos:   geom.Point3{X: x, Y: elev, Z: z},
				score: 10 - oracle.Slope(x, z),
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		// Stable order for equal scores.
		if candidates[i].pos.X != candidates[j].pos.X {
			return candidates[i].pos.X < candidates[j].pos.X
		}
		return candidates[i].pos.Z < candidates[j].pos.Z
	})

	maxPoints := 2 + rng.Intn(3)
	minSpacing := oracle.Size() / 6

	var out []Destination
	for _, c := range candidates {
		if len(out) >= maxPoints {
			break
		}
		if tooCloseTo(c.pos, existing, minSpacing) || tooCloseTo(c.pos, out, minSpacing) {
			continue
		}
		out = append(out, Destination{
			Position:   c.pos,
			Priority:   4,
			Population: 60,
			Kind:       KindCoastline,
		})
	}
	return out
}

// sampleFarms scatters low-priority farmsteads on gentle land away from
// everything already gathered.
func sampleFarms(oracle terrain.Oracle, existing []Destination, rng *rand.Rand) []Destination {
	half := oracle.Size() / 2
	sea := oracle.SeaLevel()
	minSpacing := oracle.Size() / 10

	var out []Destination
	attempts := 60
	want := 3 + rng.Intn(4)

	for i := 0; i < attempts && len(out) < want; i++ {
		x := (rng.Float64()*2 - 1) * half * 0.8
		z := (rng.Float64()*2 - 1) * half * 0.8
		elev := oracle.Elevation(x, z)
		if elev < sea+5 || oracle.Slope(x, z) > 10 {
			continue
		}
		pos := geom.Point3{X: x, Y: elev, Z: z}
		if tooCloseTo(pos, existing, minSpacing) || tooCloseTo(pos, out, minSpacing) {
			continue
		}
		out = append(out, Destination{
			Position:   pos,
			Priority:   5,
			Population: 10 + rng.Intn(30),
			Kind:       KindFarm,
		})
	}
	return out
}

func tooCloseTo(pos geom.Point3, dests []Destination, minDist float64) bool {
	for _, d := range dests {
		if pos.DistXZ(d.Position) < minDist {
			return true
		}
	}
	return false
}

// SampleSettlementSites picks settlement locations directly from
// terrain for standalone runs without an upstream settlement generator.
// Scores favor flat, low land with water access and enforces minimum
// spacing between picks.
func SampleSettlementSites(oracle terrain.Oracle, seed int64, count int) []SettlementSite {
	if oracle == nil || count <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed + 200))
	half := oracle.Size() / 2
	sea := oracle.SeaLevel()
	step := oracle.Size() / 32

	type scored struct {
		pos   geom.Point3
		score float64
	}
	var candidates []scored

	for x := -half + step; x < half; x += step {
		for z := -half + step; z < half; z += step {
			elev := oracle.Elevation(x, z)
			if elev < sea+3 {
				continue
			}
			score := 6 - oracle.Slope(x, z)*0.4
			// Low, buildable land beats exposed highland.
			score -= (elev - sea) * 0.01
			// Water nearby is a trade bonus.
			if oracle.Elevation(x+step*2, z) < sea || oracle.Elevation(x-step*2, z) < sea ||
				oracle.Elevation(x, z+step*2) < sea || oracle.Elevation(x, z-step*2) < sea {
				score += 2
			}
			if score > 0 {
				candidates = append(candidates, scored{geom.Point3{X: x, Y: elev, Z: z}, score})
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].pos.X != candidates[j].pos.X {
			return candidates[i].pos.X < candidates[j].pos.X
		}
		return candidates[i].pos.Z < candidates[j].pos.Z
	})

	minSpacing := oracle.Size() / 8
	var sites []SettlementSite
	for _, c := range candidates {
		if len(sites) >= count {
			break
		}
		close := false
		for _, s := range sites {
			if c.pos.DistXZ(s.Center) < minSpacing {
				close = true
				break
			}
		}
		if close {
			continue
		}
		// Population shrinks down the ranking: the best site becomes the
		// regional hub.
		pop := int(2500/math.Pow(float64(len(sites)+1), 1.2)) + rng.Intn(80)
		sites = append(sites, SettlementSite{
			Center:     c.pos,
			Radius:     40 + float64(pop)*0.05,
			Population: pop,
		})
	}
	return sites
}
