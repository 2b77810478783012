package roadnet

import (
	"github.com/talgya/roadplan/internal/geom"
	"github.com/talgya/roadplan/internal/terrain"
)

// PathBuilder converts corridor endpoints into terrain-following paths.
// Pathfinding itself is the external realizer's job; this layer only
// chooses a grid resolution for the request and guarantees a usable path
// even when the realizer fails.
type PathBuilder struct {
	oracle terrain.Oracle
	finder terrain.PathFinder
	cfg    Config
}

// NewPathBuilder creates a path builder over the given collaborators.
func NewPathBuilder(oracle terrain.Oracle, finder terrain.PathFinder, cfg Config) *PathBuilder {
	return &PathBuilder{oracle: oracle, finder: finder, cfg: cfg}
}

// gridResolution picks a pathfinder grid spacing proportional to the
// corridor's straight-line length: coarse for long corridors, fine for
// short, clamped to the configured bounds.
func (b *PathBuilder) gridResolution(from, to geom.Point3) float64 {
	res := from.DistXZ(to) * b.cfg.ResolutionFactor
	if res < b.cfg.MinGridResolution {
		res = b.cfg.MinGridResolution
	}
	if res > b.cfg.MaxGridResolution {
		res = b.cfg.MaxGridResolution
	}
	return res
}

// BuildPath asks the realizer for a terrain-following path and falls
// back to the straight two-point segment when it returns fewer than 2
// points, so every corridor yields a renderable road. Every point is
// projected onto the terrain with a small vertical offset.
func (b *PathBuilder) BuildPath(from, to geom.Point3, allowBridges bool) []geom.Point3 {
	var path []geom.Point3
	if b.finder != nil {
		path = b.finder.FindPath(from, to, terrain.PathOptions{
			GridResolution: b.gridResolution(from, to),
			AllowBridges:   allowBridges,
		})
	}
	if len(path) < 2 {
		path = []geom.Point3{from, to}
	}
	return b.projectPath(path)
}

// projectPath resolves each point's elevation against the oracle and
// lifts it by the configured offset.
func (b *PathBuilder) projectPath(path []geom.Point3) []geom.Point3 {
	out := make([]geom.Point3, len(path))
	for i, p := range path {
		out[i] = geom.Point3{
			X: p.X,
			Y: b.oracle.Elevation(p.X, p.Z) + b.cfg.VerticalOffset,
			Z: p.Z,
		}
	}
	return out
}
