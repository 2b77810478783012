// Package terrain provides elevation and slope queries for the road
// planner, plus a terrain-aware grid pathfinder. The planner only sees
// the Oracle and PathFinder interfaces; the noise implementation here is
// the reference oracle used by the CLI.
package terrain

import "github.com/talgya/roadplan/internal/geom"

// Oracle answers elevation and slope queries. Implementations must be
// deterministic and cheap; the planner calls these thousands of times
// per generation pass.
type Oracle interface {
	// Elevation returns terrain height at (x, z) in world units.
	// Values below SeaLevel are underwater.
	Elevation(x, z float64) float64

	// Slope returns the local gradient at (x, z) in degrees, 0 = flat.
	Slope(x, z float64) float64

	// SeaLevel returns the elevation of the water surface.
	SeaLevel() float64

	// Size returns the side length of the square terrain in world units,
	// centered on the origin.
	Size() float64
}

// PathOptions tunes a single pathfinding request.
type PathOptions struct {
	GridResolution float64 // Sample spacing in world units
	AllowBridges   bool    // Whether the path may cross water
}

// PathFinder produces a terrain-following point sequence between two
// endpoints. A result with fewer than 2 points means no path was found;
// callers fall back to the straight segment.
type PathFinder interface {
	FindPath(from, to geom.Point3, opts PathOptions) []geom.Point3
}
