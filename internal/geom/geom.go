// Package geom provides the 3D point and planar vector math used by the
// road planner. The Y axis is elevation; planning happens in the XZ plane.
package geom

import "math"

// Point3 is a position in world space.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns p + q component-wise.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q component-wise.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p multiplied by s.
func (p Point3) Scale(s float64) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

// Dist returns the full 3D distance between p and q.
func (p Point3) Dist(q Point3) float64 {
	dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// DistXZ returns the horizontal distance between p and q, ignoring elevation.
// Road lengths and merge thresholds are all planar quantities.
func (p Point3) DistXZ(q Point3) float64 {
	dx, dz := p.X-q.X, p.Z-q.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// Lerp returns the point a fraction t of the way from p to q.
func (p Point3) Lerp(q Point3, t float64) Point3 {
	return Point3{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
		Z: p.Z + (q.Z-p.Z)*t,
	}
}

// Vec2 is a direction in the XZ plane.
type Vec2 struct {
	X float64
	Z float64
}

// DirectionXZ returns the unit vector from p toward q in the XZ plane.
// Returns the zero vector when the points coincide horizontally.
func DirectionXZ(p, q Point3) Vec2 {
	dx, dz := q.X-p.X, q.Z-p.Z
	l := math.Sqrt(dx*dx + dz*dz)
	if l == 0 {
		return Vec2{}
	}
	return Vec2{dx / l, dz / l}
}

// Perp returns v rotated 90° counter-clockwise in the XZ plane.
func (v Vec2) Perp() Vec2 {
	return Vec2{-v.Z, v.X}
}

// Rotate returns v rotated by the given angle (radians) in the XZ plane.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Z*sin, v.X*sin + v.Z*cos}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Z * s}
}

// Len returns the length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Z*v.Z)
}

// PathLength returns the summed planar length of consecutive segments.
func PathLength(path []Point3) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i-1].DistXZ(path[i])
	}
	return total
}
