// Package density infers settlement structure from road-network
// topology alone: roads and their intersections are rasterized into a
// uniform grid, the field is smoothed, and local maxima become emergent
// settlement centers.
package density

import (
	"math"

	"github.com/talgya/roadplan/internal/geom"
)

// CellCoord keys a grid cell: floor(x/cellSize), floor(z/cellSize).
type CellCoord struct {
	X int
	Z int
}

// Cell accumulates road contributions. Scored once after rasterization,
// then smoothed in place; read-only during settlement extraction.
type Cell struct {
	RoadCount         int
	IntersectionCount int
	Score             float64
}

// Grid is the spatial density field. Single writer: rasterize
// everything, then score, then smooth, then read.
type Grid struct {
	CellSize float64
	Cells    map[CellCoord]*Cell
}

// NewGrid creates an empty grid with the given cell size.
func NewGrid(cellSize float64) *Grid {
	return &Grid{
		CellSize: cellSize,
		Cells:    make(map[CellCoord]*Cell),
	}
}

// coordAt maps a world position to its cell coordinate.
func (g *Grid) coordAt(p geom.Point3) CellCoord {
	return CellCoord{
		X: int(math.Floor(p.X / g.CellSize)),
		Z: int(math.Floor(p.Z / g.CellSize)),
	}
}

// cellAt returns the cell for a coordinate, creating it on first touch.
func (g *Grid) cellAt(c CellCoord) *Cell {
	cell, ok := g.Cells[c]
	if !ok {
		cell = &Cell{}
		g.Cells[c] = cell
	}
	return cell
}

// AddPath rasterizes one road path: every consecutive point pair is
// walked in cell-size steps and each touched cell's road count is
// incremented. Cells are deduplicated per segment so one traversal never
// double-counts a cell.
func (g *Grid) AddPath(path []geom.Point3) {
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		segLen := a.DistXZ(b)

		touched := map[CellCoord]bool{g.coordAt(a): true}
		steps := int(segLen/g.CellSize) + 1
		for s := 1; s <= steps; s++ {
			touched[g.coordAt(a.Lerp(b, float64(s)/float64(steps)))] = true
		}

		for c := range touched {
			g.cellAt(c).RoadCount++
		}
	}
}

// AddIntersections detects intersections by pairwise endpoint proximity
// rather than true segment crossings, so interior crossings between long
// segments go uncounted. It increments the touched cells' intersection
// counts.
func (g *Grid) AddIntersections(endpoints []geom.Point3, radius float64) {
	for i := 0; i < len(endpoints); i++ {
		for j := i + 1; j < len(endpoints); j++ {
			if endpoints[i].DistXZ(endpoints[j]) >= radius {
				continue
			}
			mid := endpoints[i].Lerp(endpoints[j], 0.5)
			g.cellAt(g.coordAt(mid)).IntersectionCount++
		}
	}
}

// Score computes every cell's density score from its counts.
// Intersections weigh five times as much as plain road coverage.
func (g *Grid) Score() {
	for _, cell := range g.Cells {
		cell.Score = float64(cell.RoadCount)*1.0 + float64(cell.IntersectionCount)*5.0
	}
}

// neighborOffsets is the 8-neighborhood around a cell.
var neighborOffsets = [8]CellCoord{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Smooth box-filters the score field the given number of iterations.
// Each cell becomes the mean of itself and its present 8-neighbors;
// absent cells are excluded from the average, not treated as zero. Each
// iteration computes into a separate buffer before committing, so the
// result is independent of map iteration order, and the key set never
// changes.
func (g *Grid) Smooth(iterations int) {
	for it := 0; it < iterations; it++ {
		next := make(map[CellCoord]float64, len(g.Cells))
		for coord, cell := range g.Cells {
			sum := cell.Score
			n := 1
			for _, off := range neighborOffsets {
				neighbor, ok := g.Cells[CellCoord{coord.X + off.X, coord.Z + off.Z}]
				if !ok {
					continue
				}
				sum += neighbor.Score
				n++
			}
			next[coord] = sum / float64(n)
		}
		for coord, score := range next {
			g.Cells[coord].Score = score
		}
	}
}

// Center returns the world-space center of a cell.
func (g *Grid) Center(c CellCoord) geom.Point3 {
	return geom.Point3{
		X: (float64(c.X) + 0.5) * g.CellSize,
		Z: (float64(c.Z) + 0.5) * g.CellSize,
	}
}
