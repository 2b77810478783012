package terrain

import (
	"container/heap"
	"math"

	"github.com/talgya/roadplan/internal/geom"
)

// GridPathFinder is a PathFinder running A* over a lazily sampled grid of
// the oracle. Moving uphill or downhill costs extra, water cells are
// impassable unless bridges are allowed, and bridge cells carry a cost
// multiplier so paths hug the shore where possible.
type GridPathFinder struct {
	oracle Oracle

	// SlopeWeight scales the penalty per degree of slope at a cell.
	SlopeWeight float64
	// BridgeWeight multiplies the step cost across water cells.
	BridgeWeight float64
	// MaxExpansions caps the search so degenerate requests terminate.
	MaxExpansions int
}

// NewGridPathFinder creates a pathfinder with the default weights.
func NewGridPathFinder(oracle Oracle) *GridPathFinder {
	return &GridPathFinder{
		oracle:        oracle,
		SlopeWeight:   0.08,
		BridgeWeight:  4.0,
		MaxExpansions: 20000,
	}
}

type gridCell struct {
	gx, gz int
}

type searchNode struct {
	cell  gridCell
	gCost float64
	fCost float64
	index int
}

type nodeHeap []*searchNode

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].fCost < h[j].fCost }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any) { n := x.(*searchNode); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*h = old[:len(old)-1]
	return n
}

var gridDirections = [8]gridCell{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// FindPath runs A* from `from` to `to` on a grid of the requested
// resolution. Returns fewer than 2 points when no path exists within
// MaxExpansions, which callers treat as "no path found".
func (p *GridPathFinder) FindPath(from, to geom.Point3, opts PathOptions) []geom.Point3 {
	res := opts.GridResolution
	if res <= 0 {
		res = 20
	}

	start := p.toCell(from, res)
	goal := p.toCell(to, res)
	if start == goal {
		return nil
	}

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, &searchNode{cell: start, fCost: p.heuristic(start, goal, res)})

	cameFrom := make(map[gridCell]gridCell)
	gCosts := map[gridCell]float64{start: 0}
	closed := make(map[gridCell]bool)

	expansions := 0
	for open.Len() > 0 {
		expansions++
		if expansions > p.MaxExpansions {
			return nil
		}

		current := heap.Pop(open).(*searchNode)
		if current.cell == goal {
			return p.reconstruct(cameFrom, goal, res)
		}
		if closed[current.cell] {
			continue
		}
		closed[current.cell] = true

		for _, d := range gridDirections {
			next := gridCell{current.cell.gx + d.gx, current.cell.gz + d.gz}
			if closed[next] {
				continue
			}
			stepCost, passable := p.stepCost(current.cell, next, res, opts.AllowBridges)
			if !passable {
				continue
			}
			tentative := gCosts[current.cell] + stepCost
			if prev, seen := gCosts[next]; seen && tentative >= prev {
				continue
			}
			gCosts[next] = tentative
			cameFrom[next] = current.cell
			heap.Push(open, &searchNode{
				cell:  next,
				gCost: tentative,
				fCost: tentative + p.heuristic(next, goal, res),
			})
		}
	}

	return nil
}

// stepCost returns the cost of moving between adjacent cells, or
// passable=false when the destination is blocked.
func (p *GridPathFinder) stepCost(from, to gridCell, res float64, allowBridges bool) (float64, bool) {
	x, z := float64(to.gx)*res, float64(to.gz)*res
	elev := p.oracle.Elevation(x, z)
	water := elev < p.oracle.SeaLevel()
	if water && !allowBridges {
		return 0, false
	}

	dist := res
	if from.gx != to.gx && from.gz != to.gz {
		dist = res * math.Sqrt2
	}

	cost := dist
	if water {
		cost *= p.BridgeWeight
	} else {
		cost += dist * p.SlopeWeight * p.oracle.Slope(x, z)
	}
	return cost, true
}

func (p *GridPathFinder) heuristic(a, b gridCell, res float64) float64 {
	dx := float64(a.gx-b.gx) * res
	dz := float64(a.gz-b.gz) * res
	return math.Sqrt(dx*dx + dz*dz)
}

func (p *GridPathFinder) toCell(pt geom.Point3, res float64) gridCell {
	return gridCell{
		gx: int(math.Round(pt.X / res)),
		gz: int(math.Round(pt.Z / res)),
	}
}

// reconstruct walks the parent chain back from goal and resolves each
// point's elevation against the oracle.
func (p *GridPathFinder) reconstruct(cameFrom map[gridCell]gridCell, goal gridCell, res float64) []geom.Point3 {
	cells := []gridCell{goal}
	for c := goal; ; {
		parent, ok := cameFrom[c]
		if !ok {
			break
		}
		cells = append(cells, parent)
		c = parent
	}

	path := make([]geom.Point3, 0, len(cells))
	for i := len(cells) - 1; i >= 0; i-- {
		x := float64(cells[i].gx) * res
		z := float64(cells[i].gz) * res
		path = append(path, geom.Point3{X: x, Y: p.oracle.Elevation(x, z), Z: z})
	}
	return path
}
