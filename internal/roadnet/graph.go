package roadnet

import (
	"sort"

	"github.com/talgya/roadplan/internal/geom"
)

// Edge is a candidate corridor between two destinations. Identity is the
// unordered index pair (FromIdx, ToIdx) with FromIdx < ToIdx.
type Edge struct {
	FromIdx          int
	ToIdx            int
	From             geom.Point3
	To               geom.Point3
	LandDistance     float64
	WaterDistance    float64
	EconomicCost     float64
	TrafficDemand    float64
	PopulationServed int
}

// pairKey returns the canonical unordered identity of the edge.
func (e Edge) pairKey() [2]int {
	if e.FromIdx < e.ToIdx {
		return [2]int{e.FromIdx, e.ToIdx}
	}
	return [2]int{e.ToIdx, e.FromIdx}
}

// EdgeWeight selects the weight used to order edges: raw distance for
// the topology-only mode, economic cost for the cost-aware mode.
type EdgeWeight func(Edge) float64

// WeightByDistance orders edges by straight-line distance.
func WeightByDistance(e Edge) float64 {
	return e.From.DistXZ(e.To)
}

// WeightByEconomicCost orders edges by bridge-adjusted cost.
func WeightByEconomicCost(e Edge) float64 {
	return e.EconomicCost
}

// CompleteEdges builds the full O(n²) candidate set between destinations,
// pricing each pair with the cost model. Population served is the sum of
// both endpoints.
func CompleteEdges(dests []Destination, costs *CostModel) []Edge {
	var edges []Edge
	for i := 0; i < len(dests); i++ {
		for j := i + 1; j < len(dests); j++ {
			ci := costs.EdgeCost(dests[i].Position, dests[j].Position)
			edges = append(edges, Edge{
				FromIdx:          i,
				ToIdx:            j,
				From:             dests[i].Position,
				To:               dests[j].Position,
				LandDistance:     ci.LandDistance,
				WaterDistance:    ci.WaterDistance,
				EconomicCost:     ci.EconomicCost,
				PopulationServed: dests[i].Population + dests[j].Population,
			})
		}
	}
	return edges
}

// unionFind is a disjoint-set structure with path compression.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]] // halve the path
		x = u.parent[x]
	}
	return x
}

// union merges the sets of a and b. Returns false if already joined.
func (u *unionFind) union(a, b int) bool {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return false
	}
	u.parent[ra] = rb
	return true
}

// sortEdges orders edges ascending by weight with a stable tie-break on
// the destination index pair so output is reproducible.
func sortEdges(edges []Edge, weight EdgeWeight) {
	sort.Slice(edges, func(i, j int) bool {
		wi, wj := weight(edges[i]), weight(edges[j])
		if wi != wj {
			return wi < wj
		}
		ki, kj := edges[i].pairKey(), edges[j].pairKey()
		if ki[0] != kj[0] {
			return ki[0] < kj[0]
		}
		return ki[1] < kj[1]
	})
}

// BuildMST runs Kruskal's algorithm over the candidate edges and returns
// the minimum spanning tree edges in ascending weight order. For a
// complete graph over n destinations the result always has n−1 edges.
func BuildMST(n int, edges []Edge, weight EdgeWeight) []Edge {
	if n < 2 || len(edges) == 0 {
		return nil
	}

	sorted := make([]Edge, len(edges))
	copy(sorted, edges)
	sortEdges(sorted, weight)

	uf := newUnionFind(n)
	mst := make([]Edge, 0, n-1)
	for _, e := range sorted {
		if uf.union(e.FromIdx, e.ToIdx) {
			mst = append(mst, e)
			if len(mst) == n-1 {
				break
			}
		}
	}
	return mst
}

// AddLoopEdges appends the cheapest non-tree edges to the MST until the
// result reaches target edges, producing the loop redundancy real road
// networks have. Edges already in the tree (by unordered index pair) are
// never re-added.
func AddLoopEdges(mst, all []Edge, target int, weight EdgeWeight) []Edge {
	out := make([]Edge, len(mst))
	copy(out, mst)
	if len(out) >= target {
		return out
	}

	present := make(map[[2]int]bool, len(mst))
	for _, e := range mst {
		present[e.pairKey()] = true
	}

	rest := make([]Edge, 0, len(all))
	for _, e := range all {
		if !present[e.pairKey()] {
			rest = append(rest, e)
		}
	}
	sortEdges(rest, weight)

	for _, e := range rest {
		if len(out) >= target {
			break
		}
		key := e.pairKey()
		if present[key] {
			continue
		}
		present[key] = true
		out = append(out, e)
	}
	return out
}

// LoopTarget returns the configured final corridor count for an MST of
// the given size.
func LoopTarget(mstSize int, factor float64) int {
	return int(float64(mstSize) * factor)
}
