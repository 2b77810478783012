package roadnet

// AreParallel reports whether two roads serve the same corridor: their
// endpoints match within threshold either way around (the same pair of
// places connected in either direction).
func AreParallel(a, b *Road, threshold float64) bool {
	if len(a.Path) == 0 || len(b.Path) == 0 {
		return false
	}
	sameWay := a.From.DistXZ(b.From) < threshold && a.To.DistXZ(b.To) < threshold
	reversed := a.From.DistXZ(b.To) < threshold && a.To.DistXZ(b.From) < threshold
	return sameWay || reversed
}

// Consolidate merges near-parallel routes in a single forward pass,
// keeping whichever road of each parallel pair carries higher demand.
// Idempotent: consolidated output has no parallel pairs left to merge.
func Consolidate(roads []*Road, threshold float64) []*Road {
	merged := make([]bool, len(roads))
	var out []*Road

	for i, road := range roads {
		if merged[i] {
			continue
		}
		best := road
		for j := i + 1; j < len(roads); j++ {
			if merged[j] {
				continue
			}
			if !AreParallel(best, roads[j], threshold) {
				continue
			}
			merged[j] = true
			if roads[j].Demand > best.Demand {
				best = roads[j]
			}
		}
		out = append(out, best)
	}
	return out
}

// Prune removes low-value roads: value is demand per unit length, scaled
// ×100. Top-tier roads (highways) are always retained regardless of
// value, and branch roads carry no demand figure so the value metric
// does not apply to them; they were already gated by terrain and
// snapping when grown. Run after Consolidate so pruning sees the
// surviving higher-demand road of each merged pair.
func Prune(roads []*Road, minValue float64) []*Road {
	var out []*Road
	for _, road := range roads {
		if road.Type == RoadHighway || road.Type == RoadBranch {
			out = append(out, road)
			continue
		}
		length := road.Length()
		if length <= 0 {
			continue
		}
		if road.Demand*100/length >= minValue {
			out = append(out, road)
		}
	}
	return out
}
