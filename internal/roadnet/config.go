package roadnet

// Config holds all road planning parameters. Zero values are not usable;
// start from DefaultConfig and override.
type Config struct {
	Seed int64 // Random seed for branch generation and destination sampling

	// Cost model.
	BridgeMultiplier    float64 // Economic cost per water unit vs land unit
	MinPopulationBridge int     // Minimum population served to justify any water crossing
	MaxCostPerCapita    float64 // Economic cost ceiling per person served
	CostSamples         int     // Elevation samples per candidate edge

	// Corridor selection.
	LoopFactor    float64 // Final edge count as a multiple of MST size
	DecayDistance float64 // Demand distance normalization
	CorridorCap   int     // Corridor candidates per destination (cap = this × n)

	// Path realization.
	MinGridResolution float64 // Finest pathfinder grid spacing
	MaxGridResolution float64 // Coarsest pathfinder grid spacing
	ResolutionFactor  float64 // Grid spacing per unit of corridor length
	VerticalOffset    float64 // Lift above terrain so roads do not z-fight

	// Road widths by tier.
	HighwayWidth  float64
	ArterialWidth float64
	LaneWidth     float64

	// Consolidation and pruning.
	MergeDistance float64 // Endpoint proximity for parallel-route merging
	MinRoadValue  float64 // Demand-per-length floor below which roads are pruned

	// Branching.
	BranchInterval    float64 // Base spacing of branch points along trunk roads
	BranchProbability float64 // Gate at each branch point
	MaxBranchDepth    int     // Branch recursion cap
	BranchLength      float64 // Base branch length at depth 0
	BranchAngleVar    float64 // Direction variance window in radians
	SnapRadius        float64 // Endpoint snapping distance for T-junctions
	MinSnapDistance   float64 // Below this, a snap target is degenerate-close
	BranchWidthStep   float64 // Width decrement per depth
	MinBranchWidth    float64 // Width floor
	BoundaryMargin    float64 // No branch endpoints within this of the map edge

	// Density analysis.
	DensityCellSize    float64
	IntersectionRadius float64 // Endpoint proximity counted as an intersection
	SmoothIterations   int
	UrbanCoreThreshold float64
	UrbanThreshold     float64
	SuburbanThreshold  float64
	RuralThreshold     float64
}

// DefaultConfig returns the planning defaults tuned for a ~4 km map.
func DefaultConfig() Config {
	return Config{
		Seed: 0,

		BridgeMultiplier:    8.0,
		MinPopulationBridge: 200,
		MaxCostPerCapita:    25.0,
		CostSamples:         24,

		LoopFactor:    2.5,
		DecayDistance: 500,
		CorridorCap:   3,

		MinGridResolution: 10,
		MaxGridResolution: 60,
		ResolutionFactor:  0.025,
		VerticalOffset:    0.3,

		HighwayWidth:  12,
		ArterialWidth: 8,
		LaneWidth:     5,

		MergeDistance: 60,
		MinRoadValue:  0.4,

		BranchInterval:    300,
		BranchProbability: 0.6,
		MaxBranchDepth:    3,
		BranchLength:      220,
		BranchAngleVar:    0.5,
		SnapRadius:        80,
		MinSnapDistance:   15,
		BranchWidthStep:   1.5,
		MinBranchWidth:    3,
		BoundaryMargin:    100,

		DensityCellSize:    120,
		IntersectionRadius: 40,
		SmoothIterations:   2,
		UrbanCoreThreshold: 12,
		UrbanThreshold:     7,
		SuburbanThreshold:  4,
		RuralThreshold:     2,
	}
}
