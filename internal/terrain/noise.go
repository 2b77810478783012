package terrain

import (
	"math"
	"math/rand"
	"sync"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseConfig holds parameters for the noise-based terrain oracle.
type NoiseConfig struct {
	Seed      int64   // Random seed (0 = random)
	Size      float64 // Side length of the square terrain, centered on origin
	MaxHeight float64 // Peak elevation in world units
	SeaLevel  float64 // Water surface elevation in world units
	Octaves   int     // Noise octaves
	Frequency float64 // Base noise frequency (per world unit)
}

// DefaultNoiseConfig returns a reasonable starting configuration:
// a 4 km map with moderate relief and roughly a quarter underwater.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Seed:      0,
		Size:      4000,
		MaxHeight: 220,
		SeaLevel:  55,
		Octaves:   4,
		Frequency: 0.0012,
	}
}

// NoiseOracle is an Oracle backed by layered simplex noise with a
// continental edge falloff so the map border trails into ocean.
type NoiseOracle struct {
	cfg   NoiseConfig
	noise opensimplex.Noise

	mu    sync.Mutex
	cache map[[2]int32]float64
}

// NewNoiseOracle creates a terrain oracle from the given configuration.
func NewNoiseOracle(cfg NoiseConfig) *NoiseOracle {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return &NoiseOracle{
		cfg:   cfg,
		noise: opensimplex.NewNormalized(seed),
		cache: make(map[[2]int32]float64),
	}
}

// Elevation returns terrain height at (x, z). Results are memoized per
// integer world coordinate since the planner resamples the same corridor
// cells repeatedly.
func (o *NoiseOracle) Elevation(x, z float64) float64 {
	key := [2]int32{int32(math.Floor(x)), int32(math.Floor(z))}

	o.mu.Lock()
	if v, ok := o.cache[key]; ok {
		o.mu.Unlock()
		return v
	}
	o.mu.Unlock()

	v := o.sample(x, z)

	o.mu.Lock()
	o.cache[key] = v
	o.mu.Unlock()
	return v
}

// sample computes raw elevation without the memo.
func (o *NoiseOracle) sample(x, z float64) float64 {
	elev := o.octaveNoise(x, z)

	// Continental shaping: reduce elevation toward the map edge so the
	// border is ocean rather than a cliff.
	half := o.cfg.Size / 2
	distFromCenter := math.Sqrt(x*x+z*z) / half
	edgeFalloff := 1.0 - math.Pow(distFromCenter, 3.5)
	if edgeFalloff < 0 {
		edgeFalloff = 0
	}

	return elev * edgeFalloff * o.cfg.MaxHeight
}

// octaveNoise layers multiple noise frequencies for natural relief.
func (o *NoiseOracle) octaveNoise(x, z float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	frequency := o.cfg.Frequency

	for i := 0; i < o.cfg.Octaves; i++ {
		total += o.noise.Eval2(x*frequency, z*frequency) * amplitude
		maxVal += amplitude
		amplitude *= 0.5
		frequency *= 2
	}

	return total / maxVal
}

// Slope estimates the gradient at (x, z) in degrees by central differences.
func (o *NoiseOracle) Slope(x, z float64) float64 {
	const h = 4.0
	dx := (o.Elevation(x+h, z) - o.Elevation(x-h, z)) / (2 * h)
	dz := (o.Elevation(x, z+h) - o.Elevation(x, z-h)) / (2 * h)
	grad := math.Sqrt(dx*dx + dz*dz)
	return math.Atan(grad) * 180 / math.Pi
}

// SeaLevel returns the water surface elevation.
func (o *NoiseOracle) SeaLevel() float64 {
	return o.cfg.SeaLevel
}

// Size returns the terrain side length.
func (o *NoiseOracle) Size() float64 {
	return o.cfg.Size
}
