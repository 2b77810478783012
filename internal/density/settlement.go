package density

import (
	"sort"

	"github.com/google/uuid"

	"github.com/talgya/roadplan/internal/geom"
)

// DensityClass bands an emergent settlement by its density score.
type DensityClass uint8

const (
	ClassRural DensityClass = iota
	ClassSuburban
	ClassUrban
	ClassUrbanCore
)

// DensityClassName returns a human-readable name for a class.
func DensityClassName(c DensityClass) string {
	switch c {
	case ClassUrbanCore:
		return "urban_core"
	case ClassUrban:
		return "urban"
	case ClassSuburban:
		return "suburban"
	case ClassRural:
		return "rural"
	default:
		return "unknown"
	}
}

// Settlement is an emergent settlement inferred from network density.
type Settlement struct {
	ID           uuid.UUID    `json:"id"`
	Center       geom.Point3  `json:"center"`
	Radius       float64      `json:"radius"`
	DensityScore float64      `json:"density_score"`
	Class        DensityClass `json:"class"`
}

// Thresholds are the classification bands, descending. A local maximum
// below Rural is not a settlement at all.
type Thresholds struct {
	UrbanCore float64
	Urban     float64
	Suburban  float64
	Rural     float64
}

// classRadii is the fixed footprint per class, looked up rather than measured.
var classRadii = map[DensityClass]float64{
	ClassUrbanCore: 400,
	ClassUrban:     280,
	ClassSuburban:  180,
	ClassRural:     100,
}

// classify maps a score to its band.
func (t Thresholds) classify(score float64) (DensityClass, bool) {
	switch {
	case score >= t.UrbanCore:
		return ClassUrbanCore, true
	case score >= t.Urban:
		return ClassUrban, true
	case score >= t.Suburban:
		return ClassSuburban, true
	case score >= t.Rural:
		return ClassRural, true
	default:
		return 0, false
	}
}

// ExtractSettlements finds grid cells that are local maxima (score at
// least every present 8-neighbor's and above the lowest band) and
// turns each into a settlement. Results are ordered by descending score,
// ties broken by cell coordinate for reproducibility.
func (g *Grid) ExtractSettlements(t Thresholds) []Settlement {
	var maxima []CellCoord
	for coord, cell := range g.Cells {
		if cell.Score < t.Rural {
			continue
		}
		isMax := true
		for _, off := range neighborOffsets {
			neighbor, ok := g.Cells[CellCoord{coord.X + off.X, coord.Z + off.Z}]
			if ok && neighbor.Score > cell.Score {
				isMax = false
				break
			}
		}
		if isMax {
			maxima = append(maxima, coord)
		}
	}

	sort.Slice(maxima, func(i, j int) bool {
		si, sj := g.Cells[maxima[i]].Score, g.Cells[maxima[j]].Score
		if si != sj {
			return si > sj
		}
		if maxima[i].X != maxima[j].X {
			return maxima[i].X < maxima[j].X
		}
		return maxima[i].Z < maxima[j].Z
	})

	settlements := make([]Settlement, 0, len(maxima))
	for _, coord := range maxima {
		score := g.Cells[coord].Score
		class, ok := t.classify(score)
		if !ok {
			continue
		}
		settlements = append(settlements, Settlement{
			ID:           uuid.New(),
			Center:       g.Center(coord),
			Radius:       classRadii[class],
			DensityScore: score,
			Class:        class,
		})
	}
	return settlements
}
