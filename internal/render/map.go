// Package render draws a finished plan as a PNG overview map: terrain
// shading, roads stroked by tier, exclusion zones, and emergent
// settlement markers.
package render

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/talgya/roadplan/internal/density"
	"github.com/talgya/roadplan/internal/roadnet"
	"github.com/talgya/roadplan/internal/terrain"
)

// ColourScheme maps plan features to colors.
type ColourScheme struct {
	Water       color.Color
	LandLow     color.Color
	LandHigh    color.Color
	Roads       map[roadnet.RoadType]color.Color
	Settlements map[density.DensityClass]color.Color
	Exclusion   color.Color
}

// DefaultColourScheme returns the standard map palette.
func DefaultColourScheme() *ColourScheme {
	return &ColourScheme{
		Water:    colornames.Steelblue,
		LandLow:  colornames.Darkseagreen,
		LandHigh: colornames.Wheat,
		Roads: map[roadnet.RoadType]color.Color{
			roadnet.RoadHighway:    colornames.Black,
			roadnet.RoadArterial:   colornames.Dimgray,
			roadnet.RoadLane:       colornames.Gray,
			roadnet.RoadSettlement: colornames.Darkgray,
			roadnet.RoadBranch:     colornames.Darkgray,
		},
		Settlements: map[density.DensityClass]color.Color{
			density.ClassUrbanCore: colornames.Crimson,
			density.ClassUrban:     colornames.Orangered,
			density.ClassSuburban:  colornames.Orange,
			density.ClassRural:     colornames.Gold,
		},
		Exclusion: colornames.Lightblue,
	}
}

// Renderer draws plans over a terrain oracle.
type Renderer struct {
	oracle terrain.Oracle
	pixels int // output image side length
	scheme *ColourScheme
}

// NewRenderer creates a renderer producing square images of the given
// pixel size.
func NewRenderer(oracle terrain.Oracle, pixels int, scheme *ColourScheme) *Renderer {
	if scheme == nil {
		scheme = DefaultColourScheme()
	}
	return &Renderer{oracle: oracle, pixels: pixels, scheme: scheme}
}

// worldToImage maps world XZ to image coordinates.
func (r *Renderer) worldToImage(x, z float64) (float64, float64) {
	scale := float64(r.pixels) / r.oracle.Size()
	half := r.oracle.Size() / 2
	return (x + half) * scale, (z + half) * scale
}

// SavePNG renders the plan and writes it to the given path.
func (r *Renderer) SavePNG(plan *roadnet.Plan, fpath string) error {
	ctx := gg.NewContext(r.pixels, r.pixels)

	r.drawTerrain(ctx)
	r.drawExclusionZones(ctx, plan.ExclusionZones)
	r.drawRoads(ctx, plan.Roads)
	r.drawSettlements(ctx, plan.Settlements)

	if err := ctx.SavePNG(fpath); err != nil {
		return fmt.Errorf("save map %s: %w", fpath, err)
	}
	return nil
}

// drawTerrain shades each pixel by elevation: water, then a low→high
// land gradient.
func (r *Renderer) drawTerrain(ctx *gg.Context) {
	sea := r.oracle.SeaLevel()
	size := r.oracle.Size()
	half := size / 2

	lowR, lowG, lowB, _ := r.scheme.LandLow.RGBA()
	highR, highG, highB, _ := r.scheme.LandHigh.RGBA()

	for py := 0; py < r.pixels; py++ {
		for px := 0; px < r.pixels; px++ {
			x := float64(px)/float64(r.pixels)*size - half
			z := float64(py)/float64(r.pixels)*size - half
			elev := r.oracle.Elevation(x, z)
			if elev < sea {
				ctx.SetColor(r.scheme.Water)
			} else {
				// Blend low→high over 150 units of relief above sea.
				t := (elev - sea) / 150
				if t > 1 {
					t = 1
				}
				ctx.SetRGB255(
					int(lerp(float64(lowR>>8), float64(highR>>8), t)),
					int(lerp(float64(lowG>>8), float64(highG>>8), t)),
					int(lerp(float64(lowB>>8), float64(highB>>8), t)),
				)
			}
			ctx.SetPixel(px, py)
		}
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func (r *Renderer) drawRoads(ctx *gg.Context, roads []*roadnet.Road) {
	scale := float64(r.pixels) / r.oracle.Size()

	for _, road := range roads {
		if len(road.Path) < 2 {
			continue
		}
		c, ok := r.scheme.Roads[road.Type]
		if !ok {
			c = colornames.Black
		}
		ctx.SetColor(c)
		ctx.SetLineWidth(road.Width * scale)

		x0, y0 := r.worldToImage(road.Path[0].X, road.Path[0].Z)
		ctx.MoveTo(x0, y0)
		for _, p := range road.Path[1:] {
			x, y := r.worldToImage(p.X, p.Z)
			ctx.LineTo(x, y)
		}
		ctx.Stroke()
	}
}

func (r *Renderer) drawExclusionZones(ctx *gg.Context, zones []roadnet.ExclusionZone) {
	scale := float64(r.pixels) / r.oracle.Size()
	ctx.SetColor(r.scheme.Exclusion)
	for _, z := range zones {
		x, y := r.worldToImage(z.Center.X, z.Center.Z)
		ctx.DrawCircle(x, y, z.Radius*scale)
		ctx.Fill()
	}
}

func (r *Renderer) drawSettlements(ctx *gg.Context, settlements []density.Settlement) {
	scale := float64(r.pixels) / r.oracle.Size()
	for _, s := range settlements {
		c, ok := r.scheme.Settlements[s.Class]
		if !ok {
			c = colornames.Gold
		}
		x, y := r.worldToImage(s.Center.X, s.Center.Z)

		ctx.SetColor(c)
		ctx.SetLineWidth(2)
		ctx.DrawCircle(x, y, s.Radius*scale)
		ctx.Stroke()
		ctx.DrawCircle(x, y, 3)
		ctx.Fill()
	}
}
