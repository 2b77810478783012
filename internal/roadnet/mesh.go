package roadnet

import (
	"github.com/talgya/roadplan/internal/geom"
	"github.com/talgya/roadplan/internal/terrain"
)

// RibbonMesh is the renderable strip geometry of one road. Vertices come
// in left/right pairs per path point; every segment contributes one quad
// (two triangles).
type RibbonMesh struct {
	Vertices []geom.Point3
	UVs      [][2]float64
	Indices  []int
}

// minSegmentLength filters degenerate path segments before meshing.
const minSegmentLength = 0.01

// BuildRibbonMesh extrudes a path into a strip of the given width. Edge
// vertices re-sample terrain elevation at their own positions rather
// than reusing the centerline, so the ribbon follows cross-slope
// terrain. The UV V coordinate accumulates with distance traveled for
// consistent texture tiling across segments.
func BuildRibbonMesh(oracle terrain.Oracle, path []geom.Point3, width float64, verticalOffset float64) *RibbonMesh {
	pts := dropDegenerate(path)
	if len(pts) < 2 {
		return nil
	}

	mesh := &RibbonMesh{}
	half := width / 2
	traveled := 0.0

	for i, p := range pts {
		// Direction at a point: into the next segment, or out of the
		// previous one at the path end.
		var dir geom.Vec2
		if i < len(pts)-1 {
			dir = geom.DirectionXZ(p, pts[i+1])
		} else {
			dir = geom.DirectionXZ(pts[i-1], p)
		}
		perp := dir.Perp()

		if i > 0 {
			traveled += pts[i-1].DistXZ(p)
		}

		left := geom.Point3{X: p.X + perp.X*half, Z: p.Z + perp.Z*half}
		right := geom.Point3{X: p.X - perp.X*half, Z: p.Z - perp.Z*half}
		left.Y = oracle.Elevation(left.X, left.Z) + verticalOffset
		right.Y = oracle.Elevation(right.X, right.Z) + verticalOffset

		mesh.Vertices = append(mesh.Vertices, left, right)
		mesh.UVs = append(mesh.UVs, [2]float64{0, traveled / width}, [2]float64{1, traveled / width})
	}

	// Two triangles per quad between consecutive vertex pairs.
	for i := 0; i+3 < len(mesh.Vertices); i += 2 {
		mesh.Indices = append(mesh.Indices,
			i, i+1, i+2,
			i+1, i+3, i+2,
		)
	}
	return mesh
}

// dropDegenerate removes consecutive points closer than the minimum
// segment length so quads never collapse.
func dropDegenerate(path []geom.Point3) []geom.Point3 {
	if len(path) == 0 {
		return nil
	}
	out := []geom.Point3{path[0]}
	for _, p := range path[1:] {
		if out[len(out)-1].DistXZ(p) >= minSegmentLength {
			out = append(out, p)
		}
	}
	return out
}
