package geom

import (
	"math"
	"testing"
)

func TestDistXZIgnoresElevation(t *testing.T) {
	a := Point3{X: 0, Y: 100, Z: 0}
	b := Point3{X: 3, Y: -50, Z: 4}
	if got := a.DistXZ(b); math.Abs(got-5) > 1e-9 {
		t.Errorf("DistXZ = %v, want 5", got)
	}
	if got := a.Dist(b); got <= 5 {
		t.Errorf("Dist = %v, want > 5 (elevation included)", got)
	}
}

func TestDirectionXZ(t *testing.T) {
	tests := []struct {
		name string
		a, b Point3
		want Vec2
	}{
		{"East", Point3{}, Point3{X: 10}, Vec2{1, 0}},
		{"North", Point3{}, Point3{Z: -2}, Vec2{0, -1}},
		{"Coincident", Point3{X: 5, Z: 5}, Point3{X: 5, Y: 99, Z: 5}, Vec2{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DirectionXZ(tt.a, tt.b)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Z-tt.want.Z) > 1e-9 {
				t.Errorf("DirectionXZ = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPerpIsOrthogonal(t *testing.T) {
	v := Vec2{X: 0.6, Z: 0.8}
	p := v.Perp()
	if dot := v.X*p.X + v.Z*p.Z; math.Abs(dot) > 1e-12 {
		t.Errorf("dot(v, perp) = %v, want 0", dot)
	}
	if math.Abs(p.Len()-1) > 1e-12 {
		t.Errorf("perp length = %v, want 1", p.Len())
	}
}

func TestRotateFullCircle(t *testing.T) {
	v := Vec2{X: 1, Z: 0}
	got := v.Rotate(2 * math.Pi)
	if math.Abs(got.X-1) > 1e-9 || math.Abs(got.Z) > 1e-9 {
		t.Errorf("Rotate(2π) = %+v, want identity", got)
	}
}

func TestPathLength(t *testing.T) {
	path := []Point3{{X: 0}, {X: 100}, {X: 100, Z: 50}}
	if got := PathLength(path); math.Abs(got-150) > 1e-9 {
		t.Errorf("PathLength = %v, want 150", got)
	}
	if got := PathLength(path[:1]); got != 0 {
		t.Errorf("single-point path length = %v, want 0", got)
	}
}
