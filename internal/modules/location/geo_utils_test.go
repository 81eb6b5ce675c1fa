package location

import (
	"math"
	"testing"

	"campusride/internal/types"
)

func TestStraightLineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      types.Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         types.Point{Lat: 37.4600, Lng: 126.9525},
			b:         types.Point{Lat: 37.4600, Lng: 126.9525},
			wantKm:    0,
			tolerance: 0.0001,
		},
		{
			name:      "Gwanak to Seoul Station (~10.6km)",
			a:         types.Point{Lat: 37.4600, Lng: 126.9525},
			b:         types.Point{Lat: 37.5547, Lng: 126.9707},
			wantKm:    10.6,
			tolerance: 1.0,
		},
		{
			name:      "New York to Los Angeles (~3944km)",
			a:         types.Point{Lat: 40.7128, Lng: -74.0060},
			b:         types.Point{Lat: 34.0522, Lng: -118.2437},
			wantKm:    3944,
			tolerance: 50,
		},
		{
			name:      "one degree of latitude (~111.2km)",
			a:         types.Point{Lat: 0, Lng: 0},
			b:         types.Point{Lat: 1, Lng: 0},
			wantKm:    111.2,
			tolerance: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StraightLineKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("StraightLineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestStraightLineKm_Identity(t *testing.T) {
	points := []types.Point{
		{Lat: 0, Lng: 0},
		{Lat: 37.46, Lng: 126.95},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 89.9, Lng: -179.9},
	}
	for _, p := range points {
		if d := StraightLineKm(p, p); d != 0 {
			t.Errorf("StraightLineKm(%v, %v) = %f, want 0", p, p, d)
		}
	}
}

func TestStraightLineKm_Symmetry(t *testing.T) {
	pairs := [][2]types.Point{
		{{Lat: 25.0, Lng: 121.0}, {Lat: 26.0, Lng: 122.0}},
		{{Lat: -12.0, Lng: 44.5}, {Lat: 3.2, Lng: -7.9}},
		{{Lat: 37.46, Lng: 126.95}, {Lat: 37.48, Lng: 126.97}},
	}
	for _, pair := range pairs {
		d1 := StraightLineKm(pair[0], pair[1])
		d2 := StraightLineKm(pair[1], pair[0])
		if math.Abs(d1-d2) > 1e-9 {
			t.Errorf("not symmetric for %v: %f vs %f", pair, d1, d2)
		}
	}
}

func TestDegreesToRadians(t *testing.T) {
	tests := []struct {
		deg  float64
		want float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-180, -math.Pi},
		{360, 2 * math.Pi},
	}
	for _, tt := range tests {
		if got := DegreesToRadians(tt.deg); got != tt.want {
			t.Errorf("DegreesToRadians(%f) = %f, want %f", tt.deg, got, tt.want)
		}
	}
}
