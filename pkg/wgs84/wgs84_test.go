package wgs84

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name             string
		a, b             Coordinate
		wantMeters       float64
		tolerancePercent float64
	}{
		{
			name:             "Raffles Place to Changi Airport",
			a:                Coordinate{Lon: 103.8513, Lat: 1.2830},
			b:                Coordinate{Lon: 103.9915, Lat: 1.3644},
			wantMeters:       18_023,
			tolerancePercent: 1,
		},
		{
			name:       "same point",
			a:          Coordinate{Lon: 103.8198, Lat: 1.3521},
			b:          Coordinate{Lon: 103.8198, Lat: 1.3521},
			wantMeters: 0,
		},
		{
			name:             "London to Paris",
			a:                Coordinate{Lon: -0.1278, Lat: 51.5074},
			b:                Coordinate{Lon: 2.3522, Lat: 48.8566},
			wantMeters:       343_500,
			tolerancePercent: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if tt.wantMeters == 0 {
				if got != 0 {
					t.Errorf("expected 0, got %f", got)
				}
				return
			}
			diff := math.Abs(got-tt.wantMeters) / tt.wantMeters * 100
			if diff > tt.tolerancePercent {
				t.Errorf("Distance = %f m, want ~%f m (diff %.1f%%)", got, tt.wantMeters, diff)
			}
		})
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name        string
		a, b        Coordinate
		wantDegrees float64
	}{
		{
			name:        "due north",
			a:           Coordinate{Lon: 0, Lat: 0},
			b:           Coordinate{Lon: 0, Lat: 1},
			wantDegrees: 0,
		},
		{
			name:        "due east",
			a:           Coordinate{Lon: 0, Lat: 0},
			b:           Coordinate{Lon: 1, Lat: 0},
			wantDegrees: 90,
		},
		{
			name:        "due south",
			a:           Coordinate{Lon: 0, Lat: 1},
			b:           Coordinate{Lon: 0, Lat: 0},
			wantDegrees: 180,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(tt.a, tt.b) * 180 / math.Pi
			diff := math.Abs(got - tt.wantDegrees)
			if diff > 1 {
				t.Errorf("Bearing = %f deg, want ~%f deg", got, tt.wantDegrees)
			}
		})
	}
}

func TestProjectAlongPath(t *testing.T) {
	path := []Coordinate{
		{Lon: 0, Lat: 0},
		{Lon: 0, Lat: 1},
		{Lon: 0, Lat: 2},
	}

	t.Run("zero distance returns start", func(t *testing.T) {
		got := ProjectAlongPath(path, 0)
		if got != path[0] {
			t.Errorf("got %v, want %v", got, path[0])
		}
	})

	t.Run("overshoot returns last vertex", func(t *testing.T) {
		got := ProjectAlongPath(path, PathLength(path)*10)
		if got != path[len(path)-1] {
			t.Errorf("got %v, want %v", got, path[len(path)-1])
		}
	})

	t.Run("halfway along first segment", func(t *testing.T) {
		segLen := Distance(path[0], path[1])
		got := ProjectAlongPath(path, segLen/2)
		wantLat := 0.5
		if math.Abs(got.Lat-wantLat) > 0.01 {
			t.Errorf("got %v, want lat ~%f", got, wantLat)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		got := ProjectAlongPath(nil, 100)
		if got != (Coordinate{}) {
			t.Errorf("got %v, want zero value", got)
		}
	})
}

func TestProjectPerpendicular(t *testing.T) {
	tests := []struct {
		name      string
		p, a, b   Coordinate
		wantRatio float64
		maxDistM  float64
	}{
		{
			name:      "point at start of segment",
			p:         Coordinate{Lon: 103.8200, Lat: 1.3500},
			a:         Coordinate{Lon: 103.8200, Lat: 1.3500},
			b:         Coordinate{Lon: 103.8200, Lat: 1.3600},
			wantRatio: 0.0,
			maxDistM:  1,
		},
		{
			name:      "point at end of segment",
			p:         Coordinate{Lon: 103.8200, Lat: 1.3600},
			a:         Coordinate{Lon: 103.8200, Lat: 1.3500},
			b:         Coordinate{Lon: 103.8200, Lat: 1.3600},
			wantRatio: 1.0,
			maxDistM:  1,
		},
		{
			name:      "midpoint perpendicular",
			p:         Coordinate{Lon: 103.8210, Lat: 1.3550},
			a:         Coordinate{Lon: 103.8200, Lat: 1.3500},
			b:         Coordinate{Lon: 103.8200, Lat: 1.3600},
			wantRatio: 0.5,
			maxDistM:  200,
		},
		{
			name:      "degenerate segment",
			p:         Coordinate{Lon: 103.8210, Lat: 1.3500},
			a:         Coordinate{Lon: 103.8200, Lat: 1.3500},
			b:         Coordinate{Lon: 103.8200, Lat: 1.3500},
			wantRatio: 0.0,
			maxDistM:  200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, ratio := ProjectPerpendicular(tt.p, tt.a, tt.b)
			if dist > tt.maxDistM {
				t.Errorf("dist = %f m, want <= %f m", dist, tt.maxDistM)
			}
			if math.Abs(ratio-tt.wantRatio) > 0.05 {
				t.Errorf("ratio = %f, want ~%f", ratio, tt.wantRatio)
			}
		})
	}
}

func BenchmarkDistance(b *testing.B) {
	a := Coordinate{Lon: 103.8198, Lat: 1.3521}
	c := Coordinate{Lon: 103.8520, Lat: 1.2905}
	for b.Loop() {
		Distance(a, c)
	}
}
