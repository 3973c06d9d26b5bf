package geo

import (
	"math"
	"testing"

	"github.com/golang/geo/s2"
)

func TestDistanceIdentity(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{12.97, 77.59},
		{-33.8688, 151.2093},
		{89.9, -179.9},
	}
	for _, p := range points {
		if d := Distance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Distance(%v, %v, same) = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := []struct {
		lat1, lon1, lat2, lon2 float64
	}{
		{12.97, 77.59, 12.9705, 77.5905},
		{0, 0, 1, 1},
		{40.7128, -74.0060, 34.0522, -118.2437},
	}
	for _, p := range pairs {
		ab := Distance(p.lat1, p.lon1, p.lat2, p.lon2)
		ba := Distance(p.lat2, p.lon2, p.lat1, p.lon1)
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Distance not symmetric: %v vs %v", ab, ba)
		}
	}
}

// One degree of latitude spans EarthRadiusMeters * pi / 180 meters, so pure
// north-south offsets have a closed-form expected distance.
func TestDistanceLatitudeOffsets(t *testing.T) {
	metersPerDegree := EarthRadiusMeters * math.Pi / 180

	tests := []struct {
		name   string
		meters float64
	}{
		{"ten meters", 10},
		{"forty nine meters", 49},
		{"fifty one meters", 51},
		{"one kilometer", 1000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dLat := tc.meters / metersPerDegree
			got := Distance(12.97, 77.59, 12.97+dLat, 77.59)
			if math.Abs(got-tc.meters) > 0.01 {
				t.Errorf("Distance for %v m offset = %v", tc.meters, got)
			}
		})
	}
}

// The dedup threshold is 50 m: points placed just inside/outside must land on
// the correct side of the cut.
func TestDistanceThresholdAccuracy(t *testing.T) {
	metersPerDegree := EarthRadiusMeters * math.Pi / 180

	near := Distance(12.97, 77.59, 12.97+49/metersPerDegree, 77.59)
	if near >= 50 {
		t.Errorf("49 m offset computed as %v m, crosses 50 m threshold", near)
	}
	far := Distance(12.97, 77.59, 12.97+51/metersPerDegree, 77.59)
	if far <= 50 {
		t.Errorf("51 m offset computed as %v m, under 50 m threshold", far)
	}
}

func TestDistanceMonotonic(t *testing.T) {
	metersPerDegree := EarthRadiusMeters * math.Pi / 180
	prev := -1.0
	for _, m := range []float64{0, 5, 10, 25, 50, 100, 500, 5000} {
		d := Distance(12.97, 77.59, 12.97+m/metersPerDegree, 77.59)
		if d <= prev && m > 0 {
			t.Errorf("distance not monotonic at %v m: %v <= %v", m, d, prev)
		}
		prev = d
	}
}

// Cross-check the haversine implementation against the s2 spherical geometry
// library on a spread of point pairs.
func TestDistanceAgainstS2(t *testing.T) {
	pairs := []struct {
		lat1, lon1, lat2, lon2 float64
	}{
		{12.97, 77.59, 12.9701, 77.5901},
		{12.97, 77.59, 12.98, 77.60},
		{0, 0, 0, 1},
		{51.5074, -0.1278, 48.8566, 2.3522},
		{-33.8688, 151.2093, -37.8136, 144.9631},
	}
	for _, p := range pairs {
		got := Distance(p.lat1, p.lon1, p.lat2, p.lon2)
		a := s2.LatLngFromDegrees(p.lat1, p.lon1)
		b := s2.LatLngFromDegrees(p.lat2, p.lon2)
		want := a.Distance(b).Radians() * EarthRadiusMeters
		// Both compute great-circle distance on a sphere; agreement should be
		// far tighter than the 50 m dedup tolerance.
		if math.Abs(got-want) > 0.5 {
			t.Errorf("Distance(%v,%v -> %v,%v) = %v, s2 says %v",
				p.lat1, p.lon1, p.lat2, p.lon2, got, want)
		}
	}
}
