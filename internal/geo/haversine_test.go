package geo

import (
	"math"
	"testing"
)

func TestHaversineKmSamePointIsZero(t *testing.T) {
	if got := HaversineKm(40.0, -73.0, 40.0, -73.0); got != 0 {
		t.Fatalf("HaversineKm(same point) = %v, want 0", got)
	}
}

func TestHaversineKmKnownDistance(t *testing.T) {
	// New York City to Los Angeles, roughly 3936 km great-circle.
	got := HaversineKm(40.7128, -74.0060, 34.0522, -118.2437)
	want := 3936.0
	if math.Abs(got-want) > 20 {
		t.Fatalf("HaversineKm(NYC, LA) = %v, want close to %v", got, want)
	}
}

func TestHaversineKmIsSymmetric(t *testing.T) {
	a := HaversineKm(40.0, -73.0, 41.0, -74.0)
	b := HaversineKm(41.0, -74.0, 40.0, -73.0)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("HaversineKm not symmetric: %v vs %v", a, b)
	}
}
