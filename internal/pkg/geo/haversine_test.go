package geo

import (
	"math"
	"testing"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	p := Point{Latitude: 12.9716, Longitude: 77.5946}

	d, err := Distance(p, p)
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if d != 0 {
		t.Errorf("expected zero distance, got %f", d)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a := Point{Latitude: 12.9716, Longitude: 77.5946}
	b := Point{Latitude: 13.0827, Longitude: 80.2707}

	ab, err := Distance(a, b)
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	ba, err := Distance(b, a)
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}

	if math.Abs(ab-ba) > 1e-6 {
		t.Errorf("distance not symmetric: %f vs %f", ab, ba)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Bangalore to Chennai, roughly 290 km
	a := Point{Latitude: 12.9716, Longitude: 77.5946}
	b := Point{Latitude: 13.0827, Longitude: 80.2707}

	d, err := Distance(a, b)
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}

	if d < 280_000 || d > 300_000 {
		t.Errorf("expected ~290km, got %f m", d)
	}
}

func TestDistanceInvalidCoordinates(t *testing.T) {
	valid := Point{Latitude: 12.9716, Longitude: 77.5946}

	cases := []Point{
		{Latitude: math.NaN(), Longitude: 77.5946},
		{Latitude: 12.9716, Longitude: math.Inf(1)},
		{Latitude: 91, Longitude: 0},
		{Latitude: -91, Longitude: 0},
		{Latitude: 0, Longitude: 181},
		{Latitude: 0, Longitude: -181},
	}

	for _, bad := range cases {
		if _, err := Distance(valid, bad); err != ErrInvalidCoordinates {
			t.Errorf("expected ErrInvalidCoordinates for %+v, got %v", bad, err)
		}
	}
}

func TestWithinRadius(t *testing.T) {
	shop := Point{Latitude: 12.9716, Longitude: 77.5946}

	// ~5.5m north of the shop (1 degree latitude is ~111,320m)
	near := Point{Latitude: 12.9716 + 5.0/111320.0, Longitude: 77.5946}
	// ~100m north
	far := Point{Latitude: 12.9716 + 100.0/111320.0, Longitude: 77.5946}

	in, err := WithinRadius(shop, near, 10)
	if err != nil {
		t.Fatalf("WithinRadius failed: %v", err)
	}
	if !in {
		t.Error("expected near point to be within 10m")
	}

	in, err = WithinRadius(shop, far, 10)
	if err != nil {
		t.Fatalf("WithinRadius failed: %v", err)
	}
	if in {
		t.Error("expected far point to be outside 10m")
	}
}
