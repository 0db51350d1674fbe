package geo

import (
	"errors"
	"math"
)

// EarthRadiusMeters is the spherical-Earth radius used for distance calculations
const EarthRadiusMeters = 6371000.0

var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Point is a latitude/longitude pair in degrees
type Point struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether the point holds finite, in-range coordinates
func (p Point) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) {
		return false
	}
	if math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// Distance computes the great-circle distance between two points in meters
// using the haversine formula. It is symmetric and returns 0 for identical
// points.
func Distance(a, b Point) (float64, error) {
	if !a.Valid() || !b.Valid() {
		return 0, ErrInvalidCoordinates
	}

	phi1 := a.Latitude * math.Pi / 180
	phi2 := b.Latitude * math.Pi / 180
	dPhi := (b.Latitude - a.Latitude) * math.Pi / 180
	dLambda := (b.Longitude - a.Longitude) * math.Pi / 180

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)

	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c, nil
}

// WithinRadius reports whether b lies within radiusMeters of a
func WithinRadius(a, b Point, radiusMeters float64) (bool, error) {
	d, err := Distance(a, b)
	if err != nil {
		return false, err
	}
	return d <= radiusMeters, nil
}
