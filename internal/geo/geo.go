// Package geo provides the scoring primitives for the guessing game:
// great-circle distance between two coordinates and the distance-to-score
// curve. Everything here is pure Go with no side effects.
package geo

import "math"

const (
	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371

	// MaxScore is awarded for a perfect guess.
	MaxScore = 5000

	// MaxDistanceKm is the distance at and beyond which a guess scores zero.
	MaxDistanceKm = 20000
)

// Point is a WGS 84 coordinate pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point is a well-formed latitude/longitude pair.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Distance returns the great-circle distance between a and b in kilometers,
// computed with the haversine formula. Callers must validate coordinates
// first; the result is always >= 0 and is 0 only for identical points.
func Distance(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// Score maps a distance in kilometers to an integer score on a linear decay
// curve: MaxScore at 0 km, zero at MaxDistanceKm and beyond. The curve is
// monotonically non-increasing; replacing it requires preserving both
// boundary values to stay compatible with stored historical scores.
func Score(distanceKm float64) int {
	if distanceKm >= MaxDistanceKm {
		return 0
	}
	score := int(math.Round(MaxScore * (1 - distanceKm/MaxDistanceKm)))
	if score < 0 {
		return 0
	}
	return score
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
