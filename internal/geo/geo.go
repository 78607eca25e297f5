// internal/geo/geo.go
//
// Great-circle distance between hometown coordinates.
// Used by the feedback engine to decide the "close" hometown band.

package geo

import (
	"math"

	"github.com/guessru/go-server/internal/roster"
)

// earthRadiusMiles matches the proximity threshold's unit system.
const earthRadiusMiles = 3959

// Distance returns the haversine distance between a and b in miles.
// Defined (and finite) for every valid coordinate pair, including
// antipodal points and the poles.
func Distance(a, b roster.Coordinates) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*sinLon*sinLon

	// Rounding can push h a hair past 1 for antipodal points; clamp so the
	// square root stays real.
	if h > 1 {
		h = 1
	}
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMiles * c
}

// WithinProximity reports whether a and b are at most thresholdMiles apart.
func WithinProximity(a, b roster.Coordinates, thresholdMiles float64) bool {
	return Distance(a, b) <= thresholdMiles
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
