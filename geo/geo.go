// Package geo computes great-circle distances between coordinate pairs.
package geo

import (
	"errors"
	"math"
)

// earthRadiusKm is the Earth radius used by the Haversine formula. Filtering
// results depend on this exact constant; do not change it.
const earthRadiusKm = 6371

// ErrInvalidCoordinates is returned when an input is not a [latitude,
// longitude] pair.
var ErrInvalidCoordinates = errors.New("coordinates must be a [latitude, longitude] pair")

// Distance returns the great-circle distance between two [latitude,
// longitude] pairs (degrees), rounded to the nearest whole kilometer.
func Distance(a, b []float64) (int, error) {
	if len(a) != 2 || len(b) != 2 {
		return 0, ErrInvalidCoordinates
	}

	lat1, lon1 := a[0], a[1]
	lat2, lon2 := b[0], b[1]

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return int(math.Round(earthRadiusKm * c)), nil
}
