package utils

import (
	"errors"
	"math"
)

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between
// two coordinate pairs.
func Haversine(lat1, lng1, lat2, lng2 float64) (float64, error) {
	for _, lat := range []float64{lat1, lat2} {
		if lat < -90 || lat > 90 {
			return 0, errors.New("latitude must be between -90 and 90")
		}
	}
	for _, lng := range []float64{lng1, lng2} {
		if lng < -180 || lng > 180 {
			return 0, errors.New("longitude must be between -180 and 180")
		}
	}

	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
