// Package location — geo_utils contains pure geographic computation helpers.
package location

import (
	"math"

	"campusride/internal/types"
)

const earthRadiusKm = 6371.0

// StraightLineKm returns the great-circle distance in kilometres between two
// points, ignoring roads.
func StraightLineKm(a, b types.Point) float64 {
	dLat := DegreesToRadians(b.Lat - a.Lat)
	dLng := DegreesToRadians(b.Lng - a.Lng)

	rLat1 := DegreesToRadians(a.Lat)
	rLat2 := DegreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
