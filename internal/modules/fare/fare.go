// README: Fare calculator; tiered price from straight-line distance.
package fare

import "math"

// The campus boundary splits pricing into two tiers: short hops inside the
// zone are charged per metre on top of a lower base fare, anything at or
// beyond the boundary switches to a per-kilometre rate on a higher base.
const (
	ZoneBoundaryKm = 2.5

	baseInsideZone  = 1300.0
	perMeterInside  = 0.28
	baseOutsideZone = 2000.0
	perKmOutside    = 50.0
)

// Estimate returns the trip price for a straight-line distance in kilometres,
// rounded to the nearest whole currency unit (halves away from zero).
// ok is false when the distance is zero or undefined; no price may be shown
// or submitted in that case.
func Estimate(distanceKm float64) (price int64, ok bool) {
	if distanceKm <= 0 || math.IsNaN(distanceKm) {
		return 0, false
	}
	if distanceKm < ZoneBoundaryKm {
		return int64(math.Round(baseInsideZone + distanceKm*1000*perMeterInside)), true
	}
	return int64(math.Round(baseOutsideZone + distanceKm*perKmOutside)), true
}
