// README: Payload types exchanged with the backend.
package realtime

import "campusride/internal/types"

type Profile struct {
	IsDriving bool `json:"isDriving"`
}

// ProviderSighting is one entry of a roster snapshot.
type ProviderSighting struct {
	ID      types.ID `json:"id"`
	LastLat float64  `json:"lastLat"`
	LastLng float64  `json:"lastLng"`
}

func (s ProviderSighting) Position() types.Point {
	return types.Point{Lat: s.LastLat, Lng: s.LastLng}
}

type nearbyProvidersResult struct {
	OK        bool               `json:"ok"`
	Providers []ProviderSighting `json:"providers"`
}

// Ride is the backend-owned ride record. This system only reads it; the id
// is what matters for navigation.
type Ride struct {
	ID             types.ID `json:"id"`
	Status         string   `json:"status"`
	PickUpAddress  string   `json:"pickUpAddress"`
	PickUpLat      float64  `json:"pickUpLat"`
	PickUpLng      float64  `json:"pickUpLng"`
	DropOffAddress string   `json:"dropOffAddress"`
	DropOffLat     float64  `json:"dropOffLat"`
	DropOffLng     float64  `json:"dropOffLng"`
	Price          int64    `json:"price"`
	Distance       string   `json:"distance"`
	Duration       string   `json:"duration"`
}

type nearbyRideResult struct {
	Ride *Ride `json:"ride"`
}

// RideRequest carries every trip field. The backend contract requires
// non-null values, so unset distance/duration default to empty strings and
// an unset price defaults to 0.
type RideRequest struct {
	Distance       string  `json:"distance"`
	DropOffAddress string  `json:"dropOffAddress"`
	DropOffLat     float64 `json:"dropOffLat"`
	DropOffLng     float64 `json:"dropOffLng"`
	Duration       string  `json:"duration"`
	PickUpAddress  string  `json:"pickUpAddress"`
	PickUpLat      float64 `json:"pickUpLat"`
	PickUpLng      float64 `json:"pickUpLng"`
	Price          int64   `json:"price"`
}

// RideOutcome is the application-level result of a ride mutation. OK false
// means the backend rejected the request; Error carries its message.
type RideOutcome struct {
	OK     bool     `json:"ok"`
	Ride   *Ride    `json:"ride,omitempty"`
	RideID types.ID `json:"rideId,omitempty"`
	Error  string   `json:"error,omitempty"`
}

type reportLocationPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
