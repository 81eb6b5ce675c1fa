// README: Trip aggregate, roles, and lifecycle phases.
package trip

import "campusride/internal/types"

type Role string

const (
	RoleRequester Role = "requester"
	RoleProvider  Role = "provider"
)

type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseAddressEntered Phase = "address_entered"
	PhaseRouteResolved  Phase = "route_resolved"
	PhasePriceSet       Phase = "price_set"
	PhaseRequested      Phase = "requested"
	PhaseAccepted       Phase = "accepted"
)

// AllowedTransitions represents the trip lifecycle as code. Re-entering
// AddressEntered is legal from any pre-request phase: submitting a new
// destination restarts the geocode → route → price pipeline.
// A provider session accepts straight out of Idle; the address pipeline is
// requester-only.
var AllowedTransitions = map[Phase][]Phase{
	PhaseIdle:           {PhaseAddressEntered, PhaseAccepted},
	PhaseAddressEntered: {PhaseAddressEntered, PhaseRouteResolved},
	PhaseRouteResolved:  {PhaseAddressEntered, PhasePriceSet},
	PhasePriceSet:       {PhaseAddressEntered, PhaseRequested},
	PhaseRequested:      {PhaseAccepted},
}

func CanTransition(from, to Phase) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, p := range next {
		if p == to {
			return true
		}
	}
	return false
}

// State is the trip aggregate, owned exclusively by the Controller for the
// session lifetime. Price is defined only after RoutedDistance is defined;
// Destination is defined only after a successful geocode.
type State struct {
	Role  Role
	Phase Phase

	OriginAddress      string
	DestinationAddress string
	Origin             types.Point
	Destination        types.Point

	RoutedDistance string
	RoutedDuration string

	Price    int64
	PriceSet bool
}
