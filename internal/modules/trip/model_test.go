// README: Lifecycle transition table tests.
package trip

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Phase
		want     bool
	}{
		// happy-path forward transitions
		{PhaseIdle, PhaseAddressEntered, true},
		{PhaseAddressEntered, PhaseRouteResolved, true},
		{PhaseRouteResolved, PhasePriceSet, true},
		{PhasePriceSet, PhaseRequested, true},
		{PhaseRequested, PhaseAccepted, true},
		// destination re-entry from every pre-request phase
		{PhaseAddressEntered, PhaseAddressEntered, true},
		{PhaseRouteResolved, PhaseAddressEntered, true},
		{PhasePriceSet, PhaseAddressEntered, true},
		// provider accepts straight out of idle
		{PhaseIdle, PhaseAccepted, true},
		// invalid: no re-entry once a request is in flight
		{PhaseRequested, PhaseAddressEntered, false},
		{PhaseAccepted, PhaseAddressEntered, false},
		// invalid: skipping phases
		{PhaseIdle, PhaseRouteResolved, false},
		{PhaseIdle, PhaseRequested, false},
		{PhaseAddressEntered, PhasePriceSet, false},
		{PhaseRouteResolved, PhaseRequested, false},
		// invalid: requesting without a price
		{PhaseAddressEntered, PhaseRequested, false},
		{PhaseRouteResolved, PhaseAccepted, false},
		// invalid: accepted is terminal for the session
		{PhaseAccepted, PhaseIdle, false},
		{PhaseAccepted, PhaseRequested, false},
	}
	for _, tc := range cases {
		got := CanTransition(tc.from, tc.to)
		if got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
