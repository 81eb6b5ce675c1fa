// README: Ride lifecycle controller; drives geocoding, routing, fare, and the request/accept flow.
package trip

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"campusride/internal/maps"
	"campusride/internal/modules/fare"
	"campusride/internal/modules/location"
	"campusride/internal/modules/roster"
	"campusride/internal/realtime"
	"campusride/internal/surface"
	"campusride/internal/types"
)

var (
	ErrRejected     = errors.New("ride mutation rejected by backend")
	ErrInvalidPhase = errors.New("operation not allowed in current phase")
)

// Geocoder resolves addresses in both directions.
type Geocoder interface {
	ForwardGeocode(ctx context.Context, address string) (types.Point, string, error)
	ReverseGeocode(ctx context.Context, p types.Point) (string, error)
}

// RouteResolver asks the mapping provider for a routed path.
type RouteResolver interface {
	ResolveRoute(ctx context.Context, origin, destination types.Point) (maps.Route, error)
}

// MapsService is what the controller needs from the mapping provider.
type MapsService interface {
	Geocoder
	RouteResolver
}

// Backend is the realtime data layer: queries, mutations, and the
// nearby-ride subscription stream.
type Backend interface {
	Profile(ctx context.Context) (realtime.Profile, error)
	NearbyProviders(ctx context.Context) ([]realtime.ProviderSighting, error)
	NearbyRide(ctx context.Context) (*realtime.Ride, error)
	RequestRide(ctx context.Context, req realtime.RideRequest) (realtime.RideOutcome, error)
	AcceptRide(ctx context.Context, rideID types.ID, status string) (realtime.RideOutcome, error)
	ReportLocation(ctx context.Context, p types.Point) error
	SubscribeNearbyRides(ctx context.Context) (<-chan realtime.Ride, error)
}

type Deps struct {
	Geo      location.Source
	Maps     MapsService
	Backend  Backend
	Surface  surface.Map
	Notifier surface.Notifier
	Nav      surface.Navigator
	Session  *surface.Session

	// PollInterval is the roster refresh cadence; zero means 5 s.
	PollInterval time.Duration
	// StaleAfter, when non-zero, evicts providers not seen for that long on
	// every poll tick.
	StaleAfter time.Duration
}

// Controller owns the trip aggregate and orchestrates every other component.
// External inputs (user actions, watch updates, subscription pushes) are
// serialized through one mutex; position updates are last-write-wins.
type Controller struct {
	geo     location.Source
	maps    MapsService
	backend Backend
	surface surface.Map
	notify  surface.Notifier
	nav     surface.Navigator
	session *surface.Session

	pollInterval time.Duration
	staleAfter   time.Duration

	mu         sync.Mutex
	state      State
	roster     *roster.Roster
	nearbyRide *realtime.Ride
	userMarker surface.Marker
	destMarker surface.Marker
}

func NewController(deps Deps) *Controller {
	poll := deps.PollInterval
	if poll <= 0 {
		poll = 5 * time.Second
	}
	return &Controller{
		geo:          deps.Geo,
		maps:         deps.Maps,
		backend:      deps.Backend,
		surface:      deps.Surface,
		notify:       deps.Notifier,
		nav:          deps.Nav,
		session:      deps.Session,
		pollInterval: poll,
		staleAfter:   deps.StaleAfter,
		state:        State{Role: RoleRequester, Phase: PhaseIdle},
		roster:       roster.New(deps.Surface),
	}
}

// Start acquires the initial fix, latches the session role from the profile,
// and launches the background loops for the session: geolocation watch plus
// either the roster poll (requester) or the nearby-ride subscription
// (provider). Everything started here stops when ctx is done. A missing fix
// only skips the origin-dependent setup; the rest of the session runs.
func (c *Controller) Start(ctx context.Context) error {
	pos, err := c.geo.Current(ctx)
	if err != nil {
		// Logged, no auto-retry, never fatal: a session without a fix stays
		// usable for everything that does not need an origin.
		log.Printf("trip: no location: %v", err)
	} else {
		c.mu.Lock()
		c.state.Origin = pos
		c.mu.Unlock()

		c.surface.Load(pos)
		c.mu.Lock()
		c.userMarker = c.surface.AddUserMarker(pos)
		c.mu.Unlock()

		// Origin address is cosmetic; a failed reverse geocode leaves it empty.
		if addr, err := c.maps.ReverseGeocode(ctx, pos); err == nil {
			c.mu.Lock()
			c.state.OriginAddress = addr
			c.mu.Unlock()
		}
	}

	sub, err := c.geo.Watch(
		func(p types.Point) { c.handleWatchUpdate(ctx, p) },
		func(err error) { log.Printf("trip: watch error: %v", err) },
	)
	if err != nil {
		log.Printf("trip: watch unavailable: %v", err)
	} else {
		// Scoped acquisition: the platform handle is released with the session.
		go func() {
			<-ctx.Done()
			sub.Release()
		}()
	}

	// The role is latched once; later isDriving flips are ignored for the
	// rest of the session.
	profile, err := c.backend.Profile(ctx)
	if err != nil {
		log.Printf("trip: profile query failed: %v", err)
	}
	c.mu.Lock()
	if profile.IsDriving {
		c.state.Role = RoleProvider
	}
	role := c.state.Role
	c.mu.Unlock()

	switch role {
	case RoleProvider:
		if ride, err := c.backend.NearbyRide(ctx); err == nil {
			c.mu.Lock()
			c.nearbyRide = ride
			c.mu.Unlock()
		}
		go c.runSubscription(ctx)
	default:
		go c.runRosterPoll(ctx)
	}
	return nil
}

// handleWatchUpdate runs for every position fix regardless of phase or role:
// last-write-wins on the origin, re-center the map, report upstream.
func (c *Controller) handleWatchUpdate(ctx context.Context, p types.Point) {
	c.mu.Lock()
	c.state.Origin = p
	marker := c.userMarker
	c.mu.Unlock()

	if marker != nil {
		marker.SetPosition(p)
	}
	c.surface.PanTo(p)

	if err := c.backend.ReportLocation(ctx, p); err != nil {
		log.Printf("trip: report location failed: %v", err)
	}
}

// runRosterPoll refreshes the nearby-provider roster on a fixed cadence
// while the session is in requester role. The first snapshot is fetched
// right away; the map should not sit empty for a full interval.
func (c *Controller) runRosterPoll(ctx context.Context) {
	c.refreshRoster(ctx)

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refreshRoster(ctx)
		}
	}
}

func (c *Controller) refreshRoster(ctx context.Context) {
	sightings, err := c.backend.NearbyProviders(ctx)
	if err != nil {
		log.Printf("trip: roster refresh failed: %v", err)
		return
	}
	snapshot := make([]roster.Sighting, 0, len(sightings))
	for _, s := range sightings {
		snapshot = append(snapshot, roster.Sighting{ID: s.ID, Position: s.Position()})
	}
	c.mu.Lock()
	c.roster.Reconcile(snapshot)
	if c.staleAfter > 0 {
		c.roster.EvictStale(c.staleAfter)
	}
	c.mu.Unlock()
}

// runSubscription consumes nearby-ride pushes while in provider role and
// merges each into the cached query result.
func (c *Controller) runSubscription(ctx context.Context) {
	ch, err := c.backend.SubscribeNearbyRides(ctx)
	if err != nil {
		log.Printf("trip: subscribe failed: %v", err)
		return
	}
	for ride := range ch {
		c.mu.Lock()
		c.nearbyRide = mergeRidePush(c.nearbyRide, ride)
		c.mu.Unlock()
	}
}

// mergeRidePush folds a subscription push into the cached nearby-ride
// result. Pushed fields always win: the embedded ride is replaced wholesale.
func mergeRidePush(current *realtime.Ride, pushed realtime.Ride) *realtime.Ride {
	merged := pushed
	return &merged
}

// SubmitDestination geocodes the entered address and, on success, walks the
// pipeline forward: destination marker and viewport, transit route, fare.
// A geocode failure is surfaced and leaves the aggregate untouched.
func (c *Controller) SubmitDestination(ctx context.Context, address string) error {
	c.mu.Lock()
	from := c.state.Phase
	c.mu.Unlock()
	if !CanTransition(from, PhaseAddressEntered) {
		return ErrInvalidPhase
	}

	pos, formatted, err := c.maps.ForwardGeocode(ctx, address)
	if err != nil {
		c.notify.Error("Could not find that address")
		return err
	}

	c.mu.Lock()
	c.state.Destination = pos
	c.state.DestinationAddress = formatted
	c.state.Phase = PhaseAddressEntered
	c.state.RoutedDistance = ""
	c.state.RoutedDuration = ""
	c.state.Price = 0
	c.state.PriceSet = false
	origin := c.state.Origin
	oldMarker := c.destMarker
	c.mu.Unlock()

	if oldMarker != nil {
		oldMarker.Remove()
		c.surface.ClearRoute()
	}
	marker := c.surface.AddDestinationMarker(pos)
	c.surface.FitBounds(pos, origin)
	c.mu.Lock()
	c.destMarker = marker
	c.mu.Unlock()

	return c.resolveRoute(ctx, origin, pos)
}

func (c *Controller) resolveRoute(ctx context.Context, origin, destination types.Point) error {
	route, err := c.maps.ResolveRoute(ctx, origin, destination)
	if err != nil {
		c.notify.Error("There is no route there")
		return err
	}

	c.surface.RenderRoute(origin, destination)

	c.mu.Lock()
	c.state.RoutedDistance = route.DistanceText
	c.state.RoutedDuration = route.DurationText
	c.state.Phase = PhaseRouteResolved

	if price, ok := fare.Estimate(location.StraightLineKm(origin, destination)); ok {
		c.state.Price = price
		c.state.PriceSet = true
		c.state.Phase = PhasePriceSet
	}
	c.mu.Unlock()
	return nil
}

// RequestRide submits the trip to the backend with non-null defaults for
// anything still unset. Rejection keeps the aggregate in place.
func (c *Controller) RequestRide(ctx context.Context) error {
	c.mu.Lock()
	if !CanTransition(c.state.Phase, PhaseRequested) {
		c.mu.Unlock()
		return ErrInvalidPhase
	}
	req := realtime.RideRequest{
		Distance:       c.state.RoutedDistance,
		DropOffAddress: c.state.DestinationAddress,
		DropOffLat:     c.state.Destination.Lat,
		DropOffLng:     c.state.Destination.Lng,
		Duration:       c.state.RoutedDuration,
		PickUpAddress:  c.state.OriginAddress,
		PickUpLat:      c.state.Origin.Lat,
		PickUpLng:      c.state.Origin.Lng,
	}
	if c.state.PriceSet {
		req.Price = c.state.Price
	}
	c.mu.Unlock()

	out, err := c.backend.RequestRide(ctx, req)
	if err != nil {
		c.notify.Error("Could not reach the server, try again")
		return err
	}
	if !out.OK || out.Ride == nil {
		c.notify.Error(out.Error)
		return ErrRejected
	}

	c.notify.Success("Drive requested, finding a driver")
	c.mu.Lock()
	c.state.Phase = PhaseRequested
	c.mu.Unlock()
	c.nav.ToRide(out.Ride.ID)
	return nil
}

// AcceptRide is the provider-side mutation; on success it navigates to the
// ride detail view.
func (c *Controller) AcceptRide(ctx context.Context, rideID types.ID) error {
	c.mu.Lock()
	if !CanTransition(c.state.Phase, PhaseAccepted) {
		c.mu.Unlock()
		return ErrInvalidPhase
	}
	c.mu.Unlock()

	out, err := c.backend.AcceptRide(ctx, rideID, "ACCEPTED")
	if err != nil {
		c.notify.Error("Could not reach the server, try again")
		return err
	}
	if !out.OK {
		c.notify.Error(out.Error)
		return ErrRejected
	}

	c.mu.Lock()
	c.state.Phase = PhaseAccepted
	c.mu.Unlock()
	c.nav.ToRide(out.RideID)
	return nil
}

// State returns a copy of the trip aggregate.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// NearbyRide returns the latest merged nearby-ride record, if any.
func (c *Controller) NearbyRide() *realtime.Ride {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nearbyRide == nil {
		return nil
	}
	ride := *c.nearbyRide
	return &ride
}

// Roster exposes the provider roster for rendering.
func (c *Controller) Roster() []*roster.Provider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.Providers()
}

// Session returns the UI-only session state shared with the rendering layer.
func (c *Controller) Session() *surface.Session {
	return c.session
}
