package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"campusride/internal/types"
)

// Client handles interactions with the Google Maps API: forward and reverse
// geocoding plus transit route resolution.
type Client struct {
	c *maps.Client
}

// NewClient creates a new Client with the given API key.
func NewClient(apiKey string) (*Client, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Client{c: c}, nil
}

// Route carries the human-readable distance and duration of a resolved route.
type Route struct {
	DistanceText string
	DurationText string
}

var (
	// ErrNoRoute means the provider found no transit route between the points.
	ErrNoRoute = errors.New("no route found")
	// ErrNoAddress means the provider could not resolve the address.
	ErrNoAddress = errors.New("address not resolvable")
)

// ResolveRoute asks for a public-transit route and extracts the first leg of
// the first candidate route. No multi-leg aggregation.
func (s *Client) ResolveRoute(ctx context.Context, origin, destination types.Point) (Route, error) {
	r := &maps.DirectionsRequest{
		Origin:      latLngString(origin),
		Destination: latLngString(destination),
		Mode:        maps.TravelModeTransit,
	}

	routes, _, err := s.c.Directions(ctx, r)
	if err != nil {
		return Route{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return Route{}, ErrNoRoute
	}

	leg := routes[0].Legs[0]
	return Route{
		DistanceText: leg.Distance.HumanReadable,
		DurationText: leg.Duration.String(),
	}, nil
}

// ForwardGeocode resolves an address to a position and its formatted address.
func (s *Client) ForwardGeocode(ctx context.Context, address string) (types.Point, string, error) {
	results, err := s.c.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return types.Point{}, "", fmt.Errorf("maps api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, "", ErrNoAddress
	}

	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, results[0].FormattedAddress, nil
}

// ReverseGeocode resolves a position to a formatted address.
func (s *Client) ReverseGeocode(ctx context.Context, p types.Point) (string, error) {
	results, err := s.c.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: p.Lat, Lng: p.Lng},
	})
	if err != nil {
		return "", fmt.Errorf("maps api error: %w", err)
	}
	if len(results) == 0 {
		return "", ErrNoAddress
	}
	return results[0].FormattedAddress, nil
}

func latLngString(p types.Point) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}
