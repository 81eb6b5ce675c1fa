// README: Websocket client for the realtime data layer; calls are correlated by id, pushes fan out on a channel.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"campusride/internal/types"
)

// ErrClosed is returned for calls made after the connection went away.
var ErrClosed = errors.New("realtime connection closed")

// Client multiplexes queries, mutations, and one subscription stream over a
// single websocket connection. One goroutine reads the socket and routes
// results to waiting callers and pushes to the subscription channel.
type Client struct {
	conn *websocket.Conn

	writeMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]chan Envelope

	pushes chan Envelope
	closed chan struct{}
	once   sync.Once
}

// Dial connects to the backend and starts the read loop.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("realtime dial: %w", err)
	}

	c := &Client{
		conn:    conn,
		pending: make(map[string]chan Envelope),
		pushes:  make(chan Envelope, 16),
		closed:  make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Close tears down the connection. Pending calls fail with ErrClosed.
func (c *Client) Close() error {
	c.once.Do(func() { close(c.closed) })
	return c.conn.Close()
}

func (c *Client) readLoop() {
	defer c.once.Do(func() { close(c.closed) })

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			return
		}
		switch env.Kind {
		case KindResult:
			c.pendingMu.Lock()
			ch, ok := c.pending[env.ID]
			c.pendingMu.Unlock()
			if ok {
				ch <- env
			}
		case KindPush:
			select {
			case c.pushes <- env:
			default:
				// Slow consumer; drop rather than stall the socket.
				log.Printf("realtime: dropping push %s", env.Op)
			}
		}
	}
}

func (c *Client) send(env Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	select {
	case <-c.closed:
		return ErrClosed
	default:
	}
	return c.conn.WriteJSON(env)
}

// call sends a query or mutation and blocks until its result arrives, the
// context is done, or the connection closes.
func (c *Client) call(ctx context.Context, kind Kind, op string, payload, out any) error {
	id := uuid.NewString()

	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: encode payload: %w", op, err)
		}
		raw = b
	}

	ch := make(chan Envelope, 1)
	c.pendingMu.Lock()
	c.pending[id] = ch
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()

	if err := c.send(Envelope{ID: id, Kind: kind, Op: op, Payload: raw}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.closed:
		return fmt.Errorf("%s: %w", op, ErrClosed)
	case env := <-ch:
		if env.Error != "" {
			return fmt.Errorf("%s: backend error: %s", op, env.Error)
		}
		if out == nil || len(env.Payload) == 0 {
			return nil
		}
		if err := json.Unmarshal(env.Payload, out); err != nil {
			return fmt.Errorf("%s: decode result: %w", op, err)
		}
		return nil
	}
}

// Profile fetches the session profile. Done once at startup.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var p Profile
	err := c.call(ctx, KindQuery, OpGetProfile, nil, &p)
	return p, err
}

// NearbyProviders returns the current roster snapshot. A backend answer with
// ok:false yields an empty snapshot, not an error; the roster is best effort.
func (c *Client) NearbyProviders(ctx context.Context) ([]ProviderSighting, error) {
	var res nearbyProvidersResult
	if err := c.call(ctx, KindQuery, OpGetNearbyProviders, nil, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, nil
	}
	return res.Providers, nil
}

// NearbyRide fetches the ride currently offered to this provider, if any.
func (c *Client) NearbyRide(ctx context.Context) (*Ride, error) {
	var res nearbyRideResult
	if err := c.call(ctx, KindQuery, OpGetNearbyRide, nil, &res); err != nil {
		return nil, err
	}
	return res.Ride, nil
}

// RequestRide submits a trip request.
func (c *Client) RequestRide(ctx context.Context, req RideRequest) (RideOutcome, error) {
	var out RideOutcome
	err := c.call(ctx, KindMutation, OpRequestRide, req, &out)
	return out, err
}

// AcceptRide accepts an offered ride on behalf of a provider.
func (c *Client) AcceptRide(ctx context.Context, rideID types.ID, status string) (RideOutcome, error) {
	var out RideOutcome
	err := c.call(ctx, KindMutation, OpAcceptRide, map[string]any{
		"rideId": rideID,
		"status": status,
	}, &out)
	return out, err
}

// ReportLocation is fire and forget: the update is written to the socket and
// no result is awaited.
func (c *Client) ReportLocation(ctx context.Context, p types.Point) error {
	raw, err := json.Marshal(reportLocationPayload{Lat: p.Lat, Lng: p.Lng})
	if err != nil {
		return err
	}
	return c.send(Envelope{ID: uuid.NewString(), Kind: KindMutation, Op: OpReportLocation, Payload: raw})
}

// SubscribeNearbyRides registers the nearby-ride subscription and returns the
// push stream. The channel closes when ctx is done or the connection drops.
func (c *Client) SubscribeNearbyRides(ctx context.Context) (<-chan Ride, error) {
	if err := c.send(Envelope{ID: uuid.NewString(), Kind: KindSubscribe, Op: OpNearbyRidePush}); err != nil {
		return nil, err
	}

	out := make(chan Ride)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.closed:
				return
			case env := <-c.pushes:
				if env.Op != OpNearbyRidePush {
					continue
				}
				var ride Ride
				if err := json.Unmarshal(env.Payload, &ride); err != nil {
					log.Printf("realtime: bad push payload: %v", err)
					continue
				}
				select {
				case out <- ride:
				case <-ctx.Done():
					return
				case <-c.closed:
					return
				}
			}
		}
	}()
	return out, nil
}
