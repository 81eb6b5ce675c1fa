// README: Websocket sessions and protocol handling for the simulator.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"campusride/internal/realtime"
	"campusride/internal/types"
)

const (
	geoProvidersKey  = "geo:providers"
	nearbyRadiusKm   = 5.0
	nearbyMaxResults = 25
)

type server struct {
	rdb      *redis.Client
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[*session]struct{}
	rides    map[types.ID]*realtime.Ride
}

func newServer(rdb *redis.Client) *server {
	return &server{
		rdb:      rdb,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		sessions: make(map[*session]struct{}),
		rides:    make(map[types.ID]*realtime.Ride),
	}
}

type session struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu         sync.Mutex
	lastPos    types.Point
	driving    bool
	subscribed bool
}

func (s *session) write(env realtime.Envelope) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(env)
}

// handleWS upgrades the connection and serves the envelope protocol until
// the client goes away. Role is chosen by the ?driving=true query parameter
// since the simulator has no auth.
func (srv *server) handleWS(c *gin.Context) {
	conn, err := srv.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("hailsim: upgrade failed: %v", err)
		return
	}

	sess := &session{conn: conn, driving: c.Query("driving") == "true"}
	srv.mu.Lock()
	srv.sessions[sess] = struct{}{}
	srv.mu.Unlock()

	defer func() {
		srv.mu.Lock()
		delete(srv.sessions, sess)
		srv.mu.Unlock()
		_ = conn.Close()
	}()

	for {
		var env realtime.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}
		srv.dispatch(c.Request.Context(), sess, env)
	}
}

func (srv *server) dispatch(ctx context.Context, sess *session, env realtime.Envelope) {
	switch env.Op {
	case realtime.OpGetProfile:
		sess.mu.Lock()
		driving := sess.driving
		sess.mu.Unlock()
		srv.reply(sess, env, gin.H{"isDriving": driving})

	case realtime.OpGetNearbyProviders:
		srv.reply(sess, env, srv.nearbyProviders(ctx, sess))

	case realtime.OpGetNearbyRide:
		srv.mu.Lock()
		var latest *realtime.Ride
		for _, r := range srv.rides {
			latest = r
		}
		srv.mu.Unlock()
		srv.reply(sess, env, gin.H{"ride": latest})

	case realtime.OpRequestRide:
		var req realtime.RideRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			srv.reply(sess, env, gin.H{"ok": false, "error": "malformed request"})
			return
		}
		ride := &realtime.Ride{
			ID:             types.ID(uuid.NewString()),
			Status:         "REQUESTING",
			PickUpAddress:  req.PickUpAddress,
			PickUpLat:      req.PickUpLat,
			PickUpLng:      req.PickUpLng,
			DropOffAddress: req.DropOffAddress,
			DropOffLat:     req.DropOffLat,
			DropOffLng:     req.DropOffLng,
			Price:          req.Price,
			Distance:       req.Distance,
			Duration:       req.Duration,
		}
		srv.mu.Lock()
		srv.rides[ride.ID] = ride
		srv.mu.Unlock()
		srv.reply(sess, env, gin.H{"ok": true, "ride": ride})
		srv.pushToProviders(*ride)

	case realtime.OpAcceptRide:
		var payload struct {
			RideID types.ID `json:"rideId"`
			Status string   `json:"status"`
		}
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			srv.reply(sess, env, gin.H{"ok": false, "error": "malformed request"})
			return
		}
		srv.mu.Lock()
		ride, ok := srv.rides[payload.RideID]
		if ok {
			ride.Status = payload.Status
		}
		srv.mu.Unlock()
		if !ok {
			srv.reply(sess, env, gin.H{"ok": false, "error": "ride not found"})
			return
		}
		srv.reply(sess, env, gin.H{"ok": true, "rideId": payload.RideID})

	case realtime.OpReportLocation:
		var payload struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		}
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return
		}
		sess.mu.Lock()
		sess.lastPos = types.Point{Lat: payload.Lat, Lng: payload.Lng}
		sess.mu.Unlock()

	case realtime.OpNearbyRidePush:
		if env.Kind == realtime.KindSubscribe {
			sess.mu.Lock()
			sess.subscribed = true
			sess.mu.Unlock()
		}
	}
}

// nearbyProviders answers the roster query from Redis GEO, searching around
// the session's last reported position.
func (srv *server) nearbyProviders(ctx context.Context, sess *session) gin.H {
	sess.mu.Lock()
	center := sess.lastPos
	sess.mu.Unlock()
	if center.IsZero() {
		return gin.H{"ok": true, "providers": []realtime.ProviderSighting{}}
	}

	locs, err := srv.rdb.GeoSearchLocation(ctx, geoProvidersKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  center.Lng,
			Latitude:   center.Lat,
			Radius:     nearbyRadiusKm,
			RadiusUnit: "km",
			Count:      nearbyMaxResults,
		},
		WithCoord: true,
	}).Result()
	if err != nil {
		log.Printf("hailsim: geo search: %v", err)
		return gin.H{"ok": false}
	}

	providers := make([]realtime.ProviderSighting, 0, len(locs))
	for _, l := range locs {
		providers = append(providers, realtime.ProviderSighting{
			ID:      types.ID(l.Name),
			LastLat: l.Latitude,
			LastLng: l.Longitude,
		})
	}
	return gin.H{"ok": true, "providers": providers}
}

func (srv *server) reply(sess *session, req realtime.Envelope, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("hailsim: encode reply: %v", err)
		return
	}
	if err := sess.write(realtime.Envelope{
		ID:      req.ID,
		Kind:    realtime.KindResult,
		Op:      req.Op,
		Payload: raw,
	}); err != nil {
		log.Printf("hailsim: write reply: %v", err)
	}
}

// pushToProviders fans a new ride out to every subscribed provider session.
func (srv *server) pushToProviders(ride realtime.Ride) {
	raw, err := json.Marshal(ride)
	if err != nil {
		return
	}
	env := realtime.Envelope{
		ID:      uuid.NewString(),
		Kind:    realtime.KindPush,
		Op:      realtime.OpNearbyRidePush,
		Payload: raw,
	}

	srv.mu.Lock()
	targets := make([]*session, 0, len(srv.sessions))
	for s := range srv.sessions {
		s.mu.Lock()
		if s.driving && s.subscribed {
			targets = append(targets, s)
		}
		s.mu.Unlock()
	}
	srv.mu.Unlock()

	for _, s := range targets {
		if err := s.write(env); err != nil {
			log.Printf("hailsim: push failed: %v", err)
		}
	}
}
