package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"campusride/internal/types"
)

// testBackend is a minimal protocol peer for exercising the client.
type testBackend struct {
	upgrader websocket.Upgrader

	reported chan types.Point
	conns    chan *websocket.Conn
}

func newTestBackend() *testBackend {
	return &testBackend{
		reported: make(chan types.Point, 8),
		conns:    make(chan *websocket.Conn, 1),
	}
}

func (b *testBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		b.conns <- conn

		for {
			var env Envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			switch env.Op {
			case OpGetProfile:
				b.reply(conn, env, map[string]any{"isDriving": true})
			case OpRequestRide:
				b.reply(conn, env, map[string]any{"ok": true, "ride": map[string]any{"id": "42"}})
			case OpAcceptRide:
				b.reply(conn, env, map[string]any{"ok": true, "rideId": "42"})
			case OpGetNearbyProviders:
				b.reply(conn, env, map[string]any{
					"ok": true,
					"providers": []map[string]any{
						{"id": "p1", "lastLat": 1.0, "lastLng": 2.0},
					},
				})
			case OpReportLocation:
				var p struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				}
				_ = json.Unmarshal(env.Payload, &p)
				b.reported <- types.Point{Lat: p.Lat, Lng: p.Lng}
			case OpGetNearbyRide:
				// Deliberately silent; used for the context timeout test.
			}
		}
	})
}

func (b *testBackend) reply(conn *websocket.Conn, req Envelope, payload any) {
	raw, _ := json.Marshal(payload)
	_ = conn.WriteJSON(Envelope{ID: req.ID, Kind: KindResult, Op: req.Op, Payload: raw})
}

func (b *testBackend) push(t *testing.T, op string, payload any) {
	t.Helper()
	select {
	case conn := <-b.conns:
		raw, _ := json.Marshal(payload)
		if err := conn.WriteJSON(Envelope{ID: "push-1", Kind: KindPush, Op: op, Payload: raw}); err != nil {
			t.Fatalf("push failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no connection to push to")
	}
}

func dialTest(t *testing.T) (*Client, *testBackend) {
	t.Helper()
	backend := newTestBackend()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, err := Dial(context.Background(), url)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, backend
}

func TestClient_Profile(t *testing.T) {
	client, _ := dialTest(t)

	profile, err := client.Profile(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !profile.IsDriving {
		t.Errorf("profile = %+v, want isDriving true", profile)
	}
}

func TestClient_RequestRide(t *testing.T) {
	client, _ := dialTest(t)

	out, err := client.RequestRide(context.Background(), RideRequest{Price: 1860})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.OK || out.Ride == nil || out.Ride.ID != "42" {
		t.Errorf("outcome = %+v, want ok with ride 42", out)
	}
}

func TestClient_NearbyProviders(t *testing.T) {
	client, _ := dialTest(t)

	sightings, err := client.NearbyProviders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sightings) != 1 || sightings[0].ID != "p1" {
		t.Fatalf("sightings = %+v", sightings)
	}
	if got := sightings[0].Position(); got != (types.Point{Lat: 1, Lng: 2}) {
		t.Errorf("position = %v", got)
	}
}

func TestClient_ReportLocationFireAndForget(t *testing.T) {
	client, backend := dialTest(t)

	p := types.Point{Lat: 37.46, Lng: 126.95}
	if err := client.ReportLocation(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case got := <-backend.reported:
		if got != p {
			t.Errorf("reported = %v, want %v", got, p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("report never reached the backend")
	}
}

func TestClient_SubscribeNearbyRides(t *testing.T) {
	client, backend := dialTest(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rides, err := client.SubscribeNearbyRides(ctx)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	backend.push(t, OpNearbyRidePush, map[string]any{"id": "77", "status": "REQUESTING"})

	select {
	case ride := <-rides:
		if ride.ID != "77" || ride.Status != "REQUESTING" {
			t.Errorf("ride = %+v", ride)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("push never delivered")
	}
}

func TestClient_CallHonorsContext(t *testing.T) {
	client, _ := dialTest(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.NearbyRide(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestClient_CallAfterClose(t *testing.T) {
	client, _ := dialTest(t)
	_ = client.Close()

	if _, err := client.Profile(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
