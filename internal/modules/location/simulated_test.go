package location

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"campusride/internal/types"
)

func TestSimulatedSource_Current(t *testing.T) {
	path := []types.Point{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}}
	src := NewSimulatedSource(path, time.Millisecond)

	got, err := src.Current(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != path[0] {
		t.Errorf("Current() = %v, want %v", got, path[0])
	}
}

func TestSimulatedSource_CurrentEmpty(t *testing.T) {
	src := NewSimulatedSource(nil, time.Millisecond)
	if _, err := src.Current(context.Background()); !errors.Is(err, ErrNoLocation) {
		t.Errorf("expected ErrNoLocation, got %v", err)
	}
}

func TestSimulatedSource_WatchDeliversPathInOrder(t *testing.T) {
	path := []types.Point{{Lat: 1}, {Lat: 2}, {Lat: 3}}
	src := NewSimulatedSource(path, time.Millisecond)

	got := make(chan types.Point, len(path))
	sub, err := src.Watch(func(p types.Point) { got <- p }, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sub.Release()

	for i := range path {
		select {
		case p := <-got:
			if p != path[i] {
				t.Errorf("point %d = %v, want %v", i, p, path[i])
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for point %d", i)
		}
	}
}

func TestSimulatedSource_ReleaseStopsDelivery(t *testing.T) {
	path := make([]types.Point, 1000)
	src := NewSimulatedSource(path, time.Millisecond)

	var count atomic.Int64
	sub, err := src.Watch(func(types.Point) { count.Add(1) }, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Let a few points flow, stop, then confirm the stream is quiet.
	time.Sleep(10 * time.Millisecond)
	sub.Release()
	sub.Release() // idempotent

	time.Sleep(20 * time.Millisecond)
	n1 := count.Load()
	time.Sleep(50 * time.Millisecond)
	if n2 := count.Load(); n2 != n1 {
		t.Errorf("stream still delivering after Release: %d -> %d", n1, n2)
	}
}

func TestSimulatedSource_WatchEmpty(t *testing.T) {
	src := NewSimulatedSource(nil, time.Millisecond)
	if _, err := src.Watch(func(types.Point) {}, nil); !errors.Is(err, ErrNoLocation) {
		t.Errorf("expected ErrNoLocation, got %v", err)
	}
}
