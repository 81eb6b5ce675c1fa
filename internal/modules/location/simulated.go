// README: Simulated geolocation source replaying a fixed path on a ticker.
package location

import (
	"context"
	"sync"
	"time"

	"campusride/internal/types"
)

// SimulatedSource walks a pre-recorded path, emitting one point per interval.
// Current returns the first point of the path; each Watch subscription replays
// the whole path independently and stops at the final point.
type SimulatedSource struct {
	path     []types.Point
	interval time.Duration
}

func NewSimulatedSource(path []types.Point, interval time.Duration) *SimulatedSource {
	return &SimulatedSource{path: path, interval: interval}
}

func (s *SimulatedSource) Current(ctx context.Context) (types.Point, error) {
	if len(s.path) == 0 {
		return types.Point{}, ErrNoLocation
	}
	return s.path[0], nil
}

func (s *SimulatedSource) Watch(onUpdate func(types.Point), onError func(error)) (Subscription, error) {
	if len(s.path) == 0 {
		return nil, ErrNoLocation
	}

	sub := &simSubscription{stop: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := 0; i < len(s.path); i++ {
			select {
			case <-sub.stop:
				return
			default:
			}
			select {
			case <-sub.stop:
				return
			case <-ticker.C:
				onUpdate(s.path[i])
			}
		}
	}()

	return sub, nil
}

type simSubscription struct {
	stop chan struct{}
	once sync.Once
}

func (s *simSubscription) Release() {
	s.once.Do(func() { close(s.stop) })
}
