// README: Scripted provider fleet; wanders around campus and keeps Redis GEO fresh.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"campusride/internal/types"
)

const (
	fleetSize     = 6
	fleetTick     = 2 * time.Second
	wanderDegrees = 0.0005
)

var fleetOrigin = types.Point{Lat: 37.46000, Lng: 126.95250}

// runFleet moves a handful of fake providers around the campus center and
// writes every step into the GEO set the roster query reads from.
func (srv *server) runFleet(ctx context.Context) {
	positions := make([]types.Point, fleetSize)
	for i := range positions {
		positions[i] = types.Point{
			Lat: fleetOrigin.Lat + (rand.Float64()-0.5)*0.01,
			Lng: fleetOrigin.Lng + (rand.Float64()-0.5)*0.01,
		}
	}

	ticker := time.NewTicker(fleetTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for i := range positions {
				positions[i].Lat += (rand.Float64() - 0.5) * wanderDegrees
				positions[i].Lng += (rand.Float64() - 0.5) * wanderDegrees
				err := srv.rdb.GeoAdd(ctx, geoProvidersKey, &redis.GeoLocation{
					Name:      fmt.Sprintf("provider-%d", i+1),
					Latitude:  positions[i].Lat,
					Longitude: positions[i].Lng,
				}).Err()
				if err != nil {
					log.Printf("hailsim: geo add: %v", err)
				}
			}
		}
	}
}
