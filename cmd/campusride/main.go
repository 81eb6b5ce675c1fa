// README: Demo client; wires the maps provider, realtime backend, and trip controller for a headless session.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusride/internal/config"
	"campusride/internal/maps"
	"campusride/internal/modules/location"
	"campusride/internal/modules/trip"
	"campusride/internal/realtime"
	"campusride/internal/surface"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mapsClient, err := maps.NewClient(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	backend, err := realtime.Dial(dialCtx, cfg.Backend.WSURL)
	cancel()
	if err != nil {
		log.Fatalf("backend dial: %v", err)
	}
	defer backend.Close()

	// A short walk across campus, replayed as the live position stream.
	source := location.NewSimulatedSource(demoPath(), 2*time.Second)

	controller := trip.NewController(trip.Deps{
		Geo:          source,
		Maps:         mapsClient,
		Backend:      backend,
		Surface:      &consoleMap{},
		Notifier:     &consoleNotifier{},
		Nav:          &consoleNavigator{},
		Session:      &surface.Session{},
		PollInterval: cfg.Roster.PollInterval,
		StaleAfter:   cfg.Roster.StaleAfter,
	})

	if err := controller.Start(ctx); err != nil {
		log.Printf("session start: %v", err)
	}

	if dest := os.Getenv("CAMPUSRIDE_DEMO_DESTINATION"); dest != "" {
		if err := controller.SubmitDestination(ctx, dest); err == nil {
			state := controller.State()
			log.Printf("route %s (%s), price %d", state.RoutedDistance, state.RoutedDuration, state.Price)
			if err := controller.RequestRide(ctx); err != nil {
				log.Printf("request failed: %v", err)
			}
		}
	}

	<-ctx.Done()
}
