// README: Console surface; renders map and toast activity as log lines.
package main

import (
	"log"

	"campusride/internal/surface"
	"campusride/internal/types"
)

type consoleMap struct{}

func (m *consoleMap) Load(center types.Point) {
	log.Printf("map: load centered at %.5f,%.5f", center.Lat, center.Lng)
}

func (m *consoleMap) AddUserMarker(p types.Point) surface.Marker {
	return &consoleMarker{name: "you"}
}

func (m *consoleMap) AddDestinationMarker(p types.Point) surface.Marker {
	return &consoleMarker{name: "destination"}
}

func (m *consoleMap) AddProviderMarker(id types.ID, p types.Point) surface.Marker {
	return &consoleMarker{name: "provider " + string(id)}
}

func (m *consoleMap) PanTo(p types.Point) {}

func (m *consoleMap) FitBounds(a, b types.Point) {
	log.Printf("map: fit %.5f,%.5f to %.5f,%.5f", a.Lat, a.Lng, b.Lat, b.Lng)
}

func (m *consoleMap) RenderRoute(origin, destination types.Point) {
	log.Printf("map: route overlay rendered")
}

func (m *consoleMap) ClearRoute() {}

type consoleMarker struct {
	name string
}

func (m *consoleMarker) SetPosition(p types.Point) {
	log.Printf("map: %s at %.5f,%.5f", m.name, p.Lat, p.Lng)
}

func (m *consoleMarker) Remove() {
	log.Printf("map: %s removed", m.name)
}

type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) { log.Printf("toast: %s", msg) }
func (consoleNotifier) Error(msg string)   { log.Printf("toast (error): %s", msg) }

type consoleNavigator struct{}

func (consoleNavigator) ToRide(id types.ID) { log.Printf("navigate: /ride/%s", id) }
