// README: Ports the presentation layer implements; the core never imports a UI toolkit.
package surface

import "campusride/internal/types"

// Marker is an opaque rendering handle owned by the presentation layer.
// Keeping the handle stable across position updates lets the renderer
// animate movement instead of replacing the marker.
type Marker interface {
	SetPosition(p types.Point)
	Remove()
}

// Map is the rendering surface contract.
type Map interface {
	Load(center types.Point)
	AddUserMarker(p types.Point) Marker
	AddDestinationMarker(p types.Point) Marker
	AddProviderMarker(id types.ID, p types.Point) Marker
	PanTo(p types.Point)
	FitBounds(a, b types.Point)
	RenderRoute(origin, destination types.Point)
	ClearRoute()
}

// Notifier delivers transient, non-blocking user notifications.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator moves the presentation layer to another view.
type Navigator interface {
	ToRide(id types.ID)
}

// Session carries UI-only state scoped to one user session. It is passed by
// reference to the rendering layer, which owns all reads and writes; it is
// not part of the trip aggregate.
type Session struct {
	MenuOpen bool
}
