// README: In-memory surface implementations for tests and headless runs.
package surface

import (
	"sync"

	"campusride/internal/types"
)

// RecorderMap records every rendering call so tests can assert against them.
type RecorderMap struct {
	mu sync.Mutex

	Center          types.Point
	PanHistory      []types.Point
	Bounds          [][2]types.Point
	RouteRenders    int
	RouteCleared    int
	ProviderMarkers map[types.ID]*RecorderMarker

	markers []*RecorderMarker
}

func NewRecorderMap() *RecorderMap {
	return &RecorderMap{ProviderMarkers: make(map[types.ID]*RecorderMarker)}
}

func (m *RecorderMap) Load(center types.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Center = center
}

func (m *RecorderMap) AddUserMarker(p types.Point) Marker {
	return m.addMarker(p)
}

func (m *RecorderMap) AddDestinationMarker(p types.Point) Marker {
	return m.addMarker(p)
}

func (m *RecorderMap) AddProviderMarker(id types.ID, p types.Point) Marker {
	mk := m.addMarker(p)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProviderMarkers[id] = mk
	return mk
}

func (m *RecorderMap) PanTo(p types.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PanHistory = append(m.PanHistory, p)
}

func (m *RecorderMap) FitBounds(a, b types.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Bounds = append(m.Bounds, [2]types.Point{a, b})
}

func (m *RecorderMap) RenderRoute(origin, destination types.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RouteRenders++
}

func (m *RecorderMap) ClearRoute() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RouteCleared++
}

func (m *RecorderMap) addMarker(p types.Point) *RecorderMarker {
	mk := &RecorderMarker{Position: p}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markers = append(m.markers, mk)
	return mk
}

// MarkerCount returns how many markers were ever attached.
func (m *RecorderMap) MarkerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.markers)
}

type RecorderMarker struct {
	mu       sync.Mutex
	Position types.Point
	Removed  bool
	Moves    int
}

func (m *RecorderMarker) SetPosition(p types.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Position = p
	m.Moves++
}

func (m *RecorderMarker) Remove() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Removed = true
}

// RecorderNotifier collects notifications.
type RecorderNotifier struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (n *RecorderNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Successes = append(n.Successes, msg)
}

func (n *RecorderNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Errors = append(n.Errors, msg)
}

// RecorderNavigator collects navigation targets.
type RecorderNavigator struct {
	mu    sync.Mutex
	Rides []types.ID
}

func (n *RecorderNavigator) ToRide(id types.ID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Rides = append(n.Rides, id)
}
