// README: Live roster of nearby providers; upserts by identity, never evicts on reconcile.
package roster

import (
	"time"

	"campusride/internal/surface"
	"campusride/internal/types"
)

// Sighting is one provider observation from a roster snapshot.
type Sighting struct {
	ID       types.ID
	Position types.Point
}

// Provider is a live roster entry. The marker handle stays stable for the
// lifetime of the entry so the renderer can animate position changes.
type Provider struct {
	ID       types.ID
	Position types.Point
	Marker   surface.Marker
	LastSeen time.Time
}

// Roster reconciles periodic snapshots into a live provider set. Lookup is
// by an id-indexed map; iteration preserves first-seen order. The roster is
// owned by a single session and is not safe for concurrent use.
type Roster struct {
	surface surface.Map
	byID    map[types.ID]*Provider
	order   []*Provider
	now     func() time.Time
}

func New(m surface.Map) *Roster {
	return &Roster{
		surface: m,
		byID:    make(map[types.ID]*Provider),
		now:     time.Now,
	}
}

// Reconcile upserts every sighting with a defined position. Known providers
// have their position rewritten in place; unknown ones are appended and get
// a marker attached. Providers absent from the snapshot are left untouched:
// the feed is noisy and intermittent, so absence is not evidence of
// departure. Reconciling the same snapshot twice is a no-op beyond position
// rewrites.
func (r *Roster) Reconcile(snapshot []Sighting) {
	for _, s := range snapshot {
		if s.Position.IsZero() {
			continue
		}
		if p, ok := r.byID[s.ID]; ok {
			p.Position = s.Position
			p.LastSeen = r.now()
			if p.Marker != nil {
				p.Marker.SetPosition(s.Position)
			}
			continue
		}

		p := &Provider{ID: s.ID, Position: s.Position, LastSeen: r.now()}
		if r.surface != nil {
			p.Marker = r.surface.AddProviderMarker(s.ID, s.Position)
		}
		r.byID[s.ID] = p
		r.order = append(r.order, p)
	}
}

// EvictStale removes providers not sighted within maxAge and detaches their
// markers. This is an opt-in enhancement over the grow-only default; callers
// that want the observed behavior simply never call it.
func (r *Roster) EvictStale(maxAge time.Duration) int {
	cutoff := r.now().Add(-maxAge)
	evicted := 0
	kept := r.order[:0]
	for _, p := range r.order {
		if p.LastSeen.Before(cutoff) {
			delete(r.byID, p.ID)
			if p.Marker != nil {
				p.Marker.Remove()
			}
			evicted++
			continue
		}
		kept = append(kept, p)
	}
	r.order = kept
	return evicted
}

// Get looks up a provider by id in O(1).
func (r *Roster) Get(id types.ID) (*Provider, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Len returns the roster size.
func (r *Roster) Len() int {
	return len(r.order)
}

// Providers returns the entries in first-seen order.
func (r *Roster) Providers() []*Provider {
	out := make([]*Provider, len(r.order))
	copy(out, r.order)
	return out
}
