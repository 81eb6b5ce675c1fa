// README: Shared identity and geographic value types used across modules.
package types

// ID is a stable identity assigned by the backend.
type ID string

// Point is a WGS84 coordinate pair in decimal degrees. Immutable value.
type Point struct {
	Lat float64
	Lng float64
}

// IsZero reports whether the point carries no usable fix.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}
