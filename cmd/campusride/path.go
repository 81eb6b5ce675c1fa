// README: Canned walk used as the simulated position stream.
package main

import "campusride/internal/types"

// demoPath is a stroll near Gwanak campus; one point per tick.
func demoPath() []types.Point {
	return []types.Point{
		{Lat: 37.45978, Lng: 126.95199},
		{Lat: 37.45991, Lng: 126.95232},
		{Lat: 37.46010, Lng: 126.95271},
		{Lat: 37.46033, Lng: 126.95305},
		{Lat: 37.46061, Lng: 126.95332},
		{Lat: 37.46092, Lng: 126.95355},
		{Lat: 37.46120, Lng: 126.95383},
		{Lat: 37.46144, Lng: 126.95419},
	}
}
