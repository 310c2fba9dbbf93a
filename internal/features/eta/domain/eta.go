package domain

import (
	"fmt"
	"time"
)

// Coordinates is a WGS84 coordinate pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Route is the raw answer from the routing service: total driving distance
// and duration of the best-ranked route.
type Route struct {
	// DistanceMeters is the total route distance in meters.
	DistanceMeters float64
	// DurationSeconds is the total driving duration in seconds.
	DurationSeconds float64
}

// ETAResult is a computed estimated arrival, with presentation strings
// derived from the raw values.
type ETAResult struct {
	// DistanceMeters is the driving distance to the destination.
	DistanceMeters float64 `json:"distance_meters"`
	// DurationSeconds is the estimated driving time.
	DurationSeconds float64 `json:"duration_seconds"`
	// ETA is the absolute arrival time (computation time + duration).
	ETA time.Time `json:"eta"`
	// FormattedDistance is the human-readable distance, e.g. "2.5 km".
	FormattedDistance string `json:"formatted_distance"`
	// FormattedDuration is the human-readable duration, e.g. "10 min".
	FormattedDuration string `json:"formatted_duration"`
	// FormattedETA is the arrival clock time, e.g. "15:04".
	FormattedETA string `json:"formatted_eta"`
}

// NewETAResult builds a result from a route, anchored at the given time.
func NewETAResult(route Route, now time.Time) *ETAResult {
	eta := now.Add(time.Duration(route.DurationSeconds * float64(time.Second)))

	return &ETAResult{
		DistanceMeters:    route.DistanceMeters,
		DurationSeconds:   route.DurationSeconds,
		ETA:               eta,
		FormattedDistance: FormatDistance(route.DistanceMeters),
		FormattedDuration: FormatDuration(route.DurationSeconds),
		FormattedETA:      FormatClock(eta),
	}
}

// FormatDistance renders meters below one kilometer, kilometers to one
// decimal above.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// FormatDuration renders whole minutes below one hour, hours with the
// remaining minutes above (minutes omitted when zero).
func FormatDuration(seconds float64) string {
	minutes := int(seconds) / 60
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}

	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%d", hours, rest)
}

// FormatClock renders an absolute time as a local hour:minute label.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}
