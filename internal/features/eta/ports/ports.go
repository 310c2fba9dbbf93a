package ports

import (
	"context"

	"fleet-tracker/internal/features/eta/domain"
)

// Geocoder resolves a free-text address to its best-match coordinates.
type Geocoder interface {
	// Geocode returns the best match for the address, or (nil, nil) when
	// the geocoder finds nothing. A non-nil error means the lookup itself
	// failed (network, HTTP, parsing).
	Geocode(ctx context.Context, address string) (*domain.Coordinates, error)
}

// RouteProvider computes a driving route between two coordinates.
type RouteProvider interface {
	// Route returns the best-ranked driving route, or (nil, nil) when the
	// service finds no route between the points.
	Route(ctx context.Context, origin, destination domain.Coordinates) (*domain.Route, error)
}
