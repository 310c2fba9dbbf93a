package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/features/eta/domain"
	"fleet-tracker/internal/features/eta/ports"

	"go.uber.org/zap"
)

var (
	// ErrMissingDestination is returned when neither destination
	// coordinates nor an address were provided.
	ErrMissingDestination = errors.New("missing destination")
	// ErrGeocodingFailed is returned when the address resolves to nothing.
	ErrGeocodingFailed = errors.New("destination not found")
	// ErrRouteNotFound is returned when no driving route exists between
	// the points.
	ErrRouteNotFound = errors.New("route not found")
	// ErrTransient is returned for network/HTTP failures; the next
	// scheduled recompute recovers.
	ErrTransient = errors.New("transient upstream failure")
)

// Service computes best-effort arrival estimates from an origin to a
// destination, geocoding free-text addresses when needed. All failures are
// non-fatal and recoverable by the next recompute.
type Service struct {
	geocoder ports.Geocoder
	router   ports.RouteProvider
	logger   *zap.Logger

	// now anchors the arrival time, injectable for tests.
	now func() time.Time
}

// NewService creates an ETA service over the given geocoder and router.
func NewService(geocoder ports.Geocoder, router ports.RouteProvider) *Service {
	return &Service{
		geocoder: geocoder,
		router:   router,
		logger:   logger.Named("eta.service"),
		now:      time.Now,
	}
}

// GeocodeAddress resolves a free-text address to coordinates. A miss is
// reported as ErrGeocodingFailed, an upstream failure as ErrTransient.
func (s *Service) GeocodeAddress(ctx context.Context, address string) (*domain.Coordinates, error) {
	coords, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		s.logger.Warn("Geocoding request failed", zap.String("address", address), zap.Error(err))
		return nil, fmt.Errorf("geocoding %q: %w", address, ErrTransient)
	}
	if coords == nil {
		return nil, fmt.Errorf("geocoding %q: %w", address, ErrGeocodingFailed)
	}
	return coords, nil
}

// CalculateETA computes distance, duration and arrival time between two
// coordinates. A missing route is ErrRouteNotFound, an upstream failure
// ErrTransient.
func (s *Service) CalculateETA(ctx context.Context, origin, destination domain.Coordinates) (*domain.ETAResult, error) {
	route, err := s.router.Route(ctx, origin, destination)
	if err != nil {
		s.logger.Warn("Routing request failed", zap.Error(err))
		return nil, fmt.Errorf("routing: %w", ErrTransient)
	}
	if route == nil {
		return nil, ErrRouteNotFound
	}

	return domain.NewETAResult(*route, s.now()), nil
}

// ResolveETA computes an ETA where the destination is either explicit
// coordinates or a free-text address. Explicit coordinates win; an address
// is geocoded once per call, never cached.
func (s *Service) ResolveETA(ctx context.Context, origin domain.Coordinates, destination *domain.Coordinates, address string) (*domain.ETAResult, error) {
	if destination == nil {
		if address == "" {
			return nil, ErrMissingDestination
		}

		coords, err := s.GeocodeAddress(ctx, address)
		if err != nil {
			return nil, err
		}
		destination = coords
	}

	return s.CalculateETA(ctx, origin, *destination)
}
