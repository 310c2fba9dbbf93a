package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fleet-tracker/internal/core/httpclient"
	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/features/eta/domain"

	"go.uber.org/zap"
)

// OSRMAdapter implements the RouteProvider port against an OSRM-compatible
// routing server using the driving profile.
type OSRMAdapter struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewOSRMAdapter creates a route provider for the given base URL.
func NewOSRMAdapter(baseURL string) *OSRMAdapter {
	return &OSRMAdapter{
		baseURL: baseURL,
		client:  httpclient.NewClient(10 * time.Second),
		logger:  logger.Named("eta.router"),
	}
}

// osrmResponse is the subset of the route response the engine consumes.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// Route queries the driving route between two coordinates and returns the
// best-ranked one. OSRM orders coordinates longitude-first.
func (a *OSRMAdapter) Route(ctx context.Context, origin, destination domain.Coordinates) (*domain.Route, error) {
	reqURL := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		a.baseURL,
		origin.Longitude, origin.Latitude,
		destination.Longitude, destination.Latitude,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create routing request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routing request failed: %w", err)
	}
	defer resp.Body.Close()

	// OSRM answers NoRoute with a 400, so parse the body before judging
	// the status code.
	var out osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode routing response: %w", err)
	}

	if out.Code != "Ok" || len(out.Routes) == 0 {
		a.logger.Warn("No route between coordinates",
			zap.String("code", out.Code),
			zap.Float64("origin_lat", origin.Latitude),
			zap.Float64("origin_lon", origin.Longitude),
		)
		return nil, nil
	}

	return &domain.Route{
		DistanceMeters:  out.Routes[0].Distance,
		DurationSeconds: out.Routes[0].Duration,
	}, nil
}

// HealthCheck verifies that the routing server answers a trivial query.
func (a *OSRMAdapter) HealthCheck(ctx context.Context) error {
	probe := domain.Coordinates{Latitude: 48.8566, Longitude: 2.3522}
	if _, err := a.Route(ctx, probe, probe); err != nil {
		return fmt.Errorf("routing health check failed: %w", err)
	}
	return nil
}
