package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fleet-tracker/internal/core/httpclient"
	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/features/eta/domain"

	"go.uber.org/zap"
)

// NominatimAdapter implements the Geocoder port against a
// Nominatim-compatible search endpoint, restricted to one country.
type NominatimAdapter struct {
	baseURL     string
	countryCode string
	client      *http.Client
	logger      *zap.Logger
}

// NewNominatimAdapter creates a geocoder for the given base URL, restricted
// to the given ISO country code.
func NewNominatimAdapter(baseURL, countryCode string) *NominatimAdapter {
	return &NominatimAdapter{
		baseURL:     baseURL,
		countryCode: countryCode,
		client:      httpclient.NewClient(10 * time.Second),
		logger:      logger.Named("eta.geocoder"),
	}
}

// nominatimResult is one entry of the search response. Nominatim returns
// coordinates as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves an address to its single best match.
func (a *NominatimAdapter) Geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("countrycodes", a.countryCode)

	reqURL := fmt.Sprintf("%s/search?%s", a.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoding request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status: %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	if len(results) == 0 {
		a.logger.Warn("No geocoding match for address", zap.String("address", address))
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocoding response: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocoding response: %w", err)
	}

	return &domain.Coordinates{Latitude: lat, Longitude: lon}, nil
}
