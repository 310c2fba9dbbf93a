package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleet-tracker/internal/features/eta/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOSRMAdapter_Route_Success verifies the lon-lat coordinate order and
// that the first route wins.
func TestOSRMAdapter_Route_Success(t *testing.T) {
	mockResponse := `{
		"code": "Ok",
		"routes": [
			{"distance": 2500.0, "duration": 600.0},
			{"distance": 9999.0, "duration": 9999.0}
		]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/route/v1/driving/2.352200,48.856600;2.360500,48.855800", r.URL.Path)
		assert.Equal(t, "false", r.URL.Query().Get("overview"))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	adapter := NewOSRMAdapter(server.URL)
	route, err := adapter.Route(context.Background(),
		domain.Coordinates{Latitude: 48.8566, Longitude: 2.3522},
		domain.Coordinates{Latitude: 48.8558, Longitude: 2.3605},
	)

	require.NoError(t, err)
	require.NotNil(t, route)
	assert.Equal(t, 2500.0, route.DistanceMeters)
	assert.Equal(t, 600.0, route.DurationSeconds)
}

// TestOSRMAdapter_Route_NoRoute verifies a NoRoute answer is absence, not
// an error.
func TestOSRMAdapter_Route_NoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer server.Close()

	adapter := NewOSRMAdapter(server.URL)
	route, err := adapter.Route(context.Background(),
		domain.Coordinates{Latitude: 48.85, Longitude: 2.35},
		domain.Coordinates{Latitude: -90, Longitude: 0},
	)

	require.NoError(t, err)
	assert.Nil(t, route)
}

// TestOSRMAdapter_Route_BadBody verifies unparseable responses surface as
// errors.
func TestOSRMAdapter_Route_BadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	adapter := NewOSRMAdapter(server.URL)
	_, err := adapter.Route(context.Background(),
		domain.Coordinates{Latitude: 48.85, Longitude: 2.35},
		domain.Coordinates{Latitude: 48.86, Longitude: 2.36},
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode routing response")
}

// TestOSRMAdapter_HealthCheck verifies the probe succeeds against a healthy
// server and fails against an unreachable one.
func TestOSRMAdapter_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"code": "Ok", "routes": [{"distance": 0, "duration": 0}]}`))
	}))
	defer server.Close()

	adapter := NewOSRMAdapter(server.URL)
	assert.NoError(t, adapter.HealthCheck(context.Background()))

	down := NewOSRMAdapter("http://127.0.0.1:1")
	assert.Error(t, down.HealthCheck(context.Background()))
}
