package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"fleet-tracker/internal/core/cache"
	adapter "fleet-tracker/internal/features/tracking/adapters"
	"fleet-tracker/internal/features/tracking/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore is a PreferenceStore double that always fails.
type failingStore struct{}

func (failingStore) AutoTrackingEnabled(context.Context, string) (bool, error) {
	return false, errors.New("store down")
}

func (failingStore) SetAutoTracking(context.Context, string, bool) error {
	return errors.New("store down")
}

func newApp(prefs ports.PreferenceStore) *fiber.App {
	handler := NewPreferenceHandler(prefs)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Get("/tracking/autotrack/:driverID", handler.GetPreference)
	app.Put("/tracking/autotrack/:driverID", handler.SetPreference)
	return app
}

func newRedisStore(t *testing.T) *adapter.RedisPreferenceStore {
	s := miniredis.RunT(t)

	redisCache, err := cache.NewRedisAdapter("redis://" + s.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { redisCache.Close() })

	return adapter.NewRedisPreferenceStore(redisCache)
}

// TestPreferenceHandler_Roundtrip verifies a written preference reads back.
func TestPreferenceHandler_Roundtrip(t *testing.T) {
	app := newApp(newRedisStore(t))

	body, _ := json.Marshal(PreferenceRequest{Enabled: true})
	req := httptest.NewRequest("PUT", "/tracking/autotrack/drv-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/tracking/autotrack/drv-1", nil)
	resp, err = app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result PreferenceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "drv-1", result.DriverID)
	assert.True(t, result.Enabled)
}

// TestPreferenceHandler_GetPreference_Unset verifies an unset preference
// reads as disabled.
func TestPreferenceHandler_GetPreference_Unset(t *testing.T) {
	app := newApp(newRedisStore(t))

	req := httptest.NewRequest("GET", "/tracking/autotrack/drv-unknown", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result PreferenceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.Enabled)
}

// TestPreferenceHandler_SetPreference_InvalidBody verifies body validation.
func TestPreferenceHandler_SetPreference_InvalidBody(t *testing.T) {
	app := newApp(newRedisStore(t))

	req := httptest.NewRequest("PUT", "/tracking/autotrack/drv-1", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, "test-ray-id", errResp.RayID)
}

// TestPreferenceHandler_StoreUnavailable verifies both endpoints map store
// failures to 502.
func TestPreferenceHandler_StoreUnavailable(t *testing.T) {
	app := newApp(failingStore{})

	req := httptest.NewRequest("GET", "/tracking/autotrack/drv-1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	body, _ := json.Marshal(PreferenceRequest{Enabled: true})
	req = httptest.NewRequest("PUT", "/tracking/autotrack/drv-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}
