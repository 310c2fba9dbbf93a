package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"fleet-tracker/internal/features/fleet/domain"
	"fleet-tracker/internal/features/fleet/registry"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(reg *registry.Registry) *fiber.App {
	handler := NewFleetHandler(reg)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Get("/fleet/drivers", handler.GetDrivers)
	return app
}

// TestFleetHandler_GetDrivers verifies the full snapshot listing.
func TestFleetHandler_GetDrivers(t *testing.T) {
	reg := registry.New(5 * time.Minute)
	reg.Upsert(domain.DriverLocation{DriverID: "drv-1", DeliveryID: "cmd-1", Latitude: 48.85, Longitude: 2.35})
	reg.Upsert(domain.DriverLocation{DriverID: "drv-2", Latitude: 45.76, Longitude: 4.83})

	app := newApp(reg)

	req := httptest.NewRequest("GET", "/fleet/drivers", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result DriversResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 2, result.Count)
	assert.Len(t, result.Drivers, 2)
}

// TestFleetHandler_GetDrivers_DeliveryFilter verifies scoping to one delivery.
func TestFleetHandler_GetDrivers_DeliveryFilter(t *testing.T) {
	reg := registry.New(5 * time.Minute)
	reg.Upsert(domain.DriverLocation{DriverID: "drv-1", DeliveryID: "cmd-1"})
	reg.Upsert(domain.DriverLocation{DriverID: "drv-2", DeliveryID: "cmd-2"})

	app := newApp(reg)

	req := httptest.NewRequest("GET", "/fleet/drivers?delivery_id=cmd-2", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result DriversResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "drv-2", result.Drivers[0].DriverID)
}

// TestFleetHandler_GetDrivers_Empty verifies an empty registry yields an
// empty list, not an error.
func TestFleetHandler_GetDrivers_Empty(t *testing.T) {
	app := newApp(registry.New(5 * time.Minute))

	req := httptest.NewRequest("GET", "/fleet/drivers", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result DriversResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Zero(t, result.Count)
}
