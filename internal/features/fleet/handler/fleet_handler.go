package handler

import (
	"fleet-tracker/internal/features/fleet/domain"
	"fleet-tracker/internal/features/fleet/registry"

	"github.com/gofiber/fiber/v2"
)

// FleetHandler handles HTTP requests for live driver positions.
type FleetHandler struct {
	registry *registry.Registry
}

// NewFleetHandler creates a new FleetHandler.
func NewFleetHandler(reg *registry.Registry) *FleetHandler {
	return &FleetHandler{
		registry: reg,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// DriversResponse is the payload for the driver listing endpoint.
type DriversResponse struct {
	// Drivers is the snapshot of live driver positions.
	Drivers []domain.DriverLocation `json:"drivers"`
	// Count is the number of drivers returned.
	Count int `json:"count"`
}

// GetDrivers godoc
// @Summary List live driver positions
// @Description Returns the last-known position of every broadcasting driver, optionally scoped to one delivery
// @Tags fleet
// @Produce json
// @Param delivery_id query string false "Only drivers associated with this delivery"
// @Success 200 {object} DriversResponse
// @Router /fleet/drivers [get]
func (h *FleetHandler) GetDrivers(c *fiber.Ctx) error {
	var drivers []domain.DriverLocation

	if deliveryID := c.Query("delivery_id"); deliveryID != "" {
		drivers = h.registry.ByDeliveryID(deliveryID)
	} else {
		drivers = h.registry.All()
	}

	return c.JSON(DriversResponse{
		Drivers: drivers,
		Count:   len(drivers),
	})
}
