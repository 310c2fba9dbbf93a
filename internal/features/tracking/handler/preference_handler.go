package handler

import (
	"fleet-tracker/internal/features/tracking/ports"

	"github.com/gofiber/fiber/v2"
)

// PreferenceHandler handles HTTP requests for the per-driver auto-tracking
// preference.
type PreferenceHandler struct {
	prefs ports.PreferenceStore
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(prefs ports.PreferenceStore) *PreferenceHandler {
	return &PreferenceHandler{
		prefs: prefs,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// PreferenceResponse is the auto-tracking preference of one driver.
type PreferenceResponse struct {
	// DriverID identifies the driver.
	DriverID string `json:"driver_id"`
	// Enabled reports whether tracking auto-resumes for this driver.
	Enabled bool `json:"enabled"`
}

// PreferenceRequest is the body for updating a preference.
type PreferenceRequest struct {
	// Enabled is the new preference value.
	Enabled bool `json:"enabled"`
}

// GetPreference godoc
// @Summary Read a driver's auto-tracking preference
// @Description Returns whether tracking auto-resumes for the driver; an unset preference reads as disabled
// @Tags tracking
// @Produce json
// @Param driverID path string true "Driver identifier"
// @Success 200 {object} PreferenceResponse
// @Failure 502 {object} ErrorResponse
// @Router /tracking/autotrack/{driverID} [get]
func (h *PreferenceHandler) GetPreference(c *fiber.Ctx) error {
	driverID := c.Params("driverID")

	enabled, err := h.prefs.AutoTrackingEnabled(c.Context(), driverID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: "preference store unavailable",
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(PreferenceResponse{
		DriverID: driverID,
		Enabled:  enabled,
	})
}

// SetPreference godoc
// @Summary Update a driver's auto-tracking preference
// @Description Persists whether tracking should auto-resume for the driver
// @Tags tracking
// @Accept json
// @Produce json
// @Param driverID path string true "Driver identifier"
// @Param preference body PreferenceRequest true "New preference"
// @Success 200 {object} PreferenceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /tracking/autotrack/{driverID} [put]
func (h *PreferenceHandler) SetPreference(c *fiber.Ctx) error {
	driverID := c.Params("driverID")

	var req PreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	if err := h.prefs.SetAutoTracking(c.Context(), driverID, req.Enabled); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: "preference store unavailable",
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(PreferenceResponse{
		DriverID: driverID,
		Enabled:  req.Enabled,
	})
}
