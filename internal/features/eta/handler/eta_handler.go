package handler

import (
	"errors"
	"strconv"

	"fleet-tracker/internal/features/eta/domain"
	"fleet-tracker/internal/features/eta/service"

	"github.com/gofiber/fiber/v2"
)

// ETAHandler handles HTTP requests for arrival estimates.
type ETAHandler struct {
	etaService *service.Service
}

// NewETAHandler creates a new ETAHandler.
func NewETAHandler(etaService *service.Service) *ETAHandler {
	return &ETAHandler{
		etaService: etaService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// GetETA godoc
// @Summary Compute an arrival estimate
// @Description Computes distance, duration and arrival time from an origin to a destination given as coordinates or as a free-text address
// @Tags eta
// @Produce json
// @Param from_lat query number true "Origin latitude"
// @Param from_lon query number true "Origin longitude"
// @Param to_lat query number false "Destination latitude"
// @Param to_lon query number false "Destination longitude"
// @Param address query string false "Destination address, used when coordinates are absent"
// @Success 200 {object} domain.ETAResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /eta [get]
func (h *ETAHandler) GetETA(c *fiber.Ctx) error {
	origin, err := parseCoordinates(c.Query("from_lat"), c.Query("from_lon"))
	if err != nil || origin == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "valid from_lat and from_lon query parameters are required",
			RayID:   c.Locals("requestid").(string),
		})
	}

	destination, err := parseCoordinates(c.Query("to_lat"), c.Query("to_lon"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "to_lat and to_lon must be valid coordinates",
			RayID:   c.Locals("requestid").(string),
		})
	}

	result, err := h.etaService.ResolveETA(c.Context(), *origin, destination, c.Query("address"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingDestination):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: "destination coordinates or address is required",
				RayID:   c.Locals("requestid").(string),
			})
		case errors.Is(err, service.ErrGeocodingFailed):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "destination not found",
				RayID:   c.Locals("requestid").(string),
			})
		case errors.Is(err, service.ErrRouteNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "no route to destination",
				RayID:   c.Locals("requestid").(string),
			})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
				Message: "routing temporarily unavailable",
				RayID:   c.Locals("requestid").(string),
			})
		}
	}

	return c.JSON(result)
}

// parseCoordinates parses a lat/lon query pair. Both empty means absent
// (nil, nil); anything else must be two valid floats.
func parseCoordinates(latStr, lonStr string) (*domain.Coordinates, error) {
	if latStr == "" && lonStr == "" {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, err
	}

	return &domain.Coordinates{Latitude: lat, Longitude: lon}, nil
}
