package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vidreacher/vidreacher-api/internal/apperror"
)

// respondError maps service errors onto HTTP responses. Provider rejections
// surface the provider's body so callers can see what the upstream said;
// token material never appears here.
func respondError(c *fiber.Ctx, err error) error {
	var pe *apperror.ProviderError
	switch {
	case errors.As(err, &pe):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Failed to obtain token",
			"details": pe.Body,
		})
	case errors.Is(err, apperror.ErrProviderTimeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"error": "Provider request timed out",
		})
	case errors.Is(err, apperror.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, apperror.ErrStorageUnavailable):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
