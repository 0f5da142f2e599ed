package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vidreacher/vidreacher-api/internal/apperror"
	"github.com/vidreacher/vidreacher-api/internal/service"
)

type AnalyticsHandler struct {
	s service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{s: service}
}

func (h *AnalyticsHandler) Latest(c *fiber.Ctx) error {
	snap, err := h.s.Latest(c.Context(), c.Params("platform"))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No metrics found",
			})
		}
		return respondError(c, err)
	}
	return c.JSON(snap)
}

func (h *AnalyticsHandler) History(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	rows, err := h.s.History(c.Context(), c.Params("platform"), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	result, err := h.s.Overview(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Collect triggers a snapshot run outside the daily schedule.
func (h *AnalyticsHandler) Collect(c *fiber.Ctx) error {
	if err := h.s.CollectAll(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
