package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/vidreacher/vidreacher-api/internal/apperror"
	"github.com/vidreacher/vidreacher-api/internal/service"
	"github.com/vidreacher/vidreacher-api/internal/transfer"
)

type SchedulerHandler struct {
	s service.PostService
}

func NewSchedulerHandler(service service.PostService) *SchedulerHandler {
	return &SchedulerHandler{s: service}
}

func (h *SchedulerHandler) Create(c *fiber.Ctx) error {
	var req transfer.SchedulePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	id, err := h.s.Schedule(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Post scheduled successfully",
		"id":      id,
	})
}

func (h *SchedulerHandler) List(c *fiber.Ctx) error {
	posts, err := h.s.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

func (h *SchedulerHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid post id",
		})
	}

	if err := h.s.Remove(c.Context(), id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Post not found",
			})
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}
