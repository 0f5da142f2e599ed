package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vidreacher/vidreacher-api/internal/ai"
	"github.com/vidreacher/vidreacher-api/internal/transfer"
)

type AIHandler struct {
	engine *ai.Engine
}

func NewAIHandler(engine *ai.Engine) *AIHandler {
	return &AIHandler{engine: engine}
}

func (h *AIHandler) Caption(c *fiber.Ctx) error {
	req := transfer.CaptionRequest{
		Tone:     "neutral",
		Length:   "short",
		Platform: "generic",
	}
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

	caption := h.engine.GenerateCaption(c.Context(), req.Text, req.Tone, req.Length, req.Platform)
	return c.JSON(fiber.Map{"caption": caption})
}

func (h *AIHandler) Tags(c *fiber.Ctx) error {
	req := transfer.HashtagRequest{MaxTags: 8}
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

	tags := h.engine.GenerateHashtags(c.Context(), req.Text, req.MaxTags)
	return c.JSON(fiber.Map{"tags": tags})
}

func (h *AIHandler) Summary(c *fiber.Ctx) error {
	req := transfer.SummaryRequest{MaxSentences: 3}
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

	summary := h.engine.SummarizeVideo(c.Context(), req.Transcript, req.MaxSentences)
	return c.JSON(fiber.Map{"summary": summary})
}
