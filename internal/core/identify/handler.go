package identify

import (
	"github.com/gofiber/fiber/v2"

	"adwizard/internal/apperr"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type identifyRequest struct {
	AdProcessID string   `json:"ad_process_id"`
	UserID      string   `json:"user_id"`
	ImageURLs   []string `json:"image_urls"`
}

type validateRequest struct {
	AdProcessID   string         `json:"ad_process_id"`
	ValidatedData map[string]any `json:"validated_data"`
}

// HandleIdentify handles POST /api/identify.
func (h *Handler) HandleIdentify(c *fiber.Ctx) error {
	var req identifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}

	result, err := h.service.Identify(c.Context(), req.AdProcessID, req.UserID, req.ImageURLs)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"status":         "success",
		"ad_process_id":  result.AdProcessID,
		"identification": result.Identification,
	})
}

// HandleValidate handles PATCH /api/identify/validate.
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	var req validateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}

	if err := h.service.Validate(c.Context(), req.AdProcessID, req.ValidatedData); err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{"status": "validation stored"})
}
