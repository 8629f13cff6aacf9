package listing

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

type generateRequest struct {
	AdProcessID string `json:"ad_process_id"`
}

// HandleGenerate handles POST /api/listing/generate.
func (h *Handler) HandleGenerate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}

	generated, err := h.service.Generate(c.Context(), req.AdProcessID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "listing generated",
		"title":  generated["title"],
	})
}

// HandleGetProcess handles GET /api/listing/ad-process/:id.
func (h *Handler) HandleGetProcess(c *fiber.Ctx) error {
	projection, err := h.service.GetProcess(c.Context(), c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(projection)
}

// HandleListProcesses handles GET /api/listing/ad-processes?user_id=.
func (h *Handler) HandleListProcesses(c *fiber.Ctx) error {
	processes, err := h.service.ListProcesses(c.Context(), c.Query("user_id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(processes)
}
