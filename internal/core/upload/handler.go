package upload

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"adwizard/internal/apperr"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleUpload handles POST /api/upload (multipart form, field "file").
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "file is required"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return apperr.Respond(c, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return apperr.Respond(c, err)
	}

	url, err := h.service.Store(c.Context(), data, fileHeader.Filename, c.BaseURL())
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{"url": url})
}
