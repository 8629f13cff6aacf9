package price

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

type updateAttributesRequest struct {
	AdProcessID string `json:"ad_process_id"`
	Brand       string `json:"brand"`
	ModelOrType string `json:"model_or_type"`
}

type adSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type comparablesRequest struct {
	AdProcessID string `json:"ad_process_id"`
}

type suggestionRequest struct {
	AdProcessID string `json:"ad_process_id"`
}

// HandleUpdateAttributes handles POST /api/price/update_attributes.
func (h *Handler) HandleUpdateAttributes(c *fiber.Ctx) error {
	var req updateAttributesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}

	brand, modelOrType, err := h.service.UpdateAttributes(c.Context(), req.AdProcessID, req.Brand, req.ModelOrType)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{"brand": brand, "model_or_type": modelOrType})
}

// HandleSearchComparables handles POST /api/price/ads/comparables, a stateless
// pass-through that returns the search API's JSON verbatim.
func (h *Handler) HandleSearchComparables(c *fiber.Ctx) error {
	var req adSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}

	raw, err := h.service.SearchComparables(c.Context(), req.Query, req.Limit)
	if err != nil {
		return apperr.Respond(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// HandleFetchComparables handles POST /api/price/comparables.
func (h *Handler) HandleFetchComparables(c *fiber.Ctx) error {
	var req comparablesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}

	result, err := h.service.FetchAndStoreComparables(c.Context(), req.AdProcessID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "comparables saved",
		"query":  result.Query,
		"count":  result.Count,
	})
}

// HandleSuggest handles POST /api/price/suggest.
func (h *Handler) HandleSuggest(c *fiber.Ctx) error {
	var req suggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}

	suggestion, err := h.service.Suggest(c.Context(), req.AdProcessID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"status":          "suggestion stored",
		"suggested_price": suggestion["suggested_price"],
		"explanation":     suggestion["explanation"],
	})
}
