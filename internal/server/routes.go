package server

import (
	"adwizard/internal/core/identify"
	"adwizard/internal/core/listing"
	"adwizard/internal/core/price"
	"adwizard/internal/core/upload"
	"adwizard/internal/health"
	"adwizard/internal/platform/mongodb"

	"github.com/gofiber/fiber/v2"
)

type Dependencies struct {
	Identify *identify.Service
	Price    *price.Service
	Listing  *listing.Service
	Upload   *upload.Service
	Mongo    *mongodb.Service
}

func RegisterRoutes(app *fiber.App, d Dependencies) *health.HealthHandler {
	// Health endpoints
	healthHandler := health.NewHealthHandler(d.Mongo)
	app.Get("/v1/health", health.HealthLimiter(), healthHandler.HandleHealth)

	api := app.Group("/api")

	identifyHandler := identify.NewHandler(d.Identify)
	api.Post("/identify", identifyHandler.HandleIdentify)
	api.Patch("/identify/validate", identifyHandler.HandleValidate)

	priceHandler := price.NewHandler(d.Price)
	api.Post("/price/update_attributes", priceHandler.HandleUpdateAttributes)
	api.Post("/price/ads/comparables", priceHandler.HandleSearchComparables)
	api.Post("/price/comparables", priceHandler.HandleFetchComparables)
	api.Post("/price/suggest", priceHandler.HandleSuggest)

	listingHandler := listing.NewHandler(d.Listing)
	api.Post("/listing/generate", listingHandler.HandleGenerate)
	api.Get("/listing/ad-process/:id", listingHandler.HandleGetProcess)
	api.Get("/listing/ad-processes", listingHandler.HandleListProcesses)

	uploadHandler := upload.NewHandler(d.Upload)
	api.Post("/upload", uploadHandler.HandleUpload)

	return healthHandler
}
