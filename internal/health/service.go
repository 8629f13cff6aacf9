package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"adwizard/internal/logger"
	"adwizard/internal/platform/mongodb"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	log       *logger.Logger
	mongo     *mongodb.Service
	startTime time.Time
	isReady   bool
}

// NewHealthHandler creates a new instance of HealthHandler
func NewHealthHandler(mongo *mongodb.Service) *HealthHandler {
	return &HealthHandler{
		log:       logger.New("HealthCheck"),
		mongo:     mongo,
		startTime: time.Now(),
		isReady:   false,
	}
}

// SetReady marks the application as ready to receive traffic
func (h *HealthHandler) SetReady() {
	h.isReady = true
	h.log.LogInfof("Application marked as ready for traffic after %v", time.Since(h.startTime))
}

// ComponentStatus holds the status of a dependent component
type ComponentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// OverallHealth represents the overall health status including components
type OverallHealth struct {
	OverallStatus string                     `json:"overall_status"`
	Timestamp     string                     `json:"timestamp"`
	Ready         bool                       `json:"ready"`
	UptimeSeconds int64                      `json:"uptime_seconds"`
	Components    map[string]ComponentStatus `json:"components"`
}

// HandleHealth responds with the system's health status, including dependencies
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 8*time.Second)
	defer cancel()

	statuses := make(map[string]ComponentStatus)
	allOk := true

	mongoStatus := ComponentStatus{Status: "ok"}
	if err := h.mongo.HealthCheck(ctx); err != nil {
		mongoStatus = ComponentStatus{Status: "error", Error: err.Error()}
		allOk = false
	}
	statuses["mongodb"] = mongoStatus

	response := OverallHealth{
		Timestamp:     time.Now().UTC().Format(time.RFC3339Nano),
		Ready:         h.isReady,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Components:    statuses,
	}

	if allOk && h.isReady {
		response.OverallStatus = "ok"
		return c.Status(http.StatusOK).JSON(response)
	}

	if !h.isReady {
		response.OverallStatus = "starting"
		return c.Status(http.StatusServiceUnavailable).JSON(response)
	}

	response.OverallStatus = "degraded"
	return c.Status(http.StatusServiceUnavailable).JSON(response)
}

// HealthLimiter guards the health endpoint against hammering
func HealthLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        30,
		Expiration: 30 * time.Second,
	})
}
