package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/hawkinsjon/hometown-heroes/internal/config"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	cfg *config.Config
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(cfg *config.Config) *ProbeHandler {
	return &ProbeHandler{cfg: cfg}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// The service is stateless, so readiness only reports which collaborators
// are configured.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"email":   h.cfg.IsEmailEnabled(),
		"storage": h.cfg.IsStorageEnabled(),
		"signing": h.cfg.HasActionLinkSecret(),
	})
}
