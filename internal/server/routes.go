package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hawkinsjon/hometown-heroes/internal/email"
	"github.com/hawkinsjon/hometown-heroes/internal/handlers"
	"github.com/hawkinsjon/hometown-heroes/internal/pdf"
	"github.com/hawkinsjon/hometown-heroes/internal/storage"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(store storage.Store, sender email.Sender, templates *email.Templates, contracts *pdf.Generator) {
	// Initialize handlers
	reviewHandler := handlers.NewReviewHandler(s.Cfg, sender, templates)
	submissionHandler := handlers.NewSubmissionHandler(s.Cfg, store, sender, templates, contracts)
	uploadHandler := handlers.NewUploadHandler(s.Cfg, store)
	mailHandler := handlers.NewMailHandler(s.Cfg, sender)
	probeHandler := handlers.NewProbeHandler(s.Cfg)

	// Review links embedded in submission emails
	s.App.Get("/review", reviewHandler.Render)
	s.App.Post("/api/send-review-action", reviewHandler.Dispatch)

	// Application intake
	s.App.Post("/api/submit-banner", submissionHandler.Submit)
	s.App.Post("/api/upload-image", uploadHandler.PresignImage)
	s.App.Post("/api/send-email", mailHandler.Send)

	// Operational endpoints
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Built frontend assets, with an SPA fallback so client-side routes
	// resolve on hard refresh. Must be registered last.
	s.App.Get("/*", static.New("./dist"))
	s.App.Use(func(c fiber.Ctx) error {
		return c.SendFile("./dist/index.html")
	})
}
