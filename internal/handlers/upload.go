package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/hawkinsjon/hometown-heroes/internal/config"
	"github.com/hawkinsjon/hometown-heroes/internal/storage"
	"github.com/hawkinsjon/hometown-heroes/internal/validation"
)

// UploadHandler issues presigned URLs so the browser can upload photos
// directly to object storage before the form is submitted.
type UploadHandler struct {
	cfg   *config.Config
	store storage.Store
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(cfg *config.Config, store storage.Store) *UploadHandler {
	return &UploadHandler{cfg: cfg, store: store}
}

type uploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// PresignImage handles POST /api/upload-image.
func (h *UploadHandler) PresignImage(c fiber.Ctx) error {
	var req uploadRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Filename and content type are required."})
	}
	if req.Filename == "" || req.ContentType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Filename and content type are required."})
	}

	if !h.cfg.IsStorageEnabled() || h.store == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server configuration error: Missing Spaces credentials.",
		})
	}

	key := "uploads/" + uuid.NewString() + "-" + validation.SafeFilename(req.Filename)

	uploadURL, err := h.store.PresignUpload(c.Context(), key, req.ContentType)
	if err != nil {
		log.Printf("[upload-image] presign failed for %s: %v", key, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate upload URL."})
	}

	return c.JSON(fiber.Map{
		"uploadUrl": uploadURL,
		"objectKey": key,
		"publicUrl": h.store.PublicURL(key),
	})
}
