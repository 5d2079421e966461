package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/hawkinsjon/hometown-heroes/internal/config"
	"github.com/hawkinsjon/hometown-heroes/internal/storage"
)

// stubStore fakes object storage for handler tests.
type stubStore struct {
	puts []string
}

func (s *stubStore) PresignUpload(_ context.Context, key, _ string) (string, error) {
	return "https://presigned.example.com/" + key, nil
}

func (s *stubStore) PutObject(_ context.Context, key string, _ []byte, _ string) (string, error) {
	s.puts = append(s.puts, key)
	return s.PublicURL(key), nil
}

func (s *stubStore) PublicURL(key string) string {
	return "https://bucket.nyc3.digitaloceanspaces.com/" + key
}

func storageConfig() *config.Config {
	cfg := testConfig()
	cfg.SpacesBucket = "bucket"
	cfg.SpacesEndpoint = "nyc3.digitaloceanspaces.com"
	cfg.SpacesRegion = "nyc3"
	cfg.SpacesAccessKey = "key"
	cfg.SpacesSecretKey = "secret"
	return cfg
}

func newUploadApp(cfg *config.Config, store storage.Store) *fiber.App {
	app := fiber.New()
	h := NewUploadHandler(cfg, store)
	app.Post("/api/upload-image", h.PresignImage)
	return app
}

func TestPresignImageValidation(t *testing.T) {
	app := newUploadApp(storageConfig(), &stubStore{})

	tests := []struct {
		name string
		body string
	}{
		{"missing filename", `{"contentType":"image/jpeg"}`},
		{"missing content type", `{"filename":"a.jpg"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(postJSON("/api/upload-image", tt.body))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestPresignImageStorageDisabled(t *testing.T) {
	app := newUploadApp(testConfig(), nil)

	resp, err := app.Test(postJSON("/api/upload-image", `{"filename":"a.jpg","contentType":"image/jpeg"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestPresignImage(t *testing.T) {
	app := newUploadApp(storageConfig(), &stubStore{})

	resp, err := app.Test(postJSON("/api/upload-image", `{"filename":"my photo.jpg","contentType":"image/jpeg"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got struct {
		UploadURL string `json:"uploadUrl"`
		ObjectKey string `json:"objectKey"`
		PublicURL string `json:"publicUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !strings.HasPrefix(got.ObjectKey, "uploads/") {
		t.Errorf("objectKey = %q, want uploads/ prefix", got.ObjectKey)
	}
	if !strings.HasSuffix(got.ObjectKey, "-my_photo.jpg") {
		t.Errorf("objectKey = %q, want sanitized filename suffix", got.ObjectKey)
	}
	if got.UploadURL == "" || got.PublicURL == "" {
		t.Error("response missing uploadUrl or publicUrl")
	}
}
