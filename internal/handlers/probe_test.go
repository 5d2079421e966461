package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestProbes(t *testing.T) {
	app := fiber.New()
	h := NewProbeHandler(testConfig())
	app.Get("/healthz", h.Liveness)
	app.Get("/readyz", h.Readiness)

	for _, path := range []string{"/healthz", "/readyz"} {
		req, _ := http.NewRequest("GET", path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s failed: %v", path, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestReadinessReportsCollaborators(t *testing.T) {
	cfg := testConfig() // email + signing configured, storage not
	app := fiber.New()
	app.Get("/readyz", NewProbeHandler(cfg).Readiness)

	req, _ := http.NewRequest("GET", "/readyz", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var got struct {
		Status  string `json:"status"`
		Email   bool   `json:"email"`
		Storage bool   `json:"storage"`
		Signing bool   `json:"signing"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Status != "ok" || !got.Email || !got.Signing || got.Storage {
		t.Errorf("readiness = %+v, want ok with email+signing only", got)
	}
}
