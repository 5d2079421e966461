package handlers

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/hawkinsjon/hometown-heroes/internal/config"
	"github.com/hawkinsjon/hometown-heroes/internal/email"
	"github.com/hawkinsjon/hometown-heroes/internal/metrics"
)

// MailHandler exposes a minimal send endpoint used by the committee's
// internal tooling.
type MailHandler struct {
	cfg    *config.Config
	sender email.Sender
}

// NewMailHandler creates a new mail handler.
func NewMailHandler(cfg *config.Config, sender email.Sender) *MailHandler {
	return &MailHandler{cfg: cfg, sender: sender}
}

type sendMailRequest struct {
	To      json.RawMessage `json:"to"`
	Subject string          `json:"subject"`
	Text    string          `json:"text"`
	HTML    string          `json:"html"`
	From    string          `json:"from"`
}

// recipients accepts either a single address or an array of addresses.
func (r *sendMailRequest) recipients() []string {
	var one string
	if err := json.Unmarshal(r.To, &one); err == nil {
		one = strings.TrimSpace(one)
		if one == "" {
			return nil
		}
		return []string{one}
	}

	var many []string
	if err := json.Unmarshal(r.To, &many); err != nil {
		return nil
	}
	var out []string
	for _, addr := range many {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Send handles POST /api/send-email.
func (h *MailHandler) Send(c fiber.Ctx) error {
	var req sendMailRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	to := req.recipients()
	if len(to) == 0 || req.Subject == "" || (req.Text == "" && req.HTML == "") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields: to, subject, and text or html",
		})
	}

	if !h.cfg.IsEmailEnabled() {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server missing configuration"})
	}

	err := h.sender.Send(c.Context(), email.Message{
		From:    req.From,
		To:      to,
		Subject: req.Subject,
		HTML:    req.HTML,
		Text:    req.Text,
	})
	metrics.RecordEmailSend("direct", err)
	if err != nil {
		log.Printf("[send-email] send to %s failed: %v", strings.Join(to, ","), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send email"})
	}

	return c.JSON(fiber.Map{"message": "Email sent successfully"})
}
