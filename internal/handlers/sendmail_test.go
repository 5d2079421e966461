package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/hawkinsjon/hometown-heroes/internal/config"
	"github.com/hawkinsjon/hometown-heroes/internal/email"
)

func newMailApp(cfg *config.Config, sender email.Sender) *fiber.App {
	app := fiber.New()
	h := NewMailHandler(cfg, sender)
	app.Post("/api/send-email", h.Send)
	return app
}

func postJSON(path, body string) *http.Request {
	req, _ := http.NewRequest("POST", path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSendMailRecipients(t *testing.T) {
	tests := []struct {
		name string
		to   string
		want []string
	}{
		{"single string", `"a@example.com"`, []string{"a@example.com"}},
		{"array", `["a@example.com","b@example.com"]`, []string{"a@example.com", "b@example.com"}},
		{"array with blanks", `["a@example.com",""," "]`, []string{"a@example.com"}},
		{"empty string", `""`, nil},
		{"number", `42`, nil},
		{"null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sendMailRequest{To: json.RawMessage(tt.to)}
			got := req.recipients()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("recipients() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSendMailValidation(t *testing.T) {
	app := newMailApp(testConfig(), &stubSender{})

	tests := []struct {
		name string
		body string
	}{
		{"missing to", `{"subject":"s","text":"t"}`},
		{"missing subject", `{"to":"a@example.com","text":"t"}`},
		{"missing content", `{"to":"a@example.com","subject":"s"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(postJSON("/api/send-email", tt.body))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestSendMailDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.ResendAPIKey = ""
	app := newMailApp(cfg, &stubSender{})

	resp, err := app.Test(postJSON("/api/send-email", `{"to":"a@example.com","subject":"s","text":"t"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestSendMailDelivers(t *testing.T) {
	sender := &stubSender{}
	app := newMailApp(testConfig(), sender)

	resp, err := app.Test(postJSON("/api/send-email",
		`{"to":["a@example.com","b@example.com"],"subject":"Hello","html":"<p>Hi</p>","from":"custom@example.com"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}

	msgs := sender.messages()
	if len(msgs) != 1 {
		t.Fatalf("sent %d messages, want 1", len(msgs))
	}
	msg := msgs[0]
	if len(msg.To) != 2 || msg.To[0] != "a@example.com" {
		t.Errorf("recipients = %v", msg.To)
	}
	if msg.From != "custom@example.com" {
		t.Errorf("from = %q, want the requested override", msg.From)
	}
	if !strings.Contains(msg.HTML, "<p>Hi</p>") {
		t.Errorf("html body = %q", msg.HTML)
	}
}

func TestSendMailProviderError(t *testing.T) {
	sender := &stubSender{err: io.ErrUnexpectedEOF}
	app := newMailApp(testConfig(), sender)

	resp, err := app.Test(postJSON("/api/send-email", `{"to":"a@example.com","subject":"s","text":"t"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}
