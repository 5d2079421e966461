package email

import (
	"context"
	"log"

	"github.com/resend/resend-go/v2"

	"github.com/hawkinsjon/hometown-heroes/internal/config"
)

// Attachment is a file included with a message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is a single outbound email.
type Message struct {
	From        string // optional override of the configured sender
	To          []string
	Subject     string
	HTML        string
	Text        string
	ReplyTo     string
	Attachments []Attachment
}

// Sender delivers messages. Handlers depend on this interface so tests can
// inject a stub that records calls without hitting the network.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Service sends email through the Resend API.
type Service struct {
	cfg     *config.Config
	client  *resend.Client
	enabled bool
}

// NewService creates a new email service.
func NewService(cfg *config.Config) *Service {
	s := &Service{
		cfg:     cfg,
		enabled: cfg.IsEmailEnabled(),
	}

	if s.enabled {
		s.client = resend.NewClient(cfg.ResendAPIKey)
		log.Printf("Email delivery enabled (from: %s)", cfg.EmailFrom)
	} else {
		log.Println("Email delivery disabled (RESEND_API_KEY not set)")
	}

	return s
}

// IsEnabled returns true if email delivery is configured.
func (s *Service) IsEnabled() bool {
	return s.enabled
}

// Send delivers a single message. It returns nil without doing anything when
// the service is disabled or the message has no recipients.
func (s *Service) Send(ctx context.Context, msg Message) error {
	if !s.enabled || len(msg.To) == 0 {
		return nil
	}

	from := msg.From
	if from == "" {
		from = s.cfg.EmailFrom
		if s.cfg.EmailFromName != "" {
			from = s.cfg.EmailFromName + " <" + s.cfg.EmailFrom + ">"
		}
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}
	for _, a := range msg.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	return err
}
