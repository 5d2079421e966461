package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/hawkinsjon/hometown-heroes/internal/actionlink"
	"github.com/hawkinsjon/hometown-heroes/internal/config"
	"github.com/hawkinsjon/hometown-heroes/internal/email"
	"github.com/hawkinsjon/hometown-heroes/internal/events"
	"github.com/hawkinsjon/hometown-heroes/internal/metrics"
)

// ReviewHandler serves the signed review links embedded in submission emails:
// rendering the compose form and dispatching the composed message.
type ReviewHandler struct {
	cfg       *config.Config
	sender    email.Sender
	templates *email.Templates
	now       func() time.Time
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(cfg *config.Config, sender email.Sender, templates *email.Templates) *ReviewHandler {
	return &ReviewHandler{
		cfg:       cfg,
		sender:    sender,
		templates: templates,
		now:       time.Now,
	}
}

// Render verifies an action link and renders the compose form, pre-filled
// with a default message for the link's action.
func (h *ReviewHandler) Render(c fiber.Ctx) error {
	startedAt := time.Now()

	action := c.Query("action")
	actor := c.Query("actor")
	data := c.Query("data")
	sig := c.Query("sig")

	if !h.cfg.HasActionLinkSecret() {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid or missing parameters.")
	}

	payload, err := actionlink.ParseAndVerify(action, actor, data, sig, []byte(h.cfg.ActionLinkSecret))
	if err != nil {
		switch {
		case errors.Is(err, actionlink.ErrMissingParameter):
			return c.Status(fiber.StatusBadRequest).SendString("Invalid or missing parameters.")
		case errors.Is(err, actionlink.ErrInvalidSignature):
			return c.Status(fiber.StatusBadRequest).SendString("Invalid signature.")
		default:
			// Signed but undecodable payload. Should not happen; treat as internal.
			log.Printf("[review] decode after verify failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to render review page")
		}
	}

	isAdmin := actor == actionlink.ActorAdmin
	approved := action == actionlink.ActionApprove

	// The FYI copy goes to the opposite internal group.
	alertGroup := h.cfg.AdminEmails()
	alertGroupName := "the Admin group"
	if isAdmin {
		alertGroup = h.cfg.TownEmails()
		alertGroupName = "the Town Clerk group"
	}
	alertGroupLabel := strings.Join(alertGroup, ", ")
	if alertGroupLabel == "" {
		alertGroupLabel = alertGroupName
	}

	greeting := payload.RecipientEmail
	if greeting == "" {
		if isAdmin {
			greeting = "Admin"
		} else {
			greeting = "Town Clerk"
		}
	}

	var subject, body string
	if approved {
		eventPhrase := events.SuggestedEventPhrase(h.now(), events.DefaultCutoffDays)
		subject = h.templates.DefaultApproveSubject(payload.VeteranName)
		body = h.templates.DefaultApproveMessage(payload.SponsorName, payload.VeteranName, eventPhrase)
	} else {
		subject = h.templates.DefaultIssueSubject()
		body = h.templates.DefaultIssueMessage(payload.SponsorName, payload.VeteranName, h.cfg.PrimaryAdminEmail())
	}

	title := "Flag Submission for Update"
	if approved {
		title = "Approve Submission"
	}

	err = c.Render("review", fiber.Map{
		"Title":        title,
		"Approved":     approved,
		"Greeting":     greeting,
		"SponsorName":  payload.SponsorName,
		"SponsorEmail": payload.SponsorEmail,
		"VeteranName":  payload.VeteranName,
		"AlertGroup":   alertGroupLabel,
		"Action":       action,
		"Actor":        actor,
		"Data":         data,
		"Sig":          sig,
		"Subject":      subject,
		"Body":         body,
		"SubmitURL":    baseURL(c, h.cfg) + "/api/send-review-action",
	})
	if err != nil {
		log.Printf("[review] render failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render review page")
	}

	renderMs := time.Since(startedAt).Milliseconds()
	log.Printf("[review] render complete renderMs=%d actor=%s action=%s", renderMs, actor, action)
	c.Set("X-Render-Time-ms", strconv.FormatInt(renderMs, 10))
	metrics.RecordReviewRender(action, actor)

	return nil
}

// Dispatch re-verifies an action link and sends the composed message: once to
// the applicant, and an FYI copy to the union of both internal groups. Each
// send is best-effort; email failures are logged and never fail the request.
func (h *ReviewHandler) Dispatch(c fiber.Ctx) error {
	action := c.FormValue("action")
	actor := c.FormValue("actor")
	data := c.FormValue("data")
	sig := c.FormValue("sig")
	subject := c.FormValue("subject")
	body := c.FormValue("body")

	if action == "" || actor == "" || data == "" || sig == "" || subject == "" || body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	if !h.cfg.HasActionLinkSecret() || !h.cfg.IsEmailEnabled() {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server missing configuration"})
	}

	// Verification happens here independently of the render step; the form
	// round-trip is not trusted.
	payload, err := actionlink.ParseAndVerify(action, actor, data, sig, []byte(h.cfg.ActionLinkSecret))
	if err != nil {
		if errors.Is(err, actionlink.ErrDecode) {
			log.Printf("[review-action] decode after verify failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to send email")
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid signature"})
	}

	sponsorEmail := strings.TrimSpace(payload.SponsorEmail)
	if sponsorEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing sponsor email in payload"})
	}

	isAdmin := actor == actionlink.ActorAdmin
	senderEmail := strings.TrimSpace(payload.RecipientEmail)
	adminPrimary := h.cfg.PrimaryAdminEmail()

	replyTo := adminPrimary
	if replyTo == "" {
		replyTo = senderEmail
	}

	log.Printf("[review-action] sending applicant email to=%s veteran=%q sponsor=%s", sponsorEmail, payload.VeteranName, payload.SponsorEmail)

	allowReplyCTA := action != actionlink.ActionApprove
	applicantHTML := h.templates.ApplicantMessage(body, subject, replyTo, allowReplyCTA)

	err = h.sender.Send(c.Context(), email.Message{
		To:      []string{sponsorEmail},
		Subject: subject,
		HTML:    applicantHTML,
		ReplyTo: replyTo,
	})
	metrics.RecordEmailSend("applicant", err)
	if err != nil {
		log.Printf("[review-action] applicant email failed: %v", err)
	}

	// Both internal groups always learn an action was taken, regardless of
	// which group took it.
	bothGroups := dedupe(h.cfg.AdminEmails(), h.cfg.TownEmails())

	actorIdentity := senderEmail
	if actorIdentity == "" {
		if isAdmin {
			actorIdentity = "Admin"
		} else {
			actorIdentity = "Town Clerk"
		}
	}

	if len(bothGroups) > 0 {
		fyiSubject := h.templates.FYISubject(payload.SponsorName, payload.VeteranName)
		log.Printf("[review-action] notifying groups to=%s actor=%s", strings.Join(bothGroups, ","), actorIdentity)

		fyiHTML := h.templates.FYIMessage(email.FYIParams{
			SponsorName:   payload.SponsorName,
			SponsorEmail:  payload.SponsorEmail,
			VeteranName:   payload.VeteranName,
			ActorIdentity: actorIdentity,
			Subject:       subject,
			Body:          body,
		})

		err = h.sender.Send(c.Context(), email.Message{
			To:      bothGroups,
			Subject: fyiSubject,
			HTML:    fyiHTML,
			ReplyTo: senderEmail,
		})
		metrics.RecordEmailSend("fyi", err)
		if err != nil {
			log.Printf("[review-action] group notify email failed: %v", err)
		}
	}

	metrics.RecordReviewDispatch(action, actor)

	return c.Render("sent", fiber.Map{
		"Title":     "Message Sent",
		"Applicant": sponsorEmail,
		"Sender":    senderEmail,
		"Groups":    strings.Join(bothGroups, ", "),
	})
}
