package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/hawkinsjon/hometown-heroes/internal/actionlink"
	"github.com/hawkinsjon/hometown-heroes/internal/config"
	"github.com/hawkinsjon/hometown-heroes/internal/email"
	"github.com/hawkinsjon/hometown-heroes/internal/metrics"
	"github.com/hawkinsjon/hometown-heroes/internal/models"
	"github.com/hawkinsjon/hometown-heroes/internal/pdf"
	"github.com/hawkinsjon/hometown-heroes/internal/storage"
	"github.com/hawkinsjon/hometown-heroes/internal/validation"
)

// SubmissionHandler processes banner applications: it generates the contract
// PDF, stores it next to the submitted photos, and fans out notification
// emails carrying signed review links.
type SubmissionHandler struct {
	cfg       *config.Config
	store     storage.Store
	sender    email.Sender
	templates *email.Templates
	contracts *pdf.Generator
	client    *http.Client
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(cfg *config.Config, store storage.Store, sender email.Sender, templates *email.Templates, contracts *pdf.Generator) *SubmissionHandler {
	return &SubmissionHandler{
		cfg:       cfg,
		store:     store,
		sender:    sender,
		templates: templates,
		contracts: contracts,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Submit handles POST /api/submit-banner.
func (h *SubmissionHandler) Submit(c fiber.Ctx) error {
	if !h.cfg.IsStorageEnabled() || h.store == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server configuration error: Missing Spaces credentials.",
		})
	}

	sub := &models.Submission{
		SponsorName:           c.FormValue("sponsorName"),
		SponsorEmail:          c.FormValue("sponsorEmail"),
		RelationshipToVeteran: c.FormValue("relationshipToVeteran"),

		VeteranName:        c.FormValue("veteranName"),
		VeteranAddress:     c.FormValue("veteranAddress"),
		VeteranYearsInTown: c.FormValue("veteranYearsInBH"),
		VeteranConnection:  c.FormValue("veteranBHConnection"),

		ServiceBranch:           c.FormValue("serviceBranch"),
		IsReserve:               c.FormValue("isReserve") == "true",
		ServicePeriodOrConflict: c.FormValue("servicePeriodOrConflict"),
		UnknownBranchInfo:       c.FormValue("unknownBranchInfo"),

		ConsentGiven: c.FormValue("consentGiven") == "true",

		Photos: models.ParsePhotosMetadata(c.FormValue("photosMetadata")),
	}

	signaturePNG := h.readSignature(c)

	pdfBytes, err := h.contracts.Generate(c.Context(), sub, signaturePNG)
	if err != nil {
		log.Printf("[submit-banner] contract generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process submission."})
	}

	safeVeteran := validation.SafeName(sub.VeteranName, "unknown-veteran")
	folder := fmt.Sprintf("contracts/%s-%s", safeVeteran, uuid.NewString()[:8])
	pdfFilename := fmt.Sprintf("banner-contract-%s-%s.pdf", safeVeteran, time.Now().Format("01-2006"))

	contractURL, err := h.store.PutObject(c.Context(), folder+"/"+pdfFilename, pdfBytes, "application/pdf")
	if err != nil {
		log.Printf("[submit-banner] contract upload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process submission."})
	}

	copiedPhotos := h.copyPhotos(c, folder, sub.Photos)

	metrics.RecordSubmission()

	if h.cfg.IsEmailEnabled() {
		h.sendSubmissionEmails(c, sub, contractURL, pdfFilename, pdfBytes, copiedPhotos)
	} else {
		log.Println("[submit-banner] RESEND_API_KEY not set, emails not sent")
	}

	return c.JSON(fiber.Map{
		"message":        "Submission processed and contract generated.",
		"contractUrl":    contractURL,
		"contractFolder": folder,
		"copiedPhotos":   copiedPhotos,
		"totalPhotos":    len(sub.Photos),
		"photosCopied":   len(copiedPhotos),
	})
}

// readSignature returns the uploaded signature image bytes, or nil when the
// applicant did not sign.
func (h *SubmissionHandler) readSignature(c fiber.Ctx) []byte {
	fh, err := c.FormFile("signatureImage")
	if err != nil {
		return nil
	}
	f, err := fh.Open()
	if err != nil {
		log.Printf("[submit-banner] open signature upload: %v", err)
		return nil
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		log.Printf("[submit-banner] read signature upload: %v", err)
		return nil
	}
	return data
}

// copyPhotos copies each previously uploaded photo into the contract folder
// so the folder is a self-contained record. Failures skip the photo.
func (h *SubmissionHandler) copyPhotos(c fiber.Ctx, folder string, photos []models.PhotoMeta) []models.CopiedPhoto {
	copied := make([]models.CopiedPhoto, 0, len(photos))

	for i, photo := range photos {
		if photo.PublicURL == "" || photo.Filename == "" {
			continue
		}

		data, err := h.fetch(c, photo.PublicURL)
		if err != nil {
			log.Printf("[submit-banner] fetch photo for copy %s: %v", photo.PublicURL, err)
			continue
		}

		contentType := photo.ContentType
		if contentType == "" {
			contentType = "image/jpeg"
		}

		safeFilename := validation.SafeFilename(photo.Filename)
		key := fmt.Sprintf("%s/photo-%d-%s", folder, i+1, safeFilename)

		copiedURL, err := h.store.PutObject(c.Context(), key, data, contentType)
		if err != nil {
			log.Printf("[submit-banner] copy photo %s: %v", photo.Filename, err)
			continue
		}

		copied = append(copied, models.CopiedPhoto{
			OriginalURL: photo.PublicURL,
			CopiedURL:   copiedURL,
			Filename:    safeFilename,
			ContentType: photo.ContentType,
		})
	}

	if len(photos) > 0 {
		log.Printf("[submit-banner] copied %d of %d photos to %s", len(copied), len(photos), folder)
	}
	return copied
}

// sendSubmissionEmails fans out the notification and confirmation emails.
// Every send is independent and best-effort.
func (h *SubmissionHandler) sendSubmissionEmails(c fiber.Ctx, sub *models.Submission, contractURL, pdfFilename string, pdfBytes []byte, copiedPhotos []models.CopiedPhoto) {
	attachment := email.Attachment{Filename: pdfFilename, Content: pdfBytes}
	base := baseURL(c, h.cfg)

	isTest := h.cfg.IsTestSubmission(sub.SponsorEmail)
	if isTest {
		log.Println("[submit-banner] test submission detected")
	}

	notify := func(actor, recipient string) {
		approveLink := h.buildLink(base, actionlink.ActionApprove, actor, sub, contractURL, recipient)
		issueLink := h.buildLink(base, actionlink.ActionIssue, actor, sub, contractURL, recipient)

		subject, htmlBody := h.templates.SubmissionNotification(sub, contractURL, approveLink, issueLink, copiedPhotos)
		err := h.sender.Send(c.Context(), email.Message{
			To:          []string{recipient},
			Subject:     subject,
			HTML:        htmlBody,
			Attachments: []email.Attachment{attachment},
		})
		metrics.RecordEmailSend("notification", err)
		if err != nil {
			log.Printf("[submit-banner] notification to %s failed: %v", recipient, err)
		}
	}

	adminEmails := h.cfg.AdminEmails()
	if len(adminEmails) == 0 {
		log.Println("[submit-banner] ADMIN_EMAIL_RECIPIENTS not set, admin notification not sent")
	}
	for _, recipient := range adminEmails {
		notify(actionlink.ActorAdmin, recipient)
	}

	townEmails := h.cfg.TownEmails()
	switch {
	case isTest && h.cfg.SkipTownForTestSubmissions:
		log.Println("[submit-banner] skipping town notification for test submission")
	case len(townEmails) == 0:
		log.Println("[submit-banner] TOWN_EMAIL_RECIPIENTS not set, town notification not sent")
	default:
		for _, recipient := range townEmails {
			notify(actionlink.ActorTown, recipient)
		}
	}

	if sub.SponsorEmail != "" {
		subject, htmlBody := h.templates.SponsorConfirmation(sub, contractURL)
		err := h.sender.Send(c.Context(), email.Message{
			To:          []string{sub.SponsorEmail},
			Subject:     subject,
			HTML:        htmlBody,
			Attachments: []email.Attachment{attachment},
		})
		metrics.RecordEmailSend("confirmation", err)
		if err != nil {
			log.Printf("[submit-banner] sponsor confirmation failed: %v", err)
		}
	} else {
		log.Println("[submit-banner] sponsor email not provided, confirmation not sent")
	}
}

// buildLink issues a signed action link for one recipient, or "#" when no
// signing secret is configured.
func (h *SubmissionHandler) buildLink(base, action, actor string, sub *models.Submission, contractURL, recipient string) string {
	if !h.cfg.HasActionLinkSecret() {
		return "#"
	}

	veteran := sub.VeteranName
	if veteran == "" {
		veteran = "N/A"
	}
	sponsor := sub.SponsorName
	if sponsor == "" {
		sponsor = "Applicant"
	}

	link, err := actionlink.Build(base, action, actor, actionlink.Payload{
		Actor:          actor,
		VeteranName:    veteran,
		SponsorName:    sponsor,
		SponsorEmail:   sub.SponsorEmail,
		ContractURL:    contractURL,
		RecipientEmail: recipient,
	}, []byte(h.cfg.ActionLinkSecret))
	if err != nil {
		log.Printf("[submit-banner] build action link: %v", err)
		return "#"
	}
	return link
}

func (h *SubmissionHandler) fetch(c fiber.Ctx, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(c.Context(), http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
