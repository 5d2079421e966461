package email

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/hawkinsjon/hometown-heroes/internal/config"
	"github.com/hawkinsjon/hometown-heroes/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg     *config.Config
	program *config.ProgramConfig
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config, program *config.ProgramConfig) *Templates {
	return &Templates{cfg: cfg, program: program}
}

// DefaultApproveMessage is the pre-filled compose body for an approval,
// citing the print run the banner will make.
func (t *Templates) DefaultApproveMessage(sponsorName, veteranName, eventPhrase string) string {
	return fmt.Sprintf(
		"Hello %s,\n\nYour Hometown Hero banner for %s has been approved. It looks good and will be printed %s.\n\nThank you!",
		sponsorName, veteranName, eventPhrase,
	)
}

// DefaultIssueMessage is the pre-filled compose body for a "needs attention"
// action. When a primary admin address is configured it is offered as a
// direct contact.
func (t *Templates) DefaultIssueMessage(sponsorName, veteranName, adminEmail string) string {
	contact := ""
	if adminEmail != "" {
		contact = " or email " + adminEmail
	}
	return fmt.Sprintf(
		"Hello %s,\n\nThank you for your Hometown Hero banner submission for %s. We took a look and need a small update before we can approve it. Could you please send a clearer photo of the veteran?\n\nIf you have any questions, please use the Reply button below%s and we will be happy to help.\n\nThank you!\n%s",
		sponsorName, veteranName, contact, t.program.CommitteeName,
	)
}

// DefaultApproveSubject is the pre-filled compose subject for an approval.
func (t *Templates) DefaultApproveSubject(veteranName string) string {
	return fmt.Sprintf("Your Hometown Hero banner for %s has been approved", veteranName)
}

// DefaultIssueSubject is the pre-filled compose subject for a flagged submission.
func (t *Templates) DefaultIssueSubject() string {
	return "Update needed for your Hometown Hero banner"
}

// ApplicantMessage wraps a composed review message for delivery to the
// sponsor. The body is escaped here; it arrives as free text from the
// compose form. The reply CTA is only rendered for non-approval actions.
func (t *Templates) ApplicantMessage(body, subject, replyTo string, withReplyCTA bool) string {
	cta := ""
	if withReplyCTA && replyTo != "" {
		mailto := "mailto:" + url.QueryEscape(replyTo) + "?subject=" + url.QueryEscape("Re: "+subject)
		cta = fmt.Sprintf(`
            <div style="margin-top:16px;">
              <a href="%s" style="display:inline-block;background:#2563eb;color:#ffffff;text-decoration:none;padding:12px 16px;border-radius:10px;font-weight:700;border:1px solid #1e40af;">Reply to %s</a>
              <p style="margin:8px 0 0 0; color:#4b5563; font-size:12px;">If the button does not work, email %s.</p>
            </div>`, mailto, html.EscapeString(t.program.CommitteeName), html.EscapeString(replyTo))
	}

	return fmt.Sprintf(`
      <div style="font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Arial,sans-serif;background:#f8fafc;padding:16px;">
        <div style="max-width:680px;margin:0 auto;background:#ffffff;border:1px solid #e5e7eb;border-radius:12px;color:#111;">
          <div style="padding:16px 20px;">
            <div style="white-space: pre-wrap; line-height:1.55;">%s</div>%s
          </div>
        </div>
      </div>`, html.EscapeString(body), cta)
}

// FYISubject builds the subject line for the internal copy of a review message.
func (t *Templates) FYISubject(sponsorName, veteranName string) string {
	return fmt.Sprintf("[FYI] Copy of message sent to %s - %s", sponsorName, veteranName)
}

// FYIMessage is the awareness copy sent to both internal groups whenever a
// review action is dispatched, quoting exactly what the applicant received.
func (t *Templates) FYIMessage(p FYIParams) string {
	return fmt.Sprintf(`
        <div style="font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Arial,sans-serif;background:#0b1220;padding:20px;">
          <div style="max-width:680px;margin:0 auto;background:#111827;border:1px solid #1f2937;border-radius:12px;color:#e5e7eb;">
            <div style="padding:16px 20px;border-bottom:1px solid #1f2937;">
              <h2 style="margin:0;font-size:16px;line-height:22px;color:#f3f4f6;">FYI: Message sent to %s</h2>
              <p style="margin:6px 0 0 0;color:#9ca3af;font-size:13px;">No action needed. You are receiving this for awareness.</p>
            </div>
            <div style="padding:16px 20px;">
              <p style="margin:0 0 8px 0;color:#d1d5db;font-size:14px;">
                <strong style="color:#e5e7eb;">To:</strong> %s &lt;%s&gt;<br/>
                <strong style="color:#e5e7eb;">Regarding:</strong> %s<br/>
                <strong style="color:#e5e7eb;">Sent by:</strong> %s<br/>
                <strong style="color:#e5e7eb;">Subject:</strong> %s
              </p>
              <div style="margin-top:12px;background:#0b1220;border:1px solid #1f2937;border-left:4px solid #2563eb;border-radius:8px;">
                <div style="padding:12px 14px;">
                  <div style="white-space:pre-wrap;color:#e5e7eb;font-family:ui-monospace,SFMono-Regular,Menlo,monospace;font-size:14px;line-height:20px;">%s</div>
                </div>
              </div>
            </div>
          </div>
        </div>`,
		html.EscapeString(p.SponsorName),
		html.EscapeString(p.SponsorName),
		html.EscapeString(p.SponsorEmail),
		html.EscapeString(p.VeteranName),
		html.EscapeString(p.ActorIdentity),
		html.EscapeString(p.Subject),
		html.EscapeString(p.Body),
	)
}

// FYIParams holds the fields quoted in the internal awareness copy.
type FYIParams struct {
	SponsorName   string
	SponsorEmail  string
	VeteranName   string
	ActorIdentity string
	Subject       string
	Body          string
}

// SubmissionNotification builds the new-submission email for an internal
// recipient, including the quick-action links issued for exactly that
// recipient.
func (t *Templates) SubmissionNotification(sub *models.Submission, contractURL, approveLink, issueLink string, copiedPhotos []models.CopiedPhoto) (subject, htmlBody string) {
	subject = fmt.Sprintf("New Hometown Hero Banner Submission: %s", orNA(sub.VeteranName))

	var photosList strings.Builder
	if len(copiedPhotos) > 0 {
		photosList.WriteString(`<ul style="padding-left: 16px; margin: 8px 0 0 0;">`)
		for i, photo := range copiedPhotos {
			photosList.WriteString(fmt.Sprintf(
				`<li style="margin: 4px 0; color:#9ca3af;"><strong style="color:#e5e7eb;">Photo %d:</strong> <a href="%s" style="color:#93c5fd; text-decoration:none;">%s</a></li>`,
				i+1, html.EscapeString(photo.CopiedURL), html.EscapeString(photo.Filename)))
		}
		photosList.WriteString(`</ul>`)
	} else {
		photosList.WriteString(`<p style="margin: 0; color:#9ca3af;"><strong style="color:#e5e7eb;">Photos:</strong> No photos submitted</p>`)
	}

	reserve := ""
	if sub.IsReserve {
		reserve = " (Reserve)"
	}

	htmlBody = fmt.Sprintf(`
            <div style="font-family: -apple-system,BlinkMacSystemFont,'Segoe UI',Arial,sans-serif; background:#0b1220; padding:24px 16px;">
              <div style="max-width: 680px; margin: 0 auto; background:#111827; border:1px solid #1f2937; border-radius:12px; color:#e5e7eb;">
                <div style="padding: 16px 20px; border-bottom:1px solid #1f2937;">
                  <h2 style="margin: 0; font-size: 18px; line-height:24px; color:#f3f4f6;">New Hometown Hero Banner Submission</h2>
                </div>
                <div style="padding: 20px;">
                  <div style="background:#0b1220; border:1px solid #1f2937; padding: 12px; border-radius: 8px; margin-bottom: 16px;">
                    <p style="margin: 0 0 8px 0; font-weight: 600; color:#d1d5db;">Quick Actions</p>
                    <div>
                      <a href="%s" style="display: inline-block; background: #2563eb; color: #ffffff; text-decoration: none; padding: 10px 14px; border-radius: 6px; font-weight: 600; margin-right: 8px;">Approve &amp; Notify Applicant</a>
                      <a href="%s" style="display: inline-block; background: #374151; color: #ffffff; text-decoration: none; padding: 10px 14px; border-radius: 6px; font-weight: 600; border:1px solid #4b5563;">Needs Attention</a>
                    </div>
                  </div>

                  <h3 style="margin: 12px 0 8px 0; font-size: 14px; color:#d1d5db; text-transform:uppercase;">Applicant Information</h3>
                  <p style="margin: 4px 0; color:#9ca3af;"><strong style="color:#e5e7eb;">Name:</strong> %s</p>
                  <p style="margin: 4px 0; color:#9ca3af;"><strong style="color:#e5e7eb;">Email:</strong> %s</p>
                  <p style="margin: 4px 0; color:#9ca3af;"><strong style="color:#e5e7eb;">Relationship to Veteran:</strong> %s</p>

                  <h3 style="margin: 16px 0 8px 0; font-size: 14px; color:#d1d5db; text-transform:uppercase;">Veteran Information</h3>
                  <p style="margin: 4px 0; color:#9ca3af;"><strong style="color:#e5e7eb;">Name:</strong> %s</p>
                  <p style="margin: 4px 0; color:#9ca3af;"><strong style="color:#e5e7eb;">Address:</strong> %s</p>
                  <p style="margin: 4px 0; color:#9ca3af;"><strong style="color:#e5e7eb;">Years in %s:</strong> %s</p>
                  <p style="margin: 4px 0; color:#9ca3af;"><strong style="color:#e5e7eb;">Service Branch:</strong> %s%s</p>
                  <p style="margin: 4px 0; color:#9ca3af;"><strong style="color:#e5e7eb;">Conflict/Service Period:</strong> %s</p>

                  <h3 style="margin: 16px 0 8px 0; font-size: 14px; color:#d1d5db; text-transform:uppercase;">Attachments &amp; Links</h3>
                  <p style="margin: 4px 0; color:#9ca3af;"><strong style="color:#e5e7eb;">Contract URL:</strong> <a href="%s" style="color:#93c5fd; text-decoration:none;">%s</a></p>
                  <p style="margin: 4px 0; color:#9ca3af;">The contract PDF is attached to this email.</p>
                  <div style="margin-top: 8px;">
                    <p style="margin: 0 0 4px 0; color:#9ca3af;"><strong style="color:#e5e7eb;">Submitted Photos (copied to contract folder):</strong></p>
                    %s
                  </div>
                </div>
              </div>
            </div>`,
		approveLink,
		issueLink,
		html.EscapeString(orNA(sub.SponsorName)),
		html.EscapeString(orNA(sub.SponsorEmail)),
		html.EscapeString(orNA(sub.RelationshipToVeteran)),
		html.EscapeString(orNA(sub.VeteranName)),
		html.EscapeString(orNA(sub.VeteranAddress)),
		html.EscapeString(t.program.TownName),
		html.EscapeString(orNA(sub.VeteranYearsInTown)),
		html.EscapeString(orNA(sub.ServiceBranch)),
		reserve,
		html.EscapeString(orNA(sub.ServicePeriodOrConflict)),
		html.EscapeString(contractURL),
		html.EscapeString(contractURL),
		photosList.String(),
	)

	return
}

// SponsorConfirmation builds the confirmation email the applicant receives
// immediately after submitting.
func (t *Templates) SponsorConfirmation(sub *models.Submission, contractURL string) (subject, htmlBody string) {
	subject = fmt.Sprintf("Your Hometown Hero Banner Submission for %s Received", orNA(sub.VeteranName))

	reserve := ""
	if sub.IsReserve {
		reserve = " (Reserve)"
	}

	sponsorName := sub.SponsorName
	if sponsorName == "" {
		sponsorName = "Applicant"
	}
	veteran := sub.VeteranName
	if veteran == "" {
		veteran = "the veteran"
	}

	htmlBody = fmt.Sprintf(`
                <p>Dear %s,</p>
                <p>Thank you for submitting a Hometown Hero banner application for <strong>%s</strong>.</p>
                <p>Your submission (attached) is now under review. You will receive another email if your banner is approved, or a member of %s may contact you if further information is required.</p>
                <p>Application Details:</p>
                <ul>
                  <li><strong>Veteran Name:</strong> %s</li>
                  <li><strong>Address:</strong> %s</li>
                  <li><strong>Years in %s:</strong> %s</li>
                  <li><strong>Service Branch:</strong> %s%s</li>
                  <li><strong>Conflict/Service Period:</strong> %s</li>
                </ul>
                <p>For your records, a copy of the submission contract is attached to this email. You can also access it here: <a href="%s">%s</a></p>
                <p>Sincerely,</p>
                <p>The %s %s</p>`,
		html.EscapeString(sponsorName),
		html.EscapeString(veteran),
		html.EscapeString(t.program.CommitteeName),
		html.EscapeString(orNA(sub.VeteranName)),
		html.EscapeString(orNA(sub.VeteranAddress)),
		html.EscapeString(t.program.TownName),
		html.EscapeString(orNA(sub.VeteranYearsInTown)),
		html.EscapeString(orNA(sub.ServiceBranch)),
		reserve,
		html.EscapeString(orNA(sub.ServicePeriodOrConflict)),
		html.EscapeString(contractURL),
		html.EscapeString(contractURL),
		html.EscapeString(t.program.TownName),
		html.EscapeString(t.program.ProgramName),
	)

	return
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
