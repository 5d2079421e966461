// Package pdf renders the submission contract attached to notification and
// confirmation emails.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/hawkinsjon/hometown-heroes/internal/config"
	"github.com/hawkinsjon/hometown-heroes/internal/models"
)

const (
	pageMargin     = 50.0
	bodyLineHeight = 15.0
	headingSize    = 13.0
	bodySize       = 10.0
	photoThumbSize = 80.0
	photoSpacing   = 10.0
	maxPhotoEmbeds = 3
)

// Generator builds contract PDFs. Photo thumbnails are fetched from their
// public URLs at generation time; fetch failures degrade to a placeholder.
type Generator struct {
	program *config.ProgramConfig
	client  *http.Client
}

// NewGenerator creates a contract generator.
func NewGenerator(program *config.ProgramConfig) *Generator {
	return &Generator{
		program: program,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Generate renders the contract for a submission. signaturePNG may be nil
// when the applicant provided no signature image.
func (g *Generator) Generate(ctx context.Context, sub *models.Submission, signaturePNG []byte) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()

	pageW, _ := doc.GetPageSize()
	usableWidth := pageW - 2*pageMargin

	// Title
	doc.SetFont("Helvetica", "B", 18)
	doc.MultiCell(usableWidth, 20, g.program.ProgramName+" - Submission Contract", "", "L", false)
	doc.Ln(10)

	doc.SetFont("Times", "", bodySize)
	doc.MultiCell(usableWidth, bodyLineHeight, "Submission Date: "+time.Now().Format("1/2/2006"), "", "L", false)
	doc.Ln(bodyLineHeight / 2)

	g.section(doc, "Applicant (Sponsor) Information:")
	g.field(doc, "Name", sub.SponsorName)
	g.field(doc, "Email", sub.SponsorEmail)
	g.field(doc, "Relationship to Veteran", sub.RelationshipToVeteran)
	doc.Ln(bodyLineHeight / 2)

	g.section(doc, "Veteran Information:")
	g.field(doc, "Name", sub.VeteranName)
	g.field(doc, g.program.TownName+" Address", sub.VeteranAddress)
	g.field(doc, "Years in "+g.program.TownName, sub.VeteranYearsInTown)
	if sub.VeteranConnection != "" {
		g.field(doc, g.program.TownName+" Connection", sub.VeteranConnection)
	}
	branch := sub.ServiceBranch
	if sub.IsReserve && branch != "" {
		branch += " (Reserve)"
	}
	g.field(doc, "Branch of Service", branch)
	g.field(doc, "Period of Service / Conflict", sub.ServicePeriodOrConflict)
	if sub.UnknownBranchInfo != "" {
		g.field(doc, "Additional Branch Info", sub.UnknownBranchInfo)
	}
	doc.Ln(bodyLineHeight / 2)

	g.divider(doc, pageW)

	g.section(doc, "Terms & Conditions:")
	doc.SetFont("Times", "", 9)
	for _, paragraph := range g.termsParagraphs(sub.SponsorName) {
		doc.MultiCell(usableWidth, 12, strings.ReplaceAll(paragraph, "\n", " "), "", "L", false)
		doc.Ln(5)
	}
	doc.Ln(bodyLineHeight / 2)

	g.section(doc, "Submitted Photos (Thumbnails):")
	g.drawPhotos(ctx, doc, sub.Photos)
	doc.Ln(bodyLineHeight)

	g.divider(doc, pageW)

	g.section(doc, "Authorization Signature:")
	g.drawSignature(doc, signaturePNG, sub.SponsorName)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render contract pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) section(doc *fpdf.Fpdf, title string) {
	doc.SetFont("Times", "B", headingSize)
	doc.MultiCell(0, 20, title, "", "L", false)
	doc.SetFont("Times", "", bodySize)
}

func (g *Generator) field(doc *fpdf.Fpdf, label, value string) {
	if value == "" {
		value = "N/A"
	}
	doc.SetX(pageMargin + 10)
	pageW, _ := doc.GetPageSize()
	doc.MultiCell(pageW-2*pageMargin-10, bodyLineHeight, label+": "+value, "", "L", false)
}

func (g *Generator) divider(doc *fpdf.Fpdf, pageW float64) {
	y := doc.GetY() + bodyLineHeight/2
	doc.SetDrawColor(191, 191, 191)
	doc.Line(pageMargin, y, pageW-pageMargin, y)
	doc.SetDrawColor(0, 0, 0)
	doc.SetY(y + bodyLineHeight/2)
}

// termsParagraphs appends the sponsor's authorization clause to the
// configured terms text.
func (g *Generator) termsParagraphs(sponsorName string) []string {
	if sponsorName == "" {
		sponsorName = "[Sponsor Name]"
	}
	authorization := fmt.Sprintf(
		"9. I, %s, approve and authorize the usage of my or my family member's photograph and name to be used on printed Hometown Hero Banners in %s.",
		sponsorName, g.program.TownName,
	)
	return append(append([]string{}, g.program.Terms...), authorization)
}

// drawPhotos embeds up to maxPhotoEmbeds thumbnails side by side. A photo
// that cannot be fetched or decoded is skipped.
func (g *Generator) drawPhotos(ctx context.Context, doc *fpdf.Fpdf, photos []models.PhotoMeta) {
	embedded := 0
	x := pageMargin
	top := doc.GetY()

	for i, photo := range photos {
		if embedded >= maxPhotoEmbeds {
			break
		}
		if photo.PublicURL == "" || photo.ContentType == "" {
			continue
		}

		imageType := imageTypeFor(photo.ContentType)
		if imageType == "" {
			log.Printf("contract pdf: unsupported photo content type %q for %s", photo.ContentType, photo.Filename)
			continue
		}

		data, err := g.fetch(ctx, photo.PublicURL)
		if err != nil {
			log.Printf("contract pdf: fetch photo %s: %v", photo.PublicURL, err)
			continue
		}

		name := fmt.Sprintf("photo-%d", i)
		opts := fpdf.ImageOptions{ImageType: imageType}
		info := doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		if doc.Err() {
			log.Printf("contract pdf: embed photo %s: %v", photo.Filename, doc.Error())
			doc.ClearError()
			continue
		}

		scale := photoThumbSize / info.Width()
		if h := photoThumbSize / info.Height(); h < scale {
			scale = h
		}
		doc.ImageOptions(name, x, top, info.Width()*scale, info.Height()*scale, false, opts, 0, "")
		x += photoThumbSize + photoSpacing
		embedded++
	}

	if embedded == 0 {
		doc.SetY(top + photoThumbSize/2)
		doc.MultiCell(0, bodyLineHeight, "No photos submitted or metadata missing.", "", "L", false)
	}
	doc.SetY(top + photoThumbSize)
}

func (g *Generator) drawSignature(doc *fpdf.Fpdf, signaturePNG []byte, sponsorName string) {
	top := doc.GetY()

	if len(signaturePNG) == 0 {
		doc.SetY(top + 20)
		doc.MultiCell(0, bodyLineHeight, "No signature provided.", "", "L", false)
		return
	}

	const boxW, boxH = 200.0, 80.0

	doc.SetFillColor(242, 242, 242)
	doc.Rect(pageMargin, top, boxW, boxH, "F")

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	info := doc.RegisterImageOptionsReader("signature", opts, bytes.NewReader(signaturePNG))
	if doc.Err() {
		log.Printf("contract pdf: embed signature: %v", doc.Error())
		doc.ClearError()
		doc.SetY(top + 20)
		doc.MultiCell(0, bodyLineHeight, "Signature could not be embedded.", "", "L", false)
		return
	}

	scale := boxW / info.Width()
	if h := boxH / info.Height(); h < scale {
		scale = h
	}
	w, h := info.Width()*scale, info.Height()*scale
	doc.ImageOptions("signature", pageMargin+(boxW-w)/2, top+(boxH-h)/2, w, h, false, opts, 0, "")

	doc.SetY(top + boxH + bodyLineHeight)
	if sponsorName == "" {
		sponsorName = "N/A"
	}
	doc.MultiCell(0, bodyLineHeight, "Signed by: "+sponsorName, "", "L", false)
	doc.MultiCell(0, bodyLineHeight, "Date: "+time.Now().Format("1/2/2006 3:04:05 PM"), "", "L", false)
}

func (g *Generator) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func imageTypeFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/jpeg"), strings.HasPrefix(contentType, "image/jpg"):
		return "JPG"
	case strings.HasPrefix(contentType, "image/png"):
		return "PNG"
	default:
		return ""
	}
}
