package pdf

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/hawkinsjon/hometown-heroes/internal/config"
	"github.com/hawkinsjon/hometown-heroes/internal/models"
)

func testSubmission() *models.Submission {
	return &models.Submission{
		SponsorName:             "Jane Doe",
		SponsorEmail:            "jane@example.com",
		RelationshipToVeteran:   "Daughter",
		VeteranName:             "John Doe",
		VeteranAddress:          "1 Main St",
		VeteranYearsInTown:      "42",
		ServiceBranch:           "Army",
		IsReserve:               true,
		ServicePeriodOrConflict: "Vietnam",
		ConsentGiven:            true,
	}
}

func signaturePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 16))
	for x := 0; x < 40; x++ {
		img.Set(x, 8, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test signature: %v", err)
	}
	return buf.Bytes()
}

func TestGenerateProducesPDF(t *testing.T) {
	g := NewGenerator(config.DefaultProgramConfig())

	out, err := g.Generate(context.Background(), testSubmission(), nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header: %q", out[:min(8, len(out))])
	}
}

func TestGenerateWithSignature(t *testing.T) {
	g := NewGenerator(config.DefaultProgramConfig())

	out, err := g.Generate(context.Background(), testSubmission(), signaturePNG(t))
	if err != nil {
		t.Fatalf("Generate with signature failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestGenerateEmptySubmission(t *testing.T) {
	g := NewGenerator(config.DefaultProgramConfig())

	// Missing fields render as N/A; generation must not fail.
	out, err := g.Generate(context.Background(), &models.Submission{}, nil)
	if err != nil {
		t.Fatalf("Generate with empty submission failed: %v", err)
	}
	if len(out) == 0 {
		t.Error("empty submission produced no output")
	}
}

func TestGenerateSkipsUnfetchablePhotos(t *testing.T) {
	g := NewGenerator(config.DefaultProgramConfig())

	sub := testSubmission()
	sub.Photos = []models.PhotoMeta{
		{Filename: "a.jpg", PublicURL: "http://127.0.0.1:1/a.jpg", ContentType: "image/jpeg"},
		{Filename: "b.tiff", PublicURL: "http://127.0.0.1:1/b.tiff", ContentType: "image/tiff"},
	}

	out, err := g.Generate(context.Background(), sub, nil)
	if err != nil {
		t.Fatalf("Generate with unreachable photos failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestImageTypeFor(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/jpeg", "JPG"},
		{"image/jpg", "JPG"},
		{"image/png", "PNG"},
		{"image/png; charset=binary", "PNG"},
		{"image/tiff", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := imageTypeFor(tt.contentType); got != tt.want {
			t.Errorf("imageTypeFor(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}
