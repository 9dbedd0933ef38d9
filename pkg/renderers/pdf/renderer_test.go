package pdf_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"unicode/utf16"

	theme "github.com/goliatone/go-theme"

	"github.com/PageDAO/PageProvenanceService/pkg/catalog"
	"github.com/PageDAO/PageProvenanceService/pkg/document"
	"github.com/PageDAO/PageProvenanceService/pkg/render"
	"github.com/PageDAO/PageProvenanceService/pkg/renderers/pdf"
	"github.com/PageDAO/PageProvenanceService/pkg/testsupport"
)

// shown is s as it appears in an uncompressed content stream: UTF-16BE
// inside a literal string.
func shown(s string) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, unit := range utf16.Encode([]rune(s)) {
		b.WriteByte(byte(unit >> 8))
		b.WriteByte(byte(unit))
	}
	b.WriteByte(')')
	return b.String()
}

func sampleDocument(t *testing.T) document.Document {
	t.Helper()
	doc, err := document.NewBuilder(catalog.MustDefault(), document.WithClock(testsupport.FixedClock)).
		Build(testsupport.SampleRecord())
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	return doc
}

func TestRendererMetadata(t *testing.T) {
	renderer := pdf.New()
	if renderer.Name() != "pdf" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if renderer.ContentType() != "application/pdf" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
	if got := render.Extension(renderer); got != "pdf" {
		t.Fatalf("unexpected extension %q", got)
	}
}

func TestRenderProducesPDF(t *testing.T) {
	out, err := pdf.New().Render(context.Background(), sampleDocument(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("expected PDF header, got %q", out[:min(len(out), 16)])
	}
	if !bytes.Contains(out, []byte("%%EOF")) {
		t.Fatalf("expected PDF trailer")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	renderer := pdf.New()
	doc := sampleDocument(t)

	first, err := renderer.Render(context.Background(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := renderer.Render(context.Background(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical output for the same document")
	}
}

func TestRenderUncompressedContainsContent(t *testing.T) {
	out, err := pdf.New(pdf.WithCompression(false)).
		Render(context.Background(), sampleDocument(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"Provenance Artifact",
		"PAGE PROVENANCE SERVICE",
		"CONTRACT ADDRESS",
		"0xABC",
		"Dune",
		"F. Herbert",
		"https://example.com/dune",
		"Generated on: May 1, 2024 12:30:00 UTC",
	} {
		if !strings.Contains(content, shown(want)) {
			t.Fatalf("expected PDF content to contain %q", want)
		}
	}
	if strings.Contains(content, shown("Internal error: catalog drift detected")) {
		t.Fatalf("did not expect a defect notice for a clean document")
	}
}

func TestRenderFlagsCatalogDrift(t *testing.T) {
	record := testsupport.SampleRecord()
	record.Attestations = append(record.Attestations, "retired")
	doc, err := document.NewBuilder(catalog.MustDefault(), document.WithClock(testsupport.FixedClock)).Build(record)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	out, err := pdf.New(pdf.WithCompression(false)).Render(context.Background(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, shown("Internal error: catalog drift detected")) {
		t.Fatalf("expected catalog drift notice")
	}
	if !strings.Contains(content, shown("• [unknown attestation: retired]")) {
		t.Fatalf("expected placeholder line for unknown attestation")
	}
}

func TestRenderEmbedsRasterLogo(t *testing.T) {
	data, err := os.ReadFile("testdata/logo.png")
	if err != nil {
		t.Fatalf("read logo: %v", err)
	}
	opts := render.RenderOptions{Logo: &render.Logo{Name: "logo.png", MediaType: render.MediaTypePNG, Data: data}}

	out, err := pdf.New(pdf.WithCompression(false)).Render(context.Background(), sampleDocument(t), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Contains(out, []byte("/Subtype /Image")) {
		t.Fatalf("expected an embedded image object")
	}
}

func TestRenderSkipsUnusableLogos(t *testing.T) {
	for name, logo := range map[string]*render.Logo{
		"svg":     {Name: "logo.svg", MediaType: render.MediaTypeSVG, Data: []byte("<svg/>")},
		"corrupt": {Name: "logo.png", MediaType: render.MediaTypePNG, Data: []byte("not a png")},
	} {
		t.Run(name, func(t *testing.T) {
			out, err := pdf.New(pdf.WithCompression(false)).
				Render(context.Background(), sampleDocument(t), render.RenderOptions{Logo: logo})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if bytes.Contains(out, []byte("/Subtype /Image")) {
				t.Fatalf("expected no image object")
			}
		})
	}
}

func TestRenderAppliesThemeBrandColour(t *testing.T) {
	opts := render.RenderOptions{Theme: &theme.RendererConfig{Tokens: map[string]string{"brand": "#ff0000"}}}
	out, err := pdf.New(pdf.WithCompression(false)).Render(context.Background(), sampleDocument(t), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Contains(out, []byte("1.000 0.000 0.000 rg")) {
		t.Fatalf("expected brand fill colour in content stream")
	}
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := pdf.New().Render(ctx, sampleDocument(t), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestRenderKeepsNonLatinText(t *testing.T) {
	record := testsupport.SampleRecord()
	record.Title = "Дюна"
	record.Author = "フランク・ハーバート"
	record.ApprovedSources = []string{"https://例え.jp/デューン"}
	doc, err := document.NewBuilder(catalog.MustDefault(), document.WithClock(testsupport.FixedClock)).Build(record)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	out, err := pdf.New(pdf.WithCompression(false)).Render(context.Background(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	content := string(out)
	for _, want := range []string{"Дюна", "フランク・ハーバート", "https://例え.jp/デューン"} {
		if !strings.Contains(content, shown(want)) {
			t.Fatalf("expected %q to survive in the content stream", want)
		}
	}
	if strings.Contains(content, "Td (....)") {
		t.Fatalf("non-Latin text was replaced with dots")
	}
	if !bytes.Contains(out, []byte("/FontFile2")) {
		t.Fatalf("expected an embedded TrueType font")
	}
}

func TestRenderWithCustomFonts(t *testing.T) {
	fonts := pdf.DefaultFonts()
	out, err := pdf.New(pdf.WithFonts(pdf.Fonts{Regular: fonts.Bold})).
		Render(context.Background(), sampleDocument(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("expected PDF output")
	}
}

func TestRenderRejectsUnreadableFont(t *testing.T) {
	_, err := pdf.New(pdf.WithFonts(pdf.Fonts{Regular: []byte("not a font")})).
		Render(context.Background(), sampleDocument(t), render.RenderOptions{})
	if err == nil || !strings.Contains(err.Error(), "pdf renderer") {
		t.Fatalf("expected font error, got %v", err)
	}
}

func TestLoadFontFile(t *testing.T) {
	if _, err := pdf.LoadFontFile("fonts/DejaVuSansCondensed.ttf"); err != nil {
		t.Fatalf("load font: %v", err)
	}
	if _, err := pdf.LoadFontFile("fonts/missing.ttf"); err == nil {
		t.Fatalf("expected missing font error")
	}
}
