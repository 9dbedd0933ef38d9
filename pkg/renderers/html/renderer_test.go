package html_test

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/PageDAO/PageProvenanceService/pkg/catalog"
	"github.com/PageDAO/PageProvenanceService/pkg/document"
	"github.com/PageDAO/PageProvenanceService/pkg/render"
	"github.com/PageDAO/PageProvenanceService/pkg/renderers/html"
	"github.com/PageDAO/PageProvenanceService/pkg/testsupport"
)

func newRenderer(t *testing.T) *html.Renderer {
	t.Helper()
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func buildDocument(t *testing.T, options ...document.Option) document.Document {
	t.Helper()
	options = append([]document.Option{document.WithClock(testsupport.FixedClock)}, options...)
	doc, err := document.NewBuilder(catalog.MustDefault(), options...).Build(testsupport.SampleRecord())
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	return doc
}

func TestRenderDocumentExampleScenario(t *testing.T) {
	renderer := newRenderer(t)
	out, err := renderer.Render(context.Background(), buildDocument(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)

	for _, want := range []string{
		"Provenance Artifact",
		"Page Provenance Service",
		"Contract Address",
		"0xABC",
		"<li>https://example.com/dune</li>",
		"I attest that this is my original work and I hold the necessary rights to distribute it.",
		document.FooterStatement,
		"Generated on: <time>May 1, 2024 12:30:00 UTC</time>",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected page to contain %q\n%s", want, page)
		}
	}
	if strings.Contains(page, `data-section="isbn"`) {
		t.Fatalf("expected ISBN section to be omitted")
	}
	if strings.Count(page, `data-section="attestations"`) != 1 {
		t.Fatalf("expected a single attestations section")
	}
	if strings.Contains(page, "pps-download") {
		t.Fatalf("download form must only render when requested")
	}
}

func TestRenderDocumentEscapesUserText(t *testing.T) {
	record := testsupport.SampleRecord()
	record.Title = `<script>alert("x")</script>`
	doc, err := document.NewBuilder(catalog.MustDefault()).Build(record)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	out, err := newRenderer(t).Render(context.Background(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "<script>alert") {
		t.Fatalf("expected title to be escaped")
	}
}

func TestRenderDocumentDefectsAreLoud(t *testing.T) {
	record := testsupport.SampleRecord()
	record.Attestations = []string{"retired"}
	doc, err := document.NewBuilder(catalog.MustDefault()).Build(record)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	out, err := newRenderer(t).Render(context.Background(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)
	if !strings.Contains(page, `role="alert"`) || !strings.Contains(page, "[unknown attestation: retired]") {
		t.Fatalf("expected defect banner and placeholder\n%s", page)
	}
}

func TestRenderDocumentThemeLogoAndDownload(t *testing.T) {
	opts := render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "page",
			Variant: "dark",
			CSSVars: map[string]string{"--brand": "#123456", "bad": "red;}</style>"},
		},
		Logo: &render.Logo{
			Name:      "PageDAO",
			MediaType: render.MediaTypeSVG,
			Data:      []byte(`<svg viewBox="0 0 10 10" onload="alert(1)"><script>alert(1)</script><circle cx="5" cy="5" r="4"/></svg>`),
		},
		Download: &render.DownloadForm{
			Action:  "/artifact",
			Fields:  append([]render.HiddenField{render.Hidden("title", "Dune")}, render.HiddenList("attestations", []string{"originalWork"})...),
			Formats: []string{"pdf", "html"},
		},
	}

	out, err := newRenderer(t).Render(context.Background(), buildDocument(t), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)

	for _, want := range []string{
		"--brand: #123456;",
		`data-theme="page"`,
		`data-variant="dark"`,
		`<circle cx="5" cy="5" r="4"`,
		`action="/artifact"`,
		`<input type="hidden" name="attestations" value="originalWork">`,
		`<option value="pdf">PDF</option>`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected page to contain %q\n%s", want, page)
		}
	}
	for _, unwanted := range []string{"onload", "<script>alert", "red;}"} {
		if strings.Contains(page, unwanted) {
			t.Fatalf("expected %q to be stripped\n%s", unwanted, page)
		}
	}
}

func TestRenderDocumentRasterLogo(t *testing.T) {
	opts := render.RenderOptions{Logo: &render.Logo{Name: "mark", MediaType: render.MediaTypePNG, Data: []byte{0x89, 0x50}}}
	out, err := newRenderer(t).Render(context.Background(), buildDocument(t), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `src="data:image/png;base64,iVA="`) {
		t.Fatalf("expected data uri logo\n%s", out)
	}
}

func TestRendererMetadata(t *testing.T) {
	renderer := newRenderer(t)
	if renderer.Name() != "html" || renderer.FileExtension() != "html" {
		t.Fatalf("unexpected metadata %s/%s", renderer.Name(), renderer.FileExtension())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected content type %s", renderer.ContentType())
	}
}
