package orchestrator_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PageDAO/PageProvenanceService/pkg/catalog"
	"github.com/PageDAO/PageProvenanceService/pkg/document"
	"github.com/PageDAO/PageProvenanceService/pkg/form"
	"github.com/PageDAO/PageProvenanceService/pkg/orchestrator"
	"github.com/PageDAO/PageProvenanceService/pkg/renderers/pdf"
	"github.com/PageDAO/PageProvenanceService/pkg/testsupport"
)

func newOrchestrator(t *testing.T, options ...orchestrator.Option) *orchestrator.Orchestrator {
	t.Helper()
	builder := document.NewBuilder(catalog.MustDefault(), document.WithClock(testsupport.FixedClock))
	return orchestrator.New(append([]orchestrator.Option{orchestrator.WithBuilder(builder)}, options...)...)
}

func TestGenerateDefaultsToPDF(t *testing.T) {
	orch := newOrchestrator(t)

	artifact, err := orch.Generate(context.Background(), orchestrator.Request{Record: testsupport.SampleRecord()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if artifact.Renderer != "pdf" || artifact.ContentType != "application/pdf" {
		t.Fatalf("unexpected renderer %q (%s)", artifact.Renderer, artifact.ContentType)
	}
	if !bytes.HasPrefix(artifact.Body, []byte("%PDF-")) {
		t.Fatalf("expected PDF body")
	}
	if !strings.HasPrefix(artifact.Name, "provenance-") || !strings.HasSuffix(artifact.Name, ".pdf") {
		t.Fatalf("unexpected artifact name %q", artifact.Name)
	}
	if !strings.Contains(artifact.Name, artifact.Document.Serial[:8]) {
		t.Fatalf("expected name %q to carry serial prefix %q", artifact.Name, artifact.Document.Serial[:8])
	}
}

func TestGenerateAppliesPDFOptions(t *testing.T) {
	orch := newOrchestrator(t, orchestrator.WithPDFOptions(pdf.WithFonts(pdf.Fonts{Regular: []byte("broken")})))

	_, err := orch.Generate(context.Background(), orchestrator.Request{Record: testsupport.SampleRecord()})
	if err == nil || !strings.Contains(err.Error(), "load fonts") {
		t.Fatalf("expected configured fonts to reach the pdf renderer, got %v", err)
	}
}

func TestGenerateRendersFooterTemplate(t *testing.T) {
	orch := newOrchestrator(t, orchestrator.WithFooterTemplate(
		"{{ title }} by {{ author }} is certified by {{ service_title }} ({{ serial|slice:\":8\" }}).",
	))

	artifact, err := orch.Generate(context.Background(), orchestrator.Request{Record: testsupport.SampleRecord(), Renderer: "json"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := "Dune by F. Herbert is certified by Page Provenance Service (" + artifact.Document.Serial[:8] + ")."
	if got := artifact.Document.Footer.Statement; got != want {
		t.Fatalf("footer = %q, want %q", got, want)
	}
	if !strings.Contains(string(artifact.Body), want) {
		t.Fatalf("expected rendered footer in artifact body")
	}
}

func TestGenerateRejectsBrokenFooterTemplate(t *testing.T) {
	orch := newOrchestrator(t, orchestrator.WithFooterTemplate("{% if %}"))

	_, err := orch.Generate(context.Background(), orchestrator.Request{Record: testsupport.SampleRecord()})
	if err == nil || !strings.Contains(err.Error(), "footer template") {
		t.Fatalf("expected footer template error, got %v", err)
	}
}

func TestGenerateRegisteredRenderers(t *testing.T) {
	orch := newOrchestrator(t)

	want := []string{"html", "json", "pdf", "text"}
	if got := orch.Renderers(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected renderers %v, got %v", want, got)
	}

	for _, name := range want {
		artifact, err := orch.Generate(context.Background(), orchestrator.Request{
			Record:   testsupport.SampleRecord(),
			Renderer: strings.ToUpper(name),
		})
		if err != nil {
			t.Fatalf("%s: generate: %v", name, err)
		}
		if len(artifact.Body) == 0 {
			t.Fatalf("%s: empty body", name)
		}
	}
}

func TestGenerateHTMLUsesThemeAndVectorLogo(t *testing.T) {
	orch := newOrchestrator(t, orchestrator.WithTheme(orchestrator.DefaultThemeName, "dark"))

	artifact, err := orch.Generate(context.Background(), orchestrator.Request{
		Record:   testsupport.SampleRecord(),
		Renderer: "html",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	page := string(artifact.Body)
	for _, want := range []string{"<svg", "--brand: #A5B4FC;", `href="/assets/provenance.css"`} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected page to contain %q\n%s", want, page)
		}
	}
}

func TestGenerateWithoutLogos(t *testing.T) {
	orch := newOrchestrator(t, orchestrator.WithLogos())

	artifact, err := orch.Generate(context.Background(), orchestrator.Request{
		Record:   testsupport.SampleRecord(),
		Renderer: "html",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Contains(string(artifact.Body), "<svg") {
		t.Fatalf("expected no logo markup")
	}
}

func TestGenerateUnknownRenderer(t *testing.T) {
	orch := newOrchestrator(t)
	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Record:   testsupport.SampleRecord(),
		Renderer: "docx",
	})
	if err == nil || !strings.Contains(err.Error(), `renderer "docx"`) {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
}

func TestGenerateUnknownTheme(t *testing.T) {
	orch := newOrchestrator(t)
	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Record:    testsupport.SampleRecord(),
		ThemeName: "neon",
	})
	if !errors.Is(err, orchestrator.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
}

func TestGenerateStrictCatalogDrift(t *testing.T) {
	builder := document.NewBuilder(catalog.MustDefault(),
		document.WithClock(testsupport.FixedClock),
		document.WithStrictCatalog(),
	)
	orch := orchestrator.New(orchestrator.WithBuilder(builder))

	record := testsupport.SampleRecord()
	record.Attestations = []string{"retired"}
	_, err := orch.Generate(context.Background(), orchestrator.Request{Record: record})
	if !errors.Is(err, document.ErrUnknownAttestation) {
		t.Fatalf("expected ErrUnknownAttestation, got %v", err)
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newOrchestrator(t).Generate(ctx, orchestrator.Request{Record: testsupport.SampleRecord()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPreviewReceivesHandOff(t *testing.T) {
	orch := newOrchestrator(t)
	preview := orchestrator.NewPreview(orch, orchestrator.Request{Renderer: "text"})

	if _, ok := preview.Artifact(); ok {
		t.Fatalf("expected no artifact before submission")
	}

	controller := form.New(catalog.MustDefault(),
		form.WithRecord(testsupport.SampleRecord()),
		form.WithHandoff(preview),
	)
	result, err := controller.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid submission, got %v", result.Errors)
	}

	artifact, ok := preview.Artifact()
	if !ok {
		t.Fatalf("expected artifact after submission")
	}
	if artifact.Renderer != "text" || !strings.Contains(string(artifact.Body), "0xABC") {
		t.Fatalf("unexpected artifact %q\n%s", artifact.Renderer, artifact.Body)
	}
}

func TestPreviewNotCalledForInvalidRecord(t *testing.T) {
	preview := orchestrator.NewPreview(newOrchestrator(t), orchestrator.Request{})
	record := testsupport.SampleRecord()
	record.Title = "  "

	controller := form.New(catalog.MustDefault(), form.WithRecord(record), form.WithHandoff(preview))
	result, err := controller.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected invalid submission")
	}
	if _, ok := preview.Artifact(); ok {
		t.Fatalf("expected no hand-off on failed validation")
	}
}

func TestDefaultLogos(t *testing.T) {
	logos := orchestrator.DefaultLogos()
	if len(logos) != 2 {
		t.Fatalf("expected two default logos, got %d", len(logos))
	}
	if !logos[0].IsSVG() || !logos[1].IsRaster() {
		t.Fatalf("unexpected logo media types %q %q", logos[0].MediaType, logos[1].MediaType)
	}
}
