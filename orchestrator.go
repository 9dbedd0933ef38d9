package provenance

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/PageDAO/PageProvenanceService/pkg/model"
	"github.com/PageDAO/PageProvenanceService/pkg/orchestrator"
	"github.com/PageDAO/PageProvenanceService/pkg/render"
)

// Request describes one artifact to produce.
type Request = orchestrator.Request

// Artifact is a rendered document ready to be served or written to disk.
type Artifact = orchestrator.Artifact

// RenderOptions carry per-request presentation data (theme, logo, download
// form) that never changes document content.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate builds and renders record with the named renderer ("" selects the
// default, pdf). It is the simplest entry point for callers that already hold
// a validated record.
func Generate(ctx context.Context, record model.ProvenanceRecord, rendererName string, options ...orchestrator.Option) (Artifact, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Record:   record,
		Renderer: rendererName,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithTheme selects the default theme and variant.
func WithTheme(name, variant string) orchestrator.Option {
	return orchestrator.WithTheme(name, variant)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
