package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/PageDAO/PageProvenanceService/pkg/catalog"
	"github.com/PageDAO/PageProvenanceService/pkg/document"
	"github.com/PageDAO/PageProvenanceService/pkg/model"
	"github.com/PageDAO/PageProvenanceService/pkg/render"
	"github.com/PageDAO/PageProvenanceService/pkg/render/template/gotemplate"
	"github.com/PageDAO/PageProvenanceService/pkg/renderers/html"
	jsonrenderer "github.com/PageDAO/PageProvenanceService/pkg/renderers/json"
	"github.com/PageDAO/PageProvenanceService/pkg/renderers/pdf"
	"github.com/PageDAO/PageProvenanceService/pkg/renderers/text"
)

const defaultRendererName = "pdf"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithBuilder injects the document builder. Its catalog is the one the form
// validated against.
func WithBuilder(builder *document.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithPDFOptions configures the default pdf renderer. Ignored when
// WithRegistry supplies the renderers.
func WithPDFOptions(options ...pdf.Option) Option {
	return func(o *Orchestrator) {
		o.pdfOptions = append(o.pdfOptions, options...)
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = strings.TrimSpace(name)
	}
}

// WithLogos sets the logos offered to renderers. Pass none to print artifacts
// without a logo.
func WithLogos(logos ...*render.Logo) Option {
	return func(o *Orchestrator) {
		o.logos = logos
		o.logosSpecified = true
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates document building, theme resolution and rendering.
// Defaults: embedded catalog, pdf/html/text/json renderers, the built-in page
// theme and the PageDAO logo.
type Orchestrator struct {
	builder         *document.Builder
	registry        *render.Registry
	pdfOptions      []pdf.Option
	footerTemplate  string
	footer          *gotemplate.Inline
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	themeName       string
	themeVariant    string
	themeFallbacks  map[string]string
	logos           []*render.Logo
	logosSpecified  bool
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one artifact to produce.
type Request struct {
	// Record must already have passed form validation.
	Record model.ProvenanceRecord

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant override the configured theme.
	ThemeName    string
	ThemeVariant string

	// RenderOptions are passed to the renderer. Theme and Logo are filled in
	// by the orchestrator when left nil.
	RenderOptions render.RenderOptions
}

// Artifact is a rendered document ready to be served or written to disk.
type Artifact struct {
	Name        string
	Renderer    string
	ContentType string
	Body        []byte
	Document    document.Document
}

// Generate builds the document for req.Record and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Artifact, error) {
	if ctx == nil {
		return Artifact{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Artifact{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Artifact{}, err
	}

	doc, err := o.builder.Build(req.Record)
	if err != nil {
		return Artifact{}, fmt.Errorf("orchestrator: build document: %w", err)
	}
	if err := o.applyFooter(&doc); err != nil {
		return Artifact{}, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return Artifact{}, err
		}
		opts.Theme = cfg
	}
	if opts.Logo == nil {
		opts.Logo = pickLogo(renderer.Name(), o.logos)
	}

	body, err := renderer.Render(ctx, doc, opts)
	if err != nil {
		return Artifact{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	artifact := Artifact{
		Name:        ArtifactName(doc, renderer),
		Renderer:    renderer.Name(),
		ContentType: renderer.ContentType(),
		Body:        body,
		Document:    doc,
	}
	o.logger.Info("artifact rendered",
		zap.String("serial", doc.Serial),
		zap.String("renderer", artifact.Renderer),
		zap.Int("bytes", len(body)),
		zap.Int("defects", len(doc.Defects)),
	)
	return artifact, nil
}

// Presentation resolves the theme and logo a renderer receives. Surfaces
// that render their own pages (the HTML form) use it to match artifacts.
func (o *Orchestrator) Presentation(rendererName, themeName, themeVariant string) (render.RenderOptions, error) {
	if err := o.initialiseErr; err != nil {
		return render.RenderOptions{}, err
	}
	cfg, err := o.resolveTheme(themeName, themeVariant)
	if err != nil {
		return render.RenderOptions{}, err
	}
	return render.RenderOptions{
		Theme: cfg,
		Logo:  pickLogo(strings.ToLower(strings.TrimSpace(rendererName)), o.logos),
	}, nil
}

// HasRenderer reports whether name is registered.
func (o *Orchestrator) HasRenderer(name string) bool {
	return o.registry != nil && o.registry.Has(name)
}

// DefaultRenderer returns the renderer used when requests name none.
func (o *Orchestrator) DefaultRenderer() string {
	return o.defaultRenderer
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

// Catalog returns the catalog documents are built against.
func (o *Orchestrator) Catalog() model.Catalog {
	return o.builder.Catalog()
}

// ArtifactName returns the download name for doc, e.g.
// "provenance-1b4e28ba.pdf".
func ArtifactName(doc document.Document, renderer render.Renderer) string {
	serial := doc.Serial
	if i := strings.IndexByte(serial, '-'); i > 0 {
		serial = serial[:i]
	}
	if serial == "" {
		serial = "artifact"
	}
	return fmt.Sprintf("provenance-%s.%s", serial, render.Extension(renderer))
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := strings.TrimSpace(name)
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if strings.TrimSpace(name) != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	if strings.TrimSpace(name) == "" {
		name = o.themeName
		if strings.TrimSpace(variant) == "" {
			variant = o.themeVariant
		}
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return rendererConfig(selection, o.themeFallbacks), nil
}

func (o *Orchestrator) applyDefaults() {
	if o.builder == nil {
		cat, err := catalog.Default()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default catalog: %w", err)
			return
		}
		o.builder = document.NewBuilder(cat, document.WithLogger(o.logger))
	}
	if o.registry == nil {
		o.registry = DefaultRegistry(o.pdfOptions...)
		htmlRenderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(htmlRenderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeSelector == nil {
		selector, err := NewManifestSelector(o.themeName, o.themeVariant, DefaultManifest())
		if err != nil {
			o.initialiseErr = err
			return
		}
		o.themeSelector = selector
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = defaultThemeFallbacks()
	}
	if !o.logosSpecified {
		o.logos = DefaultLogos()
	}
	if err := o.initFooter(); err != nil {
		o.initialiseErr = err
	}
}

// DefaultRegistry returns a registry holding the pdf, text and json
// renderers. The html renderer is added by New because its constructor can
// fail.
func DefaultRegistry(pdfOptions ...pdf.Option) *render.Registry {
	return render.NewRegistry(pdf.New(pdfOptions...), text.New(), jsonrenderer.New())
}
