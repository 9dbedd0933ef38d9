package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/PageDAO/PageProvenanceService/pkg/document"
	"github.com/PageDAO/PageProvenanceService/pkg/render"
	rendertemplate "github.com/PageDAO/PageProvenanceService/pkg/render/template"
	gotemplate "github.com/PageDAO/PageProvenanceService/pkg/render/template/gotemplate"
)

const (
	documentTemplate = "templates/document.tmpl"
	formTemplate     = "templates/form.tmpl"
)

// Option customises the HTML renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet replaces the inlined stylesheet.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = css
	}
}

// Renderer produces the HTML preview of a document and the form page.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
}

var _ render.FileRenderer = (*Renderer)(nil)

// New constructs the HTML renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), stylesheet: defaultStylesheet()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, stylesheet: cfg.stylesheet}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) FileExtension() string {
	return "html"
}

type sectionView struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Kind  string   `json:"kind"`
	Lines []string `json:"lines"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type downloadView struct {
	Action  string       `json:"action"`
	Fields  []hiddenView `json:"fields"`
	Formats []string     `json:"formats"`
}

type documentView struct {
	Serial     string            `json:"serial"`
	Header     document.Header   `json:"header"`
	Sections   []sectionView     `json:"sections"`
	Statement  string            `json:"footerStatement"`
	Timestamp  string            `json:"timestamp"`
	Defects    []document.Defect `json:"defects,omitempty"`
	Logo       *logoView         `json:"logo,omitempty"`
	Theme      themeView         `json:"theme"`
	Stylesheet string            `json:"stylesheet"`
	Download   *downloadView     `json:"download,omitempty"`
}

// Render writes the preview page for doc.
func (r *Renderer) Render(_ context.Context, doc document.Document, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	view := documentView{
		Serial:     doc.Serial,
		Header:     doc.Header,
		Statement:  doc.Footer.Statement,
		Timestamp:  doc.Footer.Timestamp(),
		Defects:    doc.Defects,
		Logo:       buildLogoView(opts.Logo),
		Theme:      buildThemeView(opts.Theme),
		Stylesheet: r.stylesheet,
		Download:   buildDownloadView(opts.Download),
	}
	for _, section := range doc.Sections {
		view.Sections = append(view.Sections, sectionView{
			Key:   section.Key,
			Label: section.Label,
			Kind:  string(section.Kind),
			Lines: section.Lines,
		})
	}

	result, err := r.templates.RenderTemplate(documentTemplate, map[string]any{
		"doc": view,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render document: %w", err)
	}
	return []byte(result), nil
}

func buildDownloadView(form *render.DownloadForm) *downloadView {
	if form == nil {
		return nil
	}
	view := &downloadView{Action: form.Action, Formats: form.Formats}
	for _, field := range render.CleanHiddenFields(form.Fields...) {
		view.Fields = append(view.Fields, hiddenView{Name: field.Name, Value: field.Value})
	}
	return view
}
