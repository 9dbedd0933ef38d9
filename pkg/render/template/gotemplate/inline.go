package gotemplate

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	gotemplate "github.com/goliatone/go-template"
)

// noTemplates backs the go-template engine, which needs a loader even when
// only inline content is rendered.
var noTemplates embed.FS

// Inline renders short operator-supplied templates, such as the artifact
// footer, with the go-template engine. Output is plain text: autoescaping is
// off and each renderer escapes for its own format.
type Inline struct {
	engine *gotemplate.Engine
}

// NewInline builds an Inline renderer. globals are visible to every render.
func NewInline(globals map[string]any, options ...gotemplate.Option) (*Inline, error) {
	opts := append([]gotemplate.Option{gotemplate.WithFS(noTemplates)}, options...)
	engine, err := gotemplate.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: inline engine: %w", err)
	}
	if len(globals) > 0 {
		if err := engine.GlobalContext(globals); err != nil {
			return nil, fmt.Errorf("gotemplate: inline globals: %w", err)
		}
	}
	return &Inline{engine: engine}, nil
}

// Render executes content with data and trims surrounding whitespace.
func (i *Inline) Render(content string, data any) (string, error) {
	if i == nil || i.engine == nil {
		return "", errors.New("gotemplate: inline engine is nil")
	}
	out, err := i.engine.RenderString("{% autoescape off %}"+content+"{% endautoescape %}", data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: render inline template: %w", err)
	}
	return strings.TrimSpace(out), nil
}
