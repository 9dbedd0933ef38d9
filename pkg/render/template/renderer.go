package template

import (
	"io"
)

// TemplateRenderer is what the HTML renderer needs from a template engine.
// RenderTemplate executes a named template from the engine's set;
// RenderString executes inline content such as an operator-supplied footer.
// When out is given the result is also streamed to it.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	// RegisterFilter adds a filter visible to every template.
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	// GlobalContext merges values such as the service title into every
	// render.
	GlobalContext(data any) error
}
