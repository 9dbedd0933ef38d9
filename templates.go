package provenance

import (
	"io/fs"

	"github.com/PageDAO/PageProvenanceService/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// EmbeddedStylesheets exposes the stylesheet the HTML pages inline.
func EmbeddedStylesheets() fs.FS {
	return html.AssetsFS()
}
