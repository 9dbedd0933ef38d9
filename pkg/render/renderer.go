package render

import (
	"context"

	"github.com/PageDAO/PageProvenanceService/pkg/document"
)

// Renderer serialises a built Document into a byte representation (PDF,
// HTML, plain text, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc document.Document, options RenderOptions) ([]byte, error)
}

// FileRenderer is implemented by renderers whose output is offered as a
// download. FileExtension returns the extension without a leading dot.
type FileRenderer interface {
	Renderer
	FileExtension() string
}

// Extension reports the download extension for renderer, falling back to its
// registered name.
func Extension(renderer Renderer) string {
	if fr, ok := renderer.(FileRenderer); ok {
		if ext := fr.FileExtension(); ext != "" {
			return ext
		}
	}
	return renderer.Name()
}
