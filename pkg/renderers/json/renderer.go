// Package json exports provenance documents as indented JSON so other tools
// can consume the exact section layout printed on the artifact.
package json

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PageDAO/PageProvenanceService/pkg/document"
	"github.com/PageDAO/PageProvenanceService/pkg/render"
)

// Renderer writes the document model as JSON.
type Renderer struct{}

var _ render.FileRenderer = (*Renderer)(nil)

func New() *Renderer {
	return &Renderer{}
}

func (Renderer) Name() string {
	return "json"
}

func (Renderer) ContentType() string {
	return "application/json"
}

func (Renderer) FileExtension() string {
	return "json"
}

type payload struct {
	document.Document
	Timestamp string `json:"timestamp"`
}

// Render ignores presentation options; JSON has no theme or logo.
func (Renderer) Render(ctx context.Context, doc document.Document, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(payload{Document: doc, Timestamp: doc.Footer.Timestamp()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json renderer: marshal document: %w", err)
	}
	return append(out, '\n'), nil
}
