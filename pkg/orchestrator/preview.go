package orchestrator

import (
	"context"
	"errors"
	"sync"

	"github.com/PageDAO/PageProvenanceService/pkg/form"
	"github.com/PageDAO/PageProvenanceService/pkg/model"
)

// Preview is the hand-off target of a form controller: it renders the
// received record once and keeps the artifact for the view that follows.
type Preview struct {
	orchestrator *Orchestrator
	request      Request

	mu       sync.Mutex
	artifact *Artifact
}

var _ form.Handoff = (*Preview)(nil)

// NewPreview renders with template's renderer, theme and options; the record
// field of template is ignored.
func NewPreview(orchestrator *Orchestrator, template Request) *Preview {
	return &Preview{orchestrator: orchestrator, request: template}
}

// Receive renders record. A second record replaces the first artifact.
func (p *Preview) Receive(ctx context.Context, record model.ProvenanceRecord) error {
	if p == nil || p.orchestrator == nil {
		return errors.New("orchestrator: preview has no orchestrator")
	}
	req := p.request
	req.Record = record
	artifact, err := p.orchestrator.Generate(ctx, req)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.artifact = &artifact
	p.mu.Unlock()
	return nil
}

// Artifact returns the last rendered artifact.
func (p *Preview) Artifact() (Artifact, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.artifact == nil {
		return Artifact{}, false
	}
	return *p.artifact, true
}
