package form

import (
	"context"

	"github.com/PageDAO/PageProvenanceService/pkg/model"
)

// AddressIssuer obtains a contract address for a validated record before it
// is handed off. A non-empty address replaces the record's contract address.
type AddressIssuer interface {
	IssueAddress(ctx context.Context, record model.ProvenanceRecord) (string, error)
}

// IssuerFunc adapts a function to AddressIssuer.
type IssuerFunc func(ctx context.Context, record model.ProvenanceRecord) (string, error)

// IssueAddress implements AddressIssuer.
func (f IssuerFunc) IssueAddress(ctx context.Context, record model.ProvenanceRecord) (string, error) {
	return f(ctx, record)
}

// Handoff receives the record once it has passed validation. The record is a
// copy owned by the receiver.
type Handoff interface {
	Receive(ctx context.Context, record model.ProvenanceRecord) error
}

// HandoffFunc adapts a function to Handoff.
type HandoffFunc func(ctx context.Context, record model.ProvenanceRecord) error

// Receive implements Handoff.
func (f HandoffFunc) Receive(ctx context.Context, record model.ProvenanceRecord) error {
	return f(ctx, record)
}
