package model

import (
	"errors"
	"fmt"
	"strings"
)

// AttestationOption pairs a stable identifier with the legal text shown to the
// user and printed on the artifact.
type AttestationOption struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Catalog holds the fixed enumerations the form and the document builder share.
// Treat it as immutable once constructed.
type Catalog struct {
	ContentTypes []ContentType       `json:"contentTypes" yaml:"contentTypes"`
	Attestations []AttestationOption `json:"attestations" yaml:"attestations"`
}

var (
	errCatalogNoContentTypes = errors.New("model: catalog requires at least one content type")
	errCatalogNoAttestations = errors.New("model: catalog requires at least one attestation option")
)

// Validate checks the catalog for empty or duplicate entries.
func (c Catalog) Validate() error {
	if len(c.ContentTypes) == 0 {
		return errCatalogNoContentTypes
	}
	if len(c.Attestations) == 0 {
		return errCatalogNoAttestations
	}

	seenTypes := make(map[ContentType]struct{}, len(c.ContentTypes))
	for idx, ct := range c.ContentTypes {
		if strings.TrimSpace(string(ct)) == "" {
			return fmt.Errorf("model: content type at index %d is empty", idx)
		}
		if _, exists := seenTypes[ct]; exists {
			return fmt.Errorf("model: duplicate content type %q", ct)
		}
		seenTypes[ct] = struct{}{}
	}

	seenIDs := make(map[string]struct{}, len(c.Attestations))
	for idx, option := range c.Attestations {
		id := strings.TrimSpace(option.ID)
		if id == "" {
			return fmt.Errorf("model: attestation at index %d has an empty id", idx)
		}
		if id != option.ID {
			return fmt.Errorf("model: attestation id %q has surrounding whitespace", option.ID)
		}
		if strings.TrimSpace(option.Text) == "" {
			return fmt.Errorf("model: attestation %q has empty text", id)
		}
		if _, exists := seenIDs[id]; exists {
			return fmt.Errorf("model: duplicate attestation id %q", id)
		}
		seenIDs[id] = struct{}{}
	}
	return nil
}

// Attestation resolves an attestation id to its option.
func (c Catalog) Attestation(id string) (AttestationOption, bool) {
	for _, option := range c.Attestations {
		if option.ID == id {
			return option, true
		}
	}
	return AttestationOption{}, false
}

// HasContentType reports whether ct belongs to the catalog.
func (c Catalog) HasContentType(ct ContentType) bool {
	for _, candidate := range c.ContentTypes {
		if candidate == ct {
			return true
		}
	}
	return false
}

// AttestationIDs lists the option identifiers in catalog order.
func (c Catalog) AttestationIDs() []string {
	ids := make([]string, 0, len(c.Attestations))
	for _, option := range c.Attestations {
		ids = append(ids, option.ID)
	}
	return ids
}
