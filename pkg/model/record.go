package model

import "strings"

// ContentType enumerates the kinds of work a record can describe.
type ContentType string

const (
	ContentTypeBook          ContentType = "Book"
	ContentTypeArticle       ContentType = "Article"
	ContentTypeResearchPaper ContentType = "Research Paper"
	ContentTypeOther         ContentType = "Other"
)

// DefaultContentType is applied to fresh records.
const DefaultContentType = ContentTypeBook

// ProvenanceRecord is the single entity collected by the form. It has no
// identity of its own and is never persisted by this module.
type ProvenanceRecord struct {
	ContractAddress   string      `json:"contractAddress" yaml:"contractAddress"`
	ChainID           string      `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	Title             string      `json:"title" yaml:"title"`
	Author            string      `json:"author" yaml:"author"`
	ISBN              string      `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	PublicationDate   string      `json:"publicationDate,omitempty" yaml:"publicationDate,omitempty"`
	ContentType       ContentType `json:"contentType" yaml:"contentType"`
	Edition           string      `json:"edition,omitempty" yaml:"edition,omitempty"`
	Publisher         string      `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Language          string      `json:"language,omitempty" yaml:"language,omitempty"`
	CC0               bool        `json:"cc0,omitempty" yaml:"cc0,omitempty"`
	ApprovedSources   []string    `json:"approvedSources" yaml:"approvedSources"`
	AdditionalNotes   string      `json:"additionalNotes,omitempty" yaml:"additionalNotes,omitempty"`
	Attestations      []string    `json:"attestations" yaml:"attestations"`
	CustomAttestation string      `json:"customAttestation,omitempty" yaml:"customAttestation,omitempty"`
}

// NewRecord returns the record a form session starts from: a single blank
// source entry, no attestations and the default content type.
func NewRecord() ProvenanceRecord {
	return ProvenanceRecord{
		ContentType:     DefaultContentType,
		ApprovedSources: []string{""},
		Attestations:    []string{},
	}
}

// Clone returns a deep copy so callers can hand the record off without sharing
// the backing slices.
func (r ProvenanceRecord) Clone() ProvenanceRecord {
	out := r
	out.ApprovedSources = cloneStrings(r.ApprovedSources)
	out.Attestations = cloneStrings(r.Attestations)
	return out
}

// Identity returns the identity fields used for the primary document line.
func (r ProvenanceRecord) Identity() Identity {
	return Identity{
		ChainID:         strings.TrimSpace(r.ChainID),
		ContractAddress: strings.TrimSpace(r.ContractAddress),
	}
}

// License reports the license label rendered on the artifact.
func (r ProvenanceRecord) License() string {
	if r.CC0 {
		return "CC0"
	}
	return "All Rights Reserved"
}

// HasAttestation reports whether id is selected. Matching is exact.
func (r ProvenanceRecord) HasAttestation(id string) bool {
	for _, existing := range r.Attestations {
		if existing == id {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
