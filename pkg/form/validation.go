package form

import (
	"sort"
	"strings"

	"github.com/PageDAO/PageProvenanceService/pkg/model"
)

// Validation messages shown inline next to the offending field.
const (
	MessageContractAddressRequired = "Contract address is required"
	MessageTitleRequired           = "Title is required"
	MessageAuthorRequired          = "Author is required"
	MessageSourcesIncomplete       = "All approved sources must be filled or removed"
	MessageAttestationRequired     = "Please select at least one attestation"
	MessageAttestationUnknown      = "Selected attestations must come from the attestation list"
	MessageContentTypeUnknown      = "Please select a valid content type"
)

// Errors maps a field to the single message describing its violation. An
// empty mapping means the record is valid.
type Errors map[FieldName]string

// Has reports whether field carries an error.
func (e Errors) Has(field FieldName) bool {
	_, ok := e[field]
	return ok
}

// Fields returns the failing fields in a stable order.
func (e Errors) Fields() []FieldName {
	fields := make([]FieldName, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Clone copies the mapping.
func (e Errors) Clone() Errors {
	if e == nil {
		return nil
	}
	out := make(Errors, len(e))
	for field, message := range e {
		out[field] = message
	}
	return out
}

// Map converts the errors into a plain string mapping for JSON payloads and
// templates.
func (e Errors) Map() map[string]string {
	out := make(map[string]string, len(e))
	for field, message := range e {
		out[string(field)] = message
	}
	return out
}

// ValidateRecord checks record against the submission constraints. It is a
// pure function; the controller stores its result for display.
func ValidateRecord(catalog model.Catalog, record model.ProvenanceRecord) Errors {
	errs := Errors{}

	if isBlank(record.ContractAddress) {
		errs[FieldContractAddress] = MessageContractAddressRequired
	}
	if isBlank(record.Title) {
		errs[FieldTitle] = MessageTitleRequired
	}
	if isBlank(record.Author) {
		errs[FieldAuthor] = MessageAuthorRequired
	}

	for _, source := range record.ApprovedSources {
		if isBlank(source) {
			errs[FieldApprovedSources] = MessageSourcesIncomplete
			break
		}
	}

	switch {
	case len(record.Attestations) == 0:
		errs[FieldAttestations] = MessageAttestationRequired
	case !knownAttestations(catalog, record.Attestations):
		errs[FieldAttestations] = MessageAttestationUnknown
	}

	if len(catalog.ContentTypes) > 0 && !catalog.HasContentType(record.ContentType) {
		errs[FieldContentType] = MessageContentTypeUnknown
	}

	return errs
}

func knownAttestations(catalog model.Catalog, ids []string) bool {
	if len(catalog.Attestations) == 0 {
		return true
	}
	for _, id := range ids {
		if _, ok := catalog.Attestation(id); !ok {
			return false
		}
	}
	return true
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
