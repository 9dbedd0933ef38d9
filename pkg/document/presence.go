package document

import (
	"strings"

	"github.com/PageDAO/PageProvenanceService/pkg/model"
)

// optionalField is one row of the presence policy: a section that appears
// only when its value is present.
type optionalField struct {
	key   string
	label string
	kind  SectionKind
	value func(model.ProvenanceRecord) string
}

// present is the single presence predicate used for every optional block.
func present(value string) bool {
	return strings.TrimSpace(value) != ""
}

var detailFields = []optionalField{
	{key: "isbn", label: "ISBN", kind: SectionField, value: func(r model.ProvenanceRecord) string { return r.ISBN }},
	{key: "publicationDate", label: "Publication Date", kind: SectionField, value: func(r model.ProvenanceRecord) string { return r.PublicationDate }},
	{key: "edition", label: "Edition", kind: SectionField, value: func(r model.ProvenanceRecord) string { return r.Edition }},
	{key: "publisher", label: "Publisher", kind: SectionField, value: func(r model.ProvenanceRecord) string { return r.Publisher }},
	{key: "language", label: "Language", kind: SectionField, value: func(r model.ProvenanceRecord) string { return r.Language }},
}

var notesField = optionalField{
	key:   "additionalNotes",
	label: "Additional Notes",
	kind:  SectionText,
	value: func(r model.ProvenanceRecord) string { return r.AdditionalNotes },
}

func (f optionalField) section(record model.ProvenanceRecord) (Section, bool) {
	value := f.value(record)
	if !present(value) {
		return Section{}, false
	}
	return Section{
		Key:   f.key,
		Label: f.label,
		Kind:  f.kind,
		Lines: []string{strings.TrimSpace(value)},
	}, true
}
