package form

import (
	"strconv"
	"strings"

	"github.com/PageDAO/PageProvenanceService/pkg/model"
)

// FieldName identifies a record field. Names match the JSON tags of
// model.ProvenanceRecord so HTTP form posts and error payloads share them.
type FieldName string

const (
	FieldContractAddress   FieldName = "contractAddress"
	FieldChainID           FieldName = "chainId"
	FieldTitle             FieldName = "title"
	FieldAuthor            FieldName = "author"
	FieldISBN              FieldName = "isbn"
	FieldPublicationDate   FieldName = "publicationDate"
	FieldContentType       FieldName = "contentType"
	FieldEdition           FieldName = "edition"
	FieldPublisher         FieldName = "publisher"
	FieldLanguage          FieldName = "language"
	FieldCC0               FieldName = "cc0"
	FieldAdditionalNotes   FieldName = "additionalNotes"
	FieldCustomAttestation FieldName = "customAttestation"

	// List and set fields. They are not accepted by SetField and only appear
	// as validation error keys.
	FieldApprovedSources FieldName = "approvedSources"
	FieldAttestations    FieldName = "attestations"
)

var scalarFields = []FieldName{
	FieldContractAddress,
	FieldChainID,
	FieldTitle,
	FieldAuthor,
	FieldISBN,
	FieldPublicationDate,
	FieldContentType,
	FieldEdition,
	FieldPublisher,
	FieldLanguage,
	FieldCC0,
	FieldAdditionalNotes,
	FieldCustomAttestation,
}

// ScalarFields lists the fields accepted by SetField in form order.
func ScalarFields() []FieldName {
	return append([]FieldName(nil), scalarFields...)
}

// ParseField resolves a raw field name to a scalar FieldName.
func ParseField(raw string) (FieldName, bool) {
	name := FieldName(strings.TrimSpace(raw))
	for _, candidate := range scalarFields {
		if candidate == name {
			return name, true
		}
	}
	return "", false
}

func (f FieldName) String() string {
	return string(f)
}

var fieldLabels = map[FieldName]string{
	FieldContractAddress:   "Contract Address",
	FieldChainID:           "Chain ID",
	FieldTitle:             "Title",
	FieldAuthor:            "Author",
	FieldISBN:              "ISBN",
	FieldPublicationDate:   "Publication Date",
	FieldContentType:       "Content Type",
	FieldEdition:           "Edition",
	FieldPublisher:         "Publisher",
	FieldLanguage:          "Language",
	FieldCC0:               "Release under CC0",
	FieldAdditionalNotes:   "Additional Notes",
	FieldCustomAttestation: "Custom Attestation",
	FieldApprovedSources:   "Approved Sources",
	FieldAttestations:      "Attestations",
}

// Label returns the human label shown next to the field. Unknown names are
// returned unchanged.
func (f FieldName) Label() string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return string(f)
}

// fieldValue reads a scalar field as the string the form displays.
func fieldValue(record *model.ProvenanceRecord, field FieldName) (string, bool) {
	switch field {
	case FieldContractAddress:
		return record.ContractAddress, true
	case FieldChainID:
		return record.ChainID, true
	case FieldTitle:
		return record.Title, true
	case FieldAuthor:
		return record.Author, true
	case FieldISBN:
		return record.ISBN, true
	case FieldPublicationDate:
		return record.PublicationDate, true
	case FieldContentType:
		return string(record.ContentType), true
	case FieldEdition:
		return record.Edition, true
	case FieldPublisher:
		return record.Publisher, true
	case FieldLanguage:
		return record.Language, true
	case FieldCC0:
		return strconv.FormatBool(record.CC0), true
	case FieldAdditionalNotes:
		return record.AdditionalNotes, true
	case FieldCustomAttestation:
		return record.CustomAttestation, true
	default:
		return "", false
	}
}

// assignField writes value into a string-typed scalar field. Content type and
// the cc0 flag are converted by the controller before reaching here.
func assignField(record *model.ProvenanceRecord, field FieldName, value string) bool {
	switch field {
	case FieldContractAddress:
		record.ContractAddress = value
	case FieldChainID:
		record.ChainID = value
	case FieldTitle:
		record.Title = value
	case FieldAuthor:
		record.Author = value
	case FieldISBN:
		record.ISBN = value
	case FieldPublicationDate:
		record.PublicationDate = value
	case FieldEdition:
		record.Edition = value
	case FieldPublisher:
		record.Publisher = value
	case FieldLanguage:
		record.Language = value
	case FieldAdditionalNotes:
		record.AdditionalNotes = value
	case FieldCustomAttestation:
		record.CustomAttestation = value
	default:
		return false
	}
	return true
}
