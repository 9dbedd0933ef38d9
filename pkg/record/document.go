package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/PageDAO/PageProvenanceService/pkg/model"
)

// Document wraps a raw record payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("record: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, errors.New("record: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Record decodes the payload. JSON is tried first, then YAML; unknown keys
// are rejected by both.
func (d Document) Record() (model.ProvenanceRecord, error) {
	return Decode(d.raw, d.Location())
}

// Decode parses a JSON or YAML record payload. The result is not validated;
// run it through a form controller before rendering.
func Decode(data []byte, location string) (model.ProvenanceRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return model.ProvenanceRecord{}, fmt.Errorf("record: %s is empty", location)
	}

	var rec model.ProvenanceRecord
	if trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&rec); err != nil {
			return model.ProvenanceRecord{}, fmt.Errorf("record: decode json %s: %w", location, err)
		}
		return rec, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(trimmed))
	dec.KnownFields(true)
	if err := dec.Decode(&rec); err != nil {
		return model.ProvenanceRecord{}, fmt.Errorf("record: decode yaml %s: %w", location, err)
	}
	return rec, nil
}
