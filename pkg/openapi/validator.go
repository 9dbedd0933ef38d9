package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// RecordSchema names the component schema used for record payloads.
const RecordSchema = "ProvenanceRecord"

// ErrPayloadInvalid is wrapped by *PayloadError.
var ErrPayloadInvalid = errors.New("openapi: payload does not match schema")

// Problem is one structural issue found in a payload.
type Problem struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// PayloadError lists every problem found in a payload.
type PayloadError struct {
	Problems []Problem
}

func (e *PayloadError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.Path+": "+p.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrPayloadInvalid, strings.Join(parts, "; "))
}

func (e *PayloadError) Unwrap() error {
	return ErrPayloadInvalid
}

// Validator checks JSON payloads against component schemas of a contract.
type Validator struct {
	doc *openapi3.T
}

// NewValidator loads and validates the embedded contract.
func NewValidator(ctx context.Context) (*Validator, error) {
	return NewValidatorFromData(ctx, Spec())
}

// NewValidatorFromData loads a contract from raw JSON or YAML.
func NewValidatorFromData(ctx context.Context, data []byte) (*Validator, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi: contract is empty")
	}
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate contract: %w", err)
	}
	if doc.Components == nil || doc.Components.Schemas[RecordSchema] == nil {
		return nil, fmt.Errorf("openapi: contract has no %s schema", RecordSchema)
	}
	return &Validator{doc: doc}, nil
}

// Document returns the parsed contract.
func (v *Validator) Document() *openapi3.T {
	return v.doc
}

// ValidateRecord checks a record payload. Malformed JSON and schema
// mismatches both come back as *PayloadError.
func (v *Validator) ValidateRecord(payload []byte) error {
	return v.Validate(RecordSchema, payload)
}

// Validate checks payload against the named component schema.
func (v *Validator) Validate(schemaName string, payload []byte) error {
	ref := v.doc.Components.Schemas[schemaName]
	if ref == nil || ref.Value == nil {
		return fmt.Errorf("openapi: unknown schema %q", schemaName)
	}

	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return &PayloadError{Problems: []Problem{{Path: "/", Reason: "body is not valid JSON"}}}
	}

	err := ref.Value.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	problems := collectProblems(err)
	if len(problems) == 0 {
		problems = []Problem{{Path: "/", Reason: err.Error()}}
	}
	return &PayloadError{Problems: problems}
}

func collectProblems(err error) []Problem {
	var problems []Problem
	var walk func(error)
	walk = func(err error) {
		switch e := err.(type) {
		case openapi3.MultiError:
			for _, inner := range e {
				walk(inner)
			}
		case *openapi3.SchemaError:
			problems = append(problems, Problem{
				Path:   "/" + strings.Join(e.JSONPointer(), "/"),
				Reason: e.Reason,
			})
		default:
			problems = append(problems, Problem{Path: "/", Reason: err.Error()})
		}
	}
	walk(err)

	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Path < problems[j].Path
	})
	return problems
}
