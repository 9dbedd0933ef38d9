package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/PageDAO/PageProvenanceService/pkg/model"
)

// FixedTime is the generation timestamp used by golden artifacts.
var FixedTime = time.Date(2024, time.May, 1, 12, 30, 0, 0, time.UTC)

// FixedClock returns FixedTime and satisfies document.WithClock.
func FixedClock() time.Time {
	return FixedTime
}

// SampleRecord returns the minimal valid record used across contract tests.
func SampleRecord() model.ProvenanceRecord {
	return model.ProvenanceRecord{
		ContractAddress: "0xABC",
		Title:           "Dune",
		Author:          "F. Herbert",
		ContentType:     model.ContentTypeBook,
		ApprovedSources: []string{"https://example.com/dune"},
		Attestations:    []string{"originalWork"},
	}
}

// FullRecord returns a record with every optional field populated.
func FullRecord() model.ProvenanceRecord {
	return model.ProvenanceRecord{
		ContractAddress:   "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		ChainID:           "eip155:1",
		Title:             "Dune",
		Author:            "F. Herbert",
		ISBN:              "978-0441013593",
		PublicationDate:   "1965-08",
		ContentType:       model.ContentTypeBook,
		Edition:           "First",
		Publisher:         "Chilton Books",
		Language:          "English",
		CC0:               true,
		ApprovedSources:   []string{"https://example.com/dune", "https://example.org/dune"},
		AdditionalNotes:   "Signed first printing.",
		Attestations:      []string{"originalWork", "noInfringement", "editionValidity"},
		CustomAttestation: "Printed on acid-free paper.",
	}
}

// LoadRecord reads a JSON record fixture.
func LoadRecord(path string) (model.ProvenanceRecord, error) {
	if path == "" {
		return model.ProvenanceRecord{}, errors.New("testsupport: record path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ProvenanceRecord{}, fmt.Errorf("testsupport: read record: %w", err)
	}
	var out model.ProvenanceRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return model.ProvenanceRecord{}, fmt.Errorf("testsupport: unmarshal record: %w", err)
	}
	return out, nil
}

// MustLoadRecord is LoadRecord for tests.
func MustLoadRecord(t *testing.T, path string) model.ProvenanceRecord {
	t.Helper()

	record, err := LoadRecord(path)
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	return record
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
