package model_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/PageDAO/PageProvenanceService/pkg/model"
)

func sampleRecord() model.ProvenanceRecord {
	return model.ProvenanceRecord{
		ContractAddress:   "0xABC",
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
		AdditionalNotes:   "Signed copy.",
		Attestations:      []string{"originalWork", "noInfringement"},
		CustomAttestation: "Printed on demand.",
	}
}

func TestNewRecordDefaults(t *testing.T) {
	record := model.NewRecord()
	if record.ContentType != model.ContentTypeBook {
		t.Fatalf("expected default content type Book, got %q", record.ContentType)
	}
	if diff := cmp.Diff([]string{""}, record.ApprovedSources); diff != "" {
		t.Fatalf("approved sources mismatch (-want +got):\n%s", diff)
	}
	if len(record.Attestations) != 0 {
		t.Fatalf("expected no attestations, got %v", record.Attestations)
	}
}

func TestCloneDoesNotShareSlices(t *testing.T) {
	original := sampleRecord()
	clone := original.Clone()

	clone.ApprovedSources[0] = "mutated"
	clone.Attestations = append(clone.Attestations[:0], "contentWarranty")

	if original.ApprovedSources[0] != "https://example.com/dune" {
		t.Fatalf("clone shared approved sources backing array")
	}
	if original.Attestations[0] != "originalWork" {
		t.Fatalf("clone shared attestations backing array")
	}
}

func TestRecordRoundTripJSON(t *testing.T) {
	original := sampleRecord()

	payload, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded model.ProvenanceRecord
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Fatalf("json round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordRoundTripYAML(t *testing.T) {
	original := sampleRecord()

	payload, err := yaml.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded model.ProvenanceRecord
	if err := yaml.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Fatalf("yaml round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLicense(t *testing.T) {
	record := sampleRecord()
	if got := record.License(); got != "CC0" {
		t.Fatalf("expected CC0, got %q", got)
	}
	record.CC0 = false
	if got := record.License(); got != "All Rights Reserved" {
		t.Fatalf("expected All Rights Reserved, got %q", got)
	}
}

func TestHasAttestationIsExact(t *testing.T) {
	record := sampleRecord()
	if !record.HasAttestation("originalWork") {
		t.Fatalf("expected originalWork to be selected")
	}
	if record.HasAttestation("originalwork") || record.HasAttestation("original") {
		t.Fatalf("expected exact id matching only")
	}
}
