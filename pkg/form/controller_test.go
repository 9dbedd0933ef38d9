package form_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/PageDAO/PageProvenanceService/pkg/catalog"
	"github.com/PageDAO/PageProvenanceService/pkg/form"
	"github.com/PageDAO/PageProvenanceService/pkg/model"
)

func newController(t *testing.T, options ...form.Option) *form.Controller {
	t.Helper()
	return form.New(catalog.MustDefault(), options...)
}

func fill(t *testing.T, c *form.Controller) {
	t.Helper()
	must(t, c.SetField(form.FieldContractAddress, "0xABC"))
	must(t, c.SetField(form.FieldTitle, "Dune"))
	must(t, c.SetField(form.FieldAuthor, "F. Herbert"))
	must(t, c.SetSource(0, "https://example.com/dune"))
	must(t, c.ToggleAttestation("originalWork", true))
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewControllerStartsFromDefaultRecord(t *testing.T) {
	c := newController(t)
	if c.Phase() != form.PhaseEditing {
		t.Fatalf("expected editing phase, got %s", c.Phase())
	}
	if diff := cmp.Diff(model.NewRecord(), c.Record()); diff != "" {
		t.Fatalf("initial record mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateExampleScenario(t *testing.T) {
	c := newController(t)
	fill(t, c)
	must(t, c.SetField(form.FieldISBN, ""))

	valid, errs := c.Validate()
	if !valid {
		t.Fatalf("expected valid record, got errors %v", errs)
	}
	if len(errs) != 0 {
		t.Fatalf("expected empty error mapping, got %v", errs)
	}
}

func TestSubmitBlankSourceDoesNotHandOff(t *testing.T) {
	called := false
	c := newController(t, form.WithHandoff(form.HandoffFunc(func(context.Context, model.ProvenanceRecord) error {
		called = true
		return nil
	})))
	fill(t, c)
	must(t, c.SetSource(0, ""))

	result, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
	if got := result.Errors[form.FieldApprovedSources]; got != form.MessageSourcesIncomplete {
		t.Fatalf("expected approvedSources error, got %q", got)
	}
	if called {
		t.Fatalf("hand-off must not run on failed validation")
	}
	if c.Phase() != form.PhaseEditingWithErrors {
		t.Fatalf("expected editing-with-errors phase, got %s", c.Phase())
	}
}

func TestValidateReportsExactlyMissingRequiredFields(t *testing.T) {
	cases := []struct {
		name  string
		blank []form.FieldName
	}{
		{name: "contract address", blank: []form.FieldName{form.FieldContractAddress}},
		{name: "title", blank: []form.FieldName{form.FieldTitle}},
		{name: "author", blank: []form.FieldName{form.FieldAuthor}},
		{name: "title and author", blank: []form.FieldName{form.FieldTitle, form.FieldAuthor}},
		{name: "all three whitespace", blank: []form.FieldName{form.FieldContractAddress, form.FieldTitle, form.FieldAuthor}},
	}

	messages := map[form.FieldName]string{
		form.FieldContractAddress: form.MessageContractAddressRequired,
		form.FieldTitle:           form.MessageTitleRequired,
		form.FieldAuthor:          form.MessageAuthorRequired,
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newController(t)
			fill(t, c)
			for _, field := range tc.blank {
				must(t, c.SetField(field, "   "))
			}

			valid, errs := c.Validate()
			if valid {
				t.Fatalf("expected invalid record")
			}
			want := form.Errors{}
			for _, field := range tc.blank {
				want[field] = messages[field]
			}
			if diff := cmp.Diff(want, errs); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateApprovedSources(t *testing.T) {
	cases := []struct {
		name    string
		sources []string
		invalid bool
	}{
		{name: "empty list passes", sources: []string{}},
		{name: "filled entries pass", sources: []string{"a", "b"}},
		{name: "blank entry fails", sources: []string{"a", ""}, invalid: true},
		{name: "whitespace entry fails", sources: []string{" \t "}, invalid: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := validRecord()
			record.ApprovedSources = tc.sources
			errs := form.ValidateRecord(catalog.MustDefault(), record)
			if got := errs.Has(form.FieldApprovedSources); got != tc.invalid {
				t.Fatalf("approvedSources flagged=%v, want %v (errors %v)", got, tc.invalid, errs)
			}
		})
	}
}

func TestValidateAttestations(t *testing.T) {
	cat := catalog.MustDefault()

	record := validRecord()
	record.Attestations = nil
	if errs := form.ValidateRecord(cat, record); errs[form.FieldAttestations] != form.MessageAttestationRequired {
		t.Fatalf("expected attestation required error, got %v", errs)
	}

	// Every non-empty prefix of the catalog passes.
	ids := cat.AttestationIDs()
	for n := 1; n <= len(ids); n++ {
		record.Attestations = ids[:n]
		if errs := form.ValidateRecord(cat, record); len(errs) != 0 {
			t.Fatalf("expected %d attestations to pass, got %v", n, errs)
		}
	}

	record.Attestations = []string{"originalWork", "madeUp"}
	if errs := form.ValidateRecord(cat, record); errs[form.FieldAttestations] != form.MessageAttestationUnknown {
		t.Fatalf("expected unknown attestation error, got %v", errs)
	}
}

func TestAddThenRemoveSourceRestoresSequence(t *testing.T) {
	c := newController(t)
	must(t, c.SetSource(0, "https://a.example"))
	must(t, c.AddSource())
	must(t, c.SetSource(1, "https://b.example"))
	before := c.Record().ApprovedSources

	must(t, c.AddSource())
	must(t, c.RemoveSource(len(before)))

	if diff := cmp.Diff(before, c.Record().ApprovedSources); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveSourcePreservesOrder(t *testing.T) {
	record := validRecord()
	record.ApprovedSources = []string{"a", "b", "c"}
	c := newController(t, form.WithRecord(record))

	must(t, c.RemoveSource(1))
	if diff := cmp.Diff([]string{"a", "c"}, c.Record().ApprovedSources); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestSourceIndexBounds(t *testing.T) {
	c := newController(t)
	for _, index := range []int{-1, 1, 5} {
		if err := c.SetSource(index, "x"); !errors.Is(err, form.ErrIndexOutOfRange) {
			t.Fatalf("SetSource(%d): expected ErrIndexOutOfRange, got %v", index, err)
		}
		if err := c.RemoveSource(index); !errors.Is(err, form.ErrIndexOutOfRange) {
			t.Fatalf("RemoveSource(%d): expected ErrIndexOutOfRange, got %v", index, err)
		}
	}
}

func TestToggleAttestationRoundTrip(t *testing.T) {
	c := newController(t)
	must(t, c.ToggleAttestation("noInfringement", true))
	before := c.Record().Attestations

	must(t, c.ToggleAttestation("originalWork", true))
	must(t, c.ToggleAttestation("originalWork", true))
	must(t, c.ToggleAttestation("originalWork", false))
	must(t, c.ToggleAttestation("originalWork", false))

	if diff := cmp.Diff(before, c.Record().Attestations); diff != "" {
		t.Fatalf("attestations mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleAttestationKeepsSelectionOrder(t *testing.T) {
	c := newController(t)
	must(t, c.ToggleAttestation("translationRights", true))
	must(t, c.ToggleAttestation("originalWork", true))
	must(t, c.ToggleAttestation("editionValidity", true))
	must(t, c.ToggleAttestation("originalWork", false))

	want := []string{"translationRights", "editionValidity"}
	if diff := cmp.Diff(want, c.Record().Attestations); diff != "" {
		t.Fatalf("attestations mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleAttestationRejectsUnknownIDs(t *testing.T) {
	c := newController(t)
	for _, id := range []string{"madeUp", "OriginalWork", "original"} {
		if err := c.ToggleAttestation(id, true); !errors.Is(err, form.ErrUnknownAttestation) {
			t.Fatalf("toggle %q: expected ErrUnknownAttestation, got %v", id, err)
		}
	}
}

func TestSetFieldPreconditions(t *testing.T) {
	c := newController(t)

	if err := c.SetField("approvedSources", "x"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := c.SetField("nickname", "x"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := c.SetField(form.FieldContentType, "Podcast"); !errors.Is(err, form.ErrUnknownContentType) {
		t.Fatalf("expected ErrUnknownContentType, got %v", err)
	}
	if err := c.SetField(form.FieldCC0, "maybe"); !errors.Is(err, form.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}

	must(t, c.SetField(form.FieldContentType, "Research Paper"))
	must(t, c.SetField(form.FieldCC0, "on"))
	record := c.Record()
	if record.ContentType != model.ContentTypeResearchPaper || !record.CC0 {
		t.Fatalf("unexpected record %#v", record)
	}
}

func TestSetFieldHasNoValidationSideEffect(t *testing.T) {
	c := newController(t)
	if _, errs := c.Validate(); len(errs) == 0 {
		t.Fatalf("expected errors for the blank record")
	}
	stored := c.Errors()

	must(t, c.SetField(form.FieldTitle, "Dune"))
	if diff := cmp.Diff(stored, c.Errors()); diff != "" {
		t.Fatalf("stored errors changed without validation (-want +got):\n%s", diff)
	}
	if c.Phase() != form.PhaseEditingWithErrors {
		t.Fatalf("expected editing-with-errors phase, got %s", c.Phase())
	}
}

func TestDispatchAppliesCommands(t *testing.T) {
	c := newController(t)
	commands := []form.Command{
		form.SetField{Field: form.FieldContractAddress, Value: "0xABC"},
		form.SetField{Field: form.FieldTitle, Value: "Dune"},
		form.SetField{Field: form.FieldAuthor, Value: "F. Herbert"},
		form.SetSource{Index: 0, Value: "https://example.com/dune"},
		form.AddSource{},
		form.SetSource{Index: 1, Value: "https://example.org/dune"},
		form.RemoveSource{Index: 0},
		form.ToggleAttestation{ID: "originalWork", Checked: true},
	}
	for _, cmd := range commands {
		must(t, c.Dispatch(cmd))
	}

	record := c.Record()
	if diff := cmp.Diff([]string{"https://example.org/dune"}, record.ApprovedSources); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}
	if valid, errs := c.Validate(); !valid {
		t.Fatalf("expected valid record, got %v", errs)
	}
}

func TestSubmitHandsOffCopyAndLocks(t *testing.T) {
	var received model.ProvenanceRecord
	c := newController(t, form.WithHandoff(form.HandoffFunc(func(_ context.Context, record model.ProvenanceRecord) error {
		received = record
		return nil
	})))
	fill(t, c)

	result, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid result, got %v", result.Errors)
	}
	if diff := cmp.Diff(c.Record(), received); diff != "" {
		t.Fatalf("handed off record mismatch (-want +got):\n%s", diff)
	}
	if c.Phase() != form.PhaseSubmitted {
		t.Fatalf("expected submitted phase, got %s", c.Phase())
	}

	received.ApprovedSources[0] = "mutated by receiver"
	if c.Record().ApprovedSources[0] != "https://example.com/dune" {
		t.Fatalf("receiver mutation leaked into controller")
	}

	if err := c.AddSource(); !errors.Is(err, form.ErrSubmitted) {
		t.Fatalf("expected ErrSubmitted, got %v", err)
	}
	if _, err := c.Submit(context.Background()); !errors.Is(err, form.ErrSubmitted) {
		t.Fatalf("expected ErrSubmitted on resubmit, got %v", err)
	}
}

func TestSubmitRunsIssuerBeforeHandoff(t *testing.T) {
	var order []string
	issuer := form.IssuerFunc(func(_ context.Context, record model.ProvenanceRecord) (string, error) {
		order = append(order, "issue")
		return "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", nil
	})
	var received model.ProvenanceRecord
	handoff := form.HandoffFunc(func(_ context.Context, record model.ProvenanceRecord) error {
		order = append(order, "handoff")
		received = record
		return nil
	})

	c := newController(t, form.WithIssuer(issuer), form.WithHandoff(handoff))
	fill(t, c)
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if diff := cmp.Diff([]string{"issue", "handoff"}, order); diff != "" {
		t.Fatalf("call order mismatch (-want +got):\n%s", diff)
	}
	if received.ContractAddress != "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed" {
		t.Fatalf("expected issued address, got %q", received.ContractAddress)
	}
}

func TestSubmitCollaboratorFailureKeepsEditing(t *testing.T) {
	boom := errors.New("boom")

	c := newController(t, form.WithIssuer(form.IssuerFunc(func(context.Context, model.ProvenanceRecord) (string, error) {
		return "", boom
	})))
	fill(t, c)
	if _, err := c.Submit(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected issuer error, got %v", err)
	}
	if c.Phase() == form.PhaseSubmitted {
		t.Fatalf("controller must stay editable after issuer failure")
	}

	c = newController(t, form.WithHandoff(form.HandoffFunc(func(context.Context, model.ProvenanceRecord) error {
		return boom
	})))
	fill(t, c)
	if _, err := c.Submit(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected hand-off error, got %v", err)
	}
	must(t, c.AddSource())
}

func TestWithRecordNormalises(t *testing.T) {
	record := validRecord()
	record.ContentType = ""
	record.Attestations = []string{"originalWork", "noInfringement", "originalWork"}

	c := newController(t, form.WithRecord(record))
	got := c.Record()
	if got.ContentType != model.ContentTypeBook {
		t.Fatalf("expected default content type, got %q", got.ContentType)
	}
	if diff := cmp.Diff([]string{"originalWork", "noInfringement"}, got.Attestations); diff != "" {
		t.Fatalf("attestations mismatch (-want +got):\n%s", diff)
	}

	record.ApprovedSources[0] = "changed after seeding"
	if c.Record().ApprovedSources[0] == "changed after seeding" {
		t.Fatalf("controller shares slices with the seed record")
	}
}

func TestValue(t *testing.T) {
	c := newController(t)
	fill(t, c)
	value, err := c.Value(form.FieldTitle)
	if err != nil || value != "Dune" {
		t.Fatalf("expected Dune, got %q (%v)", value, err)
	}
	if value, _ := c.Value(form.FieldCC0); value != "false" {
		t.Fatalf("expected false, got %q", value)
	}
	if _, err := c.Value(form.FieldApprovedSources); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func validRecord() model.ProvenanceRecord {
	return model.ProvenanceRecord{
		ContractAddress: "0xABC",
		Title:           "Dune",
		Author:          "F. Herbert",
		ContentType:     model.ContentTypeBook,
		ApprovedSources: []string{"https://example.com/dune"},
		Attestations:    []string{"originalWork"},
	}
}
