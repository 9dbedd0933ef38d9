package server

import (
	"github.com/PageDAO/PageProvenanceService/pkg/form"
	"github.com/PageDAO/PageProvenanceService/pkg/model"
	"github.com/PageDAO/PageProvenanceService/pkg/render"
	"github.com/PageDAO/PageProvenanceService/pkg/renderers/html"
	"github.com/PageDAO/PageProvenanceService/pkg/widgets/autosize"
)

type fieldSpec struct {
	name        form.FieldName
	control     string
	placeholder string
	required    bool
}

// Scalar controls in page order. Approved sources and attestations are
// rendered between fieldSpecs and noteSpecs.
var fieldSpecs = []fieldSpec{
	{name: form.FieldContractAddress, control: html.ControlInput, placeholder: "0x...", required: true},
	{name: form.FieldChainID, control: html.ControlInput, placeholder: "eip155:1"},
	{name: form.FieldTitle, control: html.ControlInput, required: true},
	{name: form.FieldAuthor, control: html.ControlInput, required: true},
	{name: form.FieldISBN, control: html.ControlInput},
	{name: form.FieldPublicationDate, control: html.ControlMonth, placeholder: "YYYY-MM"},
	{name: form.FieldContentType, control: html.ControlSelect},
	{name: form.FieldEdition, control: html.ControlInput},
	{name: form.FieldPublisher, control: html.ControlInput},
	{name: form.FieldLanguage, control: html.ControlInput},
	{name: form.FieldCC0, control: html.ControlCheckbox},
}

var noteSpecs = []fieldSpec{
	{name: form.FieldAdditionalNotes, control: html.ControlTextArea},
	{name: form.FieldCustomAttestation, control: html.ControlTextArea, placeholder: "Add any further claims about this work"},
}

func isNoteField(name form.FieldName) bool {
	for _, spec := range noteSpecs {
		if spec.name == name {
			return true
		}
	}
	return false
}

func fieldNames() []string {
	names := make([]string, 0, len(fieldSpecs)+len(noteSpecs)+2)
	for _, spec := range fieldSpecs {
		names = append(names, spec.name.String())
	}
	for _, spec := range noteSpecs {
		names = append(names, spec.name.String())
	}
	return append(names, form.FieldApprovedSources.String(), form.FieldAttestations.String())
}

// buildFormView maps the record and its errors onto the form page. Field
// messages the page has no slot for surface as form-level errors.
func buildFormView(action, title, scriptURL string, catalog model.Catalog, record model.ProvenanceRecord, errs form.Errors, extra ...string) html.FormView {
	mapping := render.MapFieldErrors(fieldNames(), errs.Map())
	lookup := form.New(catalog, form.WithRecord(record))

	view := html.FormView{
		Action:            action,
		ServiceTitle:      title,
		ScriptURL:         scriptURL,
		SourcesError:      mapping.FieldError(form.FieldApprovedSources.String()),
		AttestationsError: mapping.FieldError(form.FieldAttestations.String()),
		FormErrors:        render.MergeFormErrors(mapping.Form, extra...),
	}

	for _, spec := range fieldSpecs {
		view.Fields = append(view.Fields, buildField(spec, lookup, catalog, mapping))
	}
	for _, spec := range noteSpecs {
		view.NoteFields = append(view.NoteFields, buildField(spec, lookup, catalog, mapping))
	}

	for idx, source := range record.ApprovedSources {
		input := autosize.NewInput(nil)
		input.Change(source)
		view.Sources = append(view.Sources, html.SourceView{
			Index: idx,
			Value: input.Value(),
			Size:  input.Size(),
		})
	}
	for _, option := range catalog.Attestations {
		view.Attestations = append(view.Attestations, html.ChoiceView{
			ID:      option.ID,
			Text:    option.Text,
			Checked: record.HasAttestation(option.ID),
		})
	}
	return view
}

func buildField(spec fieldSpec, lookup *form.Controller, catalog model.Catalog, mapping render.ErrorMapping) html.FieldView {
	value, _ := lookup.Value(spec.name)
	field := html.FieldView{
		Name:        spec.name.String(),
		Label:       spec.name.Label(),
		Control:     spec.control,
		Value:       value,
		Placeholder: spec.placeholder,
		Required:    spec.required,
		Error:       mapping.FieldError(spec.name.String()),
	}

	switch spec.control {
	case html.ControlInput, html.ControlMonth:
		input := autosize.NewInput(nil)
		input.Change(value)
		field.Size = input.Size()
	case html.ControlTextArea:
		area := autosize.NewTextArea(nil)
		area.Change(value)
		field.Rows = area.Rows()
	case html.ControlCheckbox:
		field.Checked = value == "true"
		field.Value = ""
	case html.ControlSelect:
		for _, ct := range catalog.ContentTypes {
			field.Options = append(field.Options, html.OptionView{
				Value:    string(ct),
				Label:    string(ct),
				Selected: string(ct) == value,
			})
		}
	}
	return field
}

// recordFields flattens a record into hidden inputs that decodeRecord reads
// back. Blank scalars are skipped; list entries keep their order.
func recordFields(catalog model.Catalog, record model.ProvenanceRecord) []render.HiddenField {
	lookup := form.New(catalog, form.WithRecord(record))
	var fields []render.HiddenField
	for _, name := range form.ScalarFields() {
		value, _ := lookup.Value(name)
		if value == "" || (name == form.FieldCC0 && value == "false") {
			continue
		}
		fields = append(fields, render.Hidden(name.String(), value))
	}
	fields = append(fields, render.HiddenList(form.FieldApprovedSources.String(), record.ApprovedSources)...)
	fields = append(fields, render.HiddenList(form.FieldAttestations.String(), record.Attestations)...)
	return fields
}
