package server

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PageDAO/PageProvenanceService/pkg/form"
	"github.com/PageDAO/PageProvenanceService/pkg/model"
	"github.com/PageDAO/PageProvenanceService/pkg/widgets/autosize"
)

const (
	actionField        = "action"
	actionSubmit       = "submit"
	actionAddSource    = "add-source"
	actionRemoveSource = "remove-source"
	indexField         = "index"
	formatField        = "format"
)

// decodeRecord replays posted values as controller commands. Values the
// controller rejects are reported per field instead of failing the request;
// the returned controller holds everything that was accepted.
func decodeRecord(values url.Values, catalog model.Catalog, options ...form.Option) (*form.Controller, form.Errors) {
	seed := model.NewRecord()
	seed.ApprovedSources = []string{}
	controller := form.New(catalog, append([]form.Option{form.WithRecord(seed)}, options...)...)
	errs := form.Errors{}

	for _, name := range form.ScalarFields() {
		if name == form.FieldCC0 {
			continue
		}
		if _, posted := values[name.String()]; !posted {
			continue
		}
		changeField(controller, name, values.Get(name.String()), errs)
	}
	if err := controller.SetField(form.FieldCC0, values.Get(form.FieldCC0.String())); err != nil {
		errs[form.FieldCC0] = commandMessage(err)
	}

	for idx, source := range values[form.FieldApprovedSources.String()] {
		if err := controller.AddSource(); err != nil {
			errs[form.FieldApprovedSources] = commandMessage(err)
			break
		}
		_ = controller.SetSource(idx, strings.TrimSpace(source))
	}

	for _, id := range values[form.FieldAttestations.String()] {
		if err := controller.ToggleAttestation(strings.TrimSpace(id), true); err != nil {
			errs[form.FieldAttestations] = commandMessage(err)
		}
	}
	return controller, errs
}

// changeField feeds a posted value through the same autosize control the
// page renders for it, so the controller sees it as a change event.
func changeField(controller *form.Controller, name form.FieldName, value string, errs form.Errors) {
	onChange := func(value string) {
		if err := controller.SetField(name, value); err != nil {
			errs[name] = commandMessage(err)
		}
	}
	if isNoteField(name) {
		autosize.NewTextArea(onChange).Change(value)
		return
	}
	autosize.NewInput(onChange).Change(value)
}

// parseAction splits "remove-source:2" style button values. A bare
// remove-source reads its index from the index field.
func parseAction(values url.Values) (string, int, error) {
	raw := strings.TrimSpace(values.Get(actionField))
	if raw == "" {
		return actionSubmit, 0, nil
	}
	name, arg, hasArg := strings.Cut(raw, ":")
	switch name {
	case actionSubmit, actionAddSource:
		return name, 0, nil
	case actionRemoveSource:
		if !hasArg {
			arg = values.Get(indexField)
		}
		index, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return "", 0, fmt.Errorf("server: remove-source index %q: %w", arg, err)
		}
		return name, index, nil
	default:
		return "", 0, fmt.Errorf("server: unknown form action %q", raw)
	}
}

func commandMessage(err error) string {
	switch {
	case errors.Is(err, form.ErrUnknownContentType):
		return form.MessageContentTypeUnknown
	case errors.Is(err, form.ErrUnknownAttestation):
		return form.MessageAttestationUnknown
	case errors.Is(err, form.ErrInvalidValue):
		return "Value is not valid for this field"
	default:
		return err.Error()
	}
}

// merge copies decode errors over validation errors. A rejected value is the
// more specific message.
func merge(dst, src form.Errors) form.Errors {
	out := dst.Clone()
	if out == nil {
		out = form.Errors{}
	}
	for field, message := range src {
		out[field] = message
	}
	return out
}
