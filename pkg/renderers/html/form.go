package html

import (
	"context"
	"fmt"

	"github.com/PageDAO/PageProvenanceService/pkg/render"
)

// Control kinds understood by the form template.
const (
	ControlInput    = "input"
	ControlMonth    = "month"
	ControlTextArea = "textarea"
	ControlSelect   = "select"
	ControlCheckbox = "checkbox"
)

// FieldView is one scalar control on the form page.
type FieldView struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Control     string       `json:"control"`
	Value       string       `json:"value"`
	Placeholder string       `json:"placeholder,omitempty"`
	Required    bool         `json:"required,omitempty"`
	Checked     bool         `json:"checked,omitempty"`
	Size        int          `json:"size,omitempty"`
	Rows        int          `json:"rows,omitempty"`
	Options     []OptionView `json:"options,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// OptionView is a select option.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// SourceView is one approved source row.
type SourceView struct {
	Index int    `json:"index"`
	Value string `json:"value"`
	Size  int    `json:"size"`
}

// ChoiceView is one attestation checkbox.
type ChoiceView struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked,omitempty"`
}

// FormView is everything the form page needs. Fields render before the
// approved sources, NoteFields after the attestations.
type FormView struct {
	Action            string       `json:"action"`
	ServiceTitle      string       `json:"serviceTitle"`
	ScriptURL         string       `json:"scriptUrl,omitempty"`
	Fields            []FieldView  `json:"fields"`
	Sources           []SourceView `json:"sources"`
	SourcesError      string       `json:"sourcesError,omitempty"`
	Attestations      []ChoiceView `json:"attestations"`
	AttestationsError string       `json:"attestationsError,omitempty"`
	NoteFields        []FieldView  `json:"noteFields"`
	FormErrors        []string     `json:"formErrors,omitempty"`
}

// RenderForm writes the form page.
func (r *Renderer) RenderForm(_ context.Context, view FormView, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"form":       view,
		"logo":       buildLogoView(opts.Logo),
		"theme":      buildThemeView(opts.Theme),
		"stylesheet": r.stylesheet,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render form: %w", err)
	}
	return []byte(result), nil
}
