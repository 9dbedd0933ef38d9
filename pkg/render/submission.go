package render

import (
	"fmt"
	"strings"
)

// HiddenField is a hidden form input. Names may repeat so list values
// (approved sources, attestations) post back in order.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// HiddenList expands values into one field per entry under the same name,
// keeping their order. Blank entries are kept so indexes stay stable.
func HiddenList(name string, values []string) []HiddenField {
	if len(values) == 0 {
		return nil
	}
	out := make([]HiddenField, 0, len(values))
	for _, value := range values {
		out = append(out, Hidden(name, value))
	}
	return out
}

// CleanHiddenFields trims names and drops unnamed fields while preserving
// order. Returns nil when nothing remains.
func CleanHiddenFields(fields ...HiddenField) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	out := make([]HiddenField, 0, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out = append(out, HiddenField{Name: name, Value: field.Value})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
