package render

import (
	"sort"
	"strings"
)

// ErrorMapping splits validation feedback into field-level messages keyed by
// record field name and form-level messages shown above the form.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// FieldError returns the first message for field.
func (m ErrorMapping) FieldError(field string) string {
	if messages := m.Fields[field]; len(messages) > 0 {
		return messages[0]
	}
	return ""
}

// Empty reports whether the mapping holds any message.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapFieldErrors attaches payload messages to the known fields. Keys that are
// not in fields are treated as form-level errors so messages are not lost.
func MapFieldErrors(fields []string, payload map[string]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	known := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		known[strings.TrimSpace(field)] = struct{}{}
	}

	for _, rawPath := range sortedKeys(payload) {
		messages := normalizeMessages([]string{payload[rawPath]})
		if len(messages) == 0 {
			continue
		}
		path := normalizePath(rawPath)
		if _, ok := known[path]; !ok || path == "" {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[path] = append(mapping.Fields[path], messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// normalizePath accepts JSON pointer style paths ("/approvedSources/0") and
// reduces them to the top-level field name.
func normalizePath(raw string) string {
	path := strings.TrimSpace(raw)
	path = strings.TrimPrefix(path, "#")
	path = strings.TrimPrefix(path, "/")
	if idx := strings.IndexAny(path, "/.["); idx >= 0 {
		path = path[:idx]
	}
	return path
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortedKeys(in map[string]string) []string {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
