package render

import (
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

// ErrorMapping splits messages into field-level and form-level groups, the
// shape renderers and JSON responses consume.
type ErrorMapping struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// MapErrors combines the controller ErrorMap with additional messages keyed
// by field name. Keys that are not form fields are treated as form-level so
// messages are not lost.
func MapErrors(errs validation.ErrorMap, extra map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}

	for field, msg := range errs.Clone() {
		mapping.Fields[string(field)] = []string{msg}
	}

	for key, messages := range extra {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		field, ok := model.ParseFieldName(key)
		if !ok || isFormLevelKey(key) {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[string(field)] = normalizeMessages(append(mapping.Fields[string(field)], normalized...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
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

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors":
		return true
	default:
		return false
	}
}
