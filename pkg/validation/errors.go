package validation

import (
	"errors"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
)

// FieldValidationError is the only domain error the form produces. It is
// surfaced as inline text next to the field and never returned to callers of
// submit.
type FieldValidationError struct {
	Field   model.FieldName `json:"field"`
	Message string          `json:"message"`
}

func (e FieldValidationError) Error() string {
	return string(e.Field) + ": " + e.Message
}

// ErrorMap maps a field to its current message. A missing key or an empty
// message means the field is valid.
type ErrorMap map[model.FieldName]string

// Get returns the trimmed message for field.
func (m ErrorMap) Get(field model.FieldName) string {
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[field])
}

// Valid reports whether no field carries a message.
func (m ErrorMap) Valid() bool {
	for _, msg := range m {
		if strings.TrimSpace(msg) != "" {
			return false
		}
	}
	return true
}

// Errors returns the failing fields in display order.
func (m ErrorMap) Errors() []FieldValidationError {
	if m.Valid() {
		return nil
	}
	out := make([]FieldValidationError, 0, len(m))
	for _, field := range model.Fields() {
		if msg := m.Get(field); msg != "" {
			out = append(out, FieldValidationError{Field: field, Message: msg})
		}
	}
	return out
}

// Err joins the field errors, returning nil when the map is valid.
func (m ErrorMap) Err() error {
	fieldErrs := m.Errors()
	if len(fieldErrs) == 0 {
		return nil
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fe)
	}
	return errors.Join(errs...)
}

// Clone returns a copy without empty messages.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for field, msg := range m {
		if trimmed := strings.TrimSpace(msg); trimmed != "" {
			out[field] = trimmed
		}
	}
	return out
}

// Strings converts the map into the field-to-messages shape renderers and
// JSON payloads use.
func (m ErrorMap) Strings() map[string][]string {
	if m.Valid() {
		return nil
	}
	out := make(map[string][]string, len(m))
	for field, msg := range m {
		if trimmed := strings.TrimSpace(msg); trimmed != "" {
			out[string(field)] = []string{trimmed}
		}
	}
	return out
}
