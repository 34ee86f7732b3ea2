package openapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/model"
)

// Document is a validated OpenAPI document for one policy.
type Document struct {
	policy string
	raw    []byte
	spec   *openapi3.T
}

// Policy returns the name of the exported policy.
func (d *Document) Policy() string {
	return d.policy
}

// JSON returns the indented JSON encoding.
func (d *Document) JSON() []byte {
	return append([]byte(nil), d.raw...)
}

// YAML re-encodes the document as YAML with two space indentation.
func (d *Document) YAML() ([]byte, error) {
	var payload map[string]any
	if err := json.Unmarshal(d.raw, &payload); err != nil {
		return nil, fmt.Errorf("openapi: decode document: %w", err)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Spec exposes the loaded kin-openapi document.
func (d *Document) Spec() *openapi3.T {
	return d.spec
}

// FormSchema returns the RegistrationForm component schema.
func (d *Document) FormSchema() (*openapi3.Schema, error) {
	if d.spec == nil || d.spec.Components == nil {
		return nil, errors.New("openapi: document has no components")
	}
	ref, ok := d.spec.Components.Schemas[FormSchemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: schema %q not found", FormSchemaName)
	}
	return ref.Value, nil
}

// ValidateRecord checks an accepted record against the form schema. A record
// the validator accepted under the same policy always passes.
func (d *Document) ValidateRecord(record model.FormValues) error {
	s, err := d.FormSchema()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("openapi: encode record: %w", err)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("openapi: decode record: %w", err)
	}
	if err := s.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("openapi: record does not match %s: %w", FormSchemaName, err)
	}
	return nil
}
