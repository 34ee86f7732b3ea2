// Package testsupport holds fixtures shared by the renderer, exporter and CLI
// tests.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/formstate"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/schema"
)

// CanonicalValues returns raw input every built-in policy accepts.
func CanonicalValues() map[model.FieldName]string {
	return map[model.FieldName]string{
		model.FieldFirstName: "Jane",
		model.FieldLastName:  "Doe",
		model.FieldGender:    string(model.GenderFemale),
		model.FieldAge:       "30.5",
		model.FieldEmail:     "jane@example.com",
	}
}

// CanonicalRecord is the record CanonicalValues normalizes to.
func CanonicalRecord() model.FormValues {
	return model.FormValues{
		FirstName: "jane",
		LastName:  "Doe",
		Gender:    model.GenderFemale,
		Age:       model.IntPtr(31),
		Email:     "jane@example.com",
	}
}

// MountedController returns a mounted controller for the named policy.
func MountedController(t *testing.T, policyName string, options ...formstate.Option) *formstate.Controller {
	t.Helper()

	policy, err := schema.Lookup(policyName)
	if err != nil {
		t.Fatalf("lookup policy %q: %v", policyName, err)
	}
	c, err := formstate.New(append([]formstate.Option{formstate.WithPolicy(policy)}, options...)...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	c.Mount()
	return c
}

// Submitted returns a controller that has been filled with values and
// submitted once.
func Submitted(t *testing.T, policyName string, values map[model.FieldName]string) *formstate.Controller {
	t.Helper()

	c := MountedController(t, policyName)
	if err := c.SetValues(values); err != nil {
		t.Fatalf("set values: %v", err)
	}
	c.Submit(nil)
	return c
}

// WriteValuesFile writes values as YAML into a temporary directory and returns
// the path.
func WriteValuesFile(t *testing.T, name string, values map[string]any) string {
	t.Helper()

	payload, err := yaml.Marshal(values)
	if err != nil {
		t.Fatalf("marshal values: %v", err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		t.Fatalf("write values: %v", err)
	}
	return path
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
