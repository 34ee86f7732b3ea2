package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-regform/pkg/testsupport"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(&globalFlags{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestValidateCommand_Valid(t *testing.T) {
	values := make(map[string]any)
	for field, value := range testsupport.CanonicalValues() {
		values[string(field)] = value
	}
	path := testsupport.WriteValuesFile(t, "values.yaml", values)

	out, err := execute(t, "validate", path)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	for _, want := range []string{"firstName: jane", "age: 31"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in\n%s", want, out)
		}
	}
}

func TestValidateCommand_Invalid(t *testing.T) {
	path := writeFile(t, "values.json", `{"firstName":"Jane","lastName":"Doe","gender":"female","email":"a@b.co"}`)

	out, err := execute(t, "validate", path)
	if !errors.Is(err, errInvalidValues) {
		t.Fatalf("expected errInvalidValues, got %v", err)
	}
	want := "age: Ahh, you forgot to assign the age\nemail: This email should have a minimum of 10 characters\n"
	if out != want {
		t.Fatalf("unexpected output:\n%s", out)
	}

	out, err = execute(t, "--policy", "nullable", "validate", path, "--format", "json")
	if !errors.Is(err, errInvalidValues) {
		t.Fatalf("expected errInvalidValues, got %v", err)
	}
	if !strings.Contains(out, `"email":"This email should have a minimum of 10 characters"`) || strings.Contains(out, `"age"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "schema", "--format", "yaml", "--path", "/signup")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	for _, want := range []string{"openapi: 3.0.3", "/signup:", "RegistrationForm:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in\n%s", want, out)
		}
	}

	if _, err := execute(t, "schema", "--format", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestPoliciesCommand(t *testing.T) {
	out, err := execute(t, "policies")
	if err != nil {
		t.Fatalf("policies: %v", err)
	}
	if !strings.Contains(out, "strict (default)") || !strings.Contains(out, "nullable") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	out, err = execute(t, "policies", "--verbose")
	if err != nil {
		t.Fatalf("policies --verbose: %v", err)
	}
	if !strings.Contains(out, "name: minLength") {
		t.Fatalf("expected rule names in\n%s", out)
	}
}

func TestUnknownPolicyFlag(t *testing.T) {
	if _, err := execute(t, "--policy", "lenient", "schema"); err == nil {
		t.Fatalf("expected unknown policy error")
	}
}
