package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
)

func TestMapErrors(t *testing.T) {
	errs := validation.ErrorMap{
		model.FieldAge:   "age must be a positive number",
		model.FieldEmail: "  ",
	}
	extra := map[string][]string{
		"age":              {"age must be a positive number", "too old"},
		"form":             {"request could not be read"},
		"website":          {"unknown field"},
		"non_field_errors": {" request could not be read "},
		"lastName":         {"  "},
	}

	mapped := render.MapErrors(errs, extra)

	wantFields := map[string][]string{
		"age": {"age must be a positive number", "too old"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"request could not be read", "unknown field"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrors_Empty(t *testing.T) {
	mapped := render.MapErrors(nil, nil)
	if mapped.Fields != nil || mapped.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
