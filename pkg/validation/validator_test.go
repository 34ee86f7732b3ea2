package validation_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/schema"
	"github.com/goliatone/go-regform/pkg/validation"
)

func newValidator(t *testing.T, policy string) *validation.Validator {
	t.Helper()
	p, err := schema.Lookup(policy)
	if err != nil {
		t.Fatalf("lookup policy: %v", err)
	}
	v, err := validation.New(p)
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func validInput() map[model.FieldName]string {
	return map[model.FieldName]string{
		model.FieldFirstName: "Jane",
		model.FieldLastName:  "Doe",
		model.FieldGender:    "female",
		model.FieldAge:       "30",
		model.FieldEmail:     "jane@example.com",
	}
}

func TestValidate_AcceptsCanonicalRecord(t *testing.T) {
	for _, policy := range schema.Names() {
		t.Run(policy, func(t *testing.T) {
			record, errs := newValidator(t, policy).Validate(validInput())
			if !errs.Valid() {
				t.Fatalf("expected no errors, got %v", errs)
			}
			want := model.FormValues{
				FirstName: "jane",
				LastName:  "Doe",
				Gender:    model.GenderFemale,
				Age:       model.IntPtr(30),
				Email:     "jane@example.com",
			}
			if diff := cmp.Diff(want, record); diff != "" {
				t.Fatalf("record mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_EmptyRequiredFieldFailsAlone(t *testing.T) {
	cases := []struct {
		policy string
		field  model.FieldName
		want   string
	}{
		{schema.PolicyStrict, model.FieldFirstName, "firstName is a required field"},
		{schema.PolicyStrict, model.FieldLastName, "lastName is a required field"},
		{schema.PolicyStrict, model.FieldGender, "gender is a required field"},
		{schema.PolicyStrict, model.FieldAge, "Ahh, you forgot to assign the age"},
		{schema.PolicyStrict, model.FieldEmail, "This email should have a minimum of 10 characters"},
		{schema.PolicyNullable, model.FieldFirstName, "firstName is a required field"},
		{schema.PolicyNullable, model.FieldLastName, "lastName is a required field"},
		{schema.PolicyNullable, model.FieldGender, "gender is a required field"},
		{schema.PolicyNullable, model.FieldEmail, "email is a required field"},
	}

	for _, tc := range cases {
		t.Run(tc.policy+"/"+string(tc.field), func(t *testing.T) {
			input := validInput()
			input[tc.field] = ""

			_, errs := newValidator(t, tc.policy).Validate(input)
			want := validation.ErrorMap{tc.field: tc.want}
			if diff := cmp.Diff(want, errs.Clone()); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_NullableAgeAcceptsBlank(t *testing.T) {
	input := validInput()
	input[model.FieldAge] = "  "

	record, errs := newValidator(t, schema.PolicyNullable).Validate(input)
	if !errs.Valid() {
		t.Fatalf("expected blank age to be accepted, got %v", errs)
	}
	if record.Age != nil {
		t.Fatalf("expected nil age, got %d", *record.Age)
	}
}

func TestValidate_AgeRules(t *testing.T) {
	cases := []struct {
		name    string
		age     string
		wantAge *int
		wantErr string
	}{
		{name: "negative", age: "-5", wantErr: "age must be a positive number"},
		{name: "zero", age: "0", wantErr: "age must be a positive number"},
		{name: "rounds down to zero", age: "0.4", wantErr: "age must be a positive number"},
		{name: "rounds half up", age: "30.5", wantAge: model.IntPtr(31)},
		{name: "rounds fraction", age: "30.7", wantAge: model.IntPtr(31)},
		{name: "rounds down", age: "30.2", wantAge: model.IntPtr(30)},
		{name: "not a number", age: "thirty", wantErr: "age must be a `number` type"},
		{name: "overflow", age: "1e20", wantErr: "age must be a `number` type"},
		{name: "overflow digits", age: "9999999999999999999999", wantErr: "age must be a `number` type"},
		{name: "largest accepted", age: "2147483647", wantAge: model.IntPtr(2147483647)},
	}

	for _, policy := range schema.Names() {
		for _, tc := range cases {
			t.Run(policy+"/"+tc.name, func(t *testing.T) {
				input := validInput()
				input[model.FieldAge] = tc.age

				record, errs := newValidator(t, policy).Validate(input)
				if got := errs.Get(model.FieldAge); got != tc.wantErr {
					t.Fatalf("age error: want %q, got %q", tc.wantErr, got)
				}
				if tc.wantErr != "" {
					return
				}
				if diff := cmp.Diff(tc.wantAge, record.Age); diff != "" {
					t.Fatalf("age mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestValidate_EmailPrecedence(t *testing.T) {
	cases := []struct {
		policy string
		email  string
		want   string
	}{
		{schema.PolicyStrict, "a@b.co", "This email should have a minimum of 10 characters"},
		{schema.PolicyStrict, "not-an-email", "email must be a valid email"},
		{schema.PolicyNullable, "a@b.co", "This email should have a minimum of 10 characters"},
		{schema.PolicyNullable, "short", "email must be a valid email"},
		{schema.PolicyNullable, "", "email is a required field"},
	}

	for _, tc := range cases {
		t.Run(tc.policy+"/"+tc.email, func(t *testing.T) {
			input := validInput()
			input[model.FieldEmail] = tc.email

			_, errs := newValidator(t, tc.policy).Validate(input)
			if got := errs.Get(model.FieldEmail); got != tc.want {
				t.Fatalf("email error: want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestValidate_GenderMustBeEnumerated(t *testing.T) {
	input := validInput()
	input[model.FieldGender] = "unknown"

	_, errs := newValidator(t, schema.PolicyStrict).Validate(input)
	want := "gender must be one of the following values: female, male, other"
	if got := errs.Get(model.FieldGender); got != want {
		t.Fatalf("gender error: want %q, got %q", want, got)
	}
}

func TestValidate_FirstNameNormalization(t *testing.T) {
	input := validInput()
	input[model.FieldFirstName] = "  <b>JANE</b> "

	record, errs := newValidator(t, schema.PolicyStrict).Validate(input)
	if !errs.Valid() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if record.FirstName != "jane" {
		t.Fatalf("expected normalized first name, got %q", record.FirstName)
	}

	input[model.FieldFirstName] = "   "
	_, errs = newValidator(t, schema.PolicyStrict).Validate(input)
	if errs.Get(model.FieldFirstName) == "" {
		t.Fatalf("expected whitespace-only first name to fail required")
	}
}

func TestValidate_ErrorMapKeysAreFormFields(t *testing.T) {
	_, errs := newValidator(t, schema.PolicyStrict).Validate(nil)
	known := make(map[model.FieldName]bool)
	for _, field := range model.Fields() {
		known[field] = true
	}
	for field := range errs {
		if !known[field] {
			t.Fatalf("unexpected error key %q", field)
		}
	}
	if errs.Valid() {
		t.Fatalf("expected empty input to be invalid")
	}
}

func TestErrorMap_ErrJoinsInDisplayOrder(t *testing.T) {
	errs := validation.ErrorMap{
		model.FieldEmail:     "bad email",
		model.FieldFirstName: "missing",
		model.FieldAge:       "  ",
	}
	err := errs.Err()
	if err == nil {
		t.Fatalf("expected error")
	}
	lines := strings.Split(err.Error(), "\n")
	want := []string{"firstName: missing", "email: bad email"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("joined errors mismatch (-want +got):\n%s", diff)
	}

	if (validation.ErrorMap{model.FieldAge: ""}).Err() != nil {
		t.Fatalf("expected empty messages to count as valid")
	}
}
