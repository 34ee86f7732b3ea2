package schema_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/schema"
)

func ruleNames(rules []schema.Rule) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Name)
	}
	return out
}

func TestBuiltinPolicies_RuleOrder(t *testing.T) {
	strict, err := schema.Lookup(schema.PolicyStrict)
	if err != nil {
		t.Fatalf("lookup strict: %v", err)
	}
	nullable, err := schema.Lookup(schema.PolicyNullable)
	if err != nil {
		t.Fatalf("lookup nullable: %v", err)
	}

	cases := []struct {
		policy *schema.Policy
		field  model.FieldName
		want   []string
	}{
		{strict, model.FieldAge, []string{"required", "number", "round", "positive"}},
		{strict, model.FieldEmail, []string{"stripMarkup", "minLength", "email"}},
		{nullable, model.FieldAge, []string{"nullable", "number", "round", "positive"}},
		{nullable, model.FieldEmail, []string{"stripMarkup", "required", "email", "minLength"}},
		{strict, model.FieldFirstName, []string{"stripMarkup", "trim", "lowercase", "required"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, ruleNames(tc.policy.Rules(tc.field))); diff != "" {
			t.Fatalf("%s/%s rules mismatch (-want +got):\n%s", tc.policy.Name(), tc.field, diff)
		}
	}

	if !strict.Required(model.FieldAge) || nullable.Required(model.FieldAge) {
		t.Fatalf("age required-ness does not match policies")
	}
	if strict.Required(model.FieldEmail) || !nullable.Required(model.FieldEmail) {
		t.Fatalf("email required-ness does not match policies")
	}
	if !strict.Hints().LivePreview || !nullable.Hints().Autocomplete {
		t.Fatalf("unexpected hints: strict=%+v nullable=%+v", strict.Hints(), nullable.Hints())
	}
}

func TestLookup(t *testing.T) {
	p, err := schema.Lookup("")
	if err != nil {
		t.Fatalf("lookup default: %v", err)
	}
	if p.Name() != schema.DefaultPolicy {
		t.Fatalf("expected default policy, got %s", p.Name())
	}

	if _, err := schema.Lookup("lenient"); !errors.Is(err, schema.ErrUnknownPolicy) {
		t.Fatalf("expected ErrUnknownPolicy, got %v", err)
	}

	if diff := cmp.Diff([]string{"nullable", "strict"}, schema.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestNewPolicy_RejectsUnknownField(t *testing.T) {
	_, err := schema.NewPolicy("custom", schema.WithField("website", schema.Required("")))
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestDescribe_ResolvesMessages(t *testing.T) {
	p := schema.MustPolicy("custom",
		schema.WithField(model.FieldLastName, schema.Required("")),
		schema.WithField(model.FieldEmail, schema.MinLength(3, "")),
	)

	got := p.Describe()
	want := schema.Description{
		Name: "custom",
		Fields: []schema.FieldSpec{
			{
				Field:    model.FieldLastName,
				Required: true,
				Rules:    []schema.RuleSpec{{Name: "required", Message: "lastName is a required field"}},
			},
			{
				Field: model.FieldEmail,
				Rules: []schema.RuleSpec{{
					Name:    "minLength",
					Params:  map[string]string{"value": "3"},
					Message: "email must be at least 3 characters",
				}},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("description mismatch (-want +got):\n%s", diff)
	}
}

func TestRules_Apply(t *testing.T) {
	v, msg := schema.StripMarkup().Apply(schema.Value{Text: `O'Brien <script>alert(1)</script>`})
	if msg != "" {
		t.Fatalf("unexpected message %q", msg)
	}
	if v.Text != "O'Brien " {
		t.Fatalf("unexpected sanitized text %q", v.Text)
	}

	v, _ = schema.Number("").Apply(schema.Value{Text: "12.5"})
	v, _ = schema.Round().Apply(v)
	if v.Number == nil || *v.Number != 13 {
		t.Fatalf("expected 13, got %v", v.Number)
	}

	v, _ = schema.Number("").Apply(schema.Value{Text: "-2.5"})
	v, _ = schema.Round().Apply(v)
	if v.Number == nil || *v.Number != -2 {
		t.Fatalf("expected half up rounding to -2, got %v", v.Number)
	}

	v, _ = schema.Number("").Apply(schema.Value{Text: "0.49999999999999994"})
	v, _ = schema.Round().Apply(v)
	if v.Number == nil || *v.Number != 0 {
		t.Fatalf("expected values just below one half to round to 0, got %v", v.Number)
	}

	if _, msg := schema.Number("").Apply(schema.Value{Text: "1e20"}); msg == "" {
		t.Fatalf("expected out of range number to fail")
	}

	if _, msg := schema.Email("").Apply(schema.Value{}); msg != "" {
		t.Fatalf("expected email to skip empty value, got %q", msg)
	}
	if _, msg := schema.MinLength(2, "").Apply(schema.Value{}); msg == "" {
		t.Fatalf("expected min length to measure the empty string")
	}
}
