package validation

import (
	"errors"
	"strconv"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/schema"
)

// Validator evaluates a policy against raw input values.
type Validator struct {
	policy *schema.Policy
}

// New constructs a Validator for policy.
func New(policy *schema.Policy) (*Validator, error) {
	if policy == nil {
		return nil, errors.New("validation: policy is required")
	}
	return &Validator{policy: policy}, nil
}

// Policy returns the policy the validator applies.
func (v *Validator) Policy() *schema.Policy {
	return v.policy
}

// ValidateField runs the rules of one field in order. It stops at the first
// failing rule, or once a nullable rule has turned the value into null.
func (v *Validator) ValidateField(field model.FieldName, raw string) (schema.Value, string) {
	value := schema.Value{Text: raw}
	for _, rule := range v.policy.Rules(field) {
		var msg string
		value, msg = rule.Apply(value)
		if msg != "" {
			return value, schema.ResolveMessage(msg, field)
		}
		if value.Null {
			break
		}
	}
	return value, ""
}

// Validate evaluates every field and returns the normalized record together
// with a complete ErrorMap. The record is only meaningful when the map is
// valid.
func (v *Validator) Validate(raw map[model.FieldName]string) (model.FormValues, ErrorMap) {
	errs := make(ErrorMap)
	normalized := make(map[model.FieldName]schema.Value, len(model.Fields()))

	for _, field := range model.Fields() {
		value, msg := v.ValidateField(field, raw[field])
		normalized[field] = value
		if msg != "" {
			errs[field] = msg
		}
	}

	return buildRecord(normalized), errs
}

func buildRecord(values map[model.FieldName]schema.Value) model.FormValues {
	return model.FormValues{
		FirstName: values[model.FieldFirstName].Text,
		LastName:  values[model.FieldLastName].Text,
		Gender:    model.Gender(values[model.FieldGender].Text),
		Age:       ageOf(values[model.FieldAge]),
		Email:     values[model.FieldEmail].Text,
	}
}

func ageOf(v schema.Value) *int {
	if v.Null {
		return nil
	}
	if v.Number != nil {
		return model.IntPtr(int(*v.Number))
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.Text))
	if err != nil {
		return nil
	}
	return &n
}
