package model

import (
	"fmt"
	"strings"
)

// FieldName identifies one of the registration form inputs.
type FieldName string

const (
	FieldFirstName FieldName = "firstName"
	FieldLastName  FieldName = "lastName"
	FieldGender    FieldName = "gender"
	FieldAge       FieldName = "age"
	FieldEmail     FieldName = "email"
)

// Fields lists the form inputs in display order.
func Fields() []FieldName {
	return []FieldName{
		FieldFirstName,
		FieldLastName,
		FieldAge,
		FieldGender,
		FieldEmail,
	}
}

// ParseFieldName resolves a raw input name into a FieldName.
func ParseFieldName(raw string) (FieldName, bool) {
	name := FieldName(strings.TrimSpace(raw))
	for _, field := range Fields() {
		if field == name {
			return field, true
		}
	}
	return "", false
}

// Gender enumerates the accepted gender selections.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
	GenderOther  Gender = "other"
)

// Genders returns the selectable genders in option order.
func Genders() []Gender {
	return []Gender{GenderFemale, GenderMale, GenderOther}
}

// Valid reports whether g is one of the enumerated genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderFemale, GenderMale, GenderOther:
		return true
	default:
		return false
	}
}

// FormValues is the validated registration record handed to submit handlers.
// Age is nil only when the active policy allows a missing age.
type FormValues struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Gender    Gender `json:"gender" yaml:"gender"`
	Age       *int   `json:"age" yaml:"age"`
	Email     string `json:"email" yaml:"email"`
}

// Raw converts the record back into the string form used by inputs.
func (v FormValues) Raw() map[FieldName]string {
	age := ""
	if v.Age != nil {
		age = fmt.Sprint(*v.Age)
	}
	return map[FieldName]string{
		FieldFirstName: v.FirstName,
		FieldLastName:  v.LastName,
		FieldGender:    string(v.Gender),
		FieldAge:       age,
		FieldEmail:     v.Email,
	}
}

// IntPtr is a convenience for building records with an age.
func IntPtr(v int) *int {
	return &v
}

// InputKind describes the control a renderer should emit for a field.
type InputKind string

const (
	InputText   InputKind = "text"
	InputNumber InputKind = "number"
	InputEmail  InputKind = "email"
	InputSelect InputKind = "select"
)

// Option is a single entry of a select control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field carries presentation metadata for one input. Validation lives in the
// schema package; Field only describes how the control looks.
type Field struct {
	Name         FieldName `json:"name"`
	Label        string    `json:"label"`
	Placeholder  string    `json:"placeholder,omitempty"`
	Kind         InputKind `json:"kind"`
	Options      []Option  `json:"options,omitempty"`
	Autocomplete string    `json:"autocomplete,omitempty"`
}

// DefaultFields returns the presentation metadata for the registration form.
func DefaultFields() []Field {
	genders := []Option{{Value: "", Label: "Select A Gender"}}
	for _, g := range Genders() {
		genders = append(genders, Option{Value: string(g), Label: string(g)})
	}
	return []Field{
		{Name: FieldFirstName, Label: "First Name", Placeholder: "First Name", Kind: InputText, Autocomplete: "given-name"},
		{Name: FieldLastName, Label: "Last Name", Placeholder: "Last Name", Kind: InputText, Autocomplete: "family-name"},
		{Name: FieldAge, Label: "Age", Placeholder: "Age", Kind: InputNumber, Autocomplete: "off"},
		{Name: FieldGender, Label: "Gender", Kind: InputSelect, Options: genders, Autocomplete: "sex"},
		{Name: FieldEmail, Label: "Email", Placeholder: "E-Mail", Kind: InputEmail, Autocomplete: "email"},
	}
}
