package schema

import "github.com/goliatone/go-regform/pkg/model"

const (
	PolicyStrict   = "strict"
	PolicyNullable = "nullable"

	// DefaultPolicy is used when no policy is configured.
	DefaultPolicy = PolicyStrict
)

const (
	ageRequiredMessage = "Ahh, you forgot to assign the age"
	emailMinMessage    = "This email should have a minimum of 10 characters"
	emailMinLength     = 10
)

func genderValues() []string {
	out := make([]string, 0, 3)
	for _, g := range model.Genders() {
		out = append(out, string(g))
	}
	return out
}

func nameRules() []PolicyOption {
	return []PolicyOption{
		WithField(model.FieldFirstName, StripMarkup(), Trim(), Lowercase(), Required("")),
		WithField(model.FieldLastName, StripMarkup(), Required("")),
		WithField(model.FieldGender, Required(""), OneOf(genderValues(), "")),
	}
}

// StrictPolicy requires a positive age and checks the email length before its
// format. An empty email therefore fails on length.
func StrictPolicy() *Policy {
	opts := append(nameRules(),
		WithField(model.FieldAge, Required(ageRequiredMessage), Number(""), Round(), Positive("")),
		WithField(model.FieldEmail, StripMarkup(), MinLength(emailMinLength, emailMinMessage), Email("")),
		WithHints(Hints{LivePreview: true}),
		WithDescription("age required; email length checked before format"),
	)
	return MustPolicy(PolicyStrict, opts...)
}

// NullablePolicy accepts a blank age as null and requires an email, checking its
// format before its length.
func NullablePolicy() *Policy {
	opts := append(nameRules(),
		WithField(model.FieldAge, Nullable(), Number(""), Round(), Positive("")),
		WithField(model.FieldEmail, StripMarkup(), Required(""), Email(""), MinLength(emailMinLength, emailMinMessage)),
		WithHints(Hints{Autocomplete: true}),
		WithDescription("age nullable; email required, format checked before length"),
	)
	return MustPolicy(PolicyNullable, opts...)
}

func init() {
	for _, p := range []*Policy{StrictPolicy(), NullablePolicy()} {
		if err := Register(p); err != nil {
			panic(err)
		}
	}
}
