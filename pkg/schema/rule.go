package schema

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FieldToken is substituted with the field name in rule messages.
const FieldToken = "{field}"

// Canonical rule names. Describe and the OpenAPI exporter key off these.
const (
	RuleTrim        = "trim"
	RuleLowercase   = "lowercase"
	RuleStripMarkup = "stripMarkup"
	RuleRequired    = "required"
	RuleMinLength   = "minLength"
	RuleEmail       = "email"
	RuleOneOf       = "oneOf"
	RuleNumber      = "number"
	RuleNullable    = "nullable"
	RuleRound       = "round"
	RulePositive    = "positive"
)

// Value is the candidate value flowing through a field's rule list. Text holds
// the (possibly normalized) input, Number is populated once a number rule has
// parsed it and Null marks a value a nullable rule turned into null.
type Value struct {
	Text   string
	Number *float64
	Null   bool
}

// Absent reports whether the value carries nothing to validate.
func (v Value) Absent() bool {
	return v.Null || (v.Number == nil && v.Text == "")
}

// Rule is one validation or normalization step. Normalize runs before Check;
// either may be nil. Check returns an empty string when the value passes.
type Rule struct {
	Name      string
	Params    map[string]string
	Message   string
	Normalize func(Value) Value
	Check     func(Value) string
}

// Apply runs the normalizer and predicate of the rule against v.
func (r Rule) Apply(v Value) (Value, string) {
	if r.Normalize != nil {
		v = r.Normalize(v)
	}
	if r.Check == nil {
		return v, ""
	}
	return v, r.Check(v)
}

func messageOr(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}

// Trim removes leading and trailing whitespace.
func Trim() Rule {
	return Rule{
		Name: RuleTrim,
		Normalize: func(v Value) Value {
			v.Text = strings.TrimSpace(v.Text)
			return v
		},
	}
}

// Lowercase folds the text to lower case.
func Lowercase() Rule {
	return Rule{
		Name: RuleLowercase,
		Normalize: func(v Value) Value {
			v.Text = strings.ToLower(v.Text)
			return v
		},
	}
}

// Required fails on an empty or null value.
func Required(msg string) Rule {
	msg = messageOr(msg, FieldToken+" is a required field")
	return Rule{
		Name:    RuleRequired,
		Message: msg,
		Check: func(v Value) string {
			if v.Absent() {
				return msg
			}
			return ""
		},
	}
}

// MinLength fails when the text has fewer than n characters. The empty string
// is measured like any other value.
func MinLength(n int, msg string) Rule {
	msg = messageOr(msg, fmt.Sprintf("%s must be at least %d characters", FieldToken, n))
	return Rule{
		Name:    RuleMinLength,
		Params:  map[string]string{"value": strconv.Itoa(n)},
		Message: msg,
		Check: func(v Value) string {
			if utf8.RuneCountInString(v.Text) < n {
				return msg
			}
			return ""
		},
	}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email fails when a non-empty text is not an email address.
func Email(msg string) Rule {
	msg = messageOr(msg, FieldToken+" must be a valid email")
	return Rule{
		Name:    RuleEmail,
		Params:  map[string]string{"format": "email"},
		Message: msg,
		Check: func(v Value) string {
			if v.Text == "" || emailPattern.MatchString(v.Text) {
				return ""
			}
			return msg
		},
	}
}

// OneOf fails when a non-empty text is not one of allowed.
func OneOf(allowed []string, msg string) Rule {
	values := append([]string(nil), allowed...)
	msg = messageOr(msg, FieldToken+" must be one of the following values: "+strings.Join(values, ", "))
	return Rule{
		Name:    RuleOneOf,
		Params:  map[string]string{"values": strings.Join(values, ",")},
		Message: msg,
		Check: func(v Value) string {
			if v.Text == "" {
				return ""
			}
			for _, candidate := range values {
				if v.Text == candidate {
					return ""
				}
			}
			return msg
		},
	}
}

// maxNumber bounds parsed numbers so a rounded value always fits an int.
const maxNumber = math.MaxInt32

// Number parses the text as a number. Absent values pass untouched so the
// required or nullable rules decide about them.
func Number(msg string) Rule {
	msg = messageOr(msg, FieldToken+" must be a `number` type")
	return Rule{
		Name:    RuleNumber,
		Message: msg,
		Normalize: func(v Value) Value {
			if v.Number != nil || v.Null {
				return v
			}
			text := strings.TrimSpace(v.Text)
			if text == "" {
				return v
			}
			n, err := strconv.ParseFloat(text, 64)
			if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || math.Abs(n) > maxNumber {
				return v
			}
			v.Number = &n
			return v
		},
		Check: func(v Value) string {
			if v.Absent() || v.Number != nil {
				return ""
			}
			return msg
		},
	}
}

// Nullable turns blank input into null. The validator stops evaluating a
// field once its value is null.
func Nullable() Rule {
	return Rule{
		Name: RuleNullable,
		Normalize: func(v Value) Value {
			if v.Number == nil && strings.TrimSpace(v.Text) == "" {
				v.Null = true
			}
			return v
		},
	}
}

// Round rounds a parsed number half up, the way Math.round does.
func Round() Rule {
	return Rule{
		Name:   RuleRound,
		Params: map[string]string{"mode": "round"},
		Normalize: func(v Value) Value {
			if v.Number == nil {
				return v
			}
			rounded := math.Floor(*v.Number)
			if *v.Number-rounded >= 0.5 {
				rounded++
			}
			v.Number = &rounded
			v.Text = strconv.FormatFloat(rounded, 'f', -1, 64)
			return v
		},
	}
}

// Positive fails when a parsed number is not strictly greater than zero.
func Positive(msg string) Rule {
	msg = messageOr(msg, FieldToken+" must be a positive number")
	return Rule{
		Name:    RulePositive,
		Params:  map[string]string{"exclusiveMin": "0"},
		Message: msg,
		Check: func(v Value) string {
			if v.Number != nil && *v.Number <= 0 {
				return msg
			}
			return ""
		},
	}
}
