package formstate

import (
	"log/slog"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/schema"
)

// Mode selects when fields are validated outside of submit.
type Mode string

const (
	// ModeSubmit validates only on submit.
	ModeSubmit Mode = "onSubmit"
	// ModeChange validates a field whenever its value changes.
	ModeChange Mode = "onChange"
	// ModeBlur validates a field when it is touched.
	ModeBlur Mode = "onBlur"
)

// ParseMode resolves a mode name, falling back to ModeSubmit.
func ParseMode(raw string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "onsubmit", "submit":
		return ModeSubmit, true
	case "onchange", "change":
		return ModeChange, true
	case "onblur", "blur":
		return ModeBlur, true
	default:
		return ModeSubmit, false
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithPolicy sets the validation policy. Defaults to the schema default.
func WithPolicy(policy *schema.Policy) Option {
	return func(c *Controller) {
		if policy != nil {
			c.policy = policy
		}
	}
}

// WithDefaults seeds the values Mount and Reset restore.
func WithDefaults(defaults map[model.FieldName]string) Option {
	return func(c *Controller) {
		for field, value := range defaults {
			c.defaults[field] = value
		}
	}
}

// WithFields overrides the presentation metadata of the inputs.
func WithFields(fields []model.Field) Option {
	return func(c *Controller) {
		if len(fields) > 0 {
			c.fields = append([]model.Field(nil), fields...)
		}
	}
}

// WithMode sets the validation mode used before the first submit.
func WithMode(mode Mode) Option {
	return func(c *Controller) {
		if mode != "" {
			c.mode = mode
		}
	}
}

// WithReValidateMode sets the validation mode used after the first submit.
func WithReValidateMode(mode Mode) Option {
	return func(c *Controller) {
		if mode != "" {
			c.reValidateMode = mode
		}
	}
}

// WithLogger sets the logger used for controller diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}
