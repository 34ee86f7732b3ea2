package formstate

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/schema"
	"github.com/goliatone/go-regform/pkg/validation"
)

// ErrUnknownField is returned when a caller addresses an input the form does
// not have.
var ErrUnknownField = errors.New("formstate: unknown field")

// SubmitHandler receives the normalized record of an accepted submit.
type SubmitHandler func(model.FormValues)

// Controller owns the state of one form session.
type Controller struct {
	policy    *schema.Policy
	validator *validation.Validator
	fields    []model.Field
	logger    *slog.Logger

	mode           Mode
	reValidateMode Mode

	defaults map[model.FieldName]string
	values   map[model.FieldName]string
	touched  map[model.FieldName]bool
	dirty    map[model.FieldName]bool
	errors   validation.ErrorMap
	accepted *model.FormValues

	renders int
	submits int

	listeners    map[int]func(Snapshot)
	nextListener int
}

// New constructs a controller. Call Mount before handing it to a view.
func New(options ...Option) (*Controller, error) {
	c := &Controller{
		fields:         model.DefaultFields(),
		logger:         slog.Default(),
		mode:           ModeSubmit,
		reValidateMode: ModeChange,
		defaults:       make(map[model.FieldName]string),
		listeners:      make(map[int]func(Snapshot)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	for field := range c.defaults {
		if _, ok := model.ParseFieldName(string(field)); !ok {
			return nil, fmt.Errorf("%w %q in defaults", ErrUnknownField, field)
		}
	}

	if c.policy == nil {
		policy, err := schema.Lookup(schema.DefaultPolicy)
		if err != nil {
			return nil, fmt.Errorf("formstate: resolve default policy: %w", err)
		}
		c.policy = policy
	}

	validator, err := validation.New(c.policy)
	if err != nil {
		return nil, fmt.Errorf("formstate: %w", err)
	}
	c.validator = validator
	c.clear()
	return c, nil
}

// Policy returns the validation policy in use.
func (c *Controller) Policy() *schema.Policy {
	return c.policy
}

// Mount starts a fresh session: defaults are restored, flags and errors are
// cleared and the render counter restarts before the initial render.
func (c *Controller) Mount() {
	c.clear()
	c.renders = 0
	c.render()
}

// Restore continues a render counter carried over from a previous page of
// the same session.
func (c *Controller) Restore(renders int) {
	if renders > c.renders {
		c.renders = renders
	}
}

// Reset restores the defaults and clears submit state.
func (c *Controller) Reset() {
	c.clear()
	c.render()
}

func (c *Controller) clear() {
	c.values = make(map[model.FieldName]string, len(c.defaults))
	for field, value := range c.defaults {
		c.values[field] = value
	}
	c.touched = make(map[model.FieldName]bool)
	c.dirty = make(map[model.FieldName]bool)
	c.errors = make(validation.ErrorMap)
	c.accepted = nil
	c.submits = 0
}

// GetValue returns the current value of field or its default.
func (c *Controller) GetValue(field model.FieldName) string {
	if value, ok := c.values[field]; ok {
		return value
	}
	return c.defaults[field]
}

// Values returns a copy of every current value.
func (c *Controller) Values() map[model.FieldName]string {
	out := make(map[model.FieldName]string, len(model.Fields()))
	for _, field := range model.Fields() {
		out[field] = c.GetValue(field)
	}
	return out
}

// SetValue updates one field and re-renders.
func (c *Controller) SetValue(field model.FieldName, value string) error {
	if _, ok := model.ParseFieldName(string(field)); !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	c.assign(field, value)
	if c.activeMode() == ModeChange {
		c.revalidate(field)
	}
	c.render()
	return nil
}

// SetValues updates several fields with a single re-render. Nothing is
// applied when any field is unknown.
func (c *Controller) SetValues(values map[model.FieldName]string) error {
	for field := range values {
		if _, ok := model.ParseFieldName(string(field)); !ok {
			return fmt.Errorf("%w %q", ErrUnknownField, field)
		}
	}
	for _, field := range model.Fields() {
		value, ok := values[field]
		if !ok {
			continue
		}
		c.assign(field, value)
		if c.activeMode() == ModeChange {
			c.revalidate(field)
		}
	}
	c.render()
	return nil
}

func (c *Controller) assign(field model.FieldName, value string) {
	c.values[field] = value
	c.dirty[field] = value != c.defaults[field]
}

// Touch marks field as visited, validating it in blur mode.
func (c *Controller) Touch(field model.FieldName) error {
	if _, ok := model.ParseFieldName(string(field)); !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	c.touched[field] = true
	if c.activeMode() == ModeBlur {
		c.revalidate(field)
	}
	c.render()
	return nil
}

func (c *Controller) activeMode() Mode {
	if c.submits > 0 {
		return c.reValidateMode
	}
	return c.mode
}

func (c *Controller) revalidate(field model.FieldName) {
	_, msg := c.validator.ValidateField(field, c.GetValue(field))
	if msg == "" {
		delete(c.errors, field)
		return
	}
	c.errors[field] = msg
}

// Submit validates every field. A valid form clears the ErrorMap and hands
// the normalized record to handler; an invalid one replaces the ErrorMap and
// the handler is not called.
func (c *Controller) Submit(handler SubmitHandler) (model.FormValues, bool) {
	c.submits++
	for _, field := range model.Fields() {
		c.touched[field] = true
	}

	record, errs := c.validator.Validate(c.Values())
	c.errors = errs.Clone()

	if !errs.Valid() {
		c.accepted = nil
		c.logger.Debug("form submit rejected",
			"policy", c.policy.Name(),
			"submit", c.submits,
			"fields", len(c.errors),
		)
		c.render()
		return model.FormValues{}, false
	}

	c.accepted = &record
	if handler != nil {
		handler(record)
	}
	c.render()
	return record, true
}

// Errors returns a copy of the current ErrorMap.
func (c *Controller) Errors() validation.ErrorMap {
	return c.errors.Clone()
}

// FieldError returns the current message of field.
func (c *Controller) FieldError(field model.FieldName) string {
	return c.errors.Get(field)
}

func (c *Controller) Touched(field model.FieldName) bool {
	return c.touched[field]
}

func (c *Controller) Dirty(field model.FieldName) bool {
	return c.dirty[field]
}

// IsSubmitted reports whether submit ran since the last mount or reset.
func (c *Controller) IsSubmitted() bool {
	return c.submits > 0
}

func (c *Controller) SubmitCount() int {
	return c.submits
}

// RenderCount returns the number of renders since Mount.
func (c *Controller) RenderCount() int {
	return c.renders
}

// Subscribe registers fn to run after every render. The returned function
// removes the subscription.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	if fn == nil {
		return func() {}
	}
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

func (c *Controller) render() {
	if c.renders < math.MaxInt {
		c.renders++
	}
	if len(c.listeners) == 0 {
		return
	}
	snap := c.Snapshot()
	for id := 0; id < c.nextListener; id++ {
		if fn, ok := c.listeners[id]; ok {
			fn(snap)
		}
	}
}
