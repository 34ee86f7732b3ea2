package formstate

import (
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/schema"
	"github.com/goliatone/go-regform/pkg/validation"
)

// FieldState is the view state of one input.
type FieldState struct {
	model.Field
	Value    string `json:"value"`
	Error    string `json:"error,omitempty"`
	Required bool   `json:"required"`
	Touched  bool   `json:"touched"`
	Dirty    bool   `json:"dirty"`
}

// Snapshot is an immutable copy of the controller state handed to renderers.
type Snapshot struct {
	Policy      string              `json:"policy"`
	Hints       schema.Hints        `json:"hints"`
	Fields      []FieldState        `json:"fields"`
	Errors      validation.ErrorMap `json:"errors,omitempty"`
	RenderCount int                 `json:"renderCount"`
	SubmitCount int                 `json:"submitCount"`
	Accepted    *model.FormValues   `json:"accepted,omitempty"`
}

// Valid reports whether the snapshot carries no field errors.
func (s Snapshot) Valid() bool {
	return s.Errors.Valid()
}

// Field returns the state of name.
func (s Snapshot) Field(name model.FieldName) (FieldState, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldState{}, false
}

// Snapshot captures the current state.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		Policy:      c.policy.Name(),
		Hints:       c.policy.Hints(),
		Fields:      make([]FieldState, 0, len(c.fields)),
		Errors:      c.errors.Clone(),
		RenderCount: c.renders,
		SubmitCount: c.submits,
	}
	if c.accepted != nil {
		accepted := *c.accepted
		if accepted.Age != nil {
			accepted.Age = model.IntPtr(*accepted.Age)
		}
		snap.Accepted = &accepted
	}
	for _, field := range c.fields {
		snap.Fields = append(snap.Fields, FieldState{
			Field:    field,
			Value:    c.GetValue(field.Name),
			Error:    c.errors.Get(field.Name),
			Required: c.policy.Required(field.Name),
			Touched:  c.touched[field.Name],
			Dirty:    c.dirty[field.Name],
		})
	}
	return snap
}
