package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
)

// ErrUnknownPolicy is returned by Lookup for names that are not registered.
var ErrUnknownPolicy = errors.New("schema: unknown policy")

// Hints carries the view differences that travel with a policy.
type Hints struct {
	// LivePreview echoes each current value under its input.
	LivePreview bool `json:"livePreview" yaml:"livePreview"`
	// Autocomplete emits autocomplete attributes on the inputs.
	Autocomplete bool `json:"autocomplete" yaml:"autocomplete"`
}

// Policy is an immutable set of ordered rules per field.
type Policy struct {
	name        string
	description string
	order       []model.FieldName
	rules       map[model.FieldName][]Rule
	hints       Hints
}

// PolicyOption configures a policy under construction.
type PolicyOption func(*Policy)

// WithField appends rules to a field. Fields keep the order in which they are
// first mentioned.
func WithField(field model.FieldName, rules ...Rule) PolicyOption {
	return func(p *Policy) {
		if _, exists := p.rules[field]; !exists {
			p.order = append(p.order, field)
		}
		p.rules[field] = append(p.rules[field], rules...)
	}
}

// WithHints sets the view hints.
func WithHints(hints Hints) PolicyOption {
	return func(p *Policy) {
		p.hints = hints
	}
}

// WithDescription sets a human readable summary.
func WithDescription(description string) PolicyOption {
	return func(p *Policy) {
		p.description = strings.TrimSpace(description)
	}
}

// NewPolicy builds a policy. Every field must be a known form field.
func NewPolicy(name string, options ...PolicyOption) (*Policy, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("schema: policy name is required")
	}
	p := &Policy{
		name:  name,
		rules: make(map[model.FieldName][]Rule),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	for _, field := range p.order {
		if _, ok := model.ParseFieldName(string(field)); !ok {
			return nil, fmt.Errorf("schema: policy %q declares unknown field %q", name, field)
		}
	}
	return p, nil
}

// MustPolicy panics when NewPolicy fails. Useful for package level policies.
func MustPolicy(name string, options ...PolicyOption) *Policy {
	p, err := NewPolicy(name, options...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Policy) Name() string {
	return p.name
}

func (p *Policy) Description() string {
	return p.description
}

func (p *Policy) Hints() Hints {
	return p.hints
}

// Fields returns the fields that carry rules, in declaration order.
func (p *Policy) Fields() []model.FieldName {
	return append([]model.FieldName(nil), p.order...)
}

// Rules returns the ordered rules for field. Fields without rules return nil.
func (p *Policy) Rules(field model.FieldName) []Rule {
	return append([]Rule(nil), p.rules[field]...)
}

// Required reports whether an empty value fails validation for field.
func (p *Policy) Required(field model.FieldName) bool {
	return p.has(field, RuleRequired)
}

// Nullable reports whether field accepts a null value.
func (p *Policy) Nullable(field model.FieldName) bool {
	return p.has(field, RuleNullable)
}

func (p *Policy) has(field model.FieldName, rule string) bool {
	for _, r := range p.rules[field] {
		if r.Name == rule {
			return true
		}
	}
	return false
}

// RuleSpec is the serialisable form of a Rule.
type RuleSpec struct {
	Name    string            `json:"name" yaml:"name"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
}

// FieldSpec describes the rules of one field.
type FieldSpec struct {
	Field    model.FieldName `json:"field" yaml:"field"`
	Required bool            `json:"required" yaml:"required"`
	Nullable bool            `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Rules    []RuleSpec      `json:"rules" yaml:"rules"`
}

// Description is the serialisable form of a Policy.
type Description struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Hints       Hints       `json:"hints" yaml:"hints"`
	Fields      []FieldSpec `json:"fields" yaml:"fields"`
}

// Describe returns a serialisable description with messages resolved.
func (p *Policy) Describe() Description {
	out := Description{
		Name:        p.name,
		Description: p.description,
		Hints:       p.hints,
		Fields:      make([]FieldSpec, 0, len(p.order)),
	}
	for _, field := range p.order {
		spec := FieldSpec{
			Field:    field,
			Required: p.Required(field),
			Nullable: p.Nullable(field),
		}
		for _, rule := range p.rules[field] {
			spec.Rules = append(spec.Rules, RuleSpec{
				Name:    rule.Name,
				Params:  copyParams(rule.Params),
				Message: ResolveMessage(rule.Message, field),
			})
		}
		out.Fields = append(out.Fields, spec)
	}
	return out
}

// ResolveMessage replaces FieldToken with the field name.
func ResolveMessage(msg string, field model.FieldName) string {
	return strings.ReplaceAll(msg, FieldToken, string(field))
}

func copyParams(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

var policies = map[string]*Policy{}

// Register adds a policy to the lookup table. Duplicate names return an error.
func Register(p *Policy) error {
	if p == nil {
		return errors.New("schema: policy is required")
	}
	if _, exists := policies[p.name]; exists {
		return fmt.Errorf("schema: policy %q already registered", p.name)
	}
	policies[p.name] = p
	return nil
}

// Lookup resolves a policy by name. An empty name yields the default policy.
func Lookup(name string) (*Policy, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPolicy
	}
	p, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownPolicy, name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names lists registered policies in sorted order.
func Names() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
