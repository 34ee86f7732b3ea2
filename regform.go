// Package regform is the entry point for embedding the registration form:
// it wires a policy, a controller and the built-in renderers together.
package regform

import (
	"context"
	"fmt"

	"github.com/goliatone/go-regform/pkg/formstate"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/html"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/schema"
	"github.com/goliatone/go-regform/pkg/validation"
)

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// FormValues is the accepted, normalized record.
type FormValues = model.FormValues

// ErrorMap maps a field to its current error message.
type ErrorMap = validation.ErrorMap

// NewController builds a mounted controller for the named policy. An empty
// name selects the default policy.
func NewController(policyName string, options ...formstate.Option) (*formstate.Controller, error) {
	policy, err := schema.Lookup(policyName)
	if err != nil {
		return nil, err
	}
	opts := append([]formstate.Option{formstate.WithPolicy(policy)}, options...)
	c, err := formstate.New(opts...)
	if err != nil {
		return nil, err
	}
	c.Mount()
	return c, nil
}

// NewRegistry returns a registry holding the HTML and terminal renderers.
func NewRegistry() (*render.Registry, error) {
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, fmt.Errorf("regform: html renderer: %w", err)
	}
	registry := render.NewRegistry()
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	if err := registry.Register(tui.New()); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderHTML renders the current state of c with the embedded templates.
func RenderHTML(ctx context.Context, c *formstate.Controller, options RenderOptions) ([]byte, error) {
	renderer, err := html.New()
	if err != nil {
		return nil, fmt.Errorf("regform: html renderer: %w", err)
	}
	snapshot := c.Snapshot()
	options.Hidden = render.MergeHiddenFields(options.Hidden, render.RenderCount(snapshot.RenderCount))
	return renderer.Render(ctx, snapshot, options)
}

// Validate checks raw values against the named policy without a controller.
func Validate(policyName string, values map[model.FieldName]string) (FormValues, ErrorMap, error) {
	policy, err := schema.Lookup(policyName)
	if err != nil {
		return FormValues{}, nil, err
	}
	v, err := validation.New(policy)
	if err != nil {
		return FormValues{}, nil, err
	}
	record, errs := v.Validate(values)
	return record, errs, nil
}
