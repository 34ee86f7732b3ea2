package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-regform/pkg/formstate"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

// Renderer is the terminal view of the form. Render prints a plain text
// summary of a snapshot; Run drives a controller through interactive prompts.
type Renderer struct {
	driver      PromptDriver
	maxAttempts int
	theme       Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer with the survey driver unless overridden.
func New(options ...Option) *Renderer {
	r := &Renderer{
		theme: Theme{InfoPrefix: "", ErrorPrefix: "  ! "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	return r
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes one line per field followed by its error, if any.
func (r *Renderer) Render(ctx context.Context, snapshot formstate.Snapshot, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var b strings.Builder
	title := strings.TrimSpace(options.Title)
	if title == "" {
		title = "Registration"
	}
	fmt.Fprintf(&b, "%s (policy %s)\n", title, snapshot.Policy)
	fmt.Fprintf(&b, "Render Count: %d\n", snapshot.RenderCount)
	if notice := strings.TrimSpace(options.Notice); notice != "" {
		fmt.Fprintf(&b, "%s%s\n", r.theme.InfoPrefix, notice)
	}
	for _, msg := range render.MergeFormErrors(options.FormErrors) {
		fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, msg)
	}
	for _, field := range snapshot.Fields {
		marker := ""
		if field.Required {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s%s: %s\n", field.Label, marker, field.Value)
		if field.Error != "" {
			fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, field.Error)
		}
	}
	return []byte(b.String()), nil
}

// Run prompts for every field, submits, and re-prompts only the failing
// fields until the controller accepts the form. The accepted record is passed
// to handler and returned.
func (r *Renderer) Run(ctx context.Context, c *formstate.Controller, handler formstate.SubmitHandler) (model.FormValues, error) {
	if ctx == nil {
		return model.FormValues{}, errors.New("tui: context is required")
	}
	if c == nil {
		return model.FormValues{}, errors.New("tui: controller is required")
	}

	pending := c.Snapshot().Fields
	for attempt := 1; ; attempt++ {
		for _, field := range pending {
			if err := r.promptField(ctx, c, field); err != nil {
				return model.FormValues{}, err
			}
		}

		record, ok := c.Submit(handler)
		if ok {
			return record, nil
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return model.FormValues{}, fmt.Errorf("%w: %d", ErrTooManyAttempts, attempt)
		}

		snap := c.Snapshot()
		pending = pending[:0]
		for _, field := range snap.Fields {
			if field.Error == "" {
				continue
			}
			pending = append(pending, field)
			if err := r.driver.Info(ctx, fmt.Sprintf("%s%s", r.theme.ErrorPrefix, field.Error)); err != nil {
				return model.FormValues{}, err
			}
		}
	}
}

func (r *Renderer) promptField(ctx context.Context, c *formstate.Controller, field formstate.FieldState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	help := field.Error

	var value string
	if field.Kind == model.InputSelect {
		options, values := selectOptions(field.Options)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      options,
			DefaultIndex: indexOf(values, c.GetValue(field.Name)),
			Help:         help,
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(values) {
			value = values[idx]
		}
	} else {
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Default: c.GetValue(field.Name),
			Help:    help,
		})
		if err != nil {
			return err
		}
		value = answer
	}

	if err := c.SetValue(field.Name, value); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return c.Touch(field.Name)
}

// selectOptions drops the placeholder entry; an unanswered select keeps the
// empty value.
func selectOptions(opts []model.Option) ([]string, []string) {
	labels := make([]string, 0, len(opts))
	values := make([]string, 0, len(opts))
	for _, opt := range opts {
		if opt.Value == "" {
			continue
		}
		labels = append(labels, opt.Label)
		values = append(values, opt.Value)
	}
	return labels, values
}
