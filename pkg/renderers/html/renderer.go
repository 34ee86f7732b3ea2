package html

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/formstate"
	"github.com/goliatone/go-regform/pkg/render"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	gotemplate "github.com/goliatone/go-regform/pkg/render/template/gotemplate"
)

const (
	defaultTitle    = "Registration"
	defaultSubtitle = "Efficient form verification/validation"
	formTemplate    = "templates/form.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// templates/form.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer renders the registration form as a complete HTML page.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	engine := cfg.templateRenderer
	if engine == nil {
		var err error
		engine, err = gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
	}
	return &Renderer{templates: engine}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the page for snapshot.
func (r *Renderer) Render(ctx context.Context, snapshot formstate.Snapshot, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	method := strings.ToUpper(strings.TrimSpace(options.Method))
	if method != http.MethodGet {
		method = http.MethodPost
	}

	hidden := make([]map[string]string, 0, len(options.Hidden))
	for _, field := range render.SortedHiddenFields(options.Hidden) {
		hidden = append(hidden, map[string]string{"name": field.Name, "value": field.Value})
	}

	data := map[string]any{
		"title":        valueOr(options.Title, defaultTitle),
		"subtitle":     valueOr(options.Subtitle, defaultSubtitle),
		"action":       options.Action,
		"method":       method,
		"hiddenFields": hidden,
		"formErrors":   render.MergeFormErrors(options.FormErrors),
		"notice":       strings.TrimSpace(options.Notice),
		"snapshot":     snapshot,
		"theme":        buildThemeContext(options.Theme),
	}

	out, err := r.templates.RenderTemplate(formTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(out), nil
}

func valueOr(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

type themeContext struct {
	Name    string `json:"name,omitempty"`
	Variant string `json:"variant,omitempty"`
	Style   string `json:"style,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	vars := make(map[string]string, len(cfg.Tokens)+len(cfg.CSSVars))
	for key, value := range cfg.Tokens {
		vars["--regform-"+strings.TrimPrefix(key, "--")] = value
	}
	for key, value := range cfg.CSSVars {
		if !strings.HasPrefix(key, "--") {
			key = "--" + key
		}
		vars[key] = value
	}
	return themeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Style:   cssVarsStyle(vars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		value := strings.NewReplacer("<", "", ">", "", ";", "", "}", "").Replace(vars[key])
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
