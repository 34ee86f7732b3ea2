// Package config loads the runtime configuration of the regform binaries.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/formstate"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/schema"
)

const (
	EnvAddr   = "REGFORM_ADDR"
	EnvPolicy = "REGFORM_POLICY"

	DefaultAddr = ":8080"
)

// Theme carries the go-theme selection applied to the HTML view.
type Theme struct {
	Name    string            `json:"name" yaml:"name"`
	Variant string            `json:"variant" yaml:"variant"`
	Tokens  map[string]string `json:"tokens" yaml:"tokens"`
	CSSVars map[string]string `json:"cssVars" yaml:"cssVars"`
}

// Config is the file representation.
type Config struct {
	Addr           string            `json:"addr" yaml:"addr"`
	Policy         string            `json:"policy" yaml:"policy"`
	Mode           string            `json:"mode" yaml:"mode"`
	ReValidateMode string            `json:"reValidateMode" yaml:"reValidateMode"`
	Title          string            `json:"title" yaml:"title"`
	Subtitle       string            `json:"subtitle" yaml:"subtitle"`
	Defaults       map[string]string `json:"defaults" yaml:"defaults"`
	Theme          Theme             `json:"theme" yaml:"theme"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:   DefaultAddr,
		Policy: schema.DefaultPolicy,
	}
}

// Load reads path on top of the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Parse(data, path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes JSON or YAML into cfg. Keys absent from data keep their
// current values.
func Parse(data []byte, source string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config: target is nil")
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("config: file %s is empty", source)
	}
	next := *cfg
	if err := json.Unmarshal(data, &next); err == nil {
		*cfg = next
		return nil
	}
	next = *cfg
	if err := yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("config: parse %s: %w", source, err)
	}
	*cfg = next
	return nil
}

// ApplyEnv overrides the address and policy from the environment. lookup is
// usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		return
	}
	if v, ok := lookup(EnvAddr); ok && strings.TrimSpace(v) != "" {
		c.Addr = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPolicy); ok && strings.TrimSpace(v) != "" {
		c.Policy = strings.TrimSpace(v)
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := schema.Lookup(c.Policy); err != nil {
		errs = append(errs, fmt.Errorf("config: policy: %w", err))
	}
	if _, ok := formstate.ParseMode(c.Mode); !ok {
		errs = append(errs, fmt.Errorf("config: unknown mode %q", c.Mode))
	}
	if _, ok := formstate.ParseMode(c.ReValidateMode); !ok {
		errs = append(errs, fmt.Errorf("config: unknown reValidateMode %q", c.ReValidateMode))
	}
	for key := range c.Defaults {
		if _, ok := model.ParseFieldName(key); !ok {
			errs = append(errs, fmt.Errorf("config: defaults: unknown field %q", key))
		}
	}
	return errors.Join(errs...)
}

// PolicyValue resolves the configured policy.
func (c Config) PolicyValue() (*schema.Policy, error) {
	return schema.Lookup(c.Policy)
}

// ControllerOptions translates the configuration into controller options.
func (c Config) ControllerOptions() ([]formstate.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	policy, err := c.PolicyValue()
	if err != nil {
		return nil, err
	}
	mode, _ := formstate.ParseMode(c.Mode)
	opts := []formstate.Option{
		formstate.WithPolicy(policy),
		formstate.WithMode(mode),
	}
	if c.ReValidateMode != "" {
		revalidate, _ := formstate.ParseMode(c.ReValidateMode)
		opts = append(opts, formstate.WithReValidateMode(revalidate))
	}
	if len(c.Defaults) > 0 {
		defaults := make(map[model.FieldName]string, len(c.Defaults))
		for key, value := range c.Defaults {
			field, _ := model.ParseFieldName(key)
			defaults[field] = value
		}
		opts = append(opts, formstate.WithDefaults(defaults))
	}
	return opts, nil
}

// RendererTheme returns the go-theme config for the HTML view, or nil when no
// theme is configured.
func (c Config) RendererTheme() *theme.RendererConfig {
	t := c.Theme
	if t.Name == "" && t.Variant == "" && len(t.Tokens) == 0 && len(t.CSSVars) == 0 {
		return nil
	}
	return &theme.RendererConfig{
		Theme:   t.Name,
		Variant: t.Variant,
		Tokens:  cloneMap(t.Tokens),
		CSSVars: cloneMap(t.CSSVars),
	}
}

func cloneMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
