package gotemplate_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-regform/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tmpl":      {Data: []byte(`Hello {{ name|trim }}! ({{ count }})`)},
		"use-global.tmpl": {Data: []byte(`env={{ settings.env }}`)},
		"escape.tmpl":     {Data: []byte(`<p>{{ value }}</p>`)},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	got, err := engine.RenderTemplate("hello", map[string]any{"name": "  Ada ", "count": 3}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Hello Ada! (3)"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if buf.String() != want {
		t.Fatalf("writer mismatch: want %q, got %q", want, buf.String())
	}
}

func TestEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)
	data := struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}{Name: "Grace", Count: 12}

	got, err := engine.RenderTemplate("hello.tmpl", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Grace! (12)" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_AutoEscapes(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("escape", map[string]any{"value": "<script>x</script>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("regform_shout", func(input any, _ any) (any, error) {
		s, _ := input.(string)
		return strings.ToUpper(s) + "!", nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	got, err := engine.RenderString(`{{ word|regform_shout }}`, map[string]any{"word": "hey"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "HEY!" {
		t.Fatalf("unexpected output %q", got)
	}
	if err := engine.RegisterFilter("regform_shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}
