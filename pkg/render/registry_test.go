package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/formstate"
	"github.com/goliatone/go-regform/pkg/render"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, formstate.Snapshot, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "text"})
	registry.MustRegister(stubRenderer{name: "html"})

	if err := registry.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}

	if diff := cmp.Diff([]string{"html", "text"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	r, err := registry.Get("text")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	out, err := r.Render(context.Background(), formstate.Snapshot{}, render.RenderOptions{})
	if err != nil || string(out) != "text" {
		t.Fatalf("unexpected render result %q, %v", out, err)
	}
	if _, err := registry.Get("pdf"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
}
