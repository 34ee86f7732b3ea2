package render

import (
	"context"

	"github.com/goliatone/go-regform/pkg/formstate"
)

// Renderer turns a controller snapshot into a byte representation (HTML,
// plain text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot formstate.Snapshot, options RenderOptions) ([]byte, error)
}
