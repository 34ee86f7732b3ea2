package regform

import (
	"io/fs"

	"github.com/goliatone/go-regform/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can copy or
// extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
