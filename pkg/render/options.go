package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data renderers use without touching the
// controller state.
type RenderOptions struct {
	// Title and Subtitle head the rendered page.
	Title    string
	Subtitle string
	// Action and Method populate the form element. Method defaults to POST.
	Action string
	Method string
	// Hidden fields are emitted as hidden inputs in sorted order.
	Hidden map[string]string
	// FormErrors are messages that do not belong to a single field, such as a
	// request that could not be parsed.
	FormErrors []string
	// Notice is shown above the form, typically after an accepted submit.
	Notice string
	// Theme carries go-theme tokens and CSS variables for the page chrome.
	Theme *theme.RendererConfig
}
