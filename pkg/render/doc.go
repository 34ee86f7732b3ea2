// Package render defines the renderer contract shared by the HTML and
// terminal views, a registry to look renderers up by name, and helpers for
// hidden inputs and error grouping.
package render
