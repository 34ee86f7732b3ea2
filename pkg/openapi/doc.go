// Package openapi describes a registration policy as an OpenAPI 3 document.
// The document is assembled from schema.Policy.Describe, loaded back with
// kin-openapi and validated before it is handed out, so callers always get a
// document other OpenAPI tooling accepts.
package openapi
