// Package validation applies a schema.Policy to the raw form values and
// produces the normalized record plus an ErrorMap. There are no cross-field
// rules; each field is evaluated on its own.
package validation
