// Package model defines the registration form record and the field metadata
// shared by the schema, the form state controller and the renderers. Field
// names double as the keys of every value and error map in the module, so the
// FieldName constants are the only identifiers callers should use.
package model
