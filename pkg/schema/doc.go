// Package schema declares the registration form's validation policies.
//
// A Policy is an explicit, ordered list of rules per field. Each Rule pairs an
// optional normalizer with an optional predicate; the validator applies them
// in declaration order and stops at the first failing predicate, so the order
// in which rules are listed is the precedence of their error messages.
//
// Two policies ship with the package and are never merged:
//
//	strict    age is required, email min length is checked before format
//	nullable  an empty age becomes null, email is required, then format, then length
//
// Messages may contain the {field} token, which is replaced with the field
// name when the error is reported.
package schema
