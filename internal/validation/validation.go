// Package validation validates request payloads.
//
// JSON bodies are checked against the declarative schemas embedded under
// schemas/ (gojsonschema) before they are bound; query and path
// parameters use go-playground/validator struct tags. Both kinds of
// failure become a 400 with per-field errors.
package validation
