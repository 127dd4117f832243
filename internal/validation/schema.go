package validation

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
)

// Schema ids, matching the "$id" of each file under schemas/.
const (
	SchemaCompanyNew    = "https://jobly.dev/schemas/companyNew.json"
	SchemaCompanyUpdate = "https://jobly.dev/schemas/companyUpdate.json"
	SchemaCompanySearch = "https://jobly.dev/schemas/companySearch.json"
	SchemaJobNew        = "https://jobly.dev/schemas/jobNew.json"
	SchemaJobUpdate     = "https://jobly.dev/schemas/jobUpdate.json"
	SchemaJobSearch     = "https://jobly.dev/schemas/jobSearch.json"
	SchemaUserNew       = "https://jobly.dev/schemas/userNew.json"
	SchemaUserUpdate    = "https://jobly.dev/schemas/userUpdate.json"
	SchemaUserAuth      = "https://jobly.dev/schemas/userAuth.json"
	SchemaUserRegister  = "https://jobly.dev/schemas/userRegister.json"
)

// rootField is what gojsonschema reports as the field of document-level errors.
const rootField = "(root)"

//go:embed schemas/*.json
var schemaFS embed.FS

var schemas = mustLoadSchemas(schemaFS)

// mustLoadSchemas compiles every embedded schema keyed by its $id.
// The schemas ship with the binary, so a broken one is a programming error.
func mustLoadSchemas(fsys embed.FS) map[string]*gojsonschema.Schema {
	compiled, err := loadSchemas(fsys)
	if err != nil {
		panic(err)
	}
	return compiled
}

func loadSchemas(fsys embed.FS) (map[string]*gojsonschema.Schema, error) {
	entries, err := fs.ReadDir(fsys, "schemas")
	if err != nil {
		return nil, fmt.Errorf("cannot read schemas dir: %w", err)
	}

	compiled := make(map[string]*gojsonschema.Schema, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		raw, err := fsys.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("cannot read schema %s: %w", entry.Name(), err)
		}

		var header struct {
			ID string `json:"$id"`
		}
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, fmt.Errorf("parse error in schema %s: %w", entry.Name(), err)
		}
		if header.ID == "" {
			return nil, fmt.Errorf("schema %s does not contain $id", entry.Name())
		}

		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("cannot compile schema %s: %w", header.ID, err)
		}
		compiled[header.ID] = schema
	}

	return compiled, nil
}

// HasSchema reports whether schemaID is known.
func HasSchema(schemaID string) bool {
	_, ok := schemas[schemaID]
	return ok
}

// ValidateJSON validates a raw JSON document against schemaID.
func ValidateJSON(schemaID string, document []byte) error {
	return validateLoader(schemaID, gojsonschema.NewBytesLoader(document))
}

// ValidateSchema validates a Go value, marshalled with its json tags,
// against schemaID.
func ValidateSchema(schemaID string, value any) error {
	return validateLoader(schemaID, gojsonschema.NewGoLoader(value))
}

func validateLoader(schemaID string, loader gojsonschema.JSONLoader) error {
	schema, ok := schemas[schemaID]
	if !ok {
		return fmt.Errorf("there is no schema %s", schemaID)
	}

	result, err := schema.Validate(loader)
	if err != nil {
		return CustomValidationErrors{{Field: "body", Message: "must be a valid JSON document"}}
	}

	if result.Valid() {
		return nil
	}

	out := make(CustomValidationErrors, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		out = append(out, CustomValidationError{
			Field:   schemaErrorField(e),
			Message: e.Description(),
		})
	}
	return out
}

// schemaErrorField names the offending property. Errors about the document
// itself (required, additionalProperties) carry the property in Details.
func schemaErrorField(e gojsonschema.ResultError) string {
	field := e.Field()
	if field != rootField {
		return field
	}

	if property, ok := e.Details()["property"].(string); ok && property != "" {
		return property
	}
	return "body"
}
