// Package model holds the records returned by the repositories and the
// request payloads accepted by the handlers.
package model

import (
	"github.com/deppfellow/jobly/internal/lib/utils"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fields is a sparse, insertion-ordered set of field updates decoded from
// a PATCH body.
type Fields = orderedmap.OrderedMap[string, any]

// decodeFields decodes a JSON object into Fields, keeping the key order of
// the document and turning whole numbers into int64.
func decodeFields(data []byte) (*Fields, error) {
	fields := orderedmap.New[string, any]()
	if err := fields.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	utils.NormalizeNumbers(fields)
	return fields, nil
}

// FieldsFromJSON is decodeFields for callers outside the package (tests,
// seed data).
func FieldsFromJSON(data string) (*Fields, error) {
	return decodeFields([]byte(data))
}

// DeletedResponse is returned by every delete endpoint.
type DeletedResponse struct {
	Deleted any `json:"deleted"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}
