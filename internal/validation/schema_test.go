package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()

	var ce CustomValidationErrors
	require.True(t, errors.As(err, &ce), "expected CustomValidationErrors, got %T", err)

	out := make(map[string]string, len(ce))
	for _, e := range ce {
		out[e.Field] = e.Message
	}
	return out
}

func TestEverySchemaIsLoaded(t *testing.T) {
	for _, id := range []string{
		SchemaCompanyNew, SchemaCompanyUpdate, SchemaCompanySearch,
		SchemaJobNew, SchemaJobUpdate, SchemaJobSearch,
		SchemaUserNew, SchemaUserUpdate, SchemaUserAuth, SchemaUserRegister,
	} {
		assert.True(t, HasSchema(id), id)
	}
}

func TestCompanyNew(t *testing.T) {
	valid := `{"handle":"c1","name":"C1","description":"Desc","numEmployees":10,"logoUrl":"http://c1.img"}`
	assert.NoError(t, ValidateJSON(SchemaCompanyNew, []byte(valid)))

	err := ValidateJSON(SchemaCompanyNew, []byte(`{"name":"C1","description":"Desc"}`))
	require.Error(t, err)
	assert.Contains(t, fieldsOf(t, err), "handle")

	err = ValidateJSON(SchemaCompanyNew, []byte(`{"handle":"c1","name":"C1","description":"d","numEmployees":-1}`))
	require.Error(t, err)
	assert.Contains(t, fieldsOf(t, err), "numEmployees")
}

func TestCompanyUpdateRejectsHandle(t *testing.T) {
	err := ValidateJSON(SchemaCompanyUpdate, []byte(`{"handle":"new"}`))
	require.Error(t, err)
	assert.Contains(t, fieldsOf(t, err), "handle")
}

func TestJobUpdateRejectsImmutableFields(t *testing.T) {
	for _, body := range []string{
		`{"companyHandle":"c2"}`,
		`{"id":7,"title":"x"}`,
	} {
		assert.Error(t, ValidateJSON(SchemaJobUpdate, []byte(body)), body)
	}

	assert.NoError(t, ValidateJSON(SchemaJobUpdate, []byte(`{"title":"New","salary":null,"equity":"0.5"}`)))
}

func TestJobEquityPattern(t *testing.T) {
	for _, equity := range []string{`"0"`, `"0.25"`, `"1"`, `"1.0"`, `null`} {
		body := `{"title":"t","companyHandle":"c1","equity":` + equity + `}`
		assert.NoError(t, ValidateJSON(SchemaJobNew, []byte(body)), equity)
	}

	for _, equity := range []string{`"1.5"`, `"abc"`, `0.5`, `"-0.1"`} {
		body := `{"title":"t","companyHandle":"c1","equity":` + equity + `}`
		assert.Error(t, ValidateJSON(SchemaJobNew, []byte(body)), equity)
	}
}

func TestUserUpdateRejectsEmptyObject(t *testing.T) {
	assert.Error(t, ValidateJSON(SchemaUserUpdate, []byte(`{}`)))
	assert.Error(t, ValidateJSON(SchemaUserUpdate, []byte(`{"username":"other"}`)))
	assert.NoError(t, ValidateJSON(SchemaUserUpdate, []byte(`{"firstName":"New"}`)))
}

func TestUserRegisterEmail(t *testing.T) {
	body := `{"username":"new","password":"password","firstName":"f","lastName":"l","email":"not-an-email"}`

	err := ValidateJSON(SchemaUserRegister, []byte(body))
	require.Error(t, err)
	assert.Contains(t, fieldsOf(t, err), "email")
}

func TestValidateSchemaFromStruct(t *testing.T) {
	type search struct {
		Name         *string `json:"name,omitempty"`
		MinEmployees *int    `json:"minEmployees,omitempty"`
	}

	name := "net"
	assert.NoError(t, ValidateSchema(SchemaCompanySearch, search{Name: &name}))

	negative := -1
	assert.Error(t, ValidateSchema(SchemaCompanySearch, search{MinEmployees: &negative}))
}

func TestValidateJSONMalformed(t *testing.T) {
	err := ValidateJSON(SchemaUserAuth, []byte(`{"username":`))
	require.Error(t, err)
	assert.Contains(t, fieldsOf(t, err), "body")
}

func TestUnknownSchema(t *testing.T) {
	assert.Error(t, ValidateJSON("https://jobly.dev/schemas/nope.json", []byte(`{}`)))
}
