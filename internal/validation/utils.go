package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads.
//
// Validate returns validator.ValidationErrors, CustomValidationErrors or
// an *errs.HTTPError.
type Validatable interface {
	Validate() error
}

// SchemaBody is implemented by payloads whose raw JSON body must match a
// schema before binding. BodySchema returns the schema $id.
type SchemaBody interface {
	BodySchema() string
}

// SchemaQuery is implemented by payloads bound from the query string.
// QuerySchema returns the schema $id. Query keys the payload does not
// declare are validated too, so the schema decides whether they are allowed.
type SchemaQuery interface {
	QuerySchema() string
}

// CustomValidationError is a single field issue that struct tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the struct tag rules of v.
func Struct(v any) error {
	return validate.Struct(v)
}

// BindAndValidate checks the body schema (if any), binds the request into
// payload and calls payload.Validate().
func BindAndValidate(c echo.Context, payload Validatable) error {
	if sb, ok := payload.(SchemaBody); ok {
		body, err := readBody(c)
		if err != nil {
			return errs.NewBadRequestError("Could not read request body", false, nil, nil)
		}

		if err := ValidateJSON(sb.BodySchema(), body); err != nil {
			return toHTTPError(err)
		}
	}

	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil)
	}

	if sq, ok := payload.(SchemaQuery); ok {
		if err := validateQuery(c, payload, sq.QuerySchema()); err != nil {
			return toHTTPError(err)
		}
	}

	if err := payload.Validate(); err != nil {
		return toHTTPError(err)
	}

	return nil
}

// validateQuery checks the bound payload, plus every query key it has no
// `query` tag for, against schemaID.
func validateQuery(c echo.Context, payload any, schemaID string) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling query payload: %w", err)
	}

	document := map[string]any{}
	if err := json.Unmarshal(raw, &document); err != nil {
		return fmt.Errorf("unmarshalling query payload: %w", err)
	}

	declared := queryKeys(payload)
	for key, values := range c.QueryParams() {
		if _, ok := declared[key]; ok || len(values) == 0 {
			continue
		}
		document[key] = values[0]
	}

	return ValidateSchema(schemaID, document)
}

// queryKeys lists the `query` tag names of payload's struct fields.
func queryKeys(payload any) map[string]struct{} {
	keys := map[string]struct{}{}

	t := reflect.TypeOf(payload)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return keys
	}

	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("query"), ",")
		if name != "" && name != "-" {
			keys[name] = struct{}{}
		}
	}
	return keys
}

// readBody reads the request body and puts it back for c.Bind.
// An empty body reads as "{}".
func readBody(c echo.Context) ([]byte, error) {
	req := c.Request()
	if req.Body == nil {
		return []byte("{}"), nil
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	if len(bytes.TrimSpace(body)) == 0 {
		return []byte("{}"), nil
	}
	return body, nil
}

func bindErrorMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			return fmt.Sprintf("%v: %v", he.Message, he.Internal)
		}
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}

func toHTTPError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	msg, fieldErrors := extractValidationError(err)
	if fieldErrors == nil {
		return errs.ValidationError(err)
	}
	return errs.NewBadRequestError(msg, true, nil, fieldErrors)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "", nil
	}

	for _, err := range validationErrors {
		field := lowerFirst(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "gt":
			msg = fmt.Sprintf("must be greater than %s", err.Param())

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email":
			msg = "must be a valid email address"

		case "alphanum":
			msg = "must contain only letters and digits"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}

// lowerFirst turns the Go field name "MinEmployees" into "minEmployees".
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
