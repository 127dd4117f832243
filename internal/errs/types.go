package errs

import (
	"errors"
	"net/http"
	"strings"
)

// FieldError is a field-level validation error.
//
//	{ "field": "email", "error": "does not match format 'email'" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type returned to API clients.
//
//   - Code: machine-friendly code (e.g. "NOT_FOUND", "COMPANY_ALREADY_EXISTS").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: the message is safe to show as-is in a UI.
//   - Errors: per-field validation errors, if any.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError, whatever its code.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not
// an *HTTPError.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return http.StatusInternalServerError
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
