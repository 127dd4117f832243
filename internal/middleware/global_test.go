package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, errs.HTTPError) {
	t.Helper()

	global := NewGlobalMiddlewares(newTestServer())
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	global.GlobalErrorHandler(err, c)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestGlobalErrorHandler(t *testing.T) {
	t.Run("http error passes through", func(t *testing.T) {
		rec, body := handleError(t, errs.NewNotFoundError("No company: nope", true, nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", body.Code)
		assert.Equal(t, "No company: nope", body.Message)
		assert.True(t, body.Override)
	})

	t.Run("field errors", func(t *testing.T) {
		rec, body := handleError(t, errs.NewBadRequestError("Cannot update field(s): handle", true,
			errs.Code("INVALID_FIELD"), []errs.FieldError{{Field: "handle", Error: "cannot be updated"}}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_FIELD", body.Code)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "handle", body.Errors[0].Field)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec, body := handleError(t, echo.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Route not found", body.Message)
	})

	t.Run("no rows", func(t *testing.T) {
		rec, _ := handleError(t, pgx.ErrNoRows)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown error is hidden", func(t *testing.T) {
		rec, body := handleError(t, errors.New("connection reset by peer"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal Server Error", body.Message)
		assert.False(t, body.Override)
	})
}

func TestRequestIDReusesHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, RequestID()(func(c echo.Context) error { return nil })(c))

	assert.Equal(t, "abc-123", GetRequestID(c))
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
