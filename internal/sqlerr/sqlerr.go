// Package sqlerr converts database driver errors into API errors.
//
// It maps PostgreSQL SQLSTATE codes onto a small set of categories and
// turns constraint violations into 400s with user-friendly messages
// (e.g. a unique violation on companies becomes COMPANY_ALREADY_EXISTS).
package sqlerr

import "fmt"

// Code is a normalized category for a PostgreSQL SQLSTATE.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	InvalidText         Code = "invalid_text_representation"
	NumericOutOfRange   Code = "numeric_value_out_of_range"
	StringTooLong       Code = "string_data_right_truncation"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
var pgCodes = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"22P02": InvalidText,
	"22003": NumericOutOfRange,
	"22001": StringTooLong,
}

// MapCode maps a SQLSTATE onto a Code, defaulting to Other.
func MapCode(sqlState string) Code {
	if code, ok := pgCodes[sqlState]; ok {
		return code
	}
	return Other
}

// Severity is the PostgreSQL message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityUnknown Severity = "UNKNOWN"
)

// MapSeverity maps the server's severity string onto a Severity.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice:
		return Severity(severity)
	default:
		return SeverityUnknown
	}
}

// Error is a normalized PostgreSQL error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

// Unwrap returns the underlying *pgconn.PgError.
func (e *Error) Unwrap() error {
	return e.driverErr
}
