package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	uniqueKeyPattern  = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	foreignKeySuffix  = regexp.MustCompile(`_(?:fkey|fk)$`)
	referenceSuffixes = []string{"_id", "_handle", "_username"}
)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}
	return Other
}

// IsUniqueViolation reports whether err is a PostgreSQL unique violation.
func IsUniqueViolation(err error) bool {
	return ErrCode(err) == UniqueViolation
}

// ConstraintName returns the violated constraint of a PostgreSQL error, or "".
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// ConvertPgError normalizes a raw PostgreSQL error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds <ENTITY>_<ACTION>, e.g. COMPANY_ALREADY_EXISTS.
func generateErrorCode(entity string, errType Code) string {
	if entity == "" {
		entity = "record"
	}

	domain := strings.ToUpper(strings.ReplaceAll(entity, " ", "_"))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidText, NumericOutOfRange, StringTooLong:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// errorEntity is the entity an error code and message should talk about:
// the referenced table for foreign keys, the violating table otherwise.
func errorEntity(sqlErr *Error) string {
	if sqlErr.Code == ForeignKeyViolation {
		if ref := referencedEntity(sqlErr.TableName, sqlErr.ConstraintName); ref != "" {
			return ref
		}
	}
	return getEntityName(sqlErr.TableName, sqlErr.ColumnName)
}

func formatUserFriendlyMessage(sqlErr *Error, entity string) string {
	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entity)

	case UniqueViolation:
		// "identifier" is replaced by the column name when it can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entity)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case InvalidText, NumericOutOfRange, StringTooLong:
		return "One or more values are invalid"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers a lowercase entity name: "user_id" -> "user",
// otherwise the singular table name ("companies" -> "company").
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return strings.ReplaceAll(strings.TrimSuffix(strings.ToLower(columnName), "_id"), "_", " ")
	}

	if tableName != "" {
		return strings.ReplaceAll(singularize(strings.ToLower(tableName)), "_", " ")
	}

	return "record"
}

// referencedEntity extracts the referenced entity from a foreign key
// constraint named <table>_<column>_fkey:
//
//	jobs_company_handle_fkey -> "company"
//	applications_job_id_fkey -> "job"
func referencedEntity(tableName, constraintName string) string {
	if !foreignKeySuffix.MatchString(constraintName) {
		return ""
	}

	column := foreignKeySuffix.ReplaceAllString(constraintName, "")
	if tableName != "" {
		column = strings.TrimPrefix(column, tableName+"_")
	}

	for _, suffix := range referenceSuffixes {
		if strings.HasSuffix(column, suffix) && len(column) > len(suffix) {
			return strings.ReplaceAll(strings.TrimSuffix(column, suffix), "_", " ")
		}
	}

	// applications_username_fkey references users.
	if column == "username" {
		return "user"
	}

	return strings.ReplaceAll(column, "_", " ")
}

func singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ses") && len(word) > 3:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && len(word) > 1:
		return word[:len(word)-1]
	default:
		return word
	}
}

// humanizeText converts snake_case into Title Case: "first_name" -> "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from a unique constraint
// named unique_<table>_<column> or <table>_<column>_key.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeyPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a database error into an *errs.HTTPError.
//
//   - *errs.HTTPError: returned unchanged
//   - constraint violations: 400 with a generated code
//   - no rows: 404
//   - anything else: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		entity := errorEntity(sqlErr)
		errorCode := generateErrorCode(entity, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr, entity)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil)

		case UniqueViolation:
			if columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName); columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", strings.ToLower(humanizeText(columnName)))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case CheckViolation, InvalidText, NumericOutOfRange, StringTooLong:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
