// Package repository handles all interactions with the database.
//
// It contains the SQL for companies, jobs, users and applications.
// Dynamic parts (partial updates, search filters) go through package
// sqlutil so that values are always bound parameters.
//
// Repositories return *errs.HTTPError for the domain failures (not found,
// duplicate, invalid input, bad credentials) and wrap any other driver
// error; the global error handler converts those with sqlerr.HandleError.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of *pgxpool.Pool (and pgx.Tx) the repositories use.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Querier = (*pgxpool.Pool)(nil)

func notFound(format string, args ...any) *errs.HTTPError {
	return errs.NewNotFoundError(fmt.Sprintf(format, args...), true, nil)
}

func duplicate(code, format string, args ...any) *errs.HTTPError {
	return errs.NewBadRequestError(fmt.Sprintf(format, args...), true, errs.Code(code), nil)
}

// rejectUnknownFields fails with INVALID_FIELD when data holds a key that
// is not in allowed.
func rejectUnknownFields(data *model.Fields, allowed ...string) error {
	if data == nil {
		return nil
	}

	var unknown []string
	for pair := data.Oldest(); pair != nil; pair = pair.Next() {
		if !contains(allowed, pair.Key) {
			unknown = append(unknown, pair.Key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	fieldErrors := make([]errs.FieldError, 0, len(unknown))
	for _, key := range unknown {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: key, Error: "cannot be updated"})
	}

	return errs.NewBadRequestError(
		fmt.Sprintf("Cannot update field(s): %s", strings.Join(unknown, ", ")),
		true,
		errs.Code("INVALID_FIELD"),
		fieldErrors,
	)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// exists runs a SELECT EXISTS query.
func exists(ctx context.Context, db Querier, query string, args ...any) (bool, error) {
	var found bool
	if err := db.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}
