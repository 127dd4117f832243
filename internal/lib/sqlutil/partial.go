// Package sqlutil builds the dynamic parts of SQL statements: the SET list
// of a partial update and the WHERE clause of a filtered listing.
//
// Values are always returned as bound arguments; only column names (quoted
// with pgx.Identifier) and placeholders ever end up in the SQL text.
package sqlutil

import (
	"fmt"
	"strings"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/jackc/pgx/v5"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrNoData is returned by PartialUpdate for an empty update.
var ErrNoData = errs.NewBadRequestError("No data", true, errs.Code("NO_DATA"), nil)

// PartialUpdateResult is the SET list and its positional arguments.
type PartialUpdateResult struct {
	// SetCols looks like `"first_name"=$1, "age"=$2`.
	SetCols string
	// Values holds one value per placeholder, in placeholder order.
	Values []any
}

// NextPlaceholder is the index for the first argument after Values,
// typically the row identifier of the WHERE clause.
func (r PartialUpdateResult) NextPlaceholder() int {
	return len(r.Values) + 1
}

// PartialUpdate builds the SET list for a partial update.
//
// data maps field names to new values; its insertion order decides the
// placeholder order. columns translates field names into column names,
// fields missing from it are used verbatim:
//
//	data    = {firstName: "Aliya", age: 32}
//	columns = {firstName: "first_name"}
//	result  = `"first_name"=$1, "age"=$2`, ["Aliya", 32]
func PartialUpdate(data *orderedmap.OrderedMap[string, any], columns map[string]string) (PartialUpdateResult, error) {
	if data == nil || data.Len() == 0 {
		return PartialUpdateResult{}, ErrNoData
	}

	cols := make([]string, 0, data.Len())
	values := make([]any, 0, data.Len())

	for pair := data.Oldest(); pair != nil; pair = pair.Next() {
		column, ok := columns[pair.Key]
		if !ok {
			column = pair.Key
		}

		values = append(values, pair.Value)
		cols = append(cols, fmt.Sprintf("%s=$%d", pgx.Identifier{column}.Sanitize(), len(values)))
	}

	return PartialUpdateResult{
		SetCols: strings.Join(cols, ", "),
		Values:  values,
	}, nil
}
