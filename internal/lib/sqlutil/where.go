package sqlutil

import (
	"fmt"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Where collects AND-ed conditions with bound values.
//
//	var w sqlutil.Where
//	w.Add("num_employees", ">=", 10)
//	w.Add("name", "ILIKE", sqlutil.ContainsPattern("net"))
//	w.SQL()  // WHERE num_employees >= $1 AND name ILIKE $2
//	w.Args() // [10 %net%]
//
// Columns and operators are written by the caller and must never come from
// user input; values always become placeholders.
type Where struct {
	conditions []string
	args       []any
}

// Add appends `column op $n` bound to value.
func (w *Where) Add(column, op string, value any) *Where {
	w.args = append(w.args, value)
	w.conditions = append(w.conditions, fmt.Sprintf("%s %s $%d", column, op, len(w.args)))
	return w
}

// AddRaw appends a condition without a bound value, e.g. "equity > 0".
func (w *Where) AddRaw(condition string) *Where {
	w.conditions = append(w.conditions, condition)
	return w
}

// Len is the number of conditions.
func (w *Where) Len() int {
	return len(w.conditions)
}

// SQL renders the clause, or "" when there are no conditions.
func (w *Where) SQL() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conditions, " AND ")
}

// Args returns the bound values in placeholder order.
func (w *Where) Args() []any {
	return w.args
}

// ContainsPattern turns s into a LIKE pattern matching any value containing
// s literally. The default LIKE escape character is the backslash.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
