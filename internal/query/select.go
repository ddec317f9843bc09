package query

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// likeEscaper escapes LIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Select filters and orders the rows of a table.
//
// Every condition method ignores absent criteria: a nil pointer or an
// empty string adds nothing, so a Select with no criteria returns every
// row.
type Select struct {
	b sq.SelectBuilder
}

// NewSelect starts a SELECT of columns from table. Table may carry an
// alias ("ship s").
func NewSelect(table string, columns ...string) *Select {
	return &Select{b: sq.Select(columns...).From(table)}
}

// LeftJoin adds a LEFT JOIN clause, e.g. "pilot p ON s.pilot_id = p.id".
func (s *Select) LeftJoin(join string) *Select {
	s.b = s.b.LeftJoin(join)
	return s
}

// Equal filters rows where column equals v.
func (s *Select) Equal(column string, v any) *Select {
	if val, ok := criterion(v); ok {
		s.b = s.b.Where(sq.Eq{column: val})
	}
	return s
}

// AtLeast filters rows where column is greater than or equal to v.
func (s *Select) AtLeast(column string, v any) *Select {
	if val, ok := criterion(v); ok {
		s.b = s.b.Where(sq.GtOrEq{column: val})
	}
	return s
}

// AtMost filters rows where column is less than or equal to v.
func (s *Select) AtMost(column string, v any) *Select {
	if val, ok := criterion(v); ok {
		s.b = s.b.Where(sq.LtOrEq{column: val})
	}
	return s
}

// Contains filters rows where column contains v, ignoring case. Both
// sides are folded by the database's LOWER so stored and supplied text
// go through the same case mapping.
func (s *Select) Contains(column string, v *string) *Select {
	if v == nil || *v == "" {
		return s
	}
	pattern := "%" + likeEscaper.Replace(*v) + "%"
	s.b = s.b.Where(sq.Expr("LOWER("+column+") LIKE LOWER(?) ESCAPE '\\'", pattern))
	return s
}

// OrderBy appends ascending sort columns.
func (s *Select) OrderBy(columns ...string) *Select {
	s.b = s.b.OrderBy(columns...)
	return s
}

// Build returns the statement and its arguments in condition order.
func (s *Select) Build(ph Placeholder) (string, []any, error) {
	return s.b.PlaceholderFormat(ph.format()).ToSql()
}

// criterion unwraps an optional criterion value. Nil pointers and empty
// strings are absent.
func criterion(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case *int64:
		if x == nil {
			return nil, false
		}
		return *x, true
	case *string:
		if x == nil || *x == "" {
			return nil, false
		}
		return *x, true
	case string:
		return x, x != ""
	default:
		return v, true
	}
}
