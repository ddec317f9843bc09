package query

import sq "github.com/Masterminds/squirrel"

// Delete removes the rows of a table matching every Where predicate.
type Delete struct {
	b    sq.DeleteBuilder
	keys int
}

// NewDelete starts a DELETE against table.
func NewDelete(table string) *Delete {
	return &Delete{b: sq.Delete(table)}
}

// Where adds an equality predicate on an identity column.
func (d *Delete) Where(column string, value any) *Delete {
	d.b = d.b.Where(sq.Eq{column: value})
	d.keys++
	return d
}

// Build returns the statement and its arguments. A delete without a
// predicate is refused.
func (d *Delete) Build(ph Placeholder) (string, []any, error) {
	if d.keys == 0 {
		return "", nil, ErrNoPredicate
	}
	return d.b.PlaceholderFormat(ph.format()).ToSql()
}
