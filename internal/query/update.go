package query

import sq "github.com/Masterminds/squirrel"

// Update accumulates the assignments of a partial UPDATE statement.
//
// Assignments are emitted in the order Set was called, followed by the
// Where predicates joined with AND.
type Update struct {
	b    sq.UpdateBuilder
	sets int
	keys int
}

// NewUpdate starts an UPDATE against table.
func NewUpdate(table string) *Update {
	return &Update{b: sq.Update(table)}
}

// Set assigns value to column. A nil value writes SQL NULL.
func (u *Update) Set(column string, value any) *Update {
	u.b = u.b.Set(column, value)
	u.sets++
	return u
}

// Where adds an equality predicate on an identity column.
func (u *Update) Where(column string, value any) *Update {
	u.b = u.b.Where(sq.Eq{column: value})
	u.keys++
	return u
}

// Empty reports whether no assignments have been added.
func (u *Update) Empty() bool {
	return u.sets == 0
}

// Build returns the statement and its arguments, assignment values first.
func (u *Update) Build(ph Placeholder) (string, []any, error) {
	if u.Empty() {
		return "", nil, ErrEmptyUpdate
	}
	if u.keys == 0 {
		return "", nil, ErrNoPredicate
	}
	return u.b.PlaceholderFormat(ph.format()).ToSql()
}
