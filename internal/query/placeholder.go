package query

import sq "github.com/Masterminds/squirrel"

// Placeholder is the bind parameter style of a SQL driver.
type Placeholder int

const (
	// Question uses '?' for every parameter (SQLite).
	Question Placeholder = iota

	// Dollar uses numbered '$1', '$2', ... parameters (PostgreSQL).
	Dollar
)

// String returns the placeholder style name.
func (p Placeholder) String() string {
	if p == Dollar {
		return "dollar"
	}
	return "question"
}

func (p Placeholder) format() sq.PlaceholderFormat {
	if p == Dollar {
		return sq.Dollar
	}
	return sq.Question
}

// Rebind rewrites a fixed statement written with '?' placeholders into the
// receiver's style. A literal question mark is written as "??".
func (p Placeholder) Rebind(stmt string) string {
	// Positional rewriting never fails.
	out, _ := p.format().ReplacePlaceholders(stmt)
	return out
}
