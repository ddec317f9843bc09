package query

import "errors"

var (
	// ErrEmptyUpdate is returned when an update has no assignments.
	ErrEmptyUpdate = errors.New("query: update has no fields to set")

	// ErrNoPredicate is returned when an update or delete has no identity
	// predicate.
	ErrNoPredicate = errors.New("query: statement has no WHERE predicate")
)
