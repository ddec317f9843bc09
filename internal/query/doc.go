// Package query builds parameterised SQL statements from sparse input.
//
// The builders wrap github.com/Masterminds/squirrel:
//
//   - Select adds one WHERE condition per criterion that was actually
//     supplied, joined with AND.
//   - Update turns the fields present in a partial update into an ordered
//     list of column assignments followed by the identity predicates.
//   - Delete removes the rows matching its identity predicates.
//
// Column and table names passed to the builders are trusted identifiers
// owned by the calling repository. Values are always bound as parameters,
// never interpolated into the statement text.
//
// Statements are built with '?' placeholders and rewritten to the
// driver's style by the Placeholder passed to Build.
package query
