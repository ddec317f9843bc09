package fleet

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nerrad567/shiperd/internal/infrastructure/database"
	"github.com/nerrad567/shiperd/internal/query"
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, stmt string, args ...any) (sql.Result, error)
}

// queryAll runs sel and scans every row. It never returns a nil slice.
func queryAll[T any](ctx context.Context, db *sql.DB, ph query.Placeholder, sel *query.Select, scan func(scanner) (*T, error)) ([]T, error) {
	stmt, args, err := sel.Build(ph)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

// queryOne runs sel and scans its first row. No row yields sql.ErrNoRows.
func queryOne[T any](ctx context.Context, db *sql.DB, ph query.Placeholder, sel *query.Select, scan func(scanner) (*T, error)) (*T, error) {
	stmt, args, err := sel.Build(ph)
	if err != nil {
		return nil, err
	}
	return scan(db.QueryRowContext(ctx, stmt, args...))
}

// execUpdate runs a partial update and returns the affected row count.
// An update with no fields is not executed.
func execUpdate(ctx context.Context, db *sql.DB, ph query.Placeholder, u *query.Update) (int64, error) {
	if u.Empty() {
		return 0, nil
	}
	stmt, args, err := u.Build(ph)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, writeError(err)
	}
	return res.RowsAffected()
}

// execDelete runs a delete and returns the affected row count.
func execDelete(ctx context.Context, db execer, ph query.Placeholder, d *query.Delete) (int64, error) {
	stmt, args, err := d.Build(ph)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, deleteError(err)
	}
	return res.RowsAffected()
}

// writeError classifies a failed INSERT or UPDATE.
func writeError(err error) error {
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", ErrInvalidReference, err)
	}
	return err
}

// deleteError classifies a failed DELETE.
func deleteError(err error) error {
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", ErrInUse, err)
	}
	return err
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
