// Package database provides relational storage connectivity for shiperd.
//
// This package manages:
//   - Connections to SQLite (github.com/mattn/go-sqlite3) or PostgreSQL
//     (github.com/jackc/pgx/v5/stdlib), selected by configuration
//   - Schema migrations via goose, from SQL files embedded per dialect
//   - Placeholder style for the selected driver
//   - Classification of constraint violations across both drivers
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - SQLite database files are created with 0600 permissions
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Driver: "sqlite3", Path: "data/shiperd.db"})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Repositories receive db.DB and db.Placeholder() and never see the
// driver name.
package database
