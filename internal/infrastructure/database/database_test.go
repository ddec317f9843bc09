package database_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nerrad567/shiperd/internal/infrastructure/database"
	"github.com/nerrad567/shiperd/internal/query"
	_ "github.com/nerrad567/shiperd/migrations"
)

func openMemory(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(context.Background(), database.Config{
		Driver: database.DriverSQLite,
		Path:   ":memory:",
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	return db
}

func migrated(t *testing.T) *database.DB {
	t.Helper()

	db := openMemory(t)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

// TestOpen verifies database connection establishment.
func TestOpen(t *testing.T) {
	t.Run("creates database file and directory", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "fleet.db")

		db, err := database.Open(context.Background(), database.Config{
			Path:        dbPath,
			WALMode:     true,
			BusyTimeout: 5,
		})
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer db.Close() //nolint:errcheck // Test cleanup

		if _, err := db.ExecContext(context.Background(), "CREATE TABLE t (id INTEGER)"); err != nil {
			t.Fatalf("ExecContext() error = %v", err)
		}
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != dbPath {
			t.Errorf("Path() = %q, want %q", db.Path(), dbPath)
		}
	})

	t.Run("defaults to sqlite", func(t *testing.T) {
		db := openMemory(t)
		if db.Driver() != database.DriverSQLite {
			t.Errorf("Driver() = %q, want %q", db.Driver(), database.DriverSQLite)
		}
		if db.Placeholder() != query.Question {
			t.Errorf("Placeholder() = %v, want %v", db.Placeholder(), query.Question)
		}
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		if _, err := database.Open(context.Background(), database.Config{Driver: "oracle"}); err == nil {
			t.Error("Open() should fail for an unknown driver")
		}
	})

	t.Run("requires sqlite path", func(t *testing.T) {
		if _, err := database.Open(context.Background(), database.Config{Driver: database.DriverSQLite}); err == nil {
			t.Error("Open() should fail without a path")
		}
	})

	t.Run("requires postgres dsn", func(t *testing.T) {
		if _, err := database.Open(context.Background(), database.Config{Driver: database.DriverPostgres}); err == nil {
			t.Error("Open() should fail without a DSN")
		}
	})
}

func TestHealthCheck(t *testing.T) {
	db := openMemory(t)
	if err := db.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestClose(t *testing.T) {
	db, err := database.Open(context.Background(), database.Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := db.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() should fail after Close()")
	}
}

// ─── Migrations ────────────────────────────────────────────────

func TestMigrate(t *testing.T) {
	db := migrated(t)
	ctx := context.Background()

	for _, table := range []string{"pilot", "ship_class", "weapon_class", "ship", "ship_weapons", "users"} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing after Migrate(): %v", table, err)
		}
	}

	version, err := db.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != 2 {
		t.Errorf("SchemaVersion() = %d, want 2", version)
	}

	// Idempotent
	if err := db.Migrate(ctx); err != nil {
		t.Errorf("second Migrate() error = %v", err)
	}
}

func TestMigrateDown(t *testing.T) {
	db := migrated(t)
	ctx := context.Background()

	if err := db.MigrateDown(ctx); err != nil {
		t.Fatalf("MigrateDown() error = %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'users'").Scan(&count); err != nil {
		t.Fatalf("query error = %v", err)
	}
	if count != 0 {
		t.Error("users table should be dropped by MigrateDown()")
	}
}

// ─── Constraint classification ─────────────────────────────────

func TestConstraintViolations(t *testing.T) {
	db := migrated(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO ship (name, capacity, speed, shield, ship_class_id, pilot_id) VALUES ('Ghost', 1, 1, 1, 99, 99)`)
	if err == nil {
		t.Fatal("insert with dangling references should fail")
	}
	if !database.IsForeignKeyViolation(err) {
		t.Errorf("IsForeignKeyViolation(%v) = false, want true", err)
	}
	if database.IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation(%v) = true, want false", err)
	}

	insertUser := `INSERT INTO users (username, email, password_hash, created_at) VALUES ('kara', 'k@example.com', 'h', 'now')`
	if _, err := db.ExecContext(ctx, insertUser); err != nil {
		t.Fatalf("first insert error = %v", err)
	}
	_, err = db.ExecContext(ctx, insertUser)
	if !database.IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation(%v) = false, want true", err)
	}

	if database.IsUniqueViolation(nil) || database.IsForeignKeyViolation(nil) {
		t.Error("nil error must not classify as a constraint violation")
	}
}

// ─── Case mapping ──────────────────────────────────────────────

func TestSQLiteCaseMapping(t *testing.T) {
	db := openMemory(t)

	var (
		lower, upper string
		null         bool
	)
	err := db.QueryRowContext(context.Background(),
		`SELECT lower('ÉLAN Über'), upper('élan'), lower(NULL) IS NULL`).Scan(&lower, &upper, &null)
	if err != nil {
		t.Fatalf("QueryRowContext() error = %v", err)
	}
	if lower != "élan über" {
		t.Errorf("lower() = %q, want %q", lower, "élan über")
	}
	if upper != "ÉLAN" {
		t.Errorf("upper() = %q, want %q", upper, "ÉLAN")
	}
	if !null {
		t.Error("lower(NULL) should stay NULL")
	}
}
