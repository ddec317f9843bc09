package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
)

// MigrationsFS holds goose migration files in one directory per dialect
// ("sqlite" and "postgres"). It is set by the migrations package.
var MigrationsFS fs.FS

// ErrNoMigrations is returned when MigrationsFS has not been registered.
var ErrNoMigrations = errors.New("database: migrations not registered")

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// Migrate applies all pending migrations for the driver's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return db.withGoose(func(dir string) error {
		if err := goose.UpContext(ctx, db.DB, dir); err != nil {
			return fmt.Errorf("applying migrations: %w", err)
		}
		return nil
	})
}

// MigrateDown rolls back the most recent migration.
func (db *DB) MigrateDown(ctx context.Context) error {
	return db.withGoose(func(dir string) error {
		if err := goose.DownContext(ctx, db.DB, dir); err != nil {
			return fmt.Errorf("rolling back migration: %w", err)
		}
		return nil
	})
}

// SchemaVersion returns the version of the last applied migration.
func (db *DB) SchemaVersion(ctx context.Context) (int64, error) {
	var version int64
	err := db.withGoose(func(string) error {
		v, err := goose.GetDBVersionContext(ctx, db.DB)
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

func (db *DB) withGoose(fn func(dir string) error) error {
	if MigrationsFS == nil {
		return ErrNoMigrations
	}

	dialect, dir := "sqlite3", "sqlite"
	if db.driver == DriverPostgres {
		dialect, dir = "postgres", "postgres"
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(MigrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}
	return fn(dir)
}
