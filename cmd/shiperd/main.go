// shiperd - fleet registry REST service
//
// This is the main entry point for shiperd. It serves CRUD and search
// endpoints for pilots, ships, ship classes, weapon classes and mounted
// ship weapons, backed by SQLite or PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nerrad567/shiperd/migrations"

	"github.com/nerrad567/shiperd/internal/api"
	"github.com/nerrad567/shiperd/internal/auth"
	"github.com/nerrad567/shiperd/internal/fleet"
	"github.com/nerrad567/shiperd/internal/infrastructure/config"
	"github.com/nerrad567/shiperd/internal/infrastructure/database"
	"github.com/nerrad567/shiperd/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// startupHealthTimeout bounds the post-start health check.
const startupHealthTimeout = 5 * time.Second

func main() {
	// Cancel on Ctrl+C or SIGTERM for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//   - args: Command-line arguments without the program name
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context, args []string) error {
	configPath, err := parseFlags(args)
	if err != nil {
		return err
	}

	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting shiperd",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	db, err := database.Open(ctx, database.Config{
		Driver:       cfg.Database.Driver,
		Path:         cfg.Database.Path,
		DSN:          cfg.Database.DSN,
		WALMode:      cfg.Database.WALMode,
		BusyTimeout:  cfg.Database.BusyTimeout,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "driver", db.Driver())

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	if schemaVersion, versionErr := db.SchemaVersion(ctx); versionErr == nil {
		log.Info("database migrations complete", "schema_version", schemaVersion)
	}

	ph := db.Placeholder()
	server, err := api.New(api.Deps{
		Config:        cfg.API,
		Security:      cfg.Security,
		Logger:        log.With("component", "api"),
		DB:            db,
		Pilots:        fleet.NewPilotRepository(db.DB, ph),
		Ships:         fleet.NewShipRepository(db.DB, ph),
		ShipClasses:   fleet.NewShipClassRepository(db.DB, ph),
		WeaponClasses: fleet.NewWeaponClassRepository(db.DB, ph),
		ShipWeapons:   fleet.NewShipWeaponRepository(db.DB, ph),
		Users:         auth.NewUserRepository(db.DB, ph),
		Version:       version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	healthCtx, cancel := context.WithTimeout(ctx, startupHealthTimeout)
	defer cancel()
	if healthErr := server.HealthCheck(healthCtx); healthErr != nil {
		log.Warn("startup health check failed", "error", healthErr)
	}

	log.Info("shiperd started",
		"address", server.Addr(),
	)

	<-ctx.Done()
	log.Info("shutdown signal received")
	return nil
}

// parseFlags returns the configuration path from -config, SHIPERD_CONFIG
// or the default, in that order.
func parseFlags(args []string) (string, error) {
	fs := flag.NewFlagSet("shiperd", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to the YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return "", err
	}

	if *configPath != "" {
		return *configPath, nil
	}
	if path := os.Getenv("SHIPERD_CONFIG"); path != "" {
		return path, nil
	}
	return defaultConfigPath, nil
}
