// Package migrations embeds the goose SQL migrations into the binary.
//
// Each dialect has its own directory so column types can follow the
// engine (AUTOINCREMENT on SQLite, BIGSERIAL on PostgreSQL).
package migrations

import (
	"embed"

	"github.com/nerrad567/shiperd/internal/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
}
