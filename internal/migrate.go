package internal

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// The asset, inspection and user schema ships embedded in the binary so a
// deployment is a single artifact; goose tracks applied versions in the
// goose_db_version table.
//
//go:embed migrations/*.sql
var migrations embed.FS

// RunMigrations applies any pending schema migrations. Safe to run on every
// startup; an up-to-date database is a no-op.
func RunMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
