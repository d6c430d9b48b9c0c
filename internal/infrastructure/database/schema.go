package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/rs/zerolog/log"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Schema returns the DDL for driver ("postgres" or "sqlite")
func Schema(driver string) (string, error) {
	var name string
	switch driver {
	case "postgres":
		name = "schema/postgres.sql"
	case "sqlite", "sqlite3":
		name = "schema/sqlite.sql"
	default:
		return "", fmt.Errorf("no schema for driver %q", driver)
	}

	b, err := schemaFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(b), nil
}

// Execer is the part of *sql.DB / *sqlx.DB that Migrate needs
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db Execer, driver string) error {
	ddl, err := Schema(driver)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("apply %s schema: %w", driver, err)
	}

	log.Info().Str("component", "database").Str("driver", driver).Msg("schema applied")
	return nil
}
