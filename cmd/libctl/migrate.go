package main

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"library-backend/internal/config"
	"library-backend/internal/infrastructure/database"
)

func newMigrateCmd() *cobra.Command {
	var driver, sqlitePath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema",
		Long:  "Apply the embedded schema. Every statement is idempotent, so running it twice is harmless.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(driver, sqlitePath)
			if err != nil {
				return err
			}

			db, err := openSQL(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.PingContext(cmd.Context()); err != nil {
				return fmt.Errorf("connect %s: %w", cfg.Storage.Driver, err)
			}
			if err := database.Migrate(cmd.Context(), db, cfg.Storage.Driver); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "schema applied (%s)\n", cfg.Storage.Driver)
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "", "storage driver: postgres or sqlite (default from STORAGE_DRIVER)")
	cmd.Flags().StringVar(&sqlitePath, "sqlite-path", "", "database file for the sqlite driver (default from SQLITE_PATH)")
	return cmd
}

// openSQL opens a plain database/sql handle; lib/pq serves Postgres here so
// the migration does not depend on the pgx pool settings
func openSQL(cfg *config.Config) (*sql.DB, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return nil, err
		}
		return sql.Open("postgres", dbConfig.DSN())
	case config.DriverSQLite:
		return sql.Open("sqlite3", database.SQLiteDSN(cfg.Storage.SQLitePath))
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
