package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAppliesSchema(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "nested", "library.db"))
	require.NoError(t, err)
	defer db.Close()

	var tables []string
	require.NoError(t, db.SelectContext(ctx, &tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`))
	assert.Equal(t, []string{"books", "loans", "users"}, tables)

	// Running the schema again is a no-op.
	assert.NoError(t, Migrate(ctx, db, "sqlite"))
}

func TestSchemaUnknownDriver(t *testing.T) {
	_, err := Schema("mysql")
	assert.Error(t, err)

	ddl, err := Schema("postgres")
	require.NoError(t, err)
	assert.Contains(t, ddl, "idx_loans_active_book")
}

func TestDSN(t *testing.T) {
	cfg := &DBConfig{Host: "db", Port: 5432, Username: "lib", Password: "p@ss", DBName: "library", SSLMode: "disable"}
	assert.Equal(t, "postgres://lib:p%40ss@db:5432/library?sslmode=disable", cfg.DSN())
}
