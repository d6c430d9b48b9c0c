// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"library-backend/internal/infrastructure/database"
)

var dbSeq atomic.Int64

// NewSQLite opens a fresh, migrated database file in dir. Several databases
// may share one dir; each call gets its own file.
func NewSQLite(tb testing.TB, dir string) *sqlx.DB {
	tb.Helper()

	path := filepath.Join(dir, fmt.Sprintf("library-%d.db", dbSeq.Add(1)))
	db, err := database.OpenSQLite(context.Background(), path)
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = db.Close() })
	return db
}
