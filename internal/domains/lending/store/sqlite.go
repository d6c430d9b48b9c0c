package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	bookrepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/lending"
	loanrepo "library-backend/internal/domains/loan/repository"
	userrepo "library-backend/internal/domains/user/repository"
	"library-backend/pkg/database"
)

// SQLiteStore relies on the DSN's _txlock=immediate: every transaction takes
// the write lock at BEGIN, so units of work are serialized.
type SQLiteStore struct {
	db *sqlx.DB
}

var _ lending.UnitOfWork = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sqlx.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Do(ctx context.Context, fn func(context.Context, lending.Repositories) error) error {
	return database.WithSQLxTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(ctx, lending.Repositories{
			Books: bookrepo.NewSQLiteRepository(tx),
			Loans: loanrepo.NewSQLiteRepository(tx),
			Users: userrepo.NewSQLiteRepository(tx),
		})
	})
}
