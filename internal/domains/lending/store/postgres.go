package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	bookrepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/lending"
	loanrepo "library-backend/internal/domains/loan/repository"
	userrepo "library-backend/internal/domains/user/repository"
	"library-backend/pkg/database"
)

// PostgresStore - read committed transaction; book rows are locked with
// SELECT ... FOR UPDATE by the service.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ lending.UnitOfWork = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Do(ctx context.Context, fn func(context.Context, lending.Repositories) error) error {
	return database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(ctx, lending.Repositories{
			Books: bookrepo.NewPostgresRepository(tx),
			Loans: loanrepo.NewPostgresRepository(tx),
			Users: userrepo.NewPostgresRepository(tx),
		})
	})
}
