package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"library-backend/internal/domains/loan/model"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	db database.Querier
}

// NewPostgresRepository accepts the pool or a transaction
func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, loan *model.Loan) error {
	query := `
		INSERT INTO loans (id, book_id, user_id, borrowed_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, loan.ID, loan.BookID, loan.UserID, loan.BorrowedAt)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return model.ErrActiveLoanExists
		}
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindActiveByBook(ctx context.Context, bookID uuid.UUID) (*model.Loan, error) {
	loans, err := r.List(ctx, model.Filter{BookID: bookID, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, model.ErrNoActiveLoan
	}
	return &loans[0], nil
}

func (r *postgresRepository) MarkReturned(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE loans SET returned_at = $1 WHERE id = $2 AND returned_at IS NULL`, at, id)
	if err != nil {
		return false, fmt.Errorf("mark loan returned: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.Filter) ([]model.Loan, error) {
	query, args, err := buildLoanQuery(postgresDialect, filter)
	if err != nil {
		return nil, fmt.Errorf("build loan query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list loans query failed: %w", err)
	}

	loans, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		return nil, fmt.Errorf("collect rows failed: %w", err)
	}
	return loans, nil
}
