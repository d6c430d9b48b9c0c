package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"library-backend/internal/domains/loan/model"
	"library-backend/pkg/database"
)

type sqliteRepository struct {
	db sqlx.ExtContext
}

// NewSQLiteRepository accepts *sqlx.DB or *sqlx.Tx
func NewSQLiteRepository(db sqlx.ExtContext) RepositoryInterface {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Create(ctx context.Context, loan *model.Loan) error {
	query := `
		INSERT INTO loans (id, book_id, user_id, borrowed_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, loan.ID, loan.BookID, loan.UserID, loan.BorrowedAt.UTC())
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return model.ErrActiveLoanExists
		}
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

func (r *sqliteRepository) FindActiveByBook(ctx context.Context, bookID uuid.UUID) (*model.Loan, error) {
	loans, err := r.List(ctx, model.Filter{BookID: bookID, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, model.ErrNoActiveLoan
	}
	return &loans[0], nil
}

func (r *sqliteRepository) MarkReturned(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE loans SET returned_at = ? WHERE id = ? AND returned_at IS NULL`, at.UTC(), id)
	if err != nil {
		return false, fmt.Errorf("mark loan returned: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark loan returned: %w", err)
	}
	return n == 1, nil
}

func (r *sqliteRepository) List(ctx context.Context, filter model.Filter) ([]model.Loan, error) {
	query, args, err := buildLoanQuery(sqliteDialect, filter)
	if err != nil {
		return nil, fmt.Errorf("build loan query: %w", err)
	}

	loans := []model.Loan{}
	if err := sqlx.SelectContext(ctx, r.db, &loans, query, args...); err != nil {
		return nil, fmt.Errorf("list loans query failed: %w", err)
	}
	return loans, nil
}
