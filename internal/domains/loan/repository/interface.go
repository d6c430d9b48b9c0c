package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/loan/model"
)

// RepositoryInterface - the loan ledger. Rows are appended by Create and
// closed once by MarkReturned; nothing is ever deleted.
type RepositoryInterface interface {
	Create(ctx context.Context, loan *model.Loan) error
	FindActiveByBook(ctx context.Context, bookID uuid.UUID) (*model.Loan, error)
	// MarkReturned reports false when the loan was already closed
	MarkReturned(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	List(ctx context.Context, filter model.Filter) ([]model.Loan, error)
}
