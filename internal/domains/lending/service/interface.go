package service

import (
	"context"

	"github.com/google/uuid"

	bookmodel "library-backend/internal/domains/book/model"
	loanmodel "library-backend/internal/domains/loan/model"
)

// ServiceInterface - every state change of a book or a loan goes through here
type ServiceInterface interface {
	AddBook(ctx context.Context, req bookmodel.CreateBookRequest) (*bookmodel.Book, error)
	UpdateBook(ctx context.Context, bookID uuid.UUID, req bookmodel.UpdateBookRequest) (*bookmodel.Book, error)
	DeleteBook(ctx context.Context, bookID uuid.UUID) (*bookmodel.DeleteBookResponse, error)

	Borrow(ctx context.Context, bookID uuid.UUID, requester string) (*loanmodel.Loan, error)
	Return(ctx context.Context, bookID uuid.UUID, requester string) (*loanmodel.Loan, error)

	ActiveLoansForUser(ctx context.Context, username string) ([]loanmodel.Loan, error)
	LoansForUser(ctx context.Context, username string) ([]loanmodel.Loan, error)
	BookHistory(ctx context.Context, bookID uuid.UUID) ([]loanmodel.Loan, error)
}
