package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/lending"
	loanmodel "library-backend/internal/domains/loan/model"
	"library-backend/internal/shared/apperror"
)

const tracerName = "library-backend/lending"

// LendingService - Implements ServiceInterface. Each method is exactly one
// unit of work.
type LendingService struct {
	uow    lending.UnitOfWork
	tracer trace.Tracer
	now    func() time.Time
}

var _ ServiceInterface = (*LendingService)(nil)

func NewService(uow lending.UnitOfWork) *LendingService {
	return &LendingService{
		uow:    uow,
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
}

// ========================================
// CATALOG WRITES
// ========================================

// AddBook inserts a new, available book
func (s *LendingService) AddBook(ctx context.Context, req bookmodel.CreateBookRequest) (*bookmodel.Book, error) {
	ctx, span := s.tracer.Start(ctx, "lending.add_book")
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, s.fail(span, "add_book", apperror.Validationf("invalid book", err))
	}

	var book *bookmodel.Book
	err := s.uow.Do(ctx, func(ctx context.Context, r lending.Repositories) error {
		exists, err := r.Books.ExistsByISBN(ctx, req.ISBN, uuid.Nil)
		if err != nil {
			return err
		}
		if exists {
			return bookmodel.ErrISBNAlreadyExists
		}

		now := s.now().UTC()
		b := &bookmodel.Book{
			ID:        uuid.New(),
			ISBN:      req.ISBN,
			Title:     req.Title,
			Author:    req.Author,
			Available: true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.Books.Create(ctx, b); err != nil {
			return err
		}
		book = b
		return nil
	})
	if err != nil {
		return nil, s.fail(span, "add_book", err)
	}

	span.SetAttributes(attribute.String("book.id", book.ID.String()))
	log.Info().Str("book_id", book.ID.String()).Str("isbn", book.ISBN).Msg("book added")
	return book, nil
}

// UpdateBook overwrites isbn, title and author. Availability is untouched.
func (s *LendingService) UpdateBook(ctx context.Context, bookID uuid.UUID, req bookmodel.UpdateBookRequest) (*bookmodel.Book, error) {
	ctx, span := s.tracer.Start(ctx, "lending.update_book", trace.WithAttributes(attribute.String("book.id", bookID.String())))
	defer span.End()

	if bookID == uuid.Nil {
		return nil, s.fail(span, "update_book", bookmodel.ErrInvalidBookID)
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, s.fail(span, "update_book", apperror.Validationf("invalid book", err))
	}

	var book *bookmodel.Book
	err := s.uow.Do(ctx, func(ctx context.Context, r lending.Repositories) error {
		b, err := r.Books.FindByIDForUpdate(ctx, bookID)
		if err != nil {
			return err
		}

		if req.ISBN != b.ISBN {
			taken, err := r.Books.ExistsByISBN(ctx, req.ISBN, b.ID)
			if err != nil {
				return err
			}
			if taken {
				return bookmodel.ErrISBNAlreadyExists
			}
		}

		b.ISBN = req.ISBN
		b.Title = req.Title
		b.Author = req.Author
		b.UpdatedAt = s.now().UTC()
		if err := r.Books.Update(ctx, b); err != nil {
			return err
		}
		book = b
		return nil
	})
	if err != nil {
		return nil, s.fail(span, "update_book", err)
	}

	log.Info().Str("book_id", book.ID.String()).Msg("book updated")
	return book, nil
}

// DeleteBook soft-deletes an available book. Its loans keep pointing at it.
func (s *LendingService) DeleteBook(ctx context.Context, bookID uuid.UUID) (*bookmodel.DeleteBookResponse, error) {
	ctx, span := s.tracer.Start(ctx, "lending.delete_book", trace.WithAttributes(attribute.String("book.id", bookID.String())))
	defer span.End()

	if bookID == uuid.Nil {
		return nil, s.fail(span, "delete_book", bookmodel.ErrInvalidBookID)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, r lending.Repositories) error {
		b, err := r.Books.FindByIDForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		if !b.Available {
			return bookmodel.ErrBookOnLoan
		}

		deleted, err := r.Books.SoftDelete(ctx, b.ID, s.now().UTC())
		if err != nil {
			return err
		}
		if !deleted {
			return bookmodel.ErrBookOnLoan
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(span, "delete_book", err)
	}

	log.Info().Str("book_id", bookID.String()).Msg("book deleted")
	return &bookmodel.DeleteBookResponse{ID: bookID.String(), Message: "Book deleted successfully"}, nil
}

// ========================================
// BORROW / RETURN
// ========================================

// Borrow lends an available book to requester
func (s *LendingService) Borrow(ctx context.Context, bookID uuid.UUID, requester string) (*loanmodel.Loan, error) {
	ctx, span := s.tracer.Start(ctx, "lending.borrow", trace.WithAttributes(
		attribute.String("book.id", bookID.String()),
		attribute.String("user.name", requester),
	))
	defer span.End()

	if bookID == uuid.Nil {
		return nil, s.fail(span, "borrow", bookmodel.ErrInvalidBookID)
	}

	var loan *loanmodel.Loan
	err := s.uow.Do(ctx, func(ctx context.Context, r lending.Repositories) error {
		// 1. Resolve requester
		user, err := r.Users.FindByUsername(ctx, requester)
		if err != nil {
			return err
		}

		// 2. Lock the book row
		book, err := r.Books.FindByIDForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		if !book.Available {
			return bookmodel.ErrBookUnavailable
		}

		// 3. Flip availability only if nobody else did
		now := s.now().UTC()
		flipped, err := r.Books.SetAvailability(ctx, book.ID, true, false, now)
		if err != nil {
			return err
		}
		if !flipped {
			return bookmodel.ErrBookUnavailable
		}

		// 4. Append to the ledger
		l := &loanmodel.Loan{
			ID:         uuid.New(),
			BookID:     book.ID,
			BookTitle:  book.Title,
			UserID:     user.ID,
			Username:   user.Username,
			BorrowedAt: now,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			if errors.Is(err, loanmodel.ErrActiveLoanExists) {
				return bookmodel.ErrBookUnavailable
			}
			return err
		}
		loan = l
		return nil
	})
	if err != nil {
		return nil, s.fail(span, "borrow", err)
	}

	span.SetAttributes(attribute.String("loan.id", loan.ID.String()))
	log.Info().
		Str("loan_id", loan.ID.String()).
		Str("book_id", bookID.String()).
		Str("username", requester).
		Msg("book borrowed")
	return loan, nil
}

// Return closes requester's active loan on the book
func (s *LendingService) Return(ctx context.Context, bookID uuid.UUID, requester string) (*loanmodel.Loan, error) {
	ctx, span := s.tracer.Start(ctx, "lending.return", trace.WithAttributes(
		attribute.String("book.id", bookID.String()),
		attribute.String("user.name", requester),
	))
	defer span.End()

	if bookID == uuid.Nil {
		return nil, s.fail(span, "return", bookmodel.ErrInvalidBookID)
	}

	var loan *loanmodel.Loan
	err := s.uow.Do(ctx, func(ctx context.Context, r lending.Repositories) error {
		user, err := r.Users.FindByUsername(ctx, requester)
		if err != nil {
			return err
		}

		book, err := r.Books.FindByIDForUpdate(ctx, bookID)
		if err != nil {
			return err
		}

		active, err := r.Loans.FindActiveByBook(ctx, book.ID)
		if err != nil {
			return err
		}
		if active.UserID != user.ID {
			return loanmodel.ErrNotBorrower
		}

		now := s.now().UTC()
		closed, err := r.Loans.MarkReturned(ctx, active.ID, now)
		if err != nil {
			return err
		}
		if !closed {
			return loanmodel.ErrNoActiveLoan
		}

		flipped, err := r.Books.SetAvailability(ctx, book.ID, false, true, now)
		if err != nil {
			return err
		}
		if !flipped {
			return fmt.Errorf("book %s was available while loan %s was active", book.ID, active.ID)
		}

		active.ReturnedAt = &now
		loan = active
		return nil
	})
	if err != nil {
		return nil, s.fail(span, "return", err)
	}

	span.SetAttributes(attribute.String("loan.id", loan.ID.String()))
	log.Info().
		Str("loan_id", loan.ID.String()).
		Str("book_id", bookID.String()).
		Str("username", requester).
		Msg("book returned")
	return loan, nil
}

// ========================================
// LOAN HISTORY
// ========================================

func (s *LendingService) ActiveLoansForUser(ctx context.Context, username string) ([]loanmodel.Loan, error) {
	return s.loansForUser(ctx, username, true)
}

func (s *LendingService) LoansForUser(ctx context.Context, username string) ([]loanmodel.Loan, error) {
	return s.loansForUser(ctx, username, false)
}

// BookHistory lists every loan of bookID, including loans of deleted books
func (s *LendingService) BookHistory(ctx context.Context, bookID uuid.UUID) ([]loanmodel.Loan, error) {
	ctx, span := s.tracer.Start(ctx, "lending.book_history", trace.WithAttributes(attribute.String("book.id", bookID.String())))
	defer span.End()

	if bookID == uuid.Nil {
		return nil, s.fail(span, "book_history", bookmodel.ErrInvalidBookID)
	}

	var loans []loanmodel.Loan
	err := s.uow.Do(ctx, func(ctx context.Context, r lending.Repositories) error {
		var err error
		loans, err = r.Loans.List(ctx, loanmodel.Filter{BookID: bookID})
		return err
	})
	if err != nil {
		return nil, s.fail(span, "book_history", err)
	}
	return nonNil(loans), nil
}

func (s *LendingService) loansForUser(ctx context.Context, username string, activeOnly bool) ([]loanmodel.Loan, error) {
	ctx, span := s.tracer.Start(ctx, "lending.loans_for_user", trace.WithAttributes(
		attribute.String("user.name", username),
		attribute.Bool("loan.active_only", activeOnly),
	))
	defer span.End()

	var loans []loanmodel.Loan
	err := s.uow.Do(ctx, func(ctx context.Context, r lending.Repositories) error {
		user, err := r.Users.FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		loans, err = r.Loans.List(ctx, loanmodel.Filter{UserID: user.ID, ActiveOnly: activeOnly})
		return err
	})
	if err != nil {
		return nil, s.fail(span, "loans_for_user", err)
	}
	return nonNil(loans), nil
}

// fail records err on the span and logs it. Domain failures are expected
// outcomes and log at debug; anything else is an error.
func (s *LendingService) fail(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	level := zerolog.DebugLevel
	if apperror.KindOf(err) == apperror.Internal {
		level = zerolog.ErrorLevel
	}
	log.WithLevel(level).Err(err).Str("op", op).Msg("lending operation failed")
	return err
}

func nonNil(loans []loanmodel.Loan) []loanmodel.Loan {
	if loans == nil {
		return []loanmodel.Loan{}
	}
	return loans
}
