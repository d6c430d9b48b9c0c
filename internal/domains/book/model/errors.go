package model

import "library-backend/internal/shared/apperror"

var (
	ErrBookNotFound      = apperror.New(apperror.NotFound, "BOOK_NOT_FOUND", "book not found")
	ErrInvalidBookID     = apperror.New(apperror.Validation, "INVALID_BOOK_ID", "book id must be a valid UUID")
	ErrISBNAlreadyExists = apperror.New(apperror.Conflict, "ISBN_ALREADY_EXISTS", "a book with this ISBN already exists")
	ErrBookUnavailable   = apperror.New(apperror.Conflict, "BOOK_UNAVAILABLE", "book is not available for borrowing")
	ErrBookOnLoan        = apperror.New(apperror.Conflict, "BOOK_ON_LOAN", "cannot delete a borrowed book")
)
