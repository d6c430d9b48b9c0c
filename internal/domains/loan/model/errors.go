package model

import "library-backend/internal/shared/apperror"

var (
	ErrNoActiveLoan     = apperror.New(apperror.NotFound, "NO_ACTIVE_LOAN", "no active loan found for this book")
	ErrNotBorrower      = apperror.New(apperror.Forbidden, "NOT_BORROWER", "you can only return books that you have borrowed")
	ErrActiveLoanExists = apperror.New(apperror.Conflict, "ACTIVE_LOAN_EXISTS", "book already has an active loan")
	ErrInvalidStatus    = apperror.New(apperror.Validation, "INVALID_LOAN_STATUS", "status must be 'active' or 'all'")
)
