package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"library-backend/internal/shared/apperror"
)

func TestLoanActive(t *testing.T) {
	l := Loan{BorrowedAt: time.Now()}
	assert.True(t, l.Active())

	now := time.Now()
	l.ReturnedAt = &now
	assert.False(t, l.Active())
}

func TestLoanErrorKinds(t *testing.T) {
	assert.Equal(t, apperror.NotFound, apperror.KindOf(ErrNoActiveLoan))
	assert.Equal(t, apperror.Forbidden, apperror.KindOf(ErrNotBorrower))
	assert.Equal(t, apperror.Conflict, apperror.KindOf(ErrActiveLoanExists))
	assert.False(t, errors.Is(ErrNoActiveLoan, ErrActiveLoanExists))
}
