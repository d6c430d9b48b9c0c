package model

import (
	"time"

	"github.com/google/uuid"
)

// Loan - one borrow of one book. ReturnedAt is nil while the loan is active
// and is set exactly once. Loans are never deleted.
type Loan struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	BookID     uuid.UUID  `json:"book_id" db:"book_id"`
	BookTitle  string     `json:"book_title" db:"book_title"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	Username   string     `json:"username" db:"username"`
	BorrowedAt time.Time  `json:"borrowed_at" db:"borrowed_at"`
	ReturnedAt *time.Time `json:"returned_at" db:"returned_at"`
}

func (l *Loan) Active() bool {
	return l.ReturnedAt == nil
}

// Filter selects ledger rows. Zero IDs are ignored.
type Filter struct {
	BookID     uuid.UUID
	UserID     uuid.UUID
	ActiveOnly bool
}

// Status values accepted by GET /api/loans/me
const (
	StatusActive = "active"
	StatusAll    = "all"
)
