// Package lending ties the catalog, the loan ledger and the credential store
// together so that a borrow or return changes book and loan atomically.
package lending

import (
	"context"

	bookrepo "library-backend/internal/domains/book/repository"
	loanrepo "library-backend/internal/domains/loan/repository"
	userrepo "library-backend/internal/domains/user/repository"
)

// Repositories are bound to one transaction and must not escape fn
type Repositories struct {
	Books bookrepo.RepositoryInterface
	Loans loanrepo.RepositoryInterface
	Users userrepo.Repository
}

// UnitOfWork runs fn in a single transaction. A nil return commits, anything
// else rolls back and is returned unchanged.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
